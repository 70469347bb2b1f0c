package markdown

import "strings"

// Block is a generated region of a note, fenced by HTML comments so the
// text around it stays under the user's control.
type Block struct {
	Start string
	End   string
}

func NewBlock(name string) Block {
	return Block{
		Start: "<!-- " + name + ":start -->",
		End:   "<!-- " + name + ":end -->",
	}
}

// Replace puts generated between the block markers of body. A body
// without the block gets it appended after a blank line.
func (b Block) Replace(body, generated string) string {
	region := b.Start + "\n" + strings.TrimRight(generated, "\n") + "\n" + b.End

	start := strings.Index(body, b.Start)
	if start >= 0 {
		if end := strings.Index(body[start:], b.End); end >= 0 {
			tail := start + end + len(b.End)
			return body[:start] + region + body[tail:]
		}
	}

	switch {
	case strings.TrimSpace(body) == "":
		return region + "\n"
	case strings.HasSuffix(body, "\n"):
		return body + "\n" + region + "\n"
	default:
		return body + "\n\n" + region + "\n"
	}
}
