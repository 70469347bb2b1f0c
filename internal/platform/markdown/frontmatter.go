package markdown

import (
	"bytes"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

const fence = "---"

// SplitFrontmatter separates a leading YAML frontmatter block from the
// note body. Notes without frontmatter return an empty map.
func SplitFrontmatter(content string) (map[string]any, string, error) {
	meta := map[string]any{}
	if !strings.HasPrefix(content, fence+"\n") {
		return meta, content, nil
	}
	rest := content[len(fence)+1:]
	raw, body, found := strings.Cut(rest, "\n"+fence+"\n")
	if !found {
		return nil, "", fmt.Errorf("frontmatter is not closed")
	}
	if err := yaml.Unmarshal([]byte(raw), &meta); err != nil {
		return nil, "", fmt.Errorf("parse frontmatter: %w", err)
	}
	if meta == nil {
		meta = map[string]any{}
	}
	return meta, body, nil
}

// RenderFrontmatter writes meta as YAML frontmatter followed by body.
func RenderFrontmatter(meta map[string]any, body string) (string, error) {
	var buf bytes.Buffer
	buf.WriteString(fence + "\n")
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(meta); err != nil {
		return "", fmt.Errorf("render frontmatter: %w", err)
	}
	if err := enc.Close(); err != nil {
		return "", fmt.Errorf("render frontmatter: %w", err)
	}
	buf.WriteString(fence + "\n")
	if !strings.HasPrefix(body, "\n") {
		buf.WriteByte('\n')
	}
	buf.WriteString(body)
	return buf.String(), nil
}
