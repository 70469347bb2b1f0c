package dto

type RelationshipOutput struct {
	ID         string
	Label      string
	Emoji      string
	VibeCount  int
	DeckLength int
}

type VibeOutput struct {
	ID         string
	Label      string
	Emoji      string
	Color      string
	DeckLength int
	Mixed      bool
}

type DeckOutput struct {
	RelationshipID string
	VibeID         string
	Prompts        []string
}

// SnapshotOutput is the read-only catalog view handed to other modules.
type SnapshotOutput struct {
	Decks  map[string]map[string][]string
	Combos map[string][]string
	Total  int
}
