package domain

import (
	"fmt"
	"strings"
)

// MixedVibeID names the pseudo-vibe that blends every deck of a
// relationship. It never has a stored deck of its own.
const MixedVibeID = "mixed"

type Relationship struct {
	ID    string
	Label string
	Emoji string
}

type Vibe struct {
	ID    string
	Label string
	Emoji string
	Color string
}

type Catalog struct {
	Relationships []Relationship
	Vibes         []Vibe
	Decks         map[string]map[string][]string
}

// Deck returns the prompts for a combination. Unknown combinations are an
// empty deck.
func (c Catalog) Deck(relationshipID, vibeID string) []string {
	return c.Decks[relationshipID][vibeID]
}

// AvailableVibes lists the vibes that have prompts for relationshipID, in
// catalog vibe order.
func (c Catalog) AvailableVibes(relationshipID string) []string {
	decks := c.Decks[relationshipID]
	out := make([]string, 0, len(decks))
	for _, v := range c.Vibes {
		if v.ID == MixedVibeID {
			continue
		}
		if len(decks[v.ID]) > 0 {
			out = append(out, v.ID)
		}
	}
	return out
}

func (c Catalog) HasCombination(relationshipID, vibeID string) bool {
	return len(c.Deck(relationshipID, vibeID)) > 0
}

func (c Catalog) Relationship(id string) (Relationship, bool) {
	for _, r := range c.Relationships {
		if r.ID == id {
			return r, true
		}
	}
	return Relationship{}, false
}

func (c Catalog) Vibe(id string) (Vibe, bool) {
	for _, v := range c.Vibes {
		if v.ID == id {
			return v, true
		}
	}
	return Vibe{}, false
}

// Combos maps every relationship to its available vibes.
func (c Catalog) Combos() map[string][]string {
	out := make(map[string][]string, len(c.Relationships))
	for _, r := range c.Relationships {
		if vibes := c.AvailableVibes(r.ID); len(vibes) > 0 {
			out[r.ID] = vibes
		}
	}
	return out
}

func (c Catalog) TotalPrompts() int {
	total := 0
	for rel, vibes := range c.Combos() {
		for _, v := range vibes {
			total += len(c.Deck(rel, v))
		}
	}
	return total
}

func (c Catalog) Validate() error {
	rels := map[string]struct{}{}
	for _, r := range c.Relationships {
		if strings.TrimSpace(r.ID) == "" {
			return fmt.Errorf("relationship id is required")
		}
		if _, dup := rels[r.ID]; dup {
			return fmt.Errorf("duplicate relationship %q", r.ID)
		}
		rels[r.ID] = struct{}{}
	}
	vibes := map[string]struct{}{}
	for _, v := range c.Vibes {
		if strings.TrimSpace(v.ID) == "" {
			return fmt.Errorf("vibe id is required")
		}
		if v.ID == MixedVibeID {
			return fmt.Errorf("vibe id %q is reserved", MixedVibeID)
		}
		if _, dup := vibes[v.ID]; dup {
			return fmt.Errorf("duplicate vibe %q", v.ID)
		}
		vibes[v.ID] = struct{}{}
	}
	for rel, decks := range c.Decks {
		if _, ok := rels[rel]; !ok {
			return fmt.Errorf("deck references unknown relationship %q", rel)
		}
		for vibe := range decks {
			if _, ok := vibes[vibe]; !ok {
				return fmt.Errorf("deck %s/%s references unknown vibe", rel, vibe)
			}
		}
	}
	return nil
}
