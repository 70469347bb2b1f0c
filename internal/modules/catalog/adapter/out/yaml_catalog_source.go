package out

import (
	"bytes"
	"context"
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"gothere/internal/modules/catalog/domain"
	catalogout "gothere/internal/modules/catalog/port/out"
)

//go:embed default_catalog.yaml
var defaultCatalog []byte

type yamlRelationship struct {
	ID    string `yaml:"id"`
	Label string `yaml:"label"`
	Emoji string `yaml:"emoji"`
}

type yamlVibe struct {
	ID    string `yaml:"id"`
	Label string `yaml:"label"`
	Emoji string `yaml:"emoji"`
	Color string `yaml:"color"`
}

type yamlCatalog struct {
	Relationships []yamlRelationship `yaml:"relationships"`
	Vibes         []yamlVibe         `yaml:"vibes"`

	// Prompts only carries anchors for shared decks.
	Prompts map[string][]string            `yaml:"prompts"`
	Decks   map[string]map[string][]string `yaml:"decks"`
}

// YAMLCatalogSource reads a catalog from a YAML file, or from the embedded
// default catalog when path is empty.
type YAMLCatalogSource struct {
	path string
}

func NewYAMLCatalogSource(path string) catalogout.CatalogSource {
	return &YAMLCatalogSource{path: path}
}

func (s *YAMLCatalogSource) Load(_ context.Context) (domain.Catalog, error) {
	raw := defaultCatalog
	if s.path != "" {
		payload, err := os.ReadFile(s.path)
		if err != nil {
			return domain.Catalog{}, fmt.Errorf("read catalog: %w", err)
		}
		raw = payload
	}
	return DecodeCatalog(raw)
}

func DecodeCatalog(raw []byte) (domain.Catalog, error) {
	decoded := yamlCatalog{}
	dec := yaml.NewDecoder(bytes.NewReader(raw))
	dec.KnownFields(true)
	if err := dec.Decode(&decoded); err != nil {
		return domain.Catalog{}, fmt.Errorf("decode catalog: %w", err)
	}

	cat := domain.Catalog{
		Relationships: make([]domain.Relationship, 0, len(decoded.Relationships)),
		Vibes:         make([]domain.Vibe, 0, len(decoded.Vibes)),
		Decks:         make(map[string]map[string][]string, len(decoded.Decks)),
	}
	for _, r := range decoded.Relationships {
		cat.Relationships = append(cat.Relationships, domain.Relationship{ID: r.ID, Label: r.Label, Emoji: r.Emoji})
	}
	for _, v := range decoded.Vibes {
		cat.Vibes = append(cat.Vibes, domain.Vibe{ID: v.ID, Label: v.Label, Emoji: v.Emoji, Color: v.Color})
	}
	for rel, decks := range decoded.Decks {
		cat.Decks[rel] = make(map[string][]string, len(decks))
		for vibe, prompts := range decks {
			// aliases share the backing array, copy per combination
			cat.Decks[rel][vibe] = append([]string(nil), prompts...)
		}
	}
	return cat, nil
}
