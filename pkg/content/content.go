package content

import (
	"bytes"
	_ "embed"
	"fmt"
	"os"

	"github.com/aretw0/showcase/pkg/domain"
	"gopkg.in/yaml.v3"
)

//go:embed deck.yaml
var defaultDeck []byte

// Raw returns the embedded deck source.
func Raw() []byte {
	return bytes.Clone(defaultDeck)
}

// Default returns the embedded deck, validated.
func Default() (domain.Deck, error) {
	return Parse(defaultDeck)
}

// Load reads and parses a deck file.
func Load(path string) (domain.Deck, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return domain.Deck{}, fmt.Errorf("failed to read deck %s: %w", path, err)
	}
	return Parse(raw)
}

// Parse validates raw YAML against the deck schema and decodes it.
// Unknown fields are rejected.
func Parse(raw []byte) (domain.Deck, error) {
	if err := Validate(raw); err != nil {
		return domain.Deck{}, err
	}

	var d domain.Deck
	dec := yaml.NewDecoder(bytes.NewReader(raw))
	dec.KnownFields(true)
	if err := dec.Decode(&d); err != nil {
		return domain.Deck{}, fmt.Errorf("%w: %v", domain.ErrInvalidContent, err)
	}
	return d, nil
}
