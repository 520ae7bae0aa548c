package content

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/aretw0/showcase/pkg/domain"
	"github.com/invopop/jsonschema"
	jsv "github.com/santhosh-tekuri/jsonschema/v6"
	"gopkg.in/yaml.v3"
)

// SchemaURL identifies the deck schema.
const SchemaURL = "https://github.com/aretw0/showcase/deck.schema.json"

// Schema reflects the JSON Schema of a deck file from the domain types.
func Schema() *jsonschema.Schema {
	r := &jsonschema.Reflector{
		ExpandedStruct: true,
		FieldNameTag:   "yaml",
	}
	s := r.Reflect(&domain.Deck{})
	s.ID = jsonschema.ID(SchemaURL)
	s.Title = "Showcase deck"
	s.Description = "Slides, diagrams and workflow content of a showcase presentation."
	return s
}

// SchemaJSON returns the indented deck schema.
func SchemaJSON() ([]byte, error) {
	return json.MarshalIndent(Schema(), "", "  ")
}

var compiled = sync.OnceValues(func() (*jsv.Schema, error) {
	raw, err := SchemaJSON()
	if err != nil {
		return nil, fmt.Errorf("failed to marshal deck schema: %w", err)
	}
	doc, err := jsv.UnmarshalJSON(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("failed to parse deck schema: %w", err)
	}

	c := jsv.NewCompiler()
	c.AssertFormat()
	if err := c.AddResource(SchemaURL, doc); err != nil {
		return nil, fmt.Errorf("failed to add deck schema: %w", err)
	}
	return c.Compile(SchemaURL)
})

// Validate checks raw YAML against the deck schema.
// The document goes through JSON so numbers reach the validator as json.Number.
func Validate(raw []byte) error {
	var doc any
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrInvalidContent, err)
	}
	js, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrInvalidContent, err)
	}
	inst, err := jsv.UnmarshalJSON(bytes.NewReader(js))
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrInvalidContent, err)
	}

	sch, err := compiled()
	if err != nil {
		return err
	}
	if err := sch.Validate(inst); err != nil {
		return fmt.Errorf("%w: %w", domain.ErrInvalidContent, err)
	}
	return nil
}
