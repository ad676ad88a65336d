package codec

import (
	"fmt"

	"github.com/hammamikhairi/cuisine/internal/document"
)

// Wrap encodes f and records its type tag under food_type, so the document
// describes its own payload.
func (c *Codec) Wrap(f Food) (*document.Compound, error) {
	doc, err := c.Encode(f)
	if err != nil {
		return nil, err
	}
	return doc.SetString(KeyFoodType, f.Identifier()), nil
}

// Unwrap decodes a document produced by Wrap.
func (c *Codec) Unwrap(doc *document.Compound) (Food, error) {
	if doc == nil {
		return nil, fmt.Errorf("%w: no document", ErrMalformed)
	}
	typeID, ok := doc.String(KeyFoodType)
	if !ok {
		return nil, fmt.Errorf("%w: missing %q", ErrMalformed, KeyFoodType)
	}
	return c.Decode(typeID, doc)
}

// Marshal wraps f and encodes it as BSON.
func (c *Codec) Marshal(f Food) ([]byte, error) {
	doc, err := c.Wrap(f)
	if err != nil {
		return nil, err
	}
	return document.Marshal(doc)
}

// Unmarshal decodes BSON produced by Marshal.
func (c *Codec) Unmarshal(data []byte) (Food, error) {
	doc, err := document.Unmarshal(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformed, err)
	}
	return c.Unwrap(doc)
}
