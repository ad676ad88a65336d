package codec

import (
	"fmt"

	"github.com/hammamikhairi/cuisine/internal/document"
)

// Field describes one key of a persisted document.
type Field struct {
	Key      string
	Kind     document.Kind
	Required bool
}

// Schema lists the fields a document type understands. Keys not in the
// schema are ignored on read.
type Schema struct {
	Name   string
	Fields []Field
}

// Validate checks that every required field is present and that every
// present field has the declared kind.
func (s Schema) Validate(c *document.Compound) error {
	if c == nil {
		return fmt.Errorf("%w: %s: no document", ErrMalformed, s.Name)
	}
	for _, f := range s.Fields {
		kind, ok := c.KindOf(f.Key)
		if !ok {
			if f.Required {
				return fmt.Errorf("%w: %s: missing %q", ErrMalformed, s.Name, f.Key)
			}
			continue
		}
		if kind != f.Kind {
			return fmt.Errorf("%w: %s: %q is %s, want %s", ErrMalformed, s.Name, f.Key, kind, f.Kind)
		}
	}
	return nil
}

func required(key string, kind document.Kind) Field {
	return Field{Key: key, Kind: kind, Required: true}
}

func optional(key string, kind document.Kind) Field {
	return Field{Key: key, Kind: kind}
}

// Document keys.
const (
	KeyIngredients = "ingredients"
	KeySeasonings  = "seasonings"
	KeyEffects     = "effects"
	KeyType        = "type"
	KeyFoodLevel   = "foodLevel"
	KeySaturation  = "saturationModifier"
	KeyServes      = "serves"
	KeyMaxServes   = "maxServes"
	KeyUseDuration = "useDurationModifier"
	KeyWater       = "water"
	KeyOil         = "oil"
	KeyTemperature = "temperature"
	KeyFoodType    = "food_type"

	KeyMaterial = "material"
	KeyForm     = "form"
	KeyTraits   = "traits"
	KeyDoneness = "doneness"
	KeySpice    = "spice"
	KeySize     = "size"
	KeyKeywords = "keywords"
)

var (
	IngredientSchema = Schema{Name: "ingredient", Fields: []Field{
		required(KeyMaterial, document.KindString),
		required(KeyForm, document.KindString),
		required(KeyTraits, document.KindList),
		optional(KeyDoneness, document.KindFloat),
	}}

	SeasoningSchema = Schema{Name: "seasoning", Fields: []Field{
		required(KeySpice, document.KindString),
		required(KeySize, document.KindInt),
		optional(KeyKeywords, document.KindList),
	}}

	DishSchema = Schema{Name: "dish", Fields: []Field{
		required(KeyIngredients, document.KindList),
		required(KeySeasonings, document.KindList),
		required(KeyEffects, document.KindList),
		optional(KeyType, document.KindString),
		required(KeyFoodLevel, document.KindInt),
		required(KeySaturation, document.KindFloat),
		required(KeyServes, document.KindInt),
		required(KeyMaxServes, document.KindInt),
		optional(KeyUseDuration, document.KindFloat),
	}}

	BuilderSchema = Schema{Name: "dish builder", Fields: []Field{
		required(KeyIngredients, document.KindList),
		required(KeySeasonings, document.KindList),
		required(KeyEffects, document.KindList),
		optional(KeyWater, document.KindInt),
		optional(KeyOil, document.KindInt),
		optional(KeyTemperature, document.KindInt),
	}}
)
