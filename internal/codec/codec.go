// Package codec converts dishes and dish builders to and from documents.
// Every document type has an explicit schema; reads are presence-checked so
// an unset builder counter survives a round trip as unset.
package codec

import (
	"errors"
	"fmt"

	"github.com/hammamikhairi/cuisine/internal/dish"
	"github.com/hammamikhairi/cuisine/internal/document"
	"github.com/hammamikhairi/cuisine/internal/domain"
)

var (
	// ErrUnknownType is returned for a type tag no decoder is registered for.
	ErrUnknownType = errors.New("unknown food type")
	// ErrMalformed is returned when a document misses a required field or
	// holds a field of the wrong kind. No partial value is returned.
	ErrMalformed = errors.New("malformed food document")
)

// Resolver looks up registered content by ID. *catalog.Registry satisfies it.
type Resolver interface {
	Material(id string) (domain.Material, bool)
	Spice(id string) (domain.Spice, bool)
	Effect(id string) (*domain.Effect, bool)
}

// Food is a dish or a dish builder.
type Food interface {
	domain.Preparation
	Identifier() string
}

// Compile-time interface checks.
var (
	_ Food = (*dish.Dish)(nil)
	_ Food = (*dish.Builder)(nil)
)

// Option configures a Codec.
type Option func(*Codec)

// WithRandom sets the random source given to decoded dishes and builders.
func WithRandom(r domain.RandomSource) Option {
	return func(c *Codec) {
		c.rand = r
	}
}

// WithBuilderOptions sets options applied to every decoded builder.
func WithBuilderOptions(opts ...dish.Option) Option {
	return func(c *Codec) {
		c.builderOpts = append(c.builderOpts, opts...)
	}
}

// Codec encodes and decodes foods against a content registry.
type Codec struct {
	resolver    Resolver
	rand        domain.RandomSource
	builderOpts []dish.Option
}

// New creates a codec resolving IDs through r.
func New(r Resolver, opts ...Option) *Codec {
	c := &Codec{resolver: r, rand: domain.DefaultRandom()}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Encode serializes a dish or a builder.
func (c *Codec) Encode(f Food) (*document.Compound, error) {
	switch f := f.(type) {
	case *dish.Dish:
		return c.EncodeDish(f), nil
	case *dish.Builder:
		return c.EncodeBuilder(f), nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownType, f.Identifier())
	}
}

// Decode reconstructs the food of type typeID from doc.
func (c *Codec) Decode(typeID string, doc *document.Compound) (Food, error) {
	var (
		f   Food
		err error
	)
	switch typeID {
	case dish.TypeID:
		f, err = c.DecodeDish(doc)
	case dish.BuilderTypeID:
		f, err = c.DecodeBuilder(doc)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownType, typeID)
	}
	if err != nil {
		return nil, err
	}
	return f, nil
}

// EncodeDish serializes a finished dish. The model type is written only
// once it has been computed.
func (c *Codec) EncodeDish(d *dish.Dish) *document.Compound {
	doc := c.encodeLists(d.Ingredients(), d.Seasonings(), d.Effects())
	if d.HasModelType() {
		doc.SetString(KeyType, d.ModelType())
	}
	return doc.
		SetInt(KeyFoodLevel, int32(d.FoodLevel())).
		SetFloat(KeySaturation, d.SaturationModifier()).
		SetInt(KeyServes, int32(d.Serves())).
		SetInt(KeyMaxServes, int32(d.MaxServes())).
		SetFloat(KeyUseDuration, d.UseDurationModifier())
}

// EncodeBuilder serializes an in-progress builder. Liquid counters and the
// temperature are written only when set.
func (c *Codec) EncodeBuilder(b *dish.Builder) *document.Compound {
	doc := c.encodeLists(b.Ingredients(), b.Seasonings(), b.Effects())
	if v, ok := b.Water(); ok {
		doc.SetInt(KeyWater, int32(v))
	}
	if v, ok := b.Oil(); ok {
		doc.SetInt(KeyOil, int32(v))
	}
	if v, ok := b.Temperature(); ok {
		doc.SetInt(KeyTemperature, int32(v))
	}
	return doc
}

// DecodeDish reconstructs a dish. A persisted model type is restored as is
// instead of being recomputed.
func (c *Codec) DecodeDish(doc *document.Compound) (*dish.Dish, error) {
	if err := DishSchema.Validate(doc); err != nil {
		return nil, err
	}
	ings, sns, effects, err := c.decodeLists(doc)
	if err != nil {
		return nil, err
	}

	level, _ := doc.Int(KeyFoodLevel)
	sat, _ := doc.Float(KeySaturation)
	d := dish.New(ings, sns, effects, int(level), sat, c.rand)

	serves, _ := doc.Int(KeyServes)
	maxServes, _ := doc.Int(KeyMaxServes)
	d.SetServes(int(serves))
	d.SetMaxServes(int(maxServes))
	if v, ok := doc.Float(KeyUseDuration); ok {
		d.SetUseDurationModifier(v)
	}
	if t, ok := doc.String(KeyType); ok {
		d.SetModelType(t)
	}
	return d, nil
}

// DecodeBuilder reconstructs an in-progress builder.
func (c *Codec) DecodeBuilder(doc *document.Compound) (*dish.Builder, error) {
	if err := BuilderSchema.Validate(doc); err != nil {
		return nil, err
	}
	ings, sns, effects, err := c.decodeLists(doc)
	if err != nil {
		return nil, err
	}

	opts := append([]dish.Option{dish.WithRandom(c.rand)}, c.builderOpts...)
	b := dish.Restore(ings, sns, effects, opts...)
	if v, ok := doc.Int(KeyWater); ok {
		b.SetWater(int(v))
	}
	if v, ok := doc.Int(KeyOil); ok {
		b.SetOil(int(v))
	}
	if v, ok := doc.Int(KeyTemperature); ok {
		b.SetTemperature(int(v))
	}
	return b, nil
}

func (c *Codec) encodeLists(ings []*domain.Ingredient, sns []*domain.Seasoning, effects []*domain.Effect) *document.Compound {
	ingDocs := make([]*document.Compound, len(ings))
	for i, ing := range ings {
		ingDocs[i] = EncodeIngredient(ing)
	}
	snDocs := make([]*document.Compound, len(sns))
	for i, sn := range sns {
		snDocs[i] = encodeSeasoning(sn)
	}
	// An unresolved effect is written as an empty ID so the gap survives.
	ids := make([]string, len(effects))
	for i, e := range effects {
		if e != nil {
			ids[i] = e.ID
		}
	}
	return document.NewCompound().
		SetList(KeyIngredients, document.CompoundList(ingDocs...)).
		SetList(KeySeasonings, document.CompoundList(snDocs...)).
		SetList(KeyEffects, document.StringList(ids...))
}

func (c *Codec) decodeLists(doc *document.Compound) ([]*domain.Ingredient, []*domain.Seasoning, []*domain.Effect, error) {
	ingDocs, err := compoundList(doc, KeyIngredients)
	if err != nil {
		return nil, nil, nil, err
	}
	var ings []*domain.Ingredient
	for _, sub := range ingDocs {
		ing, err := c.decodeIngredient(sub)
		if err != nil {
			return nil, nil, nil, err
		}
		if ing != nil {
			ings = append(ings, ing)
		}
	}

	snDocs, err := compoundList(doc, KeySeasonings)
	if err != nil {
		return nil, nil, nil, err
	}
	var sns []*domain.Seasoning
	for _, sub := range snDocs {
		sn, err := c.decodeSeasoning(sub)
		if err != nil {
			return nil, nil, nil, err
		}
		if sn != nil {
			sns = append(sns, sn)
		}
	}

	ids, err := stringList(doc, KeyEffects)
	if err != nil {
		return nil, nil, nil, err
	}
	effects := make([]*domain.Effect, len(ids))
	for i, id := range ids {
		if e, ok := c.resolver.Effect(id); ok {
			effects[i] = e
		}
	}
	return ings, sns, effects, nil
}

// EncodeIngredient serializes a single ingredient.
func EncodeIngredient(ing *domain.Ingredient) *document.Compound {
	traits := ing.Traits.List()
	names := make([]string, len(traits))
	for i, t := range traits {
		names[i] = t.String()
	}
	doc := document.NewCompound().
		SetString(KeyMaterial, ing.Material.ID()).
		SetString(KeyForm, ing.Form.String()).
		SetList(KeyTraits, document.StringList(names...))
	if ing.Doneness != nil {
		doc.SetFloat(KeyDoneness, *ing.Doneness)
	}
	return doc
}

// decodeIngredient returns nil without error when the material is not
// registered.
func (c *Codec) decodeIngredient(doc *document.Compound) (*domain.Ingredient, error) {
	if err := IngredientSchema.Validate(doc); err != nil {
		return nil, err
	}
	id, _ := doc.String(KeyMaterial)
	formName, _ := doc.String(KeyForm)
	form, ok := domain.FormFromString(formName)
	if !ok {
		return nil, fmt.Errorf("%w: ingredient %q: unknown form %q", ErrMalformed, id, formName)
	}
	names, err := stringList(doc, KeyTraits)
	if err != nil {
		return nil, err
	}
	var traits domain.TraitSet
	for _, name := range names {
		t, ok := domain.TraitFromString(name)
		if !ok {
			return nil, fmt.Errorf("%w: ingredient %q: unknown trait %q", ErrMalformed, id, name)
		}
		traits = traits.With(t)
	}

	m, ok := c.resolver.Material(id)
	if !ok {
		return nil, nil
	}
	ing := domain.NewIngredient(m, form)
	ing.Traits = traits
	if v, ok := doc.Float(KeyDoneness); ok {
		ing.SetDoneness(v)
	}
	return ing, nil
}

func encodeSeasoning(sn *domain.Seasoning) *document.Compound {
	return document.NewCompound().
		SetString(KeySpice, sn.Spice.ID()).
		SetInt(KeySize, int32(sn.Size)).
		SetList(KeyKeywords, document.StringList(sn.Keywords...))
}

// decodeSeasoning returns nil without error when the spice is not
// registered.
func (c *Codec) decodeSeasoning(doc *document.Compound) (*domain.Seasoning, error) {
	if err := SeasoningSchema.Validate(doc); err != nil {
		return nil, err
	}
	id, _ := doc.String(KeySpice)
	size, _ := doc.Int(KeySize)
	var keywords []string
	if doc.Has(KeyKeywords) {
		var err error
		if keywords, err = stringList(doc, KeyKeywords); err != nil {
			return nil, err
		}
	}

	s, ok := c.resolver.Spice(id)
	if !ok {
		return nil, nil
	}
	return domain.NewSeasoning(s, int(size), keywords...), nil
}

func compoundList(doc *document.Compound, key string) ([]*document.Compound, error) {
	l, _ := doc.List(key)
	out, ok := l.Compounds()
	if !ok {
		return nil, fmt.Errorf("%w: %q holds %s elements, want compounds", ErrMalformed, key, l.Kind())
	}
	return out, nil
}

func stringList(doc *document.Compound, key string) ([]string, error) {
	l, _ := doc.List(key)
	out, ok := l.Strings()
	if !ok {
		return nil, fmt.Errorf("%w: %q holds %s elements, want strings", ErrMalformed, key, l.Kind())
	}
	return out, nil
}
