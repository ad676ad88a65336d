// Package domain defines the core types and interfaces for composite food
// assembly. All other packages depend on domain; domain depends on nothing.
package domain

import "slices"

// Material is a registered food substance such as rice or beef.
// Implementations are immutable once registered.
type Material interface {
	ID() string
	Color() int32
	Categories() CategorySet
	ValidForms() FormSet
	BaseHeal() int
	SaturationModifier() float32
}

// MaterialSpec describes a plain material without custom behaviour.
type MaterialSpec struct {
	ID         string
	Color      int32
	BaseHeal   int
	Saturation float32
	Categories CategorySet
	Forms      FormSet
}

// SimpleMaterial is the default Material. Materials with hooks embed it.
type SimpleMaterial struct {
	spec MaterialSpec
}

// NewSimpleMaterial creates a material from spec. A material with no forms
// is assumed to support every form.
func NewSimpleMaterial(spec MaterialSpec) *SimpleMaterial {
	if spec.Forms == 0 {
		spec.Forms = AllForms
	}
	return &SimpleMaterial{spec: spec}
}

func (m *SimpleMaterial) ID() string                  { return m.spec.ID }
func (m *SimpleMaterial) Color() int32                { return m.spec.Color }
func (m *SimpleMaterial) Categories() CategorySet     { return m.spec.Categories }
func (m *SimpleMaterial) ValidForms() FormSet         { return m.spec.Forms }
func (m *SimpleMaterial) BaseHeal() int               { return m.spec.BaseHeal }
func (m *SimpleMaterial) SaturationModifier() float32 { return m.spec.Saturation }

// RiceID is the identifier of the canonical rice material.
const RiceID = "rice"

// IsUnderCategory reports whether m belongs to c.
func IsUnderCategory(m Material, c Category) bool {
	return m.Categories().Has(c)
}

// Ingredient is a material placed into a preparation. Traits are only
// changed by the owning builder during finalize.
type Ingredient struct {
	Material Material
	Form     Form
	Traits   TraitSet
	Doneness *float32 // nil when never measured
}

// NewIngredient creates an ingredient with no traits.
func NewIngredient(m Material, form Form) *Ingredient {
	return &Ingredient{Material: m, Form: form}
}

// AddTrait tags the ingredient with t.
func (i *Ingredient) AddTrait(t Trait) { i.Traits = i.Traits.With(t) }

// HasTrait reports whether the ingredient carries t.
func (i *Ingredient) HasTrait(t Trait) bool { return i.Traits.Has(t) }

// SetDoneness records a doneness value.
func (i *Ingredient) SetDoneness(v float32) { i.Doneness = &v }

// Clone returns a deep copy sharing the (immutable) material.
func (i *Ingredient) Clone() *Ingredient {
	c := *i
	if i.Doneness != nil {
		d := *i.Doneness
		c.Doneness = &d
	}
	return &c
}

// Spice is a registered seasoning substance.
type Spice interface {
	ID() string
	Color() int32
}

// SimpleSpice is the default Spice. Spices with hooks embed it.
type SimpleSpice struct {
	id    string
	color int32
}

// NewSimpleSpice creates a spice without custom behaviour.
func NewSimpleSpice(id string, color int32) *SimpleSpice {
	return &SimpleSpice{id: id, color: color}
}

func (s *SimpleSpice) ID() string   { return s.id }
func (s *SimpleSpice) Color() int32 { return s.color }

// Seasoning is a quantity of spice added to a preparation. Keywords such as
// "water" or "oil" drive the liquid heuristics of the builder.
type Seasoning struct {
	Spice    Spice
	Size     int
	Keywords []string
}

// NewSeasoning creates a seasoning of the given size.
func NewSeasoning(spice Spice, size int, keywords ...string) *Seasoning {
	return &Seasoning{Spice: spice, Size: size, Keywords: keywords}
}

// HasKeyword reports whether the seasoning carries keyword k.
func (s *Seasoning) HasKeyword(k string) bool {
	return slices.Contains(s.Keywords, k)
}

// Clone returns a deep copy sharing the (immutable) spice.
func (s *Seasoning) Clone() *Seasoning {
	c := *s
	c.Keywords = slices.Clone(s.Keywords)
	return &c
}

// EffectKind classifies an effect.
type EffectKind int

const (
	EffectStatus EffectKind = iota
	EffectModifier
)

// String returns a human-readable effect kind.
func (k EffectKind) String() string {
	switch k {
	case EffectStatus:
		return "status"
	case EffectModifier:
		return "modifier"
	default:
		return "unknown"
	}
}

// Effect is an outcome attached to a finished food. The ID is the stable
// key used in persisted documents.
type Effect struct {
	ID   string
	Name string
	Kind EffectKind
}

// EffectResolver looks effects up by ID.
type EffectResolver interface {
	Effect(id string) (*Effect, bool)
}
