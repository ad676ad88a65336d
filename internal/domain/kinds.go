package domain

import "math/bits"

// Category groups materials for admission, trait and model-type rules.
type Category int

const (
	CategoryUnknown Category = iota
	CategoryGrain
	CategoryVegetables
	CategoryFruit
	CategoryMeat
	CategoryFish
	CategorySeafood
	CategoryEggs
	CategoryNuts
	CategoryFungi
	categoryCount
)

var categoryNames = [...]string{
	CategoryUnknown:    "unknown",
	CategoryGrain:      "grain",
	CategoryVegetables: "vegetables",
	CategoryFruit:      "fruit",
	CategoryMeat:       "meat",
	CategoryFish:       "fish",
	CategorySeafood:    "seafood",
	CategoryEggs:       "eggs",
	CategoryNuts:       "nuts",
	CategoryFungi:      "fungi",
}

// String returns the lowercase category name.
func (c Category) String() string {
	if c < 0 || c >= categoryCount {
		return "unknown"
	}
	return categoryNames[c]
}

// CategoryFromString converts a category name to a Category.
func CategoryFromString(name string) (Category, bool) {
	for i, n := range categoryNames {
		if n == name {
			return Category(i), true
		}
	}
	return CategoryUnknown, false
}

// CategorySet is a small bit set of categories.
type CategorySet uint32

// NewCategorySet builds a set from the given categories.
func NewCategorySet(cats ...Category) CategorySet {
	var s CategorySet
	for _, c := range cats {
		s = s.With(c)
	}
	return s
}

// With returns a copy of the set including c.
func (s CategorySet) With(c Category) CategorySet { return s | 1<<uint(c) }

// Has reports whether c is in the set.
func (s CategorySet) Has(c Category) bool { return s&(1<<uint(c)) != 0 }

// Len returns the number of categories in the set.
func (s CategorySet) Len() int { return bits.OnesCount32(uint32(s)) }

// List returns the categories in ordinal order.
func (s CategorySet) List() []Category {
	out := make([]Category, 0, s.Len())
	for c := CategoryUnknown; c < categoryCount; c++ {
		if s.Has(c) {
			out = append(out, c)
		}
	}
	return out
}

// Form is the physical preparation state of an ingredient. The ordinal
// order matters: later forms are more finely processed.
type Form int

const (
	FormRaw Form = iota
	FormSliced
	FormDiced
	FormMinced
	FormShredded
	FormPaste
	FormJuice
	formCount
)

var formNames = [...]string{
	FormRaw:      "raw",
	FormSliced:   "sliced",
	FormDiced:    "diced",
	FormMinced:   "minced",
	FormShredded: "shredded",
	FormPaste:    "paste",
	FormJuice:    "juice",
}

// String returns the lowercase form name.
func (f Form) String() string {
	if f < 0 || f >= formCount {
		return "unknown"
	}
	return formNames[f]
}

// FormFromString converts a form name to a Form.
func FormFromString(name string) (Form, bool) {
	for i, n := range formNames {
		if n == name {
			return Form(i), true
		}
	}
	return FormRaw, false
}

// FormSet is a small bit set of forms.
type FormSet uint16

// NewFormSet builds a set from the given forms.
func NewFormSet(forms ...Form) FormSet {
	var s FormSet
	for _, f := range forms {
		s = s.With(f)
	}
	return s
}

// AllForms contains every known form.
var AllForms = NewFormSet(FormRaw, FormSliced, FormDiced, FormMinced, FormShredded, FormPaste, FormJuice)

// SizeReducingForms are the forms produced by cutting or grinding.
var SizeReducingForms = NewFormSet(FormSliced, FormDiced, FormMinced, FormShredded, FormPaste)

// With returns a copy of the set including f.
func (s FormSet) With(f Form) FormSet { return s | 1<<uint(f) }

// Has reports whether f is in the set.
func (s FormSet) Has(f Form) bool { return s&(1<<uint(f)) != 0 }

// Intersects reports whether the two sets share any form.
func (s FormSet) Intersects(o FormSet) bool { return s&o != 0 }

// List returns the forms in ordinal order.
func (s FormSet) List() []Form {
	var out []Form
	for f := FormRaw; f < formCount; f++ {
		if s.Has(f) {
			out = append(out, f)
		}
	}
	return out
}

// Trait is a quality tag assigned to an ingredient.
type Trait int

const (
	TraitPlain Trait = iota
	TraitUndercooked
	TraitOvercooked
	TraitRare
	traitCount
)

var traitNames = [...]string{
	TraitPlain:       "plain",
	TraitUndercooked: "undercooked",
	TraitOvercooked:  "overcooked",
	TraitRare:        "rare",
}

// String returns the lowercase trait name.
func (t Trait) String() string {
	if t < 0 || t >= traitCount {
		return "unknown"
	}
	return traitNames[t]
}

// TraitFromString converts a trait name to a Trait.
func TraitFromString(name string) (Trait, bool) {
	for i, n := range traitNames {
		if n == name {
			return Trait(i), true
		}
	}
	return TraitPlain, false
}

// TraitSet is a small bit set of traits.
type TraitSet uint8

// NewTraitSet builds a set from the given traits.
func NewTraitSet(traits ...Trait) TraitSet {
	var s TraitSet
	for _, t := range traits {
		s = s.With(t)
	}
	return s
}

// With returns a copy of the set including t.
func (s TraitSet) With(t Trait) TraitSet { return s | 1<<uint(t) }

// Has reports whether t is in the set.
func (s TraitSet) Has(t Trait) bool { return s&(1<<uint(t)) != 0 }

// List returns the traits in ordinal order.
func (s TraitSet) List() []Trait {
	var out []Trait
	for t := TraitPlain; t < traitCount; t++ {
		if s.Has(t) {
			out = append(out, t)
		}
	}
	return out
}
