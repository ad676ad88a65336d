package catalog

import (
	"fmt"
	"slices"

	"github.com/hammamikhairi/cuisine/internal/domain"
	"github.com/hammamikhairi/cuisine/internal/effect"
)

// Behaviour names selectable from catalogue rows.
const (
	BehaviourSimple  = "simple"
	BehaviourRice    = "rice"
	BehaviourHearty  = "hearty"
	BehaviourUnique  = "unique"
	BehaviourTonic   = "tonic"
	BehaviourSugar   = "sugar"
	BehaviourVinegar = "vinegar"
	BehaviourChili   = "chili"
)

type materialFactory func(spec domain.MaterialSpec, e *domain.Effect) domain.Material

type spiceFactory func(base *domain.SimpleSpice, e *domain.Effect) domain.Spice

var materialBehaviours = map[string]materialFactory{
	BehaviourSimple: func(spec domain.MaterialSpec, _ *domain.Effect) domain.Material {
		return domain.NewSimpleMaterial(spec)
	},
	BehaviourRice: func(spec domain.MaterialSpec, _ *domain.Effect) domain.Material {
		return &riceMaterial{domain.NewSimpleMaterial(spec)}
	},
	BehaviourHearty: func(spec domain.MaterialSpec, _ *domain.Effect) domain.Material {
		return &heartyMaterial{domain.NewSimpleMaterial(spec)}
	},
	BehaviourUnique: func(spec domain.MaterialSpec, _ *domain.Effect) domain.Material {
		return &uniqueMaterial{domain.NewSimpleMaterial(spec)}
	},
	BehaviourTonic: func(spec domain.MaterialSpec, e *domain.Effect) domain.Material {
		return &tonicMaterial{SimpleMaterial: domain.NewSimpleMaterial(spec), effect: e}
	},
}

var spiceBehaviours = map[string]spiceFactory{
	BehaviourSimple: func(base *domain.SimpleSpice, _ *domain.Effect) domain.Spice { return base },
	BehaviourSugar:  func(base *domain.SimpleSpice, _ *domain.Effect) domain.Spice { return &sugarSpice{base} },
	BehaviourVinegar: func(base *domain.SimpleSpice, _ *domain.Effect) domain.Spice {
		return &vinegarSpice{base}
	},
	BehaviourChili: func(base *domain.SimpleSpice, e *domain.Effect) domain.Spice {
		return &chiliSpice{SimpleSpice: base, effect: e}
	},
}

// NewMaterial builds a material with the named behaviour. Tonic materials
// need an effect.
func NewMaterial(behaviour string, spec domain.MaterialSpec, e *domain.Effect) (domain.Material, error) {
	if behaviour == "" {
		behaviour = BehaviourSimple
	}
	f, ok := materialBehaviours[behaviour]
	if !ok {
		return nil, fmt.Errorf("material %q: unknown behaviour %q", spec.ID, behaviour)
	}
	if behaviour == BehaviourTonic && e == nil {
		return nil, fmt.Errorf("material %q: tonic behaviour needs an effect", spec.ID)
	}
	return f(spec, e), nil
}

// Spice is a registry entry: the spice behaviour plus the keywords every
// seasoning made from it carries.
type Spice struct {
	impl     domain.Spice
	keywords []string
}

// NewSpice builds a spice with the named behaviour. Chili spices need an
// effect.
func NewSpice(behaviour, id string, color int32, e *domain.Effect, keywords ...string) (*Spice, error) {
	if behaviour == "" {
		behaviour = BehaviourSimple
	}
	f, ok := spiceBehaviours[behaviour]
	if !ok {
		return nil, fmt.Errorf("spice %q: unknown behaviour %q", id, behaviour)
	}
	if behaviour == BehaviourChili && e == nil {
		return nil, fmt.Errorf("spice %q: chili behaviour needs an effect", id)
	}
	return &Spice{impl: f(domain.NewSimpleSpice(id, color), e), keywords: keywords}, nil
}

func (s *Spice) ID() string   { return s.impl.ID() }
func (s *Spice) Color() int32 { return s.impl.Color() }

// Keywords returns the default seasoning keywords.
func (s *Spice) Keywords() []string { return slices.Clone(s.keywords) }

func (s *Spice) behaviour() domain.Spice { return s.impl }

// riceMaterial makes the dish quicker to eat.
type riceMaterial struct{ *domain.SimpleMaterial }

func (m *riceMaterial) OnMade(_ domain.Preparation, _ *domain.Ingredient, _ domain.Vessel, s effect.Sink) {
	effect.Add(s, effect.UseDuration, float32(0.4))
}

// heartyMaterial is more filling once finely processed.
type heartyMaterial struct{ *domain.SimpleMaterial }

func (m *heartyMaterial) OnCooked(ing *domain.Ingredient, _ domain.Vessel, s effect.Sink) {
	if ing.Form == domain.FormMinced || ing.Form == domain.FormPaste {
		effect.Add(s, effect.Hunger, 1)
	}
}

// uniqueMaterial allows one ingredient of its kind per dish.
type uniqueMaterial struct{ *domain.SimpleMaterial }

func (m *uniqueMaterial) CanAddInto(p domain.Preparation, _ *domain.Ingredient) bool {
	for _, ing := range p.Ingredients() {
		if ing.Material.ID() == m.ID() {
			return false
		}
	}
	return true
}

// tonicMaterial attaches its effect to the dish.
type tonicMaterial struct {
	*domain.SimpleMaterial
	effect *domain.Effect
}

func (m *tonicMaterial) OnMade(_ domain.Preparation, _ *domain.Ingredient, _ domain.Vessel, s effect.Sink) {
	effect.Add(s, effect.StatusEffect, m.effect)
}

// sugarSpice adds hunger proportional to its size.
type sugarSpice struct{ *domain.SimpleSpice }

func (sp *sugarSpice) OnCooked(sn *domain.Seasoning, _ domain.Vessel, s effect.Sink) {
	effect.Add(s, effect.Hunger, sn.Size)
}

// vinegarSpice makes the dish quicker to eat.
type vinegarSpice struct{ *domain.SimpleSpice }

func (sp *vinegarSpice) OnMade(_ domain.Preparation, sn *domain.Seasoning, _ domain.Vessel, s effect.Sink) {
	effect.Add(s, effect.UseDuration, -0.1*float32(sn.Size))
}

// chiliSpice warms the cook and the dish.
type chiliSpice struct {
	*domain.SimpleSpice
	effect *domain.Effect
}

func (sp *chiliSpice) OnMade(_ domain.Preparation, sn *domain.Seasoning, _ domain.Vessel, s effect.Sink) {
	effect.Add(s, effect.StatusEffect, sp.effect)
	effect.Add(s, effect.ActorBuff, effect.Buff{Effect: sp.effect, Duration: 200 * sn.Size})
}
