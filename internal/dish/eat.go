package dish

import (
	"errors"

	"github.com/hammamikhairi/cuisine/internal/config"
	"github.com/hammamikhairi/cuisine/internal/domain"
	"github.com/hammamikhairi/cuisine/internal/effect"
)

// ErrNoServesLeft is returned when eating from an empty dish.
var ErrNoServesLeft = errors.New("dish has no serves left")

// Effects handed out by the bad-skill punishment.
const (
	EffectMiningFatigue = "mining_fatigue"
	EffectWeakness      = "weakness"
	EffectPoison        = "poison"
	EffectNausea        = "nausea"
)

// badSkillShare is the share of poorly cooked ingredients that triggers a
// punishment.
const badSkillShare = 0.8

// Meal is what one serving of a dish gave the eater.
type Meal struct {
	FoodLevel   int
	Saturation  float32
	Effects     []*domain.Effect
	Punishments []effect.Buff
}

// Eat consumes one serving. In hardcore mode with bad-skill punishment
// enabled, a dish made mostly of plain or undercooked ingredients weakens
// the eater and a mostly overcooked one poisons them. A nil effects resolver
// hands out no punishment.
func (d *Dish) Eat(actor domain.Actor, hc config.HardcoreConfig, effects domain.EffectResolver) (Meal, error) {
	if d.serves <= 0 {
		return Meal{}, ErrNoServesLeft
	}
	d.serves--

	meal := Meal{FoodLevel: d.foodLevel, Saturation: d.saturation}
	for _, e := range d.effects {
		if e != nil {
			meal.Effects = append(meal.Effects, e)
		}
	}

	if hc.Enable && hc.BadSkillPunishment && effects != nil && len(d.ingredients) > 0 {
		meal.Punishments = d.punish(effects)
	}
	if b, ok := actor.(effect.Buffable); ok {
		for _, p := range meal.Punishments {
			b.ApplyBuff(p)
		}
	}
	return meal, nil
}

func (d *Dish) punish(effects domain.EffectResolver) []effect.Buff {
	n := len(d.ingredients)
	plain, overcooked := 0, 0
	for _, ing := range d.ingredients {
		if ing.HasTrait(domain.TraitPlain) || ing.HasTrait(domain.TraitUndercooked) {
			plain++
		}
		if ing.HasTrait(domain.TraitOvercooked) {
			overcooked++
		}
	}

	var out []effect.Buff
	if float32(plain)/float32(n) > badSkillShare {
		id := coin(d.rand, EffectMiningFatigue, EffectWeakness)
		if e, ok := effects.Effect(id); ok {
			out = append(out, effect.Buff{Effect: e, Duration: 300 * n})
		}
	}
	if float32(overcooked)/float32(n) > badSkillShare {
		id := coin(d.rand, EffectPoison, EffectNausea)
		if e, ok := effects.Effect(id); ok {
			out = append(out, effect.Buff{Effect: e, Duration: 100 * n})
		}
	}
	return out
}
