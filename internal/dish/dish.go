// Package dish implements the wok dish: a composite food assembled from
// ingredients and seasonings by a Builder.
package dish

import (
	"github.com/hammamikhairi/cuisine/internal/domain"
	"github.com/hammamikhairi/cuisine/internal/effect"
)

// TypeID is the persisted type tag of a finished dish.
const TypeID = "cuisine:dish"

// Compile-time interface check.
var _ effect.Target = (*Dish)(nil)

// Dish is a finished composite food. Its ingredient and seasoning lists
// never change after construction.
type Dish struct {
	ingredients []*domain.Ingredient
	seasonings  []*domain.Seasoning
	effects     []*domain.Effect

	foodLevel   int
	saturation  float32
	serves      int
	maxServes   int
	useDuration float32

	modelType string
	rand      domain.RandomSource
}

// New creates a dish that takes ownership of the given lists. Nil entries
// in effects are kept as explicit gaps.
func New(ingredients []*domain.Ingredient, seasonings []*domain.Seasoning, effects []*domain.Effect, foodLevel int, saturation float32, rand domain.RandomSource) *Dish {
	if rand == nil {
		rand = domain.DefaultRandom()
	}
	return &Dish{
		ingredients: ingredients,
		seasonings:  seasonings,
		effects:     effects,
		foodLevel:   foodLevel,
		saturation:  saturation,
		useDuration: 1,
		rand:        rand,
	}
}

// Identifier returns the dish type tag.
func (d *Dish) Identifier() string { return TypeID }

// Keywords describes the cuisine style of the dish.
func (d *Dish) Keywords() []string { return []string{"east-asian", "wok"} }

// Ingredients returns copies of the dish's ingredients, in insertion order.
func (d *Dish) Ingredients() []*domain.Ingredient {
	return cloneIngredients(d.ingredients)
}

// Seasonings returns copies of the dish's seasonings, in insertion order.
func (d *Dish) Seasonings() []*domain.Seasoning {
	return cloneSeasonings(d.seasonings)
}

// Effects returns the dish's effects. A nil entry marks an effect that
// could not be resolved when the dish was read back.
func (d *Dish) Effects() []*domain.Effect {
	return append([]*domain.Effect(nil), d.effects...)
}

func (d *Dish) FoodLevel() int               { return d.foodLevel }
func (d *Dish) SaturationModifier() float32  { return d.saturation }
func (d *Dish) Serves() int                  { return d.serves }
func (d *Dish) MaxServes() int               { return d.maxServes }
func (d *Dish) UseDurationModifier() float32 { return d.useDuration }

func (d *Dish) SetServes(n int)                  { d.serves = n }
func (d *Dish) SetMaxServes(n int)               { d.maxServes = n }
func (d *Dish) SetUseDurationModifier(v float32) { d.useDuration = v }

// AddEffect attaches an effect.
func (d *Dish) AddEffect(e *domain.Effect) { d.effects = append(d.effects, e) }

// CategoryTally counts material categories across the ingredients. Rare
// ingredients add one to CategoryUnknown.
func (d *Dish) CategoryTally() map[domain.Category]int {
	tally := make(map[domain.Category]int)
	for _, ing := range d.ingredients {
		for _, c := range ing.Material.Categories().List() {
			tally[c]++
		}
		if ing.HasTrait(domain.TraitRare) {
			tally[domain.CategoryUnknown]++
		}
	}
	return tally
}

func cloneIngredients(ings []*domain.Ingredient) []*domain.Ingredient {
	if ings == nil {
		return nil
	}
	out := make([]*domain.Ingredient, len(ings))
	for i, ing := range ings {
		out[i] = ing.Clone()
	}
	return out
}

func cloneSeasonings(sns []*domain.Seasoning) []*domain.Seasoning {
	if sns == nil {
		return nil
	}
	out := make([]*domain.Seasoning, len(sns))
	for i, sn := range sns {
		out[i] = sn.Clone()
	}
	return out
}
