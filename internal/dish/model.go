package dish

import "github.com/hammamikhairi/cuisine/internal/domain"

// Model types. Renderers pick a plate model from these names.
const (
	ModelFish   = "fish0"
	ModelRice   = "rice0"
	ModelMeat0  = "meat0"
	ModelMeat1  = "meat1"
	ModelVeges0 = "veges0"
	ModelVeges1 = "veges1"
	ModelMixed0 = "mixed0"
	ModelMixed1 = "mixed1"
)

// ModelType returns the dish's model type, computing and caching it on
// first use. Once set it never changes unless SetModelType is called.
func (d *Dish) ModelType() string {
	if d.modelType != "" {
		return d.modelType
	}
	d.modelType = classify(d.ingredients, d.rand)
	return d.modelType
}

// HasModelType reports whether the model type has been computed or set.
func (d *Dish) HasModelType() bool { return d.modelType != "" }

// SetModelType overrides the cached model type. Used when reading a
// persisted dish.
func (d *Dish) SetModelType(t string) { d.modelType = t }

// classify checks fish, then rice, then meat, then vegetables.
func classify(ings []*domain.Ingredient, rand domain.RandomSource) string {
	switch {
	case allUnder(ings, domain.CategoryFish):
		return ModelFish
	case containsRice(ings):
		return ModelRice
	case allUnder(ings, domain.CategoryMeat):
		return coin(rand, ModelMeat0, ModelMeat1)
	case allUnder(ings, domain.CategoryVegetables):
		return coin(rand, ModelVeges0, ModelVeges1)
	default:
		return coin(rand, ModelMixed0, ModelMixed1)
	}
}

// allUnder is false for an empty list, so a dish with no contents is mixed.
func allUnder(ings []*domain.Ingredient, c domain.Category) bool {
	if len(ings) == 0 {
		return false
	}
	for _, ing := range ings {
		if !domain.IsUnderCategory(ing.Material, c) {
			return false
		}
	}
	return true
}

func containsRice(ings []*domain.Ingredient) bool {
	for _, ing := range ings {
		if ing.Material.ID() == domain.RiceID {
			return true
		}
	}
	return false
}

func coin(rand domain.RandomSource, heads, tails string) string {
	if rand.IntN(2) == 0 {
		return heads
	}
	return tails
}
