package effect

import "github.com/hammamikhairi/cuisine/internal/domain"

// MaterialHook is an optional Material capability invoked once per
// ingredient after traits have been assigned.
type MaterialHook interface {
	OnMade(p domain.Preparation, ing *domain.Ingredient, v domain.Vessel, s Sink)
}

// SpiceHook is an optional Spice capability invoked once per seasoning
// after traits have been assigned.
type SpiceHook interface {
	OnMade(p domain.Preparation, sn *domain.Seasoning, v domain.Vessel, s Sink)
}

// MaterialNutrition is an optional Material capability that pushes extra
// Hunger or Saturation deltas during the nutrition pass.
type MaterialNutrition interface {
	OnCooked(ing *domain.Ingredient, v domain.Vessel, s Sink)
}

// SpiceNutrition is the Spice counterpart of MaterialNutrition.
type SpiceNutrition interface {
	OnCooked(sn *domain.Seasoning, v domain.Vessel, s Sink)
}
