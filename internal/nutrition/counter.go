// Package nutrition computes the hunger and saturation values of a
// composite food. The pass is purely additive and never random.
package nutrition

import (
	"slices"

	"github.com/hammamikhairi/cuisine/internal/config"
	"github.com/hammamikhairi/cuisine/internal/domain"
	"github.com/hammamikhairi/cuisine/internal/effect"
)

// Compile-time interface check.
var _ effect.Sink = (*Counter)(nil)

// Option configures a Counter.
type Option func(*Counter)

// WithWeight scales the accumulated contributions, e.g. per vessel kind.
func WithWeight(w float32) Option {
	return func(c *Counter) {
		if w > 0 {
			c.weight = w
		}
	}
}

// Counter sums hunger and saturation contributions fed to it in order.
type Counter struct {
	baseHunger     int
	baseSaturation float32
	weight         float32

	hunger     int
	saturation float32
}

// NewCounter creates a counter seeded with the given base values.
func NewCounter(baseHunger int, baseSaturation float32, opts ...Option) *Counter {
	c := &Counter{
		baseHunger:     baseHunger,
		baseSaturation: baseSaturation,
		weight:         1,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Push accepts the Hunger and Saturation channels and ignores the rest.
func (c *Counter) Push(channel string, value any) {
	switch channel {
	case effect.Hunger.Name():
		if v, ok := value.(int); ok {
			c.hunger += v
		}
	case effect.Saturation.Name():
		if v, ok := value.(float32); ok {
			c.saturation += v
		}
	}
}

// FeedIngredient adds the material's base values, then lets the material
// push extra deltas.
func (c *Counter) FeedIngredient(ing *domain.Ingredient, v domain.Vessel) {
	m := ing.Material
	c.hunger += m.BaseHeal()
	c.saturation += m.SaturationModifier()
	if hook, ok := m.(effect.MaterialNutrition); ok {
		hook.OnCooked(ing, v, c)
	}
}

// FeedSeasoning lets the spice push nutrition deltas. Plain spices add
// nothing.
func (c *Counter) FeedSeasoning(sn *domain.Seasoning, v domain.Vessel) {
	if hook, ok := sn.Spice.(effect.SpiceNutrition); ok {
		hook.OnCooked(sn, v, c)
	}
}

// FoodLevel returns the weighted hunger restore level.
func (c *Counter) FoodLevel() int {
	return c.baseHunger + int(float32(c.hunger)*c.weight)
}

// Saturation returns the weighted saturation modifier.
func (c *Counter) Saturation() float32 {
	return c.baseSaturation + c.saturation*c.weight
}

// Retain scales the values of a foreign food by ratio, keeping at least one
// point of hunger. Hardcore mode uses it to make plain foods less filling.
func Retain(level int, saturation float32, ratio float64) (int, float32) {
	scaled := max(1, int(float64(level)*ratio))
	return scaled, float32(float64(saturation) * ratio)
}

// AdjustForeign applies the hardcore retain ratio to a food that was not
// cooked through a builder. Blacklisted food IDs keep their values.
func AdjustForeign(hc config.HardcoreConfig, foodID string, level int, saturation float32) (int, float32) {
	if !hc.Enable || !hc.LowerFoodLevel || slices.Contains(hc.LowerFoodLevelBlacklist, foodID) {
		return level, saturation
	}
	return Retain(level, saturation, hc.FoodLevelRetainRatio)
}
