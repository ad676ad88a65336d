package dish

import (
	"math"
	"slices"

	"github.com/hammamikhairi/cuisine/internal/config"
	"github.com/hammamikhairi/cuisine/internal/domain"
	"github.com/hammamikhairi/cuisine/internal/effect"
	"github.com/hammamikhairi/cuisine/internal/nutrition"
)

// BuilderTypeID is the persisted type tag of an in-progress dish.
const BuilderTypeID = "cuisine:dish_builder"

// Seasoning keywords with special meaning to the builder.
const (
	KeywordWater = "water"
	KeywordOil   = "oil"
)

// Liquid forms cannot go into a wok dish.
var excludedForms = domain.NewFormSet(domain.FormJuice)

// Compile-time interface check.
var _ domain.Preparation = (*Builder)(nil)

// Settings tunes admission, nutrition and the trait pass.
type Settings struct {
	MaxIngredients    int
	UnskilledRatio    float64
	DefaultServes     int
	MinServes         int
	DistinctMaterials int
	UndercookStep     float32
	BaseHunger        int
	BaseSaturation    float32
	VesselWeights     map[domain.VesselKind]float32
	Hardcore          config.HardcoreConfig
}

// SettingsFrom converts loaded configuration into builder settings.
func SettingsFrom(cfg *config.Config) Settings {
	weights := make(map[domain.VesselKind]float32, len(cfg.Nutrition.VesselWeights))
	for name, w := range cfg.Nutrition.VesselWeights {
		if kind, ok := domain.VesselKindFromString(name); ok {
			weights[kind] = w
		}
	}
	return Settings{
		MaxIngredients:    cfg.Builder.MaxIngredients,
		UnskilledRatio:    cfg.Builder.UnskilledRatio,
		DefaultServes:     cfg.Builder.DefaultServes,
		MinServes:         cfg.Builder.MinServes,
		DistinctMaterials: cfg.Builder.DistinctMaterials,
		UndercookStep:     cfg.Builder.UndercookStep,
		BaseHunger:        cfg.Nutrition.BaseHunger,
		BaseSaturation:    cfg.Nutrition.BaseSaturation,
		VesselWeights:     weights,
		Hardcore:          cfg.Hardcore,
	}
}

// DefaultSettings returns the settings of the embedded default config.
func DefaultSettings() Settings {
	return SettingsFrom(config.Default())
}

// Option configures a Builder.
type Option func(*Builder)

// WithSettings replaces the default settings.
func WithSettings(s Settings) Option {
	return func(b *Builder) {
		b.settings = s
	}
}

// WithSkills sets the skill query used to size the vessel capacity.
// Without one every cook is treated as unskilled.
func WithSkills(q domain.SkillQuery) Option {
	return func(b *Builder) {
		b.skills = q
	}
}

// WithRandom replaces the process random source.
func WithRandom(r domain.RandomSource) Option {
	return func(b *Builder) {
		b.rand = r
	}
}

// Builder accumulates ingredients and seasonings for one dish. It is owned
// by a single cooking session and is not safe for concurrent use.
type Builder struct {
	settings Settings
	skills   domain.SkillQuery
	rand     domain.RandomSource

	ingredients []*domain.Ingredient
	seasonings  []*domain.Seasoning
	effects     []*domain.Effect

	// nil means never set, which persists differently from zero.
	water       *int
	oil         *int
	temperature *int

	completed *Dish
}

// NewBuilder creates an empty builder.
func NewBuilder(opts ...Option) *Builder {
	return Restore(nil, nil, nil, opts...)
}

// Restore creates a builder around existing lists, typically read back from
// a persisted document.
func Restore(ingredients []*domain.Ingredient, seasonings []*domain.Seasoning, effects []*domain.Effect, opts ...Option) *Builder {
	b := &Builder{
		settings:    DefaultSettings(),
		rand:        domain.DefaultRandom(),
		ingredients: slices.Clone(ingredients),
		seasonings:  slices.Clone(seasonings),
		effects:     slices.Clone(effects),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Identifier returns the builder type tag.
func (b *Builder) Identifier() string { return BuilderTypeID }

// Ingredients returns copies of the ingredients added so far, in insertion
// order.
func (b *Builder) Ingredients() []*domain.Ingredient {
	return cloneIngredients(b.ingredients)
}

// Seasonings returns copies of the seasonings added so far, in insertion
// order.
func (b *Builder) Seasonings() []*domain.Seasoning {
	return cloneSeasonings(b.seasonings)
}

// Effects returns the effects carried by the builder.
func (b *Builder) Effects() []*domain.Effect {
	return append([]*domain.Effect(nil), b.effects...)
}

// Water returns the accumulated water volume and whether it was ever set.
func (b *Builder) Water() (int, bool) { return deref(b.water) }

// Oil returns the accumulated oil volume and whether it was ever set.
func (b *Builder) Oil() (int, bool) { return deref(b.oil) }

// Temperature returns the vessel temperature and whether it was ever set.
func (b *Builder) Temperature() (int, bool) { return deref(b.temperature) }

func (b *Builder) SetWater(v int)       { b.water = &v }
func (b *Builder) SetOil(v int)         { b.oil = &v }
func (b *Builder) SetTemperature(v int) { b.temperature = &v }

// Finalized reports whether Finalize has produced a dish.
func (b *Builder) Finalized() bool { return b.completed != nil }

// Capacity returns how many ingredients actor may put into the vessel.
func (b *Builder) Capacity(actor domain.Actor) int {
	limit := b.settings.MaxIngredients
	if b.skills != nil && b.skills.HasLearnedSkill(actor, domain.SkillBiggerSize) {
		return limit
	}
	return int(math.Floor(float64(limit) * b.settings.UnskilledRatio))
}

// CanAdmit reports whether ing may be added. It does not change the builder.
func (b *Builder) CanAdmit(ing *domain.Ingredient, vessel domain.Vessel, actor domain.Actor) bool {
	if b.completed != nil || ing == nil || ing.Material == nil {
		return false
	}
	if excludedForms.Has(ing.Form) {
		return false
	}
	if r, ok := vessel.(domain.FormRestrictor); ok && r.RejectsForm(ing.Form) {
		return false
	}
	if len(b.ingredients) >= b.Capacity(actor) {
		return false
	}
	if a, ok := ing.Material.(domain.Admitter); ok && !a.CanAddInto(b, ing) {
		return false
	}
	return true
}

// AddIngredient appends ing if CanAdmit allows it. A false result is a
// normal rejection and leaves the builder untouched.
func (b *Builder) AddIngredient(ing *domain.Ingredient, vessel domain.Vessel, actor domain.Actor) bool {
	if !b.CanAdmit(ing, vessel, actor) {
		return false
	}
	b.ingredients = append(b.ingredients, ing)
	return true
}

// CanSeason reports whether sn may be added.
func (b *Builder) CanSeason(sn *domain.Seasoning) bool {
	if b.completed != nil || sn == nil || sn.Spice == nil || sn.Size <= 0 {
		return false
	}
	if a, ok := sn.Spice.(domain.SpiceAdmitter); ok && !a.CanSeasonInto(b, sn) {
		return false
	}
	return true
}

// AddSeasoning appends sn. Water and oil seasonings also raise the matching
// liquid volume by size*100.
func (b *Builder) AddSeasoning(sn *domain.Seasoning, vessel domain.Vessel, actor domain.Actor) bool {
	if !b.CanSeason(sn) {
		return false
	}
	b.seasonings = append(b.seasonings, sn)
	if sn.HasKeyword(KeywordWater) {
		b.water = addTo(b.water, sn.Size*100)
	}
	if sn.HasKeyword(KeywordOil) {
		b.oil = addTo(b.oil, sn.Size*100)
	}
	return true
}

// Finalize turns the builder into a dish. It returns false when no
// ingredient was ever added. Later calls return the same dish without
// running any hook again.
func (b *Builder) Finalize(vessel domain.Vessel, actor domain.Actor) (*Dish, bool) {
	if len(b.ingredients) == 0 {
		return nil, false
	}
	if b.completed != nil {
		return b.completed, true
	}

	counter := nutrition.NewCounter(b.settings.BaseHunger, b.settings.BaseSaturation,
		nutrition.WithWeight(b.vesselWeight(vessel)))
	for _, ing := range b.ingredients {
		counter.FeedIngredient(ing, vessel)
	}
	for _, sn := range b.seasonings {
		counter.FeedSeasoning(sn, vessel)
	}

	collector := effect.NewCollector(b.serves(), effect.WithMinServes(b.settings.MinServes))
	b.assignTraits()

	for _, sn := range b.seasonings {
		if hook, ok := sn.Spice.(effect.SpiceHook); ok {
			hook.OnMade(b, sn, vessel, collector)
		}
	}
	for _, ing := range b.ingredients {
		if hook, ok := ing.Material.(effect.MaterialHook); ok {
			hook.OnMade(b, ing, vessel, collector)
		}
	}

	// The dish holds its own copies of the contents.
	d := New(cloneIngredients(b.ingredients), cloneSeasonings(b.seasonings), b.Effects(),
		counter.FoodLevel(), counter.Saturation(), b.rand)
	// A fresh collector cannot be spent yet.
	_ = collector.Apply(d, actor)
	d.ModelType()

	b.completed = d
	return d, true
}

// serves starts from the default and drops when too few distinct materials
// were used.
func (b *Builder) serves() int {
	distinct := make(map[string]struct{}, len(b.ingredients))
	for _, ing := range b.ingredients {
		distinct[ing.Material.ID()] = struct{}{}
	}
	serves := b.settings.DefaultServes
	if n := len(distinct); n < b.settings.DistinctMaterials {
		serves -= (b.settings.DistinctMaterials-n)*3 + b.rand.IntN(3)
	}
	return max(serves, b.settings.MinServes)
}

// Plain reports whether the dish is under-seasoned. The ratio uses integer
// division at every step.
func (b *Builder) Plain() bool {
	seasoningSize, waterSize := 0, 0
	for _, sn := range b.seasonings {
		if sn.HasKeyword(KeywordWater) {
			waterSize += sn.Size
		} else if !sn.HasKeyword(KeywordOil) {
			seasoningSize += sn.Size
		}
	}
	return seasoningSize == 0 || (len(b.ingredients)/seasoningSize)/(1+waterSize/3) > 3
}

func (b *Builder) assignTraits() {
	plain := b.Plain()
	for _, ing := range b.ingredients {
		cats := ing.Material.Categories()
		if cats.Has(domain.CategorySeafood) || cats.Has(domain.CategoryFruit) {
			continue
		}
		if plain {
			ing.AddTrait(domain.TraitPlain)
		}
		if !ing.Material.ValidForms().Intersects(domain.SizeReducingForms) || ing.HasTrait(domain.TraitOvercooked) {
			continue
		}
		if b.rand.Float32() > b.settings.UndercookStep*float32(ing.Form+1) {
			ing.AddTrait(domain.TraitUndercooked)
		}
	}
}

func (b *Builder) vesselWeight(v domain.Vessel) float32 {
	if v == nil {
		return 1
	}
	if w, ok := b.settings.VesselWeights[v.Kind()]; ok {
		return w
	}
	return 1
}

func deref(p *int) (int, bool) {
	if p == nil {
		return 0, false
	}
	return *p, true
}

func addTo(p *int, delta int) *int {
	v := delta
	if p != nil {
		v += *p
	}
	return &v
}
