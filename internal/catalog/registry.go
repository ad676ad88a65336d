// Package catalog provides the content registry of materials, spices and
// effects. A Registry is built once at startup and passed to the builder and
// codec; it has no teardown.
package catalog

import (
	"fmt"
	"sort"
	"sync"

	"github.com/agnivade/levenshtein"

	"github.com/hammamikhairi/cuisine/internal/domain"
	"github.com/hammamikhairi/cuisine/internal/logger"
)

// Compile-time interface check.
var _ domain.EffectResolver = (*Registry)(nil)

// Registry holds materials, spices and effects keyed by ID. Lookups are
// safe for concurrent use; registration is expected to finish before the
// registry is shared.
type Registry struct {
	mu        sync.RWMutex
	materials map[string]domain.Material
	spices    map[string]*Spice
	effects   map[string]*domain.Effect
	log       *logger.Logger
}

// NewRegistry creates an empty registry.
func NewRegistry(log *logger.Logger) *Registry {
	return &Registry{
		materials: make(map[string]domain.Material),
		spices:    make(map[string]*Spice),
		effects:   make(map[string]*domain.Effect),
		log:       log,
	}
}

// RegisterMaterial adds m. IDs must be unique.
func (r *Registry) RegisterMaterial(m domain.Material) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.materials[m.ID()]; ok {
		return fmt.Errorf("material %q: %w", m.ID(), domain.ErrAlreadyExists)
	}
	r.materials[m.ID()] = m
	r.log.Debug("registered material %s", m.ID())
	return nil
}

// RegisterSpice adds s. IDs must be unique.
func (r *Registry) RegisterSpice(s *Spice) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.spices[s.ID()]; ok {
		return fmt.Errorf("spice %q: %w", s.ID(), domain.ErrAlreadyExists)
	}
	r.spices[s.ID()] = s
	r.log.Debug("registered spice %s", s.ID())
	return nil
}

// RegisterEffect adds e. IDs must be unique.
func (r *Registry) RegisterEffect(e *domain.Effect) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.effects[e.ID]; ok {
		return fmt.Errorf("effect %q: %w", e.ID, domain.ErrAlreadyExists)
	}
	r.effects[e.ID] = e
	r.log.Debug("registered effect %s", e.ID)
	return nil
}

// Material looks up a material by ID.
func (r *Registry) Material(id string) (domain.Material, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	m, ok := r.materials[id]
	return m, ok
}

// Spice looks up a spice by ID. The result is a domain.Spice so a missing
// spice is a true nil interface.
func (r *Registry) Spice(id string) (domain.Spice, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.spices[id]
	if !ok {
		return nil, false
	}
	return s.behaviour(), true
}

// Effect looks up an effect by ID.
func (r *Registry) Effect(id string) (*domain.Effect, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	e, ok := r.effects[id]
	return e, ok
}

// Ingredient creates a fresh ingredient of material id in the given form.
func (r *Registry) Ingredient(id string, form domain.Form) (*domain.Ingredient, bool) {
	m, ok := r.Material(id)
	if !ok {
		return nil, false
	}
	return domain.NewIngredient(m, form), true
}

// Seasoning creates a seasoning of spice id carrying the spice's default
// keywords.
func (r *Registry) Seasoning(id string, size int) (*domain.Seasoning, bool) {
	r.mu.RLock()
	s, ok := r.spices[id]
	r.mu.RUnlock()
	if !ok {
		return nil, false
	}
	return domain.NewSeasoning(s.behaviour(), size, s.Keywords()...), true
}

// Materials returns every material sorted by ID.
func (r *Registry) Materials() []domain.Material {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]domain.Material, 0, len(r.materials))
	for _, m := range r.materials {
		out = append(out, m)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID() < out[j].ID() })
	return out
}

// Spices returns every spice sorted by ID.
func (r *Registry) Spices() []*Spice {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*Spice, 0, len(r.spices))
	for _, s := range r.spices {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID() < out[j].ID() })
	return out
}

// Effects returns every effect sorted by ID.
func (r *Registry) Effects() []*domain.Effect {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*domain.Effect, 0, len(r.effects))
	for _, e := range r.effects {
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Suggest returns up to limit registered material or spice IDs close to id,
// best match first.
func (r *Registry) Suggest(id string, limit int) []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	type scored struct {
		val  string
		dist int
	}
	maxDist := max(2, len(id)/3)
	var results []scored
	consider := func(cand string) {
		if d := levenshtein.ComputeDistance(id, cand); d <= maxDist {
			results = append(results, scored{val: cand, dist: d})
		}
	}
	for cand := range r.materials {
		consider(cand)
	}
	for cand := range r.spices {
		consider(cand)
	}

	sort.Slice(results, func(i, j int) bool {
		if results[i].dist == results[j].dist {
			return results[i].val < results[j].val
		}
		return results[i].dist < results[j].dist
	})
	if len(results) > limit {
		results = results[:limit]
	}
	out := make([]string, len(results))
	for i, s := range results {
		out[i] = s.val
	}
	return out
}
