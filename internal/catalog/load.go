package catalog

import (
	"embed"
	"fmt"
	"io"
	"strings"

	"github.com/gocarina/gocsv"

	"github.com/hammamikhairi/cuisine/internal/domain"
	"github.com/hammamikhairi/cuisine/internal/logger"
)

//go:embed data/*.csv
var builtin embed.FS

// MaterialRow is one line of a materials catalogue. Categories and forms
// are "|"-separated names; an empty form list means every form.
type MaterialRow struct {
	ID         string  `csv:"id"`
	Color      int32   `csv:"color"`
	Heal       int     `csv:"heal"`
	Saturation float32 `csv:"saturation"`
	Categories string  `csv:"categories"`
	Forms      string  `csv:"forms"`
	Behaviour  string  `csv:"behavior"`
	Effect     string  `csv:"effect"`
}

// SpiceRow is one line of a spices catalogue.
type SpiceRow struct {
	ID        string `csv:"id"`
	Color     int32  `csv:"color"`
	Keywords  string `csv:"keywords"`
	Behaviour string `csv:"behavior"`
	Effect    string `csv:"effect"`
}

// EffectRow is one line of an effects catalogue.
type EffectRow struct {
	ID   string `csv:"id"`
	Name string `csv:"name"`
	Kind string `csv:"kind"`
}

// Sources holds the three catalogue streams. Nil streams are skipped.
type Sources struct {
	Effects   io.Reader
	Materials io.Reader
	Spices    io.Reader
}

// Default returns a registry loaded with the built-in catalogue.
func Default(log *logger.Logger) (*Registry, error) {
	open := func(name string) (io.Reader, error) {
		f, err := builtin.Open("data/" + name)
		if err != nil {
			return nil, fmt.Errorf("opening built-in %s: %w", name, err)
		}
		return f, nil
	}
	var src Sources
	var err error
	if src.Effects, err = open("effects.csv"); err != nil {
		return nil, err
	}
	if src.Materials, err = open("materials.csv"); err != nil {
		return nil, err
	}
	if src.Spices, err = open("spices.csv"); err != nil {
		return nil, err
	}

	r := NewRegistry(log)
	if err := r.Load(src); err != nil {
		return nil, err
	}
	return r, nil
}

// Load registers every row of src. Effects are loaded first so materials
// and spices can reference them.
func (r *Registry) Load(src Sources) error {
	if src.Effects != nil {
		var rows []*EffectRow
		if err := gocsv.Unmarshal(src.Effects, &rows); err != nil {
			return fmt.Errorf("parsing effects: %w", err)
		}
		for _, row := range rows {
			if err := r.RegisterEffect(row.effect()); err != nil {
				return err
			}
		}
	}

	if src.Materials != nil {
		var rows []*MaterialRow
		if err := gocsv.Unmarshal(src.Materials, &rows); err != nil {
			return fmt.Errorf("parsing materials: %w", err)
		}
		for _, row := range rows {
			m, err := r.materialFromRow(row)
			if err != nil {
				return err
			}
			if err := r.RegisterMaterial(m); err != nil {
				return err
			}
		}
	}

	if src.Spices != nil {
		var rows []*SpiceRow
		if err := gocsv.Unmarshal(src.Spices, &rows); err != nil {
			return fmt.Errorf("parsing spices: %w", err)
		}
		for _, row := range rows {
			e, err := r.optionalEffect(row.ID, row.Effect)
			if err != nil {
				return err
			}
			s, err := NewSpice(row.Behaviour, row.ID, row.Color, e, splitList(row.Keywords)...)
			if err != nil {
				return err
			}
			if err := r.RegisterSpice(s); err != nil {
				return err
			}
		}
	}

	r.log.Info("catalogue loaded: %d materials, %d spices, %d effects",
		len(r.materials), len(r.spices), len(r.effects))
	return nil
}

// ExportMaterials writes the registered materials as CSV.
func (r *Registry) ExportMaterials(w io.Writer) error {
	materials := r.Materials()
	rows := make([]*MaterialRow, 0, len(materials))
	for _, m := range materials {
		rows = append(rows, &MaterialRow{
			ID:         m.ID(),
			Color:      m.Color(),
			Heal:       m.BaseHeal(),
			Saturation: m.SaturationModifier(),
			Categories: joinNames(m.Categories().List()),
			Forms:      joinNames(m.ValidForms().List()),
		})
	}
	if err := gocsv.Marshal(rows, w); err != nil {
		return fmt.Errorf("writing materials: %w", err)
	}
	return nil
}

func (r *Registry) materialFromRow(row *MaterialRow) (domain.Material, error) {
	spec := domain.MaterialSpec{
		ID:         row.ID,
		Color:      row.Color,
		BaseHeal:   row.Heal,
		Saturation: row.Saturation,
	}
	for _, name := range splitList(row.Categories) {
		c, ok := domain.CategoryFromString(name)
		if !ok {
			return nil, fmt.Errorf("material %q: unknown category %q", row.ID, name)
		}
		spec.Categories = spec.Categories.With(c)
	}
	for _, name := range splitList(row.Forms) {
		f, ok := domain.FormFromString(name)
		if !ok {
			return nil, fmt.Errorf("material %q: unknown form %q", row.ID, name)
		}
		spec.Forms = spec.Forms.With(f)
	}
	e, err := r.optionalEffect(row.ID, row.Effect)
	if err != nil {
		return nil, err
	}
	return NewMaterial(row.Behaviour, spec, e)
}

func (r *Registry) optionalEffect(owner, id string) (*domain.Effect, error) {
	if id == "" {
		return nil, nil
	}
	e, ok := r.Effect(id)
	if !ok {
		return nil, fmt.Errorf("%s: effect %q: %w", owner, id, domain.ErrNotFound)
	}
	return e, nil
}

func (row *EffectRow) effect() *domain.Effect {
	kind := domain.EffectStatus
	if row.Kind == domain.EffectModifier.String() {
		kind = domain.EffectModifier
	}
	return &domain.Effect{ID: row.ID, Name: row.Name, Kind: kind}
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, "|") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func joinNames[T fmt.Stringer](items []T) string {
	names := make([]string, len(items))
	for i, it := range items {
		names[i] = it.String()
	}
	return strings.Join(names, "|")
}
