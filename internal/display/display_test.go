package display

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hammamikhairi/cuisine/internal/catalog"
	"github.com/hammamikhairi/cuisine/internal/dish"
	"github.com/hammamikhairi/cuisine/internal/domain"
	"github.com/hammamikhairi/cuisine/internal/logger"
)

type cook struct{}

func (cook) ID() string { return "cook" }

func testCatalog(t *testing.T) *catalog.Registry {
	t.Helper()
	r, err := catalog.Default(logger.New(logger.LevelOff, nil))
	require.NoError(t, err)
	return r
}

func TestCard(t *testing.T) {
	r := testCatalog(t)
	beef, ok := r.Ingredient("beef", domain.FormDiced)
	require.True(t, ok)
	beef.AddTrait(domain.TraitRare)
	beef.SetDoneness(0.5)
	salt, ok := r.Seasoning("salt", 2)
	require.True(t, ok)
	warmth, ok := r.Effect("warmth")
	require.True(t, ok)

	d := dish.New([]*domain.Ingredient{beef}, []*domain.Seasoning{salt},
		[]*domain.Effect{nil, warmth}, 7, 0.6, nil)
	d.SetServes(3)
	d.SetMaxServes(4)

	card := Card(d)
	for _, want := range []string{"beef (diced)", "rare", "50%", "salt ×2", "3/4", "0.60", "Warmth", "unknown 1 · meat 1"} {
		assert.Contains(t, card, want)
	}
}

func TestBuilderCard(t *testing.T) {
	r := testCatalog(t)
	b := dish.NewBuilder()
	ing, _ := r.Ingredient("carrot", domain.FormSliced)
	require.True(t, b.AddIngredient(ing, testWok{}, cook{}))
	water, _ := r.Seasoning("water", 1)
	require.True(t, b.AddSeasoning(water, testWok{}, cook{}))

	card := BuilderCard(b, cook{})
	assert.Contains(t, card, "1/6")
	assert.Contains(t, card, "carrot (sliced)")
	assert.Contains(t, card, "water")
	assert.Contains(t, card, "100")
}

type testWok struct{}

func (testWok) Kind() domain.VesselKind { return domain.VesselWok }

func TestSessionLine(t *testing.T) {
	s := &domain.Session{ID: "abc", Vessel: domain.VesselPot, Status: domain.SessionCompleted, DishID: "d1"}
	line := SessionLine(s)
	assert.Contains(t, line, "abc")
	assert.Contains(t, line, "pot")
	assert.Contains(t, line, "completed")
	assert.Contains(t, line, "d1")
}

func TestRenderBanner(t *testing.T) {
	narrow := RenderBanner(0)
	wide := RenderBanner(200)
	assert.NotEmpty(t, narrow)
	assert.Equal(t, strings.Count(narrow, "\n"), strings.Count(wide, "\n"))
	assert.True(t, strings.HasPrefix(wide, "  "))
}

func TestPrinter(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)
	p.PrintHeader("Catalog")
	p.PrintHint("22 materials")
	p.PrintUrgent("unknown spice")

	out := buf.String()
	assert.Contains(t, out, "Catalog")
	assert.Contains(t, out, "  22 materials")
	assert.Contains(t, out, "  unknown spice")
}
