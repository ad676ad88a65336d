package kitchen

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/hammamikhairi/cuisine/internal/catalog"
	"github.com/hammamikhairi/cuisine/internal/codec"
	"github.com/hammamikhairi/cuisine/internal/config"
	"github.com/hammamikhairi/cuisine/internal/dish"
	"github.com/hammamikhairi/cuisine/internal/domain"
	"github.com/hammamikhairi/cuisine/internal/logger"
	"github.com/hammamikhairi/cuisine/internal/storage"
	"github.com/hammamikhairi/cuisine/internal/wire"
)

type fixedRand struct{}

func (fixedRand) IntN(int) int     { return 0 }
func (fixedRand) Float32() float32 { return 0.5 }

type wok struct {
	pos domain.Position
}

func (w wok) Kind() domain.VesselKind   { return domain.VesselWok }
func (w wok) Position() domain.Position { return w.pos }

type cook struct{}

func (cook) ID() string { return "cook" }

type recorder struct {
	messages [][]byte
	err      error
}

func (r *recorder) Publish(ctx context.Context, data []byte) error {
	r.messages = append(r.messages, data)
	return r.err
}

func setupKitchen(t *testing.T, opts ...Option) (*Kitchen, context.Context) {
	t.Helper()
	log := logger.New(logger.LevelOff, nil)
	registry, err := catalog.Default(log)
	if err != nil {
		t.Fatalf("loading catalog: %v", err)
	}
	opts = append([]Option{WithRandom(fixedRand{})}, opts...)
	k := New(registry, storage.NewMemoryStore(log), storage.NewMemoryDishStore(log), log, opts...)
	return k, context.Background()
}

func TestOpen(t *testing.T) {
	start := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	k, ctx := setupKitchen(t, WithClock(func() time.Time { return start }))

	session, err := k.Open(ctx, wok{})
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if session.ID == "" {
		t.Fatal("session ID is empty")
	}
	if session.Vessel != domain.VesselWok {
		t.Fatalf("expected wok, got %s", session.Vessel)
	}
	if !session.StartedAt.Equal(start) {
		t.Fatalf("expected start %v, got %v", start, session.StartedAt)
	}

	active, err := k.Active(ctx)
	if err != nil {
		t.Fatalf("active: %v", err)
	}
	if len(active) != 1 {
		t.Fatalf("expected 1 active session, got %d", len(active))
	}
}

func TestAddIngredient(t *testing.T) {
	k, ctx := setupKitchen(t)
	session, err := k.Open(ctx, wok{})
	if err != nil {
		t.Fatalf("open: %v", err)
	}

	tests := []struct {
		name     string
		material string
		form     domain.Form
		wantErr  error
	}{
		{"registered material", "beef", domain.FormDiced, nil},
		{"second material", "carrot", domain.FormSliced, nil},
		{"unknown material", "beeef", domain.FormRaw, domain.ErrNotFound},
		{"excluded form", "apple", domain.FormJuice, domain.ErrRejected},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := k.AddIngredient(ctx, session.ID, tt.material, tt.form, cook{})
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("expected %v, got %v", tt.wantErr, err)
			}
		})
	}

	b, err := k.Builder(ctx, session.ID)
	if err != nil {
		t.Fatalf("builder: %v", err)
	}
	if n := len(b.Ingredients()); n != 2 {
		t.Fatalf("expected 2 ingredients, got %d", n)
	}
}

func TestUnknownMaterialSuggests(t *testing.T) {
	k, ctx := setupKitchen(t)
	session, _ := k.Open(ctx, wok{})

	err := k.AddIngredient(ctx, session.ID, "chiken", domain.FormRaw, cook{})
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if !strings.Contains(err.Error(), "chicken") {
		t.Fatalf("expected suggestion in %q", err)
	}

	err = k.AddSeasoning(ctx, session.ID, "zzzzzzzz", 1, cook{})
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestCapacityRejects(t *testing.T) {
	k, ctx := setupKitchen(t)
	session, _ := k.Open(ctx, wok{})

	// Without the bigger size skill a wok holds floor(0.75 * 8) ingredients.
	for i := 0; i < 6; i++ {
		if err := k.AddIngredient(ctx, session.ID, "beef", domain.FormSliced, cook{}); err != nil {
			t.Fatalf("add %d: %v", i+1, err)
		}
	}
	err := k.AddIngredient(ctx, session.ID, "beef", domain.FormSliced, cook{})
	if !errors.Is(err, domain.ErrRejected) {
		t.Fatalf("expected ErrRejected, got %v", err)
	}
}

func TestAddSeasoning(t *testing.T) {
	k, ctx := setupKitchen(t)
	session, _ := k.Open(ctx, wok{})

	if err := k.AddSeasoning(ctx, session.ID, "water", 2, cook{}); err != nil {
		t.Fatalf("season: %v", err)
	}
	if err := k.AddSeasoning(ctx, session.ID, "salt", 0, cook{}); !errors.Is(err, domain.ErrRejected) {
		t.Fatalf("expected ErrRejected for empty seasoning, got %v", err)
	}

	b, _ := k.Builder(ctx, session.ID)
	water, ok := b.Water()
	if !ok || water != 200 {
		t.Fatalf("expected water 200, got %d (set=%v)", water, ok)
	}
}

func TestFinish(t *testing.T) {
	pub := &recorder{}
	k, ctx := setupKitchen(t, WithPublisher(pub))
	vessel := wok{pos: domain.Position{X: 4, Y: 70, Z: -12}}

	session, _ := k.Open(ctx, vessel)
	if err := k.AddIngredient(ctx, session.ID, "beef", domain.FormDiced, cook{}); err != nil {
		t.Fatalf("add beef: %v", err)
	}
	if err := k.AddIngredient(ctx, session.ID, "carrot", domain.FormSliced, cook{}); err != nil {
		t.Fatalf("add carrot: %v", err)
	}
	if err := k.AddSeasoning(ctx, session.ID, "salt", 2, cook{}); err != nil {
		t.Fatalf("season: %v", err)
	}

	dishID, d, err := k.Finish(ctx, session.ID, cook{})
	if err != nil {
		t.Fatalf("finish: %v", err)
	}
	if dishID == "" || d == nil {
		t.Fatal("expected a stored dish")
	}

	s, err := k.Status(ctx, session.ID)
	if err != nil {
		t.Fatalf("status: %v", err)
	}
	if s.Status != domain.SessionCompleted {
		t.Fatalf("expected completed, got %s", s.Status)
	}
	if s.DishID != dishID {
		t.Fatalf("expected dish %s on session, got %s", dishID, s.DishID)
	}

	// The session no longer accepts anything.
	err = k.AddIngredient(ctx, session.ID, "beef", domain.FormDiced, cook{})
	if !errors.Is(err, domain.ErrSessionClosed) {
		t.Fatalf("expected ErrSessionClosed, got %v", err)
	}
	if _, _, err := k.Finish(ctx, session.ID, cook{}); !errors.Is(err, domain.ErrSessionClosed) {
		t.Fatalf("expected ErrSessionClosed on second finish, got %v", err)
	}

	stored, err := k.Dish(ctx, dishID)
	if err != nil {
		t.Fatalf("loading dish: %v", err)
	}
	if len(stored.Ingredients()) != 2 {
		t.Fatalf("expected 2 ingredients, got %d", len(stored.Ingredients()))
	}
	if stored.Serves() != d.Serves() || stored.FoodLevel() != d.FoodLevel() {
		t.Fatalf("stored dish differs: serves %d/%d, food %d/%d",
			stored.Serves(), d.Serves(), stored.FoodLevel(), d.FoodLevel())
	}
	if stored.ModelType() != d.ModelType() {
		t.Fatalf("expected model %s, got %s", d.ModelType(), stored.ModelType())
	}

	// Two ingredient updates, then the dish envelope.
	if len(pub.messages) != 3 {
		t.Fatalf("expected 3 published messages, got %d", len(pub.messages))
	}
	update, err := wire.UnmarshalIngredientUpdate(pub.messages[0])
	if err != nil {
		t.Fatalf("decoding update: %v", err)
	}
	if update.Item != "beef" || update.Pos != vessel.pos {
		t.Fatalf("unexpected update %+v", update)
	}
	if mat, _ := update.Ingredient.String(codec.KeyMaterial); mat != "beef" {
		t.Fatalf("expected beef ingredient, got %q", mat)
	}

	env, err := wire.UnmarshalEnvelope(pub.messages[2])
	if err != nil {
		t.Fatalf("decoding envelope: %v", err)
	}
	if env.Target.String() != dishID {
		t.Fatalf("expected target %s, got %s", dishID, env.Target)
	}
	if typeID, _ := env.Payload.String(codec.KeyFoodType); typeID != dish.TypeID {
		t.Fatalf("expected %s payload, got %q", dish.TypeID, typeID)
	}
}

func TestFinishEmpty(t *testing.T) {
	k, ctx := setupKitchen(t)
	session, _ := k.Open(ctx, wok{})

	_, _, err := k.Finish(ctx, session.ID, cook{})
	if !errors.Is(err, domain.ErrEmptyDish) {
		t.Fatalf("expected ErrEmptyDish, got %v", err)
	}

	s, _ := k.Status(ctx, session.ID)
	if s.Status != domain.SessionActive {
		t.Fatalf("expected session to stay active, got %s", s.Status)
	}
}

func TestPublishFailureIsNotFatal(t *testing.T) {
	pub := &recorder{err: errors.New("link down")}
	k, ctx := setupKitchen(t, WithPublisher(pub))
	session, _ := k.Open(ctx, wok{})

	if err := k.AddIngredient(ctx, session.ID, "beef", domain.FormDiced, cook{}); err != nil {
		t.Fatalf("add: %v", err)
	}
	if _, _, err := k.Finish(ctx, session.ID, cook{}); err != nil {
		t.Fatalf("finish: %v", err)
	}
	if len(pub.messages) != 2 {
		t.Fatalf("expected 2 publish attempts, got %d", len(pub.messages))
	}
}

func TestAbandon(t *testing.T) {
	k, ctx := setupKitchen(t)
	session, _ := k.Open(ctx, wok{})

	if err := k.Abandon(ctx, session.ID); err != nil {
		t.Fatalf("abandon: %v", err)
	}

	s, _ := k.Status(ctx, session.ID)
	if s.Status != domain.SessionAbandoned {
		t.Fatalf("expected abandoned, got %s", s.Status)
	}
	if err := k.Abandon(ctx, session.ID); !errors.Is(err, domain.ErrSessionClosed) {
		t.Fatalf("expected ErrSessionClosed, got %v", err)
	}
	if _, err := k.Snapshot(ctx, session.ID); !errors.Is(err, domain.ErrSessionClosed) {
		t.Fatalf("expected ErrSessionClosed, got %v", err)
	}

	active, _ := k.Active(ctx)
	if len(active) != 0 {
		t.Fatalf("expected no active sessions, got %d", len(active))
	}

	if err := k.Abandon(ctx, "nonexistent"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestPrune(t *testing.T) {
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	k, ctx := setupKitchen(t, WithClock(func() time.Time { return now }))

	closed, _ := k.Open(ctx, wok{})
	if err := k.Abandon(ctx, closed.ID); err != nil {
		t.Fatalf("abandon: %v", err)
	}
	live, _ := k.Open(ctx, wok{})

	now = now.Add(2 * time.Hour)
	if n, err := k.Prune(ctx, 3*time.Hour); err != nil || n != 0 {
		t.Fatalf("expected nothing pruned yet, got %d, %v", n, err)
	}
	n, err := k.Prune(ctx, time.Hour)
	if err != nil {
		t.Fatalf("prune: %v", err)
	}
	if n != 1 {
		t.Fatalf("expected 1 pruned session, got %d", n)
	}
	if _, err := k.Status(ctx, closed.ID); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected pruned session gone, got %v", err)
	}
	if _, err := k.Status(ctx, live.ID); err != nil {
		t.Fatalf("open session pruned: %v", err)
	}
}

func TestSnapshotRestore(t *testing.T) {
	k, ctx := setupKitchen(t)
	session, _ := k.Open(ctx, wok{})

	if err := k.AddIngredient(ctx, session.ID, "beef", domain.FormDiced, cook{}); err != nil {
		t.Fatalf("add: %v", err)
	}
	if err := k.AddSeasoning(ctx, session.ID, "edible_oil", 1, cook{}); err != nil {
		t.Fatalf("season: %v", err)
	}

	snapshot, err := k.Snapshot(ctx, session.ID)
	if err != nil {
		t.Fatalf("snapshot: %v", err)
	}

	restored, err := k.Restore(ctx, wok{}, snapshot)
	if err != nil {
		t.Fatalf("restore: %v", err)
	}
	if restored.ID == session.ID {
		t.Fatal("restored session reused the original ID")
	}

	b, err := k.Builder(ctx, restored.ID)
	if err != nil {
		t.Fatalf("builder: %v", err)
	}
	if len(b.Ingredients()) != 1 || len(b.Seasonings()) != 1 {
		t.Fatalf("expected 1 ingredient and 1 seasoning, got %d and %d",
			len(b.Ingredients()), len(b.Seasonings()))
	}
	if oil, ok := b.Oil(); !ok || oil != 100 {
		t.Fatalf("expected oil 100, got %d (set=%v)", oil, ok)
	}
	if _, ok := b.Water(); ok {
		t.Fatal("water should stay unset")
	}

	// A finished dish is not a snapshot.
	dishID, _, err := k.Finish(ctx, restored.ID, cook{})
	if err != nil {
		t.Fatalf("finish: %v", err)
	}
	s, _ := k.Status(ctx, restored.ID)
	if s.DishID != dishID {
		t.Fatalf("expected dish %s, got %s", dishID, s.DishID)
	}
	data, err := k.dishes.Get(ctx, dishID)
	if err != nil {
		t.Fatalf("get dish: %v", err)
	}
	if _, err := k.Restore(ctx, wok{}, data); !errors.Is(err, codec.ErrUnknownType) {
		t.Fatalf("expected ErrUnknownType, got %v", err)
	}

	if _, err := k.Restore(ctx, wok{}, []byte("garbage")); !errors.Is(err, codec.ErrMalformed) {
		t.Fatalf("expected ErrMalformed, got %v", err)
	}
}

func TestServe(t *testing.T) {
	k, ctx := setupKitchen(t)
	session, _ := k.Open(ctx, wok{})
	if err := k.AddIngredient(ctx, session.ID, "beef", domain.FormDiced, cook{}); err != nil {
		t.Fatalf("add: %v", err)
	}
	dishID, d, err := k.Finish(ctx, session.ID, cook{})
	if err != nil {
		t.Fatalf("finish: %v", err)
	}

	serves := d.Serves()
	meal, err := k.Serve(ctx, dishID, cook{}, config.HardcoreConfig{})
	if err != nil {
		t.Fatalf("serve: %v", err)
	}
	if meal.FoodLevel != d.FoodLevel() {
		t.Fatalf("expected food level %d, got %d", d.FoodLevel(), meal.FoodLevel)
	}

	left, err := k.Dish(ctx, dishID)
	if err != nil {
		t.Fatalf("loading dish: %v", err)
	}
	if left.Serves() != serves-1 {
		t.Fatalf("expected %d serves left, got %d", serves-1, left.Serves())
	}

	for i := 1; i < serves; i++ {
		if _, err := k.Serve(ctx, dishID, cook{}, config.HardcoreConfig{}); err != nil {
			t.Fatalf("serve %d: %v", i+1, err)
		}
	}
	if _, err := k.Serve(ctx, dishID, cook{}, config.HardcoreConfig{}); !errors.Is(err, dish.ErrNoServesLeft) {
		t.Fatalf("expected ErrNoServesLeft, got %v", err)
	}

	if _, err := k.Serve(ctx, "00000000-0000-0000-0000-000000000000", cook{}, config.HardcoreConfig{}); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
