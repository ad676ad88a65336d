// Package kitchen runs cooking sessions. Each session stands at one vessel
// and owns exactly one dish builder until it is finished or abandoned.
package kitchen

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/hammamikhairi/cuisine/internal/catalog"
	"github.com/hammamikhairi/cuisine/internal/codec"
	"github.com/hammamikhairi/cuisine/internal/config"
	"github.com/hammamikhairi/cuisine/internal/dish"
	"github.com/hammamikhairi/cuisine/internal/document"
	"github.com/hammamikhairi/cuisine/internal/domain"
	"github.com/hammamikhairi/cuisine/internal/logger"
	"github.com/hammamikhairi/cuisine/internal/wire"
)

// Publisher receives encoded wire messages. Delivery failures are logged
// and never fail the cooking operation.
type Publisher interface {
	Publish(ctx context.Context, data []byte) error
}

// Option configures the kitchen.
type Option func(*Kitchen)

// WithBuilderOptions sets options applied to every builder the kitchen
// creates or restores.
func WithBuilderOptions(opts ...dish.Option) Option {
	return func(k *Kitchen) {
		k.builderOpts = append(k.builderOpts, opts...)
	}
}

// WithRandom sets the random source used by builders and decoded dishes.
func WithRandom(r domain.RandomSource) Option {
	return func(k *Kitchen) {
		k.rand = r
	}
}

// WithPublisher sends ingredient updates and finished dish envelopes to p.
func WithPublisher(p Publisher) Option {
	return func(k *Kitchen) {
		k.publisher = p
	}
}

// WithClock overrides the time source used for session timestamps.
func WithClock(now func() time.Time) Option {
	return func(k *Kitchen) {
		k.now = now
	}
}

type station struct {
	builder *dish.Builder
	vessel  domain.Vessel
}

// Kitchen manages cooking sessions and the dishes they produce. Safe for
// concurrent use.
type Kitchen struct {
	mu       sync.Mutex
	stations map[string]*station

	registry  *catalog.Registry
	codec     *codec.Codec
	sessions  domain.SessionStore
	dishes    domain.DishStore
	publisher Publisher
	log       *logger.Logger

	builderOpts []dish.Option
	rand        domain.RandomSource
	now         func() time.Time
}

// New creates a kitchen over the given registry and stores.
func New(registry *catalog.Registry, sessions domain.SessionStore, dishes domain.DishStore, log *logger.Logger, opts ...Option) *Kitchen {
	k := &Kitchen{
		stations: make(map[string]*station),
		registry: registry,
		sessions: sessions,
		dishes:   dishes,
		log:      log,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(k)
	}

	var codecOpts []codec.Option
	if k.rand != nil {
		k.builderOpts = append(k.builderOpts, dish.WithRandom(k.rand))
		codecOpts = append(codecOpts, codec.WithRandom(k.rand))
	}
	codecOpts = append(codecOpts, codec.WithBuilderOptions(k.builderOpts...))
	k.codec = codec.New(registry, codecOpts...)
	return k
}

// Codec returns the codec the kitchen persists foods with.
func (k *Kitchen) Codec() *codec.Codec {
	return k.codec
}

// Open starts a session at vessel with an empty builder.
func (k *Kitchen) Open(ctx context.Context, vessel domain.Vessel) (*domain.Session, error) {
	return k.start(ctx, vessel, dish.NewBuilder(k.builderOpts...))
}

// Restore starts a session at vessel around a builder read back from a
// snapshot.
func (k *Kitchen) Restore(ctx context.Context, vessel domain.Vessel, snapshot []byte) (*domain.Session, error) {
	f, err := k.codec.Unmarshal(snapshot)
	if err != nil {
		return nil, fmt.Errorf("decoding snapshot: %w", err)
	}
	b, ok := f.(*dish.Builder)
	if !ok {
		return nil, fmt.Errorf("%w: snapshot holds %s", codec.ErrUnknownType, f.Identifier())
	}
	if b.Finalized() {
		return nil, domain.ErrSessionClosed
	}
	return k.start(ctx, vessel, b)
}

func (k *Kitchen) start(ctx context.Context, vessel domain.Vessel, b *dish.Builder) (*domain.Session, error) {
	now := k.now()
	session := &domain.Session{
		ID:        uuid.NewString(),
		Vessel:    vessel.Kind(),
		Status:    domain.SessionActive,
		StartedAt: now,
		UpdatedAt: now,
	}

	k.mu.Lock()
	defer k.mu.Unlock()

	if err := k.sessions.Save(ctx, session); err != nil {
		return nil, fmt.Errorf("saving session: %w", err)
	}
	k.stations[session.ID] = &station{builder: b, vessel: vessel}

	k.log.Info("opened session %s at %s (%d ingredients)", session.ID, session.Vessel, len(b.Ingredients()))
	return session, nil
}

// Status returns the session with the given ID.
func (k *Kitchen) Status(ctx context.Context, sessionID string) (*domain.Session, error) {
	return k.sessions.Load(ctx, sessionID)
}

// Active returns every session that still accepts ingredients.
func (k *Kitchen) Active(ctx context.Context) ([]*domain.Session, error) {
	return k.sessions.ListActive(ctx)
}

// Builder returns the builder of an open session. The builder is owned by
// the session; callers must not mutate it.
func (k *Kitchen) Builder(ctx context.Context, sessionID string) (*dish.Builder, error) {
	k.mu.Lock()
	defer k.mu.Unlock()

	_, st, err := k.open(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	return st.builder, nil
}

// AddIngredient puts materialID in form into the session's vessel. An
// unregistered material yields ErrNotFound with near matches in the
// message; a refused ingredient yields ErrRejected.
func (k *Kitchen) AddIngredient(ctx context.Context, sessionID, materialID string, form domain.Form, actor domain.Actor) error {
	k.mu.Lock()
	defer k.mu.Unlock()

	session, st, err := k.open(ctx, sessionID)
	if err != nil {
		return err
	}

	ing, ok := k.registry.Ingredient(materialID, form)
	if !ok {
		return k.unknown("material", materialID)
	}
	if !st.builder.AddIngredient(ing, st.vessel, actor) {
		k.log.Debug("session %s refused %s (%s)", sessionID, materialID, form)
		return fmt.Errorf("adding %s (%s): %w", materialID, form, domain.ErrRejected)
	}

	if err := k.touch(ctx, session); err != nil {
		return err
	}

	k.publish(ctx, "ingredient update", wire.IngredientUpdate{
		Pos:        locate(st.vessel),
		Item:       materialID,
		Ingredient: codec.EncodeIngredient(ing),
	})
	k.log.Debug("session %s added %s (%s), %d/%d", sessionID, materialID, form,
		len(st.builder.Ingredients()), st.builder.Capacity(actor))
	return nil
}

// AddSeasoning seasons the session's preparation with size units of
// spiceID.
func (k *Kitchen) AddSeasoning(ctx context.Context, sessionID, spiceID string, size int, actor domain.Actor) error {
	k.mu.Lock()
	defer k.mu.Unlock()

	session, st, err := k.open(ctx, sessionID)
	if err != nil {
		return err
	}

	sn, ok := k.registry.Seasoning(spiceID, size)
	if !ok {
		return k.unknown("spice", spiceID)
	}
	if !st.builder.AddSeasoning(sn, st.vessel, actor) {
		k.log.Debug("session %s refused %d %s", sessionID, size, spiceID)
		return fmt.Errorf("seasoning with %s: %w", spiceID, domain.ErrRejected)
	}

	if err := k.touch(ctx, session); err != nil {
		return err
	}
	k.log.Debug("session %s seasoned with %d %s", sessionID, size, spiceID)
	return nil
}

// Snapshot encodes the in-progress builder of an open session.
func (k *Kitchen) Snapshot(ctx context.Context, sessionID string) ([]byte, error) {
	k.mu.Lock()
	defer k.mu.Unlock()

	_, st, err := k.open(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	data, err := k.codec.Marshal(st.builder)
	if err != nil {
		return nil, fmt.Errorf("encoding builder: %w", err)
	}
	return data, nil
}

// Finish finalizes the session's builder, stores the dish under a new ID
// and completes the session. It returns ErrEmptyDish when nothing was
// added.
func (k *Kitchen) Finish(ctx context.Context, sessionID string, actor domain.Actor) (string, *dish.Dish, error) {
	k.mu.Lock()
	defer k.mu.Unlock()

	session, st, err := k.open(ctx, sessionID)
	if err != nil {
		return "", nil, err
	}

	d, ok := st.builder.Finalize(st.vessel, actor)
	if !ok {
		return "", nil, domain.ErrEmptyDish
	}

	doc, err := k.codec.Wrap(d)
	if err != nil {
		return "", nil, fmt.Errorf("encoding dish: %w", err)
	}
	data, err := document.Marshal(doc)
	if err != nil {
		return "", nil, fmt.Errorf("encoding dish: %w", err)
	}

	dishID := uuid.New()
	if err := k.dishes.Put(ctx, dishID.String(), data); err != nil {
		return "", nil, fmt.Errorf("storing dish: %w", err)
	}

	session.Status = domain.SessionCompleted
	session.DishID = dishID.String()
	if err := k.touch(ctx, session); err != nil {
		return "", nil, err
	}
	delete(k.stations, sessionID)

	k.publish(ctx, "dish envelope", wire.Envelope{
		Pos:     locate(st.vessel),
		Target:  dishID,
		Payload: doc,
	})
	k.log.Info("session %s finished dish %s (%s, %d serves)", sessionID, dishID, d.ModelType(), d.Serves())
	return dishID.String(), d, nil
}

// Abandon closes an open session without producing a dish.
func (k *Kitchen) Abandon(ctx context.Context, sessionID string) error {
	k.mu.Lock()
	defer k.mu.Unlock()

	session, _, err := k.open(ctx, sessionID)
	if err != nil {
		return err
	}

	session.Status = domain.SessionAbandoned
	if err := k.touch(ctx, session); err != nil {
		return err
	}
	delete(k.stations, sessionID)

	k.log.Info("session %s abandoned", sessionID)
	return nil
}

// Prune forgets finished and abandoned sessions idle for longer than
// maxAge. Their dishes stay in the dish store.
func (k *Kitchen) Prune(ctx context.Context, maxAge time.Duration) (int, error) {
	n, err := k.sessions.Prune(ctx, k.now().Add(-maxAge))
	if err != nil {
		return 0, fmt.Errorf("pruning sessions: %w", err)
	}
	if n > 0 {
		k.log.Info("pruned %d closed sessions", n)
	}
	return n, nil
}

// Dish loads a stored dish.
func (k *Kitchen) Dish(ctx context.Context, dishID string) (*dish.Dish, error) {
	data, err := k.dishes.Get(ctx, dishID)
	if err != nil {
		return nil, fmt.Errorf("loading dish: %w", err)
	}
	f, err := k.codec.Unmarshal(data)
	if err != nil {
		return nil, fmt.Errorf("decoding dish %s: %w", dishID, err)
	}
	d, ok := f.(*dish.Dish)
	if !ok {
		return nil, fmt.Errorf("%w: %s holds %s", codec.ErrUnknownType, dishID, f.Identifier())
	}
	return d, nil
}

// Serve feeds one serving of a stored dish to actor and stores what is
// left.
func (k *Kitchen) Serve(ctx context.Context, dishID string, actor domain.Actor, hc config.HardcoreConfig) (dish.Meal, error) {
	k.mu.Lock()
	defer k.mu.Unlock()

	d, err := k.Dish(ctx, dishID)
	if err != nil {
		return dish.Meal{}, err
	}
	meal, err := d.Eat(actor, hc, k.registry)
	if err != nil {
		return dish.Meal{}, err
	}

	data, err := k.codec.Marshal(d)
	if err != nil {
		return dish.Meal{}, fmt.Errorf("encoding dish: %w", err)
	}
	if err := k.dishes.Put(ctx, dishID, data); err != nil {
		return dish.Meal{}, fmt.Errorf("storing dish: %w", err)
	}

	k.log.Info("served dish %s to %s, %d/%d left", dishID, actor.ID(), d.Serves(), d.MaxServes())
	return meal, nil
}

// open loads an open session and its station. Callers hold k.mu.
func (k *Kitchen) open(ctx context.Context, sessionID string) (*domain.Session, *station, error) {
	session, err := k.sessions.Load(ctx, sessionID)
	if err != nil {
		return nil, nil, fmt.Errorf("loading session: %w", err)
	}
	if !session.Open() {
		return nil, nil, domain.ErrSessionClosed
	}
	st, ok := k.stations[sessionID]
	if !ok {
		// Saved by another process; its builder is not here.
		return nil, nil, fmt.Errorf("session %s has no builder here: %w", sessionID, domain.ErrNotFound)
	}
	return session, st, nil
}

func (k *Kitchen) touch(ctx context.Context, session *domain.Session) error {
	session.UpdatedAt = k.now()
	if err := k.sessions.Save(ctx, session); err != nil {
		return fmt.Errorf("saving session: %w", err)
	}
	return nil
}

func (k *Kitchen) unknown(what, id string) error {
	if hints := k.registry.Suggest(id, 3); len(hints) > 0 {
		return fmt.Errorf("%s %q: %w (did you mean %s?)", what, id, domain.ErrNotFound, strings.Join(hints, ", "))
	}
	return fmt.Errorf("%s %q: %w", what, id, domain.ErrNotFound)
}

type message interface {
	Marshal() ([]byte, error)
}

func (k *Kitchen) publish(ctx context.Context, what string, m message) {
	if k.publisher == nil {
		return
	}
	data, err := m.Marshal()
	if err != nil {
		k.log.Warn("encoding %s: %v", what, err)
		return
	}
	if err := k.publisher.Publish(ctx, data); err != nil {
		k.log.Warn("publishing %s: %v", what, err)
	}
}

func locate(v domain.Vessel) domain.Position {
	if l, ok := v.(domain.Locator); ok {
		return l.Position()
	}
	return domain.Position{}
}
