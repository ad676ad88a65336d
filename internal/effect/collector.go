// Package effect implements the collector that materials and spices push
// side effects into while a composite food is being finalized.
package effect

import (
	"errors"

	"github.com/hammamikhairi/cuisine/internal/domain"
)

// ErrCollectorSpent is returned when Apply is called a second time.
var ErrCollectorSpent = errors.New("effect collector already applied")

// MinUseDuration is the lower bound of a food's use-duration modifier.
const MinUseDuration float32 = 0.1

// Sink accepts values pushed under a named channel. Both the Collector and
// the nutrition counter are sinks, so hooks can be written once.
type Sink interface {
	Push(channel string, value any)
}

// Channel is a typed, named slot in a Sink.
type Channel[T any] struct {
	name string
}

// NewChannel declares a channel carrying values of type T.
func NewChannel[T any](name string) Channel[T] {
	return Channel[T]{name: name}
}

// Name returns the channel name.
func (c Channel[T]) Name() string { return c.name }

// Add pushes v into s under ch.
func Add[T any](s Sink, ch Channel[T], v T) {
	s.Push(ch.name, v)
}

// Built-in channels.
var (
	Hunger       = NewChannel[int]("hunger")
	Saturation   = NewChannel[float32]("saturation")
	UseDuration  = NewChannel[float32]("use_duration")
	Serves       = NewChannel[int]("serves")
	StatusEffect = NewChannel[*domain.Effect]("status_effect")
	ActorBuff    = NewChannel[Buff]("buff")
)

// Buff is a timed effect granted directly to an actor.
type Buff struct {
	Effect    *domain.Effect
	Duration  int // ticks
	Amplifier int
}

// Buffable is an optional Actor capability for receiving buffs.
type Buffable interface {
	ApplyBuff(b Buff)
}

// Target is the food whose construction-time fields a Collector folds into.
type Target interface {
	SetServes(n int)
	SetMaxServes(n int)
	UseDurationModifier() float32
	SetUseDurationModifier(v float32)
	AddEffect(e *domain.Effect)
}

// Collector accumulates channel values during a single finalize and folds
// them onto the finished food. It must not be reused.
type Collector struct {
	baseServes int
	minServes  int
	values     map[string][]any
	spent      bool
}

// CollectorOption configures a Collector.
type CollectorOption func(*Collector)

// WithMinServes sets the lowest serve count Apply will write. Values below
// 1 are raised to 1.
func WithMinServes(n int) CollectorOption {
	return func(c *Collector) { c.minServes = max(n, 1) }
}

// NewCollector creates a collector whose serve count starts at baseServes.
func NewCollector(baseServes int, opts ...CollectorOption) *Collector {
	c := &Collector{
		baseServes: baseServes,
		minServes:  1,
		values:     make(map[string][]any),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Push records value under channel. Pushes after Apply are dropped.
func (c *Collector) Push(channel string, value any) {
	if c.spent {
		return
	}
	c.values[channel] = append(c.values[channel], value)
}

// Touched reports whether any value was pushed to the named channel.
func (c *Collector) Touched(channel string) bool {
	return len(c.values[channel]) > 0
}

// Values returns the values of type T pushed under ch, in push order.
func Values[T any](c *Collector, ch Channel[T]) []T {
	raw := c.values[ch.name]
	out := make([]T, 0, len(raw))
	for _, v := range raw {
		if tv, ok := v.(T); ok {
			out = append(out, tv)
		}
	}
	return out
}

// Apply folds every channel onto target and hands buffs to actor when it
// can receive them. It runs at most once.
func (c *Collector) Apply(target Target, actor domain.Actor) error {
	if c.spent {
		return ErrCollectorSpent
	}
	c.spent = true

	serves := c.baseServes
	for _, d := range Values(c, Serves) {
		serves += d
	}
	serves = max(serves, c.minServes)
	target.SetMaxServes(serves)
	target.SetServes(serves)

	if c.Touched(UseDuration.name) {
		mod := target.UseDurationModifier()
		for _, d := range Values(c, UseDuration) {
			mod += d
		}
		if mod < MinUseDuration {
			mod = MinUseDuration
		}
		target.SetUseDurationModifier(mod)
	}

	for _, e := range Values(c, StatusEffect) {
		if e != nil {
			target.AddEffect(e)
		}
	}

	if b, ok := actor.(Buffable); ok {
		for _, buff := range Values(c, ActorBuff) {
			b.ApplyBuff(buff)
		}
	}
	return nil
}
