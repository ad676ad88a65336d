package effect

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hammamikhairi/cuisine/internal/domain"
)

type fakeFood struct {
	serves, maxServes int
	duration          float32
	effects           []*domain.Effect
}

func (f *fakeFood) SetServes(n int)                  { f.serves = n }
func (f *fakeFood) SetMaxServes(n int)               { f.maxServes = n }
func (f *fakeFood) UseDurationModifier() float32     { return f.duration }
func (f *fakeFood) SetUseDurationModifier(v float32) { f.duration = v }
func (f *fakeFood) AddEffect(e *domain.Effect)       { f.effects = append(f.effects, e) }

type cook struct{ buffs []Buff }

func (c *cook) ID() string       { return "cook" }
func (c *cook) ApplyBuff(b Buff) { c.buffs = append(c.buffs, b) }

type plainActor struct{}

func (plainActor) ID() string { return "plain" }

func TestCollectorUntouchedChannelsKeepDefaults(t *testing.T) {
	c := NewCollector(5)
	food := &fakeFood{duration: 1}

	require.NoError(t, c.Apply(food, plainActor{}))

	assert.Equal(t, 5, food.serves)
	assert.Equal(t, 5, food.maxServes)
	assert.Equal(t, float32(1), food.duration)
	assert.Empty(t, food.effects)
}

func TestCollectorFoldsChannels(t *testing.T) {
	c := NewCollector(4)
	haste := &domain.Effect{ID: "haste", Kind: domain.EffectStatus}

	Add(c, Serves, 2)
	Add(c, Serves, -1)
	Add(c, UseDuration, float32(0.4))
	Add(c, StatusEffect, haste)
	Add(c, StatusEffect, (*domain.Effect)(nil))
	Add(c, ActorBuff, Buff{Effect: haste, Duration: 200})

	food := &fakeFood{duration: 1}
	actor := &cook{}
	require.NoError(t, c.Apply(food, actor))

	assert.Equal(t, 5, food.serves)
	assert.Equal(t, 5, food.maxServes)
	assert.InDelta(t, 1.4, food.duration, 1e-6)
	assert.Equal(t, []*domain.Effect{haste}, food.effects)
	require.Len(t, actor.buffs, 1)
	assert.Equal(t, 200, actor.buffs[0].Duration)
}

func TestCollectorClampsValues(t *testing.T) {
	c := NewCollector(2)
	Add(c, Serves, -10)
	Add(c, UseDuration, float32(-5))

	food := &fakeFood{duration: 1}
	require.NoError(t, c.Apply(food, plainActor{}))

	assert.Equal(t, 1, food.serves)
	assert.Equal(t, MinUseDuration, food.duration)
}

func TestCollectorMinServes(t *testing.T) {
	tests := []struct {
		name string
		min  int
		want int
	}{
		{"configured floor", 3, 3},
		{"zero floor", 0, 1},
		{"negative floor", -2, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewCollector(4, WithMinServes(tt.min))
			Add(c, Serves, -10)

			food := &fakeFood{duration: 1}
			require.NoError(t, c.Apply(food, plainActor{}))
			assert.Equal(t, tt.want, food.serves)
			assert.Equal(t, tt.want, food.maxServes)
		})
	}
}

func TestCollectorSingleUse(t *testing.T) {
	c := NewCollector(3)
	food := &fakeFood{duration: 1}

	require.NoError(t, c.Apply(food, plainActor{}))
	Add(c, Serves, 10)
	assert.ErrorIs(t, c.Apply(food, plainActor{}), ErrCollectorSpent)
	assert.Equal(t, 3, food.serves)
	assert.False(t, c.Touched(Serves.Name()))
}

func TestValuesFiltersByType(t *testing.T) {
	c := NewCollector(1)
	c.Push(Serves.Name(), "not an int")
	Add(c, Serves, 3)

	assert.Equal(t, []int{3}, Values(c, Serves))
}
