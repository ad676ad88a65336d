package document

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"
	"go.mongodb.org/mongo-driver/bson"
)

func sample() *Compound {
	ing := NewCompound().
		SetString("material", "rice").
		SetString("form", "raw").
		SetList("traits", StringList("plain"))
	return NewCompound().
		SetList("ingredients", CompoundList(ing)).
		SetList("effects", StringList()).
		SetInt("foodLevel", 6).
		SetFloat("saturationModifier", 0.5)
}

func TestPresenceChecks(t *testing.T) {
	c := NewCompound().SetInt("zero", 0).SetString("name", "wok")

	n, ok := c.Int("zero")
	assert.True(t, ok)
	assert.Equal(t, int32(0), n)

	_, ok = c.Int("missing")
	assert.False(t, ok)

	// Wrong kind reads as absent.
	_, ok = c.Int("name")
	assert.False(t, ok)
	_, ok = c.Float("zero")
	assert.False(t, ok)

	assert.True(t, c.Has("name"))
	kind, ok := c.KindOf("name")
	assert.True(t, ok)
	assert.Equal(t, KindString, kind)
}

func TestOrderAndReplace(t *testing.T) {
	c := NewCompound().SetInt("b", 1).SetInt("a", 2).SetInt("c", 3)
	c.SetInt("a", 20)
	assert.Equal(t, []string{"b", "a", "c"}, c.Keys())

	n, _ := c.Int("a")
	assert.Equal(t, int32(20), n)

	c.Remove("b")
	assert.Equal(t, []string{"a", "c"}, c.Keys())
	assert.Equal(t, 2, c.Len())
}

func TestListKinds(t *testing.T) {
	l := StringList("a", "b")
	assert.Equal(t, KindString, l.Kind())

	got, ok := l.Strings()
	require.True(t, ok)
	assert.Equal(t, []string{"a", "b"}, got)

	_, ok = l.Compounds()
	assert.False(t, ok)

	empty := CompoundList()
	assert.Equal(t, KindEnd, empty.Kind())
	strs, ok := empty.Strings()
	assert.True(t, ok)
	assert.Empty(t, strs)
}

func TestBSONRoundTrip(t *testing.T) {
	data, err := Marshal(sample())
	require.NoError(t, err)

	c, err := Unmarshal(data)
	require.NoError(t, err)
	assert.Equal(t, []string{"ingredients", "effects", "foodLevel", "saturationModifier"}, c.Keys())

	level, ok := c.Int("foodLevel")
	require.True(t, ok)
	assert.Equal(t, int32(6), level)

	sat, ok := c.Float("saturationModifier")
	require.True(t, ok)
	assert.Equal(t, float32(0.5), sat)

	ingList, ok := c.List("ingredients")
	require.True(t, ok)
	ings, ok := ingList.Compounds()
	require.True(t, ok)
	require.Len(t, ings, 1)
	mat, _ := ings[0].String("material")
	assert.Equal(t, "rice", mat)

	traitList, ok := ings[0].List("traits")
	require.True(t, ok)
	traits, _ := traitList.Strings()
	assert.Equal(t, []string{"plain"}, traits)

	effects, ok := c.List("effects")
	require.True(t, ok)
	assert.Equal(t, 0, effects.Len())
}

func TestUnmarshalRejects(t *testing.T) {
	t.Run("garbage", func(t *testing.T) {
		_, err := Unmarshal([]byte{1, 2, 3})
		assert.Error(t, err)
	})

	t.Run("unsupported type", func(t *testing.T) {
		data, err := bson.Marshal(bson.D{{Key: "flag", Value: true}})
		require.NoError(t, err)
		_, err = Unmarshal(data)
		assert.ErrorIs(t, err, ErrUnsupportedType)
	})

	t.Run("mixed list", func(t *testing.T) {
		data, err := bson.Marshal(bson.D{{Key: "xs", Value: bson.A{"a", int32(1)}}})
		require.NoError(t, err)
		_, err = Unmarshal(data)
		assert.ErrorIs(t, err, ErrMixedList)
	})
}

func TestMarshalJSON(t *testing.T) {
	data, err := MarshalJSON(sample())
	require.NoError(t, err)

	assert.Equal(t, int64(6), gjson.GetBytes(data, "foodLevel").Int())
	assert.Equal(t, "rice", gjson.GetBytes(data, "ingredients.0.material").String())
	assert.Equal(t, "plain", gjson.GetBytes(data, "ingredients.0.traits.0").String())
	assert.InDelta(t, 0.5, gjson.GetBytes(data, "saturationModifier").Float(), 1e-9)
}

func TestNestedRoundTrip(t *testing.T) {
	c := NewCompound().
		SetCompound("pos", NewCompound().SetInt("x", -4).SetInt("y", 70)).
		SetList("weights", FloatList(0.5, 1.25))

	data, err := Marshal(c)
	require.NoError(t, err)
	got, err := Unmarshal(data)
	require.NoError(t, err)

	pos, ok := got.Compound("pos")
	require.True(t, ok)
	x, _ := pos.Int("x")
	assert.Equal(t, int32(-4), x)

	l, ok := got.List("weights")
	require.True(t, ok)
	weights, ok := l.Floats()
	require.True(t, ok)
	assert.Equal(t, []float32{0.5, 1.25}, weights)
}
