package document

import (
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
)

// ErrUnsupportedType is returned when decoding a BSON value the document
// model has no kind for.
var ErrUnsupportedType = errors.New("unsupported bson type")

// ErrMixedList is returned when decoding an array whose elements are not
// all of the same kind.
var ErrMixedList = errors.New("list elements differ in kind")

// Marshal encodes c as a BSON document. Ints are written as int32 and
// floats as doubles, so the distinction survives a round trip.
func Marshal(c *Compound) ([]byte, error) {
	data, err := bson.Marshal(toD(c))
	if err != nil {
		return nil, fmt.Errorf("encoding document: %w", err)
	}
	return data, nil
}

// Unmarshal decodes a BSON document.
func Unmarshal(data []byte) (*Compound, error) {
	raw := bson.Raw(data)
	if err := raw.Validate(); err != nil {
		return nil, fmt.Errorf("decoding document: %w", err)
	}
	return fromRaw(raw)
}

// MarshalJSON renders c as relaxed Extended JSON for inspection.
func MarshalJSON(c *Compound) ([]byte, error) {
	data, err := bson.MarshalExtJSON(toD(c), false, false)
	if err != nil {
		return nil, fmt.Errorf("rendering document: %w", err)
	}
	return data, nil
}

func toD(c *Compound) bson.D {
	d := make(bson.D, 0, len(c.entries))
	for _, e := range c.entries {
		d = append(d, bson.E{Key: e.key, Value: toBSON(e.value)})
	}
	return d
}

func toBSON(v any) any {
	switch v := v.(type) {
	case float32:
		return float64(v)
	case *List:
		a := make(bson.A, len(v.items))
		for i, item := range v.items {
			a[i] = toBSON(item)
		}
		return a
	case *Compound:
		return toD(v)
	default:
		return v
	}
}

func fromRaw(raw bson.Raw) (*Compound, error) {
	elems, err := raw.Elements()
	if err != nil {
		return nil, fmt.Errorf("reading elements: %w", err)
	}
	c := NewCompound()
	for _, el := range elems {
		v, err := fromValue(el.Value())
		if err != nil {
			return nil, fmt.Errorf("key %q: %w", el.Key(), err)
		}
		c.set(el.Key(), v)
	}
	return c, nil
}

func fromValue(rv bson.RawValue) (any, error) {
	switch rv.Type {
	case bson.TypeString:
		return rv.StringValue(), nil
	case bson.TypeInt32:
		return rv.Int32(), nil
	case bson.TypeDouble:
		return float32(rv.Double()), nil
	case bson.TypeEmbeddedDocument:
		return fromRaw(rv.Document())
	case bson.TypeArray:
		return fromArray(rv.Array())
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedType, rv.Type)
	}
}

func fromArray(raw bson.Raw) (*List, error) {
	values, err := raw.Values()
	if err != nil {
		return nil, fmt.Errorf("reading array: %w", err)
	}
	l := &List{kind: KindEnd, items: make([]any, 0, len(values))}
	for i, rv := range values {
		v, err := fromValue(rv)
		if err != nil {
			return nil, fmt.Errorf("index %d: %w", i, err)
		}
		k := kindOf(v)
		if i == 0 {
			l.kind = k
		} else if k != l.kind {
			return nil, fmt.Errorf("index %d: %w", i, ErrMixedList)
		}
		l.items = append(l.items, v)
	}
	return l, nil
}
