// Package document implements the ordered, typed key/value tree foods are
// persisted as. Values are strings, 32-bit ints, 32-bit floats, homogeneous
// lists and nested compounds. Reads are presence-checked so callers can tell
// an absent key from a zero value.
package document

import "slices"

// Kind is the type of a value stored in a document.
type Kind byte

const (
	KindEnd Kind = iota // empty list element kind
	KindString
	KindInt
	KindFloat
	KindList
	KindCompound
)

// String returns a human-readable kind name.
func (k Kind) String() string {
	switch k {
	case KindEnd:
		return "end"
	case KindString:
		return "string"
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	case KindList:
		return "list"
	case KindCompound:
		return "compound"
	default:
		return "unknown"
	}
}

type entry struct {
	key   string
	value any // string, int32, float32, *List or *Compound
}

// Compound is an ordered map of named values. Setting an existing key
// replaces its value in place.
type Compound struct {
	entries []entry
}

// NewCompound creates an empty compound.
func NewCompound() *Compound {
	return &Compound{}
}

func (c *Compound) set(key string, v any) *Compound {
	for i := range c.entries {
		if c.entries[i].key == key {
			c.entries[i].value = v
			return c
		}
	}
	c.entries = append(c.entries, entry{key: key, value: v})
	return c
}

func (c *Compound) get(key string) (any, bool) {
	for _, e := range c.entries {
		if e.key == key {
			return e.value, true
		}
	}
	return nil, false
}

// SetString stores a string. Setters return c for chaining.
func (c *Compound) SetString(key, v string) *Compound { return c.set(key, v) }

func (c *Compound) SetInt(key string, v int32) *Compound     { return c.set(key, v) }
func (c *Compound) SetFloat(key string, v float32) *Compound { return c.set(key, v) }
func (c *Compound) SetList(key string, v *List) *Compound    { return c.set(key, v) }

func (c *Compound) SetCompound(key string, v *Compound) *Compound { return c.set(key, v) }

// String returns the string stored under key.
func (c *Compound) String(key string) (string, bool) {
	v, ok := c.get(key)
	s, isString := v.(string)
	return s, ok && isString
}

// Int returns the int stored under key.
func (c *Compound) Int(key string) (int32, bool) {
	v, ok := c.get(key)
	n, isInt := v.(int32)
	return n, ok && isInt
}

// Float returns the float stored under key.
func (c *Compound) Float(key string) (float32, bool) {
	v, ok := c.get(key)
	f, isFloat := v.(float32)
	return f, ok && isFloat
}

// List returns the list stored under key.
func (c *Compound) List(key string) (*List, bool) {
	v, ok := c.get(key)
	l, isList := v.(*List)
	return l, ok && isList && l != nil
}

// Compound returns the nested compound stored under key.
func (c *Compound) Compound(key string) (*Compound, bool) {
	v, ok := c.get(key)
	n, isCompound := v.(*Compound)
	return n, ok && isCompound && n != nil
}

// Has reports whether key is present with any kind.
func (c *Compound) Has(key string) bool {
	_, ok := c.get(key)
	return ok
}

// KindOf returns the kind stored under key.
func (c *Compound) KindOf(key string) (Kind, bool) {
	v, ok := c.get(key)
	if !ok {
		return KindEnd, false
	}
	return kindOf(v), true
}

// Keys returns the keys in insertion order.
func (c *Compound) Keys() []string {
	out := make([]string, len(c.entries))
	for i, e := range c.entries {
		out[i] = e.key
	}
	return out
}

// Len returns the number of keys.
func (c *Compound) Len() int { return len(c.entries) }

// Remove deletes key if present.
func (c *Compound) Remove(key string) {
	c.entries = slices.DeleteFunc(c.entries, func(e entry) bool { return e.key == key })
}

// List is a homogeneous sequence of values. Its element kind is fixed by
// the constructor; an empty list reports KindEnd.
type List struct {
	kind  Kind
	items []any
}

func newList[T any](kind Kind, vals []T) *List {
	l := &List{kind: kind, items: make([]any, len(vals))}
	for i, v := range vals {
		l.items[i] = v
	}
	if len(vals) == 0 {
		l.kind = KindEnd
	}
	return l
}

// StringList creates a list of strings.
func StringList(vals ...string) *List { return newList(KindString, vals) }

// IntList creates a list of ints.
func IntList(vals ...int32) *List { return newList(KindInt, vals) }

// FloatList creates a list of floats.
func FloatList(vals ...float32) *List { return newList(KindFloat, vals) }

// CompoundList creates a list of compounds.
func CompoundList(vals ...*Compound) *List { return newList(KindCompound, vals) }

func (l *List) Kind() Kind { return l.kind }
func (l *List) Len() int   { return len(l.items) }

// Strings returns the elements of a string list.
func (l *List) Strings() ([]string, bool) { return elements[string](l, KindString) }

// Ints returns the elements of an int list.
func (l *List) Ints() ([]int32, bool) { return elements[int32](l, KindInt) }

// Floats returns the elements of a float list.
func (l *List) Floats() ([]float32, bool) { return elements[float32](l, KindFloat) }

// Compounds returns the elements of a compound list.
func (l *List) Compounds() ([]*Compound, bool) { return elements[*Compound](l, KindCompound) }

// elements returns the list's items when they are of kind want. Empty
// lists match every kind and yield nil.
func elements[T any](l *List, want Kind) ([]T, bool) {
	if len(l.items) == 0 {
		return nil, true
	}
	if l.kind != want {
		return nil, false
	}
	out := make([]T, len(l.items))
	for i, v := range l.items {
		out[i] = v.(T)
	}
	return out, true
}

func kindOf(v any) Kind {
	switch v.(type) {
	case string:
		return KindString
	case int32:
		return KindInt
	case float32:
		return KindFloat
	case *List:
		return KindList
	case *Compound:
		return KindCompound
	default:
		return KindEnd
	}
}
