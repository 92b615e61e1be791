package wire

// Kind identifies the concrete type held by a Value.
type Kind int

const (
	KindString Kind = iota
	KindInt
	KindFloat
	KindBool
	KindList
	KindMap
)

func (k Kind) String() string {
	switch k {
	case KindString:
		return "string"
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	case KindBool:
		return "bool"
	case KindList:
		return "list"
	case KindMap:
		return "map"
	default:
		return "unknown"
	}
}

// Value is the closed set of types allowed to cross the bridge boundary:
// string, int64, float64, bool, a list of values, or a nested Map.
type Value struct {
	kind Kind
	str  string
	num  int64
	flt  float64
	bit  bool
	list []Value
	m    *Map
}

func String(v string) Value { return Value{kind: KindString, str: v} }

func Int(v int64) Value { return Value{kind: KindInt, num: v} }

func Float(v float64) Value { return Value{kind: KindFloat, flt: v} }

func Bool(v bool) Value { return Value{kind: KindBool, bit: v} }

// List wraps a slice of values. A nil slice is a valid empty list.
func List(items []Value) Value { return Value{kind: KindList, list: items} }

// Strings builds a list value from a string slice, preserving order.
func Strings(items []string) Value {
	list := make([]Value, 0, len(items))
	for _, item := range items {
		list = append(list, String(item))
	}
	return List(list)
}

// FromMap wraps a Map. A nil map behaves like an empty map.
func FromMap(m *Map) Value { return Value{kind: KindMap, m: m} }

func (v Value) Kind() Kind { return v.kind }

func (v Value) Str() string { return v.str }

func (v Value) Int() int64 { return v.num }

func (v Value) Float() float64 { return v.flt }

func (v Value) Bool() bool { return v.bit }

func (v Value) List() []Value { return v.list }

func (v Value) Map() *Map { return v.m }

// Equal reports structural equality, including list order and map key order.
func (v Value) Equal(other Value) bool {
	if v.kind != other.kind {
		return false
	}
	switch v.kind {
	case KindString:
		return v.str == other.str
	case KindInt:
		return v.num == other.num
	case KindFloat:
		return v.flt == other.flt
	case KindBool:
		return v.bit == other.bit
	case KindList:
		if len(v.list) != len(other.list) {
			return false
		}
		for i := range v.list {
			if !v.list[i].Equal(other.list[i]) {
				return false
			}
		}
		return true
	case KindMap:
		return v.m.Equal(other.m)
	default:
		return false
	}
}

// Interface converts the value to plain Go types (map[string]any, []any,
// primitives) for callers that hand the result to generic encoders.
func (v Value) Interface() any {
	switch v.kind {
	case KindString:
		return v.str
	case KindInt:
		return v.num
	case KindFloat:
		return v.flt
	case KindBool:
		return v.bit
	case KindList:
		out := make([]any, 0, len(v.list))
		for _, item := range v.list {
			out = append(out, item.Interface())
		}
		return out
	case KindMap:
		return v.m.Interface()
	default:
		return nil
	}
}

// Map is an insertion-ordered string-keyed mapping of wire values.
type Map struct {
	keys   []string
	values map[string]Value
}

func NewMap() *Map {
	return &Map{values: make(map[string]Value)}
}

// Set stores a value under key, keeping first-insertion order on overwrite.
func (m *Map) Set(key string, v Value) {
	if _, exists := m.values[key]; !exists {
		m.keys = append(m.keys, key)
	}
	m.values[key] = v
}

func (m *Map) Get(key string) (Value, bool) {
	if m == nil {
		return Value{}, false
	}
	v, ok := m.values[key]
	return v, ok
}

func (m *Map) Has(key string) bool {
	_, ok := m.Get(key)
	return ok
}

func (m *Map) Len() int {
	if m == nil {
		return 0
	}
	return len(m.keys)
}

// Keys returns the keys in insertion order.
func (m *Map) Keys() []string {
	if m == nil {
		return nil
	}
	out := make([]string, len(m.keys))
	copy(out, m.keys)
	return out
}

// Equal reports field-for-field equality, including key order.
func (m *Map) Equal(other *Map) bool {
	if m == nil || other == nil {
		return m.Len() == other.Len()
	}
	if m.Len() != other.Len() {
		return false
	}
	for i, key := range m.keys {
		if other.keys[i] != key {
			return false
		}
		if !m.values[key].Equal(other.values[key]) {
			return false
		}
	}
	return true
}

// Interface converts the map to a plain map[string]any. Key order is lost;
// use MarshalJSON when order matters on the encoded form.
func (m *Map) Interface() map[string]any {
	out := make(map[string]any, m.Len())
	if m == nil {
		return out
	}
	for key, v := range m.values {
		out[key] = v.Interface()
	}
	return out
}
