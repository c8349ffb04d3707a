package jsonlite

import (
	"sort"
	"strconv"
	"strings"
)

// Kind identifies which variant a Value holds.
type Kind int

const (
	Null Kind = iota
	Bool
	Number
	String
	Array
	Object
)

func (k Kind) String() string {
	switch k {
	case Null:
		return "null"
	case Bool:
		return "bool"
	case Number:
		return "number"
	case String:
		return "string"
	case Array:
		return "array"
	case Object:
		return "object"
	}
	return "invalid"
}

// Value is a tagged union over the narrow JSON grammar the bridge speaks.
// Only the field matching Kind is meaningful.
type Value struct {
	Kind Kind
	Bool bool
	Num  float64
	Str  string
	Arr  []Value
	Obj  map[string]Value
}

// NullValue returns the null value.
func NullValue() Value { return Value{Kind: Null} }

// BoolValue wraps a bool.
func BoolValue(b bool) Value { return Value{Kind: Bool, Bool: b} }

// NumberValue wraps a float64.
func NumberValue(n float64) Value { return Value{Kind: Number, Num: n} }

// StringValue wraps a string.
func StringValue(s string) Value { return Value{Kind: String, Str: s} }

// ArrayValue wraps a slice of values.
func ArrayValue(vs ...Value) Value { return Value{Kind: Array, Arr: vs} }

// ObjectValue wraps a key/value map.
func ObjectValue(m map[string]Value) Value { return Value{Kind: Object, Obj: m} }

// AsString returns the string payload and whether the value is a string.
func (v Value) AsString() (string, bool) {
	if v.Kind == String {
		return v.Str, true
	}
	return "", false
}

// Get looks up a key on an object value. The second result is false when the
// value is not an object or the key is absent.
func (v Value) Get(key string) (Value, bool) {
	if v.Kind != Object {
		return Value{}, false
	}
	val, ok := v.Obj[key]
	return val, ok
}

// Serialize renders the value in canonical textual form: object keys sorted,
// no insignificant whitespace, strings quoted with the escapes the parser
// understands. Serialize is the inverse of Parse for every parseable value.
func (v Value) Serialize() string {
	var b strings.Builder
	v.write(&b)
	return b.String()
}

func (v Value) write(b *strings.Builder) {
	switch v.Kind {
	case Null:
		b.WriteString("null")
	case Bool:
		b.WriteString(strconv.FormatBool(v.Bool))
	case Number:
		b.WriteString(strconv.FormatFloat(v.Num, 'g', -1, 64))
	case String:
		writeQuoted(b, v.Str)
	case Array:
		b.WriteByte('[')
		for i, e := range v.Arr {
			if i > 0 {
				b.WriteByte(',')
			}
			e.write(b)
		}
		b.WriteByte(']')
	case Object:
		keys := make([]string, 0, len(v.Obj))
		for k := range v.Obj {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		b.WriteByte('{')
		for i, k := range keys {
			if i > 0 {
				b.WriteByte(',')
			}
			writeQuoted(b, k)
			b.WriteByte(':')
			e := v.Obj[k]
			e.write(b)
		}
		b.WriteByte('}')
	}
}

func writeQuoted(b *strings.Builder, s string) {
	b.WriteByte('"')
	for _, r := range s {
		switch r {
		case '"':
			b.WriteString(`\"`)
		case '\\':
			b.WriteString(`\\`)
		case '\n':
			b.WriteString(`\n`)
		case '\r':
			b.WriteString(`\r`)
		case '\t':
			b.WriteString(`\t`)
		default:
			b.WriteRune(r)
		}
	}
	b.WriteByte('"')
}
