package jsonlite

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseScalars(t *testing.T) {
	tests := []struct {
		input string
		want  Value
	}{
		{`null`, NullValue()},
		{`true`, BoolValue(true)},
		{`false`, BoolValue(false)},
		{`42`, NumberValue(42)},
		{`-3.5`, NumberValue(-3.5)},
		{`1e3`, NumberValue(1000)},
		{`"hello"`, StringValue("hello")},
		{`"a\nb\t\"c\""`, StringValue("a\nb\t\"c\"")},
		{`  "padded"  `, StringValue("padded")},
	}
	for _, tt := range tests {
		got, err := Parse(tt.input)
		require.NoError(t, err, "input %q", tt.input)
		assert.Equal(t, tt.want, got, "input %q", tt.input)
	}
}

func TestParseComposite(t *testing.T) {
	got, err := Parse(`{"channel":"demo","data":{"n":1,"flags":[true,null]}}`)
	require.NoError(t, err)

	ch, ok := got.Get("channel")
	require.True(t, ok)
	s, ok := ch.AsString()
	require.True(t, ok)
	assert.Equal(t, "demo", s)

	data, ok := got.Get("data")
	require.True(t, ok)
	n, ok := data.Get("n")
	require.True(t, ok)
	assert.Equal(t, NumberValue(1), n)

	flags, ok := data.Get("flags")
	require.True(t, ok)
	assert.Equal(t, ArrayValue(BoolValue(true), NullValue()), flags)
}

func TestParseRejects(t *testing.T) {
	bad := []string{
		``,
		`not json`,
		`{`,
		`[1,2`,
		`{"a":1,}`,
		`[1,2,]`,
		`{"a":1,"a":2}`,
		`{"a"}`,
		`{a:1}`,
		`"unterminated`,
		`nul`,
		`truth`,
		`1.2.3`,
		`null garbage`,
		`{"a":1} {"b":2}`,
	}
	for _, input := range bad {
		_, err := Parse(input)
		assert.ErrorIs(t, err, ErrSyntax, "input %q", input)
	}
}

func TestRoundTrip(t *testing.T) {
	values := []Value{
		NullValue(),
		BoolValue(true),
		NumberValue(0),
		NumberValue(-12.75),
		NumberValue(1e21),
		StringValue(""),
		StringValue("line\nbreak\tand \"quotes\" and \\slash"),
		ArrayValue(),
		ArrayValue(NumberValue(1), StringValue("two"), NullValue()),
		ObjectValue(map[string]Value{}),
		ObjectValue(map[string]Value{
			"s":   StringValue("v"),
			"n":   NumberValue(3),
			"b":   BoolValue(false),
			"arr": ArrayValue(NumberValue(1), ArrayValue(StringValue("x"))),
			"obj": ObjectValue(map[string]Value{"inner": NullValue()}),
		}),
	}
	for _, v := range values {
		text := v.Serialize()
		back, err := Parse(text)
		require.NoError(t, err, "serialized %q", text)
		assert.Equal(t, v, back, "serialized %q", text)
	}
}

func TestSerializeCanonical(t *testing.T) {
	v := ObjectValue(map[string]Value{
		"b": NumberValue(2),
		"a": StringValue("x"),
	})
	// Keys come out sorted so the textual form is stable.
	assert.Equal(t, `{"a":"x","b":2}`, v.Serialize())
	assert.Equal(t, `"hello"`, StringValue("hello").Serialize())
	assert.Equal(t, `42`, NumberValue(42).Serialize())
}
