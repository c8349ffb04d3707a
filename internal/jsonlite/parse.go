package jsonlite

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"
)

// ErrSyntax is wrapped by every parse failure.
var ErrSyntax = errors.New("jsonlite: syntax error")

// Parse decodes a single JSON value. The whole input must be consumed;
// trailing commas, duplicate object keys, and trailing garbage all fail the
// parse atomically.
func Parse(input string) (Value, error) {
	p := &parser{src: input}
	p.skipSpace()
	v, err := p.value()
	if err != nil {
		return Value{}, err
	}
	p.skipSpace()
	if p.pos != len(p.src) {
		return Value{}, fmt.Errorf("%w: trailing characters at offset %d", ErrSyntax, p.pos)
	}
	return v, nil
}

type parser struct {
	src string
	pos int
}

func (p *parser) errf(format string, args ...interface{}) error {
	msg := fmt.Sprintf(format, args...)
	return fmt.Errorf("%w: %s at offset %d", ErrSyntax, msg, p.pos)
}

func (p *parser) peek() (byte, bool) {
	if p.pos >= len(p.src) {
		return 0, false
	}
	return p.src[p.pos], true
}

func (p *parser) skipSpace() {
	for p.pos < len(p.src) {
		switch p.src[p.pos] {
		case ' ', '\t', '\n', '\r':
			p.pos++
		default:
			return
		}
	}
}

func (p *parser) value() (Value, error) {
	p.skipSpace()
	c, ok := p.peek()
	if !ok {
		return Value{}, p.errf("unexpected end of input")
	}
	switch {
	case c == '"':
		s, err := p.string()
		if err != nil {
			return Value{}, err
		}
		return StringValue(s), nil
	case c == '{':
		return p.object()
	case c == '[':
		return p.array()
	case c == 't' || c == 'f':
		return p.literal()
	case c == 'n':
		return p.literal()
	case c == '-' || (c >= '0' && c <= '9'):
		return p.number()
	default:
		return Value{}, p.errf("unexpected character %q", c)
	}
}

func (p *parser) string() (string, error) {
	p.pos++ // opening quote
	var b strings.Builder
	for {
		if p.pos >= len(p.src) {
			return "", p.errf("unterminated string")
		}
		c := p.src[p.pos]
		switch c {
		case '"':
			p.pos++
			return b.String(), nil
		case '\\':
			p.pos++
			if p.pos >= len(p.src) {
				return "", p.errf("unterminated escape")
			}
			switch p.src[p.pos] {
			case 'n':
				b.WriteByte('\n')
			case 'r':
				b.WriteByte('\r')
			case 't':
				b.WriteByte('\t')
			case '\\':
				b.WriteByte('\\')
			case '"':
				b.WriteByte('"')
			default:
				// Unknown escapes pass the escaped character through.
				b.WriteByte(p.src[p.pos])
			}
			p.pos++
		default:
			r, size := utf8.DecodeRuneInString(p.src[p.pos:])
			b.WriteRune(r)
			p.pos += size
		}
	}
}

func (p *parser) object() (Value, error) {
	p.pos++ // consume {
	obj := map[string]Value{}
	p.skipSpace()
	if c, ok := p.peek(); ok && c == '}' {
		p.pos++
		return ObjectValue(obj), nil
	}
	for {
		p.skipSpace()
		c, ok := p.peek()
		if !ok || c != '"' {
			return Value{}, p.errf("expected object key")
		}
		key, err := p.string()
		if err != nil {
			return Value{}, err
		}
		if _, dup := obj[key]; dup {
			return Value{}, p.errf("duplicate key %q", key)
		}
		p.skipSpace()
		if c, ok := p.peek(); !ok || c != ':' {
			return Value{}, p.errf("expected ':' after key %q", key)
		}
		p.pos++
		val, err := p.value()
		if err != nil {
			return Value{}, err
		}
		obj[key] = val
		p.skipSpace()
		switch c, ok := p.peek(); {
		case ok && c == ',':
			p.pos++
		case ok && c == '}':
			p.pos++
			return ObjectValue(obj), nil
		default:
			return Value{}, p.errf("expected ',' or '}' in object")
		}
	}
}

func (p *parser) array() (Value, error) {
	p.pos++ // consume [
	var arr []Value
	p.skipSpace()
	if c, ok := p.peek(); ok && c == ']' {
		p.pos++
		return ArrayValue(arr...), nil
	}
	for {
		val, err := p.value()
		if err != nil {
			return Value{}, err
		}
		arr = append(arr, val)
		p.skipSpace()
		switch c, ok := p.peek(); {
		case ok && c == ',':
			p.pos++
		case ok && c == ']':
			p.pos++
			return ArrayValue(arr...), nil
		default:
			return Value{}, p.errf("expected ',' or ']' in array")
		}
	}
}

func (p *parser) literal() (Value, error) {
	for _, lit := range []struct {
		text  string
		value Value
	}{
		{"true", BoolValue(true)},
		{"false", BoolValue(false)},
		{"null", NullValue()},
	} {
		if strings.HasPrefix(p.src[p.pos:], lit.text) {
			p.pos += len(lit.text)
			return lit.value, nil
		}
	}
	return Value{}, p.errf("invalid literal")
}

func (p *parser) number() (Value, error) {
	start := p.pos
	for p.pos < len(p.src) {
		c := p.src[p.pos]
		if (c >= '0' && c <= '9') || c == '.' || c == '-' || c == '+' || c == 'e' || c == 'E' {
			p.pos++
			continue
		}
		break
	}
	n, err := strconv.ParseFloat(p.src[start:p.pos], 64)
	if err != nil {
		return Value{}, p.errf("invalid number %q", p.src[start:p.pos])
	}
	return NumberValue(n), nil
}
