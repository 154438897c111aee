// Package value defines the small fixed union of values a state variable can
// hold, together with the conversions the catalogue and the expression
// evaluator need.
package value

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Kind identifies which member of the union a Value carries.
type Kind uint8

const (
	KindString Kind = iota
	KindNumber
	KindInteger
	KindBoolean
	KindMath
)

func (k Kind) String() string {
	switch k {
	case KindString:
		return "string"
	case KindNumber:
		return "number"
	case KindInteger:
		return "integer"
	case KindBoolean:
		return "boolean"
	case KindMath:
		return "math"
	default:
		return fmt.Sprintf("kind(%d)", uint8(k))
	}
}

// Value is an immutable tagged union. The zero Value is the empty string.
type Value struct {
	kind Kind
	str  string
	num  float64
	i    int64
	b    bool
}

// String returns a string value.
func String(s string) Value { return Value{kind: KindString, str: s} }

// Number returns a floating point value.
func Number(f float64) Value { return Value{kind: KindNumber, num: f} }

// Integer returns an integer value.
func Integer(i int64) Value { return Value{kind: KindInteger, i: i} }

// Bool returns a boolean value.
func Bool(b bool) Value { return Value{kind: KindBoolean, b: b} }

// Math returns a symbolic expression value holding the expression source.
func Math(src string) Value { return Value{kind: KindMath, str: src} }

// Zero returns the natural empty value of a kind.
func Zero(k Kind) Value {
	switch k {
	case KindNumber:
		return Number(0)
	case KindInteger:
		return Integer(0)
	case KindBoolean:
		return Bool(false)
	case KindMath:
		return Math("")
	default:
		return String("")
	}
}

func (v Value) Kind() Kind { return v.kind }

// Text renders the value the way it reads inside a document.
func (v Value) Text() string {
	switch v.kind {
	case KindNumber:
		return formatNumber(v.num)
	case KindInteger:
		return strconv.FormatInt(v.i, 10)
	case KindBoolean:
		return strconv.FormatBool(v.b)
	default:
		return v.str
	}
}

func (v Value) String() string {
	if v.kind == KindString {
		return strconv.Quote(v.str)
	}
	return v.Text()
}

// AsNumber converts numeric values and numeric-looking strings.
func (v Value) AsNumber() (float64, error) {
	switch v.kind {
	case KindNumber:
		return v.num, nil
	case KindInteger:
		return float64(v.i), nil
	case KindString, KindMath:
		f, err := strconv.ParseFloat(strings.TrimSpace(v.str), 64)
		if err != nil {
			return math.NaN(), fmt.Errorf("value %s is not a number", v)
		}
		return f, nil
	default:
		return math.NaN(), fmt.Errorf("cannot convert %s value to number", v.kind)
	}
}

// AsInteger converts integers, whole numbers and integer-looking strings.
func (v Value) AsInteger() (int64, error) {
	switch v.kind {
	case KindInteger:
		return v.i, nil
	case KindNumber:
		if v.num != math.Trunc(v.num) || math.IsInf(v.num, 0) || math.IsNaN(v.num) {
			return 0, fmt.Errorf("number %s is not an integer", v)
		}
		return int64(v.num), nil
	case KindString:
		i, err := strconv.ParseInt(strings.TrimSpace(v.str), 10, 64)
		if err != nil {
			return 0, fmt.Errorf("value %s is not an integer", v)
		}
		return i, nil
	default:
		return 0, fmt.Errorf("cannot convert %s value to integer", v.kind)
	}
}

// AsBool converts booleans and the literal strings "true" and "false".
func (v Value) AsBool() (bool, error) {
	switch v.kind {
	case KindBoolean:
		return v.b, nil
	case KindString:
		b, err := strconv.ParseBool(strings.TrimSpace(v.str))
		if err != nil {
			return false, fmt.Errorf("value %s is not a boolean", v)
		}
		return b, nil
	default:
		return false, fmt.Errorf("cannot convert %s value to boolean", v.kind)
	}
}

// Convert returns v as kind k.
func (v Value) Convert(k Kind) (Value, error) {
	if v.kind == k {
		return v, nil
	}
	switch k {
	case KindString:
		return String(v.Text()), nil
	case KindMath:
		return Math(v.Text()), nil
	case KindNumber:
		f, err := v.AsNumber()
		if err != nil {
			return Value{}, err
		}
		return Number(f), nil
	case KindInteger:
		i, err := v.AsInteger()
		if err != nil {
			return Value{}, err
		}
		return Integer(i), nil
	case KindBoolean:
		b, err := v.AsBool()
		if err != nil {
			return Value{}, err
		}
		return Bool(b), nil
	}
	return Value{}, fmt.Errorf("unknown value kind %d", k)
}

// Equal reports whether both values have the same kind and payload. NaN
// numbers compare equal to each other so cached values can be compared.
func (v Value) Equal(o Value) bool {
	if v.kind != o.kind {
		return false
	}
	switch v.kind {
	case KindNumber:
		return v.num == o.num || (math.IsNaN(v.num) && math.IsNaN(o.num))
	case KindInteger:
		return v.i == o.i
	case KindBoolean:
		return v.b == o.b
	default:
		return v.str == o.str
	}
}

// Parse converts literal markup text into a value of the requested kind.
// Unparseable numbers become NaN rather than failing, matching how documents
// treat bad numeric input.
func Parse(k Kind, text string) (Value, error) {
	switch k {
	case KindString:
		return String(text), nil
	case KindMath:
		return Math(strings.TrimSpace(text)), nil
	case KindNumber:
		f, err := strconv.ParseFloat(strings.TrimSpace(text), 64)
		if err != nil {
			return Number(math.NaN()), nil
		}
		return Number(f), nil
	case KindInteger:
		i, err := strconv.ParseInt(strings.TrimSpace(text), 10, 64)
		if err != nil {
			return Value{}, fmt.Errorf("%q is not an integer", text)
		}
		return Integer(i), nil
	case KindBoolean:
		b, err := strconv.ParseBool(strings.TrimSpace(text))
		if err != nil {
			return Value{}, fmt.Errorf("%q is not a boolean", text)
		}
		return Bool(b), nil
	}
	return Value{}, fmt.Errorf("unknown value kind %d", k)
}

// SplitTuple splits a literal like "(3,4)" or "3, 4" into its entries.
func SplitTuple(text string) []string {
	t := strings.TrimSpace(text)
	t = strings.TrimPrefix(t, "(")
	t = strings.TrimSuffix(t, ")")
	if strings.TrimSpace(t) == "" {
		return nil
	}
	parts := strings.Split(t, ",")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return parts
}

// MarshalJSON renders the value as a JSON primitive. Math values render as
// their source text.
func (v Value) MarshalJSON() ([]byte, error) {
	switch v.kind {
	case KindNumber:
		if math.IsNaN(v.num) || math.IsInf(v.num, 0) {
			return json.Marshal(formatNumber(v.num))
		}
		return json.Marshal(v.num)
	case KindInteger:
		return json.Marshal(v.i)
	case KindBoolean:
		return json.Marshal(v.b)
	default:
		return json.Marshal(v.str)
	}
}

// FromJSON converts a decoded JSON primitive into a value.
func FromJSON(raw any) (Value, error) {
	switch t := raw.(type) {
	case string:
		return String(t), nil
	case bool:
		return Bool(t), nil
	case float64:
		return Number(t), nil
	case json.Number:
		if i, err := t.Int64(); err == nil {
			return Integer(i), nil
		}
		f, err := t.Float64()
		if err != nil {
			return Value{}, err
		}
		return Number(f), nil
	case int:
		return Integer(int64(t)), nil
	case int64:
		return Integer(t), nil
	}
	return Value{}, fmt.Errorf("unsupported argument type %T", raw)
}

func formatNumber(f float64) string {
	switch {
	case math.IsNaN(f):
		return "NaN"
	case math.IsInf(f, 1):
		return "Infinity"
	case math.IsInf(f, -1):
		return "-Infinity"
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}
