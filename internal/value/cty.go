package value

import (
	"fmt"
	"math"

	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/convert"
)

// ToCty converts a value for use inside an HCL evaluation context.
func (v Value) ToCty() cty.Value {
	switch v.kind {
	case KindNumber:
		if math.IsNaN(v.num) {
			return cty.NullVal(cty.Number)
		}
		return cty.NumberFloatVal(v.num)
	case KindInteger:
		return cty.NumberIntVal(v.i)
	case KindBoolean:
		return cty.BoolVal(v.b)
	default:
		return cty.StringVal(v.str)
	}
}

// FromCty converts the result of an HCL evaluation back into a value of the
// wanted kind, using cty's own conversion rules first.
func FromCty(cv cty.Value, want Kind) (Value, error) {
	if cv.IsNull() {
		return Value{}, fmt.Errorf("null value cannot be converted to %s", want)
	}
	if !cv.IsKnown() {
		return Value{}, fmt.Errorf("unknown value cannot be converted to %s", want)
	}

	switch want {
	case KindNumber, KindInteger:
		num, err := convert.Convert(cv, cty.Number)
		if err != nil {
			return Value{}, fmt.Errorf("failed to convert to number: %w", err)
		}
		bf := num.AsBigFloat()
		if want == KindInteger {
			if !bf.IsInt() {
				return Value{}, fmt.Errorf("%s is not an integer", bf.String())
			}
			i, _ := bf.Int64()
			return Integer(i), nil
		}
		f, _ := bf.Float64()
		return Number(f), nil
	case KindBoolean:
		b, err := convert.Convert(cv, cty.Bool)
		if err != nil {
			return Value{}, fmt.Errorf("failed to convert to boolean: %w", err)
		}
		return Bool(b.True()), nil
	default:
		s, err := convert.Convert(cv, cty.String)
		if err != nil {
			return Value{}, fmt.Errorf("failed to convert to string: %w", err)
		}
		if want == KindMath {
			return Math(s.AsString()), nil
		}
		return String(s.AsString()), nil
	}
}
