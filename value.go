package ruffle

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"
)

// valueKind discriminates the variants of a script Value.
type valueKind uint8

const (
	valueUndefined valueKind = iota
	valueNull
	valueBool
	valueNumber
	valueString
	valueObject
)

// Value is a script value handed across the native-dispatch boundary.
// The zero value is undefined.
type Value struct {
	kind valueKind
	b    bool
	n    float64
	s    string
	o    *Object
}

// Undefined returns the undefined value.
func Undefined() Value { return Value{} }

// Null returns the null value.
func Null() Value { return Value{kind: valueNull} }

// Bool wraps a boolean as a script value.
func Bool(b bool) Value { return Value{kind: valueBool, b: b} }

// Number wraps a float64 as a script value.
func Number(n float64) Value { return Value{kind: valueNumber, n: n} }

// String wraps a string as a script value.
func String(s string) Value { return Value{kind: valueString, s: s} }

// ObjectValue wraps an object as a script value.
func ObjectValue(o *Object) Value { return Value{kind: valueObject, o: o} }

// IsUndefined reports whether v is the undefined value.
func (v Value) IsUndefined() bool { return v.kind == valueUndefined }

// IsNumber reports whether v is a number.
func (v Value) IsNumber() bool { return v.kind == valueNumber }

// Num returns the raw number without coercion, or 0 if v is not a number.
func (v Value) Num() float64 {
	if v.kind == valueNumber {
		return v.n
	}
	return 0
}

// CoerceToF64 converts v to a number. Strings that do not parse become NaN
// rather than failing; only objects without a numeric representation
// produce a conversion error, which callers propagate unchanged.
func (v Value) CoerceToF64() (float64, error) {
	switch v.kind {
	case valueUndefined, valueNull:
		return math.NaN(), nil
	case valueBool:
		if v.b {
			return 1, nil
		}
		return 0, nil
	case valueNumber:
		return v.n, nil
	case valueString:
		s := strings.TrimSpace(v.s)
		if s == "" {
			return math.NaN(), nil
		}
		n, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return math.NaN(), nil
		}
		return n, nil
	case valueObject:
		return 0, fmt.Errorf("cannot convert object to number")
	}
	return math.NaN(), nil
}

// CoerceToI32 converts v to a 32-bit signed integer with the wrapping
// modulo-2^32 rule used by the bytecode interpreter.
func (v Value) CoerceToI32() (int32, error) {
	n, err := v.CoerceToF64()
	if err != nil {
		return 0, err
	}
	return f64ToWrappingI32(n), nil
}

// CoerceToU32 converts v to a 32-bit unsigned integer with wrapping.
func (v Value) CoerceToU32() (uint32, error) {
	n, err := v.CoerceToF64()
	if err != nil {
		return 0, err
	}
	return uint32(f64ToWrappingI32(n)), nil
}

// CoerceToString converts v to its string form.
func (v Value) CoerceToString() (string, error) {
	switch v.kind {
	case valueUndefined:
		return "undefined", nil
	case valueNull:
		return "null", nil
	case valueBool:
		if v.b {
			return "true", nil
		}
		return "false", nil
	case valueNumber:
		return formatF64(v.n), nil
	case valueString:
		return v.s, nil
	case valueObject:
		if c := v.o.Clip(); c != nil {
			return c.Path(), nil
		}
		return "[object Object]", nil
	}
	return "undefined", nil
}

// CoerceToObject converts v to an object. Non-object values produce an
// empty object, matching how the legacy surface tolerates bad arguments.
func (v Value) CoerceToObject() *Object {
	if v.kind == valueObject {
		return v.o
	}
	return NewObject()
}

// AsBool converts v to a boolean without error.
func (v Value) AsBool() bool {
	switch v.kind {
	case valueBool:
		return v.b
	case valueNumber:
		return v.n != 0 && !math.IsNaN(v.n)
	case valueString:
		return v.s != ""
	case valueObject:
		return true
	}
	return false
}

// formatF64 renders a number the way the scripting surface prints it:
// integral values without a fractional part.
func formatF64(n float64) string {
	if n == math.Trunc(n) && !math.IsInf(n, 0) && math.Abs(n) < 1e15 {
		return strconv.FormatInt(int64(n), 10)
	}
	return strconv.FormatFloat(n, 'g', -1, 64)
}

// f64ToWrappingI32 converts a float to an i32 with the interpreter's
// wrapping rule: NaN and infinities become 0, everything else is reduced
// modulo 2^32 into the signed range.
func f64ToWrappingI32(n float64) int32 {
	if math.IsNaN(n) || math.IsInf(n, 0) {
		return 0
	}
	t := math.Trunc(n)
	rem := math.Mod(t, 4294967296.0)
	if rem < 0 {
		rem += 4294967296.0
	}
	u := uint32(rem)
	return int32(u)
}

// Object is a script-facing object: a property bag with an optional array
// part and an optional back-reference to the display clip it wraps.
type Object struct {
	props map[string]Value
	elems []Value
	clip  *Clip
}

// NewObject creates an empty object.
func NewObject() *Object {
	return &Object{props: make(map[string]Value)}
}

// NewArray creates an object whose array part holds the given values.
func NewArray(vals ...Value) *Object {
	o := NewObject()
	o.elems = append(o.elems, vals...)
	return o
}

// Get returns the named property, or undefined if absent.
func (o *Object) Get(name string) Value {
	return o.props[name]
}

// Has reports whether the named property is present.
func (o *Object) Has(name string) bool {
	_, ok := o.props[name]
	return ok
}

// Set stores a property.
func (o *Object) Set(name string, v Value) {
	o.props[name] = v
}

// Keys returns the property names in sorted order.
func (o *Object) Keys() []string {
	keys := make([]string, 0, len(o.props))
	for k := range o.props {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Array returns the object's array part. The returned slice MUST NOT be
// mutated by the caller.
func (o *Object) Array() []Value {
	return o.elems
}

// Clip returns the display clip this object wraps, or nil for plain
// objects. This is the single downcast point the native dispatch layer
// uses to route a scripted method call to a tree operation.
func (o *Object) Clip() *Clip {
	if o == nil {
		return nil
	}
	return o.clip
}
