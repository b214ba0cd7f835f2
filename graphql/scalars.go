/**
 * Copyright (c) 2018, The Artemis Authors.
 *
 * Permission to use, copy, modify, and/or distribute this software for any
 * purpose with or without fee is hereby granted, provided that the above
 * copyright notice and this permission notice appear in all copies.
 *
 * THE SOFTWARE IS PROVIDED "AS IS" AND THE AUTHOR DISCLAIMS ALL WARRANTIES
 * WITH REGARD TO THIS SOFTWARE INCLUDING ALL IMPLIED WARRANTIES OF
 * MERCHANTABILITY AND FITNESS. IN NO EVENT SHALL THE AUTHOR BE LIABLE FOR
 * ANY SPECIAL, DIRECT, INDIRECT, OR CONSEQUENTIAL DAMAGES OR ANY DAMAGES
 * WHATSOEVER RESULTING FROM LOSS OF USE, DATA OR PROFITS, WHETHER IN AN
 * ACTION OF CONTRACT, NEGLIGENCE OR OTHER TORTIOUS ACTION, ARISING OUT OF
 * OR IN CONNECTION WITH THE USE OR PERFORMANCE OF THIS SOFTWARE.
 */

package graphql

import (
	"math"
	"reflect"
	"strconv"

	"github.com/botobag/bookshelf/graphql/ast"
)

// As per the GraphQL Spec, Integers are only treated as valid when a valid 32-bit signed integer,
// providing the broadest support across platforms.
const (
	MaxInt = math.MaxInt32
	MinInt = math.MinInt32
)

var (
	intType = MustNewScalar(&ScalarConfig{
		Name: "Int",
		Description: "The `Int` scalar type represents non-fractional signed whole numeric values. " +
			"Int can represent values between -(2^31) and 2^31 - 1.",
		ResultCoercer: ScalarResultCoercerFunc(coerceIntResult),
		InputCoercer:  intInputCoercer{},
	})

	floatType = MustNewScalar(&ScalarConfig{
		Name: "Float",
		Description: "The `Float` scalar type represents signed double-precision fractional values " +
			"as specified by [IEEE 754](https://en.wikipedia.org/wiki/IEEE_floating_point).",
		ResultCoercer: ScalarResultCoercerFunc(coerceFloatResult),
		InputCoercer:  floatInputCoercer{},
	})

	stringType = MustNewScalar(&ScalarConfig{
		Name: "String",
		Description: "The `String` scalar type represents textual data, represented as UTF-8 " +
			"character sequences. The String type is most often used by GraphQL to represent " +
			"free-form human-readable text.",
		ResultCoercer: ScalarResultCoercerFunc(coerceStringResult),
		InputCoercer:  stringInputCoercer{},
	})

	booleanType = MustNewScalar(&ScalarConfig{
		Name:          "Boolean",
		Description:   "The `Boolean` scalar type represents `true` or `false`.",
		ResultCoercer: ScalarResultCoercerFunc(coerceBooleanResult),
		InputCoercer:  booleanInputCoercer{},
	})

	idType = MustNewScalar(&ScalarConfig{
		Name: "ID",
		Description: "The `ID` scalar type represents a unique identifier, often used to refetch " +
			"an object or as key for a cache.",
		ResultCoercer: ScalarResultCoercerFunc(coerceIDResult),
		InputCoercer:  idInputCoercer{},
	})
)

// Int returns the built-in Int scalar.
func Int() *Scalar { return intType }

// Float returns the built-in Float scalar.
func Float() *Scalar { return floatType }

// String returns the built-in String scalar.
func String() *Scalar { return stringType }

// Boolean returns the built-in Boolean scalar.
func Boolean() *Scalar { return booleanType }

// ID returns the built-in ID scalar.
func ID() *Scalar { return idType }

// SpecifiedScalarTypes returns the scalars every schema contains.
func SpecifiedScalarTypes() []*Scalar {
	return []*Scalar{intType, floatType, stringType, booleanType, idType}
}

// numberOf converts Go numeric kinds into either an int64 or a float64.
func numberOf(value interface{}) (i int64, f float64, isInt bool, ok bool) {
	v := reflect.ValueOf(value)
	switch v.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return v.Int(), 0, true, true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		u := v.Uint()
		if u > math.MaxInt64 {
			return 0, float64(u), false, true
		}
		return int64(u), 0, true, true
	case reflect.Float32, reflect.Float64:
		return 0, v.Float(), false, true
	}
	return 0, 0, false, false
}

func intFromFloat(f float64) (int, bool) {
	if f != math.Trunc(f) || math.IsInf(f, 0) || f > MaxInt || f < MinInt {
		return 0, false
	}
	return int(f), true
}

func coerceIntResult(value interface{}) (interface{}, error) {
	if b, ok := value.(bool); ok {
		if b {
			return 1, nil
		}
		return 0, nil
	}

	if s, ok := value.(string); ok {
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return nil, NewCoercionError("Int cannot represent non-integer value: %s", Inspect(value))
		}
		value = f
	}

	i, f, isInt, ok := numberOf(value)
	if !ok {
		return nil, NewCoercionError("Int cannot represent non-integer value: %s", Inspect(value))
	}
	if isInt {
		if i > MaxInt || i < MinInt {
			return nil, NewCoercionError("Int cannot represent non 32-bit signed integer value: %s",
				Inspect(value))
		}
		return int(i), nil
	}
	if f != math.Trunc(f) {
		return nil, NewCoercionError("Int cannot represent non-integer value: %s", Inspect(value))
	}
	result, ok := intFromFloat(f)
	if !ok {
		return nil, NewCoercionError("Int cannot represent non 32-bit signed integer value: %s",
			Inspect(value))
	}
	return result, nil
}

type intInputCoercer struct{}

func (intInputCoercer) CoerceVariableValue(value interface{}) (interface{}, error) {
	i, f, isInt, ok := numberOf(value)
	if !ok {
		return nil, NewCoercionError("Int cannot represent non-integer value: %s", Inspect(value))
	}
	if isInt {
		if i > MaxInt || i < MinInt {
			return nil, NewCoercionError("Int cannot represent non 32-bit signed integer value: %s",
				Inspect(value))
		}
		return int(i), nil
	}
	if f != math.Trunc(f) {
		return nil, NewCoercionError("Int cannot represent non-integer value: %s", Inspect(value))
	}
	result, ok := intFromFloat(f)
	if !ok {
		return nil, NewCoercionError("Int cannot represent non 32-bit signed integer value: %s",
			Inspect(value))
	}
	return result, nil
}

func (intInputCoercer) CoerceLiteralValue(value ast.Value) (interface{}, error) {
	if value, ok := value.(*ast.IntValue); ok {
		i, err := strconv.ParseInt(value.Value(), 10, 32)
		if err == nil {
			return int(i), nil
		}
		return nil, NewCoercionError("Int cannot represent non 32-bit signed integer value: %s",
			value.Value())
	}
	return nil, NewCoercionError("Int cannot represent non-integer value: %s", ast.PrintValue(value))
}

func coerceFloatResult(value interface{}) (interface{}, error) {
	if b, ok := value.(bool); ok {
		if b {
			return float64(1), nil
		}
		return float64(0), nil
	}

	if s, ok := value.(string); ok {
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return nil, NewCoercionError("Float cannot represent non numeric value: %s", Inspect(value))
		}
		return f, nil
	}

	i, f, isInt, ok := numberOf(value)
	switch {
	case !ok:
		return nil, NewCoercionError("Float cannot represent non numeric value: %s", Inspect(value))
	case isInt:
		return float64(i), nil
	case math.IsInf(f, 0) || math.IsNaN(f):
		return nil, NewCoercionError("Float cannot represent non numeric value: %s", Inspect(value))
	}
	return f, nil
}

type floatInputCoercer struct{}

func (floatInputCoercer) CoerceVariableValue(value interface{}) (interface{}, error) {
	i, f, isInt, ok := numberOf(value)
	switch {
	case !ok:
		return nil, NewCoercionError("Float cannot represent non numeric value: %s", Inspect(value))
	case isInt:
		return float64(i), nil
	case math.IsInf(f, 0) || math.IsNaN(f):
		return nil, NewCoercionError("Float cannot represent non numeric value: %s", Inspect(value))
	}
	return f, nil
}

func (floatInputCoercer) CoerceLiteralValue(value ast.Value) (interface{}, error) {
	var text string
	switch value := value.(type) {
	case *ast.IntValue:
		text = value.Value()
	case *ast.FloatValue:
		text = value.Value()
	default:
		return nil, NewCoercionError("Float cannot represent non numeric value: %s", ast.PrintValue(value))
	}
	f, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return nil, NewCoercionError("Float cannot represent non numeric value: %s", text)
	}
	return f, nil
}

func coerceStringResult(value interface{}) (interface{}, error) {
	switch value := value.(type) {
	case string:
		return value, nil
	case bool:
		return strconv.FormatBool(value), nil
	case []byte:
		return string(value), nil
	}

	i, f, isInt, ok := numberOf(value)
	switch {
	case !ok:
		// Honor named string types.
		v := reflect.ValueOf(value)
		if v.Kind() == reflect.String {
			return v.String(), nil
		}
		return nil, NewCoercionError("String cannot represent value: %s", Inspect(value))
	case isInt:
		return strconv.FormatInt(i, 10), nil
	}
	return strconv.FormatFloat(f, 'g', -1, 64), nil
}

type stringInputCoercer struct{}

func (stringInputCoercer) CoerceVariableValue(value interface{}) (interface{}, error) {
	if s, ok := value.(string); ok {
		return s, nil
	}
	return nil, NewCoercionError("String cannot represent a non string value: %s", Inspect(value))
}

func (stringInputCoercer) CoerceLiteralValue(value ast.Value) (interface{}, error) {
	if value, ok := value.(*ast.StringValue); ok {
		return value.Value(), nil
	}
	return nil, NewCoercionError("String cannot represent a non string value: %s", ast.PrintValue(value))
}

func coerceBooleanResult(value interface{}) (interface{}, error) {
	if b, ok := value.(bool); ok {
		return b, nil
	}

	i, f, isInt, ok := numberOf(value)
	switch {
	case !ok:
		return nil, NewCoercionError("Boolean cannot represent a non boolean value: %s", Inspect(value))
	case isInt:
		return i != 0, nil
	}
	return f != 0, nil
}

type booleanInputCoercer struct{}

func (booleanInputCoercer) CoerceVariableValue(value interface{}) (interface{}, error) {
	if b, ok := value.(bool); ok {
		return b, nil
	}
	return nil, NewCoercionError("Boolean cannot represent a non boolean value: %s", Inspect(value))
}

func (booleanInputCoercer) CoerceLiteralValue(value ast.Value) (interface{}, error) {
	if value, ok := value.(*ast.BooleanValue); ok {
		return value.Value(), nil
	}
	return nil, NewCoercionError("Boolean cannot represent a non boolean value: %s", ast.PrintValue(value))
}

func coerceIDResult(value interface{}) (interface{}, error) {
	if s, ok := value.(string); ok {
		return s, nil
	}
	i, _, isInt, ok := numberOf(value)
	if ok && isInt {
		return strconv.FormatInt(i, 10), nil
	}
	return nil, NewCoercionError("ID cannot represent value: %s", Inspect(value))
}

type idInputCoercer struct{}

func (idInputCoercer) CoerceVariableValue(value interface{}) (interface{}, error) {
	if s, ok := value.(string); ok {
		return s, nil
	}
	i, f, isInt, ok := numberOf(value)
	if ok && isInt {
		return strconv.FormatInt(i, 10), nil
	}
	if ok && f == math.Trunc(f) && !math.IsInf(f, 0) {
		return strconv.FormatFloat(f, 'f', -1, 64), nil
	}
	return nil, NewCoercionError("ID cannot represent value: %s", Inspect(value))
}

func (idInputCoercer) CoerceLiteralValue(value ast.Value) (interface{}, error) {
	switch value := value.(type) {
	case *ast.StringValue:
		return value.Value(), nil
	case *ast.IntValue:
		return value.Value(), nil
	}
	return nil, NewCoercionError("ID cannot represent value: %s", ast.PrintValue(value))
}
