package vela

import (
	"math"
	"reflect"
)

// SafeNotEqual reports whether b differs from a for invalidation. NaN
// equals NaN. Pointers, maps, slices, funcs and channels are always
// considered changed, since their contents may have been mutated in place.
func SafeNotEqual(a, b any) bool {
	if isNaN(a) {
		return !isNaN(b)
	}
	if isReference(a) {
		return true
	}
	return !valuesEqual(a, b)
}

// NotEqual is the comparison for immutable data: NaN-aware value
// comparison with no special case for references.
func NotEqual(a, b any) bool {
	if isNaN(a) {
		return !isNaN(b)
	}
	return !valuesEqual(a, b)
}

func isNaN(v any) bool {
	switch f := v.(type) {
	case float64:
		return math.IsNaN(f)
	case float32:
		return math.IsNaN(float64(f))
	}
	return false
}

func isReference(v any) bool {
	if v == nil {
		return false
	}
	switch reflect.TypeOf(v).Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan, reflect.UnsafePointer:
		return true
	}
	return false
}

// valuesEqual compares with == and treats incomparable values as unequal.
func valuesEqual(a, b any) (eq bool) {
	defer func() {
		if recover() != nil {
			eq = false
		}
	}()
	return a == b
}
