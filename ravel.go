// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package flow

import (
	"fmt"
	"reflect"
)

// Unravel rebuilds a tree from a flat buffer produced by Ravel.
type Unravel func(buf []float64) (any, error)

// Ravel flattens every leaf of tree into one float64 buffer, in
// depth-first leaf order and row-major order within arrays. The returned
// Unravel restores the structure, converting each scalar leaf back to
// its original Go kind and each array back to its original shape.
func Ravel(tree any) ([]float64, Unravel, error) {
	leaves, def := Flatten(tree)
	var buf []float64
	restore := make([]func([]float64) any, len(leaves))
	sizes := make([]int, len(leaves))
	for i, l := range leaves {
		switch v := l.(type) {
		case Array:
			buf = append(buf, v.data...)
			shape := v.Shape()
			sizes[i] = len(v.data)
			restore[i] = func(b []float64) any {
				return Array{shape: shape, data: append([]float64(nil), b...)}
			}
		default:
			x, ok := toFloat(l)
			if !ok {
				return nil, nil, fmt.Errorf("%w: leaf %d is %T", ErrNotNumeric, i, l)
			}
			buf = append(buf, x)
			t := reflect.TypeOf(l)
			sizes[i] = 1
			restore[i] = func(b []float64) any {
				return reflect.ValueOf(b[0]).Convert(t).Interface()
			}
		}
	}
	total := len(buf)
	unravel := func(b []float64) (any, error) {
		if len(b) != total {
			return nil, fmt.Errorf("%w: buffer has %d elements, want %d", ErrLeafCount, len(b), total)
		}
		out := make([]any, len(leaves))
		off := 0
		for i, n := range sizes {
			out[i] = restore[i](b[off : off+n])
			off += n
		}
		return Unflatten(def, out)
	}
	return buf, unravel, nil
}

// toFloat converts any Go integer or float scalar to float64.
func toFloat(v any) (float64, bool) {
	if v == nil {
		return 0, false
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Float32, reflect.Float64:
		return rv.Float(), true
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return float64(rv.Int()), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return float64(rv.Uint()), true
	}
	return 0, false
}
