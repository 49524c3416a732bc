// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package flow

import (
	"fmt"
	"slices"
)

// Array is an immutable row-major float64 array.
// Arrays are tree leaves; Scan batches over their leading axis.
type Array struct {
	shape []int
	data  []float64
}

// NewArray returns an array holding a copy of data with the given shape.
// With no shape, the array is one-dimensional with len(data) elements.
func NewArray(data []float64, shape ...int) (Array, error) {
	if len(shape) == 0 {
		shape = []int{len(data)}
	}
	n := 1
	for _, d := range shape {
		if d < 0 {
			return Array{}, fmt.Errorf("%w: negative dimension in %v", ErrShape, shape)
		}
		n *= d
	}
	if n != len(data) {
		return Array{}, fmt.Errorf("%w: %d values for shape %v", ErrShape, len(data), shape)
	}
	return Array{shape: slices.Clone(shape), data: slices.Clone(data)}, nil
}

// Zeros returns a zero-filled array of the given shape.
func Zeros(shape ...int) Array {
	n := 1
	for _, d := range shape {
		n *= d
	}
	return Array{shape: slices.Clone(shape), data: make([]float64, n)}
}

// Shape returns a copy of the dimensions.
func (a Array) Shape() []int { return slices.Clone(a.shape) }

// Ndim returns the number of dimensions.
func (a Array) Ndim() int { return len(a.shape) }

// Size returns the number of elements.
func (a Array) Size() int { return len(a.data) }

// Len returns the length of the leading axis, or 0 for a 0-d array.
func (a Array) Len() int {
	if len(a.shape) == 0 {
		return 0
	}
	return a.shape[0]
}

// Values returns a copy of the elements in row-major order.
func (a Array) Values() []float64 { return slices.Clone(a.data) }

// At returns the i-th slice along the leading axis: a float64 for a
// one-dimensional array, an Array of one less dimension otherwise.
func (a Array) At(i int) any {
	if len(a.shape) == 0 {
		panic("flow: At on 0-d array")
	}
	if i < 0 || i >= a.shape[0] {
		panic(fmt.Sprintf("flow: index %d out of range for leading axis %d", i, a.shape[0]))
	}
	if len(a.shape) == 1 {
		return a.data[i]
	}
	stride := len(a.data) / a.shape[0]
	return Array{
		shape: slices.Clone(a.shape[1:]),
		data:  slices.Clone(a.data[i*stride : (i+1)*stride]),
	}
}

// Equal reports whether a and b have the same shape and elements.
func (a Array) Equal(b Array) bool {
	return slices.Equal(a.shape, b.shape) && slices.Equal(a.data, b.data)
}

// String formats the array as "f64[2 3]{1 2 3 4 5 6}".
func (a Array) String() string {
	return fmt.Sprintf("f64%v%v", a.shape, a.data)
}

// Stack joins items along a new leading axis. Items must be all numeric
// scalars or all Arrays of one shape; scalars are stored as float64.
func Stack(items []any) (Array, error) {
	if len(items) == 0 {
		return Array{shape: []int{0}}, nil
	}
	inner, err := avalShape(items[0])
	if err != nil {
		return Array{}, err
	}
	stride := 1
	for _, d := range inner {
		stride *= d
	}
	data := make([]float64, 0, stride*len(items))
	for i, it := range items {
		if v, ok := it.(Array); ok {
			if !slices.Equal(v.shape, inner) {
				return Array{}, fmt.Errorf("%w: item %d has shape %v, want %v", ErrShape, i, v.shape, inner)
			}
			data = append(data, v.data...)
			continue
		}
		x, ok := toFloat(it)
		if !ok {
			return Array{}, fmt.Errorf("%w: item %d is %T", ErrNotNumeric, i, it)
		}
		if len(inner) != 0 {
			return Array{}, fmt.Errorf("%w: item %d is a scalar, want shape %v", ErrShape, i, inner)
		}
		data = append(data, x)
	}
	return Array{shape: append([]int{len(items)}, inner...), data: data}, nil
}

func avalShape(v any) ([]int, error) {
	if a, ok := v.(Array); ok {
		return a.shape, nil
	}
	if _, ok := toFloat(v); ok {
		return nil, nil
	}
	return nil, fmt.Errorf("%w: cannot stack %T", ErrNotNumeric, v)
}

// aval renders the abstract value of a leaf: its type and, for arrays,
// its shape. Staged primitives require avals to stay fixed.
func aval(v any) string {
	if a, ok := v.(Array); ok {
		return fmt.Sprintf("f64%v", a.shape)
	}
	return fmt.Sprintf("%T", v)
}

// signature is the structure and leaf avals of a value.
type signature struct {
	def   TreeDef
	avals []string
}

func signatureOf(v any) signature {
	leaves, def := Flatten(v)
	avals := make([]string, len(leaves))
	for i, l := range leaves {
		avals[i] = aval(l)
	}
	return signature{def: def, avals: avals}
}

func (s signature) equal(o signature) bool {
	return s.def.Equal(o.def) && slices.Equal(s.avals, o.avals)
}

func (s signature) String() string {
	return fmt.Sprintf("%s%v", s.def, s.avals)
}
