// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package flow

import "errors"

var (
	// ErrArity reports a positional construction with the wrong number of values.
	ErrArity = errors.New("flow: wrong number of tuple values")

	// ErrUnknownField reports a keyword construction or update naming a field
	// the tuple type does not have.
	ErrUnknownField = errors.New("flow: unknown tuple field")

	// ErrMissingField reports a keyword construction that leaves a field unset.
	ErrMissingField = errors.New("flow: missing tuple field")

	// ErrLeafCount reports an Unflatten or Unravel given the wrong number of leaves.
	ErrLeafCount = errors.New("flow: leaf count does not match tree structure")

	// ErrShape reports array data whose length does not match the requested shape,
	// or values of differing shapes passed to Stack.
	ErrShape = errors.New("flow: shape mismatch")

	// ErrNotNumeric reports a leaf that cannot be raveled into a float64 buffer.
	ErrNotNumeric = errors.New("flow: leaf is not numeric")

	// ErrBranchMismatch reports a primitive Cond whose branches produce
	// values of different structure.
	ErrBranchMismatch = errors.New("flow: cond branches differ in structure")

	// ErrCarryMismatch reports a primitive loop or scan whose body changes
	// the structure of the loop carry, or a scan whose per-step outputs
	// differ in structure.
	ErrCarryMismatch = errors.New("flow: loop carry changed structure")

	// ErrNotBatched reports a primitive Scan input leaf without a leading axis.
	ErrNotBatched = errors.New("flow: scan input leaf has no leading axis")

	// ErrBounds reports ForiLoop bounds that do not fit in an int.
	ErrBounds = errors.New("flow: loop bound out of int range")

	// ErrLengthMismatch reports primitive Scan input leaves whose leading
	// axes differ in length.
	ErrLengthMismatch = errors.New("flow: scan input leaves differ in length")
)
