// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package flow

import (
	"context"
	"fmt"

	"code.hybscloud.com/kont"
	"go.uber.org/zap"
)

// Integer is any Go integer type usable as a ForiLoop bound.
type Integer interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 |
		~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64 | ~uintptr
}

// WhileLoop repeats val = bodyFn(val) while condFn(val) holds, starting
// from init, and returns the final val. condFn is checked before every
// step. There is no iteration cap in either mode.
//
// In Primitives mode the loop is staged with ExprWhileLoop and every
// body output must keep the structure of init, else ErrCarryMismatch.
func WhileLoop[S any](ctx context.Context, condFn func(S) bool, bodyFn func(S) S, init S) (S, error) {
	m, l := dispatch(ctx, "while_loop")
	if m == Eager {
		val := init
		for condFn(val) {
			val = bodyFn(val)
		}
		return val, nil
	}
	return unwrap(l, "while_loop", kont.RunPure(ExprWhileLoop(condFn, lift(bodyFn), init)))
}

// ForiLoop runs val = bodyFn(i, val) for i from lower up to but
// excluding upper, starting from init. Nothing runs when lower >= upper.
// Both bounds must fit in an int, else ErrBounds and bodyFn never runs.
//
// In Primitives mode the loop is staged with ExprForiLoop and every
// body output must keep the structure of init, else ErrCarryMismatch.
func ForiLoop[I Integer, S any](ctx context.Context, lower, upper I, bodyFn func(int, S) S, init S) (S, error) {
	m, l := dispatch(ctx, "fori_loop")
	lo, okLo := toInt(lower)
	hi, okHi := toInt(upper)
	if !okLo || !okHi {
		err := fmt.Errorf("%w: [%d, %d)", ErrBounds, lower, upper)
		logReject(l, "fori_loop", err)
		return init, err
	}
	if m == Eager {
		val := init
		for i := lo; i < hi; i++ {
			val = bodyFn(i, val)
		}
		return val, nil
	}
	staged := func(i int, s S) kont.Expr[S] {
		return kont.ExprReturn(bodyFn(i, s))
	}
	return unwrap(l, "fori_loop", kont.RunPure(ExprForiLoop(lo, hi, staged, init)))
}

// toInt converts v to int, reporting false when the value does not survive
// the conversion or its sign flips.
func toInt[I Integer](v I) (int, bool) {
	i := int(v)
	if I(i) != v || (i < 0) != (v < 0) {
		return 0, false
	}
	return i, true
}

// lift stages a plain function as one that completes immediately.
func lift[S any](f func(S) S) func(S) kont.Expr[S] {
	return func(s S) kont.Expr[S] {
		return kont.ExprReturn(f(s))
	}
}

// unwrap splits a staged result into Go's value, error form.
func unwrap[S any](l *zap.Logger, op string, e kont.Either[error, S]) (S, error) {
	if err, ok := e.GetLeft(); ok {
		logReject(l, op, err)
		var zero S
		return zero, err
	}
	v, _ := e.GetRight()
	return v, nil
}
