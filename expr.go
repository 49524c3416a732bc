// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package flow

import (
	"fmt"

	"code.hybscloud.com/kont"
)

// Staged programs. Each Expr constructor returns a defunctionalized
// kont.Expr evaluating to Right(result), or Left(err) when the traced
// values break the primitive's structural contract. Bodies are staged
// too, so callers may compose them with kont.ExprMap and friends.
// Evaluate with kont.RunPure.

// ExprWhileLoop stages a while loop: while condFn(val), val = bodyFn(val).
// Every body output must keep the tree structure and leaf avals of init.
func ExprWhileLoop[S any](condFn func(S) bool, bodyFn func(S) kont.Expr[S], init S) kont.Expr[kont.Either[error, S]] {
	want := signatureOf(init)
	return exprLoop(init, func(s S) kont.Expr[kont.Either[S, kont.Either[error, S]]] {
		if !condFn(s) {
			return kont.ExprReturn(kont.Right[S](kont.Right[error](s)))
		}
		return kont.ExprMap(bodyFn(s), func(next S) kont.Either[S, kont.Either[error, S]] {
			if err := checkCarry("while_loop", want, next); err != nil {
				return kont.Right[S](kont.Left[error, S](err))
			}
			return kont.Left[S, kont.Either[error, S]](next)
		})
	})
}

type foriState[S any] struct {
	i   int
	val S
}

// ExprForiLoop stages a counted loop: for i in [lower, upper), val = bodyFn(i, val).
// Every body output must keep the tree structure and leaf avals of init.
func ExprForiLoop[S any](lower, upper int, bodyFn func(int, S) kont.Expr[S], init S) kont.Expr[kont.Either[error, S]] {
	want := signatureOf(init)
	return exprLoop(foriState[S]{i: lower, val: init}, func(s foriState[S]) kont.Expr[kont.Either[foriState[S], kont.Either[error, S]]] {
		if s.i >= upper {
			return kont.ExprReturn(kont.Right[foriState[S]](kont.Right[error](s.val)))
		}
		return kont.ExprMap(bodyFn(s.i, s.val), func(next S) kont.Either[foriState[S], kont.Either[error, S]] {
			if err := checkCarry("fori_loop", want, next); err != nil {
				return kont.Right[foriState[S]](kont.Left[error, S](err))
			}
			return kont.Left[foriState[S], kont.Either[error, S]](foriState[S]{i: s.i + 1, val: next})
		})
	})
}

// ScanResult is the outcome of a scan: the final carry and the stacked
// per-step outputs.
type ScanResult[C any] struct {
	Carry C
	Ys    any
}

// StepOut is what a scan step produces: the next carry and the step output.
type StepOut[C any] struct {
	Carry C
	Y     any
}

// Step is one staged scan step.
type Step[C any] func(carry C, x any) kont.Expr[StepOut[C]]

type scanState[C any] struct {
	i     int
	carry C
	ys    []any
}

// scanFailed wraps err as a finished scan.
func scanFailed[C any](err error) kont.Either[scanState[C], kont.Either[error, ScanResult[C]]] {
	return kont.Right[scanState[C]](kont.Left[error, ScanResult[C]](err))
}

// ExprScan stages a scan over the leading axis of xs. Every leaf of xs
// must be an Array with at least one dimension, all of one leading
// length n. Step i receives the tree of i-th slices and the carry
// returned by step i-1. Outputs must share one structure; their leaves
// are stacked along a new leading axis of length n. With n == 0 the
// output is nil.
func ExprScan[C any](step Step[C], init C, xs any) kont.Expr[kont.Either[error, ScanResult[C]]] {
	leaves, def := Flatten(xs)
	n, err := batchLength(leaves)
	if err != nil {
		return kont.ExprReturn(kont.Left[error, ScanResult[C]](err))
	}
	want := signatureOf(init)
	start := scanState[C]{carry: init, ys: make([]any, 0, n)}
	return exprLoop(start, func(s scanState[C]) kont.Expr[kont.Either[scanState[C], kont.Either[error, ScanResult[C]]]] {
		if s.i >= n {
			ys, err := stackOutputs(s.ys)
			if err != nil {
				return kont.ExprReturn(scanFailed[C](err))
			}
			return kont.ExprReturn(kont.Right[scanState[C]](kont.Right[error](ScanResult[C]{Carry: s.carry, Ys: ys})))
		}
		slice := make([]any, len(leaves))
		for j, l := range leaves {
			slice[j] = l.(Array).At(s.i)
		}
		x, err := Unflatten(def, slice)
		if err != nil {
			return kont.ExprReturn(scanFailed[C](err))
		}
		return kont.ExprMap(step(s.carry, x), func(out StepOut[C]) kont.Either[scanState[C], kont.Either[error, ScanResult[C]]] {
			if err := checkCarry("scan", want, out.Carry); err != nil {
				return scanFailed[C](err)
			}
			next := scanState[C]{i: s.i + 1, carry: out.Carry, ys: append(s.ys, out.Y)}
			return kont.Left[scanState[C], kont.Either[error, ScanResult[C]]](next)
		})
	})
}

func checkCarry[S any](op string, want signature, next S) error {
	if got := signatureOf(next); !got.equal(want) {
		return fmt.Errorf("%w: %s body returned %s, want %s", ErrCarryMismatch, op, got, want)
	}
	return nil
}

// batchLength returns the common leading length of scan input leaves.
func batchLength(leaves []any) (int, error) {
	n := -1
	for i, l := range leaves {
		a, ok := l.(Array)
		if !ok || a.Ndim() == 0 {
			return 0, fmt.Errorf("%w: leaf %d is %s", ErrNotBatched, i, aval(l))
		}
		if n >= 0 && a.Len() != n {
			return 0, fmt.Errorf("%w: leaf %d has %d, want %d", ErrLengthMismatch, i, a.Len(), n)
		}
		n = a.Len()
	}
	if n < 0 {
		return 0, nil
	}
	return n, nil
}

// stackOutputs stacks per-step output trees leaf by leaf.
func stackOutputs(ys []any) (any, error) {
	if len(ys) == 0 {
		return nil, nil
	}
	first, def := Flatten(ys[0])
	want := signatureOf(ys[0])
	columns := make([][]any, len(first))
	for j := range columns {
		columns[j] = make([]any, len(ys))
	}
	for i, y := range ys {
		if got := signatureOf(y); !got.equal(want) {
			return nil, fmt.Errorf("%w: scan output %d is %s, want %s", ErrCarryMismatch, i, got, want)
		}
		for j, l := range Leaves(y) {
			columns[j][i] = l
		}
	}
	stacked := make([]any, len(columns))
	for j, col := range columns {
		a, err := Stack(col)
		if err != nil {
			return nil, err
		}
		stacked[j] = a
	}
	return Unflatten(def, stacked)
}
