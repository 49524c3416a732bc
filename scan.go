// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package flow

import (
	"context"
	"fmt"

	"code.hybscloud.com/kont"
)

// Scan folds f over xs and collects one output per step.
//
// In Primitives mode Scan runs ExprScan: xs is a tree of Arrays batched
// along their leading axis, the carry returned by f is threaded into the
// next step, and the outputs are stacked into a tree of Arrays.
//
// In Eager mode xs is raveled into a flat float64 buffer and f is called
// once per element, in order, always with init as the carry. The carries
// f returns are dropped, so the returned carry is init. Each output must
// be a numeric scalar; the outputs are rebuilt into the structure of xs.
// Rebuilding converts each output back to the Go kind of the leaf it
// replaces, so fractional outputs over integer leaves are truncated:
// halving []any{1, 3} yields []any{0, 1}.
func Scan[C any](ctx context.Context, f func(carry C, x any) (C, any), init C, xs any) (C, any, error) {
	m, l := dispatch(ctx, "scan")
	if m == Eager {
		return scanEager(f, init, xs)
	}
	step := func(c C, x any) kont.Expr[StepOut[C]] {
		next, y := f(c, x)
		return kont.ExprReturn(StepOut[C]{Carry: next, Y: y})
	}
	res, err := unwrap(l, "scan", kont.RunPure(ExprScan[C](step, init, xs)))
	if err != nil {
		return init, nil, err
	}
	return res.Carry, res.Ys, nil
}

func scanEager[C any](f func(carry C, x any) (C, any), init C, xs any) (C, any, error) {
	buf, unravel, err := Ravel(xs)
	if err != nil {
		return init, nil, err
	}
	ys := make([]float64, len(buf))
	for i, b := range buf {
		_, y := f(init, b)
		v, ok := toFloat(y)
		if !ok {
			return init, nil, fmt.Errorf("%w: scan output %d is %T", ErrNotNumeric, i, y)
		}
		ys[i] = v
	}
	out, err := unravel(ys)
	if err != nil {
		return init, nil, err
	}
	return init, out, nil
}
