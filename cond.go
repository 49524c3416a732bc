// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package flow

import (
	"context"
	"fmt"
)

// Cond returns trueFn(trueOperand) if pred holds, falseFn(falseOperand) otherwise.
//
// In Primitives mode both branches are traced: both functions are called,
// their results must agree in tree structure and leaf avals, and pred
// selects one. In Eager mode only the selected function is called.
func Cond[A, B, R any](ctx context.Context, pred bool, trueOperand A, trueFn func(A) R, falseOperand B, falseFn func(B) R) (R, error) {
	m, l := dispatch(ctx, "cond")
	if m == Eager {
		if pred {
			return trueFn(trueOperand), nil
		}
		return falseFn(falseOperand), nil
	}
	t := trueFn(trueOperand)
	f := falseFn(falseOperand)
	if ts, fs := signatureOf(t), signatureOf(f); !ts.equal(fs) {
		err := fmt.Errorf("%w: true branch %s, false branch %s", ErrBranchMismatch, ts, fs)
		logReject(l, "cond", err)
		var zero R
		return zero, err
	}
	if pred {
		return t, nil
	}
	return f, nil
}
