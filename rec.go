// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package flow

import (
	"code.hybscloud.com/kont"
)

// exprLoop builds a recursive staged program.
// step returns Left(nextState) to continue or Right(result) to finish.
// Steps that complete without suspending are iterated in place; the
// first one that does not is chained through a bind frame, so long
// loops never grow the Go stack.
func exprLoop[S, A any](initial S, step func(S) kont.Expr[kont.Either[S, A]]) kont.Expr[A] {
	m := step(initial)
	for {
		if _, ok := m.Frame.(kont.ReturnFrame); !ok {
			break
		}
		left, ok := m.Value.GetLeft()
		if !ok {
			right, _ := m.Value.GetRight()
			return kont.ExprReturn(right)
		}
		m = step(left)
	}
	bf := kont.AcquireBindFrame()
	bf.F = func(a kont.Erased) kont.Expr[kont.Erased] {
		e := a.(kont.Either[S, A])
		if left, ok := e.GetLeft(); ok {
			result := exprLoop(left, step)
			return kont.Expr[kont.Erased]{Value: kont.Erased(result.Value), Frame: result.Frame}
		}
		right, _ := e.GetRight()
		return kont.Expr[kont.Erased]{Value: kont.Erased(right), Frame: kont.ReturnFrame{}}
	}
	bf.Next = kont.ReturnFrame{}
	var zero A
	return kont.Expr[A]{
		Value: zero,
		Frame: kont.ChainFrames(m.Frame, bf),
	}
}
