// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package flow_test

import (
	"context"
	"errors"
	"testing"

	"code.hybscloud.com/flow"
)

func eagerCtx() context.Context {
	return flow.WithMode(context.Background(), flow.Eager)
}

func TestCondEager(t *testing.T) {
	ctx := eagerCtx()
	var trueCalls, falseCalls int
	inc := func(x int) int { trueCalls++; return x + 1 }
	dec := func(x int) int { falseCalls++; return x - 1 }

	got, err := flow.Cond(ctx, true, 5, inc, 10, dec)
	if err != nil || got != 6 {
		t.Fatalf("Cond(true) got %d, %v, want 6", got, err)
	}
	if trueCalls != 1 || falseCalls != 0 {
		t.Fatalf("Cond(true) calls got %d/%d, want 1/0", trueCalls, falseCalls)
	}

	got, err = flow.Cond(ctx, false, 5, inc, 10, dec)
	if err != nil || got != 9 {
		t.Fatalf("Cond(false) got %d, %v, want 9", got, err)
	}
	if trueCalls != 1 || falseCalls != 1 {
		t.Fatalf("Cond(false) calls got %d/%d, want 1/1", trueCalls, falseCalls)
	}
}

func TestCondEagerOperandsDiffer(t *testing.T) {
	got, err := flow.Cond(eagerCtx(), false,
		"unused", func(s string) int { t.Fatal("true branch called"); return 0 },
		2.5, func(f float64) int { return int(f * 2) },
	)
	if err != nil || got != 5 {
		t.Fatalf("got %d, %v, want 5", got, err)
	}
}

func TestCondPrimitivesTracesBothBranches(t *testing.T) {
	ctx := context.Background()
	var trueCalls, falseCalls int
	inc := func(x int) int { trueCalls++; return x + 1 }
	dec := func(x int) int { falseCalls++; return x - 1 }

	got, err := flow.Cond(ctx, true, 5, inc, 10, dec)
	if err != nil || got != 6 {
		t.Fatalf("Cond(true) got %d, %v, want 6", got, err)
	}
	got, err = flow.Cond(ctx, false, 5, inc, 10, dec)
	if err != nil || got != 9 {
		t.Fatalf("Cond(false) got %d, %v, want 9", got, err)
	}
	if trueCalls != 2 || falseCalls != 2 {
		t.Fatalf("calls got %d/%d, want 2/2", trueCalls, falseCalls)
	}
}

func TestCondPrimitivesBranchMismatch(t *testing.T) {
	ctx := context.Background()
	_, err := flow.Cond(ctx, true,
		1, func(x int) any { return x },
		1, func(x int) any { return float64(x) },
	)
	if !errors.Is(err, flow.ErrBranchMismatch) {
		t.Fatalf("leaf type mismatch: got %v, want ErrBranchMismatch", err)
	}

	_, err = flow.Cond(ctx, true,
		1.0, func(x float64) any { return []any{x, x} },
		1.0, func(x float64) any { return []any{x} },
	)
	if !errors.Is(err, flow.ErrBranchMismatch) {
		t.Fatalf("structure mismatch: got %v, want ErrBranchMismatch", err)
	}

	// Eager mode does not compare branches.
	got, err := flow.Cond(eagerCtx(), true,
		1, func(x int) any { return x },
		1, func(x int) any { return float64(x) },
	)
	if err != nil || got != 1 {
		t.Fatalf("eager got %v, %v, want 1", got, err)
	}
}

func TestCondPrimitivesArrayShapes(t *testing.T) {
	ctx := context.Background()
	a := flow.Zeros(2)
	b := flow.Zeros(3)
	_, err := flow.Cond(ctx, false,
		a, func(x flow.Array) flow.Array { return x },
		b, func(x flow.Array) flow.Array { return x },
	)
	if !errors.Is(err, flow.ErrBranchMismatch) {
		t.Fatalf("got %v, want ErrBranchMismatch", err)
	}
}
