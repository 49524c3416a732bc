// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package flow_test

import (
	"context"
	"testing"

	"code.hybscloud.com/flow"
)

// BenchmarkForiLoopPrimitives measures a 1000-step staged counted loop.
func BenchmarkForiLoopPrimitives(b *testing.B) {
	ctx := context.Background()
	b.ReportAllocs()
	for b.Loop() {
		_, _ = flow.ForiLoop(ctx, 0, 1000, func(i int, acc float64) float64 { return acc + float64(i) }, 0.0)
	}
}

// BenchmarkForiLoopEager measures the same loop in eager mode.
func BenchmarkForiLoopEager(b *testing.B) {
	ctx := eagerCtx()
	b.ReportAllocs()
	for b.Loop() {
		_, _ = flow.ForiLoop(ctx, 0, 1000, func(i int, acc float64) float64 { return acc + float64(i) }, 0.0)
	}
}

// BenchmarkScanPrimitives measures a 256-step staged scan.
func BenchmarkScanPrimitives(b *testing.B) {
	ctx := context.Background()
	xs := flow.RandomUniform(256)
	b.ReportAllocs()
	for b.Loop() {
		_, _, _ = flow.Scan(ctx, cumsum, 0.0, xs)
	}
}

// BenchmarkNamedTupleCached measures a cache hit.
func BenchmarkNamedTupleCached(b *testing.B) {
	flow.NamedTuple("BenchState", "x", "y", "z")
	b.ReportAllocs()
	for b.Loop() {
		flow.NamedTuple("BenchState", "x", "y", "z")
	}
}
