// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package flow provides dual-mode control flow and tree registration for
// numeric code built on [code.hybscloud.com/kont].
//
// The same loop or branch can run as a staged primitive or as plain Go
// control flow. The [Mode] carried by a [context.Context] picks one at
// every call, so code that does not fit the staged contract can be
// debugged eagerly without being rewritten.
//
// # Architecture
//
//   - Trees: values are flattened into leaves and a [TreeDef] through an explicit
//     registry of flatten/unflatten pairs ([Register]). Lists, string maps and
//     named tuples are built in.
//   - Named tuples: [NamedTuple] returns one canonical [*TupleType] per name and
//     field list and registers it as a tree node.
//   - Staged programs: [ExprWhileLoop], [ExprForiLoop] and [ExprScan] build
//     defunctionalized [code.hybscloud.com/kont.Expr] programs that check the loop
//     carry keeps its structure. Evaluate with kont.RunPure.
//   - Dispatch: [Cond], [WhileLoop], [ForiLoop] and [Scan] run the staged program in
//     [Primitives] mode and plain Go control flow in [Eager] mode.
//
// # Modes
//
//   - [WithPrimitivesDisabled] and [WithPrimitivesEnabled] run a function under a
//     derived context. Scopes nest; leaving one restores the enclosing mode.
//   - [Optional] acquires a [Resource] around a function only when asked to.
//
// # Differences between modes
//
//   - Cond calls both branches in Primitives mode and exactly one in Eager mode.
//   - Loops reject carry structure changes only in Primitives mode.
//   - Scan threads the carry in Primitives mode. In Eager mode it iterates the
//     raveled elements of xs and passes the initial carry to every call.
//
// # Example
//
//	ctx := context.Background()
//	n, _ := flow.ForiLoop(ctx, 0, 3, func(i, acc int) int { return acc + i }, 0)
//	// n == 3
//	_ = flow.WithPrimitivesDisabled(ctx, func(ctx context.Context) error {
//		v, _ := flow.WhileLoop(ctx, func(v int) bool { return v < 5 }, func(v int) int { return v + 2 }, 0)
//		// v == 6
//		return nil
//	})
package flow
