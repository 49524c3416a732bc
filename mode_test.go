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

func TestModeDefault(t *testing.T) {
	if m := flow.ModeOf(context.Background()); m != flow.Primitives {
		t.Fatalf("default mode got %v, want primitives", m)
	}
}

func TestWithPrimitivesDisabledNesting(t *testing.T) {
	ctx := context.Background()
	err := flow.WithPrimitivesDisabled(ctx, func(outer context.Context) error {
		if m := flow.ModeOf(outer); m != flow.Eager {
			t.Fatalf("outer scope got %v, want eager", m)
		}
		err := flow.WithPrimitivesDisabled(outer, func(inner context.Context) error {
			if m := flow.ModeOf(inner); m != flow.Eager {
				t.Fatalf("inner scope got %v, want eager", m)
			}
			return nil
		})
		if err != nil {
			return err
		}
		// Leaving the inner scope restores the outer scope's mode.
		if m := flow.ModeOf(outer); m != flow.Eager {
			t.Fatalf("after inner scope got %v, want eager", m)
		}
		return nil
	})
	if err != nil {
		t.Fatalf("WithPrimitivesDisabled: %v", err)
	}
	if m := flow.ModeOf(ctx); m != flow.Primitives {
		t.Fatalf("after outer scope got %v, want primitives", m)
	}
}

func TestWithPrimitivesEnabledInsideDisabled(t *testing.T) {
	ctx := context.Background()
	_ = flow.WithPrimitivesDisabled(ctx, func(outer context.Context) error {
		_ = flow.WithPrimitivesEnabled(outer, func(inner context.Context) error {
			if m := flow.ModeOf(inner); m != flow.Primitives {
				t.Fatalf("inner scope got %v, want primitives", m)
			}
			return nil
		})
		if m := flow.ModeOf(outer); m != flow.Eager {
			t.Fatalf("after inner scope got %v, want eager", m)
		}
		return nil
	})
}

func TestWithPrimitivesDisabledErrorAndPanic(t *testing.T) {
	ctx := context.Background()
	boom := errors.New("boom")
	if err := flow.WithPrimitivesDisabled(ctx, func(context.Context) error { return boom }); !errors.Is(err, boom) {
		t.Fatalf("got %v, want boom", err)
	}
	func() {
		defer func() {
			if recover() == nil {
				t.Fatal("expected panic")
			}
		}()
		_ = flow.WithPrimitivesDisabled(ctx, func(context.Context) error { panic("scope") })
	}()
	if m := flow.ModeOf(ctx); m != flow.Primitives {
		t.Fatalf("after panic got %v, want primitives", m)
	}
}

func TestParseMode(t *testing.T) {
	cases := map[string]flow.Mode{
		"":           flow.Primitives,
		"primitives": flow.Primitives,
		"eager":      flow.Eager,
		"disabled":   flow.Eager,
	}
	for in, want := range cases {
		got, err := flow.ParseMode(in)
		if err != nil || got != want {
			t.Fatalf("ParseMode(%q) got %v, %v, want %v", in, got, err, want)
		}
	}
	if _, err := flow.ParseMode("jit"); err == nil {
		t.Fatal("ParseMode accepted an unknown mode")
	}
}

func TestModeText(t *testing.T) {
	text, err := flow.Eager.MarshalText()
	if err != nil || string(text) != "eager" {
		t.Fatalf("MarshalText got %q, %v", text, err)
	}
	var m flow.Mode
	if err := m.UnmarshalText(text); err != nil || m != flow.Eager {
		t.Fatalf("UnmarshalText got %v, %v", m, err)
	}
	if got := flow.Mode(9).String(); got != "Mode(9)" {
		t.Fatalf("String got %q", got)
	}
}
