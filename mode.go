// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package flow

import (
	"context"
	"fmt"
)

// Mode selects how the dispatch operations evaluate.
type Mode uint8

const (
	// Primitives evaluates Cond, WhileLoop, ForiLoop and Scan as staged
	// primitives. It is the zero value and the default.
	Primitives Mode = iota

	// Eager evaluates them with plain Go control flow.
	Eager
)

// String returns "primitives" or "eager".
func (m Mode) String() string {
	switch m {
	case Primitives:
		return "primitives"
	case Eager:
		return "eager"
	}
	return fmt.Sprintf("Mode(%d)", uint8(m))
}

// ParseMode parses the text form produced by Mode.String.
// "disabled" is accepted as an alias of "eager".
func ParseMode(s string) (Mode, error) {
	switch s {
	case "", "primitives":
		return Primitives, nil
	case "eager", "disabled":
		return Eager, nil
	}
	return Primitives, fmt.Errorf("flow: unknown mode %q", s)
}

// MarshalText implements encoding.TextMarshaler.
func (m Mode) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (m *Mode) UnmarshalText(text []byte) error {
	v, err := ParseMode(string(text))
	if err != nil {
		return err
	}
	*m = v
	return nil
}

type modeKey struct{}

// WithMode returns a copy of ctx carrying mode m.
func WithMode(ctx context.Context, m Mode) context.Context {
	return context.WithValue(ctx, modeKey{}, m)
}

// ModeOf returns the mode carried by ctx, or Primitives if none is set.
func ModeOf(ctx context.Context) Mode {
	if ctx == nil {
		return Primitives
	}
	if m, ok := ctx.Value(modeKey{}).(Mode); ok {
		return m
	}
	return Primitives
}

// WithPrimitivesDisabled runs fn with a context in Eager mode.
// ctx itself is left untouched, so once fn returns or panics the caller
// is back in whatever mode ctx carried, including an enclosing
// WithPrimitivesDisabled scope.
func WithPrimitivesDisabled(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(WithMode(ctx, Eager))
}

// WithPrimitivesEnabled runs fn with a context in Primitives mode.
func WithPrimitivesEnabled(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(WithMode(ctx, Primitives))
}
