// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package flow

import (
	"context"

	"go.uber.org/zap"
)

var nopLogger = zap.NewNop()

type loggerKey struct{}

// WithLogger returns a copy of ctx carrying l for dispatch logging.
func WithLogger(ctx context.Context, l *zap.Logger) context.Context {
	return context.WithValue(ctx, loggerKey{}, l)
}

// Logger returns the logger carried by ctx.
// It uses a no-op logger by default.
func Logger(ctx context.Context) *zap.Logger {
	if ctx == nil {
		return nopLogger
	}
	if l, ok := ctx.Value(loggerKey{}).(*zap.Logger); ok && l != nil {
		return l
	}
	return nopLogger
}

// dispatch reads the mode for op and records the decision.
func dispatch(ctx context.Context, op string) (Mode, *zap.Logger) {
	m := ModeOf(ctx)
	l := Logger(ctx)
	l.Debug("flow dispatch", zap.String("op", op), zap.Stringer("mode", m))
	return m, l
}

// logReject records a primitive rejecting its traced values.
func logReject(l *zap.Logger, op string, err error) {
	l.Debug("flow primitive rejected", zap.String("op", op), zap.Error(err))
}
