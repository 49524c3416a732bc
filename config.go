// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package flow

import (
	"context"
	"errors"
	"fmt"
	"io"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"
)

// Config selects the evaluation mode, seeds and log level from YAML:
//
//	mode: eager
//	seed: 42
//	log_level: debug
type Config struct {
	Mode     Mode    `yaml:"mode"`
	Seed     *uint64 `yaml:"seed,omitempty"`
	LogLevel string  `yaml:"log_level,omitempty"`
}

// LoadConfig decodes a Config from r. Unknown keys are rejected.
// Empty input yields the zero Config.
func LoadConfig(r io.Reader) (Config, error) {
	var c Config
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&c); err != nil {
		if errors.Is(err, io.EOF) {
			return Config{}, nil
		}
		return Config{}, fmt.Errorf("flow: decode config: %w", err)
	}
	return c, nil
}

// Apply returns a context carrying c's mode and a logger derived from
// base at c's minimum level, and re-seeds the generators if c has a seed.
// A nil base means no logging.
func (c Config) Apply(ctx context.Context, base *zap.Logger) (context.Context, error) {
	if base == nil {
		base = zap.NewNop()
	}
	if c.LogLevel != "" {
		lvl, err := zapcore.ParseLevel(c.LogLevel)
		if err != nil {
			return ctx, fmt.Errorf("flow: log_level: %w", err)
		}
		base = base.WithOptions(zap.IncreaseLevel(lvl))
	}
	if c.Seed != nil {
		SetRNGSeed(*c.Seed)
	}
	ctx = WithMode(ctx, c.Mode)
	return WithLogger(ctx, base), nil
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (m *Mode) UnmarshalYAML(n *yaml.Node) error {
	var s string
	if err := n.Decode(&s); err != nil {
		return err
	}
	return m.UnmarshalText([]byte(s))
}
