// Copyright (c) 2025, NVIDIA CORPORATION.  All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package poller

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/lsst-ts/ts-epm/pkg/defaults"
	"github.com/lsst-ts/ts-epm/pkg/errors"
)

// Client is driven by RunReadLoop. Engine implements it.
type Client interface {
	Name() string
	Setup(ctx context.Context) error
	Read(ctx context.Context) error
}

// LoopOption configures RunReadLoop.
type LoopOption func(*loopConfig)

type loopConfig struct {
	logger  *slog.Logger
	onSetup func()
}

// WithLoopLogger sets the logger of the read loop.
func WithLoopLogger(logger *slog.Logger) LoopOption {
	return func(c *loopConfig) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithOnSetup registers a callback run once after a successful Setup.
func WithOnSetup(fn func()) LoopOption {
	return func(c *loopConfig) {
		c.onSetup = fn
	}
}

// RunReadLoop sets the client up and reads until ctx is canceled.
// Setup errors are returned as-is. Transport and timeout failures of Read
// are counted and the counter resets on success; the loop gives up with a
// TIMEOUT error after maxReadTimeouts consecutive failures. Any other Read
// error ends the loop immediately. Cancellation returns nil.
func RunReadLoop(ctx context.Context, client Client, maxReadTimeouts int, opts ...LoopOption) error {
	cfg := loopConfig{logger: slog.Default()}
	for _, opt := range opts {
		opt(&cfg)
	}
	if maxReadTimeouts <= 0 {
		maxReadTimeouts = defaults.MaxReadTimeouts
	}
	logger := cfg.logger.With("component", "readloop", "device", client.Name())

	if err := client.Setup(ctx); err != nil {
		return err
	}
	if cfg.onSetup != nil {
		cfg.onSetup()
	}

	failures := 0
	for {
		if ctx.Err() != nil {
			logger.Info("read loop stopped")
			return nil
		}

		err := client.Read(ctx)
		if err == nil {
			if failures > 0 {
				logger.Info("device read recovered", "failures", failures)
			}
			failures = 0
			continue
		}
		if ctx.Err() != nil {
			logger.Info("read loop stopped")
			return nil
		}
		if !errors.IsCode(err, errors.ErrCodeTransport) && !errors.IsCode(err, errors.ErrCodeTimeout) {
			return err
		}

		failures++
		readFailuresTotal.WithLabelValues(client.Name()).Inc()
		logger.Warn("device read failed",
			"failures", failures,
			"maxReadTimeouts", maxReadTimeouts,
			"error", err,
		)
		if failures >= maxReadTimeouts {
			return errors.WrapWithContext(errors.ErrCodeTimeout,
				fmt.Sprintf("%d consecutive read failures", failures), err,
				map[string]any{"device": client.Name()})
		}
	}
}
