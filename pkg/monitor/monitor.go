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

package monitor

import (
	"context"
	"io"
	"log/slog"
	"sync/atomic"

	"github.com/coreos/go-systemd/v22/daemon"
	"golang.org/x/sync/errgroup"

	"github.com/lsst-ts/ts-epm/pkg/config"
	"github.com/lsst-ts/ts-epm/pkg/errors"
	"github.com/lsst-ts/ts-epm/pkg/mib"
	"github.com/lsst-ts/ts-epm/pkg/poller"
	"github.com/lsst-ts/ts-epm/pkg/snmp"
	"github.com/lsst-ts/ts-epm/pkg/telemetry"
)

// Server is the HTTP server lifecycle the monitor drives.
type Server interface {
	Start(ctx context.Context) error
	SetReady(ready bool)
}

// Notifier reports service state changes such as daemon.SdNotifyReady.
type Notifier func(state string) error

// SystemdNotifier sends the state over the systemd notify socket. It is a
// no-op when NOTIFY_SOCKET is unset.
func SystemdNotifier(state string) error {
	_, err := daemon.SdNotify(false, state)
	return err
}

// Option configures a Monitor.
type Option func(*Monitor)

// WithWalkers sets the walker factory. Defaults to WalkersFor the config.
func WithWalkers(f WalkerFactory) Option {
	return func(m *Monitor) {
		m.walkers = f
	}
}

// WithSink sets the sink every engine emits to.
func WithSink(sink telemetry.Sink) Option {
	return func(m *Monitor) {
		m.sink = sink
	}
}

// WithServer runs srv alongside the devices and marks it ready once every
// device finished setup.
func WithServer(srv Server) Option {
	return func(m *Monitor) {
		m.server = srv
	}
}

// WithNotifier replaces the systemd notifier.
func WithNotifier(n Notifier) Option {
	return func(m *Monitor) {
		m.notify = n
	}
}

// WithVersion sets the version stamped on records.
func WithVersion(version string) Option {
	return func(m *Monitor) {
		m.version = version
	}
}

// WithLogger sets the monitor logger.
func WithLogger(logger *slog.Logger) Option {
	return func(m *Monitor) {
		if logger != nil {
			m.logger = logger
		}
	}
}

// Monitor polls every configured device concurrently. Devices share the
// immutable tree and nothing else.
type Monitor struct {
	cfg     *config.Config
	tree    *mib.Tree
	walkers WalkerFactory
	sink    telemetry.Sink
	server  Server
	notify  Notifier
	version string
	logger  *slog.Logger
}

// New returns a Monitor for cfg over tree.
func New(cfg *config.Config, tree *mib.Tree, opts ...Option) (*Monitor, error) {
	if cfg == nil || tree == nil {
		return nil, errors.New(errors.ErrCodeConfiguration, "monitor requires a configuration and a MIB tree")
	}
	m := &Monitor{
		cfg:    cfg,
		tree:   tree,
		notify: SystemdNotifier,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(m)
	}
	if m.walkers == nil {
		m.walkers = WalkersFor(cfg, tree, false, m.logger)
	}
	if m.sink == nil {
		m.sink = telemetry.MultiSink{}
	}
	return m, nil
}

type device struct {
	cfg    config.Device
	engine *poller.Engine
	walker snmp.Walker
}

// Run builds one engine per device and runs the read loops until ctx is
// done or a device fails fatally. The first fatal error cancels every other
// device and the server.
func (m *Monitor) Run(ctx context.Context) error {
	devices, err := m.devices()
	if err != nil {
		return err
	}
	defer m.close(devices)

	g, gctx := errgroup.WithContext(ctx)

	if m.server != nil {
		g.Go(func() error {
			return m.server.Start(gctx)
		})
	}

	var pending atomic.Int32
	pending.Store(int32(len(devices)))
	if len(devices) == 0 {
		m.ready()
	}
	onSetup := func() {
		if pending.Add(-1) == 0 {
			m.ready()
		}
	}

	for _, d := range devices {
		g.Go(func() error {
			err := poller.RunReadLoop(gctx, d.engine, d.cfg.MaxReadTimeouts,
				poller.WithLoopLogger(m.logger),
				poller.WithOnSetup(onSetup),
			)
			if err != nil {
				m.logger.Error("device stopped", "device", d.cfg.DeviceName, "error", err)
				code := errors.CodeOf(err)
				if code == "" {
					code = errors.ErrCodeInternal
				}
				return errors.WrapWithContext(code, "device failed", err,
					map[string]any{"device": d.cfg.DeviceName})
			}
			return nil
		})
	}

	err = g.Wait()
	m.stopping()
	return err
}

// devices builds walkers and engines for every configured device.
func (m *Monitor) devices() ([]device, error) {
	devices := make([]device, 0, len(m.cfg.Devices))
	for _, dc := range m.cfg.Devices {
		w, err := m.walkers(dc)
		if err != nil {
			m.close(devices)
			return nil, err
		}
		eng, err := poller.New(dc.Engine(), m.tree, w,
			poller.WithSink(m.sink),
			poller.WithLogger(m.logger),
			poller.WithVersion(m.version),
		)
		if err != nil {
			closeWalker(w, m.logger)
			m.close(devices)
			return nil, err
		}
		devices = append(devices, device{cfg: dc, engine: eng, walker: w})
	}
	return devices, nil
}

func (m *Monitor) ready() {
	m.logger.Info("all devices set up", "devices", len(m.cfg.Devices))
	if m.server != nil {
		m.server.SetReady(true)
	}
	if err := m.notify(daemon.SdNotifyReady); err != nil {
		m.logger.Warn("failed to notify readiness", "error", err)
	}
}

func (m *Monitor) stopping() {
	if m.server != nil {
		m.server.SetReady(false)
	}
	if err := m.notify(daemon.SdNotifyStopping); err != nil {
		m.logger.Warn("failed to notify stopping", "error", err)
	}
}

func (m *Monitor) close(devices []device) {
	for _, d := range devices {
		closeWalker(d.walker, m.logger)
	}
}

func closeWalker(w snmp.Walker, logger *slog.Logger) {
	if c, ok := w.(io.Closer); ok {
		if err := c.Close(); err != nil {
			logger.Warn("failed to close walker", "error", err)
		}
	}
}
