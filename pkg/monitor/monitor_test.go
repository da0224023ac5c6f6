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
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/coreos/go-systemd/v22/daemon"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lsst-ts/ts-epm/pkg/config"
	"github.com/lsst-ts/ts-epm/pkg/errors"
	"github.com/lsst-ts/ts-epm/pkg/mib"
	"github.com/lsst-ts/ts-epm/pkg/simulator"
	"github.com/lsst-ts/ts-epm/pkg/snmp"
	"github.com/lsst-ts/ts-epm/pkg/telemetry"
)

var discard = slog.New(slog.NewTextHandler(io.Discard, nil))

type fakeServer struct {
	mu     sync.Mutex
	states []bool
}

func (s *fakeServer) Start(ctx context.Context) error {
	<-ctx.Done()
	return nil
}

func (s *fakeServer) SetReady(ready bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.states = append(s.states, ready)
}

func (s *fakeServer) States() []bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]bool(nil), s.states...)
}

type recordingNotifier struct {
	mu     sync.Mutex
	states []string
}

func (n *recordingNotifier) Notify(state string) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.states = append(n.states, state)
	return nil
}

func (n *recordingNotifier) States() []string {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]string(nil), n.states...)
}

func testTree(t *testing.T) *mib.Tree {
	t.Helper()
	tree, err := mib.Build(mib.WithLogger(discard))
	require.NoError(t, err)
	return tree
}

func testConfig(devices ...config.Device) *config.Config {
	cfg := &config.Config{SimulationMode: 1, Devices: devices}
	cfg.SetDefaults()
	return cfg
}

func dev(name, deviceType string) config.Device {
	return config.Device{
		Host:         "localhost",
		DeviceName:   name,
		DeviceType:   deviceType,
		Location:     "lab",
		PollInterval: 0.01,
	}
}

func TestNewRequiresInputs(t *testing.T) {
	_, err := New(nil, nil)
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrCodeConfiguration))
}

func TestRunSimulatedDevices(t *testing.T) {
	tree := testTree(t)
	store := telemetry.NewStore()
	srv := &fakeServer{}
	notifier := &recordingNotifier{}

	cfg := testConfig(dev("ups-1", "xups"), dev("meter-1", "scheiderPm5xxx"), dev("pdu-1", "pdu"))
	m, err := New(cfg, tree,
		WithWalkers(SimulatedWalkers(tree, false, discard)),
		WithSink(store),
		WithServer(srv),
		WithNotifier(notifier.Notify),
		WithVersion("test"),
		WithLogger(discard),
	)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- m.Run(ctx) }()

	require.Eventually(t, func() bool { return store.Len() == 3 }, 5*time.Second, 10*time.Millisecond)

	rec, ok := store.Latest("ups-1")
	require.True(t, ok)
	assert.Equal(t, simulator.SystemDescription, rec.SystemDescription)
	assert.True(t, rec.Has("batteryVoltage"))

	pdu, ok := store.Latest("pdu-1")
	require.True(t, ok)
	assert.Len(t, pdu.Fields, 1)

	cancel()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("monitor did not stop")
	}

	assert.Equal(t, []string{daemon.SdNotifyReady, daemon.SdNotifyStopping}, notifier.States())
	assert.Equal(t, []bool{true, false}, srv.States())
}

func TestRunReplayDecodesRecordedValues(t *testing.T) {
	tree := testTree(t)
	store := telemetry.NewStore()

	cfg := testConfig(dev("ups-1", "xups"))
	m, err := New(cfg, tree,
		WithWalkers(SimulatedWalkers(tree, true, discard)),
		WithSink(store),
		WithNotifier(func(string) error { return nil }),
		WithLogger(discard),
	)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	done := make(chan error, 1)
	go func() { done <- m.Run(ctx) }()

	require.Eventually(t, func() bool { return store.Len() == 1 }, 5*time.Second, 10*time.Millisecond)
	rec, _ := store.Latest("ups-1")
	temp, ok := telemetry.Float(rec.Get("envAmbientTemp"))
	require.True(t, ok)
	assert.InDelta(t, 24.0, temp, 1e-9)

	cancel()
	require.NoError(t, <-done)
}

func TestRunUnknownDeviceTypeIsFatal(t *testing.T) {
	tree := testTree(t)
	notifier := &recordingNotifier{}

	cfg := testConfig(dev("ups-1", "xups"), dev("bogus-1", "bogus"))
	m, err := New(cfg, tree,
		WithWalkers(SimulatedWalkers(tree, false, discard)),
		WithNotifier(notifier.Notify),
		WithLogger(discard),
	)
	require.NoError(t, err)

	err = m.Run(context.Background())
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrCodeConfiguration))
	assert.Contains(t, err.Error(), "bogus")
	assert.Equal(t, []string{daemon.SdNotifyStopping}, notifier.States())
}

func TestRunEscalatesTransportFailures(t *testing.T) {
	tree := testTree(t)
	sys, ok := tree.Lookup("sysDescr")
	require.True(t, ok)

	walker := snmp.WalkerFunc(func(_ context.Context, rootOID string) ([]snmp.Binding, error) {
		if rootOID == sys.OID {
			return []snmp.Binding{{OID: sys.OID + ".0", Value: "flaky"}}, nil
		}
		return nil, errors.New(errors.ErrCodeTransport, "request timeout")
	})

	d := dev("ups-1", "xups")
	d.MaxReadTimeouts = 2
	cfg := testConfig(d)
	m, err := New(cfg, tree,
		WithWalkers(func(config.Device) (snmp.Walker, error) { return walker, nil }),
		WithNotifier(func(string) error { return nil }),
		WithLogger(discard),
	)
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	err = m.Run(ctx)
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrCodeTimeout))
	assert.Equal(t, errors.ErrCodeTimeout, errors.CodeOf(err))
}

func TestRunWalkerFactoryError(t *testing.T) {
	tree := testTree(t)
	cfg := testConfig(dev("ups-1", "xups"))

	m, err := New(cfg, tree,
		WithWalkers(func(config.Device) (snmp.Walker, error) {
			return nil, errors.New(errors.ErrCodeConfiguration, "no walker")
		}),
		WithLogger(discard),
	)
	require.NoError(t, err)

	err = m.Run(context.Background())
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrCodeConfiguration))
}

func TestWalkerFactories(t *testing.T) {
	tree := testTree(t)

	t.Run("live client", func(t *testing.T) {
		d := dev("ups-1", "xups")
		d.Port = 1161
		w, err := SNMPWalkers("private", time.Second, discard)(d)
		require.NoError(t, err)
		client, ok := w.(*snmp.Client)
		require.True(t, ok)
		assert.True(t, strings.HasSuffix(client.Target(), ":1161"))
	})

	t.Run("invalid port", func(t *testing.T) {
		d := dev("ups-1", "xups")
		d.Port = 0
		_, err := SNMPWalkers("public", 0, discard)(d)
		require.Error(t, err)
		assert.True(t, errors.IsCode(err, errors.ErrCodeConfiguration))
	})

	t.Run("replay without recording", func(t *testing.T) {
		_, err := SimulatedWalkers(tree, true, discard)(dev("x", "unknownType"))
		require.Error(t, err)
		assert.True(t, errors.IsCode(err, errors.ErrCodeNotFound))
	})

	t.Run("mode selects walker", func(t *testing.T) {
		d := dev("ups-1", "xups")
		d.Port = 161

		w, err := WalkersFor(&config.Config{SimulationMode: 1}, tree, false, discard)(d)
		require.NoError(t, err)
		assert.IsType(t, &simulator.Simulator{}, w)

		w, err = WalkersFor(&config.Config{Community: "public"}, tree, false, discard)(d)
		require.NoError(t, err)
		assert.IsType(t, &snmp.Client{}, w)
	})
}
