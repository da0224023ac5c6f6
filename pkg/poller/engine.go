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
	"math"
	"time"

	"github.com/lsst-ts/ts-epm/pkg/catalog"
	"github.com/lsst-ts/ts-epm/pkg/defaults"
	"github.com/lsst-ts/ts-epm/pkg/errors"
	"github.com/lsst-ts/ts-epm/pkg/mib"
	"github.com/lsst-ts/ts-epm/pkg/snmp"
	"github.com/lsst-ts/ts-epm/pkg/telemetry"
)

// DefaultSystemDescription is reported until a device answers the probe.
const DefaultSystemDescription = "No system description set."

// DeviceTypePDU is the device family that only reports its description.
const DeviceTypePDU = "pdu"

// Config identifies the device polled by an Engine.
type Config struct {
	DeviceName   string
	DeviceType   string
	Location     string
	PollInterval time.Duration
}

// Option configures an Engine.
type Option func(*Engine)

// WithSink sets the consumer of every record.
func WithSink(sink telemetry.Sink) Option {
	return func(e *Engine) {
		if sink != nil {
			e.sink = sink
		}
	}
}

// WithLogger sets the logger. Device attributes are added by New.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// WithVersion stamps records with the producer version.
func WithVersion(version string) Option {
	return func(e *Engine) {
		e.version = version
	}
}

// WithSleep replaces the interval wait, mainly for tests.
func WithSleep(sleep func(ctx context.Context, d time.Duration) error) Option {
	return func(e *Engine) {
		if sleep != nil {
			e.sleep = sleep
		}
	}
}

type field struct {
	entry catalog.Entry
	oid   string
	codec catalog.Codec
}

// Engine polls one device. It is not safe for concurrent use; each device
// gets its own Engine and all engines may share one tree.
type Engine struct {
	cfg    Config
	tree   *mib.Tree
	walker snmp.Walker
	sink   telemetry.Sink
	logger *slog.Logger

	version string
	sleep   func(ctx context.Context, d time.Duration) error

	sysDescrOID string
	description string
	root        mib.Element
	fields      []field
	ready       bool
}

// New returns an Engine. Setup must succeed before the first Poll.
func New(cfg Config, tree *mib.Tree, walker snmp.Walker, opts ...Option) (*Engine, error) {
	if tree == nil {
		return nil, errors.New(errors.ErrCodeConfiguration, "MIB tree is required")
	}
	if walker == nil {
		return nil, errors.New(errors.ErrCodeConfiguration, "SNMP walker is required")
	}
	sys, ok := tree.Lookup(catalog.SystemDescription)
	if !ok {
		return nil, errors.New(errors.ErrCodeConstruction, "MIB tree has no sysDescr element")
	}
	if cfg.PollInterval <= 0 {
		cfg.PollInterval = defaults.PollInterval
	}

	e := &Engine{
		cfg:         cfg,
		tree:        tree,
		walker:      walker,
		sink:        telemetry.SinkFunc(func(context.Context, *telemetry.Record) error { return nil }),
		logger:      slog.Default(),
		sleep:       sleepContext,
		sysDescrOID: sys.OID,
		description: DefaultSystemDescription,
	}
	for _, opt := range opts {
		opt(e)
	}
	e.logger = e.logger.With("component", "poller", "device", cfg.DeviceName, "deviceType", cfg.DeviceType)
	return e, nil
}

// Name returns the configured device name.
func (e *Engine) Name() string {
	return e.cfg.DeviceName
}

// SystemDescription returns the description reported during Setup.
func (e *Engine) SystemDescription() string {
	return e.description
}

// Fields returns the public names of the fields decoded on every poll.
func (e *Engine) Fields() []string {
	names := make([]string, 0, len(e.fields))
	for _, f := range e.fields {
		names = append(names, f.entry.PublicName)
	}
	return names
}

// Setup probes the system description and resolves the device root. A
// missing or ambiguous description is logged and the placeholder kept; an
// unknown device type is a configuration error.
func (e *Engine) Setup(ctx context.Context) error {
	bindings, err := e.walker.Walk(context.WithoutCancel(ctx), e.sysDescrOID)
	if err != nil {
		return errors.WrapWithContext(walkCode(err), "system description probe failed", err,
			map[string]any{"device": e.cfg.DeviceName})
	}

	result := snmp.BindingsToMap(bindings)
	if v, ok := result[e.sysDescrOID+".0"]; ok && len(result) == 1 {
		e.description = v
	} else {
		e.logger.Error("could not retrieve system description, continuing",
			"bindings", len(bindings))
	}

	root, ok := e.tree.Lookup(e.cfg.DeviceType)
	if !ok {
		return errors.NewWithContext(errors.ErrCodeConfiguration,
			fmt.Sprintf("unknown device type %q", e.cfg.DeviceType),
			map[string]any{"device": e.cfg.DeviceName})
	}
	e.root = root

	fields, err := e.schema()
	if err != nil {
		return err
	}
	e.fields = fields
	e.ready = true

	e.logger.Info("device setup complete",
		"systemDescription", e.description,
		"rootOID", root.OID,
		"fields", len(fields),
	)
	return nil
}

// schema lists the catalog entries under the device root at their instance
// OIDs. PDUs report no per-field telemetry.
func (e *Engine) schema() ([]field, error) {
	if e.cfg.DeviceType == DeviceTypePDU {
		return nil, nil
	}
	var fields []field
	for _, el := range e.tree.Subtree(e.root.OID) {
		if el.Name == catalog.SystemDescription {
			continue
		}
		entry, ok := catalog.Lookup(el.Name)
		if !ok {
			continue
		}
		oid, err := e.tree.InstanceOID(el.Name)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInternal, "failed to compose instance OID", err)
		}
		fields = append(fields, field{entry: entry, oid: oid, codec: catalog.CodecFor(oid)})
	}
	return fields, nil
}

// Poll walks the device subtree once, decodes every field and emits the
// record. Decode problems degrade single fields; walk failures abort the
// poll.
func (e *Engine) Poll(ctx context.Context) (*telemetry.Record, error) {
	if !e.ready {
		return nil, errors.New(errors.ErrCodeUnavailable, "poll before setup")
	}

	start := time.Now()
	bindings, err := e.walker.Walk(context.WithoutCancel(ctx), e.root.OID)
	pollDuration.WithLabelValues(e.cfg.DeviceType).Observe(time.Since(start).Seconds())
	if err != nil {
		pollTotal.WithLabelValues(e.cfg.DeviceName, statusError).Inc()
		return nil, errors.WrapWithContext(walkCode(err), "device poll failed", err,
			map[string]any{"device": e.cfg.DeviceName, "oid": e.root.OID})
	}
	pollTotal.WithLabelValues(e.cfg.DeviceName, statusSuccess).Inc()

	result := snmp.BindingsToMap(bindings)
	b := telemetry.NewRecordBuilder(e.cfg.DeviceName, e.cfg.DeviceType, e.cfg.Location).
		WithVersion(e.version).
		SystemDescription(e.description)
	for _, f := range e.fields {
		b.Set(f.entry.PublicName, e.decode(f, result), f.entry.Unit)
	}
	rec := b.Build()

	if err := e.sink.Emit(ctx, rec); err != nil {
		e.logger.Error("failed to emit telemetry", "error", err)
	}
	e.logger.Debug("poll complete",
		"bindings", len(bindings),
		"fields", len(e.fields),
		"duration", time.Since(start),
	)
	return rec, nil
}

func (e *Engine) decode(f field, result map[string]string) telemetry.Reading {
	name := f.entry.PublicName
	raw, ok := result[f.oid]
	if !ok {
		decodeFallbackTotal.WithLabelValues(e.cfg.DeviceName, name, reasonMissing).Inc()
		e.logger.Warn("value not found", "field", name, "oid", f.oid, "kind", f.entry.Kind)
		return zeroReading(f.entry.Kind)
	}

	switch f.entry.Kind {
	case catalog.KindInt:
		v, err := decodeInt(raw)
		if err != nil {
			decodeFallbackTotal.WithLabelValues(e.cfg.DeviceName, name, reasonInvalid).Inc()
			e.logger.Error("could not convert value to int", "field", name, "oid", f.oid, "value", raw)
			return telemetry.Int(0)
		}
		return telemetry.Int(v)
	case catalog.KindFloat:
		v, extracted, err := decodeFloat(raw, f.codec)
		if err != nil {
			decodeFallbackTotal.WithLabelValues(e.cfg.DeviceName, name, reasonInvalid).Inc()
			e.logger.Error("could not convert value to float", "field", name, "oid", f.oid, "value", raw)
			return telemetry.Float64(math.NaN())
		}
		if extracted {
			decodeFallbackTotal.WithLabelValues(e.cfg.DeviceName, name, reasonExtracted).Inc()
		}
		return telemetry.Float64(v)
	default:
		return telemetry.Str(raw)
	}
}

func zeroReading(kind catalog.Kind) telemetry.Reading {
	switch kind {
	case catalog.KindInt:
		return telemetry.Int(0)
	case catalog.KindFloat:
		return telemetry.Float64(math.NaN())
	default:
		return telemetry.Str("")
	}
}

// Read polls once and then waits for the poll interval. The poll error, if
// any, is returned after the wait. A canceled wait is not an error.
func (e *Engine) Read(ctx context.Context) error {
	_, err := e.Poll(ctx)
	if serr := e.sleep(ctx, e.cfg.PollInterval); serr != nil {
		e.logger.Debug("poll interval wait interrupted", "error", serr)
	}
	return err
}

func sleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

// walkCode keeps the code of a structured walk error. Anything else a
// Walker returns counts as a transport failure.
func walkCode(err error) errors.ErrorCode {
	if code := errors.CodeOf(err); code != "" {
		return code
	}
	return errors.ErrCodeTransport
}
