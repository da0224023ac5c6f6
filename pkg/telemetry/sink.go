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

package telemetry

import (
	"context"
	"errors"
	"sync"

	"github.com/lsst-ts/ts-epm/pkg/serializer"
)

// Sink receives every record produced by a poll.
type Sink interface {
	Emit(ctx context.Context, rec *Record) error
}

// SinkFunc adapts a function to the Sink interface.
type SinkFunc func(ctx context.Context, rec *Record) error

// Emit calls f(ctx, rec).
func (f SinkFunc) Emit(ctx context.Context, rec *Record) error {
	return f(ctx, rec)
}

// MultiSink fans a record out to several sinks. Every sink is tried, even
// after a failure; the returned error joins the individual failures.
type MultiSink []Sink

// Emit delivers rec to every sink.
func (m MultiSink) Emit(ctx context.Context, rec *Record) error {
	var errs []error
	for _, s := range m {
		if s == nil {
			continue
		}
		if err := s.Emit(ctx, rec); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// WriterSink serializes records through a serializer.Serializer.
type WriterSink struct {
	mu  sync.Mutex
	ser serializer.Serializer
}

// NewWriterSink wraps ser.
func NewWriterSink(ser serializer.Serializer) *WriterSink {
	return &WriterSink{ser: ser}
}

// Emit serializes rec.
func (w *WriterSink) Emit(ctx context.Context, rec *Record) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.ser.Serialize(ctx, rec)
}

// Close closes the underlying serializer when it supports it.
func (w *WriterSink) Close() error {
	if c, ok := w.ser.(serializer.Closer); ok {
		return c.Close()
	}
	return nil
}
