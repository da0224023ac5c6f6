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
	"time"

	"github.com/google/uuid"

	"github.com/lsst-ts/ts-epm/pkg/catalog"
	"github.com/lsst-ts/ts-epm/pkg/header"
)

// RecordBuilder provides a fluent API for building Record instances.
type RecordBuilder struct {
	rec     Record
	version string
	now     func() time.Time
}

// NewRecordBuilder starts a record for one device.
func NewRecordBuilder(deviceName, deviceType, location string) *RecordBuilder {
	return &RecordBuilder{
		rec: Record{
			DeviceName: deviceName,
			DeviceType: deviceType,
			Location:   location,
			Fields:     make(map[string]Reading),
			Units:      make(map[string]catalog.Unit),
		},
		now: time.Now,
	}
}

// WithVersion records the producer version in the header metadata.
func (b *RecordBuilder) WithVersion(version string) *RecordBuilder {
	b.version = version
	return b
}

// WithClock overrides the timestamp source.
func (b *RecordBuilder) WithClock(now func() time.Time) *RecordBuilder {
	b.now = now
	return b
}

// SystemDescription sets the description reported by the device.
func (b *RecordBuilder) SystemDescription(descr string) *RecordBuilder {
	b.rec.SystemDescription = descr
	return b
}

// Set adds or updates a field together with its unit.
func (b *RecordBuilder) Set(field string, value Reading, unit catalog.Unit) *RecordBuilder {
	b.rec.Fields[field] = value
	if unit != "" {
		b.rec.Units[field] = unit
	}
	return b
}

// SetInt is a convenience method for adding int values.
func (b *RecordBuilder) SetInt(field string, value int64, unit catalog.Unit) *RecordBuilder {
	return b.Set(field, Int(value), unit)
}

// SetFloat64 is a convenience method for adding float values.
func (b *RecordBuilder) SetFloat64(field string, value float64, unit catalog.Unit) *RecordBuilder {
	return b.Set(field, Float64(value), unit)
}

// SetString is a convenience method for adding string values.
func (b *RecordBuilder) SetString(field, value string, unit catalog.Unit) *RecordBuilder {
	return b.Set(field, Str(value), unit)
}

// Build stamps the record with a fresh ID, timestamp and header.
func (b *RecordBuilder) Build() *Record {
	rec := b.rec
	rec.Header.Init(header.KindTelemetry, header.APIVersion, b.version)
	rec.ID = uuid.NewString()
	rec.Timestamp = b.now().UTC()

	rec.Fields = make(map[string]Reading, len(b.rec.Fields)+1)
	for k, v := range b.rec.Fields {
		rec.Fields[k] = v
	}
	rec.Fields[SystemDescriptionField] = Str(rec.SystemDescription)

	rec.Units = make(map[string]catalog.Unit, len(b.rec.Units)+1)
	for k, v := range b.rec.Units {
		rec.Units[k] = v
	}
	rec.Units[SystemDescriptionField] = catalog.UnitNone
	return &rec
}
