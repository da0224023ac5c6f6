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

// Package telemetry defines the records produced by polling a device and
// the sinks that consume them.
//
// A Record carries one poll of one device: identity, the system
// description, a timestamp and a map of public field names to Readings.
// Readings are typed scalars (int64, float64 or string) that marshal to
// their bare value. Floats that could not be decoded are NaN and marshal
// as JSON null.
//
// Usage:
//
//	rec := telemetry.NewRecordBuilder("ups-1", "xups", "dome").
//		SystemDescription("Eaton 9PX").
//		SetFloat64("batteryVoltage", 54.1, catalog.UnitVolt).
//		Build()
//
//	store := telemetry.NewStore()
//	sink := telemetry.MultiSink{store, telemetry.MetricsSink{}}
//	err := sink.Emit(ctx, rec)
package telemetry
