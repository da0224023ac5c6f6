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

// Package poller turns SNMP walks of a power device into telemetry records.
//
// An Engine is created per device with the shared MIB tree and a
// snmp.Walker. Setup probes the system description once and resolves the
// device root; every Poll walks the device subtree, decodes each catalog
// field found under the root and hands one telemetry.Record to the sink.
//
// Field decoding never fails a poll:
//
//   - a missing OID yields 0, NaN or "" by kind and a warning
//   - ints are base 10, an unparsable value yields 0
//   - floats use the codec of the OID: tenths (the default), plain text, or
//     hex encoded octets; when that fails the first number found in the
//     text is used unscaled, and NaN when there is none
//   - strings pass through
//
// Only the first row (.1) of indexed groups is read. PDUs report their
// system description and no per-field telemetry.
//
// RunReadLoop drives an Engine: Setup once, then Read until the context is
// canceled, escalating after a number of consecutive read failures.
package poller
