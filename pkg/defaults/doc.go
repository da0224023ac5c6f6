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

// Package defaults provides centralized configuration constants for the EPM poller.
//
// This package defines timeout values, polling cadence, and SNMP transport
// defaults used across the codebase.
//
// # Categories
//
//   - SNMP transport: port, community, per-request timeout and retries
//   - Poll loop: interval between polls and failure tolerance
//   - Server timeouts: for the HTTP status server
//
// Values here are the fallbacks used when a device configuration leaves the
// corresponding field unset.
package defaults
