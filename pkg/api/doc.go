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

// Package api exposes EPM telemetry and MIB metadata over HTTP.
//
// Routes are registered on a pkg/server Server and pass through its
// middleware chain:
//
//	GET /v1/telemetry           latest record of every device
//	GET /v1/telemetry/{device}  latest record of one device; 404 when unknown
//	GET /v1/mib[?root=name]     MIB elements in OID order
//	GET /v1/mib/{name}          one element with its children and catalog entry
//	GET /v1/catalog             published telemetry items
//
// The same document types back the tree and catalog CLI commands.
package api
