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

// Package header provides the common header of EPM documents.
//
// Every document the poller emits (telemetry records, MIB tree and catalog
// dumps) starts with the same three fields:
//
//	{
//	  "kind": "Telemetry",
//	  "apiVersion": "epm.lsst.org/v1",
//	  "metadata": {
//	    "timestamp": "2026-10-14T10:30:00Z",
//	    "version": "v0.3.0"
//	  }
//	}
//
// # Usage
//
//	var h header.Header
//	h.Init(header.KindCatalog, header.APIVersion, version)
//
// or with options:
//
//	h := header.New(header.WithKind(header.KindMibTree), header.WithMetadata("source", "bundled"))
package header
