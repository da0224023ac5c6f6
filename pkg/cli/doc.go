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

// Package cli implements the epm command line interface.
//
// # Commands
//
// run - poll every configured device until interrupted:
//
//	epm run --config epm.yaml [--simulate] [--replay] [--listen :8080] [--output records.json] [--format json]
//
// Records go to the output, to the in-memory store served by the HTTP API
// when --listen is set, and to the Prometheus gauges on /metrics. The first
// fatal device error stops every device and exits non-zero.
//
// poll - poll one device a fixed number of times:
//
//	epm poll --host 10.0.0.12 --type xups [--count 3] [--interval 1s]
//	epm poll --type scheiderPm5xxx --simulate --replay
//
// tree - print the MIB tree, optionally one subtree:
//
//	epm tree [--root xups] [--mib-dir ./mibs]
//
// catalog - print the published telemetry items:
//
//	epm catalog --format table
//
// # Global Flags
//
//	--log-level    debug, info, warn or error (env LOG_LEVEL, default info)
//	--help, -h     Show command help
//	--version, -v  Show version information
//
// # Output Formats
//
// Every command accepts --output/-o and --format/-t (json, yaml, table).
// JSON and YAML write one document per record; table flattens nested
// fields into dotted keys.
//
// # Version Information
//
// Version, commit and build date are set at build time:
//
//	go build -ldflags="-X 'github.com/lsst-ts/ts-epm/pkg/cli.version=1.0.0' \
//	  -X 'github.com/lsst-ts/ts-epm/pkg/cli.commit=abc123' \
//	  -X 'github.com/lsst-ts/ts-epm/pkg/cli.date=2025-01-01'"
package cli
