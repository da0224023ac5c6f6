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

// Package server provides the HTTP server used by the EPM poller for health
// probes, Prometheus metrics and the latest-telemetry API.
//
// The server is generic: domain routes are supplied by the caller as a map of
// http.ServeMux patterns to handlers and are wrapped in the middleware chain:
//
//   - metrics: request count, latency and in-flight gauge (epm_http_*)
//   - version: API version negotiation via application/vnd.lsst.epm.v1+json
//   - request ID: X-Request-Id, generated when missing or not a UUID
//   - panic recovery: 500 with a structured error body
//   - rate limiting: token bucket (golang.org/x/time/rate)
//   - logging: debug-level request logs
//
// System routes are always present and bypass the chain:
//
//	GET /health   liveness
//	GET /ready    readiness; 503 until the caller marks the server ready
//	GET /metrics  Prometheus exposition
//
// A root route listing all routes is added unless the caller provides one.
//
// # Usage
//
//	s := server.New(
//	    server.WithName("epm"),
//	    server.WithVersion(version),
//	    server.WithHandler(routes),
//	    server.WithManualReadiness(),
//	)
//	go func() { _ = s.Start(ctx) }()
//	// ... once every device is set up
//	s.SetReady(true)
//
// # Errors
//
// Non-2xx responses carry an ErrorResponse body. WriteErrorFromErr maps the
// code of a structured error from pkg/errors to the HTTP status:
//
//	INVALID_REQUEST, CONFIGURATION  400
//	NOT_FOUND                       404
//	METHOD_NOT_ALLOWED              405
//	RATE_LIMIT_EXCEEDED             429
//	TRANSPORT                       502
//	SERVICE_UNAVAILABLE             503
//	TIMEOUT                         504
//	anything else                   500
//
// # Configuration
//
// NewConfig reads PORT and SHUTDOWN_TIMEOUT_SECONDS from the environment.
// Config.SetListen accepts a host:port listen address.
package server
