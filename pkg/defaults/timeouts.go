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

package defaults

import "time"

// SNMP transport defaults.
const (
	// SNMPPort is the standard SNMP agent port.
	SNMPPort = 161

	// SNMPCommunity is the read community used for every device.
	SNMPCommunity = "public"

	// SNMPTimeout is the per-request timeout of the SNMP client.
	SNMPTimeout = 2 * time.Second

	// SNMPRetries is the number of retransmissions before a request fails.
	SNMPRetries = 1

	// SNMPWalkRate is the maximum number of subtree walks per second per device.
	SNMPWalkRate = 10
)

// Poll loop defaults.
const (
	// PollInterval is the time between two telemetry polls of one device.
	PollInterval = 1 * time.Second

	// MaxReadTimeouts is the number of consecutive failed reads tolerated
	// before a device session is considered faulted.
	MaxReadTimeouts = 5
)

// Server timeouts for HTTP server configuration.
const (
	// ServerReadTimeout is the maximum duration for reading request headers.
	ServerReadTimeout = 10 * time.Second

	// ServerReadHeaderTimeout prevents slow header attacks.
	ServerReadHeaderTimeout = 5 * time.Second

	// ServerWriteTimeout is the maximum duration for writing a response.
	ServerWriteTimeout = 30 * time.Second

	// ServerIdleTimeout is the maximum duration to wait for the next request.
	ServerIdleTimeout = 120 * time.Second

	// ServerShutdownTimeout is the maximum duration for graceful shutdown.
	ServerShutdownTimeout = 30 * time.Second
)
