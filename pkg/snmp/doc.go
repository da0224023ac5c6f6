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

// Package snmp provides the transport used to read power devices.
//
// Walker is the narrow seam between the polling engine and the wire: a
// single subtree walk returning (OID, value) bindings. Client implements it
// on top of github.com/gosnmp/gosnmp with SNMPv1 and a read community.
// The simulator package provides a synthetic implementation.
//
// Values are rendered as text the way device tooling prints them:
// printable octet strings verbatim, binary octet strings as 0x hex,
// integers, counters and gauges in base 10, and object identifiers dotted.
//
// Usage:
//
//	c := snmp.NewClient("10.0.0.12", snmp.WithTimeout(time.Second))
//	defer c.Close()
//	bindings, err := c.Walk(ctx, "1.3.6.1.4.1.534.1")
package snmp
