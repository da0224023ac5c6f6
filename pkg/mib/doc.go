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

// Package mib builds the OID tree the poller walks.
//
// The tree is seeded with a fixed skeleton (snmp, mib-2 system group,
// private enterprises and the Eaton xups root) and extended with the
// declarations found in a set of vendor MIB text files. Only two line shapes
// are recognized:
//
//	xupsBattery OBJECT IDENTIFIER ::= { xupsMIB 2 }
//
//	xupsBatVoltage OBJECT-TYPE
//	    ...
//	    DESCRIPTION
//	        "Battery voltage as reported by the UPS meters."
//	    ::= { xupsBattery 2 }
//
// Vendor root names are aliased to the canonical device types (xups,
// scheiderPm5xxx, pdu) so that a device type can be looked up by name.
//
// # Usage
//
//	tree, err := mib.Build()
//	if err != nil {
//	    return err
//	}
//	oid, _ := tree.InstanceOID("xupsBatVoltage") // 1.3.6.1.4.1.534.1.2.2.0
//
// The bundled files are embedded in the binary; WithDir or WithFS replaces
// them. A Tree is immutable once built and may be shared between pollers.
package mib
