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

package catalog

// Codec selects how a raw float value is turned into a number.
type Codec string

const (
	// CodecTenths parses an integer reported in tenths of the unit.
	CodecTenths Codec = "tenths"
	// CodecPlain parses a decimal number sent as text.
	CodecPlain Codec = "plain"
	// CodecHex decodes a hex encoded octet string.
	CodecHex Codec = "hex"
)

// Eaton frequencies are reported in tenths of Hz. CodecTenths is already the
// default, so this list only records which OIDs are known to use it.
var frequencyOIDs = []string{
	"1.3.6.1.4.1.534.1.3.1.0",
	"1.3.6.1.4.1.534.1.4.2.0",
	"1.3.6.1.4.1.534.1.5.1.0",
}

// Synaccess load readings are hex encoded octet strings. Nothing reaches them
// until PDU fields are polled; the engine fetches only the system description
// for PDUs.
var pduHexOIDs = []string{
	"1.3.6.1.4.1.21728.3.3.2.0",
	"1.3.6.1.4.1.21728.3.3.3.0",
	"1.3.6.1.4.1.21728.3.3.4.0",
	"1.3.6.1.4.1.21728.3.3.5.0",
}

// Schneider meters publish floats as plain decimal strings.
var schneiderPlainOIDs = []string{
	"1.3.6.1.4.1.3833.1.100.1.3.1.3.5.1.0",
	"1.3.6.1.4.1.3833.1.100.1.3.1.3.5.2.0",
	"1.3.6.1.4.1.3833.1.100.1.3.1.3.5.3.0",
	"1.3.6.1.4.1.3833.1.100.1.3.1.3.5.5.0",
	"1.3.6.1.4.1.3833.1.100.1.3.1.3.5.6.0",
	"1.3.6.1.4.1.3833.1.100.1.3.1.3.5.7.0",
	"1.3.6.1.4.1.3833.1.100.1.3.1.3.3.1.0",
	"1.3.6.1.4.1.3833.1.100.1.3.1.3.3.2.0",
	"1.3.6.1.4.1.3833.1.100.1.3.1.3.3.3.0",
	"1.3.6.1.4.1.3833.1.100.1.3.1.3.3.4.0",
	"1.3.6.1.4.1.3833.1.100.1.3.1.3.2.1.0",
	"1.3.6.1.4.1.3833.1.100.1.3.1.3.7.1.0",
	"1.3.6.1.4.1.3833.1.100.1.3.1.3.7.2.0",
	"1.3.6.1.4.1.3833.1.100.1.3.1.3.7.3.0",
	"1.3.6.1.4.1.3833.1.100.1.3.1.3.7.4.0",
	"1.3.6.1.4.1.3833.1.100.1.3.1.3.7.5.0",
	"1.3.6.1.4.1.3833.1.100.1.3.1.3.7.6.0",
	"1.3.6.1.4.1.3833.1.100.1.3.1.3.7.7.0",
	"1.3.6.1.4.1.3833.1.100.1.3.1.3.7.8.0",
	"1.3.6.1.4.1.3833.1.100.1.3.1.3.7.9.0",
	"1.3.6.1.4.1.3833.1.100.1.3.1.3.7.10.0",
	"1.3.6.1.4.1.3833.1.100.1.3.1.3.7.11.0",
	"1.3.6.1.4.1.3833.1.100.1.3.1.3.7.12.0",
	"1.3.6.1.4.1.3833.1.100.1.3.1.3.8.1.0",
	"1.3.6.1.4.1.3833.1.100.1.3.1.3.8.2.0",
	"1.3.6.1.4.1.3833.1.100.1.3.1.3.8.3.0",
	"1.3.6.1.4.1.3833.1.100.1.3.1.3.8.4.0",
	"1.3.6.1.4.1.3833.1.100.1.3.1.3.8.5.0",
	"1.3.6.1.4.1.3833.1.100.1.3.1.3.8.6.0",
	"1.3.6.1.4.1.3833.1.100.1.3.1.3.8.7.0",
	"1.3.6.1.4.1.3833.1.100.1.3.1.3.8.8.0",
	"1.3.6.1.4.1.3833.1.100.1.3.1.3.10.2.0",
	"1.3.6.1.4.1.3833.1.100.1.3.1.3.10.6.0",
	"1.3.6.1.4.1.3833.1.100.1.3.1.3.10.10.0",
}

var codecs = func() map[string]Codec {
	m := make(map[string]Codec)
	for _, oid := range frequencyOIDs {
		m[oid] = CodecTenths
	}
	for _, oid := range pduHexOIDs {
		m[oid] = CodecHex
	}
	for _, oid := range schneiderPlainOIDs {
		m[oid] = CodecPlain
	}
	return m
}()

// CodecFor returns the float codec for an instance OID. OIDs without a
// vendor quirk use CodecTenths.
func CodecFor(instanceOID string) Codec {
	if c, ok := codecs[instanceOID]; ok {
		return c
	}
	return CodecTenths
}
