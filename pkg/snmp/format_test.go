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

package snmp

import (
	"testing"

	"github.com/gosnmp/gosnmp"
	"github.com/stretchr/testify/assert"
)

func TestFormatValue(t *testing.T) {
	tests := []struct {
		name   string
		pdu    gosnmp.SnmpPDU
		want   string
		wantOk bool
	}{
		{"printable octets", gosnmp.SnmpPDU{Type: gosnmp.OctetString, Value: []byte("Eaton 9PX 6000")}, "Eaton 9PX 6000", true},
		{"multiline octets", gosnmp.SnmpPDU{Type: gosnmp.OctetString, Value: []byte("a\r\nb")}, "a\r\nb", true},
		{"binary octets", gosnmp.SnmpPDU{Type: gosnmp.OctetString, Value: []byte{0x41, 0x20, 0x00, 0x00}}, "0x41200000", true},
		{"empty octets", gosnmp.SnmpPDU{Type: gosnmp.OctetString, Value: []byte{}}, "", true},
		{"integer", gosnmp.SnmpPDU{Type: gosnmp.Integer, Value: -12}, "-12", true},
		{"gauge", gosnmp.SnmpPDU{Type: gosnmp.Gauge32, Value: uint(2304)}, "2304", true},
		{"counter64", gosnmp.SnmpPDU{Type: gosnmp.Counter64, Value: uint64(1 << 40)}, "1099511627776", true},
		{"timeticks", gosnmp.SnmpPDU{Type: gosnmp.TimeTicks, Value: uint32(360000)}, "360000", true},
		{"oid", gosnmp.SnmpPDU{Type: gosnmp.ObjectIdentifier, Value: ".1.3.6.1.4.1.534"}, "1.3.6.1.4.1.534", true},
		{"ip", gosnmp.SnmpPDU{Type: gosnmp.IPAddress, Value: "10.0.0.1"}, "10.0.0.1", true},
		{"opaque float", gosnmp.SnmpPDU{Type: gosnmp.OpaqueFloat, Value: float32(10)}, "10", true},
		{"opaque double", gosnmp.SnmpPDU{Type: gosnmp.OpaqueDouble, Value: 1.25}, "1.25", true},
		{"no such object", gosnmp.SnmpPDU{Type: gosnmp.NoSuchObject}, "", false},
		{"no such instance", gosnmp.SnmpPDU{Type: gosnmp.NoSuchInstance}, "", false},
		{"end of mib", gosnmp.SnmpPDU{Type: gosnmp.EndOfMibView}, "", false},
		{"null", gosnmp.SnmpPDU{Type: gosnmp.Null}, "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := FormatValue(tt.pdu)
			assert.Equal(t, tt.wantOk, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}
