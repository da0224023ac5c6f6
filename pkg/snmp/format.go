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
	"encoding/hex"
	"fmt"
	"math"
	"strconv"
	"unicode"
	"unicode/utf8"

	"github.com/gosnmp/gosnmp"
)

// FormatValue renders a PDU value as text. Printable octet strings are
// returned as-is, other octet strings as 0x-prefixed hex. Numbers are
// base-10. The second result is false for exception values that carry no
// data.
func FormatValue(pdu gosnmp.SnmpPDU) (string, bool) {
	switch pdu.Type {
	case gosnmp.NoSuchObject, gosnmp.NoSuchInstance, gosnmp.EndOfMibView, gosnmp.Null:
		return "", false
	case gosnmp.OctetString, gosnmp.BitString, gosnmp.Opaque:
		b, ok := pdu.Value.([]byte)
		if !ok {
			return fmt.Sprintf("%v", pdu.Value), true
		}
		return formatOctets(b), true
	case gosnmp.ObjectIdentifier:
		s, _ := pdu.Value.(string)
		return NormalizeOID(s), true
	case gosnmp.IPAddress:
		return fmt.Sprintf("%v", pdu.Value), true
	case gosnmp.OpaqueFloat:
		f, _ := pdu.Value.(float32)
		return formatFloat(float64(f), 32), true
	case gosnmp.OpaqueDouble:
		f, _ := pdu.Value.(float64)
		return formatFloat(f, 64), true
	case gosnmp.Boolean:
		return fmt.Sprintf("%v", pdu.Value), true
	default:
		return gosnmp.ToBigInt(pdu.Value).String(), true
	}
}

func formatFloat(f float64, bits int) string {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return strconv.FormatFloat(f, 'g', -1, bits)
	}
	return strconv.FormatFloat(f, 'f', -1, bits)
}

func formatOctets(b []byte) string {
	if isPrintable(b) {
		return string(b)
	}
	return "0x" + hex.EncodeToString(b)
}

func isPrintable(b []byte) bool {
	if !utf8.Valid(b) {
		return false
	}
	for _, r := range string(b) {
		if r == '\n' || r == '\r' || r == '\t' {
			continue
		}
		if !unicode.IsPrint(r) {
			return false
		}
	}
	return true
}
