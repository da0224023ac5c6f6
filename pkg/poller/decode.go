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

package poller

import (
	"encoding/binary"
	"encoding/hex"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
	"unicode"

	"github.com/lsst-ts/ts-epm/pkg/catalog"
)

// numericRe matches the first float-looking substring of a vendor payload.
var numericRe = regexp.MustCompile(`[-+]?(?:\d*\.\d+|\d+\.?)(?:[Ee][+-]?\d+)?`)

// decodeInt parses a base-10 integer.
func decodeInt(raw string) (int64, error) {
	return strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
}

// decodeFloat converts a raw value with the given codec. The bool result is
// true when the value came from the numeric substring fallback, which is
// never scaled.
func decodeFloat(raw string, codec catalog.Codec) (float64, bool, error) {
	text := strings.TrimSpace(raw)

	switch codec {
	case catalog.CodecHex:
		if v, ok := decodeHex(text); ok {
			return v, false, nil
		}
	case catalog.CodecPlain:
		if v, err := strconv.ParseFloat(text, 64); err == nil {
			return v, false, nil
		}
	default:
		if v, err := strconv.ParseFloat(text, 64); err == nil {
			return v / 10, false, nil
		}
	}

	if m := numericRe.FindString(text); m != "" {
		if v, err := strconv.ParseFloat(m, 64); err == nil {
			return v, true, nil
		}
	}
	return math.NaN(), false, fmt.Errorf("no numeric value in %q", raw)
}

// decodeHex reads a 0x-prefixed octet string holding either ASCII text of a
// number or a big-endian IEEE 754 float.
func decodeHex(text string) (float64, bool) {
	if len(text) < 3 || (text[:2] != "0x" && text[:2] != "0X") {
		return 0, false
	}
	b, err := hex.DecodeString(text[2:])
	if err != nil || len(b) == 0 {
		return 0, false
	}

	if printable(b) {
		s := strings.TrimSpace(string(b))
		if v, err := strconv.ParseFloat(s, 64); err == nil {
			return v, true
		}
		if m := numericRe.FindString(s); m != "" {
			if v, err := strconv.ParseFloat(m, 64); err == nil {
				return v, true
			}
		}
	}

	switch len(b) {
	case 4:
		return float64(math.Float32frombits(binary.BigEndian.Uint32(b))), true
	case 8:
		return math.Float64frombits(binary.BigEndian.Uint64(b)), true
	default:
		return 0, false
	}
}

func printable(b []byte) bool {
	for _, c := range b {
		if c > unicode.MaxASCII || !unicode.IsPrint(rune(c)) {
			return false
		}
	}
	return true
}
