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

package mib

import (
	"strconv"
	"strings"
)

// Kind distinguishes structural nodes from value-bearing nodes.
type Kind string

const (
	// KindBranch is an OBJECT IDENTIFIER node that groups other nodes.
	KindBranch Kind = "BRANCH"
	// KindLeaf is an OBJECT-TYPE node that carries a value.
	KindLeaf Kind = "LEAF"
)

// Element is one node of the OID tree. Elements are values; the Tree owns
// the canonical copy and links parents by name.
type Element struct {
	Name        string `json:"name" yaml:"name"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
	OID         string `json:"oid" yaml:"oid"`
	Parent      string `json:"parent,omitempty" yaml:"parent,omitempty"`
	Kind        Kind   `json:"kind" yaml:"kind"`
	// Index names the column indexing the rows below this element. A
	// non-empty value means the children of this element repeat per row.
	Index string `json:"index,omitempty" yaml:"index,omitempty"`
}

// IsRoot reports whether e has no parent.
func (e Element) IsRoot() bool {
	return e.Parent == ""
}

// HasIndex reports whether values below e are indexed.
func (e Element) HasIndex() bool {
	return e.Index != ""
}

// ChildOID composes the OID of a direct child with the given sub-identifier.
func (e Element) ChildOID(subID string) string {
	return e.OID + "." + subID
}

// InSubtree reports whether oid equals root or lies below it. Matching is
// done per dotted segment, so "1.3.6.1.4.1.53" does not contain
// "1.3.6.1.4.1.534.1".
func InSubtree(oid, root string) bool {
	if oid == root {
		return true
	}
	return strings.HasPrefix(oid, root+".")
}

// CompareOID orders two dotted-decimal OIDs numerically segment by segment.
// Non-numeric segments compare as strings.
func CompareOID(a, b string) int {
	as := strings.Split(a, ".")
	bs := strings.Split(b, ".")
	for i := 0; i < len(as) && i < len(bs); i++ {
		if as[i] == bs[i] {
			continue
		}
		ai, aerr := strconv.ParseUint(as[i], 10, 64)
		bi, berr := strconv.ParseUint(bs[i], 10, 64)
		if aerr != nil || berr != nil {
			return strings.Compare(as[i], bs[i])
		}
		if ai < bi {
			return -1
		}
		return 1
	}
	switch {
	case len(as) < len(bs):
		return -1
	case len(as) > len(bs):
		return 1
	default:
		return 0
	}
}
