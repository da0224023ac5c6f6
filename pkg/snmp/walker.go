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
	"context"
	"strings"
)

// Binding is one (OID, value) pair returned by a walk. OIDs are absolute
// dotted-decimal without a leading dot; values are rendered as text.
type Binding struct {
	OID   string `json:"oid" yaml:"oid"`
	Value string `json:"value" yaml:"value"`
}

// Walker retrieves every binding under a subtree.
type Walker interface {
	Walk(ctx context.Context, rootOID string) ([]Binding, error)
}

// WalkerFunc adapts a function to the Walker interface.
type WalkerFunc func(ctx context.Context, rootOID string) ([]Binding, error)

// Walk calls f(ctx, rootOID).
func (f WalkerFunc) Walk(ctx context.Context, rootOID string) ([]Binding, error) {
	return f(ctx, rootOID)
}

// BindingsToMap converts walk results into an OID to value map. Later
// bindings for the same OID win.
func BindingsToMap(bindings []Binding) map[string]string {
	m := make(map[string]string, len(bindings))
	for _, b := range bindings {
		m[b.OID] = b.Value
	}
	return m
}

// NormalizeOID strips the leading dot gosnmp puts on OIDs.
func NormalizeOID(oid string) string {
	return strings.TrimPrefix(strings.TrimSpace(oid), ".")
}
