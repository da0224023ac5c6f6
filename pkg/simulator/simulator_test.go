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

package simulator

import (
	"context"
	"regexp"
	"slices"
	"strconv"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lsst-ts/ts-epm/pkg/catalog"
	"github.com/lsst-ts/ts-epm/pkg/errors"
	"github.com/lsst-ts/ts-epm/pkg/mib"
	"github.com/lsst-ts/ts-epm/pkg/snmp"
)

func bundledTree(t *testing.T) *mib.Tree {
	t.Helper()
	tree, err := mib.Build()
	require.NoError(t, err)
	return tree
}

func TestWalk_SystemDescription(t *testing.T) {
	tree := bundledTree(t)
	sys, ok := tree.Lookup(catalog.SystemDescription)
	require.True(t, ok)

	got, err := New(tree).Walk(context.Background(), sys.OID)
	require.NoError(t, err)
	assert.Equal(t, []snmp.Binding{{OID: sys.OID + ".0", Value: SystemDescription}}, got)

	// leading dot as sent by gosnmp
	got, err = New(tree).Walk(context.Background(), "."+sys.OID)
	require.NoError(t, err)
	assert.Len(t, got, 1)
}

func TestWalk_UnknownOID(t *testing.T) {
	_, err := New(bundledTree(t)).Walk(context.Background(), "1.3.6.1.4.1.99999")
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrCodeTransport))
	assert.Contains(t, err.Error(), "unknown OID 1.3.6.1.4.1.99999")
}

func TestWalk_Canceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := New(bundledTree(t)).Walk(ctx, "1.3.6.1.4.1.534.1")
	assert.True(t, errors.IsCode(err, errors.ErrCodeTransport))
}

var simulatedString = regexp.MustCompile(`^[A-Z0-9]{20}$`)

func TestWalk_RandomValues(t *testing.T) {
	tree := bundledTree(t)
	sim := New(tree, WithSource(NewSeededRandomSource(7)))

	for _, device := range []string{"xups", "scheiderPm5xxx", "pdu"} {
		t.Run(device, func(t *testing.T) {
			root, ok := tree.Lookup(device)
			require.True(t, ok)

			bindings, err := sim.Walk(context.Background(), root.OID)
			require.NoError(t, err)
			require.NotEmpty(t, bindings)

			assert.True(t, slices.IsSortedFunc(bindings, func(a, b snmp.Binding) int {
				return mib.CompareOID(a.OID, b.OID)
			}))

			expected := 0
			for _, e := range tree.Subtree(root.OID) {
				if _, ok := catalog.Lookup(e.Name); ok {
					expected++
				}
			}
			assert.Len(t, bindings, expected)

			for _, b := range bindings {
				e, ok := tree.ByOID(b.OID[:len(b.OID)-2])
				require.True(t, ok, b.OID)
				entry, ok := catalog.Lookup(e.Name)
				require.True(t, ok)
				instance, err := tree.InstanceOID(e.Name)
				require.NoError(t, err)
				assert.Equal(t, instance, b.OID)

				switch entry.Kind {
				case catalog.KindInt:
					v, err := strconv.Atoi(b.Value)
					require.NoError(t, err)
					assert.GreaterOrEqual(t, v, 0)
					assert.Less(t, v, 100)
				case catalog.KindFloat:
					v, err := strconv.Atoi(b.Value)
					require.NoError(t, err)
					assert.GreaterOrEqual(t, v, 100)
					assert.Less(t, v, 1000)
				case catalog.KindString:
					assert.Regexp(t, simulatedString, b.Value)
				}
			}
		})
	}
}

func TestSeededRandomSourceIsDeterministic(t *testing.T) {
	tree := bundledTree(t)
	root, _ := tree.Lookup("xups")

	a, err := New(tree, WithSource(NewSeededRandomSource(42))).Walk(context.Background(), root.OID)
	require.NoError(t, err)
	b, err := New(tree, WithSource(NewSeededRandomSource(42))).Walk(context.Background(), root.OID)
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestReplaySource_OmitsMissing(t *testing.T) {
	tree := bundledTree(t)
	root, _ := tree.Lookup("xups")
	voltage, err := tree.InstanceOID("xupsBatVoltage")
	require.NoError(t, err)

	src := NewReplaySource(map[string]string{voltage: "2194"})
	bindings, err := New(tree, WithSource(src)).Walk(context.Background(), root.OID)
	require.NoError(t, err)
	assert.Equal(t, []snmp.Binding{{OID: voltage, Value: "2194"}}, bindings)
}

func TestLoadReplay(t *testing.T) {
	fsys := fstest.MapFS{
		"ups_output.txt": {Data: []byte("# comment\n1.2.3.0: 42\n1.2.4.0: INV: 01.14\nbroken line\n")},
	}
	src, err := LoadReplay(fsys, "ups_output.txt")
	require.NoError(t, err)
	assert.Equal(t, 2, src.Len())

	v, ok := src.Value(mib.Element{}, catalog.Entry{}, "1.2.4.0")
	assert.True(t, ok)
	assert.Equal(t, "INV: 01.14", v)

	_, err = LoadReplay(fsys, "missing.txt")
	assert.True(t, errors.IsCode(err, errors.ErrCodeConfiguration))
}

func TestRecordedReplay(t *testing.T) {
	tree := bundledTree(t)
	for _, device := range []string{"xups", "scheiderPm5xxx", "pdu"} {
		t.Run(device, func(t *testing.T) {
			src, err := RecordedReplay(device)
			require.NoError(t, err)
			assert.Positive(t, src.Len())

			root, _ := tree.Lookup(device)
			bindings, err := New(tree, WithSource(src)).Walk(context.Background(), root.OID)
			require.NoError(t, err)
			assert.NotEmpty(t, bindings)
		})
	}

	_, err := RecordedReplay("toaster")
	assert.True(t, errors.IsCode(err, errors.ErrCodeNotFound))
}
