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

package telemetry

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestScalar_MarshalJSON(t *testing.T) {
	tests := []struct {
		name string
		r    Reading
		want string
	}{
		{"int", Int(42), "42"},
		{"float", Float64(123.4), "123.4"},
		{"string", Str("Eaton 9PX"), `"Eaton 9PX"`},
		{"nan", Float64(math.NaN()), "null"},
		{"inf", Float64(math.Inf(1)), "null"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := json.Marshal(tt.r)
			require.NoError(t, err)
			assert.Equal(t, tt.want, string(got))
		})
	}
}

func TestScalar_UnmarshalJSONNull(t *testing.T) {
	var s Scalar[float64]
	require.NoError(t, json.Unmarshal([]byte("null"), &s))
	assert.True(t, math.IsNaN(s.V))
}

func TestScalar_YAML(t *testing.T) {
	out, err := yaml.Marshal(map[string]Reading{"v": Int(7)})
	require.NoError(t, err)
	assert.Equal(t, "v: 7\n", string(out))

	var s Scalar[string]
	require.NoError(t, yaml.Unmarshal([]byte("abc"), &s))
	assert.Equal(t, "abc", s.V)
}

func TestToReading(t *testing.T) {
	tests := []struct {
		name  string
		value any
		want  any
	}{
		{"int", 42, int64(42)},
		{"int64", int64(-3), int64(-3)},
		{"whole float", float64(120), int64(120)},
		{"fraction", 12.5, 12.5},
		{"string", "on", "on"},
		{"bool", true, "true"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ToReading(tt.value).Any())
		})
	}

	t.Run("nil", func(t *testing.T) {
		v, ok := Float(ToReading(nil))
		assert.True(t, ok)
		assert.True(t, math.IsNaN(v))
	})
}

func TestFieldReading(t *testing.T) {
	tests := []struct {
		name  string
		field string
		value any
		want  any
	}{
		{"float field whole number", "batteryVoltage", float64(50), 50.0},
		{"float field yaml int", "batteryVoltage", 50, 50.0},
		{"float field fraction", "batteryVoltage", 54.2, 54.2},
		{"int field whole float", "batteryAbmStatus", float64(3), int64(3)},
		{"int field fraction", "batteryAbmStatus", 2.5, 2.5},
		{"string field", "serialNumber", "ABC123", "ABC123"},
		{"unknown field", "notInCatalog", float64(4), int64(4)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FieldReading(tt.field, tt.value).Any())
		})
	}

	t.Run("float field nil", func(t *testing.T) {
		v, ok := Float(FieldReading("batteryVoltage", nil))
		assert.True(t, ok)
		assert.True(t, math.IsNaN(v))
	})
}

func TestFloat(t *testing.T) {
	v, ok := Float(Int(3))
	assert.True(t, ok)
	assert.Equal(t, 3.0, v)

	v, ok = Float(Float64(2.5))
	assert.True(t, ok)
	assert.Equal(t, 2.5, v)

	_, ok = Float(Str("x"))
	assert.False(t, ok)
}

func TestReading_String(t *testing.T) {
	assert.Equal(t, "42", Int(42).String())
	assert.Equal(t, "1.5", Float64(1.5).String())
	assert.Equal(t, "abc", Str("abc").String())
}
