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
	"fmt"
	"math"

	"gopkg.in/yaml.v3"

	"github.com/lsst-ts/ts-epm/pkg/catalog"
)

// AllowedScalar is a constraint (compile-time) for what we allow as readings.
type AllowedScalar interface {
	~int64 | ~float64 | ~string
}

// Reading is a *runtime* interface (so it can be stored in a map with mixed types).
type Reading interface {
	isReading()
	Any() any
	String() string

	json.Marshaler
	json.Unmarshaler
	yaml.Marshaler
	yaml.Unmarshaler
}

// Scalar wraps an allowed scalar type.
type Scalar[T AllowedScalar] struct {
	V T
}

func (Scalar[T]) isReading() {}

func (s Scalar[T]) Any() any { return s.V }

// String returns the string representation of the underlying scalar value.
func (s Scalar[T]) String() string {
	return fmt.Sprintf("%v", s.V)
}

// MarshalJSON makes the JSON value be the underlying scalar. NaN and
// infinite floats have no JSON form and encode as null.
func (s Scalar[T]) MarshalJSON() ([]byte, error) {
	if f, ok := any(s.V).(float64); ok && (math.IsNaN(f) || math.IsInf(f, 0)) {
		return []byte("null"), nil
	}
	return json.Marshal(s.V)
}

// MarshalYAML makes the YAML value be the underlying scalar (not an object wrapper).
func (s Scalar[T]) MarshalYAML() (any, error) {
	return s.V, nil
}

// UnmarshalJSON unmarshals a JSON value into the underlying scalar. A null
// float decodes as NaN.
func (s *Scalar[T]) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		if p, ok := any(&s.V).(*float64); ok {
			*p = math.NaN()
		}
		return nil
	}
	return json.Unmarshal(data, &s.V)
}

// UnmarshalYAML unmarshals a YAML value into the underlying scalar.
func (s *Scalar[T]) UnmarshalYAML(node *yaml.Node) error {
	return node.Decode(&s.V)
}

// Convenience constructors for each allowed scalar type.
func Int(v int64) Reading       { return &Scalar[int64]{V: v} }
func Float64(v float64) Reading { return &Scalar[float64]{V: v} }
func Str(v string) Reading      { return &Scalar[string]{V: v} }

// ToReading creates a Reading from a decoded JSON or YAML value. Whole
// numbers become ints, other numbers floats, nil a NaN float, and anything
// else its string form.
func ToReading(v any) Reading {
	switch val := v.(type) {
	case nil:
		return Float64(math.NaN())
	case int:
		return Int(int64(val))
	case int64:
		return Int(val)
	case float64:
		if val == math.Trunc(val) && !math.IsInf(val, 0) && math.Abs(val) < 1<<53 {
			return Int(int64(val))
		}
		return Float64(val)
	case string:
		return Str(val)
	default:
		return Str(fmt.Sprintf("%v", val))
	}
}

// FieldReading is ToReading guided by the catalog kind of a published field,
// so a float field holding a whole number stays a float. Fields unknown to
// the catalog fall back to ToReading.
func FieldReading(field string, v any) Reading {
	entry, ok := catalog.ByPublicName(field)
	if !ok {
		return ToReading(v)
	}
	switch entry.Kind {
	case catalog.KindFloat:
		switch val := v.(type) {
		case nil:
			return Float64(math.NaN())
		case int:
			return Float64(float64(val))
		case int64:
			return Float64(float64(val))
		case uint64:
			return Float64(float64(val))
		case float64:
			return Float64(val)
		}
	case catalog.KindInt:
		switch val := v.(type) {
		case int:
			return Int(int64(val))
		case int64:
			return Int(val)
		case float64:
			if val == math.Trunc(val) && math.Abs(val) < 1<<53 {
				return Int(int64(val))
			}
		}
	case catalog.KindString:
		if val, ok := v.(string); ok {
			return Str(val)
		}
	}
	return ToReading(v)
}

// Float returns the numeric value of r and whether it has one.
func Float(r Reading) (float64, bool) {
	switch v := r.Any().(type) {
	case int64:
		return float64(v), true
	case float64:
		return v, true
	default:
		return 0, false
	}
}
