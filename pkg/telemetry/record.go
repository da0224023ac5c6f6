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
	"time"

	"gopkg.in/yaml.v3"

	"github.com/lsst-ts/ts-epm/pkg/catalog"
	"github.com/lsst-ts/ts-epm/pkg/header"
)

// SystemDescriptionField is the public name of the setup probe result.
const SystemDescriptionField = "systemDescription"

// Record is the telemetry of one device for one poll.
type Record struct {
	header.Header `json:",inline" yaml:",inline"`

	ID                string                  `json:"id" yaml:"id"`
	DeviceName        string                  `json:"deviceName" yaml:"deviceName"`
	DeviceType        string                  `json:"deviceType" yaml:"deviceType"`
	Location          string                  `json:"location" yaml:"location"`
	SystemDescription string                  `json:"systemDescription" yaml:"systemDescription"`
	Timestamp         time.Time               `json:"timestamp" yaml:"timestamp"`
	Fields            map[string]Reading      `json:"fields" yaml:"fields"`
	Units             map[string]catalog.Unit `json:"units,omitempty" yaml:"units,omitempty"`
}

// Get returns the reading of a field, or nil.
func (r *Record) Get(field string) Reading {
	return r.Fields[field]
}

// Has reports whether the record carries a field.
func (r *Record) Has(field string) bool {
	_, ok := r.Fields[field]
	return ok
}

type recordAlias Record

type rawRecord struct {
	*recordAlias
	Fields map[string]any `json:"fields" yaml:"fields"`
}

// UnmarshalJSON decodes a record, converting field values with FieldReading.
func (r *Record) UnmarshalJSON(data []byte) error {
	raw := rawRecord{recordAlias: (*recordAlias)(r)}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	r.Fields = toReadings(raw.Fields)
	return nil
}

// UnmarshalYAML decodes a record, converting field values with FieldReading.
func (r *Record) UnmarshalYAML(node *yaml.Node) error {
	var tmp struct {
		header.Header     `yaml:",inline"`
		ID                string                  `yaml:"id"`
		DeviceName        string                  `yaml:"deviceName"`
		DeviceType        string                  `yaml:"deviceType"`
		Location          string                  `yaml:"location"`
		SystemDescription string                  `yaml:"systemDescription"`
		Timestamp         time.Time               `yaml:"timestamp"`
		Fields            map[string]any          `yaml:"fields"`
		Units             map[string]catalog.Unit `yaml:"units"`
	}
	if err := node.Decode(&tmp); err != nil {
		return err
	}
	*r = Record{
		Header:            tmp.Header,
		ID:                tmp.ID,
		DeviceName:        tmp.DeviceName,
		DeviceType:        tmp.DeviceType,
		Location:          tmp.Location,
		SystemDescription: tmp.SystemDescription,
		Timestamp:         tmp.Timestamp,
		Fields:            toReadings(tmp.Fields),
		Units:             tmp.Units,
	}
	return nil
}

func toReadings(in map[string]any) map[string]Reading {
	out := make(map[string]Reading, len(in))
	for k, v := range in {
		out[k] = FieldReading(k, v)
	}
	return out
}
