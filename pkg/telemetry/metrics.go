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
	"context"
	"math"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	telemetryValue = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "epm_telemetry_value",
			Help: "Latest numeric telemetry value per device and field",
		},
		[]string{"device", "device_type", "field", "unit"},
	)
	telemetryTimestamp = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "epm_telemetry_timestamp_seconds",
			Help: "Unix time of the latest telemetry record per device",
		},
		[]string{"device", "device_type"},
	)
)

// MetricsSink exports numeric fields as Prometheus gauges. NaN readings
// remove the series so stale values are not reported.
type MetricsSink struct{}

// Emit implements Sink.
func (MetricsSink) Emit(_ context.Context, rec *Record) error {
	if rec == nil {
		return nil
	}
	for field, r := range rec.Fields {
		v, ok := Float(r)
		if !ok {
			continue
		}
		labels := prometheus.Labels{
			"device":      rec.DeviceName,
			"device_type": rec.DeviceType,
			"field":       field,
			"unit":        string(rec.Units[field]),
		}
		if math.IsNaN(v) {
			telemetryValue.Delete(labels)
			continue
		}
		telemetryValue.With(labels).Set(v)
	}
	telemetryTimestamp.WithLabelValues(rec.DeviceName, rec.DeviceType).Set(float64(rec.Timestamp.Unix()))
	return nil
}
