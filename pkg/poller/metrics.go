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
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	pollDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "epm_poll_duration_seconds",
			Help:    "Duration of one device poll including the subtree walk",
			Buckets: []float64{.01, .05, .1, .25, .5, 1, 2.5, 5, 10},
		},
		[]string{"device_type"},
	)

	pollTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "epm_poll_total",
			Help: "Total number of device polls",
		},
		[]string{"device", "status"},
	)

	decodeFallbackTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "epm_decode_fallback_total",
			Help: "Total number of telemetry fields that fell back to a default or extracted value",
		},
		[]string{"device", "field", "reason"},
	)

	readFailuresTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "epm_read_failures_total",
			Help: "Total number of failed reads counted by the read loop",
		},
		[]string{"device"},
	)
)

const (
	statusSuccess = "success"
	statusError   = "error"

	reasonMissing   = "missing"
	reasonExtracted = "extracted"
	reasonInvalid   = "invalid"
)
