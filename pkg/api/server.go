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

package api

import (
	"log/slog"

	"github.com/lsst-ts/ts-epm/pkg/errors"
	"github.com/lsst-ts/ts-epm/pkg/server"
)

const name = "epm"

// NewServer builds the HTTP server exposing records and tree. The server
// starts not ready; the caller flips readiness once devices are set up.
func NewServer(records TelemetrySource, tree ElementSource, listen, version string, logger *slog.Logger) (*server.Server, error) {
	if logger == nil {
		logger = slog.Default()
	}

	cfg := server.NewConfig()
	cfg.Name = name
	cfg.Version = version
	if err := cfg.SetListen(listen); err != nil {
		return nil, errors.Wrap(errors.ErrCodeConfiguration, "invalid listen address", err)
	}

	h := NewHandler(records, tree, WithVersion(version), WithLogger(logger))

	return server.New(
		server.WithConfig(cfg),
		server.WithHandler(h.Routes()),
		server.WithLogger(logger.With("component", "server")),
		server.WithManualReadiness(),
	), nil
}
