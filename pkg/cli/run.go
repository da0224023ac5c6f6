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

package cli

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/urfave/cli/v3"

	"github.com/lsst-ts/ts-epm/pkg/api"
	"github.com/lsst-ts/ts-epm/pkg/config"
	"github.com/lsst-ts/ts-epm/pkg/logging"
	"github.com/lsst-ts/ts-epm/pkg/monitor"
	"github.com/lsst-ts/ts-epm/pkg/serializer"
	"github.com/lsst-ts/ts-epm/pkg/telemetry"
)

func runCmd() *cli.Command {
	return &cli.Command{
		Name:  "run",
		Usage: "Poll every configured device until stopped",
		Description: `Loads the device configuration and runs one read loop per device.
Records are written to the output in the chosen format, kept as the latest
value per device for the HTTP API, and exported as Prometheus gauges.

Flags given on the command line override the configuration file:

  epm run --config epm.yaml --simulate --listen :8080 --format yaml`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "config",
				Aliases:  []string{"c"},
				Usage:    "path to the YAML or JSON configuration file",
				Sources:  cli.EnvVars("EPM_CONFIG"),
				Required: true,
			},
			&cli.BoolFlag{
				Name:  "simulate",
				Usage: "replace every device with the SNMP simulator",
			},
			&cli.BoolFlag{
				Name:  "replay",
				Usage: "serve recorded device output from the simulator instead of random values",
			},
			&cli.StringFlag{
				Name:  "listen",
				Usage: fmt.Sprintf("HTTP listen address, e.g. %s (default: server disabled)", config.DefaultListen),
			},
			mibDirFlag(),
			outputFlag(),
			formatFlag(),
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			cfg, err := config.Load(cmd.String("config"))
			if err != nil {
				return err
			}
			applyRunFlags(cmd, cfg)

			if cfg.LogLevel != "" && !cmd.IsSet("log-level") {
				logging.SetDefaultStructuredLoggerWithLevel(name, version, cfg.LogLevel)
			}

			return runMonitor(ctx, cfg, cmd.Bool("replay"))
		},
	}
}

// applyRunFlags overrides configuration values with explicitly set flags.
func applyRunFlags(cmd *cli.Command, cfg *config.Config) {
	if cmd.Bool("simulate") {
		cfg.SimulationMode = 1
	}
	if cmd.IsSet("listen") {
		cfg.Listen = cmd.String("listen")
	}
	if cmd.IsSet("output") {
		cfg.Output = cmd.String("output")
	}
	if cmd.IsSet("format") {
		cfg.Format = cmd.String("format")
	}
	if cmd.IsSet("mib-dir") {
		cfg.MIBDir = cmd.String("mib-dir")
	}
}

func runMonitor(ctx context.Context, cfg *config.Config, replay bool) error {
	format, err := parseFormat(cfg.Format)
	if err != nil {
		return err
	}

	tree, err := buildTree(cfg.MIBDir)
	if err != nil {
		return err
	}

	logger := slog.Default()
	store := telemetry.NewStore()
	ser := serializer.NewFileWriterOrStdout(format, cfg.Output)
	defer closeQuietly(ser, "serializer")

	opts := []monitor.Option{
		monitor.WithSink(telemetry.MultiSink{
			telemetry.NewWriterSink(ser),
			store,
			telemetry.MetricsSink{},
		}),
		monitor.WithWalkers(monitor.WalkersFor(cfg, tree, replay, logger)),
		monitor.WithVersion(version),
		monitor.WithLogger(logger),
	}

	if cfg.Listen != "" {
		srv, err := api.NewServer(store, tree, cfg.Listen, version, logger)
		if err != nil {
			return err
		}
		opts = append(opts, monitor.WithServer(srv))
	}

	m, err := monitor.New(cfg, tree, opts...)
	if err != nil {
		return err
	}

	slog.Info("starting monitor",
		"devices", len(cfg.Devices),
		"simulationMode", cfg.SimulationMode,
		"listen", cfg.Listen,
		"format", format,
	)
	return m.Run(ctx)
}
