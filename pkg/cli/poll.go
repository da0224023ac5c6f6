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
	"io"
	"strings"
	"time"

	"github.com/urfave/cli/v3"

	"github.com/lsst-ts/ts-epm/pkg/config"
	"github.com/lsst-ts/ts-epm/pkg/defaults"
	"github.com/lsst-ts/ts-epm/pkg/monitor"
	"github.com/lsst-ts/ts-epm/pkg/poller"
	"github.com/lsst-ts/ts-epm/pkg/serializer"
	"github.com/lsst-ts/ts-epm/pkg/telemetry"
)

func pollCmd() *cli.Command {
	return &cli.Command{
		Name:  "poll",
		Usage: "Poll a single device",
		Description: fmt.Sprintf(`Sets up one device and writes one record per poll.

Supported device types: %s

  epm poll --host 10.0.0.12 --type xups --count 3
  epm poll --type scheiderPm5xxx --simulate --replay --format yaml`,
			strings.Join(config.DeviceTypes, ", ")),
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "host",
				Usage: "device host name or address (required unless --simulate)",
			},
			&cli.StringFlag{
				Name:     "type",
				Usage:    fmt.Sprintf("device type (supported values: %s)", strings.Join(config.DeviceTypes, ", ")),
				Required: true,
			},
			&cli.IntFlag{
				Name:  "port",
				Value: defaults.SNMPPort,
				Usage: "SNMP agent port",
			},
			&cli.StringFlag{
				Name:  "community",
				Value: defaults.SNMPCommunity,
				Usage: "SNMPv1 read community",
			},
			&cli.StringFlag{
				Name:  "name",
				Usage: "device name written into records (default: host)",
			},
			&cli.StringFlag{
				Name:  "location",
				Value: "unknown",
				Usage: "device location written into records",
			},
			&cli.IntFlag{
				Name:  "count",
				Value: 1,
				Usage: "number of polls; 0 polls until interrupted",
			},
			&cli.DurationFlag{
				Name:  "interval",
				Value: defaults.PollInterval,
				Usage: "time between polls",
			},
			&cli.BoolFlag{
				Name:  "simulate",
				Usage: "poll the SNMP simulator instead of a device",
			},
			&cli.BoolFlag{
				Name:  "replay",
				Usage: "serve recorded device output from the simulator",
			},
			mibDirFlag(),
			outputFlag(),
			formatFlag(),
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			format, err := parseOutputFormat(cmd)
			if err != nil {
				return err
			}

			cfg, err := pollConfig(cmd)
			if err != nil {
				return err
			}
			dev := cfg.Devices[0]

			tree, err := buildTree(cmd.String("mib-dir"))
			if err != nil {
				return err
			}

			walker, err := monitor.WalkersFor(cfg, tree, cmd.Bool("replay"), nil)(dev)
			if err != nil {
				return err
			}
			if c, ok := walker.(io.Closer); ok {
				defer closeQuietly(c, "SNMP client")
			}

			ser := serializer.NewFileWriterOrStdout(format, cmd.String("output"))
			defer closeQuietly(ser, "serializer")

			engine, err := poller.New(dev.Engine(), tree, walker,
				poller.WithSink(telemetry.NewWriterSink(ser)),
				poller.WithVersion(version),
			)
			if err != nil {
				return err
			}
			if err := engine.Setup(ctx); err != nil {
				return err
			}

			return pollTimes(ctx, engine, int(cmd.Int("count")), dev.Interval())
		},
	}
}

// pollConfig builds a single-device configuration from the flags.
func pollConfig(cmd *cli.Command) (*config.Config, error) {
	simulate := cmd.Bool("simulate")
	host := cmd.String("host")
	if host == "" && simulate {
		host = "simulator"
	}
	deviceName := cmd.String("name")
	if deviceName == "" {
		deviceName = host
	}

	cfg := &config.Config{
		Community: cmd.String("community"),
		Format:    cmd.String("format"),
		Devices: []config.Device{{
			Host:         host,
			Port:         int(cmd.Int("port")),
			DeviceName:   deviceName,
			DeviceType:   cmd.String("type"),
			Location:     cmd.String("location"),
			PollInterval: cmd.Duration("interval").Seconds(),
		}},
	}
	if simulate {
		cfg.SimulationMode = 1
	}
	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// pollTimes polls count times, or until ctx is done when count is zero,
// waiting interval between polls.
func pollTimes(ctx context.Context, engine *poller.Engine, count int, interval time.Duration) error {
	for i := 0; count <= 0 || i < count; i++ {
		if i > 0 {
			timer := time.NewTimer(interval)
			select {
			case <-ctx.Done():
				timer.Stop()
				return nil
			case <-timer.C:
			}
		}
		if ctx.Err() != nil {
			return nil
		}
		if _, err := engine.Poll(ctx); err != nil {
			return err
		}
	}
	return nil
}
