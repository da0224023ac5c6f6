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

package config

import (
	"fmt"
	"log/slog"
	"os"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/lsst-ts/ts-epm/pkg/defaults"
	"github.com/lsst-ts/ts-epm/pkg/errors"
	"github.com/lsst-ts/ts-epm/pkg/poller"
	"github.com/lsst-ts/ts-epm/pkg/serializer"
)

// Environment variables that override file settings.
const (
	EnvListen         = "EPM_LISTEN"
	EnvSimulationMode = "EPM_SIMULATION_MODE"
	EnvLogLevel       = "LOG_LEVEL"
)

// DefaultListen is the HTTP address used when none is configured.
const DefaultListen = ":8080"

// DeviceTypes lists the supported device families.
var DeviceTypes = []string{"pdu", "scheiderPm5xxx", "xups"}

// Config is the top level configuration of the telemetry service.
type Config struct {
	// SimulationMode 1 replaces every device with the simulator.
	SimulationMode int `json:"simulationMode" yaml:"simulationMode"`

	// MIBDir overrides the bundled MIB files.
	MIBDir string `json:"mibDir,omitempty" yaml:"mibDir,omitempty"`

	// Community is the SNMPv1 read community of every device.
	Community string `json:"community,omitempty" yaml:"community,omitempty"`

	// Listen is the HTTP address. Empty disables the server.
	Listen string `json:"listen,omitempty" yaml:"listen,omitempty"`

	// Output is the telemetry file path. Empty writes to stdout.
	Output string `json:"output,omitempty" yaml:"output,omitempty"`

	// Format is the telemetry output format.
	Format string `json:"format,omitempty" yaml:"format,omitempty"`

	// LogLevel is the minimum log level.
	LogLevel string `json:"logLevel,omitempty" yaml:"logLevel,omitempty"`

	Devices []Device `json:"devices" yaml:"devices"`
}

// Device describes one polled device.
type Device struct {
	Host            string  `json:"host" yaml:"host"`
	Port            int     `json:"port,omitempty" yaml:"port,omitempty"`
	MaxReadTimeouts int     `json:"maxReadTimeouts,omitempty" yaml:"maxReadTimeouts,omitempty"`
	DeviceName      string  `json:"deviceName" yaml:"deviceName"`
	DeviceType      string  `json:"deviceType" yaml:"deviceType"`
	PollInterval    float64 `json:"pollInterval,omitempty" yaml:"pollInterval,omitempty"`
	Location        string  `json:"location" yaml:"location"`
}

// Interval returns the poll interval as a duration.
func (d Device) Interval() time.Duration {
	return time.Duration(d.PollInterval * float64(time.Second))
}

// Engine returns the poller configuration of the device.
func (d Device) Engine() poller.Config {
	return poller.Config{
		DeviceName:   d.DeviceName,
		DeviceType:   d.DeviceType,
		Location:     d.Location,
		PollInterval: d.Interval(),
	}
}

// Load reads, completes and validates a configuration file. JSON and YAML
// are accepted, both strict about unknown fields.
func Load(path string) (*Config, error) {
	cfg, err := serializer.FromFile[Config](path)
	if err != nil {
		return nil, errors.WrapWithContext(errors.ErrCodeConfiguration, "failed to load configuration", err,
			map[string]any{"path": path})
	}
	if err := cfg.ApplyEnv(); err != nil {
		return nil, err
	}
	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	slog.Debug("configuration loaded", "path", path, "devices", len(cfg.Devices))
	return cfg, nil
}

// ApplyEnv overrides settings from the environment.
func (c *Config) ApplyEnv() error {
	if v, ok := os.LookupEnv(EnvListen); ok {
		c.Listen = v
	}
	if v, ok := os.LookupEnv(EnvSimulationMode); ok {
		mode, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return errors.WrapWithContext(errors.ErrCodeConfiguration, "invalid simulation mode", err,
				map[string]any{"env": EnvSimulationMode, "value": v})
		}
		c.SimulationMode = mode
	}
	if v, ok := os.LookupEnv(EnvLogLevel); ok && v != "" {
		c.LogLevel = v
	}
	return nil
}

// SetDefaults fills unset optional values.
func (c *Config) SetDefaults() {
	if c.Community == "" {
		c.Community = defaults.SNMPCommunity
	}
	if c.Format == "" {
		c.Format = string(serializer.FormatJSON)
	}
	for i := range c.Devices {
		d := &c.Devices[i]
		if d.Port == 0 {
			d.Port = defaults.SNMPPort
		}
		if d.MaxReadTimeouts == 0 {
			d.MaxReadTimeouts = defaults.MaxReadTimeouts
		}
		if d.PollInterval == 0 {
			d.PollInterval = defaults.PollInterval.Seconds()
		}
	}
}

// Validate reports the first invalid setting.
func (c *Config) Validate() error {
	if c.SimulationMode != 0 && c.SimulationMode != 1 {
		return invalid("simulationMode", fmt.Sprintf("must be 0 or 1, got %d", c.SimulationMode))
	}
	if serializer.Format(c.Format).IsUnknown() {
		return invalid("format", fmt.Sprintf("unsupported format %q, supported: %s",
			c.Format, strings.Join(serializer.SupportedFormats(), ", ")))
	}
	if len(c.Devices) == 0 {
		return invalid("devices", "at least one device is required")
	}

	seen := make(map[string]bool, len(c.Devices))
	for i, d := range c.Devices {
		if err := d.validate(); err != nil {
			return errors.WrapWithContext(errors.ErrCodeConfiguration, fmt.Sprintf("invalid device %d", i), err,
				map[string]any{"index": i, "deviceName": d.DeviceName})
		}
		if seen[d.DeviceName] {
			return invalid("devices", fmt.Sprintf("duplicate device name %q", d.DeviceName))
		}
		seen[d.DeviceName] = true
	}
	return nil
}

func (d Device) validate() error {
	switch {
	case strings.TrimSpace(d.Host) == "":
		return invalid("host", "is required")
	case strings.TrimSpace(d.DeviceName) == "":
		return invalid("deviceName", "is required")
	case strings.TrimSpace(d.Location) == "":
		return invalid("location", "is required")
	case !slices.Contains(DeviceTypes, d.DeviceType):
		return invalid("deviceType", fmt.Sprintf("%q is not one of %s", d.DeviceType, strings.Join(DeviceTypes, ", ")))
	case d.Port < 1 || d.Port > 65535:
		return invalid("port", fmt.Sprintf("%d is out of range", d.Port))
	case d.MaxReadTimeouts < 1:
		return invalid("maxReadTimeouts", "must be positive")
	case d.PollInterval <= 0:
		return invalid("pollInterval", "must be positive")
	}
	return nil
}

func invalid(field, msg string) error {
	return errors.NewWithContext(errors.ErrCodeConfiguration, fmt.Sprintf("%s %s", field, msg),
		map[string]any{"field": field})
}
