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

package monitor

import (
	"log/slog"
	"time"

	"github.com/lsst-ts/ts-epm/pkg/config"
	"github.com/lsst-ts/ts-epm/pkg/errors"
	"github.com/lsst-ts/ts-epm/pkg/mib"
	"github.com/lsst-ts/ts-epm/pkg/simulator"
	"github.com/lsst-ts/ts-epm/pkg/snmp"
)

// WalkerFactory returns the walker used to poll one device.
type WalkerFactory func(dev config.Device) (snmp.Walker, error)

// SNMPWalkers returns a factory of live SNMPv1 clients using community.
func SNMPWalkers(community string, timeout time.Duration, logger *slog.Logger) WalkerFactory {
	if logger == nil {
		logger = slog.Default()
	}
	return func(dev config.Device) (snmp.Walker, error) {
		if dev.Port <= 0 || dev.Port > 65535 {
			return nil, errors.NewWithContext(errors.ErrCodeConfiguration, "invalid SNMP port",
				map[string]any{"device": dev.DeviceName, "port": dev.Port})
		}
		opts := []snmp.Option{
			snmp.WithPort(uint16(dev.Port)),
			snmp.WithCommunity(community),
			snmp.WithLogger(logger.With("device", dev.DeviceName)),
		}
		if timeout > 0 {
			opts = append(opts, snmp.WithTimeout(timeout))
		}
		return snmp.NewClient(dev.Host, opts...), nil
	}
}

// SimulatedWalkers returns a factory of simulators over tree. With replay
// set, each simulator serves the recorded output of its device type;
// otherwise values are random.
func SimulatedWalkers(tree *mib.Tree, replay bool, logger *slog.Logger) WalkerFactory {
	if logger == nil {
		logger = slog.Default()
	}
	return func(dev config.Device) (snmp.Walker, error) {
		var src simulator.ValueSource = simulator.NewRandomSource()
		if replay {
			rs, err := simulator.RecordedReplay(dev.DeviceType)
			if err != nil {
				return nil, err
			}
			src = rs
		}
		return simulator.New(tree,
			simulator.WithSource(src),
			simulator.WithLogger(logger.With("device", dev.DeviceName)),
		), nil
	}
}

// WalkersFor picks the simulator or the live client from the simulation mode.
func WalkersFor(cfg *config.Config, tree *mib.Tree, replay bool, logger *slog.Logger) WalkerFactory {
	if cfg.SimulationMode == 1 {
		return SimulatedWalkers(tree, replay, logger)
	}
	return SNMPWalkers(cfg.Community, 0, logger)
}
