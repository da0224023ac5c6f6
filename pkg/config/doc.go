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

// Package config loads the telemetry service configuration.
//
// The file is YAML or JSON, chosen by extension:
//
//	simulationMode: 0
//	listen: ":8080"
//	format: json
//	devices:
//	  - host: ups1.cp.lsst.org
//	    deviceName: AuxTelUps
//	    deviceType: xups
//	    location: AuxTel
//	    pollInterval: 1.0
//
// Port, maxReadTimeouts and pollInterval default to 161, 5 and 1 second.
// EPM_LISTEN, EPM_SIMULATION_MODE and LOG_LEVEL override the file.
package config
