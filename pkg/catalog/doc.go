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

// Package catalog declares the telemetry published for each MIB object.
//
// Every entry maps an object name from the bundled MIBs to the public field
// name, the value kind it decodes to and its unit. The table is fixed at
// compile time.
//
// The package also records the per-OID float codecs of the supported
// vendors: Eaton integers in tenths, Schneider plain decimal strings and
// Synaccess hex encoded octet strings.
package catalog
