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

// Package serializer encodes telemetry documents for output and decodes
// configuration files.
//
// Writers support three formats:
//   - JSON: indented, one document per Serialize call
//   - YAML: one YAML document per Serialize call
//   - Table: flattened FIELD/VALUE rows for terminals (write-only)
//
// Usage:
//
//	w := serializer.NewFileWriterOrStdout(serializer.FormatJSON, path)
//	defer w.Close()
//	if err := w.Serialize(ctx, record); err != nil {
//	    return err
//	}
//
// For HTTP responses:
//
//	serializer.RespondJSON(w, http.StatusOK, data)
//
// For configuration files:
//
//	cfg, err := serializer.FromFile[config.Config]("epm.yaml")
package serializer
