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
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/lsst-ts/ts-epm/pkg/errors"
	"github.com/lsst-ts/ts-epm/pkg/mib"
	"github.com/lsst-ts/ts-epm/pkg/serializer"
)

// Flag constructors return fresh flags so commands never share parsed state.

func outputFlag() cli.Flag {
	return &cli.StringFlag{
		Name:    "output",
		Aliases: []string{"o"},
		Usage:   "output file path (default: stdout)",
	}
}

func formatFlag() cli.Flag {
	return &cli.StringFlag{
		Name:    "format",
		Aliases: []string{"t"},
		Value:   string(serializer.FormatJSON),
		Usage:   fmt.Sprintf("output format (supported values: %s)", strings.Join(serializer.SupportedFormats(), ", ")),
	}
}

func mibDirFlag() cli.Flag {
	return &cli.StringFlag{
		Name:  "mib-dir",
		Usage: "directory of *.mib files to use instead of the bundled set",
	}
}

// parseOutputFormat reads the format flag.
func parseOutputFormat(cmd *cli.Command) (serializer.Format, error) {
	return parseFormat(cmd.String("format"))
}

func parseFormat(s string) (serializer.Format, error) {
	f := serializer.Format(s)
	if f.IsUnknown() {
		return "", errors.NewWithContext(errors.ErrCodeInvalidRequest,
			fmt.Sprintf("unknown output format: %q", s),
			map[string]any{"supported": serializer.SupportedFormats()})
	}
	return f, nil
}

func buildTree(dir string) (*mib.Tree, error) {
	tree, err := mib.Build(mib.WithDir(dir))
	if err != nil {
		return nil, fmt.Errorf("failed to build MIB tree: %w", err)
	}
	return tree, nil
}

func closeQuietly(c io.Closer, what string) {
	if c == nil {
		return
	}
	if err := c.Close(); err != nil {
		slog.Warn("failed to close "+what, "error", err)
	}
}
