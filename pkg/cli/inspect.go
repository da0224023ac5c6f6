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

	"github.com/urfave/cli/v3"

	"github.com/lsst-ts/ts-epm/pkg/api"
	"github.com/lsst-ts/ts-epm/pkg/serializer"
)

func treeCmd() *cli.Command {
	return &cli.Command{
		Name:  "tree",
		Usage: "Print the MIB tree",
		Description: `Builds the OID tree from the bundled MIB files, or from --mib-dir, and
prints its elements in OID order. --root limits the output to one subtree:

  epm tree --root xups --format table`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "root",
				Usage: "name of the element whose subtree is printed",
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
			tree, err := buildTree(cmd.String("mib-dir"))
			if err != nil {
				return err
			}
			doc, err := api.NewTreeDocument(tree, cmd.String("root"), version)
			if err != nil {
				return err
			}
			return writeDocument(ctx, format, cmd.String("output"), doc)
		},
	}
}

func catalogCmd() *cli.Command {
	return &cli.Command{
		Name:  "catalog",
		Usage: "Print the published telemetry items",
		Flags: []cli.Flag{
			outputFlag(),
			formatFlag(),
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			format, err := parseOutputFormat(cmd)
			if err != nil {
				return err
			}
			return writeDocument(ctx, format, cmd.String("output"), api.NewCatalogDocument(version))
		},
	}
}

func writeDocument(ctx context.Context, format serializer.Format, output string, doc any) error {
	ser := serializer.NewFileWriterOrStdout(format, output)
	defer closeQuietly(ser, "serializer")
	return ser.Serialize(ctx, doc)
}
