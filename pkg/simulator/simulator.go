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

package simulator

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/lsst-ts/ts-epm/pkg/catalog"
	"github.com/lsst-ts/ts-epm/pkg/errors"
	"github.com/lsst-ts/ts-epm/pkg/mib"
	"github.com/lsst-ts/ts-epm/pkg/snmp"
)

// SystemDescription is returned for every system description probe.
const SystemDescription = "SnmpServerSimulator"

// Option configures a Simulator.
type Option func(*Simulator)

// WithSource sets where element values come from. Defaults to a
// RandomSource.
func WithSource(src ValueSource) Option {
	return func(s *Simulator) {
		if src != nil {
			s.source = src
		}
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Simulator) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// Simulator is a Walker that answers from a MIB tree instead of a device.
type Simulator struct {
	tree   *mib.Tree
	source ValueSource
	logger *slog.Logger
}

var _ snmp.Walker = (*Simulator)(nil)

// New returns a Simulator over tree.
func New(tree *mib.Tree, opts ...Option) *Simulator {
	s := &Simulator{
		tree:   tree,
		source: NewRandomSource(),
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Walk returns the system description for the sysDescr root, otherwise one
// binding per catalog element in the subtree at its instance OID, ordered
// by OID.
func (s *Simulator) Walk(ctx context.Context, rootOID string) ([]snmp.Binding, error) {
	if err := ctx.Err(); err != nil {
		return nil, errors.Wrap(errors.ErrCodeTransport, "walk canceled", err)
	}

	root := snmp.NormalizeOID(rootOID)
	if sys, ok := s.tree.Lookup(catalog.SystemDescription); ok && sys.OID == root {
		return []snmp.Binding{{OID: root + ".0", Value: SystemDescription}}, nil
	}

	if _, ok := s.tree.ByOID(root); !ok {
		return nil, errors.NewWithContext(errors.ErrCodeTransport, fmt.Sprintf("unknown OID %s", root),
			map[string]any{"oid": root})
	}

	var bindings []snmp.Binding
	for _, e := range s.tree.Subtree(root) {
		entry, ok := catalog.Lookup(e.Name)
		if !ok {
			continue
		}
		oid, err := s.tree.InstanceOID(e.Name)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInternal, "failed to compose instance OID", err)
		}
		v, ok := s.source.Value(e, entry, oid)
		if !ok {
			s.logger.Debug("no simulated value", "name", e.Name, "oid", oid)
			continue
		}
		bindings = append(bindings, snmp.Binding{OID: oid, Value: v})
	}
	return bindings, nil
}
