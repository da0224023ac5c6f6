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

package api

import (
	"github.com/lsst-ts/ts-epm/pkg/catalog"
	"github.com/lsst-ts/ts-epm/pkg/errors"
	"github.com/lsst-ts/ts-epm/pkg/header"
	"github.com/lsst-ts/ts-epm/pkg/mib"
	"github.com/lsst-ts/ts-epm/pkg/telemetry"
)

// TelemetrySource provides the latest record per device.
type TelemetrySource interface {
	Latest(device string) (*telemetry.Record, bool)
	All() []*telemetry.Record
}

// ElementSource provides read access to a MIB tree.
type ElementSource interface {
	Lookup(name string) (mib.Element, bool)
	Children(name string) []mib.Element
	Subtree(rootOID string) []mib.Element
	Elements() []mib.Element
}

// TelemetryList is the response of the all-devices telemetry route.
type TelemetryList struct {
	header.Header `json:",inline" yaml:",inline"`

	Count   int                 `json:"count" yaml:"count"`
	Records []*telemetry.Record `json:"records" yaml:"records"`
}

// TreeDocument lists MIB elements in OID order.
type TreeDocument struct {
	header.Header `json:",inline" yaml:",inline"`

	Root     string        `json:"root,omitempty" yaml:"root,omitempty"`
	Elements []mib.Element `json:"elements" yaml:"elements"`
}

// CatalogDocument lists every published telemetry item.
type CatalogDocument struct {
	header.Header `json:",inline" yaml:",inline"`

	Entries []catalog.Entry `json:"entries" yaml:"entries"`
}

// ElementDocument describes one MIB element, its direct children and the
// telemetry field it publishes, if any.
type ElementDocument struct {
	mib.Element `json:",inline" yaml:",inline"`

	Children  []string       `json:"children,omitempty" yaml:"children,omitempty"`
	Telemetry *catalog.Entry `json:"telemetry,omitempty" yaml:"telemetry,omitempty"`
}

// NewTelemetryList wraps records in a telemetry list document.
func NewTelemetryList(records []*telemetry.Record, version string) *TelemetryList {
	if records == nil {
		records = []*telemetry.Record{}
	}
	doc := &TelemetryList{Count: len(records), Records: records}
	doc.Init(header.KindTelemetry, header.APIVersion, version)
	return doc
}

// NewTreeDocument lists the whole tree, or the subtree of the named root.
// An unknown root yields a NOT_FOUND error.
func NewTreeDocument(tree ElementSource, root, version string) (*TreeDocument, error) {
	doc := &TreeDocument{Root: root}
	if root == "" {
		doc.Elements = tree.Elements()
	} else {
		e, ok := tree.Lookup(root)
		if !ok {
			return nil, errors.NewWithContext(errors.ErrCodeNotFound, "unknown MIB element",
				map[string]any{"name": root})
		}
		doc.Elements = tree.Subtree(e.OID)
	}
	doc.Init(header.KindMibTree, header.APIVersion, version)
	return doc, nil
}

// NewCatalogDocument lists the telemetry catalog ordered by MIB name.
func NewCatalogDocument(version string) *CatalogDocument {
	doc := &CatalogDocument{Entries: catalog.Entries()}
	doc.Init(header.KindCatalog, header.APIVersion, version)
	return doc
}

// NewElementDocument describes the named element. An unknown name yields a
// NOT_FOUND error.
func NewElementDocument(tree ElementSource, name string) (*ElementDocument, error) {
	e, ok := tree.Lookup(name)
	if !ok {
		return nil, errors.NewWithContext(errors.ErrCodeNotFound, "unknown MIB element",
			map[string]any{"name": name})
	}
	doc := &ElementDocument{Element: e}
	for _, c := range tree.Children(name) {
		doc.Children = append(doc.Children, c.Name)
	}
	if entry, ok := catalog.Lookup(name); ok {
		doc.Telemetry = &entry
	}
	return doc, nil
}
