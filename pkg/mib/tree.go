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

package mib

import (
	"fmt"
	"slices"

	"github.com/lsst-ts/ts-epm/pkg/errors"
)

// Tree is an immutable OID hierarchy indexed by element name and by OID.
// A Tree returned by Build is safe for concurrent use.
type Tree struct {
	elements []Element
	byName   map[string]int
	byOID    map[string]int
	children map[string][]int
	// ordered holds element positions sorted by OID.
	ordered []int
}

func newTree() *Tree {
	return &Tree{
		byName:   make(map[string]int),
		byOID:    make(map[string]int),
		children: make(map[string][]int),
	}
}

func (t *Tree) add(e Element) error {
	if _, dup := t.byName[e.Name]; dup {
		return errors.NewWithContext(errors.ErrCodeConstruction,
			fmt.Sprintf("duplicate element name %q", e.Name),
			map[string]any{"name": e.Name, "oid": e.OID})
	}
	if other, dup := t.byOID[e.OID]; dup {
		return errors.NewWithContext(errors.ErrCodeConstruction,
			fmt.Sprintf("OID %s of %q already assigned to %q", e.OID, e.Name, t.elements[other].Name),
			map[string]any{"name": e.Name, "oid": e.OID})
	}

	pos := len(t.elements)
	t.elements = append(t.elements, e)
	t.byName[e.Name] = pos
	t.byOID[e.OID] = pos
	if e.Parent != "" {
		t.children[e.Parent] = append(t.children[e.Parent], pos)
	}
	return nil
}

// seal fixes the OID ordering once all elements are added.
func (t *Tree) seal() {
	t.ordered = make([]int, len(t.elements))
	for i := range t.ordered {
		t.ordered[i] = i
	}
	byOID := func(a, b int) int {
		return CompareOID(t.elements[a].OID, t.elements[b].OID)
	}
	slices.SortFunc(t.ordered, byOID)
	for _, kids := range t.children {
		slices.SortFunc(kids, byOID)
	}
}

// Len returns the number of elements in the tree.
func (t *Tree) Len() int {
	return len(t.elements)
}

// Lookup returns the element with the given name.
func (t *Tree) Lookup(name string) (Element, bool) {
	pos, ok := t.byName[name]
	if !ok {
		return Element{}, false
	}
	return t.elements[pos], true
}

// ByOID returns the element registered at exactly oid.
func (t *Tree) ByOID(oid string) (Element, bool) {
	pos, ok := t.byOID[oid]
	if !ok {
		return Element{}, false
	}
	return t.elements[pos], true
}

// Parent returns the parent of e. The root has no parent.
func (t *Tree) Parent(e Element) (Element, bool) {
	if e.IsRoot() {
		return Element{}, false
	}
	return t.Lookup(e.Parent)
}

// Children returns the direct children of the named element ordered by OID.
func (t *Tree) Children(name string) []Element {
	kids := t.children[name]
	out := make([]Element, 0, len(kids))
	for _, pos := range kids {
		out = append(out, t.elements[pos])
	}
	return out
}

// Subtree returns every element at or below rootOID ordered by OID.
func (t *Tree) Subtree(rootOID string) []Element {
	var out []Element
	for _, pos := range t.ordered {
		if InSubtree(t.elements[pos].OID, rootOID) {
			out = append(out, t.elements[pos])
		}
	}
	return out
}

// Elements returns all elements ordered by OID.
func (t *Tree) Elements() []Element {
	out := make([]Element, 0, len(t.ordered))
	for _, pos := range t.ordered {
		out = append(out, t.elements[pos])
	}
	return out
}

// InstanceOID returns the OID an agent reports a value of the named element
// under: ".0" for scalars, ".1" for the first row when the parent is an
// indexed table entry. Further rows are not addressed.
func (t *Tree) InstanceOID(name string) (string, error) {
	e, ok := t.Lookup(name)
	if !ok {
		return "", errors.NewWithContext(errors.ErrCodeNotFound,
			fmt.Sprintf("no MIB element named %q", name),
			map[string]any{"name": name})
	}
	if parent, ok := t.Parent(e); ok && parent.HasIndex() {
		return e.OID + ".1", nil
	}
	return e.OID + ".0", nil
}
