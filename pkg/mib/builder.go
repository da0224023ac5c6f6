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
	"embed"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"regexp"
	"slices"
	"strings"

	"github.com/lsst-ts/ts-epm/pkg/errors"
	"github.com/lsst-ts/ts-epm/pkg/file"
)

//go:embed data/*.mib
var bundled embed.FS

var (
	objectIdentifierRe = regexp.MustCompile(`^(\w+) +OBJECT IDENTIFIER +::= \{ ?(\w+) (\d+) ?\}$`)
	objectTypeRe       = regexp.MustCompile(`^(\w+) OBJECT-TYPE$`)
	assignmentRe       = regexp.MustCompile(`^::= ?\{ ?(\w+) +(\d+) ?\}$`)
	indexRe            = regexp.MustCompile(`INDEX +\{ ?(\w+) ?\}`)
	whitespaceRe       = regexp.MustCompile(`\s+`)
)

const (
	descriptionKeyword = "DESCRIPTION"
	assignmentToken    = "::="
	indexToken         = "INDEX "
)

// Vendor files name their roots differently from the canonical device types.
var (
	parentAliases = map[string]string{
		"xupsMIB":           "xups",
		"synSys":            "pdu",
		"schneiderElectric": "scheiderPm5xxx",
	}
	nameAliases = map[string]string{
		"synaccess":         "pdu",
		"schneiderElectric": "scheiderPm5xxx",
	}
)

// skeleton holds the ancestors that the vendor files reference but do not declare.
var skeleton = []Element{
	{Name: "snmp", Description: "snmp", OID: "1.3.6.1", Kind: KindBranch},
	{Name: "mgmt", Description: "mgmt", OID: "1.3.6.1.2", Parent: "snmp", Kind: KindBranch},
	{Name: "mib2", Description: "mib-2", OID: "1.3.6.1.2.1", Parent: "mgmt", Kind: KindBranch},
	{Name: "system", Description: "system", OID: "1.3.6.1.2.1.1", Parent: "mib2", Kind: KindBranch},
	{Name: "sysDescr", Description: "System Description.", OID: "1.3.6.1.2.1.1.1", Parent: "system", Kind: KindLeaf},
	{Name: "private", Description: "private", OID: "1.3.6.1.4", Parent: "snmp", Kind: KindBranch},
	{Name: "enterprises", Description: "enterprises", OID: "1.3.6.1.4.1", Parent: "private", Kind: KindBranch},
	{Name: "eaton", Description: "eaton", OID: "1.3.6.1.4.1.534", Parent: "enterprises", Kind: KindBranch},
	{Name: "xups", Description: "xups", OID: "1.3.6.1.4.1.534.1", Parent: "eaton", Kind: KindBranch},
}

// Option configures a Builder.
type Option func(*Builder)

// WithFS reads MIB files from the root of fsys instead of the bundled set.
func WithFS(fsys fs.FS) Option {
	return func(b *Builder) {
		b.fsys = fsys
	}
}

// WithDir reads MIB files from a directory on disk.
func WithDir(dir string) Option {
	return func(b *Builder) {
		if dir != "" {
			b.fsys = os.DirFS(dir)
		}
	}
}

// WithLogger sets the logger used for build diagnostics.
func WithLogger(logger *slog.Logger) Option {
	return func(b *Builder) {
		b.logger = logger
	}
}

// Builder turns the skeleton plus a set of MIB text files into a Tree.
type Builder struct {
	fsys   fs.FS
	logger *slog.Logger
}

// NewBuilder returns a Builder reading the bundled MIB files by default.
func NewBuilder(opts ...Option) *Builder {
	b := &Builder{
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Build is shorthand for NewBuilder(opts...).Build().
func Build(opts ...Option) (*Tree, error) {
	return NewBuilder(opts...).Build()
}

// Build parses every *.mib file in lexicographic order. Any malformed
// declaration or unresolved reference aborts the build.
func (b *Builder) Build() (*Tree, error) {
	fsys := b.fsys
	if fsys == nil {
		sub, err := fs.Sub(bundled, "data")
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInternal, "failed to open bundled MIB files", err)
		}
		fsys = sub
	}

	names, err := fs.Glob(fsys, "*.mib")
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeConstruction, "failed to list MIB files", err)
	}
	slices.Sort(names)

	tree := newTree()
	for _, e := range skeleton {
		if err := tree.add(e); err != nil {
			return nil, err
		}
	}

	parser := file.NewParser(file.WithFS(fsys), file.WithCommentPrefix("--"))
	for _, name := range names {
		lines, err := parser.GetLines(name)
		if err != nil {
			return nil, errors.WrapWithContext(errors.ErrCodeConstruction, "failed to read MIB file", err,
				map[string]any{"file": name})
		}

		before := tree.Len()
		s := &scanner{tree: tree, file: name, lines: lines}
		if err := s.run(); err != nil {
			return nil, err
		}
		b.logger.Debug("parsed MIB file",
			"file", name,
			"elements", tree.Len()-before,
		)
	}

	tree.seal()
	b.logger.Debug("MIB tree built", "files", len(names), "elements", tree.Len())
	return tree, nil
}

type scanState int

const (
	seekingDescription scanState = iota
	seekingTerminator
)

// scanner walks the lines of one MIB file.
type scanner struct {
	tree  *Tree
	file  string
	lines []string
	pos   int
}

func (s *scanner) run() error {
	for ; s.pos < len(s.lines); s.pos++ {
		line := s.lines[s.pos]
		if m := objectIdentifierRe.FindStringSubmatch(line); m != nil {
			if err := s.addBranch(m[1], m[2], m[3]); err != nil {
				return err
			}
			continue
		}
		if m := objectTypeRe.FindStringSubmatch(line); m != nil {
			if err := s.objectType(m[1]); err != nil {
				return err
			}
		}
	}
	return nil
}

func (s *scanner) addBranch(declared, parentName, subID string) error {
	if alias, ok := parentAliases[parentName]; ok {
		parentName = alias
	}
	parent, ok := s.tree.Lookup(parentName)
	if !ok {
		return s.fail(fmt.Sprintf("unresolved parent %q of %q", parentName, declared), declared)
	}

	name := declared
	if alias, ok := nameAliases[declared]; ok {
		name = alias
	}

	return s.add(Element{
		Name:        name,
		Description: declared,
		OID:         parent.ChildOID(subID),
		Parent:      parent.Name,
		Kind:        KindBranch,
	})
}

// objectType consumes one OBJECT-TYPE declaration. The scanner first seeks
// the DESCRIPTION clause, then collects description text until the INDEX or
// assignment line. After an INDEX line it skips ahead to the assignment.
func (s *scanner) objectType(name string) error {
	state := seekingDescription
	var text []string
	var index string

	for s.pos++; s.pos < len(s.lines); s.pos++ {
		line := s.lines[s.pos]

		if state == seekingDescription {
			if !strings.Contains(line, descriptionKeyword) {
				if strings.Contains(line, assignmentToken) {
					return s.fail(fmt.Sprintf("declaration of %q has no DESCRIPTION", name), name)
				}
				continue
			}
			state = seekingTerminator
		}

		switch {
		case strings.Contains(line, assignmentToken):
			return s.addLeaf(name, foldDescription(text), index, line)
		case strings.Contains(line, indexToken):
			m := indexRe.FindStringSubmatch(line)
			if m == nil {
				return s.fail(fmt.Sprintf("malformed INDEX clause of %q: %s", name, line), name)
			}
			index = m[1]
		case index == "":
			text = append(text, line)
		}
	}

	return s.fail(fmt.Sprintf("end of file inside declaration of %q", name), name)
}

func (s *scanner) addLeaf(name, description, index, line string) error {
	m := assignmentRe.FindStringSubmatch(line)
	if m == nil {
		return s.fail(fmt.Sprintf("malformed assignment of %q: %s", name, line), name)
	}
	parent, ok := s.tree.Lookup(m[1])
	if !ok {
		return s.fail(fmt.Sprintf("unresolved parent %q of %q", m[1], name), name)
	}

	return s.add(Element{
		Name:        name,
		Description: description,
		OID:         parent.ChildOID(m[2]),
		Parent:      parent.Name,
		Kind:        KindLeaf,
		Index:       index,
	})
}

func (s *scanner) add(e Element) error {
	if err := s.tree.add(e); err != nil {
		return errors.WrapWithContext(errors.ErrCodeConstruction, "invalid MIB element", err,
			map[string]any{"file": s.file, "name": e.Name})
	}
	return nil
}

func (s *scanner) fail(msg, name string) error {
	return errors.NewWithContext(errors.ErrCodeConstruction, msg,
		map[string]any{"file": s.file, "name": name})
}

// foldDescription joins description lines, drops the first DESCRIPTION
// keyword and quotes, and collapses whitespace.
func foldDescription(lines []string) string {
	d := strings.Join(lines, " ")
	d = strings.Replace(d, descriptionKeyword, "", 1)
	d = strings.ReplaceAll(d, `"`, "")
	return strings.TrimSpace(whitespaceRe.ReplaceAllString(d, " "))
}
