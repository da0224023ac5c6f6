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

package file

import (
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strings"
	"unicode/utf8"
)

// Options for configuring the Parser.
type Option func(*Parser)

// Parser splits line-oriented text files (MIB sources, recorded device
// output) into lines or key/value pairs.
type Parser struct {
	fsys          fs.FS
	delimiter     string
	maxSize       int
	commentPrefix string
	kvDelimiter   string
	vTrimChars    string
}

// WithFS reads files from fsys instead of the local filesystem.
func WithFS(fsys fs.FS) Option {
	return func(p *Parser) {
		p.fsys = fsys
	}
}

// WithDelimiter sets the delimiter used to split entries in the file.
// Default is newline ("\n").
func WithDelimiter(delim string) Option {
	return func(p *Parser) {
		p.delimiter = delim
	}
}

// WithMaxSize sets the maximum size (in bytes) of the file to be parsed.
// Default is 4MB.
func WithMaxSize(size int) Option {
	return func(p *Parser) {
		p.maxSize = size
	}
}

// WithCommentPrefix sets the prefix marking comment lines. An empty prefix
// keeps every line. Default is "#".
func WithCommentPrefix(prefix string) Option {
	return func(p *Parser) {
		p.commentPrefix = prefix
	}
}

// WithKVDelimiter sets the key-value delimiter used in GetMap.
// Default is "=".
func WithKVDelimiter(kvDelim string) Option {
	return func(p *Parser) {
		p.kvDelimiter = kvDelim
	}
}

// WithVTrimChars sets characters to trim from values in GetMap.
func WithVTrimChars(trimChars string) Option {
	return func(p *Parser) {
		p.vTrimChars = trimChars
	}
}

// NewParser creates a new file parser with the provided options.
func NewParser(opts ...Option) *Parser {
	p := &Parser{
		delimiter:     "\n",
		maxSize:       4 << 20,
		commentPrefix: "#",
		kvDelimiter:   "=",
	}

	for _, opt := range opts {
		opt(p)
	}
	return p
}

// GetMap reads the file at path and splits every line on the first key-value
// delimiter. Lines without the delimiter are skipped.
func (p *Parser) GetMap(path string) (map[string]string, error) {
	parts, err := p.GetLines(path)
	if err != nil {
		return nil, err
	}

	result := make(map[string]string, len(parts))
	for _, part := range parts {
		key, value, ok := strings.Cut(part, p.kvDelimiter)
		if !ok {
			slog.Debug("skipping line without delimiter",
				"path", path,
				"delimiter", p.kvDelimiter,
			)
			continue
		}

		value = strings.TrimSpace(value)
		if p.vTrimChars != "" {
			value = strings.Trim(value, p.vTrimChars)
		}

		result[strings.TrimSpace(key)] = value
	}

	return result, nil
}

// GetLines reads the file at path and returns its trimmed, non-empty,
// non-comment lines in file order.
func (p *Parser) GetLines(path string) ([]string, error) {
	if path == "" {
		return nil, fmt.Errorf("file path cannot be empty")
	}

	b, err := p.read(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %q: %w", path, err)
	}

	if !utf8.Valid(b) {
		return nil, fmt.Errorf("content of file %q is not valid UTF-8", path)
	}

	if len(b) > p.maxSize {
		return nil, fmt.Errorf("file %q exceeds maximum size of %d bytes", path, p.maxSize)
	}

	parts := strings.Split(string(b), p.delimiter)

	result := make([]string, 0, len(parts))
	for _, part := range parts {
		cleanPart := strings.TrimSpace(part)
		if cleanPart == "" {
			continue
		}

		if p.commentPrefix != "" && strings.HasPrefix(cleanPart, p.commentPrefix) {
			continue
		}

		result = append(result, cleanPart)
	}

	return result, nil
}

func (p *Parser) read(path string) ([]byte, error) {
	if p.fsys != nil {
		return fs.ReadFile(p.fsys, path)
	}
	return os.ReadFile(path)
}
