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

package serializer

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

type testConfig struct {
	Name  string `json:"name" yaml:"name"`
	Value int    `json:"value" yaml:"value"`
}

type wrapped struct {
	v any
}

func (w wrapped) Any() any { return w.v }

func TestWriter_SerializeJSON(t *testing.T) {
	var buf bytes.Buffer
	writer := NewWriter(FormatJSON, &buf)

	data := []testConfig{
		{Name: "ups1", Value: 123},
		{Name: "pdu1", Value: 456},
	}

	require.NoError(t, writer.Serialize(context.Background(), data))

	var result []testConfig
	require.NoError(t, json.Unmarshal(buf.Bytes(), &result))
	assert.Equal(t, data, result)
}

func TestWriter_SerializeYAML(t *testing.T) {
	var buf bytes.Buffer
	writer := NewWriter(FormatYAML, &buf)

	data := testConfig{Name: "ups1", Value: 123}
	require.NoError(t, writer.Serialize(context.Background(), data))
	require.NoError(t, writer.Serialize(context.Background(), data))

	dec := yaml.NewDecoder(&buf)
	for i := 0; i < 2; i++ {
		var result testConfig
		require.NoError(t, dec.Decode(&result), "document %d", i)
		assert.Equal(t, data, result)
	}
}

func TestWriter_SerializeTable(t *testing.T) {
	var buf bytes.Buffer
	writer := NewWriter(FormatTable, &buf)

	data := []any{
		testConfig{Name: "ups1", Value: 123},
		testConfig{Name: "pdu1", Value: 456},
	}

	require.NoError(t, writer.Serialize(context.Background(), data))

	output := buf.String()
	assert.Contains(t, output, "FIELD")
	assert.Contains(t, output, "VALUE")
	assert.Contains(t, output, "[0].Name")
	assert.Contains(t, output, "[1].Value")
}

func TestWriter_SerializeTable_ScalarsAndTime(t *testing.T) {
	var buf bytes.Buffer
	writer := NewWriter(FormatTable, &buf)

	type base struct {
		Kind string
	}
	type doc struct {
		base
		Timestamp time.Time
		Fields    map[string]any
	}

	ts := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	data := doc{
		base:      base{Kind: "Telemetry"},
		Timestamp: ts,
		Fields: map[string]any{
			"batteryVoltage": &wrapped{v: 54.2},
			"outletStatus":   wrapped{v: 1},
		},
	}

	require.NoError(t, writer.Serialize(context.Background(), data))

	output := buf.String()
	assert.Contains(t, output, "Fields.batteryVoltage  54.2")
	assert.Contains(t, output, "Fields.outletStatus")
	assert.Contains(t, output, "2026-01-02T03:04:05Z")
	assert.NotContains(t, output, ".v")
}

func TestWriter_SerializeTable_EmbeddedExported(t *testing.T) {
	var buf bytes.Buffer
	writer := NewWriter(FormatTable, &buf)

	type Header struct {
		Kind string
	}
	type doc struct {
		Header
		Name string
	}

	require.NoError(t, writer.Serialize(context.Background(), doc{Header: Header{Kind: "Catalog"}, Name: "x"}))
	lines := strings.Split(buf.String(), "\n")
	assert.Contains(t, lines[2], "Kind")
	assert.NotContains(t, buf.String(), "Header.Kind")
}

func TestWriter_SerializeTable_EmptyData(t *testing.T) {
	var buf bytes.Buffer
	writer := NewWriter(FormatTable, &buf)

	require.NoError(t, writer.Serialize(context.Background(), []testConfig{}))
	assert.Contains(t, buf.String(), "<empty>")
}

func TestWriter_SerializeTable_NilValues(t *testing.T) {
	var buf bytes.Buffer
	writer := NewWriter(FormatTable, &buf)

	type dataWithNil struct {
		Name    string
		Value   *int
		Reading *wrapped
	}

	require.NoError(t, writer.Serialize(context.Background(), dataWithNil{Name: "test"}))
	assert.Contains(t, buf.String(), "Name")
	assert.Contains(t, buf.String(), "Reading")
}

func TestWriter_UnknownFormatFallsBackToJSON(t *testing.T) {
	var buf bytes.Buffer
	writer := NewWriter("invalid", &buf)

	data := testConfig{Name: "test", Value: 123}
	require.NoError(t, writer.Serialize(context.Background(), data))

	var result testConfig
	require.NoError(t, json.Unmarshal(buf.Bytes(), &result))
	assert.Equal(t, data, result)
}

func TestWriter_ConcurrentDocumentsDoNotInterleave(t *testing.T) {
	var buf bytes.Buffer
	writer := NewWriter(FormatJSON, &buf)

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_ = writer.Serialize(context.Background(), testConfig{Name: "device", Value: i})
		}(i)
	}
	wg.Wait()

	dec := json.NewDecoder(&buf)
	count := 0
	for dec.More() {
		var result testConfig
		require.NoError(t, dec.Decode(&result))
		count++
	}
	assert.Equal(t, 20, count)
}

func TestNewFileWriterOrStdout(t *testing.T) {
	t.Run("empty path", func(t *testing.T) {
		w := NewFileWriterOrStdout(FormatJSON, "  ")
		assert.Equal(t, os.Stdout, w.output)
		assert.NoError(t, w.Close())
	})

	t.Run("file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "out.yaml")
		w := NewFileWriterOrStdout(FormatYAML, path)
		require.NoError(t, w.Serialize(context.Background(), testConfig{Name: "file", Value: 1}))
		require.NoError(t, w.Close())
		require.NoError(t, w.Close())

		content, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Contains(t, string(content), "name: file")
	})

	t.Run("invalid path", func(t *testing.T) {
		w := NewFileWriterOrStdout(FormatJSON, "/nonexistent/dir/out.json")
		assert.Equal(t, os.Stdout, w.output)
	})
}

func TestFormat_IsUnknown(t *testing.T) {
	for _, f := range SupportedFormats() {
		assert.False(t, Format(f).IsUnknown(), f)
	}
	assert.True(t, Format("xml").IsUnknown())
}
