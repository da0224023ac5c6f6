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
	"embed"
	"fmt"
	"io/fs"
	"math/rand/v2"
	"strconv"
	"sync"

	"github.com/lsst-ts/ts-epm/pkg/catalog"
	"github.com/lsst-ts/ts-epm/pkg/errors"
	"github.com/lsst-ts/ts-epm/pkg/file"
	"github.com/lsst-ts/ts-epm/pkg/mib"
)

//go:embed data/*_output.txt
var recordings embed.FS

const (
	stringLength  = 20
	stringCharset = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
)

// ValueSource produces the raw value of one element. Returning false omits
// the binding from the walk.
type ValueSource interface {
	Value(e mib.Element, entry catalog.Entry, instanceOID string) (string, bool)
}

// RandomSource generates values by kind: ints in [0,100), floats as ints
// in [100,1000) to be read back in tenths, and 20 character [A-Z0-9]
// strings.
type RandomSource struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewRandomSource returns a RandomSource with a random seed.
func NewRandomSource() *RandomSource {
	return &RandomSource{rng: rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))}
}

// NewSeededRandomSource returns a RandomSource producing a fixed sequence.
func NewSeededRandomSource(seed uint64) *RandomSource {
	return &RandomSource{rng: rand.New(rand.NewPCG(seed, seed))}
}

// Value implements ValueSource.
func (s *RandomSource) Value(_ mib.Element, entry catalog.Entry, _ string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch entry.Kind {
	case catalog.KindInt:
		return strconv.Itoa(s.rng.IntN(100)), true
	case catalog.KindFloat:
		return strconv.Itoa(100 + s.rng.IntN(900)), true
	case catalog.KindString:
		b := make([]byte, stringLength)
		for i := range b {
			b[i] = stringCharset[s.rng.IntN(len(stringCharset))]
		}
		return string(b), true
	default:
		return "0", true
	}
}

// ReplaySource serves values recorded from a real device, keyed by
// instance OID.
type ReplaySource struct {
	values map[string]string
}

// NewReplaySource wraps an OID to value map.
func NewReplaySource(values map[string]string) *ReplaySource {
	return &ReplaySource{values: values}
}

// LoadReplay reads an "oid: value" recording from fsys. Lines starting with
// # are ignored.
func LoadReplay(fsys fs.FS, path string) (*ReplaySource, error) {
	p := file.NewParser(file.WithFS(fsys), file.WithKVDelimiter(":"))
	values, err := p.GetMap(path)
	if err != nil {
		return nil, errors.WrapWithContext(errors.ErrCodeConfiguration, "failed to load replay recording", err,
			map[string]any{"path": path})
	}
	return NewReplaySource(values), nil
}

// RecordedReplay returns the bundled recording of a device type.
func RecordedReplay(deviceType string) (*ReplaySource, error) {
	path := fmt.Sprintf("%s_output.txt", deviceType)
	sub, err := fs.Sub(recordings, "data")
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, "failed to open bundled recordings", err)
	}
	if _, err := fs.Stat(sub, path); err != nil {
		return nil, errors.NewWithContext(errors.ErrCodeNotFound, "no recording for device type",
			map[string]any{"deviceType": deviceType})
	}
	return LoadReplay(sub, path)
}

// Value implements ValueSource.
func (s *ReplaySource) Value(_ mib.Element, _ catalog.Entry, instanceOID string) (string, bool) {
	v, ok := s.values[instanceOID]
	return v, ok
}

// Len returns the number of recorded OIDs.
func (s *ReplaySource) Len() int {
	return len(s.values)
}
