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

package telemetry

import (
	"context"
	"slices"
	"strings"
	"sync"
)

// Store keeps the most recent record of every device.
type Store struct {
	mu     sync.RWMutex
	latest map[string]*Record
}

// NewStore returns an empty Store.
func NewStore() *Store {
	return &Store{latest: make(map[string]*Record)}
}

// Emit implements Sink.
func (s *Store) Emit(_ context.Context, rec *Record) error {
	if rec == nil {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.latest[rec.DeviceName] = rec
	return nil
}

// Latest returns the last record of a device.
func (s *Store) Latest(device string) (*Record, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rec, ok := s.latest[device]
	return rec, ok
}

// All returns the last record of every device, ordered by device name.
func (s *Store) All() []*Record {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*Record, 0, len(s.latest))
	for _, rec := range s.latest {
		out = append(out, rec)
	}
	slices.SortFunc(out, func(a, b *Record) int {
		return strings.Compare(a.DeviceName, b.DeviceName)
	})
	return out
}

// Len returns the number of devices with a record.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.latest)
}
