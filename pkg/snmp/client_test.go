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

package snmp

import (
	"context"
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lsst-ts/ts-epm/pkg/defaults"
	"github.com/lsst-ts/ts-epm/pkg/errors"
)

func TestBindingsToMap(t *testing.T) {
	m := BindingsToMap([]Binding{
		{OID: "1.3.6.1.2.1.1.1.0", Value: "first"},
		{OID: "1.3.6.1.4.1.534.1.2.2.0", Value: "540"},
		{OID: "1.3.6.1.2.1.1.1.0", Value: "second"},
	})
	assert.Len(t, m, 2)
	assert.Equal(t, "second", m["1.3.6.1.2.1.1.1.0"])
	assert.Equal(t, "540", m["1.3.6.1.4.1.534.1.2.2.0"])
	assert.Empty(t, BindingsToMap(nil))
}

func TestNormalizeOID(t *testing.T) {
	assert.Equal(t, "1.3.6.1", NormalizeOID(".1.3.6.1"))
	assert.Equal(t, "1.3.6.1", NormalizeOID(" 1.3.6.1 "))
	assert.Equal(t, "", NormalizeOID(""))
}

func TestWalkerFunc(t *testing.T) {
	var w Walker = WalkerFunc(func(_ context.Context, root string) ([]Binding, error) {
		return []Binding{{OID: root + ".0", Value: "x"}}, nil
	})
	got, err := w.Walk(context.Background(), "1.2")
	require.NoError(t, err)
	assert.Equal(t, []Binding{{OID: "1.2.0", Value: "x"}}, got)
}

func TestNewClient_Defaults(t *testing.T) {
	c := NewClient("ups.example")
	assert.Equal(t, uint16(defaults.SNMPPort), c.port)
	assert.Equal(t, defaults.SNMPCommunity, c.community)
	assert.Equal(t, defaults.SNMPTimeout, c.timeout)
	assert.Equal(t, defaults.SNMPRetries, c.retries)
	assert.Equal(t, "ups.example:161", c.Target())
}

func TestNewClient_Options(t *testing.T) {
	c := NewClient("pdu.example",
		WithPort(1161),
		WithCommunity("private"),
		WithTimeout(500*time.Millisecond),
		WithRetries(0),
		WithWalkRate(2),
		WithLogger(nil),
	)
	assert.Equal(t, uint16(1161), c.port)
	assert.Equal(t, "private", c.community)
	assert.Equal(t, 500*time.Millisecond, c.timeout)
	assert.Equal(t, 0, c.retries)
	assert.NotNil(t, c.logger)

	// zero values keep defaults
	c = NewClient("pdu.example", WithPort(0), WithCommunity(""), WithTimeout(0), WithRetries(-1))
	assert.Equal(t, uint16(defaults.SNMPPort), c.port)
	assert.Equal(t, defaults.SNMPCommunity, c.community)
	assert.Equal(t, defaults.SNMPTimeout, c.timeout)
	assert.Equal(t, defaults.SNMPRetries, c.retries)
}

func TestClient_WalkEmptyHost(t *testing.T) {
	c := NewClient("  ")
	_, err := c.Walk(context.Background(), "1.3.6.1.2.1.1.1")
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrCodeConfiguration))
}

func TestClient_WalkCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	c := NewClient("127.0.0.1")
	_, err := c.Walk(ctx, "1.3.6.1.2.1.1.1")
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrCodeTransport))
}

func TestClient_WalkUnresponsiveAgent(t *testing.T) {
	// a UDP socket that never answers
	pc, err := net.ListenPacket("udp", "127.0.0.1:0")
	require.NoError(t, err)
	defer pc.Close()

	port := uint16(pc.LocalAddr().(*net.UDPAddr).Port)
	c := NewClient("127.0.0.1", WithPort(port), WithTimeout(50*time.Millisecond), WithRetries(0))
	defer c.Close()

	_, err = c.Walk(context.Background(), "1.3.6.1.2.1.1.1")
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrCodeTransport))
	assert.Nil(t, c.conn, "failed walks drop the session")
	assert.NoError(t, c.Close())
}
