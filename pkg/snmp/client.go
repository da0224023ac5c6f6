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
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/gosnmp/gosnmp"
	"golang.org/x/time/rate"

	"github.com/lsst-ts/ts-epm/pkg/defaults"
	"github.com/lsst-ts/ts-epm/pkg/errors"
)

// Option configures a Client.
type Option func(*Client)

// WithPort sets the agent UDP port.
func WithPort(port uint16) Option {
	return func(c *Client) {
		if port != 0 {
			c.port = port
		}
	}
}

// WithCommunity sets the SNMPv1 read community.
func WithCommunity(community string) Option {
	return func(c *Client) {
		if community != "" {
			c.community = community
		}
	}
}

// WithTimeout sets the per-request timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.timeout = d
		}
	}
}

// WithRetries sets the number of retransmissions per request.
func WithRetries(n int) Option {
	return func(c *Client) {
		if n >= 0 {
			c.retries = n
		}
	}
}

// WithWalkRate limits walks to perSecond with a burst of one.
func WithWalkRate(perSecond float64) Option {
	return func(c *Client) {
		if perSecond > 0 {
			c.limiter = rate.NewLimiter(rate.Limit(perSecond), 1)
		}
	}
}

// WithLogger sets the logger used for transport diagnostics.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// Client is a Walker backed by a gosnmp SNMPv1 session. The underlying UDP
// socket is opened on the first walk and reused until Close.
type Client struct {
	host      string
	port      uint16
	community string
	timeout   time.Duration
	retries   int
	limiter   *rate.Limiter
	logger    *slog.Logger

	mu   sync.Mutex
	conn *gosnmp.GoSNMP
}

// NewClient returns a Client for host.
func NewClient(host string, opts ...Option) *Client {
	c := &Client{
		host:      host,
		port:      defaults.SNMPPort,
		community: defaults.SNMPCommunity,
		timeout:   defaults.SNMPTimeout,
		retries:   defaults.SNMPRetries,
		limiter:   rate.NewLimiter(rate.Limit(defaults.SNMPWalkRate), 1),
		logger:    slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Target returns host:port.
func (c *Client) Target() string {
	return fmt.Sprintf("%s:%d", c.host, c.port)
}

// Walk issues GETNEXT requests until the response leaves the subtree rooted
// at rootOID. Exception values are dropped.
func (c *Client) Walk(ctx context.Context, rootOID string) ([]Binding, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, errors.WrapWithContext(errors.ErrCodeTransport, "walk rate limiter interrupted", err,
			map[string]any{"target": c.Target(), "oid": rootOID})
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	g, err := c.session(ctx)
	if err != nil {
		return nil, err
	}
	g.Context = ctx

	start := time.Now()
	pdus, err := g.WalkAll(NormalizeOID(rootOID))
	if err != nil {
		c.resetLocked()
		code := errors.ErrCodeTransport
		if ctx.Err() != nil {
			code = errors.ErrCodeTimeout
		}
		return nil, errors.WrapWithContext(code, "SNMP walk failed", err,
			map[string]any{"target": c.Target(), "oid": rootOID})
	}

	bindings := make([]Binding, 0, len(pdus))
	for _, pdu := range pdus {
		v, ok := FormatValue(pdu)
		if !ok {
			continue
		}
		bindings = append(bindings, Binding{OID: NormalizeOID(pdu.Name), Value: v})
	}

	c.logger.Debug("SNMP walk completed",
		"target", c.Target(),
		"oid", rootOID,
		"bindings", len(bindings),
		"duration", time.Since(start),
	)
	return bindings, nil
}

func (c *Client) session(ctx context.Context) (*gosnmp.GoSNMP, error) {
	if c.conn != nil {
		return c.conn, nil
	}
	if strings.TrimSpace(c.host) == "" {
		return nil, errors.New(errors.ErrCodeConfiguration, "SNMP target host is empty")
	}

	g := &gosnmp.GoSNMP{
		Target:    c.host,
		Port:      c.port,
		Community: c.community,
		Version:   gosnmp.Version1,
		Timeout:   c.timeout,
		Retries:   c.retries,
		MaxOids:   gosnmp.MaxOids,
		Context:   ctx,
	}
	if err := g.Connect(); err != nil {
		return nil, errors.WrapWithContext(errors.ErrCodeTransport, "failed to open SNMP session", err,
			map[string]any{"target": c.Target()})
	}
	c.conn = g
	return g, nil
}

func (c *Client) resetLocked() {
	if c.conn == nil {
		return
	}
	if c.conn.Conn != nil {
		if err := c.conn.Conn.Close(); err != nil {
			c.logger.Debug("failed to close SNMP session", "target", c.Target(), "error", err)
		}
	}
	c.conn = nil
}

// Close releases the UDP socket. The client may be reused afterwards.
func (c *Client) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.resetLocked()
	return nil
}
