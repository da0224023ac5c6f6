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

package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func TestNew(t *testing.T) {
	routes := map[string]http.HandlerFunc{
		"/test": okHandler,
	}

	s := New(WithHandler(routes))
	if s == nil {
		t.Fatal("expected server instance, got nil")
	}

	if s.config == nil {
		t.Error("expected config to be initialized")
	}
	if s.httpServer == nil {
		t.Error("expected httpServer to be initialized")
	}
	if s.rateLimiter == nil {
		t.Error("expected rateLimiter to be initialized")
	}
	if s.Addr() != ":8080" {
		t.Errorf("expected default address :8080, got %s", s.Addr())
	}
}

func TestHealthEndpoint(t *testing.T) {
	s := New()

	w := httptest.NewRecorder()
	s.handleHealth(w, httptest.NewRequest(http.MethodGet, "/health", nil))

	if w.Code != http.StatusOK {
		t.Errorf("expected status %d, got %d", http.StatusOK, w.Code)
	}
	if w.Header().Get("Content-Type") != "application/json" {
		t.Errorf("expected Content-Type application/json, got %s", w.Header().Get("Content-Type"))
	}

	w = httptest.NewRecorder()
	s.handleHealth(w, httptest.NewRequest(http.MethodPost, "/health", nil))
	if w.Code != http.StatusMethodNotAllowed {
		t.Errorf("expected status %d for POST, got %d", http.StatusMethodNotAllowed, w.Code)
	}
}

func TestReadyEndpoint(t *testing.T) {
	s := New()

	tests := []struct {
		name           string
		ready          bool
		expectedStatus int
		expectedState  string
	}{
		{"ready state", true, http.StatusOK, "ready"},
		{"not ready state", false, http.StatusServiceUnavailable, "not_ready"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s.SetReady(tt.ready)

			w := httptest.NewRecorder()
			s.handleReady(w, httptest.NewRequest(http.MethodGet, "/ready", nil))

			if w.Code != tt.expectedStatus {
				t.Errorf("expected status %d, got %d", tt.expectedStatus, w.Code)
			}

			var resp HealthResponse
			if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
				t.Fatalf("failed to unmarshal response: %v", err)
			}
			if resp.Status != tt.expectedState {
				t.Errorf("expected status %q, got %q", tt.expectedState, resp.Status)
			}
		})
	}
}

func TestRateLimiting(t *testing.T) {
	cfg := NewConfig()
	cfg.RateLimit = 1
	cfg.RateLimitBurst = 1
	cfg.Handlers = map[string]http.HandlerFunc{"/test": okHandler}

	s := New(WithConfig(cfg))
	handler := s.Handler()

	w1 := httptest.NewRecorder()
	handler.ServeHTTP(w1, httptest.NewRequest(http.MethodGet, "/test", nil))
	if w1.Code != http.StatusOK {
		t.Errorf("expected first request to succeed with status 200, got %d", w1.Code)
	}

	w2 := httptest.NewRecorder()
	handler.ServeHTTP(w2, httptest.NewRequest(http.MethodGet, "/test", nil))
	if w2.Code != http.StatusTooManyRequests {
		t.Errorf("expected rate limit error with status 429, got %d", w2.Code)
	}

	// system routes bypass the limiter
	w3 := httptest.NewRecorder()
	handler.ServeHTTP(w3, httptest.NewRequest(http.MethodGet, "/health", nil))
	if w3.Code != http.StatusOK {
		t.Errorf("expected /health to bypass rate limiting, got %d", w3.Code)
	}
}

func TestMetricsRoute(t *testing.T) {
	s := New(WithHandler(map[string]http.HandlerFunc{"/test": okHandler}))
	handler := s.Handler()

	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/test", nil))

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "epm_http_requests_total") {
		t.Error("expected epm_http_requests_total in metrics output")
	}
}

func TestGracefulShutdown(t *testing.T) {
	cfg := NewConfig()
	cfg.Port = 0
	cfg.ShutdownTimeout = 100 * time.Millisecond
	cfg.Handlers = map[string]http.HandlerFunc{"/test": okHandler}

	s := New(WithConfig(cfg))

	ctx, cancel := context.WithCancel(context.TODO())
	defer cancel()

	errChan := make(chan error, 1)
	go func() {
		errChan <- s.Start(ctx)
	}()

	time.Sleep(50 * time.Millisecond)
	if !s.IsReady() {
		t.Error("expected server to be ready after start")
	}

	cancel()

	select {
	case err := <-errChan:
		if err != nil {
			t.Errorf("expected clean shutdown, got error: %v", err)
		}
	case <-time.After(time.Second):
		t.Error("shutdown timed out")
	}

	if s.IsReady() {
		t.Error("expected server to be not ready after shutdown")
	}
}

func TestManualReadiness(t *testing.T) {
	cfg := NewConfig()
	cfg.Port = 0
	cfg.ShutdownTimeout = 100 * time.Millisecond

	s := New(WithConfig(cfg), WithManualReadiness())

	ctx, cancel := context.WithCancel(context.TODO())
	errChan := make(chan error, 1)
	go func() {
		errChan <- s.Start(ctx)
	}()

	time.Sleep(50 * time.Millisecond)
	if s.IsReady() {
		t.Error("expected server to stay not ready until SetReady")
	}
	s.SetReady(true)
	if !s.IsReady() {
		t.Error("expected server to be ready after SetReady")
	}

	cancel()
	if err := <-errChan; err != nil {
		t.Errorf("expected clean shutdown, got error: %v", err)
	}
}

func TestStartListenError(t *testing.T) {
	cfg := NewConfig()
	cfg.Port = -1

	s := New(WithConfig(cfg))
	if err := s.Start(context.Background()); err == nil {
		t.Error("expected listen error for invalid port")
	}
}

func TestDefaultRootHandler(t *testing.T) {
	routes := map[string]http.HandlerFunc{
		"/v1/telemetry": okHandler,
	}

	s := New(WithHandler(routes), WithName("epm"), WithVersion("1.2.3"))

	handler := s.config.Handlers["/"]
	if handler == nil {
		t.Fatal("expected default root handler to be created")
	}

	w := httptest.NewRecorder()
	handler(w, httptest.NewRequest(http.MethodGet, "/", nil))

	if w.Code != http.StatusOK {
		t.Errorf("expected status %d, got %d", http.StatusOK, w.Code)
	}

	var resp struct {
		Name    string   `json:"name"`
		Version string   `json:"version"`
		Routes  []string `json:"routes"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to unmarshal response: %v", err)
	}
	if resp.Name != "epm" || resp.Version != "1.2.3" {
		t.Errorf("unexpected identity %q %q", resp.Name, resp.Version)
	}
	for _, want := range []string{"/v1/telemetry", "/health", "/ready", "/metrics"} {
		if !strings.Contains(strings.Join(resp.Routes, " "), want) {
			t.Errorf("expected routes to contain %s, got %v", want, resp.Routes)
		}
	}
}

func TestDefaultRootHandlerErrors(t *testing.T) {
	s := New()
	handler := s.Handler()

	tests := []struct {
		name   string
		method string
		path   string
		want   int
	}{
		{"method not allowed", http.MethodPost, "/", http.StatusMethodNotAllowed},
		{"unknown path", http.MethodGet, "/nope", http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			handler.ServeHTTP(w, httptest.NewRequest(tt.method, tt.path, nil))
			if w.Code != tt.want {
				t.Errorf("expected status %d, got %d", tt.want, w.Code)
			}
		})
	}
}

func TestCustomRootHandlerNotOverridden(t *testing.T) {
	customCalled := false
	routes := map[string]http.HandlerFunc{
		"/": func(w http.ResponseWriter, _ *http.Request) {
			customCalled = true
			w.WriteHeader(http.StatusOK)
		},
	}

	s := New(WithHandler(routes))

	s.config.Handlers["/"](httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))

	if !customCalled {
		t.Error("expected custom root handler to be called, not default")
	}
}

func TestReservedRouteIgnored(t *testing.T) {
	called := false
	s := New(WithHandler(map[string]http.HandlerFunc{
		"/health": func(w http.ResponseWriter, _ *http.Request) {
			called = true
			w.WriteHeader(http.StatusTeapot)
		},
	}))

	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))

	if called {
		t.Error("expected built-in /health handler to win")
	}
	if w.Code != http.StatusOK {
		t.Errorf("expected status 200, got %d", w.Code)
	}
}

func TestOptions(t *testing.T) {
	t.Run("with name", func(t *testing.T) {
		s := New(WithName("custom-api-server"))
		if s.config.Name != "custom-api-server" {
			t.Errorf("expected server name custom-api-server, got %s", s.config.Name)
		}
	})

	t.Run("default name", func(t *testing.T) {
		s := New()
		if s.config.Name != "server" {
			t.Errorf("expected default name 'server', got %s", s.config.Name)
		}
	})

	t.Run("with handler", func(t *testing.T) {
		s := New(WithHandler(map[string]http.HandlerFunc{"/api/test": okHandler}))
		if _, exists := s.config.Handlers["/api/test"]; !exists {
			t.Error("expected /api/test handler to exist")
		}
		if _, exists := s.config.Handlers["/"]; !exists {
			t.Error("expected default root handler to be created")
		}
	})

	t.Run("with config", func(t *testing.T) {
		cfg := NewConfig()
		cfg.Name = "test-server"
		cfg.Port = 9090
		cfg.RateLimit = 500

		s := New(WithConfig(cfg))

		if s.config.Name != "test-server" {
			t.Errorf("expected name test-server, got %s", s.config.Name)
		}
		if s.Addr() != ":9090" {
			t.Errorf("expected address :9090, got %s", s.Addr())
		}
		if s.config.RateLimit != 500 {
			t.Errorf("expected rate limit 500, got %v", s.config.RateLimit)
		}
	})
}
