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
	"log/slog"
	"net/http"

	"github.com/lsst-ts/ts-epm/pkg/errors"
	"github.com/lsst-ts/ts-epm/pkg/serializer"
	"github.com/lsst-ts/ts-epm/pkg/server"
)

// Route patterns served by Handler.
const (
	RouteTelemetry = "/v1/telemetry"
	RouteDevice    = "/v1/telemetry/{device}"
	RouteTree      = "/v1/mib"
	RouteElement   = "/v1/mib/{name}"
	RouteCatalog   = "/v1/catalog"
)

// Handler serves the latest telemetry and the MIB tree over HTTP.
type Handler struct {
	records TelemetrySource
	tree    ElementSource
	version string
	logger  *slog.Logger
}

// HandlerOption configures a Handler.
type HandlerOption func(*Handler)

// WithVersion sets the version written into response headers.
func WithVersion(version string) HandlerOption {
	return func(h *Handler) {
		h.version = version
	}
}

// WithLogger sets the handler logger.
func WithLogger(logger *slog.Logger) HandlerOption {
	return func(h *Handler) {
		if logger != nil {
			h.logger = logger
		}
	}
}

// NewHandler returns a Handler over the given record source and tree.
func NewHandler(records TelemetrySource, tree ElementSource, opts ...HandlerOption) *Handler {
	h := &Handler{
		records: records,
		tree:    tree,
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Routes returns the handler map to register with server.WithHandler.
func (h *Handler) Routes() map[string]http.HandlerFunc {
	return map[string]http.HandlerFunc{
		RouteTelemetry: h.HandleTelemetry,
		RouteDevice:    h.HandleDevice,
		RouteTree:      h.HandleTree,
		RouteElement:   h.HandleElement,
		RouteCatalog:   h.HandleCatalog,
	}
}

// HandleTelemetry handles GET /v1/telemetry.
func (h *Handler) HandleTelemetry(w http.ResponseWriter, r *http.Request) {
	if !allowGet(w, r) {
		return
	}
	serializer.RespondJSON(w, http.StatusOK, NewTelemetryList(h.records.All(), h.version))
}

// HandleDevice handles GET /v1/telemetry/{device}.
func (h *Handler) HandleDevice(w http.ResponseWriter, r *http.Request) {
	if !allowGet(w, r) {
		return
	}
	device := r.PathValue("device")
	rec, ok := h.records.Latest(device)
	if !ok {
		h.logger.Debug("no telemetry for device", "device", device)
		server.WriteErrorFromErr(w, r,
			errors.NewWithContext(errors.ErrCodeNotFound, "no telemetry for device",
				map[string]any{"device": device}),
			"failed to read telemetry", nil)
		return
	}
	serializer.RespondJSON(w, http.StatusOK, rec)
}

// HandleTree handles GET /v1/mib with an optional root query parameter.
func (h *Handler) HandleTree(w http.ResponseWriter, r *http.Request) {
	if !allowGet(w, r) {
		return
	}
	doc, err := NewTreeDocument(h.tree, r.URL.Query().Get("root"), h.version)
	if err != nil {
		server.WriteErrorFromErr(w, r, err, "failed to list MIB tree", nil)
		return
	}
	serializer.RespondJSON(w, http.StatusOK, doc)
}

// HandleElement handles GET /v1/mib/{name}.
func (h *Handler) HandleElement(w http.ResponseWriter, r *http.Request) {
	if !allowGet(w, r) {
		return
	}
	doc, err := NewElementDocument(h.tree, r.PathValue("name"))
	if err != nil {
		server.WriteErrorFromErr(w, r, err, "failed to look up MIB element", nil)
		return
	}
	serializer.RespondJSON(w, http.StatusOK, doc)
}

// HandleCatalog handles GET /v1/catalog.
func (h *Handler) HandleCatalog(w http.ResponseWriter, r *http.Request) {
	if !allowGet(w, r) {
		return
	}
	serializer.RespondJSON(w, http.StatusOK, NewCatalogDocument(h.version))
}

func allowGet(w http.ResponseWriter, r *http.Request) bool {
	if r.Method == http.MethodGet {
		return true
	}
	w.Header().Set("Allow", http.MethodGet)
	server.WriteError(w, r, http.StatusMethodNotAllowed, errors.ErrCodeMethodNotAllowed,
		"Method not allowed", false, map[string]any{"method": r.Method})
	return false
}
