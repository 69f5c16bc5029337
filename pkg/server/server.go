// Copyright 2025 walteh LLC
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
	"time"

	"github.com/rs/zerolog"
	"github.com/walteh/soprc/pkg/prompt"
	"gitlab.com/tozd/go/errors"
)

// 🌐 Server serves registered SOP prompts over HTTP
type Server struct {
	registry *prompt.Registry
	mux      *http.ServeMux
}

// 🏭 New creates a server over the given prompt registry
func New(registry *prompt.Registry) *Server {
	s := &Server{
		registry: registry,
		mux:      http.NewServeMux(),
	}
	s.routes()
	return s
}

func (s *Server) routes() {
	s.mux.HandleFunc("GET /sops", s.handleListSOPs)
	s.mux.HandleFunc("POST /sops/{name}", s.handleRenderPrompt)
	s.mux.HandleFunc("GET /healthz", s.handleHealth)
}

// 🌐 ServeHTTP implements http.Handler
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

// 🚀 ListenAndServe runs the server on addr until the context is canceled,
// then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	logger := zerolog.Ctx(ctx)

	srv := &http.Server{
		Addr:    addr,
		Handler: s,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info().Str("addr", addr).Int("sops", s.registry.Len()).Msg("SOP prompt server listening")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return errors.Errorf("shutting down server: %w", err)
		}
		return nil
	case err := <-errCh:
		if err != nil && err != http.ErrServerClosed {
			return errors.Errorf("serving: %w", err)
		}
		return nil
	}
}

// 📝 writeJSON marshals v as JSON and writes it with the given status
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// 📝 writeError writes a JSON error response
func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// 📇 handleListSOPs returns the registered SOPs in registration order
func (s *Server) handleListSOPs(w http.ResponseWriter, r *http.Request) {
	entries := s.registry.Entries()
	list := make([]map[string]string, 0, len(entries))
	for _, e := range entries {
		list = append(list, map[string]string{
			"name":        e.Name,
			"description": e.Description,
		})
	}
	writeJSON(w, http.StatusOK, list)
}

// 📥 renderRequest is the JSON body for POST /sops/{name}
type renderRequest struct {
	Input string `json:"input"`
}

// 📤 renderResponse is the rendered prompt for one SOP
type renderResponse struct {
	Name   string `json:"name"`
	Prompt string `json:"prompt"`
}

// 🎯 handleRenderPrompt renders the prompt for a named SOP
func (s *Server) handleRenderPrompt(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("name")

	handler := s.registry.Handler(name)
	if handler == nil {
		writeError(w, http.StatusNotFound, "unknown SOP: "+name)
		return
	}

	var req renderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	writeJSON(w, http.StatusOK, renderResponse{
		Name:   name,
		Prompt: handler(req.Input),
	})
}

// ❤️ handleHealth reports server liveness and the registered SOP count
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status": "ok",
		"sops":   s.registry.Len(),
	})
}
