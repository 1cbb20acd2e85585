// Package api exposes the HTTP/JSON surface: signup, login, and
// owner-scoped task CRUD.
package api

import (
	"encoding/json"
	"net/http"

	"github.com/sovna/taskhub/internal/auth/token"
	"github.com/sovna/taskhub/internal/storage"
)

// Server holds the dependencies shared by every handler.
type Server struct {
	store  storage.Store
	tokens *token.Service
}

// NewServer builds an API server bound to the backing store and token service.
func NewServer(store storage.Store, tokens *token.Service) *Server {
	return &Server{
		store:  store,
		tokens: tokens,
	}
}

// RegisterRoutes registers every HTTP endpoint on the provided mux.
func (s *Server) RegisterRoutes(mux *http.ServeMux) {
	if mux == nil {
		return
	}
	mux.HandleFunc("POST /signup", s.handleSignup)
	mux.HandleFunc("POST /token", s.handleToken)
	mux.HandleFunc("POST /tasks", s.requireUser(s.handleCreateTask))
	mux.HandleFunc("GET /tasks", s.requireUser(s.handleListTasks))
	mux.HandleFunc("PUT /tasks/{id}", s.requireUser(s.handleUpdateTask))
	mux.HandleFunc("DELETE /tasks/{id}", s.requireUser(s.handleDeleteTask))
	mux.HandleFunc("GET /up", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})
}

// detailResponse is the error (and delete confirmation) body shape.
type detailResponse struct {
	Detail string `json:"detail"`
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	encoder := json.NewEncoder(w)
	_ = encoder.Encode(payload)
}

func writeDetail(w http.ResponseWriter, status int, detail string) {
	writeJSON(w, status, detailResponse{Detail: detail})
}
