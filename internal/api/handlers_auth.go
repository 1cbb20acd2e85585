package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/sovna/taskhub/internal/auth/password"
	"github.com/sovna/taskhub/internal/storage"
)

type signupRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// handleSignup registers a new account. The username/email existence checks
// are a fast path only; the store's uniqueness constraints are the real
// guarantee, and a constraint violation maps to the same 400 responses.
func (s *Server) handleSignup(w http.ResponseWriter, r *http.Request) {
	var req signupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeDetail(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	req.Username = strings.TrimSpace(req.Username)
	req.Email = strings.TrimSpace(req.Email)
	if req.Username == "" || req.Email == "" || req.Password == "" {
		writeDetail(w, http.StatusBadRequest, "username, email and password are required")
		return
	}
	if !strings.Contains(req.Email, "@") {
		writeDetail(w, http.StatusBadRequest, "Invalid email address")
		return
	}

	if _, err := s.store.GetUserByUsername(r.Context(), req.Username); err == nil {
		writeDetail(w, http.StatusBadRequest, "Username already exists")
		return
	} else if !errors.Is(err, storage.ErrNotFound) {
		s.writeError(w, err)
		return
	}
	if _, err := s.store.GetUserByEmail(r.Context(), req.Email); err == nil {
		writeDetail(w, http.StatusBadRequest, "Email already registered")
		return
	} else if !errors.Is(err, storage.ErrNotFound) {
		s.writeError(w, err)
		return
	}

	hash, err := password.Hash(req.Password)
	if err != nil {
		s.writeError(w, err)
		return
	}

	user, err := s.store.CreateUser(r.Context(), req.Username, req.Email, hash)
	if err != nil {
		if errors.Is(err, storage.ErrUsernameTaken) {
			writeDetail(w, http.StatusBadRequest, "Username already exists")
			return
		}
		if errors.Is(err, storage.ErrEmailTaken) {
			writeDetail(w, http.StatusBadRequest, "Email already registered")
			return
		}
		s.writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toUserView(user))
}

// handleToken exchanges form credentials for a bearer token. A missing user
// and a wrong password produce the same response, so the endpoint cannot be
// used to enumerate accounts.
func (s *Server) handleToken(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		writeDetail(w, http.StatusBadRequest, "Invalid form data")
		return
	}
	username := strings.TrimSpace(r.FormValue("username"))
	pass := r.FormValue("password")

	user, err := s.store.GetUserByUsername(r.Context(), username)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			writeDetail(w, http.StatusUnauthorized, "Invalid credentials")
			return
		}
		s.writeError(w, err)
		return
	}
	if !password.Verify(pass, user.PasswordHash) {
		writeDetail(w, http.StatusUnauthorized, "Invalid credentials")
		return
	}

	issued, err := s.tokens.Issue(user.Username)
	if err != nil {
		s.writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, tokenResponse{
		AccessToken: issued,
		TokenType:   "bearer",
	})
}
