package api

import (
	"errors"
	"net/http"
	"strings"

	apperrors "github.com/sovna/taskhub/internal/platform/errors"
	"github.com/sovna/taskhub/internal/platform/requestctx"
	"github.com/sovna/taskhub/internal/storage"
)

// requireUser resolves the bearer token to an account and binds it to the
// request context. Missing token, failed verification, and a subject with no
// matching account all reject with 401; the identity lives only for this
// request.
func (s *Server) requireUser(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		bearer, ok := bearerToken(r)
		if !ok {
			writeDetail(w, http.StatusUnauthorized, "Not authenticated")
			return
		}

		subject, err := s.tokens.Verify(bearer)
		if err != nil {
			writeDetail(w, http.StatusUnauthorized, "Invalid token")
			return
		}

		user, err := s.store.GetUserByUsername(r.Context(), subject)
		if err != nil {
			if errors.Is(err, storage.ErrNotFound) {
				// The token itself is still valid; only resolution fails.
				// Happens when the account was removed after issuance.
				writeDetail(w, http.StatusUnauthorized, "User not found")
				return
			}
			s.writeError(w, err)
			return
		}

		next(w, r.WithContext(requestctx.WithUser(r.Context(), user)))
	}
}

// bearerToken extracts the token from the Authorization header.
func bearerToken(r *http.Request) (string, bool) {
	header := r.Header.Get("Authorization")
	if !strings.HasPrefix(header, "Bearer ") {
		return "", false
	}
	tokenString := strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
	if tokenString == "" {
		return "", false
	}
	return tokenString, true
}

// writeError translates a domain error into its HTTP status and detail body.
func (s *Server) writeError(w http.ResponseWriter, err error) {
	var domainErr *apperrors.Error
	if errors.As(err, &domainErr) {
		writeDetail(w, domainErr.Code.HTTPStatus(), domainErr.Message)
		return
	}
	writeDetail(w, http.StatusInternalServerError, "Internal server error")
}
