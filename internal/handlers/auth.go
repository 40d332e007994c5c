package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/google/uuid"
)

var (
	errMissingToken = errors.New("missing session token")
	errInvalidToken = errors.New("invalid session token")
	errForeignToken = errors.New("token was issued for another session")
)

// sessionToken reads the bearer token, falling back to the token query
// param for clients that cannot set headers (browser WebSockets).
func sessionToken(r *http.Request) string {
	if auth := r.Header.Get("Authorization"); auth != "" {
		if token, ok := strings.CutPrefix(auth, "Bearer "); ok {
			return strings.TrimSpace(token)
		}
	}
	return r.URL.Query().Get("token")
}

// authorize checks that r carries a valid token for session id and
// answers with 401/403 otherwise.
func (g *GameHandler) authorize(w http.ResponseWriter, r *http.Request, id uuid.UUID) bool {
	token := sessionToken(r)
	if token == "" {
		sendErrorOrLog(w, g.logger, http.StatusUnauthorized, errMissingToken)
		return false
	}
	subject, err := g.jwt.ParseSessionToken(token)
	if err != nil {
		g.logger.WithError(err).Debug("rejected session token")
		sendErrorOrLog(w, g.logger, http.StatusUnauthorized, errInvalidToken)
		return false
	}
	if subject != id.String() {
		sendErrorOrLog(w, g.logger, http.StatusForbidden, errForeignToken)
		return false
	}
	return true
}
