// Package auth provides the authentication providers for the annotation
// service: an Ed25519 challenge/signature provider for single-owner
// deployments and a Clerk-backed provider for hosted ones.
package auth

import (
	"net/http"

	"github.com/rs/zerolog"
	"github.com/sidenotehq/sidenote/internal/model"
)

var authLogger zerolog.Logger

func SetLogger(l zerolog.Logger) {
	authLogger = l
}

type AuthProvider interface {
	WithHeaderAuthorization() func(http.Handler) http.Handler

	GetUserIDFromSession(r *http.Request) (model.UserID, error)

	EnforceUserAndGetID(w http.ResponseWriter, r *http.Request) (model.UserID, error)

	HandleWebhookUser(w http.ResponseWriter, r *http.Request)
}
