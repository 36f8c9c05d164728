package auth

import (
	"html/template"
	"io/fs"
	"net/http"

	"github.com/sidenotehq/sidenote/internal/config"
	"github.com/sidenotehq/sidenote/internal/routes"
)

// RegisterEd25519AuthRoutes registers the challenge, verify, and login page
// routes for the Ed25519 provider.
func RegisterEd25519AuthRoutes(mux *http.ServeMux, provider *Ed25519AuthProvider, fsys fs.FS) {
	tmpl, err := template.ParseFS(
		fsys,
		config.TemplatesLocalDir+"/"+config.TemplateLayout,
		config.TemplatesLocalDir+"/"+config.TemplateAuth,
	)
	if err != nil {
		authLogger.Fatal().Err(err).Msg("Error loading auth template")
		return
	}

	mux.HandleFunc(routes.AuthChallenge, Ed25519ChallengeHandler(provider))
	mux.HandleFunc(routes.AuthVerify, Ed25519VerifyHandler(provider))
	mux.HandleFunc(routes.AuthLogin, Ed25519AuthPageHandler(provider, tmpl))
}
