package auth

import (
	"net/http"

	"github.com/ghuser/itemsvc/pkg/httpx"
	"github.com/ghuser/itemsvc/pkg/logger"
)

// RequireBearer is a chi middleware that rejects requests without a valid
// bearer token. Every rejection gets the same 401 body; the reason is only logged.
//
// After this middleware, handlers can call auth.PrincipalFromCtx(r.Context()).
func RequireBearer(authn *Authenticator, log logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			principal, err := authn.Authenticate(r.Header.Get("Authorization"))
			if err != nil {
				log.WarnContext(r.Context(), "request rejected", "reason", err.Error())
				WriteUnauthorized(w)
				return
			}

			ctx := WithPrincipal(r.Context(), principal)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// WriteUnauthorized writes the generic 401 response.
func WriteUnauthorized(w http.ResponseWriter) {
	w.Header().Set("WWW-Authenticate", bearerScheme)
	httpx.JSONError(w, http.StatusUnauthorized, "Not authenticated")
}

// TokenResponse is returned by the token endpoint.
type TokenResponse struct {
	AccessToken string `json:"access_token" example:"devtoken"`
	TokenType   string `json:"token_type"   example:"bearer"`
} // @name TokenResponse

// TokenHandler returns the configured secret as a bearer token. It performs
// no credential check; it is a test convenience, not an issuance flow.
//
//	@Summary		Get token
//	@Description	Returns the shared API token for use as a bearer credential
//	@Tags			auth
//	@Produce		json
//	@Success		200	{object}	TokenResponse
//	@Router			/auth/token [post]
func TokenHandler(authn *Authenticator) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		httpx.JSON(w, http.StatusOK, TokenResponse{
			AccessToken: authn.Token(),
			TokenType:   "bearer",
		})
	}
}
