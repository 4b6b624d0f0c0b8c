package middleware

import (
	"errors"
	"net/http"
	"strings"

	apperrors "gymbook/pkg/errors"
	httputil "gymbook/pkg/http"
	"gymbook/pkg/identity"
	"gymbook/pkg/logger"
)

type TokenVerifier interface {
	Verify(token string) (*identity.User, error)
}

// Authenticate resolves a bearer token into the request's identity. Requests
// without an Authorization header pass through anonymously; it is up to the
// operation to require a user. A header that is present but invalid is
// rejected here.
func Authenticate(verifier TokenVerifier, log *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if header == "" {
				next.ServeHTTP(w, r)
				return
			}

			scheme, token, found := strings.Cut(header, " ")
			if !found || !strings.EqualFold(scheme, "Bearer") || strings.TrimSpace(token) == "" {
				_ = httputil.WriteError(w, apperrors.Unauthorized("Invalid authorization header format"))
				return
			}

			user, err := verifier.Verify(strings.TrimSpace(token))
			if err != nil {
				message := "Invalid token"
				if errors.Is(err, identity.ErrTokenExpired) {
					message = "Token expired"
				}
				log.Debug("Rejected bearer token",
					"request_id", RequestID(r.Context()),
					"error", err,
				)
				_ = httputil.WriteError(w, apperrors.Unauthorized(message))
				return
			}

			next.ServeHTTP(w, r.WithContext(identity.WithUser(r.Context(), user)))
		})
	}
}
