package v1handler

import (
	"context"
	"net/http"
	"strings"

	"moveout/internal/config"
	"moveout/pkg/domain"
	"moveout/pkg/serrors"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

// ctxKey is a private type for context values set by this package.
type ctxKey string

const userIDKey ctxKey = "userID"

// AuthOptions configures the bearer token middleware.
type AuthOptions struct {
	// PublicKey is the PEM-encoded RSA public key tokens are verified against.
	PublicKey string
}

// NewAuthOptions constructs AuthOptions from the application config.
func NewAuthOptions(cfg *config.Config) *AuthOptions {
	return &AuthOptions{PublicKey: cfg.JWT.PublicKey}
}

// NewAuthMiddleware returns a middleware that verifies RS256 bearer tokens
// and stores the token subject as the request's user ID.
func NewAuthMiddleware(opts *AuthOptions) (mux.MiddlewareFunc, error) {
	key, err := jwt.ParseRSAPublicKeyFromPEM([]byte(opts.PublicKey))
	if err != nil {
		return nil, serrors.Wrap(serrors.ErrInternal, err, "could not parse RSA public key")
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			raw := strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer ")
			if raw == "" {
				respondError(ctx, w, serrors.With(serrors.ErrUnauthorized, "missing bearer token"))

				return
			}

			claims := &jwt.RegisteredClaims{}
			if _, err := jwt.ParseWithClaims(raw, claims, func(*jwt.Token) (any, error) {
				return key, nil
			}, jwt.WithValidMethods([]string{jwt.SigningMethodRS256.Alg()})); err != nil {
				respondError(ctx, w, serrors.Wrap(serrors.ErrUnauthorized, err, "invalid bearer token"))

				return
			}

			userID, err := uuid.Parse(claims.Subject)
			if err != nil {
				respondError(ctx, w, serrors.Wrap(serrors.ErrUnauthorized, err, "invalid token subject"))

				return
			}

			ctx = context.WithValue(ctx, userIDKey, domain.UserID(userID))
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}, nil
}

// GetUserIDFromContext returns the authenticated user's ID. It is the zero
// value when the request did not pass the auth middleware.
func GetUserIDFromContext(ctx context.Context) domain.UserID {
	userID, _ := ctx.Value(userIDKey).(domain.UserID)

	return userID
}
