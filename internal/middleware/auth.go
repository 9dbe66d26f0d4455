package middleware

import (
	"net/http"
	"strings"

	"storefront/internal/httpx"
	"storefront/internal/logger"
	"storefront/internal/user"
	"storefront/internal/utils"

	"go.uber.org/zap"
)

const AccessTokenCookie = "access_token"

// TokenParser resolves a bearer token to the user it was issued for.
type TokenParser interface {
	ParseToken(token string) (*user.SessionUser, error)
}

// ExtractAccessToken reads the token from the access_token cookie, falling
// back to the Authorization header.
func ExtractAccessToken(r *http.Request) string {
	if cookie, err := r.Cookie(AccessTokenCookie); err == nil && cookie.Value != "" {
		return cookie.Value
	}

	authHeader := r.Header.Get("Authorization")
	if strings.HasPrefix(authHeader, "Bearer ") {
		return strings.TrimPrefix(authHeader, "Bearer ")
	}

	return ""
}

// Auth puts the token's user into the request context. Requests without a
// token pass through anonymously; a token that does not verify is rejected.
func Auth(tokens TokenParser) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tokenStr := ExtractAccessToken(r)
			if tokenStr == "" {
				next.ServeHTTP(w, r)
				return
			}

			u, err := tokens.ParseToken(tokenStr)
			if err != nil {
				logger.FromCtx(r.Context()).Info("rejected access token", zap.Error(err))
				httpx.Unauthorized(w, "invalid or expired token")
				return
			}

			ctx := utils.SetUserContext(r.Context(), u.ID, u.Username, string(u.Role))
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireUser answers 401 unless an earlier middleware identified the user.
func RequireUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := utils.GetUserIDFromContext(r.Context()); !ok {
			httpx.Unauthorized(w, "authentication required")
			return
		}
		next.ServeHTTP(w, r)
	})
}
