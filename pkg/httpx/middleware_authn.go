package httpx

import (
	"context"
	"net/http"
	"strings"

	"github.com/truefeedback/truefeedback/pkg/jwtx"
	"github.com/truefeedback/truefeedback/pkg/slogx"
)

// AuthnMiddleware verifies the session token on a request and injects the
// resolved identity into the request context. The token is read from the
// Authorization header (Bearer) first, then from the named cookie — API
// clients send the header, the browser frontend relies on the cookie.
//
// Handlers behind this middleware receive an explicit identity via context;
// an invalid or expired token is treated identically to a missing one.
func AuthnMiddleware(v jwtx.Verifier, cookieName string) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			log := slogx.FromContext(ctx)

			raw := bearerToken(r)
			if raw == "" && cookieName != "" {
				if c, err := r.Cookie(cookieName); err == nil {
					raw = c.Value
				}
			}
			if raw == "" {
				writeNotAuthenticated(w)
				return
			}

			claims, err := v.Verify(raw)
			if err != nil {
				log.Warn("session verify failed", "err", err)
				writeNotAuthenticated(w)
				return
			}

			if err := claims.ValidateExpiry(); err != nil {
				writeNotAuthenticated(w)
				return
			}

			ctx = contextWithIdentity(ctx, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// SessionClaims resolves the session token on a request without enforcing it.
// Returns the zero Claims and false when no valid token is present.
func SessionClaims(r *http.Request, v jwtx.Verifier, cookieName string) (jwtx.Claims, bool) {
	raw := bearerToken(r)
	if raw == "" && cookieName != "" {
		if c, err := r.Cookie(cookieName); err == nil {
			raw = c.Value
		}
	}
	if raw == "" {
		return jwtx.Claims{}, false
	}

	claims, err := v.Verify(raw)
	if err != nil || claims.ValidateExpiry() != nil {
		return jwtx.Claims{}, false
	}
	return claims, true
}

func bearerToken(r *http.Request) string {
	authz := r.Header.Get("Authorization")
	if authz == "" || !strings.HasPrefix(authz, "Bearer ") {
		return ""
	}
	return strings.TrimSpace(strings.TrimPrefix(authz, "Bearer"))
}

func contextWithIdentity(ctx context.Context, c jwtx.Claims) context.Context {
	ctx = context.WithValue(ctx, CtxKeyAccountID, c.Subject)
	ctx = context.WithValue(ctx, CtxKeyUsername, c.Username)
	ctx = context.WithValue(ctx, CtxKeyClaims, c)
	return ctx
}

func writeNotAuthenticated(w http.ResponseWriter) {
	WriteJSON(w, http.StatusUnauthorized, map[string]any{
		"success": false,
		"message": "Not Authenticated",
	})
}
