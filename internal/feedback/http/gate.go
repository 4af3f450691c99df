package http

import (
	"net/http"
	"strings"

	"github.com/truefeedback/truefeedback/pkg/httpx"
	"github.com/truefeedback/truefeedback/pkg/jwtx"
)

// AccessGate filters page requests by session state: signed-in visitors are
// bounced off the entry pages onto the dashboard, and anonymous visitors are
// bounced off the dashboard onto sign-in. API routes are not gated; they
// answer 401 JSON instead of redirecting.
//
// The gate makes no data-store access; an invalid or expired token is
// treated identically to no token at all.
type AccessGate struct {
	Verifier jwtx.Verifier
}

const (
	dashboardPath = "/dashboard"
	signInPath    = "/sign-in"
)

// entryPath reports whether the path is one a signed-in visitor has no
// business on: landing, sign-in, sign-up, and the verify pages.
func entryPath(path string) bool {
	return path == "/" ||
		path == signInPath ||
		path == "/sign-up" ||
		path == "/verify" ||
		strings.HasPrefix(path, "/verify/")
}

func protectedPath(path string) bool {
	return path == dashboardPath || strings.HasPrefix(path, dashboardPath+"/")
}

// Wrap applies the gate in front of a page handler.
func (g *AccessGate) Wrap(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, authenticated := httpx.SessionClaims(r, g.Verifier, SessionCookieName)

		switch {
		case authenticated && entryPath(r.URL.Path):
			http.Redirect(w, r, dashboardPath, http.StatusSeeOther)
		case !authenticated && protectedPath(r.URL.Path):
			http.Redirect(w, r, signInPath, http.StatusSeeOther)
		default:
			next.ServeHTTP(w, r)
		}
	})
}
