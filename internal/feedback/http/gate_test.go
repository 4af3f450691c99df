package http

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestAccessGateRedirects(t *testing.T) {
	f := newFixture(t)

	f.signUpVerified(t, "alice", "alice@example.com", "secret123")
	token := f.signIn(t, "alice", "secret123")

	get := func(path, cookie string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		if cookie != "" {
			req.AddCookie(&http.Cookie{Name: SessionCookieName, Value: cookie})
		}
		rec := httptest.NewRecorder()
		f.router.ServeHTTP(rec, req)
		return rec
	}

	t.Run("signed-in visitor bounced off entry pages", func(t *testing.T) {
		for _, path := range []string{"/", "/sign-in", "/sign-up", "/verify/alice"} {
			rec := get(path, token)
			require.Equal(t, http.StatusSeeOther, rec.Code, "path %s", path)
			require.Equal(t, "/dashboard", rec.Header().Get("Location"), "path %s", path)
		}
	})

	t.Run("anonymous visitor bounced off dashboard", func(t *testing.T) {
		for _, path := range []string{"/dashboard", "/dashboard/settings"} {
			rec := get(path, "")
			require.Equal(t, http.StatusSeeOther, rec.Code, "path %s", path)
			require.Equal(t, "/sign-in", rec.Header().Get("Location"), "path %s", path)
		}
	})

	t.Run("anonymous visitor allowed on entry pages", func(t *testing.T) {
		for _, path := range []string{"/", "/sign-in", "/sign-up", "/verify/alice"} {
			rec := get(path, "")
			require.Equal(t, http.StatusOK, rec.Code, "path %s", path)
		}
	})

	t.Run("signed-in visitor allowed on dashboard", func(t *testing.T) {
		rec := get("/dashboard", token)
		require.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("garbage token treated as no token", func(t *testing.T) {
		rec := get("/dashboard", "not-a-jwt")
		require.Equal(t, http.StatusSeeOther, rec.Code)
		require.Equal(t, "/sign-in", rec.Header().Get("Location"))

		rec = get("/sign-in", "not-a-jwt")
		require.Equal(t, http.StatusOK, rec.Code)
	})
}
