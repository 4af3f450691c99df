package http

import "net/http"

type SignOutHandler struct {
	CookieSecure bool
}

// ServeHTTP godoc
//
//	@Summary		Sign Out Endpoint
//	@Description	Clear the session cookie. Sessions are stateless, so the server keeps no record to revoke; header-based clients simply discard their token.
//	@Tags			Account
//	@Produce		json
//	@Success		200	{object}	Response
//	@Router			/api/sign-out [post].
func (h *SignOutHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, clearedSessionCookie(h.CookieSecure))
	writeSuccess(w, "Signed out successfully")
}
