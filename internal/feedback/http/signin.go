package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/truefeedback/truefeedback/internal/feedback/service"
	"github.com/truefeedback/truefeedback/pkg/httpx"
	"github.com/truefeedback/truefeedback/pkg/slogx"
)

type SignInHandler struct {
	SessionService *service.SessionService
	CookieSecure   bool
}

type signInRequest struct {
	Identifier string `json:"identifier"`
	Password   string `json:"password"`
}

// ServeHTTP godoc
//
//	@Summary		Sign In Endpoint
//	@Description	Authenticate by username or email plus password. Returns a session token and sets it as an HttpOnly cookie for browser clients.
//	@Tags			Account
//	@Accept			json
//	@Produce		json
//	@Param			request	body		signInRequest	true	"identifier (username or email), password"
//	@Success		200		{object}	SignInResponse
//	@Failure		400		{object}	Response
//	@Failure		401		{object}	Response	"bad credentials"
//	@Failure		403		{object}	Response	"account not verified"
//	@Failure		500		{object}	Response
//	@Router			/api/sign-in [post].
func (h *SignInHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req signInRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Identifier == "" || req.Password == "" {
		writeError(w, http.StatusBadRequest, "Identifier and password are required")
		return
	}

	res, err := h.SessionService.SignIn(ctx, req.Identifier, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidCredentials):
			// Deliberately generic: don't reveal which field was wrong.
			writeError(w, http.StatusUnauthorized, "Incorrect username or password")
		case errors.Is(err, service.ErrNotVerified):
			writeError(w, http.StatusForbidden, "Please verify your account before signing in")
		default:
			log.Error("sign-in failed", "err", err)
			writeError(w, http.StatusInternalServerError, "Error signing in")
		}
		return
	}

	http.SetCookie(w, sessionCookie(res.Token, h.SessionService.SessionTTL, h.CookieSecure))

	httpx.WriteJSON(w, http.StatusOK, SignInResponse{
		Success: true,
		Message: "Signed in successfully",
		Token:   res.Token,
		User:    accountView(res.Account),
	})
}

func sessionCookie(token string, ttl time.Duration, secure bool) *http.Cookie {
	return &http.Cookie{
		Name:     SessionCookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(ttl.Seconds()),
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	}
}

// clearedSessionCookie expires the session cookie immediately.
func clearedSessionCookie(secure bool) *http.Cookie {
	return &http.Cookie{
		Name:     SessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	}
}
