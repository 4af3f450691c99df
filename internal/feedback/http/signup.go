package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/truefeedback/truefeedback/internal/feedback/service"
	"github.com/truefeedback/truefeedback/internal/feedback/validate"
	"github.com/truefeedback/truefeedback/pkg/slogx"
)

type SignUpHandler struct {
	AccountService *service.AccountService
}

type signUpRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// ServeHTTP godoc
//
//	@Summary		Register Endpoint
//	@Description	Register a new account. A 6-digit verification code is emailed to the address; the account stays unverified until the code is redeemed.
//	@Tags			Account
//	@Accept			json
//	@Produce		json
//	@Param			request	body		signUpRequest	true	"username, email, password"
//	@Success		200		{object}	Response
//	@Failure		400		{object}	Response	"validation failure"
//	@Failure		409		{object}	Response	"username or email taken"
//	@Failure		500		{object}	Response
//	@Router			/api/sign-up [post].
func (h *SignUpHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req signUpRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if errs := validate.SignUp(req.Username, req.Email, req.Password); !errs.OK() {
		writeError(w, http.StatusBadRequest, errs.Message())
		return
	}

	_, err := h.AccountService.Register(ctx, req.Username, req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrUsernameTaken):
			writeError(w, http.StatusConflict, "Username is already taken")
		case errors.Is(err, service.ErrEmailTaken):
			writeError(w, http.StatusConflict, "User already exists with this email")
		default:
			log.Error("registration failed", "err", err)
			writeError(w, http.StatusInternalServerError, "Error registering user")
		}
		return
	}

	writeSuccess(w, "User registered successfully. Please verify your email")
}
