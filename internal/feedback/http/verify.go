package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/truefeedback/truefeedback/internal/feedback/service"
	"github.com/truefeedback/truefeedback/internal/feedback/validate"
	"github.com/truefeedback/truefeedback/pkg/slogx"
)

type VerifyCodeHandler struct {
	AccountService *service.AccountService
}

type verifyCodeRequest struct {
	Username string `json:"username"`
	Code     string `json:"code"`
}

// ServeHTTP godoc
//
//	@Summary		Verify Code Endpoint
//	@Description	Redeem the emailed verification code. Expiry is checked independently of correctness, so an expired-but-correct code reports as expired.
//	@Tags			Account
//	@Accept			json
//	@Produce		json
//	@Param			request	body		verifyCodeRequest	true	"username, code"
//	@Success		200		{object}	Response
//	@Failure		400		{object}	Response	"expired or wrong code"
//	@Failure		404		{object}	Response	"unknown user"
//	@Failure		500		{object}	Response
//	@Router			/api/verify-code [post].
func (h *VerifyCodeHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req verifyCodeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if errs := validate.Code(req.Code); !errs.OK() {
		writeError(w, http.StatusBadRequest, errs.Message())
		return
	}

	if err := h.AccountService.VerifyCode(ctx, req.Username, req.Code); err != nil {
		switch {
		case errors.Is(err, service.ErrAccountNotFound):
			writeError(w, http.StatusNotFound, "User not found")
		case errors.Is(err, service.ErrCodeExpired):
			writeError(w, http.StatusBadRequest, "Verification code has expired. Please sign up again to get a new code")
		case errors.Is(err, service.ErrCodeMismatch):
			writeError(w, http.StatusBadRequest, "Incorrect verification code")
		default:
			log.Error("verification failed", "err", err)
			writeError(w, http.StatusInternalServerError, "Error verifying user")
		}
		return
	}

	writeSuccess(w, "Account verified successfully")
}
