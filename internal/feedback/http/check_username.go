package http

import (
	"net/http"

	"github.com/truefeedback/truefeedback/internal/feedback/service"
	"github.com/truefeedback/truefeedback/internal/feedback/validate"
	"github.com/truefeedback/truefeedback/pkg/slogx"
)

type CheckUsernameHandler struct {
	AccountService *service.AccountService
}

// ServeHTTP godoc
//
//	@Summary		Username Availability Endpoint
//	@Description	Report whether a username is free to register. A name held only by an unverified registration counts as available; the unique constraint at registration time is the authoritative check.
//	@Tags			Account
//	@Produce		json
//	@Param			username	query		string	true	"username to check"
//	@Success		200			{object}	Response
//	@Failure		400			{object}	Response
//	@Failure		500			{object}	Response
//	@Router			/api/check-username-unique [get].
func (h *CheckUsernameHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)
	username := r.URL.Query().Get("username")

	if errs := validate.Username(username); !errs.OK() {
		writeError(w, http.StatusBadRequest, errs.Message())
		return
	}

	unique, err := h.AccountService.CheckUsernameUnique(ctx, username)
	if err != nil {
		log.Error("failed to check username", "err", err)
		writeError(w, http.StatusInternalServerError, "Error checking username")
		return
	}

	if !unique {
		writeError(w, http.StatusConflict, "Username is already taken")
		return
	}
	writeSuccess(w, "Username is unique")
}
