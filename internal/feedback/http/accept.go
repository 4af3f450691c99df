package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/truefeedback/truefeedback/internal/feedback/service"
	"github.com/truefeedback/truefeedback/pkg/httpx"
	"github.com/truefeedback/truefeedback/pkg/slogx"
)

type AcceptMessagesHandler struct {
	AccountService *service.AccountService
	MessageService *service.MessageService
}

type setAcceptRequest struct {
	AcceptMessages bool `json:"acceptMessages"`
}

// HandleGet godoc
//
//	@Summary		Accept Status Endpoint
//	@Description	Return whether the authenticated account currently accepts anonymous messages.
//	@Tags			Messages
//	@Produce		json
//	@Success		200	{object}	AcceptStatusResponse
//	@Failure		401	{object}	Response
//	@Failure		404	{object}	Response	"account no longer exists"
//	@Failure		500	{object}	Response
//	@Security		BearerAuth
//	@Router			/api/accept-messages [get].
func (h *AcceptMessagesHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)
	accountID := httpx.AccountIDFromCtx(ctx)

	accepting, err := h.MessageService.AcceptStatus(ctx, accountID)
	if err != nil {
		if errors.Is(err, service.ErrAccountNotFound) {
			writeError(w, http.StatusNotFound, "User not found")
			return
		}
		log.Error("failed to read accept status", "err", err)
		writeError(w, http.StatusInternalServerError, "Error fetching message acceptance status")
		return
	}

	httpx.WriteJSON(w, http.StatusOK, AcceptStatusResponse{
		Success:             true,
		IsAcceptingMessages: accepting,
	})
}

// HandlePost godoc
//
//	@Summary		Update Accept Status Endpoint
//	@Description	Set the authenticated account's accept-messages flag and return the updated account.
//	@Tags			Messages
//	@Accept			json
//	@Produce		json
//	@Param			request	body		setAcceptRequest	true	"acceptMessages"
//	@Success		200		{object}	UpdateAcceptResponse
//	@Failure		400		{object}	Response
//	@Failure		401		{object}	Response
//	@Failure		404		{object}	Response
//	@Failure		500		{object}	Response
//	@Security		BearerAuth
//	@Router			/api/accept-messages [post].
func (h *AcceptMessagesHandler) HandlePost(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)
	accountID := httpx.AccountIDFromCtx(ctx)

	var req setAcceptRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := h.MessageService.SetAcceptStatus(ctx, accountID, req.AcceptMessages); err != nil {
		if errors.Is(err, service.ErrAccountNotFound) {
			writeError(w, http.StatusNotFound, "User not found")
			return
		}
		log.Error("failed to update accept status", "err", err)
		writeError(w, http.StatusInternalServerError, "Error updating message acceptance status")
		return
	}

	account, err := h.AccountService.Store.Accounts().GetAccountByID(ctx, accountID)
	if err != nil {
		log.Error("failed to reload account", "err", err)
		writeError(w, http.StatusInternalServerError, "Error updating message acceptance status")
		return
	}

	httpx.WriteJSON(w, http.StatusOK, UpdateAcceptResponse{
		Success:     true,
		Message:     "Message acceptance status updated successfully",
		UpdatedUser: accountView(account),
	})
}
