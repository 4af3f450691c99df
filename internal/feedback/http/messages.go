package http

import (
	"net/http"

	"github.com/truefeedback/truefeedback/internal/feedback/service"
	"github.com/truefeedback/truefeedback/pkg/httpx"
	"github.com/truefeedback/truefeedback/pkg/slogx"
)

type MessagesHandler struct {
	MessageService *service.MessageService
}

// HandleList godoc
//
//	@Summary		List Messages Endpoint
//	@Description	Return the authenticated account's messages, newest first. Only the caller's own messages are ever returned.
//	@Tags			Messages
//	@Produce		json
//	@Success		200	{object}	MessagesResponse
//	@Failure		401	{object}	Response
//	@Failure		500	{object}	Response
//	@Security		BearerAuth
//	@Router			/api/get-messages [get].
func (h *MessagesHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)
	accountID := httpx.AccountIDFromCtx(ctx)

	msgs, err := h.MessageService.List(ctx, accountID)
	if err != nil {
		log.Error("failed to list messages", "err", err)
		writeError(w, http.StatusInternalServerError, "Error fetching messages")
		return
	}

	httpx.WriteJSON(w, http.StatusOK, MessagesResponse{
		Success:  true,
		Messages: messageViews(msgs),
	})
}

// HandleDelete godoc
//
//	@Summary		Delete Message Endpoint
//	@Description	Delete one of the authenticated account's messages. Deleting an id that is already gone still reports success; another account's messages are never touched.
//	@Tags			Messages
//	@Produce		json
//	@Param			id	path		string	true	"message id"
//	@Success		200	{object}	Response
//	@Failure		401	{object}	Response
//	@Failure		500	{object}	Response
//	@Security		BearerAuth
//	@Router			/api/delete-message/{id} [delete].
func (h *MessagesHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)
	accountID := httpx.AccountIDFromCtx(ctx)
	messageID := r.PathValue("id")

	if err := h.MessageService.Delete(ctx, accountID, messageID); err != nil {
		log.Error("failed to delete message", "err", err)
		writeError(w, http.StatusInternalServerError, "Error deleting message")
		return
	}

	writeSuccess(w, "Message deleted")
}
