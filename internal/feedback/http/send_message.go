package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/truefeedback/truefeedback/internal/feedback/service"
	"github.com/truefeedback/truefeedback/pkg/slogx"
)

type SendMessageHandler struct {
	MessageService *service.MessageService
}

type sendMessageRequest struct {
	Username string `json:"username"`
	Content  string `json:"content"`
}

// ServeHTTP godoc
//
//	@Summary		Send Message Endpoint
//	@Description	Submit an anonymous message to the named account. The recipient must exist, be verified, and currently accept messages. Content is sanitized to plain text before storage.
//	@Tags			Messages
//	@Accept			json
//	@Produce		json
//	@Param			request	body		sendMessageRequest	true	"username, content"
//	@Success		200		{object}	Response
//	@Failure		400		{object}	Response	"content too short or too long"
//	@Failure		403		{object}	Response	"recipient not accepting messages"
//	@Failure		404		{object}	Response	"unknown recipient"
//	@Failure		500		{object}	Response
//	@Router			/api/send-message [post].
func (h *SendMessageHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req sendMessageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if _, err := h.MessageService.Submit(ctx, req.Username, req.Content); err != nil {
		switch {
		case errors.Is(err, service.ErrAccountNotFound):
			writeError(w, http.StatusNotFound, "User not found")
		case errors.Is(err, service.ErrNotAcceptingMessages):
			writeError(w, http.StatusForbidden, "User is not accepting messages")
		case errors.Is(err, service.ErrInvalidContent):
			writeError(w, http.StatusBadRequest, "Content must be between 10 and 300 characters")
		default:
			log.Error("failed to store message", "err", err)
			writeError(w, http.StatusInternalServerError, "Error sending message")
		}
		return
	}

	writeSuccess(w, "Message sent successfully")
}
