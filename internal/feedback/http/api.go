package http

import (
	"net/http"
	"time"

	"github.com/truefeedback/truefeedback/internal/feedback/domain"
	"github.com/truefeedback/truefeedback/pkg/httpx"
)

// SessionCookieName is the HttpOnly cookie carrying the session token for
// browser clients. API clients use the Authorization header instead.
const SessionCookieName = "tf_session"

// Response is the uniform envelope every API endpoint answers with.
type Response struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}

// AcceptStatusResponse reports the caller's accepting-messages flag.
type AcceptStatusResponse struct {
	Success             bool `json:"success"`
	IsAcceptingMessages bool `json:"isAcceptingMessages"`
}

// UpdateAcceptResponse returns the updated account after a flag change.
type UpdateAcceptResponse struct {
	Success     bool        `json:"success"`
	Message     string      `json:"message"`
	UpdatedUser AccountView `json:"updatedUser"`
}

// MessagesResponse carries the caller's messages, newest first.
type MessagesResponse struct {
	Success  bool          `json:"success"`
	Messages []MessageView `json:"messages"`
}

// SignInResponse carries the issued session token alongside the envelope.
// The same token is also set as an HttpOnly cookie for browser clients.
type SignInResponse struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Token   string      `json:"token"`
	User    AccountView `json:"user"`
}

// AccountView is the externally visible shape of an account. The password
// hash and verification code never leave the service.
type AccountView struct {
	ID                  string `json:"id"`
	Username            string `json:"username"`
	Email               string `json:"email"`
	Verified            bool   `json:"verified"`
	IsAcceptingMessages bool   `json:"isAcceptingMessages"`
}

// MessageView is the externally visible shape of a message.
type MessageView struct {
	ID        string    `json:"id"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"createdAt"`
}

// HealthResponse is returned by the livez/readyz probes.
type HealthResponse struct {
	Status  string        `json:"status"`
	Uptime  string        `json:"uptime"`
	Version string        `json:"version"`
	Checks  *HealthChecks `json:"checks,omitempty"`
}

type HealthChecks struct {
	Database string `json:"database"`
	Signer   string `json:"signer"`
}

func accountView(a domain.Account) AccountView {
	return AccountView{
		ID:                  a.ID,
		Username:            a.Username,
		Email:               a.Email,
		Verified:            a.Verified,
		IsAcceptingMessages: a.AcceptingMessages,
	}
}

func messageViews(msgs []domain.Message) []MessageView {
	views := make([]MessageView, 0, len(msgs))
	for _, m := range msgs {
		views = append(views, MessageView{
			ID:        m.ID,
			Content:   m.Content,
			CreatedAt: m.CreatedAt,
		})
	}
	return views
}

func writeSuccess(w http.ResponseWriter, message string) {
	httpx.WriteJSON(w, http.StatusOK, Response{Success: true, Message: message})
}

func writeError(w http.ResponseWriter, code int, message string) {
	httpx.WriteJSON(w, code, Response{Success: false, Message: message})
}
