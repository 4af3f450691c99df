package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/microcosm-cc/bluemonday"

	"github.com/truefeedback/truefeedback/internal/feedback/domain"
	"github.com/truefeedback/truefeedback/internal/feedback/store"
	"github.com/truefeedback/truefeedback/internal/feedback/validate"
	"github.com/truefeedback/truefeedback/pkg/idx"
)

var (
	ErrNotAcceptingMessages = errors.New("not_accepting_messages")
	ErrInvalidContent       = errors.New("invalid_content")
)

// MessageService handles anonymous message submission and the owner-side
// inbox operations (list, delete, accept-messages toggle).
type MessageService struct {
	Store store.Store

	sanitizer *bluemonday.Policy
}

// NewMessageService builds the service with a strict sanitization policy:
// submitted content is plain text, all markup is stripped before storage.
func NewMessageService(st store.Store) *MessageService {
	return &MessageService{
		Store:     st,
		sanitizer: bluemonday.StrictPolicy(),
	}
}

// Submit stores an anonymous message for the named account. The recipient
// must exist, be verified, and currently accept messages. Content is
// sanitized to plain text and length-checked after sanitization.
func (s *MessageService) Submit(ctx context.Context, username, content string) (domain.Message, error) {
	account, err := s.Store.Accounts().GetAccountByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.Message{}, ErrAccountNotFound
		}
		return domain.Message{}, err
	}

	// Pending registrations aren't visible recipients.
	if !account.Verified {
		return domain.Message{}, ErrAccountNotFound
	}

	if !account.AcceptingMessages {
		return domain.Message{}, ErrNotAcceptingMessages
	}

	clean := strings.TrimSpace(s.sanitizer.Sanitize(content))
	if !validate.Content(clean).OK() {
		return domain.Message{}, ErrInvalidContent
	}

	msg := domain.Message{
		ID:        idx.New().String(),
		AccountID: account.ID,
		Content:   clean,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.Store.Messages().CreateMessage(ctx, msg); err != nil {
		return domain.Message{}, err
	}
	return msg, nil
}

// List returns the account's messages, newest first.
func (s *MessageService) List(ctx context.Context, accountID string) ([]domain.Message, error) {
	return s.Store.Messages().ListMessagesByAccount(ctx, accountID)
}

// Delete removes one of the account's messages. Deleting a message that is
// already gone is not an error; the end state is the same.
func (s *MessageService) Delete(ctx context.Context, accountID, messageID string) error {
	err := s.Store.Messages().DeleteMessage(ctx, accountID, messageID)
	if errors.Is(err, store.ErrNotFound) {
		return nil
	}
	return err
}

// AcceptStatus reports whether the account currently accepts messages.
func (s *MessageService) AcceptStatus(ctx context.Context, accountID string) (bool, error) {
	account, err := s.Store.Accounts().GetAccountByID(ctx, accountID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return false, ErrAccountNotFound
		}
		return false, err
	}
	return account.AcceptingMessages, nil
}

// SetAcceptStatus persists the accept-messages flag for the account.
func (s *MessageService) SetAcceptStatus(ctx context.Context, accountID string, accepting bool) error {
	err := s.Store.Accounts().SetAcceptingMessages(ctx, accountID, accepting)
	if errors.Is(err, store.ErrNotFound) {
		return ErrAccountNotFound
	}
	return err
}
