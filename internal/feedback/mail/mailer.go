// Package mail delivers verification-code emails. The transport is an
// external collaborator: the service only depends on the Mailer interface
// and delivery failures never fail registration.
package mail

import (
	"context"
	"log/slog"
)

// Mailer sends the registration verification code to a new account.
type Mailer interface {
	SendVerificationCode(ctx context.Context, to, username, code string) error
}

// LogMailer writes the code to the log instead of sending anything.
// Used in dev, where there is no mail provider to talk to.
type LogMailer struct {
	Logger *slog.Logger
}

func (m *LogMailer) SendVerificationCode(ctx context.Context, to, username, code string) error {
	m.Logger.Info("verification code issued",
		"to", to,
		"username", username,
		"code", code,
	)
	return nil
}
