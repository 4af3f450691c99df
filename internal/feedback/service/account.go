package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/truefeedback/truefeedback/internal/feedback/domain"
	"github.com/truefeedback/truefeedback/internal/feedback/mail"
	"github.com/truefeedback/truefeedback/internal/feedback/store"
	"github.com/truefeedback/truefeedback/pkg/cryptox"
	"github.com/truefeedback/truefeedback/pkg/idx"
)

// DefaultCodeTTL is how long a verification code stays valid.
const DefaultCodeTTL = time.Hour

var (
	ErrUsernameTaken   = errors.New("username_taken")
	ErrEmailTaken      = errors.New("email_taken")
	ErrAccountNotFound = errors.New("account_not_found")
	ErrCodeExpired     = errors.New("code_expired")
	ErrCodeMismatch    = errors.New("code_mismatch")
)

// AccountService owns registration, email verification, and the username
// availability check.
type AccountService struct {
	Store   store.Store
	Mailer  mail.Mailer
	Logger  *slog.Logger
	CodeTTL time.Duration
}

// RegisterResult reports the outcome of a registration attempt.
type RegisterResult struct {
	AccountID string
	// Refreshed is true when an existing unverified registration for the
	// same email was overwritten instead of a new account being created.
	Refreshed bool
}

// Register creates a new unverified account and emails it a verification
// code. A verified account already holding the username or email blocks the
// attempt; an unverified one holding the email gets its credentials and code
// refreshed so the original registrant can retry.
//
// Mail delivery is best-effort: a send failure is logged but does not fail
// the registration, since the code can be re-issued by registering again.
func (s *AccountService) Register(ctx context.Context, username, email, password string) (RegisterResult, error) {
	code, err := cryptox.GenerateVerificationCode(cryptox.VerificationCodeLength)
	if err != nil {
		return RegisterResult{}, err
	}

	hash, err := cryptox.HashPassword(password)
	if err != nil {
		return RegisterResult{}, err
	}

	now := time.Now().UTC()
	expiresAt := now.Add(s.codeTTL())

	var result RegisterResult
	err = s.Store.WithTx(ctx, func(tx store.Tx) error {
		byUsername, err := tx.Accounts().GetAccountByUsername(ctx, username)
		switch {
		case err == nil:
			if byUsername.Verified {
				return ErrUsernameTaken
			}
		case !errors.Is(err, store.ErrNotFound):
			return err
		}

		byEmail, err := tx.Accounts().GetAccountByEmail(ctx, email)
		switch {
		case err == nil:
			if byEmail.Verified {
				return ErrEmailTaken
			}
			// The unverified holder of this email must also be the holder of
			// the requested username, otherwise refreshing would silently
			// rename someone else's pending registration.
			if byEmail.Username != username {
				if !byUsername.Verified && byUsername.ID != "" {
					return ErrUsernameTaken
				}
				return ErrEmailTaken
			}
			if err := tx.Accounts().RefreshPending(ctx, byEmail.ID, hash, code, expiresAt); err != nil {
				return err
			}
			result = RegisterResult{AccountID: byEmail.ID, Refreshed: true}
			return nil
		case !errors.Is(err, store.ErrNotFound):
			return err
		}

		// Username may still be squatted by an unverified account tied to a
		// different email. Clear it so the new registrant can proceed.
		if byUsername.ID != "" {
			if err := tx.Accounts().DeleteAccount(ctx, byUsername.ID); err != nil {
				return err
			}
		}

		account := domain.Account{
			ID:                  idx.New().String(),
			Username:            username,
			Email:               email,
			PasswordHash:        hash,
			VerifyCode:          code,
			VerifyCodeExpiresAt: expiresAt,
			Verified:            false,
			AcceptingMessages:   true,
			CreatedAt:           now,
			UpdatedAt:           now,
		}
		if err := tx.Accounts().CreateAccount(ctx, account); err != nil {
			if errors.Is(err, store.ErrAlreadyExists) {
				return ErrUsernameTaken
			}
			return err
		}
		result = RegisterResult{AccountID: account.ID}
		return nil
	})
	if err != nil {
		return RegisterResult{}, err
	}

	if err := s.Mailer.SendVerificationCode(ctx, email, username, code); err != nil {
		s.Logger.Warn("verification email delivery failed",
			"username", username,
			"error", err,
		)
	}

	return result, nil
}

// VerifyCode checks the submitted code against the stored one and marks the
// account verified. Expiry is checked before the code itself so an expired
// code reports as expired even when the digits match.
func (s *AccountService) VerifyCode(ctx context.Context, username, code string) error {
	account, err := s.Store.Accounts().GetAccountByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrAccountNotFound
		}
		return err
	}

	if time.Now().UTC().After(account.VerifyCodeExpiresAt) {
		return ErrCodeExpired
	}

	if !cryptox.CompareCodes(account.VerifyCode, code) {
		return ErrCodeMismatch
	}

	return s.Store.Accounts().MarkVerified(ctx, account.ID)
}

// CheckUsernameUnique reports whether a username is free to register.
// Unverified squatters don't count: registration knows how to displace them.
func (s *AccountService) CheckUsernameUnique(ctx context.Context, username string) (bool, error) {
	account, err := s.Store.Accounts().GetAccountByUsername(ctx, username)
	if errors.Is(err, store.ErrNotFound) {
		return true, nil
	}
	if err != nil {
		return false, err
	}
	return !account.Verified, nil
}

func (s *AccountService) codeTTL() time.Duration {
	if s.CodeTTL <= 0 {
		return DefaultCodeTTL
	}
	return s.CodeTTL
}
