package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/truefeedback/truefeedback/internal/feedback/domain"
	"github.com/truefeedback/truefeedback/internal/feedback/store"
	"github.com/truefeedback/truefeedback/pkg/cryptox"
	"github.com/truefeedback/truefeedback/pkg/jwtx"
)

var (
	ErrInvalidCredentials = errors.New("invalid_credentials")
	ErrNotVerified        = errors.New("not_verified")
)

// SessionService signs users in and issues stateless session tokens.
type SessionService struct {
	Store      store.Store
	KeyManager *jwtx.KeyManager
	Issuer     string
	SessionTTL time.Duration
}

// SignInResult carries the issued token and the account it belongs to.
type SignInResult struct {
	Token   string
	Account domain.Account
}

// SignIn authenticates by username or email plus password and returns a
// signed session token. Unverified accounts cannot sign in; they must finish
// email verification first.
//
// Credential failures and unknown identifiers both map to
// ErrInvalidCredentials so the response doesn't leak which part was wrong.
func (s *SessionService) SignIn(ctx context.Context, identifier, password string) (SignInResult, error) {
	account, err := s.lookup(ctx, identifier)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return SignInResult{}, ErrInvalidCredentials
		}
		return SignInResult{}, err
	}

	if err := cryptox.VerifyPassword(password, account.PasswordHash); err != nil {
		if errors.Is(err, cryptox.ErrPasswordMismatch) {
			return SignInResult{}, ErrInvalidCredentials
		}
		return SignInResult{}, err
	}

	if !account.Verified {
		return SignInResult{}, ErrNotVerified
	}

	claims := jwtx.NewSessionClaims(
		account.ID,
		account.Username,
		account.Verified,
		s.sessionTTL(),
		s.Issuer,
		time.Now().UTC(),
	)

	token, err := s.KeyManager.GetSigner().Sign(claims)
	if err != nil {
		return SignInResult{}, err
	}

	return SignInResult{Token: token, Account: account}, nil
}

// lookup resolves the identifier as an email when it contains '@',
// falling back to username either way.
func (s *SessionService) lookup(ctx context.Context, identifier string) (domain.Account, error) {
	if strings.Contains(identifier, "@") {
		account, err := s.Store.Accounts().GetAccountByEmail(ctx, identifier)
		if err == nil {
			return account, nil
		}
		if !errors.Is(err, store.ErrNotFound) {
			return domain.Account{}, err
		}
	}
	return s.Store.Accounts().GetAccountByUsername(ctx, identifier)
}

func (s *SessionService) sessionTTL() time.Duration {
	if s.SessionTTL <= 0 {
		return jwtx.DefaultSessionTTL
	}
	return s.SessionTTL
}
