package service

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/truefeedback/truefeedback/internal/feedback/store"
)

func TestHousekeepingReclaimsStaleRegistrations(t *testing.T) {
	ctx := context.Background()
	accounts, mailer := newAccountService(t)

	registerVerified(t, accounts, mailer, "alice", "alice@example.com", "secret123")

	stale, err := accounts.Register(ctx, "squatter", "squatter@example.com", "secret123")
	require.NoError(t, err)

	fresh, err := accounts.Register(ctx, "pending", "pending@example.com", "secret123")
	require.NoError(t, err)

	// Push the stale registration's expiry well past the retention window.
	rec, err := accounts.Store.Accounts().GetAccountByID(ctx, stale.AccountID)
	require.NoError(t, err)
	old := time.Now().UTC().Add(-DefaultPendingRetention - time.Hour)
	require.NoError(t, accounts.Store.Accounts().RefreshPending(ctx, stale.AccountID, rec.PasswordHash, rec.VerifyCode, old))

	hk := NewHousekeepingService(accounts.Store, slog.New(slog.DiscardHandler), time.Hour, 0)
	hk.cleanup()

	_, err = accounts.Store.Accounts().GetAccountByID(ctx, stale.AccountID)
	require.ErrorIs(t, err, store.ErrNotFound)

	// Verified and still-fresh pending accounts survive.
	_, err = accounts.Store.Accounts().GetAccountByUsername(ctx, "alice")
	require.NoError(t, err)
	_, err = accounts.Store.Accounts().GetAccountByID(ctx, fresh.AccountID)
	require.NoError(t, err)
}

func TestHousekeepingStartStop(t *testing.T) {
	accounts, _ := newAccountService(t)

	hk := NewHousekeepingService(accounts.Store, slog.New(slog.DiscardHandler), time.Hour, time.Hour)
	hk.Start()
	hk.Stop()
}
