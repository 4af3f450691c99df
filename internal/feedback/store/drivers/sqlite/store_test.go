package sqlite

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/truefeedback/truefeedback/internal/feedback/domain"
	"github.com/truefeedback/truefeedback/internal/feedback/store"
	"github.com/truefeedback/truefeedback/pkg/idx"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()

	st, err := NewStore(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })

	require.NoError(t, st.ApplyMigrations())
	return st
}

func testAccount(username, email string) domain.Account {
	now := time.Now().UTC()
	return domain.Account{
		ID:                  idx.New().String(),
		Username:            username,
		Email:               email,
		PasswordHash:        "hash",
		VerifyCode:          "123456",
		VerifyCodeExpiresAt: now.Add(time.Hour),
		AcceptingMessages:   true,
		CreatedAt:           now,
		UpdatedAt:           now,
	}
}

func TestAccountUniqueConstraints(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)

	a := testAccount("alice", "alice@example.com")
	require.NoError(t, st.Accounts().CreateAccount(ctx, a))

	dupUsername := testAccount("alice", "other@example.com")
	require.ErrorIs(t, st.Accounts().CreateAccount(ctx, dupUsername), store.ErrAlreadyExists)

	dupEmail := testAccount("bob", "alice@example.com")
	require.ErrorIs(t, st.Accounts().CreateAccount(ctx, dupEmail), store.ErrAlreadyExists)
}

func TestAccountLookupsAndMutations(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)

	a := testAccount("alice", "alice@example.com")
	require.NoError(t, st.Accounts().CreateAccount(ctx, a))

	byID, err := st.Accounts().GetAccountByID(ctx, a.ID)
	require.NoError(t, err)
	require.Equal(t, "alice", byID.Username)
	require.False(t, byID.Verified)

	byName, err := st.Accounts().GetAccountByUsername(ctx, "alice")
	require.NoError(t, err)
	require.Equal(t, a.ID, byName.ID)

	byEmail, err := st.Accounts().GetAccountByEmail(ctx, "alice@example.com")
	require.NoError(t, err)
	require.Equal(t, a.ID, byEmail.ID)

	_, err = st.Accounts().GetAccountByUsername(ctx, "ghost")
	require.ErrorIs(t, err, store.ErrNotFound)

	require.NoError(t, st.Accounts().MarkVerified(ctx, a.ID))
	byID, err = st.Accounts().GetAccountByID(ctx, a.ID)
	require.NoError(t, err)
	require.True(t, byID.Verified)

	require.NoError(t, st.Accounts().SetAcceptingMessages(ctx, a.ID, false))
	byID, err = st.Accounts().GetAccountByID(ctx, a.ID)
	require.NoError(t, err)
	require.False(t, byID.AcceptingMessages)

	require.ErrorIs(t, st.Accounts().MarkVerified(ctx, "missing"), store.ErrNotFound)
	require.ErrorIs(t, st.Accounts().SetAcceptingMessages(ctx, "missing", true), store.ErrNotFound)
}

func TestRefreshPendingOnlyTouchesUnverified(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)

	a := testAccount("alice", "alice@example.com")
	require.NoError(t, st.Accounts().CreateAccount(ctx, a))

	expiry := time.Now().UTC().Add(30 * time.Minute)
	require.NoError(t, st.Accounts().RefreshPending(ctx, a.ID, "newhash", "654321", expiry))

	got, err := st.Accounts().GetAccountByID(ctx, a.ID)
	require.NoError(t, err)
	require.Equal(t, "newhash", got.PasswordHash)
	require.Equal(t, "654321", got.VerifyCode)

	require.NoError(t, st.Accounts().MarkVerified(ctx, a.ID))
	require.ErrorIs(t,
		st.Accounts().RefreshPending(ctx, a.ID, "h", "c", expiry),
		store.ErrNotFound)
}

func TestDeleteExpiredUnverified(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)

	stale := testAccount("stale", "stale@example.com")
	stale.VerifyCodeExpiresAt = time.Now().UTC().Add(-48 * time.Hour)
	require.NoError(t, st.Accounts().CreateAccount(ctx, stale))

	fresh := testAccount("fresh", "fresh@example.com")
	require.NoError(t, st.Accounts().CreateAccount(ctx, fresh))

	verified := testAccount("done", "done@example.com")
	verified.VerifyCodeExpiresAt = time.Now().UTC().Add(-48 * time.Hour)
	require.NoError(t, st.Accounts().CreateAccount(ctx, verified))
	require.NoError(t, st.Accounts().MarkVerified(ctx, verified.ID))

	cutoff := time.Now().UTC().Add(-24 * time.Hour)
	require.NoError(t, st.Accounts().DeleteExpiredUnverified(ctx, cutoff))

	_, err := st.Accounts().GetAccountByID(ctx, stale.ID)
	require.ErrorIs(t, err, store.ErrNotFound)
	_, err = st.Accounts().GetAccountByID(ctx, fresh.ID)
	require.NoError(t, err)
	_, err = st.Accounts().GetAccountByID(ctx, verified.ID)
	require.NoError(t, err)
}

func TestMessagesOrderingAndScoping(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)

	alice := testAccount("alice", "alice@example.com")
	bob := testAccount("bob", "bob@example.com")
	require.NoError(t, st.Accounts().CreateAccount(ctx, alice))
	require.NoError(t, st.Accounts().CreateAccount(ctx, bob))

	base := time.Now().UTC().Add(-time.Hour)
	for i, content := range []string{"first", "second", "third"} {
		require.NoError(t, st.Messages().CreateMessage(ctx, domain.Message{
			ID:        idx.New().String(),
			AccountID: alice.ID,
			Content:   content,
			CreatedAt: base.Add(time.Duration(i) * time.Minute),
		}))
	}
	require.NoError(t, st.Messages().CreateMessage(ctx, domain.Message{
		ID:        idx.New().String(),
		AccountID: bob.ID,
		Content:   "for bob",
		CreatedAt: base,
	}))

	list, err := st.Messages().ListMessagesByAccount(ctx, alice.ID)
	require.NoError(t, err)
	require.Len(t, list, 3)
	require.Equal(t, "third", list[0].Content)
	require.Equal(t, "second", list[1].Content)
	require.Equal(t, "first", list[2].Content)

	bobList, err := st.Messages().ListMessagesByAccount(ctx, bob.ID)
	require.NoError(t, err)
	require.Len(t, bobList, 1)

	// Delete scoped to the owner: alice's id under bob's account is a miss.
	require.ErrorIs(t,
		st.Messages().DeleteMessage(ctx, bob.ID, list[0].ID),
		store.ErrNotFound)

	require.NoError(t, st.Messages().DeleteMessage(ctx, alice.ID, list[0].ID))
	list, err = st.Messages().ListMessagesByAccount(ctx, alice.ID)
	require.NoError(t, err)
	require.Len(t, list, 2)
}

func TestDeleteAccountCascadesToMessages(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)

	alice := testAccount("alice", "alice@example.com")
	require.NoError(t, st.Accounts().CreateAccount(ctx, alice))
	require.NoError(t, st.Messages().CreateMessage(ctx, domain.Message{
		ID:        idx.New().String(),
		AccountID: alice.ID,
		Content:   "soon gone",
		CreatedAt: time.Now().UTC(),
	}))

	require.NoError(t, st.Accounts().DeleteAccount(ctx, alice.ID))

	list, err := st.Messages().ListMessagesByAccount(ctx, alice.ID)
	require.NoError(t, err)
	require.Empty(t, list)
}

func TestWithTxRollsBackOnError(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)

	boom := context.Canceled
	err := st.WithTx(ctx, func(tx store.Tx) error {
		if err := tx.Accounts().CreateAccount(ctx, testAccount("alice", "alice@example.com")); err != nil {
			return err
		}
		return boom
	})
	require.ErrorIs(t, err, boom)

	_, err = st.Accounts().GetAccountByUsername(ctx, "alice")
	require.ErrorIs(t, err, store.ErrNotFound)
}

func TestWithTxCommits(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)

	err := st.WithTx(ctx, func(tx store.Tx) error {
		return tx.Accounts().CreateAccount(ctx, testAccount("alice", "alice@example.com"))
	})
	require.NoError(t, err)

	_, err = st.Accounts().GetAccountByUsername(ctx, "alice")
	require.NoError(t, err)
}
