package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func newMessageFixture(t *testing.T) (*MessageService, *AccountService, string) {
	t.Helper()

	accounts, mailer := newAccountService(t)
	id := registerVerified(t, accounts, mailer, "alice", "alice@example.com", "secret123")
	return NewMessageService(accounts.Store), accounts, id
}

func TestSubmitAndList(t *testing.T) {
	ctx := context.Background()
	messages, _, id := newMessageFixture(t)

	first, err := messages.Submit(ctx, "alice", "hello there, love the blog")
	require.NoError(t, err)
	require.Equal(t, id, first.AccountID)

	second, err := messages.Submit(ctx, "alice", "a second anonymous note")
	require.NoError(t, err)

	list, err := messages.List(ctx, id)
	require.NoError(t, err)
	require.Len(t, list, 2)

	// Newest first.
	require.Equal(t, second.ID, list[0].ID)
	require.Equal(t, first.ID, list[1].ID)
}

func TestSubmitSanitizesMarkup(t *testing.T) {
	ctx := context.Background()
	messages, _, id := newMessageFixture(t)

	msg, err := messages.Submit(ctx, "alice", `<script>alert(1)</script>nice post, keep writing`)
	require.NoError(t, err)
	require.Equal(t, "nice post, keep writing", msg.Content)

	list, err := messages.List(ctx, id)
	require.NoError(t, err)
	require.Equal(t, "nice post, keep writing", list[0].Content)
}

func TestSubmitRejections(t *testing.T) {
	ctx := context.Background()
	messages, accounts, id := newMessageFixture(t)

	t.Run("unknown recipient", func(t *testing.T) {
		_, err := messages.Submit(ctx, "ghost", "hello there, anyone home?")
		require.ErrorIs(t, err, ErrAccountNotFound)
	})

	t.Run("unverified recipient", func(t *testing.T) {
		_, err := accounts.Register(ctx, "pending", "pending@example.com", "secret123")
		require.NoError(t, err)

		_, err = messages.Submit(ctx, "pending", "hello there, anyone home?")
		require.ErrorIs(t, err, ErrAccountNotFound)
	})

	t.Run("recipient not accepting", func(t *testing.T) {
		require.NoError(t, messages.SetAcceptStatus(ctx, id, false))

		_, err := messages.Submit(ctx, "alice", "hello there, anyone home?")
		require.ErrorIs(t, err, ErrNotAcceptingMessages)

		require.NoError(t, messages.SetAcceptStatus(ctx, id, true))
	})

	t.Run("content too short after sanitization", func(t *testing.T) {
		_, err := messages.Submit(ctx, "alice", "<b><i></i></b> hi ")
		require.ErrorIs(t, err, ErrInvalidContent)
	})
}

func TestDeleteMessage(t *testing.T) {
	ctx := context.Background()
	messages, _, id := newMessageFixture(t)

	msg, err := messages.Submit(ctx, "alice", "hello there, love the blog")
	require.NoError(t, err)

	require.NoError(t, messages.Delete(ctx, id, msg.ID))

	list, err := messages.List(ctx, id)
	require.NoError(t, err)
	require.Empty(t, list)

	// Deleting again is a no-op, not an error.
	require.NoError(t, messages.Delete(ctx, id, msg.ID))
}

func TestAcceptStatus(t *testing.T) {
	ctx := context.Background()
	messages, _, id := newMessageFixture(t)

	accepting, err := messages.AcceptStatus(ctx, id)
	require.NoError(t, err)
	require.True(t, accepting)

	require.NoError(t, messages.SetAcceptStatus(ctx, id, false))

	accepting, err = messages.AcceptStatus(ctx, id)
	require.NoError(t, err)
	require.False(t, accepting)

	require.ErrorIs(t, messages.SetAcceptStatus(ctx, "missing-id", true), ErrAccountNotFound)
}
