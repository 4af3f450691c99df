package store

import (
	"context"
	"errors"
	"time"

	"github.com/truefeedback/truefeedback/internal/feedback/domain"
)

var (
	ErrNotFound      = errors.New("store: not found")
	ErrAlreadyExists = errors.New("store: already exists")
)

// Store is the root data access interface. Concrete drivers (sqlite for now)
// implement this. It exposes sub-repositories to keep concerns tidy and
// testable, and to stop people accidentally nesting transactions.
type Store interface {
	Accounts() Accounts
	Messages() Messages

	ApplyMigrations() error

	// Tx starts a read/write transaction and returns a Tx-scoped Store.
	// The caller MUST call Commit() or Rollback() on the returned Tx.
	Tx(ctx context.Context) (Tx, error)

	// WithTx executes a function within a transaction.
	// If fn returns an error, the transaction is rolled back.
	// If fn returns nil, the transaction is committed.
	WithTx(ctx context.Context, fn func(tx Tx) error) error

	// Close releases any underlying resources.
	Close() error

	// Ping verifies the database connection is still alive.
	Ping(ctx context.Context) error
}

// Tx is a transactional store. It embeds the same repos but adds Commit/Rollback.
type Tx interface {
	Store
	Commit() error
	Rollback() error
}

type Accounts interface {
	// GetAccountByID returns an account by id.
	GetAccountByID(ctx context.Context, id string) (domain.Account, error)

	// GetAccountByUsername is used during sign-in and message submission.
	GetAccountByUsername(ctx context.Context, username string) (domain.Account, error)

	// GetAccountByEmail is used during sign-in and registration conflict checks.
	GetAccountByEmail(ctx context.Context, email string) (domain.Account, error)

	// CreateAccount inserts a new account (id is provided by app via ULID).
	// Returns ErrAlreadyExists when the username or email is taken.
	CreateAccount(ctx context.Context, a domain.Account) error

	// RefreshPending replaces the credentials and verification code of a
	// still-unverified account, bumping updated_at. Used when someone
	// re-registers over their own stale pending record.
	RefreshPending(ctx context.Context, accountID, passwordHash, code string, expiresAt time.Time) error

	// MarkVerified flips verified=1 and bumps updated_at.
	MarkVerified(ctx context.Context, accountID string) error

	// SetAcceptingMessages persists the accepting flag and bumps updated_at.
	SetAcceptingMessages(ctx context.Context, accountID string, accepting bool) error

	// DeleteAccount cascades to messages (per schema).
	DeleteAccount(ctx context.Context, accountID string) error

	// DeleteExpiredUnverified removes unverified accounts whose code expired
	// before the cutoff. Housekeeping, frees squatted usernames.
	DeleteExpiredUnverified(ctx context.Context, cutoff time.Time) error
}

type Messages interface {
	// CreateMessage appends a message to an account.
	CreateMessage(ctx context.Context, m domain.Message) error

	// ListMessagesByAccount returns an account's messages newest first.
	ListMessagesByAccount(ctx context.Context, accountID string) ([]domain.Message, error)

	// DeleteMessage removes one message scoped to its owner. Returns
	// ErrNotFound when no such message exists for that account.
	DeleteMessage(ctx context.Context, accountID, messageID string) error
}
