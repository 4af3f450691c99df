package sqlite

import (
	"context"
	"time"

	"github.com/truefeedback/truefeedback/internal/feedback/domain"
)

type accountsRepo struct {
	db dbtx
}

const accountColumns = `id, username, email, password_hash, verify_code,
	verify_code_expires_at, verified, accepting_messages, created_at, updated_at`

func (r *accountsRepo) scanAccount(row interface{ Scan(...any) error }) (domain.Account, error) {
	var a domain.Account
	err := row.Scan(
		&a.ID,
		&a.Username,
		&a.Email,
		&a.PasswordHash,
		&a.VerifyCode,
		&a.VerifyCodeExpiresAt,
		&a.Verified,
		&a.AcceptingMessages,
		&a.CreatedAt,
		&a.UpdatedAt,
	)
	if err != nil {
		return domain.Account{}, mapNotFound(err)
	}
	return a, nil
}

func (r *accountsRepo) GetAccountByID(ctx context.Context, id string) (domain.Account, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+accountColumns+` FROM accounts WHERE id = ?`, id)
	return r.scanAccount(row)
}

func (r *accountsRepo) GetAccountByUsername(ctx context.Context, username string) (domain.Account, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+accountColumns+` FROM accounts WHERE username = ?`, username)
	return r.scanAccount(row)
}

func (r *accountsRepo) GetAccountByEmail(ctx context.Context, email string) (domain.Account, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+accountColumns+` FROM accounts WHERE email = ?`, email)
	return r.scanAccount(row)
}

func (r *accountsRepo) CreateAccount(ctx context.Context, a domain.Account) error {
	now := time.Now().UTC()
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO accounts (id, username, email, password_hash, verify_code,
			verify_code_expires_at, verified, accepting_messages, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		a.ID,
		a.Username,
		a.Email,
		a.PasswordHash,
		a.VerifyCode,
		a.VerifyCodeExpiresAt.UTC(),
		a.Verified,
		a.AcceptingMessages,
		now,
		now,
	)
	return mapConstraint(err)
}

func (r *accountsRepo) RefreshPending(
	ctx context.Context,
	accountID, passwordHash, code string,
	expiresAt time.Time,
) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE accounts
		 SET password_hash = ?, verify_code = ?, verify_code_expires_at = ?, updated_at = ?
		 WHERE id = ? AND verified = 0`,
		passwordHash, code, expiresAt.UTC(), time.Now().UTC(), accountID)
	if err != nil {
		return err
	}
	return requireRowAffected(res)
}

func (r *accountsRepo) MarkVerified(ctx context.Context, accountID string) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE accounts SET verified = 1, updated_at = ? WHERE id = ?`,
		time.Now().UTC(), accountID)
	if err != nil {
		return err
	}
	return requireRowAffected(res)
}

func (r *accountsRepo) SetAcceptingMessages(ctx context.Context, accountID string, accepting bool) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE accounts SET accepting_messages = ?, updated_at = ? WHERE id = ?`,
		accepting, time.Now().UTC(), accountID)
	if err != nil {
		return err
	}
	return requireRowAffected(res)
}

func (r *accountsRepo) DeleteAccount(ctx context.Context, accountID string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM accounts WHERE id = ?`, accountID)
	if err != nil {
		return err
	}
	return requireRowAffected(res)
}

func (r *accountsRepo) DeleteExpiredUnverified(ctx context.Context, cutoff time.Time) error {
	_, err := r.db.ExecContext(ctx,
		`DELETE FROM accounts WHERE verified = 0 AND verify_code_expires_at < ?`,
		cutoff.UTC())
	return err
}
