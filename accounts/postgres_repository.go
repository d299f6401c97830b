package accounts

import (
	"context"
	"database/sql"
	"encoding/json"

	"github.com/pkg/errors"
)

// PostgresRepository persists accounts in a relational table, with the
// notifications array kept as a JSONB document to mirror the embedded shape
// the handlers work with.
type PostgresRepository struct {
	db *sql.DB
}

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

var _ Repo = (*PostgresRepository)(nil)

// EnsureSchema creates the accounts table if it does not exist yet.
func (r *PostgresRepository) EnsureSchema(ctx context.Context) error {
	query := `
		CREATE TABLE IF NOT EXISTS accounts (
			id            text PRIMARY KEY,
			email         text NOT NULL UNIQUE,
			password_hash text NOT NULL,
			notifications jsonb NOT NULL DEFAULT '[]'
		)`

	if _, err := r.db.ExecContext(ctx, query); err != nil {
		return errors.Wrap(err, "[PostgresRepository.EnsureSchema] accounts")
	}
	return nil
}

func (r *PostgresRepository) Create(ctx context.Context, account *Account) error {
	notifications, err := json.Marshal(notificationsOrEmpty(account.Notifications))
	if err != nil {
		return errors.Wrap(err, "[PostgresRepository.Create] marshal notifications")
	}

	query := `
		INSERT INTO accounts (id, email, password_hash, notifications)
		VALUES ($1, $2, $3, $4)`

	if _, err := r.db.ExecContext(ctx, query, account.ID, account.Email, account.PasswordHash, notifications); err != nil {
		return errors.Wrap(err, "[PostgresRepository.Create] insert account")
	}
	return nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*Account, error) {
	query := `SELECT id, email, password_hash, notifications FROM accounts WHERE id = $1`
	return r.scanAccount(r.db.QueryRowContext(ctx, query, id))
}

func (r *PostgresRepository) GetByEmail(ctx context.Context, email string) (*Account, error) {
	query := `SELECT id, email, password_hash, notifications FROM accounts WHERE email = $1`
	return r.scanAccount(r.db.QueryRowContext(ctx, query, email))
}

func (r *PostgresRepository) UpdateNotifications(ctx context.Context, id string, notifications []Notification) error {
	payload, err := json.Marshal(notificationsOrEmpty(notifications))
	if err != nil {
		return errors.Wrap(err, "[PostgresRepository.UpdateNotifications] marshal notifications")
	}

	result, err := r.db.ExecContext(ctx, `UPDATE accounts SET notifications = $2 WHERE id = $1`, id, payload)
	if err != nil {
		return errors.Wrap(err, "[PostgresRepository.UpdateNotifications] update account")
	}
	if rows, err := result.RowsAffected(); err == nil && rows == 0 {
		return NotFoundErr
	}
	return nil
}

func (r *PostgresRepository) Delete(ctx context.Context, id string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM accounts WHERE id = $1`, id); err != nil {
		return errors.Wrap(err, "[PostgresRepository.Delete] delete account")
	}
	return nil
}

func (r *PostgresRepository) scanAccount(row *sql.Row) (*Account, error) {
	account := &Account{}
	var notifications []byte

	err := row.Scan(&account.ID, &account.Email, &account.PasswordHash, &notifications)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, NotFoundErr
		}
		return nil, errors.Wrap(err, "[PostgresRepository.scanAccount] scan")
	}

	if err := json.Unmarshal(notifications, &account.Notifications); err != nil {
		return nil, errors.Wrap(err, "[PostgresRepository.scanAccount] unmarshal notifications")
	}
	return account, nil
}

func notificationsOrEmpty(notifications []Notification) []Notification {
	if notifications == nil {
		return []Notification{}
	}
	return notifications
}
