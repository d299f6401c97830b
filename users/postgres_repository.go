package users

import (
	"context"
	"database/sql"
	"encoding/json"

	"github.com/pkg/errors"
)

// PostgresRepository persists profiles in a relational table. The embedded
// achievements and codes arrays are stored as JSONB so the document shape the
// handlers work with survives round trips unchanged.
type PostgresRepository struct {
	db *sql.DB
}

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

var _ Repo = (*PostgresRepository)(nil)

// EnsureSchema creates the users table if it does not exist yet.
func (r *PostgresRepository) EnsureSchema(ctx context.Context) error {
	query := `
		CREATE TABLE IF NOT EXISTS users (
			id           text PRIMARY KEY,
			name         text NOT NULL,
			level        int NOT NULL DEFAULT 1,
			xp           int NOT NULL DEFAULT 0,
			streak       int NOT NULL DEFAULT 0,
			achievements jsonb NOT NULL DEFAULT '[]',
			photo        text NOT NULL DEFAULT '',
			codes        jsonb NOT NULL DEFAULT '[]',
			created_at   text NOT NULL,
			updated_at   text NOT NULL
		)`

	if _, err := r.db.ExecContext(ctx, query); err != nil {
		return errors.Wrap(err, "[PostgresRepository.EnsureSchema] users")
	}
	return nil
}

func (r *PostgresRepository) Upsert(ctx context.Context, user *User) error {
	achievements, codes, err := marshalEmbedded(user)
	if err != nil {
		return errors.Wrap(err, "[PostgresRepository.Upsert]")
	}

	query := `
		INSERT INTO users (id, name, level, xp, streak, achievements, photo, codes, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		ON CONFLICT (id) DO UPDATE SET
			name = EXCLUDED.name,
			level = EXCLUDED.level,
			xp = EXCLUDED.xp,
			streak = EXCLUDED.streak,
			achievements = EXCLUDED.achievements,
			photo = EXCLUDED.photo,
			codes = EXCLUDED.codes,
			updated_at = EXCLUDED.updated_at`

	_, err = r.db.ExecContext(ctx, query,
		user.ID, user.Name, user.Level, user.XP, user.Streak,
		achievements, user.Photo, codes, user.CreatedAt, user.UpdatedAt)
	if err != nil {
		return errors.Wrap(err, "[PostgresRepository.Upsert] upsert user")
	}
	return nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*User, error) {
	query := `
		SELECT id, name, level, xp, streak, achievements, photo, codes, created_at, updated_at
		FROM users WHERE id = $1`

	user, err := scanUser(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, NotFoundErr
		}
		return nil, errors.Wrap(err, "[PostgresRepository.GetByID]")
	}
	return user, nil
}

func (r *PostgresRepository) List(ctx context.Context) ([]*User, error) {
	query := `
		SELECT id, name, level, xp, streak, achievements, photo, codes, created_at, updated_at
		FROM users ORDER BY id`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, errors.Wrap(err, "[PostgresRepository.List] query users")
	}
	defer rows.Close()

	userList := make([]*User, 0)
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, errors.Wrap(err, "[PostgresRepository.List]")
		}
		userList = append(userList, user)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "[PostgresRepository.List] rows")
	}
	return userList, nil
}

func (r *PostgresRepository) Update(ctx context.Context, id string, update Update) (*User, error) {
	// Read-modify-write keeps the partial-update semantics in one place
	// (User.Apply) instead of duplicating them in SQL.
	user, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	user.Apply(update)
	if err := r.Upsert(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (r *PostgresRepository) Delete(ctx context.Context, id string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM users WHERE id = $1`, id); err != nil {
		return errors.Wrap(err, "[PostgresRepository.Delete] delete user")
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanUser(row rowScanner) (*User, error) {
	user := &User{}
	var achievements, codes []byte

	err := row.Scan(&user.ID, &user.Name, &user.Level, &user.XP, &user.Streak,
		&achievements, &user.Photo, &codes, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal(achievements, &user.Achievements); err != nil {
		return nil, errors.Wrap(err, "unmarshal achievements")
	}
	if err := json.Unmarshal(codes, &user.Codes); err != nil {
		return nil, errors.Wrap(err, "unmarshal codes")
	}
	return user, nil
}

func marshalEmbedded(user *User) ([]byte, []byte, error) {
	if user.Achievements == nil {
		user.Achievements = []string{}
	}
	if user.Codes == nil {
		user.Codes = []Code{}
	}

	achievements, err := json.Marshal(user.Achievements)
	if err != nil {
		return nil, nil, errors.Wrap(err, "marshal achievements")
	}
	codes, err := json.Marshal(user.Codes)
	if err != nil {
		return nil, nil, errors.Wrap(err, "marshal codes")
	}
	return achievements, codes, nil
}
