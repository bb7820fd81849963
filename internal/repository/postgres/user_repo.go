package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"athletrack/backend/internal/domain"
	"athletrack/backend/internal/repository"
)

const userColumns = `id, email, password_hash, first_name, last_name, date_joined`

type userRepository struct {
	pool *pgxpool.Pool
}

// NewUserRepository creates a user repository backed by PostgreSQL.
func NewUserRepository(pool *pgxpool.Pool) repository.UserRepository {
	return &userRepository{pool: pool}
}

func (r *userRepository) Create(ctx context.Context, user *domain.User) (int64, error) {
	const query = `INSERT INTO users (email, password_hash, first_name, last_name, date_joined)
        VALUES ($1, $2, $3, $4, $5) RETURNING id`

	err := r.pool.QueryRow(ctx, query,
		user.Email, user.PasswordHash, user.FirstName, user.LastName, user.DateJoined,
	).Scan(&user.ID)
	if err != nil {
		return 0, translateError(err)
	}
	return user.ID, nil
}

func (r *userRepository) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	return r.getOne(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id)
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.getOne(ctx, `SELECT `+userColumns+` FROM users WHERE LOWER(email) = LOWER($1)`, email)
}

func (r *userRepository) getOne(ctx context.Context, query string, arg any) (*domain.User, error) {
	var u domain.User
	err := r.pool.QueryRow(ctx, query, arg).Scan(
		&u.ID, &u.Email, &u.PasswordHash, &u.FirstName, &u.LastName, &u.DateJoined,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &u, nil
}

func (r *userRepository) UpdateProfile(ctx context.Context, id int64, firstName, lastName string) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE users SET first_name = $2, last_name = $3 WHERE id = $1`,
		id, firstName, lastName,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}
