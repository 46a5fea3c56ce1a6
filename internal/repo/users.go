package repo

import (
	"context"
	"errors"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Users provides access to the users table.
type Users struct {
	pool *pgxpool.Pool
}

// NewUsers creates the repository.
func NewUsers(pool *pgxpool.Pool) *Users {
	return &Users{pool: pool}
}

// CreateUserInput carries the fields collected at signup.
type CreateUserInput struct {
	Username  string
	Email     string
	Password  string
	Name      string
	Mobile    string
	Residence string
}

// CreateUser inserts a new account. Unique violations on username or email
// are mapped to ErrUsernameTaken / ErrEmailTaken.
func (r *Users) CreateUser(ctx context.Context, input CreateUserInput) (User, error) {
	const query = `
        INSERT INTO users (username, email, password, name, mobile, residence)
        VALUES ($1, $2, $3, $4, $5, $6)
        RETURNING id, username, email, password, name, mobile, residence, created_at
    `

	row := r.pool.QueryRow(ctx, query,
		strings.TrimSpace(input.Username),
		strings.TrimSpace(input.Email),
		input.Password,
		strings.TrimSpace(input.Name),
		strings.TrimSpace(input.Mobile),
		strings.TrimSpace(input.Residence),
	)

	user, err := scanUser(row)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			if strings.Contains(pgErr.ConstraintName, "email") {
				return User{}, ErrEmailTaken
			}
			return User{}, ErrUsernameTaken
		}
		return User{}, err
	}
	return user, nil
}

// GetUserByUsername fetches an account by exact username match.
func (r *Users) GetUserByUsername(ctx context.Context, username string) (User, error) {
	const query = `
        SELECT id, username, email, password, name, mobile, residence, created_at
        FROM users
        WHERE username = $1
    `

	user, err := scanUser(r.pool.QueryRow(ctx, query, username))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return User{}, ErrNotFound
		}
		return User{}, err
	}
	return user, nil
}

func scanUser(row pgx.Row) (User, error) {
	var u User
	err := row.Scan(&u.ID, &u.Username, &u.Email, &u.Password, &u.Name, &u.Mobile, &u.Residence, &u.CreatedAt)
	return u, err
}
