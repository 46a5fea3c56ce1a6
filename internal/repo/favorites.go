package repo

import (
	"context"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Favorites provides access to the fav_schools table.
type Favorites struct {
	pool *pgxpool.Pool
}

// NewFavorites creates the repository.
func NewFavorites(pool *pgxpool.Pool) *Favorites {
	return &Favorites{pool: pool}
}

// AddFavorite stores a school for the user. Re-adding the same school is a no-op.
func (r *Favorites) AddFavorite(ctx context.Context, userID int64, schoolName string) error {
	const query = `
        INSERT INTO fav_schools (user_id, school_name)
        VALUES ($1, $2)
        ON CONFLICT (user_id, school_name) DO NOTHING
    `
	_, err := r.pool.Exec(ctx, query, userID, strings.TrimSpace(schoolName))
	return err
}

// ListFavorites returns the user's saved schools.
func (r *Favorites) ListFavorites(ctx context.Context, userID int64) ([]FavoriteSchool, error) {
	const query = `
        SELECT school_name
        FROM fav_schools
        WHERE user_id = $1
        ORDER BY school_name
    `

	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	favorites := []FavoriteSchool{}
	for rows.Next() {
		var f FavoriteSchool
		if err := rows.Scan(&f.SchoolName); err != nil {
			return nil, err
		}
		favorites = append(favorites, f)
	}
	return favorites, rows.Err()
}
