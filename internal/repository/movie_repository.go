// This file defines the repository for movies: CRUD plus the derived
// reviewer lookup used by the movie detail endpoint. Deleting a movie
// relies on ON DELETE CASCADE foreign keys to remove dependent reviews
// and cart items in the same statement.
package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/dkerr/reelcart/internal/model"
)

// ErrMovieNotFound is returned when a movie cannot be found in the DB.
var ErrMovieNotFound = errors.New("movie not found")

// MovieRepo encapsulates all database queries related to movies.
type MovieRepo struct {
	db *sql.DB // db is the underlying database connection pool
}

// NewMovieRepo constructs a MovieRepo with the provided DB handle.
func NewMovieRepo(db *sql.DB) *MovieRepo {
	return &MovieRepo{db: db}
}

// Create inserts a new movie. On success the movie's ID field is populated
// with the auto-generated value. A unique-name violation is reported as
// ErrDuplicate.
func (r *MovieRepo) Create(ctx context.Context, m *model.Movie) error {
	const q = `INSERT INTO movies (name, image, year, director, description, price)
	           VALUES (?, ?, ?, ?, ?, ?)`
	res, err := r.db.ExecContext(ctx, q, m.Name, m.Image, m.Year, m.Director, m.Description, m.Price)
	if err != nil {
		if isDuplicateKey(err) {
			return ErrDuplicate
		}
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	m.ID = uint64(id)
	return nil
}

// GetByID fetches a movie by its ID. It returns ErrMovieNotFound if no
// row matches.
func (r *MovieRepo) GetByID(ctx context.Context, id uint64) (*model.Movie, error) {
	const q = `SELECT id, name, image, year, director, description, price
	           FROM movies WHERE id = ?`
	var m model.Movie
	if err := r.db.QueryRowContext(ctx, q, id).Scan(
		&m.ID, &m.Name, &m.Image, &m.Year, &m.Director, &m.Description, &m.Price); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrMovieNotFound
		}
		return nil, err
	}
	return &m, nil
}

// ListAll returns every movie ordered by id. The API exposes no
// pagination; the whole table is the response.
func (r *MovieRepo) ListAll(ctx context.Context) ([]*model.Movie, error) {
	const q = `SELECT id, name, image, year, director, description, price
	           FROM movies ORDER BY id`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*model.Movie
	for rows.Next() {
		m := new(model.Movie)
		if err := rows.Scan(&m.ID, &m.Name, &m.Image, &m.Year, &m.Director, &m.Description, &m.Price); err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// Update overwrites every column of the movie row identified by m.ID.
// Callers fetch the row first, apply the patch to that copy, validate it,
// and only then call Update, so a failed patch never reaches the store.
func (r *MovieRepo) Update(ctx context.Context, m *model.Movie) error {
	const q = `UPDATE movies
	           SET name = ?, image = ?, year = ?, director = ?, description = ?, price = ?
	           WHERE id = ?`
	if _, err := r.db.ExecContext(ctx, q, m.Name, m.Image, m.Year, m.Director, m.Description, m.Price, m.ID); err != nil {
		if isDuplicateKey(err) {
			return ErrDuplicate
		}
		return err
	}
	return nil
}

// Delete removes a movie; dependent reviews and cart items go with it via
// the schema's cascading foreign keys. Returns ErrMovieNotFound when no
// row was deleted.
func (r *MovieRepo) Delete(ctx context.Context, id uint64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM movies WHERE id = ?`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrMovieNotFound
	}
	return nil
}

// ListReviewers returns the distinct users who reviewed the given movie.
// Only id and username are selected; the detail endpoint embeds them as
// bare references.
func (r *MovieRepo) ListReviewers(ctx context.Context, movieID uint64) ([]*model.User, error) {
	const q = `SELECT DISTINCT u.id, u.username
	           FROM users u
	           JOIN reviews rv ON rv.user_id = u.id
	           WHERE rv.movie_id = ?
	           ORDER BY u.id`
	rows, err := r.db.QueryContext(ctx, q, movieID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*model.User
	for rows.Next() {
		u := new(model.User)
		if err := rows.Scan(&u.ID, &u.Username); err != nil {
			return nil, err
		}
		out = append(out, u)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
