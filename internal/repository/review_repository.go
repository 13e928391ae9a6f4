package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/dkerr/reelcart/internal/model"
)

// ErrReviewNotFound is returned when a review cannot be found in the DB.
var ErrReviewNotFound = errors.New("review not found")

// ReviewRepo encapsulates all database queries related to movie reviews.
type ReviewRepo struct {
	db *sql.DB
}

// NewReviewRepo constructs a ReviewRepo with the provided DB handle.
func NewReviewRepo(db *sql.DB) *ReviewRepo {
	return &ReviewRepo{db: db}
}

// Create inserts a review and populates its ID. The referenced movie and
// user must exist; a missing foreign key surfaces as a driver error that
// the handler reports as a generic bad request.
func (r *ReviewRepo) Create(ctx context.Context, rv *model.Review) error {
	const q = `INSERT INTO reviews (rating, text, movie_id, user_id) VALUES (?, ?, ?, ?)`
	res, err := r.db.ExecContext(ctx, q, rv.Rating, rv.Text, rv.MovieID, rv.UserID)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	rv.ID = uint64(id)
	return nil
}

// GetByID fetches a review by id, ErrReviewNotFound when absent.
func (r *ReviewRepo) GetByID(ctx context.Context, id uint64) (*model.Review, error) {
	const q = `SELECT id, rating, text, movie_id, user_id FROM reviews WHERE id = ?`
	var rv model.Review
	if err := r.db.QueryRowContext(ctx, q, id).Scan(&rv.ID, &rv.Rating, &rv.Text, &rv.MovieID, &rv.UserID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrReviewNotFound
		}
		return nil, err
	}
	return &rv, nil
}

// ListAll returns every review ordered by id.
func (r *ReviewRepo) ListAll(ctx context.Context) ([]*model.Review, error) {
	return r.list(ctx, `SELECT id, rating, text, movie_id, user_id FROM reviews ORDER BY id`)
}

// ListByMovie returns the reviews attached to one movie.
func (r *ReviewRepo) ListByMovie(ctx context.Context, movieID uint64) ([]*model.Review, error) {
	return r.list(ctx, `SELECT id, rating, text, movie_id, user_id FROM reviews WHERE movie_id = ? ORDER BY id`, movieID)
}

// ListByUser returns the reviews written by one user.
func (r *ReviewRepo) ListByUser(ctx context.Context, userID uint64) ([]*model.Review, error) {
	return r.list(ctx, `SELECT id, rating, text, movie_id, user_id FROM reviews WHERE user_id = ? ORDER BY id`, userID)
}

func (r *ReviewRepo) list(ctx context.Context, q string, args ...any) ([]*model.Review, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*model.Review
	for rows.Next() {
		rv := new(model.Review)
		if err := rows.Scan(&rv.ID, &rv.Rating, &rv.Text, &rv.MovieID, &rv.UserID); err != nil {
			return nil, err
		}
		out = append(out, rv)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// Update overwrites every column of the review row identified by rv.ID.
func (r *ReviewRepo) Update(ctx context.Context, rv *model.Review) error {
	const q = `UPDATE reviews SET rating = ?, text = ?, movie_id = ?, user_id = ? WHERE id = ?`
	_, err := r.db.ExecContext(ctx, q, rv.Rating, rv.Text, rv.MovieID, rv.UserID, rv.ID)
	return err
}

// Delete removes a review. Returns ErrReviewNotFound when no row matched.
func (r *ReviewRepo) Delete(ctx context.Context, id uint64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM reviews WHERE id = ?`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrReviewNotFound
	}
	return nil
}
