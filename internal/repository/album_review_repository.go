package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/dkerr/reelcart/internal/model"
)

// ErrAlbumReviewNotFound is returned when an album review cannot be found.
var ErrAlbumReviewNotFound = errors.New("album review not found")

// AlbumReviewRepo encapsulates all database queries related to album
// reviews, the join rows between artists and albums.
type AlbumReviewRepo struct {
	db *sql.DB
}

// NewAlbumReviewRepo constructs an AlbumReviewRepo with the provided DB handle.
func NewAlbumReviewRepo(db *sql.DB) *AlbumReviewRepo {
	return &AlbumReviewRepo{db: db}
}

// Create inserts an album review and populates its ID.
func (r *AlbumReviewRepo) Create(ctx context.Context, ar *model.AlbumReview) error {
	const q = `INSERT INTO albumreviews (rating, text, artist_id, album_id) VALUES (?, ?, ?, ?)`
	res, err := r.db.ExecContext(ctx, q, ar.Rating, ar.Text, ar.ArtistID, ar.AlbumID)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	ar.ID = uint64(id)
	return nil
}

// GetByID fetches an album review by id, ErrAlbumReviewNotFound when absent.
func (r *AlbumReviewRepo) GetByID(ctx context.Context, id uint64) (*model.AlbumReview, error) {
	const q = `SELECT id, rating, text, artist_id, album_id FROM albumreviews WHERE id = ?`
	var ar model.AlbumReview
	if err := r.db.QueryRowContext(ctx, q, id).Scan(&ar.ID, &ar.Rating, &ar.Text, &ar.ArtistID, &ar.AlbumID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrAlbumReviewNotFound
		}
		return nil, err
	}
	return &ar, nil
}

// ListAll returns every album review ordered by id.
func (r *AlbumReviewRepo) ListAll(ctx context.Context) ([]*model.AlbumReview, error) {
	const q = `SELECT id, rating, text, artist_id, album_id FROM albumreviews ORDER BY id`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*model.AlbumReview
	for rows.Next() {
		ar := new(model.AlbumReview)
		if err := rows.Scan(&ar.ID, &ar.Rating, &ar.Text, &ar.ArtistID, &ar.AlbumID); err != nil {
			return nil, err
		}
		out = append(out, ar)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// Update overwrites every column of the album review row identified by ar.ID.
func (r *AlbumReviewRepo) Update(ctx context.Context, ar *model.AlbumReview) error {
	const q = `UPDATE albumreviews SET rating = ?, text = ?, artist_id = ?, album_id = ? WHERE id = ?`
	_, err := r.db.ExecContext(ctx, q, ar.Rating, ar.Text, ar.ArtistID, ar.AlbumID, ar.ID)
	return err
}

// Delete removes an album review. Returns ErrAlbumReviewNotFound when no
// row matched.
func (r *AlbumReviewRepo) Delete(ctx context.Context, id uint64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM albumreviews WHERE id = ?`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrAlbumReviewNotFound
	}
	return nil
}
