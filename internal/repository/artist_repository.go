package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/dkerr/reelcart/internal/model"
)

// ErrArtistNotFound is returned when an artist cannot be found in the DB.
var ErrArtistNotFound = errors.New("artist not found")

// ArtistRepo encapsulates all database queries related to artists.
type ArtistRepo struct {
	db *sql.DB
}

// NewArtistRepo constructs an ArtistRepo with the provided DB handle.
func NewArtistRepo(db *sql.DB) *ArtistRepo {
	return &ArtistRepo{db: db}
}

// Create inserts an artist and populates its ID. A duplicate name is
// reported as ErrDuplicate.
func (r *ArtistRepo) Create(ctx context.Context, a *model.Artist) error {
	const q = `INSERT INTO artists (name, image) VALUES (?, ?)`
	res, err := r.db.ExecContext(ctx, q, a.Name, a.Image)
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
	a.ID = uint64(id)
	return nil
}

// GetByID fetches an artist by id, ErrArtistNotFound when absent.
func (r *ArtistRepo) GetByID(ctx context.Context, id uint64) (*model.Artist, error) {
	const q = `SELECT id, name, image FROM artists WHERE id = ?`
	var a model.Artist
	if err := r.db.QueryRowContext(ctx, q, id).Scan(&a.ID, &a.Name, &a.Image); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrArtistNotFound
		}
		return nil, err
	}
	return &a, nil
}

// ListAll returns every artist ordered by id.
func (r *ArtistRepo) ListAll(ctx context.Context) ([]*model.Artist, error) {
	const q = `SELECT id, name, image FROM artists ORDER BY id`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*model.Artist
	for rows.Next() {
		a := new(model.Artist)
		if err := rows.Scan(&a.ID, &a.Name, &a.Image); err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// Update overwrites every column of the artist row identified by a.ID.
func (r *ArtistRepo) Update(ctx context.Context, a *model.Artist) error {
	const q = `UPDATE artists SET name = ?, image = ? WHERE id = ?`
	if _, err := r.db.ExecContext(ctx, q, a.Name, a.Image, a.ID); err != nil {
		if isDuplicateKey(err) {
			return ErrDuplicate
		}
		return err
	}
	return nil
}

// Delete removes an artist and, through the cascading foreign key, all
// album reviews referencing it. Returns ErrArtistNotFound when no row
// matched.
func (r *ArtistRepo) Delete(ctx context.Context, id uint64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM artists WHERE id = ?`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrArtistNotFound
	}
	return nil
}

// ListReviewedAlbums returns the distinct albums linked to the artist
// through album reviews. The artist detail endpoint embeds them.
func (r *ArtistRepo) ListReviewedAlbums(ctx context.Context, artistID uint64) ([]*model.Album, error) {
	const q = `SELECT DISTINCT al.id, al.name, al.year, al.song, al.cover, al.artist_name
	           FROM albums al
	           JOIN albumreviews ar ON ar.album_id = al.id
	           WHERE ar.artist_id = ?
	           ORDER BY al.id`
	rows, err := r.db.QueryContext(ctx, q, artistID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*model.Album
	for rows.Next() {
		al := new(model.Album)
		var cover sql.NullString
		if err := rows.Scan(&al.ID, &al.Name, &al.Year, &al.Song, &cover, &al.ArtistName); err != nil {
			return nil, err
		}
		al.Cover = cover.String
		out = append(out, al)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
