package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/dkerr/reelcart/internal/model"
)

// ErrAlbumNotFound is returned when an album cannot be found in the DB.
var ErrAlbumNotFound = errors.New("album not found")

// AlbumRepo encapsulates all database queries related to albums.
type AlbumRepo struct {
	db *sql.DB
}

// NewAlbumRepo constructs an AlbumRepo with the provided DB handle.
func NewAlbumRepo(db *sql.DB) *AlbumRepo {
	return &AlbumRepo{db: db}
}

// Create inserts an album and populates its ID. A duplicate name is
// reported as ErrDuplicate.
func (r *AlbumRepo) Create(ctx context.Context, a *model.Album) error {
	const q = `INSERT INTO albums (name, year, song, cover, artist_name) VALUES (?, ?, ?, ?, ?)`
	res, err := r.db.ExecContext(ctx, q, a.Name, a.Year, a.Song, a.Cover, a.ArtistName)
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

// GetByID fetches an album by id, ErrAlbumNotFound when absent.
func (r *AlbumRepo) GetByID(ctx context.Context, id uint64) (*model.Album, error) {
	const q = `SELECT id, name, year, song, cover, artist_name FROM albums WHERE id = ?`
	var a model.Album
	var cover sql.NullString
	if err := r.db.QueryRowContext(ctx, q, id).Scan(&a.ID, &a.Name, &a.Year, &a.Song, &cover, &a.ArtistName); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrAlbumNotFound
		}
		return nil, err
	}
	a.Cover = cover.String
	return &a, nil
}

// ListAll returns every album ordered by id.
func (r *AlbumRepo) ListAll(ctx context.Context) ([]*model.Album, error) {
	const q = `SELECT id, name, year, song, cover, artist_name FROM albums ORDER BY id`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*model.Album
	for rows.Next() {
		a := new(model.Album)
		var cover sql.NullString
		if err := rows.Scan(&a.ID, &a.Name, &a.Year, &a.Song, &cover, &a.ArtistName); err != nil {
			return nil, err
		}
		a.Cover = cover.String
		out = append(out, a)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// Update overwrites every column of the album row identified by a.ID.
func (r *AlbumRepo) Update(ctx context.Context, a *model.Album) error {
	const q = `UPDATE albums SET name = ?, year = ?, song = ?, cover = ?, artist_name = ? WHERE id = ?`
	if _, err := r.db.ExecContext(ctx, q, a.Name, a.Year, a.Song, a.Cover, a.ArtistName, a.ID); err != nil {
		if isDuplicateKey(err) {
			return ErrDuplicate
		}
		return err
	}
	return nil
}

// Delete removes an album and its album reviews (cascading foreign key).
// Returns ErrAlbumNotFound when no row matched.
func (r *AlbumRepo) Delete(ctx context.Context, id uint64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM albums WHERE id = ?`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrAlbumNotFound
	}
	return nil
}

// ListReviewingArtists returns the distinct artists linked to the album
// through album reviews. The album detail endpoint embeds them.
func (r *AlbumRepo) ListReviewingArtists(ctx context.Context, albumID uint64) ([]*model.Artist, error) {
	const q = `SELECT DISTINCT a.id, a.name, a.image
	           FROM artists a
	           JOIN albumreviews ar ON ar.artist_id = a.id
	           WHERE ar.album_id = ?
	           ORDER BY a.id`
	rows, err := r.db.QueryContext(ctx, q, albumID)
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
