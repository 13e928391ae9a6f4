package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/dkerr/reelcart/internal/model"
)

// ErrCartItemNotFound is returned when a cart item cannot be found in the DB.
var ErrCartItemNotFound = errors.New("cart item not found")

// CartItemRepo encapsulates all database queries related to cart items.
type CartItemRepo struct {
	db *sql.DB
}

// NewCartItemRepo constructs a CartItemRepo with the provided DB handle.
func NewCartItemRepo(db *sql.DB) *CartItemRepo {
	return &CartItemRepo{db: db}
}

// Create inserts a cart item and populates its ID.
func (r *CartItemRepo) Create(ctx context.Context, ci *model.CartItem) error {
	const q = `INSERT INTO cart_items (movie_id, user_id) VALUES (?, ?)`
	res, err := r.db.ExecContext(ctx, q, ci.MovieID, ci.UserID)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	ci.ID = uint64(id)
	return nil
}

// GetByID fetches a cart item by id, ErrCartItemNotFound when absent.
func (r *CartItemRepo) GetByID(ctx context.Context, id uint64) (*model.CartItem, error) {
	const q = `SELECT id, movie_id, user_id FROM cart_items WHERE id = ?`
	var ci model.CartItem
	if err := r.db.QueryRowContext(ctx, q, id).Scan(&ci.ID, &ci.MovieID, &ci.UserID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrCartItemNotFound
		}
		return nil, err
	}
	return &ci, nil
}

// ListAll returns every cart item in the system. Only administrators see
// this view.
func (r *CartItemRepo) ListAll(ctx context.Context) ([]*model.CartItem, error) {
	return r.list(ctx, `SELECT id, movie_id, user_id FROM cart_items ORDER BY id`)
}

// ListByUser returns one user's cart. Adding the same movie twice is
// allowed and yields two rows.
func (r *CartItemRepo) ListByUser(ctx context.Context, userID uint64) ([]*model.CartItem, error) {
	return r.list(ctx, `SELECT id, movie_id, user_id FROM cart_items WHERE user_id = ? ORDER BY id`, userID)
}

// ListByMovie returns the cart items referencing one movie.
func (r *CartItemRepo) ListByMovie(ctx context.Context, movieID uint64) ([]*model.CartItem, error) {
	return r.list(ctx, `SELECT id, movie_id, user_id FROM cart_items WHERE movie_id = ? ORDER BY id`, movieID)
}

func (r *CartItemRepo) list(ctx context.Context, q string, args ...any) ([]*model.CartItem, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*model.CartItem
	for rows.Next() {
		ci := new(model.CartItem)
		if err := rows.Scan(&ci.ID, &ci.MovieID, &ci.UserID); err != nil {
			return nil, err
		}
		out = append(out, ci)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// Delete removes a cart item. Returns ErrCartItemNotFound when no row
// matched.
func (r *CartItemRepo) Delete(ctx context.Context, id uint64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM cart_items WHERE id = ?`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrCartItemNotFound
	}
	return nil
}
