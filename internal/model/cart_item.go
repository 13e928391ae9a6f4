package model

// CartItem is the join row meaning "this user has this movie in their
// cart".  It carries no payload beyond the two foreign keys.
type CartItem struct {
	ID      uint64 // cart_items.id
	MovieID uint64 // cart_items.movie_id
	UserID  uint64 // cart_items.user_id
}

// Validate requires both foreign keys to be set.
func (ci *CartItem) Validate() error {
	if ci.MovieID == 0 {
		return invalid("movie_id", "must reference a movie")
	}
	if ci.UserID == 0 {
		return invalid("user_id", "must reference a user")
	}
	return nil
}
