package model

// Review links one Movie and one User and carries the review payload.
// It is the association row behind the derived "users who reviewed this
// movie" and "movies this user reviewed" views.
//
// Fields:
//  ID      – primary key identifier.
//  Rating  – integer score between 1 and 10 inclusive.
//  Text    – free-text comment, may be empty.
//  MovieID – foreign key into movies.id.
//  UserID  – foreign key into users.id.
type Review struct {
	ID      uint64 // reviews.id
	Rating  int    // reviews.rating
	Text    string // reviews.text
	MovieID uint64 // reviews.movie_id
	UserID  uint64 // reviews.user_id
}

// Validate enforces the rating bound and requires both foreign keys.
func (r *Review) Validate() error {
	if r.Rating < 1 || r.Rating > 10 {
		return invalid("rating", "must be a number between 1 and 10")
	}
	if r.MovieID == 0 {
		return invalid("movie_id", "must reference a movie")
	}
	if r.UserID == 0 {
		return invalid("user_id", "must reference a user")
	}
	return nil
}
