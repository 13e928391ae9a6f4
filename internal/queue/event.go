// Package queue defines message payloads exchanged over the message broker.
package queue

// Activity kinds published by the API. Downstream consumers can log,
// notify, or feed analytics without querying the primary database.
const (
	KindUserSignedUp  = "user.signed_up"
	KindReviewPosted  = "review.posted"
	KindCartItemAdded = "cart_item.added"
)

// ActivityEvent is published for notable store activity: a signup, a new
// movie review, a movie added to a cart. Fields irrelevant to a kind are
// left zero and omitted from the wire form.
type ActivityEvent struct {
	Kind       string `json:"kind"`
	UserID     uint64 `json:"user_id,omitempty"`
	Username   string `json:"username,omitempty"`
	MovieID    uint64 `json:"movie_id,omitempty"`
	MovieName  string `json:"movie_name,omitempty"`
	ReviewID   uint64 `json:"review_id,omitempty"`
	Rating     int    `json:"rating,omitempty"`
	CartItemID uint64 `json:"cart_item_id,omitempty"`
	OccurredAt string `json:"occurred_at"`
}
