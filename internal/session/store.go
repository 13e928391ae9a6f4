// Package session implements the server-side session binding: an opaque
// token handed to the client in a cookie, mapped to the authenticated
// user's id on the server. Nothing about the user is encoded in the token
// itself, so a stolen database row or a decoded cookie reveals nothing.
// Two implementations exist: a Redis-backed store for normal operation and
// an in-process store used when Redis is unreachable and in tests.
package session

import (
	"context"
	"errors"
	"time"
)

// ErrNoSession is returned when a token does not resolve to a live
// session, either because it never existed, expired or was destroyed.
var ErrNoSession = errors.New("no active session")

// Store binds opaque tokens to user ids.
type Store interface {
	// Create issues a fresh token bound to the given user id. The binding
	// expires after the store's configured TTL.
	Create(ctx context.Context, userID uint64) (string, error)
	// Resolve returns the user id bound to the token, or ErrNoSession.
	Resolve(ctx context.Context, token string) (uint64, error)
	// Destroy removes the binding. Destroying an unknown token is not an
	// error; logout is unconditional.
	Destroy(ctx context.Context, token string) error
}

// entry is the in-memory representation used by MemoryStore.
type entry struct {
	userID    uint64
	expiresAt time.Time
}
