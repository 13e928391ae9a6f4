package session

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStore_CreateResolveRoundTrip(t *testing.T) {
	s := NewMemoryStore(time.Hour)
	ctx := context.Background()

	token, err := s.Create(ctx, 42)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	uid, err := s.Resolve(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, uint64(42), uid)
}

func TestMemoryStore_TokensAreUnique(t *testing.T) {
	s := NewMemoryStore(time.Hour)
	ctx := context.Background()

	seen := make(map[string]bool)
	for i := 0; i < 50; i++ {
		token, err := s.Create(ctx, uint64(i))
		require.NoError(t, err)
		require.False(t, seen[token], "token issued twice")
		seen[token] = true
	}
}

func TestMemoryStore_UnknownToken(t *testing.T) {
	s := NewMemoryStore(time.Hour)

	_, err := s.Resolve(context.Background(), "deadbeef")
	assert.ErrorIs(t, err, ErrNoSession)
}

func TestMemoryStore_DestroyIsUnconditional(t *testing.T) {
	s := NewMemoryStore(time.Hour)
	ctx := context.Background()

	token, err := s.Create(ctx, 7)
	require.NoError(t, err)

	require.NoError(t, s.Destroy(ctx, token))
	_, err = s.Resolve(ctx, token)
	assert.ErrorIs(t, err, ErrNoSession)

	// destroying again, or destroying garbage, is still fine
	assert.NoError(t, s.Destroy(ctx, token))
	assert.NoError(t, s.Destroy(ctx, "not-a-token"))
}

func TestMemoryStore_Expiry(t *testing.T) {
	s := NewMemoryStore(10 * time.Millisecond)
	ctx := context.Background()

	token, err := s.Create(ctx, 7)
	require.NoError(t, err)

	time.Sleep(25 * time.Millisecond)

	_, err = s.Resolve(ctx, token)
	assert.ErrorIs(t, err, ErrNoSession)
}
