package utils // package utils provides helper functions for hashing and token creation

import (
	"crypto/rand"  // secure random number generation
	"encoding/hex" // hex encoding of random bytes
)

// NewSessionToken returns a cryptographically secure opaque token used as
// the server-side session key. The raw value travels to the client in the
// session cookie; the server stores the binding token -> user id in the
// session store. 32 random bytes encode to a 64 character hex string.
func NewSessionToken() (string, error) {
	return randomHex(32)
}

// randomHex returns a hex-encoded string generated from n bytes of
// cryptographically secure random data.
func randomHex(n int) (string, error) {
	buf := make([]byte, n)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}
