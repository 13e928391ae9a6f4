// Package repository contains the data access layer, separated from HTTP
// handlers. This file defines error values and helpers shared by the
// per-entity repositories. Sentinel values let handlers distinguish
// failure scenarios without inspecting driver-specific errors: a
// not-found sentinel maps to HTTP 404 while ErrDuplicate maps to the
// generic bad-request body the API exposes for uniqueness violations.
package repository

import (
	"errors"
	"strings"
)

// ErrDuplicate is returned when an insert or update violates a UNIQUE
// constraint (movie name, username, artist name or album name).
var ErrDuplicate = errors.New("duplicate value for unique column")

// isDuplicateKey reports whether err is a MySQL duplicate-entry error.
// MySQL signals unique constraint violations with error number 1062.
func isDuplicateKey(err error) bool {
	return err != nil && strings.Contains(err.Error(), "1062")
}
