package handler

import "errors"

// errMySQLDup mimics the error text the MySQL driver produces for a
// unique key violation; the repositories match on the 1062 code.
var errMySQLDup = errors.New("Error 1062 (23000): Duplicate entry 'Dune' for key 'movies.name'")
