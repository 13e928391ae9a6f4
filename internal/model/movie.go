package model

// Movie represents a purchasable movie as stored in the `movies` table.
// A movie owns its reviews and cart items: deleting a movie removes every
// dependent row referencing it.  The json tags are omitted here because
// these structs are used by the repository layer; handlers define separate
// view types with the JSON shape each endpoint exposes.
//
// Fields:
//  ID          – primary key identifier of the movie.
//  Name        – unique, non-empty title.
//  Image       – poster URL, non-empty.
//  Year        – release year, 1900 or later.
//  Director    – non-empty director name.
//  Description – non-empty synopsis.
//  Price       – non-negative price in the store currency.
type Movie struct {
	ID          uint64  // movies.id
	Name        string  // movies.name
	Image       string  // movies.image
	Year        int     // movies.year
	Director    string  // movies.director
	Description string  // movies.description
	Price       float64 // movies.price
}

// Validate checks every field constraint and returns a *ValidationError for
// the first violated one.  It is called before any insert and after a patch
// has been applied to a scratch copy, so an invalid update never touches the
// stored row.
func (m *Movie) Validate() error {
	if m.Name == "" {
		return invalid("name", "must be completed")
	}
	if m.Image == "" {
		return invalid("image", "must be completed")
	}
	if m.Director == "" {
		return invalid("director", "must be completed")
	}
	if m.Description == "" {
		return invalid("description", "must be completed")
	}
	if m.Year < 1900 {
		return invalid("year", "must be 1900 or later")
	}
	if m.Price < 0 {
		return invalid("price", "must not be negative")
	}
	return nil
}
