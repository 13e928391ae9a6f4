package model

// Album represents a music album as stored in the `albums` table.  The
// ArtistName column is a denormalized string copy, not a foreign key into
// artists; the only structural link between artists and albums is the
// albumreviews join table.
//
// Fields:
//  ID         – primary key identifier.
//  Name       – unique album title.
//  Year       – release year, exactly four digits.
//  Song       – featured song title, non-empty.
//  Cover      – cover art URL, optional.
//  ArtistName – display name of the performing artist, non-empty.
type Album struct {
	ID         uint64 // albums.id
	Name       string // albums.name
	Year       int    // albums.year
	Song       string // albums.song
	Cover      string // albums.cover (may be empty)
	ArtistName string // albums.artist_name
}

// Validate enforces the four-digit year and the required string fields.
func (a *Album) Validate() error {
	if a.Name == "" {
		return invalid("name", "must be completed")
	}
	if a.Song == "" {
		return invalid("song", "must be completed")
	}
	if a.ArtistName == "" {
		return invalid("artist_name", "must be completed")
	}
	if a.Year < 1000 || a.Year > 9999 {
		return invalid("year", "must be a number 4 characters long")
	}
	return nil
}
