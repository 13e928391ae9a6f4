package model

// AlbumReview links one Artist and one Album and carries the review
// payload, mirroring what Review does for movies and users.
type AlbumReview struct {
	ID       uint64 // albumreviews.id
	Rating   int    // albumreviews.rating
	Text     string // albumreviews.text
	ArtistID uint64 // albumreviews.artist_id
	AlbumID  uint64 // albumreviews.album_id
}

// Validate enforces the rating bound and requires both foreign keys.
func (ar *AlbumReview) Validate() error {
	if ar.Rating < 1 || ar.Rating > 10 {
		return invalid("rating", "must be a number between 1 and 10")
	}
	if ar.ArtistID == 0 {
		return invalid("artist_id", "must reference an artist")
	}
	if ar.AlbumID == 0 {
		return invalid("album_id", "must reference an album")
	}
	return nil
}
