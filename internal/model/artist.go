package model

// Artist represents a music artist as stored in the `artists` table.
// Artists own their album reviews; deleting an artist cascades to the
// albumreviews rows referencing it.
//
// Fields:
//  ID    – primary key identifier.
//  Name  – unique, non-empty artist name.
//  Image – portrait URL, non-empty.
type Artist struct {
	ID    uint64 // artists.id
	Name  string // artists.name
	Image string // artists.image
}

// Validate requires name and image to be completed.
func (a *Artist) Validate() error {
	if a.Name == "" {
		return invalid("name", "must be completed")
	}
	if a.Image == "" {
		return invalid("image", "must be completed")
	}
	return nil
}
