package models

// Place represents a shared place created by a user.
type Place struct {
	// ID is the unique identifier for the place (UUID format).
	ID string

	// Title is the short display name of the place.
	Title string

	// Description is free-form text about the place.
	Description string

	// Address is the human-readable street address.
	Address string

	// Lat and Lng are the coordinates of the place.
	Lat float64
	Lng float64

	// CreatorID references the User who created the place.
	// Stored as an ID string, never as a pointer, to avoid
	// cross-aggregate references.
	CreatorID string

	// CreatedAt is the Unix timestamp when the place was created.
	CreatedAt int64
}
