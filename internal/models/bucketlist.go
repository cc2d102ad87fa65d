package models

// BucketListEntry is one place tracked in one user's bucket list.
//
// The entry references its place by ID only; the place is resolved at
// validation time and never cached across mutations. CreatedBy is the
// place creator's display name captured when the entry was added — it is
// intentionally not kept in sync with later renames.
type BucketListEntry struct {
	// PlaceID references the bookmarked Place.
	PlaceID string

	// CreatedBy is the display name of the place's creator at add time.
	CreatedBy string

	// IsVisited reports whether the user marked the place as visited.
	// New entries always start unvisited.
	IsVisited bool

	// AddedAt is the Unix timestamp when the entry was added.
	AddedAt int64
}
