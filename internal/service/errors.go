package service

import "errors"

// Service-level failures, one per client-visible outcome. Handlers map
// these to HTTP statuses; anything else that bubbles up is an internal
// persistence failure and reports as a generic 500.
var (
	// ErrPlaceNotFound: the referenced place does not exist.
	ErrPlaceNotFound = errors.New("place not found")

	// ErrUserNotFound: the referenced user does not exist. When this
	// surfaces for the *acting* user of a mutation it implies an
	// inconsistent authenticated session, not caller error.
	ErrUserNotFound = errors.New("user not found")

	// ErrEntryNotFound: the bucket list holds no entry for the place.
	ErrEntryNotFound = errors.New("place not in bucket list")

	// ErrOwnPlace: a user may not bucket-list a place they created.
	ErrOwnPlace = errors.New("cannot add your own place to your bucket list")

	// ErrAlreadyInList: the place is already in the user's bucket list.
	ErrAlreadyInList = errors.New("place already in bucket list")

	// ErrNotPlaceCreator: only the creator may modify or delete a place.
	ErrNotPlaceCreator = errors.New("only the place creator may do this")
)
