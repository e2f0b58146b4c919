package domain

import "errors"

// The error texts below are part of the HTTP contract: handlers surface them
// verbatim in the {message} envelope.
var (
	ErrMissingParameters  = errors.New("missing parameters")
	ErrDuplicateEmail     = errors.New("email account already register")
	ErrInvalidCredentials = errors.New("Invalid email or password")
	ErrUnauthorized       = errors.New("Unauthorized access")
	ErrUnauthorizedAction = errors.New("Unauthorized action")
	ErrUserNotFound       = errors.New("User not found")
	ErrOfferNotFound      = errors.New("Not Found")

	ErrTitleTooLong       = errors.New("Title length is not available")
	ErrDescriptionTooLong = errors.New("Description length is not available")
	ErrPriceTooHigh       = errors.New("Price is not Available, too High")

	// ErrFolderNotEmpty is returned by the media storage when a folder still
	// contains objects. Callers must delete contained objects first.
	ErrFolderNotEmpty = errors.New("folder is not empty")
)
