package domain

import "errors"

// Sentinel errors for the domain layer. These provide consistent, checkable
// errors for the outcomes the page and the view react to.
var (
	// ErrNotFound reports that the invoice API answered 404 for a resource.
	ErrNotFound = errors.New("requested resource not found")

	// ErrUnknownCard reports a selection for a card number that is not part of
	// the card list the view was mounted with.
	ErrUnknownCard = errors.New("credit card is not in the card list")

	// ErrViewNotFound reports that a view id does not belong to a mounted view,
	// usually because its lease expired.
	ErrViewNotFound = errors.New("invoice view not found")
)
