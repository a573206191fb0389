package service

import "errors"

var (
	ErrInvalidDataProvided = errors.New("invalid data provided")
	ErrWrongPassword       = errors.New("wrong password")

	// ErrUnauthorized is returned when the caller's session does not grant
	// the attempted operation (wrong owner, missing admin flag).
	ErrUnauthorized = errors.New("operation not permitted")

	ErrTokenIsExpiredOrInvalid = errors.New("token is expired or invalid")
	ErrTokenCreationFailed     = errors.New("token creation failed")

	ErrValidationFirstNameRequired = errors.New("first name is required")
	ErrValidationBadEmail          = errors.New("invalid email address")
	ErrValidationBadPhone          = errors.New("invalid phone number")
	ErrValidationBadImageURL       = errors.New("invalid image url")
	ErrValidationBadName           = errors.New("name must be between 3 and 80 characters")
	ErrValidationNegativeStock     = errors.New("stock cannot be negative")

	// ErrSelectionTooLong is returned when a selection write would exceed
	// [models.MaxSelectedItems].
	ErrSelectionTooLong = errors.New("selection exceeds the allowed number of items")

	// ErrUnknownItems is returned when a selection references item IDs that
	// do not exist in the catalog.
	ErrUnknownItems = errors.New("selection references unknown items")

	// ErrDuplicateItems is returned when a selection lists the same item
	// more than once. A selection is an ordered set.
	ErrDuplicateItems = errors.New("selection cannot contain duplicate items")

	// ErrEmptySelection is returned when a claim is minted over an empty
	// selection.
	ErrEmptySelection = errors.New("selection is empty")

	// ErrSameCategory is returned when an item move targets the category the
	// item already belongs to.
	ErrSameCategory = errors.New("item is already in this category")
)
