package store

import "errors"

// Sentinel errors returned by repository methods to signal well-known failure
// conditions. Callers should use [errors.Is] to match against these values.
var (
	// ErrEmailAlreadyExists is returned when a write fails because another
	// account already holds the same email address (digest collision on the
	// blind index).
	ErrEmailAlreadyExists = errors.New("email already registered")

	// ErrPhoneAlreadyExists is returned when a write fails because another
	// account already holds the same phone number.
	ErrPhoneAlreadyExists = errors.New("phone number already registered")

	// ErrNoUserWasFound is returned when a query expected to match at least
	// one user record produces an empty result set.
	ErrNoUserWasFound = errors.New("no user was found")

	// ErrCategoryAlreadyExists is returned when a category create or rename
	// collides with an existing category name (case-insensitive).
	ErrCategoryAlreadyExists = errors.New("category name already taken")

	// ErrCategoryNotFound is returned when an operation targets a category
	// that does not exist.
	ErrCategoryNotFound = errors.New("category not found")

	// ErrItemAlreadyExists is returned when an item create or rename
	// collides with an existing item name (case-insensitive).
	ErrItemAlreadyExists = errors.New("item name already taken")

	// ErrItemNotFound is returned when an operation targets an item that
	// does not exist.
	ErrItemNotFound = errors.New("item not found")

	// ErrNegativeStock is returned when an item update would set the stock
	// counter below zero.
	ErrNegativeStock = errors.New("stock cannot be negative")

	// ErrClaimAlreadyRedeemed is returned when a redemption presents a claim
	// whose jti has already been consumed. No state is modified.
	ErrClaimAlreadyRedeemed = errors.New("claim has already been redeemed")
)

// Low-level database operation errors. These are returned (or wrapped) by
// repository methods when a SQL-level operation fails before any domain
// logic can be applied.
var (
	// ErrBuildingSQLQuery is returned when constructing a parameterised SQL
	// query fails (e.g. invalid argument count or unsupported type).
	ErrBuildingSQLQuery = errors.New("error building sql query")

	// ErrBeginningTransaction is returned when the database driver cannot
	// start a new transaction.
	ErrBeginningTransaction = errors.New("failed to begin transaction")

	// ErrCommitingTransaction is returned when committing an open
	// transaction fails. The transaction is considered rolled back.
	ErrCommitingTransaction = errors.New("failed to commit transaction")

	// ErrScanningRow is returned when scanning column values from a result
	// row into a destination struct fails.
	ErrScanningRow = errors.New("failed to scan row")
)
