package store

import "errors"

// Sentinel errors returned by repository methods to signal well-known failure
// conditions. Callers should use [errors.Is] to match against these values.
var (
	// ErrNoUserWasFound is returned when a query expected to match at least
	// one user record produces an empty result set.
	ErrNoUserWasFound = errors.New("no user was found")

	// ErrClientNotFound is returned when a lookup, update or delete targets
	// a client id that does not exist.
	ErrClientNotFound = errors.New("client was not found")

	// ErrQuotaNotFound is returned when no quota row exists for the
	// requested client.
	ErrQuotaNotFound = errors.New("quota was not found")

	// ErrClientReferenceViolation is returned when an insert references a
	// client id that does not exist (foreign-key violation). Batch
	// processing reports it per item instead of aborting the batch.
	ErrClientReferenceViolation = errors.New("referenced client does not exist")
)

// Low-level database operation errors. These are returned (or wrapped) by
// repository methods when a SQL-level operation fails before any domain logic
// can be applied.
var (
	// ErrBuildingSQLQuery is returned when constructing a parameterised SQL
	// query fails.
	ErrBuildingSQLQuery = errors.New("error building sql query")

	// ErrExecutingQuery is returned when executing a query against the
	// database fails.
	ErrExecutingQuery = errors.New("error executing sql query")

	// ErrScanningRow is returned when scanning column values from a single
	// result row into a destination struct fails.
	ErrScanningRow = errors.New("failed to scan row")

	// ErrScanningRows is returned when scanning column values during
	// multi-row iteration fails, typically mid-result-set.
	ErrScanningRows = errors.New("failed to scan rows")
)
