package tenancy

import "errors"

var (
	// ErrNotFound covers both a nonexistent id and a record owned by a
	// different tenant. Callers must not be able to distinguish the two.
	ErrNotFound = errors.New("tenancy: record not found")
	// ErrBindFailed indicates the security variable could not be set at
	// transaction start. The transaction is aborted.
	ErrBindFailed = errors.New("tenancy: session binding failed")
	// ErrNoTenant indicates a mutation was attempted without a resolved tenant.
	ErrNoTenant = errors.New("tenancy: no tenant in scope")
	// ErrUnknownColumn indicates a filter or patch referenced a column the
	// schema does not declare.
	ErrUnknownColumn = errors.New("tenancy: unknown column")
	// ErrTokenInvalid indicates a structurally invalid or unverifiable credential.
	ErrTokenInvalid = errors.New("tenancy: invalid token")
)
