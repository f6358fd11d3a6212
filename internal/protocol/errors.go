// Package protocol defines the shared error taxonomy and canonical
// signing hashes of the Ludex asset protocol. State-mutating packages
// return these sentinels so callers can classify failures with
// errors.Is without depending on each other.
package protocol

import "errors"

var (
	// ErrNotFound is returned when a referenced record does not exist.
	ErrNotFound = errors.New("record not found")

	// ErrAlreadyExists is returned when creating a record at an
	// address that is already occupied.
	ErrAlreadyExists = errors.New("record already exists")

	// ErrInvalidArgument is returned when a request carries a field
	// outside its protocol bounds.
	ErrInvalidArgument = errors.New("arguments didn't match")

	// ErrPolicyViolation is returned when an asset's policy flags
	// forbid the requested operation.
	ErrPolicyViolation = errors.New("operation forbidden by asset policy")

	// ErrInsufficientFunds is returned when a balance cannot cover a
	// debit.
	ErrInsufficientFunds = errors.New("insufficient funds")

	// ErrUnauthorized is returned when a signature or derivation proof
	// fails verification.
	ErrUnauthorized = errors.New("unauthorized")
)
