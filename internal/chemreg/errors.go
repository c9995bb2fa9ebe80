package chemreg

import "errors"

var (
	// ErrMissingIdentifier is returned when a required reference or lookup
	// key is absent (nil key, nil base element, ...).
	ErrMissingIdentifier = errors.New("chemreg: missing identifier")

	// ErrIndexOutOfRange is returned by index lookups outside [0, Len).
	ErrIndexOutOfRange = errors.New("chemreg: index out of range")

	// ErrUnknownKey is returned when a key is not present in the registry.
	ErrUnknownKey = errors.New("chemreg: unknown key")

	// ErrKeyConflict is returned when a candidate entity derives a key that
	// already belongs to another entity. The candidate is discarded and the
	// registry is left unchanged.
	ErrKeyConflict = errors.New("chemreg: key conflict")

	// ErrInvalidComposition is returned when an atomic group composition
	// contains a malformed pair: nil component, unknown component kind, or
	// a non-positive multiplicity.
	ErrInvalidComposition = errors.New("chemreg: invalid composition")
)
