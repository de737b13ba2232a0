package serialization

import (
	"errors"
	"fmt"
)

// Common errors.
var (
	ErrChecksumMismatch   = errors.New("checksum mismatch: file may be corrupted")
	ErrFlagsMismatch      = errors.New("flags do not match header")
	ErrHeaderTooLarge     = errors.New("header exceeds maximum size")
	ErrInvalidMagic       = errors.New("invalid magic bytes")
	ErrUnsupportedVersion = errors.New("unsupported format version")
)

// ValidationError provides detailed information about validation failures.
type ValidationError struct {
	Type    string // Type of error (e.g., "offset_overlap", "out_of_bounds")
	Param   string // Primary parameter name involved
	Param2  string // Secondary parameter name (for overlap errors)
	Details string // Additional details
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	if e.Param2 != "" {
		return fmt.Sprintf("%s: params %q and %q: %s", e.Type, e.Param, e.Param2, e.Details)
	}
	if e.Param != "" {
		return fmt.Sprintf("%s: param %q: %s", e.Type, e.Param, e.Details)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Details)
}
