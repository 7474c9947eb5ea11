package codes

import (
	"context"
	"fmt"
)

// CodeSet represents a set of discount codes for fast lookup.
type CodeSet interface {
	// Contains checks if a code exists in the set.
	Contains(code string) bool

	// Size returns the number of codes in the set.
	Size() int

	// ToSlice returns the codes in unspecified order.
	ToSlice() []string
}

// Loader defines the interface for loading code files. Files are gzipped,
// one code per line.
type Loader interface {
	Load(ctx context.Context, path string) (CodeSet, error)
}

// Code format limits enforced before any code is submitted to the platform.
const (
	MinCodeLength = 3
	MaxCodeLength = 64
)

// ValidateFormat checks a discount code against the format rules: length
// bounds and an alphanumeric/dash/underscore charset.
func ValidateFormat(code string) error {
	if len(code) < MinCodeLength || len(code) > MaxCodeLength {
		return fmt.Errorf("code %q must be between %d and %d characters", code, MinCodeLength, MaxCodeLength)
	}
	for _, r := range code {
		switch {
		case r >= 'a' && r <= 'z':
		case r >= 'A' && r <= 'Z':
		case r >= '0' && r <= '9':
		case r == '-' || r == '_':
		default:
			return fmt.Errorf("code %q contains invalid character %q", code, r)
		}
	}
	return nil
}

// Diff returns the requested codes that are not already present in existing,
// preserving request order. The set compares case-insensitively, matching
// the platform's code semantics.
func Diff(requested []string, existing CodeSet) []string {
	var missing []string
	for _, code := range requested {
		if !existing.Contains(code) {
			missing = append(missing, code)
		}
	}
	return missing
}
