/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package rijndael

import "github.com/pkg/errors"

// The complete set of failures reported by this package. Errors returned by
// the engine, the padding strategies and the CBC orchestrator wrap exactly one
// of these values; use errors.Is (or errors.Cause) to classify them.
var (
	// ErrInvalidDataSize is returned when a multi-block buffer is not a
	// multiple of the block size.
	ErrInvalidDataSize = errors.New("invalid data size")

	// ErrInvalidBlockSize is returned when the configured block size is not
	// one of 16, 24 or 32 bytes, or when a single-block buffer does not match
	// the configured block size.
	ErrInvalidBlockSize = errors.New("invalid block size")

	// ErrInvalidKeySize is returned when the key is not 16, 24 or 32 bytes
	// long.
	ErrInvalidKeySize = errors.New("invalid key size")
)

// ValidSize reports whether n is an accepted key or block size.
func ValidSize(n int) bool {
	switch n {
	case 16, 24, 32:
		return true
	default:
		return false
	}
}
