/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package bccsp

import (
	"io"
)

const (
	// RIJNDAEL identifies the Rijndael block cipher at the security level
	// given by the key size of the opts.
	RIJNDAEL = "RIJNDAEL"
	// RIJNDAEL128 is Rijndael with a 128 bit key
	RIJNDAEL128 = "RIJNDAEL128"
	// RIJNDAEL192 is Rijndael with a 192 bit key
	RIJNDAEL192 = "RIJNDAEL192"
	// RIJNDAEL256 is Rijndael with a 256 bit key
	RIJNDAEL256 = "RIJNDAEL256"
)

// DefaultBlockSize is the block size used when opts leave it unset.
const DefaultBlockSize = 16

// RijndaelKeyGenOpts contains options for Rijndael key generation.
// A zero KeySize or BlockSize selects 32 and DefaultBlockSize respectively.
type RijndaelKeyGenOpts struct {
	KeySize   int
	BlockSize int
	Temporary bool
}

// Algorithm returns the key generation algorithm identifier (to be used).
func (opts *RijndaelKeyGenOpts) Algorithm() string {
	switch opts.KeySize {
	case 16:
		return RIJNDAEL128
	case 24:
		return RIJNDAEL192
	case 32, 0:
		return RIJNDAEL256
	}
	return RIJNDAEL
}

// Ephemeral returns true if the key to generate has to be ephemeral,
// false otherwise.
func (opts *RijndaelKeyGenOpts) Ephemeral() bool {
	return opts.Temporary
}

// RijndaelKeyImportOpts contains options for importing raw Rijndael keys.
// A zero BlockSize selects DefaultBlockSize.
type RijndaelKeyImportOpts struct {
	BlockSize int
	Temporary bool
}

// Algorithm returns the key importation algorithm identifier (to be used).
func (opts *RijndaelKeyImportOpts) Algorithm() string {
	return RIJNDAEL
}

// Ephemeral returns true if the key generated has to be ephemeral,
// false otherwise.
func (opts *RijndaelKeyImportOpts) Ephemeral() bool {
	return opts.Temporary
}

// RijndaelCBCPKCS7ModeOpts contains options for Rijndael encryption in CBC
// mode with PKCS#7 padding.
// Notice that both IV and PRNG can be nil. In that case, the BCCSP
// implementation is supposed to sample the IV using a cryptographic secure
// PRNG. Notice also that either IV or PRNG can be different from nil.
//
// When decrypting, a non-nil IV means the ciphertext is the bare CBC output;
// otherwise its first block is read as the IV. PRNG must be nil.
type RijndaelCBCPKCS7ModeOpts struct {
	// IV is the initialization vector to be used by the underlying cipher.
	// The length of IV must be the same as the block size of the key.
	// It is used only if different from nil.
	IV []byte
	// PRNG is an instance of a PRNG to be used by the underlying cipher.
	// It is used only if different from nil.
	PRNG io.Reader
}

// RijndaelCBCZeroPadModeOpts contains options for Rijndael encryption in CBC
// mode with zero padding. IV and PRNG behave as in RijndaelCBCPKCS7ModeOpts.
type RijndaelCBCZeroPadModeOpts struct {
	IV   []byte
	PRNG io.Reader
}
