/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package sw

import (
	"crypto/sha256"

	"github.com/hyperledger/fabric-rijndael/bccsp"
	"github.com/hyperledger/fabric-rijndael/bccsp/rijndael"
	"github.com/pkg/errors"
)

// rijndaelKey is a symmetric Rijndael key bound to a block size. The key
// schedule is expanded once, when the key is created.
type rijndaelKey struct {
	privKey    []byte
	blockSize  int
	exportable bool
	engine     *rijndael.Engine
}

func newRijndaelKey(raw []byte, blockSize int, exportable bool) (*rijndaelKey, error) {
	engine, err := rijndael.NewEngine(raw, blockSize)
	if err != nil {
		return nil, err
	}

	privKey := make([]byte, len(raw))
	copy(privKey, raw)

	return &rijndaelKey{
		privKey:    privKey,
		blockSize:  blockSize,
		exportable: exportable,
		engine:     engine,
	}, nil
}

// Bytes converts this key to its byte representation,
// if this operation is allowed.
func (k *rijndaelKey) Bytes() (raw []byte, err error) {
	if k.exportable {
		raw = make([]byte, len(k.privKey))
		copy(raw, k.privKey)
		return raw, nil
	}

	return nil, errors.New("Not supported.")
}

// SKI returns the subject key identifier of this key. The block size takes
// part in the identifier, so the same key material used with two block
// sizes yields two keys.
func (k *rijndaelKey) SKI() (ski []byte) {
	hash := sha256.New()
	hash.Write([]byte{0x01, byte(k.blockSize)})
	hash.Write(k.privKey)
	return hash.Sum(nil)
}

// Symmetric returns true if this key is a symmetric key,
// false if this key is asymmetric
func (k *rijndaelKey) Symmetric() bool {
	return true
}

// Private returns true if this key is a private key,
// false otherwise.
func (k *rijndaelKey) Private() bool {
	return true
}

// PublicKey returns the corresponding public key part of an asymmetric public/private key pair.
// This method returns an error in symmetric key schemes.
func (k *rijndaelKey) PublicKey() (bccsp.Key, error) {
	return nil, errors.New("Cannot call this method on a symmetric key.")
}

// BlockSize returns the block size the key encrypts with.
func (k *rijndaelKey) BlockSize() int {
	return k.blockSize
}
