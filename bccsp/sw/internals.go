/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package sw

import (
	"hash"

	"github.com/hyperledger/fabric-rijndael/bccsp"
)

// KeyGenerator produces fresh keys for one KeyGenOpts type.
type KeyGenerator interface {
	KeyGen(opts bccsp.KeyGenOpts) (k bccsp.Key, err error)
}

// KeyImporter turns raw key material into a bccsp.Key for one
// KeyImportOpts type.
type KeyImporter interface {
	KeyImport(raw interface{}, opts bccsp.KeyImportOpts) (k bccsp.Key, err error)
}

// Encryptor runs the cipher forward for one key type. The padding scheme
// and IV handling are selected by opts.
type Encryptor interface {
	Encrypt(k bccsp.Key, plaintext []byte, opts bccsp.EncrypterOpts) (ciphertext []byte, err error)
}

// Decryptor is the inverse of Encryptor. ciphertext carries its IV as the
// first block.
type Decryptor interface {
	Decrypt(k bccsp.Key, ciphertext []byte, opts bccsp.DecrypterOpts) (plaintext []byte, err error)
}

// Hasher derives digests, including the SKIs of keys.
type Hasher interface {
	Hash(msg []byte, opts bccsp.HashOpts) (hash []byte, err error)
	GetHash(opts bccsp.HashOpts) (h hash.Hash, err error)
}
