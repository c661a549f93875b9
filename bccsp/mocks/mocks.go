/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package mocks

import (
	"errors"
	"hash"
	"reflect"

	"github.com/hyperledger/fabric-rijndael/bccsp"
)

type MockBCCSP struct {
	KeyGenValue bccsp.Key
	KeyGenErr   error

	KeyImportValue bccsp.Key
	KeyImportErr   error

	GetKeyValue bccsp.Key
	GetKeyErr   error

	EncryptArgKey bccsp.Key
	EncryptError  error
	DecryptError  error

	HashVal []byte
	HashErr error
}

func (m *MockBCCSP) KeyGen(opts bccsp.KeyGenOpts) (bccsp.Key, error) {
	return m.KeyGenValue, m.KeyGenErr
}

func (m *MockBCCSP) KeyImport(raw interface{}, opts bccsp.KeyImportOpts) (bccsp.Key, error) {
	return m.KeyImportValue, m.KeyImportErr
}

func (m *MockBCCSP) GetKey(ski []byte) (bccsp.Key, error) {
	return m.GetKeyValue, m.GetKeyErr
}

func (m *MockBCCSP) Hash(msg []byte, opts bccsp.HashOpts) ([]byte, error) {
	return m.HashVal, m.HashErr
}

func (*MockBCCSP) GetHash(opts bccsp.HashOpts) (hash.Hash, error) {
	panic("Not yet implemented")
}

// Encrypt returns the plaintext unchanged unless EncryptError is set. When
// EncryptArgKey is set, k must match it.
func (m *MockBCCSP) Encrypt(k bccsp.Key, plaintext []byte, opts bccsp.EncrypterOpts) ([]byte, error) {
	if m.EncryptArgKey != nil && !reflect.DeepEqual(m.EncryptArgKey, k) {
		return nil, errors.New("invalid key")
	}
	if m.EncryptError == nil {
		return plaintext, nil
	} else {
		return nil, m.EncryptError
	}
}

func (m *MockBCCSP) Decrypt(k bccsp.Key, ciphertext []byte, opts bccsp.DecrypterOpts) ([]byte, error) {
	if m.DecryptError == nil {
		return ciphertext, nil
	} else {
		return nil, m.DecryptError
	}
}

type MockKey struct {
	BytesValue []byte
	BytesErr   error
	SKIValue   []byte
	Symm       bool
	PK         bccsp.Key
	PKErr      error
	Pvt        bool
}

func (m *MockKey) Bytes() ([]byte, error) {
	return m.BytesValue, m.BytesErr
}

func (m *MockKey) SKI() []byte {
	return m.SKIValue
}

func (m *MockKey) Symmetric() bool {
	return m.Symm
}

func (m *MockKey) Private() bool {
	return m.Pvt
}

func (m *MockKey) PublicKey() (bccsp.Key, error) {
	return m.PK, m.PKErr
}

type KeyGenOpts struct {
	EphemeralValue bool
}

func (*KeyGenOpts) Algorithm() string {
	return "Mock KeyGenOpts"
}

func (o *KeyGenOpts) Ephemeral() bool {
	return o.EphemeralValue
}

type KeyImportOpts struct{}

func (*KeyImportOpts) Algorithm() string {
	return "Mock KeyImportOpts"
}

func (*KeyImportOpts) Ephemeral() bool {
	panic("Not yet implemented")
}

type EncrypterOpts struct{}

type DecrypterOpts struct{}

type HashOpts struct{}

func (HashOpts) Algorithm() string {
	return "Mock HashOpts"
}

// KeyStore records the last stored key and returns GetKeyValue.
type KeyStore struct {
	ReadOnlyValue bool

	GetKeyValue bccsp.Key
	GetKeyErr   error

	StoreKeyErr error
	StoredKey   bccsp.Key
}

func (ks *KeyStore) ReadOnly() bool {
	return ks.ReadOnlyValue
}

func (ks *KeyStore) GetKey(ski []byte) (bccsp.Key, error) {
	return ks.GetKeyValue, ks.GetKeyErr
}

func (ks *KeyStore) StoreKey(k bccsp.Key) error {
	if ks.StoreKeyErr != nil {
		return ks.StoreKeyErr
	}
	ks.StoredKey = k
	return nil
}
