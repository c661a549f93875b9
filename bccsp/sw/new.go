/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package sw

import (
	"crypto/sha256"
	"crypto/sha512"
	"reflect"

	"github.com/hyperledger/fabric-rijndael/bccsp"
	"github.com/hyperledger/fabric-rijndael/common/metrics"
	"github.com/hyperledger/fabric-rijndael/common/metrics/disabled"
	"github.com/pkg/errors"
	"golang.org/x/crypto/sha3"
)

// NewDefaultSecurityLevel returns a new instance of the software-based BCCSP
// with 16 byte blocks, SHA2 and a file key store at keyStorePath.
func NewDefaultSecurityLevel(keyStorePath string) (bccsp.BCCSP, error) {
	ks, err := NewFileBasedKeyStore(nil, keyStorePath, false)
	if err != nil {
		return nil, err
	}

	return NewDefaultSecurityLevelWithKeystore(ks)
}

// NewDefaultSecurityLevelWithKeystore returns a new instance of the software-based BCCSP
// with 16 byte blocks, SHA2 and the passed KeyStore.
func NewDefaultSecurityLevelWithKeystore(keyStore bccsp.KeyStore) (bccsp.BCCSP, error) {
	return NewWithParams(bccsp.DefaultBlockSize, bccsp.SHA2, keyStore, nil)
}

// NewWithParams returns a new instance of the software-based BCCSP. The
// block size applies to keys whose opts leave it unset. A nil
// metricsProvider disables metrics.
func NewWithParams(blockSize int, hashFamily string, keyStore bccsp.KeyStore, metricsProvider metrics.Provider) (bccsp.BCCSP, error) {
	// Init config
	conf := &config{}
	err := conf.setSecurityLevel(blockSize, hashFamily)
	if err != nil {
		return nil, errors.Wrapf(err, "Failed initializing configuration at [%v,%v]", blockSize, hashFamily)
	}

	swbccsp, err := New(keyStore)
	if err != nil {
		return nil, err
	}
	swbccsp.defaultHashOpts = conf.hashOpts

	if metricsProvider == nil {
		metricsProvider = &disabled.Provider{}
	}
	m := NewMetrics(metricsProvider)

	// AddWrapper only fails on nil arguments.

	// Set the Encryptors
	swbccsp.AddWrapper(reflect.TypeOf(&rijndaelKey{}), &rijndaelCBCEncryptor{metrics: m})

	// Set the Decryptors
	swbccsp.AddWrapper(reflect.TypeOf(&rijndaelKey{}), &rijndaelCBCDecryptor{metrics: m})

	// Set the Hashers
	swbccsp.AddWrapper(reflect.TypeOf(&bccsp.SHA256Opts{}), &hasher{hash: sha256.New})
	swbccsp.AddWrapper(reflect.TypeOf(&bccsp.SHA384Opts{}), &hasher{hash: sha512.New384})
	swbccsp.AddWrapper(reflect.TypeOf(&bccsp.SHA3_256Opts{}), &hasher{hash: sha3.New256})
	swbccsp.AddWrapper(reflect.TypeOf(&bccsp.SHA3_384Opts{}), &hasher{hash: sha3.New384})

	// Set the key generators
	swbccsp.AddWrapper(reflect.TypeOf(&bccsp.RijndaelKeyGenOpts{}), &rijndaelKeyGenerator{blockSize: conf.blockSize, metrics: m})

	// Set the key importers
	swbccsp.AddWrapper(reflect.TypeOf(&bccsp.RijndaelKeyImportOpts{}), &rijndaelImportKeyOptsKeyImporter{blockSize: conf.blockSize})

	return swbccsp, nil
}
