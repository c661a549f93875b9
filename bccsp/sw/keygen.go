/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package sw

import (
	"github.com/hyperledger/fabric-rijndael/bccsp"
	"github.com/pkg/errors"
)

const defaultKeySize = 32

type rijndaelKeyGenerator struct {
	blockSize int
	metrics   *Metrics
}

func (kg *rijndaelKeyGenerator) KeyGen(opts bccsp.KeyGenOpts) (bccsp.Key, error) {
	keySize, blockSize := defaultKeySize, kg.blockSize
	if o, ok := opts.(*bccsp.RijndaelKeyGenOpts); ok && o != nil {
		if o.KeySize != 0 {
			keySize = o.KeySize
		}
		if o.BlockSize != 0 {
			blockSize = o.BlockSize
		}
	}

	lowLevelKey, err := GetRandomBytes(keySize)
	if err != nil {
		return nil, errors.Wrapf(err, "Failed generating Rijndael %d key", keySize)
	}

	k, err := newRijndaelKey(lowLevelKey, blockSize, false)
	if err != nil {
		return nil, err
	}
	kg.metrics.keyGenerated(blockSize)

	return k, nil
}
