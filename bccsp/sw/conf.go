/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package sw

import (
	"github.com/hyperledger/fabric-rijndael/bccsp"
	"github.com/hyperledger/fabric-rijndael/bccsp/rijndael"
	"github.com/pkg/errors"
)

type config struct {
	blockSize int
	hashOpts  bccsp.HashOpts
}

func (conf *config) setSecurityLevel(blockSize int, hashFamily string) (err error) {
	if !rijndael.ValidSize(blockSize) {
		return errors.WithMessagef(rijndael.ErrInvalidBlockSize, "block size %d not supported", blockSize)
	}
	conf.blockSize = blockSize

	switch hashFamily {
	case bccsp.SHA2, bccsp.SHA3:
		conf.hashOpts, err = bccsp.GetHashOptForFamily(hashFamily)
		return err
	default:
		return errors.Errorf("Hash Family not supported [%s]", hashFamily)
	}
}
