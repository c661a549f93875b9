/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package sw

import (
	"github.com/hyperledger/fabric-rijndael/bccsp"
	"github.com/pkg/errors"
)

type rijndaelImportKeyOptsKeyImporter struct {
	blockSize int
}

func (ki *rijndaelImportKeyOptsKeyImporter) KeyImport(raw interface{}, opts bccsp.KeyImportOpts) (bccsp.Key, error) {
	rijndaelRaw, ok := raw.([]byte)
	if !ok {
		return nil, errors.New("Invalid raw material. Expected byte array.")
	}

	if rijndaelRaw == nil {
		return nil, errors.New("Invalid raw material. It must not be nil.")
	}

	blockSize := ki.blockSize
	if o, ok := opts.(*bccsp.RijndaelKeyImportOpts); ok && o != nil && o.BlockSize != 0 {
		blockSize = o.BlockSize
	}

	return newRijndaelKey(rijndaelRaw, blockSize, false)
}
