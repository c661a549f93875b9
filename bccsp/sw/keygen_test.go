/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package sw

import (
	"testing"

	"github.com/hyperledger/fabric-rijndael/bccsp"
	"github.com/hyperledger/fabric-rijndael/bccsp/rijndael"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRijndaelKeyGenerator(t *testing.T) {
	t.Parallel()

	kg := &rijndaelKeyGenerator{blockSize: 24}

	k, err := kg.KeyGen(nil)
	assert.NoError(t, err)

	rk, ok := k.(*rijndaelKey)
	assert.True(t, ok)
	assert.NotNil(t, rk.privKey)
	assert.Equal(t, len(rk.privKey), 32)
	assert.Equal(t, 24, rk.blockSize)
	assert.Equal(t, 24, rk.engine.BlockSize())
	assert.Equal(t, 14, rk.engine.Rounds())
}

func TestRijndaelKeyGeneratorSizes(t *testing.T) {
	t.Parallel()

	kg := &rijndaelKeyGenerator{blockSize: 16}
	for _, keySize := range []int{16, 24, 32} {
		for _, blockSize := range []int{16, 24, 32} {
			k, err := kg.KeyGen(&bccsp.RijndaelKeyGenOpts{KeySize: keySize, BlockSize: blockSize})
			require.NoError(t, err)
			rk := k.(*rijndaelKey)
			assert.Len(t, rk.privKey, keySize)
			assert.Equal(t, blockSize, rk.blockSize)
			assert.Equal(t, rijndael.Rounds(keySize, blockSize), rk.engine.Rounds())
		}
	}
}

func TestRijndaelKeyGeneratorInvalidInputs(t *testing.T) {
	t.Parallel()

	kg := &rijndaelKeyGenerator{blockSize: 16}

	_, err := kg.KeyGen(&bccsp.RijndaelKeyGenOpts{KeySize: -1})
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "Len must be larger than 0")

	_, err = kg.KeyGen(&bccsp.RijndaelKeyGenOpts{KeySize: 64})
	assert.True(t, errors.Is(err, rijndael.ErrInvalidKeySize))
}

func TestRijndaelKeyGenOptsAlgorithm(t *testing.T) {
	t.Parallel()

	assert.Equal(t, bccsp.RIJNDAEL128, (&bccsp.RijndaelKeyGenOpts{KeySize: 16}).Algorithm())
	assert.Equal(t, bccsp.RIJNDAEL192, (&bccsp.RijndaelKeyGenOpts{KeySize: 24}).Algorithm())
	assert.Equal(t, bccsp.RIJNDAEL256, (&bccsp.RijndaelKeyGenOpts{}).Algorithm())
	assert.Equal(t, bccsp.RIJNDAEL, (&bccsp.RijndaelKeyGenOpts{KeySize: 20}).Algorithm())
}

func TestRijndaelKeyImporter(t *testing.T) {
	t.Parallel()

	ki := &rijndaelImportKeyOptsKeyImporter{blockSize: 16}

	k, err := ki.KeyImport(osuKey, &bccsp.RijndaelKeyImportOpts{BlockSize: 32})
	require.NoError(t, err)
	assert.Equal(t, 32, k.(*rijndaelKey).blockSize)
	assert.Equal(t, osuKey, k.(*rijndaelKey).privKey)

	k, err = ki.KeyImport(osuKey, nil)
	require.NoError(t, err)
	assert.Equal(t, 16, k.(*rijndaelKey).blockSize)
}
