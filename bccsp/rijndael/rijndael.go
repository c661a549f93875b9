/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package rijndael

import (
	"crypto/cipher"
	"encoding/binary"

	"github.com/pkg/errors"
)

// Engine is a Rijndael block cipher keyed for one key and one block size.
// The block size is independent of the key size: any combination of 16, 24
// and 32 bytes is accepted.
//
// The expanded round keys are computed by NewEngine and never modified, so an
// Engine may be used concurrently from any number of goroutines.
type Engine struct {
	blockSize int
	rounds    int
	key       []byte
	ke        [][]uint32
	kd        [][]uint32
}

// NewEngine expands key into the encryption and decryption round keys for
// the given block size.
func NewEngine(key []byte, blockSize int) (*Engine, error) {
	if !ValidSize(blockSize) {
		return nil, errors.WithMessagef(ErrInvalidBlockSize, "block size %d", blockSize)
	}
	if !ValidSize(len(key)) {
		return nil, errors.WithMessagef(ErrInvalidKeySize, "key size %d", len(key))
	}

	e := &Engine{
		blockSize: blockSize,
		rounds:    Rounds(len(key), blockSize),
		key:       append([]byte(nil), key...),
	}
	e.expandKey()
	return e, nil
}

// Rounds returns the number of rounds used for the given key and block
// sizes, both in bytes.
func Rounds(keySize, blockSize int) int {
	switch {
	case blockSize == 32 || keySize == 32:
		return 14
	case blockSize == 16 && keySize == 16:
		return 10
	default:
		return 12
	}
}

// BlockSize returns the block size in bytes.
func (e *Engine) BlockSize() int { return e.blockSize }

// Rounds returns the number of rounds of this engine.
func (e *Engine) Rounds() int { return e.rounds }

func (e *Engine) expandKey() {
	bc := e.blockSize / 4
	kc := len(e.key) / 4
	rounds := e.rounds

	e.ke = make([][]uint32, rounds+1)
	e.kd = make([][]uint32, rounds+1)
	for r := range e.ke {
		e.ke[r] = make([]uint32, bc)
		e.kd[r] = make([]uint32, bc)
	}

	total := (rounds + 1) * bc
	tk := make([]uint32, kc)
	for i := range tk {
		tk[i] = binary.BigEndian.Uint32(e.key[4*i:])
	}

	t := 0
	place := func() {
		for j := 0; j < kc && t < total; j++ {
			e.ke[t/bc][t%bc] = tk[j]
			e.kd[rounds-t/bc][t%bc] = tk[j]
			t++
		}
	}

	place()
	for ri := 0; t < total; ri++ {
		tt := tk[kc-1]
		tk[0] ^= uint32(sbox[byte(tt>>16)])<<24 ^
			uint32(sbox[byte(tt>>8)])<<16 ^
			uint32(sbox[byte(tt)])<<8 ^
			uint32(sbox[byte(tt>>24)]) ^
			uint32(rcon[ri])<<24

		if kc != 8 {
			for i := 1; i < kc; i++ {
				tk[i] ^= tk[i-1]
			}
		} else {
			half := kc / 2
			for i := 1; i < half; i++ {
				tk[i] ^= tk[i-1]
			}
			// 256-bit keys get an extra SubWord, without rotation, halfway
			// through each expansion step.
			tt = tk[half-1]
			tk[half] ^= uint32(sbox[byte(tt)]) ^
				uint32(sbox[byte(tt>>8)])<<8 ^
				uint32(sbox[byte(tt>>16)])<<16 ^
				uint32(sbox[byte(tt>>24)])<<24
			for i := half + 1; i < kc; i++ {
				tk[i] ^= tk[i-1]
			}
		}
		place()
	}

	for r := 1; r < rounds; r++ {
		for j, w := range e.kd[r] {
			e.kd[r][j] = tu[0][byte(w>>24)] ^ tu[1][byte(w>>16)] ^ tu[2][byte(w>>8)] ^ tu[3][byte(w)]
		}
	}
}

// Encrypt encrypts exactly one block.
func (e *Engine) Encrypt(block []byte) ([]byte, error) {
	if len(block) != e.blockSize {
		return nil, errors.WithMessagef(ErrInvalidBlockSize, "input length %d, engine block size %d", len(block), e.blockSize)
	}
	dst := make([]byte, e.blockSize)
	e.crypt(dst, block, e.ke, &te, &sbox, 0)
	return dst, nil
}

// Decrypt decrypts exactly one block.
func (e *Engine) Decrypt(block []byte) ([]byte, error) {
	if len(block) != e.blockSize {
		return nil, errors.WithMessagef(ErrInvalidBlockSize, "input length %d, engine block size %d", len(block), e.blockSize)
	}
	dst := make([]byte, e.blockSize)
	e.crypt(dst, block, e.kd, &td, &sboxInv, 1)
	return dst, nil
}

// crypt runs the round function in either direction. Both directions share
// the same loop shape because the decryption schedule has already been moved
// through InvMixColumns.
func (e *Engine) crypt(dst, src []byte, keys [][]uint32, tab *[4][256]uint32, s *[256]byte, dir int) {
	bc := e.blockSize / 4
	sc := shifts[bc/2-2]
	s1, s2, s3 := sc[1][dir], sc[2][dir], sc[3][dir]

	t := make([]uint32, bc)
	a := make([]uint32, bc)
	for i := range t {
		t[i] = binary.BigEndian.Uint32(src[4*i:]) ^ keys[0][i]
	}

	for r := 1; r < e.rounds; r++ {
		k := keys[r]
		for i := 0; i < bc; i++ {
			a[i] = tab[0][byte(t[i]>>24)] ^
				tab[1][byte(t[(i+s1)%bc]>>16)] ^
				tab[2][byte(t[(i+s2)%bc]>>8)] ^
				tab[3][byte(t[(i+s3)%bc])] ^
				k[i]
		}
		t, a = a, t
	}

	// the last round has no MixColumns step
	k := keys[e.rounds]
	for i := 0; i < bc; i++ {
		w := uint32(s[byte(t[i]>>24)])<<24 |
			uint32(s[byte(t[(i+s1)%bc]>>16)])<<16 |
			uint32(s[byte(t[(i+s2)%bc]>>8)])<<8 |
			uint32(s[byte(t[(i+s3)%bc])])
		binary.BigEndian.PutUint32(dst[4*i:], w^k[i])
	}
}

// Block returns a cipher.Block view of the engine so it can be used with the
// modes in crypto/cipher. Like every cipher.Block, the returned value panics
// when handed a buffer shorter than the block size.
func (e *Engine) Block() cipher.Block {
	return blockAdapter{e}
}

type blockAdapter struct{ e *Engine }

func (b blockAdapter) BlockSize() int { return b.e.blockSize }

func (b blockAdapter) Encrypt(dst, src []byte) {
	if len(src) < b.e.blockSize {
		panic("rijndael: input not full block")
	}
	if len(dst) < b.e.blockSize {
		panic("rijndael: output not full block")
	}
	b.e.crypt(dst[:b.e.blockSize], src[:b.e.blockSize], b.e.ke, &te, &sbox, 0)
}

func (b blockAdapter) Decrypt(dst, src []byte) {
	if len(src) < b.e.blockSize {
		panic("rijndael: input not full block")
	}
	if len(dst) < b.e.blockSize {
		panic("rijndael: output not full block")
	}
	b.e.crypt(dst[:b.e.blockSize], src[:b.e.blockSize], b.e.kd, &td, &sboxInv, 1)
}
