/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package rijndael

import "github.com/pkg/errors"

// CBC encrypts and decrypts messages in cipher block chaining mode with a
// Rijndael engine and a padding strategy. Neither is modified after
// construction, so a CBC value is safe for concurrent use as long as every
// message gets its own IV.
type CBC struct {
	engine  *Engine
	padding Padding
}

// NewCBC creates an engine for key and blockSize and pairs it with the
// padding built by padding.
func NewCBC(key []byte, blockSize int, padding PaddingFactory) (*CBC, error) {
	engine, err := NewEngine(key, blockSize)
	if err != nil {
		return nil, err
	}
	return NewCBCWithEngine(engine, padding), nil
}

// NewCBCZero is NewCBC with zero padding.
func NewCBCZero(key []byte, blockSize int) (*CBC, error) {
	return NewCBC(key, blockSize, NewZeroPadding)
}

// NewCBCPKCS7 is NewCBC with PKCS#7 padding.
func NewCBCPKCS7(key []byte, blockSize int) (*CBC, error) {
	return NewCBC(key, blockSize, NewPKCS7Padding)
}

// NewCBCWithEngine shares an existing engine.
func NewCBCWithEngine(engine *Engine, padding PaddingFactory) *CBC {
	return &CBC{
		engine:  engine,
		padding: padding(engine.BlockSize()),
	}
}

// BlockSize returns the block size in bytes.
func (c *CBC) BlockSize() int { return c.engine.BlockSize() }

// Padding returns the padding strategy in use.
func (c *CBC) Padding() Padding { return c.padding }

func (c *CBC) checkIV(iv []byte) error {
	if len(iv) != c.engine.BlockSize() {
		return errors.WithMessagef(ErrInvalidBlockSize, "IV length %d, block size %d", len(iv), c.engine.BlockSize())
	}
	return nil
}

// Encrypt pads plaintext and encrypts it, chaining each block with the
// previous ciphertext block, the first one with iv.
func (c *CBC) Encrypt(iv, plaintext []byte) ([]byte, error) {
	if err := c.checkIV(iv); err != nil {
		return nil, err
	}

	bs := c.engine.BlockSize()
	padded := c.padding.Encode(plaintext)
	ciphertext := make([]byte, 0, len(padded))
	chain := iv
	block := make([]byte, bs)

	for offset := 0; offset < len(padded); offset += bs {
		xorBlock(block, padded[offset:offset+bs], chain)
		out, err := c.engine.Encrypt(block)
		if err != nil {
			return nil, err
		}
		ciphertext = append(ciphertext, out...)
		chain = out
	}

	return ciphertext, nil
}

// Decrypt reverses Encrypt. The ciphertext must be a whole number of blocks.
func (c *CBC) Decrypt(iv, ciphertext []byte) ([]byte, error) {
	bs := c.engine.BlockSize()
	if len(ciphertext)%bs != 0 {
		return nil, errors.WithMessagef(ErrInvalidDataSize, "ciphertext length %d is not a multiple of %d", len(ciphertext), bs)
	}
	if err := c.checkIV(iv); err != nil {
		return nil, err
	}

	plaintext := make([]byte, len(ciphertext))
	chain := iv

	for offset := 0; offset < len(ciphertext); offset += bs {
		block := ciphertext[offset : offset+bs]
		out, err := c.engine.Decrypt(block)
		if err != nil {
			return nil, err
		}
		xorBlock(plaintext[offset:offset+bs], out, chain)
		chain = block
	}

	return c.padding.Decode(plaintext)
}

// xorBlock sets dst[i] = a[i] ^ b[i]; all three are one block long.
func xorBlock(dst, a, b []byte) {
	for i := range dst {
		dst[i] = a[i] ^ b[i]
	}
}
