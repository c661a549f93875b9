/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package sw

import (
	"crypto/rand"
	"io"

	"github.com/hyperledger/fabric-rijndael/bccsp"
	"github.com/hyperledger/fabric-rijndael/bccsp/rijndael"
	"github.com/pkg/errors"
)

// GetRandomBytes returns len random looking bytes
func GetRandomBytes(len int) ([]byte, error) {
	if len < 0 {
		return nil, errors.New("Len must be larger than 0")
	}

	buffer := make([]byte, len)

	n, err := rand.Read(buffer)
	if err != nil {
		return nil, err
	}
	if n != len {
		return nil, errors.Errorf("Buffer not filled. Requested [%d], got [%d]", len, n)
	}

	return buffer, nil
}

// The ciphertexts produced here carry the IV in their first block:
// IV || CBC(padded plaintext).

func cbcEncryptWithRand(prng io.Reader, c *rijndael.CBC, s []byte) ([]byte, error) {
	iv := make([]byte, c.BlockSize())
	if _, err := io.ReadFull(prng, iv); err != nil {
		return nil, errors.Wrap(err, "failed reading IV")
	}

	return cbcEncryptWithIV(iv, c, s)
}

func cbcEncryptWithIV(iv []byte, c *rijndael.CBC, s []byte) ([]byte, error) {
	ct, err := c.Encrypt(iv, s)
	if err != nil {
		return nil, err
	}

	out := make([]byte, 0, len(iv)+len(ct))
	out = append(out, iv...)
	return append(out, ct...), nil
}

func cbcDecrypt(c *rijndael.CBC, src []byte) ([]byte, error) {
	bs := c.BlockSize()
	if len(src) < bs {
		return nil, errors.WithMessagef(rijndael.ErrInvalidDataSize, "ciphertext length %d is shorter than the IV", len(src))
	}

	return c.Decrypt(src[:bs], src[bs:])
}

// RijndaelCBCPKCS7Encrypt combines CBC encryption and PKCS7 padding. The
// random IV is prepended to the ciphertext.
func RijndaelCBCPKCS7Encrypt(key []byte, blockSize int, src []byte) ([]byte, error) {
	return RijndaelCBCPKCS7EncryptWithRand(rand.Reader, key, blockSize, src)
}

// RijndaelCBCPKCS7EncryptWithRand combines CBC encryption and PKCS7 padding
// using as prng the passed to the function
func RijndaelCBCPKCS7EncryptWithRand(prng io.Reader, key []byte, blockSize int, src []byte) ([]byte, error) {
	c, err := rijndael.NewCBCPKCS7(key, blockSize)
	if err != nil {
		return nil, err
	}
	return cbcEncryptWithRand(prng, c, src)
}

// RijndaelCBCPKCS7EncryptWithIV combines CBC encryption and PKCS7 padding,
// the IV used is the one passed to the function
func RijndaelCBCPKCS7EncryptWithIV(IV []byte, key []byte, blockSize int, src []byte) ([]byte, error) {
	c, err := rijndael.NewCBCPKCS7(key, blockSize)
	if err != nil {
		return nil, err
	}
	return cbcEncryptWithIV(IV, c, src)
}

// RijndaelCBCPKCS7Decrypt combines CBC decryption and PKCS7 unpadding
func RijndaelCBCPKCS7Decrypt(key []byte, blockSize int, src []byte) ([]byte, error) {
	c, err := rijndael.NewCBCPKCS7(key, blockSize)
	if err != nil {
		return nil, err
	}
	return cbcDecrypt(c, src)
}

// RijndaelCBCZeroPadEncrypt combines CBC encryption and zero padding. The
// random IV is prepended to the ciphertext.
func RijndaelCBCZeroPadEncrypt(key []byte, blockSize int, src []byte) ([]byte, error) {
	return RijndaelCBCZeroPadEncryptWithRand(rand.Reader, key, blockSize, src)
}

// RijndaelCBCZeroPadEncryptWithRand combines CBC encryption and zero padding
// with an IV read from prng.
func RijndaelCBCZeroPadEncryptWithRand(prng io.Reader, key []byte, blockSize int, src []byte) ([]byte, error) {
	c, err := rijndael.NewCBCZero(key, blockSize)
	if err != nil {
		return nil, err
	}
	return cbcEncryptWithRand(prng, c, src)
}

// RijndaelCBCZeroPadEncryptWithIV combines CBC encryption and zero padding
// with the passed IV.
func RijndaelCBCZeroPadEncryptWithIV(IV []byte, key []byte, blockSize int, src []byte) ([]byte, error) {
	c, err := rijndael.NewCBCZero(key, blockSize)
	if err != nil {
		return nil, err
	}
	return cbcEncryptWithIV(IV, c, src)
}

// RijndaelCBCZeroPadDecrypt combines CBC decryption and zero unpadding
func RijndaelCBCZeroPadDecrypt(key []byte, blockSize int, src []byte) ([]byte, error) {
	c, err := rijndael.NewCBCZero(key, blockSize)
	if err != nil {
		return nil, err
	}
	return cbcDecrypt(c, src)
}

// modeFromOpts extracts the padding and the IV source of the mode opts.
func modeFromOpts(opts interface{}) (padding string, iv []byte, prng io.Reader, err error) {
	switch o := opts.(type) {
	case *bccsp.RijndaelCBCPKCS7ModeOpts:
		return rijndael.PKCS7PaddingName, o.IV, o.PRNG, nil
	case bccsp.RijndaelCBCPKCS7ModeOpts:
		return rijndael.PKCS7PaddingName, o.IV, o.PRNG, nil
	case *bccsp.RijndaelCBCZeroPadModeOpts:
		return rijndael.ZeroPaddingName, o.IV, o.PRNG, nil
	case bccsp.RijndaelCBCZeroPadModeOpts:
		return rijndael.ZeroPaddingName, o.IV, o.PRNG, nil
	default:
		return "", nil, nil, errors.Errorf("Mode not recognized [%v]", opts)
	}
}

func cbcFor(k *rijndaelKey, padding string) (*rijndael.CBC, error) {
	factory, err := rijndael.ParsePadding(padding)
	if err != nil {
		return nil, err
	}
	return rijndael.NewCBCWithEngine(k.engine, factory), nil
}

type rijndaelCBCEncryptor struct {
	metrics *Metrics
}

func (e *rijndaelCBCEncryptor) Encrypt(k bccsp.Key, plaintext []byte, opts bccsp.EncrypterOpts) ([]byte, error) {
	key := k.(*rijndaelKey)

	padding, iv, prng, err := modeFromOpts(opts)
	if err != nil {
		return nil, err
	}
	if len(iv) != 0 && prng != nil {
		return nil, errors.New("Invalid options. Either IV or PRNG should be different from nil, or both nil.")
	}

	start := e.metrics.now()
	ciphertext, err := e.encrypt(key, padding, iv, prng, plaintext)
	e.metrics.observe("encrypt", padding, start, err)
	if err != nil {
		logger.Debugf("encryption with key [%x] failed: %s", key.SKI(), err)
	}
	return ciphertext, err
}

func (e *rijndaelCBCEncryptor) encrypt(key *rijndaelKey, padding string, iv []byte, prng io.Reader, plaintext []byte) ([]byte, error) {
	c, err := cbcFor(key, padding)
	if err != nil {
		return nil, err
	}

	if len(iv) != 0 {
		return cbcEncryptWithIV(iv, c, plaintext)
	}
	if prng == nil {
		prng = rand.Reader
	}
	return cbcEncryptWithRand(prng, c, plaintext)
}

type rijndaelCBCDecryptor struct {
	metrics *Metrics
}

func (d *rijndaelCBCDecryptor) Decrypt(k bccsp.Key, ciphertext []byte, opts bccsp.DecrypterOpts) ([]byte, error) {
	key := k.(*rijndaelKey)

	padding, iv, prng, err := modeFromOpts(opts)
	if err != nil {
		return nil, err
	}
	if prng != nil {
		return nil, errors.New("Invalid options. PRNG is not used for decryption.")
	}

	start := d.metrics.now()
	c, err := cbcFor(key, padding)
	var plaintext []byte
	if err == nil {
		if len(iv) != 0 {
			plaintext, err = c.Decrypt(iv, ciphertext)
		} else {
			plaintext, err = cbcDecrypt(c, ciphertext)
		}
	}
	d.metrics.observe("decrypt", padding, start, err)

	return plaintext, err
}
