/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package sw

import (
	"bytes"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"testing"

	"github.com/hyperledger/fabric-rijndael/bccsp"
	"github.com/hyperledger/fabric-rijndael/bccsp/rijndael"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	osuKey        = []byte("osu!-scoreburgr---------20210520")
	osuIV         = mustUnhex("f07c1a9a1bba62aa5fbed5670d80273bd9544490ad5d758421d5609ae4e7c5a2")
	osuPlaintext  = mustUnhex("63353161656535366262353139353234343235326431393062616135346234393a507572655065616365203a38313537373236323561646164363339373335613034346538616261393336303a34343a31383a363a343a363a32303a33383634353a32363a46616c73653a463a36343a46616c73653a303a3231303631353036343433313a323032313035323013131313131313131313131313131313131313")
	osuCiphertext = mustUnhex("b9d1f32180bb84c78cbd01818b42c8257e22ee645d7cc0fc1f7902828a7b45427ad0a90f7816941357cbe58bb3598a38a0efeefe227788e1d1e245756131e1c65bc0c40c20eb678d8ea81d66fc41bf8988aa48a57f3153c9731a4fc8771cee224c19b9a4b6fe429412241b243ba5dc5fa473800c05a112ecdda7f768191d92e1688cf9af839e5d8f6a9272dc802172bfe8675ea95a690855218cc6472841d71d")
)

func mustUnhex(s string) []byte {
	b, err := hex.DecodeString(s)
	if err != nil {
		panic(err)
	}
	return b
}

// TestCBCPKCS7EncryptCBCPKCS7Decrypt encrypts using RijndaelCBCPKCS7Encrypt
// and decrypts using RijndaelCBCPKCS7Decrypt.
func TestCBCPKCS7EncryptCBCPKCS7Decrypt(t *testing.T) {
	t.Parallel()

	//                  123456789012345678901234567890123456789012
	ptext := []byte("a message with arbitrary length (42 bytes)")

	for _, bs := range []int{16, 24, 32} {
		key := make([]byte, 32)
		rand.Reader.Read(key)

		encrypted, err := RijndaelCBCPKCS7Encrypt(key, bs, ptext)
		require.NoError(t, err)
		assert.Len(t, encrypted, bs+(len(ptext)/bs+1)*bs)

		decrypted, err := RijndaelCBCPKCS7Decrypt(key, bs, encrypted)
		require.NoError(t, err)
		assert.Equal(t, ptext, decrypted)
	}
}

func TestCBCZeroPadOsuVector(t *testing.T) {
	t.Parallel()

	encrypted, err := RijndaelCBCZeroPadEncryptWithIV(osuIV, osuKey, 32, osuPlaintext)
	require.NoError(t, err)
	assert.Equal(t, osuIV, encrypted[:32])
	assert.Equal(t, osuCiphertext, encrypted[32:])

	decrypted, err := RijndaelCBCZeroPadDecrypt(osuKey, 32, encrypted)
	require.NoError(t, err)
	assert.Equal(t, osuPlaintext, decrypted)
}

func TestCBCEncryptWithRandReadsIV(t *testing.T) {
	t.Parallel()

	key := make([]byte, 24)
	iv := bytes.Repeat([]byte{0xa5}, 24)
	ptext := []byte("chained")

	encrypted, err := RijndaelCBCPKCS7EncryptWithRand(bytes.NewReader(iv), key, 24, ptext)
	require.NoError(t, err)
	assert.Equal(t, iv, encrypted[:24])

	expected, err := RijndaelCBCPKCS7EncryptWithIV(iv, key, 24, ptext)
	require.NoError(t, err)
	assert.Equal(t, expected, encrypted)

	encrypted, err = RijndaelCBCZeroPadEncryptWithRand(bytes.NewReader(iv), key, 24, ptext)
	require.NoError(t, err)
	expected, err = RijndaelCBCZeroPadEncryptWithIV(iv, key, 24, ptext)
	require.NoError(t, err)
	assert.Equal(t, expected, encrypted)

	_, err = RijndaelCBCPKCS7EncryptWithRand(bytes.NewReader(iv[:10]), key, 24, ptext)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed reading IV")
}

func TestCBCRandomIVs(t *testing.T) {
	t.Parallel()

	key := make([]byte, 16)
	ptext := []byte("same plaintext twice")

	c1, err := RijndaelCBCZeroPadEncrypt(key, 32, ptext)
	require.NoError(t, err)
	c2, err := RijndaelCBCZeroPadEncrypt(key, 32, ptext)
	require.NoError(t, err)
	assert.NotEqual(t, c1, c2)

	for _, ct := range [][]byte{c1, c2} {
		pt, err := RijndaelCBCZeroPadDecrypt(key, 32, ct)
		require.NoError(t, err)
		assert.Equal(t, ptext, pt)
	}
}

func TestCBCDecryptInvalidInputs(t *testing.T) {
	t.Parallel()

	key := make([]byte, 32)

	_, err := RijndaelCBCPKCS7Decrypt(key, 16, make([]byte, 15))
	assert.True(t, errors.Is(err, rijndael.ErrInvalidDataSize))
	assert.EqualError(t, err, "ciphertext length 15 is shorter than the IV: invalid data size")

	_, err = RijndaelCBCPKCS7Decrypt(key, 16, make([]byte, 40))
	assert.True(t, errors.Is(err, rijndael.ErrInvalidDataSize))

	// an IV without a body has no padding block
	_, err = RijndaelCBCPKCS7Decrypt(key, 16, make([]byte, 16))
	assert.True(t, errors.Is(err, rijndael.ErrInvalidDataSize))

	pt, err := RijndaelCBCZeroPadDecrypt(key, 16, make([]byte, 16))
	require.NoError(t, err)
	assert.Empty(t, pt)

	_, err = RijndaelCBCZeroPadDecrypt(key[:7], 16, make([]byte, 32))
	assert.True(t, errors.Is(err, rijndael.ErrInvalidKeySize))
	_, err = RijndaelCBCZeroPadDecrypt(key, 7, make([]byte, 32))
	assert.True(t, errors.Is(err, rijndael.ErrInvalidBlockSize))
}

func TestCBCEncryptInvalidIV(t *testing.T) {
	t.Parallel()

	_, err := RijndaelCBCPKCS7EncryptWithIV(make([]byte, 16), make([]byte, 32), 32, []byte("x"))
	assert.True(t, errors.Is(err, rijndael.ErrInvalidBlockSize))
	_, err = RijndaelCBCZeroPadEncryptWithIV(make([]byte, 24), make([]byte, 32), 16, []byte("x"))
	assert.True(t, errors.Is(err, rijndael.ErrInvalidBlockSize))
}

func TestGetRandomBytes(t *testing.T) {
	t.Parallel()

	_, err := GetRandomBytes(-1)
	assert.EqualError(t, err, "Len must be larger than 0")

	b, err := GetRandomBytes(0)
	require.NoError(t, err)
	assert.Empty(t, b)

	b, err = GetRandomBytes(32)
	require.NoError(t, err)
	assert.Len(t, b, 32)
}

func TestRijndaelCBCEncryptorOpts(t *testing.T) {
	t.Parallel()

	k, err := newRijndaelKey(osuKey, 32, false)
	require.NoError(t, err)
	encryptor := &rijndaelCBCEncryptor{}
	decryptor := &rijndaelCBCDecryptor{}

	ct, err := encryptor.Encrypt(k, osuPlaintext, &bccsp.RijndaelCBCZeroPadModeOpts{IV: osuIV})
	require.NoError(t, err)
	assert.Equal(t, osuCiphertext, ct[32:])

	ct, err = encryptor.Encrypt(k, osuPlaintext, bccsp.RijndaelCBCZeroPadModeOpts{IV: osuIV})
	require.NoError(t, err)
	assert.Equal(t, osuCiphertext, ct[32:])

	pt, err := decryptor.Decrypt(k, ct, bccsp.RijndaelCBCZeroPadModeOpts{})
	require.NoError(t, err)
	assert.Equal(t, osuPlaintext, pt)

	ct, err = encryptor.Encrypt(k, []byte("pkcs"), &bccsp.RijndaelCBCPKCS7ModeOpts{PRNG: bytes.NewReader(osuIV)})
	require.NoError(t, err)
	assert.Equal(t, osuIV, ct[:32])
	pt, err = decryptor.Decrypt(k, ct, &bccsp.RijndaelCBCPKCS7ModeOpts{})
	require.NoError(t, err)
	assert.Equal(t, []byte("pkcs"), pt)

	_, err = encryptor.Encrypt(k, []byte("x"), &bccsp.RijndaelCBCPKCS7ModeOpts{IV: osuIV, PRNG: rand.Reader})
	assert.EqualError(t, err, "Invalid options. Either IV or PRNG should be different from nil, or both nil.")

	_, err = encryptor.Encrypt(k, []byte("x"), nil)
	assert.EqualError(t, err, "Mode not recognized [<nil>]")
	_, err = decryptor.Decrypt(k, ct, &bccsp.SHA256Opts{})
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "Mode not recognized")
}

func TestRijndaelCBCDecryptWithIV(t *testing.T) {
	t.Parallel()

	k, err := newRijndaelKey(osuKey, 32, false)
	require.NoError(t, err)
	decryptor := &rijndaelCBCDecryptor{}

	pt, err := decryptor.Decrypt(k, osuCiphertext, &bccsp.RijndaelCBCZeroPadModeOpts{IV: osuIV})
	require.NoError(t, err)
	assert.Equal(t, osuPlaintext, pt)

	_, err = decryptor.Decrypt(k, osuCiphertext, &bccsp.RijndaelCBCZeroPadModeOpts{IV: osuIV[:16]})
	assert.True(t, errors.Is(err, rijndael.ErrInvalidBlockSize))

	k16, err := newRijndaelKey(make([]byte, 16), 16, false)
	require.NoError(t, err)
	_, err = decryptor.Decrypt(k16, make([]byte, 32), &bccsp.RijndaelCBCPKCS7ModeOpts{IV: make([]byte, 32)})
	assert.True(t, errors.Is(err, rijndael.ErrInvalidBlockSize))

	_, err = decryptor.Decrypt(k, osuCiphertext, &bccsp.RijndaelCBCPKCS7ModeOpts{PRNG: rand.Reader})
	assert.EqualError(t, err, "Invalid options. PRNG is not used for decryption.")
}

func TestRijndaelCBCPaddingMismatch(t *testing.T) {
	t.Parallel()

	k, err := newRijndaelKey(make([]byte, 16), 16, false)
	require.NoError(t, err)

	// 16 bytes of plaintext ending in 0xff: zero padding adds nothing and
	// PKCS#7 decoding reads 255 as the pad length
	ptext := bytes.Repeat([]byte{0xff}, 16)
	ct, err := (&rijndaelCBCEncryptor{}).Encrypt(k, ptext, &bccsp.RijndaelCBCZeroPadModeOpts{})
	require.NoError(t, err)

	_, err = (&rijndaelCBCDecryptor{}).Decrypt(k, ct, &bccsp.RijndaelCBCPKCS7ModeOpts{})
	assert.True(t, errors.Is(err, rijndael.ErrInvalidDataSize))
}

func BenchmarkRijndaelCBCPKCS7Encrypt(b *testing.B) {
	for _, bs := range []int{16, 24, 32} {
		key := make([]byte, 32)
		ptext := make([]byte, 1024)
		b.Run(fmt.Sprintf("block%d", bs), func(b *testing.B) {
			b.SetBytes(int64(len(ptext)))
			for i := 0; i < b.N; i++ {
				RijndaelCBCPKCS7Encrypt(key, bs, ptext)
			}
		})
	}
}
