/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package rijndael

import (
	"bytes"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestPKCS7Padding verifies the PKCS#7 padding, using a human readable plaintext.
func TestPKCS7Padding(t *testing.T) {
	t.Parallel()

	p := NewPKCS7Padding(16)
	assert.Equal(t, 16, p.Size())

	// 0 byte/length ptext
	assert.Equal(t, bytes.Repeat([]byte{16}, 16), p.Encode([]byte("")))

	// 1 byte/length ptext
	expected := []byte{
		'1', 15, 15, 15,
		15, 15, 15, 15,
		15, 15, 15, 15,
		15, 15, 15, 15,
	}
	assert.Equal(t, expected, p.Encode([]byte("1")))

	// 3 to BlockSize-1 byte plaintext
	ptext := []byte("1234567890ABCDEF")
	for i := 3; i < 16; i++ {
		padding := 16 - i
		expected := append(append([]byte{}, ptext[:i]...), bytes.Repeat([]byte{byte(padding)}, padding)...)
		assert.Equal(t, expected, p.Encode(ptext[:i]))
	}

	// BlockSize length ptext gains a whole block
	result := p.Encode(ptext)
	require.Len(t, result, 32)
	assert.Equal(t, bytes.Repeat([]byte{16}, 16), result[16:])
}

func TestPKCS7PaddingDoesNotAlias(t *testing.T) {
	t.Parallel()

	src := make([]byte, 3, 64)
	copy(src, "abc")
	out := NewPKCS7Padding(16).Encode(src)
	out[0] = 'x'
	assert.Equal(t, []byte("abc"), src)
	assert.Equal(t, byte(0), src[:4][3])
}

func TestPKCS7RoundTrip(t *testing.T) {
	t.Parallel()

	for _, bs := range []int{16, 24, 32} {
		p := NewPKCS7Padding(bs)
		for n := 0; n <= 3*bs; n++ {
			src := bytes.Repeat([]byte{'x'}, n)
			enc := p.Encode(src)
			require.Zero(t, len(enc)%bs)
			require.True(t, len(enc) > n)
			dec, err := p.Decode(enc)
			require.NoError(t, err)
			require.Equal(t, src, dec)
		}
	}
}

func TestPKCS7Decode(t *testing.T) {
	t.Parallel()

	p := NewPKCS7Padding(16)

	_, err := p.Decode(make([]byte, 17))
	assert.True(t, errors.Is(err, ErrInvalidDataSize))
	assert.EqualError(t, err, "length 17 is not a multiple of 16: invalid data size")

	_, err = p.Decode(nil)
	assert.True(t, errors.Is(err, ErrInvalidDataSize))

	// pad count larger than the buffer
	bad := make([]byte, 16)
	bad[15] = 200
	_, err = p.Decode(bad)
	assert.True(t, errors.Is(err, ErrInvalidDataSize))

	// pad bytes are not compared with the count
	loose := append([]byte("0123456789"), 1, 2, 3, 4, 5, 6)
	out, err := p.Decode(loose)
	require.NoError(t, err)
	assert.Equal(t, []byte("0123456789"), out)

	// a zero count strips nothing
	zero := make([]byte, 16)
	out, err = p.Decode(zero)
	require.NoError(t, err)
	assert.Len(t, out, 16)
}

func TestZeroPadding(t *testing.T) {
	t.Parallel()

	p := NewZeroPadding(16)
	assert.Equal(t, 16, p.Size())

	assert.Empty(t, p.Encode(nil))
	assert.Equal(t, append([]byte("1"), make([]byte, 15)...), p.Encode([]byte("1")))
	assert.Equal(t, append([]byte("123456789012345"), 0), p.Encode([]byte("123456789012345")))

	aligned := bytes.Repeat([]byte{'x'}, 32)
	assert.Equal(t, aligned, p.Encode(aligned))

	for n := 0; n < 64; n++ {
		enc := p.Encode(bytes.Repeat([]byte{'y'}, n))
		assert.Zero(t, len(enc)%16)
		assert.True(t, len(enc)-n < 16)
	}
}

func TestZeroPaddingDecode(t *testing.T) {
	t.Parallel()

	p := NewZeroPadding(16)

	_, err := p.Decode(make([]byte, 17))
	assert.True(t, errors.Is(err, ErrInvalidDataSize))

	out, err := p.Decode(nil)
	require.NoError(t, err)
	assert.Empty(t, out)

	out, err = p.Decode(p.Encode([]byte("hello")))
	require.NoError(t, err)
	assert.Equal(t, []byte("hello"), out)

	// trailing zeros of the plaintext are indistinguishable from padding
	out, err = p.Decode(p.Encode([]byte{'a', 0, 0}))
	require.NoError(t, err)
	assert.Equal(t, []byte{'a'}, out)

	// the scan never leaves the final block, and keeps its first byte
	src := append(bytes.Repeat([]byte{0}, 16), make([]byte, 16)...)
	out, err = p.Decode(src)
	require.NoError(t, err)
	assert.Len(t, out, 17)

	// block aligned data without trailing zeros is untouched
	full := bytes.Repeat([]byte{'z'}, 32)
	out, err = p.Decode(full)
	require.NoError(t, err)
	assert.Equal(t, full, out)
}

func TestParsePadding(t *testing.T) {
	t.Parallel()

	f, err := ParsePadding("zero")
	require.NoError(t, err)
	assert.IsType(t, &ZeroPadding{}, f(16))

	f, err = ParsePadding("PKCS7")
	require.NoError(t, err)
	assert.IsType(t, &PKCS7Padding{}, f(24))
	assert.Equal(t, 24, f(24).Size())

	_, err = ParsePadding("iso10126")
	assert.EqualError(t, err, "unknown padding scheme 'iso10126'")

	name, err := PaddingName("PKCS#7")
	require.NoError(t, err)
	assert.Equal(t, PKCS7PaddingName, name)
	name, err = PaddingName("Zero")
	require.NoError(t, err)
	assert.Equal(t, ZeroPaddingName, name)
	_, err = PaddingName("")
	assert.EqualError(t, err, "unknown padding scheme ''")
}
