/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package rijndael

import (
	"bytes"
	"strings"

	"github.com/pkg/errors"
)

// Padding maps arbitrary length plaintext to a multiple of the block size and
// back.
type Padding interface {
	// Encode returns src extended to a multiple of the block size. It never
	// fails.
	Encode(src []byte) []byte
	// Decode strips the padding added by Encode. It fails with
	// ErrInvalidDataSize when src is not a multiple of the block size.
	Decode(src []byte) ([]byte, error)
	// Size returns the block size the padding was created for.
	Size() int
}

// PaddingFactory creates a Padding for a block size.
type PaddingFactory func(blockSize int) Padding

// Names accepted by ParsePadding.
const (
	ZeroPaddingName  = "zero"
	PKCS7PaddingName = "pkcs7"
)

// PaddingName returns the canonical name of a padding scheme. Matching is
// case insensitive and "pkcs#7" is accepted for PKCS7PaddingName.
func PaddingName(name string) (string, error) {
	switch strings.ToLower(name) {
	case ZeroPaddingName:
		return ZeroPaddingName, nil
	case PKCS7PaddingName, "pkcs#7":
		return PKCS7PaddingName, nil
	default:
		return "", errors.Errorf("unknown padding scheme '%s'", name)
	}
}

// ParsePadding returns the factory registered under name.
func ParsePadding(name string) (PaddingFactory, error) {
	canonical, err := PaddingName(name)
	if err != nil {
		return nil, err
	}
	if canonical == ZeroPaddingName {
		return NewZeroPadding, nil
	}
	return NewPKCS7Padding, nil
}

func ensureSize(src []byte, blockSize int) error {
	if len(src)%blockSize != 0 {
		return errors.WithMessagef(ErrInvalidDataSize, "length %d is not a multiple of %d", len(src), blockSize)
	}
	return nil
}

// ZeroPadding fills the last block with zero bytes. Block aligned input,
// including empty input, is left as is.
//
// Decoding cannot tell padding from plaintext that ends in zero bytes; such
// trailing zeros are lost.
type ZeroPadding struct {
	blockSize int
}

// NewZeroPadding returns a zero padding for blockSize.
func NewZeroPadding(blockSize int) Padding {
	return &ZeroPadding{blockSize: blockSize}
}

func (p *ZeroPadding) Size() int { return p.blockSize }

func (p *ZeroPadding) Encode(src []byte) []byte {
	n := p.blockSize - ((len(src)+p.blockSize-1)%p.blockSize + 1)
	out := make([]byte, len(src), len(src)+n)
	copy(out, src)
	return append(out, make([]byte, n)...)
}

// Decode removes the trailing run of zero bytes of the final block. The first
// byte of the final block is always kept, since Encode never produces a block
// made of padding only.
func (p *ZeroPadding) Decode(src []byte) ([]byte, error) {
	if err := ensureSize(src, p.blockSize); err != nil {
		return nil, err
	}
	if len(src) == 0 {
		return []byte{}, nil
	}

	end := len(src)
	floor := len(src) - p.blockSize + 1
	for end > floor && src[end-1] == 0 {
		end--
	}
	return src[:end], nil
}

// PKCS7Padding appends n bytes of value n, 1 <= n <= block size, so block
// aligned input gains a full block.
type PKCS7Padding struct {
	blockSize int
}

// NewPKCS7Padding returns a PKCS#7 padding for blockSize.
func NewPKCS7Padding(blockSize int) Padding {
	return &PKCS7Padding{blockSize: blockSize}
}

func (p *PKCS7Padding) Size() int { return p.blockSize }

func (p *PKCS7Padding) Encode(src []byte) []byte {
	n := p.blockSize - len(src)%p.blockSize
	out := make([]byte, len(src), len(src)+n)
	copy(out, src)
	return append(out, bytes.Repeat([]byte{byte(n)}, n)...)
}

// Decode truncates as many bytes as the value of the last byte. The padding
// bytes themselves are not compared against the count, which keeps decoding
// compatible with existing producers that fill the pad loosely. A count that
// exceeds the input is reported as ErrInvalidDataSize.
func (p *PKCS7Padding) Decode(src []byte) ([]byte, error) {
	if err := ensureSize(src, p.blockSize); err != nil {
		return nil, err
	}
	if len(src) == 0 {
		return nil, errors.WithMessage(ErrInvalidDataSize, "no padding block")
	}

	n := int(src[len(src)-1])
	if n > len(src) {
		return nil, errors.WithMessagef(ErrInvalidDataSize, "padding length %d exceeds data length %d", n, len(src))
	}
	return src[:len(src)-n], nil
}
