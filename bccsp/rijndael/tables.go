/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package rijndael

import "math/bits"

// Reducing polynomial of GF(2^8): x^8 + x^4 + x^3 + x + 1.
const poly = 0x11b

var (
	sbox    [256]byte
	sboxInv [256]byte

	// Forward round tables. te[i][x] folds SubBytes and the i-th column of
	// MixColumns for input byte x.
	te [4][256]uint32
	// Inverse round tables, built on the inverse S-box and InvMixColumns.
	td [4][256]uint32
	// InvMixColumns applied to a bare byte; used to move encryption round
	// keys into the equivalent inverse cipher's key space.
	tu [4][256]uint32

	rcon [30]byte
)

// shifts holds the ShiftRow offsets indexed by [block words/2-2][row][dir],
// where dir 0 is encryption and dir 1 decryption.
var shifts = [3][4][2]int{
	{{0, 0}, {1, 3}, {2, 2}, {3, 1}},
	{{0, 0}, {1, 5}, {2, 4}, {3, 3}},
	{{0, 0}, {1, 7}, {3, 5}, {4, 4}},
}

// MixColumns and InvMixColumns coefficient rows.
var (
	mixRows    = [4][4]byte{{2, 1, 1, 3}, {3, 2, 1, 1}, {1, 3, 2, 1}, {1, 1, 3, 2}}
	invMixRows = [4][4]byte{{0x0e, 0x09, 0x0d, 0x0b}, {0x0b, 0x0e, 0x09, 0x0d}, {0x0d, 0x0b, 0x0e, 0x09}, {0x09, 0x0d, 0x0b, 0x0e}}
)

func init() {
	var alog [256]int
	var log [256]int

	alog[0] = 1
	for i := 1; i < 256; i++ {
		j := alog[i-1]<<1 ^ alog[i-1]
		if j&0x100 != 0 {
			j ^= poly
		}
		alog[i] = j
	}
	for i := 1; i < 255; i++ {
		log[alog[i]] = i
	}

	mul := func(a, b byte) byte {
		if a == 0 || b == 0 {
			return 0
		}
		return byte(alog[(log[a]+log[b])%255])
	}

	for x := 0; x < 256; x++ {
		var b byte
		if x != 0 {
			b = byte(alog[255-log[x]])
		}
		s := b ^ bits.RotateLeft8(b, 1) ^ bits.RotateLeft8(b, 2) ^ bits.RotateLeft8(b, 3) ^ bits.RotateLeft8(b, 4) ^ 0x63
		sbox[x] = s
		sboxInv[s] = byte(x)
	}

	word := func(v byte, row [4]byte) uint32 {
		return uint32(mul(v, row[0]))<<24 | uint32(mul(v, row[1]))<<16 | uint32(mul(v, row[2]))<<8 | uint32(mul(v, row[3]))
	}

	for x := 0; x < 256; x++ {
		for i := 0; i < 4; i++ {
			te[i][x] = word(sbox[x], mixRows[i])
			td[i][x] = word(sboxInv[x], invMixRows[i])
			tu[i][x] = word(byte(x), invMixRows[i])
		}
	}

	rcon[0] = 1
	for i := 1; i < len(rcon); i++ {
		rcon[i] = mul(rcon[i-1], 2)
	}
}
