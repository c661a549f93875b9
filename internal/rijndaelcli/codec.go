/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package rijndaelcli

import (
	"bytes"
	"encoding/base64"
	"encoding/hex"
	"strings"

	"github.com/pkg/errors"
)

const (
	hexEncoding    = "hex"
	base64Encoding = "base64"
	rawEncoding    = "raw"
)

// codec converts ciphertext to and from its printable form.
type codec struct {
	encode func([]byte) []byte
	decode func([]byte) ([]byte, error)
}

func codecFor(name string) (*codec, error) {
	switch strings.ToLower(name) {
	case hexEncoding:
		return &codec{
			encode: func(b []byte) []byte { return []byte(hex.EncodeToString(b) + "\n") },
			decode: func(b []byte) ([]byte, error) { return hex.DecodeString(string(bytes.TrimSpace(b))) },
		}, nil
	case base64Encoding:
		return &codec{
			encode: func(b []byte) []byte { return []byte(base64.StdEncoding.EncodeToString(b) + "\n") },
			decode: func(b []byte) ([]byte, error) { return base64.StdEncoding.DecodeString(string(bytes.TrimSpace(b))) },
		}, nil
	case rawEncoding:
		return &codec{
			encode: func(b []byte) []byte { return b },
			decode: func(b []byte) ([]byte, error) { return b, nil },
		}, nil
	default:
		return nil, errors.Errorf("unknown encoding '%s', expected one of %s, %s or %s", name, hexEncoding, base64Encoding, rawEncoding)
	}
}

func decodeHexFlag(name, value string) ([]byte, error) {
	b, err := hex.DecodeString(strings.TrimPrefix(value, "0x"))
	if err != nil {
		return nil, errors.Wrapf(err, "invalid --%s", name)
	}
	return b, nil
}
