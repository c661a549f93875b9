/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package sw

import (
	"crypto/rand"
	"crypto/x509"
	"encoding/pem"
	"strconv"

	"github.com/pkg/errors"
)

const (
	rijndaelPEMType        = "RIJNDAEL PRIVATE KEY"
	blockSizePEMHeader     = "Block-Size"
	maxKeyFileSize     int = 1 << 16
)

func rijndaelToPEM(raw []byte, blockSize int) []byte {
	return pem.EncodeToMemory(&pem.Block{
		Type:    rijndaelPEMType,
		Headers: map[string]string{blockSizePEMHeader: strconv.Itoa(blockSize)},
		Bytes:   raw,
	})
}

func rijndaelToEncryptedPEM(raw []byte, blockSize int, pwd []byte) ([]byte, error) {
	if len(raw) == 0 {
		return nil, errors.New("invalid rijndael key. It must be different from nil")
	}
	if len(pwd) == 0 {
		return rijndaelToPEM(raw, blockSize), nil
	}

	block, err := x509.EncryptPEMBlock(
		rand.Reader,
		rijndaelPEMType,
		raw,
		pwd,
		x509.PEMCipherAES256)
	if err != nil {
		return nil, err
	}
	block.Headers[blockSizePEMHeader] = strconv.Itoa(blockSize)

	return pem.EncodeToMemory(block), nil
}

func pemToRijndael(raw []byte, pwd []byte) ([]byte, int, error) {
	if len(raw) == 0 {
		return nil, 0, errors.New("invalid PEM. It must be different from nil")
	}
	block, _ := pem.Decode(raw)
	if block == nil {
		return nil, 0, errors.Errorf("failed decoding PEM. Block must be different from nil [% x]", raw)
	}
	if block.Type != rijndaelPEMType {
		return nil, 0, errors.Errorf("unexpected PEM block type [%s]", block.Type)
	}

	blockSize, err := strconv.Atoi(block.Headers[blockSizePEMHeader])
	if err != nil {
		return nil, 0, errors.Wrapf(err, "invalid %s header", blockSizePEMHeader)
	}

	if x509.IsEncryptedPEMBlock(block) {
		if len(pwd) == 0 {
			return nil, 0, errors.New("encrypted Key. Password must be different fom nil")
		}

		decrypted, err := x509.DecryptPEMBlock(block, pwd)
		if err != nil {
			return nil, 0, errors.Wrap(err, "failed PEM decryption")
		}
		return decrypted, blockSize, nil
	}

	return block.Bytes, blockSize, nil
}
