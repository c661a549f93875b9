/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package sw

import (
	"bytes"
	"encoding/hex"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/hyperledger/fabric-rijndael/bccsp"
	"github.com/pkg/errors"
)

const keyFileSuffix = "_key"

// NewFileBasedKeyStore instantiated a file-based key store at a given position.
// The key store can be encrypted if a non-empty password is specified.
// It can be also be set as read only. In this case, any store operation
// will be forbidden
func NewFileBasedKeyStore(pwd []byte, path string, readOnly bool) (bccsp.KeyStore, error) {
	ks := &fileBasedKeyStore{}
	return ks, ks.Init(pwd, path, readOnly)
}

// fileBasedKeyStore is a folder-based KeyStore.
// Each key is stored in a separated PEM file named after the key's SKI.
// The PEM block carries the block size of the key in a header. All the keys
// are stored in a folder whose path is provided at initialization time.
// The KeyStore can be initialized with a password, this password
// is used to encrypt and decrypt the files storing the keys.
// A KeyStore can be read only to avoid the overwriting of keys.
type fileBasedKeyStore struct {
	path string

	readOnly bool
	isOpen   bool

	pwd []byte

	// Sync
	m sync.Mutex
}

// Init initializes this KeyStore with a password, a path to a folder
// where the keys are stored and a read only flag.
// The pwd can be nil for non-encrypted KeyStores. If an encrypted
// key-store is initialized without a password, then retrieving keys from the
// KeyStore will fail.
func (ks *fileBasedKeyStore) Init(pwd []byte, path string, readOnly bool) error {
	if len(path) == 0 {
		return errors.New("an invalid KeyStore path provided. Path cannot be an empty string")
	}

	ks.m.Lock()
	defer ks.m.Unlock()

	if ks.isOpen {
		return errors.New("keystore is already initialized")
	}

	ks.path = path

	clone := make([]byte, len(pwd))
	copy(clone, pwd)
	ks.pwd = clone
	ks.readOnly = readOnly

	exists, err := dirExists(path)
	if err != nil {
		return err
	}
	if !exists {
		err = ks.createKeyStore()
		if err != nil {
			return err
		}
		return ks.openKeyStore()
	}

	empty, err := dirEmpty(path)
	if err != nil {
		return err
	}
	if empty {
		err = ks.createKeyStore()
		if err != nil {
			return err
		}
	}

	return ks.openKeyStore()
}

// ReadOnly returns true if this KeyStore is read only, false otherwise.
// If ReadOnly is true then StoreKey will fail.
func (ks *fileBasedKeyStore) ReadOnly() bool {
	return ks.readOnly
}

// GetKey returns a key object whose SKI is the one passed.
func (ks *fileBasedKeyStore) GetKey(ski []byte) (bccsp.Key, error) {
	// Validate arguments
	if len(ski) == 0 {
		return nil, errors.New("invalid SKI. Cannot be of zero length")
	}

	alias := hex.EncodeToString(ski)
	raw, blockSize, err := ks.loadKey(alias)
	if err != nil {
		if os.IsNotExist(errors.Cause(err)) {
			return nil, errors.Errorf("key with SKI %x not found in %s", ski, ks.path)
		}
		return nil, errors.WithMessagef(err, "failed loading key [%x]", ski)
	}

	k, err := newRijndaelKey(raw, blockSize, false)
	if err != nil {
		return nil, errors.WithMessagef(err, "failed loading key [%x]", ski)
	}
	if !bytes.Equal(k.SKI(), ski) {
		return nil, errors.Errorf("key stored under SKI %x has SKI %x", ski, k.SKI())
	}

	return k, nil
}

// StoreKey stores the key k in this KeyStore.
// If this KeyStore is read only then the method will fail.
func (ks *fileBasedKeyStore) StoreKey(k bccsp.Key) (err error) {
	if ks.readOnly {
		return errors.New("read only KeyStore")
	}

	if k == nil {
		return errors.New("invalid key. It must be different from nil")
	}
	switch kk := k.(type) {
	case *rijndaelKey:
		err = ks.storeKey(hex.EncodeToString(k.SKI()), kk.privKey, kk.blockSize)
		if err != nil {
			return errors.WithMessage(err, "failed storing Rijndael key")
		}

	default:
		return errors.Errorf("key type not recognized [%s]", k)
	}

	return
}

// SKIs lists the identifiers of the keys held by the store, in lexical order
// of their hex encoding.
func (ks *fileBasedKeyStore) SKIs() ([][]byte, error) {
	entries, err := os.ReadDir(ks.path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed reading KeyStore at %s", ks.path)
	}

	var names []string
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), keyFileSuffix) {
			continue
		}
		names = append(names, strings.TrimSuffix(e.Name(), keyFileSuffix))
	}
	sort.Strings(names)

	var skis [][]byte
	for _, name := range names {
		ski, err := hex.DecodeString(name)
		if err != nil {
			logger.Warnf("Ignoring [%s] in KeyStore at [%s]: not an SKI", name, ks.path)
			continue
		}
		skis = append(skis, ski)
	}
	return skis, nil
}

func (ks *fileBasedKeyStore) storeKey(alias string, key []byte, blockSize int) error {
	pem, err := rijndaelToEncryptedPEM(key, blockSize, ks.pwd)
	if err != nil {
		logger.Errorf("Failed converting key to PEM [%s]: [%s]", alias, err)
		return err
	}

	err = os.WriteFile(ks.getPathForAlias(alias), pem, 0600)
	if err != nil {
		logger.Errorf("Failed storing key [%s]: [%s]", alias, err)
		return err
	}

	return nil
}

func (ks *fileBasedKeyStore) loadKey(alias string) ([]byte, int, error) {
	path := ks.getPathForAlias(alias)
	logger.Debugf("Loading key [%s] at [%s]...", alias, path)

	fi, err := os.Stat(path)
	if err != nil {
		return nil, 0, err
	}
	if fi.Size() > int64(maxKeyFileSize) {
		return nil, 0, errors.Errorf("key file %s is too large (%d bytes)", path, fi.Size())
	}

	pem, err := os.ReadFile(path)
	if err != nil {
		logger.Errorf("Failed loading key [%s]: [%s].", alias, err.Error())

		return nil, 0, err
	}

	key, blockSize, err := pemToRijndael(pem, ks.pwd)
	if err != nil {
		logger.Errorf("Failed parsing key [%s]: [%s]", alias, err)

		return nil, 0, err
	}

	return key, blockSize, nil
}

func (ks *fileBasedKeyStore) createKeyStore() error {
	// Create keystore directory root if it doesn't exist yet
	ksPath := ks.path
	logger.Debugf("Creating KeyStore at [%s]...", ksPath)

	err := os.MkdirAll(ksPath, 0755)
	if err != nil {
		return err
	}

	logger.Debugf("KeyStore created at [%s].", ksPath)
	return nil
}

func (ks *fileBasedKeyStore) openKeyStore() error {
	if ks.isOpen {
		return nil
	}
	ks.isOpen = true
	logger.Debugf("KeyStore opened at [%s]...done", ks.path)

	return nil
}

func (ks *fileBasedKeyStore) getPathForAlias(alias string) string {
	return filepath.Join(ks.path, alias+keyFileSuffix)
}

func dirExists(path string) (bool, error) {
	_, err := os.Stat(path)
	if err == nil {
		return true, nil
	}
	if os.IsNotExist(err) {
		return false, nil
	}
	return false, err
}

func dirEmpty(path string) (bool, error) {
	f, err := os.Open(path)
	if err != nil {
		return false, err
	}
	defer f.Close()

	_, err = f.Readdir(1)
	if err == io.EOF {
		return true, nil
	}
	return false, err
}
