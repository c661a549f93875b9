/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package rijndaelcli

import (
	"fmt"

	"github.com/hyperledger/fabric-rijndael/bccsp"
	"github.com/hyperledger/fabric-rijndael/bccsp/sw"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

var errNoKeyStore = errors.New("no key store configured, use --keystore")

func (c *cli) keygenCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "keygen",
		Short: "Generate a key into the key store.",
		Long:  "Generates a random key, stores it in the file based key store and prints its SKI.",
		Args:  cobra.NoArgs,
		RunE:  c.keygen,
	}
	cmd.Flags().Int("key-size", 32, "Key size in bytes: 16, 24 or 32")
	return cmd
}

func (c *cli) importCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "import",
		Short: "Import the --key into the key store.",
		Long:  "Stores the key given with --key, or in the config file, in the file based key store and prints its SKI.",
		Args:  cobra.NoArgs,
		RunE:  c.importKey,
	}
}

func (c *cli) listCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List the keys of the key store.",
		Long:  "Prints the SKI and block size of every key in the file based key store.",
		Args:  cobra.NoArgs,
		RunE:  c.list,
	}
}

func (c *cli) keygen(cmd *cobra.Command, args []string) error {
	if !c.keyStoreConfigured() {
		return errNoKeyStore
	}
	keySize, _ := cmd.Flags().GetInt("key-size")

	csp, err := c.provider()
	if err != nil {
		return err
	}
	k, err := csp.KeyGen(&bccsp.RijndaelKeyGenOpts{
		KeySize:   keySize,
		BlockSize: c.conf.Cipher.BlockSize,
	})
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "%x\n", k.SKI())
	return nil
}

func (c *cli) importKey(cmd *cobra.Command, args []string) error {
	if !c.keyStoreConfigured() {
		return errNoKeyStore
	}
	if len(c.conf.Cipher.Key) == 0 {
		return errors.New("no key provided, use --key")
	}

	csp, err := c.provider()
	if err != nil {
		return err
	}
	k, err := csp.KeyImport(c.conf.Cipher.Key, &bccsp.RijndaelKeyImportOpts{
		BlockSize: c.conf.Cipher.BlockSize,
	})
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "%x\n", k.SKI())
	return nil
}

// keyLister is implemented by key stores that can enumerate their keys.
type keyLister interface {
	SKIs() ([][]byte, error)
}

type blockSizer interface {
	BlockSize() int
}

func (c *cli) list(cmd *cobra.Command, args []string) error {
	if !c.keyStoreConfigured() {
		return errNoKeyStore
	}
	fks := c.conf.BCCSP.SwOpts.FileKeystore

	ks, err := sw.NewFileBasedKeyStore([]byte(fks.Password), fks.KeyStorePath, true)
	if err != nil {
		return err
	}
	lister, ok := ks.(keyLister)
	if !ok {
		return errors.Errorf("key store %T cannot list keys", ks)
	}
	skis, err := lister.SKIs()
	if err != nil {
		return err
	}

	for _, ski := range skis {
		k, err := ks.GetKey(ski)
		if err != nil {
			logger.Warnf("Skipping key %x: %s", ski, err)
			continue
		}
		blockSize := 0
		if bs, ok := k.(blockSizer); ok {
			blockSize = bs.BlockSize()
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%x %d\n", ski, blockSize)
	}
	return nil
}
