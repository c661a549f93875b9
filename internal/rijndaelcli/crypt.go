/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package rijndaelcli

import (
	"github.com/hyperledger/fabric-rijndael/bccsp"
	"github.com/hyperledger/fabric-rijndael/bccsp/rijndael"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

func (c *cli) encryptCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "encrypt [file]",
		Short: "Encrypt a file or stdin.",
		Long: `Encrypts a file, or stdin when no file is given, and writes the encoded
ciphertext. Without --iv a random IV is generated and written in front of the
ciphertext; with --iv only the ciphertext is written.`,
		Args: cobra.MaximumNArgs(1),
		RunE: c.encrypt,
	}
	cmd.Flags().StringP("output", "o", "", "Output file, stdout when empty")
	return cmd
}

func (c *cli) decryptCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "decrypt [file]",
		Short: "Decrypt a file or stdin.",
		Long: `Decrypts the encoded ciphertext of a file, or of stdin when no file is given,
and writes the plaintext. Without --iv the ciphertext must start with the IV.`,
		Args: cobra.MaximumNArgs(1),
		RunE: c.decrypt,
	}
	cmd.Flags().StringP("output", "o", "", "Output file, stdout when empty")
	return cmd
}

// modeOpts returns the opts selecting the configured padding. They serve as
// both EncrypterOpts and DecrypterOpts.
func (c *cli) modeOpts() interface{} {
	iv := c.conf.Cipher.IV
	if c.conf.Cipher.Padding == rijndael.ZeroPaddingName {
		return &bccsp.RijndaelCBCZeroPadModeOpts{IV: iv}
	}
	return &bccsp.RijndaelCBCPKCS7ModeOpts{IV: iv}
}

func (c *cli) encrypt(cmd *cobra.Command, args []string) error {
	plaintext, err := readInput(cmd, args)
	if err != nil {
		return err
	}
	codec, err := codecFor(c.conf.Cipher.Encoding)
	if err != nil {
		return err
	}

	csp, err := c.provider()
	if err != nil {
		return err
	}
	k, err := c.key(csp)
	if err != nil {
		return err
	}

	ciphertext, err := csp.Encrypt(k, plaintext, c.modeOpts())
	if err != nil {
		return errors.WithMessage(err, "encryption failed")
	}
	if iv := c.conf.Cipher.IV; len(iv) != 0 {
		ciphertext = ciphertext[len(iv):]
	}

	logger.Debugf("encrypted %d bytes into %d bytes with %s padding", len(plaintext), len(ciphertext), c.conf.Cipher.Padding)
	return writeOutput(cmd, codec.encode(ciphertext))
}

func (c *cli) decrypt(cmd *cobra.Command, args []string) error {
	in, err := readInput(cmd, args)
	if err != nil {
		return err
	}
	codec, err := codecFor(c.conf.Cipher.Encoding)
	if err != nil {
		return err
	}
	ciphertext, err := codec.decode(in)
	if err != nil {
		return errors.Wrapf(err, "error decoding %s input", c.conf.Cipher.Encoding)
	}

	csp, err := c.provider()
	if err != nil {
		return err
	}
	k, err := c.key(csp)
	if err != nil {
		return err
	}

	plaintext, err := csp.Decrypt(k, ciphertext, c.modeOpts())
	if err != nil {
		return errors.WithMessage(err, "decryption failed")
	}

	logger.Debugf("decrypted %d bytes into %d bytes with %s padding", len(ciphertext), len(plaintext), c.conf.Cipher.Padding)
	return writeOutput(cmd, plaintext)
}
