/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package rijndaelcli

import (
	"strings"

	"github.com/hyperledger/fabric-rijndael/bccsp"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

func (c *cli) digestCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "digest [file]",
		Short: "Hash a file or stdin.",
		Long: `Hashes a file, or stdin when no file is given, and writes the encoded digest.
The 256 bit member of the --hash-family is used unless --algorithm names a
hash function.`,
		Args: cobra.MaximumNArgs(1),
		RunE: c.digest,
	}
	cmd.Flags().String("algorithm", "", "Hash function: SHA256, SHA384, SHA3_256 or SHA3_384")
	cmd.Flags().StringP("output", "o", "", "Output file, stdout when empty")
	return cmd
}

func (c *cli) digest(cmd *cobra.Command, args []string) error {
	var opts bccsp.HashOpts
	if name, _ := cmd.Flags().GetString("algorithm"); name != "" {
		o, err := bccsp.GetHashOpt(strings.ToUpper(name))
		if err != nil {
			return err
		}
		opts = o
	}

	in, err := readInput(cmd, args)
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
	digest, err := csp.Hash(in, opts)
	if err != nil {
		return errors.WithMessage(err, "hashing failed")
	}

	return writeOutput(cmd, codec.encode(digest))
}
