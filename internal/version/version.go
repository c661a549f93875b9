/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package version

import (
	"fmt"

	"github.com/hyperledger/fabric-rijndael/common/metadata"
	"github.com/spf13/cobra"
)

// Cmd returns a new Cobra Command for Version
func Cmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print rijndael version.",
		Long:  `Print current version of the rijndael command line tool.`,
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) != 0 {
				return fmt.Errorf("trailing args detected")
			}
			// Parsing of the command line is done so silence cmd usage
			cmd.SilenceUsage = true
			fmt.Fprint(cmd.OutOrStdout(), metadata.GetVersionInfo())
			return nil
		},
	}
}
