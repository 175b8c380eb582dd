// SPDX-License-Identifier: Apache-2.0
package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/mfagerlund/gradientscript/repl"
)

func init() {
	cmd := &cobra.Command{
		Use:   "repl",
		Short: "Start an interactive compile-and-print shell",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			repl.Start(os.Stdin, os.Stdout)
			return nil
		},
	}
	rootCmd.AddCommand(cmd)
}
