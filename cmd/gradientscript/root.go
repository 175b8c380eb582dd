// SPDX-License-Identifier: Apache-2.0
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "gradientscript [file.gs]",
	Short: "Compile a GradientScript source file into differentiated target code",
	Long: `gradientscript reads a .gs source file, differentiates every
gradient-required parameter of each function it declares, numerically
verifies the result, and prints the generated forward and gradient
functions in the requested target dialect.`,
	Args:          cobra.ExactArgs(1),
	SilenceErrors: true,
	SilenceUsage:  true,
	RunE:          runCompile,
}

func init() {
	flags := rootCmd.Flags()
	flags.StringVar(&compileFlags.format, "format", "typescript", "target dialect: typescript, javascript, python, csharp")
	flags.BoolVar(&compileFlags.noSimplify, "no-simplify", false, "skip the simplifier")
	flags.BoolVar(&compileFlags.noCSE, "no-cse", false, "skip the e-graph / extractor and emit inlined gradients directly")
	flags.BoolVar(&compileFlags.egraph, "egraph", false, "explicitly enable e-graph optimization (default unless --no-cse)")
	flags.BoolVar(&compileFlags.noComments, "no-comments", false, "omit commentary from emitted source")
	flags.BoolVar(&compileFlags.guards, "guards", false, "emit epsilon-guarded divisions (experimental)")
	flags.Float64Var(&compileFlags.epsilon, "epsilon", 1e-10, "epsilon used by --guards")
	flags.StringVar(&compileFlags.csharpFloatType, "csharp-float-type", "double", "float or double, for --format csharp")
}

// Execute runs the root command. runCompile reports its own diagnostics
// to stderr as it discovers them; any error bubbling up here (e.g. a bad
// flag, a missing file) has not yet been printed and gets one line here
// (spec §6: "Exit codes: 0 on success; 1 on any ... failure").
func Execute() error {
	err := rootCmd.Execute()
	if err != nil && err != errFailed {
		fmt.Fprintf(os.Stderr, "%v\n", err)
	}
	return err
}
