// SPDX-License-Identifier: Apache-2.0
package main

import (
	stderrors "errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mfagerlund/gradientscript/internal/compile"
	"github.com/mfagerlund/gradientscript/internal/emit"
	"github.com/mfagerlund/gradientscript/internal/errors"
)

// errFailed marks that one or more functions failed and their diagnostics
// were already written to stderr; main only needs its exit code.
var errFailed = stderrors.New("gradientscript: compilation failed")

var compileFlags = struct {
	format          string
	noSimplify      bool
	noCSE           bool
	egraph          bool
	noComments      bool
	guards          bool
	epsilon         float64
	csharpFloatType string
}{}

func runCompile(cmd *cobra.Command, args []string) error {
	path := args[0]
	if filepath.Ext(path) != ".gs" {
		return errors.New(errors.KindParse, errors.CodeUnexpectedToken,
			fmt.Sprintf("expected a .gs source file, got %q", path))
	}

	source, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	dialect, err := parseDialect(compileFlags.format)
	if err != nil {
		return err
	}
	floatType, err := parseFloatType(compileFlags.csharpFloatType)
	if err != nil {
		return err
	}

	opts := compile.Options{
		NoSimplify: compileFlags.noSimplify,
		NoCSE:      compileFlags.noCSE,
		Emit: emit.Options{
			Dialect:         dialect,
			NoComments:      compileFlags.noComments,
			Guards:          compileFlags.guards,
			Epsilon:         compileFlags.epsilon,
			CSharpFloatType: floatType,
		},
	}

	reporter := errors.NewReporter(path, string(source))
	if dialect == emit.Python {
		reporter.CommentPrefix = "#"
	}

	results, err := compile.CompileFile(path, string(source), opts)
	if err != nil {
		fmt.Fprint(os.Stderr, formatFailure(reporter, err))
		return errFailed
	}

	failed := false
	for _, r := range results {
		if r.Err != nil {
			failed = true
			fmt.Fprint(os.Stderr, formatFailure(reporter, r.Err))
			continue
		}
		fmt.Fprintln(os.Stdout, r.Source)
	}

	if failed {
		return errFailed
	}
	return nil
}

func formatFailure(reporter *errors.Reporter, err error) string {
	if ce, ok := err.(*errors.CompilerError); ok {
		return reporter.Format(ce)
	}
	return fmt.Sprintf("%s %v\n", reporter.CommentPrefix, err)
}

func parseDialect(format string) (emit.Dialect, error) {
	switch strings.ToLower(format) {
	case string(emit.TypeScript):
		return emit.TypeScript, nil
	case string(emit.JavaScript):
		return emit.JavaScript, nil
	case string(emit.Python):
		return emit.Python, nil
	case string(emit.CSharp):
		return emit.CSharp, nil
	default:
		return "", fmt.Errorf("unknown --format %q: expected typescript, javascript, python or csharp", format)
	}
}

func parseFloatType(t string) (string, error) {
	switch strings.ToLower(t) {
	case "float":
		return "float", nil
	case "double":
		return "double", nil
	default:
		return "", fmt.Errorf("unknown --csharp-float-type %q: expected float or double", t)
	}
}
