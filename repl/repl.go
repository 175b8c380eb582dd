// SPDX-License-Identifier: Apache-2.0

// Package repl is a line-oriented exploration shell: it accumulates
// source until a blank line, compiles it as a one-function file, and
// prints the generated forward and gradient code.
package repl

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/mfagerlund/gradientscript/internal/compile"
	"github.com/mfagerlund/gradientscript/internal/emit"
	"github.com/mfagerlund/gradientscript/internal/errors"
)

const PROMPT = ">> "
const CONT = ".. "

// Start reads function definitions from in, one blank-line-terminated
// block at a time, and writes their compiled forward/gradient code to
// out. ":format <dialect>" switches the target dialect; ":q" exits.
func Start(in io.Reader, out io.Writer) {
	scanner := bufio.NewScanner(in)
	dialect := emit.TypeScript

	for {
		fmt.Fprint(out, PROMPT)
		block, ok := readBlock(scanner, out)
		if !ok {
			return
		}
		if block == "" {
			continue
		}

		if cmd, arg, isCmd := parseCommand(block); isCmd {
			if cmd == "q" || cmd == "quit" {
				return
			}
			if cmd == "format" {
				d, err := parseDialect(arg)
				if err != nil {
					fmt.Fprintln(out, err)
					continue
				}
				dialect = d
				fmt.Fprintf(out, "dialect set to %s\n", dialect)
			}
			continue
		}

		runOne(out, block, dialect)
	}
}

func readBlock(scanner *bufio.Scanner, out io.Writer) (string, bool) {
	var lines []string
	for {
		if !scanner.Scan() {
			return strings.Join(lines, "\n"), len(lines) > 0
		}
		line := scanner.Text()
		if strings.TrimSpace(line) == "" {
			return strings.Join(lines, "\n"), true
		}
		lines = append(lines, line)
		fmt.Fprint(out, CONT)
	}
}

func parseCommand(block string) (cmd, arg string, ok bool) {
	if !strings.HasPrefix(block, ":") {
		return "", "", false
	}
	fields := strings.Fields(strings.TrimPrefix(block, ":"))
	if len(fields) == 0 {
		return "", "", false
	}
	if len(fields) > 1 {
		return fields[0], fields[1], true
	}
	return fields[0], "", true
}

func runOne(out io.Writer, source string, dialect emit.Dialect) {
	results, err := compile.CompileFile("<repl>", source, compile.Options{
		Emit: emit.Options{Dialect: dialect},
	})
	if err != nil {
		fmt.Fprintln(out, err)
		return
	}
	reporter := errors.NewReporter("<repl>", source)
	for _, r := range results {
		if r.Err != nil {
			if ce, ok := r.Err.(*errors.CompilerError); ok {
				fmt.Fprint(out, reporter.Format(ce))
			} else {
				fmt.Fprintln(out, r.Err)
			}
			continue
		}
		fmt.Fprintln(out, r.Source)
	}
}

func parseDialect(name string) (emit.Dialect, error) {
	switch strings.ToLower(name) {
	case string(emit.TypeScript):
		return emit.TypeScript, nil
	case string(emit.JavaScript):
		return emit.JavaScript, nil
	case string(emit.Python):
		return emit.Python, nil
	case string(emit.CSharp):
		return emit.CSharp, nil
	default:
		return "", fmt.Errorf("unknown dialect %q", name)
	}
}
