// Command semcheck drives the semantic analysis and type inference
// core over a project's fixture package and reports the resulting
// diagnostics. There is no lexer or parser in this module (out of
// scope per the core's contract); "check" below demonstrates the
// convert→infer→vectorize pipeline against a hand-built package
// standing in for what a real parser would hand it.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
