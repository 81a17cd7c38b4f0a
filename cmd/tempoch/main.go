// The tempoch command converts between astronomical time scales and
// interprets tempoch scripts.
// With no arguments and a terminal on stdin, it starts a read-eval-print
// loop (REPL); otherwise it executes the program read from stdin.
package main // import "github.com/Siderust/tempoch/cmd/tempoch"

import (
	"errors"
	"fmt"
	"os"
)

func main() {
	os.Exit(doMain())
}

func doMain() int {
	if err := newRootCmd().Execute(); err != nil {
		if !errors.Is(err, errReported) {
			fmt.Fprintln(os.Stderr, "tempoch:", err)
		}
		return 1
	}
	return 0
}
