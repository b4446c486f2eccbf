// Command sass is the getopt-style front end spec §6 describes, rebuilt on
// top of github.com/spf13/cobra rather than the teacher's hand-rolled
// argument scanner: positional `input [output]`, the style/precision/
// load-path/sourcemap flags, and a version/help pair cobra gives for free.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
