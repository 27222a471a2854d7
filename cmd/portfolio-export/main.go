// Command portfolio-export renders the portfolio into a directory of static
// files for hosts that cannot run the server, such as GitHub Pages.
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
