package cmd

import (
	"fmt"
	"os"
)

// fatal reports the error to stderr and terminates with a non-zero status.
// Classified errors render their kind, transport status code and message
// through their Error method.
func fatal(err error) {
	fmt.Fprintln(os.Stderr, err)
	os.Exit(1)
}
