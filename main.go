package main

import (
	"fmt"
	"os"

	cmd "github.com/meshops/meshsvc/cmd/meshsvc"
)

func main() {
	err := cmd.Meshsvc.Execute()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
