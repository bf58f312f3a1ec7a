package main

import (
	"fmt"
	"os"

	"github.com/cwarden/calnote/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "calnote: %v\n", err)
		os.Exit(1)
	}
}
