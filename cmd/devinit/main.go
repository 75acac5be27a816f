package main

import (
	"fmt"
	"os"

	"github.com/devinit-cli/devinit/internal/cli"
)

func main() {
	rootCmd := cli.NewRootCmd()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "devinit: %v\n", err)
		os.Exit(1)
	}
}
