package main

import (
	"fmt"
	"os"

	"github.com/faunadata/fauna/internal/fauna"
)

func main() {
	rootCmd := fauna.NewRootCmd()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
