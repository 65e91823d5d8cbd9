package main

import (
	"fmt"
	"os"

	"github.com/faunadata/fauna/internal/faunad"
)

func main() {
	rootCmd := faunad.NewRootCmd()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
