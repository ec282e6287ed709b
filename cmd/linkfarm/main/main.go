package main

import (
	"fmt"
	"os"

	"github.com/arthur-debert/linkfarm/cmd/linkfarm"
	"github.com/arthur-debert/linkfarm/pkg/ui/styles"
)

func main() {
	rootCmd := linkfarm.NewRootCmd()
	if err := rootCmd.Execute(); err != nil {
		errorStyle := styles.GetStyle("Error")
		fmt.Fprintln(os.Stderr, errorStyle.Render(fmt.Sprintf("Error: %v", err)))
		os.Exit(1)
	}
}
