package main

import (
	"fmt"
	"os"
	_ "time/tzdata"

	"github.com/comitanigiacomo/habitual/cmd/habitctl/commands"
)

func main() {
	rootCmd := commands.NewRootCmd(commands.Options{})

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
