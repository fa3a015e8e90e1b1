// main is the entry point for the devlog CLI.
package main

import (
	"fmt"
	"os"

	"github.com/pamout/devlog/cmd"
	"github.com/pamout/devlog/internal/history"
)

func main() {
	err := cmd.Execute()
	history.CloseStores()
	if err != nil {
		fmt.Fprintln(os.Stderr, "❌", err)
		os.Exit(1)
	}
}
