// Command frameui replays and checks frame scene scripts.
package main

import (
	"fmt"
	"os"

	"github.com/go-drift/frameui/cmd/frameui/cmd"
)

func main() {
	if err := cmd.Execute(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
