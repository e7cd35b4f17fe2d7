package cmd

import (
	"fmt"

	"github.com/go-drift/frameui/pkg/config"
)

func init() {
	RegisterCommand(&Command{
		Name:  "version",
		Short: "Show version information",
		Long:  "Show the frameui version and the config schema it understands.",
		Usage: "frameui version",
		Run: func(args []string) error {
			printVersion()
			return nil
		},
	})
}

func printVersion() {
	fmt.Fprintf(stdout, "frameui version %s (built %s, config schema %s)\n", Version, BuildTime, config.SchemaVersion)
}
