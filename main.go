package main

import (
	"fmt"
	"os"

	"github.com/alexflint/go-arg"

	"github.com/osamaGXDgaming/all-in-one-clipboard/internal/cli"
)

func main() {
	// Parse command-line arguments
	var args cli.Args
	parser := arg.MustParse(&args)

	// Create CLI instance with args for config path support
	cliHandler, err := cli.NewWithArgs(&args)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}

	// Execute the command
	if err := cliHandler.Execute(&args); err != nil {
		fmt.Printf("Error: %v\n", err)

		if args.Watch == nil && args.List == nil && args.Pinned == nil && args.Get == nil &&
			args.Pin == nil && args.Unpin == nil && args.Delete == nil && args.GC == nil &&
			args.Recents == nil && args.Config == nil {
			fmt.Println()
			parser.WriteUsage(os.Stderr)
		}
		os.Exit(1)
	}
}
