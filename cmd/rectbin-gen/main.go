// Command rectbin-gen is a standalone synthetic test-image generator, kept
// separate from the main rectbin binary so CI fixtures can be produced
// without building the packer itself.
package main

import (
	"fmt"
	"os"

	"github.com/jessevdk/go-flags"
	"github.com/woozymasta/rectbin/internal/cli"
)

func main() {
	var opts cli.CmdGenerate

	parser := flags.NewParser(&opts, flags.Default)
	parser.Name = "rectbin-gen"
	parser.Usage = "[OPTIONS] <output>"

	if _, err := parser.Parse(); err != nil {
		if flagsErr, ok := err.(*flags.Error); ok && flagsErr.Type == flags.ErrHelp {
			os.Exit(0)
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if err := opts.Execute(nil); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
