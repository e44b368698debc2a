// Package cli implements the command-line interface for rectbin.
package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/jessevdk/go-flags"
)

// buildVersion is overridden at build time via -ldflags.
var buildVersion = "dev"

// Root defines global CLI flags.
type Root struct{}

// CmdVersion prints build metadata.
type CmdVersion struct{}

// Execute runs the version command.
func (c *CmdVersion) Execute(args []string) error {
	fmt.Printf("rectbin %s\n", buildVersion)
	return nil
}

// Run parses arguments and executes the selected command.
func Run(args []string) error {
	var root Root

	parser := flags.NewParser(&root, flags.Default)
	parser.Name = filepath.Base(os.Args[0])

	prog := parser.Name
	if _, err := parser.AddCommand(
		"pack",
		"Pack images into an atlas + manifest",
		fmt.Sprintf(
			`Pack a directory of images into one or more atlas textures plus a YAML manifest.

Examples:
  %s pack ./icons
  %s pack ./icons ./out --force --rotate
  %s pack ./icons --group-dirs --width 2048 --height 2048`,
			prog, prog, prog,
		),
		&CmdPack{},
	); err != nil {
		return err
	}

	if _, err := parser.AddCommand(
		"build",
		"Build projects from .rectbin.yaml",
		fmt.Sprintf(
			`Run multiple pack jobs from a config file.

Examples:
  %s build ./my-rectbin.yaml
  %s build --project ui --project icons`,
			prog, prog,
		),
		&CmdBuild{},
	); err != nil {
		return err
	}

	if _, err := parser.AddCommand(
		"generate",
		"Generate synthetic test images",
		fmt.Sprintf(
			`Generate random PNG test images suitable for exercising the packer.

Examples:
  %s generate ./testdata -c 50 -m 16 -M 256`,
			prog,
		),
		&CmdGenerate{},
	); err != nil {
		return err
	}

	if _, err := parser.AddCommand(
		"version",
		"Print build metadata",
		fmt.Sprintf(
			`Show build information.

Examples:
  %s version`,
			prog,
		),
		&CmdVersion{},
	); err != nil {
		return err
	}

	_, err := parser.ParseArgs(args)

	if err != nil {
		if fe, ok := err.(*flags.Error); ok && fe.Type == flags.ErrHelp {
			return nil
		}
		return err
	}

	return nil
}
