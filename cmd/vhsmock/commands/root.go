// Package commands wires the vhsmock subcommands. Each subcommand is an
// independent linear pass over one or more mockup documents; no state is
// shared between them.
package commands

import "github.com/spf13/cobra"

func Execute() error {
	root := &cobra.Command{
		Use:           "vhsmock",
		Short:         "Build and inspect VHS-case mockup template assets",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(buildCmd())
	root.AddCommand(inventoryCmd())
	root.AddCommand(protoCmd())
	root.AddCommand(previewCmd())
	return root.Execute()
}
