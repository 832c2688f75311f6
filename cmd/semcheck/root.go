package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

// Version info, set by ldflags during build.
var (
	Version   = "dev"
	Commit    = "unknown"
	BuildTime = "unknown"
)

var (
	green = color.New(color.FgGreen).SprintFunc()
	bold  = color.New(color.Bold).SprintFunc()
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "semcheck",
		Short: "Semantic analysis and type inference for the language's query core",
		Long: bold("semcheck") + ` runs the Hindley-Milner inference core over a
project's source package and reports type errors with their source
locations.`,
		SilenceUsage: true,
	}

	root.AddCommand(newCheckCmd())
	root.AddCommand(newVersionCmd())
	return root
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintf(cmd.OutOrStdout(), "semcheck %s\n", green(Version))
			if Commit != "unknown" {
				fmt.Fprintf(cmd.OutOrStdout(), "commit:  %s\n", Commit)
			}
			if BuildTime != "unknown" {
				fmt.Fprintf(cmd.OutOrStdout(), "built:   %s\n", BuildTime)
			}
			return nil
		},
	}
}
