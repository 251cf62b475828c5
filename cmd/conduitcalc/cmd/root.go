// Package cmd holds the conduitcalc commands.
package cmd

import "github.com/spf13/cobra"

// ExitError ends the command with a specific exit code once its output has
// been printed.
type ExitError struct {
	Code int
	Err  error
}

func (e *ExitError) Error() string { return e.Err.Error() }

func (e *ExitError) Unwrap() error { return e.Err }

// NewRootCmd builds a fresh command tree, so tests never share flag state.
func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "conduitcalc",
		Short: "Size electrical conduits offline",
		Long: `conduitcalc sizes a conduit for groups of insulated conductors and can write the
calculation memo as a PDF.

Exit codes:
  0 - A commercial size was found
  1 - Invalid input
  2 - No commercial size fits, or every group has zero conductors`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(newSizeCmd(), newTablesCmd())
	return root
}

func Execute() error {
	return NewRootCmd().Execute()
}
