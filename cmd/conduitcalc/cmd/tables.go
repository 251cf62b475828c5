package cmd

import (
	"fmt"
	"io"

	"Conduit/internal/calc/conduit"

	"github.com/spf13/cobra"
)

func newTablesCmd() *cobra.Command {
	var jsonOutput bool
	c := &cobra.Command{
		Use:   "tables",
		Short: "List insulations, gauges and commercial conduit sizes",
		RunE: func(c *cobra.Command, args []string) error {
			if jsonOutput {
				return writeJSON(c.OutOrStdout(), conduit.AvailableOptions())
			}
			printTables(c.OutOrStdout())
			return nil
		},
	}
	c.Flags().BoolVar(&jsonOutput, "json", false, "Output JSON instead of human-readable text")
	return c
}

func printTables(w io.Writer) {
	opts := conduit.AvailableOptions()
	fmt.Fprintln(w, "Isolação (bitola mm² -> diâmetro externo mm)")
	for _, ins := range opts.Insulations {
		fmt.Fprintf(w, "  %s\n", ins.Insulation)
		for _, d := range ins.Gauges {
			fmt.Fprintf(w, "    %6g -> %5.1f\n", d.Gauge, d.DiameterMM)
		}
	}
	fmt.Fprintln(w, "Eletrodutos (tamanho -> área útil mm²)")
	for _, ct := range opts.ConduitTypes {
		fmt.Fprintf(w, "  %s\n", ct.ConduitType)
		for _, s := range ct.Sizes {
			fmt.Fprintf(w, "    %-8s %9.2f\n", s.Label, s.AreaMM2)
		}
	}
	fmt.Fprintf(w, "Máximo de %d grupos, até %d condutores por grupo\n", opts.MaxGroups, opts.MaxQuantity)
}
