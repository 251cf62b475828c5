package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"Conduit/internal/calc/conduit"
	"Conduit/internal/calc/report"

	"github.com/spf13/cobra"
)

type sizeOptions struct {
	conduitType string
	groups      []string
	pdfPath     string
	author      string
	jsonOutput  bool
}

func newSizeCmd() *cobra.Command {
	opts := &sizeOptions{}
	c := &cobra.Command{
		Use:   "size",
		Short: "Size a conduit for one to five conductor groups",
		Example: `  conduitcalc size --conduit "Rígido PVC" --group "2.5:3:PVC 750V"
  conduitcalc size --conduit "PEAD Corrugado" --group "35:4:XLPE 1kV" --pdf memo.pdf`,
		RunE: func(c *cobra.Command, args []string) error {
			return runSize(c.OutOrStdout(), opts, time.Now())
		},
	}
	c.Flags().StringVar(&opts.conduitType, "conduit", string(conduit.ConduitRigidPVC), "Conduit type")
	c.Flags().StringArrayVar(&opts.groups, "group", nil, `Conductor group as "gauge:quantity:insulation" (repeatable)`)
	c.Flags().StringVar(&opts.pdfPath, "pdf", "", "Write the calculation memo to this PDF file")
	c.Flags().StringVar(&opts.author, "author", report.DefaultAuthor, "Author printed in the memo footer")
	c.Flags().BoolVar(&opts.jsonOutput, "json", false, "Output JSON instead of human-readable text")
	return c
}

// parseGroup reads "gauge:quantity:insulation". The gauge accepts a decimal comma.
func parseGroup(s string) (conduit.GroupInput, error) {
	parts := strings.SplitN(s, ":", 3)
	if len(parts) != 3 {
		return conduit.GroupInput{}, fmt.Errorf("group %q: want gauge:quantity:insulation", s)
	}
	gauge, err := strconv.ParseFloat(strings.ReplaceAll(strings.TrimSpace(parts[0]), ",", "."), 64)
	if err != nil {
		return conduit.GroupInput{}, fmt.Errorf("group %q: gauge: %w", s, err)
	}
	qty, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil {
		return conduit.GroupInput{}, fmt.Errorf("group %q: quantity: %w", s, err)
	}
	return conduit.GroupInput{
		Gauge:      gauge,
		Quantity:   qty,
		Insulation: conduit.InsulationType(strings.TrimSpace(parts[2])),
	}, nil
}

func runSize(w io.Writer, opts *sizeOptions, now time.Time) error {
	in := conduit.Input{ConduitType: conduit.ConduitType(opts.conduitType)}
	for _, g := range opts.groups {
		gi, err := parseGroup(g)
		if err != nil {
			return err
		}
		in.Groups = append(in.Groups, gi)
	}

	res, calcErr := conduit.Calculate(in)
	if calcErr != nil && !conduit.IsOutcome(calcErr) {
		return calcErr
	}
	if errors.Is(calcErr, conduit.ErrEmptyRequest) {
		if opts.jsonOutput {
			if err := writeJSON(w, conduit.ErrorResponse{Error: calcErr.Error(), Code: conduit.Code(calcErr), Guidance: conduit.EmptyGuidance}); err != nil {
				return err
			}
		} else {
			fmt.Fprintln(w, conduit.EmptyGuidance)
		}
		return &ExitError{Code: 2, Err: calcErr}
	}

	doc, err := report.FromOutcome(res, calcErr)
	if err != nil {
		return err
	}
	doc.Author = opts.author
	doc.GeneratedAt = now

	if opts.jsonOutput {
		var out any = res
		if calcErr != nil {
			partial := doc.Result
			out = conduit.ErrorResponse{Error: calcErr.Error(), Code: conduit.Code(calcErr), Guidance: conduit.SplitGuidance, Partial: &partial}
		}
		if err := writeJSON(w, out); err != nil {
			return err
		}
	} else {
		for _, l := range report.Lines(doc) {
			if l.Style == report.StyleNote {
				continue
			}
			fmt.Fprintln(w, l.Text)
		}
	}

	if opts.pdfPath != "" {
		if err := writePDF(opts.pdfPath, doc); err != nil {
			return err
		}
		if !opts.jsonOutput {
			fmt.Fprintf(w, "Memória salva em %s\n", opts.pdfPath)
		}
	}

	if calcErr != nil {
		return &ExitError{Code: 2, Err: calcErr}
	}
	return nil
}

func writePDF(path string, doc report.Document) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := report.Write(f, doc); err != nil {
		f.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	return f.Close()
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	return nil
}
