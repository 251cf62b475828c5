package importer

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"Conduit/internal/calc/conduit"
	"Conduit/internal/calc/premium/batch"

	"github.com/xuri/excelize/v2"
)

// Row is one conduit run read from the workbook. Line is the 1-based sheet row.
type Row struct {
	Line  int
	Input conduit.Input
	Err   error
}

type RowResult struct {
	Line int `json:"line"`
	batch.ItemResult
}

type ConduitImportResult struct {
	Count   int         `json:"count"`
	Sized   int         `json:"sized"`
	Results []RowResult `json:"results"`
}

var ErrEmptySheet = errors.New("empty sheet")

// ReadWorkbook reads the first sheet of an xlsx workbook. The header row is
// skipped; each following row is
//
//	conduit_type, gauge1, qty1, insulation1, ..., gauge5, qty5, insulation5
//
// Blank triples are ignored. Rows that fail to parse keep their error so the
// caller can report them next to the rows that succeeded.
func ReadWorkbook(r io.Reader) ([]Row, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("invalid file: %w", err)
	}
	defer f.Close()

	sheet := f.GetSheetName(0)
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, err
	}
	if len(rows) < 2 {
		return nil, ErrEmptySheet
	}

	var out []Row
	for i := 1; i < len(rows); i++ {
		if blank(rows[i]) {
			continue
		}
		in, err := parseConduitRow(rows[i])
		out = append(out, Row{Line: i + 1, Input: in, Err: err})
	}
	if len(out) == 0 {
		return nil, ErrEmptySheet
	}
	return out, nil
}

// Size runs every parsed row through the calculator.
func Size(rows []Row) ConduitImportResult {
	out := ConduitImportResult{Count: len(rows), Results: make([]RowResult, 0, len(rows))}
	for i, row := range rows {
		var item batch.ItemResult
		if row.Err != nil {
			item = batch.ItemResult{Index: i, Error: row.Err.Error(), Code: "bad_row"}
		} else {
			res, err := conduit.Calculate(row.Input)
			item = batch.Item(i, res, err)
			if err == nil {
				out.Sized++
			}
		}
		out.Results = append(out.Results, RowResult{Line: row.Line, ItemResult: item})
	}
	return out
}

func parseConduitRow(row []string) (conduit.Input, error) {
	if len(row) < 4 {
		return conduit.Input{}, fmt.Errorf("bad row: need conduit type and at least one gauge, quantity, insulation")
	}
	in := conduit.Input{ConduitType: conduit.ConduitType(strings.TrimSpace(row[0]))}
	for slot := 0; slot < conduit.MaxGroups; slot++ {
		col := 1 + slot*3
		if col >= len(row) {
			break
		}
		cells := make([]string, 3)
		for j := range cells {
			if col+j < len(row) {
				cells[j] = strings.TrimSpace(row[col+j])
			}
		}
		if cells[0] == "" && cells[1] == "" && cells[2] == "" {
			continue
		}
		gauge, err := toFloat(cells[0])
		if err != nil {
			return conduit.Input{}, fmt.Errorf("group %d gauge %q: %w", slot+1, cells[0], err)
		}
		qty, err := strconv.Atoi(cells[1])
		if err != nil {
			return conduit.Input{}, fmt.Errorf("group %d quantity %q: %w", slot+1, cells[1], err)
		}
		in.Groups = append(in.Groups, conduit.GroupInput{
			Gauge:      gauge,
			Quantity:   qty,
			Insulation: conduit.InsulationType(cells[2]),
		})
	}
	if len(row) > 1+conduit.MaxGroups*3 && !blank(row[1+conduit.MaxGroups*3:]) {
		return conduit.Input{}, fmt.Errorf("bad row: more than %d groups", conduit.MaxGroups)
	}
	return in, nil
}

// toFloat accepts both "2.5" and the Brazilian "2,5".
func toFloat(s string) (float64, error) {
	return strconv.ParseFloat(strings.Replace(s, ",", ".", 1), 64)
}

func blank(cells []string) bool {
	for _, c := range cells {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
