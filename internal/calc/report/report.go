// Package report renders the conduit sizing calculation memo as a PDF.
// It only formats figures computed by the conduit package; nothing is recalculated here.
package report

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"time"

	"Conduit/internal/calc/conduit"

	"github.com/google/uuid"
	"github.com/phpdave11/gofpdf"
)

const (
	Filename      = "memoria_eletroduto.pdf"
	Title         = "Memória de Cálculo - Dimensionamento de Eletroduto"
	DefaultAuthor = "Eng° Allan Oliveira"

	nbrNote = "A NBR 5410 permite diferentes bitolas no mesmo eletroduto, desde que todos os cabos " +
		"tenham isolação compatível com a maior tensão e a ocupação total não ultrapasse 40%. " +
		"Evite passar circuitos independentes no mesmo eletroduto."
)

type Style int

const (
	StyleBody Style = iota
	StyleTitle
	StyleHeading
	StyleNote
	StyleFooter
)

type Line struct {
	Text  string
	Style Style
}

// Document is everything the memo shows. Failure is set instead of a
// recommended size when no commercial conduit fits.
type Document struct {
	ID          uuid.UUID
	Author      string
	GeneratedAt time.Time
	Result      conduit.Result
	Failure     string
}

// FromOutcome turns the result of a sizing into a Document. Only a successful
// sizing or a no-fit outcome can be reported; any other error is returned.
func FromOutcome(res conduit.Result, err error) (Document, error) {
	if err == nil {
		return Document{ID: uuid.New(), Result: res}, nil
	}
	var noFit *conduit.NoFitError
	if errors.As(err, &noFit) {
		return Document{ID: uuid.New(), Result: noFit.Result, Failure: conduit.SplitGuidance}, nil
	}
	return Document{}, err
}

func Lines(doc Document) []Line {
	res := doc.Result
	lines := []Line{{Title, StyleTitle}}

	for i, g := range res.Groups {
		lines = append(lines,
			Line{fmt.Sprintf("Grupo %d: %dx %g mm² (%s)", i+1, g.Quantity, g.Gauge, g.Insulation), StyleHeading},
			Line{fmt.Sprintf("  - Diâmetro externo estimado: %.2f mm", g.DiameterMM), StyleBody},
			Line{fmt.Sprintf("  - Área individual do condutor: pi x (%.2f/2)² = %.2f mm²", g.DiameterMM, g.ConductorArea), StyleBody},
			Line{fmt.Sprintf("  - Área total ocupada no grupo: %.2f x %d = %.2f mm²", g.ConductorArea, g.Quantity, g.GroupArea), StyleBody},
		)
	}

	lines = append(lines,
		Line{fmt.Sprintf("Área total ocupada pelos condutores: %.2f mm²", res.TotalArea), StyleBody},
		Line{fmt.Sprintf("Quantidade total de condutores: %d", res.TotalConductors), StyleBody},
		Line{fmt.Sprintf("Fator de ocupação aplicado: %.0f%%", res.FillRatio*100), StyleBody},
		Line{fmt.Sprintf("Área mínima requerida: %.2f / %g = %.2f mm²", res.TotalArea, res.FillRatio, res.RequiredArea), StyleBody},
		Line{fmt.Sprintf("Tipo de eletroduto selecionado: %s", res.ConduitType), StyleBody},
	)
	if doc.Failure != "" {
		lines = append(lines, Line{doc.Failure, StyleHeading})
	} else {
		lines = append(lines, Line{fmt.Sprintf("Eletroduto recomendado: %s (%.2f mm²)", res.RecommendedSize, res.RecommendedArea), StyleHeading})
	}

	author := doc.Author
	if author == "" {
		author = DefaultAuthor
	}
	lines = append(lines,
		Line{nbrNote, StyleNote},
		Line{fmt.Sprintf("Desenvolvido por %s", author), StyleFooter},
	)
	if doc.ID != uuid.Nil || !doc.GeneratedAt.IsZero() {
		lines = append(lines, Line{fmt.Sprintf("Memória %s - %s", doc.ID, doc.GeneratedAt.Format("2006-01-02 15:04")), StyleFooter})
	}
	return lines
}

func Build(doc Document) *gofpdf.Fpdf {
	pdf := gofpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.SetTitle(tr(Title), false)
	if doc.Author != "" {
		pdf.SetAuthor(tr(doc.Author), false)
	}
	pdf.AddPage()

	for _, l := range Lines(doc) {
		switch l.Style {
		case StyleTitle:
			pdf.SetFont("Helvetica", "B", 14)
			pdf.CellFormat(0, 10, tr(l.Text), "", 1, "C", false, 0, "")
			pdf.Ln(8)
		case StyleHeading:
			pdf.SetFont("Helvetica", "B", 11)
			pdf.CellFormat(0, 8, tr(l.Text), "", 1, "L", false, 0, "")
		case StyleNote:
			pdf.Ln(6)
			pdf.SetFont("Helvetica", "I", 9)
			pdf.MultiCell(0, 5, tr(l.Text), "", "L", false)
		case StyleFooter:
			pdf.Ln(4)
			pdf.SetFont("Helvetica", "I", 10)
			pdf.CellFormat(0, 6, tr(l.Text), "", 1, "C", false, 0, "")
		default:
			pdf.SetFont("Helvetica", "", 11)
			pdf.CellFormat(0, 7, tr(l.Text), "", 1, "L", false, 0, "")
		}
	}
	return pdf
}

func Write(w io.Writer, doc Document) error {
	return Build(doc).Output(w)
}

func Base64(doc Document) (string, error) {
	var buf bytes.Buffer
	if err := Write(&buf, doc); err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}
