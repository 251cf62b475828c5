package report

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"Conduit/internal/calc/conduit"
)

type Handler struct {
	Author string
	Now    func() time.Time
}

type EncodedReport struct {
	ID            string `json:"id"`
	Filename      string `json:"filename"`
	ContentBase64 string `json:"content_base64"`
}

func (h *Handler) Generate(w http.ResponseWriter, r *http.Request) {
	var input conduit.Input
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	doc, err := FromOutcome(conduit.Calculate(input))
	if err != nil {
		conduit.WriteError(w, err)
		return
	}
	h.Serve(w, r, doc)
}

// Serve stamps the document and writes it either as a PDF attachment or, with
// ?encoding=base64, as JSON.
func (h *Handler) Serve(w http.ResponseWriter, r *http.Request, doc Document) {
	if doc.Author == "" {
		doc.Author = h.Author
	}
	if doc.GeneratedAt.IsZero() {
		doc.GeneratedAt = h.now()
	}

	if r.URL.Query().Get("encoding") == "base64" {
		content, err := Base64(doc)
		if err != nil {
			slog.Error("Report generation failed", "id", doc.ID, "error", err)
			http.Error(w, "Report generation error", http.StatusInternalServerError)
			return
		}
		conduit.WriteJSON(w, http.StatusOK, EncodedReport{ID: doc.ID.String(), Filename: Filename, ContentBase64: content})
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", Filename))
	if err := Write(w, doc); err != nil {
		slog.Error("Report generation failed", "id", doc.ID, "error", err)
		http.Error(w, "Report generation error", http.StatusInternalServerError)
		return
	}
}

func (h *Handler) now() time.Time {
	if h.Now != nil {
		return h.Now()
	}
	return time.Now()
}
