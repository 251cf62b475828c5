package batch

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"Conduit/internal/calc/conduit"
)

type Handler struct{}

func (h *Handler) Conduit(w http.ResponseWriter, r *http.Request) {
	var input ConduitBatchInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	res, err := CalculateConduit(input)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	slog.Debug("Batch sized", "items", len(input.Items), "sized", res.Sized, "failed", res.Failed)
	conduit.WriteJSON(w, http.StatusOK, res)
}
