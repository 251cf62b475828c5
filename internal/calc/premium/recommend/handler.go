package recommend

import (
	"encoding/json"
	"net/http"

	"Conduit/internal/calc/conduit"
)

type Handler struct{}

func (h *Handler) Conduit(w http.ResponseWriter, r *http.Request) {
	var input Input
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	res, err := Compare(input)
	if err != nil {
		conduit.WriteError(w, err)
		return
	}
	conduit.WriteJSON(w, http.StatusOK, res)
}
