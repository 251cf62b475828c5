package conduit

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
)

type Handler struct{}

type ErrorResponse struct {
	Error    string  `json:"error"`
	Code     string  `json:"code"`
	Guidance string  `json:"guidance,omitempty"`
	Partial  *Result `json:"partial,omitempty"`
}

func (h *Handler) Calc(w http.ResponseWriter, r *http.Request) {
	var input Input
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	res, err := Calculate(input)
	if err != nil {
		WriteError(w, err)
		return
	}
	slog.Debug("Conduit sized", "conduit_type", res.ConduitType, "conductors", res.TotalConductors, "size", res.RecommendedSize)
	WriteJSON(w, http.StatusOK, res)
}

type InsulationOption struct {
	Insulation InsulationType `json:"insulation"`
	Gauges     []Diameter     `json:"gauges"`
}

type ConduitOption struct {
	ConduitType ConduitType `json:"conduit_type"`
	Sizes       []Size      `json:"sizes"`
}

// Options lists everything a form needs to offer only valid inputs.
type Options struct {
	Insulations  []InsulationOption `json:"insulations"`
	ConduitTypes []ConduitOption    `json:"conduit_types"`
	MaxGroups    int                `json:"max_groups"`
	MaxQuantity  int                `json:"max_quantity"`
}

func AvailableOptions() Options {
	opts := Options{MaxGroups: MaxGroups, MaxQuantity: MaxQuantity}
	for _, ins := range Insulations() {
		gauges, _ := Diameters(ins)
		opts.Insulations = append(opts.Insulations, InsulationOption{Insulation: ins, Gauges: gauges})
	}
	for _, ct := range ConduitTypes() {
		sizes, _ := AreasFor(ct)
		opts.ConduitTypes = append(opts.ConduitTypes, ConduitOption{ConduitType: ct, Sizes: sizes})
	}
	return opts
}

func (h *Handler) Options(w http.ResponseWriter, r *http.Request) {
	WriteJSON(w, http.StatusOK, AvailableOptions())
}

func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("Failed to encode response", "error", err)
	}
}

// WriteError reports a sizing error. Empty requests and no-fit outcomes are
// answered with 422 and guidance; everything else is a 400.
func WriteError(w http.ResponseWriter, err error) {
	resp := ErrorResponse{Error: err.Error(), Code: Code(err)}
	status := http.StatusBadRequest

	var noFit *NoFitError
	switch {
	case errors.As(err, &noFit):
		status = http.StatusUnprocessableEntity
		resp.Guidance = SplitGuidance
		partial := noFit.Result
		resp.Partial = &partial
	case errors.Is(err, ErrEmptyRequest):
		status = http.StatusUnprocessableEntity
		resp.Guidance = EmptyGuidance
	default:
		slog.Warn("Rejected sizing request", "error", err)
	}
	WriteJSON(w, status, resp)
}
