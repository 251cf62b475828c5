package history

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"Conduit/internal/auth"
	"Conduit/internal/calc/conduit"
	"Conduit/internal/calc/report"
	"Conduit/internal/repo"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

const (
	defaultLimit = 20
	maxLimit     = 100
)

const (
	OutcomeSized = "sized"
	OutcomeNoFit = "no_fit"
	OutcomeEmpty = "empty_request"
)

type Handler struct {
	Repo    repo.Repository
	Reports *report.Handler
	Now     func() time.Time
}

// Save validates and sizes the request, then stores it for the signed-in user.
// Empty and no-fit outcomes are stored too; only invalid input is rejected.
func (h *Handler) Save(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserID(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var input conduit.Input
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	req, err := conduit.NewRequest(input)
	if err != nil {
		conduit.WriteError(w, err)
		return
	}

	calc := repo.Calculation{
		ID:          uuid.New(),
		UserID:      userID,
		ConduitType: req.ConduitType(),
		Input:       req.Input(),
		CreatedAt:   h.now().UTC(),
	}
	res, err := conduit.Select(req.Groups(), req.ConduitType())
	var noFit *conduit.NoFitError
	switch {
	case err == nil:
		calc.Outcome = OutcomeSized
		calc.Result = &res
	case errors.As(err, &noFit):
		calc.Outcome = OutcomeNoFit
		partial := noFit.Result
		calc.Result = &partial
	case errors.Is(err, conduit.ErrEmptyRequest):
		calc.Outcome = OutcomeEmpty
	default:
		conduit.WriteError(w, err)
		return
	}

	if err := h.Repo.SaveCalculation(r.Context(), calc); err != nil {
		slog.Error("SaveCalculation failed", "user_id", userID, "error", err)
		http.Error(w, "DB error", http.StatusInternalServerError)
		return
	}
	conduit.WriteJSON(w, http.StatusCreated, calc)
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserID(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}
	limit := defaultLimit
	if s := r.URL.Query().Get("limit"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil || n <= 0 {
			http.Error(w, "Invalid limit", http.StatusBadRequest)
			return
		}
		limit = min(n, maxLimit)
	}

	list, err := h.Repo.ListCalculations(r.Context(), userID, limit)
	if err != nil {
		slog.Error("ListCalculations failed", "user_id", userID, "error", err)
		http.Error(w, "DB error", http.StatusInternalServerError)
		return
	}
	if list == nil {
		list = []repo.Calculation{}
	}
	conduit.WriteJSON(w, http.StatusOK, list)
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	calc, ok := h.lookup(w, r)
	if !ok {
		return
	}
	conduit.WriteJSON(w, http.StatusOK, calc)
}

// PDF regenerates the memo from the stored request. Sizing is deterministic,
// so the figures match what was saved.
func (h *Handler) PDF(w http.ResponseWriter, r *http.Request) {
	calc, ok := h.lookup(w, r)
	if !ok {
		return
	}
	doc, err := report.FromOutcome(conduit.Calculate(calc.Input))
	if err != nil {
		conduit.WriteError(w, err)
		return
	}
	doc.ID = calc.ID
	doc.GeneratedAt = calc.CreatedAt
	h.Reports.Serve(w, r, doc)
}

func (h *Handler) lookup(w http.ResponseWriter, r *http.Request) (repo.Calculation, bool) {
	userID, ok := auth.UserID(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return repo.Calculation{}, false
	}
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "Invalid id", http.StatusBadRequest)
		return repo.Calculation{}, false
	}
	calc, err := h.Repo.GetCalculation(r.Context(), userID, id)
	if errors.Is(err, repo.ErrNotFound) {
		http.Error(w, "Calculation not found", http.StatusNotFound)
		return repo.Calculation{}, false
	}
	if err != nil {
		slog.Error("GetCalculation failed", "user_id", userID, "id", id, "error", err)
		http.Error(w, "DB error", http.StatusInternalServerError)
		return repo.Calculation{}, false
	}
	return calc, true
}

func (h *Handler) now() time.Time {
	if h.Now != nil {
		return h.Now()
	}
	return time.Now()
}
