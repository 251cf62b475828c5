package history

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"Conduit/internal/auth"
	"Conduit/internal/calc/report"
	"Conduit/internal/repo"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type failingRepo struct{ *repo.MemoryRepository }

func (failingRepo) SaveCalculation(ctx context.Context, c repo.Calculation) error {
	return errors.New("connection refused")
}

func newHandler(r repo.Repository) *Handler {
	clock := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	return &Handler{
		Repo:    r,
		Reports: &report.Handler{Author: "Eng. Teste"},
		Now: func() time.Time {
			clock = clock.Add(time.Minute)
			return clock
		},
	}
}

func asUser(req *http.Request, id int) *http.Request {
	return req.WithContext(auth.WithUser(req.Context(), id, "ana"))
}

func save(t *testing.T, h *Handler, userID int, body string) (*httptest.ResponseRecorder, repo.Calculation) {
	t.Helper()
	w := httptest.NewRecorder()
	h.Save(w, asUser(httptest.NewRequest(http.MethodPost, "/api/user/history", strings.NewReader(body)), userID))
	var calc repo.Calculation
	if w.Code == http.StatusCreated {
		require.NoError(t, json.NewDecoder(bytes.NewReader(w.Body.Bytes())).Decode(&calc))
	}
	return w, calc
}

const (
	sizedBody = `{"conduit_type":"Rígido PVC","groups":[{"gauge_mm2":2.5,"quantity":3,"insulation":"PVC 750V"}]}`
	noFitBody = `{"conduit_type":"Flexível PVC","groups":[{"gauge_mm2":16,"quantity":10,"insulation":"PVC 750V"}]}`
	emptyBody = `{"conduit_type":"Rígido PVC","groups":[{"gauge_mm2":2.5,"quantity":0,"insulation":"PVC 750V"}]}`
)

func TestSave_Outcomes(t *testing.T) {
	h := newHandler(repo.NewMemory())

	w, calc := save(t, h, 1, sizedBody)
	require.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, OutcomeSized, calc.Outcome)
	require.NotNil(t, calc.Result)
	assert.Equal(t, `1/2"`, calc.Result.RecommendedSize)

	w, calc = save(t, h, 1, noFitBody)
	require.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, OutcomeNoFit, calc.Outcome)
	require.NotNil(t, calc.Result)
	assert.Empty(t, calc.Result.RecommendedSize)

	w, calc = save(t, h, 1, emptyBody)
	require.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, OutcomeEmpty, calc.Outcome)
	assert.Nil(t, calc.Result)

	w, _ = save(t, h, 1, `{"conduit_type":"Rígido PVC","groups":[{"gauge_mm2":3,"quantity":1,"insulation":"PVC 750V"}]}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSave_Unauthorized(t *testing.T) {
	h := newHandler(repo.NewMemory())
	w := httptest.NewRecorder()
	h.Save(w, httptest.NewRequest(http.MethodPost, "/api/user/history", strings.NewReader(sizedBody)))
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestSave_StorageFailure(t *testing.T) {
	h := newHandler(failingRepo{repo.NewMemory()})
	w, _ := save(t, h, 1, sizedBody)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestListAndGet(t *testing.T) {
	h := newHandler(repo.NewMemory())
	_, first := save(t, h, 1, sizedBody)
	_, second := save(t, h, 1, noFitBody)
	save(t, h, 2, sizedBody)

	w := httptest.NewRecorder()
	h.List(w, asUser(httptest.NewRequest(http.MethodGet, "/api/user/history", nil), 1))
	require.Equal(t, http.StatusOK, w.Code)
	var list []repo.Calculation
	require.NoError(t, json.NewDecoder(w.Body).Decode(&list))
	require.Len(t, list, 2)
	assert.Equal(t, second.ID, list[0].ID)
	assert.Equal(t, first.ID, list[1].ID)

	w = httptest.NewRecorder()
	h.List(w, asUser(httptest.NewRequest(http.MethodGet, "/api/user/history?limit=1", nil), 1))
	require.NoError(t, json.NewDecoder(w.Body).Decode(&list))
	assert.Len(t, list, 1)

	w = httptest.NewRecorder()
	h.List(w, asUser(httptest.NewRequest(http.MethodGet, "/api/user/history?limit=x", nil), 1))
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = httptest.NewRecorder()
	h.List(w, asUser(httptest.NewRequest(http.MethodGet, "/api/user/history", nil), 3))
	assert.Equal(t, "[]\n", w.Body.String())

	req := mux.SetURLVars(asUser(httptest.NewRequest(http.MethodGet, "/", nil), 1), map[string]string{"id": first.ID.String()})
	w = httptest.NewRecorder()
	h.Get(w, req)
	require.Equal(t, http.StatusOK, w.Code)
	var got repo.Calculation
	require.NoError(t, json.NewDecoder(w.Body).Decode(&got))
	assert.Equal(t, first.ID, got.ID)

	// another user's calculation is invisible
	req = mux.SetURLVars(asUser(httptest.NewRequest(http.MethodGet, "/", nil), 2), map[string]string{"id": first.ID.String()})
	w = httptest.NewRecorder()
	h.Get(w, req)
	assert.Equal(t, http.StatusNotFound, w.Code)

	req = mux.SetURLVars(asUser(httptest.NewRequest(http.MethodGet, "/", nil), 1), map[string]string{"id": "42"})
	w = httptest.NewRecorder()
	h.Get(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestPDF(t *testing.T) {
	h := newHandler(repo.NewMemory())
	_, sized := save(t, h, 1, sizedBody)
	_, empty := save(t, h, 1, emptyBody)

	req := mux.SetURLVars(asUser(httptest.NewRequest(http.MethodGet, "/", nil), 1), map[string]string{"id": sized.ID.String()})
	w := httptest.NewRecorder()
	h.PDF(w, req)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/pdf", w.Header().Get("Content-Type"))
	assert.True(t, bytes.HasPrefix(w.Body.Bytes(), []byte("%PDF-")))

	req = mux.SetURLVars(asUser(httptest.NewRequest(http.MethodGet, "/?encoding=base64", nil), 1), map[string]string{"id": sized.ID.String()})
	w = httptest.NewRecorder()
	h.PDF(w, req)
	require.Equal(t, http.StatusOK, w.Code)
	var enc report.EncodedReport
	require.NoError(t, json.NewDecoder(w.Body).Decode(&enc))
	assert.Equal(t, sized.ID.String(), enc.ID)

	req = mux.SetURLVars(asUser(httptest.NewRequest(http.MethodGet, "/", nil), 1), map[string]string{"id": empty.ID.String()})
	w = httptest.NewRecorder()
	h.PDF(w, req)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	req = mux.SetURLVars(asUser(httptest.NewRequest(http.MethodGet, "/", nil), 1), map[string]string{"id": uuid.NewString()})
	w = httptest.NewRecorder()
	h.PDF(w, req)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
