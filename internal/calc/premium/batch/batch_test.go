package batch

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"Conduit/internal/calc/conduit"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func item(gauge float64, qty int, ct conduit.ConduitType) conduit.Input {
	return conduit.Input{
		Groups:      []conduit.GroupInput{{Gauge: gauge, Quantity: qty, Insulation: conduit.InsulationPVC750V}},
		ConduitType: ct,
	}
}

func TestCalculateConduit_MixedOutcomes(t *testing.T) {
	res, err := CalculateConduit(ConduitBatchInput{Items: []conduit.Input{
		item(2.5, 3, conduit.ConduitRigidPVC),
		item(16, 10, conduit.ConduitFlexiblePVC),
		item(2.5, 0, conduit.ConduitRigidPVC),
		item(3, 1, conduit.ConduitRigidPVC),
	}})
	require.NoError(t, err)
	require.Len(t, res.Results, 4)
	assert.Equal(t, 1, res.Sized)
	assert.Equal(t, 3, res.Failed)

	assert.Equal(t, 0, res.Results[0].Index)
	require.NotNil(t, res.Results[0].Result)
	assert.Equal(t, `1/2"`, res.Results[0].Result.RecommendedSize)
	assert.Empty(t, res.Results[0].Error)

	assert.Equal(t, "no_fit", res.Results[1].Code)
	require.NotNil(t, res.Results[1].Result)
	assert.Equal(t, 10, res.Results[1].Result.TotalConductors)

	assert.Equal(t, "empty_request", res.Results[2].Code)
	assert.Nil(t, res.Results[2].Result)

	assert.Equal(t, "unknown_gauge", res.Results[3].Code)
	assert.Equal(t, 3, res.Results[3].Index)
}

func TestCalculateConduit_Limits(t *testing.T) {
	_, err := CalculateConduit(ConduitBatchInput{})
	assert.Error(t, err)

	items := make([]conduit.Input, MaxItems+1)
	for i := range items {
		items[i] = item(2.5, 1, conduit.ConduitRigidPVC)
	}
	_, err = CalculateConduit(ConduitBatchInput{Items: items})
	assert.Error(t, err)

	res, err := CalculateConduit(ConduitBatchInput{Items: items[:MaxItems]})
	require.NoError(t, err)
	assert.Equal(t, MaxItems, res.Sized)
}

func TestHandler(t *testing.T) {
	h := &Handler{}
	body := `{"items":[{"conduit_type":"PEAD Corrugado","groups":[{"gauge_mm2":35,"quantity":4,"insulation":"XLPE 1kV"}]}]}`
	w := httptest.NewRecorder()
	h.Conduit(w, httptest.NewRequest(http.MethodPost, "/api/tools/conduit/batch", strings.NewReader(body)))

	require.Equal(t, http.StatusOK, w.Code)
	var res ConduitBatchResult
	require.NoError(t, json.NewDecoder(w.Body).Decode(&res))
	require.Len(t, res.Results, 1)
	assert.Equal(t, "90 mm", res.Results[0].Result.RecommendedSize)

	w = httptest.NewRecorder()
	h.Conduit(w, httptest.NewRequest(http.MethodPost, "/api/tools/conduit/batch", strings.NewReader(`{"items":[]}`)))
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
