package recommend

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

func TestCompare_AllConduitTypes(t *testing.T) {
	res, err := Compare(Input{Groups: []conduit.GroupInput{
		{Gauge: 2.5, Quantity: 3, Insulation: conduit.InsulationPVC750V},
	}})
	require.NoError(t, err)

	require.Len(t, res.Options, 4)
	assert.Equal(t, 3, res.TotalConductors)
	assert.InDelta(t, 80.64, res.RequiredArea, 0.01)

	want := map[conduit.ConduitType]string{
		conduit.ConduitRigidPVC:       `1/2"`,
		conduit.ConduitFlexiblePVC:    "25 mm",
		conduit.ConduitGalvanizedIron: `1/2"`,
		conduit.ConduitHDPECorrugated: "25 mm",
	}
	for _, opt := range res.Options {
		assert.True(t, opt.Fits, opt.ConduitType)
		assert.Equal(t, want[opt.ConduitType], opt.RecommendedSize, opt.ConduitType)
		assert.LessOrEqual(t, opt.Occupation, res.FillRatio)
	}
}

func TestCompare_SomeTypesDoNotFit(t *testing.T) {
	res, err := Compare(Input{Groups: []conduit.GroupInput{
		{Gauge: 16, Quantity: 10, Insulation: conduit.InsulationPVC750V},
	}})
	require.NoError(t, err)

	for _, opt := range res.Options {
		if opt.ConduitType == conduit.ConduitFlexiblePVC {
			assert.False(t, opt.Fits)
			assert.Empty(t, opt.RecommendedSize)
			assert.Equal(t, conduit.SplitGuidance, opt.Notes)
		} else {
			assert.True(t, opt.Fits, opt.ConduitType)
		}
	}
	assert.Equal(t, 10, res.TotalConductors)
}

func TestCompare_Errors(t *testing.T) {
	_, err := Compare(Input{})
	assert.ErrorIs(t, err, conduit.ErrNoGroups)

	_, err = Compare(Input{Groups: []conduit.GroupInput{{Gauge: 2.5, Quantity: 0, Insulation: conduit.InsulationPVC750V}}})
	assert.ErrorIs(t, err, conduit.ErrEmptyRequest)
}

func TestHandler(t *testing.T) {
	h := &Handler{}
	w := httptest.NewRecorder()
	body := `{"groups":[{"gauge_mm2":1.5,"quantity":1,"insulation":"PVC 750V"}]}`
	h.Conduit(w, httptest.NewRequest(http.MethodPost, "/api/tools/conduit/recommend", strings.NewReader(body)))

	require.Equal(t, http.StatusOK, w.Code)
	var res Result
	require.NoError(t, json.NewDecoder(w.Body).Decode(&res))
	assert.Equal(t, 0.53, res.FillRatio)
	assert.Len(t, res.Options, 4)
}
