package cmd

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"Conduit/internal/calc/conduit"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	root := NewRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func exitCode(err error) int {
	var exit *ExitError
	if errors.As(err, &exit) {
		return exit.Code
	}
	if err != nil {
		return 1
	}
	return 0
}

func TestSize_Recommends(t *testing.T) {
	out, err := run(t, "size", "--conduit", "Rígido PVC", "--group", "2.5:3:PVC 750V")
	require.NoError(t, err)
	assert.Contains(t, out, "Área total ocupada pelos condutores: 32.26 mm²")
	assert.Contains(t, out, "Fator de ocupação aplicado: 40%")
	assert.Contains(t, out, `Eletroduto recomendado: 1/2" (84.45 mm²)`)
}

func TestSize_JSON(t *testing.T) {
	out, err := run(t, "size", "--conduit", "PEAD Corrugado", "--group", "35:4:XLPE 1kV", "--json")
	require.NoError(t, err)

	var res conduit.Result
	require.NoError(t, json.Unmarshal([]byte(out), &res))
	assert.Equal(t, "90 mm", res.RecommendedSize)
	assert.Equal(t, 4, res.TotalConductors)
}

func TestSize_DecimalComma(t *testing.T) {
	out, err := run(t, "size", "--group", "2,5:3:PVC 750V", "--json")
	require.NoError(t, err)
	assert.Contains(t, out, `"recommended_size": "1/2\""`)
}

func TestSize_NoFitExitsWithTwo(t *testing.T) {
	out, err := run(t, "size", "--conduit", "Flexível PVC", "--group", "16:10:PVC 750V")
	require.Error(t, err)
	assert.Equal(t, 2, exitCode(err))
	assert.True(t, errors.Is(err, conduit.ErrNoFit))
	assert.Contains(t, out, conduit.SplitGuidance)
	assert.NotContains(t, out, "Eletroduto recomendado")
}

func TestSize_EmptyExitsWithTwo(t *testing.T) {
	out, err := run(t, "size", "--group", "2.5:0:PVC 750V")
	require.Error(t, err)
	assert.Equal(t, 2, exitCode(err))
	assert.Contains(t, out, conduit.EmptyGuidance)
}

func TestSize_InvalidInput(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want error
	}{
		{"no groups", []string{"size"}, conduit.ErrNoGroups},
		{"unknown gauge", []string{"size", "--group", "3:1:PVC 750V"}, conduit.ErrUnknownGauge},
		{"unknown conduit", []string{"size", "--conduit", "Aço", "--group", "2.5:1:PVC 750V"}, conduit.ErrUnknownConduitType},
		{"quantity out of range", []string{"size", "--group", "2.5:101:PVC 750V"}, conduit.ErrInvalidQuantity},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := run(t, tt.args...)
			require.Error(t, err)
			assert.Equal(t, 1, exitCode(err))
			assert.ErrorIs(t, err, tt.want)
		})
	}

	_, err := run(t, "size", "--group", "2.5-3")
	assert.Error(t, err)
	assert.Equal(t, 1, exitCode(err))
}

func TestSize_WritesPDF(t *testing.T) {
	path := filepath.Join(t.TempDir(), "memo.pdf")
	out, err := run(t, "size", "--group", "2.5:3:PVC 750V", "--pdf", path)
	require.NoError(t, err)
	assert.Contains(t, out, path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("%PDF-")))
}

type failingWriter struct{}

func (failingWriter) Write(p []byte) (int, error) { return 0, errors.New("stdout closed") }

func TestSize_JSONWriteFailure(t *testing.T) {
	opts := &sizeOptions{
		conduitType: string(conduit.ConduitRigidPVC),
		groups:      []string{"2.5:3:PVC 750V"},
		jsonOutput:  true,
	}
	err := runSize(failingWriter{}, opts, time.Now())
	require.Error(t, err)
	assert.Equal(t, 1, exitCode(err))
	assert.Contains(t, err.Error(), "stdout closed")

	root := NewRootCmd()
	root.SetOut(failingWriter{})
	root.SetArgs([]string{"tables", "--json"})
	assert.Error(t, root.Execute())
}

func TestParseGroup(t *testing.T) {
	g, err := parseGroup(" 1,5 : 2 : XLPE 1kV ")
	require.NoError(t, err)
	assert.Equal(t, conduit.GroupInput{Gauge: 1.5, Quantity: 2, Insulation: conduit.InsulationXLPE1kV}, g)

	_, err = parseGroup("x:2:PVC 750V")
	assert.Error(t, err)
	_, err = parseGroup("2.5:two:PVC 750V")
	assert.Error(t, err)
}

func TestTables(t *testing.T) {
	out, err := run(t, "tables")
	require.NoError(t, err)
	assert.Contains(t, out, "PVC 750V")
	assert.Contains(t, out, "PEAD Corrugado")
	assert.Contains(t, out, "7292.89")

	out, err = run(t, "tables", "--json")
	require.NoError(t, err)
	var opts conduit.Options
	require.NoError(t, json.Unmarshal([]byte(out), &opts))
	assert.Len(t, opts.ConduitTypes, 4)
	assert.Equal(t, conduit.MaxGroups, opts.MaxGroups)
}
