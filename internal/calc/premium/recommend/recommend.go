package recommend

import (
	"errors"

	"Conduit/internal/calc/conduit"
)

type Input struct {
	Groups []conduit.GroupInput `json:"groups"`
}

type Option struct {
	ConduitType     conduit.ConduitType `json:"conduit_type"`
	Fits            bool                `json:"fits"`
	RecommendedSize string              `json:"recommended_size,omitempty"`
	RecommendedArea float64             `json:"recommended_area_mm2,omitempty"`
	Occupation      float64             `json:"occupation,omitempty"`
	Notes           string              `json:"notes"`
}

type Result struct {
	TotalArea       float64  `json:"total_area_mm2"`
	TotalConductors int      `json:"total_conductors"`
	FillRatio       float64  `json:"fill_ratio"`
	RequiredArea    float64  `json:"required_area_mm2"`
	Options         []Option `json:"options"`
}

// Compare sizes the same conductors in every conduit type, in table order.
// Occupation is the share of the recommended size's area the conductors use.
func Compare(in Input) (Result, error) {
	groups, err := conduit.ComputeGroups(in.Groups)
	if err != nil {
		return Result{}, err
	}

	var out Result
	for _, ct := range conduit.ConduitTypes() {
		res, err := conduit.Select(groups, ct)
		var noFit *conduit.NoFitError
		switch {
		case err == nil:
			out.Options = append(out.Options, Option{
				ConduitType:     ct,
				Fits:            true,
				RecommendedSize: res.RecommendedSize,
				RecommendedArea: res.RecommendedArea,
				Occupation:      res.TotalArea / res.RecommendedArea,
				Notes:           res.Notes,
			})
		case errors.As(err, &noFit):
			res = noFit.Result
			out.Options = append(out.Options, Option{ConduitType: ct, Notes: conduit.SplitGuidance})
		default:
			return Result{}, err
		}
		out.TotalArea = res.TotalArea
		out.TotalConductors = res.TotalConductors
		out.FillRatio = res.FillRatio
		out.RequiredArea = res.RequiredArea
	}
	return out, nil
}
