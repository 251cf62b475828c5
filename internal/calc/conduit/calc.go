package conduit

import (
	"fmt"
	"strings"
)

const (
	MaxGroups   = 5
	MaxQuantity = 100
)

type GroupInput struct {
	Gauge      float64        `json:"gauge_mm2"`
	Quantity   int            `json:"quantity"`
	Insulation InsulationType `json:"insulation"`
}

type Input struct {
	Groups      []GroupInput `json:"groups"`
	ConduitType ConduitType  `json:"conduit_type"`
}

type Result struct {
	ConduitType     ConduitType      `json:"conduit_type"`
	Groups          []ConductorGroup `json:"groups"`
	TotalArea       float64          `json:"total_area_mm2"`
	TotalConductors int              `json:"total_conductors"`
	FillRatio       float64          `json:"fill_ratio"`
	RequiredArea    float64          `json:"required_area_mm2"`
	RecommendedSize string           `json:"recommended_size,omitempty"`
	RecommendedArea float64          `json:"recommended_area_mm2,omitempty"`
	Notes           string           `json:"notes"`
}

// Request is a validated sizing request. Build it with NewRequest.
type Request struct {
	input       Input
	groups      []ConductorGroup
	conduitType ConduitType
}

// NewRequest validates every slot and resolves the diameters up front, so a
// Request is never partially filled in.
func NewRequest(in Input) (Request, error) {
	ct := ConduitType(strings.TrimSpace(string(in.ConduitType)))
	groups, err := ComputeGroups(in.Groups)
	if err != nil {
		return Request{}, err
	}
	if _, err := AreasFor(ct); err != nil {
		return Request{}, err
	}

	normalized := Input{ConduitType: ct, Groups: make([]GroupInput, 0, len(groups))}
	for _, g := range groups {
		normalized.Groups = append(normalized.Groups, GroupInput{Gauge: g.Gauge, Quantity: g.Quantity, Insulation: g.Insulation})
	}
	return Request{input: normalized, groups: groups, conduitType: ct}, nil
}

// ComputeGroups validates 1..MaxGroups slots and computes each of them.
// Errors name the 1-based slot.
func ComputeGroups(in []GroupInput) ([]ConductorGroup, error) {
	if len(in) == 0 {
		return nil, ErrNoGroups
	}
	if len(in) > MaxGroups {
		return nil, fmt.Errorf("%w: %d given, at most %d", ErrTooManyGroups, len(in), MaxGroups)
	}
	groups := make([]ConductorGroup, 0, len(in))
	for i, g := range in {
		if g.Quantity < 0 || g.Quantity > MaxQuantity {
			return nil, fmt.Errorf("group %d: %w: %d not in 0..%d", i+1, ErrInvalidQuantity, g.Quantity, MaxQuantity)
		}
		ins := InsulationType(strings.TrimSpace(string(g.Insulation)))
		cg, err := ComputeGroup(g.Gauge, g.Quantity, ins)
		if err != nil {
			return nil, fmt.Errorf("group %d: %w", i+1, err)
		}
		groups = append(groups, cg)
	}
	return groups, nil
}

func (r Request) Input() Input {
	out := r.input
	out.Groups = append([]GroupInput(nil), r.input.Groups...)
	return out
}

func (r Request) Groups() []ConductorGroup {
	return append([]ConductorGroup(nil), r.groups...)
}

func (r Request) ConduitType() ConduitType { return r.conduitType }

// Select sizes the conduit for the given groups: the first commercial size
// whose area is at least the required area wins.
func Select(groups []ConductorGroup, conduitType ConduitType) (Result, error) {
	sizes, err := AreasFor(conduitType)
	if err != nil {
		return Result{}, err
	}

	res := Result{ConduitType: conduitType, Groups: make([]ConductorGroup, 0, len(groups))}
	for _, g := range groups {
		if g.Quantity <= 0 {
			continue
		}
		res.Groups = append(res.Groups, g)
		res.TotalArea += g.GroupArea
		res.TotalConductors += g.Quantity
	}
	if res.TotalConductors == 0 {
		return Result{}, ErrEmptyRequest
	}

	res.FillRatio = MaxFillRatio(res.TotalConductors)
	res.RequiredArea = res.TotalArea / res.FillRatio

	for _, s := range sizes {
		if s.AreaMM2 >= res.RequiredArea {
			res.RecommendedSize = s.Label
			res.RecommendedArea = s.AreaMM2
			res.Notes = fmt.Sprintf("Smallest %s size within the %.0f%% fill limit for %d conductor(s).",
				conduitType, res.FillRatio*100, res.TotalConductors)
			return res, nil
		}
	}

	res.Notes = SplitGuidance
	return Result{}, &NoFitError{
		ConduitType:  conduitType,
		RequiredArea: res.RequiredArea,
		LargestSize:  sizes[len(sizes)-1],
		Result:       res,
	}
}

func Calculate(in Input) (Result, error) {
	req, err := NewRequest(in)
	if err != nil {
		return Result{}, err
	}
	return Select(req.Groups(), req.ConduitType())
}
