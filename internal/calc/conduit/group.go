package conduit

import (
	"fmt"
	"math"
)

// ConductorGroup is a batch of identical conductors sharing one conduit.
type ConductorGroup struct {
	Gauge         float64        `json:"gauge_mm2"`
	Quantity      int            `json:"quantity"`
	Insulation    InsulationType `json:"insulation"`
	DiameterMM    float64        `json:"diameter_mm"`
	ConductorArea float64        `json:"conductor_area_mm2"`
	GroupArea     float64        `json:"group_area_mm2"`
}

// ComputeGroup looks up the outer diameter and derives the occupied areas.
// Areas are left unrounded.
func ComputeGroup(gauge float64, quantity int, insulation InsulationType) (ConductorGroup, error) {
	if quantity < 0 {
		return ConductorGroup{}, fmt.Errorf("%w: %d is negative", ErrInvalidQuantity, quantity)
	}
	d, err := OuterDiameter(insulation, gauge)
	if err != nil {
		return ConductorGroup{}, err
	}
	area := math.Pi * math.Pow(d/2, 2)
	return ConductorGroup{
		Gauge:         gauge,
		Quantity:      quantity,
		Insulation:    insulation,
		DiameterMM:    d,
		ConductorArea: area,
		GroupArea:     area * float64(quantity),
	}, nil
}
