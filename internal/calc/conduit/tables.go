package conduit

import "fmt"

type InsulationType string

const (
	InsulationPVC750V InsulationType = "PVC 750V"
	InsulationXLPE1kV InsulationType = "XLPE 1kV"
)

type ConduitType string

const (
	ConduitRigidPVC       ConduitType = "Rígido PVC"
	ConduitFlexiblePVC    ConduitType = "Flexível PVC"
	ConduitGalvanizedIron ConduitType = "Ferro Galvanizado"
	ConduitHDPECorrugated ConduitType = "PEAD Corrugado"
)

// Diameter is the outer diameter (mm) of one insulated conductor of the given gauge (mm²).
type Diameter struct {
	Gauge      float64 `json:"gauge_mm2"`
	DiameterMM float64 `json:"diameter_mm"`
}

// Size is one commercial conduit size and its usable internal area.
type Size struct {
	Label   string  `json:"label"`
	AreaMM2 float64 `json:"area_mm2"`
}

type insulationTable struct {
	insulation InsulationType
	diameters  []Diameter
}

type conduitTable struct {
	conduit ConduitType
	sizes   []Size
}

var insulationTables = []insulationTable{
	{InsulationPVC750V, []Diameter{
		{1.5, 3.5}, {2.5, 3.7}, {4, 4.3}, {6, 4.9}, {10, 5.9}, {16, 6.9}, {25, 8.5}, {35, 9.6}, {50, 11.3},
		{70, 12.9}, {95, 14.5}, {120, 15.9}, {150, 18.5}, {185, 20.7}, {240, 23.4}, {300, 26.0}, {400, 29.0}, {500, 33.3},
	}},
	{InsulationXLPE1kV, []Diameter{
		{1.5, 5.5}, {2.5, 6.0}, {4, 6.8}, {6, 7.3}, {10, 8.0}, {16, 9.0}, {25, 10.8}, {35, 12.0}, {50, 13.9},
		{70, 15.5}, {95, 17.7}, {120, 19.2}, {150, 21.4}, {185, 23.8}, {240, 26.7}, {300, 29.5}, {400, 33.5}, {500, 37.3},
	}},
}

var conduitTables = []conduitTable{
	{ConduitRigidPVC, []Size{
		{`1/2"`, 84.45}, {`3/4"`, 142.46}, {`1"`, 231.30}, {`1 1/4"`, 409.21}, {`1 1/2"`, 538.18},
		{`2"`, 875.36}, {`2 1/2"`, 1420.60}, {`3"`, 1931.78}, {`3 1/2"`, 2481.61}, {`4"`, 3395.30},
		{`5"`, 5064.51}, {`6"`, 7292.89},
	}},
	{ConduitFlexiblePVC, []Size{
		{"20 mm", 74.47}, {"25 mm", 113.35}, {"32 mm", 196.25},
	}},
	{ConduitGalvanizedIron, []Size{
		{`1/2"`, 97.23}, {`3/4"`, 240.76}, {`1"`, 384.64}, {`1 1/4"`, 861.56}, {`1 1/2"`, 1178.49},
		{`2"`, 1409.51}, {`2 1/2"`, 2332.46}, {`3"`, 3128.53}, {`3 1/2"`, 4105.59}, {`4"`, 5049.03},
		{`5"`, 7595.21}, {`6"`, 10853.94},
	}},
	{ConduitHDPECorrugated, []Size{
		{"20 mm", 80.4}, {"25 mm", 125.6}, {"32 mm", 212.4}, {"40 mm", 288.4}, {"50 mm", 520.8},
		{"63 mm", 860.0}, {"90 mm", 1767.2}, {"100 mm", 2164.8}, {"110 mm", 2774.4}, {"125 mm", 3398.0},
		{"140 mm", 4524.0}, {"160 mm", 5727.6}, {"200 mm", 9140.0}, {"250 mm", 14516.0},
	}},
}

// Selection scans sizes in order, so an unsorted table would silently pick an oversized conduit.
func init() {
	for _, t := range conduitTables {
		if err := ValidateTable(t.sizes); err != nil {
			panic(fmt.Sprintf("conduit table %q: %v", t.conduit, err))
		}
	}
}

// ValidateTable checks that sizes are non-empty, labelled and strictly ascending by area.
func ValidateTable(sizes []Size) error {
	if len(sizes) == 0 {
		return fmt.Errorf("no sizes")
	}
	for i, s := range sizes {
		if s.Label == "" {
			return fmt.Errorf("size %d has no label", i)
		}
		if s.AreaMM2 <= 0 {
			return fmt.Errorf("size %s has non-positive area %.2f", s.Label, s.AreaMM2)
		}
		if i > 0 && s.AreaMM2 <= sizes[i-1].AreaMM2 {
			return fmt.Errorf("size %s (%.2f mm²) is not larger than %s (%.2f mm²)",
				s.Label, s.AreaMM2, sizes[i-1].Label, sizes[i-1].AreaMM2)
		}
	}
	return nil
}

func OuterDiameter(insulation InsulationType, gauge float64) (float64, error) {
	for _, t := range insulationTables {
		if t.insulation != insulation {
			continue
		}
		for _, d := range t.diameters {
			if d.Gauge == gauge {
				return d.DiameterMM, nil
			}
		}
		return 0, fmt.Errorf("%w: %g mm² (%s)", ErrUnknownGauge, gauge, insulation)
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownInsulation, insulation)
}

// AreasFor returns the commercial sizes of a conduit type, smallest first.
// The returned slice is a copy.
func AreasFor(conduit ConduitType) ([]Size, error) {
	for _, t := range conduitTables {
		if t.conduit == conduit {
			out := make([]Size, len(t.sizes))
			copy(out, t.sizes)
			return out, nil
		}
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownConduitType, conduit)
}

func Insulations() []InsulationType {
	out := make([]InsulationType, 0, len(insulationTables))
	for _, t := range insulationTables {
		out = append(out, t.insulation)
	}
	return out
}

func ConduitTypes() []ConduitType {
	out := make([]ConduitType, 0, len(conduitTables))
	for _, t := range conduitTables {
		out = append(out, t.conduit)
	}
	return out
}

// Diameters lists the gauges available for an insulation, thinnest first.
func Diameters(insulation InsulationType) ([]Diameter, error) {
	for _, t := range insulationTables {
		if t.insulation == insulation {
			out := make([]Diameter, len(t.diameters))
			copy(out, t.diameters)
			return out, nil
		}
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownInsulation, insulation)
}
