package conduit

// Maximum conduit occupation by total conductor count (NBR 5410).
const (
	FillOneConductor  = 0.53
	FillTwoConductors = 0.31
	FillThreeOrMore   = 0.40
)

// MaxFillRatio returns the allowed fill ratio for the total number of
// conductors across all groups. Callers must not pass zero.
func MaxFillRatio(totalConductors int) float64 {
	switch totalConductors {
	case 1:
		return FillOneConductor
	case 2:
		return FillTwoConductors
	default:
		return FillThreeOrMore
	}
}
