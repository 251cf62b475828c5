package conduit

import (
	"errors"
	"fmt"
)

var (
	ErrUnknownGauge             = errors.New("unknown gauge")
	ErrUnknownInsulation  error = unknownInsulation{}
	ErrUnknownConduitType       = errors.New("unknown conduit type")
	ErrInvalidQuantity          = errors.New("invalid quantity")
	ErrNoGroups                 = errors.New("no conductor groups")
	ErrTooManyGroups            = errors.New("too many conductor groups")
	ErrEmptyRequest             = errors.New("all conductor groups have zero quantity")
	ErrNoFit                    = errors.New("no commercial conduit size fits")
)

// unknownInsulation also matches ErrUnknownGauge: a missing insulation means
// no gauge/insulation pair can exist.
type unknownInsulation struct{}

func (unknownInsulation) Error() string { return "unknown insulation" }

func (unknownInsulation) Is(target error) bool { return target == ErrUnknownGauge }

// NoFitError is returned by Select when even the largest size is too small.
// It keeps the computed figures so the caller can still show the breakdown.
type NoFitError struct {
	ConduitType  ConduitType `json:"conduit_type"`
	RequiredArea float64     `json:"required_area_mm2"`
	LargestSize  Size        `json:"largest_size"`
	Result       Result      `json:"result"`
}

func (e *NoFitError) Error() string {
	return fmt.Sprintf("%s: required %.2f mm² exceeds %s %s (%.2f mm²); split the conductors across more than one conduit",
		ErrNoFit, e.RequiredArea, e.ConduitType, e.LargestSize.Label, e.LargestSize.AreaMM2)
}

func (e *NoFitError) Unwrap() error { return ErrNoFit }

// Code maps a sizing error to a stable machine-readable code.
func Code(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrNoFit):
		return "no_fit"
	case errors.Is(err, ErrEmptyRequest):
		return "empty_request"
	case errors.Is(err, ErrUnknownInsulation):
		return "unknown_insulation"
	case errors.Is(err, ErrUnknownGauge):
		return "unknown_gauge"
	case errors.Is(err, ErrUnknownConduitType):
		return "unknown_conduit_type"
	case errors.Is(err, ErrInvalidQuantity):
		return "invalid_quantity"
	case errors.Is(err, ErrNoGroups):
		return "no_groups"
	case errors.Is(err, ErrTooManyGroups):
		return "too_many_groups"
	default:
		return "calculation_error"
	}
}

// IsOutcome reports whether err is a normal business outcome (empty request or
// no fit) rather than invalid input.
func IsOutcome(err error) bool {
	return errors.Is(err, ErrNoFit) || errors.Is(err, ErrEmptyRequest)
}

const SplitGuidance = "Nenhum eletroduto disponível atende a essa ocupação. Divida os cabos em mais de um eletroduto."

const EmptyGuidance = "Informe a quantidade de condutores de pelo menos um grupo."
