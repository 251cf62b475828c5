package batch

import (
	"errors"
	"fmt"

	"Conduit/internal/calc/conduit"
)

const MaxItems = 100

type ConduitBatchInput struct {
	Items []conduit.Input `json:"items"`
}

// ItemResult carries either the sizing or the reason it failed. A no-fit item
// still reports its partial figures.
type ItemResult struct {
	Index  int             `json:"index"`
	Result *conduit.Result `json:"result,omitempty"`
	Error  string          `json:"error,omitempty"`
	Code   string          `json:"code,omitempty"`
}

type ConduitBatchResult struct {
	Results []ItemResult `json:"results"`
	Sized   int          `json:"sized"`
	Failed  int          `json:"failed"`
}

// CalculateConduit sizes each item independently; one bad item never aborts the batch.
func CalculateConduit(in ConduitBatchInput) (ConduitBatchResult, error) {
	if len(in.Items) == 0 {
		return ConduitBatchResult{}, fmt.Errorf("no items")
	}
	if len(in.Items) > MaxItems {
		return ConduitBatchResult{}, fmt.Errorf("too many items: %d, at most %d", len(in.Items), MaxItems)
	}
	out := ConduitBatchResult{Results: make([]ItemResult, 0, len(in.Items))}
	for i, item := range in.Items {
		res, err := conduit.Calculate(item)
		out.Results = append(out.Results, Item(i, res, err))
		if err == nil {
			out.Sized++
		} else {
			out.Failed++
		}
	}
	return out, nil
}

func Item(index int, res conduit.Result, err error) ItemResult {
	if err == nil {
		return ItemResult{Index: index, Result: &res}
	}
	item := ItemResult{Index: index, Error: err.Error(), Code: conduit.Code(err)}
	var noFit *conduit.NoFitError
	if errors.As(err, &noFit) {
		partial := noFit.Result
		item.Result = &partial
	}
	return item
}
