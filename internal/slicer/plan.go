package slicer

import (
	"time"

	"github.com/agentic-research/lookslice/internal/catalog"
	"github.com/google/uuid"
)

// BuildPlan runs the partitioner and the closure resolver over a weighted
// tree and packages the result for the permission/validator layer. Slice
// boundaries are only final once the whole tree has been walked, so the plan
// is handed off complete and immutable.
func BuildPlan(t *catalog.Tree, n int) (*Plan, error) {
	start := time.Now()

	slices, err := Partition(t, n)
	if err != nil {
		return nil, err
	}
	for i := range slices {
		if err := ResolveClosure(t, &slices[i]); err != nil {
			return nil, err
		}
	}

	total := 0
	for _, rootID := range t.Roots() {
		root, _ := t.Folder(rootID)
		total += root.CumulativeQueries
	}

	return &Plan{
		ID:          uuid.New(),
		Slices:      slices,
		TotalWeight: total,
		BuiltIn:     time.Since(start),
	}, nil
}
