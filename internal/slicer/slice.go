// Package slicer cuts a weighted catalog tree into n slices of approximately
// equal query volume and resolves, per slice, the metadata-id closure a
// permission grant needs for inheritance to reach the slice's content.
package slicer

import (
	"sort"
	"strconv"
	"time"

	"github.com/google/uuid"
)

// Slice is one output partition of the catalog.
type Slice struct {
	// Index is the 0-based position among the n slices.
	Index int `json:"index"`

	// AssignedFolderIDs lists the folders whose content belongs to this
	// slice, in assignment order. A folder is never split across slices.
	AssignedFolderIDs []string `json:"assigned_folder_ids"`

	// TargetWeight is totalWeight / n, shared across slices.
	TargetWeight float64 `json:"target_weight"`

	// ActualWeight sums the subtree weights of the units assigned to this
	// slice; descendants covered by an assigned ancestor are not counted
	// again.
	ActualWeight int `json:"actual_weight"`

	// MetadataClosure holds every content metadata id a permission grant
	// must reference for access to propagate down to the assigned folders:
	// their own metadata ids plus those of all their ancestors. Sorted.
	MetadataClosure []string `json:"metadata_closure"`

	// Direct content of the assigned folders, for downstream cross-checks.
	DashboardIDs []string `json:"dashboard_ids,omitempty"`
	LookIDs      []string `json:"look_ids,omitempty"`
}

// Plan is the final artifact handed to the permission/validator layer:
// the n slices in index order, plus run identity and build stats.
type Plan struct {
	ID          uuid.UUID     `json:"id"`
	Slices      []Slice       `json:"slices"`
	TotalWeight int           `json:"total_weight"`
	BuiltIn     time.Duration `json:"built_in"`
}

// sortIDs orders ids numerically when every id parses as an integer
// (the platform hands out numeric metadata ids), lexically otherwise.
func sortIDs(ids []string) {
	numeric := true
	for _, id := range ids {
		if _, err := strconv.Atoi(id); err != nil {
			numeric = false
			break
		}
	}
	if numeric {
		sort.Slice(ids, func(i, j int) bool {
			a, _ := strconv.Atoi(ids[i])
			b, _ := strconv.Atoi(ids[j])
			return a < b
		})
		return
	}
	sort.Strings(ids)
}
