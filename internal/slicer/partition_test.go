package slicer

import (
	"testing"

	"github.com/agentic-research/lookslice/api"
	"github.com/agentic-research/lookslice/internal/catalog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// queries returns n synthetic query ids for a content item fixture.
func queries(prefix string, n int) []string {
	ids := make([]string, n)
	for i := range ids {
		ids[i] = prefix + string(rune('a'+i))
	}
	return ids
}

func buildWeighted(t *testing.T, folders []api.RawFolder, items []api.ContentItem) *catalog.Tree {
	t.Helper()
	tree, err := catalog.Build(folders, items)
	require.NoError(t, err)
	require.NoError(t, catalog.CountQueries(tree))
	return tree
}

// twoChildTree is the reference shape: a weightless root holding A (6
// queries) and B (4 queries).
func twoChildTree(t *testing.T) *catalog.Tree {
	t.Helper()
	folders := []api.RawFolder{
		{ID: "root", MetadataID: "100"},
		{ID: "A", ParentID: "root", MetadataID: "101"},
		{ID: "B", ParentID: "root", MetadataID: "102"},
	}
	items := []api.ContentItem{
		{ID: "dA", FolderID: "A", Kind: api.KindDashboard, QueryIDs: queries("a", 6)},
		{ID: "dB", FolderID: "B", Kind: api.KindDashboard, QueryIDs: queries("b", 4)},
	}
	return buildWeighted(t, folders, items)
}

func TestPartition_TwoChildSplit(t *testing.T) {
	tree := twoChildTree(t)

	slices, err := Partition(tree, 2)
	require.NoError(t, err)
	require.Len(t, slices, 2)

	assert.Equal(t, 5.0, slices[0].TargetWeight)
	assert.Equal(t, []string{"A"}, slices[0].AssignedFolderIDs)
	assert.Equal(t, 6, slices[0].ActualWeight)
	assert.Equal(t, []string{"B"}, slices[1].AssignedFolderIDs)
	assert.Equal(t, 4, slices[1].ActualWeight)
}

func TestPartition_SingleSliceTakesWholeForest(t *testing.T) {
	tree := twoChildTree(t)

	slices, err := Partition(tree, 1)
	require.NoError(t, err)
	require.Len(t, slices, 1)
	assert.ElementsMatch(t, []string{"root", "A", "B"}, slices[0].AssignedFolderIDs)
	assert.Equal(t, 10, slices[0].ActualWeight)
}

func TestPartition_InvalidFractionCount(t *testing.T) {
	tree := twoChildTree(t)

	for _, n := range []int{0, -3} {
		_, err := Partition(tree, n)
		var invalid *InvalidFractionCountError
		require.ErrorAs(t, err, &invalid)
		assert.Equal(t, n, invalid.Count)
	}
}

func TestPartition_MoreSlicesThanUnits(t *testing.T) {
	tree := twoChildTree(t)

	slices, err := Partition(tree, 8)
	require.NoError(t, err)
	require.Len(t, slices, 8)

	assigned := 0
	for _, s := range slices {
		assigned += len(s.AssignedFolderIDs)
	}
	assert.Positive(t, assigned)
	assert.Empty(t, slices[7].AssignedFolderIDs, "trailing slices stay empty, not an error")
}

func TestPartition_ZeroWeightCatalog(t *testing.T) {
	folders := []api.RawFolder{
		{ID: "root", MetadataID: "100"},
		{ID: "child", ParentID: "root", MetadataID: "101"},
	}
	tree := buildWeighted(t, folders, nil)

	slices, err := Partition(tree, 3)
	require.NoError(t, err)
	require.Len(t, slices, 3)
	for _, s := range slices {
		assert.Empty(t, s.AssignedFolderIDs)
		assert.Zero(t, s.ActualWeight)
	}
}

// balancedTree exercises the recurse-vs-take-whole decision:
//
//	r            (0 direct)
//	├── a        (3 direct)
//	│   ├── a1   (2)
//	│   └── a2   (1)
//	├── b        (4)
//	└── c        (0 direct)
//	    ├── c1   (3)
//	    └── c2   (2)
//
// total 15, so n=3 targets 5 per slice.
func balancedTree(t *testing.T) *catalog.Tree {
	t.Helper()
	folders := []api.RawFolder{
		{ID: "r", MetadataID: "1"},
		{ID: "a", ParentID: "r", MetadataID: "2"},
		{ID: "a1", ParentID: "a", MetadataID: "5"},
		{ID: "a2", ParentID: "a", MetadataID: "6"},
		{ID: "b", ParentID: "r", MetadataID: "3"},
		{ID: "c", ParentID: "r", MetadataID: "4"},
		{ID: "c1", ParentID: "c", MetadataID: "7"},
		{ID: "c2", ParentID: "c", MetadataID: "8"},
	}
	items := []api.ContentItem{
		{ID: "da", FolderID: "a", Kind: api.KindDashboard, QueryIDs: queries("a", 3)},
		{ID: "da1", FolderID: "a1", Kind: api.KindDashboard, QueryIDs: queries("x", 2)},
		{ID: "da2", FolderID: "a2", Kind: api.KindDashboard, QueryIDs: queries("y", 1)},
		{ID: "db", FolderID: "b", Kind: api.KindDashboard, QueryIDs: queries("b", 4)},
		{ID: "dc1", FolderID: "c1", Kind: api.KindDashboard, QueryIDs: queries("c", 3)},
		{ID: "dc2", FolderID: "c2", Kind: api.KindDashboard, QueryIDs: queries("d", 2)},
	}
	return buildWeighted(t, folders, items)
}

func TestPartition_OversizedSubtreeIsOpenedUp(t *testing.T) {
	tree := balancedTree(t)

	slices, err := Partition(tree, 3)
	require.NoError(t, err)
	require.Len(t, slices, 3)

	assert.Equal(t, []string{"a", "a1"}, slices[0].AssignedFolderIDs)
	assert.Equal(t, 5, slices[0].ActualWeight)
	assert.Equal(t, []string{"a2", "b"}, slices[1].AssignedFolderIDs)
	assert.Equal(t, 5, slices[1].ActualWeight)
	assert.Equal(t, []string{"c", "c1", "c2"}, slices[2].AssignedFolderIDs)
	assert.Equal(t, 5, slices[2].ActualWeight)
}

func TestPartition_DisjointCoverage(t *testing.T) {
	tree := balancedTree(t)

	slices, err := Partition(tree, 3)
	require.NoError(t, err)

	seen := make(map[string]int)
	totalWeight := 0
	for _, s := range slices {
		totalWeight += s.ActualWeight
		for _, id := range s.AssignedFolderIDs {
			seen[id]++
		}
	}
	for id, count := range seen {
		assert.Equal(t, 1, count, "folder %s assigned more than once", id)
	}
	// Every folder owning content is assigned somewhere; weights add up
	// to the catalog total, so nothing is counted twice or dropped.
	for _, id := range tree.FolderIDs() {
		f, _ := tree.Folder(id)
		if len(f.DashboardIDs)+len(f.LookIDs) > 0 {
			assert.Contains(t, seen, id, "content-bearing folder %s not assigned", id)
		}
	}
	assert.Equal(t, 15, totalWeight)
}

func TestPartition_Deterministic(t *testing.T) {
	first, err := Partition(balancedTree(t), 3)
	require.NoError(t, err)
	second, err := Partition(balancedTree(t), 3)
	require.NoError(t, err)

	require.Len(t, second, len(first))
	for i := range first {
		assert.Equal(t, first[i].AssignedFolderIDs, second[i].AssignedFolderIDs)
		assert.Equal(t, first[i].ActualWeight, second[i].ActualWeight)
	}
}

func TestPartition_SliceCountAlwaysN(t *testing.T) {
	tree := balancedTree(t)
	for n := 1; n <= 10; n++ {
		slices, err := Partition(tree, n)
		require.NoError(t, err)
		assert.Len(t, slices, n)
	}
}
