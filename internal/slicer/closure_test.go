package slicer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveClosure_IncludesAncestors(t *testing.T) {
	tree := twoChildTree(t)

	slices, err := Partition(tree, 2)
	require.NoError(t, err)

	require.NoError(t, ResolveClosure(tree, &slices[0]))
	require.NoError(t, ResolveClosure(tree, &slices[1]))

	// Each slice carries its own metadata id plus the root's.
	assert.Equal(t, []string{"100", "101"}, slices[0].MetadataClosure)
	assert.Equal(t, []string{"100", "102"}, slices[1].MetadataClosure)
}

func TestResolveClosure_DeepChains(t *testing.T) {
	tree := balancedTree(t)

	slices, err := Partition(tree, 3)
	require.NoError(t, err)
	for i := range slices {
		require.NoError(t, ResolveClosure(tree, &slices[i]))
	}

	assert.Equal(t, []string{"1", "2", "5"}, slices[0].MetadataClosure)
	assert.Equal(t, []string{"1", "2", "3", "6"}, slices[1].MetadataClosure)
	assert.Equal(t, []string{"1", "4", "7", "8"}, slices[2].MetadataClosure)
}

func TestResolveClosure_SupersetOfAssignedMetadata(t *testing.T) {
	tree := balancedTree(t)

	slices, err := Partition(tree, 3)
	require.NoError(t, err)
	for i := range slices {
		require.NoError(t, ResolveClosure(tree, &slices[i]))

		closure := make(map[string]struct{}, len(slices[i].MetadataClosure))
		for _, id := range slices[i].MetadataClosure {
			closure[id] = struct{}{}
		}
		for _, folderID := range slices[i].AssignedFolderIDs {
			f, ok := tree.Folder(folderID)
			require.True(t, ok)
			assert.Contains(t, closure, f.MetadataID)
			// Walk the ancestor chain; every link must be present.
			for cur := f.ParentID; cur != ""; {
				parent, ok := tree.Folder(cur)
				require.True(t, ok)
				assert.Contains(t, closure, parent.MetadataID)
				cur = parent.ParentID
			}
		}
	}
}

func TestResolveClosure_UnresolvedAncestor(t *testing.T) {
	tree := twoChildTree(t)

	slices, err := Partition(tree, 2)
	require.NoError(t, err)

	// Corrupt the tree after partitioning: break A's parent link.
	a, ok := tree.Folder("A")
	require.True(t, ok)
	a.ParentID = "vanished"

	err = ResolveClosure(tree, &slices[0])
	var unresolved *UnresolvedAncestorError
	require.ErrorAs(t, err, &unresolved)
	assert.Equal(t, "vanished", unresolved.ParentID)
}

func TestResolveClosure_EmptySlice(t *testing.T) {
	tree := twoChildTree(t)

	s := Slice{Index: 0}
	require.NoError(t, ResolveClosure(tree, &s))
	assert.Empty(t, s.MetadataClosure)
}

func TestSortIDs(t *testing.T) {
	numeric := []string{"20", "3", "100", "1"}
	sortIDs(numeric)
	assert.Equal(t, []string{"1", "3", "20", "100"}, numeric)

	mixed := []string{"b", "10", "a"}
	sortIDs(mixed)
	assert.Equal(t, []string{"10", "a", "b"}, mixed)
}
