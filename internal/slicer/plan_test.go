package slicer

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildPlan(t *testing.T) {
	tree := balancedTree(t)

	plan, err := BuildPlan(tree, 3)
	require.NoError(t, err)

	assert.NotEqual(t, uuid.Nil, plan.ID)
	assert.Equal(t, 15, plan.TotalWeight)
	require.Len(t, plan.Slices, 3)
	for i, s := range plan.Slices {
		assert.Equal(t, i, s.Index)
		assert.NotEmpty(t, s.MetadataClosure)
	}
}

func TestBuildPlan_InvalidFraction(t *testing.T) {
	tree := balancedTree(t)

	_, err := BuildPlan(tree, 0)
	var invalid *InvalidFractionCountError
	require.ErrorAs(t, err, &invalid)
}
