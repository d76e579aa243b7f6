package slicer

import (
	"fmt"

	"github.com/RoaringBitmap/roaring"
	"github.com/agentic-research/lookslice/internal/catalog"
)

// InvalidFractionCountError reports a non-positive slice count.
type InvalidFractionCountError struct {
	Count int
}

func (e *InvalidFractionCountError) Error() string {
	return fmt.Sprintf("fraction count must be positive, got %d", e.Count)
}

// Partition cuts the weighted tree into n slices via a greedy pre-order
// bin-fill. Whole subtrees are the preferred unit: a folder whose subtree
// weight fits in the current slice's remaining room is taken as one unit and
// its subtree is never descended into again. A subtree too large to fit is
// opened up and its children are placed individually; the folder's own
// direct content stays with the current slice. Leaves always go whole to
// whichever slice is current, and once the last slice is open everything
// remaining lands in it.
//
// The tree must already be weighted by catalog.CountQueries.
func Partition(t *catalog.Tree, n int) ([]Slice, error) {
	if n <= 0 {
		return nil, &InvalidFractionCountError{Count: n}
	}

	total := 0
	for _, rootID := range t.Roots() {
		root, _ := t.Folder(rootID)
		total += root.CumulativeQueries
	}

	target := float64(total) / float64(n)
	slices := make([]Slice, n)
	for i := range slices {
		slices[i].Index = i
		slices[i].TargetWeight = target
	}
	if total == 0 {
		// Nothing to balance; every slice stays empty.
		return slices, nil
	}

	p := &partitioner{
		tree:    t,
		slices:  slices,
		target:  target,
		covered: roaring.New(),
		ids:     newInterner(t.Len()),
	}
	for _, rootID := range t.Roots() {
		p.visit(rootID)
	}
	return p.slices, nil
}

type partitioner struct {
	tree   *catalog.Tree
	slices []Slice
	target float64
	cur    int

	// covered marks folders already assigned through themselves or an
	// ancestor unit, guaranteeing the whole-folder, no-overlap invariant.
	covered *roaring.Bitmap
	ids     *interner
}

func (p *partitioner) visit(id string) {
	if p.covered.Contains(p.ids.intern(id)) {
		return
	}
	f, ok := p.tree.Folder(id)
	if !ok {
		return
	}

	remaining := p.target - float64(p.slices[p.cur].ActualWeight)
	fits := float64(f.CumulativeQueries) <= remaining // ties assign whole
	lastSlice := p.cur == len(p.slices)-1

	if fits || f.Leaf() || lastSlice {
		p.assignSubtree(f)
		p.advance()
		return
	}

	// Too big for the room left: keep the folder's own content here and
	// place each child subtree on its own.
	p.assignFolderOnly(f)
	p.advance()
	for _, childID := range f.Children {
		p.visit(childID)
	}
}

// assignSubtree takes the folder and every descendant as one unit.
// The unit's weight is the folder's cumulative count; descendants are
// marked covered, not re-counted.
func (p *partitioner) assignSubtree(f *catalog.Folder) {
	s := &p.slices[p.cur]
	s.ActualWeight += f.CumulativeQueries

	stack := []string{f.ID}
	for len(stack) > 0 {
		id := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		p.covered.Add(p.ids.intern(id))
		node, ok := p.tree.Folder(id)
		if !ok {
			continue
		}
		p.addFolder(s, node)
		for i := len(node.Children) - 1; i >= 0; i-- {
			stack = append(stack, node.Children[i])
		}
	}
}

// assignFolderOnly keeps just the folder's direct content in the current
// slice; its children are placed separately by the caller. Folders with no
// direct content are only marked covered — they surface in the metadata
// closure of whichever slices take their descendants, not in an assignment.
func (p *partitioner) assignFolderOnly(f *catalog.Folder) {
	p.covered.Add(p.ids.intern(f.ID))
	if f.DirectQueries == 0 && len(f.DashboardIDs) == 0 && len(f.LookIDs) == 0 {
		return
	}
	s := &p.slices[p.cur]
	s.ActualWeight += f.DirectQueries
	p.addFolder(s, f)
}

func (p *partitioner) addFolder(s *Slice, f *catalog.Folder) {
	s.AssignedFolderIDs = append(s.AssignedFolderIDs, f.ID)
	s.DashboardIDs = append(s.DashboardIDs, f.DashboardIDs...)
	s.LookIDs = append(s.LookIDs, f.LookIDs...)
}

// advance closes the current slice once it has reached its target, as long
// as unfilled slices remain.
func (p *partitioner) advance() {
	if p.cur < len(p.slices)-1 && float64(p.slices[p.cur].ActualWeight) >= p.target {
		p.cur++
	}
}
