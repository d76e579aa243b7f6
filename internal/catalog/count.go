package catalog

// Traversal colors for cycle detection.
const (
	stateUnvisited = iota
	stateOnPath
	stateDone
)

// CountQueries annotates every folder with its cumulative query count via a
// single iterative post-order traversal (children before parents). It also
// recomputes the tree's query total. The pass is pure and idempotent:
// running it twice on an unmodified tree yields identical counts.
//
// The loader rejects cyclic input, but CountQueries must not loop forever on
// a corrupted tree, so it tracks the current path and fails with
// *CycleDetectedError on a back-edge.
func CountQueries(t *Tree) error {
	type frame struct {
		id   string
		next int // index of the next child to visit
	}

	state := make(map[string]uint8, len(t.folders))

	for _, rootID := range t.roots {
		state[rootID] = stateOnPath
		stack := []frame{{id: rootID}}

		for len(stack) > 0 {
			fr := &stack[len(stack)-1]
			f := t.folders[fr.id]

			if fr.next == 0 {
				f.CumulativeQueries = f.DirectQueries
			}

			if fr.next < len(f.Children) {
				childID := f.Children[fr.next]
				fr.next++
				child := t.folders[childID]
				switch state[childID] {
				case stateOnPath:
					return &CycleDetectedError{FolderID: childID}
				case stateDone:
					// Reached through a second parent; its subtree is
					// already summed, so fold in the finished count.
					f.CumulativeQueries += child.CumulativeQueries
				default:
					state[childID] = stateOnPath
					stack = append(stack, frame{id: childID})
				}
				continue
			}

			state[fr.id] = stateDone
			stack = stack[:len(stack)-1]
			if len(stack) > 0 {
				parent := t.folders[stack[len(stack)-1].id]
				parent.CumulativeQueries += f.CumulativeQueries
			}
		}
	}

	t.TotalQueries = 0
	for _, f := range t.folders {
		t.TotalQueries += f.DirectQueries
	}
	return nil
}
