package slicer

import (
	"fmt"

	"github.com/RoaringBitmap/roaring"
	"github.com/agentic-research/lookslice/internal/catalog"
)

// UnresolvedAncestorError reports an ancestor chain that cannot be walked to
// a root. The loader guarantees complete chains, so this indicates a
// corrupted tree and is fatal.
type UnresolvedAncestorError struct {
	FolderID string
	ParentID string
}

func (e *UnresolvedAncestorError) Error() string {
	return fmt.Sprintf("ancestor chain broken at folder %s: parent %s not in tree", e.FolderID, e.ParentID)
}

// ResolveClosure fills the slice's MetadataClosure: the union, over every
// assigned folder, of its own metadata id and the metadata ids of all its
// ancestors up to the root. Access only propagates downward through the
// metadata hierarchy, so a grant on a deep folder is ineffective unless
// every ancestor id is granted alongside it.
//
// Pure with respect to the tree and the assignment; safe to recompute.
func ResolveClosure(t *catalog.Tree, s *Slice) error {
	meta := newInterner(len(s.AssignedFolderIDs) * 2)
	closure := roaring.New()
	walked := roaring.New() // folders whose chain is already in the closure
	folderIDs := newInterner(len(s.AssignedFolderIDs) * 2)

	for _, id := range s.AssignedFolderIDs {
		cur := id
		for cur != "" {
			fid := folderIDs.intern(cur)
			if walked.Contains(fid) {
				break // shared ancestor tail, already collected
			}
			walked.Add(fid)
			f, ok := t.Folder(cur)
			if !ok {
				return &UnresolvedAncestorError{FolderID: id, ParentID: cur}
			}
			if f.MetadataID != "" {
				closure.Add(meta.intern(f.MetadataID))
			}
			cur = f.ParentID
		}
	}

	out := make([]string, 0, closure.GetCardinality())
	it := closure.Iterator()
	for it.HasNext() {
		out = append(out, meta.lookup(it.Next()))
	}
	sortIDs(out)
	s.MetadataClosure = out
	return nil
}
