package catalog

import "fmt"

// MissingParentError reports a record whose parent reference points outside
// the input set. ChildID is the folder or content item carrying the
// reference, ParentID the id that could not be resolved.
type MissingParentError struct {
	ChildID  string
	ParentID string
}

func (e *MissingParentError) Error() string {
	return fmt.Sprintf("folder %s references missing parent %s", e.ChildID, e.ParentID)
}

// DuplicateFolderError reports the same folder id appearing twice with
// conflicting data. Exact re-listings of an identical record are tolerated.
type DuplicateFolderError struct {
	FolderID string
}

func (e *DuplicateFolderError) Error() string {
	return fmt.Sprintf("folder %s listed twice with conflicting data", e.FolderID)
}

// CycleDetectedError reports a folder revisited while still on the current
// traversal path. The loader rejects cyclic input, so hitting this means
// the tree was corrupted after construction.
type CycleDetectedError struct {
	FolderID string
}

func (e *CycleDetectedError) Error() string {
	return fmt.Sprintf("cycle detected at folder %s", e.FolderID)
}
