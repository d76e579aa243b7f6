// Package catalog builds an in-memory tree from a flat folder listing and
// annotates it with recursive query-volume weights. The tree is an arena of
// folder records keyed by id; parent/child relations are id lookups into the
// arena, never owning pointers.
package catalog

// Folder is a node in the catalog tree.
type Folder struct {
	ID         string
	ParentID   string // empty for roots
	Name       string
	MetadataID string // permission-system handle, distinct namespace from ID

	// Children holds child folder ids in first-seen input order. The order
	// is irrelevant to correctness but makes partitioning deterministic.
	Children []string

	// Direct content owned by this folder (not descendants).
	DashboardIDs []string
	LookIDs      []string

	// DirectQueries counts the distinct queries referenced by the direct
	// dashboards and Looks.
	DirectQueries int

	// CumulativeQueries is DirectQueries plus the sum over all descendants.
	// Set by CountQueries; zero until then.
	CumulativeQueries int
}

// Leaf reports whether the folder has no child folders.
func (f *Folder) Leaf() bool {
	return len(f.Children) == 0
}

// Tree is the linked catalog, read-only once built.
type Tree struct {
	folders map[string]*Folder
	order   []string // every folder id in first-seen input order
	roots   []string // root folder ids in first-seen input order

	TotalFolders    int
	TotalDashboards int
	TotalLooks      int
	TotalQueries    int // set by CountQueries
}

// Folder returns the folder with the given id.
func (t *Tree) Folder(id string) (*Folder, bool) {
	f, ok := t.folders[id]
	return f, ok
}

// Roots returns the root folder ids in first-seen input order.
// The returned slice must not be modified.
func (t *Tree) Roots() []string {
	return t.roots
}

// FolderIDs returns every folder id in first-seen input order.
// The returned slice must not be modified.
func (t *Tree) FolderIDs() []string {
	return t.order
}

// Len returns the number of folders in the tree.
func (t *Tree) Len() int {
	return len(t.folders)
}
