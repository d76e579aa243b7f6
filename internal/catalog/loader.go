package catalog

import "github.com/agentic-research/lookslice/api"

// Build links a flat collection of raw folder records and content items into
// a Tree. Inputs are not mutated. Children are ordered by first appearance
// in the folder listing so identical inputs always produce identical trees.
//
// Build fails with *MissingParentError when a folder's parent, or a content
// item's owning folder, is absent from the listing, and with
// *DuplicateFolderError when a folder id reappears with conflicting data.
func Build(folders []api.RawFolder, items []api.ContentItem) (*Tree, error) {
	t := &Tree{
		folders: make(map[string]*Folder, len(folders)),
		order:   make([]string, 0, len(folders)),
	}

	for _, rf := range folders {
		if existing, ok := t.folders[rf.ID]; ok {
			if existing.ParentID != rf.ParentID ||
				existing.MetadataID != rf.MetadataID ||
				existing.Name != rf.Name {
				return nil, &DuplicateFolderError{FolderID: rf.ID}
			}
			continue // exact re-listing, ignore
		}
		t.folders[rf.ID] = &Folder{
			ID:         rf.ID,
			ParentID:   rf.ParentID,
			Name:       rf.Name,
			MetadataID: rf.MetadataID,
		}
		t.order = append(t.order, rf.ID)
	}

	// Link children after all folders are registered: the listing is
	// unordered, so a child may precede its parent.
	for _, id := range t.order {
		f := t.folders[id]
		if f.ParentID == "" {
			t.roots = append(t.roots, id)
			continue
		}
		parent, ok := t.folders[f.ParentID]
		if !ok {
			return nil, &MissingParentError{ChildID: id, ParentID: f.ParentID}
		}
		parent.Children = append(parent.Children, id)
	}

	for _, item := range items {
		f, ok := t.folders[item.FolderID]
		if !ok {
			return nil, &MissingParentError{ChildID: item.ID, ParentID: item.FolderID}
		}
		switch item.Kind {
		case api.KindLook:
			f.LookIDs = append(f.LookIDs, item.ID)
			t.TotalLooks++
		default:
			f.DashboardIDs = append(f.DashboardIDs, item.ID)
			t.TotalDashboards++
		}
		f.DirectQueries += len(item.QueryIDs)
	}

	t.TotalFolders = len(t.folders)
	return t, nil
}
