package snapshot

import (
	"fmt"
	"os"

	"github.com/agentic-research/lookslice/api"
	"github.com/ohler55/ojg/jp"
	"github.com/ohler55/ojg/oj"
)

// ImportJSON reads a catalog export file of the form
//
//	{"folders": [...], "content": [...]}
//
// where folder objects carry id / parent_id / name / content_metadata_id
// and content objects carry id / folder_id / kind ("dashboard" or "look")
// / query_ids.
func ImportJSON(path string) ([]api.RawFolder, []api.ContentItem, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, err
	}
	data, err := oj.Parse(raw)
	if err != nil {
		return nil, nil, fmt.Errorf("parse catalog export %s: %w", path, err)
	}

	foldersPath, err := jp.ParseString("$.folders[*]")
	if err != nil {
		return nil, nil, err
	}
	contentPath, err := jp.ParseString("$.content[*]")
	if err != nil {
		return nil, nil, err
	}

	var folders []api.RawFolder
	for _, v := range foldersPath.Get(data) {
		obj, ok := v.(map[string]any)
		if !ok {
			return nil, nil, fmt.Errorf("folder entry is %T, want object", v)
		}
		folders = append(folders, api.RawFolder{
			ID:         stringField(obj, "id"),
			ParentID:   stringField(obj, "parent_id"),
			Name:       stringField(obj, "name"),
			MetadataID: stringField(obj, "content_metadata_id"),
		})
	}

	var items []api.ContentItem
	for _, v := range contentPath.Get(data) {
		obj, ok := v.(map[string]any)
		if !ok {
			return nil, nil, fmt.Errorf("content entry is %T, want object", v)
		}
		kind := api.KindDashboard
		if stringField(obj, "kind") == "look" {
			kind = api.KindLook
		}
		item := api.ContentItem{
			ID:       stringField(obj, "id"),
			FolderID: stringField(obj, "folder_id"),
			Kind:     kind,
		}
		if list, ok := obj["query_ids"].([]any); ok {
			for _, q := range list {
				if s, ok := q.(string); ok {
					item.QueryIDs = append(item.QueryIDs, s)
				}
			}
		}
		items = append(items, item)
	}

	return folders, items, nil
}

// stringField tolerates numeric ids in exports by formatting them.
func stringField(obj map[string]any, key string) string {
	switch v := obj[key].(type) {
	case nil:
		return ""
	case string:
		return v
	case int64:
		return fmt.Sprintf("%d", v)
	case float64:
		return fmt.Sprintf("%.0f", v)
	default:
		return fmt.Sprintf("%v", v)
	}
}
