package snapshot

import (
	"database/sql"
	"fmt"

	"github.com/agentic-research/lookslice/api"
	"github.com/ohler55/ojg/oj"
	_ "modernc.org/sqlite"
)

// Load reads a snapshot file back into raw catalog records, in the row
// order they were written so downstream tree construction is deterministic.
func Load(path string) ([]api.RawFolder, []api.ContentItem, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, nil, fmt.Errorf("open sqlite %s: %w", path, err)
	}
	defer func() { _ = db.Close() }()

	folders, err := loadFolders(db)
	if err != nil {
		return nil, nil, err
	}
	items, err := loadContent(db)
	if err != nil {
		return nil, nil, err
	}
	return folders, items, nil
}

func loadFolders(db *sql.DB) ([]api.RawFolder, error) {
	rows, err := db.Query("SELECT id, parent_id, name, metadata_id FROM folders ORDER BY rowid")
	if err != nil {
		return nil, fmt.Errorf("query folders: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var folders []api.RawFolder
	for rows.Next() {
		var f api.RawFolder
		var parent sql.NullString
		if err := rows.Scan(&f.ID, &parent, &f.Name, &f.MetadataID); err != nil {
			return nil, fmt.Errorf("scan folder row: %w", err)
		}
		if parent.Valid {
			f.ParentID = parent.String
		}
		folders = append(folders, f)
	}
	return folders, rows.Err()
}

func loadContent(db *sql.DB) ([]api.ContentItem, error) {
	rows, err := db.Query("SELECT id, folder_id, kind, query_ids FROM content ORDER BY rowid")
	if err != nil {
		return nil, fmt.Errorf("query content: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var items []api.ContentItem
	for rows.Next() {
		var item api.ContentItem
		var kind int
		var raw sql.NullString
		if err := rows.Scan(&item.ID, &item.FolderID, &kind, &raw); err != nil {
			return nil, fmt.Errorf("scan content row: %w", err)
		}
		item.Kind = api.ContentKind(kind)
		if raw.Valid {
			ids, err := parseQueryIDs(raw.String)
			if err != nil {
				return nil, fmt.Errorf("content %s query ids: %w", item.ID, err)
			}
			item.QueryIDs = ids
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

func parseQueryIDs(raw string) ([]string, error) {
	parsed, err := oj.ParseString(raw)
	if err != nil {
		return nil, err
	}
	list, ok := parsed.([]any)
	if !ok {
		return nil, fmt.Errorf("expected array, got %T", parsed)
	}
	ids := make([]string, 0, len(list))
	for _, v := range list {
		s, ok := v.(string)
		if !ok {
			return nil, fmt.Errorf("expected string id, got %T", v)
		}
		ids = append(ids, s)
	}
	return ids, nil
}
