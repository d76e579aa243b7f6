// Package snapshot persists a fetched catalog to a local SQLite file so
// repeated planning runs can skip the slow per-folder platform scan.
// A snapshot is a point-in-time copy: folders plus content items, nothing
// derived (weights and slices are recomputed on load).
package snapshot

import (
	"database/sql"
	"fmt"
	"sync"

	"github.com/agentic-research/lookslice/api"
	"github.com/ohler55/ojg/oj"
	_ "modernc.org/sqlite"
)

// Writer batches catalog records into a snapshot database.
type Writer struct {
	db          *sql.DB
	tx          *sql.Tx
	stmtFolder  *sql.Stmt
	stmtContent *sql.Stmt
	batchSize   int
	count       int
	mu          sync.Mutex
}

// NewWriter creates the snapshot file and initializes its schema.
// An existing file at the path is extended, not truncated; callers that
// want a fresh snapshot remove the file first.
func NewWriter(path string) (*Writer, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite %s: %w", path, err)
	}

	// Bulk-insert tuning; a snapshot is rebuilt wholesale on failure.
	if _, err := db.Exec("PRAGMA synchronous = OFF"); err != nil {
		_ = db.Close()
		return nil, err
	}
	if _, err := db.Exec("PRAGMA journal_mode = MEMORY"); err != nil {
		_ = db.Close()
		return nil, err
	}

	schema := `
	CREATE TABLE IF NOT EXISTS folders (
		id TEXT PRIMARY KEY,
		parent_id TEXT,
		name TEXT NOT NULL,
		metadata_id TEXT NOT NULL
	);
	CREATE TABLE IF NOT EXISTS content (
		id TEXT NOT NULL,
		folder_id TEXT NOT NULL,
		kind INTEGER NOT NULL,
		query_ids TEXT,
		PRIMARY KEY (id, kind)
	);
	`
	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}

	w := &Writer{
		db:        db,
		batchSize: 10000,
	}
	if err := w.beginTx(); err != nil {
		_ = db.Close()
		return nil, err
	}
	return w, nil
}

func (w *Writer) beginTx() error {
	var err error
	w.tx, err = w.db.Begin()
	if err != nil {
		return err
	}
	w.stmtFolder, err = w.tx.Prepare(`
		INSERT OR REPLACE INTO folders (id, parent_id, name, metadata_id)
		VALUES (?, ?, ?, ?)
	`)
	if err != nil {
		return err
	}
	w.stmtContent, err = w.tx.Prepare(`
		INSERT OR REPLACE INTO content (id, folder_id, kind, query_ids)
		VALUES (?, ?, ?, ?)
	`)
	return err
}

func (w *Writer) commitTx() error {
	if w.stmtFolder != nil {
		_ = w.stmtFolder.Close()
	}
	if w.stmtContent != nil {
		_ = w.stmtContent.Close()
	}
	return w.tx.Commit()
}

func (w *Writer) maybeFlush() error {
	w.count++
	if w.count < w.batchSize {
		return nil
	}
	if err := w.commitTx(); err != nil {
		return fmt.Errorf("commit batch: %w", err)
	}
	w.count = 0
	return w.beginTx()
}

// AddFolder writes one folder record.
func (w *Writer) AddFolder(f api.RawFolder) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	var parent *string
	if f.ParentID != "" {
		parent = &f.ParentID
	}
	if _, err := w.stmtFolder.Exec(f.ID, parent, f.Name, f.MetadataID); err != nil {
		return fmt.Errorf("insert folder %s: %w", f.ID, err)
	}
	return w.maybeFlush()
}

// AddContent writes one content item. Query ids are stored as a JSON array.
func (w *Writer) AddContent(item api.ContentItem) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	var queryIDs *string
	if len(item.QueryIDs) > 0 {
		s := oj.JSON(item.QueryIDs)
		queryIDs = &s
	}
	if _, err := w.stmtContent.Exec(item.ID, item.FolderID, int(item.Kind), queryIDs); err != nil {
		return fmt.Errorf("insert content %s: %w", item.ID, err)
	}
	return w.maybeFlush()
}

// Close flushes the final batch and closes the database.
func (w *Writer) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if err := w.commitTx(); err != nil {
		_ = w.db.Close()
		return err
	}
	if _, err := w.db.Exec(`CREATE INDEX IF NOT EXISTS idx_content_folder ON content(folder_id)`); err != nil {
		_ = w.db.Close()
		return fmt.Errorf("create content index: %w", err)
	}
	return w.db.Close()
}

// Write dumps a whole catalog to path in one call.
func Write(path string, folders []api.RawFolder, items []api.ContentItem) error {
	w, err := NewWriter(path)
	if err != nil {
		return err
	}
	for _, f := range folders {
		if err := w.AddFolder(f); err != nil {
			_ = w.Close()
			return err
		}
	}
	for _, item := range items {
		if err := w.AddContent(item); err != nil {
			_ = w.Close()
			return err
		}
	}
	return w.Close()
}
