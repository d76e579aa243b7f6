package api

import (
	"context"
	"errors"
	"time"
)

// RawFolder is a single folder record as listed by the content platform.
// ID and MetadataID live in different namespaces: ID is the structural
// folder id, MetadataID is the handle the permission system grants
// access against.
type RawFolder struct {
	ID         string `json:"id"`
	ParentID   string `json:"parent_id,omitempty"` // empty for root folders
	Name       string `json:"name,omitempty"`
	MetadataID string `json:"content_metadata_id"`
}

// ContentKind distinguishes the two content item flavors.
type ContentKind int

const (
	KindDashboard ContentKind = iota
	KindLook
)

func (k ContentKind) String() string {
	if k == KindLook {
		return "look"
	}
	return "dashboard"
}

// ContentItem is a dashboard or Look owned by exactly one folder.
// QueryIDs lists the distinct queries the item issues; a dashboard may
// reference several queries or none, a Look always references one.
type ContentItem struct {
	ID       string      `json:"id"`
	FolderID string      `json:"folder_id"`
	Kind     ContentKind `json:"kind"`
	QueryIDs []string    `json:"query_ids,omitempty"`
}

// CatalogSource is the read side of the platform client. The core never
// constructs one; it receives it as a capability from the caller.
type CatalogSource interface {
	// ListFolders returns every folder on the instance.
	ListFolders(ctx context.Context) ([]RawFolder, error)
	// FolderContent returns the dashboards and Looks owned directly by
	// the given folder (not descendants).
	FolderContent(ctx context.Context, folderID string) ([]ContentItem, error)
}

// ErrAlreadyGranted is returned by AccessGranter implementations when the
// user already holds access to the metadata id. Callers treat it as success.
var ErrAlreadyGranted = errors.New("user already has access")

// AccessGranter grants a user view access to a content metadata id.
type AccessGranter interface {
	GrantMetadataAccess(ctx context.Context, userID, metadataID string) error
}

// ContentValidator runs one content validation scoped to the given user.
// Implementations are expected to impersonate the user so the run only
// sees content the user has been granted.
type ContentValidator interface {
	ValidateContent(ctx context.Context, userID string, timeout time.Duration) error
}
