// Package fetch pulls a catalog snapshot through the platform client
// capability, one folder at a time, logging scan progress with a running
// estimate of time remaining.
package fetch

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/agentic-research/lookslice/api"
	"go.uber.org/zap"
)

// defaultEstimateInterval is how many folders pass between recalculations
// of the remaining-time estimate.
const defaultEstimateInterval = 10

// Fetcher scans every folder's content through a CatalogSource.
type Fetcher struct {
	Source api.CatalogSource
	Logger *zap.Logger

	// EstimateInterval overrides how often the remaining-time estimate is
	// refreshed; zero means the default.
	EstimateInterval int
}

// Fetch lists all folders and their direct content. LookML dashboards
// (non-numeric dashboard ids) cannot be validated and are skipped. Looks
// that arrive without query ids are normalized to reference a single query,
// since a Look always issues exactly one.
func (f *Fetcher) Fetch(ctx context.Context) ([]api.RawFolder, []api.ContentItem, error) {
	logger := f.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	interval := f.EstimateInterval
	if interval <= 0 {
		interval = defaultEstimateInterval
	}

	folders, err := f.Source.ListFolders(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("list folders: %w", err)
	}

	start := time.Now()
	var remaining time.Duration
	var items []api.ContentItem

	for idx, folder := range folders {
		if err := ctx.Err(); err != nil {
			return nil, nil, err
		}
		if idx%interval == 0 {
			remaining = estimateRemaining(start, idx, len(folders))
		}
		fields := []zap.Field{
			zap.String("folder", folder.ID),
			zap.Int("scanned", idx),
			zap.Int("total", len(folders)),
		}
		if remaining > 0 {
			fields = append(fields, zap.String("remaining", humanDuration(remaining)))
		}
		logger.Info("scanning folder", fields...)

		content, err := f.Source.FolderContent(ctx, folder.ID)
		if err != nil {
			return nil, nil, fmt.Errorf("folder %s content: %w", folder.ID, err)
		}
		for _, item := range content {
			if item.Kind == api.KindDashboard {
				if _, err := strconv.Atoi(item.ID); err != nil {
					logger.Debug("skipping LookML dashboard", zap.String("dashboard", item.ID))
					continue
				}
			}
			if item.Kind == api.KindLook && len(item.QueryIDs) == 0 {
				item.QueryIDs = []string{item.ID}
			}
			items = append(items, item)
		}
	}

	logger.Info("catalog scan complete",
		zap.Int("folders", len(folders)),
		zap.Int("content_items", len(items)),
		zap.Duration("elapsed", time.Since(start)),
	)
	return folders, items, nil
}
