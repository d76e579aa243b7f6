// Package runner drives content-validator runs over a slice plan: for each
// slice it grants the target user the slice's metadata closure, then invokes
// the validator scoped to that user and times the run. Grants accumulate
// across slices, so run k scans everything granted through slice k — the
// report therefore keys results by cumulative query volume.
package runner

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/agentic-research/lookslice/api"
	"github.com/agentic-research/lookslice/internal/slicer"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// defaultGrantConcurrency bounds parallel grant calls per slice; the grant
// endpoints are independent per metadata id.
const defaultGrantConcurrency = 8

// Runner executes a plan against the platform capabilities.
type Runner struct {
	Granter   api.AccessGranter
	Validator api.ContentValidator
	Logger    *zap.Logger

	// UserID is the user the validator runs impersonate.
	UserID string
	// Timeout bounds one validator invocation.
	Timeout time.Duration
	// Iterations is how many validator runs to time per slice (minimum 1).
	Iterations int
	// GrantConcurrency bounds parallel grant calls; zero means the default.
	GrantConcurrency int

	mu      sync.Mutex
	granted map[string]struct{} // metadata ids already granted to UserID
}

// Run walks the plan in slice order. It fails fast: an ungrantable metadata
// id or a failed validation aborts the remaining slices, since their timings
// would no longer mean anything.
func (r *Runner) Run(ctx context.Context, plan *slicer.Plan) (*Report, error) {
	if r.UserID == "" {
		return nil, errors.New("runner: target user required")
	}
	logger := r.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	iterations := r.Iterations
	if iterations < 1 {
		iterations = 1
	}

	report := &Report{TotalQueries: plan.TotalWeight}
	scanned := 0

	for i := range plan.Slices {
		s := &plan.Slices[i]
		scanned += s.ActualWeight

		if err := r.grantClosure(ctx, s, logger); err != nil {
			return report, err
		}

		for iter := 0; iter < iterations; iter++ {
			elapsed, err := r.timedValidation(ctx)
			if err != nil {
				return report, fmt.Errorf("slice %d validation: %w", s.Index, err)
			}
			logger.Info("validation run complete",
				zap.Int("slice", s.Index),
				zap.Int("iteration", iter+1),
				zap.Int("queries_scanned", scanned),
				zap.Duration("elapsed", elapsed),
			)
			report.add(scanned, elapsed)
		}
	}
	return report, nil
}

// grantClosure grants every metadata id in the slice's closure that the
// user does not already hold. Grants for distinct ids are independent, so
// they run on a bounded errgroup.
func (r *Runner) grantClosure(ctx context.Context, s *slicer.Slice, logger *zap.Logger) error {
	pending := r.pendingGrants(s.MetadataClosure)
	if len(pending) == 0 {
		return nil
	}

	concurrency := r.GrantConcurrency
	if concurrency <= 0 {
		concurrency = defaultGrantConcurrency
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)
	for _, metadataID := range pending {
		metadataID := metadataID
		g.Go(func() error {
			err := r.Granter.GrantMetadataAccess(gctx, r.UserID, metadataID)
			switch {
			case err == nil:
			case errors.Is(err, api.ErrAlreadyGranted):
				logger.Debug("metadata access already present",
					zap.String("metadata_id", metadataID))
			default:
				return fmt.Errorf("grant metadata %s: %w", metadataID, err)
			}
			r.markGranted(metadataID)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}
	logger.Info("metadata access granted",
		zap.Int("slice", s.Index),
		zap.Int("new_grants", len(pending)),
	)
	return nil
}

func (r *Runner) pendingGrants(closure []string) []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.granted == nil {
		r.granted = make(map[string]struct{})
	}
	var pending []string
	for _, id := range closure {
		if _, ok := r.granted[id]; !ok {
			pending = append(pending, id)
		}
	}
	return pending
}

func (r *Runner) markGranted(metadataID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.granted[metadataID] = struct{}{}
}

func (r *Runner) timedValidation(ctx context.Context) (time.Duration, error) {
	timeout := r.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Minute
	}
	start := time.Now()
	if err := r.Validator.ValidateContent(ctx, r.UserID, timeout); err != nil {
		return 0, err
	}
	return time.Since(start), nil
}
