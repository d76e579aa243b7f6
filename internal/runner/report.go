package runner

import (
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"
)

// Report aggregates validator run timings keyed by cumulative query volume.
type Report struct {
	TotalQueries int

	mu      sync.Mutex
	results map[int][]time.Duration
}

func (r *Report) add(scanned int, elapsed time.Duration) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.results == nil {
		r.results = make(map[int][]time.Duration)
	}
	r.results[scanned] = append(r.results[scanned], elapsed)
}

// Summary is the aggregated timing for one cumulative scan volume.
type Summary struct {
	QueriesScanned int
	Fraction       float64 // of the catalog's total query count
	Iterations     int
	Mean           time.Duration
}

// Summaries returns one entry per scan volume, in ascending volume order.
func (r *Report) Summaries() []Summary {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]Summary, 0, len(r.results))
	for scanned, runs := range r.results {
		var total time.Duration
		for _, d := range runs {
			total += d
		}
		s := Summary{
			QueriesScanned: scanned,
			Iterations:     len(runs),
			Mean:           total / time.Duration(len(runs)),
		}
		if r.TotalQueries > 0 {
			s.Fraction = float64(scanned) / float64(r.TotalQueries)
		}
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].QueriesScanned < out[j].QueriesScanned })
	return out
}

func (r *Report) String() string {
	var b strings.Builder
	for _, s := range r.Summaries() {
		fmt.Fprintf(&b, "%.2f%% of queries scanned in avg %s (%d iterations)\n",
			s.Fraction*100, s.Mean.Round(10*time.Millisecond), s.Iterations)
	}
	return b.String()
}
