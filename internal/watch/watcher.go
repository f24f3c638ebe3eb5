// Package watch polls saved searches and announces businesses that appear
// in their results for the first time.
package watch

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/mfreitag/yelp-fusion/internal/config"
	"github.com/mfreitag/yelp-fusion/internal/metrics"
	"github.com/mfreitag/yelp-fusion/internal/notify"
	"github.com/mfreitag/yelp-fusion/pkg/yelp"
)

// Watch is one saved search to re-run on every poll.
type Watch struct {
	Name    string
	Request yelp.SearchRequest
}

// FromConfig converts configured watch specs into runnable watches.
func FromConfig(specs []config.WatchSpec) []Watch {
	watches := make([]Watch, 0, len(specs))
	for _, spec := range specs {
		watches = append(watches, Watch{
			Name: spec.Name,
			Request: yelp.SearchRequest{
				Term:       spec.Term,
				Location:   spec.Location,
				Latitude:   spec.Latitude,
				Longitude:  spec.Longitude,
				Radius:     spec.Radius,
				Categories: spec.Categories,
				Limit:      spec.Limit,
				SortBy:     spec.SortBy,
			},
		})
	}
	return watches
}

// Runner re-runs saved searches and notifies about newly seen businesses.
// The first run of each watch primes its seen set silently unless
// WithNotifyOnFirstRun is set.
type Runner struct {
	client   yelp.Client
	notifier notify.Notifier
	watches  []Watch
	log      *slog.Logger

	notifyOnFirstRun bool

	mu   sync.Mutex
	seen map[string]map[string]bool // watch name -> business IDs
}

// NewRunner creates a Runner with injected dependencies.
func NewRunner(
	client yelp.Client,
	notifier notify.Notifier,
	watches []Watch,
	opts ...RunnerOption,
) *Runner {
	r := &Runner{
		client:   client,
		notifier: notifier,
		watches:  watches,
		log:      slog.Default(),
		seen:     make(map[string]map[string]bool),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// RunnerOption configures the Runner.
type RunnerOption func(*Runner)

// WithLogger sets a custom logger.
func WithLogger(l *slog.Logger) RunnerOption {
	return func(r *Runner) {
		r.log = l
	}
}

// WithNotifyOnFirstRun makes the very first run of each watch notify for
// every result instead of silently priming the seen set.
func WithNotifyOnFirstRun(v bool) RunnerOption {
	return func(r *Runner) {
		r.notifyOnFirstRun = v
	}
}

// RunAll executes every watch once. A failing watch is logged and counted
// but does not stop the remaining watches; the combined error is returned.
func (r *Runner) RunAll(ctx context.Context) error {
	start := time.Now()
	defer func() {
		metrics.WatchRunDuration.Observe(time.Since(start).Seconds())
	}()

	var errs []error

	for i := range r.watches {
		if ctx.Err() != nil {
			return ctx.Err()
		}

		w := &r.watches[i]
		if err := r.runWatch(ctx, w); err != nil {
			r.log.Error("watch run failed", "watch", w.Name, "error", err)
			metrics.WatchRunErrorsTotal.WithLabelValues(w.Name).Inc()
			errs = append(errs, fmt.Errorf("watch %s: %w", w.Name, err))
		}
	}

	return errors.Join(errs...)
}

func (r *Runner) runWatch(ctx context.Context, w *Watch) error {
	metrics.WatchRunsTotal.WithLabelValues(w.Name).Inc()

	resp, err := r.client.Search(ctx, w.Request)
	if err != nil {
		return fmt.Errorf("searching: %w", err)
	}

	fresh, first := r.recordSeen(w.Name, resp.Businesses)

	r.log.Info("watch run complete",
		"watch", w.Name,
		"results", len(resp.Businesses),
		"new", len(fresh),
		"first_run", first,
	)

	if first && !r.notifyOnFirstRun {
		return nil
	}
	if len(fresh) == 0 {
		return nil
	}

	metrics.WatchNewBusinessesTotal.WithLabelValues(w.Name).Add(float64(len(fresh)))

	if len(fresh) == 1 {
		return r.notifier.SendAlert(ctx, notify.PayloadFromBusiness(w.Name, fresh[0]))
	}

	alerts := make([]notify.AlertPayload, 0, len(fresh))
	for _, biz := range fresh {
		alerts = append(alerts, notify.PayloadFromBusiness(w.Name, biz))
	}
	return r.notifier.SendBatchAlert(ctx, alerts, w.Name)
}

// recordSeen marks the given businesses as seen for a watch and returns the
// ones that were not seen before, plus whether this was the watch's first
// run.
func (r *Runner) recordSeen(
	watch string,
	businesses []yelp.Business,
) ([]yelp.Business, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	ids, ok := r.seen[watch]
	if !ok {
		ids = make(map[string]bool)
		r.seen[watch] = ids
	}

	var fresh []yelp.Business
	for _, biz := range businesses {
		if ids[biz.ID] {
			continue
		}
		ids[biz.ID] = true
		fresh = append(fresh, biz)
	}

	return fresh, !ok
}
