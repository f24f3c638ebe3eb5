package watch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"testing"

	ptestutil "github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mfreitag/yelp-fusion/internal/config"
	"github.com/mfreitag/yelp-fusion/internal/metrics"
	"github.com/mfreitag/yelp-fusion/internal/notify"
	"github.com/mfreitag/yelp-fusion/pkg/yelp"
)

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// fakeClient implements yelp.Client; only Search is expected to be called.
type fakeClient struct {
	mu       sync.Mutex
	requests []yelp.SearchRequest
	search   func(req yelp.SearchRequest) (*yelp.SearchResponse, error)
}

func (f *fakeClient) Search(
	_ context.Context,
	req yelp.SearchRequest,
) (*yelp.SearchResponse, error) {
	f.mu.Lock()
	f.requests = append(f.requests, req)
	f.mu.Unlock()
	return f.search(req)
}

func (f *fakeClient) BusinessDetails(context.Context, string) (*yelp.Business, error) {
	return nil, errors.New("not implemented")
}

func (f *fakeClient) BusinessReviews(context.Context, string, string) (*yelp.ReviewsResponse, error) {
	return nil, errors.New("not implemented")
}

func (f *fakeClient) calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.requests)
}

// fakeNotifier records every alert it receives.
type fakeNotifier struct {
	mu      sync.Mutex
	alerts  []notify.AlertPayload
	batches [][]notify.AlertPayload
	err     error
}

func (f *fakeNotifier) SendAlert(_ context.Context, alert notify.AlertPayload) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.alerts = append(f.alerts, alert)
	return nil
}

func (f *fakeNotifier) SendBatchAlert(
	_ context.Context,
	alerts []notify.AlertPayload,
	_ string,
) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.batches = append(f.batches, alerts)
	return nil
}

func (f *fakeNotifier) totalAlerts() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := len(f.alerts)
	for _, b := range f.batches {
		n += len(b)
	}
	return n
}

func biz(id string) yelp.Business {
	return yelp.Business{
		ID:     id,
		Name:   "Business " + id,
		URL:    "https://www.yelp.com/biz/" + id,
		Rating: 4.0,
	}
}

func respWith(ids ...string) *yelp.SearchResponse {
	resp := &yelp.SearchResponse{Total: len(ids)}
	for _, id := range ids {
		resp.Businesses = append(resp.Businesses, biz(id))
	}
	return resp
}

func TestRunner_FirstRunPrimesSilently(t *testing.T) {
	t.Parallel()

	client := &fakeClient{
		search: func(yelp.SearchRequest) (*yelp.SearchResponse, error) {
			return respWith("a", "b"), nil
		},
	}
	notifier := &fakeNotifier{}

	r := NewRunner(client, notifier, []Watch{
		{Name: "prime-test", Request: yelp.SearchRequest{Term: "coffee"}},
	}, WithLogger(quietLogger()))

	require.NoError(t, r.RunAll(context.Background()))
	assert.Zero(t, notifier.totalAlerts(), "first run should only prime the seen set")

	// Same results again: still nothing new.
	require.NoError(t, r.RunAll(context.Background()))
	assert.Zero(t, notifier.totalAlerts())
}

func TestRunner_NotifyOnFirstRun(t *testing.T) {
	t.Parallel()

	client := &fakeClient{
		search: func(yelp.SearchRequest) (*yelp.SearchResponse, error) {
			return respWith("a", "b"), nil
		},
	}
	notifier := &fakeNotifier{}

	r := NewRunner(client, notifier, []Watch{
		{Name: "eager-test", Request: yelp.SearchRequest{Term: "coffee"}},
	}, WithLogger(quietLogger()), WithNotifyOnFirstRun(true))

	require.NoError(t, r.RunAll(context.Background()))

	require.Len(t, notifier.batches, 1)
	assert.Len(t, notifier.batches[0], 2)
}

func TestRunner_SingleNewBusinessAlert(t *testing.T) {
	t.Parallel()

	run := 0
	client := &fakeClient{
		search: func(yelp.SearchRequest) (*yelp.SearchResponse, error) {
			run++
			if run == 1 {
				return respWith("a", "b"), nil
			}
			return respWith("a", "b", "c"), nil
		},
	}
	notifier := &fakeNotifier{}

	r := NewRunner(client, notifier, []Watch{
		{Name: "single-new", Request: yelp.SearchRequest{Term: "coffee"}},
	}, WithLogger(quietLogger()))

	require.NoError(t, r.RunAll(context.Background()))
	require.NoError(t, r.RunAll(context.Background()))

	require.Len(t, notifier.alerts, 1)
	assert.Empty(t, notifier.batches)
	assert.Equal(t, "c", notifier.alerts[0].BusinessID)
	assert.Equal(t, "Business c", notifier.alerts[0].Name)
	assert.Equal(t, "single-new", notifier.alerts[0].WatchName)
}

func TestRunner_MultipleNewBusinessesBatch(t *testing.T) {
	t.Parallel()

	run := 0
	client := &fakeClient{
		search: func(yelp.SearchRequest) (*yelp.SearchResponse, error) {
			run++
			if run == 1 {
				return respWith("a"), nil
			}
			return respWith("a", "b", "c"), nil
		},
	}
	notifier := &fakeNotifier{}

	r := NewRunner(client, notifier, []Watch{
		{Name: "multi-new", Request: yelp.SearchRequest{Term: "coffee"}},
	}, WithLogger(quietLogger()))

	require.NoError(t, r.RunAll(context.Background()))
	require.NoError(t, r.RunAll(context.Background()))

	assert.Empty(t, notifier.alerts)
	require.Len(t, notifier.batches, 1)
	assert.Len(t, notifier.batches[0], 2)
}

func TestRunner_SeenBusinessesStaySilent(t *testing.T) {
	t.Parallel()

	run := 0
	client := &fakeClient{
		search: func(yelp.SearchRequest) (*yelp.SearchResponse, error) {
			run++
			if run <= 2 {
				return respWith("a", "b", "c"), nil
			}
			return respWith("c", "b", "a"), nil
		},
	}
	notifier := &fakeNotifier{}

	r := NewRunner(client, notifier, []Watch{
		{Name: "dedupe-test", Request: yelp.SearchRequest{Term: "coffee"}},
	}, WithLogger(quietLogger()))

	for range 3 {
		require.NoError(t, r.RunAll(context.Background()))
	}

	assert.Zero(t, notifier.totalAlerts(),
		"reordered repeats of seen businesses should never notify")
}

func TestRunner_UsesWatchRequest(t *testing.T) {
	t.Parallel()

	client := &fakeClient{
		search: func(yelp.SearchRequest) (*yelp.SearchResponse, error) {
			return respWith(), nil
		},
	}

	want := yelp.SearchRequest{
		Term:       "tacos",
		Location:   "San Francisco, CA",
		Categories: []string{"mexican"},
		Limit:      75,
		SortBy:     yelp.SortRating,
	}

	r := NewRunner(client, &fakeNotifier{}, []Watch{
		{Name: "request-test", Request: want},
	}, WithLogger(quietLogger()))

	require.NoError(t, r.RunAll(context.Background()))

	require.Len(t, client.requests, 1)
	assert.Equal(t, want, client.requests[0])
}

func TestRunner_FailingWatchDoesNotStopOthers(t *testing.T) {
	t.Parallel()

	client := &fakeClient{
		search: func(req yelp.SearchRequest) (*yelp.SearchResponse, error) {
			if req.Term == "broken" {
				return nil, errors.New("upstream exploded")
			}
			return respWith("a"), nil
		},
	}
	notifier := &fakeNotifier{}

	r := NewRunner(client, notifier, []Watch{
		{Name: "broken-watch", Request: yelp.SearchRequest{Term: "broken"}},
		{Name: "healthy-watch", Request: yelp.SearchRequest{Term: "coffee"}},
	}, WithLogger(quietLogger()))

	errsBefore := ptestutil.ToFloat64(
		metrics.WatchRunErrorsTotal.WithLabelValues("broken-watch"),
	)

	err := r.RunAll(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "broken-watch")
	assert.Contains(t, err.Error(), "upstream exploded")

	// Both watches ran despite the failure.
	assert.Equal(t, 2, client.calls())

	errsAfter := ptestutil.ToFloat64(
		metrics.WatchRunErrorsTotal.WithLabelValues("broken-watch"),
	)
	assert.Greater(t, errsAfter, errsBefore)
}

func TestRunner_NotifierErrorSurfaces(t *testing.T) {
	t.Parallel()

	run := 0
	client := &fakeClient{
		search: func(yelp.SearchRequest) (*yelp.SearchResponse, error) {
			run++
			if run == 1 {
				return respWith("a"), nil
			}
			return respWith("a", "b"), nil
		},
	}
	notifier := &fakeNotifier{err: errors.New("webhook rejected")}

	r := NewRunner(client, notifier, []Watch{
		{Name: "notify-err", Request: yelp.SearchRequest{Term: "coffee"}},
	}, WithLogger(quietLogger()))

	require.NoError(t, r.RunAll(context.Background()))

	err := r.RunAll(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "webhook rejected")
}

func TestRunner_CancelledContext(t *testing.T) {
	t.Parallel()

	client := &fakeClient{
		search: func(yelp.SearchRequest) (*yelp.SearchResponse, error) {
			return respWith("a"), nil
		},
	}

	r := NewRunner(client, &fakeNotifier{}, []Watch{
		{Name: "cancelled", Request: yelp.SearchRequest{Term: "coffee"}},
	}, WithLogger(quietLogger()))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := r.RunAll(ctx)
	require.ErrorIs(t, err, context.Canceled)
	assert.Zero(t, client.calls())
}

func TestFromConfig(t *testing.T) {
	t.Parallel()

	specs := []config.WatchSpec{
		{
			Name:       "coffee-pdx",
			Term:       "coffee",
			Location:   "Portland, OR",
			Categories: []string{"coffee", "cafes"},
			Limit:      100,
			SortBy:     "rating",
		},
		{
			Name:      "nearby",
			Latitude:  45.5231,
			Longitude: -122.6765,
			Radius:    2000,
			Limit:     50,
		},
	}

	watches := FromConfig(specs)
	require.Len(t, watches, 2)

	assert.Equal(t, "coffee-pdx", watches[0].Name)
	assert.Equal(t, "coffee", watches[0].Request.Term)
	assert.Equal(t, "Portland, OR", watches[0].Request.Location)
	assert.Equal(t, []string{"coffee", "cafes"}, watches[0].Request.Categories)
	assert.Equal(t, 100, watches[0].Request.Limit)
	assert.Equal(t, yelp.SortRating, watches[0].Request.SortBy)

	assert.Equal(t, "nearby", watches[1].Name)
	assert.InDelta(t, 45.5231, watches[1].Request.Latitude, 0.0001)
	assert.InDelta(t, -122.6765, watches[1].Request.Longitude, 0.0001)
	assert.Equal(t, 2000, watches[1].Request.Radius)
}

func TestRunner_PerWatchSeenSetsAreIndependent(t *testing.T) {
	t.Parallel()

	client := &fakeClient{
		search: func(req yelp.SearchRequest) (*yelp.SearchResponse, error) {
			// Both watches return the same business ID.
			return respWith("shared"), nil
		},
	}
	notifier := &fakeNotifier{}

	r := NewRunner(client, notifier, []Watch{
		{Name: fmt.Sprintf("watch-%d", 1), Request: yelp.SearchRequest{Term: "one"}},
		{Name: fmt.Sprintf("watch-%d", 2), Request: yelp.SearchRequest{Term: "two"}},
	}, WithLogger(quietLogger()), WithNotifyOnFirstRun(true))

	require.NoError(t, r.RunAll(context.Background()))

	// Each watch sees the shared business as new independently.
	assert.Equal(t, 2, notifier.totalAlerts())
}
