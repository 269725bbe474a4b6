package featured

import (
	"context"
	"fmt"
	"sync"
	"time"

	"discover/listmodel"
	"discover/metrics"
	"discover/models"

	log "github.com/sirupsen/logrus"
)

// FeedLoader reads the current featured feed
type FeedLoader interface {
	Load(ctx context.Context) (*models.Feed, error)
}

// Refresher rebuilds a list model from the feed and the catalog
type Refresher struct {
	mu sync.Mutex

	Loader   FeedLoader
	Enricher *Enricher
	Model    *listmodel.Model

	// Notify, if set, receives the rows after each successful refresh
	Notify func(models.RefreshEvent)

	lastRefresh time.Time
}

// Refresh loads the feed, imports it into a scratch model, enriches it and
// swaps the result into the target model. Concurrent calls are serialized.
func (r *Refresher) Refresh(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	start := time.Now()
	feed, err := r.Loader.Load(ctx)
	metrics.FeedFetchDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.Refreshes.WithLabelValues("error").Inc()
		return fmt.Errorf("error loading featured feed: %w", err)
	}

	scratch := listmodel.New()
	GetFeatured(scratch, feed)
	r.Enricher.Enrich(scratch)

	rows := scratch.Rows()
	r.Model.Replace(rows)
	r.lastRefresh = time.Now()
	metrics.Refreshes.WithLabelValues("ok").Inc()

	logger := r.Enricher.Logger
	if logger == nil {
		logger = log.StandardLogger()
	}
	logger.WithFields(log.Fields{
		"entries":  feed.Len(),
		"rows":     len(rows),
		"duration": time.Since(start),
	}).Info("Refreshed featured applications")

	if r.Notify != nil {
		r.Notify(models.RefreshEvent{Rows: rows})
	}

	return nil
}

// LastRefresh returns when the model was last rebuilt, zero if never
func (r *Refresher) LastRefresh() time.Time {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.lastRefresh
}
