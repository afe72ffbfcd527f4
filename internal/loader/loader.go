// Package loader turns a configured feed source into the resident article
// collection of a session.
package loader

import (
	"context"
	"errors"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/singleflight"

	"portfolio/internal/cache"
	"portfolio/internal/config"
	"portfolio/internal/feederr"
	"portfolio/internal/fetcher"
	"portfolio/internal/models"
	"portfolio/internal/normalizer"
	"portfolio/internal/pipeline"
	"portfolio/internal/storage"
)

const sessionKey = "session"

// Fetcher retrieves the raw payload of a source
type Fetcher interface {
	Fetch(ctx context.Context, url string, format models.Format) ([]byte, error)
}

type Loader struct {
	fetcher      Fetcher
	cacheManager *cache.Manager
	storage      storage.Storage
	format       models.Format
	primary      string
	fallback     string

	group singleflight.Group

	mu    sync.RWMutex
	state models.LoadState
}

// New creates a loader for the sources in cfg. store may be nil, in which case
// no load history is kept.
func New(f Fetcher, cacheManager *cache.Manager, store storage.Storage, cfg config.FeedConfig) (*Loader, error) {
	primary, err := fetcher.ResolveURL(cfg.URL)
	if err != nil {
		return nil, err
	}
	if primary == "" {
		return nil, errors.New("feed url is required")
	}
	fallback, err := fetcher.ResolveURL(cfg.FallbackURL)
	if err != nil {
		return nil, err
	}

	return &Loader{
		fetcher:      f,
		cacheManager: cacheManager,
		storage:      store,
		format:       cfg.Format,
		primary:      primary,
		fallback:     fallback,
		state:        models.LoadIdle,
	}, nil
}

// Source returns the resolved primary source URL
func (l *Loader) Source() string {
	return l.primary
}

// State returns the state of the most recent load
func (l *Loader) State() models.LoadState {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.state
}

func (l *Loader) setState(state models.LoadState) {
	l.mu.Lock()
	l.state = state
	l.mu.Unlock()
}

// Session returns the resident collection, loading it when no session is
// active. Concurrent callers share a single in-flight load. The shared load is
// detached from ctx so one caller leaving does not fail it for the others; a
// caller whose ctx ends stops waiting and gets ctx.Err().
func (l *Loader) Session(ctx context.Context) (*models.Collection, error) {
	if collection, ok := l.cacheManager.Collection(l.primary); ok {
		return collection, nil
	}

	loadCtx := context.WithoutCancel(ctx)
	ch := l.group.DoChan(sessionKey, func() (interface{}, error) {
		if collection, ok := l.cacheManager.Collection(l.primary); ok {
			return collection, nil
		}
		return l.Load(loadCtx)
	})

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		return res.Val.(*models.Collection), nil
	}
}

// Expires returns when the current session ends
func (l *Loader) Expires() (time.Time, bool) {
	return l.cacheManager.Expires(l.primary)
}

// Load fetches and normalizes the primary source, retrying once with the
// fallback source on any failure. A successful collection becomes the resident
// session; failures are never cached.
func (l *Loader) Load(ctx context.Context) (*models.Collection, error) {
	l.setState(models.LoadLoading)

	collection, err := l.loadFrom(ctx, l.primary)
	if err != nil && l.fallback != "" {
		log.Printf("Loading %s failed, trying fallback %s: %v", l.primary, l.fallback, err)
		var fallbackErr error
		collection, fallbackErr = l.loadFrom(ctx, l.fallback)
		if fallbackErr != nil {
			err = errors.Join(err, fallbackErr)
		} else {
			err = nil
		}
	}

	if err != nil {
		l.setState(models.LoadFailed)
		log.Printf("Failed to load articles: %v", err)
		return nil, err
	}

	l.cacheManager.SetCollection(l.primary, collection)
	l.setState(models.LoadLoaded)
	log.Printf("Loaded %d articles from %s", len(collection.Articles), collection.Source)
	return collection, nil
}

func (l *Loader) loadFrom(ctx context.Context, source string) (*models.Collection, error) {
	record := models.LoadRecord{
		ID:        uuid.NewString(),
		Source:    source,
		StartedAt: time.Now(),
	}

	collection, err := l.fetchCollection(ctx, source)

	record.FinishedAt = time.Now()
	if err != nil {
		record.State = models.LoadFailed
		record.ErrorKind = feederr.KindOf(err).String()
		record.ErrorDetail = err.Error()
	} else {
		record.State = models.LoadLoaded
		record.ArticleCount = len(collection.Articles)
	}
	l.record(ctx, record)

	return collection, err
}

func (l *Loader) fetchCollection(ctx context.Context, source string) (*models.Collection, error) {
	data, err := l.fetcher.Fetch(ctx, source, l.format)
	if err != nil {
		return nil, err
	}

	var doc *normalizer.Document
	if l.format == models.FormatFeed {
		doc, err = normalizer.FromFeed(data)
	} else {
		doc, err = normalizer.FromJSON(data)
	}
	if err != nil {
		var feedErr *feederr.Error
		if errors.As(err, &feedErr) && feedErr.Source == "" {
			feedErr.Source = source
		}
		return nil, err
	}
	if doc.Dropped > 0 {
		log.Printf("Dropped %d records without a title or url from %s", doc.Dropped, source)
	}
	for _, warning := range doc.Warnings {
		log.Printf("Warning: %s in %s", warning, source)
	}

	collection := pipeline.NewCollection(doc.Articles)
	collection.LastUpdated = doc.LastUpdated
	collection.Source = source
	collection.LoadedAt = time.Now()
	return collection, nil
}

func (l *Loader) record(ctx context.Context, record models.LoadRecord) {
	if l.storage == nil {
		return
	}
	// History is written even when the request that triggered the load went away
	if err := l.storage.RecordLoad(context.WithoutCancel(ctx), record); err != nil {
		log.Printf("Warning: %v", err)
	}
}
