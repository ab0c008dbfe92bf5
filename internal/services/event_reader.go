package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"eventvenues/internal/domain"
	"eventvenues/internal/monitoring"
)

// eventReader resolves events cache-first. On a miss it reads the repository and
// repopulates the cache. Cache failures never reach the caller.
//
// A cached snapshot is not invalidated when the event changes, so reads may be stale
// for up to the cache TTL after an update or soft delete.
type eventReader struct {
	repo   domain.EventRepository
	cache  domain.EventCache
	logger *slog.Logger
}

func newEventReader(repo domain.EventRepository, cache domain.EventCache, logger *slog.Logger) *eventReader {
	return &eventReader{repo: repo, cache: cache, logger: logger}
}

// Load returns the event or NotFound. Soft-deleted events are reported as missing.
func (r *eventReader) Load(ctx context.Context, eventID string) (*domain.Event, error) {
	id := domain.NormalizeID(eventID)
	if id == "" {
		return nil, domain.NotFound("event not found")
	}

	if ev := r.fromCache(ctx, id); ev != nil {
		if ev.IsDeleted() {
			return nil, domain.NotFound("event not found")
		}
		return ev, nil
	}

	ev, err := r.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.NotFound("event not found")
		}
		return nil, fmt.Errorf("get event: %w", err)
	}
	r.Warm(ctx, ev)
	if ev.IsDeleted() {
		return nil, domain.NotFound("event not found")
	}
	return ev, nil
}

func (r *eventReader) fromCache(ctx context.Context, id string) *domain.Event {
	if r.cache == nil {
		return nil
	}
	cached, err := r.cache.FindEvents(ctx, []string{id})
	if err != nil {
		monitoring.TrackCacheLookup("error")
		r.logger.WarnContext(ctx, "event cache lookup failed", "event_id", id, "err", err)
		return nil
	}
	if len(cached) != 1 || cached[0] == nil {
		monitoring.TrackCacheLookup("miss")
		return nil
	}
	monitoring.TrackCacheLookup("hit")
	return cached[0]
}

// Warm writes the events to the cache. Failures are logged and swallowed.
func (r *eventReader) Warm(ctx context.Context, events ...*domain.Event) {
	if r.cache == nil || len(events) == 0 {
		return
	}
	err := r.cache.CacheEvents(ctx, events)
	monitoring.TrackCacheWrite(err)
	if err != nil {
		r.logger.WarnContext(ctx, "event cache population failed", "events", len(events), "err", err)
	}
}
