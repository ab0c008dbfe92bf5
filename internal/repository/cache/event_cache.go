package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"eventvenues/internal/domain"
)

// DefaultEventTTL is how long an event snapshot lives in the cache.
const DefaultEventTTL = 300 * time.Second

const eventKeyPrefix = "event:"

func eventKey(id string) string { return eventKeyPrefix + domain.NormalizeID(id) }

type eventCache struct {
	client redis.Cmdable
	ttl    time.Duration
}

// NewEventCache returns a key-value event cache. Entries are plain JSON strings under
// "event:<id>" and expire after ttl; nothing invalidates them earlier.
func NewEventCache(client redis.Cmdable, ttl time.Duration) domain.EventCache {
	if ttl <= 0 {
		ttl = DefaultEventTTL
	}
	return &eventCache{client: client, ttl: ttl}
}

// FindEvents reads all ids with a single MGET. Misses, and entries that no longer
// decode, come back as nil.
func (c *eventCache) FindEvents(ctx context.Context, ids []string) ([]*domain.Event, error) {
	out := make([]*domain.Event, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = eventKey(id)
	}

	vals, err := c.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, fmt.Errorf("mget events: %w", err)
	}
	for i, v := range vals {
		if i >= len(out) {
			break
		}
		raw, ok := v.(string)
		if !ok {
			continue
		}
		var ce cachedEvent
		if err := json.Unmarshal([]byte(raw), &ce); err != nil {
			continue
		}
		if e, err := ce.toDomain(); err == nil {
			out[i] = e
		}
	}
	return out, nil
}

// CacheEvents writes every event in one pipeline: a SET followed by an EXPIRE per key.
func (c *eventCache) CacheEvents(ctx context.Context, events []*domain.Event) error {
	if len(events) == 0 {
		return nil
	}
	pipe := c.client.Pipeline()
	for _, e := range events {
		data, err := json.Marshal(newCachedEvent(e))
		if err != nil {
			return fmt.Errorf("encode event %s: %w", e.ID, err)
		}
		key := eventKey(e.ID)
		pipe.Set(ctx, key, string(data), 0)
		pipe.Expire(ctx, key, c.ttl)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("cache events: %w", err)
	}
	return nil
}

// cachedEvent is the stored form of an event. Ids are plain strings and every
// timestamp is RFC 3339; times of day are anchored on the event's start or end date.
type cachedEvent struct {
	ID             string   `json:"id"`
	OrganizationID string   `json:"organizationId"`
	VenueID        string   `json:"venueId,omitempty"`
	Title          string   `json:"title"`
	Description    string   `json:"description,omitempty"`
	Location       string   `json:"location,omitempty"`
	StartDate      string   `json:"startDate"`
	EndDate        string   `json:"endDate"`
	AllDay         bool     `json:"allDay"`
	StartTime      string   `json:"startTime,omitempty"`
	EndTime        string   `json:"endTime,omitempty"`
	CreatorID      string   `json:"creatorId"`
	Admins         []string `json:"admins"`
	Status         string   `json:"status"`
	CreatedAt      string   `json:"createdAt"`
	UpdatedAt      string   `json:"updatedAt"`
}

func newCachedEvent(e *domain.Event) cachedEvent {
	ce := cachedEvent{
		ID:             e.ID,
		OrganizationID: e.OrganizationID,
		VenueID:        e.VenueRef(),
		Title:          e.Title,
		Description:    e.Description,
		Location:       e.Location,
		StartDate:      e.StartDate.UTC().Format(time.RFC3339),
		EndDate:        e.EndDate.UTC().Format(time.RFC3339),
		AllDay:         e.AllDay,
		CreatorID:      e.CreatorID,
		Admins:         e.Admins,
		Status:         string(e.Status),
		CreatedAt:      e.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAt:      e.UpdatedAt.UTC().Format(time.RFC3339),
	}
	if e.StartTime != nil {
		ce.StartTime = e.StartTime.On(e.StartDate).Format(time.RFC3339)
	}
	if e.EndTime != nil {
		ce.EndTime = e.EndTime.On(e.EndDate).Format(time.RFC3339)
	}
	return ce
}

func (ce cachedEvent) toDomain() (*domain.Event, error) {
	e := &domain.Event{
		ID:             domain.NormalizeID(ce.ID),
		OrganizationID: domain.NormalizeID(ce.OrganizationID),
		Title:          ce.Title,
		Description:    ce.Description,
		Location:       ce.Location,
		AllDay:         ce.AllDay,
		CreatorID:      domain.NormalizeID(ce.CreatorID),
		Admins:         domain.NormalizeIDs(ce.Admins),
		Status:         domain.EventStatus(ce.Status),
	}
	if ce.VenueID != "" {
		v := domain.NormalizeID(ce.VenueID)
		e.VenueID = &v
	}

	var err error
	if e.StartDate, err = parseDate(ce.StartDate); err != nil {
		return nil, err
	}
	if e.EndDate, err = parseDate(ce.EndDate); err != nil {
		return nil, err
	}
	if e.StartTime, err = parseClock(ce.StartTime); err != nil {
		return nil, err
	}
	if e.EndTime, err = parseClock(ce.EndTime); err != nil {
		return nil, err
	}
	if e.CreatedAt, err = time.Parse(time.RFC3339, ce.CreatedAt); err != nil {
		return nil, err
	}
	if e.UpdatedAt, err = time.Parse(time.RFC3339, ce.UpdatedAt); err != nil {
		return nil, err
	}
	return e, nil
}

func parseDate(s string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, err
	}
	return domain.DateOf(t), nil
}

func parseClock(s string) (*domain.TimeOfDay, error) {
	if s == "" {
		return nil, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return nil, err
	}
	tod := domain.TimeOfDayOf(t)
	return &tod, nil
}
