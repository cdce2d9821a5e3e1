package service

import (
	"context"
	"net/http"
	"sort"
	"time"

	"github.com/yndnr/tankmate-go/internal/core/domain"
)

// EventService manages the tank event log.
type EventService struct {
	Base
}

// NewEventService creates an EventService.
func NewEventService(api API) *EventService {
	return &EventService{Base: NewBase(api)}
}

// List returns the events of a tank, newest first.
func (s *EventService) List(ctx context.Context, tankID string) ([]domain.Event, error) {
	path, err := tankPath(tankID, "events")
	if err != nil {
		return nil, err
	}
	items, err := fetchList[domain.Event](ctx, s.Base, "Failed to load events", "events", path, nil)
	if err != nil {
		return nil, err
	}
	for i := range items {
		if items[i].TankID == "" {
			items[i].TankID = tankID
		}
	}
	sortNewestFirst(items, func(e domain.Event) time.Time { return e.OccurredAt })
	return items, nil
}

// Create logs an event. A zero OccurredAt means now.
func (s *EventService) Create(ctx context.Context, tankID string, req domain.CreateEventRequest) (*domain.Event, error) {
	path, err := tankPath(tankID, "events")
	if err != nil {
		return nil, err
	}
	if req.OccurredAt.IsZero() {
		req.OccurredAt = time.Now().UTC()
	}
	req, err = validateRequest(req)
	if err != nil {
		return nil, err
	}
	ev, err := send[domain.Event](ctx, s.Base, "Failed to log event", "event", http.MethodPost, path, req)
	if err != nil {
		return nil, err
	}
	if ev.TankID == "" {
		ev.TankID = tankID
	}
	return &ev, nil
}

func sortNewestFirst[T any](items []T, at func(T) time.Time) {
	sort.SliceStable(items, func(i, j int) bool {
		return at(items[i]).After(at(items[j]))
	})
}
