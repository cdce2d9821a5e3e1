// Package domain defines the core domain models for tankmate.
package domain

import (
	"fmt"
	"strings"
	"time"
)

// EventType is a kind of maintenance or observation event.
type EventType string

const (
	EventFeeding               EventType = "FEEDING"
	EventWaterChange           EventType = "WATER_CHANGE"
	EventAlgaeBloom            EventType = "ALGAE_BLOOM"
	EventFilterCleaning        EventType = "FILTER_CLEANING"
	EventLightAdjustment       EventType = "LIGHT_ADJUSTMENT"
	EventTemperatureAdjustment EventType = "TEMPERATURE_ADJUSTMENT"
	EventOther                 EventType = "OTHER"
)

var eventLabels = map[EventType]string{
	EventFeeding:               "Feeding",
	EventWaterChange:           "Water Change",
	EventAlgaeBloom:            "Algae Bloom",
	EventFilterCleaning:        "Filter Cleaning",
	EventLightAdjustment:       "Light Adjustment",
	EventTemperatureAdjustment: "Temperature Adjustment",
	EventOther:                 "Other",
}

// Label returns the display label.
func (t EventType) Label() string {
	if l, ok := eventLabels[t]; ok {
		return l
	}
	return string(t)
}

// ParseEventType accepts "water_change", "WATER-CHANGE" or "water change".
func ParseEventType(s string) (EventType, error) {
	norm := strings.ToUpper(strings.TrimSpace(s))
	norm = strings.NewReplacer("-", "_", " ", "_").Replace(norm)
	t := EventType(norm)
	if _, ok := eventLabels[t]; !ok {
		return "", ErrInvalidArgument.WithDetails(fmt.Sprintf("unknown event type %q", s))
	}
	return t, nil
}

// Event is a maintenance event logged against a tank.
type Event struct {
	ID         string    `json:"id" validate:"required"`
	TankID     string    `json:"tankId,omitempty"`
	Type       EventType `json:"type" validate:"required"`
	Details    string    `json:"details,omitempty"`
	OccurredAt time.Time `json:"occurredAt"`
}

// CreateEventRequest is the body of POST /tanks/{tankId}/events.
type CreateEventRequest struct {
	Type       EventType `json:"type" validate:"required,oneof=FEEDING WATER_CHANGE ALGAE_BLOOM FILTER_CLEANING LIGHT_ADJUSTMENT TEMPERATURE_ADJUSTMENT OTHER"`
	Details    string    `json:"details,omitempty"`
	OccurredAt time.Time `json:"occurredAt" validate:"required"`
}
