// Package domain defines the core domain models for tankmate.
package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/oapi-codegen/nullable"
)

// Tank field limits, matching the API.
const (
	MaxNameLength        = 255
	MaxDescriptionLength = 1000
)

// TankType is the water type of a tank.
type TankType string

const (
	TankTypeFreshwater TankType = "FRESHWATER"
	TankTypeSaltwater  TankType = "SALTWATER"
)

// Label returns the display label.
func (t TankType) Label() string {
	switch t {
	case TankTypeFreshwater:
		return "Freshwater"
	case TankTypeSaltwater:
		return "Saltwater"
	default:
		return string(t)
	}
}

// ParseTankType parses a tank type case-insensitively.
func ParseTankType(s string) (TankType, error) {
	switch t := TankType(strings.ToUpper(strings.TrimSpace(s))); t {
	case TankTypeFreshwater, TankTypeSaltwater:
		return t, nil
	default:
		return "", ErrInvalidArgument.WithDetails(fmt.Sprintf("unknown tank type %q", s))
	}
}

// Tank is an aquarium owned by the current user.
type Tank struct {
	ID          string    `json:"id" validate:"required"`
	Name        string    `json:"name" validate:"required,max=255"`
	Description string    `json:"description,omitempty" validate:"max=1000"`
	Volume      float64   `json:"volume" validate:"gte=0"`
	Type        TankType  `json:"type" validate:"omitempty,oneof=FRESHWATER SALTWATER"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// CreateTankRequest is the body of POST /tanks.
type CreateTankRequest struct {
	Name        string   `json:"name" validate:"required,notblank,max=255"`
	Description string   `json:"description,omitempty" validate:"max=1000"`
	Volume      float64  `json:"volume" validate:"gt=0"`
	Type        TankType `json:"type" validate:"required,oneof=FRESHWATER SALTWATER"`
}

// UpdateTankRequest is the body of PUT /tanks/{tankId}.
// Unspecified fields are left untouched by the server; an explicit null clears a field.
type UpdateTankRequest struct {
	Name        nullable.Nullable[string]   `json:"name,omitempty" validate:"omitnil,notblank,max=255"`
	Description nullable.Nullable[string]   `json:"description,omitempty" validate:"omitnil,max=1000"`
	Volume      nullable.Nullable[float64]  `json:"volume,omitempty" validate:"omitnil,gt=0"`
	Type        nullable.Nullable[TankType] `json:"type,omitempty" validate:"omitnil,oneof=FRESHWATER SALTWATER"`
}

// IsEmpty reports whether the update changes nothing.
func (r UpdateTankRequest) IsEmpty() bool {
	return !r.Name.IsSpecified() && !r.Description.IsSpecified() &&
		!r.Volume.IsSpecified() && !r.Type.IsSpecified()
}
