// Package domain defines the core domain models for tankmate.
package domain

import (
	"fmt"
	"strings"
)

// InhabitantType classifies tank inhabitants.
type InhabitantType string

const (
	InhabitantAnimal InhabitantType = "ANIMAL"
	InhabitantPlant  InhabitantType = "PLANT"
	InhabitantOther  InhabitantType = "OTHER"
)

// ParseInhabitantType parses an inhabitant type case-insensitively.
func ParseInhabitantType(s string) (InhabitantType, error) {
	switch t := InhabitantType(strings.ToUpper(strings.TrimSpace(s))); t {
	case InhabitantAnimal, InhabitantPlant, InhabitantOther:
		return t, nil
	default:
		return "", ErrInvalidArgument.WithDetails(fmt.Sprintf("unknown inhabitant type %q", s))
	}
}

// Inhabitant is a group of animals or plants living in a tank.
type Inhabitant struct {
	ID                     string         `json:"id" validate:"required"`
	TankID                 string         `json:"tankId,omitempty"`
	Name                   string         `json:"name" validate:"required"`
	Quantity               int            `json:"quantity" validate:"gte=0"`
	Type                   InhabitantType `json:"type"`
	IdentifiedInhabitantID string         `json:"identifiedInhabitantId,omitempty"`
}

// CreateInhabitantRequest is the body of POST /tanks/{tankId}/inhabitants.
type CreateInhabitantRequest struct {
	Name                   string         `json:"name" validate:"required,notblank,max=255"`
	Quantity               int            `json:"quantity" validate:"min=1"`
	Type                   InhabitantType `json:"type" validate:"required,oneof=ANIMAL PLANT OTHER"`
	IdentifiedInhabitantID string         `json:"identifiedInhabitantId,omitempty"`
}
