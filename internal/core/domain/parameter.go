// Package domain defines the core domain models for tankmate.
package domain

import (
	"fmt"
	"strings"
	"time"
)

// ParameterType identifies a measured water parameter.
type ParameterType string

const (
	ParameterTemp            ParameterType = "TEMP"
	ParameterPH              ParameterType = "PH"
	ParameterSalinity        ParameterType = "SALINITY"
	ParameterNitrate         ParameterType = "NITRATE"
	ParameterNitrite         ParameterType = "NITRITE"
	ParameterAmmonia         ParameterType = "AMMONIA"
	ParameterPhosphate       ParameterType = "PHOSPHATE"
	ParameterKH              ParameterType = "KH"
	ParameterGH              ParameterType = "GH"
	ParameterDissolvedOxygen ParameterType = "DISSOLVED_OXYGEN"
	ParameterDissolvedCO2    ParameterType = "DISSOLVED_CO2"
)

// ParameterInfo describes how a parameter is displayed and its typical range.
type ParameterInfo struct {
	Label      string
	ShortLabel string
	Unit       string
	TypicalMin float64
	TypicalMax float64
}

var parameterOrder = []ParameterType{
	ParameterTemp,
	ParameterPH,
	ParameterSalinity,
	ParameterNitrate,
	ParameterNitrite,
	ParameterAmmonia,
	ParameterPhosphate,
	ParameterKH,
	ParameterGH,
	ParameterDissolvedOxygen,
	ParameterDissolvedCO2,
}

var parameterInfo = map[ParameterType]ParameterInfo{
	ParameterTemp:            {"Temperature", "TEMP", "°F", 65, 85},
	ParameterPH:              {"pH", "pH", "", 0, 14},
	ParameterSalinity:        {"Salinity", "SAL", "ppt", 30, 40},
	ParameterNitrate:         {"Nitrate", "NO3", "ppm", 0, 50},
	ParameterNitrite:         {"Nitrite", "NO2", "ppm", 0, 5},
	ParameterAmmonia:         {"Ammonia", "NH3", "ppm", 0, 4},
	ParameterPhosphate:       {"Phosphate", "PO4", "ppm", 0, 2},
	ParameterKH:              {"KH", "KH", "dKH", 0, 20},
	ParameterGH:              {"GH", "GH", "dKH", 0, 25},
	ParameterDissolvedOxygen: {"Dissolved O₂", "O₂", "mg/L", 0, 15},
	ParameterDissolvedCO2:    {"Dissolved CO₂", "CO₂", "mg/L", 0, 30},
}

// ParameterTypes returns every parameter type in display order.
func ParameterTypes() []ParameterType {
	out := make([]ParameterType, len(parameterOrder))
	copy(out, parameterOrder)
	return out
}

// Info returns display metadata for the parameter type.
// Unknown types get their own name as label and no range.
func (t ParameterType) Info() ParameterInfo {
	if info, ok := parameterInfo[t]; ok {
		return info
	}
	return ParameterInfo{Label: string(t), ShortLabel: string(t)}
}

// InRange reports whether v lies inside the typical range (inclusive).
func (i ParameterInfo) InRange(v float64) bool {
	if i.TypicalMin == 0 && i.TypicalMax == 0 {
		return true
	}
	return v >= i.TypicalMin && v <= i.TypicalMax
}

// ParseParameterType parses a type name or short label case-insensitively
// ("ph", "NO3", "dissolved_oxygen").
func ParseParameterType(s string) (ParameterType, error) {
	want := strings.ToUpper(strings.TrimSpace(s))
	for _, t := range parameterOrder {
		if string(t) == want || strings.ToUpper(parameterInfo[t].ShortLabel) == want {
			return t, nil
		}
	}
	return "", ErrInvalidArgument.WithDetails(fmt.Sprintf("unknown parameter type %q", s))
}

// Parameter is one recorded water parameter reading.
type Parameter struct {
	ID         string        `json:"id" validate:"required"`
	TankID     string        `json:"tankId,omitempty"`
	Type       ParameterType `json:"type" validate:"required"`
	Value      float64       `json:"value"`
	RecordedAt time.Time     `json:"recordedAt"`
}

// CreateParameterRequest is the body of POST /tanks/{tankId}/parameters.
type CreateParameterRequest struct {
	Type       ParameterType `json:"type" validate:"required,oneof=TEMP PH SALINITY NITRATE NITRITE AMMONIA PHOSPHATE KH GH DISSOLVED_OXYGEN DISSOLVED_CO2"`
	Value      *float64      `json:"value" validate:"required"`
	RecordedAt time.Time     `json:"recordedAt" validate:"required"`
}
