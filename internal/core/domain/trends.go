// Package domain defines the core domain models for tankmate.
package domain

import (
	"fmt"
	"sort"
	"time"
)

// TrendRange is the window used for parameter trends.
type TrendRange string

const (
	TrendRange7d  TrendRange = "7d"
	TrendRange30d TrendRange = "30d"
	TrendRange90d TrendRange = "90d"
)

// Days returns the length of the window.
func (r TrendRange) Days() int {
	switch r {
	case TrendRange7d:
		return 7
	case TrendRange90d:
		return 90
	default:
		return 30
	}
}

// ParseTrendRange accepts 7d, 30d or 90d.
func ParseTrendRange(s string) (TrendRange, error) {
	switch r := TrendRange(s); r {
	case TrendRange7d, TrendRange30d, TrendRange90d:
		return r, nil
	default:
		return "", ErrInvalidArgument.WithDetails(fmt.Sprintf("range must be 7d, 30d or 90d, got %q", s))
	}
}

// TrendSummary summarises the readings of one parameter type within a window.
type TrendSummary struct {
	Type       ParameterType `json:"type"`
	Label      string        `json:"label"`
	Unit       string        `json:"unit,omitempty"`
	Count      int           `json:"count"`
	Latest     float64       `json:"latest"`
	LatestAt   time.Time     `json:"latestAt"`
	Min        float64       `json:"min"`
	Max        float64       `json:"max"`
	Average    float64       `json:"average"`
	Delta      float64       `json:"delta"` // latest minus earliest
	OutOfRange bool          `json:"outOfRange"`
}

// Trends groups readings recorded within r before now by type.
// Summaries follow ParameterTypes order; unknown types come last, sorted by name.
func Trends(params []Parameter, r TrendRange, now time.Time) []TrendSummary {
	since := now.AddDate(0, 0, -r.Days())

	byType := make(map[ParameterType][]Parameter)
	for _, p := range params {
		if p.RecordedAt.Before(since) || p.RecordedAt.After(now) {
			continue
		}
		byType[p.Type] = append(byType[p.Type], p)
	}

	order := ParameterTypes()
	var extra []ParameterType
	for t := range byType {
		if _, known := parameterInfo[t]; !known {
			extra = append(extra, t)
		}
	}
	sort.Slice(extra, func(i, j int) bool { return extra[i] < extra[j] })
	order = append(order, extra...)

	out := make([]TrendSummary, 0, len(byType))
	for _, t := range order {
		readings := byType[t]
		if len(readings) == 0 {
			continue
		}
		out = append(out, summarize(t, readings))
	}
	return out
}

func summarize(t ParameterType, readings []Parameter) TrendSummary {
	sort.SliceStable(readings, func(i, j int) bool {
		return readings[i].RecordedAt.Before(readings[j].RecordedAt)
	})

	info := t.Info()
	first, last := readings[0], readings[len(readings)-1]
	s := TrendSummary{
		Type:     t,
		Label:    info.Label,
		Unit:     info.Unit,
		Count:    len(readings),
		Latest:   last.Value,
		LatestAt: last.RecordedAt,
		Min:      first.Value,
		Max:      first.Value,
		Delta:    last.Value - first.Value,
	}

	var sum float64
	for _, p := range readings {
		sum += p.Value
		if p.Value < s.Min {
			s.Min = p.Value
		}
		if p.Value > s.Max {
			s.Max = p.Value
		}
	}
	s.Average = sum / float64(len(readings))
	s.OutOfRange = !info.InRange(last.Value)
	return s
}
