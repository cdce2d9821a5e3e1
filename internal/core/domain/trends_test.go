package domain

import (
	"math"
	"testing"
	"time"
)

func TestTrends(t *testing.T) {
	now := time.Date(2024, 6, 30, 12, 0, 0, 0, time.UTC)
	day := 24 * time.Hour

	params := []Parameter{
		{ID: "1", Type: ParameterPH, Value: 7.0, RecordedAt: now.Add(-5 * day)},
		{ID: "2", Type: ParameterPH, Value: 7.6, RecordedAt: now.Add(-1 * day)},
		{ID: "3", Type: ParameterPH, Value: 7.2, RecordedAt: now.Add(-3 * day)},
		{ID: "4", Type: ParameterTemp, Value: 90, RecordedAt: now.Add(-2 * day)},
		{ID: "5", Type: ParameterNitrate, Value: 10, RecordedAt: now.Add(-20 * day)},
		{ID: "6", Type: ParameterType("IRON"), Value: 0.1, RecordedAt: now.Add(-1 * day)},
	}

	got := Trends(params, TrendRange7d, now)
	if len(got) != 3 {
		t.Fatalf("Trends() len = %d, want 3 (nitrate is outside the window)", len(got))
	}

	if got[0].Type != ParameterTemp || got[1].Type != ParameterPH || got[2].Type != "IRON" {
		t.Errorf("order = %s, %s, %s", got[0].Type, got[1].Type, got[2].Type)
	}

	ph := got[1]
	if ph.Count != 3 || ph.Latest != 7.6 || ph.Min != 7.0 || ph.Max != 7.6 {
		t.Errorf("pH summary = %+v", ph)
	}
	if math.Abs(ph.Average-7.2666) > 0.001 {
		t.Errorf("pH average = %v", ph.Average)
	}
	if math.Abs(ph.Delta-0.6) > 1e-9 {
		t.Errorf("pH delta = %v", ph.Delta)
	}
	if ph.OutOfRange {
		t.Error("pH 7.6 is within range")
	}
	if !got[0].OutOfRange {
		t.Error("90°F should be out of range")
	}

	if all := Trends(params, TrendRange30d, now); len(all) != 4 {
		t.Errorf("30d len = %d, want 4", len(all))
	}
}

func TestParseTrendRange(t *testing.T) {
	for _, s := range []string{"7d", "30d", "90d"} {
		if _, err := ParseTrendRange(s); err != nil {
			t.Errorf("ParseTrendRange(%q) error: %v", s, err)
		}
	}
	if _, err := ParseTrendRange("1y"); err == nil {
		t.Error("expected error for 1y")
	}
	if TrendRange90d.Days() != 90 {
		t.Error("90d days")
	}
}
