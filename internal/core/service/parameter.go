package service

import (
	"context"
	"net/http"
	"net/url"
	"time"

	"github.com/yndnr/tankmate-go/internal/core/domain"
)

// ParameterFilter narrows a parameter listing. Zero values are ignored.
type ParameterFilter struct {
	Type  domain.ParameterType
	Since time.Time
}

// ParameterService manages water parameter readings.
type ParameterService struct {
	Base
}

// NewParameterService creates a ParameterService.
func NewParameterService(api API) *ParameterService {
	return &ParameterService{Base: NewBase(api)}
}

// List returns the readings of a tank, newest first.
func (s *ParameterService) List(ctx context.Context, tankID string, f ParameterFilter) ([]domain.Parameter, error) {
	path, err := tankPath(tankID, "parameters")
	if err != nil {
		return nil, err
	}
	q := url.Values{}
	if f.Type != "" {
		if err := formQuery(q, "type", string(f.Type)); err != nil {
			return nil, err
		}
	}
	if !f.Since.IsZero() {
		if err := formQuery(q, "since", f.Since.UTC()); err != nil {
			return nil, err
		}
	}

	items, err := fetchList[domain.Parameter](ctx, s.Base, "Failed to load parameters", "parameters", path, q)
	if err != nil {
		return nil, err
	}

	// The server may ignore the filters.
	out := items[:0]
	for _, p := range items {
		if f.Type != "" && p.Type != f.Type {
			continue
		}
		if !f.Since.IsZero() && p.RecordedAt.Before(f.Since) {
			continue
		}
		if p.TankID == "" {
			p.TankID = tankID
		}
		out = append(out, p)
	}
	sortNewestFirst(out, func(p domain.Parameter) time.Time { return p.RecordedAt })
	return out, nil
}

// Record adds a reading. A zero RecordedAt means now.
func (s *ParameterService) Record(ctx context.Context, tankID string, req domain.CreateParameterRequest) (*domain.Parameter, error) {
	path, err := tankPath(tankID, "parameters")
	if err != nil {
		return nil, err
	}
	if req.RecordedAt.IsZero() {
		req.RecordedAt = time.Now().UTC()
	}
	req, err = validateRequest(req)
	if err != nil {
		return nil, err
	}
	p, err := send[domain.Parameter](ctx, s.Base, "Failed to record parameter", "parameter", http.MethodPost, path, req)
	if err != nil {
		return nil, err
	}
	if p.TankID == "" {
		p.TankID = tankID
	}
	return &p, nil
}

// Trends summarizes the readings of a tank over r, ending at now.
func (s *ParameterService) Trends(ctx context.Context, tankID string, r domain.TrendRange, now time.Time) ([]domain.TrendSummary, error) {
	since := now.AddDate(0, 0, -r.Days())
	params, err := s.List(ctx, tankID, ParameterFilter{Since: since})
	if err != nil {
		return nil, err
	}
	return domain.Trends(params, r, now), nil
}
