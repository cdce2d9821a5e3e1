package service

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/yndnr/tankmate-go/internal/core/domain"
)

// TankService manages tanks.
type TankService struct {
	Base
}

// NewTankService creates a TankService.
func NewTankService(api API) *TankService {
	return &TankService{Base: NewBase(api)}
}

// List returns the tanks of the current user.
func (s *TankService) List(ctx context.Context) ([]domain.Tank, error) {
	return fetchList[domain.Tank](ctx, s.Base, "Failed to load tanks", "tanks", "/tanks", nil)
}

// Get returns one tank.
func (s *TankService) Get(ctx context.Context, tankID string) (*domain.Tank, error) {
	path, err := tankPath(tankID)
	if err != nil {
		return nil, err
	}
	tank, err := fetch[domain.Tank](ctx, s.Base, "Failed to load tank", "tank", path, nil)
	if err != nil {
		return nil, err
	}
	return &tank, nil
}

// Create adds a tank.
func (s *TankService) Create(ctx context.Context, req domain.CreateTankRequest) (*domain.Tank, error) {
	req, err := validateRequest(req)
	if err != nil {
		return nil, err
	}
	tank, err := send[domain.Tank](ctx, s.Base, "Failed to create tank", "tank", http.MethodPost, "/tanks", req)
	if err != nil {
		return nil, err
	}
	return &tank, nil
}

// Update changes the fields set in req. Fields explicitly set to null are
// sent as null.
func (s *TankService) Update(ctx context.Context, tankID string, req domain.UpdateTankRequest) (*domain.Tank, error) {
	path, err := tankPath(tankID)
	if err != nil {
		return nil, err
	}
	if req.IsEmpty() {
		return nil, domain.ErrMissingArgument.WithDetails("nothing to update")
	}
	req, err = validateRequest(req)
	if err != nil {
		return nil, err
	}
	tank, err := send[domain.Tank](ctx, s.Base, "Failed to update tank", "tank", http.MethodPut, path, req)
	if err != nil {
		return nil, err
	}
	return &tank, nil
}

// Delete removes a tank.
func (s *TankService) Delete(ctx context.Context, tankID string) error {
	path, err := tankPath(tankID)
	if err != nil {
		return err
	}
	_, err = s.execute("Failed to delete tank", func() (json.RawMessage, error) {
		return s.api.Mutate(ctx, http.MethodDelete, path, nil)
	})
	return err
}
