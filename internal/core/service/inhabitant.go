package service

import (
	"context"
	"net/http"

	"github.com/yndnr/tankmate-go/internal/core/domain"
)

// InhabitantService manages the animals and plants of a tank.
type InhabitantService struct {
	Base
}

// NewInhabitantService creates an InhabitantService.
func NewInhabitantService(api API) *InhabitantService {
	return &InhabitantService{Base: NewBase(api)}
}

// List returns the inhabitants of a tank.
func (s *InhabitantService) List(ctx context.Context, tankID string) ([]domain.Inhabitant, error) {
	path, err := tankPath(tankID, "inhabitants")
	if err != nil {
		return nil, err
	}
	items, err := fetchList[domain.Inhabitant](ctx, s.Base, "Failed to load inhabitants", "inhabitants", path, nil)
	if err != nil {
		return nil, err
	}
	for i := range items {
		if items[i].TankID == "" {
			items[i].TankID = tankID
		}
	}
	return items, nil
}

// Create adds an inhabitant. A zero Quantity means one.
func (s *InhabitantService) Create(ctx context.Context, tankID string, req domain.CreateInhabitantRequest) (*domain.Inhabitant, error) {
	path, err := tankPath(tankID, "inhabitants")
	if err != nil {
		return nil, err
	}
	if req.Quantity == 0 {
		req.Quantity = 1
	}
	req, err = validateRequest(req)
	if err != nil {
		return nil, err
	}
	in, err := send[domain.Inhabitant](ctx, s.Base, "Failed to add inhabitant", "inhabitant", http.MethodPost, path, req)
	if err != nil {
		return nil, err
	}
	if in.TankID == "" {
		in.TankID = tankID
	}
	return &in, nil
}
