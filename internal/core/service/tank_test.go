package service

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/oapi-codegen/nullable"

	"github.com/yndnr/tankmate-go/internal/core/apierror"
	"github.com/yndnr/tankmate-go/internal/core/domain"
	"github.com/yndnr/tankmate-go/internal/core/validation"
)

const reefJSON = `{"id":"t1","name":"Reef","volume":120,"type":"SALTWATER"}`

func TestTankService_List(t *testing.T) {
	tests := []struct {
		name string
		body string
		want int
	}{
		{"bare array", `[` + reefJSON + `]`, 1},
		{"content envelope", `{"content":[` + reefJSON + `,{"id":"t2","name":"Shrimp","volume":30}]}`, 2},
		{"data envelope", `{"data":[]}`, 0},
		{"items envelope", `{"items":[` + reefJSON + `]}`, 1},
		{"null", `null`, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			api := newFakeAPI().on(http.MethodGet, "/tanks", tt.body)
			tanks, err := NewTankService(api).List(context.Background())
			if err != nil {
				t.Fatalf("List() error = %v", err)
			}
			if len(tanks) != tt.want {
				t.Errorf("len = %d, want %d", len(tanks), tt.want)
			}
			if tanks == nil {
				t.Error("List() returned nil slice")
			}
		})
	}
}

func TestTankService_ListInvalidResponse(t *testing.T) {
	api := newFakeAPI().on(http.MethodGet, "/tanks", `[{"name":"no id"}]`)
	_, err := NewTankService(api).List(context.Background())
	if err == nil || err.Error() != "Failed to load tanks: Invalid tanks response format" {
		t.Fatalf("List() error = %v", err)
	}
}

func TestTankService_Get(t *testing.T) {
	api := newFakeAPI().
		on(http.MethodGet, "/tanks/t1", reefJSON).
		on(http.MethodGet, "/tanks/a%2Fb", reefJSON).
		fail(http.MethodGet, "/tanks/missing", http.StatusNotFound, `{"message":"Tank not found"}`)
	svc := NewTankService(api)
	ctx := context.Background()

	tank, err := svc.Get(ctx, "t1")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if tank.Name != "Reef" || tank.Type != domain.TankTypeSaltwater {
		t.Errorf("tank = %+v", tank)
	}

	if _, err := svc.Get(ctx, "a/b"); err != nil {
		t.Errorf("Get() with slash in id error = %v", err)
	}

	_, err = svc.Get(ctx, "missing")
	if !apierror.HasCode(err, apierror.CodeNotFound) {
		t.Fatalf("Get(missing) error = %v, want NOT_FOUND", err)
	}
	if err.Error() != "Failed to load tank: Tank not found" {
		t.Errorf("message = %q", err.Error())
	}

	if _, err := svc.Get(ctx, " "); !errors.Is(err, domain.ErrMissingArgument) {
		t.Errorf("Get(blank) error = %v, want ErrMissingArgument", err)
	}
}

func TestTankService_Create(t *testing.T) {
	api := newFakeAPI().on(http.MethodPost, "/tanks", reefJSON)
	svc := NewTankService(api)

	tank, err := svc.Create(context.Background(), domain.CreateTankRequest{
		Name:   "Reef",
		Volume: 120,
		Type:   domain.TankTypeSaltwater,
	})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if tank.ID != "t1" {
		t.Errorf("ID = %q", tank.ID)
	}
	body := bodyJSON(t, api.lastCall(t).body)
	if body["name"] != "Reef" || body["type"] != "SALTWATER" {
		t.Errorf("body = %v", body)
	}
}

func TestTankService_CreateValidation(t *testing.T) {
	tests := []struct {
		name  string
		req   domain.CreateTankRequest
		field string
	}{
		{"blank name", domain.CreateTankRequest{Name: "  ", Volume: 10, Type: domain.TankTypeFreshwater}, "name"},
		{"zero volume", domain.CreateTankRequest{Name: "A", Type: domain.TankTypeFreshwater}, "volume"},
		{"bad type", domain.CreateTankRequest{Name: "A", Volume: 10, Type: "BRACKISH"}, "type"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			api := newFakeAPI()
			_, err := NewTankService(api).Create(context.Background(), tt.req)
			var verr *validation.Error
			if !errors.As(err, &verr) {
				t.Fatalf("Create() error = %v, want *validation.Error", err)
			}
			if _, ok := verr.Fields()[tt.field]; !ok {
				t.Errorf("violations = %v, want %s", verr.Fields(), tt.field)
			}
			if len(api.calls) != 0 {
				t.Error("API called for invalid request")
			}
		})
	}
}

func TestTankService_Update(t *testing.T) {
	api := newFakeAPI().on(http.MethodPut, "/tanks/t1", reefJSON)
	svc := NewTankService(api)
	ctx := context.Background()

	_, err := svc.Update(ctx, "t1", domain.UpdateTankRequest{
		Name:        nullable.NewNullableWithValue("Reef"),
		Description: nullable.NewNullNullable[string](),
	})
	if err != nil {
		t.Fatalf("Update() error = %v", err)
	}
	body := bodyJSON(t, api.lastCall(t).body)
	if body["name"] != "Reef" {
		t.Errorf("name = %v", body["name"])
	}
	if v, ok := body["description"]; !ok || v != nil {
		t.Errorf("description = %v (present %v), want explicit null", v, ok)
	}
	if _, ok := body["volume"]; ok {
		t.Error("unset volume was sent")
	}

	if _, err := svc.Update(ctx, "t1", domain.UpdateTankRequest{}); !errors.Is(err, domain.ErrMissingArgument) {
		t.Errorf("empty Update() error = %v, want ErrMissingArgument", err)
	}

	_, err = svc.Update(ctx, "t1", domain.UpdateTankRequest{Volume: nullable.NewNullableWithValue(-1.0)})
	var verr *validation.Error
	if !errors.As(err, &verr) {
		t.Errorf("negative volume error = %v, want *validation.Error", err)
	}
}

func TestTankService_Delete(t *testing.T) {
	api := newFakeAPI().
		on(http.MethodDelete, "/tanks/t1", "").
		fail(http.MethodDelete, "/tanks/t2", http.StatusForbidden, `not json`)
	svc := NewTankService(api)

	if err := svc.Delete(context.Background(), "t1"); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	err := svc.Delete(context.Background(), "t2")
	if !apierror.HasCode(err, apierror.CodeForbidden) {
		t.Fatalf("Delete(t2) error = %v, want FORBIDDEN", err)
	}
	if err.Error() != "Failed to delete tank: Access forbidden" {
		t.Errorf("message = %q", err.Error())
	}
}
