package service

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/yndnr/tankmate-go/internal/core/domain"
	"github.com/yndnr/tankmate-go/internal/core/validation"
)

func TestParameterService_List(t *testing.T) {
	api := newFakeAPI().on(http.MethodGet, "/tanks/t1/parameters", `[
		{"id":"p1","type":"PH","value":8.1,"recordedAt":"2024-05-01T10:00:00Z"},
		{"id":"p2","type":"TEMP","value":25,"recordedAt":"2024-05-03T10:00:00Z"},
		{"id":"p3","type":"PH","value":8.3,"recordedAt":"2024-05-02T10:00:00Z"}
	]`)
	svc := NewParameterService(api)

	all, err := svc.List(context.Background(), "t1", ParameterFilter{})
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(all) != 3 || all[0].ID != "p2" || all[2].ID != "p1" {
		t.Fatalf("List() order = %+v", all)
	}
	if all[0].TankID != "t1" {
		t.Errorf("TankID = %q, want t1", all[0].TankID)
	}
	if q := api.lastCall(t).query; len(q) != 0 {
		t.Errorf("query = %v, want empty", q)
	}

	since := time.Date(2024, 5, 2, 0, 0, 0, 0, time.UTC)
	ph, err := svc.List(context.Background(), "t1", ParameterFilter{Type: domain.ParameterPH, Since: since})
	if err != nil {
		t.Fatalf("List(filter) error = %v", err)
	}
	if len(ph) != 1 || ph[0].ID != "p3" {
		t.Errorf("List(filter) = %+v", ph)
	}
	q := api.lastCall(t).query
	if q.Get("type") != "PH" {
		t.Errorf("type query = %q", q.Get("type"))
	}
	if q.Get("since") != "2024-05-02T00:00:00Z" {
		t.Errorf("since query = %q", q.Get("since"))
	}
}

func TestParameterService_Record(t *testing.T) {
	api := newFakeAPI().on(http.MethodPost, "/tanks/t1/parameters",
		`{"id":"p9","type":"NITRATE","value":0,"recordedAt":"2024-05-01T10:00:00Z"}`)
	svc := NewParameterService(api)

	zero := 0.0
	p, err := svc.Record(context.Background(), "t1", domain.CreateParameterRequest{
		Type:  domain.ParameterNitrate,
		Value: &zero,
	})
	if err != nil {
		t.Fatalf("Record() error = %v", err)
	}
	if p.ID != "p9" || p.TankID != "t1" {
		t.Errorf("parameter = %+v", p)
	}
	body := bodyJSON(t, api.lastCall(t).body)
	if body["value"] != 0.0 {
		t.Errorf("value = %v, want 0", body["value"])
	}
	if body["recordedAt"] == "" || body["recordedAt"] == nil {
		t.Error("recordedAt not defaulted")
	}

	_, err = svc.Record(context.Background(), "t1", domain.CreateParameterRequest{Type: "FOO"})
	var verr *validation.Error
	if !errors.As(err, &verr) {
		t.Fatalf("Record(invalid) error = %v, want *validation.Error", err)
	}
	fields := verr.Fields()
	if _, ok := fields["type"]; !ok {
		t.Errorf("violations = %v, want type", fields)
	}
	if _, ok := fields["value"]; !ok {
		t.Errorf("violations = %v, want value", fields)
	}
}

func TestParameterService_Trends(t *testing.T) {
	now := time.Date(2024, 5, 10, 0, 0, 0, 0, time.UTC)
	api := newFakeAPI().on(http.MethodGet, "/tanks/t1/parameters", `[
		{"id":"p1","type":"PH","value":7.0,"recordedAt":"2024-05-08T00:00:00Z"},
		{"id":"p2","type":"PH","value":9.0,"recordedAt":"2024-05-09T00:00:00Z"},
		{"id":"p3","type":"PH","value":6.0,"recordedAt":"2024-01-01T00:00:00Z"}
	]`)

	got, err := NewParameterService(api).Trends(context.Background(), "t1", domain.TrendRange7d, now)
	if err != nil {
		t.Fatalf("Trends() error = %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("Trends() = %+v", got)
	}
	if got[0].Count != 2 || got[0].Latest != 9.0 || got[0].Min != 7.0 {
		t.Errorf("summary = %+v", got[0])
	}
}

func TestEventService(t *testing.T) {
	api := newFakeAPI().
		on(http.MethodGet, "/tanks/t1/events", `{"content":[
			{"id":"e1","type":"FEEDING","occurredAt":"2024-05-01T10:00:00Z"},
			{"id":"e2","type":"WATER_CHANGE","details":"20%","occurredAt":"2024-05-04T10:00:00Z"}
		]}`).
		on(http.MethodPost, "/tanks/t1/events", `{"id":"e3","tankId":"t1","type":"OTHER","occurredAt":"2024-05-05T10:00:00Z"}`)
	svc := NewEventService(api)
	ctx := context.Background()

	events, err := svc.List(ctx, "t1")
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(events) != 2 || events[0].ID != "e2" {
		t.Errorf("List() = %+v", events)
	}

	ev, err := svc.Create(ctx, "t1", domain.CreateEventRequest{Type: domain.EventOther, Details: "new light"})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if ev.ID != "e3" {
		t.Errorf("event = %+v", ev)
	}

	if _, err := svc.Create(ctx, "t1", domain.CreateEventRequest{Type: "PARTY"}); err == nil {
		t.Error("Create() accepted unknown event type")
	}
	if _, err := svc.List(ctx, ""); !errors.Is(err, domain.ErrMissingArgument) {
		t.Errorf("List(\"\") error = %v, want ErrMissingArgument", err)
	}
}

func TestInhabitantService(t *testing.T) {
	api := newFakeAPI().
		on(http.MethodGet, "/tanks/t1/inhabitants", `[{"id":"i1","name":"Clownfish","quantity":2,"type":"ANIMAL"}]`).
		on(http.MethodPost, "/tanks/t1/inhabitants", `{"id":"i2","name":"Java fern","quantity":1,"type":"PLANT"}`)
	svc := NewInhabitantService(api)
	ctx := context.Background()

	list, err := svc.List(ctx, "t1")
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(list) != 1 || list[0].Quantity != 2 || list[0].TankID != "t1" {
		t.Errorf("List() = %+v", list)
	}

	in, err := svc.Create(ctx, "t1", domain.CreateInhabitantRequest{Name: "Java fern", Type: domain.InhabitantPlant})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if in.ID != "i2" {
		t.Errorf("inhabitant = %+v", in)
	}
	if body := bodyJSON(t, api.lastCall(t).body); body["quantity"] != 1.0 {
		t.Errorf("quantity = %v, want defaulted to 1", body["quantity"])
	}

	_, err = svc.Create(ctx, "t1", domain.CreateInhabitantRequest{Name: "x", Quantity: -2, Type: domain.InhabitantAnimal})
	var verr *validation.Error
	if !errors.As(err, &verr) {
		t.Fatalf("Create(negative) error = %v, want *validation.Error", err)
	}
}

func TestUnwrapList(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{`[1]`, `[1]`},
		{` {"content":[2]}`, `[2]`},
		{`{"data":[3],"total":1}`, `[3]`},
		{`{"items":[4]}`, `[4]`},
		{`{"other":[5]}`, `{"other":[5]}`},
		{`{bad`, `{bad`},
		{``, ``},
	}
	for _, tt := range tests {
		if got := string(unwrapList([]byte(tt.in))); got != tt.want {
			t.Errorf("unwrapList(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
