package domain

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/oapi-codegen/nullable"
)

func TestParseTankType(t *testing.T) {
	tests := []struct {
		in      string
		want    TankType
		wantErr bool
	}{
		{"freshwater", TankTypeFreshwater, false},
		{" SALTWATER ", TankTypeSaltwater, false},
		{"brackish", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseTankType(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("err = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, ErrInvalidArgument) {
				t.Errorf("err = %v, want ErrInvalidArgument", err)
			}
			if got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestParseParameterType(t *testing.T) {
	tests := []struct {
		in   string
		want ParameterType
	}{
		{"ph", ParameterPH},
		{"NO3", ParameterNitrate},
		{"sal", ParameterSalinity},
		{"dissolved_oxygen", ParameterDissolvedOxygen},
		{"Temp", ParameterTemp},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseParameterType(tt.in)
			if err != nil {
				t.Fatalf("ParseParameterType(%q) error: %v", tt.in, err)
			}
			if got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
	if _, err := ParseParameterType("iron"); err == nil {
		t.Error("expected error for unknown parameter")
	}
}

func TestParameterInfo(t *testing.T) {
	if len(ParameterTypes()) != 11 {
		t.Fatalf("ParameterTypes() len = %d, want 11", len(ParameterTypes()))
	}
	for _, pt := range ParameterTypes() {
		if pt.Info().Label == "" {
			t.Errorf("%s has no label", pt)
		}
	}

	temp := ParameterTemp.Info()
	if temp.Unit != "°F" || temp.TypicalMin != 65 || temp.TypicalMax != 85 {
		t.Errorf("TEMP info = %+v", temp)
	}
	if !temp.InRange(78) || temp.InRange(90) {
		t.Error("TEMP range check wrong")
	}
	if got := ParameterType("IRON").Info(); got.Label != "IRON" || !got.InRange(1e9) {
		t.Errorf("unknown type info = %+v", got)
	}
}

func TestParseEventType(t *testing.T) {
	for in, want := range map[string]EventType{
		"feeding":      EventFeeding,
		"water-change": EventWaterChange,
		"algae bloom":  EventAlgaeBloom,
		"OTHER":        EventOther,
	} {
		got, err := ParseEventType(in)
		if err != nil || got != want {
			t.Errorf("ParseEventType(%q) = %q, %v; want %q", in, got, err, want)
		}
	}
	if _, err := ParseEventType("vacation"); err == nil {
		t.Error("expected error for unknown event type")
	}
	if EventWaterChange.Label() != "Water Change" {
		t.Errorf("Label() = %q", EventWaterChange.Label())
	}
}

func TestParseInhabitantType(t *testing.T) {
	if got, err := ParseInhabitantType("plant"); err != nil || got != InhabitantPlant {
		t.Errorf("got %q, %v", got, err)
	}
	if _, err := ParseInhabitantType("mineral"); err == nil {
		t.Error("expected error")
	}
}

func TestID_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		in      string
		want    ID
		wantErr bool
	}{
		{`"u1"`, "u1", false},
		{`42`, "42", false},
		{`1.5e3`, "1.5e3", false},
		{`null`, "", false},
		{`true`, "", true},
		{`{"id":1}`, "", true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			var got AuthResponse
			err := json.Unmarshal([]byte(`{"token":"t","userId":`+tt.in+`}`), &got)
			if (err != nil) != tt.wantErr {
				t.Fatalf("err = %v, wantErr %v", err, tt.wantErr)
			}
			if got.UserID != tt.want {
				t.Errorf("UserID = %q, want %q", got.UserID, tt.want)
			}
		})
	}
}

func TestUpdateTankRequest_IsEmpty(t *testing.T) {
	var r UpdateTankRequest
	if !r.IsEmpty() {
		t.Error("zero request should be empty")
	}
	r.Description = nullable.NewNullNullable[string]()
	if r.IsEmpty() {
		t.Error("explicit null is a change")
	}
}
