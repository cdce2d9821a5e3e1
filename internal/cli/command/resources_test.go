package command

import (
	"encoding/json"
	"net/http"
	"net/url"
	"strings"
	"testing"
	"time"
)

func TestParamRecord(t *testing.T) {
	env := newTestEnv(t)
	env.login()
	env.server.handle(http.MethodPost, "/tanks/t1/parameters", func(w http.ResponseWriter, r *http.Request) {
		var req map[string]any
		json.NewDecoder(r.Body).Decode(&req)
		req["id"] = "p1"
		jsonResponse(w, http.StatusCreated, req)
	})

	res := env.run("", "param", "record", "--tank", "t1", "--type", "no3", "--value", "80", "--at", "2026-01-02T03:04:05Z")
	if res.err != nil {
		t.Fatalf("param record: %v", res.err)
	}
	var body map[string]any
	json.Unmarshal(env.server.calls(http.MethodPost, "/tanks/t1/parameters")[0].Body, &body)
	if body["type"] != "NITRATE" || body["value"] != 80.0 || body["recordedAt"] != "2026-01-02T03:04:05Z" {
		t.Errorf("body = %v", body)
	}
	if !strings.Contains(res.stdout, "outside the typical range") {
		t.Errorf("stdout = %q, want range warning", res.stdout)
	}
	if !strings.Contains(res.stdout, "high") {
		t.Errorf("stdout = %q, want high status", res.stdout)
	}
}

func TestParamList_FiltersAndLimit(t *testing.T) {
	env := newTestEnv(t)
	env.login()
	now := time.Now().UTC()
	env.server.handle(http.MethodGet, "/tanks/t1/parameters", func(w http.ResponseWriter, r *http.Request) {
		jsonResponse(w, http.StatusOK, []map[string]any{
			{"id": "p1", "type": "PH", "value": 7.9, "recordedAt": now.Add(-2 * time.Hour)},
			{"id": "p2", "type": "PH", "value": 8.1, "recordedAt": now.Add(-1 * time.Hour)},
			{"id": "p3", "type": "TEMP", "value": 78, "recordedAt": now.Add(-30 * time.Minute)},
			{"id": "p4", "type": "PH", "value": 8.0, "recordedAt": now.Add(-72 * time.Hour)},
		})
	})

	res := env.run("", "-o", "json", "param", "list", "--tank", "t1", "--type", "ph", "--since", "24h", "--limit", "1")
	if res.err != nil {
		t.Fatalf("param list: %v", res.err)
	}
	var got []map[string]any
	if err := json.Unmarshal([]byte(res.stdout), &got); err != nil {
		t.Fatalf("decode %q: %v", res.stdout, err)
	}
	if len(got) != 1 || got[0]["id"] != "p2" {
		t.Errorf("got %v, want newest PH reading only", got)
	}

	q, _ := url.ParseQuery(env.server.calls(http.MethodGet, "/tanks/t1/parameters")[0].Query)
	if q.Get("type") != "PH" || q.Get("since") == "" {
		t.Errorf("query = %v", q)
	}
}

func TestParamTrends(t *testing.T) {
	env := newTestEnv(t)
	env.login()
	now := time.Now().UTC()
	env.server.handle(http.MethodGet, "/tanks/t1/parameters", func(w http.ResponseWriter, r *http.Request) {
		jsonResponse(w, http.StatusOK, []map[string]any{
			{"id": "p1", "type": "TEMP", "value": 76, "recordedAt": now.Add(-48 * time.Hour)},
			{"id": "p2", "type": "TEMP", "value": 90, "recordedAt": now.Add(-1 * time.Hour)},
		})
	})

	res := env.run("", "param", "trends", "--tank", "t1", "--range", "7d")
	if res.err != nil {
		t.Fatalf("param trends: %v", res.err)
	}
	for _, want := range []string{"Temperature", "90 °F", "+14", "out of range"} {
		if !strings.Contains(res.stdout, want) {
			t.Errorf("output missing %q:\n%s", want, res.stdout)
		}
	}

	res = env.run("", "param", "trends", "--tank", "t1", "--range", "1y")
	if res.err == nil {
		t.Error("expected invalid range error")
	}
}

func TestParamTypes(t *testing.T) {
	env := newTestEnv(t)
	res := env.run("", "param", "types")
	if res.err != nil {
		t.Fatalf("param types: %v", res.err)
	}
	for _, want := range []string{"DISSOLVED_OXYGEN", "mg/L", "65 - 85"} {
		if !strings.Contains(res.stdout, want) {
			t.Errorf("output missing %q", want)
		}
	}
}

func TestEventLogAndList(t *testing.T) {
	env := newTestEnv(t)
	env.login()
	env.server.handle(http.MethodPost, "/tanks/t1/events", func(w http.ResponseWriter, r *http.Request) {
		var req map[string]any
		json.NewDecoder(r.Body).Decode(&req)
		req["id"] = "e1"
		jsonResponse(w, http.StatusCreated, req)
	})
	env.server.handle(http.MethodGet, "/tanks/t1/events", func(w http.ResponseWriter, r *http.Request) {
		jsonResponse(w, http.StatusOK, []map[string]any{
			{"id": "e1", "type": "WATER_CHANGE", "details": "20%", "occurredAt": "2026-01-01T10:00:00Z"},
		})
	})

	res := env.run("", "event", "log", "--tank", "t1", "--type", "water change", "--details", "20%")
	if res.err != nil {
		t.Fatalf("event log: %v", res.err)
	}
	var body map[string]any
	json.Unmarshal(env.server.calls(http.MethodPost, "/tanks/t1/events")[0].Body, &body)
	if body["type"] != "WATER_CHANGE" || body["occurredAt"] == "" {
		t.Errorf("body = %v", body)
	}

	res = env.run("", "event", "list", "--tank", "t1")
	if !strings.Contains(res.stdout, "Water Change") {
		t.Errorf("stdout = %q", res.stdout)
	}
}

func TestInhabitantAdd(t *testing.T) {
	env := newTestEnv(t)
	env.login()
	env.server.handle(http.MethodPost, "/tanks/t1/inhabitants", func(w http.ResponseWriter, r *http.Request) {
		var req map[string]any
		json.NewDecoder(r.Body).Decode(&req)
		req["id"] = "i1"
		jsonResponse(w, http.StatusCreated, req)
	})

	res := env.run("", "inhabitant", "add", "--tank", "t1", "--name", "Clownfish", "-q", "2")
	if res.err != nil {
		t.Fatalf("inhabitant add: %v", res.err)
	}
	if !strings.Contains(res.stdout, "Added 2 x Clownfish") {
		t.Errorf("stdout = %q", res.stdout)
	}

	res = env.run("", "inhabitant", "add", "--tank", "t1", "--name", "Moss", "--type", "tree")
	if res.err == nil {
		t.Error("expected invalid type error")
	}
}

func TestTankFlagRequired(t *testing.T) {
	env := newTestEnv(t)
	env.login()
	res := env.run("", "event", "list")
	if res.err == nil || !strings.Contains(res.err.Error(), "tank") {
		t.Errorf("err = %v, want missing --tank", res.err)
	}
}
