package output

import (
	"bytes"
	"strings"
	"testing"
	"time"
)

type reading struct {
	Type  string    `json:"type"`
	Value float64   `json:"value"`
	At    time.Time `json:"recordedAt"`
	Note  *string   `json:"note,omitempty"`
}

type readings []reading

func (r readings) Table() *Table {
	t := NewTable("TYPE", "VALUE")
	for _, x := range r {
		t.AddRow(x.Type, FormatNumber(x.Value))
	}
	return t
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in      string
		want    Format
		wantErr bool
	}{
		{"", FormatTable, false},
		{"TABLE", FormatTable, false},
		{"json", FormatJSON, false},
		{"yml", FormatYAML, false},
		{"xml", "", true},
	}
	for _, tt := range tests {
		got, err := ParseFormat(tt.in)
		if (err != nil) != tt.wantErr || got != tt.want {
			t.Errorf("ParseFormat(%q) = %q, %v", tt.in, got, err)
		}
	}
}

func TestTableFormatter_Tabular(t *testing.T) {
	var buf bytes.Buffer
	data := readings{{Type: "PH", Value: 8.10}, {Type: "TEMP", Value: 25}}
	if err := Print(&buf, FormatTable, data); err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 3 {
		t.Fatalf("lines = %q", lines)
	}
	if !strings.HasPrefix(lines[0], "TYPE") || !strings.Contains(lines[1], "8.1") || !strings.HasSuffix(lines[2], "25") {
		t.Errorf("table = %q", buf.String())
	}
}

func TestTableFormatter_NoHeaders(t *testing.T) {
	var buf bytes.Buffer
	tbl := NewTable("A", "B")
	tbl.AddRow("1", "2")
	if err := (TableFormatter{NoHeaders: true}).Format(&buf, tbl); err != nil {
		t.Fatal(err)
	}
	if strings.Contains(buf.String(), "A") {
		t.Errorf("headers rendered: %q", buf.String())
	}
}

func TestTableFormatter_Fields(t *testing.T) {
	var buf bytes.Buffer
	if err := Print(&buf, FormatTable, &reading{Type: "PH", Value: 7}); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	for _, want := range []string{"FIELD", "type", "PH", "recordedAt", "note"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}

	buf.Reset()
	if err := Print(&buf, FormatTable, map[string]any{"b": 2.5, "a": true}); err != nil {
		t.Fatal(err)
	}
	if lines := strings.Split(strings.TrimSpace(buf.String()), "\n"); len(lines) != 3 || !strings.HasPrefix(lines[1], "a") {
		t.Errorf("map output = %q", buf.String())
	}
}

func TestJSONAndYAML(t *testing.T) {
	data := []reading{{Type: "PH", Value: 8.2, At: time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)}}

	var js bytes.Buffer
	if err := Print(&js, FormatJSON, data); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(js.String(), `"recordedAt": "2024-05-01T00:00:00Z"`) {
		t.Errorf("json = %s", js.String())
	}

	var ym bytes.Buffer
	if err := Print(&ym, FormatYAML, data); err != nil {
		t.Fatal(err)
	}
	out := ym.String()
	if !strings.Contains(out, "- type: PH") || !strings.Contains(out, "recordedAt:") {
		t.Errorf("yaml = %s", out)
	}
	if strings.Contains(out, "{") {
		t.Errorf("yaml kept flow style: %s", out)
	}
}

func TestCell(t *testing.T) {
	s := "x"
	var nilStr *string
	tests := []struct {
		in   any
		want string
	}{
		{"", "-"},
		{nil, "-"},
		{nilStr, "-"},
		{&s, "x"},
		{3.0, "3"},
		{0.126, "0.13"},
		{true, "yes"},
		{42, "42"},
		{time.Time{}, "-"},
		{[]int{1, 2}, "[1,2]"},
	}
	for _, tt := range tests {
		if got := Cell(tt.in); got != tt.want {
			t.Errorf("Cell(%#v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestSpinner_NonTerminal(t *testing.T) {
	var buf bytes.Buffer
	s := NewSpinner(&buf, "loading")
	s.Start()
	s.Stop()
	s.Stop()
	if buf.Len() != 0 {
		t.Errorf("spinner wrote to a non-terminal: %q", buf.String())
	}
	if IsTerminal(&buf) {
		t.Error("IsTerminal(buffer) = true")
	}
}
