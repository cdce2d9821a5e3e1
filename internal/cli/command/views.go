package command

import (
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/yndnr/tankmate-go/internal/cli/output"
	"github.com/yndnr/tankmate-go/internal/core/domain"
)

// The view types below keep the JSON shape of the domain values and add a
// table layout for terminal output.

type tankList []domain.Tank

func (l tankList) Table() *output.Table {
	t := output.NewTable("ID", "NAME", "TYPE", "VOLUME", "UPDATED")
	for _, tank := range l {
		t.AddRow(tank.ID, tank.Name, tank.Type.Label(), output.FormatNumber(tank.Volume), output.Cell(tank.UpdatedAt))
	}
	return t
}

type tankView domain.Tank

func (v tankView) Table() *output.Table {
	t := output.NewTable("FIELD", "VALUE")
	t.AddRow("ID", v.ID)
	t.AddRow("Name", v.Name)
	t.AddRow("Type", v.Type.Label())
	t.AddRow("Volume", output.FormatNumber(v.Volume))
	t.AddRow("Description", output.Cell(v.Description))
	t.AddRow("Created", output.Cell(v.CreatedAt))
	t.AddRow("Updated", output.Cell(v.UpdatedAt))
	return t
}

type parameterList []domain.Parameter

func (l parameterList) Table() *output.Table {
	t := output.NewTable("RECORDED", "PARAMETER", "VALUE", "UNIT", "STATUS")
	for _, p := range l {
		info := p.Type.Info()
		t.AddRow(output.Cell(p.RecordedAt), info.Label, output.FormatNumber(p.Value), output.Cell(info.Unit), rangeStatus(info, p.Value))
	}
	return t
}

type parameterView domain.Parameter

func (v parameterView) Table() *output.Table {
	return parameterList{domain.Parameter(v)}.Table()
}

func rangeStatus(info domain.ParameterInfo, v float64) string {
	if info.InRange(v) {
		return "ok"
	}
	if v < info.TypicalMin {
		return "low"
	}
	return "high"
}

type trendList []domain.TrendSummary

func (l trendList) Table() *output.Table {
	t := output.NewTable("PARAMETER", "READINGS", "LATEST", "MIN", "MAX", "AVG", "CHANGE", "STATUS")
	for _, s := range l {
		status := "ok"
		if s.OutOfRange {
			status = "out of range"
		}
		t.AddRow(
			s.Label,
			strconv.Itoa(s.Count),
			withUnit(s.Latest, s.Unit),
			output.FormatNumber(s.Min),
			output.FormatNumber(s.Max),
			output.FormatNumber(s.Average),
			signed(s.Delta),
			status,
		)
	}
	return t
}

func withUnit(v float64, unit string) string {
	if unit == "" {
		return output.FormatNumber(v)
	}
	return output.FormatNumber(v) + " " + unit
}

func signed(v float64) string {
	if v > 0 {
		return "+" + output.FormatNumber(v)
	}
	return output.FormatNumber(v)
}

type parameterTypeRow struct {
	Type       domain.ParameterType `json:"type" yaml:"type"`
	Label      string               `json:"label" yaml:"label"`
	ShortLabel string               `json:"shortLabel" yaml:"shortLabel"`
	Unit       string               `json:"unit,omitempty" yaml:"unit,omitempty"`
	TypicalMin float64              `json:"typicalMin" yaml:"typicalMin"`
	TypicalMax float64              `json:"typicalMax" yaml:"typicalMax"`
}

func parameterTypeRows(types []domain.ParameterType) parameterTypeTable {
	out := make(parameterTypeTable, 0, len(types))
	for _, pt := range types {
		info := pt.Info()
		out = append(out, parameterTypeRow{
			Type:       pt,
			Label:      info.Label,
			ShortLabel: info.ShortLabel,
			Unit:       info.Unit,
			TypicalMin: info.TypicalMin,
			TypicalMax: info.TypicalMax,
		})
	}
	return out
}

type parameterTypeTable []parameterTypeRow

func (l parameterTypeTable) Table() *output.Table {
	t := output.NewTable("TYPE", "LABEL", "SHORT", "UNIT", "TYPICAL RANGE")
	for _, r := range l {
		t.AddRow(string(r.Type), r.Label, r.ShortLabel, output.Cell(r.Unit),
			output.FormatNumber(r.TypicalMin)+" - "+output.FormatNumber(r.TypicalMax))
	}
	return t
}

type eventList []domain.Event

func (l eventList) Table() *output.Table {
	t := output.NewTable("OCCURRED", "TYPE", "DETAILS")
	for _, e := range l {
		t.AddRow(output.Cell(e.OccurredAt), e.Type.Label(), output.Cell(e.Details))
	}
	return t
}

type eventView domain.Event

func (v eventView) Table() *output.Table {
	return eventList{domain.Event(v)}.Table()
}

type inhabitantList []domain.Inhabitant

func (l inhabitantList) Table() *output.Table {
	t := output.NewTable("ID", "NAME", "TYPE", "QUANTITY")
	for _, in := range l {
		t.AddRow(in.ID, in.Name, titleCase(string(in.Type)), strconv.Itoa(in.Quantity))
	}
	return t
}

type inhabitantView domain.Inhabitant

func (v inhabitantView) Table() *output.Table {
	return inhabitantList{domain.Inhabitant(v)}.Table()
}

func titleCase(s string) string {
	if s == "" {
		return "-"
	}
	return strings.ToUpper(s[:1]) + strings.ToLower(s[1:])
}

// whoamiView describes the current session.
type whoamiView struct {
	Authenticated bool   `json:"authenticated" yaml:"authenticated"`
	ID            string `json:"id,omitempty" yaml:"id,omitempty"`
	Email         string `json:"email,omitempty" yaml:"email,omitempty"`
	Name          string `json:"name,omitempty" yaml:"name,omitempty"`
	ExpiresIn     string `json:"expiresIn,omitempty" yaml:"expiresIn,omitempty"`
	Server        string `json:"server" yaml:"server"`
}

func (v whoamiView) Table() *output.Table {
	t := output.NewTable("FIELD", "VALUE")
	if !v.Authenticated {
		t.AddRow("Status", "not logged in")
		t.AddRow("Server", v.Server)
		return t
	}
	t.AddRow("Status", "logged in")
	t.AddRow("User ID", output.Cell(v.ID))
	t.AddRow("Email", output.Cell(v.Email))
	t.AddRow("Name", output.Cell(v.Name))
	t.AddRow("Expires in", output.Cell(v.ExpiresIn))
	t.AddRow("Server", v.Server)
	return t
}

// humanDuration renders d rounded to minutes, e.g. "1h 5m".
func humanDuration(d time.Duration) string {
	if d <= 0 {
		return "expired"
	}
	d = d.Round(time.Minute)
	if d < time.Minute {
		return "less than a minute"
	}
	h := int(d.Hours())
	m := int(d.Minutes()) % 60
	switch {
	case h >= 24:
		return fmt.Sprintf("%dd %dh", h/24, h%24)
	case h > 0:
		return fmt.Sprintf("%dh %dm", h, m)
	default:
		return fmt.Sprintf("%dm", m)
	}
}

// prefsView is the persisted UI preference state.
type prefsView struct {
	Theme       string `json:"theme" yaml:"theme"`
	SidebarOpen bool   `json:"sidebarOpen" yaml:"sidebarOpen"`
}

// configView is the configuration shown by "config show": nested for JSON
// and YAML, one dotted key per row for tables.
type configView struct {
	doc map[string]any
}

func (v configView) MarshalJSON() ([]byte, error) {
	return json.Marshal(v.doc)
}

func (v configView) Table() *output.Table {
	flat := map[string]any{}
	flatten("", v.doc, flat)
	keys := make([]string, 0, len(flat))
	for k := range flat {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	t := output.NewTable("KEY", "VALUE")
	for _, k := range keys {
		t.AddRow(k, output.Cell(flat[k]))
	}
	return t
}

func flatten(prefix string, m map[string]any, out map[string]any) {
	for k, v := range m {
		key := k
		if prefix != "" {
			key = prefix + "." + k
		}
		if sub, ok := v.(map[string]any); ok {
			flatten(key, sub, out)
			continue
		}
		out[key] = v
	}
}
