package output

import (
	"encoding/json"
	"fmt"
	"io"
	"reflect"
	"sort"
	"strings"
	"text/tabwriter"
	"time"
)

// Tabular values choose their own table layout.
type Tabular interface {
	Table() *Table
}

// Table is a header row plus data rows.
type Table struct {
	Headers []string
	Rows    [][]string
}

// NewTable creates a table with headers.
func NewTable(headers ...string) *Table {
	return &Table{Headers: headers}
}

// AddRow appends a row.
func (t *Table) AddRow(cells ...string) {
	t.Rows = append(t.Rows, cells)
}

// Render writes the table aligned with tabwriter.
func (t *Table) Render(w io.Writer, noHeaders bool) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	if !noHeaders && len(t.Headers) > 0 {
		fmt.Fprintln(tw, strings.Join(t.Headers, "\t"))
	}
	for _, row := range t.Rows {
		fmt.Fprintln(tw, strings.Join(row, "\t"))
	}
	return tw.Flush()
}

// TableFormatter renders Tabular values and tables; other values are listed
// as FIELD/VALUE pairs.
type TableFormatter struct {
	NoHeaders bool
}

func (f TableFormatter) Format(w io.Writer, data any) error {
	switch d := data.(type) {
	case nil:
		return nil
	case Tabular:
		return d.Table().Render(w, f.NoHeaders)
	case *Table:
		return d.Render(w, f.NoHeaders)
	case Table:
		return d.Render(w, f.NoHeaders)
	case string:
		_, err := fmt.Fprintln(w, d)
		return err
	}

	t, ok := fieldTable(data)
	if !ok {
		return JSONFormatter{}.Format(w, data)
	}
	return t.Render(w, f.NoHeaders)
}

// fieldTable lists the fields of a struct or the entries of a map.
func fieldTable(data any) (*Table, bool) {
	v := reflect.ValueOf(data)
	for v.Kind() == reflect.Pointer {
		if v.IsNil() {
			return nil, false
		}
		v = v.Elem()
	}

	t := NewTable("FIELD", "VALUE")
	switch v.Kind() {
	case reflect.Struct:
		typ := v.Type()
		for i := 0; i < typ.NumField(); i++ {
			field := typ.Field(i)
			if !field.IsExported() {
				continue
			}
			name := jsonName(field)
			if name == "-" {
				continue
			}
			t.AddRow(name, Cell(v.Field(i).Interface()))
		}
	case reflect.Map:
		keys := v.MapKeys()
		sort.Slice(keys, func(i, j int) bool {
			return fmt.Sprint(keys[i].Interface()) < fmt.Sprint(keys[j].Interface())
		})
		for _, k := range keys {
			t.AddRow(fmt.Sprint(k.Interface()), Cell(v.MapIndex(k).Interface()))
		}
	default:
		return nil, false
	}
	return t, true
}

func jsonName(f reflect.StructField) string {
	name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
	if name == "" {
		return f.Name
	}
	return name
}

// Cell formats a value for a table cell. Empty values render as "-".
func Cell(v any) string {
	switch x := v.(type) {
	case nil:
		return "-"
	case string:
		if x == "" {
			return "-"
		}
		return x
	case time.Time:
		if x.IsZero() {
			return "-"
		}
		return x.Local().Format("2006-01-02 15:04")
	case fmt.Stringer:
		if s := x.String(); s != "" {
			return s
		}
		return "-"
	case float64:
		return FormatNumber(x)
	case float32:
		return FormatNumber(float64(x))
	case bool:
		if x {
			return "yes"
		}
		return "no"
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Interface:
		if rv.IsNil() {
			return "-"
		}
		return Cell(rv.Elem().Interface())
	case reflect.String:
		return Cell(rv.String())
	case reflect.Slice, reflect.Map, reflect.Struct:
		raw, err := json.Marshal(v)
		if err != nil {
			return fmt.Sprint(v)
		}
		return string(raw)
	}
	return fmt.Sprint(v)
}

// FormatNumber trims trailing zeros: 8.10 -> 8.1, 25.00 -> 25.
func FormatNumber(f float64) string {
	s := fmt.Sprintf("%.2f", f)
	s = strings.TrimRight(s, "0")
	return strings.TrimSuffix(s, ".")
}
