package formatter

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"
	"unicode/utf8"
)

// Table writes aligned columns for lists and "Label: value" lines for
// single records.
type Table struct{}

func (Table) Name() string        { return "table" }
func (Table) Description() string { return "Aligned text table" }

func (Table) List(w io.Writer, v View, records []Record, o Options) error {
	if len(records) == 0 {
		_, err := fmt.Fprintf(w, "No %s found.\n", v.Name)
		return err
	}

	cols := v.columns(o.Columns)
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	if !o.NoHeader {
		head := make([]string, len(cols))
		for i, c := range cols {
			head[i] = strings.ToUpper(c)
		}
		fmt.Fprintln(tw, strings.Join(head, "\t"))
	}
	for _, r := range records {
		row := make([]string, len(cols))
		for i, c := range cols {
			row[i] = cell(r[c], o.MaxWidth)
		}
		fmt.Fprintln(tw, strings.Join(row, "\t"))
	}
	return tw.Flush()
}

func (Table) One(w io.Writer, v View, r Record, o Options) error {
	if r == nil {
		_, err := fmt.Fprintln(w, "Not found.")
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	for _, c := range v.columns(o.Columns) {
		fmt.Fprintf(tw, "%s:\t%s\n", label(c), cell(r[c], 0))
	}
	return tw.Flush()
}

// label turns created_at into "Created At".
func label(col string) string {
	words := strings.Split(col, "_")
	for i, word := range words {
		if word != "" {
			words[i] = strings.ToUpper(word[:1]) + word[1:]
		}
	}
	return strings.Join(words, " ")
}

// cell renders one value on a single line, cut to width runes when width > 3.
func cell(val any, width int) string {
	var s string
	switch v := val.(type) {
	case nil:
		return "-"
	case string:
		s = v
	case bool:
		s = "no"
		if v {
			s = "yes"
		}
	case time.Time:
		s = v.Format("2006-01-02 15:04")
	case int:
		s = strconv.Itoa(v)
	case int64:
		s = strconv.FormatInt(v, 10)
	case float64:
		if v == float64(int64(v)) {
			s = strconv.FormatInt(int64(v), 10)
		} else {
			s = strconv.FormatFloat(v, 'f', 2, 64)
		}
	default:
		b, _ := json.Marshal(v)
		s = string(b)
	}

	s = strings.Join(strings.Fields(s), " ")
	if width > 3 && utf8.RuneCountInString(s) > width {
		s = string([]rune(s)[:width-3]) + "..."
	}
	return s
}
