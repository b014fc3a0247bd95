package formatter

import (
	"encoding/json"
	"io"
)

// envelope wraps output so scripts can tell lists from single records.
type envelope struct {
	Type  string `json:"type" yaml:"type"`
	Count *int   `json:"count,omitempty" yaml:"count,omitempty"`
	Data  any    `json:"data" yaml:"data"`
}

func listEnvelope(v View, records []Record, o Options) envelope {
	data := pickAll(records, o.Columns)
	n := len(data)
	return envelope{Type: v.Name, Count: &n, Data: data}
}

// JSON writes an indented (or compact) JSON envelope.
type JSON struct{}

func (JSON) Name() string        { return "json" }
func (JSON) Description() string { return "JSON for scripting" }

func (j JSON) List(w io.Writer, v View, records []Record, o Options) error {
	return j.encode(w, listEnvelope(v, records, o), o.Compact)
}

func (j JSON) One(w io.Writer, v View, r Record, o Options) error {
	return j.encode(w, envelope{Type: v.Name, Data: pick(r, o.Columns)}, o.Compact)
}

func (JSON) encode(w io.Writer, e envelope, compact bool) error {
	enc := json.NewEncoder(w)
	if !compact {
		enc.SetIndent("", "  ")
	}
	return enc.Encode(e)
}
