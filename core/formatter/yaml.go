package formatter

import (
	"io"

	"gopkg.in/yaml.v3"
)

// YAML writes the same envelope as JSON in YAML.
type YAML struct{}

func (YAML) Name() string        { return "yaml" }
func (YAML) Description() string { return "YAML for humans and config tools" }

func (y YAML) List(w io.Writer, v View, records []Record, o Options) error {
	return y.encode(w, listEnvelope(v, records, o))
}

func (y YAML) One(w io.Writer, v View, r Record, o Options) error {
	return y.encode(w, envelope{Type: v.Name, Data: pick(r, o.Columns)})
}

func (YAML) encode(w io.Writer, e envelope) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(e); err != nil {
		return err
	}
	return enc.Close()
}
