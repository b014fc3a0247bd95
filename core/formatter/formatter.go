// Package formatter renders CLI output as a table, JSON or YAML.
package formatter

import (
	"fmt"
	"io"
	"sort"
	"strings"
	"sync"
)

// Record is one row of output keyed by column name.
type Record map[string]any

// View names a record type and the columns shown by default, in order.
type View struct {
	Name    string // plural, e.g. "posts"
	Columns []string
}

func (v View) columns(requested []string) []string {
	if len(requested) > 0 {
		return requested
	}
	return v.Columns
}

// Options tune a single rendering.
type Options struct {
	Columns  []string // overrides the view's columns; json/yaml keep every field when empty
	NoHeader bool     // table only
	Compact  bool     // json only
	MaxWidth int      // table only; 0 leaves values whole
}

// Formatter writes records in one output format.
type Formatter interface {
	Name() string
	Description() string
	List(w io.Writer, v View, records []Record, o Options) error
	One(w io.Writer, v View, record Record, o Options) error
}

// pick keeps only cols of r; with no cols r is returned as is.
func pick(r Record, cols []string) Record {
	if r == nil || len(cols) == 0 {
		return r
	}
	out := make(Record, len(cols))
	for _, c := range cols {
		if val, ok := r[c]; ok {
			out[c] = val
		}
	}
	return out
}

func pickAll(rs []Record, cols []string) []Record {
	out := make([]Record, len(rs))
	for i, r := range rs {
		out[i] = pick(r, cols)
	}
	return out
}

// Registry maps format names to formatters.
type Registry struct {
	mu     sync.RWMutex
	byName map[string]Formatter
}

// NewRegistry returns a registry holding fs.
func NewRegistry(fs ...Formatter) *Registry {
	r := &Registry{byName: make(map[string]Formatter, len(fs))}
	for _, f := range fs {
		r.byName[f.Name()] = f
	}
	return r
}

// Add registers f. Names must be unique.
func (r *Registry) Add(f Formatter) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, dup := r.byName[f.Name()]; dup {
		return fmt.Errorf("formatter %q already registered", f.Name())
	}
	r.byName[f.Name()] = f
	return nil
}

// Lookup returns the formatter called name.
func (r *Registry) Lookup(name string) (Formatter, error) {
	r.mu.RLock()
	f, ok := r.byName[name]
	r.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("unknown output format %q (available: %s)", name, strings.Join(r.Names(), ", "))
	}
	return f, nil
}

// Names returns the registered names, sorted.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.byName))
	for n := range r.byName {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Builtin holds the table, json and yaml formatters.
var Builtin = NewRegistry(Table{}, JSON{}, YAML{})

// Lookup finds a builtin formatter.
func Lookup(name string) (Formatter, error) {
	return Builtin.Lookup(name)
}
