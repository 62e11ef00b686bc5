package feed

import (
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/paysys/paysys/internal/model"
)

// Parser converts a raw history payload into transactions.
type Parser interface {
	Parse(r io.Reader) ([]model.Transaction, error)
	Format() string
}

// Registry holds named parsers.
type Registry struct {
	parsers map[string]Parser
}

// NewRegistry creates an empty parser registry.
func NewRegistry() *Registry {
	return &Registry{parsers: make(map[string]Parser)}
}

// Register adds a parser. Panics on duplicate format.
func (r *Registry) Register(p Parser) {
	key := strings.ToLower(p.Format())
	if _, ok := r.parsers[key]; ok {
		panic("duplicate parser format: " + key)
	}
	r.parsers[key] = p
}

// Get returns the parser for format, or nil.
func (r *Registry) Get(format string) Parser {
	return r.parsers[strings.ToLower(format)]
}

// Formats returns the registered format names.
func (r *Registry) Formats() []string {
	names := make([]string, 0, len(r.parsers))
	for k := range r.parsers {
		names = append(names, k)
	}
	slices.Sort(names)
	return names
}

// DefaultRegistry returns a registry with all built-in parsers.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	r.Register(&KeyValueParser{})
	return r
}

// KeyValueParser reads the backend's "Key: Value, Key: Value" line format.
type KeyValueParser struct{}

// Format returns the parser name.
func (p *KeyValueParser) Format() string { return "keyvalue" }

// Parse reads all of r and parses it as a history blob. Trailing line
// breaks are ignored so a saved sentinel still reads as empty. Only a read
// error fails it.
func (p *KeyValueParser) Parse(r io.Reader) ([]model.Transaction, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading history: %w", err)
	}
	return Parse(strings.TrimRight(string(data), "\r\n")), nil
}
