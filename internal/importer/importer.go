// Package importer parses external CSV files into records-to-be.
// Parsed rows name accounts; the caller resolves names against the
// store before creating records.
package importer

import (
	"io"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/tallybook-dev/tallybook/internal/model"
)

// ParsedRecord is one row of an import file, with accounts still
// referenced by name.
type ParsedRecord struct {
	Name          string
	Amount        decimal.Decimal
	CreditAccount string
	DebitAccount  string
	Date          time.Time
	Tag           model.Tag
}

// Parser converts an import file into ParsedRecords.
type Parser interface {
	Parse(r io.Reader) ([]ParsedRecord, error)
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

// Formats lists the registered format names.
func (r *Registry) Formats() []string {
	var formats []string
	for k := range r.parsers {
		formats = append(formats, k)
	}
	return formats
}

// DefaultRegistry returns a registry with all built-in parsers.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	r.Register(SimpleParser{})
	return r
}
