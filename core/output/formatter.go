// Package output renders audit reports.
// Formatters only format what the engine computed; they never re-derive
// recommendations or totals.
package output

import (
	"bytes"
	"fmt"
	"io"
	"sort"
	"strings"

	"subscription-audit/core/types"
)

// Format represents output format type
type Format string

const (
	// FormatMarkdown is the default markdown report
	FormatMarkdown Format = "markdown"

	// FormatJSON is machine-readable JSON
	FormatJSON Format = "json"

	// FormatYAML is machine-readable YAML
	FormatYAML Format = "yaml"

	// FormatHTML is the markdown report rendered to a standalone HTML page
	FormatHTML Format = "html"

	// FormatTable is a terminal table
	FormatTable Format = "table"
)

// Formatter produces output in a specific format
type Formatter interface {
	// Format returns the format type
	Format() Format

	// ContentType returns the MIME type of the rendered document
	ContentType() string

	// Render writes the report to w
	Render(w io.Writer, report *types.Report) error
}

// Registry maps format names to formatters
type Registry struct {
	formatters map[Format]Formatter
}

// NewRegistry creates a registry holding the given formatters
func NewRegistry(formatters ...Formatter) *Registry {
	r := &Registry{formatters: make(map[Format]Formatter)}
	for _, f := range formatters {
		r.formatters[f.Format()] = f
	}
	return r
}

// DefaultRegistry returns a registry with every built-in formatter
func DefaultRegistry() *Registry {
	return NewRegistry(
		NewMarkdownFormatter(),
		NewJSONFormatter(),
		NewYAMLFormatter(),
		NewHTMLFormatter(),
		NewTableFormatter(),
	)
}

// Get returns the formatter for a format name, ignoring case ("md" is accepted for markdown)
func (r *Registry) Get(name string) (Formatter, error) {
	format := Format(strings.ToLower(strings.TrimSpace(name)))
	if format == "md" {
		format = FormatMarkdown
	}
	f, ok := r.formatters[format]
	if !ok {
		return nil, fmt.Errorf("unknown output format %q (available: %s)", name, strings.Join(r.Names(), ", "))
	}
	return f, nil
}

// Names returns the registered format names, sorted
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.formatters))
	for f := range r.formatters {
		names = append(names, string(f))
	}
	sort.Strings(names)
	return names
}

// RenderBytes renders a report into memory
func RenderBytes(f Formatter, report *types.Report) ([]byte, error) {
	var buf bytes.Buffer
	if err := f.Render(&buf, report); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
