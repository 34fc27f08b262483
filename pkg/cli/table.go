package cli

import (
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"
)

// Table renders column-aligned output through text/tabwriter. Nothing is
// emitted until the first Row arrives, so a table whose filter matched no
// devices stays silent instead of printing a lonely header.
type Table struct {
	w       *tabwriter.Writer
	headers []string
	prefix  string
	started bool
}

// NewTable creates a stdout table with the given column headers.
func NewTable(headers ...string) *Table {
	return NewTableTo(os.Stdout, headers...)
}

// NewTableTo creates a table writing to w.
func NewTableTo(w io.Writer, headers ...string) *Table {
	return &Table{
		w:       tabwriter.NewWriter(w, 0, 0, 2, ' ', 0),
		headers: headers,
	}
}

// WithPrefix prepends prefix to every emitted line, for indenting
// sub-tables inside larger output.
func (t *Table) WithPrefix(prefix string) *Table {
	t.prefix = prefix
	return t
}

// Row appends one row. The header line and its dash underline are written
// ahead of the first row.
func (t *Table) Row(cells ...string) {
	if !t.started {
		t.started = true
		t.line(t.headers)
		underline := make([]string, len(t.headers))
		for i, h := range t.headers {
			underline[i] = strings.Repeat("-", len(h))
		}
		t.line(underline)
	}
	t.line(cells)
}

// Flush drains buffered rows to the underlying writer. A table that never
// saw a row flushes to nothing.
func (t *Table) Flush() {
	if !t.started {
		return
	}
	t.w.Flush()
}

func (t *Table) line(cells []string) {
	fmt.Fprintln(t.w, t.prefix+strings.Join(cells, "\t"))
}
