// Package summary collects matched lines across a scan and renders the
// end-of-run report.
package summary

import (
	"fmt"
	"io"
)

// Entry is one captured line with its origin.
type Entry struct {
	Source string
	Line   int
	Text   string
}

// Accumulator holds captured lines in scan order. It grows
// monotonically during a scan and is rendered once at the end.
type Accumulator struct {
	entries []Entry
	order   []string // sources in first-seen order
	seen    map[string]struct{}
	inputs  int
}

// New returns an empty Accumulator.
func New() *Accumulator {
	return &Accumulator{seen: make(map[string]struct{})}
}

// Record appends a captured line tagged with its source.
func (a *Accumulator) Record(source string, line int, text string) {
	if _, ok := a.seen[source]; !ok {
		a.seen[source] = struct{}{}
		a.order = append(a.order, source)
	}
	a.entries = append(a.entries, Entry{Source: source, Line: line, Text: text})
}

// AddInput counts one scanned input feeding this accumulator. The
// render notes when the summary spans more than one file.
func (a *Accumulator) AddInput() {
	a.inputs++
}

// Len returns the number of recorded entries.
func (a *Accumulator) Len() int {
	return len(a.entries)
}

// Render writes the report: a styled title, then the captured lines
// grouped by source in first-seen order. Consecutive exact repeats
// within a group are collapsed. An empty accumulator states that
// explicitly so a clean scan is never silent.
func (a *Accumulator) Render(w io.Writer, title string, styler func(string) string) {
	if styler == nil {
		styler = func(s string) string { return s }
	}
	header := fmt.Sprintf("------------------- %s -------------------", title)
	fmt.Fprintln(w, styler(header))
	if a.inputs > 1 {
		fmt.Fprintf(w, "combined summary across %d files\n", a.inputs)
	}
	if len(a.entries) == 0 {
		fmt.Fprintf(w, "No %s found.\n", title)
		return
	}

	for _, source := range a.order {
		fmt.Fprintln(w, "name:", source)
		last := ""
		first := true
		for _, e := range a.entries {
			if e.Source != source {
				continue
			}
			if !first && e.Text == last {
				continue
			}
			fmt.Fprintf(w, "%3d %s\n", e.Line, e.Text)
			last = e.Text
			first = false
		}
	}
}
