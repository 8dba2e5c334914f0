// Package classify decides, line by line, what the scanner does with a
// log line: drop it, show it (possibly with phrases highlighted) or
// flag it for the end-of-run summary.
package classify

import (
	"strings"

	"github.com/bailrook/logview/internal/config"
)

// Verdict is the outcome of classifying one line.
type Verdict int

const (
	// Suppressed lines are dropped entirely: not printed, never summarized.
	Suppressed Verdict = iota
	// Shown lines go to the output (unless hidden) with phrase coloring.
	Shown
	// SummaryCandidate lines are printed in the summary color and recorded.
	SummaryCandidate
)

// Decision carries the verdict plus the display text. Hidden marks a
// line matching do_not_show: it is kept out of the stream output while
// remaining eligible for the summary.
type Decision struct {
	Verdict Verdict
	Text    string
	Hidden  bool
}

// Classifier evaluates compiled rules against lines.
type Classifier struct {
	rules    *config.Rules
	colorize bool
}

// New returns a Classifier over the given rules. When colorize is
// false all styling is skipped and Text is the plain line.
func New(rules *config.Rules, colorize bool) *Classifier {
	return &Classifier{rules: rules, colorize: colorize}
}

const ansiStart = "\x1b["

// Classify applies the rules in fixed order: timetag stripping first,
// then the suppression rules, then summary patterns (with exemptions
// vetoing a match), and phrase coloring last. Suppression runs before
// pattern testing so boilerplate never reaches the summary; exemptions
// run after inclusion so a broad pattern can be silenced for known
// phrasings.
func (c *Classifier) Classify(line string) Decision {
	if c.rules.Timetag != nil {
		if loc := c.rules.Timetag.FindStringIndex(line); loc != nil && loc[0] == 0 {
			line = line[loc[1]:]
		}
	}

	if c.rules.DoNotScan.MatchAny(line) {
		return Decision{Verdict: Suppressed}
	}
	for _, s := range c.rules.DoNotPrint {
		if strings.Contains(line, s) {
			return Decision{Verdict: Suppressed}
		}
	}

	hidden := c.rules.DoNotShow.MatchAny(line)

	if c.summaryMatch(line) {
		text := line
		if c.colorize {
			text = c.rules.SummaryStyle.Render(line)
		}
		return Decision{Verdict: SummaryCandidate, Text: text, Hidden: hidden}
	}

	return Decision{Verdict: Shown, Text: c.highlight(line), Hidden: hidden}
}

// summaryMatch reports whether the line contains a summary pattern
// (case-insensitive) and no exemption (exact case).
func (c *Classifier) summaryMatch(line string) bool {
	lowered := strings.ToLower(line)
	matched := false
	for _, p := range c.rules.SummaryPatterns {
		if strings.Contains(lowered, p) {
			matched = true
			break
		}
	}
	if !matched {
		return false
	}
	for _, exempt := range c.rules.SummaryExemptions {
		if strings.Contains(line, exempt) {
			return false
		}
	}
	return true
}

// highlight colors each configured phrase occurrence in the line.
// Lines that already carry an ANSI sequence are left alone.
func (c *Classifier) highlight(line string) string {
	if !c.colorize || strings.Contains(line, ansiStart) {
		return line
	}
	for _, h := range c.rules.Phrases {
		line = h.Apply(line)
	}
	return line
}
