package config

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/bailrook/logview/internal/pattern"
	"github.com/bailrook/logview/internal/style"
)

// Rules is the compiled form of a Config: wildcards are compiled to
// matchers, the timetag pattern to a regexp and color names to styles.
// Built once per effective configuration; the classifier never parses
// a pattern per line.
type Rules struct {
	DoNotScan  *pattern.Set
	DoNotShow  *pattern.Set
	DoNotPrint []string

	// Timetag strips a leading timestamp token when non-nil.
	Timetag *regexp.Regexp

	SummaryPatterns   []string // lowercased for case-insensitive matching
	SummaryExemptions []string // matched with exact case
	SummaryTitle      string
	SummaryStyle      lipgloss.Style

	Phrases []style.Highlighter
}

// Compile resolves a Config into Rules. Invalid wildcards, an invalid
// timetag pattern and unknown color names are ConfigErrors.
func Compile(cfg Config) (*Rules, error) {
	doNotScan, err := pattern.CompileSet(cfg.DoNotScan)
	if err != nil {
		return nil, &ConfigError{Err: fmt.Errorf("do_not_scan: %w", err)}
	}
	doNotShow, err := pattern.CompileSet(cfg.DoNotShow)
	if err != nil {
		return nil, &ConfigError{Err: fmt.Errorf("do_not_show: %w", err)}
	}

	var timetag *regexp.Regexp
	keep := cfg.KeepTimetags != nil && *cfg.KeepTimetags
	if !keep && cfg.TimetagPattern != "" {
		src := cfg.TimetagPattern
		if !strings.HasPrefix(src, "^") {
			src = "^" + src
		}
		timetag, err = regexp.Compile(src)
		if err != nil {
			return nil, &ConfigError{Err: fmt.Errorf("timetag_pattern: %w", err)}
		}
	}

	patterns := make([]string, len(cfg.SummaryPatterns))
	for i, p := range cfg.SummaryPatterns {
		patterns[i] = strings.ToLower(p)
	}

	summaryStyle, err := style.Lookup(cfg.SummaryColor)
	if err != nil {
		return nil, &ConfigError{Err: fmt.Errorf("summary_color: %w", err)}
	}

	phrases := make([]style.Highlighter, 0, len(cfg.Phrases))
	for _, ph := range cfg.Phrases {
		st, err := style.Lookup(ph.Color)
		if err != nil {
			return nil, &ConfigError{Err: fmt.Errorf("phrase %q: %w", ph.Text, err)}
		}
		phrases = append(phrases, style.Highlighter{Text: ph.Text, Style: st})
	}

	return &Rules{
		DoNotScan:         doNotScan,
		DoNotShow:         doNotShow,
		DoNotPrint:        cfg.DoNotPrint,
		Timetag:           timetag,
		SummaryPatterns:   patterns,
		SummaryExemptions: cfg.SummaryExemptions,
		SummaryTitle:      cfg.SummaryTitle,
		SummaryStyle:      summaryStyle,
		Phrases:           phrases,
	}, nil
}
