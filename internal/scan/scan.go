// Package scan drives one logview invocation: it resolves inputs to a
// concrete text source, streams lines through the classifier, prints
// shown lines and feeds matched lines to the summary.
package scan

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/bailrook/logview/internal/archive"
	"github.com/bailrook/logview/internal/classify"
	"github.com/bailrook/logview/internal/config"
	"github.com/bailrook/logview/internal/summary"
)

// maxLineSize bounds a single log line; CI steps occasionally dump
// whole files onto one line.
const maxLineSize = 4 * 1024 * 1024

// Job is a scan with an effective configuration. One Job handles any
// number of inputs sequentially; it owns no state across inputs except
// the compiled rules.
type Job struct {
	cfg      config.Config
	rules    *config.Rules
	cls      *classify.Classifier
	out      io.Writer
	colorize bool
}

// NewJob compiles the configuration into a ready-to-run Job.
func NewJob(cfg config.Config, out io.Writer, colorize bool) (*Job, error) {
	rules, err := config.Compile(cfg)
	if err != nil {
		return nil, err
	}
	return &Job{
		cfg:      cfg,
		rules:    rules,
		cls:      classify.New(rules, colorize),
		out:      out,
		colorize: colorize,
	}, nil
}

// Config returns the effective configuration of the job.
func (j *Job) Config() config.Config {
	return j.cfg
}

// Scan processes one archive or plain log file. When acc is nil the
// input gets its own accumulator and the summary is rendered right
// after the input; otherwise matches are fed into the shared acc and
// rendering is left to the caller.
func (j *Job) Scan(path string, acc *summary.Accumulator) error {
	src, err := archive.Open(path, j.cfg.ContainsMember)
	if err != nil {
		return err
	}

	own := acc == nil
	if own {
		acc = summary.New()
	}
	acc.AddInput()

	fmt.Fprintln(j.out, strings.Repeat("+=", 40))
	fmt.Fprintln(j.out, path)
	fmt.Fprintln(j.out)
	fmt.Fprintln(j.out, strings.Repeat("=", 80))
	fmt.Fprintln(j.out, "name:", src.Name)
	fmt.Fprintln(j.out)
	j.scanText(src.Name, src.Text, acc, false)

	if own {
		fmt.Fprintln(j.out)
		j.RenderSummary(acc)
	}

	if src.FromArchive {
		j.showAtEnd(path)
	}
	return nil
}

// RenderSummary writes the report for acc with the configured title
// and color.
func (j *Job) RenderSummary(acc *summary.Accumulator) {
	styler := func(s string) string { return s }
	if j.colorize {
		styler = func(s string) string { return j.rules.SummaryStyle.Render(s) }
	}
	acc.Render(j.out, j.rules.SummaryTitle, styler)
}

// scanText streams text through the classifier. Line numbers count
// every line of the source, including suppressed ones. forceShow
// overrides do_not_show for the show_at_end replay.
func (j *Job) scanText(source, text string, acc *summary.Accumulator, forceShow bool) {
	sc := bufio.NewScanner(strings.NewReader(text))
	sc.Buffer(make([]byte, 0, 64*1024), maxLineSize)

	num := 0
	for sc.Scan() {
		num++
		d := j.cls.Classify(sc.Text())
		switch d.Verdict {
		case classify.Suppressed:
		case classify.SummaryCandidate:
			// Summary hits are always printed, even on hidden lines.
			fmt.Fprintf(j.out, "%3d %s\n", num, d.Text)
			if acc != nil {
				acc.Record(source, num, d.Text)
			}
		default:
			if forceShow || !d.Hidden {
				fmt.Fprintf(j.out, "%3d %s\n", num, d.Text)
			}
		}
	}
}

// showAtEnd replays archive members matching the show_at_end globs in
// full after the summary, ignoring do_not_show.
func (j *Job) showAtEnd(path string) {
	if len(j.cfg.ShowAtEnd) == 0 {
		return
	}
	names, err := archive.Members(path)
	if err != nil {
		return
	}

	var selected []string
	for _, glob := range j.cfg.ShowAtEnd {
		for _, name := range names {
			if archive.MatchName(glob, name) {
				selected = append(selected, name)
			}
		}
	}
	if len(selected) == 0 {
		return
	}

	fmt.Fprintln(j.out)
	fmt.Fprintln(j.out, "Displaying archive members selected by 'show_at_end':")
	fmt.Fprintln(j.out)
	for _, name := range selected {
		fmt.Fprintln(j.out, strings.Repeat("=", 80))
		fmt.Fprintln(j.out, "name:", name)
		text, err := archive.ReadMember(path, name)
		if err != nil {
			fmt.Fprintf(j.out, "could not read %s: %v\n", name, err)
			continue
		}
		j.scanText(name, text, nil, true)
		fmt.Fprintln(j.out)
	}
}
