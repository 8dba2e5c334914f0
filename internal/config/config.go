// Package config provides the layered scan configuration: built-in
// defaults, TOML overrides and the compiled rule set the scanner
// evaluates per line.
package config

import (
	"errors"
	"fmt"

	"github.com/spf13/viper"
)

// Phrase pairs a literal phrase with the color name used to highlight
// it. Phrases are kept as an ordered slice so the position in the
// config file decides match priority.
type Phrase struct {
	Text  string `mapstructure:"text"`
	Color string `mapstructure:"color"`
}

// Config describes one scan. Fields mirror the [tool.logview] table of
// the TOML config file; zero values mean "use the default".
type Config struct {
	LogFileDirectory string `mapstructure:"log_file_directory"`
	Archives         string `mapstructure:"archives"`
	Repository       string `mapstructure:"repository"`
	ContainsMember   string `mapstructure:"contains_member"`

	// Line wildcards: do_not_scan drops a line entirely, do_not_show
	// hides it from output while leaving it eligible for the summary.
	DoNotScan []string `mapstructure:"do_not_scan"`
	DoNotShow []string `mapstructure:"do_not_show"`

	// Archive member globs replayed in full after the summary.
	ShowAtEnd []string `mapstructure:"show_at_end"`

	// KeepTimetags is a pointer so a merge can tell "set to false"
	// apart from "not set".
	KeepTimetags   *bool  `mapstructure:"keep_timetags"`
	TimetagPattern string `mapstructure:"timetag_pattern"`

	// Literal, case-sensitive substrings that suppress a line.
	DoNotPrint []string `mapstructure:"do_not_print"`

	SummaryTitle      string   `mapstructure:"summary_title"`
	SummaryColor      string   `mapstructure:"summary_color"`
	SummaryPatterns   []string `mapstructure:"summary_patterns"`
	SummaryExemptions []string `mapstructure:"summary_exemptions"`

	Phrases []Phrase `mapstructure:"phrases"`
}

// Default returns the built-in configuration. The suppression and
// summary defaults target GitHub Actions logs: git transfer progress is
// dropped, warnings and errors are captured with a few known-benign
// phrasings exempted.
func Default() Config {
	keep := false
	return Config{
		Archives:       "logs*.zip",
		ContainsMember: "*.txt",
		KeepTimetags:   &keep,
		// The separator space after the token stays on the line so the
		// leading-space do_not_print defaults keep matching.
		TimetagPattern: `\d{4}-\d{2}-\d{2}T\d{2}:\d{2}:\d{2}\.\d+Z`,
		DoNotPrint: []string{
			" remote: Counting objects: ",
			" remote: Compressing objects: ",
			" Receiving objects: ",
			" Resolving deltas: ",
		},
		SummaryTitle: "errors",
		SummaryColor: "RED",
		SummaryPatterns: []string{
			"warning",
			"error",
			"Process completed with exit code 1",
		},
		SummaryExemptions: []string{
			"Evaluating continue on error",
			"hint: of your new repositories, which will suppress this warning, call:",
			"fail_ci_if_error: false",
		},
		Phrases: []Phrase{
			{Text: " OK", Color: "GREEN"},
			{Text: "PASSED", Color: "GREEN"},
			{Text: "FAILED", Color: "RED"},
			{Text: "SKIPPED", Color: "LIGHTYELLOW_EX"},
			{Text: "hint:", Color: "GREEN"},
		},
	}
}

// ConfigError reports a configuration that could not be parsed or
// compiled. Path is empty for errors not tied to a file.
type ConfigError struct {
	Path string
	Err  error
}

func (e *ConfigError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("config: %v", e.Err)
	}
	return fmt.Sprintf("config %s: %v", e.Path, e.Err)
}

func (e *ConfigError) Unwrap() error {
	return e.Err
}

// Load reads an override configuration from a TOML file. The settings
// live under the [tool.logview] table; unknown keys are ignored and
// missing keys stay at their zero value so Merge can fill them from the
// defaults.
func Load(path string) (Config, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("toml")
	if err := v.ReadInConfig(); err != nil {
		return Config{}, &ConfigError{Path: path, Err: err}
	}

	sub := v.Sub("tool.logview")
	if sub == nil {
		return Config{}, &ConfigError{Path: path, Err: errors.New("missing [tool.logview] table")}
	}

	var cfg Config
	if err := sub.Unmarshal(&cfg); err != nil {
		return Config{}, &ConfigError{Path: path, Err: err}
	}
	return cfg, nil
}

// Merge layers override on top of def, field by field. A field set in
// the override replaces the default verbatim; sequence fields replace
// the whole default sequence, they are never unioned.
func Merge(def, override Config) Config {
	out := def
	if override.LogFileDirectory != "" {
		out.LogFileDirectory = override.LogFileDirectory
	}
	if override.Archives != "" {
		out.Archives = override.Archives
	}
	if override.Repository != "" {
		out.Repository = override.Repository
	}
	if override.ContainsMember != "" {
		out.ContainsMember = override.ContainsMember
	}
	if len(override.DoNotScan) > 0 {
		out.DoNotScan = override.DoNotScan
	}
	if len(override.DoNotShow) > 0 {
		out.DoNotShow = override.DoNotShow
	}
	if len(override.ShowAtEnd) > 0 {
		out.ShowAtEnd = override.ShowAtEnd
	}
	if override.KeepTimetags != nil {
		out.KeepTimetags = override.KeepTimetags
	}
	if override.TimetagPattern != "" {
		out.TimetagPattern = override.TimetagPattern
	}
	if len(override.DoNotPrint) > 0 {
		out.DoNotPrint = override.DoNotPrint
	}
	if override.SummaryTitle != "" {
		out.SummaryTitle = override.SummaryTitle
	}
	if override.SummaryColor != "" {
		out.SummaryColor = override.SummaryColor
	}
	if len(override.SummaryPatterns) > 0 {
		out.SummaryPatterns = override.SummaryPatterns
	}
	if len(override.SummaryExemptions) > 0 {
		out.SummaryExemptions = override.SummaryExemptions
	}
	if len(override.Phrases) > 0 {
		out.Phrases = override.Phrases
	}
	return out
}
