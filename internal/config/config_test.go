package config

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "logview.toml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}
	return path
}

func TestDefaultIsFullyResolved(t *testing.T) {
	cfg := Default()

	if cfg.Archives == "" {
		t.Error("default archives glob must be set")
	}
	if cfg.ContainsMember == "" {
		t.Error("default contains_member glob must be set")
	}
	if cfg.KeepTimetags == nil {
		t.Error("default keep_timetags must be set")
	}
	if cfg.TimetagPattern == "" {
		t.Error("default timetag_pattern must be set")
	}
	if len(cfg.SummaryPatterns) == 0 {
		t.Error("default summary_patterns must not be empty")
	}
	if len(cfg.Phrases) == 0 {
		t.Error("default phrases must not be empty")
	}
	if _, err := Compile(cfg); err != nil {
		t.Errorf("Compile(Default()) error = %v", err)
	}
}

func TestMergeEmptyOverrideKeepsDefault(t *testing.T) {
	def := Default()
	got := Merge(def, Config{})
	if !reflect.DeepEqual(got, def) {
		t.Errorf("Merge(default, empty) = %+v, want default unchanged", got)
	}
}

func TestMergeIdempotent(t *testing.T) {
	keep := true
	override := Config{
		Repository:      "octo/widgets",
		Archives:        "run-*.zip",
		KeepTimetags:    &keep,
		SummaryPatterns: []string{"fail"},
		Phrases:         []Phrase{{Text: "ok", Color: "GREEN"}},
	}
	merged := Merge(override, override)
	if !reflect.DeepEqual(merged, override) {
		t.Errorf("Merge(override, override) = %+v, want override back", merged)
	}
}

func TestMergeFieldLevel(t *testing.T) {
	def := Default()
	override := Config{
		Repository:      "octo/widgets",
		SummaryPatterns: []string{"fatal"},
	}

	got := Merge(def, override)

	if got.Repository != "octo/widgets" {
		t.Errorf("Repository = %q, want override value", got.Repository)
	}
	// Override sequence replaces the default wholesale, no union.
	if !reflect.DeepEqual(got.SummaryPatterns, []string{"fatal"}) {
		t.Errorf("SummaryPatterns = %v, want [fatal]", got.SummaryPatterns)
	}
	// Untouched fields keep their defaults.
	if got.Archives != def.Archives {
		t.Errorf("Archives = %q, want default %q", got.Archives, def.Archives)
	}
	if !reflect.DeepEqual(got.SummaryExemptions, def.SummaryExemptions) {
		t.Errorf("SummaryExemptions = %v, want defaults", got.SummaryExemptions)
	}
}

func TestMergeKeepTimetags(t *testing.T) {
	def := Default()
	keep := true
	got := Merge(def, Config{KeepTimetags: &keep})
	if got.KeepTimetags == nil || !*got.KeepTimetags {
		t.Error("override keep_timetags=true lost in merge")
	}

	got = Merge(def, Config{})
	if got.KeepTimetags == nil || *got.KeepTimetags {
		t.Error("default keep_timetags=false lost in merge")
	}
}

func TestLoad(t *testing.T) {
	path := writeConfigFile(t, `
[tool.logview]
repository = "octo/widgets"
archives = "run-*.zip"
keep_timetags = true
summary_patterns = ["error", "fail"]
unknown_key = "ignored"

[[tool.logview.phrases]]
text = "PASSED"
color = "GREEN"

[[tool.logview.phrases]]
text = "FAILED"
color = "RED"
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Repository != "octo/widgets" {
		t.Errorf("Repository = %q, want octo/widgets", cfg.Repository)
	}
	if cfg.Archives != "run-*.zip" {
		t.Errorf("Archives = %q, want run-*.zip", cfg.Archives)
	}
	if cfg.KeepTimetags == nil || !*cfg.KeepTimetags {
		t.Error("keep_timetags = true not decoded")
	}
	if !reflect.DeepEqual(cfg.SummaryPatterns, []string{"error", "fail"}) {
		t.Errorf("SummaryPatterns = %v", cfg.SummaryPatterns)
	}

	want := []Phrase{{Text: "PASSED", Color: "GREEN"}, {Text: "FAILED", Color: "RED"}}
	if !reflect.DeepEqual(cfg.Phrases, want) {
		t.Errorf("Phrases = %v, want %v (order preserved)", cfg.Phrases, want)
	}

	// Fields absent from the file stay zero so Merge fills them.
	if cfg.ContainsMember != "" {
		t.Errorf("ContainsMember = %q, want zero value", cfg.ContainsMember)
	}
}

func TestLoadMalformed(t *testing.T) {
	path := writeConfigFile(t, "[tool.logview\nrepository=")

	_, err := Load(path)
	if err == nil {
		t.Fatal("expected error for malformed TOML")
	}
	var cfgErr *ConfigError
	if !errors.As(err, &cfgErr) {
		t.Errorf("error type = %T, want *ConfigError", err)
	}
	if cfgErr.Path != path {
		t.Errorf("ConfigError.Path = %q, want %q", cfgErr.Path, path)
	}
}

func TestLoadWrongType(t *testing.T) {
	path := writeConfigFile(t, `
[tool.logview]
keep_timetags = "yes please"
`)

	_, err := Load(path)
	if err == nil {
		t.Fatal("expected error for non-boolean keep_timetags")
	}
	var cfgErr *ConfigError
	if !errors.As(err, &cfgErr) {
		t.Errorf("error type = %T, want *ConfigError", err)
	}
}

func TestLoadMissingTable(t *testing.T) {
	path := writeConfigFile(t, `
[tool.other]
repository = "octo/widgets"
`)

	_, err := Load(path)
	if err == nil {
		t.Fatal("expected error for missing [tool.logview] table")
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	if err == nil {
		t.Fatal("expected error for missing file")
	}
}
