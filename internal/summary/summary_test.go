package summary

import (
	"bytes"
	"strings"
	"testing"
)

func TestRenderEmpty(t *testing.T) {
	var buf bytes.Buffer
	acc := New()
	acc.AddInput()

	acc.Render(&buf, "errors", nil)

	out := buf.String()
	if !strings.Contains(out, "errors") {
		t.Errorf("render missing title:\n%s", out)
	}
	if !strings.Contains(out, "No errors found.") {
		t.Errorf("empty summary must say so explicitly:\n%s", out)
	}
}

func TestRenderGroupsBySourceFirstSeen(t *testing.T) {
	var buf bytes.Buffer
	acc := New()
	acc.AddInput()
	acc.Record("2_build.txt", 4, "error: one")
	acc.Record("5_test.txt", 2, "error: two")
	acc.Record("2_build.txt", 9, "error: three")

	acc.Render(&buf, "errors", nil)
	out := buf.String()

	buildIdx := strings.Index(out, "name: 2_build.txt")
	testIdx := strings.Index(out, "name: 5_test.txt")
	if buildIdx < 0 || testIdx < 0 {
		t.Fatalf("missing group headers:\n%s", out)
	}
	if buildIdx > testIdx {
		t.Errorf("groups out of first-seen order:\n%s", out)
	}

	// Both build entries land under the build group.
	buildSection := out[buildIdx:testIdx]
	if !strings.Contains(buildSection, "error: one") || !strings.Contains(buildSection, "error: three") {
		t.Errorf("build group incomplete:\n%s", out)
	}
	if !strings.Contains(out, "  4 error: one") {
		t.Errorf("line numbers missing:\n%s", out)
	}
}

func TestRenderDedupsConsecutiveOnly(t *testing.T) {
	var buf bytes.Buffer
	acc := New()
	acc.AddInput()
	acc.Record("log.txt", 1, "error: flaky")
	acc.Record("log.txt", 2, "error: flaky")
	acc.Record("log.txt", 3, "error: other")
	acc.Record("log.txt", 4, "error: flaky")

	acc.Render(&buf, "errors", nil)
	out := buf.String()

	if got := strings.Count(out, "error: flaky"); got != 2 {
		t.Errorf("count(error: flaky) = %d, want 2 (consecutive repeats collapse, global ones do not):\n%s", got, out)
	}
	if got := strings.Count(out, "error: other"); got != 1 {
		t.Errorf("count(error: other) = %d, want 1", got)
	}
}

func TestRenderCombinedHeader(t *testing.T) {
	var buf bytes.Buffer
	acc := New()
	acc.AddInput()
	acc.AddInput()
	acc.AddInput()
	acc.Record("a.txt", 1, "error: x")

	acc.Render(&buf, "errors", nil)

	if !strings.Contains(buf.String(), "combined summary across 3 files") {
		t.Errorf("combined header missing:\n%s", buf.String())
	}
}

func TestRenderSingleInputHasNoCombinedHeader(t *testing.T) {
	var buf bytes.Buffer
	acc := New()
	acc.AddInput()
	acc.Record("a.txt", 1, "error: x")

	acc.Render(&buf, "errors", nil)

	if strings.Contains(buf.String(), "combined summary") {
		t.Errorf("single-input summary must not claim to be combined:\n%s", buf.String())
	}
}

func TestRenderStylerAppliesToTitle(t *testing.T) {
	var buf bytes.Buffer
	acc := New()

	acc.Render(&buf, "errors", func(s string) string { return "<" + s + ">" })

	if !strings.Contains(buf.String(), "<------------------- errors ------------------->") {
		t.Errorf("styler not applied to header:\n%s", buf.String())
	}
}

func TestLen(t *testing.T) {
	acc := New()
	if acc.Len() != 0 {
		t.Errorf("Len() = %d, want 0", acc.Len())
	}
	acc.Record("a", 1, "x")
	acc.Record("a", 2, "y")
	if acc.Len() != 2 {
		t.Errorf("Len() = %d, want 2", acc.Len())
	}
}
