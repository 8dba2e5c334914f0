// Package archive reads CI log archives: selecting the right zip
// member, listing members in a sensible order and locating the newest
// archive in a directory.
package archive

import (
	"archive/zip"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/bmatcuk/doublestar/v4"
)

var (
	// ErrNoMember means the member glob matched nothing in the archive.
	ErrNoMember = errors.New("no archive member matches pattern")
	// ErrAmbiguousMember means the member glob matched more than one entry.
	ErrAmbiguousMember = errors.New("archive member pattern is ambiguous")
)

// Source is one stream of log text: a single zip member or a plain
// text file. Content is fully decoded at open time, so no handle stays
// open past Open.
type Source struct {
	Name        string // member name, or base name for plain files
	Path        string // archive or file path
	Text        string
	FromArchive bool
}

// Open resolves a path and member glob to a Source. A path that is not
// a zip archive is returned as-is; otherwise exactly one member must
// match the glob.
func Open(path, memberGlob string) (*Source, error) {
	r, err := zip.OpenReader(path)
	if err != nil {
		if errors.Is(err, zip.ErrFormat) {
			return openPlain(path)
		}
		return nil, err
	}
	defer r.Close()

	var matches []*zip.File
	for _, f := range r.File {
		if f.FileInfo().IsDir() {
			continue
		}
		if MatchName(memberGlob, f.Name) {
			matches = append(matches, f)
		}
	}
	switch {
	case len(matches) == 0:
		return nil, fmt.Errorf("member %q: %w", memberGlob, ErrNoMember)
	case len(matches) > 1:
		return nil, fmt.Errorf("member %q matches %d entries: %w",
			memberGlob, len(matches), ErrAmbiguousMember)
	}

	text, err := readMember(matches[0])
	if err != nil {
		return nil, err
	}
	return &Source{
		Name:        matches[0].Name,
		Path:        path,
		Text:        text,
		FromArchive: true,
	}, nil
}

func openPlain(path string) (*Source, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return &Source{
		Name: filepath.Base(path),
		Path: path,
		Text: decodeText(b),
	}, nil
}

// Members lists the non-directory member names of an archive, ordered
// so that names with numeric prefixes sort numerically (2_job.txt
// before 11_job.txt).
func Members(path string) ([]string, error) {
	r, err := zip.OpenReader(path)
	if err != nil {
		return nil, err
	}
	defer r.Close()

	var names []string
	for _, f := range r.File {
		if f.FileInfo().IsDir() {
			continue
		}
		names = append(names, f.Name)
	}
	sort.Slice(names, func(i, j int) bool {
		ki, kj := sortKey(names[i]), sortKey(names[j])
		if ki != kj {
			return ki < kj
		}
		return names[i] < names[j]
	})
	return names, nil
}

// ReadMember returns the decoded text of one named member.
func ReadMember(path, name string) (string, error) {
	r, err := zip.OpenReader(path)
	if err != nil {
		return "", err
	}
	defer r.Close()

	for _, f := range r.File {
		if f.Name == name {
			return readMember(f)
		}
	}
	return "", fmt.Errorf("member %q: %w", name, ErrNoMember)
}

// MatchName matches a name glob against a path-like name. Matching is
// case-insensitive and "/" is significant: "*.txt" only matches names
// without a directory part, "dir/*" matches one level under dir.
func MatchName(glob, name string) bool {
	ok, err := doublestar.Match(strings.ToLower(glob), strings.ToLower(filepath.ToSlash(name)))
	return err == nil && ok
}

func readMember(f *zip.File) (string, error) {
	rc, err := f.Open()
	if err != nil {
		return "", err
	}
	defer rc.Close()

	b, err := io.ReadAll(rc)
	if err != nil {
		return "", fmt.Errorf("read member %q: %w", f.Name, err)
	}
	return decodeText(b), nil
}

// decodeText converts bytes to a UTF-8 string, replacing invalid
// sequences instead of failing. Isolated bad bytes in a CI log must
// never abort a scan.
func decodeText(b []byte) string {
	if utf8.Valid(b) {
		return string(b)
	}
	return strings.ToValidUTF8(string(b), string(utf8.RuneError))
}

var (
	leadingDigits = regexp.MustCompile(`^([0-9]+)`)
	slashDigits   = regexp.MustCompile(`/([0-9]+)`)
)

// sortKey zero-pads a run of digits at the start of the name, and one
// immediately after a slash, so numbered members compare numerically.
func sortKey(name string) string {
	if m := leadingDigits.FindStringSubmatch(name); m != nil {
		if n, err := strconv.Atoi(m[1]); err == nil {
			name = strings.Replace(name, m[1], fmt.Sprintf("%05d", n), 1)
		}
	}
	if m := slashDigits.FindStringSubmatch(name); m != nil {
		if n, err := strconv.Atoi(m[1]); err == nil {
			name = strings.Replace(name, m[1], fmt.Sprintf("%05d", n), 1)
		}
	}
	return name
}
