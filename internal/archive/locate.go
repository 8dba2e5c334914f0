package archive

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

var (
	// ErrNoArchives means the archive glob matched nothing in the directory.
	ErrNoArchives = errors.New("no archives match pattern")
	// ErrNotFound means no matching archive mentioned the repository.
	ErrNotFound = errors.New("no archive mentions repository")
)

type candidate struct {
	path    string
	modTime time.Time
}

// Locate finds the most recently modified archive in dir whose name
// matches archiveGlob and whose selected member mentions repository.
// Candidates are tried newest first, ties broken by path name, and the
// first hit wins. Modification time standing in for "most recent CI
// run" is an accepted approximation.
func Locate(dir, archiveGlob, repository, memberGlob string) (string, error) {
	if dir == "" {
		dir = "."
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		return "", err
	}

	var cands []candidate
	for _, e := range entries {
		if e.IsDir() || !MatchName(archiveGlob, e.Name()) {
			continue
		}
		info, err := e.Info()
		if err != nil {
			continue
		}
		cands = append(cands, candidate{
			path:    filepath.Join(dir, e.Name()),
			modTime: info.ModTime(),
		})
	}
	if len(cands) == 0 {
		return "", fmt.Errorf("%q in %s: %w", archiveGlob, dir, ErrNoArchives)
	}

	sort.Slice(cands, func(i, j int) bool {
		if !cands[i].modTime.Equal(cands[j].modTime) {
			return cands[i].modTime.After(cands[j].modTime)
		}
		return cands[i].path < cands[j].path
	})

	for _, c := range cands {
		src, err := Open(c.path, memberGlob)
		if err != nil {
			continue
		}
		if strings.Contains(src.Text, repository) {
			return c.path, nil
		}
	}
	return "", fmt.Errorf("%q in %s: %w", repository, dir, ErrNotFound)
}
