package metrics

import (
	"fmt"
	"log/slog"
)

// Stats counts what a traversal saw. It is updated from the traversal
// goroutine only.
type Stats struct {
	Directories  int // directory entries printed
	Files        int // non-directory entries printed
	Levels       int // levels processed, root level included
	Opened       int // directories opened successfully
	OpenFailures int
	ReadFailures int
	Skipped      int // entries hidden by a filter
}

// AddEntry counts one printed entry.
func (s *Stats) AddEntry(isDir bool) {
	if isDir {
		s.Directories++
	} else {
		s.Files++
	}
}

// Summary is the closing line of a tree listing, e.g. "2 directories, 3 files".
func (s *Stats) Summary() string {
	return fmt.Sprintf("%d %s, %d %s",
		s.Directories, plural(s.Directories, "directory", "directories"),
		s.Files, plural(s.Files, "file", "files"))
}

// LogValue implements slog.LogValuer.
func (s *Stats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("directories", s.Directories),
		slog.Int("files", s.Files),
		slog.Int("levels", s.Levels),
		slog.Int("opened", s.Opened),
		slog.Int("open_failures", s.OpenFailures),
		slog.Int("read_failures", s.ReadFailures),
		slog.Int("skipped", s.Skipped),
	)
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
