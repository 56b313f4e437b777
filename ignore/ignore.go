package ignore

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-git/go-billy/v5/osfs"
	"github.com/go-git/go-git/v5/plumbing/format/gitignore"
)

// vcsDirs are always hidden.
var vcsDirs = map[string]bool{
	".git": true,
	".hg":  true,
	".svn": true,
}

// Ignore matches paths under a root against the .gitignore files found in
// that tree.
type Ignore struct {
	matcher  gitignore.Matcher
	rootPath string
}

// NewIgnore reads every .gitignore below rootPath.
func NewIgnore(rootPath string) (*Ignore, error) {
	patterns, err := gitignore.ReadPatterns(osfs.New(rootPath), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to read gitignore patterns: %w", err)
	}

	return &Ignore{
		matcher:  gitignore.NewMatcher(patterns),
		rootPath: rootPath,
	}, nil
}

// Ignored reports whether path, which must lie under the root, is hidden.
// The root itself is never ignored.
func (ig *Ignore) Ignored(path string, isDir bool) (bool, error) {
	if isDir && vcsDirs[filepath.Base(path)] {
		return true, nil
	}

	relPath, err := filepath.Rel(ig.rootPath, path)
	if err != nil {
		return false, err
	}
	if relPath == "." {
		return false, nil
	}
	if strings.HasPrefix(relPath, "..") {
		return false, fmt.Errorf("%s is outside %s", path, ig.rootPath)
	}

	parts := strings.Split(relPath, string(os.PathSeparator))
	return ig.matcher.Match(parts, isDir), nil
}
