package assert

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

// Assert is a wrapper around assert.Assertions and testing.T
type Assert struct {
	*assert.Assertions
	T *testing.T
}

// New creates a new Assert object
func New(t *testing.T) *Assert {
	return &Assert{
		Assertions: assert.New(t),
		T:          t,
	}
}

// TempTree creates a temporary directory populated with files. Keys are
// slash separated relative paths; a key ending in "/" creates an empty
// directory. It returns the root of the tree.
func (a *Assert) TempTree(files map[string]string) string {
	a.T.Helper()
	root := a.T.TempDir()

	for relPath, content := range files {
		path := filepath.Join(root, filepath.FromSlash(relPath))
		if strings.HasSuffix(relPath, "/") {
			if err := os.MkdirAll(path, 0755); err != nil {
				a.T.Fatalf("mkdir %s: %v", path, err)
			}
			continue
		}

		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			a.T.Fatalf("mkdir %s: %v", filepath.Dir(path), err)
		}
		if err := os.WriteFile(path, []byte(content), 0644); err != nil {
			a.T.Fatalf("write %s: %v", path, err)
		}
	}
	return root
}

// EqualLines compares output line by line. The expected text may be written
// as an indented raw string: the leading newline and the common indentation
// of tab characters are removed first.
func (a *Assert) EqualLines(expected string, actual string, msgAndArgs ...any) bool {
	a.T.Helper()
	return a.Equal(Lines(expected), strings.Split(strings.TrimSuffix(actual, "\n"), "\n"), msgAndArgs...)
}

// Lines strips a raw string literal of its leading newline and common tab
// indentation and splits it into lines.
func Lines(text string) []string {
	text = strings.TrimPrefix(text, "\n")
	text = strings.TrimRight(text, "\t\n")
	lines := strings.Split(text, "\n")

	indent := -1
	for _, ln := range lines {
		if strings.TrimSpace(ln) == "" {
			continue
		}
		n := len(ln) - len(strings.TrimLeft(ln, "\t"))
		if indent < 0 || n < indent {
			indent = n
		}
	}
	if indent <= 0 {
		return lines
	}
	for i, ln := range lines {
		if len(ln) >= indent {
			lines[i] = ln[indent:]
		}
	}
	return lines
}
