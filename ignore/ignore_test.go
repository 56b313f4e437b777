package ignore

import (
	"path/filepath"
	"testing"

	"github.com/hayeah/uringtree/internal/assert"
)

func TestIgnore(t *testing.T) {
	assert := assert.New(t)

	root := assert.TempTree(map[string]string{
		".gitignore":      "*.log\nbuild/\n",
		"src/.gitignore":  "gen.go\n",
		"src/main.go":     "package main",
		"src/gen.go":      "package main",
		"app.log":         "",
		"build/out.bin":   "",
		".git/HEAD":       "ref: refs/heads/main",
		"docs/readme.txt": "",
	})

	ig, err := NewIgnore(root)
	assert.NoError(err)

	cases := []struct {
		path    string
		isDir   bool
		ignored bool
	}{
		{".", true, false},
		{"app.log", false, true},
		{"build", true, true},
		{".git", true, true},
		{"src", true, false},
		{"src/main.go", false, false},
		{"src/gen.go", false, true},
		{"docs/readme.txt", false, false},
		{".gitignore", false, false},
	}
	for _, c := range cases {
		got, err := ig.Ignored(filepath.Join(root, filepath.FromSlash(c.path)), c.isDir)
		assert.NoError(err, c.path)
		assert.Equal(c.ignored, got, c.path)
	}

	_, err = ig.Ignored(filepath.Dir(root), true)
	assert.Error(err)
}
