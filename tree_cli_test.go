//go:build linux

package uringtree

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/hayeah/uringtree/internal/assert"
)

func newTestCLI(t *testing.T, args Args) (*TreeCLI, *bytes.Buffer, *bytes.Buffer) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	cli, cleanup, err := InitTreeCLI(&args, &Streams{Stdout: &stdout, Stderr: &stderr})
	if err != nil {
		t.Fatalf("init: %v", err)
	}
	t.Cleanup(cleanup)
	return cli, &stdout, &stderr
}

func TestTreeCLI_Run(t *testing.T) {
	assert := assert.New(t)
	root := assert.TempTree(map[string]string{"sub/x": "x"})

	cli, stdout, stderr := newTestCLI(t, Args{Root: root, Driver: "threads", QueueDepth: 2})
	assert.NoError(cli.Run())

	assert.EqualLines(`
		`+root+`
		└── sub
		│   └── x
	`, stdout.String())
	assert.Empty(stderr.String())
}

func TestTreeCLI_Summary(t *testing.T) {
	assert := assert.New(t)
	root := assert.TempTree(map[string]string{"sub/x": "x"})

	cli, stdout, _ := newTestCLI(t, Args{Root: root, Driver: "threads", Summary: true})
	assert.NoError(cli.Run())
	assert.Equal(root+"\n└── sub\n│   └── x\n\n1 directory, 1 file\n", stdout.String())
}

func TestTreeCLI_DefaultRoot(t *testing.T) {
	assert := assert.New(t)
	root := assert.TempTree(map[string]string{"only.txt": ""})

	wd, err := os.Getwd()
	assert.NoError(err)
	assert.NoError(os.Chdir(root))
	t.Cleanup(func() { os.Chdir(wd) })

	cli, stdout, _ := newTestCLI(t, Args{Driver: "threads"})
	assert.NoError(cli.Run())
	assert.Equal(".\n└── only.txt\n", stdout.String())
}

func TestTreeCLI_GitIgnoreAndLevel(t *testing.T) {
	assert := assert.New(t)
	root := assert.TempTree(map[string]string{
		".gitignore":     "tmp/\n",
		"tmp/scratch":    "",
		"src/pkg/a.go":   "",
		"src/pkg/b/c.go": "",
	})

	cli, stdout, _ := newTestCLI(t, Args{Root: root, Driver: "threads", GitIgnore: true, Level: 2})
	assert.NoError(cli.Run())

	out := stdout.String()
	assert.NotContains(out, "── tmp")
	assert.Contains(out, "│   └── pkg\n")
	assert.NotContains(out, "a.go")
}

func TestTreeCLI_Verbose(t *testing.T) {
	assert := assert.New(t)
	root := t.TempDir()

	cli, _, stderr := newTestCLI(t, Args{Root: filepath.Join(root, "missing"), Driver: "threads", Verbose: true})
	assert.NoError(cli.Run())
	assert.Contains(stderr.String(), "skip directory")
	assert.Equal(1, cli.Stats.OpenFailures)
}

func TestInitTreeCLI_Errors(t *testing.T) {
	assert := assert.New(t)
	streams := &Streams{Stdout: &bytes.Buffer{}, Stderr: &bytes.Buffer{}}

	_, _, err := InitTreeCLI(&Args{Driver: "select"}, streams)
	assert.ErrorContains(err, "unknown driver")

	_, _, err = InitTreeCLI(&Args{Driver: "threads", Color: "sometimes"}, streams)
	assert.ErrorContains(err, "invalid color mode")
}

func TestColorEnabled(t *testing.T) {
	assert := assert.New(t)

	var buf bytes.Buffer
	for mode, want := range map[string]bool{"": false, "auto": false, "always": true, "never": false} {
		got, err := colorEnabled(mode, &buf)
		assert.NoError(err, mode)
		assert.Equal(want, got, mode)
	}
}

func TestTreeCLI_ColorAlways(t *testing.T) {
	assert := assert.New(t)
	root := assert.TempTree(map[string]string{"sub/x": ""})

	cli, stdout, _ := newTestCLI(t, Args{Root: root, Driver: "threads", Color: "always"})
	assert.NoError(cli.Run())
	assert.Contains(stdout.String(), "└── \x1b[")
	assert.Contains(stdout.String(), "│   └── x\n")
}
