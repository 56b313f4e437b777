package uringtree

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/hayeah/uringtree/internal/metrics"
	"github.com/hayeah/uringtree/internal/printer"
	"github.com/hayeah/uringtree/internal/walk"
)

// Args defines the command-line arguments for uringtree
type Args struct {
	Root         string `arg:"positional" help:"Directory to list (default: current directory)"`
	QueueDepth   int    `arg:"-q,--queue-depth" default:"256" help:"Maximum directory opens in flight"`
	Driver       string `arg:"--driver" default:"uring" help:"Async I/O driver: uring or threads"`
	Level        int    `arg:"-L,--level" help:"Descend at most this many levels (0: unlimited)"`
	GitIgnore    bool   `arg:"--gitignore" help:"Hide entries matched by .gitignore files and VCS directories"`
	Color        string `arg:"--color" default:"auto" help:"Color directory names: auto, always or never"`
	Summary      bool   `arg:"--summary" help:"Print directory and file counts after the tree"`
	DirentBuffer int    `arg:"--dirent-buffer" default:"8192" help:"Bytes read per directory listing"`
	Verbose      bool   `arg:"-v,--verbose" help:"Log debug information to stderr"`
}

// Description is shown by --help.
func (Args) Description() string {
	return "uringtree lists a directory tree level by level using io_uring.\n"
}

// RootPath is the directory to list, "." when none was given.
func (a *Args) RootPath() string {
	if a.Root == "" {
		return "."
	}
	return a.Root
}

// Streams are the process output streams.
type Streams struct {
	Stdout io.Writer
	Stderr io.Writer
}

// TreeCLI represents the uringtree CLI application
type TreeCLI struct {
	Args    *Args
	Walker  *walk.Walker
	Printer *printer.Printer
	Stats   *metrics.Stats
	Logger  *slog.Logger
}

// Run prints the tree, then the optional summary.
func (cli *TreeCLI) Run() error {
	walkErr := cli.Walker.Walk(cli.Args.RootPath())

	if walkErr == nil && cli.Args.Summary {
		if _, err := fmt.Fprintf(cli.Printer.Writer(), "\n%s\n", cli.Stats.Summary()); err != nil {
			walkErr = err
		}
	}

	// flush whatever was printed, even after a failure
	if err := cli.Printer.Flush(); err != nil && walkErr == nil {
		walkErr = err
	}
	if walkErr != nil {
		return fmt.Errorf("failed to list %s: %w", cli.Args.RootPath(), walkErr)
	}

	cli.Logger.Debug("listed", "root", cli.Args.RootPath(), "stats", cli.Stats)
	return nil
}
