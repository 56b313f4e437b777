package uringtree

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/golang-cz/devslog"
	"github.com/google/wire"
	"github.com/mattn/go-isatty"
	"github.com/muesli/termenv"

	"github.com/hayeah/uringtree/ignore"
	"github.com/hayeah/uringtree/internal/aio"
	"github.com/hayeah/uringtree/internal/metrics"
	"github.com/hayeah/uringtree/internal/printer"
	"github.com/hayeah/uringtree/internal/walk"
)

// collect all the necessary providers
var Wires = wire.NewSet(
	ProvideLogger,
	ProvideDriver,
	ProvidePrinter,
	ProvideStats,
	ProvideFilter,
	ProvideWalker,
	wire.Struct(new(TreeCLI), "*"),
)

// isTerminal reports whether w is a terminal.
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && isatty.IsTerminal(f.Fd())
}

// ProvideLogger logs to stderr at warn level, or debug with --verbose.
func ProvideLogger(args *Args, streams *Streams) *slog.Logger {
	opts := &slog.HandlerOptions{Level: slog.LevelWarn}
	if args.Verbose {
		opts.Level = slog.LevelDebug
	}

	if isTerminal(streams.Stderr) {
		return slog.New(devslog.NewHandler(streams.Stderr, &devslog.Options{
			HandlerOptions: opts,
		}))
	}
	return slog.New(slog.NewTextHandler(streams.Stderr, opts))
}

// ProvideDriver sets up the async I/O driver. The cleanup closes it.
func ProvideDriver(args *Args, logger *slog.Logger) (aio.Driver, func(), error) {
	capacity := args.QueueDepth
	if capacity <= 0 {
		capacity = aio.DefaultCapacity
	}

	var d aio.Driver
	switch args.Driver {
	case "", "uring":
		u, err := aio.NewUring(capacity)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to initialize io_uring: %w", err)
		}
		d = u
	case "threads":
		th, err := aio.NewThreads(capacity)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to initialize thread driver: %w", err)
		}
		d = th
	default:
		return nil, nil, fmt.Errorf("unknown driver %q, use uring or threads", args.Driver)
	}

	logger.Debug("driver ready", "driver", args.Driver, "capacity", capacity)
	cleanup := func() {
		if err := d.Close(); err != nil {
			logger.Warn("close driver", "err", err)
		}
	}
	return d, cleanup, nil
}

// colorEnabled resolves the --color mode against the output stream.
func colorEnabled(mode string, w io.Writer) (bool, error) {
	switch mode {
	case "", "auto":
		return isTerminal(w), nil
	case "always":
		return true, nil
	case "never":
		return false, nil
	}
	return false, fmt.Errorf("invalid color mode %q, use auto, always or never", mode)
}

// ProvidePrinter writes the tree to stdout, styling directory names when
// color is enabled.
func ProvidePrinter(args *Args, streams *Streams) (*printer.Printer, error) {
	color, err := colorEnabled(args.Color, streams.Stdout)
	if err != nil {
		return nil, err
	}
	if !color {
		return printer.New(streams.Stdout), nil
	}

	r := lipgloss.NewRenderer(streams.Stdout)
	r.SetColorProfile(termenv.ANSI)
	style := r.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	return printer.New(streams.Stdout, printer.WithDirStyle(style)), nil
}

// ProvideStats creates an empty traversal counter.
func ProvideStats() *metrics.Stats {
	return &metrics.Stats{}
}

// ProvideFilter returns the gitignore filter, or nil when --gitignore is off.
func ProvideFilter(args *Args) (walk.Filter, error) {
	if !args.GitIgnore {
		return nil, nil
	}
	ig, err := ignore.NewIgnore(args.RootPath())
	if err != nil {
		return nil, err
	}
	return ig, nil
}

// ProvideWalker assembles the level orchestrator.
func ProvideWalker(args *Args, d aio.Driver, p *printer.Printer, stats *metrics.Stats, logger *slog.Logger, filter walk.Filter) *walk.Walker {
	return walk.NewWalker(d, p, stats, logger, walk.Options{
		MaxDepth:   args.Level,
		BufferSize: args.DirentBuffer,
		Filter:     filter,
	})
}
