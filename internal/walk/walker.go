// Package walk lists a directory tree one level at a time.
//
// Every directory of a level is opened through a single aio batch. Each
// completion is read and closed as it arrives; once the whole level has
// drained, the listings are printed in the order the directories were
// discovered and their subdirectories form the next level.
package walk

import (
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/hayeah/uringtree/internal/aio"
	"github.com/hayeah/uringtree/internal/dirent"
	"github.com/hayeah/uringtree/internal/metrics"
	"github.com/hayeah/uringtree/internal/printer"
)

// DefaultBufferSize is the size of the single getdents64 read per directory.
const DefaultBufferSize = 8192

// Filter hides entries from the listing.
type Filter interface {
	Ignored(path string, isDir bool) (bool, error)
}

// Walker drives a level-ordered traversal.
type Walker struct {
	Driver  aio.Driver
	Printer *printer.Printer
	Stats   *metrics.Stats
	Logger  *slog.Logger
	Filter  Filter // optional

	// MaxDepth limits the printed levels; the root's entries are level 1.
	// Zero means unlimited.
	MaxDepth int

	buf []byte
}

// Options configures NewWalker.
type Options struct {
	MaxDepth   int
	BufferSize int
	Filter     Filter
}

// NewWalker returns a Walker printing through p.
func NewWalker(d aio.Driver, p *printer.Printer, stats *metrics.Stats, logger *slog.Logger, opts Options) *Walker {
	if opts.BufferSize <= 0 {
		opts.BufferSize = DefaultBufferSize
	}
	return &Walker{
		Driver:   d,
		Printer:  p,
		Stats:    stats,
		Logger:   logger,
		Filter:   opts.Filter,
		MaxDepth: opts.MaxDepth,
		buf:      make([]byte, opts.BufferSize),
	}
}

// Walk prints root and the tree below it. Directories that cannot be opened
// or read are skipped silently; the returned error is fatal.
func (w *Walker) Walk(root string) error {
	if err := w.Printer.Root(root); err != nil {
		return fmt.Errorf("write root: %w", err)
	}

	current := &LevelQueue{}
	current.Enqueue(Node{Path: root, Depth: 0, Last: true})

	for !current.IsEmpty() {
		next := &LevelQueue{}
		if err := w.walkLevel(current.DrainAll(), next); err != nil {
			return err
		}
		current = next
	}

	w.Logger.Debug("walk done", "root", root, "stats", w.Stats)
	return nil
}

// walkLevel opens every node of one level, prints their listings and queues
// their subdirectories on next.
func (w *Walker) walkLevel(nodes []Node, next *LevelQueue) error {
	w.Stats.Levels++
	w.Logger.Debug("level", "depth", nodes[0].Depth, "directories", len(nodes))

	reqs := make([]aio.Request, len(nodes))
	for i, n := range nodes {
		reqs[i] = aio.Request{Path: n.Path, Depth: n.Depth, Index: i}
	}

	listings := make([][]dirent.Entry, len(nodes))
	err := aio.OpenAll(w.Driver, reqs, func(c aio.Completion) {
		if c.Err != nil {
			w.Stats.OpenFailures++
			w.Logger.Debug("skip directory", "err", c.Err)
			return
		}
		w.Stats.Opened++
		listings[c.Index] = w.list(c)
	})
	if err != nil {
		return fmt.Errorf("open level %d: %w", nodes[0].Depth, err)
	}

	for i, n := range nodes {
		if err := w.emit(n, listings[i], next); err != nil {
			return err
		}
	}
	return nil
}

// list reads the entries of an opened directory. The read buffer is reused,
// so entries own copies of their names.
func (w *Walker) list(c aio.Completion) []dirent.Entry {
	n, err := readDirent(c.FD, w.buf)
	if err != nil {
		w.Stats.ReadFailures++
		w.Logger.Debug("read directory", "path", c.Path, "err", err)
		return nil
	}
	if n <= 0 {
		return nil
	}

	entries := dirent.Decode(w.buf[:n])
	for i := range entries {
		if entries[i].Type != dirent.TypeUnknown {
			continue
		}
		typ, err := statType(c.FD, entries[i].Name)
		if err != nil {
			w.Logger.Debug("stat entry", "path", c.Path, "name", entries[i].Name, "err", err)
		}
		entries[i].Type = typ
	}

	if w.Filter != nil {
		entries = w.filter(c.Path, entries)
	}
	return entries
}

// filter drops ignored entries and re-marks the last one.
func (w *Walker) filter(dir string, entries []dirent.Entry) []dirent.Entry {
	kept := entries[:0]
	for _, e := range entries {
		path := filepath.Join(dir, e.Name)
		ignored, err := w.Filter.Ignored(path, e.IsDir())
		if err != nil {
			w.Logger.Debug("filter", "path", path, "err", err)
		}
		if ignored {
			w.Stats.Skipped++
			continue
		}
		kept = append(kept, e)
	}
	dirent.MarkLast(kept)
	return kept
}

// emit prints the entries of n and queues its subdirectories.
func (w *Walker) emit(n Node, entries []dirent.Entry, next *LevelQueue) error {
	descend := w.MaxDepth == 0 || n.Depth+2 <= w.MaxDepth

	for _, e := range entries {
		if err := w.Printer.Entry(e.Name, n.Depth, e.Last, e.IsDir()); err != nil {
			return fmt.Errorf("write entry: %w", err)
		}
		w.Stats.AddEntry(e.IsDir())

		if !e.IsDir() || !descend {
			continue
		}
		child, err := n.Child(e.Name, e.Last)
		if err != nil {
			w.Logger.Debug("skip directory", "err", err)
			continue
		}
		next.Enqueue(child)
	}
	return nil
}
