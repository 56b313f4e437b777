// Package printer renders tree lines.
package printer

import (
	"bufio"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

const (
	// Indent is written once per ancestor level.
	Indent = "│   "
	// Branch precedes every entry but the last of its directory.
	Branch = "├──"
	// LastBranch precedes the last entry of a directory.
	LastBranch = "└──"
)

// Printer writes the root line and one line per entry. Output is buffered;
// call Flush when done.
type Printer struct {
	w        *bufio.Writer
	dirStyle *lipgloss.Style
	line     strings.Builder
}

// Option configures a Printer.
type Option func(*Printer)

// WithDirStyle renders directory names with style.
func WithDirStyle(style lipgloss.Style) Option {
	return func(p *Printer) {
		p.dirStyle = &style
	}
}

// New returns a Printer writing to w.
func New(w io.Writer, opts ...Option) *Printer {
	p := &Printer{w: bufio.NewWriter(w)}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Root writes the root path verbatim.
func (p *Printer) Root(path string) error {
	_, err := p.w.WriteString(path + "\n")
	return err
}

// Entry writes one entry of a directory at the given depth. The indent does
// not track whether ancestors were last siblings.
func (p *Printer) Entry(name string, depth int, last, isDir bool) error {
	p.line.Reset()
	for i := 0; i < depth; i++ {
		p.line.WriteString(Indent)
	}
	if last {
		p.line.WriteString(LastBranch)
	} else {
		p.line.WriteString(Branch)
	}
	p.line.WriteByte(' ')
	if isDir && p.dirStyle != nil {
		p.line.WriteString(p.dirStyle.Render(name))
	} else {
		p.line.WriteString(name)
	}
	p.line.WriteByte('\n')

	_, err := p.w.WriteString(p.line.String())
	return err
}

// Flush writes any buffered output.
func (p *Printer) Flush() error {
	return p.w.Flush()
}

// Writer exposes the buffered writer for trailing output such as a summary.
func (p *Printer) Writer() io.Writer {
	return p.w
}
