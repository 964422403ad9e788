// Package progress draws a one-line counter on stderr while long imports
// run. Nothing is drawn when stderr is not a terminal, so piped output and
// test runs stay clean.
package progress

import (
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

// minItems is the smallest total worth drawing a counter for.
const minItems = 2

// Progress counts finished items out of a known total.
type Progress struct {
	w       io.Writer
	label   string
	total   int
	current int
	live    bool
	width   int
}

// New returns a counter drawing to stderr.
func New(label string, total int) *Progress {
	return NewWriter(os.Stderr, term.IsTerminal(int(os.Stderr.Fd())), label, total)
}

// NewWriter returns a counter drawing to w. live selects in-place redraws;
// when false every call is a no-op.
func NewWriter(w io.Writer, live bool, label string, total int) *Progress {
	return &Progress{w: w, label: label, total: total, live: live && total >= minItems}
}

// Increment marks one more item finished.
func (p *Progress) Increment() {
	p.current++
}

// Current reports how many items are finished.
func (p *Progress) Current() int { return p.current }

// Print redraws the counter.
func (p *Progress) Print() {
	if !p.live {
		return
	}
	line := fmt.Sprintf("%s... %d/%d (%d%%)", p.label, p.current, p.total, p.current*100/p.total)
	p.width = max(p.width, len(line))
	fmt.Fprintf(p.w, "\r%s", line)
}

// Done erases the counter line.
func (p *Progress) Done() {
	if !p.live || p.width == 0 {
		return
	}
	fmt.Fprintf(p.w, "\r%s\r", strings.Repeat(" ", p.width))
}
