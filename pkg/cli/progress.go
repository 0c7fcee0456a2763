package cli

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
)

// ProgressReporter reports progress through a fixed number of items, such
// as the files of a descriptor directory.
type ProgressReporter interface {
	Start(total int)
	Step(item string, err error)
	Finish() (failed int)
}

// FileProgress renders a bar followed by the current item. Failures are
// printed on their own line as they happen so they survive the redraw.
type FileProgress struct {
	mu      sync.Mutex
	writer  io.Writer
	label   string
	total   int
	current int
	failed  int
	width   int
}

// NewProgressReporter creates a progress reporter that writes to w.
// If w is nil, it defaults to os.Stderr.
func NewProgressReporter(w io.Writer, label string) ProgressReporter {
	if w == nil {
		w = os.Stderr
	}
	return &FileProgress{writer: w, label: label}
}

// Start resets the reporter for total items.
func (p *FileProgress) Start(total int) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.total = total
	p.current = 0
	p.failed = 0
	p.render("")
}

// Step marks one item done; a non-nil err marks it failed.
func (p *FileProgress) Step(item string, err error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.current++
	if err != nil {
		p.failed++
		p.clear()
		fmt.Fprintf(p.writer, "FAIL %s: %s\n", item, strings.ReplaceAll(err.Error(), "\n", "; "))
	}
	p.render(item)
}

// Finish ends the bar line and returns the number of failed items.
func (p *FileProgress) Finish() int {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.total > 0 {
		p.clear()
	}
	fmt.Fprintf(p.writer, "%s: %d/%d ok\n", p.label, p.current-p.failed, p.total)
	return p.failed
}

func (p *FileProgress) clear() {
	if p.width > 0 {
		fmt.Fprintf(p.writer, "\r%s\r", strings.Repeat(" ", p.width))
		p.width = 0
	}
}

func (p *FileProgress) render(item string) {
	if p.total == 0 {
		return
	}

	const barWidth = 30
	filled := barWidth * p.current / p.total
	bar := strings.Repeat("#", filled) + strings.Repeat(".", barWidth-filled)

	line := fmt.Sprintf("%s [%s] %d/%d %s", p.label, bar, p.current, p.total, item)
	pad := max(p.width-len(line), 0)
	fmt.Fprintf(p.writer, "\r%s%s", line, strings.Repeat(" ", pad))
	p.width = len(line)
}
