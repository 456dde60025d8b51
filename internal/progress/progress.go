// Package progress reports pipeline progress to the user.
//
// Reporters only observe: nothing a Reporter does changes what the pipeline
// writes. Quiet mode swaps in Nop.
package progress

import (
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"
)

// Kind is the kind of a progress event.
type Kind int

const (
	EntryStarted Kind = iota
	EntryIgnored
	EntryFailed
	EntryCompleted
	RunCompleted
)

func (k Kind) String() string {
	switch k {
	case EntryStarted:
		return "started"
	case EntryIgnored:
		return "ignored"
	case EntryFailed:
		return "failed"
	case EntryCompleted:
		return "completed"
	case RunCompleted:
		return "run-completed"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Event is one observation from the pipeline.
type Event struct {
	Kind Kind
	// Path is the source path relative to the source root.
	Path string
	// Target is the output path relative to the target root, for EntryCompleted.
	Target string
	Err    error
	// Count and Failed are set on RunCompleted.
	Count  int
	Failed int
}

func Started(path string) Event { return Event{Kind: EntryStarted, Path: path} }
func Ignored(path string) Event { return Event{Kind: EntryIgnored, Path: path} }
func Failed(path string, err error) Event {
	return Event{Kind: EntryFailed, Path: path, Err: err}
}
func Completed(path, target string) Event {
	return Event{Kind: EntryCompleted, Path: path, Target: target}
}
func Done(count, failed int) Event {
	return Event{Kind: RunCompleted, Count: count, Failed: failed}
}

// Reporter receives progress events. Implementations must be safe for
// concurrent use.
type Reporter interface {
	Report(Event)
}

// Func adapts a function to Reporter.
type Func func(Event)

func (f Func) Report(e Event) { f(e) }

// Nop discards every event.
type Nop struct{}

func (Nop) Report(Event) {}

// New returns Nop when quiet is set and a Console on w otherwise.
func New(w io.Writer, quiet bool) Reporter {
	if quiet || w == nil {
		return Nop{}
	}
	return NewConsole(w)
}

// Console writes one human-readable line per event.
type Console struct {
	mu     sync.Mutex
	w      io.Writer
	styles *Styles
}

// NewConsole returns a Console on w. Output is styled only when w is a terminal.
func NewConsole(w io.Writer) *Console {
	c := &Console{w: w}
	if isTerminal(w) {
		c.styles = NewStyles(lipgloss.NewRenderer(w), DefaultTheme())
	}
	return c
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

func (c *Console) Report(e Event) {
	line := c.format(e)
	if line == "" {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	fmt.Fprintln(c.w, line)
}

func (c *Console) format(e Event) string {
	switch e.Kind {
	case EntryStarted:
		return c.styles.label(labelProcessing) + " " + e.Path
	case EntryIgnored:
		return c.styles.label(labelIgnoring) + " " + e.Path
	case EntryFailed:
		return fmt.Sprintf("%s %s: %v", c.styles.label(labelFailed), e.Path, e.Err)
	case EntryCompleted:
		if e.Target == "" {
			return c.styles.label(labelWrote) + " " + e.Path
		}
		return fmt.Sprintf("%s %s -> %s", c.styles.label(labelWrote), e.Path, e.Target)
	case RunCompleted:
		summary := fmt.Sprintf("%d %s processed, %d failed", e.Count, plural(e.Count, "file", "files"), e.Failed)
		return c.styles.label(labelDone) + " " + summary
	default:
		return ""
	}
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
