package progress

import (
	"bytes"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConsolePlainLines(t *testing.T) {
	var buf bytes.Buffer
	r := New(&buf, false)

	r.Report(Started("a/b.js"))
	r.Report(Ignored("a/ignored"))
	r.Report(Failed("a/x.js", errors.New("permission denied")))
	r.Report(Completed("a/b.js", "a/b.md"))
	r.Report(Completed("c.js", ""))
	r.Report(Done(1, 0))
	r.Report(Done(3, 1))

	want := strings.Join([]string{
		"Processing a/b.js",
		"Ignoring a/ignored",
		"Failed a/x.js: permission denied",
		"Wrote a/b.js -> a/b.md",
		"Wrote c.js",
		"Done: 1 file processed, 0 failed",
		"Done: 3 files processed, 1 failed",
	}, "\n") + "\n"
	assert.Equal(t, want, buf.String())
}

func TestQuietIsNop(t *testing.T) {
	var buf bytes.Buffer
	r := New(&buf, true)
	require.IsType(t, Nop{}, r)
	r.Report(Started("a"))
	r.Report(Done(1, 0))
	assert.Zero(t, buf.Len())
	assert.IsType(t, Nop{}, New(nil, false))
}

func TestConsoleConcurrentLinesStayWhole(t *testing.T) {
	var buf bytes.Buffer
	c := NewConsole(&buf)
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			c.Report(Started("same/path.js"))
		}()
	}
	wg.Wait()
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 50)
	for _, l := range lines {
		assert.Equal(t, "Processing same/path.js", l)
	}
}

func TestFuncAdapter(t *testing.T) {
	var kinds []Kind
	var r Reporter = Func(func(e Event) { kinds = append(kinds, e.Kind) })
	r.Report(Started("x"))
	r.Report(Done(1, 0))
	assert.Equal(t, []Kind{EntryStarted, RunCompleted}, kinds)
	assert.Equal(t, "run-completed", RunCompleted.String())
}

func TestStylesRenderLabels(t *testing.T) {
	var nilStyles *Styles
	assert.Equal(t, "Failed", nilStyles.label(labelFailed))

	s := NewStyles(lipgloss.NewRenderer(&bytes.Buffer{}), DefaultTheme())
	assert.Contains(t, s.label(labelWrote), "Wrote")
}
