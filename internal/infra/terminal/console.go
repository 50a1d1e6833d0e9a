// Package terminal provides serialized terminal output and line input for
// the player UI.
package terminal

import (
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/charmbracelet/lipgloss"
	zlog "github.com/rs/zerolog/log"
)

// DefaultPrompt is printed before every command read.
const DefaultPrompt = ">> "

// Console serializes all terminal writes under one lock so that prompts,
// status lines and track announcements from different goroutines never
// interleave mid-line.
type Console struct {
	mu     sync.Mutex
	out    io.Writer
	prompt string
	title  lipgloss.Style
	faint  lipgloss.Style
}

// NewConsole creates a console writing to out.
// Styling is dropped automatically when out is not a terminal.
func NewConsole(out io.Writer) *Console {
	r := lipgloss.NewRenderer(out)
	return &Console{
		out:    out,
		prompt: DefaultPrompt,
		title:  r.NewStyle().Bold(true),
		faint:  r.NewStyle().Faint(true),
	}
}

// Println writes s followed by a newline.
func (c *Console) Println(s string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.writeLocked(s + "\n")
}

// Printf writes a formatted line.
func (c *Console) Printf(format string, args ...any) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.writeLocked(fmt.Sprintf(format, args...))
}

// Prompt writes the command prompt without a trailing newline.
func (c *Console) Prompt() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.writeLocked(c.prompt)
}

// Announce writes the title of the track that just started.
// withPrompt re-prints the prompt in the same locked write, for when the
// input side is still blocked on a read and will not print one itself.
func (c *Console) Announce(title string, withPrompt bool) {
	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(c.title.Render(title))
	b.WriteString("\n")
	if withPrompt {
		b.WriteString(c.prompt)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.writeLocked(b.String())
}

// Banner writes a heading followed by dimmed help lines.
func (c *Console) Banner(heading string, lines ...string) {
	var b strings.Builder
	b.WriteString(c.title.Render(heading))
	b.WriteString("\n")
	for _, l := range lines {
		b.WriteString(c.faint.Render(l))
		b.WriteString("\n")
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.writeLocked(b.String())
}

// writeLocked writes s. Must be called with lock held.
func (c *Console) writeLocked(s string) {
	if _, err := io.WriteString(c.out, s); err != nil {
		zlog.Error().Err(err).Msg("terminal: write failed")
	}
}
