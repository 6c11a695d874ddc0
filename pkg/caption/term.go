package caption

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/charmbracelet/lipgloss"
)

// namedColors maps the overlay color names to terminal colors so a config
// written for the browser overlay renders sensibly in a terminal too.
var namedColors = map[string]lipgloss.Color{
	"white":  lipgloss.Color("15"),
	"black":  lipgloss.Color("0"),
	"red":    lipgloss.Color("9"),
	"green":  lipgloss.Color("10"),
	"yellow": lipgloss.Color("11"),
	"blue":   lipgloss.Color("12"),
	"cyan":   lipgloss.Color("14"),
}

// TermSink prints captions as styled lines on a terminal.
type TermSink struct {
	mu  sync.Mutex
	out io.Writer
}

// NewTermSink creates a terminal caption sink writing to stdout.
func NewTermSink() *TermSink {
	return &TermSink{out: os.Stdout}
}

// Set implements Sink.
func (s *TermSink) Set(text string, style Style) {
	style = style.merged()

	color, ok := namedColors[strings.ToLower(style.TextColor)]
	if !ok {
		// lipgloss accepts hex strings like "#ffcc00" directly.
		color = lipgloss.Color(style.TextColor)
	}
	line := lipgloss.NewStyle().Bold(true).Foreground(color).Render(text)

	s.mu.Lock()
	defer s.mu.Unlock()
	fmt.Fprintln(s.out, line)
}

// Clear implements Sink. Terminal output is a transcript, not an overlay;
// there is nothing to remove.
func (s *TermSink) Clear() {}
