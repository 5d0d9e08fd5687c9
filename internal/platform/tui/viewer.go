package tui

import (
	"errors"
	"fmt"
	"io"
	"sync"

	"github.com/vovakirdan/snake-gym/internal/core"
	"github.com/vovakirdan/snake-gym/internal/envs/snake"
)

// ErrViewerClosed is returned by Show after Close.
var ErrViewerClosed = errors.New("tui: viewer closed")

// ANSI sequences used to redraw in place.
const (
	cursorHome  = "\x1b[H"
	clearScreen = "\x1b[2J"
	hideCursor  = "\x1b[?25l"
	showCursor  = "\x1b[?25h"
)

// TerminalViewer draws frames to a terminal with coloured half-blocks,
// redrawing in place on each Show.
type TerminalViewer struct {
	mu     sync.Mutex
	out    io.Writer
	title  string
	shown  int
	closed bool
}

// NewTerminalViewer creates a viewer writing to out.
func NewTerminalViewer(out io.Writer, title string) *TerminalViewer {
	return &TerminalViewer{out: out, title: title}
}

// Show draws the frame.
func (v *TerminalViewer) Show(f *core.Frame) error {
	v.mu.Lock()
	defer v.mu.Unlock()

	if v.closed {
		return ErrViewerClosed
	}

	prefix := cursorHome
	if v.shown == 0 {
		prefix = hideCursor + clearScreen + cursorHome
	}
	v.shown++

	_, err := fmt.Fprintf(v.out, "%s%s\n%s\n", prefix, v.title, RenderHalfBlocks(f))
	return err
}

// IsOpen reports whether Close has not been called yet.
func (v *TerminalViewer) IsOpen() bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return !v.closed
}

// Close restores the cursor. Repeated calls are no-ops.
func (v *TerminalViewer) Close() error {
	v.mu.Lock()
	defer v.mu.Unlock()

	if v.closed {
		return nil
	}
	v.closed = true
	if v.shown == 0 {
		return nil
	}
	_, err := io.WriteString(v.out, showCursor)
	return err
}

// ASCIIViewer draws frames as plain glyphs: O for the head, o for the
// body and * for fruit. The title sits on the top border and the frame
// counter on the bottom one.
type ASCIIViewer struct {
	out    io.Writer
	screen *core.Screen
	title  string
	frames int
	color  bool
	closed bool
}

// NewASCIIViewer creates an ASCII viewer. With color set the glyphs are
// styled for a terminal, otherwise output is plain text.
func NewASCIIViewer(out io.Writer, title string, color bool) *ASCIIViewer {
	return &ASCIIViewer{
		out:    out,
		screen: core.NewScreen(snake.GridW+2, snake.GridH+2),
		title:  title,
		color:  color,
	}
}

// Show draws the frame followed by a blank line.
func (v *ASCIIViewer) Show(f *core.Frame) error {
	if v.closed {
		return ErrViewerClosed
	}
	v.frames++

	DrawFrame(v.screen, f)
	if v.title != "" {
		v.screen.DrawText(2, 0, " "+v.title+" ")
	}
	v.screen.DrawTextCentered(v.screen.Height()-1, fmt.Sprintf(" frame %d ", v.frames))

	text := v.screen.String()
	if v.color {
		text = RenderScreen(v.screen)
	}
	_, err := fmt.Fprintf(v.out, "%s\n\n", text)
	return err
}

// IsOpen reports whether Close has not been called yet.
func (v *ASCIIViewer) IsOpen() bool {
	return !v.closed
}

// Close marks the viewer closed. Repeated calls are no-ops.
func (v *ASCIIViewer) Close() error {
	v.closed = true
	return nil
}

// Compile-time interface checks
var (
	_ core.Viewer = (*TerminalViewer)(nil)
	_ core.Viewer = (*ASCIIViewer)(nil)
)
