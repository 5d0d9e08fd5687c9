package tui

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/snake-gym/internal/core"
	"github.com/vovakirdan/snake-gym/internal/envs/snake"
)

// paint fills one grid cell interior the way the env rasterizes it.
func paint(f *core.Frame, row, col int, c core.RGB) {
	f.FillRect(core.NewRect(col*snake.CellW+1, row*snake.CellH+1, snake.CellW-1, snake.CellH-1), c)
}

func testFrame() *core.Frame {
	f := core.NewFrame(snake.FrameH, snake.FrameW)
	paint(f, 10, 11, snake.HeadColor)
	paint(f, 10, 10, snake.BodyColor)
	paint(f, 3, 7, snake.FruitColor)
	return f
}

func TestDrawFrame(t *testing.T) {
	s := core.NewScreen(snake.GridW+2, snake.GridH+2)
	DrawFrame(s, testFrame())

	assert.Equal(t, 'O', s.Get(12, 11))
	assert.Equal(t, 'o', s.Get(11, 11))
	assert.Equal(t, '*', s.Get(8, 4))
	assert.Equal(t, core.ColorOrange, s.GetCell(12, 11).Color)
	assert.Equal(t, core.ColorGreen, s.GetCell(8, 4).Color)

	// Border
	assert.Equal(t, '┌', s.Get(0, 0))
	assert.Equal(t, '┘', s.Get(snake.GridW+1, snake.GridH+1))

	// Everything else is blank
	glyphs := strings.Count(s.String(), "O") + strings.Count(s.String(), "o") + strings.Count(s.String(), "*")
	assert.Equal(t, 3, glyphs)
}

func TestASCIIViewer(t *testing.T) {
	var out bytes.Buffer
	v := NewASCIIViewer(&out, "Snake-v0", false)

	require.True(t, v.IsOpen())
	require.NoError(t, v.Show(testFrame()))

	lines := strings.Split(out.String(), "\n")
	require.GreaterOrEqual(t, len(lines), snake.GridH+2)
	assert.Equal(t, 'O', []rune(lines[11])[12])
	assert.True(t, strings.HasPrefix(lines[0], "┌─ Snake-v0 ─"), "title on the top border: %q", lines[0])
	assert.Contains(t, lines[snake.GridH+1], " frame 1 ")
	assert.Equal(t, snake.GridW+2, len([]rune(lines[snake.GridH+1])))

	out.Reset()
	require.NoError(t, v.Show(testFrame()))
	assert.Contains(t, out.String(), " frame 2 ")

	require.NoError(t, v.Close())
	require.NoError(t, v.Close())
	assert.False(t, v.IsOpen())
	assert.ErrorIs(t, v.Show(testFrame()), ErrViewerClosed)
}

func TestTerminalViewer(t *testing.T) {
	var out bytes.Buffer
	v := NewTerminalViewer(&out, "Snake-v0")

	require.NoError(t, v.Show(testFrame()))
	first := out.String()
	assert.True(t, strings.HasPrefix(first, hideCursor+clearScreen+cursorHome))
	assert.Contains(t, first, "Snake-v0")

	out.Reset()
	require.NoError(t, v.Show(testFrame()))
	assert.True(t, strings.HasPrefix(out.String(), cursorHome+"Snake-v0"))

	out.Reset()
	require.NoError(t, v.Close())
	assert.Equal(t, showCursor, out.String())
	assert.False(t, v.IsOpen())

	// Second close writes nothing
	out.Reset()
	require.NoError(t, v.Close())
	assert.Empty(t, out.String())
	assert.ErrorIs(t, v.Show(testFrame()), ErrViewerClosed)
}

func TestTerminalViewerCloseBeforeShow(t *testing.T) {
	var out bytes.Buffer
	v := NewTerminalViewer(&out, "Snake-v0")

	require.NoError(t, v.Close())
	assert.Empty(t, out.String())
}

func TestRenderHalfBlocksShape(t *testing.T) {
	rendered := RenderHalfBlocks(core.NewFrame(snake.FrameH, snake.FrameW))
	lines := strings.Split(rendered, "\n")

	require.Len(t, lines, snake.GridH/2)
	for _, line := range lines {
		// An empty frame renders as plain spaces
		assert.Equal(t, strings.Repeat(" ", snake.GridW), line)
	}
}

func TestViewerDrivenByEnv(t *testing.T) {
	var out bytes.Buffer
	viewer := NewASCIIViewer(&out, "", false)
	env := snake.New(snake.WithSeed(5), snake.WithViewer(func() (core.Viewer, error) {
		return viewer, nil
	}))

	_, err := env.Reset()
	require.NoError(t, err)

	open, err := env.RenderFrame()
	require.NoError(t, err)
	assert.True(t, open)

	snap := env.Snapshot()
	head := snap.Snake[0]
	assert.Equal(t, 'O', viewer.screen.Get(head.Col+1, head.Row+1))
	assert.Equal(t, '─', viewer.screen.Get(2, 0), "no title drawn when empty")

	require.NoError(t, env.Close())
	assert.False(t, viewer.IsOpen())
}
