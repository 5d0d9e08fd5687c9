package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/snake-gym/internal/core"
	"github.com/vovakirdan/snake-gym/internal/envs/snake"
)

// colorStyles maps core.Color to lipgloss styles.
var colorStyles = map[core.Color]lipgloss.Style{
	core.ColorDefault:     lipgloss.NewStyle(),
	core.ColorRed:         lipgloss.NewStyle().Foreground(lipgloss.Color("1")),
	core.ColorGreen:       lipgloss.NewStyle().Foreground(lipgloss.Color("2")),
	core.ColorYellow:      lipgloss.NewStyle().Foreground(lipgloss.Color("3")),
	core.ColorBrightRed:   lipgloss.NewStyle().Foreground(lipgloss.Color("9")),
	core.ColorBrightGreen: lipgloss.NewStyle().Foreground(lipgloss.Color("10")),
	core.ColorOrange:      lipgloss.NewStyle().Foreground(lipgloss.Color("208")),
	core.ColorGray:        lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
}

// RenderScreen converts a Screen buffer to a styled string for display.
// Groups adjacent cells with the same color to minimize ANSI escape sequences.
func RenderScreen(s *core.Screen) string {
	var sb strings.Builder
	// Pre-allocate with extra space for ANSI codes
	sb.Grow(s.Width()*s.Height()*2 + s.Height())

	for y := range s.Height() {
		if y > 0 {
			sb.WriteRune('\n')
		}

		// Group consecutive cells with the same color for efficiency
		x := 0
		for x < s.Width() {
			cell := s.GetCell(x, y)
			startColor := cell.Color

			var run strings.Builder
			for x < s.Width() {
				cell = s.GetCell(x, y)
				if cell.Color != startColor {
					break
				}
				run.WriteRune(cell.Rune)
				x++
			}

			style, ok := colorStyles[startColor]
			if !ok {
				style = colorStyles[core.ColorDefault]
			}
			sb.WriteString(style.Render(run.String()))
		}
	}
	return sb.String()
}

// sampleCell returns the pixel at the centre of grid cell (row, col).
// Cell interiors are flat, so one pixel stands for the whole cell.
func sampleCell(f *core.Frame, row, col int) core.RGB {
	return f.At(row*snake.CellH+snake.CellH/2, col*snake.CellW+snake.CellW/2)
}

// hexColor converts a pixel to a lipgloss colour.
func hexColor(c core.RGB) lipgloss.Color {
	return lipgloss.Color(fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B))
}

// RenderHalfBlocks draws a frame using '▀' glyphs: each terminal row holds
// two grid rows, the upper as foreground and the lower as background.
func RenderHalfBlocks(f *core.Frame) string {
	rows := f.Height / snake.CellH
	cols := f.Width / snake.CellW

	var sb strings.Builder
	sb.Grow(rows / 2 * cols * 24)

	for row := 0; row < rows; row += 2 {
		if row > 0 {
			sb.WriteRune('\n')
		}
		for col := range cols {
			top := sampleCell(f, row, col)
			bottom := core.Black
			if row+1 < rows {
				bottom = sampleCell(f, row+1, col)
			}
			if top == core.Black && bottom == core.Black {
				sb.WriteRune(' ')
				continue
			}
			style := lipgloss.NewStyle().
				Foreground(hexColor(top)).
				Background(hexColor(bottom))
			sb.WriteString(style.Render("▀"))
		}
	}
	return sb.String()
}

// glyphs maps the env's palette to ASCII cells.
var glyphs = map[core.RGB]core.ScreenCell{
	snake.HeadColor:  {Rune: 'O', Color: core.ColorOrange},
	snake.BodyColor:  {Rune: 'o', Color: core.ColorRed},
	snake.FruitColor: {Rune: '*', Color: core.ColorGreen},
}

// DrawFrame paints a frame onto a screen inside a box border.
// The screen must be at least (GridW+2)×(GridH+2).
func DrawFrame(s *core.Screen, f *core.Frame) {
	rows := f.Height / snake.CellH
	cols := f.Width / snake.CellW

	s.Clear()
	s.DrawBox(core.NewRect(0, 0, cols+2, rows+2))

	for row := range rows {
		for col := range cols {
			cell, ok := glyphs[sampleCell(f, row, col)]
			if !ok {
				continue
			}
			s.SetColored(col+1, row+1, cell.Rune, cell.Color)
		}
	}
}

// centerText pads text so it sits in the middle of width columns.
func centerText(text string, width int) string {
	w := lipgloss.Width(text)
	if w >= width {
		return text
	}
	padding := (width - w) / 2
	return strings.Repeat(" ", padding) + text
}
