package snake

import "github.com/vovakirdan/snake-gym/internal/core"

// Palette used by the rasterizer.
var (
	HeadColor  = core.RGB{R: 255, G: 96, B: 0}
	BodyColor  = core.RGB{R: 255, G: 0, B: 0}
	FruitColor = core.RGB{R: 0, G: 255, B: 0}
)

// rasterize paints fruit, then the snake, into a fresh frame.
// Each cell fills its interior and leaves a 1-pixel grid line on the
// top and left edges.
func rasterize(snake *body, fruit fruitSet) *core.Frame {
	f := core.NewFrame(FrameH, FrameW)

	for c := range fruit {
		f.FillRect(cellInterior(c), FruitColor)
	}

	for i := 0; i < snake.Len(); i++ {
		color := BodyColor
		if i == 0 {
			color = HeadColor
		}
		f.FillRect(cellInterior(snake.At(i)), color)
	}

	return f
}

// cellInterior returns the pixel rectangle painted for a grid cell.
func cellInterior(c core.Cell) core.Rect {
	return core.NewRect(
		c.Col*CellW+1,
		c.Row*CellH+1,
		CellW-1,
		CellH-1,
	)
}
