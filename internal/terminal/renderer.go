// Package terminal runs the game in a text terminal with tcell. The scene keeps
// its logical pixel coordinates; the canvas maps them onto character cells.
package terminal

import (
	"image/color"
	"math"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"

	"chosenoffset.com/hungrypumpkin/internal/render"
)

// Canvas is a render.Image backed by a tcell screen. Drawing coordinates are
// logical pixels, scaled to the screen's current size in cells.
type Canvas struct {
	screen        tcell.Screen
	width, height int // logical size
	cols, rows    int
}

// NewCanvas creates a canvas of the given logical size on screen.
func NewCanvas(screen tcell.Screen, width, height int) *Canvas {
	c := &Canvas{screen: screen, width: width, height: height}
	c.Resize()
	return c
}

// Resize picks up the screen's current size in cells.
func (c *Canvas) Resize() {
	c.cols, c.rows = c.screen.Size()
	if c.cols < 1 {
		c.cols = 1
	}
	if c.rows < 1 {
		c.rows = 1
	}
}

// Size returns the logical size.
func (c *Canvas) Size() (width, height int) {
	return c.width, c.height
}

// Fill paints every cell with the given background.
func (c *Canvas) Fill(clr color.Color) {
	c.screen.Fill(' ', tcell.StyleDefault.Background(tcell.FromImageColor(clr)))
}

// Clear blanks the screen.
func (c *Canvas) Clear() {
	c.screen.Clear()
}

// CellWidth is the logical width of one cell.
func (c *Canvas) CellWidth() float64 {
	return float64(c.width) / float64(c.cols)
}

// CellHeight is the logical height of one cell.
func (c *Canvas) CellHeight() float64 {
	return float64(c.height) / float64(c.rows)
}

// ToCell maps a logical point to the cell containing it.
func (c *Canvas) ToCell(x, y float64) (col, row int) {
	return int(math.Floor(x / c.CellWidth())), int(math.Floor(y / c.CellHeight()))
}

// ToLogical maps a cell to the logical point at its center.
func (c *Canvas) ToLogical(col, row int) (x, y float64) {
	return (float64(col) + 0.5) * c.CellWidth(), (float64(row) + 0.5) * c.CellHeight()
}

func (c *Canvas) inside(col, row int) bool {
	return col >= 0 && col < c.cols && row >= 0 && row < c.rows
}

// background returns the background already painted at a cell.
func (c *Canvas) background(col, row int) tcell.Color {
	_, _, style, _ := c.screen.GetContent(col, row)
	_, bg, _ := style.Decompose()
	return bg
}

func (c *Canvas) set(col, row int, r rune, style tcell.Style) {
	if c.inside(col, row) {
		c.screen.SetContent(col, row, r, nil, style)
	}
}

// cellSpan returns the cells covered by a logical rectangle.
func (c *Canvas) cellSpan(x, y, w, h float64) (col0, row0, col1, row1 int) {
	col0, row0 = c.ToCell(x, y)
	col1 = int(math.Ceil((x+w)/c.CellWidth())) - 1
	row1 = int(math.Ceil((y+h)/c.CellHeight())) - 1
	return col0, row0, max(col0, col1), max(row0, row1)
}

// Renderer implements render.Renderer on a Canvas.
type Renderer struct{}

// NewRenderer creates a terminal renderer.
func NewRenderer() *Renderer {
	return &Renderer{}
}

func canvas(dst render.Image) *Canvas {
	return dst.(*Canvas)
}

// FillRect paints the background of every cell the rectangle covers.
func (r *Renderer) FillRect(dst render.Image, x, y, width, height float32, clr color.Color) {
	c := canvas(dst)
	style := tcell.StyleDefault.Background(tcell.FromImageColor(clr))
	col0, row0, col1, row1 := c.cellSpan(float64(x), float64(y), float64(width), float64(height))
	for row := row0; row <= row1; row++ {
		for col := col0; col <= col1; col++ {
			c.set(col, row, ' ', style)
		}
	}
}

// StrokeRect draws a box with line-drawing characters.
func (r *Renderer) StrokeRect(dst render.Image, x, y, width, height float32, strokeWidth float32, clr color.Color) {
	c := canvas(dst)
	fg := tcell.FromImageColor(clr)
	col0, row0, col1, row1 := c.cellSpan(float64(x), float64(y), float64(width), float64(height))

	put := func(col, row int, ch rune) {
		c.set(col, row, ch, tcell.StyleDefault.Foreground(fg).Background(c.background(col, row)))
	}
	for col := col0 + 1; col < col1; col++ {
		put(col, row0, tcell.RuneHLine)
		put(col, row1, tcell.RuneHLine)
	}
	for row := row0 + 1; row < row1; row++ {
		put(col0, row, tcell.RuneVLine)
		put(col1, row, tcell.RuneVLine)
	}
	put(col0, row0, tcell.RuneULCorner)
	put(col1, row0, tcell.RuneURCorner)
	put(col0, row1, tcell.RuneLLCorner)
	put(col1, row1, tcell.RuneLRCorner)
}

// FillCircle paints the cells whose centers fall inside the circle.
func (r *Renderer) FillCircle(dst render.Image, x, y, radius float32, clr color.Color) {
	c := canvas(dst)
	style := tcell.StyleDefault.Background(tcell.FromImageColor(clr))
	r.eachCellInRing(c, float64(x), float64(y), 0, float64(radius), func(col, row int) {
		c.set(col, row, ' ', style)
	})
}

// StrokeCircle marks the cells along the circle's edge.
func (r *Renderer) StrokeCircle(dst render.Image, x, y, radius float32, strokeWidth float32, clr color.Color) {
	c := canvas(dst)
	fg := tcell.FromImageColor(clr)
	inner := float64(radius) - math.Max(c.CellWidth(), c.CellHeight())
	r.eachCellInRing(c, float64(x), float64(y), inner, float64(radius), func(col, row int) {
		c.set(col, row, '·', tcell.StyleDefault.Foreground(fg).Background(c.background(col, row)))
	})
}

func (r *Renderer) eachCellInRing(c *Canvas, cx, cy, inner, outer float64, fn func(col, row int)) {
	col0, row0, col1, row1 := c.cellSpan(cx-outer, cy-outer, 2*outer, 2*outer)
	for row := row0; row <= row1; row++ {
		for col := col0; col <= col1; col++ {
			px, py := c.ToLogical(col, row)
			d := math.Hypot(px-cx, py-cy)
			if d <= outer && d >= inner {
				fn(col, row)
			}
		}
	}
}

// DrawText writes text starting at the cell containing (x, y), keeping the
// background already painted there. Scale is ignored.
func (r *Renderer) DrawText(dst render.Image, text string, x, y int, clr color.Color, scale float64) {
	c := canvas(dst)
	fg := tcell.FromImageColor(clr)
	col, row := c.ToCell(float64(x), float64(y))
	for _, ch := range text {
		c.set(col, row, ch, tcell.StyleDefault.Foreground(fg).Background(c.background(col, row)))
		col += max(1, runewidth.RuneWidth(ch))
	}
}

// MeasureText returns the logical size of text, one cell per column.
func (r *Renderer) MeasureText(text string, scale float64) (width, height int) {
	return runewidth.StringWidth(text) * 8, 16
}

// DrawGlyph writes the symbol in the center cell and its label underneath
// when the token is tall enough.
func (r *Renderer) DrawGlyph(dst render.Image, glyph rune, label string, cx, cy, size float64) {
	c := canvas(dst)
	col, row := c.ToCell(cx, cy)
	w := max(1, runewidth.RuneWidth(glyph))
	col -= w / 2
	c.set(col, row, glyph, tcell.StyleDefault.Background(c.background(col, row)))

	if label == "" || size < 2*c.CellHeight() {
		return
	}
	lw := runewidth.StringWidth(label)
	start := col + w/2 - lw/2
	for _, ch := range label {
		c.set(start, row+1, ch, tcell.StyleDefault.Foreground(tcell.ColorWhite).Background(c.background(start, row+1)))
		start += max(1, runewidth.RuneWidth(ch))
	}
}
