// Package rendertest provides a recording renderer and scripted input for
// tests of code drawn through the render interfaces.
package rendertest

import (
	"image/color"
	"sync"
	"unicode/utf8"

	"chosenoffset.com/hungrypumpkin/internal/render"
)

// Op is one recorded draw call.
type Op struct {
	Kind  string // "rect", "stroke-rect", "circle", "stroke-circle", "text", "glyph"
	Text  string
	Glyph rune
	X, Y  float64
	W, H  float64
}

// Recorder implements render.Renderer by recording every call.
type Recorder struct {
	mu  sync.Mutex
	ops []Op
}

// Ops returns the recorded calls.
func (r *Recorder) Ops() []Op {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Op(nil), r.ops...)
}

// Texts returns the strings passed to DrawText, in order.
func (r *Recorder) Texts() []string {
	var out []string
	for _, op := range r.Ops() {
		if op.Kind == "text" {
			out = append(out, op.Text)
		}
	}
	return out
}

// Reset forgets the recorded calls.
func (r *Recorder) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.ops = nil
}

func (r *Recorder) record(op Op) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.ops = append(r.ops, op)
}

func (r *Recorder) FillRect(dst render.Image, x, y, width, height float32, clr color.Color) {
	r.record(Op{Kind: "rect", X: float64(x), Y: float64(y), W: float64(width), H: float64(height)})
}

func (r *Recorder) StrokeRect(dst render.Image, x, y, width, height float32, strokeWidth float32, clr color.Color) {
	r.record(Op{Kind: "stroke-rect", X: float64(x), Y: float64(y), W: float64(width), H: float64(height)})
}

func (r *Recorder) FillCircle(dst render.Image, x, y, radius float32, clr color.Color) {
	r.record(Op{Kind: "circle", X: float64(x), Y: float64(y), W: float64(2 * radius), H: float64(2 * radius)})
}

func (r *Recorder) StrokeCircle(dst render.Image, x, y, radius float32, strokeWidth float32, clr color.Color) {
	r.record(Op{Kind: "stroke-circle", X: float64(x), Y: float64(y), W: float64(2 * radius), H: float64(2 * radius)})
}

func (r *Recorder) DrawText(dst render.Image, text string, x, y int, clr color.Color, scale float64) {
	r.record(Op{Kind: "text", Text: text, X: float64(x), Y: float64(y)})
}

// MeasureText assumes 8x16 pixel characters at scale 1.
func (r *Recorder) MeasureText(text string, scale float64) (width, height int) {
	if scale <= 0 {
		scale = 1
	}
	return int(float64(utf8.RuneCountInString(text)) * 8 * scale), int(16 * scale)
}

func (r *Recorder) DrawGlyph(dst render.Image, glyph rune, label string, cx, cy, size float64) {
	r.record(Op{Kind: "glyph", Glyph: glyph, Text: label, X: cx, Y: cy, W: size, H: size})
}

// Image is an in-memory render.Image.
type Image struct {
	Width, Height int
	Filled        color.Color
}

// NewImage creates an image of the given size.
func NewImage(width, height int) *Image {
	return &Image{Width: width, Height: height}
}

func (i *Image) Size() (width, height int) { return i.Width, i.Height }
func (i *Image) Fill(clr color.Color) { i.Filled = clr }
func (i *Image) Clear() { i.Filled = nil }

// Input is a scripted render.InputManager. Pressed state is set directly;
// "just pressed" state lasts until the next call to Frame.
type Input struct {
	mu          sync.Mutex
	x, y        int
	keys        map[render.Key]bool
	justKeys    map[render.Key]bool
	buttons     map[render.MouseButton]bool
	justButtons map[render.MouseButton]bool
}

// NewInput creates input with nothing pressed.
func NewInput() *Input {
	return &Input{
		keys:        make(map[render.Key]bool),
		justKeys:    make(map[render.Key]bool),
		buttons:     make(map[render.MouseButton]bool),
		justButtons: make(map[render.MouseButton]bool),
	}
}

// Click moves the cursor to (x, y) and presses the left button this frame.
func (in *Input) Click(x, y int) {
	in.mu.Lock()
	defer in.mu.Unlock()
	in.x, in.y = x, y
	in.buttons[render.MouseButtonLeft] = true
	in.justButtons[render.MouseButtonLeft] = true
}

// Press presses key this frame.
func (in *Input) Press(key render.Key) {
	in.mu.Lock()
	defer in.mu.Unlock()
	in.keys[key] = true
	in.justKeys[key] = true
}

// Frame releases everything, ending the current frame.
func (in *Input) Frame() {
	in.mu.Lock()
	defer in.mu.Unlock()
	clear(in.keys)
	clear(in.justKeys)
	clear(in.buttons)
	clear(in.justButtons)
}

func (in *Input) IsKeyPressed(key render.Key) bool {
	in.mu.Lock()
	defer in.mu.Unlock()
	return in.keys[key]
}

func (in *Input) IsKeyJustPressed(key render.Key) bool {
	in.mu.Lock()
	defer in.mu.Unlock()
	return in.justKeys[key]
}

func (in *Input) GetCursorPosition() (x, y int) {
	in.mu.Lock()
	defer in.mu.Unlock()
	return in.x, in.y
}

func (in *Input) IsMouseButtonPressed(button render.MouseButton) bool {
	in.mu.Lock()
	defer in.mu.Unlock()
	return in.buttons[button]
}

func (in *Input) IsMouseButtonJustPressed(button render.MouseButton) bool {
	in.mu.Lock()
	defer in.mu.Unlock()
	return in.justButtons[button]
}
