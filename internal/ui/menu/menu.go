package menu

import (
	"image/color"

	"chosenoffset.com/hungrypumpkin/internal/render"
)

// GameState represents the current state of the game.
type GameState int

const (
	StateStartScreen GameState = iota
	StatePlaying
	StateFinished
)

// StartScreen is shown before the first turn. Starting needs a user gesture so
// the audio device may be opened.
type StartScreen struct {
	title          string
	renderer       render.Renderer
	input          render.InputManager
	screenWidth    int
	screenHeight   int
	lastMouseClick bool
}

// NewStartScreen creates a new start screen.
func NewStartScreen(title string, r render.Renderer, input render.InputManager, width, height int) *StartScreen {
	return &StartScreen{
		title:        title,
		renderer:     r,
		input:        input,
		screenWidth:  width,
		screenHeight: height,
	}
}

// Update updates the menu state based on user input.
// Returns true once the player asks to start.
func (m *StartScreen) Update() bool {
	mouseX, mouseY := m.input.GetCursorPosition()
	mousePressed := m.input.IsMouseButtonPressed(render.MouseButtonLeft)

	// Detect mouse click (button pressed this frame but not last frame)
	mouseClicked := mousePressed && !m.lastMouseClick
	m.lastMouseClick = mousePressed

	if mouseClicked && pointInRect(mouseX, mouseY, m.startButton()) {
		return true
	}
	return m.input.IsKeyJustPressed(render.KeySpace) || m.input.IsKeyJustPressed(render.KeyEnter)
}

// Draw renders the menu to the screen.
func (m *StartScreen) Draw(screen render.Image) {
	// Clear screen with dark background
	screen.Fill(color.RGBA{30, 20, 30, 255})

	titleColor := color.RGBA{255, 160, 40, 255}
	tw, _ := m.renderer.MeasureText(m.title, 2.0)
	m.renderer.DrawText(screen, m.title, (m.screenWidth-tw)/2, m.screenHeight/4, titleColor, 2.0)
	m.renderer.DrawGlyph(screen, '\U0001F383', "pumpkin", float64(m.screenWidth)/2, float64(m.screenHeight)/4+110, 96)

	btn := m.startButton()
	m.renderer.FillRect(screen, float32(btn.x), float32(btn.y), float32(btn.w), float32(btn.h), color.RGBA{60, 120, 60, 255})
	m.renderer.StrokeRect(screen, float32(btn.x), float32(btn.y), float32(btn.w), float32(btn.h), 2, color.RGBA{140, 220, 140, 255})
	label := "Start"
	lw, lh := m.renderer.MeasureText(label, 1.2)
	m.renderer.DrawText(screen, label, btn.x+(btn.w-lw)/2, btn.y+(btn.h-lh)/2, color.RGBA{255, 255, 255, 255}, 1.2)

	// Draw instructions
	instructionY := m.screenHeight - 70
	instructionColor := color.RGBA{150, 150, 150, 255}
	m.renderer.DrawText(screen, "The pumpkin will ask for a food. Click the matching one.", 20, instructionY, instructionColor, 0.8)
	m.renderer.DrawText(screen, "Click Start or press SPACE to begin, ESC to quit.", 20, instructionY+24, instructionColor, 0.8)
}

func (m *StartScreen) startButton() rect {
	w, h := 200, 50
	return rect{x: (m.screenWidth - w) / 2, y: m.screenHeight/2 + 80, w: w, h: h}
}

// Helper types and functions

type rect struct {
	x, y, w, h int
}

func pointInRect(px, py int, r rect) bool {
	return px >= r.x && px <= r.x+r.w && py >= r.y && py <= r.y+r.h
}
