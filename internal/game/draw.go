package game

import (
	"fmt"
	"image/color"

	"chosenoffset.com/hungrypumpkin/internal/geom"
	"chosenoffset.com/hungrypumpkin/internal/render"
	"chosenoffset.com/hungrypumpkin/internal/scene"
)

var (
	backgroundColor = color.RGBA{34, 28, 40, 255}
	doorColor       = color.RGBA{90, 60, 35, 255}
	doorFrameColor  = color.RGBA{140, 100, 60, 255}
	areaColor       = color.RGBA{70, 60, 80, 255}
	foodAreaColor   = color.RGBA{45, 40, 55, 255}
	slotColor       = color.RGBA{60, 55, 75, 255}
	slotHoverColor  = color.RGBA{250, 200, 90, 255}
	slotFrameColor  = color.RGBA{100, 95, 120, 255}
)

// drawScene draws containers, then tokens, from a snapshot of the scene.
func (m *Manager) drawScene(screen render.Image) {
	screen.Fill(backgroundColor)

	hover := -1
	if m.Coordinator.WaitingForChoice() {
		x, y := m.InputMgr.GetCursorPosition()
		if slot, ok := m.Scene.SlotAt(geom.Point{X: float64(x), Y: float64(y)}); ok {
			hover = slot
		}
	}

	for _, v := range m.Scene.Snapshot() {
		switch v.Kind {
		case scene.KindContainer:
			m.drawContainer(screen, v, v.Slot >= 0 && v.Slot == hover)
		case scene.KindToken:
			c := v.Bounds.Center()
			m.Renderer.DrawGlyph(screen, v.Glyph, m.Coordinator.Label(v.Glyph), c.X, c.Y, v.Bounds.W)
		}
	}
}

func (m *Manager) drawContainer(screen render.Image, v scene.View, hover bool) {
	r := v.Bounds
	x, y, w, h := float32(r.X), float32(r.Y), float32(r.W), float32(r.H)

	switch {
	case v.HasClass(scene.ClassFoodSlot):
		m.Renderer.FillRect(screen, x+4, y+4, w-8, h-8, slotColor)
		frame := slotFrameColor
		if hover {
			frame = slotHoverColor
		}
		m.Renderer.StrokeRect(screen, x+4, y+4, w-8, h-8, 2, frame)
	case v.Name == NameDoor:
		m.Renderer.FillRect(screen, x, y, w, h, doorColor)
		m.Renderer.StrokeRect(screen, x, y, w, h, 4, doorFrameColor)
		m.Renderer.FillCircle(screen, x+w-16, y+h/2, 5, doorFrameColor)
	case v.Name == NameFoodArea:
		m.Renderer.FillRect(screen, x, y, w, h, foodAreaColor)
	case v.Name == NamePumpkinArea, v.Name == NameActiveArea:
		m.Renderer.StrokeRect(screen, x, y, w, h, 1, areaColor)
	}
}

func (m *Manager) drawFinished(screen render.Image) {
	msg := fmt.Sprintf("You fed the pumpkin %d times!", m.Coordinator.Score())
	w, h := m.Renderer.MeasureText(msg, 1.5)
	x := (m.ScreenWidth - w) / 2
	y := m.ScreenHeight/2 - h
	m.Renderer.FillRect(screen, float32(x-20), float32(y-20), float32(w+40), float32(h+70), color.RGBA{20, 20, 30, 220})
	m.Renderer.DrawText(screen, msg, x, y, color.RGBA{255, 200, 80, 255}, 1.5)

	hint := "Click or press SPACE to quit"
	hw, _ := m.Renderer.MeasureText(hint, 0.8)
	m.Renderer.DrawText(screen, hint, (m.ScreenWidth-hw)/2, y+h+20, color.RGBA{180, 180, 180, 255}, 0.8)
}
