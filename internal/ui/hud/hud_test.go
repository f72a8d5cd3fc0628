package hud

import (
	"slices"
	"testing"

	"chosenoffset.com/hungrypumpkin/internal/render/rendertest"
)

func TestDrawShowsScoreAndCaption(t *testing.T) {
	rec := &rendertest.Recorder{}
	h := New(nil, rec, 960, 640)
	h.SetScore(3)
	h.SetTurnNumber(5)
	h.SetCaption("Give me the apple")

	h.Draw(rendertest.NewImage(960, 640))
	texts := rec.Texts()

	for _, want := range []string{"Score: 3", "Turn: 5", "Give me the apple"} {
		if !slices.Contains(texts, want) {
			t.Errorf("Expected %q to be drawn, got %q", want, texts)
		}
	}
}

func TestEmptyCaptionIsHidden(t *testing.T) {
	rec := &rendertest.Recorder{}
	h := New(&HUDConfig{}, rec, 960, 640)
	h.SetCaption("Nom nom")
	h.SetCaption("")

	h.Draw(rendertest.NewImage(960, 640))
	if ops := rec.Ops(); len(ops) != 0 {
		t.Errorf("Expected nothing drawn, got %v", ops)
	}
}

func TestCaptionStaysOnScreen(t *testing.T) {
	rec := &rendertest.Recorder{}
	h := New(&HUDConfig{}, rec, 400, 300)
	h.SetCaptionAnchor(390, 20)
	h.SetCaption("A rather long line of speech")

	h.Draw(rendertest.NewImage(400, 300))
	for _, op := range rec.Ops() {
		if op.Kind == "rect" && op.X+op.W > 400 {
			t.Errorf("Caption bubble runs off screen: %+v", op)
		}
	}
}

func TestMessagesExpire(t *testing.T) {
	h := New(nil, &rendertest.Recorder{}, 960, 640)
	h.AddMessage("short", 1)
	h.AddMessage("long", 3)

	h.Update(1.5)
	msgs := h.Messages()
	if len(msgs) != 1 || msgs[0].Text != "long" {
		t.Errorf("Expected only the long message to remain, got %v", msgs)
	}
}

func TestMessagesAreCapped(t *testing.T) {
	h := New(nil, &rendertest.Recorder{}, 960, 640)
	for _, m := range []string{"a", "b", "c", "d", "e"} {
		h.AddMessage(m, 5)
	}
	msgs := h.Messages()
	if len(msgs) != 4 || msgs[0].Text != "b" {
		t.Errorf("Expected the oldest message dropped, got %v", msgs)
	}
}

func TestCalculatePosition(t *testing.T) {
	tests := []struct {
		position string
		x, y     int
	}{
		{"top-left", 10, 10},
		{"top-right", 960 - 160 - 10, 10},
		{"bottom-left", 10, 640 - 56 - 10},
		{"bottom-right", 960 - 160 - 10, 640 - 56 - 10},
	}

	for _, tt := range tests {
		h := New(&HUDConfig{ShowScore: true, ShowTurn: true, Position: tt.position}, &rendertest.Recorder{}, 960, 640)
		h.Draw(rendertest.NewImage(960, 640))
		if x, y := h.calculatePosition(); x != tt.x || y != tt.y {
			t.Errorf("%s: expected (%d,%d), got (%d,%d)", tt.position, tt.x, tt.y, x, y)
		}
	}
}
