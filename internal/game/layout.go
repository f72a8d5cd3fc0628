package game

import (
	"fmt"

	"chosenoffset.com/hungrypumpkin/internal/config"
	"chosenoffset.com/hungrypumpkin/internal/geom"
	"chosenoffset.com/hungrypumpkin/internal/scene"
)

// SlotCount is the number of food slots on screen.
const SlotCount = 4

// Container names, queryable as "#name".
const (
	NameDoor        = "door"
	NamePumpkinArea = "pumpkin-area"
	NameActiveArea  = "active-food-area"
	NameFoodArea    = "food-area"
)

// Token styles.
const (
	StylePumpkin = "pumpkin"
	StyleFood    = "food"
)

// PumpkinGlyph is the jack-o-lantern the player feeds.
const PumpkinGlyph = '\U0001F383'

// Layout holds the handles of the fixed containers.
type Layout struct {
	Door        scene.Handle
	PumpkinArea scene.Handle
	ActiveArea  scene.Handle
	FoodArea    scene.Handle
	Slots       [SlotCount]scene.Handle
}

// SlotRect returns the rectangle of slot i inside the food area.
func SlotRect(cfg config.LayoutConfig, i int) geom.Rect {
	area := cfg.FoodArea
	w := (area.W - float64(SlotCount-1)*cfg.SlotGap) / SlotCount
	return geom.Rect{
		X: area.X + float64(i)*(w+cfg.SlotGap),
		Y: area.Y,
		W: w,
		H: area.H,
	}
}

// BuildLayout adds the fixed containers to sc and registers token sizes.
func BuildLayout(sc *scene.Scene, cfg config.LayoutConfig) *Layout {
	sc.SetTokenSize(StylePumpkin, cfg.PumpkinSize)
	sc.SetTokenSize(StyleFood, cfg.FoodSize)

	l := &Layout{
		Door:        sc.AddContainer(NameDoor, toRect(cfg.Door)),
		PumpkinArea: sc.AddContainer(NamePumpkinArea, toRect(cfg.PumpkinArea), scene.ClassDropTarget),
		ActiveArea:  sc.AddContainer(NameActiveArea, toRect(cfg.ActiveArea)),
		FoodArea:    sc.AddContainer(NameFoodArea, toRect(cfg.FoodArea)),
	}
	for i := range l.Slots {
		h := sc.AddContainer(fmt.Sprintf("food-%d", i), SlotRect(cfg, i), scene.ClassFoodSlot, scene.ClassDropTarget)
		sc.SetSlot(h, i)
		l.Slots[i] = h
	}
	return l
}

func toRect(r config.RectConfig) geom.Rect {
	return geom.Rect{X: r.X, Y: r.Y, W: r.W, H: r.H}
}
