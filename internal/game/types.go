package game

import (
	"chosenoffset.com/hungrypumpkin/internal/actor"
	"chosenoffset.com/hungrypumpkin/internal/catalog"
	"chosenoffset.com/hungrypumpkin/internal/scene"
)

// Phase is the step of the game loop the coordinator is in.
type Phase int

const (
	PhaseAwaitingStart Phase = iota
	PhasePromptingIntro
	PhasePopulatingSlots
	PhaseAwaitingChoice
	PhaseResolvingCorrect
	PhaseResolvingIncorrect
	PhaseFinished
)

func (p Phase) String() string {
	switch p {
	case PhaseAwaitingStart:
		return "awaiting start"
	case PhasePromptingIntro:
		return "intro"
	case PhasePopulatingSlots:
		return "populating slots"
	case PhaseAwaitingChoice:
		return "awaiting choice"
	case PhaseResolvingCorrect:
		return "correct choice"
	case PhaseResolvingIncorrect:
		return "incorrect choice"
	case PhaseFinished:
		return "finished"
	default:
		return "unknown"
	}
}

// Slot is one of the four food positions. Actor is set iff Food is.
type Slot struct {
	Food      *catalog.Food
	Actor     *actor.Actor
	Container scene.Handle
}

// Occupied reports whether the slot holds a food.
func (s Slot) Occupied() bool {
	return s.Food != nil
}

// State is a copy of the coordinator's game state.
type State struct {
	Slots [SlotCount]Slot
	Score int
	Turn  int
	Phase Phase
}
