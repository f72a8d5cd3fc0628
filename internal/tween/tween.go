// Package tween implements the step-limited interpolation used to move actors.
// There is exactly one law: each axis moves toward its target by at most a
// fixed step per tick and lands exactly on the target once within reach.
package tween

import (
	"math"

	"chosenoffset.com/hungrypumpkin/internal/geom"
)

// Adjust moves base toward base+delta by at most maxStep.
func Adjust(base, delta, maxStep float64) float64 {
	if math.Abs(delta) > maxStep {
		return base + maxStep*sign(delta)
	}
	return base + delta
}

// Step advances cur toward target on both axes independently.
// done is true when both deltas were already within maxStep, in which case
// next is exactly target.
func Step(cur, target geom.Point, maxStep float64) (next geom.Point, done bool) {
	dx := target.X - cur.X
	dy := target.Y - cur.Y
	if math.Abs(dx) <= maxStep && math.Abs(dy) <= maxStep {
		return target, true
	}
	return geom.Point{
		X: Adjust(cur.X, dx, maxStep),
		Y: Adjust(cur.Y, dy, maxStep),
	}, false
}

// ValidStep reports whether maxStep can drive an animation to completion:
// positive and finite. NaN never compares within reach, so it is rejected.
func ValidStep(maxStep float64) bool {
	return maxStep > 0 && !math.IsInf(maxStep, 0)
}

// Steps returns how many Adjust calls it takes to cover delta.
func Steps(delta, maxStep float64) int {
	if !ValidStep(maxStep) {
		return 0
	}
	return int(math.Ceil(math.Abs(delta) / maxStep))
}

func sign(v float64) float64 {
	if v < 0 {
		return -1
	}
	return 1
}
