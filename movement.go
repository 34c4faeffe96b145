package main

import (
	"log"
	"math/rand"
	"time"
)

// boxesOverlap tests two axis-aligned squares.
func boxesOverlap(x1, y1, size1, x2, y2, size2 float64) bool {
	return x1 < x2+size2 && x1+size1 > x2 && y1 < y2+size2 && y1+size1 > y2
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// ResolveMove applies one move intent. Returns true when the world changed
// enough to warrant a broadcast — which is every processed intent, even a
// fully reverted one; clients rely on the refresh. Returns false only when
// the match is not running, the player is gone, or the direction is bogus.
// Caller must hold w.mu.
func (w *World) ResolveMove(slot int, direction string, cfg Config) bool {
	if !w.Started {
		return false
	}
	p, ok := w.Players[slot]
	if !ok {
		return false
	}

	var dx, dy float64
	switch direction {
	case DirUp:
		dy = -1
	case DirDown:
		dy = 1
	case DirLeft:
		dx = -1
	case DirRight:
		dx = 1
	default:
		log.Printf("invalid direction %q from player %d", direction, slot)
		return false
	}

	now := time.Now().UnixMilli()
	speed := p.Speed
	if p.BoostUntil > now {
		speed += SpeedBoost
	}
	if p.PenaltyUntil > now {
		speed -= SpeedPenalty
		if speed < MinSpeed {
			speed = MinSpeed
		}
	}

	newX := clamp(p.X+dx*speed, 0, ArenaSize-PlayerSize)
	newY := clamp(p.Y+dy*speed, 0, ArenaSize-PlayerSize)

	// All-or-nothing move: the first overlap reverts the whole candidate,
	// obstacles first, then other players at their current positions.
	for _, o := range w.Obstacles {
		if boxesOverlap(newX, newY, PlayerSize, o.X, o.Y, o.Size) {
			newX, newY = p.X, p.Y
			break
		}
	}
	for _, otherSlot := range w.slotsAscending() {
		other := w.Players[otherSlot]
		if other.ID == slot {
			continue
		}
		if boxesOverlap(newX, newY, PlayerSize, other.X, other.Y, PlayerSize) {
			newX, newY = p.X, p.Y
			break
		}
	}

	// Pickups are tested at the final position, reverted or not.
	for i := range w.Powerups {
		pu := &w.Powerups[i]
		if !pu.Active || !boxesOverlap(newX, newY, PlayerSize, pu.X, pu.Y, PowerupSize) {
			continue
		}
		pu.Active = false
		switch pu.Kind {
		case PowerupSpeed:
			p.BoostUntil = now + cfg.BoostDurationMS
		case PowerupSlow:
			p.PenaltyUntil = now + cfg.PenaltyDurationMS
		}
		log.Printf("player %d collected %s powerup", slot, pu.Kind)
	}

	obj := &w.SharedObject
	if !obj.IsHeld && boxesOverlap(newX, newY, PlayerSize, obj.X, obj.Y, ObjectSize) {
		p.Score++
		w.relocateSharedObject()
		log.Printf("player %d collected shared object, score %d", slot, p.Score)
	}

	p.X = newX
	p.Y = newY
	return true
}

// relocateSharedObject rejection-samples a new position clear of obstacles
// and active power-ups. If the cap is exhausted the object stays put; the
// match keeps running. Caller must hold w.mu.
func (w *World) relocateSharedObject() {
	for attempt := 0; attempt < PlacementMaxAttempts; attempt++ {
		x := rand.Float64() * (ArenaSize - ObjectSize)
		y := rand.Float64() * (ArenaSize - ObjectSize)
		if w.objectSpotBlocked(x, y) {
			continue
		}
		w.SharedObject.X = x
		w.SharedObject.Y = y
		return
	}
	log.Printf("no clear spot for shared object after %d attempts, leaving in place", PlacementMaxAttempts)
}

func (w *World) objectSpotBlocked(x, y float64) bool {
	for _, o := range w.Obstacles {
		if boxesOverlap(x, y, ObjectSize, o.X, o.Y, o.Size) {
			return true
		}
	}
	for _, pu := range w.Powerups {
		if pu.Active && boxesOverlap(x, y, ObjectSize, pu.X, pu.Y, PowerupSize) {
			return true
		}
	}
	return false
}
