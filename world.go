package main

import (
	"sync"
)

// Player is one connected avatar. Mutated only by the move resolver and by
// match-start reset, always under the world lock.
type Player struct {
	ID    int
	X     float64
	Y     float64
	Speed float64
	Score int
	Color string

	// Active-effect expiries, unix ms. 0 = no effect.
	BoostUntil   int64
	PenaltyUntil int64

	HasObject bool
}

// SharedObject is the single shared pickup. IsHeld/HolderID are carried for
// the clients but never set: pickup is instantaneous score-then-relocate.
type SharedObject struct {
	X        float64
	Y        float64
	IsHeld   bool
	HolderID *int
}

// Obstacle is a static square, immutable for the match.
type Obstacle struct {
	X    float64
	Y    float64
	Size float64
}

// Powerup kinds
const (
	PowerupSpeed = "speed"
	PowerupSlow  = "slow"
)

// Powerup stays in the world after collection with Active=false; nothing
// regenerates mid-match.
type Powerup struct {
	X      float64
	Y      float64
	Kind   string
	Active bool
}

// BonusTarget is the ephemeral click-to-collect event. Clicks maps slot to
// accumulated clicks and is cleared on every spawn and despawn.
type BonusTarget struct {
	Active         bool
	X              float64
	Y              float64
	ClicksRequired int
	Clicks         map[int]int
	ExpiresAt      int64
}

// World holds all game state. The mutex serializes every mutation — moves,
// clock ticks, bonus transitions, connects and disconnects — so each
// broadcast sees one complete, non-interleaved state.
type World struct {
	mu sync.Mutex

	Players      map[int]*Player
	SharedObject SharedObject
	Obstacles    []Obstacle
	Powerups     []Powerup
	Bonus        BonusTarget

	TimeRemaining int
	Started       bool
	Winner        *int

	// generation increments on every match start and end. Timers capture it
	// when armed and no-op if it moved, so a stale firing cannot touch a
	// newer match.
	generation uint64
}

// NewWorld initializes an empty world with the shared object centered.
func NewWorld() *World {
	w := &World{
		Players:       make(map[int]*Player),
		TimeRemaining: GameDurationSec,
	}
	w.centerSharedObject()
	return w
}

func (w *World) centerSharedObject() {
	w.SharedObject = SharedObject{
		X: ArenaSize/2 - ObjectSize/2,
		Y: ArenaSize/2 - ObjectSize/2,
	}
}

// freeSlot returns the lowest unused slot in 1..MaxPlayers, or 0 when full.
// Caller must hold mu.
func (w *World) freeSlot() int {
	for slot := 1; slot <= MaxPlayers; slot++ {
		if _, taken := w.Players[slot]; !taken {
			return slot
		}
	}
	return 0
}

// AddPlayer creates a player in the lowest free slot at its starting corner.
// Returns 0 when the arena is full. Caller must hold mu.
func (w *World) AddPlayer() int {
	slot := w.freeSlot()
	if slot == 0 {
		return 0
	}
	start := StartingPositions[slot-1]
	w.Players[slot] = &Player{
		ID:    slot,
		X:     start.X,
		Y:     start.Y,
		Speed: BaseSpeed,
		Color: start.Color,
	}
	return slot
}

// RemovePlayer removes a player (caller must hold mu)
func (w *World) RemovePlayer(slot int) {
	delete(w.Players, slot)
}

// slotsAscending returns the occupied slots in ascending order.
// Caller must hold mu.
func (w *World) slotsAscending() []int {
	slots := make([]int, 0, len(w.Players))
	for slot := 1; slot <= MaxPlayers; slot++ {
		if _, ok := w.Players[slot]; ok {
			slots = append(slots, slot)
		}
	}
	return slots
}

// winner picks the player with the strictly highest score. Scanning in
// ascending slot order makes ties deterministic: the lowest slot wins.
// Caller must hold mu.
func (w *World) winner() *int {
	highest := -1
	var winnerID *int
	for _, slot := range w.slotsAscending() {
		p := w.Players[slot]
		if p.Score > highest {
			highest = p.Score
			id := p.ID
			winnerID = &id
		}
	}
	return winnerID
}

// Snapshot deep-copies the world into its wire shape. The copy means a
// connection serializing or sending it can never observe a later mutation.
// Caller must hold mu.
func (w *World) Snapshot() WorldSnapshot {
	players := make([]PlayerDTO, 0, len(w.Players))
	for _, slot := range w.slotsAscending() {
		p := w.Players[slot]
		players = append(players, PlayerDTO{
			ID:    p.ID,
			X:     p.X,
			Y:     p.Y,
			Speed: p.Speed,
			Score: p.Score,
			Color: p.Color,
			Powerups: EffectsDTO{
				SpeedBoost:   p.BoostUntil,
				SpeedPenalty: p.PenaltyUntil,
			},
		})
	}

	obstacles := make([]ObstacleDTO, len(w.Obstacles))
	for i, o := range w.Obstacles {
		obstacles[i] = ObstacleDTO{X: o.X, Y: o.Y, Size: o.Size, Type: "ice"}
	}

	powerups := make([]PowerupDTO, len(w.Powerups))
	for i, p := range w.Powerups {
		powerups[i] = PowerupDTO{X: p.X, Y: p.Y, Type: p.Kind, Active: p.Active}
	}

	clicks := make(map[int]int, len(w.Bonus.Clicks))
	for slot, n := range w.Bonus.Clicks {
		clicks[slot] = n
	}

	var holder *int
	if w.SharedObject.HolderID != nil {
		id := *w.SharedObject.HolderID
		holder = &id
	}
	var winner *int
	if w.Winner != nil {
		id := *w.Winner
		winner = &id
	}

	return WorldSnapshot{
		Players: players,
		SharedObject: SharedObjectDTO{
			X:        w.SharedObject.X,
			Y:        w.SharedObject.Y,
			IsHeld:   w.SharedObject.IsHeld,
			HolderID: holder,
		},
		Obstacles: obstacles,
		Powerups:  powerups,
		BonusTarget: BonusTargetDTO{
			Active:         w.Bonus.Active,
			X:              w.Bonus.X,
			Y:              w.Bonus.Y,
			ClicksRequired: w.Bonus.ClicksRequired,
			ClicksByPlayer: clicks,
			ExpiresAt:      w.Bonus.ExpiresAt,
		},
		TimeRemaining: w.TimeRemaining,
		Started:       w.Started,
		Winner:        winner,
	}
}
