package main

import (
	"fmt"
	"math"
	"math/rand"
)

// Map generation runs once per match start (and once when the first player
// joins a fresh arena). Placement is rejection sampling with a hard attempt
// cap: a layout that cannot be satisfied aborts the match start instead of
// spinning forever.

// GenerateMap populates obstacles and power-ups. Caller must hold w.mu.
func (w *World) GenerateMap() error {
	obstacles, err := w.generateObstacles()
	if err != nil {
		return err
	}
	powerups, err := generatePowerups(obstacles, w.SharedObject)
	if err != nil {
		return err
	}
	w.Obstacles = obstacles
	w.Powerups = powerups
	return nil
}

// generateObstacles places NumObstacles fixed-size squares, each keeping a
// minimum distance from already-placed obstacles, current players, and the
// shared object. Caller must hold w.mu.
func (w *World) generateObstacles() ([]Obstacle, error) {
	obstacles := make([]Obstacle, 0, NumObstacles)
	for len(obstacles) < NumObstacles {
		placed := false
		for attempt := 0; attempt < PlacementMaxAttempts; attempt++ {
			x := rand.Float64() * (ArenaSize - PlayerSize*4)
			y := rand.Float64() * (ArenaSize - PlayerSize*4)
			if obstacleSpotBlocked(x, y, obstacles, w.Players, w.SharedObject) {
				continue
			}
			obstacles = append(obstacles, Obstacle{X: x, Y: y, Size: ObstacleSize})
			placed = true
			break
		}
		if !placed {
			return nil, fmt.Errorf("obstacle %d: no valid position after %d attempts",
				len(obstacles)+1, PlacementMaxAttempts)
		}
	}
	return obstacles, nil
}

func obstacleSpotBlocked(x, y float64, placed []Obstacle, players map[int]*Player, obj SharedObject) bool {
	for _, o := range placed {
		if math.Hypot(o.X-x, o.Y-y) < ObstacleSpacing {
			return true
		}
	}
	for _, p := range players {
		if math.Hypot(p.X-x, p.Y-y) < ObstaclePlayerClear {
			return true
		}
	}
	return math.Hypot(obj.X-x, obj.Y-y) < ObstacleObjectClear
}

// generatePowerups places NumPowerups pickups, half speed and half slow,
// with a wider clearance than obstacles use.
func generatePowerups(obstacles []Obstacle, obj SharedObject) ([]Powerup, error) {
	powerups := make([]Powerup, 0, NumPowerups)
	kinds := []string{PowerupSpeed, PowerupSlow}
	for _, kind := range kinds {
		for i := 0; i < NumPowerups/2; i++ {
			placed := false
			for attempt := 0; attempt < PlacementMaxAttempts; attempt++ {
				x := rand.Float64() * (ArenaSize - PowerupSize)
				y := rand.Float64() * (ArenaSize - PowerupSize)
				if powerupSpotBlocked(x, y, powerups, obstacles, obj) {
					continue
				}
				powerups = append(powerups, Powerup{X: x, Y: y, Kind: kind, Active: true})
				placed = true
				break
			}
			if !placed {
				return nil, fmt.Errorf("%s powerup %d: no valid position after %d attempts",
					kind, i+1, PlacementMaxAttempts)
			}
		}
	}
	return powerups, nil
}

func powerupSpotBlocked(x, y float64, placed []Powerup, obstacles []Obstacle, obj SharedObject) bool {
	for _, p := range placed {
		if math.Hypot(p.X-x, p.Y-y) < PowerupSpacing {
			return true
		}
	}
	for _, o := range obstacles {
		if boxesOverlap(x, y, PowerupSize, o.X, o.Y, o.Size) {
			return true
		}
	}
	return math.Hypot(obj.X-x, obj.Y-y) < PowerupObjectClear
}

// placeBonusTarget samples a spot clear of obstacles, active power-ups, and
// the shared object. Caller must hold w.mu.
func (w *World) placeBonusTarget() (float64, float64, error) {
	for attempt := 0; attempt < PlacementMaxAttempts; attempt++ {
		x := rand.Float64() * (ArenaSize - ObjectSize)
		y := rand.Float64() * (ArenaSize - ObjectSize)
		if w.objectSpotBlocked(x, y) {
			continue
		}
		if boxesOverlap(x, y, ObjectSize, w.SharedObject.X, w.SharedObject.Y, ObjectSize) {
			continue
		}
		return x, y, nil
	}
	return 0, 0, fmt.Errorf("bonus target: no valid position after %d attempts", PlacementMaxAttempts)
}
