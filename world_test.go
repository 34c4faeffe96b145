package main

import (
	"testing"
)

func TestAddPlayerAssignsLowestFreeSlot(t *testing.T) {
	w := NewWorld()
	for want := 1; want <= MaxPlayers; want++ {
		if got := w.AddPlayer(); got != want {
			t.Fatalf("slot = %d, want %d", got, want)
		}
	}
	if got := w.AddPlayer(); got != 0 {
		t.Fatalf("full arena returned slot %d, want 0", got)
	}

	w.RemovePlayer(2)
	if got := w.AddPlayer(); got != 2 {
		t.Fatalf("freed slot reassignment = %d, want 2", got)
	}
}

func TestAddPlayerStartsAtCorner(t *testing.T) {
	w := NewWorld()
	slot := w.AddPlayer()
	p := w.Players[slot]
	start := StartingPositions[slot-1]
	if p.X != start.X || p.Y != start.Y || p.Color != start.Color {
		t.Fatalf("player %d at (%v,%v) color %s, want (%v,%v) %s",
			slot, p.X, p.Y, p.Color, start.X, start.Y, start.Color)
	}
	if p.Speed != BaseSpeed || p.Score != 0 {
		t.Fatalf("player %d speed=%v score=%d, want speed=%v score=0", slot, p.Speed, p.Score, BaseSpeed)
	}
}

func TestWinnerTieGoesToLowestSlot(t *testing.T) {
	w := NewWorld()
	w.AddPlayer()
	w.AddPlayer()
	w.AddPlayer()
	w.Players[2].Score = 7
	w.Players[3].Score = 7

	winner := w.winner()
	if winner == nil || *winner != 2 {
		t.Fatalf("winner = %v, want 2", winner)
	}

	w.Players[3].Score = 8
	winner = w.winner()
	if winner == nil || *winner != 3 {
		t.Fatalf("winner = %v, want 3", winner)
	}
}

func TestWinnerEmptyWorld(t *testing.T) {
	w := NewWorld()
	if winner := w.winner(); winner != nil {
		t.Fatalf("winner = %v, want nil", winner)
	}
}

func TestSnapshotIsDeepCopy(t *testing.T) {
	w := NewWorld()
	w.AddPlayer()
	w.Obstacles = []Obstacle{{X: 100, Y: 100, Size: ObstacleSize}}
	w.Powerups = []Powerup{{X: 200, Y: 200, Kind: PowerupSpeed, Active: true}}
	w.Bonus = BonusTarget{
		Active:         true,
		ClicksRequired: BonusClicksRequired,
		Clicks:         map[int]int{1: 3},
	}

	snap := w.Snapshot()

	w.Players[1].X = 999
	w.Players[1].Score = 42
	w.Bonus.Clicks[1] = 9
	w.Powerups[0].Active = false

	if snap.Players[0].X == 999 || snap.Players[0].Score == 42 {
		t.Fatal("snapshot shares player state with the world")
	}
	if snap.BonusTarget.ClicksByPlayer[1] != 3 {
		t.Fatalf("snapshot click map mutated: got %d, want 3", snap.BonusTarget.ClicksByPlayer[1])
	}
	if !snap.Powerups[0].Active {
		t.Fatal("snapshot shares powerup state with the world")
	}
}

func TestSnapshotPlayersAscendingOrder(t *testing.T) {
	w := NewWorld()
	for i := 0; i < MaxPlayers; i++ {
		w.AddPlayer()
	}
	w.RemovePlayer(1)
	w.RemovePlayer(3)

	snap := w.Snapshot()
	if len(snap.Players) != 2 || snap.Players[0].ID != 2 || snap.Players[1].ID != 4 {
		t.Fatalf("snapshot players = %+v, want slots [2 4]", snap.Players)
	}
}
