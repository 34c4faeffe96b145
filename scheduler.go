package main

import (
	"log"
	"math/rand"
	"time"
)

// Two timelines run while a match is live: the one-second match clock and
// the bonus-target lifecycle (idle → scheduled → active → collected or
// expired → scheduled). Each timer callback captures the world generation
// at arm time and rechecks it under the lock, so a timer that outlives its
// match is a guaranteed no-op. Stopping a match bumps the generation and
// stops every outstanding timer.

// armClock schedules the next clock tick. Caller must hold world.mu.
func (g *Game) armClock(gen uint64) {
	g.clockTimer = time.AfterFunc(time.Duration(g.cfg.TickMS)*time.Millisecond, func() {
		g.clockTick(gen)
	})
}

func (g *Game) clockTick(gen uint64) {
	w := g.world
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.generation != gen || !w.Started {
		return
	}

	w.TimeRemaining--
	for _, p := range w.Players {
		if p.BoostUntil < 0 {
			p.BoostUntil = 0
		}
		if p.PenaltyUntil < 0 {
			p.PenaltyUntil = 0
		}
	}

	if w.TimeRemaining <= 0 {
		w.TimeRemaining = 0
		g.endMatchLocked()
		return
	}
	g.armClock(gen)
	g.broadcastLocked()
}

// scheduleBonusSpawn arms the next bonus-target appearance after a uniform
// random delay. Caller must hold world.mu.
func (g *Game) scheduleBonusSpawn(gen uint64) {
	delayMS := g.cfg.BonusMinDelayMS
	if spread := g.cfg.BonusMaxDelayMS - g.cfg.BonusMinDelayMS; spread > 0 {
		delayMS += rand.Intn(spread + 1)
	}
	g.spawnTimer = time.AfterFunc(time.Duration(delayMS)*time.Millisecond, func() {
		g.bonusSpawn(gen)
	})
}

func (g *Game) bonusSpawn(gen uint64) {
	w := g.world
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.generation != gen || !w.Started {
		return
	}

	x, y, err := w.placeBonusTarget()
	if err != nil {
		log.Printf("bonus spawn skipped: %v", err)
		g.scheduleBonusSpawn(gen)
		return
	}
	w.Bonus = BonusTarget{
		Active:         true,
		X:              x,
		Y:              y,
		ClicksRequired: g.cfg.BonusClicksRequired,
		Clicks:         make(map[int]int),
		ExpiresAt:      time.Now().UnixMilli() + int64(g.cfg.BonusVisibleMS),
	}
	g.despawnTimer = time.AfterFunc(time.Duration(g.cfg.BonusVisibleMS)*time.Millisecond, func() {
		g.bonusExpire(gen)
	})
	log.Printf("bonus target spawned at (%.0f, %.0f)", x, y)
	g.broadcastLocked()
}

func (g *Game) bonusExpire(gen uint64) {
	w := g.world
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.generation != gen || !w.Started || !w.Bonus.Active {
		return
	}

	w.Bonus.Active = false
	w.Bonus.Clicks = nil
	log.Printf("bonus target expired uncollected")
	g.broadcastLocked()
	g.scheduleBonusSpawn(gen)
}

// endMatchLocked finishes the match exactly once: picks the winner, clears
// the bonus target, and invalidates every outstanding timer. Caller must
// hold world.mu.
func (g *Game) endMatchLocked() {
	w := g.world
	w.Winner = w.winner()
	w.Started = false
	w.Bonus = BonusTarget{}
	w.generation++
	g.stopTimersLocked()
	if w.Winner != nil {
		log.Printf("match ended, winner: player %d", *w.Winner)
	} else {
		log.Printf("match ended with no players")
	}
	g.broadcastLocked()
}

// stopTimersLocked stops whatever timers are outstanding. The generation
// bump already neutralizes late firings; stopping just frees them early.
// Caller must hold world.mu.
func (g *Game) stopTimersLocked() {
	if g.clockTimer != nil {
		g.clockTimer.Stop()
		g.clockTimer = nil
	}
	if g.spawnTimer != nil {
		g.spawnTimer.Stop()
		g.spawnTimer = nil
	}
	if g.despawnTimer != nil {
		g.despawnTimer.Stop()
		g.despawnTimer = nil
	}
}
