package main

import (
	"log"
	"time"
)

// Game is the session manager: it accepts connections, binds slots, routes
// intents into the world, and fans out full-state broadcasts. Together with
// the timers it is the only writer of the world, and every mutation happens
// under world.mu as one mutate-then-broadcast unit.
type Game struct {
	cfg   Config
	world *World
	conns *ConnManager

	// Outstanding match timers, manipulated under world.mu.
	clockTimer   *time.Timer
	spawnTimer   *time.Timer
	despawnTimer *time.Timer
}

// NewGame creates a game with an empty world.
func NewGame(cfg Config) *Game {
	return &Game{
		cfg:   cfg,
		world: NewWorld(),
		conns: NewConnManager(),
	}
}

// HandleTransport runs one client session: capacity check, slot binding,
// accept handshake, then the blocking read loop. Call from the per-client
// goroutine of either listener.
func (g *Game) HandleTransport(tr transport) {
	w := g.world
	w.mu.Lock()
	slot := w.AddPlayer()
	if slot == 0 {
		w.mu.Unlock()
		rejectTransport(tr, "Game is full")
		return
	}

	// The first player to join a fresh arena populates the map so everyone
	// in the lobby sees the same layout before the match starts.
	if !w.Started && len(w.Obstacles) == 0 {
		if err := w.GenerateMap(); err != nil {
			w.RemovePlayer(slot)
			w.mu.Unlock()
			log.Printf("map generation failed: %v", err)
			rejectTransport(tr, "Server failed to prepare the arena")
			return
		}
	}
	snap := w.Snapshot()
	w.mu.Unlock()

	conn := NewConn(tr)
	conn.Slot = slot
	log.Printf("player %d connected (%s)", slot, conn.ID)
	_ = conn.Send(AcceptedMsg{Type: MsgAccepted, PlayerID: slot, Snapshot: snap})
	g.conns.Add(conn)
	g.Broadcast()

	conn.ReadLoop(g.handleMessage, g.handleDisconnect)
}

// rejectTransport sends a rejection frame and closes the raw transport
// without ever registering a connection.
func rejectTransport(tr transport, reason string) {
	payload, err := EncodeMessage(RejectedMsg{Type: MsgRejected, Message: reason})
	if err == nil {
		_ = tr.WriteFrame(payload)
	}
	tr.Close()
	log.Printf("connection rejected: %s", reason)
}

// handleMessage dispatches one decoded intent. A message claiming a slot
// other than the connection's own is dropped — clients cannot act for each
// other.
func (g *Game) handleMessage(c *Conn, msg ClientMessage) {
	switch msg.Type {
	case MsgMove:
		if msg.PlayerID != c.Slot {
			log.Printf("player %d tried to move player %d, dropped", c.Slot, msg.PlayerID)
			return
		}
		g.Move(c.Slot, msg.Direction)

	case MsgStartGame:
		if c.Slot != 1 {
			log.Printf("player %d tried to start the match, only slot 1 may", c.Slot)
			return
		}
		g.StartMatch()

	case MsgClickTarget:
		if msg.PlayerID != 0 && msg.PlayerID != c.Slot {
			log.Printf("player %d clicked for player %d, dropped", c.Slot, msg.PlayerID)
			return
		}
		g.ClickTarget(c.Slot)

	default:
		log.Printf("unknown message type %q from player %d", msg.Type, c.Slot)
	}
}

// handleDisconnect removes the player and, when the arena empties mid-match,
// shuts the match down so no timer keeps mutating a dead game.
func (g *Game) handleDisconnect(c *Conn) {
	g.conns.Remove(c.ID)
	w := g.world
	w.mu.Lock()
	w.RemovePlayer(c.Slot)
	log.Printf("player %d disconnected (%s)", c.Slot, c.ID)
	if len(w.Players) == 0 && w.Started {
		w.Started = false
		w.Bonus = BonusTarget{}
		w.generation++
		g.stopTimersLocked()
		log.Printf("last player left, match stopped")
	}
	g.broadcastLocked()
	w.mu.Unlock()
}

// Move resolves a movement intent and broadcasts the result. Even a fully
// reverted move broadcasts once; clients use it as their refresh.
func (g *Game) Move(slot int, direction string) {
	w := g.world
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.ResolveMove(slot, direction, g.cfg) {
		g.broadcastLocked()
	}
}

// StartMatch resets every player to its corner, regenerates the map, starts
// the clock, and schedules the first bonus target. A generation failure
// aborts the start and leaves the match stopped.
func (g *Game) StartMatch() {
	w := g.world
	w.mu.Lock()
	defer w.mu.Unlock()

	for _, p := range w.Players {
		start := StartingPositions[p.ID-1]
		p.X = start.X
		p.Y = start.Y
		p.Score = 0
		p.BoostUntil = 0
		p.PenaltyUntil = 0
		p.HasObject = false
	}
	w.centerSharedObject()
	if err := w.GenerateMap(); err != nil {
		log.Printf("match start aborted: %v", err)
		return
	}
	w.TimeRemaining = g.cfg.GameDurationSec
	w.Started = true
	w.Winner = nil
	w.Bonus = BonusTarget{}
	w.generation++
	g.stopTimersLocked()

	gen := w.generation
	g.armClock(gen)
	g.scheduleBonusSpawn(gen)
	log.Printf("match started, %d players, %d seconds", len(w.Players), w.TimeRemaining)
	g.broadcastLocked()
}

// ClickTarget counts one click on the active bonus target. The click that
// reaches the threshold awards the bonus, despawns the target, and
// schedules the next appearance.
func (g *Game) ClickTarget(slot int) {
	w := g.world
	w.mu.Lock()
	defer w.mu.Unlock()
	if !w.Started || !w.Bonus.Active {
		return
	}
	if time.Now().UnixMilli() > w.Bonus.ExpiresAt {
		return
	}
	p, ok := w.Players[slot]
	if !ok {
		return
	}

	w.Bonus.Clicks[slot]++
	if w.Bonus.Clicks[slot] >= w.Bonus.ClicksRequired {
		p.Score += g.cfg.BonusPoints
		w.Bonus = BonusTarget{}
		if g.despawnTimer != nil {
			g.despawnTimer.Stop()
			g.despawnTimer = nil
		}
		g.scheduleBonusSpawn(w.generation)
		log.Printf("player %d collected bonus target, score %d", slot, p.Score)
	}
	g.broadcastLocked()
}

// Broadcast publishes the current snapshot to every connection.
func (g *Game) Broadcast() {
	w := g.world
	w.mu.Lock()
	g.broadcastLocked()
	w.mu.Unlock()
}

// broadcastLocked encodes the snapshot once and enqueues it on every
// connection's send queue. Enqueueing never blocks, so holding the lock
// here keeps snapshots ordered per connection without a stalled client
// stalling the world. Caller must hold world.mu.
func (g *Game) broadcastLocked() {
	snap := g.world.Snapshot()
	payload, err := EncodeMessage(StateMsg{Type: MsgStateUpdate, Snapshot: snap})
	if err != nil {
		log.Printf("encode snapshot: %v", err)
		return
	}
	for _, c := range g.conns.Snapshot() {
		c.SendFrame(payload)
	}
}
