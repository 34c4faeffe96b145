package main

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Game configuration constants
const (
	// Listen addresses — raw TCP for the desktop client, HTTP/WebSocket
	// for the browser client.
	DefaultTCPAddr  = ":5001"
	DefaultHTTPAddr = ":8765"

	// Arena — square canvas, (0,0) top-left. All bounding boxes are
	// axis-aligned squares.
	ArenaSize   = 700.0
	PlayerSize  = 30.0
	ObjectSize  = 20.0
	PowerupSize = 15.0

	// Match
	GameDurationSec = 120
	MaxPlayers      = 4

	// Movement — px per move intent
	BaseSpeed    = 5.0
	SpeedBoost   = 3.0
	SpeedPenalty = 2.0
	MinSpeed     = 2.0

	// Power-up effects
	BoostDurationMS   = 8000
	PenaltyDurationMS = 10000

	// Map generation
	NumObstacles = 18
	NumPowerups  = 4
	// ObstacleSize is the side of each obstacle square
	ObstacleSize = PlayerSize * 2
	// Minimum center-to-center clearances for rejection sampling
	ObstacleSpacing      = PlayerSize * 2.5
	ObstaclePlayerClear  = PlayerSize * 4
	ObstacleObjectClear  = ObjectSize * 3
	PowerupSpacing       = 150.0
	PowerupObjectClear   = ObjectSize * 5
	PlacementMaxAttempts = 1000

	// Bonus target
	BonusClicksRequired = 10
	BonusPoints         = 5
	BonusVisibleSec     = 6
	BonusMinDelaySec    = 5
	BonusMaxDelaySec    = 15
)

// StartPosition binds a slot to its corner and color. Indexed by slot-1.
type StartPosition struct {
	X     float64
	Y     float64
	Color string
}

// StartingPositions maps the four slots to their corners: slot 1 top-left,
// slot 2 bottom-right, slot 3 bottom-left, slot 4 top-right.
var StartingPositions = [MaxPlayers]StartPosition{
	{X: 10, Y: 10, Color: "red"},
	{X: ArenaSize - PlayerSize - 10, Y: ArenaSize - PlayerSize - 10, Color: "purple"},
	{X: 10, Y: ArenaSize - PlayerSize - 10, Color: "blue"},
	{X: ArenaSize - PlayerSize - 10, Y: 10, Color: "green"},
}

// Config carries the tunables the game consumes at startup. Defaults match
// the reference constants above; tests shrink the durations.
type Config struct {
	TCPAddr  string
	HTTPAddr string

	GameDurationSec int
	TickMS          int // match clock period

	BoostDurationMS   int64
	PenaltyDurationMS int64

	BonusClicksRequired int
	BonusPoints         int
	BonusVisibleMS      int
	BonusMinDelayMS     int
	BonusMaxDelayMS     int
}

// DefaultConfig returns the production tuning.
func DefaultConfig() Config {
	return Config{
		TCPAddr:             DefaultTCPAddr,
		HTTPAddr:            DefaultHTTPAddr,
		GameDurationSec:     GameDurationSec,
		TickMS:              1000,
		BoostDurationMS:     BoostDurationMS,
		PenaltyDurationMS:   PenaltyDurationMS,
		BonusClicksRequired: BonusClicksRequired,
		BonusPoints:         BonusPoints,
		BonusVisibleMS:      BonusVisibleSec * 1000,
		BonusMinDelayMS:     BonusMinDelaySec * 1000,
		BonusMaxDelayMS:     BonusMaxDelaySec * 1000,
	}
}

// LoadConfig reads overrides from the environment, honoring a .env file
// when one is present.
func LoadConfig() Config {
	if err := godotenv.Load(); err == nil {
		log.Printf("loaded environment from .env")
	}
	cfg := DefaultConfig()
	cfg.TCPAddr = getEnv("ARENA_TCP_ADDR", cfg.TCPAddr)
	cfg.HTTPAddr = getEnv("ARENA_HTTP_ADDR", cfg.HTTPAddr)
	cfg.GameDurationSec = getEnvInt("ARENA_GAME_DURATION_SEC", cfg.GameDurationSec)
	return cfg
}

// getEnv reads an environment variable and returns its value or a default value
func getEnv(key, defaultValue string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return defaultValue
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		log.Printf("invalid %s=%q, using default %d", key, v, defaultValue)
		return defaultValue
	}
	return n
}
