package main

// Both transports carry the same JSON objects. TCP wraps each one in a
// 4-byte big-endian length frame (see codec.go); WebSocket sends them as
// text messages.
//
// Message types (value of "type" field):
//   Client → Server:
//     "move"         {"type":"move","playerId":1,"direction":"up"}
//     "start_game"   {"type":"start_game"}                (slot 1 only)
//     "click_target" {"type":"click_target","playerId":1}
//   Server → Client:
//     "connection_accepted" {"type":"connection_accepted","playerId":1,"worldSnapshot":{...}}
//     "connection_rejected" {"type":"connection_rejected","message":"Game is full"}
//     "game_state_update"   {"type":"game_state_update","worldSnapshot":{...}}

// Message type identifiers
const (
	MsgMove        = "move"
	MsgStartGame   = "start_game"
	MsgClickTarget = "click_target"
	MsgAccepted    = "connection_accepted"
	MsgRejected    = "connection_rejected"
	MsgStateUpdate = "game_state_update"
)

// Movement directions accepted in a move intent
const (
	DirUp    = "up"
	DirDown  = "down"
	DirLeft  = "left"
	DirRight = "right"
)

// ClientMessage is the incoming message from a client. PlayerID must match
// the slot bound to the connection; mismatches are dropped.
type ClientMessage struct {
	Type      string `json:"type"`
	PlayerID  int    `json:"playerId,omitempty"`
	Direction string `json:"direction,omitempty"`
}

// AcceptedMsg is sent once to a player on successful connect.
type AcceptedMsg struct {
	Type     string        `json:"type"`
	PlayerID int           `json:"playerId"`
	Snapshot WorldSnapshot `json:"worldSnapshot"`
}

// RejectedMsg is sent when the arena is full, then the socket is closed.
type RejectedMsg struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

// StateMsg wraps the full world snapshot published after every mutation.
type StateMsg struct {
	Type     string        `json:"type"`
	Snapshot WorldSnapshot `json:"worldSnapshot"`
}

// PlayerDTO is one player's entry in the snapshot.
// {"id":1,"x":10,"y":10,"speed":5,"score":0,"color":"red","powerups":{"speedBoost":0,"speedPenalty":0}}
type PlayerDTO struct {
	ID       int        `json:"id"`
	X        float64    `json:"x"`
	Y        float64    `json:"y"`
	Speed    float64    `json:"speed"`
	Score    int        `json:"score"`
	Color    string     `json:"color"`
	Powerups EffectsDTO `json:"powerups"`
}

// EffectsDTO carries the active-effect expiry timestamps (unix ms, 0 = none).
type EffectsDTO struct {
	SpeedBoost   int64 `json:"speedBoost"`
	SpeedPenalty int64 `json:"speedPenalty"`
}

// SharedObjectDTO is the shared pickup. isHeld/holderId stay on the wire
// for the clients but pickup is instantaneous, so they are never set.
type SharedObjectDTO struct {
	X        float64 `json:"x"`
	Y        float64 `json:"y"`
	IsHeld   bool    `json:"isHeld"`
	HolderID *int    `json:"holderId"`
}

// ObstacleDTO is a static square. type is always "ice"; the clients key
// their sprite off it.
type ObstacleDTO struct {
	X    float64 `json:"x"`
	Y    float64 `json:"y"`
	Size float64 `json:"size"`
	Type string  `json:"type"`
}

// PowerupDTO: type is "speed" or "slow"; collected power-ups stay in the
// list with active=false.
type PowerupDTO struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Type   string  `json:"type"`
	Active bool    `json:"active"`
}

// BonusTargetDTO is the click-to-collect target. clicksByPlayer maps slot to
// accumulated clicks; expiresAt is unix ms.
type BonusTargetDTO struct {
	Active         bool        `json:"active"`
	X              float64     `json:"x"`
	Y              float64     `json:"y"`
	ClicksRequired int         `json:"clicksRequired"`
	ClicksByPlayer map[int]int `json:"clicksByPlayer"`
	ExpiresAt      int64       `json:"expiresAt"`
}

// WorldSnapshot is the full world state. Every broadcast carries a complete
// snapshot; clients replace their state wholesale.
type WorldSnapshot struct {
	Players       []PlayerDTO     `json:"players"`
	SharedObject  SharedObjectDTO `json:"sharedObject"`
	Obstacles     []ObstacleDTO   `json:"obstacles"`
	Powerups      []PowerupDTO    `json:"powerups"`
	BonusTarget   BonusTargetDTO  `json:"bonusTarget"`
	TimeRemaining int             `json:"timeRemaining"`
	Started       bool            `json:"started"`
	Winner        *int            `json:"winner"`
}
