package main

import "encoding/json"

// Client -> Server message types
const (
	MsgJoinRoom    = "join_room"
	MsgMove        = "move"
	MsgFire        = "fire"
	MsgResetPlayer = "reset_player"
	MsgRegister    = "register"
	MsgLogin       = "login"
	MsgAuth        = "auth"
	MsgProfile     = "profile"
)

// Server -> Client message types
const (
	MsgPlayerJoined    = "player_joined"
	MsgPlayerLeft      = "player_left"
	MsgPlayerMove      = "player_move"
	MsgPlayerPositions = "player_positions"
	MsgBulletFired     = "bullet_fired"
	MsgBulletPositions = "bullet_positions"
	MsgPlayerDamaged   = "player_damaged"
	MsgPlayerDead      = "player_dead"
	MsgPlayerReset     = "player_reset"
	MsgLeaderboard     = "leaderboard_update"
	MsgRolesAssigned   = "roles_assigned"
	MsgGameStart       = "game_start"
	MsgGameStop        = "game_stop"
	MsgGameOver        = "game_over"
	MsgError           = "error"
	MsgAuthOK          = "auth_ok"
	MsgProfileData     = "profile_data"
)

// Error codes carried by the error notification
const (
	CodeInvalidInput     = "invalid_input"
	CodeCapacityExceeded = "capacity_exceeded"
	CodeInvalidMovement  = "invalid_movement"
)

// Envelope wraps all outgoing messages with a type field
type Envelope struct {
	T    string      `json:"t"`
	Data interface{} `json:"d,omitempty"`
}

// InEnvelope is used for incoming messages — json.RawMessage avoids double-unmarshal
type InEnvelope struct {
	T string          `json:"t"`
	D json.RawMessage `json:"d,omitempty"`
}

// Vec2 is a 2D point or direction in arena coordinates
type Vec2 struct {
	X float64 `json:"x" msgpack:"x"`
	Y float64 `json:"y" msgpack:"y"`
}

// JoinRoomMsg is sent when a player wants to join a room
type JoinRoomMsg struct {
	Name string `json:"name"`
	Room string `json:"room"`
}

// MoveMsg reports a client-side position update
type MoveMsg struct {
	Position Vec2   `json:"position"`
	Room     string `json:"room"`
}

// FireMsg spawns a projectile; direction is pre-normalized by the client
type FireMsg struct {
	Direction Vec2   `json:"direction"`
	Room      string `json:"room"`
}

// ResetMsg restores the caller's hp and spawn position
type ResetMsg struct {
	Room string `json:"room"`
}

// PlayerJoinedMsg is broadcast to room peers on join
type PlayerJoinedMsg struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// PlayerLeftMsg is broadcast when a player leaves or disconnects
type PlayerLeftMsg struct {
	ID string `json:"id"`
}

// PlayerMoveMsg relays an accepted move to room peers
type PlayerMoveMsg struct {
	ID       string `json:"id"`
	Position Vec2   `json:"position"`
}

// PlayerSnapshot is one player's full state in a room snapshot
type PlayerSnapshot struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Position Vec2   `json:"position"`
	HP       int    `json:"hp"`
	Score    int    `json:"score"`
	Role     Role   `json:"role"`
}

// PlayerPositionsMsg is the full room snapshot sent to a joining player
type PlayerPositionsMsg struct {
	You     string           `json:"you"`
	Players []PlayerSnapshot `json:"players"`
}

// BulletFiredMsg is broadcast when a projectile spawns
type BulletFiredMsg struct {
	ID        string `json:"id"`
	Shooter   string `json:"shooter"`
	Position  Vec2   `json:"position"`
	Direction Vec2   `json:"direction"`
}

// BulletState is one projectile in the per-tick snapshot
type BulletState struct {
	ID       string `json:"id" msgpack:"id"`
	Shooter  string `json:"shooter" msgpack:"s"`
	Position Vec2   `json:"position" msgpack:"p"`
}

// BulletPositionsMsg is the per-tick projectile snapshot, sent as a
// msgpack-encoded binary frame
type BulletPositionsMsg struct {
	Room    string        `json:"room" msgpack:"r"`
	Bullets []BulletState `json:"bullets" msgpack:"b"`
}

// PlayerDamagedMsg announces a non-lethal hit
type PlayerDamagedMsg struct {
	ID string `json:"id"`
	HP int    `json:"hp"`
}

// PlayerDeadMsg announces a lethal hit; the victim is already removed
type PlayerDeadMsg struct {
	ID string `json:"id"`
	By string `json:"by"`
}

// PlayerResetMsg announces a player reset
type PlayerResetMsg struct {
	ID string `json:"id"`
}

// LeaderboardEntry is one row of the per-room ranking
type LeaderboardEntry struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Score int    `json:"score"`
}

// RolesAssignedMsg announces the red/blue assignment for a round
type RolesAssignedMsg struct {
	Red  string `json:"redPlayer"`
	Blue string `json:"bluePlayer"`
}

// GameStartMsg announces that a room reached the starting population
type GameStartMsg struct {
	Room string `json:"room"`
}

// GameStopMsg announces that a room dropped below the starting population
type GameStopMsg struct {
	Room string `json:"room"`
}

// GameOverMsg is the terminal notice sent to a caught blue player
type GameOverMsg struct {
	By string `json:"by"`
}

// ErrorMsg reports a rejected action to the originating connection only
type ErrorMsg struct {
	Code string `json:"code"`
	Msg  string `json:"msg"`
}

// RegisterMsg creates an account
type RegisterMsg struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginMsg authenticates by password
type LoginMsg struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// AuthMsg authenticates by a previously issued token
type AuthMsg struct {
	Token string `json:"token"`
}

// AuthOKMsg confirms authentication
type AuthOKMsg struct {
	Token    string `json:"token"`
	Username string `json:"username"`
	PlayerID int64  `json:"pid"`
}

// ProfileDataMsg reports lifetime tallies for the authenticated account
type ProfileDataMsg struct {
	Username string `json:"username"`
	Kills    int    `json:"kills"`
	Wins     int    `json:"wins"`
}
