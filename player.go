package main

const (
	ArenaWidth  = 800.0
	ArenaHeight = 600.0
	SpawnX      = 400.0
	SpawnY      = 300.0

	PlayerMaxHP = 100
	MoveCap     = 5.0 // max displacement per axis per move
	MaxNameLen  = 20  // applies to player names and room ids
)

// Role is a player's role in role-contact mode
type Role string

const (
	RoleNone Role = "none"
	RoleRed  Role = "red"
	RoleBlue Role = "blue"
)

// Player is the authoritative record for one connected player.
// ID is the connection identifier and is stable for the session.
type Player struct {
	ID    string
	Name  string
	Room  string
	HP    int
	Score int
	Pos   Vec2
	Role  Role

	// joinSeq orders players by insertion for stable leaderboard ties
	joinSeq int
	// authID links to an account, 0 for guests
	authID int64
}

// NewPlayer creates a player at the spawn point with full hp
func NewPlayer(id, name, room string, seq int, authID int64) *Player {
	return &Player{
		ID:      id,
		Name:    name,
		Room:    room,
		HP:      PlayerMaxHP,
		Pos:     Vec2{X: SpawnX, Y: SpawnY},
		Role:    RoleNone,
		joinSeq: seq,
		authID:  authID,
	}
}

// Reset restores hp and spawn position; score and role are kept
func (p *Player) Reset() {
	p.HP = PlayerMaxHP
	p.Pos = Vec2{X: SpawnX, Y: SpawnY}
}

// Snapshot converts to protocol state
func (p *Player) Snapshot() PlayerSnapshot {
	return PlayerSnapshot{
		ID:       p.ID,
		Name:     p.Name,
		Position: p.Pos,
		HP:       p.HP,
		Score:    p.Score,
		Role:     p.Role,
	}
}

// ValidName reports whether s is acceptable as a player name or room id
func ValidName(s string) bool {
	return len(s) > 0 && len(s) <= MaxNameLen
}

// ValidMove reports whether a step from prev to next stays inside the
// arena and within the per-axis displacement cap. Violations are
// rejected, never clamped.
func ValidMove(prev, next Vec2) bool {
	if next.X < 0 || next.X > ArenaWidth || next.Y < 0 || next.Y > ArenaHeight {
		return false
	}
	dx := next.X - prev.X
	dy := next.Y - prev.Y
	return dx <= MoveCap && dx >= -MoveCap && dy <= MoveCap && dy >= -MoveCap
}
