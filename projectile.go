package main

import (
	"fmt"
	"time"
)

const (
	ProjectileSpeed  = 10.0 // units per tick
	HitRadius        = 20.0
	ProjectileDamage = 10
)

// Projectile is a server-simulated shot owned by exactly one room.
// It lives until it lands a hit or leaves the arena.
type Projectile struct {
	ID        string
	ShooterID string
	Pos       Vec2
	Dir       Vec2 // unit vector, normalized by the client
}

// NewProjectile spawns a projectile at the shooter's current position
func NewProjectile(shooter *Player, dir Vec2) *Projectile {
	return &Projectile{
		ID:        fmt.Sprintf("%s-%d", shooter.ID, time.Now().UnixNano()),
		ShooterID: shooter.ID,
		Pos:       shooter.Pos,
		Dir:       dir,
	}
}

// Advance moves the projectile one tick along its direction
func (p *Projectile) Advance() {
	p.Pos.X += p.Dir.X * ProjectileSpeed
	p.Pos.Y += p.Dir.Y * ProjectileSpeed
}

// InBounds reports whether the projectile is still inside the arena
func (p *Projectile) InBounds() bool {
	return p.Pos.X >= 0 && p.Pos.X <= ArenaWidth && p.Pos.Y >= 0 && p.Pos.Y <= ArenaHeight
}

// State converts to protocol state
func (p *Projectile) State() BulletState {
	return BulletState{
		ID:       p.ID,
		Shooter:  p.ShooterID,
		Position: p.Pos,
	}
}
