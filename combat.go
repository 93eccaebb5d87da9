package main

const (
	KillScore = 100 // credited to the shooter for a lethal hit
	HitScore  = 10  // credited for a non-lethal hit
)

// resolveHitLocked finds the first player the projectile overlaps and
// applies damage. The shooter is never a target. At most one target is
// hit per projectile per tick; among simultaneously eligible targets
// the choice follows map iteration order. Returns true if the
// projectile was consumed.
func (r *Room) resolveHitLocked(proj *Projectile) bool {
	for id, target := range r.players {
		if id == proj.ShooterID {
			continue
		}
		if !WithinRadius(proj.Pos, target.Pos, HitRadius) {
			continue
		}
		r.applyDamageLocked(proj.ShooterID, target, ProjectileDamage)
		return true
	}
	return false
}

// applyDamageLocked mutates hp and score and emits the resulting
// events. A player whose hp reaches zero is removed in the same step;
// mutations are never rolled back. The shooter may have already left
// the room, in which case no credit is given.
func (r *Room) applyDamageLocked(shooterID string, target *Player, amount int) {
	shooter := r.players[shooterID]
	target.HP -= amount

	if target.HP <= 0 {
		r.broadcast(MsgPlayerDead, PlayerDeadMsg{ID: target.ID, By: shooterID})
		if shooter != nil {
			shooter.Score += KillScore
			if r.accounts != nil {
				r.accounts.AddKill(shooter.authID)
			}
		}
		r.removeLocked(target.ID)
		return
	}

	r.broadcast(MsgPlayerDamaged, PlayerDamagedMsg{ID: target.ID, HP: target.HP})
	if shooter != nil {
		shooter.Score += HitScore
	}
	r.broadcastLeaderboardLocked()
}

// checkRoleContactLocked runs the role-contact rule after an accepted
// move: a red player within the hit radius of a blue player catches
// them. Only the first qualifying pair is reported per move; the round
// ends for the caught player but the room persists.
func (r *Room) checkRoleContactLocked() {
	if !r.started {
		return
	}
	for _, red := range r.players {
		if red.Role != RoleRed {
			continue
		}
		for _, blue := range r.players {
			if blue.Role != RoleBlue {
				continue
			}
			if !WithinRadius(red.Pos, blue.Pos, HitRadius) {
				continue
			}
			red.Score++
			r.sendTo(blue.ID, MsgGameOver, GameOverMsg{By: red.ID})
			if r.accounts != nil {
				r.accounts.AddWin(red.authID)
			}
			r.broadcastLeaderboardLocked()
			return
		}
	}
}
