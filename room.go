package main

import "sync"

const (
	MaxPlayersPerRoom = 4
	MinPlayersToStart = 2
)

// Broadcaster is the transport handle game code uses to reach one
// client. Sends are fire-and-forget and never block.
type Broadcaster interface {
	SendJSON(msg interface{})
	SendBinary(data []byte)
}

// Room holds the authoritative state for one match instance: up to
// MaxPlayersPerRoom players and their in-flight projectiles. All state
// behind r.mu; the event dispatcher and the tick loop both mutate it.
type Room struct {
	ID string

	mu          sync.Mutex
	players     map[string]*Player
	projectiles []*Projectile
	clients     map[string]Broadcaster
	started     bool
	joinSeq     int

	accounts *AccountStore // nil when account tracking is off
}

func newRoom(id string, accounts *AccountStore) *Room {
	return &Room{
		ID:       id,
		players:  make(map[string]*Player),
		clients:  make(map[string]Broadcaster),
		accounts: accounts,
	}
}

// PlayerCount returns the number of players in the room
func (r *Room) PlayerCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.players)
}

// HasPlayer reports whether id is currently a member of the room
func (r *Room) HasPlayer(id string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.players[id]
	return ok
}

// Started reports whether the room has an active game
func (r *Room) Started() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.started
}

// addPlayer inserts a new player, announces the join, and starts the
// game once the room reaches the minimum population.
func (r *Room) addPlayer(id, name string, authID int64, client Broadcaster) (*Player, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if len(r.players) >= MaxPlayersPerRoom {
		return nil, ErrCapacityExceeded
	}

	r.joinSeq++
	p := NewPlayer(id, name, r.ID, r.joinSeq, authID)
	r.players[id] = p
	r.clients[id] = client

	r.broadcastExcept(id, MsgPlayerJoined, PlayerJoinedMsg{ID: id, Name: name})
	client.SendJSON(Envelope{T: MsgPlayerPositions, Data: PlayerPositionsMsg{
		You:     id,
		Players: r.snapshotLocked(),
	}})
	r.broadcastLeaderboardLocked()

	if !r.started && len(r.players) >= MinPlayersToStart {
		r.startGameLocked()
	}
	return p, nil
}

// removeLocked takes a player out of the room and handles the game
// lifecycle fallout. The caller announces the departure (player_left
// or player_dead) before calling. Returns false if the player was
// already gone.
func (r *Room) removeLocked(id string) bool {
	if _, ok := r.players[id]; !ok {
		return false
	}
	delete(r.players, id)
	delete(r.clients, id)

	if r.started && len(r.players) < MinPlayersToStart {
		r.stopGameLocked()
	}
	if len(r.players) > 0 {
		r.broadcastLeaderboardLocked()
	}
	return true
}

// startGameLocked flips the room to started and assigns roles
func (r *Room) startGameLocked() {
	r.started = true
	red, blue := assignRoles(r.players)
	r.broadcast(MsgGameStart, GameStartMsg{Room: r.ID})
	r.broadcast(MsgRolesAssigned, RolesAssignedMsg{Red: red, Blue: blue})
}

// stopGameLocked ends the game; a later restart is a fresh start with
// fresh roles
func (r *Room) stopGameLocked() {
	r.started = false
	for _, p := range r.players {
		p.Role = RoleNone
	}
	r.broadcast(MsgGameStop, GameStopMsg{Room: r.ID})
}

// Move applies a client-reported position after bounds and step-cap
// validation. Unknown players are a no-op.
func (r *Room) Move(id string, pos Vec2) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	p, ok := r.players[id]
	if !ok {
		return nil
	}
	if !ValidMove(p.Pos, pos) {
		return ErrInvalidMovement
	}
	p.Pos = pos
	r.broadcast(MsgPlayerMove, PlayerMoveMsg{ID: id, Position: pos})
	r.checkRoleContactLocked()
	return nil
}

// Fire spawns a projectile at the shooter's position. The tick loop
// owns all subsequent motion. Unknown shooters are a no-op.
func (r *Room) Fire(id string, dir Vec2) {
	r.mu.Lock()
	defer r.mu.Unlock()

	p, ok := r.players[id]
	if !ok {
		return
	}
	proj := NewProjectile(p, dir)
	r.projectiles = append(r.projectiles, proj)
	r.broadcast(MsgBulletFired, BulletFiredMsg{
		ID:        proj.ID,
		Shooter:   id,
		Position:  proj.Pos,
		Direction: dir,
	})
}

// ResetPlayer restores the caller's hp and spawn position
func (r *Room) ResetPlayer(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	p, ok := r.players[id]
	if !ok {
		return
	}
	p.Reset()
	r.broadcast(MsgPlayerReset, PlayerResetMsg{ID: id})
	r.broadcastLeaderboardLocked()
}

// snapshotLocked returns every player's current state
func (r *Room) snapshotLocked() []PlayerSnapshot {
	snap := make([]PlayerSnapshot, 0, len(r.players))
	for _, p := range r.players {
		snap = append(snap, p.Snapshot())
	}
	return snap
}

// broadcast sends a message to every member of the room
func (r *Room) broadcast(t string, data interface{}) {
	for _, c := range r.clients {
		c.SendJSON(Envelope{T: t, Data: data})
	}
}

// broadcastExcept sends a message to every member but one
func (r *Room) broadcastExcept(skip, t string, data interface{}) {
	for id, c := range r.clients {
		if id == skip {
			continue
		}
		c.SendJSON(Envelope{T: t, Data: data})
	}
}

// sendTo sends a message to a single member, if still present
func (r *Room) sendTo(id, t string, data interface{}) {
	if c, ok := r.clients[id]; ok {
		c.SendJSON(Envelope{T: t, Data: data})
	}
}

func (r *Room) broadcastLeaderboardLocked() {
	r.broadcast(MsgLeaderboard, Leaderboard(r.players))
}
