package main

import (
	"errors"
	"sync"
)

var (
	ErrInvalidInput     = errors.New("invalid input")
	ErrCapacityExceeded = errors.New("room is full")
	ErrInvalidMovement  = errors.New("invalid movement")
)

// Registry owns the room-id to room mapping. Rooms are created on
// first join and deleted with their last player; an empty room never
// outlives the step that emptied it.
type Registry struct {
	mu       sync.RWMutex
	rooms    map[string]*Room
	accounts *AccountStore
}

// NewRegistry creates an empty registry. accounts may be nil.
func NewRegistry(accounts *AccountStore) *Registry {
	return &Registry{
		rooms:    make(map[string]*Room),
		accounts: accounts,
	}
}

// CreateOrGetRoom returns the room for id, creating it if absent.
// Idempotent.
func (reg *Registry) CreateOrGetRoom(id string) *Room {
	reg.mu.Lock()
	defer reg.mu.Unlock()
	return reg.createOrGetLocked(id)
}

func (reg *Registry) createOrGetLocked(id string) *Room {
	if room, ok := reg.rooms[id]; ok {
		return room
	}
	room := newRoom(id, reg.accounts)
	reg.rooms[id] = room
	return room
}

// Room returns an existing room, or nil
func (reg *Registry) Room(id string) *Room {
	reg.mu.RLock()
	defer reg.mu.RUnlock()
	return reg.rooms[id]
}

// RoomCount returns the number of live rooms
func (reg *Registry) RoomCount() int {
	reg.mu.RLock()
	defer reg.mu.RUnlock()
	return len(reg.rooms)
}

// AddPlayer validates the join input and inserts the player, creating
// the room on first join. A rejected join leaves the registry
// unchanged.
func (reg *Registry) AddPlayer(roomID, playerID, name string, authID int64, client Broadcaster) (*Player, error) {
	if !ValidName(name) || !ValidName(roomID) {
		return nil, ErrInvalidInput
	}

	reg.mu.Lock()
	defer reg.mu.Unlock()

	room := reg.createOrGetLocked(roomID)
	p, err := room.addPlayer(playerID, name, authID, client)
	if err != nil {
		return nil, err
	}
	return p, nil
}

// RemovePlayer takes a player out of their room and announces the
// departure; the last player's removal deletes the room and its
// projectiles in the same step. Unknown rooms or players are a no-op,
// so disconnect cleanup is idempotent.
func (reg *Registry) RemovePlayer(roomID, playerID string) {
	reg.mu.Lock()
	defer reg.mu.Unlock()

	room, ok := reg.rooms[roomID]
	if !ok {
		return
	}

	room.mu.Lock()
	if _, ok := room.players[playerID]; !ok {
		room.mu.Unlock()
		return
	}
	room.broadcastExcept(playerID, MsgPlayerLeft, PlayerLeftMsg{ID: playerID})
	room.removeLocked(playerID)
	empty := len(room.players) == 0
	room.mu.Unlock()

	if empty {
		delete(reg.rooms, roomID)
	}
}

// Tick advances every room's simulation by one step. Rooms emptied by
// lethal hits are deleted afterwards; lock order is always registry
// before room.
func (reg *Registry) Tick() {
	reg.mu.RLock()
	rooms := make([]*Room, 0, len(reg.rooms))
	for _, room := range reg.rooms {
		rooms = append(rooms, room)
	}
	reg.mu.RUnlock()

	for _, room := range rooms {
		if room.step() {
			reg.removeRoomIfEmpty(room.ID)
		}
	}
}

func (reg *Registry) removeRoomIfEmpty(id string) {
	reg.mu.Lock()
	defer reg.mu.Unlock()

	room, ok := reg.rooms[id]
	if !ok {
		return
	}
	room.mu.Lock()
	empty := len(room.players) == 0
	room.mu.Unlock()
	if empty {
		delete(reg.rooms, id)
	}
}
