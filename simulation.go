package main

import (
	"log"
	"sync"
	"time"

	"github.com/vmihailenco/msgpack/v5"
)

// TickPeriod is the fixed simulation step, ~60 Hz
const TickPeriod = 16 * time.Millisecond

// Simulator drives all rooms' projectile simulation on a shared fixed
// tick, independent of any connection.
type Simulator struct {
	registry *Registry
	stop     chan struct{}
	once     sync.Once
}

// NewSimulator creates a simulator for the registry
func NewSimulator(registry *Registry) *Simulator {
	return &Simulator{
		registry: registry,
		stop:     make(chan struct{}),
	}
}

// Run ticks until Stop is called
func (s *Simulator) Run() {
	ticker := time.NewTicker(TickPeriod)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.registry.Tick()
		case <-s.stop:
			return
		}
	}
}

// Stop terminates the tick loop. Safe to call more than once.
func (s *Simulator) Stop() {
	s.once.Do(func() { close(s.stop) })
}

// step advances every projectile one tick, resolves hits, prunes
// out-of-bounds shots, and broadcasts the projectile snapshot.
// Returns true if the room emptied out.
func (r *Room) step() bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	alive := r.projectiles[:0]
	for _, proj := range r.projectiles {
		proj.Advance()
		if r.resolveHitLocked(proj) {
			continue // consumed on first hit
		}
		if !proj.InBounds() {
			continue
		}
		alive = append(alive, proj)
	}
	// drop trailing pointers so removed projectiles can be collected
	for i := len(alive); i < len(r.projectiles); i++ {
		r.projectiles[i] = nil
	}
	r.projectiles = alive

	r.broadcastBulletsLocked()
	return len(r.players) == 0
}

// broadcastBulletsLocked sends the per-tick projectile snapshot as a
// msgpack-encoded binary frame
func (r *Room) broadcastBulletsLocked() {
	snap := BulletPositionsMsg{
		Room:    r.ID,
		Bullets: make([]BulletState, 0, len(r.projectiles)),
	}
	for _, proj := range r.projectiles {
		snap.Bullets = append(snap.Bullets, proj.State())
	}

	data, err := msgpack.Marshal(snap)
	if err != nil {
		log.Printf("bullet snapshot marshal: %v", err)
		return
	}
	for _, c := range r.clients {
		c.SendBinary(data)
	}
}
