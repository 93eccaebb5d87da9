package main

import (
	"sync"
	"testing"
)

// mockBroadcaster captures sent messages for testing
type mockBroadcaster struct {
	mu       sync.Mutex
	messages []Envelope
	binary   [][]byte
}

func (m *mockBroadcaster) SendJSON(msg interface{}) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if env, ok := msg.(Envelope); ok {
		m.messages = append(m.messages, env)
	}
}

func (m *mockBroadcaster) SendBinary(data []byte) {
	m.mu.Lock()
	defer m.mu.Unlock()
	buf := make([]byte, len(data))
	copy(buf, data)
	m.binary = append(m.binary, buf)
}

func (m *mockBroadcaster) count(t string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, env := range m.messages {
		if env.T == t {
			n++
		}
	}
	return n
}

func (m *mockBroadcaster) last(t string) (Envelope, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := len(m.messages) - 1; i >= 0; i-- {
		if m.messages[i].T == t {
			return m.messages[i], true
		}
	}
	return Envelope{}, false
}

// joinN adds n players p1..pn to room id and returns their mocks
func joinN(t *testing.T, reg *Registry, id string, n int) []*mockBroadcaster {
	t.Helper()
	mocks := make([]*mockBroadcaster, n)
	for i := 0; i < n; i++ {
		mocks[i] = &mockBroadcaster{}
		pid := string(rune('A' + i))
		if _, err := reg.AddPlayer(id, pid, "Player"+pid, 0, mocks[i]); err != nil {
			t.Fatalf("join %s: %v", pid, err)
		}
	}
	return mocks
}

func TestAddPlayerDefaults(t *testing.T) {
	reg := NewRegistry(nil)
	mock := &mockBroadcaster{}
	p, err := reg.AddPlayer("r1", "A", "Alice", 0, mock)
	if err != nil {
		t.Fatalf("AddPlayer: %v", err)
	}
	if p.HP != PlayerMaxHP {
		t.Errorf("expected hp %d, got %d", PlayerMaxHP, p.HP)
	}
	if p.Score != 0 {
		t.Errorf("expected score 0, got %d", p.Score)
	}
	if p.Pos.X != SpawnX || p.Pos.Y != SpawnY {
		t.Errorf("expected spawn position, got %+v", p.Pos)
	}
	if p.Role != RoleNone {
		t.Errorf("expected no role, got %s", p.Role)
	}
	if mock.count(MsgPlayerPositions) != 1 {
		t.Error("joiner should receive a room snapshot")
	}
}

func TestJoinCreatesRoomOnce(t *testing.T) {
	reg := NewRegistry(nil)
	r1 := reg.CreateOrGetRoom("r1")
	r2 := reg.CreateOrGetRoom("r1")
	if r1 != r2 {
		t.Error("CreateOrGetRoom should be idempotent")
	}
}

func TestJoinInvalidInput(t *testing.T) {
	reg := NewRegistry(nil)
	mock := &mockBroadcaster{}

	tests := []struct {
		name, room string
	}{
		{"", "r1"},
		{"Alice", ""},
		{"this-name-is-way-too-long", "r1"},
		{"Alice", "this-room-id-is-way-too-long"},
	}
	for _, tt := range tests {
		if _, err := reg.AddPlayer(tt.room, "A", tt.name, 0, mock); err != ErrInvalidInput {
			t.Errorf("AddPlayer(%q, %q): expected ErrInvalidInput, got %v", tt.room, tt.name, err)
		}
	}
	if reg.RoomCount() != 0 {
		t.Error("rejected joins must not create rooms")
	}
}

func TestRoomCapacity(t *testing.T) {
	reg := NewRegistry(nil)
	joinN(t, reg, "r1", MaxPlayersPerRoom)

	mock := &mockBroadcaster{}
	if _, err := reg.AddPlayer("r1", "E", "Extra", 0, mock); err != ErrCapacityExceeded {
		t.Fatalf("expected ErrCapacityExceeded, got %v", err)
	}
	if got := reg.Room("r1").PlayerCount(); got != MaxPlayersPerRoom {
		t.Errorf("registry changed by rejected join: %d players", got)
	}
}

func TestGameStartsAtTwoPlayers(t *testing.T) {
	reg := NewRegistry(nil)
	mocks := joinN(t, reg, "r1", 1)
	if reg.Room("r1").Started() {
		t.Error("room must not start with one player")
	}

	second := &mockBroadcaster{}
	reg.AddPlayer("r1", "B", "Bob", 0, second)

	room := reg.Room("r1")
	if !room.Started() {
		t.Error("room should start at two players")
	}
	if mocks[0].count(MsgGameStart) != 1 {
		t.Error("first player should see game_start")
	}
	env, ok := mocks[0].last(MsgRolesAssigned)
	if !ok {
		t.Fatal("roles_assigned not broadcast")
	}
	roles := env.Data.(RolesAssignedMsg)
	if roles.Red == roles.Blue || roles.Red == "" || roles.Blue == "" {
		t.Errorf("bad role assignment: %+v", roles)
	}

	// third join must not re-assign roles
	third := &mockBroadcaster{}
	reg.AddPlayer("r1", "C", "Carol", 0, third)
	if mocks[0].count(MsgRolesAssigned) != 1 {
		t.Error("roles must not be re-assigned while started")
	}
}

func TestRemovePlayerStopsAndDeletes(t *testing.T) {
	reg := NewRegistry(nil)
	mocks := joinN(t, reg, "r1", 2)

	reg.RemovePlayer("r1", "B")
	room := reg.Room("r1")
	if room == nil {
		t.Fatal("room should survive with one player")
	}
	if room.Started() {
		t.Error("dropping below two players should stop the game")
	}
	if mocks[0].count(MsgGameStop) != 1 {
		t.Error("game_stop not broadcast")
	}
	if mocks[0].count(MsgPlayerLeft) != 1 {
		t.Error("player_left not broadcast")
	}
	if room.players["A"].Role != RoleNone {
		t.Error("roles should be cleared on game stop")
	}

	reg.RemovePlayer("r1", "A")
	if reg.Room("r1") != nil {
		t.Error("last player's removal should delete the room")
	}
}

func TestRemovePlayerIdempotent(t *testing.T) {
	reg := NewRegistry(nil)
	joinN(t, reg, "r1", 2)

	reg.RemovePlayer("r1", "B")
	reg.RemovePlayer("r1", "B") // second call is a no-op
	reg.RemovePlayer("nope", "B")

	if got := reg.Room("r1").PlayerCount(); got != 1 {
		t.Errorf("expected 1 player, got %d", got)
	}
}

func TestRolesReassignedOnRestart(t *testing.T) {
	reg := NewRegistry(nil)
	mocks := joinN(t, reg, "r1", 2)

	reg.RemovePlayer("r1", "B")
	fresh := &mockBroadcaster{}
	reg.AddPlayer("r1", "B2", "Bob", 0, fresh)

	if !reg.Room("r1").Started() {
		t.Error("room should restart at two players")
	}
	if mocks[0].count(MsgRolesAssigned) != 2 {
		t.Error("restart should assign fresh roles")
	}
}

func TestMoveValidation(t *testing.T) {
	reg := NewRegistry(nil)
	joinN(t, reg, "r1", 1)
	room := reg.Room("r1")

	tests := []struct {
		pos Vec2
		ok  bool
	}{
		{Vec2{X: 404, Y: 303}, true},   // small step
		{Vec2{X: 850, Y: 300}, false},  // out of bounds
		{Vec2{X: 400, Y: -10}, false},  // out of bounds
		{Vec2{X: 406, Y: 300}, false},  // exceeds per-axis cap
		{Vec2{X: 400, Y: 306}, false},  // exceeds per-axis cap
	}
	for _, tt := range tests {
		// reset to a known position between cases
		room.players["A"].Pos = Vec2{X: 400, Y: 300}
		err := room.Move("A", tt.pos)
		if tt.ok && err != nil {
			t.Errorf("Move to %+v: unexpected %v", tt.pos, err)
		}
		if !tt.ok && err != ErrInvalidMovement {
			t.Errorf("Move to %+v: expected ErrInvalidMovement, got %v", tt.pos, err)
		}
	}

	// rejected moves leave the position unchanged
	room.players["A"].Pos = Vec2{X: 400, Y: 300}
	room.Move("A", Vec2{X: 850, Y: 300})
	if p := room.players["A"].Pos; p.X != 400 || p.Y != 300 {
		t.Errorf("rejected move changed position: %+v", p)
	}
}

func TestMoveUnknownPlayerIsNoop(t *testing.T) {
	reg := NewRegistry(nil)
	joinN(t, reg, "r1", 1)
	if err := reg.Room("r1").Move("ghost", Vec2{X: 400, Y: 300}); err != nil {
		t.Errorf("unknown mover should be a silent no-op, got %v", err)
	}
}

func TestFireAppendsProjectile(t *testing.T) {
	reg := NewRegistry(nil)
	mocks := joinN(t, reg, "r1", 1)
	room := reg.Room("r1")

	room.Fire("A", Vec2{X: 1, Y: 0})
	if len(room.projectiles) != 1 {
		t.Fatalf("expected 1 projectile, got %d", len(room.projectiles))
	}
	proj := room.projectiles[0]
	if proj.ShooterID != "A" {
		t.Errorf("wrong shooter: %s", proj.ShooterID)
	}
	if proj.Pos.X != SpawnX || proj.Pos.Y != SpawnY {
		t.Errorf("projectile should spawn at the shooter, got %+v", proj.Pos)
	}
	if mocks[0].count(MsgBulletFired) != 1 {
		t.Error("bullet_fired not broadcast")
	}

	room.Fire("ghost", Vec2{X: 1, Y: 0})
	if len(room.projectiles) != 1 {
		t.Error("unknown shooter must not spawn a projectile")
	}
}

func TestResetPlayer(t *testing.T) {
	reg := NewRegistry(nil)
	mocks := joinN(t, reg, "r1", 1)
	room := reg.Room("r1")

	p := room.players["A"]
	p.HP = 30
	p.Pos = Vec2{X: 100, Y: 100}
	p.Score = 50

	room.ResetPlayer("A")
	if p.HP != PlayerMaxHP {
		t.Errorf("expected hp %d, got %d", PlayerMaxHP, p.HP)
	}
	if p.Pos.X != SpawnX || p.Pos.Y != SpawnY {
		t.Errorf("expected spawn position, got %+v", p.Pos)
	}
	if p.Score != 50 {
		t.Error("reset must not touch the score")
	}
	if mocks[0].count(MsgPlayerReset) != 1 {
		t.Error("player_reset not broadcast")
	}
}
