package main

import (
	"errors"
	"sync"
)

var ErrUsernameTaken = errors.New("username already taken")

// Account is a registered player identity with lifetime tallies.
// Accounts live only as long as the process; the arena keeps no
// durable state.
type Account struct {
	ID       int64
	Username string
	PassHash string
	Kills    int
	Wins     int
}

// AccountStore is the in-memory account registry
type AccountStore struct {
	mu     sync.Mutex
	byName map[string]*Account
	byID   map[int64]*Account
	nextID int64
}

// NewAccountStore creates an empty store
func NewAccountStore() *AccountStore {
	return &AccountStore{
		byName: make(map[string]*Account),
		byID:   make(map[int64]*Account),
	}
}

// Create registers a new account and returns its id
func (s *AccountStore) Create(username, passHash string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.byName[username]; ok {
		return 0, ErrUsernameTaken
	}
	s.nextID++
	acc := &Account{ID: s.nextID, Username: username, PassHash: passHash}
	s.byName[username] = acc
	s.byID[acc.ID] = acc
	return acc.ID, nil
}

// GetByName returns a copy of the account, if any
func (s *AccountStore) GetByName(username string) (Account, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	acc, ok := s.byName[username]
	if !ok {
		return Account{}, false
	}
	return *acc, true
}

// AddKill bumps the kill tally. Guests (id 0) are ignored.
func (s *AccountStore) AddKill(id int64) {
	s.bump(id, func(a *Account) { a.Kills++ })
}

// AddWin bumps the round-win tally. Guests (id 0) are ignored.
func (s *AccountStore) AddWin(id int64) {
	s.bump(id, func(a *Account) { a.Wins++ })
}

func (s *AccountStore) bump(id int64, f func(*Account)) {
	if id == 0 {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if acc, ok := s.byID[id]; ok {
		f(acc)
	}
}

// Stats returns the lifetime tallies for an account
func (s *AccountStore) Stats(id int64) (kills, wins int, ok bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	acc, found := s.byID[id]
	if !found {
		return 0, 0, false
	}
	return acc.Kills, acc.Wins, true
}
