package main

import (
	"math/rand"
	"sort"
)

// assignRoles picks one red player uniformly at random and makes the
// next player (by id order) blue. Any remaining players keep no role.
// Requires at least two players.
func assignRoles(players map[string]*Player) (red, blue string) {
	ids := make([]string, 0, len(players))
	for id := range players {
		ids = append(ids, id)
	}
	// map order is random on its own; sort so the rand pick is the
	// only source of randomness
	sort.Strings(ids)

	i := rand.Intn(len(ids))
	red = ids[i]
	blue = ids[(i+1)%len(ids)]

	players[red].Role = RoleRed
	players[blue].Role = RoleBlue
	return red, blue
}
