package main

import "sort"

// Leaderboard ranks a room's players by score descending. Ties keep
// the players' join order (stable sort over insertion sequence).
func Leaderboard(players map[string]*Player) []LeaderboardEntry {
	ranked := make([]*Player, 0, len(players))
	for _, p := range players {
		ranked = append(ranked, p)
	}
	sort.Slice(ranked, func(i, j int) bool { return ranked[i].joinSeq < ranked[j].joinSeq })
	sort.SliceStable(ranked, func(i, j int) bool { return ranked[i].Score > ranked[j].Score })

	out := make([]LeaderboardEntry, len(ranked))
	for i, p := range ranked {
		out[i] = LeaderboardEntry{ID: p.ID, Name: p.Name, Score: p.Score}
	}
	return out
}
