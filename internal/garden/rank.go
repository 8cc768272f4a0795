package garden

import "sort"

// RankEntry is one leaderboard row.
type RankEntry struct {
	UserID string `json:"userId"`
	Level  int    `json:"level"`
	Exp    int    `json:"exp"`
}

// TopRanked returns up to n gardeners ordered by level descending, then exp
// descending, then user id ascending so a fixed store snapshot always ranks
// the same way. Gardens with neither level nor exp are skipped; a freshly
// created garden starts at level 1 and is ranked.
func (e *Engine) TopRanked(n int) []RankEntry {
	if n <= 0 {
		return nil
	}

	snap := e.store.Snapshot()
	entries := make([]RankEntry, 0, len(snap))
	for id, g := range snap {
		if g.Level <= 0 && g.Exp <= 0 {
			continue
		}
		entries = append(entries, RankEntry{UserID: id, Level: g.Level, Exp: g.Exp})
	}

	sort.Slice(entries, func(i, j int) bool {
		a, b := entries[i], entries[j]
		if a.Level != b.Level {
			return a.Level > b.Level
		}
		if a.Exp != b.Exp {
			return a.Exp > b.Exp
		}
		return a.UserID < b.UserID
	})

	if len(entries) > n {
		entries = entries[:n]
	}
	return entries
}
