package wishlist

import (
	"fmt"
	"sort"
)

// Append adds a new entry at the bottom of the team's wishlist, rank = max+1.
// The input slice is one team's entries; it is not mutated.
func Append(entries []Entry, added Entry) ([]Entry, error) {
	maxRank := 0
	for _, e := range entries {
		if e.PlayerID == added.PlayerID {
			return nil, fmt.Errorf("%w: player=%s", ErrDuplicateEntry, added.PlayerID)
		}
		if e.Rank > maxRank {
			maxRank = e.Rank
		}
	}

	added.Rank = maxRank + 1
	if err := added.Validate(); err != nil {
		return nil, err
	}

	out := append(append([]Entry(nil), entries...), added)
	return out, nil
}

// Remove deletes the entry for the given player and shifts every higher rank
// down by one, keeping the team's ranks dense and the order unchanged.
func Remove(entries []Entry, playerID string) ([]Entry, error) {
	removedRank := 0
	found := false
	out := make([]Entry, 0, len(entries))
	for _, e := range entries {
		if e.PlayerID == playerID {
			removedRank = e.Rank
			found = true
			continue
		}
		out = append(out, e)
	}
	if !found {
		return nil, fmt.Errorf("%w: player=%s", ErrEntryNotFound, playerID)
	}

	for i := range out {
		if out[i].Rank > removedRank {
			out[i].Rank--
		}
	}
	sortByRank(out)

	return out, nil
}

// Reorder assigns rank = position+1 to each player in the supplied sequence.
// Entries for players not listed keep whatever rank they held; callers are
// expected to supply the full current membership, since a subset leaves the
// final ordering undefined.
func Reorder(entries []Entry, orderedPlayerIDs []string) []Entry {
	rankByPlayer := make(map[string]int, len(orderedPlayerIDs))
	for i, id := range orderedPlayerIDs {
		rankByPlayer[id] = i + 1
	}

	out := append([]Entry(nil), entries...)
	for i := range out {
		if rank, ok := rankByPlayer[out[i].PlayerID]; ok {
			out[i].Rank = rank
		}
	}
	sortByRank(out)

	return out
}

func sortByRank(entries []Entry) {
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Rank < entries[j].Rank
	})
}
