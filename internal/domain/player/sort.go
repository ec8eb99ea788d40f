package player

import (
	"fmt"
	"sort"
	"strings"
)

// SortKey names a player attribute listings may be ordered by.
type SortKey string

const (
	SortByName          SortKey = "name"
	SortByTotalPoints   SortKey = "total_points"
	SortByPointsPerGame SortKey = "points_per_game"
	SortByNowCost       SortKey = "now_cost"
	SortByGoalsScored   SortKey = "goals_scored"
	SortByAssists       SortKey = "assists"
	SortByMinutes       SortKey = "minutes"
)

var allSortKeys = map[SortKey]struct{}{
	SortByName:          {},
	SortByTotalPoints:   {},
	SortByPointsPerGame: {},
	SortByNowCost:       {},
	SortByGoalsScored:   {},
	SortByAssists:       {},
	SortByMinutes:       {},
}

func ParseSortKey(raw string) (SortKey, error) {
	key := SortKey(strings.ToLower(strings.TrimSpace(raw)))
	if key == "" {
		return SortByName, nil
	}
	if _, ok := allSortKeys[key]; !ok {
		return "", fmt.Errorf("invalid sort key: %q", raw)
	}
	return key, nil
}

// Sort orders players by the given key. Players with a missing stat value
// always sort after players that have one, whichever direction is requested.
// Name is the tie breaker so the ordering is stable across calls.
func Sort(players []Player, key SortKey, descending bool) {
	sort.SliceStable(players, func(i, j int) bool {
		pi, pj := players[i], players[j]
		if key == SortByName {
			if descending {
				return pi.Name > pj.Name
			}
			return pi.Name < pj.Name
		}

		vi, oki := statValue(pi, key)
		vj, okj := statValue(pj, key)
		switch {
		case oki && !okj:
			return true
		case !oki && okj:
			return false
		case !oki && !okj:
			return pi.Name < pj.Name
		}
		if vi == vj {
			return pi.Name < pj.Name
		}
		if descending {
			return vi > vj
		}
		return vi < vj
	})
}

func statValue(p Player, key SortKey) (float64, bool) {
	switch key {
	case SortByTotalPoints:
		return intStat(p.Stats.TotalPoints)
	case SortByPointsPerGame:
		return floatStat(p.Stats.PointsPerGame)
	case SortByNowCost:
		return floatStat(p.Stats.NowCost)
	case SortByGoalsScored:
		return intStat(p.Stats.GoalsScored)
	case SortByAssists:
		return intStat(p.Stats.Assists)
	case SortByMinutes:
		return intStat(p.Stats.Minutes)
	default:
		return 0, false
	}
}

func intStat(v *int) (float64, bool) {
	if v == nil {
		return 0, false
	}
	return float64(*v), true
}

func floatStat(v *float64) (float64, bool) {
	if v == nil {
		return 0, false
	}
	return *v, true
}
