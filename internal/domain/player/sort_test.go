package player

import "testing"

func intPtr(v int) *int          { return &v }
func floatPtr(v float64) *float64 { return &v }

func TestSortMissingStatsLast(t *testing.T) {
	players := []Player{
		{ID: "p1", Name: "Saka", Stats: Stats{TotalPoints: intPtr(180)}},
		{ID: "p2", Name: "Trialist"},
		{ID: "p3", Name: "Haaland", Stats: Stats{TotalPoints: intPtr(220)}},
	}

	Sort(players, SortByTotalPoints, true)
	if players[0].ID != "p3" || players[1].ID != "p1" || players[2].ID != "p2" {
		t.Fatalf("descending order wrong: %s %s %s", players[0].ID, players[1].ID, players[2].ID)
	}

	Sort(players, SortByTotalPoints, false)
	if players[0].ID != "p1" || players[1].ID != "p3" || players[2].ID != "p2" {
		t.Fatalf("ascending should still keep missing stats last: %s %s %s", players[0].ID, players[1].ID, players[2].ID)
	}
}

func TestSortByNowCostAndName(t *testing.T) {
	players := []Player{
		{ID: "p1", Name: "Kane", Stats: Stats{NowCost: floatPtr(12.5)}},
		{ID: "p2", Name: "Darwin", Stats: Stats{NowCost: floatPtr(7.5)}},
		{ID: "p3", Name: "Jesus", Stats: Stats{NowCost: floatPtr(7.5)}},
	}

	Sort(players, SortByNowCost, false)
	if players[0].ID != "p2" || players[1].ID != "p3" || players[2].ID != "p1" {
		t.Fatalf("expected price order with name tiebreak, got %s %s %s", players[0].ID, players[1].ID, players[2].ID)
	}

	Sort(players, SortByName, false)
	if players[0].Name != "Darwin" || players[2].Name != "Kane" {
		t.Fatalf("expected alphabetical order, got %s %s %s", players[0].Name, players[1].Name, players[2].Name)
	}
}

func TestParseSortKey(t *testing.T) {
	tests := []struct {
		raw     string
		want    SortKey
		wantErr bool
	}{
		{raw: "", want: SortByName},
		{raw: "total_points", want: SortByTotalPoints},
		{raw: " Minutes ", want: SortByMinutes},
		{raw: "bps", wantErr: true},
	}

	for _, tt := range tests {
		got, err := ParseSortKey(tt.raw)
		if tt.wantErr {
			if err == nil {
				t.Fatalf("expected error for %q", tt.raw)
			}
			continue
		}
		if err != nil {
			t.Fatalf("parse %q: %v", tt.raw, err)
		}
		if got != tt.want {
			t.Fatalf("parse %q: expected %s, got %s", tt.raw, tt.want, got)
		}
	}
}

func TestValidateDraftedOwnerInvariant(t *testing.T) {
	base := Player{ID: "p1", LeagueID: "epl", Name: "Salah", Club: "Liverpool", Position: PositionMidfielder}

	if err := base.Validate(); err != nil {
		t.Fatalf("expected valid player, got %v", err)
	}

	drafted := base
	drafted.Drafted = true
	if err := drafted.Validate(); err == nil {
		t.Fatal("expected error when drafted without owner")
	}

	owned := base
	owned.OwnerID = "team-1"
	if err := owned.Validate(); err == nil {
		t.Fatal("expected error when owned without drafted flag")
	}

	drafted.OwnerID = "team-1"
	if err := drafted.Validate(); err != nil {
		t.Fatalf("expected valid drafted player, got %v", err)
	}
}
