package draft

import (
	"errors"
	"testing"
)

func TestCurrentRound(t *testing.T) {
	tests := []struct {
		name       string
		pick       int
		totalTeams int
		want       int
		wantErr    error
	}{
		{name: "first pick", pick: 1, totalTeams: 4, want: 1},
		{name: "last pick of round one", pick: 4, totalTeams: 4, want: 1},
		{name: "first pick of round two", pick: 5, totalTeams: 4, want: 2},
		{name: "single team always advances round", pick: 7, totalTeams: 1, want: 7},
		{name: "no teams", pick: 1, totalTeams: 0, wantErr: ErrNoTeams},
		{name: "negative teams", pick: 1, totalTeams: -3, wantErr: ErrNoTeams},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := CurrentRound(tt.pick, tt.totalTeams)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("expected error %v, got %v", tt.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Fatalf("expected round %d, got %d", tt.want, got)
			}
		})
	}
}

func TestCurrentRoundMonotonic(t *testing.T) {
	const totalTeams = 3
	prev := 0
	for pick := 1; pick <= 30; pick++ {
		round, err := CurrentRound(pick, totalTeams)
		if err != nil {
			t.Fatalf("pick %d: %v", pick, err)
		}
		if round < prev {
			t.Fatalf("round decreased at pick %d: %d -> %d", pick, prev, round)
		}
		if (pick-1)%totalTeams == 0 && round != prev+1 {
			t.Fatalf("expected round increment at pick %d, got %d after %d", pick, round, prev)
		}
		prev = round
	}
}

func TestIsReverseRound(t *testing.T) {
	if IsReverseRound(1, true) {
		t.Fatal("round 1 must never reverse")
	}
	if !IsReverseRound(2, true) {
		t.Fatal("round 2 of a snake draft must reverse")
	}
	if IsReverseRound(2, false) {
		t.Fatal("linear drafts must never reverse")
	}
	if IsReverseRound(3, true) {
		t.Fatal("round 3 of a snake draft must run forward")
	}
}

func TestSnakeOrderFourTeams(t *testing.T) {
	order := []string{"T1", "T2", "T3", "T4"}
	expected := [][]string{
		{"T1", "T2", "T3", "T4"},
		{"T4", "T3", "T2", "T1"},
		{"T1", "T2", "T3", "T4"},
	}

	d, err := New("epl", order, true)
	if err != nil {
		t.Fatalf("new draft: %v", err)
	}

	for roundIdx, want := range expected {
		for slot, wantTeam := range want {
			teamID, round, err := d.ActingTeam()
			if err != nil {
				t.Fatalf("acting team at pick %d: %v", d.CurrentPick, err)
			}
			if round != roundIdx+1 {
				t.Fatalf("expected round %d at pick %d, got %d", roundIdx+1, d.CurrentPick, round)
			}
			if teamID != wantTeam {
				t.Fatalf("round %d slot %d: expected %s, got %s", round, slot, wantTeam, teamID)
			}
			d.Advance()
		}
	}
}

func TestAdvanceCyclesIndex(t *testing.T) {
	const totalTeams = 4
	d, err := New("epl", []string{"T1", "T2", "T3", "T4"}, true)
	if err != nil {
		t.Fatalf("new draft: %v", err)
	}

	for n := 1; n <= 25; n++ {
		d.Advance()
		if d.CurrentPick != 1+n {
			t.Fatalf("after %d advances expected pick %d, got %d", n, 1+n, d.CurrentPick)
		}
		if want := n % totalTeams; d.CurrentTeamIndex != want {
			t.Fatalf("after %d advances expected index %d, got %d", n, want, d.CurrentTeamIndex)
		}
		if err := d.Validate(); err != nil {
			t.Fatalf("invariant broken after %d advances: %v", n, err)
		}
	}
}

func TestNewRequiresTeams(t *testing.T) {
	if _, err := New("epl", nil, true); !errors.Is(err, ErrNoTeams) {
		t.Fatalf("expected ErrNoTeams, got %v", err)
	}
}

func TestCompletedAndState(t *testing.T) {
	d, err := New("epl", []string{"T1", "T2"}, true)
	if err != nil {
		t.Fatalf("new draft: %v", err)
	}

	const rosterSize = 15
	if d.Completed(rosterSize) {
		t.Fatal("fresh draft must not be complete")
	}
	if got := d.State(rosterSize); got != StateActive {
		t.Fatalf("expected active state, got %s", got)
	}

	d.IsLocked = true
	if got := d.State(rosterSize); got != StateLocked {
		t.Fatalf("expected locked state, got %s", got)
	}
	d.IsLocked = false

	for i := 0; i < 2*rosterSize-1; i++ {
		d.Advance()
		if d.Completed(rosterSize) {
			t.Fatalf("draft completed early at pick %d", d.CurrentPick)
		}
	}
	d.Advance()
	if !d.Completed(rosterSize) {
		t.Fatalf("expected completion at pick %d", d.CurrentPick)
	}
	if got := d.State(rosterSize); got != StateComplete {
		t.Fatalf("expected complete state, got %s", got)
	}
}
