package usecase

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"testing"

	"github.com/riskibarqy/draft-league/internal/domain/draft"
	"github.com/riskibarqy/draft-league/internal/domain/player"
	"github.com/riskibarqy/draft-league/internal/domain/roster"
	"github.com/riskibarqy/draft-league/internal/domain/wishlist"
	"github.com/riskibarqy/draft-league/internal/infrastructure/repository/memory"
	"github.com/riskibarqy/draft-league/internal/platform/cache"
)

type sequenceIDGenerator struct {
	prefix string
	next   int
}

func (g *sequenceIDGenerator) NewID() (string, error) {
	g.next++
	return fmt.Sprintf("%s-%03d", g.prefix, g.next), nil
}

type draftFixture struct {
	service      *DraftService
	playerRepo   *memory.PlayerRepository
	teamRepo     *memory.TeamRepository
	wishlistRepo *memory.WishlistRepository
	draftRepo    *memory.DraftRepository
	leagueRepo   *memory.LeagueRepository
}

func newDraftFixture(rules roster.Rules) draftFixture {
	leagueRepo := memory.NewLeagueRepository(memory.SeedLeagues())
	playerRepo := memory.NewPlayerRepository(memory.SeedPlayers())
	teamRepo := memory.NewTeamRepository(nil)
	draftRepo := memory.NewDraftRepository(playerRepo)
	wishlistRepo := memory.NewWishlistRepository()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	service := NewDraftService(
		leagueRepo,
		teamRepo,
		playerRepo,
		draftRepo,
		wishlistRepo,
		rules,
		cache.NewStore(0),
		&sequenceIDGenerator{prefix: "team"},
		logger,
	)

	return draftFixture{
		service:      service,
		playerRepo:   playerRepo,
		teamRepo:     teamRepo,
		wishlistRepo: wishlistRepo,
		draftRepo:    draftRepo,
		leagueRepo:   leagueRepo,
	}
}

func setupTwoTeamSnake(t *testing.T, fx draftFixture) DraftView {
	t.Helper()

	view, err := fx.service.SetupDraft(t.Context(), SetupDraftInput{
		LeagueID: memory.LeagueIDPremierLeague,
		Snake:    true,
		Teams: []TeamSpec{
			{Name: "Anfield Army", Owner: "alice"},
			{Name: "Blue Moon", Owner: "bob"},
		},
	})
	if err != nil {
		t.Fatalf("setup draft failed: %v", err)
	}
	return view
}

func TestDraftService_SetupDraft(t *testing.T) {
	fx := newDraftFixture(roster.DefaultRules())

	view := setupTwoTeamSnake(t, fx)

	if view.State != draft.StateActive {
		t.Fatalf("expected active draft, got %s", view.State)
	}
	if view.CurrentPick != 1 || view.CurrentRound != 1 {
		t.Fatalf("expected pick 1 round 1, got pick=%d round=%d", view.CurrentPick, view.CurrentRound)
	}
	if view.TotalTeams != 2 || !view.IsSnake {
		t.Fatalf("unexpected draft shape: teams=%d snake=%v", view.TotalTeams, view.IsSnake)
	}
	if view.ActingTeam.Name != "Anfield Army" {
		t.Fatalf("expected first listed team on the clock, got %s", view.ActingTeam.Name)
	}
	if len(view.DraftOrder) != 2 {
		t.Fatalf("expected 2 teams in draft order, got %d", len(view.DraftOrder))
	}

	_, err := fx.service.SetupDraft(t.Context(), SetupDraftInput{
		LeagueID: memory.LeagueIDPremierLeague,
		Snake:    true,
		Teams:    []TeamSpec{{Name: "Third Wheel", Owner: "carol"}},
	})
	if !errors.Is(err, ErrInvalidSetup) {
		t.Fatalf("expected ErrInvalidSetup for duplicate draft, got %v", err)
	}
}

func TestDraftService_SetupDraft_BlankTeamsRejected(t *testing.T) {
	fx := newDraftFixture(roster.DefaultRules())

	_, err := fx.service.SetupDraft(t.Context(), SetupDraftInput{
		LeagueID: memory.LeagueIDPremierLeague,
		Teams: []TeamSpec{
			{Name: "   ", Owner: "alice"},
			{Name: "No Owner", Owner: ""},
		},
	})
	if !errors.Is(err, ErrInvalidSetup) {
		t.Fatalf("expected ErrInvalidSetup, got %v", err)
	}
}

func TestDraftService_DraftPlayer_SnakeOrder(t *testing.T) {
	fx := newDraftFixture(roster.DefaultRules())
	view := setupTwoTeamSnake(t, fx)

	teamA := view.DraftOrder[0]
	teamB := view.DraftOrder[1]

	picks := []struct {
		playerID string
		wantTeam string
		wantPick int
		wantRnd  int
	}{
		{"epl-mid-01", teamA, 1, 1},
		{"epl-fwd-01", teamB, 2, 1},
		{"epl-mid-02", teamB, 3, 2},
		{"epl-gk-01", teamA, 4, 2},
		{"epl-def-01", teamA, 5, 3},
		{"epl-gk-02", teamB, 6, 3},
	}

	for _, p := range picks {
		result, err := fx.service.DraftPlayer(t.Context(), memory.LeagueIDPremierLeague, p.playerID)
		if err != nil {
			t.Fatalf("pick %d (%s) failed: %v", p.wantPick, p.playerID, err)
		}
		if result.Team.ID != p.wantTeam {
			t.Fatalf("pick %d: expected team %s, got %s", p.wantPick, p.wantTeam, result.Team.ID)
		}
		if result.Pick != p.wantPick || result.Round != p.wantRnd {
			t.Fatalf("pick %s: expected pick=%d round=%d, got pick=%d round=%d",
				p.playerID, p.wantPick, p.wantRnd, result.Pick, result.Round)
		}
		if !result.Player.Drafted || result.Player.OwnerID != p.wantTeam {
			t.Fatalf("pick %d: player not marked drafted by %s", p.wantPick, p.wantTeam)
		}
	}

	state, err := fx.service.State(t.Context(), memory.LeagueIDPremierLeague)
	if err != nil {
		t.Fatalf("state failed: %v", err)
	}
	if state.CurrentPick != 7 || state.CurrentRound != 4 {
		t.Fatalf("expected pick 7 round 4 after six picks, got pick=%d round=%d", state.CurrentPick, state.CurrentRound)
	}
	if !state.ReverseRound {
		t.Fatalf("round 4 of a 2-team snake draft must be reversed")
	}
}

func TestDraftService_DraftPlayer_AlreadyDrafted(t *testing.T) {
	fx := newDraftFixture(roster.DefaultRules())
	setupTwoTeamSnake(t, fx)

	if _, err := fx.service.DraftPlayer(t.Context(), memory.LeagueIDPremierLeague, "epl-mid-01"); err != nil {
		t.Fatalf("first pick failed: %v", err)
	}

	_, err := fx.service.DraftPlayer(t.Context(), memory.LeagueIDPremierLeague, "epl-mid-01")
	if !errors.Is(err, draft.ErrPlayerUnavailable) {
		t.Fatalf("expected ErrPlayerUnavailable, got %v", err)
	}

	state, err := fx.service.State(t.Context(), memory.LeagueIDPremierLeague)
	if err != nil {
		t.Fatalf("state failed: %v", err)
	}
	if state.CurrentPick != 2 {
		t.Fatalf("rejected pick must not advance the draft, got pick=%d", state.CurrentPick)
	}
}

func TestDraftService_DraftPlayer_Locked(t *testing.T) {
	fx := newDraftFixture(roster.DefaultRules())
	setupTwoTeamSnake(t, fx)

	locked, err := fx.service.ToggleLock(t.Context(), memory.LeagueIDPremierLeague)
	if err != nil {
		t.Fatalf("toggle lock failed: %v", err)
	}
	if !locked {
		t.Fatalf("expected draft to be locked")
	}

	_, err = fx.service.DraftPlayer(t.Context(), memory.LeagueIDPremierLeague, "epl-mid-01")
	if !errors.Is(err, draft.ErrDraftLocked) {
		t.Fatalf("expected ErrDraftLocked, got %v", err)
	}

	locked, err = fx.service.ToggleLock(t.Context(), memory.LeagueIDPremierLeague)
	if err != nil {
		t.Fatalf("unlock failed: %v", err)
	}
	if locked {
		t.Fatalf("expected draft to be unlocked")
	}
	if _, err := fx.service.DraftPlayer(t.Context(), memory.LeagueIDPremierLeague, "epl-mid-01"); err != nil {
		t.Fatalf("pick after unlock failed: %v", err)
	}
}

func TestDraftService_DraftPlayer_ClubLimit(t *testing.T) {
	fx := newDraftFixture(roster.DefaultRules())
	setupTwoTeamSnake(t, fx)

	// Snake order for two teams: A, B, B, A, A, B, B, A. The first team
	// collects three Liverpool players across picks 1, 4 and 5.
	sequence := []string{
		"epl-mid-01", // A: Salah, Liverpool
		"epl-fwd-01", // B: Haaland
		"epl-mid-02", // B: De Bruyne
		"epl-def-01", // A: Alexander-Arnold, Liverpool
		"epl-def-02", // A: Van Dijk, Liverpool
		"epl-fwd-02", // B: Kane
		"epl-mid-03", // B: Fernandes
	}
	for _, playerID := range sequence {
		if _, err := fx.service.DraftPlayer(t.Context(), memory.LeagueIDPremierLeague, playerID); err != nil {
			t.Fatalf("pick %s failed: %v", playerID, err)
		}
	}

	// Pick 8 is the first team again; a fourth Liverpool player must bounce.
	_, err := fx.service.DraftPlayer(t.Context(), memory.LeagueIDPremierLeague, "epl-fwd-04")
	if !errors.Is(err, roster.ErrClubLimit) {
		t.Fatalf("expected ErrClubLimit, got %v", err)
	}

	got, exists, repoErr := fx.playerRepo.GetByID(t.Context(), memory.LeagueIDPremierLeague, "epl-fwd-04")
	if repoErr != nil || !exists {
		t.Fatalf("player lookup failed: exists=%v err=%v", exists, repoErr)
	}
	if got.Drafted || got.OwnerID != "" {
		t.Fatalf("rejected pick must leave the player in the pool")
	}

	state, err := fx.service.State(t.Context(), memory.LeagueIDPremierLeague)
	if err != nil {
		t.Fatalf("state failed: %v", err)
	}
	if state.CurrentPick != 8 {
		t.Fatalf("rejected pick must not advance the draft, got pick=%d", state.CurrentPick)
	}
}

func TestDraftService_DraftPlayer_PositionLimit(t *testing.T) {
	fx := newDraftFixture(roster.DefaultRules())
	setupTwoTeamSnake(t, fx)

	sequence := []string{
		"epl-gk-01",  // A: Alisson
		"epl-fwd-01", // B
		"epl-fwd-02", // B
		"epl-gk-02",  // A: Ederson, second goalkeeper
	}
	for _, playerID := range sequence {
		if _, err := fx.service.DraftPlayer(t.Context(), memory.LeagueIDPremierLeague, playerID); err != nil {
			t.Fatalf("pick %s failed: %v", playerID, err)
		}
	}

	// Pick 5 is the first team; a third goalkeeper exceeds the slot cap.
	_, err := fx.service.DraftPlayer(t.Context(), memory.LeagueIDPremierLeague, "epl-gk-03")
	if !errors.Is(err, roster.ErrPositionLimit) {
		t.Fatalf("expected ErrPositionLimit, got %v", err)
	}
}

func TestDraftService_DraftPlayer_CompletesDraft(t *testing.T) {
	rules := roster.Rules{
		MaxPerClub: 2,
		MaxByPosition: map[player.Position]int{
			player.PositionGoalkeeper: 1,
			player.PositionDefender:   1,
			player.PositionMidfielder: 1,
			player.PositionForward:    1,
		},
	}
	fx := newDraftFixture(rules)
	setupTwoTeamSnake(t, fx)

	sequence := []string{
		"epl-gk-01",  // A
		"epl-gk-02",  // B
		"epl-def-01", // B
		"epl-def-04", // A
		"epl-mid-04", // A
		"epl-mid-01", // B
		"epl-fwd-01", // B
	}
	for _, playerID := range sequence {
		result, err := fx.service.DraftPlayer(t.Context(), memory.LeagueIDPremierLeague, playerID)
		if err != nil {
			t.Fatalf("pick %s failed: %v", playerID, err)
		}
		if result.DraftCompleted {
			t.Fatalf("draft completed early at pick %d", result.Pick)
		}
	}

	final, err := fx.service.DraftPlayer(t.Context(), memory.LeagueIDPremierLeague, "epl-fwd-02")
	if err != nil {
		t.Fatalf("final pick failed: %v", err)
	}
	if !final.DraftCompleted {
		t.Fatalf("expected final pick to complete the draft")
	}
	if final.Pick != 8 {
		t.Fatalf("expected final pick number 8, got %d", final.Pick)
	}

	state, err := fx.service.State(t.Context(), memory.LeagueIDPremierLeague)
	if err != nil {
		t.Fatalf("state failed: %v", err)
	}
	if state.State != draft.StateComplete {
		t.Fatalf("expected complete state, got %s", state.State)
	}

	_, err = fx.service.DraftPlayer(t.Context(), memory.LeagueIDPremierLeague, "epl-fwd-03")
	if !errors.Is(err, draft.ErrNoActiveDraft) {
		t.Fatalf("expected ErrNoActiveDraft after completion, got %v", err)
	}
}

func TestDraftService_DraftPlayer_ReportsAffectedWishlists(t *testing.T) {
	fx := newDraftFixture(roster.DefaultRules())
	view := setupTwoTeamSnake(t, fx)

	teamA := view.DraftOrder[0]
	teamB := view.DraftOrder[1]

	entries := []wishlist.Entry{{
		LeagueID: memory.LeagueIDPremierLeague,
		TeamID:   teamB,
		PlayerID: "epl-mid-01",
		Rank:     1,
	}}
	if err := fx.wishlistRepo.ReplaceForTeam(t.Context(), memory.LeagueIDPremierLeague, teamB, entries); err != nil {
		t.Fatalf("seed wishlist failed: %v", err)
	}
	if err := fx.wishlistRepo.ReplaceForTeam(t.Context(), memory.LeagueIDPremierLeague, teamA, []wishlist.Entry{{
		LeagueID: memory.LeagueIDPremierLeague,
		TeamID:   teamA,
		PlayerID: "epl-mid-01",
		Rank:     1,
	}}); err != nil {
		t.Fatalf("seed wishlist failed: %v", err)
	}

	result, err := fx.service.DraftPlayer(t.Context(), memory.LeagueIDPremierLeague, "epl-mid-01")
	if err != nil {
		t.Fatalf("pick failed: %v", err)
	}
	if len(result.AffectedWishlistTeamIDs) != 1 || result.AffectedWishlistTeamIDs[0] != teamB {
		t.Fatalf("expected only the non-acting team %s to be reported, got %v", teamB, result.AffectedWishlistTeamIDs)
	}

	// The orchestrator only reports; stale entries stay on both lists.
	remaining, err := fx.wishlistRepo.ListByTeam(t.Context(), memory.LeagueIDPremierLeague, teamB)
	if err != nil {
		t.Fatalf("list wishlist failed: %v", err)
	}
	if len(remaining) != 1 {
		t.Fatalf("expected wishlist entry to survive the pick, got %d entries", len(remaining))
	}
}

func TestDraftService_Reset(t *testing.T) {
	fx := newDraftFixture(roster.DefaultRules())
	view := setupTwoTeamSnake(t, fx)

	if _, err := fx.service.DraftPlayer(t.Context(), memory.LeagueIDPremierLeague, "epl-mid-01"); err != nil {
		t.Fatalf("pick failed: %v", err)
	}
	if err := fx.wishlistRepo.ReplaceForTeam(t.Context(), memory.LeagueIDPremierLeague, view.DraftOrder[0], []wishlist.Entry{{
		LeagueID: memory.LeagueIDPremierLeague,
		TeamID:   view.DraftOrder[0],
		PlayerID: "epl-fwd-01",
		Rank:     1,
	}}); err != nil {
		t.Fatalf("seed wishlist failed: %v", err)
	}

	if err := fx.service.Reset(t.Context(), memory.LeagueIDPremierLeague); err != nil {
		t.Fatalf("reset failed: %v", err)
	}

	if _, err := fx.service.State(t.Context(), memory.LeagueIDPremierLeague); !errors.Is(err, draft.ErrNoActiveDraft) {
		t.Fatalf("expected no draft after reset, got %v", err)
	}

	got, exists, err := fx.playerRepo.GetByID(t.Context(), memory.LeagueIDPremierLeague, "epl-mid-01")
	if err != nil || !exists {
		t.Fatalf("player lookup failed: exists=%v err=%v", exists, err)
	}
	if got.Drafted || got.OwnerID != "" {
		t.Fatalf("reset must return players to the pool")
	}

	teams, err := fx.teamRepo.ListByLeague(t.Context(), memory.LeagueIDPremierLeague)
	if err != nil {
		t.Fatalf("list teams failed: %v", err)
	}
	if len(teams) != 0 {
		t.Fatalf("expected teams removed on reset, got %d", len(teams))
	}

	remaining, err := fx.wishlistRepo.ListByTeam(t.Context(), memory.LeagueIDPremierLeague, view.DraftOrder[0])
	if err != nil {
		t.Fatalf("list wishlist failed: %v", err)
	}
	if len(remaining) != 0 {
		t.Fatalf("expected wishlists removed on reset, got %d entries", len(remaining))
	}

	if _, exists, err := fx.leagueRepo.GetByID(t.Context(), memory.LeagueIDPremierLeague); err != nil || !exists {
		t.Fatalf("league record must survive reset: exists=%v err=%v", exists, err)
	}
}

func TestNewDraftService_DefaultsIDGenerator(t *testing.T) {
	leagueRepo := memory.NewLeagueRepository(memory.SeedLeagues())
	playerRepo := memory.NewPlayerRepository(memory.SeedPlayers())
	teamRepo := memory.NewTeamRepository(nil)
	draftRepo := memory.NewDraftRepository(playerRepo)
	wishlistRepo := memory.NewWishlistRepository()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	service := NewDraftService(
		leagueRepo,
		teamRepo,
		playerRepo,
		draftRepo,
		wishlistRepo,
		roster.DefaultRules(),
		nil,
		nil,
		logger,
	)

	view, err := service.SetupDraft(t.Context(), SetupDraftInput{
		LeagueID: memory.LeagueIDPremierLeague,
		Snake:    true,
		Teams: []TeamSpec{
			{Name: "Anfield Army", Owner: "alice"},
			{Name: "Blue Moon", Owner: "bob"},
		},
	})
	if err != nil {
		t.Fatalf("setup with nil id generator failed: %v", err)
	}
	if len(view.DraftOrder) != 2 {
		t.Fatalf("expected 2 generated team ids, got %d", len(view.DraftOrder))
	}
	for _, teamID := range view.DraftOrder {
		if teamID == "" {
			t.Fatalf("draft order contains an empty team id: %v", view.DraftOrder)
		}
	}
}

type failingWishlistRepo struct {
	*memory.WishlistRepository
}

func (r failingWishlistRepo) ListTeamIDsForPlayer(_ context.Context, _, _ string) ([]string, error) {
	return nil, errors.New("wishlist store unavailable")
}

func TestDraftService_DraftPlayer_WishlistReadFailureLeavesPickUnapplied(t *testing.T) {
	leagueRepo := memory.NewLeagueRepository(memory.SeedLeagues())
	playerRepo := memory.NewPlayerRepository(memory.SeedPlayers())
	teamRepo := memory.NewTeamRepository(nil)
	draftRepo := memory.NewDraftRepository(playerRepo)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	service := NewDraftService(
		leagueRepo,
		teamRepo,
		playerRepo,
		draftRepo,
		failingWishlistRepo{memory.NewWishlistRepository()},
		roster.DefaultRules(),
		nil,
		&sequenceIDGenerator{prefix: "team"},
		logger,
	)

	if _, err := service.SetupDraft(t.Context(), SetupDraftInput{
		LeagueID: memory.LeagueIDPremierLeague,
		Snake:    true,
		Teams: []TeamSpec{
			{Name: "Anfield Army", Owner: "alice"},
			{Name: "Blue Moon", Owner: "bob"},
		},
	}); err != nil {
		t.Fatalf("setup draft failed: %v", err)
	}

	if _, err := service.DraftPlayer(t.Context(), memory.LeagueIDPremierLeague, "epl-mid-01"); err == nil {
		t.Fatalf("expected pick to fail when the wishlist read fails")
	}

	got, exists, err := playerRepo.GetByID(t.Context(), memory.LeagueIDPremierLeague, "epl-mid-01")
	if err != nil || !exists {
		t.Fatalf("player lookup failed: exists=%v err=%v", exists, err)
	}
	if got.Drafted || got.OwnerID != "" {
		t.Fatalf("failed pick must not mark the player drafted, got drafted=%v owner=%s", got.Drafted, got.OwnerID)
	}

	record, exists, err := draftRepo.GetByLeague(t.Context(), memory.LeagueIDPremierLeague)
	if err != nil || !exists {
		t.Fatalf("draft lookup failed: exists=%v err=%v", exists, err)
	}
	if record.CurrentPick != 1 {
		t.Fatalf("failed pick must not advance the draft, got pick=%d", record.CurrentPick)
	}
}
