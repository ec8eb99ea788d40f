package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/riskibarqy/draft-league/internal/domain/draft"
	"github.com/riskibarqy/draft-league/internal/domain/league"
	"github.com/riskibarqy/draft-league/internal/domain/player"
	"github.com/riskibarqy/draft-league/internal/domain/roster"
	"github.com/riskibarqy/draft-league/internal/domain/team"
	"github.com/riskibarqy/draft-league/internal/domain/wishlist"
	"github.com/riskibarqy/draft-league/internal/platform/cache"
	idgen "github.com/riskibarqy/draft-league/internal/platform/id"
)

// TeamSpec is one roster slot requested at draft setup.
type TeamSpec struct {
	Name  string
	Owner string
}

// SetupDraftInput creates a league draft. When LeagueID is set the draft
// attaches to an existing league and its imported pool; otherwise a new
// league is created from Name and Season.
type SetupDraftInput struct {
	LeagueID   string
	LeagueName string
	Season     string
	Snake      bool
	Teams      []TeamSpec
}

// PickResult reports one applied pick. AffectedWishlistTeamIDs names the
// other teams whose wishlists contained the player; the caller notifies
// them, the orchestrator never edits their lists.
type PickResult struct {
	Player                  player.Player
	Team                    team.Team
	Pick                    int
	Round                   int
	AffectedWishlistTeamIDs []string
	DraftCompleted          bool
}

// TeamProgress is one team's roster fill inside the draft state view.
type TeamProgress struct {
	Team            team.Team
	PlayersOwned    int
	CountByPosition map[player.Position]int
}

// DraftView is a read-only snapshot of a league's draft.
type DraftView struct {
	LeagueID     string
	State        draft.State
	CurrentPick  int
	CurrentRound int
	ReverseRound bool
	ActingTeam   team.Team
	DraftOrder   []string
	TotalTeams   int
	IsSnake      bool
	RosterSize   int
	Teams        []TeamProgress
}

// DraftService orchestrates the draft state machine: it resolves the acting
// team through the sequencer, checks roster legality, and applies picks
// atomically inside a per-league critical section.
type DraftService struct {
	leagueRepo   league.Repository
	teamRepo     team.Repository
	playerRepo   player.Repository
	draftRepo    draft.Repository
	wishlistRepo wishlist.Repository
	rules        roster.Rules
	listings     *cache.Store
	idGen        idgen.Generator
	logger       *slog.Logger
	now          func() time.Time

	locks sync.Map // leagueID -> *sync.Mutex
}

func NewDraftService(
	leagueRepo league.Repository,
	teamRepo team.Repository,
	playerRepo player.Repository,
	draftRepo draft.Repository,
	wishlistRepo wishlist.Repository,
	rules roster.Rules,
	listings *cache.Store,
	idGen idgen.Generator,
	logger *slog.Logger,
) *DraftService {
	if idGen == nil {
		idGen = idgen.NewRandomGenerator()
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &DraftService{
		leagueRepo:   leagueRepo,
		teamRepo:     teamRepo,
		playerRepo:   playerRepo,
		draftRepo:    draftRepo,
		wishlistRepo: wishlistRepo,
		rules:        rules,
		listings:     listings,
		idGen:        idGen,
		logger:       logger,
		now:          time.Now,
	}
}

func (s *DraftService) SetupDraft(ctx context.Context, input SetupDraftInput) (DraftView, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.DraftService.SetupDraft")
	defer span.End()

	specs := make([]TeamSpec, 0, len(input.Teams))
	for _, spec := range input.Teams {
		spec.Name = strings.TrimSpace(spec.Name)
		spec.Owner = strings.TrimSpace(spec.Owner)
		if spec.Name == "" || spec.Owner == "" {
			continue
		}
		specs = append(specs, spec)
	}
	if len(specs) == 0 {
		return DraftView{}, fmt.Errorf("%w: at least one team with a name and owner is required", ErrInvalidSetup)
	}

	target, err := s.resolveSetupLeague(ctx, input)
	if err != nil {
		return DraftView{}, err
	}

	lock := s.leagueLock(target.ID)
	lock.Lock()
	defer lock.Unlock()

	if _, exists, err := s.draftRepo.GetByLeague(ctx, target.ID); err != nil {
		return DraftView{}, fmt.Errorf("get existing draft: %w", err)
	} else if exists {
		return DraftView{}, fmt.Errorf("%w: league %s already has a draft", ErrInvalidSetup, target.ID)
	}

	teams := make([]team.Team, 0, len(specs))
	order := make([]string, 0, len(specs))
	for _, spec := range specs {
		teamID, err := s.idGen.NewID()
		if err != nil {
			return DraftView{}, fmt.Errorf("generate team id: %w", err)
		}
		item := team.Team{
			ID:       teamID,
			LeagueID: target.ID,
			Name:     spec.Name,
			Owner:    spec.Owner,
		}
		if err := item.Validate(); err != nil {
			return DraftView{}, fmt.Errorf("%w: %v", ErrInvalidSetup, err)
		}
		teams = append(teams, item)
		order = append(order, teamID)
	}

	record, err := draft.New(target.ID, order, input.Snake)
	if err != nil {
		return DraftView{}, fmt.Errorf("%w: %v", ErrInvalidSetup, err)
	}

	if err := s.teamRepo.CreateAll(ctx, teams); err != nil {
		return DraftView{}, fmt.Errorf("create draft teams: %w", err)
	}
	if err := s.draftRepo.Create(ctx, record); err != nil {
		return DraftView{}, fmt.Errorf("create draft: %w", err)
	}

	s.logger.InfoContext(ctx, "draft created",
		"league_id", target.ID,
		"teams", len(teams),
		"snake", input.Snake,
	)

	return s.buildView(ctx, record, teams)
}

func (s *DraftService) resolveSetupLeague(ctx context.Context, input SetupDraftInput) (league.League, error) {
	if leagueID := strings.TrimSpace(input.LeagueID); leagueID != "" {
		item, exists, err := s.leagueRepo.GetByID(ctx, leagueID)
		if err != nil {
			return league.League{}, fmt.Errorf("get league: %w", err)
		}
		if !exists {
			return league.League{}, fmt.Errorf("%w: league=%s", ErrNotFound, leagueID)
		}
		return item, nil
	}

	name := strings.TrimSpace(input.LeagueName)
	season := strings.TrimSpace(input.Season)
	if name == "" {
		return league.League{}, fmt.Errorf("%w: league name is required", ErrInvalidSetup)
	}
	if season == "" {
		return league.League{}, fmt.Errorf("%w: league season is required", ErrInvalidSetup)
	}

	if _, exists, err := s.leagueRepo.GetByName(ctx, name); err != nil {
		return league.League{}, fmt.Errorf("get league by name: %w", err)
	} else if exists {
		return league.League{}, fmt.Errorf("%w: league name %q already exists", ErrInvalidSetup, name)
	}

	leagueID, err := s.idGen.NewID()
	if err != nil {
		return league.League{}, fmt.Errorf("generate league id: %w", err)
	}
	item := league.League{
		ID:        leagueID,
		Name:      name,
		Season:    season,
		CreatedAt: s.now().UTC(),
	}
	if err := item.Validate(); err != nil {
		return league.League{}, fmt.Errorf("%w: %v", ErrInvalidSetup, err)
	}
	if err := s.leagueRepo.Create(ctx, item); err != nil {
		return league.League{}, fmt.Errorf("create league: %w", err)
	}

	return item, nil
}

// DraftPlayer applies one pick for the team on the clock. Every check runs
// inside the league's critical section so concurrent attempts serialize and
// losers re-validate against already-advanced state.
func (s *DraftService) DraftPlayer(ctx context.Context, leagueID, playerID string) (PickResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.DraftService.DraftPlayer")
	defer span.End()

	leagueID = strings.TrimSpace(leagueID)
	playerID = strings.TrimSpace(playerID)
	if leagueID == "" {
		return PickResult{}, fmt.Errorf("%w: league id is required", ErrInvalidInput)
	}
	if playerID == "" {
		return PickResult{}, fmt.Errorf("%w: player id is required", ErrInvalidInput)
	}

	lock := s.leagueLock(leagueID)
	lock.Lock()
	defer lock.Unlock()

	record, exists, err := s.draftRepo.GetByLeague(ctx, leagueID)
	if err != nil {
		return PickResult{}, fmt.Errorf("get draft: %w", err)
	}
	if !exists || !record.IsActive {
		return PickResult{}, fmt.Errorf("%w: league=%s", draft.ErrNoActiveDraft, leagueID)
	}
	if record.Completed(s.rules.RosterSize()) {
		return PickResult{}, fmt.Errorf("%w: league=%s", draft.ErrDraftComplete, leagueID)
	}
	if record.IsLocked {
		return PickResult{}, fmt.Errorf("%w: league=%s", draft.ErrDraftLocked, leagueID)
	}

	candidate, exists, err := s.playerRepo.GetByID(ctx, leagueID, playerID)
	if err != nil {
		return PickResult{}, fmt.Errorf("get player: %w", err)
	}
	if !exists || candidate.Drafted {
		return PickResult{}, fmt.Errorf("%w: player=%s", draft.ErrPlayerUnavailable, playerID)
	}

	actingTeamID, round, err := record.ActingTeam()
	if err != nil {
		return PickResult{}, fmt.Errorf("resolve acting team: %w", err)
	}
	actingTeam, exists, err := s.teamRepo.GetByID(ctx, leagueID, actingTeamID)
	if err != nil {
		return PickResult{}, fmt.Errorf("get acting team: %w", err)
	}
	if !exists {
		return PickResult{}, fmt.Errorf("%w: draft order references unknown team %s", ErrDependencyUnavailable, actingTeamID)
	}

	owned, err := s.playerRepo.ListByOwner(ctx, leagueID, actingTeamID)
	if err != nil {
		return PickResult{}, fmt.Errorf("list owned players: %w", err)
	}
	if err := roster.CanDraft(owned, candidate, s.rules); err != nil {
		return PickResult{}, fmt.Errorf("pick rejected for %s: %w", actingTeam.Name, err)
	}

	// Read the affected wishlists before the pick is written. Wishlist
	// entries only change under this league lock, and a failed read here
	// must not surface as an error for a pick that was already applied.
	affected, err := s.wishlistRepo.ListTeamIDsForPlayer(ctx, leagueID, playerID)
	if err != nil {
		return PickResult{}, fmt.Errorf("list wishlists holding player: %w", err)
	}
	others := make([]string, 0, len(affected))
	for _, teamID := range affected {
		if teamID != actingTeamID {
			others = append(others, teamID)
		}
	}

	pickNumber := record.CurrentPick
	candidate.Drafted = true
	candidate.OwnerID = actingTeamID

	advanced := record
	advanced.DraftOrder = append([]string(nil), record.DraftOrder...)
	advanced.Advance()
	completed := advanced.Completed(s.rules.RosterSize())
	if completed {
		advanced.IsActive = false
	}

	if err := s.draftRepo.ApplyPick(ctx, advanced, candidate); err != nil {
		return PickResult{}, fmt.Errorf("apply pick: %w", err)
	}
	s.invalidateListings(ctx, leagueID)

	s.logger.InfoContext(ctx, "player drafted",
		"league_id", leagueID,
		"player_id", playerID,
		"team_id", actingTeamID,
		"pick", pickNumber,
		"round", round,
		"draft_completed", completed,
	)

	return PickResult{
		Player:                  candidate,
		Team:                    actingTeam,
		Pick:                    pickNumber,
		Round:                   round,
		AffectedWishlistTeamIDs: others,
		DraftCompleted:          completed,
	}, nil
}

// ToggleLock flips the admin lock and returns the new locked state.
func (s *DraftService) ToggleLock(ctx context.Context, leagueID string) (bool, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.DraftService.ToggleLock")
	defer span.End()

	leagueID = strings.TrimSpace(leagueID)
	if leagueID == "" {
		return false, fmt.Errorf("%w: league id is required", ErrInvalidInput)
	}

	lock := s.leagueLock(leagueID)
	lock.Lock()
	defer lock.Unlock()

	record, exists, err := s.draftRepo.GetByLeague(ctx, leagueID)
	if err != nil {
		return false, fmt.Errorf("get draft: %w", err)
	}
	if !exists {
		return false, fmt.Errorf("%w: league=%s", draft.ErrNoActiveDraft, leagueID)
	}

	record.IsLocked = !record.IsLocked
	if err := s.draftRepo.Save(ctx, record); err != nil {
		return false, fmt.Errorf("save draft: %w", err)
	}

	s.logger.InfoContext(ctx, "draft lock toggled", "league_id", leagueID, "locked", record.IsLocked)

	return record.IsLocked, nil
}

// Reset removes the league's draft, its teams and wishlists, and returns
// every player to the pool. The league record itself survives.
func (s *DraftService) Reset(ctx context.Context, leagueID string) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.DraftService.Reset")
	defer span.End()

	leagueID = strings.TrimSpace(leagueID)
	if leagueID == "" {
		return fmt.Errorf("%w: league id is required", ErrInvalidInput)
	}

	lock := s.leagueLock(leagueID)
	lock.Lock()
	defer lock.Unlock()

	if _, exists, err := s.leagueRepo.GetByID(ctx, leagueID); err != nil {
		return fmt.Errorf("get league: %w", err)
	} else if !exists {
		return fmt.Errorf("%w: league=%s", ErrNotFound, leagueID)
	}

	if err := s.draftRepo.DeleteByLeague(ctx, leagueID); err != nil {
		return fmt.Errorf("delete draft: %w", err)
	}
	if err := s.wishlistRepo.DeleteByLeague(ctx, leagueID); err != nil {
		return fmt.Errorf("delete wishlists: %w", err)
	}
	if err := s.teamRepo.DeleteByLeague(ctx, leagueID); err != nil {
		return fmt.Errorf("delete teams: %w", err)
	}
	if err := s.playerRepo.ClearOwnership(ctx, leagueID); err != nil {
		return fmt.Errorf("clear player ownership: %w", err)
	}
	s.invalidateListings(ctx, leagueID)

	s.logger.InfoContext(ctx, "draft reset", "league_id", leagueID)

	return nil
}

// State returns a read-only snapshot of the league's draft.
func (s *DraftService) State(ctx context.Context, leagueID string) (DraftView, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.DraftService.State")
	defer span.End()

	leagueID = strings.TrimSpace(leagueID)
	if leagueID == "" {
		return DraftView{}, fmt.Errorf("%w: league id is required", ErrInvalidInput)
	}

	record, exists, err := s.draftRepo.GetByLeague(ctx, leagueID)
	if err != nil {
		return DraftView{}, fmt.Errorf("get draft: %w", err)
	}
	if !exists {
		return DraftView{}, fmt.Errorf("%w: league=%s", draft.ErrNoActiveDraft, leagueID)
	}

	teams, err := s.teamRepo.ListByLeague(ctx, leagueID)
	if err != nil {
		return DraftView{}, fmt.Errorf("list teams: %w", err)
	}

	return s.buildView(ctx, record, teams)
}

func (s *DraftService) buildView(ctx context.Context, record draft.Draft, teams []team.Team) (DraftView, error) {
	view := DraftView{
		LeagueID:    record.LeagueID,
		State:       record.State(s.rules.RosterSize()),
		CurrentPick: record.CurrentPick,
		DraftOrder:  append([]string(nil), record.DraftOrder...),
		TotalTeams:  record.TotalTeams,
		IsSnake:     record.IsSnake,
		RosterSize:  s.rules.RosterSize(),
	}

	round, err := draft.CurrentRound(record.CurrentPick, record.TotalTeams)
	if err != nil {
		return DraftView{}, fmt.Errorf("derive round: %w", err)
	}
	view.CurrentRound = round
	view.ReverseRound = draft.IsReverseRound(round, record.IsSnake)

	if view.State == draft.StateActive || view.State == draft.StateLocked {
		actingTeamID, _, err := record.ActingTeam()
		if err != nil {
			return DraftView{}, fmt.Errorf("resolve acting team: %w", err)
		}
		for _, t := range teams {
			if t.ID == actingTeamID {
				view.ActingTeam = t
				break
			}
		}
	}

	view.Teams = make([]TeamProgress, 0, len(teams))
	for _, t := range teams {
		owned, err := s.playerRepo.ListByOwner(ctx, record.LeagueID, t.ID)
		if err != nil {
			return DraftView{}, fmt.Errorf("list owned players for %s: %w", t.ID, err)
		}
		counts := make(map[player.Position]int, len(player.AllPositions))
		for _, p := range owned {
			counts[p.Position]++
		}
		view.Teams = append(view.Teams, TeamProgress{
			Team:            t,
			PlayersOwned:    len(owned),
			CountByPosition: counts,
		})
	}

	return view, nil
}

func (s *DraftService) invalidateListings(ctx context.Context, leagueID string) {
	if s.listings == nil {
		return
	}
	s.listings.DeletePrefix(ctx, listingCachePrefix(leagueID))
}

func (s *DraftService) leagueLock(leagueID string) *sync.Mutex {
	lock, _ := s.locks.LoadOrStore(leagueID, &sync.Mutex{})
	return lock.(*sync.Mutex)
}
