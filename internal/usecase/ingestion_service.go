package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/panjf2000/ants/v2"

	"github.com/riskibarqy/draft-league/internal/domain/league"
	"github.com/riskibarqy/draft-league/internal/domain/player"
	"github.com/riskibarqy/draft-league/internal/platform/cache"
	idgen "github.com/riskibarqy/draft-league/internal/platform/id"
)

const (
	defaultImportWorkers = 8
	maxImportErrors      = 25
)

// positionAliases maps the spellings seen in upstream feeds and spreadsheets
// onto the pool enum.
var positionAliases = map[string]player.Position{
	"GK":         player.PositionGoalkeeper,
	"GKP":        player.PositionGoalkeeper,
	"GOALKEEPER": player.PositionGoalkeeper,
	"DEF":        player.PositionDefender,
	"D":          player.PositionDefender,
	"DEFENDER":   player.PositionDefender,
	"MID":        player.PositionMidfielder,
	"M":          player.PositionMidfielder,
	"MIDFIELDER": player.PositionMidfielder,
	"FWD":        player.PositionForward,
	"FW":         player.PositionForward,
	"FOR":        player.PositionForward,
	"F":          player.PositionForward,
	"FORWARD":    player.PositionForward,
	"ST":         player.PositionForward,
}

// PlayerImportRow is one player as received from an upstream feed, before
// normalization.
type PlayerImportRow struct {
	ExternalID    string
	Name          string
	FullName      string
	Club          string
	Position      string
	Status        string
	NowCost       *float64
	TotalPoints   *int
	PointsPerGame *float64
	GoalsScored   *int
	Assists       *int
	Minutes       *int
}

type ImportPlayersInput struct {
	LeagueID   string
	Rows       []PlayerImportRow
	MaxWorkers int
}

type ImportRowError struct {
	Row     int    `json:"row"`
	Name    string `json:"name,omitempty"`
	Message string `json:"message"`
}

type ImportResult struct {
	LeagueID    string           `json:"league_id"`
	Received    int              `json:"received"`
	Imported    int              `json:"imported"`
	Failed      int              `json:"failed"`
	WorkerCount int              `json:"worker_count"`
	Errors      []ImportRowError `json:"errors,omitempty"`
}

// PlayerSource fetches the player pool from an external provider.
type PlayerSource interface {
	FetchPlayers(ctx context.Context) ([]PlayerImportRow, error)
}

// IngestionService loads player pools into a league, either from caller
// supplied rows or straight from an external source. Imports update stats in
// place and never touch draft ownership.
type IngestionService struct {
	leagueRepo league.Repository
	playerRepo player.Repository
	source     PlayerSource
	listings   *cache.Store
	idGen      idgen.Generator
	logger     *slog.Logger
}

func NewIngestionService(
	leagueRepo league.Repository,
	playerRepo player.Repository,
	source PlayerSource,
	listings *cache.Store,
	idGen idgen.Generator,
	logger *slog.Logger,
) *IngestionService {
	if idGen == nil {
		idGen = idgen.NewRandomGenerator()
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &IngestionService{
		leagueRepo: leagueRepo,
		playerRepo: playerRepo,
		source:     source,
		listings:   listings,
		idGen:      idGen,
		logger:     logger,
	}
}

// ImportPlayers validates and upserts the given rows. Rows are normalized in
// parallel, failures are reported per row, and one bad row never blocks the
// rest of the batch.
func (s *IngestionService) ImportPlayers(ctx context.Context, input ImportPlayersInput) (ImportResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.IngestionService.ImportPlayers")
	defer span.End()

	input.LeagueID = strings.TrimSpace(input.LeagueID)
	if input.LeagueID == "" {
		return ImportResult{}, fmt.Errorf("%w: league_id is required", ErrInvalidInput)
	}
	if len(input.Rows) == 0 {
		return ImportResult{}, fmt.Errorf("%w: rows are required", ErrInvalidInput)
	}

	_, exists, err := s.leagueRepo.GetByID(ctx, input.LeagueID)
	if err != nil {
		return ImportResult{}, fmt.Errorf("get league: %w", err)
	}
	if !exists {
		return ImportResult{}, fmt.Errorf("%w: league=%s", ErrNotFound, input.LeagueID)
	}

	workerCount := input.MaxWorkers
	if workerCount <= 0 {
		workerCount = defaultImportWorkers
	}
	if workerCount > len(input.Rows) {
		workerCount = len(input.Rows)
	}

	type rowOutcome struct {
		row    int
		player player.Player
		err    error
	}

	outcomes := make(chan rowOutcome, len(input.Rows))

	var importedCount atomic.Int32
	var failedCount atomic.Int32

	workerPool, err := ants.NewPool(workerCount)
	if err != nil {
		return ImportResult{}, fmt.Errorf("create worker pool: %w", err)
	}
	defer workerPool.Release()

	var workers sync.WaitGroup
	for i, row := range input.Rows {
		i, row := i, row
		workers.Add(1)
		if err := workerPool.Submit(func() {
			defer workers.Done()

			item, err := s.normalizeRow(ctx, input.LeagueID, row)
			if err != nil {
				failedCount.Add(1)
			} else {
				importedCount.Add(1)
			}
			outcomes <- rowOutcome{row: i, player: item, err: err}
		}); err != nil {
			workers.Done()
			return ImportResult{}, fmt.Errorf("submit row to worker pool: %w", err)
		}
	}

	workers.Wait()
	close(outcomes)

	result := ImportResult{
		LeagueID:    input.LeagueID,
		Received:    len(input.Rows),
		WorkerCount: workerCount,
	}
	items := make([]player.Player, 0, len(input.Rows))
	rowErrors := make([]ImportRowError, 0)
	for outcome := range outcomes {
		if outcome.err != nil {
			rowErrors = append(rowErrors, ImportRowError{
				Row:     outcome.row + 1,
				Name:    strings.TrimSpace(input.Rows[outcome.row].Name),
				Message: outcome.err.Error(),
			})
			continue
		}
		items = append(items, outcome.player)
	}
	sort.SliceStable(rowErrors, func(i, j int) bool {
		return rowErrors[i].Row < rowErrors[j].Row
	})
	if len(rowErrors) > maxImportErrors {
		rowErrors = rowErrors[:maxImportErrors]
	}

	if len(items) > 0 {
		if err := s.playerRepo.Upsert(ctx, items); err != nil {
			return ImportResult{}, fmt.Errorf("upsert players: %w", err)
		}
		if s.listings != nil {
			s.listings.DeletePrefix(ctx, listingCachePrefix(input.LeagueID))
		}
	}

	result.Imported = int(importedCount.Load())
	result.Failed = int(failedCount.Load())
	result.Errors = rowErrors

	s.logger.InfoContext(ctx, "players imported",
		"league_id", input.LeagueID,
		"received", result.Received,
		"imported", result.Imported,
		"failed", result.Failed,
	)

	return result, nil
}

// SyncFromSource pulls the full pool from the configured external source and
// imports it.
func (s *IngestionService) SyncFromSource(ctx context.Context, leagueID string, maxWorkers int) (ImportResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.IngestionService.SyncFromSource")
	defer span.End()

	if s.source == nil {
		return ImportResult{}, fmt.Errorf("%w: player source is not configured", ErrDependencyUnavailable)
	}

	rows, err := s.source.FetchPlayers(ctx)
	if err != nil {
		return ImportResult{}, fmt.Errorf("%w: fetch players: %v", ErrDependencyUnavailable, err)
	}
	if len(rows) == 0 {
		return ImportResult{}, fmt.Errorf("%w: player source returned no players", ErrDependencyUnavailable)
	}

	return s.ImportPlayers(ctx, ImportPlayersInput{
		LeagueID:   leagueID,
		Rows:       rows,
		MaxWorkers: maxWorkers,
	})
}

func (s *IngestionService) normalizeRow(ctx context.Context, leagueID string, row PlayerImportRow) (player.Player, error) {
	name := strings.TrimSpace(row.Name)
	if name == "" {
		return player.Player{}, fmt.Errorf("name is required")
	}
	club := strings.TrimSpace(row.Club)
	if club == "" {
		return player.Player{}, fmt.Errorf("club is required")
	}

	position, ok := positionAliases[strings.ToUpper(strings.TrimSpace(row.Position))]
	if !ok {
		return player.Player{}, fmt.Errorf("unknown position %q", row.Position)
	}

	status := player.StatusAvailable
	if raw := strings.ToLower(strings.TrimSpace(row.Status)); raw != "" {
		parsed, err := player.ParseStatus(raw)
		if err != nil {
			return player.Player{}, err
		}
		status = parsed
	}

	item := player.Player{
		LeagueID: leagueID,
		Name:     name,
		FullName: strings.TrimSpace(row.FullName),
		Club:     club,
		Position: position,
		Status:   status,
		Stats: player.Stats{
			NowCost:       row.NowCost,
			TotalPoints:   row.TotalPoints,
			PointsPerGame: row.PointsPerGame,
			GoalsScored:   row.GoalsScored,
			Assists:       row.Assists,
			Minutes:       row.Minutes,
		},
	}
	if item.FullName == "" {
		item.FullName = name
	}

	externalID := strings.TrimSpace(row.ExternalID)
	if externalID == "" {
		id, err := s.idGen.NewID()
		if err != nil {
			return player.Player{}, fmt.Errorf("generate player id: %w", err)
		}
		item.ID = id
		return item, nil
	}
	item.ID = externalID

	// Re-imports refresh stats but must never undo draft state.
	existing, found, err := s.playerRepo.GetByID(ctx, leagueID, externalID)
	if err != nil {
		return player.Player{}, fmt.Errorf("get player: %w", err)
	}
	if found {
		item.Drafted = existing.Drafted
		item.OwnerID = existing.OwnerID
	}

	return item, nil
}
