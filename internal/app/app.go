package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/draft-league/external/fpl"
	"github.com/riskibarqy/draft-league/internal/config"
	"github.com/riskibarqy/draft-league/internal/domain/draft"
	"github.com/riskibarqy/draft-league/internal/domain/league"
	"github.com/riskibarqy/draft-league/internal/domain/player"
	"github.com/riskibarqy/draft-league/internal/domain/roster"
	"github.com/riskibarqy/draft-league/internal/domain/team"
	"github.com/riskibarqy/draft-league/internal/domain/wishlist"
	"github.com/riskibarqy/draft-league/internal/infrastructure/repository/memory"
	"github.com/riskibarqy/draft-league/internal/infrastructure/repository/postgres"
	"github.com/riskibarqy/draft-league/internal/interfaces/httpapi"
	"github.com/riskibarqy/draft-league/internal/platform/cache"
	idgen "github.com/riskibarqy/draft-league/internal/platform/id"
	"github.com/riskibarqy/draft-league/internal/platform/logging"
	"github.com/riskibarqy/draft-league/internal/platform/resilience"
	"github.com/riskibarqy/draft-league/internal/usecase"
)

type repositories struct {
	leagues   league.Repository
	teams     team.Repository
	players   player.Repository
	drafts    draft.Repository
	wishlists wishlist.Repository
}

func NewHTTPServer(cfg config.Config, logger *slog.Logger) (*http.Server, error) {
	repos, db, err := buildRepositories(cfg)
	if err != nil {
		return nil, err
	}

	var listings *cache.Store
	if cfg.CacheEnabled {
		listings = cache.NewStore(cfg.CacheTTL)
	}

	rules := rosterRules(cfg)
	idGen := idgen.NewRandomGenerator()

	leagueSvc := usecase.NewLeagueService(repos.leagues, repos.teams, repos.players, repos.drafts, repos.wishlists, logger)
	teamSvc := usecase.NewTeamService(repos.teams, repos.players)
	playerSvc := usecase.NewPlayerService(repos.leagues, repos.players, listings)
	draftSvc := usecase.NewDraftService(
		repos.leagues,
		repos.teams,
		repos.players,
		repos.drafts,
		repos.wishlists,
		rules,
		listings,
		idGen,
		logger,
	)
	wishlistSvc := usecase.NewWishlistService(repos.teams, repos.players, repos.wishlists, logger)
	ingestionSvc := usecase.NewIngestionService(
		repos.leagues,
		repos.players,
		buildPlayerSource(cfg),
		listings,
		idGen,
		logger,
	)

	handler := httpapi.NewHandler(leagueSvc, teamSvc, playerSvc, draftSvc, wishlistSvc, ingestionSvc, logger)
	router := httpapi.NewRouter(handler, logger, cfg.CORSAllowedOrigins, cfg.AdminToken, cfg.InternalJobToken)

	server := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}
	if server.Addr == "" {
		return nil, fmt.Errorf("http server addr cannot be empty")
	}
	if db != nil {
		server.RegisterOnShutdown(func() {
			_ = db.Close()
		})
	}

	return server, nil
}

func buildRepositories(cfg config.Config) (repositories, *sqlx.DB, error) {
	if cfg.StorageDriver == config.StorageMemory {
		playerRepo := memory.NewPlayerRepository(memory.SeedPlayers())
		return repositories{
			leagues:   memory.NewLeagueRepository(memory.SeedLeagues()),
			teams:     memory.NewTeamRepository(nil),
			players:   playerRepo,
			drafts:    memory.NewDraftRepository(playerRepo),
			wishlists: memory.NewWishlistRepository(),
		}, nil, nil
	}

	db, err := openDB(cfg)
	if err != nil {
		return repositories{}, nil, err
	}
	if err := postgres.BootstrapSeed(context.Background(), db); err != nil {
		_ = db.Close()
		return repositories{}, nil, fmt.Errorf("bootstrap seed: %w", err)
	}

	return repositories{
		leagues:   postgres.NewLeagueRepository(db),
		teams:     postgres.NewTeamRepository(db),
		players:   postgres.NewPlayerRepository(db),
		drafts:    postgres.NewDraftRepository(db),
		wishlists: postgres.NewWishlistRepository(db),
	}, db, nil
}

func buildPlayerSource(cfg config.Config) usecase.PlayerSource {
	if !cfg.FPLEnabled {
		return nil
	}

	return fpl.NewClient(fpl.ClientConfig{
		BaseURL:    cfg.FPLBaseURL,
		Timeout:    cfg.FPLTimeout,
		MaxRetries: cfg.FPLMaxRetries,
		Logger:     logging.Default(),
		CircuitBreaker: resilience.CircuitBreakerConfig{
			Enabled:          cfg.FPLCircuitEnabled,
			FailureThreshold: cfg.FPLCircuitFailureCount,
			OpenTimeout:      cfg.FPLCircuitOpenTimeout,
			HalfOpenMaxReq:   cfg.FPLCircuitHalfOpenMaxReq,
		},
	})
}

func rosterRules(cfg config.Config) roster.Rules {
	rules := roster.DefaultRules()
	if cfg.DraftMaxPerClub > 0 {
		rules.MaxPerClub = cfg.DraftMaxPerClub
	}
	limits := map[player.Position]int{
		player.PositionGoalkeeper: cfg.DraftMaxGoalkeepers,
		player.PositionDefender:   cfg.DraftMaxDefenders,
		player.PositionMidfielder: cfg.DraftMaxMidfielders,
		player.PositionForward:    cfg.DraftMaxForwards,
	}
	for position, limit := range limits {
		if limit > 0 {
			rules.MaxByPosition[position] = limit
		}
	}

	return rules
}
