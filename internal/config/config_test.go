package config

import (
	"testing"
	"time"
)

func TestLoad_AppEnvValidation(t *testing.T) {
	t.Setenv("APP_ENV", "invalid")
	if _, err := Load(); err == nil {
		t.Fatalf("expected error for invalid APP_ENV")
	}
}

func TestLoad_StorageDriverValidation(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("STORAGE_DRIVER", "redis")

	if _, err := Load(); err == nil {
		t.Fatalf("expected error for invalid STORAGE_DRIVER")
	}
}

func TestLoad_PostgresRequiresDBURL(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("STORAGE_DRIVER", StoragePostgres)
	t.Setenv("DB_URL", "")

	if _, err := Load(); err == nil {
		t.Fatalf("expected error when STORAGE_DRIVER=postgres without DB_URL")
	}
}

func TestLoad_UptraceRequiresDSNWhenEnabled(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("UPTRACE_ENABLED", "true")
	t.Setenv("UPTRACE_DSN", "")

	if _, err := Load(); err == nil {
		t.Fatalf("expected error when UPTRACE_ENABLED=true without UPTRACE_DSN")
	}
}

func TestLoad_ProdRequiresAdminToken(t *testing.T) {
	t.Setenv("APP_ENV", EnvProd)
	t.Setenv("ADMIN_TOKEN", "")

	if _, err := Load(); err == nil {
		t.Fatalf("expected error when APP_ENV=prod without ADMIN_TOKEN")
	}
}

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.StorageDriver != StorageMemory {
		t.Fatalf("unexpected default StorageDriver: %q", cfg.StorageDriver)
	}
	if cfg.HTTPAddr != ":8080" {
		t.Fatalf("unexpected default HTTPAddr: %q", cfg.HTTPAddr)
	}
	if cfg.CacheTTL != 60*time.Second {
		t.Fatalf("unexpected default CacheTTL: %s", cfg.CacheTTL)
	}
	if !cfg.DraftSnakeDefault {
		t.Fatalf("expected DraftSnakeDefault=true")
	}
	if cfg.DraftMaxPerClub != 3 {
		t.Fatalf("unexpected default DraftMaxPerClub: %d", cfg.DraftMaxPerClub)
	}
	if cfg.DraftMaxGoalkeepers != 2 || cfg.DraftMaxDefenders != 5 || cfg.DraftMaxMidfielders != 5 || cfg.DraftMaxForwards != 3 {
		t.Fatalf("unexpected default roster limits: gk=%d def=%d mid=%d fwd=%d",
			cfg.DraftMaxGoalkeepers, cfg.DraftMaxDefenders, cfg.DraftMaxMidfielders, cfg.DraftMaxForwards)
	}
	if cfg.ImportWorkers != 8 {
		t.Fatalf("unexpected default ImportWorkers: %d", cfg.ImportWorkers)
	}
}

func TestLoad_RosterLimitOverrides(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("DRAFT_MAX_PER_CLUB", "2")
	t.Setenv("DRAFT_MAX_FORWARDS", "4")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.DraftMaxPerClub != 2 {
		t.Fatalf("unexpected DraftMaxPerClub: %d", cfg.DraftMaxPerClub)
	}
	if cfg.DraftMaxForwards != 4 {
		t.Fatalf("unexpected DraftMaxForwards: %d", cfg.DraftMaxForwards)
	}

	t.Setenv("DRAFT_MAX_PER_CLUB", "0")
	if _, err := Load(); err == nil {
		t.Fatalf("expected error for DRAFT_MAX_PER_CLUB=0")
	}
}

func TestLoad_FPLConfigParsing(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("FPL_ENABLED", "true")
	t.Setenv("FPL_TIMEOUT", "5s")
	t.Setenv("FPL_MAX_RETRIES", "2")
	t.Setenv("FPL_CIRCUIT_FAILURE_COUNT", "3")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if !cfg.FPLEnabled {
		t.Fatalf("expected FPLEnabled=true")
	}
	if cfg.FPLTimeout != 5*time.Second {
		t.Fatalf("unexpected FPLTimeout: %s", cfg.FPLTimeout)
	}
	if cfg.FPLMaxRetries != 2 {
		t.Fatalf("unexpected FPLMaxRetries: %d", cfg.FPLMaxRetries)
	}
	if cfg.FPLCircuitFailureCount != 3 {
		t.Fatalf("unexpected FPLCircuitFailureCount: %d", cfg.FPLCircuitFailureCount)
	}
}

func TestLoad_UptraceDSNFromOTLPHeaders(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("UPTRACE_ENABLED", "true")
	t.Setenv("UPTRACE_DSN", "")
	t.Setenv("OTEL_EXPORTER_OTLP_HEADERS", `uptrace-dsn="https://token@api.uptrace.dev?grpc=4317"`)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.UptraceDSN != "https://token@api.uptrace.dev?grpc=4317" {
		t.Fatalf("unexpected UptraceDSN: %q", cfg.UptraceDSN)
	}
}
