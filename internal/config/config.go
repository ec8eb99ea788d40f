package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/riskibarqy/draft-league/internal/platform/logging"
)

// Config stores runtime configuration for the service.
type Config struct {
	AppEnv                   string
	ServiceName              string
	ServiceVersion           string
	HTTPAddr                 string
	StorageDriver            string
	DBURL                    string
	DBDisablePreparedBinary  bool
	CacheEnabled             bool
	CacheTTL                 time.Duration
	CORSAllowedOrigins       []string
	ReadTimeout              time.Duration
	WriteTimeout             time.Duration
	PprofEnabled             bool
	PprofAddr                string
	UptraceEnabled           bool
	UptraceDSN               string
	PyroscopeEnabled         bool
	PyroscopeServerAddress   string
	PyroscopeAppName         string
	PyroscopeAuthToken       string
	PyroscopeBasicAuthUser   string
	PyroscopeBasicAuthPass   string
	PyroscopeUploadRate      time.Duration
	FPLEnabled               bool
	FPLBaseURL               string
	FPLTimeout               time.Duration
	FPLMaxRetries            int
	FPLCircuitEnabled        bool
	FPLCircuitFailureCount   int
	FPLCircuitOpenTimeout    time.Duration
	FPLCircuitHalfOpenMaxReq int
	AdminToken               string
	InternalJobToken         string
	ImportWorkers            int
	DraftSnakeDefault        bool
	DraftMaxPerClub          int
	DraftMaxGoalkeepers      int
	DraftMaxDefenders        int
	DraftMaxMidfielders      int
	DraftMaxForwards         int
	LogLevel                 logging.Level
}

const (
	EnvDev   = "dev"
	EnvStage = "stage"
	EnvProd  = "prod"
)

const (
	StorageMemory   = "memory"
	StoragePostgres = "postgres"
)

func Load() (Config, error) {
	appEnv, err := parseAppEnv(getEnv("APP_ENV", EnvDev))
	if err != nil {
		return Config{}, err
	}

	storageDriver, err := parseStorageDriver(getEnv("STORAGE_DRIVER", StorageMemory))
	if err != nil {
		return Config{}, err
	}

	dbURL := strings.TrimSpace(getEnv("DB_URL", ""))
	if storageDriver == StoragePostgres && dbURL == "" {
		return Config{}, fmt.Errorf("DB_URL is required when STORAGE_DRIVER=postgres")
	}

	dbDisablePreparedBinary, err := strconv.ParseBool(getEnv("DB_DISABLE_PREPARED_BINARY_RESULT", "true"))
	if err != nil {
		return Config{}, fmt.Errorf("parse DB_DISABLE_PREPARED_BINARY_RESULT: %w", err)
	}

	cacheEnabled, err := strconv.ParseBool(getEnv("CACHE_ENABLED", "true"))
	if err != nil {
		return Config{}, fmt.Errorf("parse CACHE_ENABLED: %w", err)
	}
	cacheTTL, err := time.ParseDuration(getEnv("CACHE_TTL", "60s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse CACHE_TTL: %w", err)
	}
	if cacheTTL <= 0 {
		return Config{}, fmt.Errorf("CACHE_TTL must be > 0")
	}

	readTimeout, err := time.ParseDuration(getEnv("APP_READ_TIMEOUT", "10s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse APP_READ_TIMEOUT: %w", err)
	}
	writeTimeout, err := time.ParseDuration(getEnv("APP_WRITE_TIMEOUT", "15s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse APP_WRITE_TIMEOUT: %w", err)
	}

	pprofEnabled, err := strconv.ParseBool(getEnv("PPROF_ENABLED", "false"))
	if err != nil {
		return Config{}, fmt.Errorf("parse PPROF_ENABLED: %w", err)
	}
	pprofAddr := strings.TrimSpace(getEnv("PPROF_ADDR", ":6060"))
	if pprofEnabled && pprofAddr == "" {
		return Config{}, fmt.Errorf("PPROF_ADDR is required when PPROF_ENABLED=true")
	}

	uptraceEnabled, err := strconv.ParseBool(getEnv("UPTRACE_ENABLED", "false"))
	if err != nil {
		return Config{}, fmt.Errorf("parse UPTRACE_ENABLED: %w", err)
	}
	uptraceDSN := strings.TrimSpace(getEnv("UPTRACE_DSN", ""))
	if uptraceDSN == "" {
		uptraceDSN = parseUptraceDSNFromOTLPHeaders(getEnv("OTEL_EXPORTER_OTLP_HEADERS", ""))
	}
	if uptraceEnabled && uptraceDSN == "" {
		return Config{}, fmt.Errorf("UPTRACE_DSN is required when UPTRACE_ENABLED=true")
	}

	pyroscopeEnabled, err := strconv.ParseBool(getEnv("PYROSCOPE_ENABLED", "false"))
	if err != nil {
		return Config{}, fmt.Errorf("parse PYROSCOPE_ENABLED: %w", err)
	}
	pyroscopeServerAddress := strings.TrimSpace(getEnv("PYROSCOPE_SERVER_ADDRESS", ""))
	if pyroscopeEnabled && pyroscopeServerAddress == "" {
		return Config{}, fmt.Errorf("PYROSCOPE_SERVER_ADDRESS is required when PYROSCOPE_ENABLED=true")
	}
	pyroscopeUploadRate, err := time.ParseDuration(getEnv("PYROSCOPE_UPLOAD_RATE", "15s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse PYROSCOPE_UPLOAD_RATE: %w", err)
	}
	if pyroscopeUploadRate <= 0 {
		return Config{}, fmt.Errorf("PYROSCOPE_UPLOAD_RATE must be > 0")
	}

	fplEnabled, err := strconv.ParseBool(getEnv("FPL_ENABLED", "false"))
	if err != nil {
		return Config{}, fmt.Errorf("parse FPL_ENABLED: %w", err)
	}
	fplTimeout, err := time.ParseDuration(getEnv("FPL_TIMEOUT", "20s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse FPL_TIMEOUT: %w", err)
	}
	if fplTimeout <= 0 {
		return Config{}, fmt.Errorf("FPL_TIMEOUT must be > 0")
	}
	fplMaxRetries, err := getEnvAsInt("FPL_MAX_RETRIES", 1)
	if err != nil {
		return Config{}, fmt.Errorf("parse FPL_MAX_RETRIES: %w", err)
	}
	if fplMaxRetries < 0 {
		return Config{}, fmt.Errorf("FPL_MAX_RETRIES must be >= 0")
	}
	fplCircuitEnabled, err := strconv.ParseBool(getEnv("FPL_CIRCUIT_ENABLED", "true"))
	if err != nil {
		return Config{}, fmt.Errorf("parse FPL_CIRCUIT_ENABLED: %w", err)
	}
	fplCircuitFailureCount, err := getEnvAsInt("FPL_CIRCUIT_FAILURE_COUNT", 5)
	if err != nil {
		return Config{}, fmt.Errorf("parse FPL_CIRCUIT_FAILURE_COUNT: %w", err)
	}
	if fplCircuitFailureCount < 1 {
		return Config{}, fmt.Errorf("FPL_CIRCUIT_FAILURE_COUNT must be >= 1")
	}
	fplCircuitOpenTimeout, err := time.ParseDuration(getEnv("FPL_CIRCUIT_OPEN_TIMEOUT", "15s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse FPL_CIRCUIT_OPEN_TIMEOUT: %w", err)
	}
	if fplCircuitOpenTimeout <= 0 {
		return Config{}, fmt.Errorf("FPL_CIRCUIT_OPEN_TIMEOUT must be > 0")
	}
	fplCircuitHalfOpenMaxReq, err := getEnvAsInt("FPL_CIRCUIT_HALF_OPEN_MAX_REQ", 2)
	if err != nil {
		return Config{}, fmt.Errorf("parse FPL_CIRCUIT_HALF_OPEN_MAX_REQ: %w", err)
	}
	if fplCircuitHalfOpenMaxReq < 1 {
		return Config{}, fmt.Errorf("FPL_CIRCUIT_HALF_OPEN_MAX_REQ must be >= 1")
	}

	importWorkers, err := getEnvAsInt("IMPORT_WORKERS", 8)
	if err != nil {
		return Config{}, fmt.Errorf("parse IMPORT_WORKERS: %w", err)
	}
	if importWorkers < 1 {
		return Config{}, fmt.Errorf("IMPORT_WORKERS must be >= 1")
	}

	draftSnakeDefault, err := strconv.ParseBool(getEnv("DRAFT_SNAKE_DEFAULT", "true"))
	if err != nil {
		return Config{}, fmt.Errorf("parse DRAFT_SNAKE_DEFAULT: %w", err)
	}
	draftMaxPerClub, err := getEnvAsInt("DRAFT_MAX_PER_CLUB", 3)
	if err != nil {
		return Config{}, fmt.Errorf("parse DRAFT_MAX_PER_CLUB: %w", err)
	}
	draftMaxGoalkeepers, err := getEnvAsInt("DRAFT_MAX_GOALKEEPERS", 2)
	if err != nil {
		return Config{}, fmt.Errorf("parse DRAFT_MAX_GOALKEEPERS: %w", err)
	}
	draftMaxDefenders, err := getEnvAsInt("DRAFT_MAX_DEFENDERS", 5)
	if err != nil {
		return Config{}, fmt.Errorf("parse DRAFT_MAX_DEFENDERS: %w", err)
	}
	draftMaxMidfielders, err := getEnvAsInt("DRAFT_MAX_MIDFIELDERS", 5)
	if err != nil {
		return Config{}, fmt.Errorf("parse DRAFT_MAX_MIDFIELDERS: %w", err)
	}
	draftMaxForwards, err := getEnvAsInt("DRAFT_MAX_FORWARDS", 3)
	if err != nil {
		return Config{}, fmt.Errorf("parse DRAFT_MAX_FORWARDS: %w", err)
	}
	for key, value := range map[string]int{
		"DRAFT_MAX_PER_CLUB":    draftMaxPerClub,
		"DRAFT_MAX_GOALKEEPERS": draftMaxGoalkeepers,
		"DRAFT_MAX_DEFENDERS":   draftMaxDefenders,
		"DRAFT_MAX_MIDFIELDERS": draftMaxMidfielders,
		"DRAFT_MAX_FORWARDS":    draftMaxForwards,
	} {
		if value < 1 {
			return Config{}, fmt.Errorf("%s must be >= 1", key)
		}
	}

	cfg := Config{
		AppEnv:                   appEnv,
		ServiceName:              getEnv("APP_SERVICE_NAME", "draft-league-api"),
		ServiceVersion:           getEnv("APP_SERVICE_VERSION", "dev"),
		HTTPAddr:                 getEnv("APP_HTTP_ADDR", ":8080"),
		StorageDriver:            storageDriver,
		DBURL:                    dbURL,
		DBDisablePreparedBinary:  dbDisablePreparedBinary,
		CacheEnabled:             cacheEnabled,
		CacheTTL:                 cacheTTL,
		CORSAllowedOrigins:       splitCSV(getEnv("CORS_ALLOWED_ORIGINS", "*")),
		ReadTimeout:              readTimeout,
		WriteTimeout:             writeTimeout,
		PprofEnabled:             pprofEnabled,
		PprofAddr:                pprofAddr,
		UptraceEnabled:           uptraceEnabled,
		UptraceDSN:               uptraceDSN,
		PyroscopeEnabled:         pyroscopeEnabled,
		PyroscopeServerAddress:   pyroscopeServerAddress,
		PyroscopeAuthToken:       strings.TrimSpace(getEnv("PYROSCOPE_AUTH_TOKEN", "")),
		PyroscopeBasicAuthUser:   strings.TrimSpace(getEnv("PYROSCOPE_BASIC_AUTH_USER", "")),
		PyroscopeBasicAuthPass:   strings.TrimSpace(getEnv("PYROSCOPE_BASIC_AUTH_PASSWORD", "")),
		PyroscopeUploadRate:      pyroscopeUploadRate,
		FPLEnabled:               fplEnabled,
		FPLBaseURL:               strings.TrimSpace(getEnv("FPL_BASE_URL", "https://fantasy.premierleague.com/api")),
		FPLTimeout:               fplTimeout,
		FPLMaxRetries:            fplMaxRetries,
		FPLCircuitEnabled:        fplCircuitEnabled,
		FPLCircuitFailureCount:   fplCircuitFailureCount,
		FPLCircuitOpenTimeout:    fplCircuitOpenTimeout,
		FPLCircuitHalfOpenMaxReq: fplCircuitHalfOpenMaxReq,
		AdminToken:               strings.TrimSpace(getEnv("ADMIN_TOKEN", "")),
		InternalJobToken:         strings.TrimSpace(getEnv("INTERNAL_JOB_TOKEN", "")),
		ImportWorkers:            importWorkers,
		DraftSnakeDefault:        draftSnakeDefault,
		DraftMaxPerClub:          draftMaxPerClub,
		DraftMaxGoalkeepers:      draftMaxGoalkeepers,
		DraftMaxDefenders:        draftMaxDefenders,
		DraftMaxMidfielders:      draftMaxMidfielders,
		DraftMaxForwards:         draftMaxForwards,
		LogLevel:                 parseLogLevel(getEnv("APP_LOG_LEVEL", "info")),
	}
	cfg.PyroscopeAppName = strings.TrimSpace(getEnv("PYROSCOPE_APP_NAME", cfg.ServiceName))
	if cfg.PyroscopeEnabled && cfg.PyroscopeAppName == "" {
		return Config{}, fmt.Errorf("PYROSCOPE_APP_NAME cannot be empty when PYROSCOPE_ENABLED=true")
	}
	if len(cfg.CORSAllowedOrigins) == 0 {
		return Config{}, fmt.Errorf("CORS_ALLOWED_ORIGINS cannot be empty")
	}
	if cfg.AppEnv == EnvProd && cfg.AdminToken == "" {
		return Config{}, fmt.Errorf("ADMIN_TOKEN is required when APP_ENV=prod")
	}

	return cfg, nil
}

func parseLogLevel(v string) logging.Level {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "debug":
		return logging.LevelDebug
	case "warn", "warning":
		return logging.LevelWarn
	case "error":
		return logging.LevelError
	default:
		return logging.LevelInfo
	}
}

func getEnv(key, fallback string) string {
	value := os.Getenv(key)
	if strings.TrimSpace(value) == "" {
		return fallback
	}

	return value
}

func getEnvAsInt(key string, fallback int) (int, error) {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback, nil
	}

	out, err := strconv.Atoi(value)
	if err != nil {
		return 0, err
	}

	return out, nil
}

func splitCSV(v string) []string {
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		item := strings.TrimSpace(part)
		if item == "" {
			continue
		}
		out = append(out, item)
	}

	return out
}

func parseUptraceDSNFromOTLPHeaders(raw string) string {
	if strings.TrimSpace(raw) == "" {
		return ""
	}

	items := strings.Split(raw, ",")
	for _, item := range items {
		parts := strings.SplitN(strings.TrimSpace(item), "=", 2)
		if len(parts) != 2 {
			continue
		}
		if strings.EqualFold(strings.TrimSpace(parts[0]), "uptrace-dsn") {
			value := strings.TrimSpace(parts[1])
			return strings.Trim(value, "\"'")
		}
	}

	return ""
}

func parseAppEnv(v string) (string, error) {
	value := strings.ToLower(strings.TrimSpace(v))
	switch value {
	case EnvDev, EnvStage, EnvProd:
		return value, nil
	default:
		return "", fmt.Errorf("invalid APP_ENV %q: valid values are %s, %s, %s", v, EnvDev, EnvStage, EnvProd)
	}
}

func parseStorageDriver(v string) (string, error) {
	value := strings.ToLower(strings.TrimSpace(v))
	switch value {
	case StorageMemory, StoragePostgres:
		return value, nil
	default:
		return "", fmt.Errorf("invalid STORAGE_DRIVER %q: valid values are %s, %s", v, StorageMemory, StoragePostgres)
	}
}
