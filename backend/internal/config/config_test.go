package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadUsesDefaultsAndYAMLOverrides(t *testing.T) {
	clearConfigEnv(t)

	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "config.yaml")
	yaml := `
ledger:
  store: memory
  recall_ttl: 2h
  rate:
    per_10sec: 4
analytics:
  retention: 720h
`
	if err := os.WriteFile(path, []byte(yaml), 0o600); err != nil {
		t.Fatalf("write temp config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load config: %v", err)
	}

	if cfg.Ledger.Store != StoreMemory {
		t.Fatalf("unexpected ledger store: %s", cfg.Ledger.Store)
	}
	if cfg.Ledger.RecallTTL != 2*time.Hour {
		t.Fatalf("unexpected recall ttl: %s", cfg.Ledger.RecallTTL)
	}
	if cfg.Ledger.Rate.Per10Sec != 4 {
		t.Fatalf("unexpected per_10sec: %d", cfg.Ledger.Rate.Per10Sec)
	}
	if cfg.Analytics.Retention != 720*time.Hour {
		t.Fatalf("unexpected retention: %s", cfg.Analytics.Retention)
	}

	if cfg.Ledger.RecallStore != StoreRedis {
		t.Fatalf("recall_store default should stay redis")
	}
	if cfg.Ledger.Rate.PerMinute != 60 {
		t.Fatalf("rate per_minute default should stay 60")
	}
	if !cfg.Postgres.AutoMigrate {
		t.Fatalf("postgres auto_migrate default should stay true")
	}
}

func TestLoadDefaultsWhenFileMissing(t *testing.T) {
	clearConfigEnv(t)

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatalf("load config with missing file: %v", err)
	}

	if cfg.Ledger.Store != StorePostgres {
		t.Fatalf("unexpected default ledger store: %s", cfg.Ledger.Store)
	}
	if cfg.Ledger.RecallTTL != 24*time.Hour {
		t.Fatalf("unexpected default recall ttl: %s", cfg.Ledger.RecallTTL)
	}
	if cfg.Analytics.MaxBatchSize != 100 {
		t.Fatalf("unexpected default max batch size: %d", cfg.Analytics.MaxBatchSize)
	}
}

func TestEnvOverridesWinOverYAML(t *testing.T) {
	clearConfigEnv(t)
	t.Setenv("LEDGER_STORE", "memory")
	t.Setenv("LEDGER_RECALL_STORE", "memory")
	t.Setenv("LEDGER_RECALL_TTL", "15m")
	t.Setenv("POSTGRES_AUTO_MIGRATE", "false")
	t.Setenv("AUTH_REQUIRE_SESSION", "true")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("load config: %v", err)
	}

	if cfg.Ledger.Store != StoreMemory || cfg.Ledger.RecallStore != StoreMemory {
		t.Fatalf("unexpected stores: %s/%s", cfg.Ledger.Store, cfg.Ledger.RecallStore)
	}
	if cfg.Ledger.RecallTTL != 15*time.Minute {
		t.Fatalf("unexpected recall ttl: %s", cfg.Ledger.RecallTTL)
	}
	if cfg.Postgres.AutoMigrate {
		t.Fatalf("auto_migrate override ignored")
	}
	if !cfg.Auth.RequireSession {
		t.Fatalf("require_session override ignored")
	}
}

func TestLoadRejectsBadEnvValue(t *testing.T) {
	clearConfigEnv(t)
	t.Setenv("LEDGER_RECALL_TTL", "soon")

	if _, err := Load(""); err == nil {
		t.Fatalf("expected error for unparsable duration")
	}
}

func TestLoadRejectsUnknownStore(t *testing.T) {
	clearConfigEnv(t)
	t.Setenv("LEDGER_STORE", "sqlite")

	if _, err := Load(""); err == nil {
		t.Fatalf("expected error for unknown ledger store")
	}
}

func TestLoadRejectsDefaultJWTSecretInProduction(t *testing.T) {
	clearConfigEnv(t)
	t.Setenv("APP_ENV", "prod")

	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	if err == nil {
		t.Fatalf("expected error when auth.jwt_secret is left at the default in production")
	}

	t.Setenv("JWT_SECRET", "real-secret")
	if _, err := Load(""); err != nil {
		t.Fatalf("load prod config with secret: %v", err)
	}
}

func clearConfigEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"APP_ENV",
		"HTTP_ADDR",
		"HTTP_READ_TIMEOUT",
		"HTTP_WRITE_TIMEOUT",
		"HTTP_IDLE_TIMEOUT",
		"LOG_LEVEL",
		"POSTGRES_DSN",
		"POSTGRES_AUTO_MIGRATE",
		"REDIS_ADDR",
		"REDIS_PASSWORD",
		"REDIS_DB",
		"JWT_SECRET",
		"AUTH_REQUIRE_SESSION",
		"LEDGER_STORE",
		"LEDGER_RECALL_STORE",
		"LEDGER_RECALL_TTL",
		"LEDGER_RATE_PER_MINUTE",
		"LEDGER_RATE_PER_10SEC",
		"ANALYTICS_MAX_BATCH_SIZE",
		"ANALYTICS_RETENTION",
		"ANALYTICS_RETENTION_INTERVAL",
	} {
		t.Setenv(key, "")
	}
}

func TestSampleConfigLoads(t *testing.T) {
	clearConfigEnv(t)

	cfg, err := Load(filepath.Join("..", "..", "..", "configs", "config.yaml"))
	if err != nil {
		t.Fatalf("load sample config: %v", err)
	}
	if cfg.Analytics.Retention != 90*24*time.Hour {
		t.Fatalf("unexpected sample retention: %s", cfg.Analytics.Retention)
	}
	if cfg.Ledger.Rate.Per10Sec != 15 {
		t.Fatalf("unexpected sample per_10sec: %d", cfg.Ledger.Rate.Per10Sec)
	}
}
