package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadDefaultsFromEnv(t *testing.T) {
	t.Setenv("CONFIG_PATH", "")
	t.Setenv("HTTP_ADDR", ":9090")
	t.Setenv("OPENSEARCH_ADDRESSES", "http://a:9200,http://b:9200")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Http.Addr != ":9090" {
		t.Errorf("Http.Addr = %q, want :9090", cfg.Http.Addr)
	}
	if cfg.Import.SessionTTL != 15*time.Minute {
		t.Errorf("Import.SessionTTL = %v, want 15m", cfg.Import.SessionTTL)
	}
	if cfg.Import.DefaultStock != 100 {
		t.Errorf("Import.DefaultStock = %d, want 100", cfg.Import.DefaultStock)
	}
	if cfg.Infrastructure.Db.Driver != "postgres" {
		t.Errorf("Db.Driver = %q, want postgres", cfg.Infrastructure.Db.Driver)
	}
	if got := cfg.Clients.OpenSearch.Addresses; len(got) != 2 || got[1] != "http://b:9200" {
		t.Errorf("OpenSearch.Addresses = %q", got)
	}
}

func TestLoadFromYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	yaml := "env: production\n" +
		"import:\n  session_ttl: 5m\n  default_stock: 25\n" +
		"infrastructure:\n  db:\n    driver: mysql\n    dsn: user:pass@tcp(localhost:3306)/menu\n"
	if err := os.WriteFile(path, []byte(yaml), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	t.Setenv("CONFIG_PATH", path)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.IsLocal() {
		t.Errorf("IsLocal = true for env %q", cfg.Env)
	}
	if cfg.Import.SessionTTL != 5*time.Minute || cfg.Import.DefaultStock != 25 {
		t.Errorf("Import = %+v", cfg.Import)
	}
	if cfg.Infrastructure.Db.Driver != "mysql" {
		t.Errorf("Db.Driver = %q, want mysql", cfg.Infrastructure.Db.Driver)
	}
	if cfg.Http.Addr != ":8080" {
		t.Errorf("Http.Addr = %q, want default :8080", cfg.Http.Addr)
	}
}
