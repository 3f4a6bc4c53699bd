package config_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/JaimeStill/aicomply/internal/config"
)

const baseConfig = `
shutdown_timeout = "20s"
version = "1.2.0"

[server]
port = 9090

[database]
name = "aicomply"
user = "aicomply"
password = "aicomply"

[storage]
container_name = "snapshots"
connection_string = "UseDevelopmentStorage=true"

[api]
base_path = "/api"
max_body_size = "256KB"

[api.pagination]
default_page_size = 10
max_page_size = 50

[risk]
downgrade_threshold = 0.6
reclassify_concurrency = 8
`

func writeConfig(t *testing.T, dir, name, body string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(body), 0o600); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
}

func setup(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Chdir(dir)
	t.Setenv(config.EnvName, "")
	return dir
}

func TestLoadBase(t *testing.T) {
	dir := setup(t)
	writeConfig(t, dir, config.BaseConfigFile, baseConfig)

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.ShutdownTimeoutDuration() != 20*time.Second {
		t.Errorf("ShutdownTimeout = %v", cfg.ShutdownTimeoutDuration())
	}
	if cfg.Version != "1.2.0" {
		t.Errorf("Version = %q", cfg.Version)
	}
	if cfg.Server.Addr() != "0.0.0.0:9090" {
		t.Errorf("Addr() = %q", cfg.Server.Addr())
	}
	if cfg.Database.Port != 5432 {
		t.Errorf("Database.Port = %d, want default 5432", cfg.Database.Port)
	}
	if cfg.Storage.ContainerName != "snapshots" {
		t.Errorf("Storage.ContainerName = %q", cfg.Storage.ContainerName)
	}
	if cfg.API.MaxBodyBytes() != 256<<10 {
		t.Errorf("MaxBodyBytes() = %d", cfg.API.MaxBodyBytes())
	}
	if cfg.API.Pagination.DefaultPageSize != 10 {
		t.Errorf("DefaultPageSize = %d", cfg.API.Pagination.DefaultPageSize)
	}
	if cfg.Risk.DowngradeThreshold != 0.6 || cfg.Risk.ReclassifyConcurrency != 8 {
		t.Errorf("Risk = %+v", cfg.Risk)
	}
	if cfg.Risk.Classifier().Threshold() != 0.6 {
		t.Errorf("Classifier().Threshold() = %v", cfg.Risk.Classifier().Threshold())
	}
}

func TestLoadOverlay(t *testing.T) {
	dir := setup(t)
	writeConfig(t, dir, config.BaseConfigFile, baseConfig)
	writeConfig(t, dir, "config.staging.toml", `
[server]
port = 7070

[risk]
reclassify_concurrency = 2
`)
	t.Setenv(config.EnvName, "staging")

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Env() != "staging" {
		t.Errorf("Env() = %q", cfg.Env())
	}
	if cfg.Server.Port != 7070 {
		t.Errorf("Server.Port = %d, want 7070", cfg.Server.Port)
	}
	if cfg.Risk.ReclassifyConcurrency != 2 {
		t.Errorf("ReclassifyConcurrency = %d, want 2", cfg.Risk.ReclassifyConcurrency)
	}
	if cfg.Risk.DowngradeThreshold != 0.6 {
		t.Errorf("DowngradeThreshold = %v, want base value 0.6", cfg.Risk.DowngradeThreshold)
	}
}

func TestLoadMissingOverlayIgnored(t *testing.T) {
	dir := setup(t)
	writeConfig(t, dir, config.BaseConfigFile, baseConfig)
	t.Setenv(config.EnvName, "nowhere")

	if _, err := config.Load(); err != nil {
		t.Fatalf("Load() error = %v", err)
	}
}

func TestLoadEnvOnly(t *testing.T) {
	setup(t)
	t.Setenv("AICOMPLY_DB_NAME", "envdb")
	t.Setenv("AICOMPLY_DB_USER", "envuser")
	t.Setenv("AICOMPLY_STORAGE_CONNECTION_STRING", "UseDevelopmentStorage=true")
	t.Setenv("AICOMPLY_SERVER_PORT", "8181")
	t.Setenv("AICOMPLY_RISK_DOWNGRADE_THRESHOLD", "0.75")

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Env() != "local" {
		t.Errorf("Env() = %q, want local", cfg.Env())
	}
	if cfg.Database.Name != "envdb" || cfg.Database.User != "envuser" {
		t.Errorf("Database = %+v", cfg.Database)
	}
	if cfg.Server.Port != 8181 {
		t.Errorf("Server.Port = %d", cfg.Server.Port)
	}
	if cfg.Risk.DowngradeThreshold != 0.75 {
		t.Errorf("DowngradeThreshold = %v", cfg.Risk.DowngradeThreshold)
	}
	if cfg.Risk.ReclassifyConcurrency != 4 {
		t.Errorf("ReclassifyConcurrency = %d, want default 4", cfg.Risk.ReclassifyConcurrency)
	}
	if cfg.API.BasePath != "/api" || cfg.API.MaxBodyBytes() != 1<<20 {
		t.Errorf("API = %+v", cfg.API)
	}
}

func TestLoadErrors(t *testing.T) {
	cases := map[string]struct {
		patch   func(string) string
		wantErr string
	}{
		"malformed toml": {
			patch:   func(string) string { return "version = " },
			wantErr: "parse",
		},
		"threshold above one": {
			patch:   func(s string) string { return strings.Replace(s, "0.6", "1.5", 1) },
			wantErr: "risk",
		},
		"negative concurrency": {
			patch:   func(s string) string { return strings.Replace(s, "reclassify_concurrency = 8", "reclassify_concurrency = -1", 1) },
			wantErr: "risk",
		},
		"bad body size": {
			patch:   func(s string) string { return strings.Replace(s, `"256KB"`, `"lots"`, 1) },
			wantErr: "api",
		},
		"bad shutdown timeout": {
			patch:   func(s string) string { return strings.Replace(s, `"20s"`, `"soon"`, 1) },
			wantErr: "shutdown_timeout",
		},
	}

	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			dir := setup(t)
			writeConfig(t, dir, config.BaseConfigFile, tc.patch(baseConfig))

			_, err := config.Load()
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tc.wantErr) {
				t.Errorf("error = %v, want containing %q", err, tc.wantErr)
			}
		})
	}
}
