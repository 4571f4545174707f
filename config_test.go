package main

import (
	"os"
	"path/filepath"
	"testing"
)

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{"MTMGATE_ADDR", "MTMGATE_DB", "PORT", "TWILIO_ACCOUNT_SID", "TWILIO_AUTH_TOKEN"} {
		t.Setenv(key, "")
	}
}

func TestBuildConfigDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := buildConfig("", "", "")
	if err != nil {
		t.Fatalf("buildConfig error: %v", err)
	}
	if cfg.ListenAddr != ":8090" || cfg.DBPath != "mtmgate.db" {
		t.Errorf("defaults = %q/%q", cfg.ListenAddr, cfg.DBPath)
	}
	if cfg.Zosmf.ResponseTimeout != 600 || cfg.Zosmf.Profile.LogonProcedure != "IZUFPROC" {
		t.Errorf("zosmf defaults = %+v", cfg.Zosmf)
	}
}

func TestBuildConfigFileOverridesDefaults(t *testing.T) {
	clearEnv(t)
	file := writeConfigFile(t, "listenAddr: \":7000\"\ndbPath: file.db\nzosmf:\n  host: sandbox.example.com\n")

	cfg, err := buildConfig(file, "", "")
	if err != nil {
		t.Fatalf("buildConfig error: %v", err)
	}
	if cfg.ListenAddr != ":7000" || cfg.DBPath != "file.db" {
		t.Errorf("file layer = %q/%q", cfg.ListenAddr, cfg.DBPath)
	}
	if cfg.Zosmf.Host != "sandbox.example.com" {
		t.Errorf("zosmf host = %q", cfg.Zosmf.Host)
	}
	// Fields the file does not set keep their defaults
	if cfg.Zosmf.Profile.Account != "fb3" {
		t.Errorf("account = %q, want default kept", cfg.Zosmf.Profile.Account)
	}
}

func TestBuildConfigFlagsWinOverFile(t *testing.T) {
	clearEnv(t)
	file := writeConfigFile(t, "listenAddr: \":7000\"\ndbPath: file.db\n")

	cfg, err := buildConfig(file, ":9999", "flag.db")
	if err != nil {
		t.Fatalf("buildConfig error: %v", err)
	}
	if cfg.ListenAddr != ":9999" {
		t.Errorf("ListenAddr = %q, want flag value over file", cfg.ListenAddr)
	}
	if cfg.DBPath != "flag.db" {
		t.Errorf("DBPath = %q, want flag value over file", cfg.DBPath)
	}
}

func TestBuildConfigEnvBetweenFileAndFlags(t *testing.T) {
	clearEnv(t)
	t.Setenv("MTMGATE_ADDR", ":6000")
	t.Setenv("TWILIO_AUTH_TOKEN", "env-token")
	file := writeConfigFile(t, "listenAddr: \":7000\"\ntwilio:\n  authToken: file-token\n")

	cfg, err := buildConfig(file, "", "")
	if err != nil {
		t.Fatalf("buildConfig error: %v", err)
	}
	if cfg.ListenAddr != ":6000" {
		t.Errorf("ListenAddr = %q, want env value over file", cfg.ListenAddr)
	}
	if cfg.Twilio.AuthToken != "env-token" {
		t.Errorf("AuthToken = %q, want env value over file", cfg.Twilio.AuthToken)
	}

	// An explicit flag still beats the environment
	cfg, err = buildConfig(file, ":9999", "")
	if err != nil {
		t.Fatalf("buildConfig error: %v", err)
	}
	if cfg.ListenAddr != ":9999" {
		t.Errorf("ListenAddr = %q, want flag value over env", cfg.ListenAddr)
	}
}

func TestBuildConfigBadFile(t *testing.T) {
	clearEnv(t)
	file := writeConfigFile(t, "listenAddr: [not a string\n")

	if _, err := buildConfig(file, "", ""); err == nil {
		t.Fatal("expected error for malformed config file")
	}
}
