package tgmini

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadConfigFromCreatesDefaults(t *testing.T) {
	for _, k := range []string{KeyAPIURL, KeyTelegramID, KeyDatabaseURL, KeyLogLevel, KeyLogPath, KeyTimeFormat, KeyRequestTimeout, KeyDevMode} {
		t.Setenv(k, "")
	}
	confFile := filepath.Join(t.TempDir(), "tgmini", "tgmini.conf")

	cfg, err := LoadConfigFrom(confFile)
	if err != nil {
		t.Fatalf("LoadConfigFrom: %v", err)
	}
	if _, err := os.Stat(confFile); err != nil {
		t.Fatalf("conf file not created: %v", err)
	}
	if cfg.APIURL != DefaultAPIURL {
		t.Errorf("APIURL = %q", cfg.APIURL)
	}
	if cfg.LogLevel != DefaultLogLevel {
		t.Errorf("LogLevel = %q", cfg.LogLevel)
	}
	if cfg.RequestTimeout != 0 {
		t.Errorf("RequestTimeout = %v, want no timeout", cfg.RequestTimeout)
	}
	if cfg.TelegramID != "" {
		t.Errorf("TelegramID = %q, want empty", cfg.TelegramID)
	}
}

func TestLoadConfigFromPrecedence(t *testing.T) {
	for _, k := range []string{KeyAPIURL, KeyTelegramID, KeyDatabaseURL, KeyLogLevel, KeyLogPath, KeyTimeFormat, KeyRequestTimeout, KeyDevMode} {
		t.Setenv(k, "")
	}
	confFile := filepath.Join(t.TempDir(), "tgmini.conf")
	content := "TGMINI_API_URL=http://file.example\nTGMINI_TELEGRAM_ID=555\nTGMINI_REQUEST_TIMEOUT=15s\n"
	if err := os.WriteFile(confFile, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv(KeyAPIURL, "http://env.example")

	cfg, err := LoadConfigFrom(confFile)
	if err != nil {
		t.Fatalf("LoadConfigFrom: %v", err)
	}
	if cfg.APIURL != "http://env.example" {
		t.Errorf("APIURL = %q, env should win", cfg.APIURL)
	}
	if cfg.TelegramID != "555" {
		t.Errorf("TelegramID = %q, want value from file", cfg.TelegramID)
	}
	if cfg.RequestTimeout != 15*time.Second {
		t.Errorf("RequestTimeout = %v", cfg.RequestTimeout)
	}
	if cfg.TimeFormat != DefaultTimeFormat {
		t.Errorf("TimeFormat = %q, want default", cfg.TimeFormat)
	}
}

func TestLoadConfigFromBadTimeout(t *testing.T) {
	for _, k := range []string{KeyAPIURL, KeyTelegramID, KeyDatabaseURL, KeyLogLevel, KeyLogPath, KeyTimeFormat, KeyRequestTimeout, KeyDevMode} {
		t.Setenv(k, "")
	}
	t.Setenv(KeyRequestTimeout, "soon")
	if _, err := LoadConfigFrom(filepath.Join(t.TempDir(), "tgmini.conf")); err == nil {
		t.Fatal("expected parse error")
	}
}
