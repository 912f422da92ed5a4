package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	// No config file in the test working directory: defaults apply.
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Port != 3001 {
		t.Errorf("Port = %d, want 3001", cfg.Port)
	}
	if cfg.Mode != "release" {
		t.Errorf("Mode = %q, want release", cfg.Mode)
	}
	if cfg.PingPeriod != 54*time.Second {
		t.Errorf("PingPeriod = %v, want 54s", cfg.PingPeriod)
	}
	if cfg.ReadLimit != 32768 {
		t.Errorf("ReadLimit = %d, want 32768", cfg.ReadLimit)
	}
	if len(cfg.StunURLs) != 1 || cfg.StunURLs[0] != "stun:stun.l.google.com:19302" {
		t.Errorf("StunURLs = %v, want the public STUN fallback", cfg.StunURLs)
	}
	if cfg.Spotify.TokenURL != "https://accounts.spotify.com/api/token" {
		t.Errorf("Spotify.TokenURL = %q, want accounts endpoint", cfg.Spotify.TokenURL)
	}
}
