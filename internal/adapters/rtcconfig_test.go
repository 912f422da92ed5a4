package adapters

import "testing"

func TestRTCConfigUsesConfiguredServers(t *testing.T) {
	cfg := RTCConfig([]string{"stun:stun.example.org:3478"})
	if len(cfg.ICEServers) != 1 {
		t.Fatalf("ICEServers = %d, want 1", len(cfg.ICEServers))
	}
	if cfg.ICEServers[0].URLs[0] != "stun:stun.example.org:3478" {
		t.Fatalf("URLs = %v", cfg.ICEServers[0].URLs)
	}
}

func TestRTCConfigFallsBackToPublicSTUN(t *testing.T) {
	cfg := RTCConfig(nil)
	if len(cfg.ICEServers) != 1 || len(cfg.ICEServers[0].URLs) != 1 {
		t.Fatalf("config = %+v, want one fallback server", cfg)
	}
	if cfg.ICEServers[0].URLs[0] != "stun:stun.l.google.com:19302" {
		t.Fatalf("fallback = %v", cfg.ICEServers[0].URLs)
	}
}
