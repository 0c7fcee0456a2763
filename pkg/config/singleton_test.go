package config

import (
	"testing"
)

func resetSingleton() {
	configMutex.Lock()
	globalConfig = nil
	configMutex.Unlock()
}

func TestInitialize(t *testing.T) {
	resetSingleton()
	t.Cleanup(resetSingleton)

	if GetConfig() != nil {
		t.Fatal("expected nil config before Initialize")
	}

	path := writeConfig(t, "server:\n  listen_address: \"127.0.0.1:9999\"\n")
	if err := Initialize(path); err != nil {
		t.Fatalf("Initialize failed: %v", err)
	}
	if got := GetConfig().Server.ListenAddress; got != "127.0.0.1:9999" {
		t.Errorf("ListenAddress = %q, want %q", got, "127.0.0.1:9999")
	}

	// A later call replaces the installed configuration.
	if err := Initialize(""); err != nil {
		t.Fatalf("second Initialize failed: %v", err)
	}
	if got := GetConfig().Server.ListenAddress; got != DefaultListenAddress {
		t.Errorf("ListenAddress after second Initialize = %q, want %q", got, DefaultListenAddress)
	}
}

func TestInitialize_KeepsPreviousOnError(t *testing.T) {
	resetSingleton()
	t.Cleanup(resetSingleton)

	good := writeConfig(t, "telemetry:\n  logging:\n    level: \"error\"\n")
	if err := Initialize(good); err != nil {
		t.Fatalf("Initialize failed: %v", err)
	}

	bad := writeConfig(t, "telemetry:\n  logging:\n    level: \"loud\"\n")
	if err := Initialize(bad); err == nil {
		t.Fatal("expected an error for an invalid level")
	}
	if got := GetConfig().Telemetry.Logging.Level; got != "error" {
		t.Errorf("Level = %q, want %q", got, "error")
	}
}
