package config

import (
	"testing"
	"time"
)

func TestCanonicalizeEnvKey_UsesExistingCamelCaseKeys(t *testing.T) {
	existing := map[string]any{
		"postgres": map[string]any{
			"sslMode": "disable",
		},
		"places": map[string]any{
			"apiKey":  "",
			"baseUrl": "",
		},
		"storage": map[string]any{
			"maxImageSize": 0,
		},
	}

	tests := []struct {
		envKey string
		want   string
	}{
		{envKey: "POSTGRES_SSLMODE", want: "postgres.sslMode"},
		{envKey: "PLACES_APIKEY", want: "places.apiKey"},
		{envKey: "PLACES_BASEURL", want: "places.baseUrl"},
		{envKey: "STORAGE_MAXIMAGESIZE", want: "storage.maxImageSize"},
		{envKey: "NEW_FEATURE_FLAG", want: "new.feature.flag"},
	}

	for _, tt := range tests {
		t.Run(tt.envKey, func(t *testing.T) {
			if got := canonicalizeEnvKey(tt.envKey, existing); got != tt.want {
				t.Fatalf("canonicalizeEnvKey(%q) = %q, want %q", tt.envKey, got, tt.want)
			}
		})
	}
}

func TestApplyDefaults(t *testing.T) {
	cfg := &Config{}
	applyDefaults(cfg)

	if cfg.Places.BaseURL != defaultPlacesBaseURL {
		t.Fatalf("places base URL default = %q, want %q", cfg.Places.BaseURL, defaultPlacesBaseURL)
	}
	if cfg.Places.Timeout != 10*time.Second {
		t.Fatalf("places timeout default = %v, want 10s", cfg.Places.Timeout)
	}
	if cfg.Storage.MaxImageSize != defaultMaxImageSize {
		t.Fatalf("max image size default = %d, want %d", cfg.Storage.MaxImageSize, defaultMaxImageSize)
	}
	if cfg.Storage.KeyPrefix != defaultStorageKeyspace {
		t.Fatalf("key prefix default = %q, want %q", cfg.Storage.KeyPrefix, defaultStorageKeyspace)
	}
}

func TestApplyDefaults_KeepsExplicitValues(t *testing.T) {
	cfg := &Config{
		Places:  &PlacesConfig{BaseURL: "http://localhost:9090", Timeout: time.Second},
		Storage: &StorageConfig{MaxImageSize: 1024, KeyPrefix: "receipts"},
	}
	applyDefaults(cfg)

	if cfg.Places.BaseURL != "http://localhost:9090" {
		t.Fatalf("explicit base URL overwritten: %q", cfg.Places.BaseURL)
	}
	if cfg.Places.Timeout != time.Second {
		t.Fatalf("explicit timeout overwritten: %v", cfg.Places.Timeout)
	}
	if cfg.Storage.MaxImageSize != 1024 || cfg.Storage.KeyPrefix != "receipts" {
		t.Fatalf("explicit storage values overwritten: %+v", cfg.Storage)
	}
}
