package profile

import (
	"testing"
)

func TestValidateModeFallback(t *testing.T) {
	profile := &Profile{Mode: "staging", Data: t.TempDir(), Driver: "sqlite"}
	if err := profile.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if profile.Mode != "demo" {
		t.Errorf("unknown mode should fall back to demo, got %q", profile.Mode)
	}
	if profile.DSN == "" {
		t.Error("sqlite DSN should be derived from data dir")
	}
}

func TestValidateCapFallback(t *testing.T) {
	profile := &Profile{Mode: "dev", Data: t.TempDir(), Driver: "sqlite", TeachingLoadCap: -5}
	if err := profile.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if profile.TeachingLoadCap != DefaultTeachingLoadCap {
		t.Errorf("non-positive cap should fall back to default, got %v", profile.TeachingLoadCap)
	}
}

func TestValidateKeepsConfiguredCap(t *testing.T) {
	profile := &Profile{Mode: "dev", Data: t.TempDir(), Driver: "sqlite", TeachingLoadCap: 24.5}
	if err := profile.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if profile.TeachingLoadCap != 24.5 {
		t.Errorf("configured cap should be kept, got %v", profile.TeachingLoadCap)
	}
}
