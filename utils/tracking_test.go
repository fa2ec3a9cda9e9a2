package utils

import (
	"regexp"
	"strings"
	"testing"
	"time"
)

func TestGenerateTrackingNumber_Format(t *testing.T) {
	pattern := regexp.MustCompile(`^TGK\d{6}[A-Z0-9]{6}$`)

	code := GenerateTrackingNumber()
	if !pattern.MatchString(code) {
		t.Fatalf("unexpected format: %q", code)
	}
	if !strings.HasPrefix(code, "TGK"+time.Now().Format("060102")) {
		t.Fatalf("date component wrong: %q", code)
	}
}

func TestGenerateTrackingNumber_PrefixOverride(t *testing.T) {
	t.Setenv("TRACKING_PREFIX", "dsa")

	code := GenerateTrackingNumber()
	if !strings.HasPrefix(code, "DSA") {
		t.Fatalf("prefix override not applied: %q", code)
	}
}

func TestGenerateTrackingNumber_NoImmediateCollisions(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 1000; i++ {
		code := GenerateTrackingNumber()
		if seen[code] {
			t.Fatalf("collision after %d codes: %q", i, code)
		}
		seen[code] = true
	}
}
