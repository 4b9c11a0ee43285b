package ordercode

import (
	"strings"
	"testing"
)

func TestNextScopesAndRandomizesCodes(t *testing.T) {
	g := NewUUIDGenerator()

	code := g.Next(1, 3)
	if !strings.HasPrefix(code, "order_1_3_") {
		t.Fatalf("expected order_1_3_ prefix, got %q", code)
	}
	if len(code) <= len("order_1_3_") {
		t.Fatalf("expected random suffix, got %q", code)
	}
}

func TestNextNeverRepeats(t *testing.T) {
	g := NewUUIDGenerator()

	seen := make(map[string]struct{})
	for i := 0; i < 1000; i++ {
		code := g.Next(1, 3)
		if _, ok := seen[code]; ok {
			t.Fatalf("duplicate order code %q", code)
		}
		seen[code] = struct{}{}
	}
}
