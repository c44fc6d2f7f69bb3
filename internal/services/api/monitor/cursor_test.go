package monitor

import (
	"testing"
	"time"
)

func TestCursorRoundTrip(t *testing.T) {
	key := time.Date(2026, 8, 28, 0, 0, 0, 0, time.UTC)

	tok := encodeCursor(key, "m-1")
	if tok == "" {
		t.Fatal("expected a token")
	}

	c, err := decodeCursor(tok)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !c.Key.Equal(key) || c.ID != "m-1" {
		t.Fatalf("got %+v", c)
	}
}

func TestCursorEmpty(t *testing.T) {
	if encodeCursor(time.Now(), "") != "" {
		t.Fatal("no id means no token")
	}
	c, err := decodeCursor("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if c.ID != "" || !c.Key.IsZero() {
		t.Fatalf("got %+v", c)
	}
}

func TestCursorRejectsGarbage(t *testing.T) {
	for _, bad := range []string{"=not-base64=", "bm90LWpzb24", "e30"} { // raw, not-json, {}
		if _, err := decodeCursor(bad); err == nil {
			t.Fatalf("decodeCursor(%q): expected error", bad)
		}
	}
}
