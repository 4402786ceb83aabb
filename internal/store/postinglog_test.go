package store

import (
	"context"
	"testing"
)

func TestInMemoryPostingLog(t *testing.T) {
	log := NewInMemoryPostingLog()
	ctx := context.Background()

	seen, err := log.Seen(ctx, "2026-08-31|Rent|1200")
	if err != nil {
		t.Fatal(err)
	}
	if seen {
		t.Error("fresh key should be unseen")
	}

	if err := log.Mark(ctx, "2026-08-31|Rent|1200"); err != nil {
		t.Fatal(err)
	}
	// Marking again is a no-op.
	if err := log.Mark(ctx, "2026-08-31|Rent|1200"); err != nil {
		t.Fatal(err)
	}

	seen, err = log.Seen(ctx, "2026-08-31|Rent|1200")
	if err != nil {
		t.Fatal(err)
	}
	if !seen {
		t.Error("marked key should be seen")
	}

	seen, _ = log.Seen(ctx, "2026-09-30|Rent|1200")
	if seen {
		t.Error("different day should be unseen")
	}
}
