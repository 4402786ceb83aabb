package bot

import (
	"context"
	"sync"
	"testing"

	"github.com/BTreeMap/PennyPipe/internal/messaging"
)

func TestChatQueuesPreserveOrderPerChat(t *testing.T) {
	var mu sync.Mutex
	got := make(map[int64][]string)

	q := newChatQueues(func(ctx context.Context, ev messaging.Event) {
		mu.Lock()
		got[ev.ChatID] = append(got[ev.ChatID], ev.Text)
		mu.Unlock()
	})

	ctx := context.Background()
	const n = 100
	for i := 0; i < n; i++ {
		q.submit(ctx, messaging.Event{ChatID: 1, Text: letter(i)})
		q.submit(ctx, messaging.Event{ChatID: 2, Text: letter(n - 1 - i)})
	}
	q.close()

	for i := 0; i < n; i++ {
		if got[1][i] != letter(i) {
			t.Fatalf("chat 1 out of order at %d: %q", i, got[1][i])
		}
		if got[2][i] != letter(n-1-i) {
			t.Fatalf("chat 2 out of order at %d: %q", i, got[2][i])
		}
	}
}

func TestChatQueuesCloseWaitsForHandlers(t *testing.T) {
	done := make(chan struct{}, 1)
	q := newChatQueues(func(ctx context.Context, ev messaging.Event) {
		done <- struct{}{}
	})
	q.submit(context.Background(), messaging.Event{ChatID: 9, Text: "x"})
	q.close()
	select {
	case <-done:
	default:
		t.Error("close returned before the handler ran")
	}
}

func letter(i int) string {
	return string(rune('A' + i%26))
}
