package bot

import (
	"context"
	"sync"

	"github.com/BTreeMap/PennyPipe/internal/messaging"
)

// chatQueues serializes event handling per chat: each chat gets its own
// buffered queue drained by one worker goroutine, so two near-simultaneous
// presses in one chat can never race on its conversation state, while
// different chats proceed concurrently.
type chatQueues struct {
	mu      sync.Mutex
	queues  map[int64]chan queued
	wg      sync.WaitGroup
	handler func(context.Context, messaging.Event)
}

type queued struct {
	ctx context.Context
	ev  messaging.Event
}

func newChatQueues(handler func(context.Context, messaging.Event)) *chatQueues {
	return &chatQueues{
		queues:  make(map[int64]chan queued),
		handler: handler,
	}
}

// submit enqueues the event on its chat's queue, creating the queue and its
// worker on first use. Submission blocks if the queue is full, preserving
// arrival order.
func (q *chatQueues) submit(ctx context.Context, ev messaging.Event) {
	q.mu.Lock()
	ch, ok := q.queues[ev.ChatID]
	if !ok {
		ch = make(chan queued, 32)
		q.queues[ev.ChatID] = ch
		q.wg.Add(1)
		go q.worker(ch)
	}
	q.mu.Unlock()
	ch <- queued{ctx: ctx, ev: ev}
}

func (q *chatQueues) worker(ch <-chan queued) {
	defer q.wg.Done()
	for item := range ch {
		q.handler(item.ctx, item.ev)
	}
}

// close drains all queues and waits for in-flight handlers to finish.
func (q *chatQueues) close() {
	q.mu.Lock()
	for _, ch := range q.queues {
		close(ch)
	}
	q.queues = make(map[int64]chan queued)
	q.mu.Unlock()
	q.wg.Wait()
}
