package queue

import (
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Queue is an in-memory FIFO of commands. It is safe for concurrent use so
// callers may enqueue while a dispatcher drains it.
type Queue struct {
	mu    sync.Mutex
	items []Command
}

func New() *Queue {
	return &Queue{}
}

// Enqueue appends a copy of args and returns the stored command.
func (q *Queue) Enqueue(args []string) Command {
	cmd := Command{
		ID:         uuid.NewString(),
		Args:       slices.Clone(args),
		EnqueuedAt: time.Now().UTC(),
	}

	q.mu.Lock()
	q.items = append(q.items, cmd)
	q.mu.Unlock()
	return cmd
}

// Peek returns the oldest command without removing it.
func (q *Queue) Peek() (Command, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if len(q.items) == 0 {
		return Command{}, false
	}
	return q.items[0], true
}

// Remove drops the command with the given ID. Returns false if it is not queued.
func (q *Queue) Remove(id string) bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	for i, c := range q.items {
		if c.ID == id {
			q.items = slices.Delete(q.items, i, i+1)
			return true
		}
	}
	return false
}

// Len returns the number of queued commands.
func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.items)
}

// Snapshot returns the queued commands in dispatch order.
func (q *Queue) Snapshot() []Command {
	q.mu.Lock()
	defer q.mu.Unlock()
	return slices.Clone(q.items)
}
