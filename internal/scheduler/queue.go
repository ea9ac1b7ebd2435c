package scheduler

import (
	"sync"

	"github.com/google/uuid"

	"hexworld/internal/light"
	"hexworld/internal/world"
)

// actionQueue is a double-buffered queue: producers append under a mutex
// from any goroutine, while the scheduler's own goroutine swaps the
// buffer out and drains it lock-free at the start of each tick.
type actionQueue struct {
	mu      sync.Mutex
	pending []queuedAction
}

// queuedAction carries either a raw closure (SetObserver and other internal
// callers) or a typed Action (SubmitBuild/SubmitDestroy); drain runs
// whichever is set.
type queuedAction struct {
	id     uuid.UUID
	fn     func(mgr *world.Manager, eng *light.Engine)
	action *Action
}

func newActionQueue() *actionQueue {
	return &actionQueue{}
}

func (q *actionQueue) push(id uuid.UUID, fn func(mgr *world.Manager, eng *light.Engine)) {
	q.mu.Lock()
	q.pending = append(q.pending, queuedAction{id: id, fn: fn})
	q.mu.Unlock()
}

func (q *actionQueue) pushAction(id uuid.UUID, a Action) {
	q.mu.Lock()
	q.pending = append(q.pending, queuedAction{id: id, action: &a})
	q.mu.Unlock()
}

// drain swaps out the pending buffer and runs every queued action against
// mgr/eng. Only the scheduler's own goroutine may call this.
func (q *actionQueue) drain(mgr *world.Manager, eng *light.Engine) {
	q.mu.Lock()
	batch := q.pending
	q.pending = nil
	q.mu.Unlock()

	for _, a := range batch {
		if a.action != nil {
			applyAction(mgr, eng, *a.action)
			continue
		}
		a.fn(mgr, eng)
	}
}
