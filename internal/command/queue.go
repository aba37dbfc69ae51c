package command

import "sync"

// Queue is a FIFO of commands with one producer (input) and one consumer
// (timer). Drain swaps the pending slice out, so the lock is held only for
// the swap and a Push racing a drain lands in the next batch.
type Queue struct {
	mu      sync.Mutex
	pending []Command
	spare   []Command
}

func NewQueue() *Queue {
	return &Queue{}
}

// Push appends cmds in order. The batch is appended atomically, so a drain
// never splits it. Commands without a world are dropped.
func (q *Queue) Push(cmds ...Command) {
	q.mu.Lock()
	for _, c := range cmds {
		if c.world == nil {
			continue
		}
		q.pending = append(q.pending, c)
	}
	q.mu.Unlock()
}

// Drain returns every pending command and leaves the queue empty. Hand the
// slice back with Recycle once executed.
func (q *Queue) Drain() []Command {
	q.mu.Lock()
	out := q.pending
	q.pending, q.spare = q.spare[:0], nil
	q.mu.Unlock()
	return out
}

// Recycle returns a drained slice for reuse. The caller must not touch it
// afterwards.
func (q *Queue) Recycle(buf []Command) {
	clear(buf)
	q.mu.Lock()
	if q.spare == nil {
		q.spare = buf[:0]
	}
	q.mu.Unlock()
}

// DrainAndExecute executes everything pending in FIFO order and returns the
// count.
func (q *Queue) DrainAndExecute() int {
	cmds := q.Drain()
	for _, c := range cmds {
		c.Execute()
	}
	n := len(cmds)
	q.Recycle(cmds)
	return n
}

func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.pending)
}
