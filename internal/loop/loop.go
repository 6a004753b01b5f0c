// Package loop provides the single game-loop driver that schedules every
// periodic piece of game logic.
//
// Tasks are kept in a priority queue ordered by deadline on a virtual clock.
// The platform advances the clock once per rendered frame and the loop fires
// every task that became due, in deadline order. Periodic tasks are re-armed
// by the loop itself, so components never reschedule themselves recursively.
package loop

import (
	"container/heap"
	"time"
)

// MinPeriod is the smallest period or delay the loop accepts.
const MinPeriod = time.Millisecond

// Task is a unit of periodic work. Returning false ends the task.
type Task func() bool

// Handle refers to a scheduled task.
type Handle struct {
	deadline time.Duration
	period   time.Duration
	seq      uint64
	index    int
	task     Task
	canceled bool
	loop     *Loop
}

// Active reports whether the task is still queued to run.
func (h *Handle) Active() bool {
	return h != nil && !h.canceled && h.index >= 0
}

// Cancel removes the task from the loop. Safe to call on a nil or finished handle.
func (h *Handle) Cancel() {
	if h == nil || h.canceled {
		return
	}
	h.canceled = true
	if h.index >= 0 {
		heap.Remove(&h.loop.queue, h.index)
	}
}

// Loop is a virtual-time scheduler. It is not safe for concurrent use;
// all calls are expected from the single update goroutine.
type Loop struct {
	now   time.Duration
	seq   uint64
	queue taskQueue
	fired uint64
}

// New creates an empty loop with its clock at zero.
func New() *Loop {
	return &Loop{}
}

// Now returns the current virtual time.
func (l *Loop) Now() time.Duration {
	return l.now
}

// Pending returns the number of queued tasks.
func (l *Loop) Pending() int {
	return len(l.queue)
}

// Fired returns how many task bodies have run since the loop was created.
func (l *Loop) Fired() uint64 {
	return l.fired
}

// After runs fn once after delay.
func (l *Loop) After(delay time.Duration, fn func()) *Handle {
	return l.schedule(delay, 0, func() bool {
		fn()
		return false
	})
}

// Every runs task every period, starting one period from now, for as long
// as it returns true. Re-arming keeps the original cadence rather than
// counting from the moment the task finished.
func (l *Loop) Every(period time.Duration, task Task) *Handle {
	if period < MinPeriod {
		period = MinPeriod
	}
	return l.schedule(period, period, task)
}

func (l *Loop) schedule(delay, period time.Duration, task Task) *Handle {
	if delay < MinPeriod {
		delay = MinPeriod
	}
	l.seq++
	h := &Handle{
		deadline: l.now + delay,
		period:   period,
		seq:      l.seq,
		index:    -1,
		task:     task,
		loop:     l,
	}
	heap.Push(&l.queue, h)
	return h
}

// Advance moves the clock forward by dt and runs every task that became due.
// While a task runs, Now reports that task's deadline. Returns the number
// of task bodies executed.
func (l *Loop) Advance(dt time.Duration) int {
	if dt < 0 {
		dt = 0
	}
	target := l.now + dt
	fired := 0

	for len(l.queue) > 0 && l.queue[0].deadline <= target {
		h := heap.Pop(&l.queue).(*Handle)
		l.now = h.deadline
		fired++
		l.fired++

		if h.task() && h.period > 0 && !h.canceled {
			h.deadline += h.period
			l.seq++
			h.seq = l.seq
			heap.Push(&l.queue, h)
		}
	}

	l.now = target
	return fired
}

// Clear cancels every queued task.
func (l *Loop) Clear() {
	for len(l.queue) > 0 {
		l.queue[0].Cancel()
	}
}

// taskQueue implements heap.Interface ordered by deadline, then by
// scheduling order for equal deadlines.
type taskQueue []*Handle

func (q taskQueue) Len() int { return len(q) }

func (q taskQueue) Less(i, j int) bool {
	if q[i].deadline != q[j].deadline {
		return q[i].deadline < q[j].deadline
	}
	return q[i].seq < q[j].seq
}

func (q taskQueue) Swap(i, j int) {
	q[i], q[j] = q[j], q[i]
	q[i].index = i
	q[j].index = j
}

func (q *taskQueue) Push(x any) {
	h := x.(*Handle)
	h.index = len(*q)
	*q = append(*q, h)
}

func (q *taskQueue) Pop() any {
	old := *q
	n := len(old)
	h := old[n-1]
	old[n-1] = nil
	h.index = -1
	*q = old[:n-1]
	return h
}
