package scheduler

import (
	"container/heap"
	"time"
)

// entry is one pending action. Repeating entries keep their token across runs.
type entry struct {
	token  Token
	due    time.Time
	period time.Duration
	seq    uint64
	action func()
	index  int
}

// timerQueue orders entries by due time, then by submission sequence.
// It is not safe for concurrent use; owners guard it with their own mutex.
type timerQueue struct {
	items   entryHeap
	byToken map[Token]*entry
	lastTok Token
	lastSeq uint64
}

func newTimerQueue() *timerQueue {
	return &timerQueue{byToken: make(map[Token]*entry)}
}

func (q *timerQueue) add(due time.Time, period time.Duration, action func()) Token {
	q.lastTok++
	e := &entry{
		token:  q.lastTok,
		due:    due,
		period: period,
		action: action,
		index:  -1,
	}
	q.byToken[e.token] = e
	q.push(e)
	return e.token
}

func (q *timerQueue) push(e *entry) {
	q.lastSeq++
	e.seq = q.lastSeq
	heap.Push(&q.items, e)
}

func (q *timerQueue) cancel(tok Token) bool {
	e, ok := q.byToken[tok]
	if !ok {
		return false
	}
	delete(q.byToken, tok)
	if e.index >= 0 {
		heap.Remove(&q.items, e.index)
	}
	return true
}

// popDue removes the earliest entry due at or before now and returns its action.
// Repeating entries are queued again at due+period before the caller runs them,
// so cancelling from inside the action stops further runs.
func (q *timerQueue) popDue(now time.Time) (func(), time.Time, bool) {
	if len(q.items) == 0 {
		return nil, time.Time{}, false
	}
	e := q.items[0]
	if e.due.After(now) {
		return nil, time.Time{}, false
	}
	heap.Pop(&q.items)

	due := e.due
	if e.period > 0 {
		e.due = e.due.Add(e.period)
		q.push(e)
	} else {
		delete(q.byToken, e.token)
	}
	return e.action, due, true
}

func (q *timerQueue) next() (time.Time, bool) {
	if len(q.items) == 0 {
		return time.Time{}, false
	}
	return q.items[0].due, true
}

func (q *timerQueue) len() int {
	return len(q.byToken)
}

type entryHeap []*entry

func (h entryHeap) Len() int { return len(h) }

func (h entryHeap) Less(i, j int) bool {
	if h[i].due.Equal(h[j].due) {
		return h[i].seq < h[j].seq
	}
	return h[i].due.Before(h[j].due)
}

func (h entryHeap) Swap(i, j int) {
	h[i], h[j] = h[j], h[i]
	h[i].index = i
	h[j].index = j
}

func (h *entryHeap) Push(x any) {
	e := x.(*entry)
	e.index = len(*h)
	*h = append(*h, e)
}

func (h *entryHeap) Pop() any {
	old := *h
	n := len(old)
	e := old[n-1]
	old[n-1] = nil
	e.index = -1
	*h = old[:n-1]
	return e
}
