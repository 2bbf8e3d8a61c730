package sim

import (
	"container/heap"

	"github.com/db47h/hdlsim/bits"
)

// Event is a scheduled write of value onto target's bit positions
// selected by mask, to take effect at time (spec.md §4.5, "Event").
type Event struct {
	Time   Time
	Target *Signal
	Value  bits.Logic
	Mask   bits.Bitmask
}

// pending holds the coalesced, not-yet-committed writes staged for one
// signal at one future time. Coalescing follows the last-writer-wins
// rule per bit: Value holds, for every bit ever staged (Seen), the most
// recently staged value at that bit; Mask mirrors Seen so that when the
// event is eventually applied, exactly the bits that were actually
// written end up overlaid onto the signal (spec.md §9, Open Question:
// resolved with a symmetric seen-mask so that unstaged bits never leak a
// stale zero value into the applied event).
type pending struct {
	time  Time
	value bits.Logic
	seen  bits.Bitmask
}

// EventQueue is the simulator's future-event queue: a two-phase
// staging/commit buffer in front of a time-ordered heap (spec.md §4.5,
// §4.6). Staging lets several instructions executing within the same
// delta cycle coalesce their writes to a signal into one event before it
// ever becomes visible to PopEvents.
type EventQueue struct {
	staging map[stagingKey]*pending
	heap    eventHeap
}

type stagingKey struct {
	sig  *Signal
	time Time
}

// NewEventQueue returns an empty event queue.
func NewEventQueue() *EventQueue {
	return &EventQueue{staging: make(map[stagingKey]*pending)}
}

// Stage records a write of value onto target's bits selected by mask, to
// take effect at t. Besides coalescing with any other write already
// staged for the same (target, t) pair, it retracts mask's bits from
// every other staged or already-committed event for target scheduled no
// earlier than t (spec.md §4.5, "add"): a write always wins over
// anything previously scheduled to land at or after it, since by the
// time that event fires the signal will already carry this write's
// value on those bits, and letting the stale bits reapply later would
// resurrect a value this write was meant to supersede.
func (q *EventQueue) Stage(t Time, target *Signal, value bits.Logic, mask bits.Bitmask) {
	q.retract(target, t, mask)

	key := stagingKey{sig: target, time: t}
	p, ok := q.staging[key]
	if !ok {
		p = &pending{
			time:  t,
			value: bits.NewLogic(target.Width(), bits.CodeX),
			seen:  bits.NewBitmask(target.Width()),
		}
		q.staging[key] = p
	}
	for i := 0; i < target.Width(); i++ {
		if mask.Get(i) {
			p.value.Set(i, value.Get(i))
			p.seen.Set(i, true)
		}
	}
}

// retract clears clear's bits out of every pending or committed event for
// target scheduled at a time not before t, wherever they were staged
// from or however long ago they were committed. An event left with no
// bits at all is dropped outright rather than kept around as a no-op,
// since PopEvents/IsEmpty must not see it.
func (q *EventQueue) retract(target *Signal, t Time, clear bits.Bitmask) {
	for key, p := range q.staging {
		if key.sig != target || p.time.Before(t) {
			continue
		}
		clearBits(p.seen, p.value, clear)
		if p.seen.IsAllZero() {
			delete(q.staging, key)
		}
	}

	emptied := false
	for _, ev := range q.heap {
		if ev.Target != target || ev.Time.Before(t) {
			continue
		}
		clearBits(ev.Mask, ev.Value, clear)
		if ev.Mask.IsAllZero() {
			emptied = true
		}
	}
	if emptied {
		kept := q.heap[:0]
		for _, ev := range q.heap {
			if !ev.Mask.IsAllZero() {
				kept = append(kept, ev)
			}
		}
		q.heap = kept
		heap.Init(&q.heap)
	}
}

// clearBits unsets clear's bits in mask and resets the corresponding
// lanes of value to X, so a superseded event neither claims to have
// written those bits nor carries a stale value for them.
func clearBits(mask bits.Bitmask, value bits.Logic, clear bits.Bitmask) {
	for i := 0; i < mask.Width(); i++ {
		if clear.Get(i) {
			mask.Set(i, false)
			value.Set(i, bits.CodeX)
		}
	}
}

// Commit moves every currently staged write into the time-ordered heap,
// merging its seen mask into any already-committed event for the same
// (target, time) pair rather than pushing a disjoint duplicate, and
// clears the staging buffer. It must be called once per delta cycle,
// after all instructions scheduled to run in that cycle have executed.
func (q *EventQueue) Commit() {
	for key, p := range q.staging {
		if p.seen.IsAllZero() {
			continue
		}
		q.mergeOrPush(key.sig, p)
	}
	q.staging = make(map[stagingKey]*pending)
}

// mergeOrPush folds p's written bits into an existing committed event for
// the same target and time, if one exists, or pushes a new one.
func (q *EventQueue) mergeOrPush(sig *Signal, p *pending) {
	for _, ev := range q.heap {
		if ev.Target != sig || !ev.Time.Equal(p.time) {
			continue
		}
		for i := 0; i < sig.Width(); i++ {
			if p.seen.Get(i) {
				ev.Value.Set(i, p.value.Get(i))
				ev.Mask.Set(i, true)
			}
		}
		return
	}
	heap.Push(&q.heap, &Event{Time: p.time, Target: sig, Value: p.value, Mask: p.seen})
}

// IsEmpty reports whether the queue has no staged or committed events
// left.
func (q *EventQueue) IsEmpty() bool {
	return len(q.heap) == 0 && len(q.staging) == 0
}

// NextTime returns the time of the earliest committed event, and false
// if the committed queue is empty.
func (q *EventQueue) NextTime() (Time, bool) {
	if len(q.heap) == 0 {
		return Time{}, false
	}
	return q.heap[0].Time, true
}

// PopEvents removes and returns every committed event sharing the
// earliest time, in the order they were pushed for ties on the same
// signal (there are none, since Stage already coalesces same-time
// writes to the same signal into one Event).
func (q *EventQueue) PopEvents() []*Event {
	if len(q.heap) == 0 {
		return nil
	}
	t := q.heap[0].Time
	var out []*Event
	for len(q.heap) > 0 && q.heap[0].Time.Equal(t) {
		out = append(out, heap.Pop(&q.heap).(*Event))
	}
	return out
}

// eventHeap is a container/heap.Interface min-heap ordered by Event.Time.
type eventHeap []*Event

func (h eventHeap) Len() int { return len(h) }
func (h eventHeap) Less(i, j int) bool {
	return h[i].Time.Before(h[j].Time)
}
func (h eventHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }

func (h *eventHeap) Push(x any) { *h = append(*h, x.(*Event)) }

func (h *eventHeap) Pop() any {
	old := *h
	n := len(old)
	item := old[n-1]
	*h = old[:n-1]
	return item
}
