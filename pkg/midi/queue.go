package midi

import (
	"sort"
	"sync"
)

// EventQueue holds events ordered by absolute frame offset. Hosts add events
// from any goroutine; the processing loop drains them between blocks.
type EventQueue struct {
	events []Event
	mu     sync.Mutex
	sorted bool
}

func NewEventQueue() *EventQueue {
	return &EventQueue{
		events: make([]Event, 0, 128),
		sorted: true,
	}
}

func (q *EventQueue) Add(events ...Event) {
	if len(events) == 0 {
		return
	}

	q.mu.Lock()
	defer q.mu.Unlock()

	q.events = append(q.events, events...)
	q.sorted = false
}

// GetEventsInRange returns a copy of the events with start <= offset < end.
func (q *EventQueue) GetEventsInRange(start, end int64) []Event {
	q.mu.Lock()
	defer q.mu.Unlock()

	lo, hi := q.rangeLocked(start, end)
	if lo == hi {
		return nil
	}
	result := make([]Event, hi-lo)
	copy(result, q.events[lo:hi])
	return result
}

// Drain removes and returns every event with offset < end, in order.
func (q *EventQueue) Drain(end int64) []Event {
	q.mu.Lock()
	defer q.mu.Unlock()

	_, hi := q.rangeLocked(q.minOffsetLocked(), end)
	if hi == 0 {
		return nil
	}
	result := make([]Event, hi)
	copy(result, q.events[:hi])
	n := copy(q.events, q.events[hi:])
	q.events = q.events[:n]
	return result
}

func (q *EventQueue) GetAllEvents() []Event {
	q.mu.Lock()
	defer q.mu.Unlock()

	q.sortLocked()
	result := make([]Event, len(q.events))
	copy(result, q.events)
	return result
}

func (q *EventQueue) Clear() {
	q.mu.Lock()
	defer q.mu.Unlock()

	q.events = q.events[:0]
	q.sorted = true
}

// Shift moves every queued event by delta frames.
func (q *EventQueue) Shift(delta int64) {
	q.mu.Lock()
	defer q.mu.Unlock()

	for i := range q.events {
		q.events[i] = withOffset(q.events[i], delta)
	}
}

func (q *EventQueue) Size() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.events)
}

func (q *EventQueue) IsEmpty() bool {
	return q.Size() == 0
}

type EventProcessor interface {
	ProcessEvent(event Event)
}

// ProcessEvents drains events before end and hands them to processor.
func (q *EventQueue) ProcessEvents(processor EventProcessor, end int64) int {
	events := q.Drain(end)
	for _, event := range events {
		processor.ProcessEvent(event)
	}
	return len(events)
}

func (q *EventQueue) rangeLocked(start, end int64) (lo, hi int) {
	q.sortLocked()
	lo = sort.Search(len(q.events), func(i int) bool {
		return q.events[i].SampleOffset() >= start
	})
	hi = sort.Search(len(q.events), func(i int) bool {
		return q.events[i].SampleOffset() >= end
	})
	if hi < lo {
		hi = lo
	}
	return lo, hi
}

func (q *EventQueue) minOffsetLocked() int64 {
	q.sortLocked()
	if len(q.events) == 0 {
		return 0
	}
	return q.events[0].SampleOffset()
}

// sortLocked keeps insertion order for events sharing an offset.
func (q *EventQueue) sortLocked() {
	if q.sorted {
		return
	}
	sort.SliceStable(q.events, func(i, j int) bool {
		return q.events[i].SampleOffset() < q.events[j].SampleOffset()
	})
	q.sorted = true
}
