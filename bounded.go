// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package pcq

import "sync"

// Bounded is a fixed-capacity multi-producer multi-consumer blocking queue.
//
// Two semaphores provide backpressure: free counts open slots (producers
// wait on it while the queue is full), filled counts occupied slots
// (consumers wait on it while the queue is empty). One mutex serializes all
// producer calls against each other and a second serializes all consumer
// calls; a producer and a consumer proceed concurrently because they act on
// disjoint roles. Items are delivered in FIFO order globally, across all
// producers and all consumers.
//
// Slot hand-off needs no per-slot synchronization: a producer's slot write
// happens before its filled.Post, and a consumer's filled.Wait happens
// before its slot read. The free semaphore orders the reverse direction
// before a slot is overwritten.
//
// Values cross between roles by copy or swap, never by shared reference.
// For large elements prefer ProduceSwap/ConsumeSwap or queue pointers; the
// plain forms copy the value once per direction, and Consume adds one more
// copy on return.
//
// A Bounded must not be copied after first use.
//
// Memory: O(capacity), allocated once at construction.
type Bounded[T any] struct {
	_ pad

	// Producers wait here while the queue is full.
	free Semaphore
	_    pad

	// Consumers wait here while the queue is empty.
	filled Semaphore
	_      pad

	produceMu sync.Mutex
	produceAt int // next write index, guarded by produceMu
	_         pad

	consumeMu sync.Mutex
	consumeAt int // next read index, guarded by consumeMu
	_         pad

	ring []T

	// Transfer seams, resolved at construction. Nil means plain copy/swap.
	assign func(dst, src *T) error
	swap   func(a, b *T) error
}

// NewBounded creates a blocking queue with exactly the given capacity.
// Every fresh slot holds the zero value of T. Panics if capacity < 1.
func NewBounded[T any](capacity int) *Bounded[T] {
	if capacity < 1 {
		panic("pcq: capacity must be >= 1")
	}

	q := &Bounded[T]{
		ring:   make([]T, capacity),
		assign: assignFunc[T](),
		swap:   swapFunc[T](),
	}
	q.free.init(capacity)
	q.filled.init(0)
	return q
}

// Produce adds an element to the queue, blocking while the queue is full.
// The element is copied into the queue's internal buffer; the caller's
// variable may be reused after Produce returns.
//
// When *T implements Assigner and the transfer fails, the reserved slot is
// returned to the free pool before the error propagates: the queue's
// capacity accounting and FIFO order are exactly as if the call had not
// been attempted, and the queue remains fully usable.
func (q *Bounded[T]) Produce(elem *T) error {
	q.free.Wait()
	q.produceMu.Lock()
	slot := &q.ring[q.produceAt]
	if q.assign != nil {
		if err := q.assign(slot, elem); err != nil {
			q.produceMu.Unlock()
			q.free.Post()
			return err
		}
	} else {
		*slot = *elem
	}
	if q.produceAt++; q.produceAt == len(q.ring) {
		q.produceAt = 0
	}
	q.produceMu.Unlock()
	q.filled.Post()
	return nil
}

// ProduceSwap adds an element by exchanging it with the slot's prior
// contents, blocking while the queue is full. After a successful call the
// caller's variable holds whatever the slot previously contained: the zero
// value for a slot that has never held an element or was drained by
// Consume, or the consumer's leftover from an earlier ConsumeSwap. This
// form moves no more than one element's worth of memory in each direction
// and suits buffer-recycling patterns.
//
// Rollback on a failed transfer matches Produce.
func (q *Bounded[T]) ProduceSwap(elem *T) error {
	q.free.Wait()
	q.produceMu.Lock()
	slot := &q.ring[q.produceAt]
	if q.swap != nil {
		if err := q.swap(slot, elem); err != nil {
			q.produceMu.Unlock()
			q.free.Post()
			return err
		}
	} else {
		*slot, *elem = *elem, *slot
	}
	if q.produceAt++; q.produceAt == len(q.ring) {
		q.produceAt = 0
	}
	q.produceMu.Unlock()
	q.filled.Post()
	return nil
}

// ConsumeInto removes the oldest element into *out, blocking while the
// queue is empty. The drained slot is cleared to the zero value so the ring
// does not pin the element's referents.
//
// When *T implements Assigner and the transfer fails, the element stays in
// the queue (the filled reservation is restored before the error
// propagates) and a later call observes it again.
func (q *Bounded[T]) ConsumeInto(out *T) error {
	q.filled.Wait()
	q.consumeMu.Lock()
	slot := &q.ring[q.consumeAt]
	if q.assign != nil {
		if err := q.assign(out, slot); err != nil {
			q.consumeMu.Unlock()
			q.filled.Post()
			return err
		}
	} else {
		*out = *slot
	}
	var zero T
	*slot = zero
	if q.consumeAt++; q.consumeAt == len(q.ring) {
		q.consumeAt = 0
	}
	q.consumeMu.Unlock()
	q.free.Post()
	return nil
}

// ConsumeSwap removes the oldest element by exchanging it with *out,
// blocking while the queue is empty. After a successful call the vacated
// slot holds whatever *out contained before the call; a later ProduceSwap
// on that slot hands the leftover back to a producer, which is the
// consumer-side half of the buffer-recycling pattern.
//
// Rollback on a failed transfer matches ConsumeInto.
func (q *Bounded[T]) ConsumeSwap(out *T) error {
	q.filled.Wait()
	q.consumeMu.Lock()
	slot := &q.ring[q.consumeAt]
	if q.swap != nil {
		if err := q.swap(out, slot); err != nil {
			q.consumeMu.Unlock()
			q.filled.Post()
			return err
		}
	} else {
		*out, *slot = *slot, *out
	}
	if q.consumeAt++; q.consumeAt == len(q.ring) {
		q.consumeAt = 0
	}
	q.consumeMu.Unlock()
	q.free.Post()
	return nil
}

// Consume removes and returns the oldest element, blocking while the queue
// is empty. Convenience form of ConsumeInto with one extra copy on return;
// prefer ConsumeInto or ConsumeSwap for large elements.
func (q *Bounded[T]) Consume() (T, error) {
	var out T
	err := q.ConsumeInto(&out)
	return out, err
}

// Cap returns the queue capacity.
func (q *Bounded[T]) Cap() int {
	return len(q.ring)
}
