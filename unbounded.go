// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package pcq

import "code.hybscloud.com/atomix"

// unboundedPageSize is the number of element slots per page. Pages are the
// unit of allocation and reclamation for Unbounded.
const unboundedPageSize = 1023

// page is one fixed-size link of the unbounded chain. next stays nil until
// the producer allocates a successor.
type page[T any] struct {
	next    *page[T]
	entries [unboundedPageSize]T
}

// Unbounded is an unbounded single-producer single-consumer queue backed by
// a singly-linked chain of fixed-size pages.
//
// Produce never blocks: when the current page fills up the producer links a
// new one, so memory grows without bound if the consumer falls behind. One
// semaphore counts produced-but-not-yet-consumed items; Consume blocks on
// it while the queue is empty. The consumer drops each page after draining
// it, and the collector reclaims the page once unreachable.
//
// Exactly one goroutine may call Produce and exactly one goroutine
// (possibly a different one) may call the consume methods. No mutex
// protects the cursors or the page chain; correctness relies on this
// restriction and violating it is undefined behavior. Callers enforce the
// contract externally, one dedicated goroutine per role. Race-detector
// builds additionally panic on a detected violation; see RaceEnabled.
//
// Page-link visibility needs no atomics: the producer writes the next link
// before posting any item that lives on the new page, and the consumer
// follows the link only after waiting on such an item.
//
// An Unbounded must not be copied after first use.
type Unbounded[T any] struct {
	_ pad

	// Consumers wait here while the queue is empty.
	available Semaphore
	_         pad

	filling   *page[T]
	fillingAt int // next write index into filling.entries
	producing atomix.Uint64
	_         pad

	reading   *page[T]
	readingAt int // next read index into reading.entries
	consuming atomix.Uint64
	_         pad

	// Transfer seam, resolved at construction. Nil means plain copy.
	assign func(dst, src *T) error
}

// NewUnbounded creates an empty unbounded queue holding one page.
func NewUnbounded[T any]() *Unbounded[T] {
	q := &Unbounded[T]{
		assign: assignFunc[T](),
	}
	q.available.init(0)
	first := new(page[T])
	q.filling = first
	q.reading = first
	return q
}

// Produce adds an element to the queue. Produce never blocks; it allocates
// a new page when the current one is full.
//
// When *T implements Assigner and the transfer fails, the error propagates
// verbatim with the cursor unadvanced and nothing posted: the failed slot
// is not skipped and the next Produce writes it again.
func (q *Unbounded[T]) Produce(elem *T) error {
	if RaceEnabled {
		if !q.producing.CompareAndSwapAcqRel(0, 1) {
			panic("pcq: concurrent Produce on Unbounded")
		}
	}
	if q.fillingAt == unboundedPageSize {
		next := new(page[T])
		q.filling.next = next
		q.filling = next
		q.fillingAt = 0
	}
	slot := &q.filling.entries[q.fillingAt]
	if q.assign != nil {
		if err := q.assign(slot, elem); err != nil {
			if RaceEnabled {
				q.producing.StoreRelease(0)
			}
			return err
		}
	} else {
		*slot = *elem
	}
	q.fillingAt++
	q.available.Post()
	if RaceEnabled {
		q.producing.StoreRelease(0)
	}
	return nil
}

// ConsumeInto removes the oldest element into *out, blocking while the
// queue is empty. The drained slot is cleared to the zero value, and a
// fully drained page is dropped when the cursor advances past it.
//
// When *T implements Assigner and the transfer fails, the item reservation
// is restored before the error propagates and a later call observes the
// same element again.
func (q *Unbounded[T]) ConsumeInto(out *T) error {
	if RaceEnabled {
		if !q.consuming.CompareAndSwapAcqRel(0, 1) {
			panic("pcq: concurrent Consume on Unbounded")
		}
	}
	q.available.Wait()
	if q.readingAt == unboundedPageSize {
		// The drained page becomes unreachable here and is reclaimed by
		// the collector. The next link is valid: the item just waited on
		// lives on a successor page, and the producer linked that page
		// before posting the item.
		q.reading = q.reading.next
		q.readingAt = 0
	}
	slot := &q.reading.entries[q.readingAt]
	if q.assign != nil {
		if err := q.assign(out, slot); err != nil {
			q.available.Post()
			if RaceEnabled {
				q.consuming.StoreRelease(0)
			}
			return err
		}
	} else {
		*out = *slot
	}
	var zero T
	*slot = zero
	q.readingAt++
	if RaceEnabled {
		q.consuming.StoreRelease(0)
	}
	return nil
}

// Consume removes and returns the oldest element, blocking while the queue
// is empty. Convenience form of ConsumeInto with one extra copy on return.
func (q *Unbounded[T]) Consume() (T, error) {
	var out T
	err := q.ConsumeInto(&out)
	return out, err
}
