// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package pcq

// Queue is the combined producer-consumer interface for a blocking FIFO
// queue. Both Bounded and Unbounded satisfy it.
//
// The interface intentionally excludes length: a count derived from the
// internal semaphores is stale the instant it is read. Track counts in
// application logic when needed. Capacity stays on the concrete Bounded
// type because Unbounded has none.
//
// Example:
//
//	var q pcq.Queue[int] = pcq.NewBounded[int](1024)
//
//	// Produce (blocks while full)
//	val := 42
//	if err := q.Produce(&val); err != nil {
//	    // Value transfer failed; the queue is unchanged
//	}
//
//	// Consume (blocks while empty)
//	elem, err := q.Consume()
//	if err == nil {
//	    fmt.Println(elem)
//	}
type Queue[T any] interface {
	Producer[T]
	Consumer[T]
}

// Producer is the interface for adding elements.
//
// The element is passed by pointer to avoid copying large structs. The
// queue stores a copy of the pointed-to value, so the original can be
// modified after Produce returns.
type Producer[T any] interface {
	// Produce adds an element to the queue. Bounded blocks while the
	// queue is full; Unbounded never blocks. The only possible error is a
	// failed value transfer (see Assigner), after which the queue is
	// exactly as it was before the call.
	//
	// Thread safety depends on queue type:
	//   - Bounded: multiple producers safe
	//   - Unbounded: single producer only
	Produce(elem *T) error
}

// Consumer is the interface for removing elements.
//
// Elements come out in FIFO order. The drained slot is cleared to allow
// garbage collection of referenced objects. For large types prefer
// ConsumeInto, or ConsumeSwap on Bounded, over the by-value Consume.
type Consumer[T any] interface {
	// Consume removes and returns the oldest element, blocking while the
	// queue is empty.
	Consume() (T, error)

	// ConsumeInto removes the oldest element into *out, blocking while
	// the queue is empty. On a failed value transfer the element stays in
	// the queue and a later call observes it again.
	//
	// Thread safety depends on queue type:
	//   - Bounded: multiple consumers safe
	//   - Unbounded: single consumer only
	ConsumeInto(out *T) error
}
