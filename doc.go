// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package pcq provides blocking producer-consumer queues.
//
// The package connects pipeline stages whose producers and consumers run on
// independent goroutines. Two queue shapes cover the common cases:
//
//   - Bounded: fixed-capacity MPMC queue with blocking backpressure
//   - Unbounded: growable SPSC queue whose producer never blocks
//
// Both rest on [Semaphore], a counting, blocking synchronization primitive
// that is also exported on its own.
//
// Where the lfq package trades blocking for lock freedom and returns
// would-block errors, pcq deliberately blocks: producers sleep while a
// bounded queue is full, consumers sleep while any queue is empty, and
// critical sections are short memory operations. Choose pcq when callers
// should pace each other instead of spinning; choose lfq when a nanosecond
// hot path must never park a goroutine.
//
// # Quick Start
//
//	q := pcq.NewBounded[Event](1024)   // MPMC, blocks on full/empty
//	u := pcq.NewUnbounded[Line]()      // SPSC, producer never blocks
//
// # Basic Usage
//
// Both queues share the same blocking interface:
//
//	// Create a queue
//	q := pcq.NewBounded[int](1024)
//
//	// Produce (blocks while the queue is full)
//	value := 42
//	if err := q.Produce(&value); err != nil {
//	    // Value transfer failed; the queue is unchanged
//	}
//
//	// Consume (blocks while the queue is empty)
//	elem, err := q.Consume()
//	if err == nil {
//	    process(elem)
//	}
//
// Operations return an error only when the element type opts into fallible
// transfers via [Assigner] or [Swapper]. For plain types the error is
// always nil and operations cannot fail; they block instead.
//
// # Common Patterns
//
// Pipeline stage with backpressure (Bounded):
//
//	// Stage 1 → Queue → Stage 2; a slow stage 2 paces stage 1.
//	q := pcq.NewBounded[Batch](64)
//
//	go func() { // Producer (Stage 1)
//	    for batch := range input {
//	        q.Produce(&batch) // Blocks while stage 2 is behind
//	    }
//	}()
//
//	go func() { // Consumer (Stage 2)
//	    for {
//	        batch, _ := q.Consume()
//	        process(batch)
//	    }
//	}()
//
// Worker pool with sentinel shutdown (Bounded, MPMC):
//
//	q := pcq.NewBounded[Task](256)
//	var wg sync.WaitGroup
//
//	for range numWorkers {
//	    wg.Add(1)
//	    go func() {
//	        defer wg.Done()
//	        for {
//	            task, _ := q.Consume()
//	            if task.Poison() {
//	                return
//	            }
//	            task.Run()
//	        }
//	    }()
//	}
//
//	for task := range tasks {
//	    q.Produce(&task)
//	}
//	for range numWorkers { // One sentinel per worker
//	    poison := NewPoisonTask()
//	    q.Produce(&poison)
//	}
//	wg.Wait()
//
// Reader feeding a parser (Unbounded, SPSC):
//
//	// The reader must never stall on the parser; memory absorbs bursts.
//	u := pcq.NewUnbounded[Record]()
//
//	go func() { // Exactly one producer
//	    for rec := range readRecords(file) {
//	        u.Produce(&rec) // Never blocks
//	    }
//	}()
//
//	// Exactly one consumer
//	for {
//	    rec, _ := u.Consume() // Blocks while empty
//	    parse(rec)
//	}
//
// Buffer recycling with swaps (Bounded):
//
//	// Producer and consumer exchange buffers instead of copying them.
//	q := pcq.NewBounded[[]byte](8)
//
//	// Producer: fill buf, swap it in, reuse whatever came out
//	q.ProduceSwap(&buf)
//
//	// Consumer: swap a drained buffer in, take the filled one out
//	q.ConsumeSwap(&buf)
//
// # Queue Variants
//
//	Bounded[T]   - fixed capacity, MPMC, blocking backpressure both ways,
//	               global FIFO, swap operations for buffer recycling
//	Unbounded[T] - paged chain, SPSC only, producer never blocks,
//	               consumer blocks while empty
//
// Bounded owns a ring of exactly the requested capacity. Two semaphores
// account for free and filled slots, and one mutex per role serializes
// producers against producers and consumers against consumers; the roles
// run concurrently against each other.
//
// Unbounded owns a singly-linked chain of fixed-size pages. The producer
// allocates and links pages as it fills them; the consumer drops each page
// after draining it. One semaphore counts available items.
//
// # Blocking and Backpressure
//
// The only suspension points are semaphore waits. A goroutine blocked in
// Produce or Consume can be released only by the opposite role; there is no
// timeout, try form, or cancellation. A full Bounded queue paces its
// producers at exactly the consumers' rate. An Unbounded queue never paces
// its producer and instead grows, so the producer role must be trusted to
// stay within memory.
//
// # Error Handling
//
// Plain element types make every operation infallible: calls block until
// they succeed and return a nil error. Element types that implement
// [Assigner] or [Swapper] can fail a transfer; the queue then rolls the
// operation back before returning the error verbatim:
//
//	err := q.Produce(&item)
//	if err != nil {
//	    // The reserved slot was returned to the free pool. Capacity
//	    // accounting, cursors, and FIFO order are exactly as if the
//	    // call had not been attempted.
//	}
//
// There is no partial state: an element is either fully transferred and
// accounted, or the queue is unchanged. Failed consumes leave the element
// in place for the next call.
//
// # Capacity and Length
//
// Bounded capacity is exact, minimum 1:
//
//	q := pcq.NewBounded[int](3)    // Capacity: 3
//	q := pcq.NewBounded[int](1000) // Capacity: 1000
//
// Length is intentionally not provided: a count read from the semaphores is
// stale the instant it is returned. Track counts in application logic when
// needed.
//
// # Thread Safety
//
// All operations are safe within their access pattern constraints:
//
//   - Bounded: multiple producer and consumer goroutines
//   - Unbounded: one producer goroutine, one consumer goroutine
//
// Violating the Unbounded contract corrupts the cursors and page chain;
// the restriction is the design, not a defect to patch. Race-detector
// builds turn a detected violation into a panic (see RaceEnabled).
//
// Queues and semaphores must not be copied after first use, and must be
// torn down only after all producer and consumer goroutines have stopped
// using them. Closing a [Semaphore] with goroutines still blocked in Wait
// aborts the process.
//
// # Graceful Shutdown
//
// No cancellation mechanism exists; shutdown is layered on top with
// sentinel values. Produce one sentinel per consumer after the real work,
// and have each consumer return when it sees one (the worker pool pattern
// above). For Unbounded the single consumer needs a single sentinel.
//
// # Race Detection
//
// All synchronization goes through mutexes and condition variables, so the
// race detector tracks it natively and the full test suite runs under
// -race. Race builds additionally compile contract guards into Unbounded
// that panic on a second concurrent producer or consumer; non-race builds
// omit the guards and pay nothing.
//
// # Dependencies
//
// This package uses [code.hybscloud.com/atomix] for atomic primitives with
// explicit memory ordering and [code.hybscloud.com/spin] for CPU pause
// instructions in the semaphore's pre-sleep spin.
package pcq
