// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package pcq

import (
	"fmt"
	"os"
	"sync"

	"code.hybscloud.com/atomix"
	"code.hybscloud.com/spin"
)

// semaphoreSpin bounds the pre-sleep spin in Wait. A post that lands within
// a few pause cycles is picked up without parking the goroutine.
const semaphoreSpin = 64

// Semaphore is a counting, blocking synchronization primitive.
//
// Wait blocks until the counter is positive, then decrements it. Post
// increments the counter and releases one blocked waiter, if any. There is
// no try-wait, no timeout, and no cancellation: a goroutine blocked in Wait
// can only be released by a matching Post.
//
// The counter is backed by a condition variable, so Wait and Post cannot
// fail. Wakeup order among multiple waiters is not specified.
//
// A Semaphore must not be copied after first use.
//
// Example:
//
//	sem := pcq.NewSemaphore(0)
//
//	go func() {
//	    prepare()
//	    sem.Post() // Signal readiness
//	}()
//
//	sem.Wait() // Block until the goroutine above posts
type Semaphore struct {
	mu      sync.Mutex
	cond    sync.Cond
	waiting int

	// count is mutated only while holding mu; relaxed access suffices under
	// the lock. The plain atomic Load in Wait's spin phase is a heuristic
	// and carries no correctness weight.
	count atomix.Int64
}

// NewSemaphore creates a semaphore with the given initial counter value.
// Panics if value is negative.
func NewSemaphore(value int) *Semaphore {
	s := new(Semaphore)
	s.init(value)
	return s
}

func (s *Semaphore) init(value int) {
	if value < 0 {
		panic("pcq: negative initial semaphore value")
	}
	s.cond.L = &s.mu
	s.count.StoreRelaxed(int64(value))
}

// Wait blocks the calling goroutine until the counter is positive, then
// decrements it. Spurious condition wakeups are retried internally and
// never surface to the caller.
func (s *Semaphore) Wait() {
	if s.count.Load() < 1 {
		sw := spin.Wait{}
		for range semaphoreSpin {
			sw.Once()
			if s.count.Load() > 0 {
				break
			}
		}
	}

	s.mu.Lock()
	for s.count.LoadRelaxed() < 1 {
		s.waiting++
		s.cond.Wait()
		s.waiting--
	}
	s.count.StoreRelaxed(s.count.LoadRelaxed() - 1)
	s.mu.Unlock()
}

// Post increments the counter and releases one waiter, if any is blocked.
func (s *Semaphore) Post() {
	s.mu.Lock()
	s.count.StoreRelaxed(s.count.LoadRelaxed() + 1)
	if s.waiting > 0 {
		s.cond.Signal()
	}
	s.mu.Unlock()
}

// Close tears the semaphore down. Closing while goroutines are blocked in
// Wait is an unrecoverable lifecycle failure: raising an error during
// teardown is unsafe, so the condition is reported on stderr and the
// process aborts. With no outstanding waiters Close is a no-op; the caller
// must not use the semaphore afterwards.
//
// Close is optional. An unreferenced Semaphore is reclaimed by the garbage
// collector; Close exists for callers that want teardown misuse detected.
func (s *Semaphore) Close() {
	s.mu.Lock()
	n := s.waiting
	s.mu.Unlock()
	if n > 0 {
		fmt.Fprintf(os.Stderr, "pcq: semaphore closed with %d goroutines blocked in Wait\n", n)
		os.Exit(2)
	}
}
