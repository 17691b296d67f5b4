// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package pcq_test

import (
	"testing"

	"code.hybscloud.com/pcq"
)

// =============================================================================
// Bounded - Basic Operations
// =============================================================================

// TestBoundedBasic tests single-goroutine produce/consume round trips.
func TestBoundedBasic(t *testing.T) {
	q := pcq.NewBounded[int](4)

	if q.Cap() != 4 {
		t.Fatalf("Cap: got %d, want 4", q.Cap())
	}

	// Produce to capacity
	for i := range 4 {
		v := i + 100
		if err := q.Produce(&v); err != nil {
			t.Fatalf("Produce(%d): %v", i, err)
		}
	}

	// Consume in FIFO order
	for i := range 4 {
		val, err := q.Consume()
		if err != nil {
			t.Fatalf("Consume(%d): %v", i, err)
		}
		if val != i+100 {
			t.Fatalf("Consume(%d): got %d, want %d", i, val, i+100)
		}
	}
}

// TestBoundedConsumeInto tests the out-parameter consume form.
func TestBoundedConsumeInto(t *testing.T) {
	q := pcq.NewBounded[string](3)

	for _, s := range []string{"alpha", "beta", "gamma"} {
		if err := q.Produce(&s); err != nil {
			t.Fatalf("Produce(%q): %v", s, err)
		}
	}

	var out string
	for _, want := range []string{"alpha", "beta", "gamma"} {
		if err := q.ConsumeInto(&out); err != nil {
			t.Fatalf("ConsumeInto: %v", err)
		}
		if out != want {
			t.Fatalf("ConsumeInto: got %q, want %q", out, want)
		}
	}
}

// TestBoundedWrapAround tests cursor wrap at exact, non-power-of-2 capacity.
func TestBoundedWrapAround(t *testing.T) {
	q := pcq.NewBounded[int](3)

	if q.Cap() != 3 {
		t.Fatalf("Cap: got %d, want exact 3", q.Cap())
	}

	next := 0
	want := 0
	produce := func(n int) {
		t.Helper()
		for range n {
			v := next
			next++
			if err := q.Produce(&v); err != nil {
				t.Fatalf("Produce(%d): %v", v, err)
			}
		}
	}
	consume := func(n int) {
		t.Helper()
		for range n {
			val, err := q.Consume()
			if err != nil {
				t.Fatalf("Consume: %v", err)
			}
			if val != want {
				t.Fatalf("Consume: got %d, want %d", val, want)
			}
			want++
		}
	}

	// Drive both cursors past the end of the ring twice.
	produce(3)
	consume(2)
	produce(2)
	consume(3)
	produce(3)
	consume(3)

	if want != 8 {
		t.Fatalf("consumed %d items, want 8", want)
	}
}

// TestBoundedCapacityOne tests the minimum legal capacity.
func TestBoundedCapacityOne(t *testing.T) {
	q := pcq.NewBounded[int](1)

	for i := range 5 {
		v := i * 7
		if err := q.Produce(&v); err != nil {
			t.Fatalf("Produce(%d): %v", i, err)
		}
		val, err := q.Consume()
		if err != nil {
			t.Fatalf("Consume(%d): %v", i, err)
		}
		if val != i*7 {
			t.Fatalf("Consume(%d): got %d, want %d", i, val, i*7)
		}
	}
}

// =============================================================================
// Bounded - Swap Operations
// =============================================================================

// TestBoundedProduceSwapFresh tests that swapping into a never-used slot
// hands the zero value back to the caller.
func TestBoundedProduceSwapFresh(t *testing.T) {
	q := pcq.NewBounded[int](2)

	v := 41
	if err := q.ProduceSwap(&v); err != nil {
		t.Fatalf("ProduceSwap: %v", err)
	}
	if v != 0 {
		t.Fatalf("ProduceSwap on fresh slot: caller got %d, want 0", v)
	}

	val, err := q.Consume()
	if err != nil {
		t.Fatalf("Consume: %v", err)
	}
	if val != 41 {
		t.Fatalf("Consume: got %d, want 41", val)
	}
}

// TestBoundedSwapRecycle tests the full recycling cycle on one slot:
// ConsumeSwap leaves the caller's old value in the vacated slot and the
// next ProduceSwap on that slot hands it back.
func TestBoundedSwapRecycle(t *testing.T) {
	q := pcq.NewBounded[int](1)

	v := 11
	if err := q.Produce(&v); err != nil {
		t.Fatalf("Produce: %v", err)
	}

	out := 99
	if err := q.ConsumeSwap(&out); err != nil {
		t.Fatalf("ConsumeSwap: %v", err)
	}
	if out != 11 {
		t.Fatalf("ConsumeSwap: got %d, want 11", out)
	}

	// The vacated slot now holds 99; ProduceSwap trades it for the new value.
	v = 22
	if err := q.ProduceSwap(&v); err != nil {
		t.Fatalf("ProduceSwap: %v", err)
	}
	if v != 99 {
		t.Fatalf("ProduceSwap: caller got %d, want leftover 99", v)
	}

	val, err := q.Consume()
	if err != nil {
		t.Fatalf("Consume: %v", err)
	}
	if val != 22 {
		t.Fatalf("Consume: got %d, want 22", val)
	}
}

// TestBoundedConsumeClearsSlot tests that plain consume zeroes the drained
// slot, observed through a later ProduceSwap on the same slot.
func TestBoundedConsumeClearsSlot(t *testing.T) {
	q := pcq.NewBounded[int](1)

	v := 7
	if err := q.Produce(&v); err != nil {
		t.Fatalf("Produce: %v", err)
	}
	if val, err := q.Consume(); err != nil || val != 7 {
		t.Fatalf("Consume: got (%d, %v), want (7, nil)", val, err)
	}

	v = 33
	if err := q.ProduceSwap(&v); err != nil {
		t.Fatalf("ProduceSwap: %v", err)
	}
	if v != 0 {
		t.Fatalf("drained slot not cleared: ProduceSwap returned %d, want 0", v)
	}
}

// =============================================================================
// Unbounded - Basic Operations
// =============================================================================

// TestUnboundedBasic tests single-goroutine produce/consume round trips.
func TestUnboundedBasic(t *testing.T) {
	q := pcq.NewUnbounded[int]()

	for i := range 5 {
		v := i + 100
		if err := q.Produce(&v); err != nil {
			t.Fatalf("Produce(%d): %v", i, err)
		}
	}

	for i := range 3 {
		val, err := q.Consume()
		if err != nil {
			t.Fatalf("Consume(%d): %v", i, err)
		}
		if val != i+100 {
			t.Fatalf("Consume(%d): got %d, want %d", i, val, i+100)
		}
	}

	var out int
	for i := 3; i < 5; i++ {
		if err := q.ConsumeInto(&out); err != nil {
			t.Fatalf("ConsumeInto(%d): %v", i, err)
		}
		if out != i+100 {
			t.Fatalf("ConsumeInto(%d): got %d, want %d", i, out, i+100)
		}
	}
}

// TestUnboundedPageBoundary tests FIFO order across page boundaries.
// Pages hold 1023 elements, so 2500 items span three pages.
func TestUnboundedPageBoundary(t *testing.T) {
	q := pcq.NewUnbounded[int]()

	for i := range 2500 {
		v := i
		if err := q.Produce(&v); err != nil {
			t.Fatalf("Produce(%d): %v", i, err)
		}
	}

	for i := range 2500 {
		val, err := q.Consume()
		if err != nil {
			t.Fatalf("Consume(%d): %v", i, err)
		}
		if val != i {
			t.Fatalf("Consume(%d): got %d, want %d", i, val, i)
		}
	}
}

// TestUnboundedInterleavedPages tests interleaved production and draining
// with the reading and filling cursors on different pages.
func TestUnboundedInterleavedPages(t *testing.T) {
	q := pcq.NewUnbounded[int]()

	next := 0
	want := 0
	produce := func(n int) {
		t.Helper()
		for range n {
			v := next
			next++
			if err := q.Produce(&v); err != nil {
				t.Fatalf("Produce(%d): %v", v, err)
			}
		}
	}
	consume := func(n int) {
		t.Helper()
		for range n {
			val, err := q.Consume()
			if err != nil {
				t.Fatalf("Consume: %v", err)
			}
			if val != want {
				t.Fatalf("Consume: got %d, want %d", val, want)
			}
			want++
		}
	}

	produce(1500) // filling on page 2, reading on page 1
	consume(1000)
	produce(1600) // filling on page 4
	consume(2100)

	if want != 3100 {
		t.Fatalf("consumed %d items, want 3100", want)
	}
}

// =============================================================================
// Semaphore - Non-blocking Paths
// =============================================================================

// TestSemaphoreImmediate tests waits that are satisfied without blocking.
func TestSemaphoreImmediate(t *testing.T) {
	sem := pcq.NewSemaphore(2)

	sem.Wait()
	sem.Wait()
	sem.Post()
	sem.Wait()

	// No waiters outstanding; Close is a no-op.
	sem.Close()
}

// =============================================================================
// Construction Panics
// =============================================================================

// TestPanicOnBadConstruction tests that invalid sizes cause panic.
func TestPanicOnBadConstruction(t *testing.T) {
	tests := []struct {
		name   string
		create func()
	}{
		{"BoundedZero", func() { pcq.NewBounded[int](0) }},
		{"BoundedNegative", func() { pcq.NewBounded[int](-3) }},
		{"SemaphoreNegative", func() { pcq.NewSemaphore(-1) }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			defer func() {
				if r := recover(); r == nil {
					t.Fatal("expected panic")
				}
			}()
			tt.create()
		})
	}
}

// =============================================================================
// Interface Compliance Tests
// =============================================================================

func TestQueueInterface(t *testing.T) {
	var _ pcq.Queue[int] = pcq.NewBounded[int](8)
	var _ pcq.Queue[int] = pcq.NewUnbounded[int]()
	var _ pcq.Producer[string] = pcq.NewBounded[string](8)
	var _ pcq.Consumer[string] = pcq.NewUnbounded[string]()
}
