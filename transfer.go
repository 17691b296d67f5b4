// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package pcq

// Assigner is implemented by element types whose value transfer can fail.
//
// When *T implements Assigner[T], every slot assignment in both directions
// (caller value into a slot on produce, slot into the caller's variable on
// consume) goes through Assign instead of a plain copy. An Assign error
// aborts the operation: the queue restores the semaphore reservation made
// just before the transfer and returns the error to the caller verbatim,
// leaving capacity accounting, cursors, and FIFO order exactly as if the
// call had not been attempted.
//
// Types with a plain copy semantics do not implement Assigner and their
// transfers cannot fail.
//
// Example:
//
//	type Record struct {
//	    buf []byte
//	}
//
//	func (r *Record) Assign(src *Record) error {
//	    if len(src.buf) > maxRecord {
//	        return ErrOversized
//	    }
//	    r.buf = append(r.buf[:0], src.buf...)
//	    return nil
//	}
type Assigner[T any] interface {
	Assign(src *T) error
}

// Swapper is implemented by element types that exchange contents with
// custom logic. When *T implements Swapper[T], ProduceSwap and ConsumeSwap
// call Swap instead of the built-in three-assignment exchange; a Swap error
// rolls the operation back the same way an Assign error does.
//
// Types that implement Assigner and depend on it for correctness should
// implement Swapper as well: the built-in exchange is a plain memory swap
// and does not consult Assign.
type Swapper[T any] interface {
	Swap(other *T) error
}

// assignFunc returns the fallible assign for T, or nil when a plain copy
// serves. Resolved once per queue at construction.
func assignFunc[T any]() func(dst, src *T) error {
	if _, ok := any((*T)(nil)).(Assigner[T]); ok {
		return func(dst, src *T) error {
			return any(dst).(Assigner[T]).Assign(src)
		}
	}
	return nil
}

// swapFunc returns the fallible exchange for T, or nil when a plain swap
// serves.
func swapFunc[T any]() func(a, b *T) error {
	if _, ok := any((*T)(nil)).(Swapper[T]); ok {
		return func(a, b *T) error {
			return any(a).(Swapper[T]).Swap(b)
		}
	}
	return nil
}
