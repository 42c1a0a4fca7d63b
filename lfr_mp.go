// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package cq

import (
	"code.hybscloud.com/atomix"
	"code.hybscloud.com/spin"
)

// LFRMP is a lock-free bounded ring for multiple producers.
//
// Based on Frechilla's circular-array lock-free queue (see
// lock_free_queue_impl_multiple_producer.h in the reference sources).
// Producers reserve a slot with a CAS on write_count, write their value,
// then commit with a second CAS on max_read_count. The second CAS must
// succeed in reservation order — a producer whose reservation has a lower
// write_count must commit before a later one's max_read_count CAS can
// succeed — which is what gives consumers a FIFO view across producers
// even though two producers may reserve in either order.
//
// Pop is multi-consumer-safe and identical in shape to LFRSP's, bounded
// by max_read_count instead of write_count.
//
// Memory: N slots for usable capacity N-1.
type LFRMP[T any] struct {
	ring[T]
	_            pad
	writeCount   atomix.Uint64
	_            pad
	maxReadCount atomix.Uint64
}

// NewLFRMP creates a new multi-producer lock-free ring.
// capacity rounds up to the next power of 2; usable capacity is
// capacity-1 (one slot is sacrificed to distinguish full from empty).
// Panics if capacity < 2.
func NewLFRMP[T any](capacity int) *LFRMP[T] {
	return newLFRMP[T](capacity, false)
}

// NewLFRMPExact creates a multi-producer ring with an exact, atomically
// maintained live element count. Size becomes exact instead of
// best-effort, at a measurable throughput cost.
func NewLFRMPExact[T any](capacity int) *LFRMP[T] {
	return newLFRMP[T](capacity, true)
}

func newLFRMP[T any](capacity int, exact bool) *LFRMP[T] {
	if capacity < 2 {
		panic("cq: capacity must be >= 2")
	}
	return &LFRMP[T]{ring: makeRing[T](capacity, exact)}
}

// Push adds an element to the ring (multiple producers safe).
// Returns ErrWouldBlock if the ring is full.
func (q *LFRMP[T]) Push(elem T) error {
	sw := spin.Wait{}
	var reserved uint64
	for {
		current := q.writeCount.LoadAcquire()
		rc := q.readCount.LoadAcquire()
		if index(current+1, q.mask) == index(rc, q.mask) {
			return ErrWouldBlock
		}
		if q.writeCount.CompareAndSwapAcqRel(current, current+1) {
			reserved = current
			break
		}
		sw.Once()
	}

	// The slot at reserved is now exclusively owned by this goroutine.
	q.slots[index(reserved, q.mask)].data = elem

	// Commit in strict reservation order: a producer with a lower
	// reserved index must publish first, so yield until it's our turn.
	commit := spin.Wait{}
	for !q.maxReadCount.CompareAndSwapAcqRel(reserved, reserved+1) {
		commit.Once()
	}

	if q.exact {
		q.liveCount.AddAcqRel(1)
	}
	return nil
}

// Pop removes and returns the oldest committed element (multiple
// consumers safe). Returns (zero-value, ErrWouldBlock) if the ring is
// empty, or if the producer owning the next slot has reserved but not
// yet committed it.
func (q *LFRMP[T]) Pop() (T, error) {
	return q.ring.pop(q.maxReadCount.LoadAcquire)
}

// Size returns a best-effort element count, exact only if the ring was
// constructed with NewLFRMPExact.
func (q *LFRMP[T]) Size() int {
	return q.ring.size(q.maxReadCount.LoadAcquire())
}

// Full reports, best-effort, whether the ring has no free slot.
func (q *LFRMP[T]) Full() bool {
	return q.ring.full(q.writeCount.LoadAcquire())
}

// Cap returns the usable capacity.
func (q *LFRMP[T]) Cap() int {
	return q.ring.cap()
}
