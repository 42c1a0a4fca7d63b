// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package cq

import "code.hybscloud.com/atomix"

// LFRSP is a lock-free bounded ring for a single producer.
//
// Based on Frechilla's circular-array lock-free queue (see
// lock_free_queue_impl_single_producer.h in the reference sources). With
// exactly one producer there is no publish/commit gap to close: write_count
// itself is the barrier a consumer reads to know a slot has been filled,
// so Push is wait-free and needs no CAS.
//
// Pop is multi-consumer-safe: any number of goroutines may call Pop
// concurrently. Only Push is restricted to a single goroutine.
//
// Memory: N slots for usable capacity N-1.
type LFRSP[T any] struct {
	ring[T]
	_          pad
	writeCount atomix.Uint64
}

// NewLFRSP creates a new single-producer lock-free ring.
// capacity rounds up to the next power of 2; usable capacity is
// capacity-1 (one slot is sacrificed to distinguish full from empty).
// Panics if capacity < 2.
func NewLFRSP[T any](capacity int) *LFRSP[T] {
	return newLFRSP[T](capacity, false)
}

// NewLFRSPExact creates a single-producer ring with an exact, atomically
// maintained live element count. Size becomes exact instead of
// best-effort, at a measurable throughput cost.
func NewLFRSPExact[T any](capacity int) *LFRSP[T] {
	return newLFRSP[T](capacity, true)
}

func newLFRSP[T any](capacity int, exact bool) *LFRSP[T] {
	if capacity < 2 {
		panic("cq: capacity must be >= 2")
	}
	return &LFRSP[T]{ring: makeRing[T](capacity, exact)}
}

// Push adds an element to the ring (single producer only).
// Returns ErrWouldBlock if the ring is full.
func (q *LFRSP[T]) Push(elem T) error {
	wc := q.writeCount.LoadRelaxed()
	rc := q.readCount.LoadAcquire()

	if index(wc+1, q.mask) == index(rc, q.mask) {
		return ErrWouldBlock
	}

	q.slots[index(wc, q.mask)].data = elem
	q.writeCount.StoreRelease(wc + 1)

	if q.exact {
		q.liveCount.AddAcqRel(1)
	}
	return nil
}

// Pop removes and returns the oldest element (multiple consumers safe).
// Returns (zero-value, ErrWouldBlock) if the ring is empty.
func (q *LFRSP[T]) Pop() (T, error) {
	return q.ring.pop(q.writeCount.LoadAcquire)
}

// Size returns a best-effort element count, exact only if the ring was
// constructed with NewLFRSPExact.
func (q *LFRSP[T]) Size() int {
	return q.ring.size(q.writeCount.LoadAcquire())
}

// Full reports, best-effort, whether the ring has no free slot.
func (q *LFRSP[T]) Full() bool {
	return q.ring.full(q.writeCount.LoadAcquire())
}

// Cap returns the usable capacity.
func (q *LFRSP[T]) Cap() int {
	return q.ring.cap()
}
