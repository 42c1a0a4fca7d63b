// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package cq

import (
	"code.hybscloud.com/atomix"
	"code.hybscloud.com/spin"
)

// ring holds the fields and the Pop algorithm shared by LFRSP and LFRMP:
// the slot array and the consumer-side read counter.
//
// Push, and the producer-side publish counter(s) it advances, are owned
// by each variant individually — that is exactly where the single- and
// multi-producer protocols diverge. Pop is identical for both and is
// multi-consumer-safe in either variant, parameterized only by which
// counter bounds the read: write_count for LFRSP, max_read_count for
// LFRMP. Based on Frechilla's circular-array lock-free queue.
type ring[T any] struct {
	_         pad
	readCount atomix.Uint64
	_         pad
	liveCount atomix.Int64
	_         pad
	slots     []ringSlot[T]
	mask      uint64
	slotCount uint64 // N, the physical slot count (a power of 2)
	exact     bool
}

// ringSlot pads each element out to its own cache line, the same way the
// teacher's own per-slot types do, so that producers and consumers
// touching adjacent slots don't false-share.
type ringSlot[T any] struct {
	data T
	_    padShort
}

func makeRing[T any](capacity int, exact bool) ring[T] {
	n := uint64(roundToPow2(capacity))
	return ring[T]{
		slots:     make([]ringSlot[T], n),
		mask:      n - 1,
		slotCount: n,
		exact:     exact,
	}
}

// index maps a monotonically increasing counter to its slot.
func index(count, mask uint64) uint64 {
	return count & mask
}

// pop reads a slot and then races to claim it with a CAS on read_count.
// upper returns the producer-side counter that bounds how far the
// consumer may read without racing an in-progress push. Reading the
// value before the CAS, rather than after, is what makes this safe for
// any number of concurrent consumers: a consumer that loses the CAS
// discards its speculative read instead of exposing a torn value.
func (r *ring[T]) pop(upper func() uint64) (T, error) {
	sw := spin.Wait{}
	for {
		current := r.readCount.LoadAcquire()
		up := upper()
		if index(current, r.mask) == index(up, r.mask) {
			var zero T
			return zero, ErrWouldBlock
		}

		value := r.slots[index(current, r.mask)].data

		if r.readCount.CompareAndSwapAcqRel(current, current+1) {
			if r.exact {
				r.liveCount.AddAcqRel(-1)
			}
			return value, nil
		}
		// another consumer won the slot; retry.
		sw.Once()
	}
}

// size compares slot indices rather than subtracting raw counters, which
// stays correct across a counter wraparound. writeCount is the
// producer-side counter that bounds reads (write_count for LFRSP,
// max_read_count for LFRMP — the same one passed to pop's upper()), so
// LFRMP counts only committed elements here.
func (r *ring[T]) size(writeCount uint64) int {
	if r.exact {
		return int(r.liveCount.LoadAcquire())
	}
	rc := r.readCount.LoadAcquire()
	iw, ir := index(writeCount, r.mask), index(rc, r.mask)
	if iw >= ir {
		return int(iw - ir)
	}
	return int(iw + r.slotCount - ir)
}

// full is an approximate check: index(write_count+1) == index(read_count).
func (r *ring[T]) full(writeCount uint64) bool {
	rc := r.readCount.LoadAcquire()
	return index(writeCount+1, r.mask) == index(rc, r.mask)
}

// cap returns the usable capacity: N-1, one slot sacrificed so full and
// empty remain distinguishable.
func (r *ring[T]) cap() int {
	return int(r.slotCount - 1)
}
