// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package cq provides blocking and lock-free bounded queues, and a
// consumer worker built on top of them.
//
// Three building blocks cover different producer/consumer patterns:
//
//   - BBQ: blocking bounded queue. Mutex + condition variables. Any
//     number of producers and consumers; callers block on full/empty.
//   - LFRSP / LFRMP: lock-free bounded ring. A single goroutine calls
//     Push on an LFRSP; any number of goroutines may call Push on an
//     LFRMP. Either variant's Pop is safe for any number of consumers.
//   - ConsumerWorker: owns a BBQ and one goroutine that polls it and
//     invokes a callback per item, for the common "hand items to a
//     dedicated background worker" pattern.
//
// # Quick Start
//
// Blocking queue, any number of producers and consumers:
//
//	q := cq.NewBBQ[Event](1024)
//	q.Push(ev)           // blocks while full
//	ev, err := q.TryPop() // never blocks
//
// Lock-free ring, selected through the builder:
//
//	r := cq.BuildSP[Event](cq.NewRingBuilder(1024).SingleProducer())
//	r := cq.BuildMP[Request](cq.NewRingBuilder(4096))
//
// Consumer worker around a BBQ:
//
//	w := cq.NewConsumerWorker(1024, func(item Job) { item.Run() })
//	w.ProduceOrBlock(job)
//	w.Join()
//
// # Basic Usage
//
// BBQ blocks by default and offers non-blocking and timed variants:
//
//	q := cq.NewBBQ[int](1024)
//
//	q.Push(42)                      // blocks if full
//	err := q.TryPush(42)             // cq.ErrWouldBlock if full
//
//	v := q.Pop()                     // blocks if empty
//	v, err := q.TryPop()             // cq.ErrWouldBlock if empty
//	v, err := q.TimedWaitPop(time.Millisecond)
//
// LFRSP and LFRMP share the [Ring] interface:
//
//	var r cq.Ring[int] = cq.NewLFRSP[int](1024)
//	err := r.Push(42)
//	v, err := r.Pop()
//	if cq.IsWouldBlock(err) {
//	    // full (Push) or empty (Pop)
//	}
//
// # Common Patterns
//
// Pipeline stage, single producer, lock-free:
//
//	r := cq.NewLFRSP[Data](1024)
//
//	go func() { // producer
//	    for data := range input {
//	        for r.Push(data) != nil {
//	            runtime.Gosched()
//	        }
//	    }
//	}()
//
//	go func() { // consumer
//	    for {
//	        data, err := r.Pop()
//	        if err != nil {
//	            continue
//	        }
//	        process(data)
//	    }
//	}()
//
// Event aggregation from many sources, blocking queue absorbs bursts:
//
//	q := cq.NewBBQ[Event](4096)
//	for _, s := range sensors {
//	    go func(s Sensor) {
//	        for ev := range s.Events() {
//	            q.Push(ev)
//	        }
//	    }(s)
//	}
//	go func() {
//	    for {
//	        aggregate(q.Pop())
//	    }
//	}()
//
// Background worker, owned BBQ, bounded queue depth as backpressure:
//
//	w := cq.NewConsumerWorker(1024, func(rec Record) {
//	    store(rec)
//	})
//	defer w.Join()
//
//	for rec := range records {
//	    w.ProduceOrBlock(rec)
//	}
//
// # Choosing a Ring Variant
//
// LFRSP requires exactly one Push-calling goroutine; in exchange Push is
// wait-free (no CAS, no retry loop). LFRMP accepts any number of
// Push-calling goroutines at the cost of two CAS phases per Push. Both
// variants' Pop accepts any number of concurrent callers. [RingBuilder]
// picks the algorithm from a single declaration:
//
//	cq.BuildRing[T](cq.NewRingBuilder(n).SingleProducer()) // → LFRSP
//	cq.BuildRing[T](cq.NewRingBuilder(n))                  // → LFRMP
//
// [BuildSP] and [BuildMP] return the concrete type instead of the [Ring]
// interface, for callers that want compile-time assurance of which
// variant they hold.
//
// # Error Handling
//
// Non-blocking operations on both BBQ and the rings return
// [ErrWouldBlock] when they cannot proceed immediately. This error is
// sourced from [code.hybscloud.com/iox] for ecosystem consistency with
// the rest of the hybscloud stack.
//
//	err := r.Push(item)
//	if cq.IsWouldBlock(err) {
//	    // ring is full
//	}
//
// For semantic error classification (delegates to iox):
//
//	cq.IsWouldBlock(err)  // true if queue/ring full or empty
//	cq.IsSemantic(err)    // true if control flow signal
//	cq.IsNonFailure(err)  // true if nil or ErrWouldBlock
//
// # Capacity
//
// BBQ's capacity is exact. LFRSP and LFRMP round capacity up to the next
// power of 2 and sacrifice one slot to distinguish full from empty, so
// NewLFRMP(1000) yields a ring with usable capacity 1023:
//
//	r := cq.NewLFRMP[int](1000) // usable capacity: 1023
//	r := cq.NewLFRMP[int](1024) // usable capacity: 1023
//
// Minimum ring capacity is 2; Size is best-effort unless the ring was
// built with the Exact variant ([NewLFRSPExact], [NewLFRMPExact], or
// [RingBuilder.ExactSize]), which trades throughput for an atomically
// maintained live count. Full is best-effort in every variant.
//
// # Thread Safety
//
//   - BBQ: any number of producer and consumer goroutines.
//   - LFRSP: exactly one Push-calling goroutine; any number of Pop callers.
//   - LFRMP: any number of Push-calling goroutines; any number of Pop callers.
//
// Calling Push on an LFRSP from more than one goroutine is undefined
// behavior: there is no synchronization between producers to protect it.
//
// # Race Detection
//
// Go's race detector tracks explicit synchronization primitives (mutex,
// channels, WaitGroup) but cannot observe happens-before relationships
// established purely through atomic acquire-release orderings. LFRSP and
// LFRMP are correct under that model, but some concurrent stress tests
// exercise interleavings the race detector cannot verify and are skipped
// under it; see [RaceEnabled].
//
// # Dependencies
//
// This package uses [code.hybscloud.com/iox] for semantic errors,
// [code.hybscloud.com/atomix] for atomic primitives with explicit
// memory ordering, and [code.hybscloud.com/spin] for CAS-retry backoff.
package cq
