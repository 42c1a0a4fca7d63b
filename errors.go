// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package cq

import "code.hybscloud.com/iox"

// ErrWouldBlock indicates the operation cannot proceed immediately.
//
// For Push: the queue/ring is full (backpressure)
// For Pop/TryPop/TimedWaitPop: the queue/ring is empty, or (LFRMP Pop) the
// next slot's producer has reserved but not yet committed it.
//
// ErrWouldBlock is a control flow signal, not a failure. The caller should
// retry the operation later (with backoff, a timed wait, or a blocking
// Push/Pop on BBQ) rather than propagating the error.
//
// This is an alias for [iox.ErrWouldBlock] for ecosystem consistency: both
// the blocking queue (BBQ) and the lock-free rings (LFRSP, LFRMP) report
// transient-capacity conditions through the same sentinel instead of BBQ
// using bare booleans and the rings using errors.
//
// Example:
//
//	backoff := iox.Backoff{}
//	for {
//	    err := ring.Push(item)
//	    if err == nil {
//	        backoff.Reset()
//	        break
//	    }
//	    if cq.IsWouldBlock(err) {
//	        backoff.Wait()  // Adaptive backpressure
//	        continue
//	    }
//	    return err  // Unexpected error
//	}
var ErrWouldBlock = iox.ErrWouldBlock

// IsWouldBlock reports whether err indicates the operation would block.
// Delegates to [iox.IsWouldBlock] for wrapped error support.
func IsWouldBlock(err error) bool {
	return iox.IsWouldBlock(err)
}

// IsSemantic reports whether err is a control flow signal (not a failure).
// Delegates to [iox.IsSemantic].
func IsSemantic(err error) bool {
	return iox.IsSemantic(err)
}

// IsNonFailure reports whether err represents a non-failure condition.
// Returns true for nil, ErrWouldBlock, or ErrMore.
// Delegates to [iox.IsNonFailure].
func IsNonFailure(err error) bool {
	return iox.IsNonFailure(err)
}
