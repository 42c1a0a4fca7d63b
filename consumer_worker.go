// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package cq

import (
	"time"

	"code.hybscloud.com/atomix"
)

// pollInterval is how often a ConsumerWorker's loop re-checks its stop
// flag between BBQ polls. Named analog of the original's
// CONSUMER_THREAD_TIMEOUT_USEC (consumer_thread_impl.h), which is 1000us.
const pollInterval = time.Millisecond

// ConsumerWorker owns a BBQ and a single goroutine that drains it,
// invoking onConsume for every item.
//
// Based on Frechilla's ConsumerThread (consumer_thread.h /
// consumer_thread_impl.h): a constructor takes an optional queue size, a
// consume delegate and an optional init delegate; the worker calls the
// init delegate once, then loops TimedWaitPop → consume until told to
// stop. Go's closures let onInit/onConsume be plain function values
// instead of the delegate objects the original uses.
type ConsumerWorker[T any] struct {
	queue      *BBQ[T]
	onConsume  func(T)
	onInit     func()
	stopFlag   atomix.Bool
	drainFirst bool
	done       chan struct{}
}

// ConsumerWorkerOption configures a ConsumerWorker at construction.
type ConsumerWorkerOption func(*consumerWorkerConfig)

type consumerWorkerConfig struct {
	onInit     func()
	drainFirst bool
}

// WithInit registers a function called once before the worker loop
// begins polling (spec's "init delegate").
func WithInit(onInit func()) ConsumerWorkerOption {
	return func(c *consumerWorkerConfig) {
		c.onInit = onInit
	}
}

// WithDrainOnJoin makes the worker keep consuming after Join is called
// until the queue is empty, instead of stopping immediately with items
// still queued. The original always discards items still queued at
// shutdown; this option lets a caller opt into fully draining a finite
// workload first.
func WithDrainOnJoin() ConsumerWorkerOption {
	return func(c *consumerWorkerConfig) {
		c.drainFirst = true
	}
}

// NewConsumerWorker creates a worker around a new BBQ of the given
// capacity and starts its goroutine immediately.
func NewConsumerWorker[T any](capacity int, onConsume func(T), opts ...ConsumerWorkerOption) *ConsumerWorker[T] {
	var cfg consumerWorkerConfig
	for _, opt := range opts {
		opt(&cfg)
	}

	w := &ConsumerWorker[T]{
		queue:      NewBBQ[T](capacity),
		onConsume:  onConsume,
		onInit:     cfg.onInit,
		drainFirst: cfg.drainFirst,
		done:       make(chan struct{}),
	}
	go w.run()
	return w
}

func (w *ConsumerWorker[T]) run() {
	defer close(w.done)

	if w.onInit != nil {
		w.onInit()
	}

	for {
		item, err := w.queue.TimedWaitPop(pollInterval)
		if err == nil {
			w.onConsume(item)
		}
		if w.stopFlag.LoadAcquire() {
			if !w.drainFirst || w.queue.IsEmpty() {
				return
			}
		}
	}
}

// Produce enqueues value without blocking.
// Returns ErrWouldBlock if the underlying queue is full.
func (w *ConsumerWorker[T]) Produce(value T) error {
	return w.queue.TryPush(value)
}

// ProduceOrBlock enqueues value, blocking while the underlying queue is
// full.
func (w *ConsumerWorker[T]) ProduceOrBlock(value T) {
	w.queue.Push(value)
}

// Join raises the stop flag and waits for the worker goroutine to exit.
// By default any items still queued are discarded once observed, matching
// the original's shutdown behavior; construct with WithDrainOnJoin to
// wait for the queue to empty first. Join is idempotent and safe to call
// more than once or from more than one goroutine.
func (w *ConsumerWorker[T]) Join() {
	w.stopFlag.StoreRelease(true)
	<-w.done
}
