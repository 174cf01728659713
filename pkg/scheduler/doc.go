// Package scheduler runs units of work once after a delay.
//
// Two strategies implement the Scheduler interface:
//
// # SingleThreaded
//
// One worker goroutine executes all work serially in fire-time order. A slow
// work item delays every item due after it. Use it when work items are short
// and ordering matters.
//
// # Pool
//
// Each item arms its own timer and is submitted to a bounded worker pool
// when the timer fires. Items may run concurrently. Use it when work may
// block.
//
// # Cancellation
//
// Cancel succeeds only while an item is still pending. Once an item has been
// handed to a worker, Cancel returns false and the work runs to completion.
// Fired and canceled items are dropped from the pending set immediately.
//
// # Shutdown
//
// Shutdown discards all pending items without running them and waits for
// work that has already started. Schedule after Shutdown returns
// InvalidHandle. Shutdown must not be called from inside a work item.
package scheduler
