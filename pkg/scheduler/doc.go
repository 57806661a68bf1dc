// Package scheduler batches component updates into a single synchronous
// flush and runs the lifecycle callbacks that follow it.
//
// Components call MarkDirty when their state changes. The first call in a
// task queues a flush on the host's microtask queue; later calls only
// append to the shared dirty queue. A flush proceeds in passes:
//
//  1. every dirty component is updated, in the order it was marked;
//  2. binding callbacks run, most recently registered first;
//  3. render callbacks run, each at most once per flush;
//  4. if any of the above dirtied more components, repeat.
//
// When the queue is finally empty the flush callbacks run, most recently
// registered first.
//
// The package also provides the per-frame task loop used by transitions
// (Loop) and a coalesced next-microtask signal (Wait).
package scheduler
