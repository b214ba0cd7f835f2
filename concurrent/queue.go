/**
 * Copyright (c) 2019, The Artemis Authors.
 *
 * Permission to use, copy, modify, and/or distribute this software for any
 * purpose with or without fee is hereby granted, provided that the above
 * copyright notice and this permission notice appear in all copies.
 *
 * THE SOFTWARE IS PROVIDED "AS IS" AND THE AUTHOR DISCLAIMS ALL WARRANTIES
 * WITH REGARD TO THIS SOFTWARE INCLUDING ALL IMPLIED WARRANTIES OF
 * MERCHANTABILITY AND FITNESS. IN NO EVENT SHALL THE AUTHOR BE LIABLE FOR
 * ANY SPECIAL, DIRECT, INDIRECT, OR CONSEQUENTIAL DAMAGES OR ANY DAMAGES
 * WHATSOEVER RESULTING FROM LOSS OF USE, DATA OR PROFITS, WHETHER IN AN
 * ACTION OF CONTRACT, NEGLIGENCE OR OTHER TORTIOUS ACTION, ARISING OUT OF
 * OR IN CONNECTION WITH THE USE OR PERFORMANCE OF THIS SOFTWARE.
 */

package concurrent

import (
	"errors"
	"sync"
)

var (
	// ErrQueueClosed is returned by Push to indicate the queue cannot accept the new element because
	// it is closed.
	ErrQueueClosed = errors.New("queue: closed")

	// ErrElementNotFound is returned by Remove to indicate the given element is not in the queue.
	ErrElementNotFound = errors.New("queue: given element is not found in the queue")
)

// taskQueue is a FIFO of tasks waiting for a worker. Poll blocks until a task arrives or the queue
// is closed and drained.
type taskQueue struct {
	mutex    sync.Mutex
	nonEmpty *sync.Cond
	tasks    []*workerPoolTask
	closed   bool
}

func newTaskQueue() *taskQueue {
	queue := &taskQueue{}
	queue.nonEmpty = sync.NewCond(&queue.mutex)
	return queue
}

// Push appends task to the queue.
func (queue *taskQueue) Push(task *workerPoolTask) error {
	queue.mutex.Lock()
	defer queue.mutex.Unlock()

	if queue.closed {
		return ErrQueueClosed
	}
	queue.tasks = append(queue.tasks, task)
	queue.nonEmpty.Signal()
	return nil
}

// Poll pops the task at the head. It returns nil when the queue is closed and empty.
func (queue *taskQueue) Poll() *workerPoolTask {
	queue.mutex.Lock()
	defer queue.mutex.Unlock()

	for len(queue.tasks) == 0 {
		if queue.closed {
			return nil
		}
		queue.nonEmpty.Wait()
	}

	task := queue.tasks[0]
	queue.tasks[0] = nil
	queue.tasks = queue.tasks[1:]
	return task
}

// Remove removes the given task from the queue.
func (queue *taskQueue) Remove(task *workerPoolTask) error {
	queue.mutex.Lock()
	defer queue.mutex.Unlock()

	for i, t := range queue.tasks {
		if t == task {
			queue.tasks = append(queue.tasks[:i], queue.tasks[i+1:]...)
			return nil
		}
	}
	return ErrElementNotFound
}

// Close stops the queue from accepting new tasks and wakes up all pollers. Tasks in the queue are
// still available via Poll.
func (queue *taskQueue) Close() {
	queue.mutex.Lock()
	queue.closed = true
	queue.nonEmpty.Broadcast()
	queue.mutex.Unlock()
}
