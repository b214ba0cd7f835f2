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
	"fmt"
	"sync"
	"time"
)

// WorkerPoolExecutorConfig contains options to configure a WorkerPoolExecutor.
type WorkerPoolExecutorConfig struct {
	// The maximum number of workers allowed in pool (required, must be greater than 0)
	MaxPoolSize uint32

	// The number of workers to start eagerly when the executor is created
	MinPoolSize uint32
}

// Validate verifies config values.
func (config *WorkerPoolExecutorConfig) Validate() error {
	if config.MaxPoolSize == 0 {
		return errors.New(`WorkerPoolExecutor: MaxPoolSize must be a non-zero value which specifies ` +
			`the maximum number of workers to be created by the executor. If you have no idea, try to ` +
			`set the value to uint32(runtime.GOMAXPROCS(-1)).`)
	}

	if config.MaxPoolSize < config.MinPoolSize {
		return fmt.Errorf(`WorkerPoolExecutor: MaxPoolSize (%d) should be greater than MinPoolSize (%d)`,
			config.MaxPoolSize, config.MinPoolSize)
	}
	return nil
}

// workerPoolTask implements TaskHandle for Task executed in a WorkerPoolExecutor.
type workerPoolTask struct {
	Task
	executor *WorkerPoolExecutor

	// Closed when result and err are available
	done   chan struct{}
	result interface{}
	err    error
}

var (
	_ Task       = (*workerPoolTask)(nil)
	_ TaskHandle = (*workerPoolTask)(nil)
)

func newWorkerPoolTask(task Task, executor *WorkerPoolExecutor) *workerPoolTask {
	return &workerPoolTask{
		Task:     task,
		executor: executor,
		done:     make(chan struct{}),
	}
}

// Cancel implements TaskHandle.
func (task *workerPoolTask) Cancel() error {
	if err := task.executor.queue.Remove(task); err != nil {
		return ErrTaskNotCancellable
	}
	task.setResult(nil, ErrTaskCancelled)
	return nil
}

// setResult sets the execution result of the task and notifies the waiters blocked in AwaitResult.
// It must be called once.
func (task *workerPoolTask) setResult(result interface{}, err error) {
	task.result = result
	task.err = err
	close(task.done)
}

// run executes the task and stores the result. A panic in the task is turned into an error.
func (task *workerPoolTask) run() {
	var (
		result interface{}
		err    error
	)
	func() {
		defer func() {
			if r := recover(); r != nil {
				err = fmt.Errorf("task panicked: %v", r)
			}
		}()
		result, err = task.Run()
	}()
	task.setResult(result, err)
}

// AwaitResult implements TaskHandle.
func (task *workerPoolTask) AwaitResult(timeout time.Duration) (interface{}, error) {
	if timeout <= 0 {
		<-task.done
		return task.result, task.err
	}

	timer := time.NewTimer(timeout)
	defer timer.Stop()

	select {
	case <-task.done:
		return task.result, task.err
	case <-timer.C:
		return nil, ErrAwaitTaskResultTimeout
	}
}

// WorkerPoolExecutor executes submitted tasks with a pool of goroutines. Workers are spawned on
// demand up to MaxPoolSize and live until the executor is shut down. Tasks start in the order they
// are submitted; with MaxPoolSize set to 1, tasks also run one at a time in submission order.
type WorkerPoolExecutor struct {
	config WorkerPoolExecutorConfig
	queue  *taskQueue

	// Lock that guards the fields below
	mutex       sync.Mutex
	workerCount uint32
	shutdown    bool
	terminated  chan bool
}

var _ Executor = (*WorkerPoolExecutor)(nil)

// NewWorkerPoolExecutor creates a WorkerPoolExecutor from config.
func NewWorkerPoolExecutor(config WorkerPoolExecutorConfig) (*WorkerPoolExecutor, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	executor := &WorkerPoolExecutor{
		config:     config,
		queue:      newTaskQueue(),
		terminated: make(chan bool),
	}

	executor.mutex.Lock()
	for executor.workerCount < config.MinPoolSize {
		executor.startWorker()
	}
	executor.mutex.Unlock()

	return executor, nil
}

// startWorker must be called with mutex held.
func (executor *WorkerPoolExecutor) startWorker() {
	executor.workerCount++
	go executor.work()
}

func (executor *WorkerPoolExecutor) work() {
	for {
		task := executor.queue.Poll()
		if task == nil {
			break
		}
		task.run()
	}

	executor.mutex.Lock()
	executor.workerCount--
	if executor.shutdown && executor.workerCount == 0 {
		close(executor.terminated)
	}
	executor.mutex.Unlock()
}

// Submit implements Executor.
func (executor *WorkerPoolExecutor) Submit(task Task) (TaskHandle, error) {
	executor.mutex.Lock()
	defer executor.mutex.Unlock()

	if executor.shutdown {
		return nil, ErrExecutorShutdown
	}

	t := newWorkerPoolTask(task, executor)
	if err := executor.queue.Push(t); err != nil {
		return nil, err
	}

	if executor.workerCount < executor.config.MaxPoolSize {
		executor.startWorker()
	}

	return t, nil
}

// Shutdown implements Executor.
func (executor *WorkerPoolExecutor) Shutdown() (<-chan bool, error) {
	executor.mutex.Lock()
	defer executor.mutex.Unlock()

	if !executor.shutdown {
		executor.shutdown = true
		executor.queue.Close()
		if executor.workerCount == 0 {
			close(executor.terminated)
		}
	}

	return executor.terminated, nil
}
