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

package concurrent_test

import (
	"errors"
	"runtime"
	"sync"
	"sync/atomic"
	"time"

	"github.com/botobag/bookshelf/concurrent"

	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"
)

var _ = Describe("WorkerPoolExecutor", func() {
	It("cannot be created with invalid pool size", func() {
		var err error

		_, err = concurrent.NewWorkerPoolExecutor(concurrent.WorkerPoolExecutorConfig{})
		Expect(err.Error()).Should(ContainSubstring("MaxPoolSize must be a non-zero value"))

		_, err = concurrent.NewWorkerPoolExecutor(concurrent.WorkerPoolExecutorConfig{
			MaxPoolSize: 50,
			MinPoolSize: 100,
		})
		Expect(err.Error()).Should(ContainSubstring("MaxPoolSize (50) should be greater than MinPoolSize (100)"))
	})

	It("executes a task and delivers its result", func() {
		executor, err := concurrent.NewWorkerPoolExecutor(concurrent.WorkerPoolExecutorConfig{
			MaxPoolSize: uint32(runtime.GOMAXPROCS(-1)),
		})
		Expect(err).ShouldNot(HaveOccurred())

		handle, err := executor.Submit(concurrent.TaskFunc(func() (interface{}, error) {
			return "task result", nil
		}))
		Expect(err).ShouldNot(HaveOccurred())
		Expect(handle.AwaitResult(0)).Should(Equal("task result"))

		Expect(shutdownExecutor(executor)).Should(Succeed())
	})

	It("delivers task errors", func() {
		executor, err := concurrent.NewWorkerPoolExecutor(concurrent.WorkerPoolExecutorConfig{
			MaxPoolSize: 1,
		})
		Expect(err).ShouldNot(HaveOccurred())

		failure := errors.New("task failed")
		handle, err := executor.Submit(concurrent.TaskFunc(func() (interface{}, error) {
			return nil, failure
		}))
		Expect(err).ShouldNot(HaveOccurred())

		_, err = handle.AwaitResult(0)
		Expect(err).Should(Equal(failure))

		Expect(shutdownExecutor(executor)).Should(Succeed())
	})

	It("turns a panicking task into an error", func() {
		executor, err := concurrent.NewWorkerPoolExecutor(concurrent.WorkerPoolExecutorConfig{
			MaxPoolSize: 1,
		})
		Expect(err).ShouldNot(HaveOccurred())

		handle, err := executor.Submit(concurrent.TaskFunc(func() (interface{}, error) {
			panic("boom")
		}))
		Expect(err).ShouldNot(HaveOccurred())

		_, err = handle.AwaitResult(0)
		Expect(err).Should(MatchError("task panicked: boom"))

		Expect(shutdownExecutor(executor)).Should(Succeed())
	})

	It("executes multiple tasks with pool", func() {
		executor, err := concurrent.NewWorkerPoolExecutor(concurrent.WorkerPoolExecutorConfig{
			MinPoolSize: 4,
			MaxPoolSize: 8,
		})
		Expect(err).ShouldNot(HaveOccurred())

		var x int32
		task := concurrent.TaskFunc(func() (interface{}, error) {
			atomic.AddInt32(&x, 1)
			return nil, nil
		})

		const TIMES = 100
		for i := 0; i < TIMES; i++ {
			_, err := executor.Submit(task)
			Expect(err).ShouldNot(HaveOccurred())
		}

		// Tasks in the queue are drained before termination.
		Expect(shutdownExecutor(executor)).Should(Succeed())
		Expect(atomic.LoadInt32(&x)).Should(Equal(int32(TIMES)))
	})

	It("runs tasks one at a time in submission order with a single worker", func() {
		executor, err := concurrent.NewWorkerPoolExecutor(concurrent.WorkerPoolExecutorConfig{
			MaxPoolSize: 1,
		})
		Expect(err).ShouldNot(HaveOccurred())

		var (
			mutex   sync.Mutex
			order   []int
			running int32
			overlap int32
		)

		const TIMES = 50
		handles := make([]concurrent.TaskHandle, 0, TIMES)
		for i := 0; i < TIMES; i++ {
			i := i
			handle, err := executor.Submit(concurrent.TaskFunc(func() (interface{}, error) {
				if atomic.AddInt32(&running, 1) > 1 {
					atomic.StoreInt32(&overlap, 1)
				}
				mutex.Lock()
				order = append(order, i)
				mutex.Unlock()
				atomic.AddInt32(&running, -1)
				return i, nil
			}))
			Expect(err).ShouldNot(HaveOccurred())
			handles = append(handles, handle)
		}

		for i, handle := range handles {
			Expect(handle.AwaitResult(0)).Should(Equal(i))
		}

		Expect(atomic.LoadInt32(&overlap)).Should(BeZero())
		for i := range order {
			Expect(order[i]).Should(Equal(i))
		}

		Expect(shutdownExecutor(executor)).Should(Succeed())
	})

	It("cancels a queued task", func() {
		executor, err := concurrent.NewWorkerPoolExecutor(concurrent.WorkerPoolExecutorConfig{
			MinPoolSize: 1,
			MaxPoolSize: 1,
		})
		Expect(err).ShouldNot(HaveOccurred())

		// The first task occupies the only worker and leaves the second one in the queue.
		stopFirstTask := make(chan bool, 1)
		enterFirstTask := make(chan bool, 1)
		firstTaskHandle, err := executor.Submit(concurrent.TaskFunc(func() (interface{}, error) {
			enterFirstTask <- true
			<-stopFirstTask
			return "first task result", nil
		}))
		Expect(err).ShouldNot(HaveOccurred())
		<-enterFirstTask

		// A running task cannot be cancelled.
		Expect(firstTaskHandle.Cancel()).Should(MatchError(concurrent.ErrTaskNotCancellable))

		secondTaskHandle, err := executor.Submit(concurrent.TaskFunc(func() (interface{}, error) {
			return "second task result", nil
		}))
		Expect(err).ShouldNot(HaveOccurred())
		Expect(secondTaskHandle.Cancel()).Should(Succeed())

		_, err = secondTaskHandle.AwaitResult(0)
		Expect(err).Should(MatchError(concurrent.ErrTaskCancelled))

		stopFirstTask <- true
		Expect(firstTaskHandle.AwaitResult(0)).Should(Equal("first task result"))

		Expect(shutdownExecutor(executor)).Should(Succeed())
	})

	It("times out waiting for a result", func() {
		executor, err := concurrent.NewWorkerPoolExecutor(concurrent.WorkerPoolExecutorConfig{
			MaxPoolSize: 1,
		})
		Expect(err).ShouldNot(HaveOccurred())

		release := make(chan bool)
		handle, err := executor.Submit(concurrent.TaskFunc(func() (interface{}, error) {
			<-release
			return "done", nil
		}))
		Expect(err).ShouldNot(HaveOccurred())

		_, err = handle.AwaitResult(10 * time.Millisecond)
		Expect(err).Should(MatchError(concurrent.ErrAwaitTaskResultTimeout))

		close(release)
		Expect(handle.AwaitResult(time.Second)).Should(Equal("done"))

		Expect(shutdownExecutor(executor)).Should(Succeed())
	})

	It("rejects tasks after shutdown", func() {
		executor, err := concurrent.NewWorkerPoolExecutor(concurrent.WorkerPoolExecutorConfig{
			MaxPoolSize: 2,
		})
		Expect(err).ShouldNot(HaveOccurred())

		Expect(shutdownExecutor(executor)).Should(Succeed())

		_, err = executor.Submit(concurrent.TaskFunc(func() (interface{}, error) {
			return nil, nil
		}))
		Expect(err).Should(MatchError(concurrent.ErrExecutorShutdown))

		// Shutdown can be called more than once.
		Expect(shutdownExecutor(executor)).Should(Succeed())
	})
})
