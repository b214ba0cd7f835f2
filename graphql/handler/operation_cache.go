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

package handler

import (
	"errors"
	"sync"
	"unsafe"

	"github.com/botobag/bookshelf/graphql/executor"

	"github.com/willf/bitset"
)

// OperationCache caches executor.PreparedOperation created from a query to save the efforts of
// parsing and validation.
type OperationCache interface {
	// Get looks up operation for the given key.
	Get(key string) (operation *executor.PreparedOperation, ok bool)

	// Add adds an operation that associated with the key to the cache.
	Add(key string, operation *executor.PreparedOperation)
}

// OperationCacheKey returns the key of the operation selected by operationName in query.
func OperationCacheKey(query string, operationName string) string {
	return operationName + "\x00" + query
}

type lruEntry struct {
	key       string
	operation *executor.PreparedOperation

	// Next and previous pointers in the doubly-linked list of elements. The list is a ring such that
	// &l.root is both the next element of the last list element and the previous element of the
	// first list element.
	next, prev *lruEntry
}

const sizeOfLRUEntry = unsafe.Sizeof(lruEntry{})

// lruEntryAllocator hands out entries from a fixed array so that the cache doesn't allocate after
// it was created.
type lruEntryAllocator struct {
	entries []lruEntry

	// Free entries have their corresponding bits set.
	free *bitset.BitSet
}

func newLRUEntryAllocator(maxEntries uint) lruEntryAllocator {
	return lruEntryAllocator{
		entries: make([]lruEntry, maxEntries),
		free:    bitset.New(maxEntries).Complement(),
	}
}

// New allocates an entry to store given key and operation. It panics if there's no any entry
// available to allocate.
func (allocator *lruEntryAllocator) New(key string, operation *executor.PreparedOperation) *lruEntry {
	i, found := allocator.free.NextSet(0)
	if !found {
		panic("LRUOperationCache: no available entry to return")
	}
	allocator.free.Clear(i)

	entry := &allocator.entries[i]
	entry.key = key
	entry.operation = operation
	return entry
}

func (allocator *lruEntryAllocator) indexOf(entry *lruEntry) uint {
	entryAddr := uintptr(unsafe.Pointer(entry))
	firstEntryAddr := uintptr(unsafe.Pointer(&allocator.entries[0]))
	return uint((entryAddr - firstEntryAddr) / sizeOfLRUEntry)
}

// Free marks the entry to be free for later reuse.
func (allocator *lruEntryAllocator) Free(entry *lruEntry) {
	entry.key = ""
	entry.operation = nil
	allocator.free.Set(allocator.indexOf(entry))
}

// lruEvictList is a doubly linked list that maintains eviction order for LRUOperationCache. Its
// implementation mirrors container/list and only provides operations used by LRUOperationCache.
type lruEvictList struct {
	allocator lruEntryAllocator

	// sentinel list element, only &root, root.prev, and root.next are used
	root lruEntry

	// current list length excluding (this) sentinel element
	len uint
}

func newLRUEvictList(maxEntries uint) *lruEvictList {
	l := &lruEvictList{
		allocator: newLRUEntryAllocator(maxEntries),
	}
	l.root.next = &l.root
	l.root.prev = &l.root
	return l
}

// Len returns the number of elements of list l.
func (l *lruEvictList) Len() uint { return l.len }

// Back returns the last element of list l or nil if the list is empty.
func (l *lruEvictList) Back() *lruEntry {
	if l.len == 0 {
		return nil
	}
	return l.root.prev
}

// PushFront inserts an new entry with given values at the front of list l and returns it.
func (l *lruEvictList) PushFront(key string, operation *executor.PreparedOperation) *lruEntry {
	e := l.allocator.New(key, operation)
	at := &l.root
	n := at.next
	at.next = e
	e.prev = at
	e.next = n
	n.prev = e
	l.len++
	return e
}

// Remove removes e from l and returns it to the allocator.
func (l *lruEvictList) Remove(e *lruEntry) {
	e.prev.next = e.next
	e.next.prev = e.prev
	e.next = nil
	e.prev = nil
	l.len--
	l.allocator.Free(e)
}

// MoveToFront moves element e to the front of list l.
func (l *lruEvictList) MoveToFront(e *lruEntry) {
	at := &l.root
	if at.next == e {
		return
	}
	e.prev.next = e.next
	e.next.prev = e.prev

	n := at.next
	at.next = e
	e.prev = at
	e.next = n
	n.prev = e
}

// LRUOperationCache is a thread-safe LRU cache that implements OperationCache. It serves as the
// default operation cache for LLHandler.
type LRUOperationCache struct {
	// The maximum number of cached operations
	maxEntries uint

	// m guards cache and evictList.
	m         sync.Mutex
	cache     map[string]*lruEntry
	evictList *lruEvictList
}

var _ OperationCache = (*LRUOperationCache)(nil)

var errZeroCacheSize = errors.New("LRUOperationCache: must specified a non-zero cache size")

// NewLRUOperationCache creates a new LRUOperationCache with given size.
func NewLRUOperationCache(maxEntries uint) (*LRUOperationCache, error) {
	if maxEntries == 0 {
		return nil, errZeroCacheSize
	}

	return &LRUOperationCache{
		maxEntries: maxEntries,
		cache:      make(map[string]*lruEntry, maxEntries),
		evictList:  newLRUEvictList(maxEntries),
	}, nil
}

// Get implements OperationCache.
func (c *LRUOperationCache) Get(key string) (operation *executor.PreparedOperation, ok bool) {
	c.m.Lock()
	defer c.m.Unlock()

	if entry, hit := c.cache[key]; hit {
		c.evictList.MoveToFront(entry)
		return entry.operation, true
	}
	return nil, false
}

// Add implements OperationCache.
func (c *LRUOperationCache) Add(key string, operation *executor.PreparedOperation) {
	c.m.Lock()
	defer c.m.Unlock()

	if e, ok := c.cache[key]; ok {
		c.evictList.MoveToFront(e)
		e.operation = operation
		return
	}

	if c.evictList.Len() >= c.maxEntries {
		c.removeOldest()
	}
	c.cache[key] = c.evictList.PushFront(key, operation)
}

// Len returns the number of cached operations.
func (c *LRUOperationCache) Len() int {
	c.m.Lock()
	defer c.m.Unlock()
	return int(c.evictList.Len())
}

// removeOldest removes the oldest entry from the cache. c.m must be held.
func (c *LRUOperationCache) removeOldest() {
	if e := c.evictList.Back(); e != nil {
		delete(c.cache, e.key)
		c.evictList.Remove(e)
	}
}

// NopOperationCache does nothing.
type NopOperationCache struct{}

var _ OperationCache = NopOperationCache{}

// Get implements OperationCache.
func (NopOperationCache) Get(key string) (operation *executor.PreparedOperation, ok bool) {
	return
}

// Add implements OperationCache.
func (NopOperationCache) Add(key string, operation *executor.PreparedOperation) {}
