package native

import "sync"

// table maps uint32 handle IDs to live engine objects. IDs from removed
// entries are recycled through a free list; ID 0 is never issued.
type table[T any] struct {
	mu       sync.RWMutex
	entries  []tableEntry[T]
	freeList []uint32
}

type tableEntry[T any] struct {
	value T
	valid bool
}

func newTable[T any]() *table[T] {
	return &table[T]{
		entries:  make([]tableEntry[T], 0, 64),
		freeList: make([]uint32, 0, 16),
	}
}

// insert stores a value and returns its handle ID.
func (t *table[T]) insert(v T) uint32 {
	t.mu.Lock()
	defer t.mu.Unlock()

	e := tableEntry[T]{value: v, valid: true}

	if len(t.freeList) > 0 {
		id := t.freeList[len(t.freeList)-1]
		t.freeList = t.freeList[:len(t.freeList)-1]
		t.entries[id-1] = e
		return id
	}

	t.entries = append(t.entries, e)
	return uint32(len(t.entries))
}

// get retrieves a value by handle ID.
func (t *table[T]) get(id uint32) (T, bool) {
	var zero T
	if id == 0 {
		return zero, false
	}

	t.mu.RLock()
	defer t.mu.RUnlock()

	idx := id - 1
	if int(idx) >= len(t.entries) {
		return zero, false
	}

	e := t.entries[idx]
	if !e.valid {
		return zero, false
	}
	return e.value, true
}

// remove drops an entry and returns (value, true) if it was live.
func (t *table[T]) remove(id uint32) (T, bool) {
	var zero T
	if id == 0 {
		return zero, false
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	idx := id - 1
	if int(idx) >= len(t.entries) {
		return zero, false
	}

	e := &t.entries[idx]
	if !e.valid {
		return zero, false
	}

	value := e.value
	e.valid = false
	e.value = zero
	t.freeList = append(t.freeList, id)

	return value, true
}

// size returns the number of live entries.
func (t *table[T]) size() int {
	t.mu.RLock()
	defer t.mu.RUnlock()

	count := 0
	for _, e := range t.entries {
		if e.valid {
			count++
		}
	}
	return count
}
