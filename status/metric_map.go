package status

import (
	"sort"
	"sync"
)

// MetricMap hands out stable pointers to metric slots by key
// Lookup takes the lock once; writers cache the pointer and update it lock-free
type MetricMap[T any] struct {
	mu    sync.RWMutex
	items map[string]*T
}

// NewMetricMap creates an empty map
func NewMetricMap[T any]() *MetricMap[T] {
	return &MetricMap[T]{items: make(map[string]*T)}
}

// Get returns the slot for key, allocating it on first use
func (m *MetricMap[T]) Get(key string) *T {
	m.mu.RLock()
	ptr, ok := m.items[key]
	m.mu.RUnlock()
	if ok {
		return ptr
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if ptr, ok = m.items[key]; ok {
		return ptr
	}
	ptr = new(T)
	m.items[key] = ptr
	return ptr
}

// Has reports whether key was ever requested
func (m *MetricMap[T]) Has(key string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, ok := m.items[key]
	return ok
}

// Range visits every slot in key order, fn runs outside the lock
func (m *MetricMap[T]) Range(fn func(key string, ptr *T)) {
	type slot struct {
		key string
		ptr *T
	}
	m.mu.RLock()
	slots := make([]slot, 0, len(m.items))
	for k, p := range m.items {
		slots = append(slots, slot{k, p})
	}
	m.mu.RUnlock()

	sort.Slice(slots, func(i, j int) bool { return slots[i].key < slots[j].key })
	for _, s := range slots {
		fn(s.key, s.ptr)
	}
}

// Count returns the number of slots
func (m *MetricMap[T]) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.items)
}
