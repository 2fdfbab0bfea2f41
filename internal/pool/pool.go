// Package pool provides object pooling for go-argspec parsing.
// The engine collects option value runs into pooled scratch slices and
// copies them out before storing, keeping per-occurrence allocations low
// on hot parse paths.
package pool

import "sync"

// Pool provides a generic, type-safe object pool.
type Pool[T any] struct {
	pool  sync.Pool
	reset func(*T) // optional reset function called before reuse
}

// NewPool creates a new generic pool with the given factory function.
func NewPool[T any](factory func() *T) *Pool[T] {
	return &Pool[T]{
		pool: sync.Pool{
			New: func() any {
				return factory()
			},
		},
	}
}

// NewPoolWithReset creates a pool with a reset function called before reuse.
func NewPoolWithReset[T any](factory func() *T, reset func(*T)) *Pool[T] {
	p := NewPool(factory)
	p.reset = reset
	return p
}

// Get retrieves an object from the pool or creates a new one.
func (p *Pool[T]) Get() *T {
	obj := p.pool.Get().(*T)
	if p.reset != nil {
		p.reset(obj)
	}
	return obj
}

// Put returns an object to the pool for reuse.
func (p *Pool[T]) Put(obj *T) {
	if obj == nil {
		return
	}
	p.pool.Put(obj)
}

// StringSlicePool provides pooling for string slices.
type StringSlicePool struct {
	*Pool[[]string]
}

// NewStringSlicePool creates a new string slice pool.
func NewStringSlicePool(defaultCap int) *StringSlicePool {
	return &StringSlicePool{
		Pool: NewPoolWithReset(
			func() *[]string {
				slice := make([]string, 0, defaultCap)
				return &slice
			},
			func(slice *[]string) {
				*slice = (*slice)[:0] // reset length, keep capacity
			},
		),
	}
}

// Global pool instances for parsing

var globalStringSlicePool = NewStringSlicePool(16)

// GetStringSlice retrieves a string slice for collecting value runs.
func GetStringSlice() *[]string {
	return globalStringSlicePool.Get()
}

// PutStringSlice returns a string slice to the global pool. The caller
// must not retain the slice (or any alias of it) after the call.
func PutStringSlice(slice *[]string) {
	globalStringSlicePool.Put(slice)
}
