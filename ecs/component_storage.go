package ecs

import (
	"iter"
	"reflect"
)

// componentColumn is a type-erased, append-only column of component values.
// Slots are never reused, so a slot index stays valid for the lifetime of the storage.
type componentColumn interface {
	Append(item any) int
	Get(index int) any
	Len() int
	Iter() iter.Seq[int]
}

// ComponentRegistry manages component type registration for an ECS instance.
// Each Storage instance has its own ComponentRegistry, allowing multiple
// independent worlds to coexist without interference.
type ComponentRegistry struct {
	factories map[reflect.Type]func() componentColumn
}

// NewComponentRegistry creates a new component registry.
func NewComponentRegistry() *ComponentRegistry {
	return &ComponentRegistry{
		factories: make(map[reflect.Type]func() componentColumn),
	}
}

// RegisterComponent registers a component type with the given registry.
// This must be called for each component type before it can be spawned.
func RegisterComponent[T any](r *ComponentRegistry) {
	t := reflect.TypeFor[T]()
	r.factories[t] = func() componentColumn {
		return &blockColumn[T]{}
	}
}

// Registered reports whether t has been registered.
func (r *ComponentRegistry) Registered(t reflect.Type) bool {
	_, ok := r.factories[t]
	return ok
}

func (r *ComponentRegistry) getFactory(t reflect.Type) func() componentColumn {
	return r.factories[t]
}

const blockSize = 64

// blockColumn stores components of type T in fixed-size blocks so that
// pointers handed out by Get stay valid while the column grows.
type blockColumn[T any] struct {
	blocks []*[blockSize]T
	length int
}

func (c *blockColumn[T]) Append(item any) int {
	var value T
	switch v := item.(type) {
	case *T:
		value = *v
	case T:
		value = v
	default:
		panic("component of type " + reflect.TypeOf(item).String() + " appended to column of " + reflect.TypeFor[T]().String())
	}

	index := c.length
	blockIdx := index / blockSize
	if blockIdx >= len(c.blocks) {
		c.blocks = append(c.blocks, new([blockSize]T))
	}
	c.blocks[blockIdx][index%blockSize] = value
	c.length++
	return index
}

// Get returns a pointer to the component at index, or nil when out of range.
func (c *blockColumn[T]) Get(index int) any {
	if index < 0 || index >= c.length {
		return nil
	}
	return &c.blocks[index/blockSize][index%blockSize]
}

func (c *blockColumn[T]) Len() int {
	return c.length
}

func (c *blockColumn[T]) Iter() iter.Seq[int] {
	return func(yield func(int) bool) {
		for i := 0; i < c.length; i++ {
			if !yield(i) {
				return
			}
		}
	}
}
