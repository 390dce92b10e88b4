package ecs

import (
	"reflect"
	"slices"
	"sort"
	"unsafe"

	"github.com/kamstrup/intmap"
)

// Storage is the main ECS storage: archetype tables for entities plus one
// singleton slot per resource type.
type Storage struct {
	archetypes *intmap.Map[uint32, *Archetype]
	// ordered holds archetypes sorted by id so iteration is deterministic.
	ordered    []*Archetype
	registry   *ComponentRegistry
	singletons map[reflect.Type]*singletonEntry
}

type singletonEntry struct {
	value   reflect.Value
	dataPtr unsafe.Pointer
}

// NewStorage creates a new ECS storage with the given component registry
func NewStorage(registry *ComponentRegistry) *Storage {
	return &Storage{
		archetypes: intmap.New[uint32, *Archetype](16),
		registry:   registry,
		singletons: make(map[reflect.Type]*singletonEntry),
	}
}

// Registry returns the component registry the storage was created with
func (s *Storage) Registry() *ComponentRegistry {
	return s.registry
}

func (s *Storage) archetype(id uint32) *Archetype {
	a, _ := s.archetypes.Get(id)
	return a
}

// Archetypes returns every archetype in ascending id order.
func (s *Storage) Archetypes() []*Archetype {
	return s.ordered
}

// GetArchetype returns an archetype storage (if one exists)
func (s *Storage) GetArchetype(components ...any) *Archetype {
	types := extractComponentTypes(components)
	return s.archetype(hashTypesToUint32(types))
}

func (s *Storage) getOrCreateArchetype(types []reflect.Type) *Archetype {
	id := hashTypesToUint32(types)
	if a := s.archetype(id); a != nil {
		return a
	}

	a := NewArchetype(id, types, s.registry)
	s.archetypes.Put(id, a)
	pos, _ := slices.BinarySearchFunc(s.ordered, id, func(a *Archetype, id uint32) int {
		switch {
		case a.id < id:
			return -1
		case a.id > id:
			return 1
		}
		return 0
	})
	s.ordered = slices.Insert(s.ordered, pos, a)
	return a
}

// Spawn creates a new entity with the provided components
func (s *Storage) Spawn(components ...any) EntityId {
	if len(components) == 0 {
		panic("cannot spawn entity without components")
	}

	types := extractComponentTypes(components)
	for i := 1; i < len(types); i++ {
		if types[i] == types[i-1] {
			panic("duplicate component type " + types[i].String())
		}
	}

	archetype := s.getOrCreateArchetype(types)
	return NewEntityId(archetype.id, archetype.Spawn(components))
}

// GetComponent returns the component for the given entity ID and component type
func (s *Storage) GetComponent(id EntityId, compType reflect.Type) any {
	archetype := s.archetype(id.ArchetypeId())
	if archetype == nil {
		return nil
	}
	return archetype.GetComponent(id.Index(), compType)
}

// HasComponent checks if an entity has a specific component type
func (s *Storage) HasComponent(id EntityId, compType reflect.Type) bool {
	archetype := s.archetype(id.ArchetypeId())
	if archetype == nil || int(id.Index()) >= archetype.Len() {
		return false
	}
	return archetype.HasComponent(compType)
}

// Len returns the number of entities in the storage
func (s *Storage) Len() int {
	n := 0
	for _, a := range s.ordered {
		n += a.Len()
	}
	return n
}

// AddSingleton stores value as the singleton of its type. An existing
// singleton of the same type is overwritten in place, so pointers obtained
// earlier through Singleton.Get observe the new value.
func (s *Storage) AddSingleton(value any) {
	t := reflect.TypeOf(value)
	if t == nil {
		panic("cannot add nil singleton")
	}

	if entry, ok := s.singletons[t]; ok {
		entry.value.Elem().Set(reflect.ValueOf(value))
		return
	}

	ptr := reflect.New(t)
	ptr.Elem().Set(reflect.ValueOf(value))
	s.singletons[t] = &singletonEntry{
		value:   ptr,
		dataPtr: ptr.UnsafePointer(),
	}
}

func (s *Storage) getSingletonEntry(t reflect.Type) *singletonEntry {
	return s.singletons[t]
}

// ReadSingleton points *target at the stored singleton of type T.
// target must be a **T. Returns false if no singleton of that type exists.
func (s *Storage) ReadSingleton(target any) bool {
	v := reflect.ValueOf(target)
	if v.Kind() != reflect.Ptr || v.Elem().Kind() != reflect.Ptr {
		panic("ReadSingleton target must be a pointer to a pointer")
	}

	t := v.Elem().Type().Elem()
	entry := s.singletons[t]
	if entry == nil {
		return false
	}
	v.Elem().Set(entry.value)
	return true
}

func componentType(comp any) reflect.Type {
	t := reflect.TypeOf(comp)
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	return t
}

// extractComponentTypes extracts and sorts component types from a slice of components
func extractComponentTypes(components []any) []reflect.Type {
	types := make([]reflect.Type, 0, len(components))
	for _, comp := range components {
		compType := componentType(comp)

		// Components are value types: structs or named primitives.
		switch compType.Kind() {
		case reflect.Ptr, reflect.Map, reflect.Chan, reflect.Func:
			panic("components cannot be pointers, maps, channels, or functions")
		}

		types = append(types, compType)
	}
	sort.Sort(byTypeName(types))
	return types
}

// hashTypesToUint32 generates a FNV-1a hash for a sorted slice of types
func hashTypesToUint32(types []reflect.Type) uint32 {
	var h uint32 = 2166136261
	const prime uint32 = 16777619

	for _, t := range types {
		// The rtype pointer uniquely identifies the type within the process.
		ptr := uintptr((*iface)(unsafe.Pointer(&t)).data)
		val := uint32(ptr)
		if unsafe.Sizeof(ptr) == 8 {
			val ^= uint32(uint64(ptr) >> 32)
		}

		h ^= val
		h *= prime
	}

	return h
}

// ComponentReader is satisfied by Storage; it lets helpers read components
// without depending on the concrete storage.
type ComponentReader interface {
	GetComponent(EntityId, reflect.Type) any
}

// ReadComponent returns a pointer to the T component of entityId, or nil if
// the entity does not have one.
func ReadComponent[T any](reader ComponentReader, entityId EntityId) *T {
	comp, _ := reader.GetComponent(entityId, reflect.TypeFor[T]()).(*T)
	return comp
}
