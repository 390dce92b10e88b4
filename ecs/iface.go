package ecs

import "unsafe"

// iface mirrors the runtime layout of an interface value: a type word and a
// data word. Used to pull the rtype pointer out of a reflect.Type and the
// component pointer out of an `any` without going through reflect.
type iface struct {
	typ  unsafe.Pointer
	data unsafe.Pointer
}

// dataPointer returns the data word of v.
func dataPointer(v any) unsafe.Pointer {
	return (*iface)(unsafe.Pointer(&v)).data
}
