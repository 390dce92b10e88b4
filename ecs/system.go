package ecs

// System represents a behavior that operates on entities with specific components.
// Systems are structs; exported Query and Singleton fields are bound to the
// storage when the system is registered with a Scheduler, and any other fields
// persist between ticks.
type System interface {
	Execute(frame *UpdateFrame)
}

// storageBinder is implemented by *Query[T] and *Singleton[T].
type storageBinder interface {
	Init(storage *Storage)
}

// queryExecutor is implemented by *Query[T].
type queryExecutor interface {
	Execute()
}
