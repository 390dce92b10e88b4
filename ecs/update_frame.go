package ecs

import "time"

// UpdateFrame carries per-tick data handed to every system.
type UpdateFrame struct {
	// DeltaTime is the time since the previous tick, in seconds.
	DeltaTime float64
	Storage   *Storage
}

func newUpdateFrame(dt float64, storage *Storage) *UpdateFrame {
	return &UpdateFrame{
		DeltaTime: dt,
		Storage:   storage,
	}
}

// Delta returns DeltaTime as a time.Duration.
func (f *UpdateFrame) Delta() time.Duration {
	return time.Duration(f.DeltaTime * float64(time.Second))
}
