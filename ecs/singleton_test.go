package ecs_test

import (
	"testing"

	"github.com/plus3/boxpush/ecs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type Settings struct {
	Speed int
}

func TestSingletonSharedAcrossHandles(t *testing.T) {
	storage := ecs.NewStorage(ecs.NewComponentRegistry())

	a := ecs.NewSingleton[Settings](storage, Settings{Speed: 1})
	b := ecs.NewSingleton[Settings](storage, Settings{Speed: 99})

	assert.Equal(t, 1, b.Get().Speed, "initializer ignored when singleton exists")
	b.Get().Speed = 5
	assert.Equal(t, 5, a.Get().Speed)
}

func TestAddSingletonOverwrites(t *testing.T) {
	storage := ecs.NewStorage(ecs.NewComponentRegistry())

	handle := ecs.NewSingleton[Settings](storage, Settings{Speed: 1})
	ptr := handle.Get()

	storage.AddSingleton(Settings{Speed: 2})

	assert.Equal(t, 2, handle.Get().Speed)
	assert.Same(t, ptr, handle.Get(), "overwrite keeps the slot")
	assert.Equal(t, 1, storage.CollectStats().SingletonCount)
}

func TestReadSingleton(t *testing.T) {
	storage := ecs.NewStorage(ecs.NewComponentRegistry())

	var settings *Settings
	assert.False(t, storage.ReadSingleton(&settings))

	storage.AddSingleton(Settings{Speed: 3})
	require.True(t, storage.ReadSingleton(&settings))
	assert.Equal(t, 3, settings.Speed)

	assert.Panics(t, func() { storage.ReadSingleton(settings) })
}

func TestSingletonLateBinding(t *testing.T) {
	storage := ecs.NewStorage(ecs.NewComponentRegistry())

	var handle ecs.Singleton[Settings]
	handle.Init(storage)
	assert.False(t, handle.Exists())
	assert.Nil(t, handle.Get())

	storage.AddSingleton(Settings{Speed: 4})
	assert.True(t, handle.Exists())
	assert.Equal(t, 4, handle.Get().Speed)
}
