package debugui

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/plus3/boxpush/ecs"
)

func testStats() ecs.StorageStats {
	return ecs.StorageStats{
		ArchetypeBreakdown: []ecs.ArchetypeStats{
			{ID: 3, ComponentTypes: []string{"a"}, EntityCount: 10},
			{ID: 1, ComponentTypes: []string{"a", "b", "c"}, EntityCount: 2},
			{ID: 2, ComponentTypes: []string{"b", "c"}, EntityCount: 10},
		},
	}
}

func ids(rows []ArchetypeInfo) []uint32 {
	out := make([]uint32, len(rows))
	for i, r := range rows {
		out[i] = r.ID
	}
	return out
}

func TestArchetypeViewerSort(t *testing.T) {
	av := NewArchetypeViewer()

	assert.Equal(t, []uint32{2, 3, 1}, ids(av.Refresh(testStats())), "entity count descending, ties by id")

	av.SetSort(SortByID, true)
	assert.Equal(t, []uint32{1, 2, 3}, ids(av.Refresh(testStats())))

	av.SetSort(SortByComponentCount, false)
	assert.Equal(t, []uint32{1, 2, 3}, ids(av.Refresh(testStats())))

	av.SetSort(SortByComponents, true)
	assert.Equal(t, []uint32{3, 1, 2}, ids(av.Refresh(testStats())))

	_, ok := av.Selected()
	assert.False(t, ok)
}

func TestPerformanceStatsAverage(t *testing.T) {
	ps := NewPerformanceStats(4)
	assert.Zero(t, ps.AverageFrameTime())

	for range 4 {
		ps.Record(20 * time.Millisecond)
	}
	assert.InDelta(t, 20.0, ps.AverageFrameTime(), 0.001)

	ps.Record(60 * time.Millisecond)
	assert.InDelta(t, 30.0, ps.AverageFrameTime(), 0.001)
}
