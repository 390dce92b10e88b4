package debugui

import (
	"cmp"
	"fmt"
	"slices"
	"strings"

	"github.com/AllenDang/cimgui-go/imgui"

	"github.com/plus3/boxpush/ecs"
)

// Archetype viewer sort columns.
const (
	SortByID = iota
	SortByComponents
	SortByComponentCount
	SortByEntityCount
)

type ArchetypeInfo struct {
	ID             uint32
	ComponentTypes []string
	EntityCount    int
}

// ArchetypeViewer lists every archetype of a storage in a sortable table.
type ArchetypeViewer struct {
	archetypes     []ArchetypeInfo
	sortColumn     int
	sortAscending  bool
	selectedArchId *uint32
}

func NewArchetypeViewer() *ArchetypeViewer {
	return &ArchetypeViewer{
		sortColumn:    SortByEntityCount,
		sortAscending: false,
	}
}

// Selected returns the archetype last clicked, if any.
func (av *ArchetypeViewer) Selected() (uint32, bool) {
	if av.selectedArchId == nil {
		return 0, false
	}
	return *av.selectedArchId, true
}

// Refresh rebuilds the table rows from storage stats and applies the current sort.
func (av *ArchetypeViewer) Refresh(stats ecs.StorageStats) []ArchetypeInfo {
	av.archetypes = av.archetypes[:0]
	for _, arch := range stats.ArchetypeBreakdown {
		av.archetypes = append(av.archetypes, ArchetypeInfo{
			ID:             arch.ID,
			ComponentTypes: arch.ComponentTypes,
			EntityCount:    arch.EntityCount,
		})
	}
	av.sortArchetypes()
	return av.archetypes
}

// SetSort changes the sort column and direction.
func (av *ArchetypeViewer) SetSort(column int, ascending bool) {
	av.sortColumn = column
	av.sortAscending = ascending
	av.sortArchetypes()
}

func (av *ArchetypeViewer) Render(storage *ecs.Storage) {
	if !imgui.BeginV("Archetype Viewer", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}

	av.Refresh(storage.CollectStats())

	maxEntityCount := 0
	for _, arch := range av.archetypes {
		maxEntityCount = max(maxEntityCount, arch.EntityCount)
	}

	const tableFlags = imgui.TableFlagsBorders | imgui.TableFlagsRowBg | imgui.TableFlagsSortable | imgui.TableFlagsScrollY
	if imgui.BeginTableV("ArchetypeTable", 4, tableFlags, imgui.NewVec2(0, 0), 0) {
		imgui.TableSetupColumn("Archetype ID")
		imgui.TableSetupColumn("Components")
		imgui.TableSetupColumn("Comp Count")
		imgui.TableSetupColumn("Entity Count")
		imgui.TableHeadersRow()

		sortSpecs := imgui.TableGetSortSpecs()
		if sortSpecs.SpecsDirty() && sortSpecs.SpecsCount() > 0 {
			spec := sortSpecs.Specs()
			av.SetSort(int(spec.ColumnIndex()), spec.SortDirection() == imgui.SortDirectionAscending)
			sortSpecs.SetSpecsDirty(false)
		}

		for _, arch := range av.archetypes {
			imgui.TableNextRow()

			imgui.TableNextColumn()
			isSelected := av.selectedArchId != nil && *av.selectedArchId == arch.ID
			if imgui.SelectableBoolV(fmt.Sprintf("0x%X", arch.ID), isSelected, imgui.SelectableFlagsSpanAllColumns, imgui.NewVec2(0, 0)) {
				id := arch.ID
				av.selectedArchId = &id
			}

			imgui.TableNextColumn()
			imgui.Text(strings.Join(arch.ComponentTypes, ", "))

			imgui.TableNextColumn()
			imgui.Text(fmt.Sprintf("%d", len(arch.ComponentTypes)))

			imgui.TableNextColumn()
			imgui.Text(fmt.Sprintf("%d", arch.EntityCount))

			if maxEntityCount > 0 {
				barWidth := float32(arch.EntityCount) / float32(maxEntityCount) * 80.0
				imgui.SameLine()
				drawList := imgui.WindowDrawList()
				pos := imgui.CursorScreenPos()
				color := imgui.ColorU32Vec4(imgui.NewVec4(0.2, 0.6, 0.8, 0.6))
				drawList.AddRectFilled(pos, imgui.NewVec2(pos.X+barWidth, pos.Y+10), color)
			}
		}

		imgui.EndTable()
	}

	imgui.End()
}

func (av *ArchetypeViewer) sortArchetypes() {
	slices.SortStableFunc(av.archetypes, func(a, b ArchetypeInfo) int {
		var c int
		switch av.sortColumn {
		case SortByID:
			c = cmp.Compare(a.ID, b.ID)
		case SortByComponents:
			c = strings.Compare(strings.Join(a.ComponentTypes, ","), strings.Join(b.ComponentTypes, ","))
		case SortByComponentCount:
			c = cmp.Compare(len(a.ComponentTypes), len(b.ComponentTypes))
		default:
			c = cmp.Compare(a.EntityCount, b.EntityCount)
		}
		if c == 0 {
			c = cmp.Compare(a.ID, b.ID)
		} else if !av.sortAscending {
			c = -c
		}
		return c
	})
}

