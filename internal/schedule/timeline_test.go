package schedule

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildTimelineGroupsAndSortsFloors(t *testing.T) {
	desks := []Desk{
		{ID: 1, FloorID: 20, FloorName: "Second", Name: "B-01"},
		{ID: 2, FloorID: 10, FloorName: "First", Name: "A-01"},
		{ID: 3, FloorID: 10, FloorName: "First", Name: "A-02"},
	}
	sections := BuildTimeline(desks, FullDay, 0)
	require.Len(t, sections, 2)
	assert.Equal(t, "First", sections[0].Name)
	assert.Equal(t, "Second", sections[1].Name)
	require.Len(t, sections[0].Desks, 2)
	require.Len(t, sections[1].Desks, 1)
}

func TestBuildTimelineCellStates(t *testing.T) {
	end := 12.0
	desks := []Desk{
		{ID: 1, FloorID: 1, FloorName: "G", Name: "D-1",
			Bookings: []Booking{{ID: 9, UserID: 5, Start: 9, End: &end}}},
		{ID: 2, FloorID: 1, FloorName: "G", Name: "D-2", Unavailable: true},
	}
	sections := BuildTimeline(desks, FullDay, 5)
	require.Len(t, sections, 1)
	rows := sections[0].Desks

	cells := rows[0].Cells
	require.Len(t, cells, 24)
	assert.Equal(t, CellAvailable, cells[8].State)
	assert.Equal(t, CellOccupied, cells[9].State)
	assert.Equal(t, CellOccupied, cells[11].State)
	assert.Equal(t, CellAvailable, cells[12].State)

	for _, cell := range rows[1].Cells {
		assert.Equal(t, CellLocked, cell.State)
	}
}

func TestBuildTimelineBlockGeometry(t *testing.T) {
	end := 12.0
	desks := []Desk{{
		ID: 1, FloorID: 1, FloorName: "G", Name: "D-1",
		Bookings: []Booking{{ID: 9, UserID: 5, Start: 9, End: &end}},
	}}
	sections := BuildTimeline(desks, FullDay, 5)
	blocks := sections[0].Desks[0].Blocks
	require.Len(t, blocks, 1)
	b := blocks[0]
	assert.True(t, b.Mine)
	assert.InDelta(t, 9.0/24, b.Left, 1e-9)
	assert.InDelta(t, 3.0/24, b.Width, 1e-9)

	// Same booking viewed by someone else is not theirs.
	sections = BuildTimeline(desks, FullDay, 6)
	assert.False(t, sections[0].Desks[0].Blocks[0].Mine)
}

func TestBuildTimelineWorkingWindowClamp(t *testing.T) {
	window := Window{From: 8, To: 20}
	desks := []Desk{{
		ID: 1, FloorID: 1, FloorName: "G", Name: "D-1",
		Bookings: []Booking{
			{ID: 1, UserID: 1, Start: 6, End: hoursPtr(9)},   // clipped at 8
			{ID: 2, UserID: 1, Start: 18},                    // open-ended, clipped at 20
			{ID: 3, UserID: 1, Start: 21, End: hoursPtr(22)}, // fully hidden
		},
	}}
	sections := BuildTimeline(desks, window, 1)
	row := sections[0].Desks[0]
	require.Len(t, row.Cells, 12)
	assert.Equal(t, 8, row.Cells[0].Hour)

	require.Len(t, row.Blocks, 2)
	first := row.Blocks[0]
	assert.InDelta(t, 8.0, first.Start, 1e-9)
	assert.InDelta(t, 0.0, first.Left, 1e-9)
	assert.InDelta(t, 1.0/12, first.Width, 1e-9)

	second := row.Blocks[1]
	assert.InDelta(t, 18.0, second.Start, 1e-9)
	assert.InDelta(t, 20.0, second.End, 1e-9)
	assert.InDelta(t, 10.0/12, second.Left, 1e-9)
	assert.InDelta(t, 2.0/12, second.Width, 1e-9)
}

func TestBuildTimelineSkipsCancelledBlocks(t *testing.T) {
	desks := []Desk{{
		ID: 1, FloorID: 1, FloorName: "G", Name: "D-1",
		Bookings: []Booking{{ID: 1, UserID: 1, Start: 9, End: hoursPtr(10), Cancelled: true}},
	}}
	sections := BuildTimeline(desks, FullDay, 1)
	row := sections[0].Desks[0]
	assert.Empty(t, row.Blocks)
	assert.Equal(t, CellAvailable, row.Cells[9].State)
}

func TestBuildTimelineInvalidWindowFallsBack(t *testing.T) {
	desks := []Desk{{ID: 1, FloorID: 1, FloorName: "G", Name: "D-1"}}
	sections := BuildTimeline(desks, Window{From: 20, To: 8}, 0)
	assert.Len(t, sections[0].Desks[0].Cells, 24)
}
