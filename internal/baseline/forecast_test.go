package baseline

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildForecastExplodesWeekdays(t *testing.T) {
	// Horizon 2024-01-16..2024-01-31 holds the Mondays 22 and 29.
	calendar := ExpandCalendar(day(2024, 1, 15), false)

	rows := []Row{
		{Key: statKey("SP_CENTRO", 0), Orders: 40}, // Monday segment
	}
	m := BuildForecast(calendar, rows)

	require.Len(t, m.Dates, 16)
	require.Len(t, m.Rows, 1)

	byDate := map[string]int{}
	for i, d := range m.Dates {
		byDate[d.Format("2006-01-02")] = m.Rows[0].Cells[i]
	}
	assert.Equal(t, 40, byDate["2024-01-22"])
	assert.Equal(t, 40, byDate["2024-01-29"])
	// Non-Monday columns fill with 0.
	assert.Equal(t, 0, byDate["2024-01-23"])

	total := 0
	for _, v := range m.Rows[0].Cells {
		total += v
	}
	assert.Equal(t, 80, total)
}

func TestBuildForecastSortsByLogisticRegion(t *testing.T) {
	calendar := ExpandCalendar(day(2024, 1, 15), false)
	rows := []Row{
		{Key: statKey("SP_ZONA_SUL", 0), Orders: 1},
		{Key: statKey("SP_CENTRO", 0), Orders: 1},
		{Key: statKey("SP_LESTE", 0), Orders: 1},
	}
	m := BuildForecast(calendar, rows)
	require.Len(t, m.Rows, 3)
	assert.Equal(t, "SP_CENTRO", m.Rows[0].LogisticRegion)
	assert.Equal(t, "SP_LESTE", m.Rows[1].LogisticRegion)
	assert.Equal(t, "SP_ZONA_SUL", m.Rows[2].LogisticRegion)
}

func TestMeltPivotRoundTrip(t *testing.T) {
	calendar := ExpandCalendar(day(2024, 1, 15), false)
	rows := []Row{
		{Key: statKey("SP_CENTRO", 0), Orders: 12},
		{Key: statKey("SP_CENTRO", 3), Orders: 7},
		{Key: statKey("SP_LESTE", 5), Orders: 9},
	}
	original := BuildForecast(calendar, rows)

	rebuilt := Pivot(Melt(original))

	require.Equal(t, original.Dates, rebuilt.Dates)
	require.Len(t, rebuilt.Rows, len(original.Rows))
	for i := range original.Rows {
		assert.Equal(t, original.Rows[i].Segment, rebuilt.Rows[i].Segment)
		assert.Equal(t, original.Rows[i].Cells, rebuilt.Rows[i].Cells)
	}
}

func TestPivotSumsDuplicateContributions(t *testing.T) {
	seg := statKey("SP_CENTRO", 0).Segment
	long := []LongRow{
		{Segment: seg, Date: day(2024, 2, 1), Orders: 3},
		{Segment: seg, Date: day(2024, 2, 1), Orders: 4},
	}
	m := Pivot(long)
	require.Len(t, m.Rows, 1)
	require.Len(t, m.Dates, 1)
	assert.Equal(t, 7, m.Rows[0].Cells[0])
}
