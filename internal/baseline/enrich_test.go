package baseline

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"baselinegen/internal/contract"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func order(date time.Time, qty int) contract.Order {
	return contract.Order{
		DeliveryDate:   date,
		Modal:          "EXPRESS",
		BigRegion:      "SAO_PAULO",
		LogisticRegion: "SP_CENTRO",
		Shift:          "MORNING",
		TurnoG:         "T1",
		Quantity:       qty,
	}
}

// dailyHistory builds one row per day for a single segment starting at
// start, with quantities taken from qtys in order.
func dailyHistory(start time.Time, qtys []int) []contract.Order {
	orders := make([]contract.Order, len(qtys))
	for i, q := range qtys {
		orders[i] = order(start.AddDate(0, 0, i), q)
	}
	return orders
}

func TestFilterRange(t *testing.T) {
	orders := dailyHistory(day(2024, 1, 1), []int{1, 2, 3, 4, 5})
	filtered := FilterRange(orders, day(2024, 1, 2), day(2024, 1, 4))
	require.Len(t, filtered, 3)
	assert.Equal(t, 2, filtered[0].Quantity)
	assert.Equal(t, 4, filtered[2].Quantity)
}

func TestEnrichCalendarFeatures(t *testing.T) {
	// 2024-01-15 is a Monday in ISO week 3.
	rows := Enrich(dailyHistory(day(2024, 1, 15), []int{10, 11, 12, 13, 14, 15, 16, 20}))
	require.NotEmpty(t, rows)

	first := rows[0]
	assert.Equal(t, 2024, first.Year)
	assert.Equal(t, 0, first.Weekday)
	assert.Equal(t, 1, first.Month)
	assert.Equal(t, 3, first.ISOWeek)
	assert.Equal(t, 202403, first.YearWeek)
}

func TestEnrichPriorWeekLag(t *testing.T) {
	// Three full weeks of daily history for one segment; the third week
	// is the max year_week and gets dropped, so rows 7..13 remain with
	// a prior-week lag against rows 0..6.
	qtys := make([]int, 21)
	for i := range qtys {
		qtys[i] = 10 + i
	}
	rows := Enrich(dailyHistory(day(2024, 1, 1), qtys))
	require.Len(t, rows, 14)

	for n, r := range rows {
		if n < 7 {
			assert.False(t, r.HasPrior, "row %d", n)
			assert.Zero(t, r.PriorWeekQty, "row %d", n)
			assert.Zero(t, r.Growth, "row %d", n)
			continue
		}
		// Nth chronological row lags the (N-7)th row of the same group.
		assert.True(t, r.HasPrior, "row %d", n)
		assert.Equal(t, float64(rows[n-7].Quantity), r.PriorWeekQty, "row %d", n)
		assert.Equal(t, r.Weekday, rows[n-7].Weekday, "row %d", n)
	}
}

func TestEnrichGrowthRounding(t *testing.T) {
	// prior 30, current 31: growth = 1/30 - 1e-… = 0.0333 after 4dp.
	qtys := make([]int, 21)
	for i := range qtys {
		qtys[i] = 30
	}
	qtys[7] = 31
	rows := Enrich(dailyHistory(day(2024, 1, 1), qtys))
	require.Len(t, rows, 14)
	assert.InDelta(t, 0.0333, rows[7].Growth, 1e-9)
}

func TestEnrichDropsMaxWeek(t *testing.T) {
	rows := Enrich(dailyHistory(day(2024, 1, 1), []int{1, 2, 3, 4, 5, 6, 7, 8, 9}))
	// Days 8 and 9 fall in ISO week 2, the max week, and are dropped.
	require.Len(t, rows, 7)
	for _, r := range rows {
		assert.Equal(t, 202401, r.YearWeek)
	}
}

func TestEnrichDropsMaxWeekAtYearBoundary(t *testing.T) {
	// 2024-12-16..30: weeks 51 and 52 of 2024, then Monday 2024-12-30 in
	// ISO week 1 of 2025. The composite uses the calendar year, so that
	// Monday keys as 202401, week 52 is the maximum, and the drop removes
	// the in-progress week 52 while keeping the boundary Monday.
	qtys := make([]int, 15)
	for i := range qtys {
		qtys[i] = 10
	}
	rows := Enrich(dailyHistory(day(2024, 12, 16), qtys))

	require.Len(t, rows, 8)
	kept := make(map[int]int)
	for _, r := range rows {
		kept[r.YearWeek]++
		assert.NotEqual(t, 202452, r.YearWeek)
	}
	assert.Equal(t, 7, kept[202451])
	assert.Equal(t, 1, kept[202401])
	assert.Equal(t, day(2024, 12, 30), rows[len(rows)-1].DeliveryDate)
}

func TestEnrichZeroPriorLeavesGrowthZero(t *testing.T) {
	// A prior-week quantity of zero cannot produce a ratio; the growth
	// stays at its missing-value default.
	orders := dailyHistory(day(2024, 1, 1), []int{5, 5, 5, 5, 5, 5, 5, 8, 8, 8, 8, 8, 8, 8, 9})
	orders[0].Quantity = 0
	rows := Enrich(orders)
	require.Len(t, rows, 14)
	require.True(t, rows[7].HasPrior)
	assert.Zero(t, rows[7].PriorWeekQty)
	assert.Zero(t, rows[7].Growth)
}

func TestEnrichSegmentsDoNotCrossLag(t *testing.T) {
	segA := dailyHistory(day(2024, 1, 1), []int{10, 10, 10, 10, 10, 10, 10, 10, 10, 10, 10, 10, 10, 10, 10})
	segB := dailyHistory(day(2024, 1, 1), []int{90, 90, 90, 90, 90, 90, 90, 90, 90, 90, 90, 90, 90, 90, 90})
	for i := range segB {
		segB[i].LogisticRegion = "SP_LESTE"
	}
	rows := Enrich(append(segA, segB...))

	for _, r := range rows {
		if !r.HasPrior {
			continue
		}
		// The lag never reads across segment groups.
		assert.Equal(t, float64(r.Quantity), r.PriorWeekQty)
	}
}
