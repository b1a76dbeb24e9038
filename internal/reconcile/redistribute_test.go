package reconcile

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"baselinegen/internal/baseline"
	"baselinegen/internal/config"
)

func testReconcileConfig() config.ReconcileConfig {
	return config.ReconcileConfig{
		PlannedRowCount: 22,
		NamedRegions:    []string{"SAO_PAULO", "RIO_DE_JANEIRO"},
		AggregateOrigin: "OTHER_REGIONS",
		NationalOrigin:  "NATIONAL",
	}
}

func longRow(big, logistic, shift, turno string, date time.Time, orders float64) baseline.LongRow {
	return baseline.LongRow{
		Segment: baseline.Segment{
			Modal:          "EXPRESS",
			BigRegion:      big,
			LogisticRegion: logistic,
			Shift:          shift,
			TurnoG:         turno,
		},
		Date:   date,
		Orders: orders,
	}
}

func TestRedistributeProportionalShares(t *testing.T) {
	date := time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)
	long := []baseline.LongRow{
		longRow("SAO_PAULO", "SP_CAPITAL", "DAY", "T1", date, 60),
		longRow("SAO_PAULO", "SP_INTERIOR", "NIGHT", "T2", date, 40),
		longRow("MINAS", "MG_BH", "DAY", "T1", date, 50),
	}
	planned := []PlannedRow{
		{Origin: "SAO_PAULO", Modal: "EXPRESS", Date: date, Planned: 200},
		{Origin: "NATIONAL", Modal: "EXPRESS", Date: date, Planned: 300},
		{Origin: "OTHER_REGIONS", Modal: "EXPRESS", Date: date, Planned: 100},
	}

	rows := Redistribute(long, planned, DimensionShift, testReconcileConfig())

	got := map[string]map[string]float64{}
	for _, r := range rows {
		assert.Equal(t, DimensionShift, r.Dimension)
		assert.Equal(t, "EXPRESS", r.BusinessModel)
		if got[r.Region] == nil {
			got[r.Region] = map[string]float64{}
		}
		got[r.Region][r.LogisticRegion] += r.Orders
	}

	// SAO_PAULO block: 60/100 and 40/100 of 200.
	assert.InDelta(t, 120, got["SAO_PAULO"]["SP_CAPITAL"], 1e-9)
	assert.InDelta(t, 80, got["SAO_PAULO"]["SP_INTERIOR"], 1e-9)
	// National block spans all regions: shares of 300 over a 150 total.
	assert.InDelta(t, 120, got["NATIONAL"]["SP_CAPITAL"], 1e-9)
	assert.InDelta(t, 80, got["NATIONAL"]["SP_INTERIOR"], 1e-9)
	assert.InDelta(t, 100, got["NATIONAL"]["MG_BH"], 1e-9)
	// Aggregate block excludes the named regions.
	assert.InDelta(t, 100, got["OTHER_REGIONS"]["MG_BH"], 1e-9)
	assert.NotContains(t, got["OTHER_REGIONS"], "SP_CAPITAL")
	assert.NotContains(t, got["OTHER_REGIONS"], "SP_INTERIOR")
}

func TestRedistributeDropsGroupsWithoutPlanned(t *testing.T) {
	date := time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)
	uncovered := time.Date(2024, 2, 2, 0, 0, 0, 0, time.UTC)
	long := []baseline.LongRow{
		longRow("SAO_PAULO", "SP_CAPITAL", "DAY", "T1", date, 60),
		longRow("SAO_PAULO", "SP_CAPITAL", "DAY", "T1", uncovered, 60),
	}
	planned := []PlannedRow{
		{Origin: "SAO_PAULO", Modal: "EXPRESS", Date: date, Planned: 90},
	}

	rows := Redistribute(long, planned, DimensionShift, testReconcileConfig())
	require.Len(t, rows, 1)
	assert.Equal(t, date, rows[0].Date)
	assert.InDelta(t, 90, rows[0].Orders, 1e-9)
}

func TestRedistributeZeroQuantityScope(t *testing.T) {
	date := time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)
	long := []baseline.LongRow{
		longRow("SAO_PAULO", "SP_CAPITAL", "DAY", "T1", date, 0),
	}
	planned := []PlannedRow{
		{Origin: "SAO_PAULO", Modal: "EXPRESS", Date: date, Planned: 90},
	}

	rows := Redistribute(long, planned, DimensionShift, testReconcileConfig())
	assert.Empty(t, rows)
}

func TestRedistributeOutputSorted(t *testing.T) {
	d1 := time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)
	d2 := time.Date(2024, 2, 2, 0, 0, 0, 0, time.UTC)
	long := []baseline.LongRow{
		longRow("SAO_PAULO", "SP_INTERIOR", "DAY", "T1", d2, 10),
		longRow("SAO_PAULO", "SP_CAPITAL", "DAY", "T1", d1, 10),
	}
	planned := []PlannedRow{
		{Origin: "SAO_PAULO", Modal: "EXPRESS", Date: d1, Planned: 50},
		{Origin: "SAO_PAULO", Modal: "EXPRESS", Date: d2, Planned: 50},
		{Origin: "NATIONAL", Modal: "EXPRESS", Date: d1, Planned: 50},
	}

	rows := Redistribute(long, planned, DimensionShift, testReconcileConfig())
	require.Len(t, rows, 3)
	assert.Equal(t, d1, rows[0].Date)
	assert.Equal(t, d1, rows[1].Date)
	assert.Equal(t, d2, rows[2].Date)
	// Same date: region order breaks the tie.
	assert.Equal(t, "NATIONAL", rows[0].Region)
	assert.Equal(t, "SAO_PAULO", rows[1].Region)
}

func TestCrossCheckAgreement(t *testing.T) {
	date := time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)
	byShift := []Row{
		{Date: date, LogisticRegion: "SP_CAPITAL", Dimension: DimensionShift, Orders: 70},
		{Date: date, LogisticRegion: "SP_CAPITAL", Dimension: DimensionShift, Orders: 50},
	}
	byTurnoG := []Row{
		{Date: date, LogisticRegion: "SP_CAPITAL", Dimension: DimensionTurnoG, Orders: 60},
		{Date: date, LogisticRegion: "SP_CAPITAL", Dimension: DimensionTurnoG, Orders: 60},
	}
	assert.NoError(t, CrossCheck(byShift, byTurnoG))
}

func TestCrossCheckDivergence(t *testing.T) {
	date := time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)
	byShift := []Row{
		{Date: date, LogisticRegion: "SP_CAPITAL", Dimension: DimensionShift, Orders: 120},
	}
	byTurnoG := []Row{
		{Date: date, LogisticRegion: "SP_CAPITAL", Dimension: DimensionTurnoG, Orders: 119},
	}

	err := CrossCheck(byShift, byTurnoG)
	require.Error(t, err)
	var inconsistent *ErrInconsistent
	require.ErrorAs(t, err, &inconsistent)
	assert.Equal(t, 1, inconsistent.Mismatches)
	assert.InDelta(t, 1.0, inconsistent.TotalDiff, 1e-9)
}

func TestCrossCheckOffsettingDifferencesPass(t *testing.T) {
	date := time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)
	byShift := []Row{
		{Date: date, LogisticRegion: "SP_CAPITAL", Dimension: DimensionShift, Orders: 100.5},
		{Date: date, LogisticRegion: "SP_INTERIOR", Dimension: DimensionShift, Orders: 99.5},
	}
	byTurnoG := []Row{
		{Date: date, LogisticRegion: "SP_CAPITAL", Dimension: DimensionTurnoG, Orders: 100},
		{Date: date, LogisticRegion: "SP_INTERIOR", Dimension: DimensionTurnoG, Orders: 100},
	}
	// Per-key rounded differences of +0.5 and -0.5 sum to zero.
	assert.NoError(t, CrossCheck(byShift, byTurnoG))
}

func TestCrossCheckIgnoresSubMicroNoise(t *testing.T) {
	date := time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)
	byShift := []Row{
		{Date: date, LogisticRegion: "SP_CAPITAL", Dimension: DimensionShift, Orders: 100 + 1e-9},
	}
	byTurnoG := []Row{
		{Date: date, LogisticRegion: "SP_CAPITAL", Dimension: DimensionTurnoG, Orders: 100},
	}
	assert.NoError(t, CrossCheck(byShift, byTurnoG))
}

func TestReconcileMergesBothDimensions(t *testing.T) {
	date := time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)
	long := []baseline.LongRow{
		longRow("SAO_PAULO", "SP_CAPITAL", "DAY", "T1", date, 60),
		longRow("SAO_PAULO", "SP_CAPITAL", "NIGHT", "T2", date, 40),
	}
	planned := []PlannedRow{
		{Origin: "SAO_PAULO", Modal: "EXPRESS", Date: date, Planned: 200},
	}

	rows, err := Reconcile(long, planned, testReconcileConfig())
	require.NoError(t, err)

	sums := map[Dimension]float64{}
	for _, r := range rows {
		sums[r.Dimension] += r.Orders
	}
	assert.InDelta(t, 200, sums[DimensionShift], 1e-9)
	assert.InDelta(t, 200, sums[DimensionTurnoG], 1e-9)
}
