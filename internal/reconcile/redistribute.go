package reconcile

import (
	"fmt"
	"sort"
	"time"

	"baselinegen/internal/baseline"
	"baselinegen/internal/config"
)

// groupKey is the fine-grained redistribution group: one slice of the
// long baseline under one sub-dimension value.
type groupKey struct {
	Date           time.Time
	BigRegion      string
	LogisticRegion string
	Modal          string
	DimValue       string
}

// shareKey is the denominator scope of a share: all quantity under one
// modal on one date inside the origin's region scope.
type shareKey struct {
	Date  time.Time
	Modal string
}

// Redistribute allocates each origin's planned totals down to
// (date, region, modal, logistic region) granularity in proportion to
// each group's fraction of the baseline quantity under that modal and
// date, sliced by the given sub-dimension. Groups joining no planned
// value, and allocations that come out non-positive, are dropped.
func Redistribute(long []baseline.LongRow, planned []PlannedRow, dim Dimension, cfg config.ReconcileConfig) []Row {
	plannedIdx := make(map[string]map[shareKey]float64)
	for _, p := range planned {
		byKey, ok := plannedIdx[p.Origin]
		if !ok {
			byKey = make(map[shareKey]float64)
			plannedIdx[p.Origin] = byKey
		}
		byKey[shareKey{Date: p.Date, Modal: p.Modal}] = p.Planned
	}

	named := make(map[string]bool, len(cfg.NamedRegions))
	for _, r := range cfg.NamedRegions {
		named[r] = true
	}

	var out []Row
	for _, origin := range cfg.Origins() {
		scope := scopeRows(long, origin, cfg, named)

		groups := make(map[groupKey]float64)
		totals := make(map[shareKey]float64)
		for _, r := range scope {
			key := groupKey{
				Date:           r.Date,
				BigRegion:      r.BigRegion,
				LogisticRegion: r.LogisticRegion,
				Modal:          r.Modal,
				DimValue:       dimValue(r.Segment, dim),
			}
			groups[key] += r.Orders
			totals[shareKey{Date: r.Date, Modal: r.Modal}] += r.Orders
		}

		allocated := make(map[regionKeyModal]float64)
		for key, qty := range groups {
			total := totals[shareKey{Date: key.Date, Modal: key.Modal}]
			if total == 0 {
				continue
			}
			plannedVal, ok := plannedIdx[origin][shareKey{Date: key.Date, Modal: key.Modal}]
			if !ok {
				continue
			}
			final := qty / total * plannedVal
			if final <= 0 {
				continue
			}
			allocated[regionKeyModal{LogisticRegion: key.LogisticRegion, Date: key.Date, Modal: key.Modal}] += final
		}

		for key, orders := range allocated {
			out = append(out, Row{
				Date:           key.Date,
				Region:         origin,
				BusinessModel:  key.Modal,
				LogisticRegion: key.LogisticRegion,
				Dimension:      dim,
				Orders:         orders,
			})
		}
	}
	sortRows(out)
	return out
}

type regionKeyModal struct {
	LogisticRegion string
	Date           time.Time
	Modal          string
}

// scopeRows filters the long baseline to the origin's region scope: a
// named region keeps only its own rows, the national total keeps all,
// and the aggregate block excludes every named region.
func scopeRows(long []baseline.LongRow, origin string, cfg config.ReconcileConfig, named map[string]bool) []baseline.LongRow {
	switch origin {
	case cfg.NationalOrigin:
		return long
	case cfg.AggregateOrigin:
		scoped := make([]baseline.LongRow, 0, len(long))
		for _, r := range long {
			if !named[r.BigRegion] {
				scoped = append(scoped, r)
			}
		}
		return scoped
	default:
		scoped := make([]baseline.LongRow, 0, len(long))
		for _, r := range long {
			if r.BigRegion == origin {
				scoped = append(scoped, r)
			}
		}
		return scoped
	}
}

func dimValue(seg baseline.Segment, dim Dimension) string {
	if dim == DimensionTurnoG {
		return seg.TurnoG
	}
	return seg.Shift
}

func sortRows(rows []Row) {
	sort.Slice(rows, func(i, j int) bool {
		a, b := rows[i], rows[j]
		if !a.Date.Equal(b.Date) {
			return a.Date.Before(b.Date)
		}
		if a.Region != b.Region {
			return a.Region < b.Region
		}
		if a.LogisticRegion != b.LogisticRegion {
			return a.LogisticRegion < b.LogisticRegion
		}
		if a.BusinessModel != b.BusinessModel {
			return a.BusinessModel < b.BusinessModel
		}
		return a.Dimension < b.Dimension
	})
}

// String implements fmt.Stringer for error and log rendering.
func (r Row) String() string {
	return fmt.Sprintf("%s %s/%s %s [%s]: %.2f",
		r.Date.Format("2006-01-02"), r.Region, r.LogisticRegion, r.BusinessModel, r.Dimension, r.Orders)
}
