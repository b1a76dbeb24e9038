// Package baseline implements the order-volume baseline pipeline: it
// enriches validated order history with calendar features and
// week-over-week growth, computes grouped central-tendency statistics
// per operational segment, projects them onto a forecast calendar and
// reshapes the result to a segment×date matrix restricted to
// operationally active squares.
//
// Every stage is a pure function from whole in-memory tables to a new
// table; no stage mutates a table it did not produce, and no state
// survives a run.
//
//   - enrich.go: date-range filter, calendar features, 7-row segment lag
//   - tendency.go: grouped median/mean per aggregation key
//   - growth.go: growth clipping and the quantity/growth merge
//   - calendar.go: forecast date range expansion
//   - forecast.go: weekday join and the date pivot
//   - squares.go: trailing-activity filter
//   - reshape.go: melt/pivot between wide and long form
//   - adjust.go: optional trailing-mean override
package baseline
