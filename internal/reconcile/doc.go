// Package reconcile ingests the externally supplied top-down planned
// forecast, redistributes it down to region/date/modal granularity via
// two independent share-based passes over the long-form baseline, and
// cross-validates their sums before merging. A sum mismatch between the
// shift and turno_g passes is a fatal inconsistency: no merged output
// is produced.
package reconcile
