// Package projection builds client-facing views of the commentary set.
// It only reads delivery collections; it never mutates match state or
// emits events.
package projection

import (
	"sort"
	"time"

	"github.com/samber/lo"

	"scorecast/domain"
)

// SortedView returns the commentary in display order: most recent ball
// first, corrections (same ball, later RecordedAt) before the entry they
// correct. The input slice is left untouched.
func SortedView(commentary []domain.Delivery) []domain.Delivery {
	view := make([]domain.Delivery, len(commentary))
	copy(view, commentary)
	sort.SliceStable(view, func(i, j int) bool {
		return domain.CompareForDisplay(view[i], view[j]) < 0
	})
	return view
}

// Since returns the deliveries recorded strictly after lastSeen, in
// submission order. This is the incremental sync view: a client holding a
// RecordedAt cursor appends these instead of re-rendering the full feed.
func Since(commentary []domain.Delivery, lastSeen time.Time) []domain.Delivery {
	return lo.Filter(commentary, func(d domain.Delivery, _ int) bool {
		return d.RecordedAt.After(lastSeen)
	})
}
