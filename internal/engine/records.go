// Package engine provides the correction record side table.
package engine

import (
	"time"

	"github.com/readwell/readwell/internal/colour"
	"github.com/readwell/readwell/internal/host"
)

// CorrectionRecord is created once per element on its first successful
// correction and never mutated afterwards; only a whole-system Reset
// removes records.
type CorrectionRecord struct {
	Element   host.ElementID `json:"element"`
	Original  colour.RGB     `json:"original"`
	Corrected colour.RGB     `json:"corrected"`
	Contrast  float64        `json:"contrast"`
	Timestamp time.Time      `json:"timestamp"`
}

// Records is the processed-element side table. The caller owns it and
// passes it into every pass over the same document, which is what makes
// the at-most-once guarantee hold across incremental passes. Records is
// not safe for concurrent use; the engine never shares it between
// goroutines.
type Records struct {
	byElement map[host.ElementID]int
	order     []CorrectionRecord
}

// NewRecords creates an empty side table.
func NewRecords() *Records {
	return &Records{byElement: make(map[host.ElementID]int)}
}

// Processed reports whether an element has already been corrected.
func (r *Records) Processed(el host.ElementID) bool {
	_, ok := r.byElement[el]
	return ok
}

// Add stores the record for a freshly corrected element. The element must
// not have a record yet.
func (r *Records) Add(rec CorrectionRecord) {
	r.byElement[rec.Element] = len(r.order)
	r.order = append(r.order, rec)
}

// Get returns the record for an element, if any.
func (r *Records) Get(el host.ElementID) (CorrectionRecord, bool) {
	i, ok := r.byElement[el]
	if !ok {
		return CorrectionRecord{}, false
	}
	return r.order[i], true
}

// All returns the records in correction order. The slice is shared; treat
// it as read-only.
func (r *Records) All() []CorrectionRecord {
	return r.order
}

// Len returns the number of corrected elements.
func (r *Records) Len() int {
	return len(r.order)
}

// clear empties the table after a Reset.
func (r *Records) clear() {
	r.byElement = make(map[host.ElementID]int)
	r.order = r.order[:0]
}
