package policy

import (
	"sync"
	"sync/atomic"
)

// Holder owns the process-wide policy snapshot.
//
// Readers call Current and always observe a complete snapshot. Writers go through
// Update, which serializes administrative changes and installs a freshly cloned
// snapshot, so a reader can never see a half-applied change.
type Holder struct {
	current atomic.Pointer[Snapshot]
	writeMu sync.Mutex
}

// NewHolder creates a holder seeded with a copy of initial
func NewHolder(initial Snapshot) *Holder {
	h := &Holder{}
	seed := initial.Clone()
	h.current.Store(&seed)
	return h
}

// Current returns the installed snapshot. Callers must treat it as read-only.
func (h *Holder) Current() Snapshot {
	return *h.current.Load()
}

// Update applies fn to a private copy of the current snapshot and installs the
// result once it validates. fn may return an error to abort the change (for
// example when persisting the new snapshot fails); the previous snapshot then
// stays installed.
func (h *Holder) Update(fn func(next Snapshot) (Snapshot, error)) (Snapshot, error) {
	h.writeMu.Lock()
	defer h.writeMu.Unlock()

	next, err := fn(h.current.Load().Clone())
	if err != nil {
		return h.Current(), err
	}
	if err := Validate(next); err != nil {
		return h.Current(), err
	}

	installed := next.Clone()
	h.current.Store(&installed)
	return installed, nil
}

// UpdatePointsFormula replaces the points formula with updater(previous)
func (h *Holder) UpdatePointsFormula(updater func(PointsFormula) PointsFormula) (Snapshot, error) {
	return h.Update(func(s Snapshot) (Snapshot, error) {
		s.PointsFormula = updater(s.PointsFormula)
		return s, nil
	})
}

// UpdateFrequencyRules replaces the frequency rules with updater(previous)
func (h *Holder) UpdateFrequencyRules(updater func(FrequencyRules) FrequencyRules) (Snapshot, error) {
	return h.Update(func(s Snapshot) (Snapshot, error) {
		s.FrequencyRules = updater(s.FrequencyRules)
		return s, nil
	})
}
