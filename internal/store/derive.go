package store

import (
	mapset "github.com/deckarep/golang-set/v2"
)

// PendingCount is the number of records across all four collections whose
// marker is Pending. Recomputed from current state on every call; this is
// the single source of truth for "is there anything to sync".
func (s *Store) PendingCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.equipments.pendingCount() +
		s.occurrences.pendingCount() +
		s.alerts.pendingCount() +
		s.tasks.pendingCount()
}

// PendingByKind returns the Pending record ids per collection.
func (s *Store) PendingByKind() map[Kind]mapset.Set[string] {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return map[Kind]mapset.Set[string]{
		KindEquipments:  s.equipments.pendingIDs(),
		KindOccurrences: s.occurrences.pendingIDs(),
		KindAlerts:      s.alerts.pendingIDs(),
		KindTasks:       s.tasks.pendingIDs(),
	}
}

// PendingRecords returns the records of the given kind that are in ids and
// still Pending, in store insertion order. The returned values are copies.
func (s *Store) PendingRecords(kind Kind, ids mapset.Set[string]) []any {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []any
	switch kind {
	case KindEquipments:
		for _, eq := range s.equipments.pending(ids) {
			out = append(out, cloneEquipment(eq))
		}
	case KindOccurrences:
		for _, occ := range s.occurrences.pending(ids) {
			out = append(out, cloneOccurrence(occ))
		}
	case KindAlerts:
		for _, alert := range s.alerts.pending(ids) {
			out = append(out, cloneAlert(alert))
		}
	case KindTasks:
		for _, task := range s.tasks.pending(ids) {
			out = append(out, cloneTask(task))
		}
	}
	return out
}
