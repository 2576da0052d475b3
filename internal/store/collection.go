package store

import (
	mapset "github.com/deckarep/golang-set/v2"

	"github.com/guardianhealth/medmaintain/internal/model"
)

// Record is any syncable entity held by the store.
type Record interface {
	RecordID() string
	Marker() model.SyncMarker
	SetMarker(model.SyncMarker)
}

// collection holds one kind of record in insertion order (newest first).
// All access goes through the Store's lock.
type collection[T Record] struct {
	items []T
}

func (c *collection[T]) prepend(item T) {
	c.items = append([]T{item}, c.items...)
}

func (c *collection[T]) replace(items []T) {
	c.items = items
}

func (c *collection[T]) find(id string) (T, bool) {
	for _, item := range c.items {
		if item.RecordID() == id {
			return item, true
		}
	}
	var zero T
	return zero, false
}

func (c *collection[T]) pendingIDs() mapset.Set[string] {
	ids := mapset.NewSet[string]()
	for _, item := range c.items {
		if item.Marker() == model.MarkerPending {
			ids.Add(item.RecordID())
		}
	}
	return ids
}

func (c *collection[T]) pendingCount() int {
	n := 0
	for _, item := range c.items {
		if item.Marker() == model.MarkerPending {
			n++
		}
	}
	return n
}

// pending returns records from ids that are still Pending, preserving
// insertion order.
func (c *collection[T]) pending(ids mapset.Set[string]) []T {
	out := make([]T, 0, ids.Cardinality())
	for _, item := range c.items {
		if ids.Contains(item.RecordID()) && item.Marker() == model.MarkerPending {
			out = append(out, item)
		}
	}
	return out
}

// transition moves every record in ids from Pending to the target marker.
// Records in any other state are left untouched, which makes repeated
// transitions idempotent.
func (c *collection[T]) transition(ids mapset.Set[string], to model.SyncMarker) int {
	n := 0
	for _, item := range c.items {
		if ids.Contains(item.RecordID()) && item.Marker() == model.MarkerPending {
			item.SetMarker(to)
			n++
		}
	}
	return n
}
