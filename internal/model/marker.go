package model

// SyncMarker tags a record with its cloud acknowledgement state.
// A freshly created or locally mutated record is always Pending.
type SyncMarker string

const (
	MarkerSynced  SyncMarker = "synced"
	MarkerPending SyncMarker = "pending"
	MarkerError   SyncMarker = "error"
)

func (m SyncMarker) Valid() bool {
	switch m {
	case MarkerSynced, MarkerPending, MarkerError:
		return true
	}
	return false
}
