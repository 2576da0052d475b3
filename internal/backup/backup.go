package backup

import (
	"errors"
	"fmt"
	"time"

	"github.com/goccy/go-json"

	"github.com/guardianhealth/medmaintain/internal/model"
	"github.com/guardianhealth/medmaintain/internal/store"
)

// EnvelopeVersion is the current backup format version.
const EnvelopeVersion = "2.5.1"

var (
	ErrInvalidEnvelope = errors.New("backup: invalid envelope")
)

// Payload carries the four collections and settings. The local user table
// deliberately stays out of backups.
type Payload struct {
	Equipments  []*model.Equipment       `json:"equipments"`
	Occurrences []*model.Occurrence      `json:"occurrences"`
	Alerts      []*model.Alert           `json:"alerts"`
	Tasks       []*model.MaintenanceTask `json:"tasks"`
	Settings    model.SystemSettings     `json:"settings"`
}

// Envelope is the versioned JSON backup format, independent of the
// durable snapshot mechanism.
type Envelope struct {
	Version   string    `json:"version"`
	Timestamp time.Time `json:"timestamp"`
	Data      Payload   `json:"data"`
}

// Export captures the current store state as a backup envelope.
func Export(snap *store.Snapshot) *Envelope {
	return &Envelope{
		Version:   EnvelopeVersion,
		Timestamp: time.Now().UTC(),
		Data: Payload{
			Equipments:  snap.Equipments,
			Occurrences: snap.Occurrences,
			Alerts:      snap.Alerts,
			Tasks:       snap.Tasks,
			Settings:    snap.Settings,
		},
	}
}

// Marshal renders the envelope as indented JSON for download.
func (e *Envelope) Marshal() ([]byte, error) {
	return json.MarshalIndent(e, "", "  ")
}

// Parse validates and decodes a backup envelope.
func Parse(data []byte) (*Envelope, error) {
	var env Envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, fmt.Errorf("backup: decode envelope: %w", err)
	}

	if env.Version == "" {
		return nil, fmt.Errorf("%w: missing version", ErrInvalidEnvelope)
	}
	if env.Data.Equipments == nil && env.Data.Occurrences == nil &&
		env.Data.Alerts == nil && env.Data.Tasks == nil {
		return nil, fmt.Errorf("%w: empty data section", ErrInvalidEnvelope)
	}

	return &env, nil
}

// Apply restores the envelope's collections and settings into the store.
// Records without a valid marker come back as Pending so they reconcile
// on the next cycle.
func Apply(env *Envelope, st *store.Store) {
	st.RestoreData(&store.Snapshot{
		Equipments:  env.Data.Equipments,
		Occurrences: env.Data.Occurrences,
		Alerts:      env.Data.Alerts,
		Tasks:       env.Data.Tasks,
		Settings:    env.Data.Settings,
	})
}
