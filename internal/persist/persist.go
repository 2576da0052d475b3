package persist

import (
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/goccy/go-json"
	"github.com/jmoiron/sqlx"

	"github.com/guardianhealth/medmaintain/internal/store"
)

const schema = `
CREATE TABLE IF NOT EXISTS snapshot (
	key        TEXT PRIMARY KEY,
	value      BLOB NOT NULL,
	updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
);
`

const (
	keyEquipments  = "equipments"
	keyOccurrences = "occurrences"
	keyAlerts      = "alerts"
	keyTasks       = "tasks"
	keySettings    = "settings"
	keyUsers       = "users"
)

// Persister snapshots the record store into a key-value SQLite table so
// state survives restarts. One row per top-level snapshot section, each
// record serialized with its sync marker.
type Persister struct {
	db *sqlx.DB
}

func New(db *sqlx.DB) (*Persister, error) {
	if _, err := db.Exec(schema); err != nil {
		return nil, fmt.Errorf("create snapshot table: %w", err)
	}
	return &Persister{db: db}, nil
}

// Save writes the full snapshot in one transaction, replacing prior rows.
func (p *Persister) Save(snap *store.Snapshot) error {
	sections := map[string]any{
		keyEquipments:  snap.Equipments,
		keyOccurrences: snap.Occurrences,
		keyAlerts:      snap.Alerts,
		keyTasks:       snap.Tasks,
		keySettings:    snap.Settings,
		keyUsers:       snap.Users,
	}

	tx, err := p.db.Beginx()
	if err != nil {
		return fmt.Errorf("begin snapshot tx: %w", err)
	}
	defer tx.Rollback()

	for key, section := range sections {
		value, err := json.Marshal(section)
		if err != nil {
			return fmt.Errorf("marshal %s: %w", key, err)
		}

		_, err = tx.Exec(`
			INSERT INTO snapshot (key, value, updated_at) VALUES (?, ?, CURRENT_TIMESTAMP)
			ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = CURRENT_TIMESTAMP`,
			key, value,
		)
		if err != nil {
			return fmt.Errorf("write %s: %w", key, err)
		}
	}

	return tx.Commit()
}

// Load reads the durable snapshot. Returns (nil, nil) when no snapshot has
// ever been saved, which callers treat as a first run.
func (p *Persister) Load() (*store.Snapshot, error) {
	rows := map[string][]byte{}

	type kv struct {
		Key   string `db:"key"`
		Value []byte `db:"value"`
	}

	var all []kv
	if err := p.db.Select(&all, `SELECT key, value FROM snapshot`); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("read snapshot: %w", err)
	}
	if len(all) == 0 {
		return nil, nil
	}

	for _, row := range all {
		rows[row.Key] = row.Value
	}

	snap := &store.Snapshot{}
	sections := map[string]any{
		keyEquipments:  &snap.Equipments,
		keyOccurrences: &snap.Occurrences,
		keyAlerts:      &snap.Alerts,
		keyTasks:       &snap.Tasks,
		keySettings:    &snap.Settings,
		keyUsers:       &snap.Users,
	}

	for key, target := range sections {
		value, ok := rows[key]
		if !ok {
			continue
		}
		if err := json.Unmarshal(value, target); err != nil {
			return nil, fmt.Errorf("unmarshal %s: %w", key, err)
		}
	}

	return snap, nil
}

// Clear wipes all durable state. Used by the destructive system reset.
func (p *Persister) Clear() error {
	if _, err := p.db.Exec(`DELETE FROM snapshot`); err != nil {
		return fmt.Errorf("clear snapshot: %w", err)
	}
	slog.Info("persist cleared")
	return nil
}
