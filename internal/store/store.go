package store

import (
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	mapset "github.com/deckarep/golang-set/v2"

	"github.com/guardianhealth/medmaintain/internal/model"
	"github.com/guardianhealth/medmaintain/internal/utils"
)

var (
	ErrNotFound   = errors.New("store: record not found")
	ErrUserExists = errors.New("store: username already taken")
)

const recordIDLen = 6

// Store is the in-memory authoritative state: the four syncable
// collections, system settings and the local user table. It is the only
// shared mutable resource; other components read records and request
// marker transitions through its API, never mutate them directly.
type Store struct {
	mu          sync.RWMutex
	equipments  collection[*model.Equipment]
	occurrences collection[*model.Occurrence]
	alerts      collection[*model.Alert]
	tasks       collection[*model.MaintenanceTask]
	settings    model.SystemSettings
	users       []*model.User

	onChange func(*Snapshot)
}

func New() *Store {
	return &Store{
		settings: model.DefaultSettings(),
		users:    model.DefaultUsers(),
	}
}

// SetOnChange registers the durability hook. It is invoked on its own
// goroutine after every successful mutation, fire-and-forget.
func (s *Store) SetOnChange(fn func(*Snapshot)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onChange = fn
}

// notifyLocked must be called with the write lock held.
func (s *Store) notifyLocked() {
	if s.onChange == nil {
		return
	}
	snap := s.snapshotLocked()
	go s.onChange(snap)
}

func newRecordID(prefix string) (string, error) {
	suffix, err := utils.RandBase34(recordIDLen)
	if err != nil {
		return "", fmt.Errorf("generate record id: %w", err)
	}
	return prefix + "-" + suffix, nil
}

func today() string {
	return time.Now().Format("2006-01-02")
}

// AddEquipment registers a new asset. The record always enters the store
// with marker Pending; any marker on the input is ignored.
func (s *Store) AddEquipment(eq model.Equipment) (*model.Equipment, error) {
	id, err := newRecordID("EQ")
	if err != nil {
		return nil, err
	}

	eq.ID = id
	eq.SyncStatus = model.MarkerPending
	if eq.Name == "" {
		eq.Name = "New Equipment"
	}
	if eq.Category == "" {
		eq.Category = model.CategoryDiagnostic
	}
	if eq.RiskClass == "" {
		eq.RiskClass = model.RiskClassI
	}
	if eq.Location == "" {
		eq.Location = "Storage"
	}
	if eq.AcquisitionDate == "" {
		eq.AcquisitionDate = today()
	}
	if eq.Status == "" {
		eq.Status = model.EquipmentOperational
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.equipments.prepend(&eq)
	s.notifyLocked()
	return cloneEquipment(&eq), nil
}

// ImportEquipmentsCSV parses "name,serial,location" lines and registers
// one equipment per non-empty line. Returns the number imported.
func (s *Store) ImportEquipmentsCSV(data string) (int, error) {
	imported := 0
	for _, line := range strings.Split(data, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		parts := strings.Split(line, ",")
		if len(parts) < 2 {
			continue
		}

		eq := model.Equipment{
			Name:         strings.TrimSpace(parts[0]),
			SerialNumber: strings.TrimSpace(parts[1]),
		}
		if len(parts) > 2 {
			eq.Location = strings.TrimSpace(parts[2])
		}

		if _, err := s.AddEquipment(eq); err != nil {
			return imported, err
		}
		imported++
	}
	return imported, nil
}

// AddOccurrence reports a new incident.
func (s *Store) AddOccurrence(o model.Occurrence) (*model.Occurrence, error) {
	id, err := newRecordID("CH")
	if err != nil {
		return nil, err
	}

	o.ID = id
	o.SyncStatus = model.MarkerPending
	o.Status = model.OccurrenceReported
	if o.Date == "" {
		o.Date = today()
	}
	if o.PartsReplaced == nil {
		o.PartsReplaced = []string{}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.occurrences.prepend(&o)
	s.notifyLocked()
	return cloneOccurrence(&o), nil
}

// AdvanceOccurrence moves an occurrence one step along its status ladder
// and marks it Pending again.
func (s *Store) AdvanceOccurrence(id string) (*model.Occurrence, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	occ, ok := s.occurrences.find(id)
	if !ok {
		return nil, ErrNotFound
	}

	occ.Status = occ.Status.Next()
	occ.SyncStatus = model.MarkerPending
	s.notifyLocked()
	return cloneOccurrence(occ), nil
}

// AddAlert raises a new maintenance alert.
func (s *Store) AddAlert(a model.Alert) (*model.Alert, error) {
	id, err := newRecordID("AL")
	if err != nil {
		return nil, err
	}

	a.ID = id
	a.SyncStatus = model.MarkerPending
	a.Status = model.AlertActive
	if a.Date == "" {
		a.Date = today()
	}
	if a.Severity == "" {
		a.Severity = model.SeverityMedium
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.alerts.prepend(&a)
	s.notifyLocked()
	return cloneAlert(&a), nil
}

// ResolveAlert closes an active alert and marks it Pending.
func (s *Store) ResolveAlert(id string) (*model.Alert, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	alert, ok := s.alerts.find(id)
	if !ok {
		return nil, ErrNotFound
	}

	alert.Status = model.AlertResolved
	alert.SyncStatus = model.MarkerPending
	s.notifyLocked()
	return cloneAlert(alert), nil
}

// ScheduleTask creates a new work order.
func (s *Store) ScheduleTask(t model.MaintenanceTask) (*model.MaintenanceTask, error) {
	id, err := newRecordID("OS")
	if err != nil {
		return nil, err
	}

	t.ID = id
	t.SyncStatus = model.MarkerPending
	t.Status = model.TaskScheduled
	if t.Type == "" {
		t.Type = model.MaintenancePreventive
	}
	if t.Date == "" {
		t.Date = today()
	}
	if t.Protocol == "" {
		t.Protocol = "General"
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.tasks.prepend(&t)
	s.notifyLocked()
	return cloneTask(&t), nil
}

// CompleteTask closes a work order and flips the linked equipment back to
// Operational with a fresh lastMaintenance stamp. Both records go Pending.
func (s *Store) CompleteTask(id string, notes string) (*model.MaintenanceTask, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	task, ok := s.tasks.find(id)
	if !ok {
		return nil, ErrNotFound
	}

	task.Status = model.TaskCompleted
	task.Notes = notes
	task.SyncStatus = model.MarkerPending

	if eq, ok := s.equipments.find(task.EquipmentID); ok {
		eq.Status = model.EquipmentOperational
		eq.LastMaintenance = today()
		eq.SyncStatus = model.MarkerPending
	}

	s.notifyLocked()
	return cloneTask(task), nil
}

// MarkSynced transitions every Pending record in ids to Synced. Records
// already Synced or Error are left untouched, so the call is idempotent.
func (s *Store) MarkSynced(kind Kind, ids mapset.Set[string]) {
	s.transition(kind, ids, model.MarkerSynced)
}

// MarkError transitions every Pending record in ids to Error. An Error
// record is not retried automatically; a new local mutation (or a manual
// retry) resets it to Pending.
func (s *Store) MarkError(kind Kind, ids mapset.Set[string]) {
	s.transition(kind, ids, model.MarkerError)
}

func (s *Store) transition(kind Kind, ids mapset.Set[string], to model.SyncMarker) {
	if ids == nil || ids.Cardinality() == 0 {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	var n int
	switch kind {
	case KindEquipments:
		n = s.equipments.transition(ids, to)
	case KindOccurrences:
		n = s.occurrences.transition(ids, to)
	case KindAlerts:
		n = s.alerts.transition(ids, to)
	case KindTasks:
		n = s.tasks.transition(ids, to)
	}

	if n > 0 {
		s.notifyLocked()
	}
}

// RetryErrored resets every Error record back to Pending so the next cycle
// picks them up again. Returns the number of records reset.
func (s *Store) RetryErrored() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	n := 0
	for _, eq := range s.equipments.items {
		if eq.SyncStatus == model.MarkerError {
			eq.SyncStatus = model.MarkerPending
			n++
		}
	}
	for _, occ := range s.occurrences.items {
		if occ.SyncStatus == model.MarkerError {
			occ.SyncStatus = model.MarkerPending
			n++
		}
	}
	for _, alert := range s.alerts.items {
		if alert.SyncStatus == model.MarkerError {
			alert.SyncStatus = model.MarkerPending
			n++
		}
	}
	for _, task := range s.tasks.items {
		if task.SyncStatus == model.MarkerError {
			task.SyncStatus = model.MarkerPending
			n++
		}
	}

	if n > 0 {
		s.notifyLocked()
	}
	return n
}

func (s *Store) Equipments() []*model.Equipment {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*model.Equipment, 0, len(s.equipments.items))
	for _, eq := range s.equipments.items {
		out = append(out, cloneEquipment(eq))
	}
	return out
}

func (s *Store) Occurrences() []*model.Occurrence {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*model.Occurrence, 0, len(s.occurrences.items))
	for _, occ := range s.occurrences.items {
		out = append(out, cloneOccurrence(occ))
	}
	return out
}

func (s *Store) Alerts() []*model.Alert {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*model.Alert, 0, len(s.alerts.items))
	for _, alert := range s.alerts.items {
		out = append(out, cloneAlert(alert))
	}
	return out
}

func (s *Store) Tasks() []*model.MaintenanceTask {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*model.MaintenanceTask, 0, len(s.tasks.items))
	for _, task := range s.tasks.items {
		out = append(out, cloneTask(task))
	}
	return out
}

// Settings returns a copy of the current system settings.
func (s *Store) Settings() model.SystemSettings {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.settings
}

// SetSettings replaces the system settings.
func (s *Store) SetSettings(settings model.SystemSettings) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.settings = settings
	s.notifyLocked()
}

// Users returns a copy of the local user table.
func (s *Store) Users() []*model.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*model.User, 0, len(s.users))
	for _, u := range s.users {
		out = append(out, cloneUser(u))
	}
	return out
}

// FindUser looks a user up by username.
func (s *Store) FindUser(username string) (*model.User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, u := range s.users {
		if u.Username == username {
			return cloneUser(u), true
		}
	}
	return nil, false
}

// AddUser registers a new local account.
func (s *Store) AddUser(u model.User) (*model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.users {
		if existing.Username == u.Username {
			return nil, ErrUserExists
		}
	}

	s.users = append(s.users, &u)
	s.notifyLocked()
	return cloneUser(&u), nil
}

// Snapshot returns a deep copy of the entire store state.
func (s *Store) Snapshot() *Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshotLocked()
}

func (s *Store) snapshotLocked() *Snapshot {
	snap := &Snapshot{
		Equipments:  make([]*model.Equipment, 0, len(s.equipments.items)),
		Occurrences: make([]*model.Occurrence, 0, len(s.occurrences.items)),
		Alerts:      make([]*model.Alert, 0, len(s.alerts.items)),
		Tasks:       make([]*model.MaintenanceTask, 0, len(s.tasks.items)),
		Settings:    s.settings,
		Users:       make([]*model.User, 0, len(s.users)),
	}

	for _, eq := range s.equipments.items {
		snap.Equipments = append(snap.Equipments, cloneEquipment(eq))
	}
	for _, occ := range s.occurrences.items {
		snap.Occurrences = append(snap.Occurrences, cloneOccurrence(occ))
	}
	for _, alert := range s.alerts.items {
		snap.Alerts = append(snap.Alerts, cloneAlert(alert))
	}
	for _, task := range s.tasks.items {
		snap.Tasks = append(snap.Tasks, cloneTask(task))
	}
	for _, u := range s.users {
		snap.Users = append(snap.Users, cloneUser(u))
	}

	return snap
}

// Restore replaces the store state with a previously captured snapshot.
// Used at boot (durable snapshot or first-run seed) and by backup import.
// Restore does not fire the durability hook.
func (s *Store) Restore(snap *Snapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.equipments.replace(snap.Equipments)
	s.occurrences.replace(snap.Occurrences)
	s.alerts.replace(snap.Alerts)
	s.tasks.replace(snap.Tasks)
	s.settings = snap.Settings
	if len(snap.Users) > 0 {
		s.users = snap.Users
	}
}

// RestoreData replaces the four collections and settings from a backup
// payload, keeping the local user table. Records with no marker come in
// as Pending so they get reconciled.
func (s *Store) RestoreData(snap *Snapshot) {
	for _, eq := range snap.Equipments {
		if !eq.SyncStatus.Valid() {
			eq.SyncStatus = model.MarkerPending
		}
	}
	for _, occ := range snap.Occurrences {
		if !occ.SyncStatus.Valid() {
			occ.SyncStatus = model.MarkerPending
		}
	}
	for _, alert := range snap.Alerts {
		if !alert.SyncStatus.Valid() {
			alert.SyncStatus = model.MarkerPending
		}
	}
	for _, task := range snap.Tasks {
		if !task.SyncStatus.Valid() {
			task.SyncStatus = model.MarkerPending
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.equipments.replace(snap.Equipments)
	s.occurrences.replace(snap.Occurrences)
	s.alerts.replace(snap.Alerts)
	s.tasks.replace(snap.Tasks)
	s.settings = snap.Settings
	s.notifyLocked()
}

// Reset wipes all four collections and reverts settings and the user table
// to factory defaults. Irreversible; callers gate it behind an explicit
// confirmation phrase.
func (s *Store) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.equipments.replace(nil)
	s.occurrences.replace(nil)
	s.alerts.replace(nil)
	s.tasks.replace(nil)
	s.settings = model.DefaultSettings()
	s.users = model.DefaultUsers()
	s.notifyLocked()
}
