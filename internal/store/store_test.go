package store

import (
	"strings"
	"testing"

	mapset "github.com/deckarep/golang-set/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/guardianhealth/medmaintain/internal/model"
)

func TestAddEquipment_DefaultsAndPendingMarker(t *testing.T) {
	st := New()

	eq, err := st.AddEquipment(model.Equipment{
		Name: "Infusion Pump",
		// attempt to smuggle in a marker; the store must ignore it
		SyncStatus: model.MarkerSynced,
	})
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(eq.ID, "EQ-"))
	assert.Equal(t, model.MarkerPending, eq.SyncStatus)
	assert.Equal(t, model.CategoryDiagnostic, eq.Category)
	assert.Equal(t, model.RiskClassI, eq.RiskClass)
	assert.Equal(t, model.EquipmentOperational, eq.Status)
	assert.NotEmpty(t, eq.AcquisitionDate)
	assert.Equal(t, 1, st.PendingCount())
}

func TestAddRecords_NewestFirst(t *testing.T) {
	st := New()

	first, err := st.AddEquipment(model.Equipment{Name: "A"})
	require.NoError(t, err)
	second, err := st.AddEquipment(model.Equipment{Name: "B"})
	require.NoError(t, err)

	list := st.Equipments()
	require.Len(t, list, 2)
	assert.Equal(t, second.ID, list[0].ID)
	assert.Equal(t, first.ID, list[1].ID)
}

func TestMarkSynced_OnlyMovesPending(t *testing.T) {
	st := New()

	eq, err := st.AddEquipment(model.Equipment{Name: "X-Ray"})
	require.NoError(t, err)

	ids := mapset.NewSet(eq.ID)
	st.MarkSynced(KindEquipments, ids)
	assert.Equal(t, model.MarkerSynced, st.Equipments()[0].SyncStatus)

	// a second transition on the same ids must be a no-op
	st.MarkError(KindEquipments, ids)
	assert.Equal(t, model.MarkerSynced, st.Equipments()[0].SyncStatus)
}

func TestMarkError_ThenRetry(t *testing.T) {
	st := New()

	eq, err := st.AddEquipment(model.Equipment{Name: "Defibrillator"})
	require.NoError(t, err)

	st.MarkError(KindEquipments, mapset.NewSet(eq.ID))
	assert.Equal(t, model.MarkerError, st.Equipments()[0].SyncStatus)
	assert.Equal(t, 0, st.PendingCount())

	retried := st.RetryErrored()
	assert.Equal(t, 1, retried)
	assert.Equal(t, model.MarkerPending, st.Equipments()[0].SyncStatus)
	assert.Equal(t, 1, st.PendingCount())
}

func TestPendingCount_RecomputedFromState(t *testing.T) {
	st := New()

	eq, err := st.AddEquipment(model.Equipment{Name: "A"})
	require.NoError(t, err)
	_, err = st.AddAlert(model.Alert{Title: "B"})
	require.NoError(t, err)
	assert.Equal(t, 2, st.PendingCount())

	st.MarkSynced(KindEquipments, mapset.NewSet(eq.ID))
	assert.Equal(t, 1, st.PendingCount())
}

func TestPendingByKind_SplitsCollections(t *testing.T) {
	st := New()

	eq, err := st.AddEquipment(model.Equipment{Name: "A"})
	require.NoError(t, err)
	task, err := st.ScheduleTask(model.MaintenanceTask{EquipmentID: eq.ID})
	require.NoError(t, err)

	pending := st.PendingByKind()
	assert.True(t, pending[KindEquipments].Contains(eq.ID))
	assert.True(t, pending[KindTasks].Contains(task.ID))
	assert.Equal(t, 0, pending[KindAlerts].Cardinality())
}

func TestAdvanceOccurrence_Ladder(t *testing.T) {
	st := New()

	occ, err := st.AddOccurrence(model.Occurrence{Description: "screen flicker"})
	require.NoError(t, err)
	assert.Equal(t, model.OccurrenceReported, occ.Status)

	steps := []model.OccurrenceStatus{
		model.OccurrenceToDo,
		model.OccurrenceDone,
		model.OccurrenceClosed,
		model.OccurrenceClosed, // terminal
	}
	for _, want := range steps {
		got, err := st.AdvanceOccurrence(occ.ID)
		require.NoError(t, err)
		assert.Equal(t, want, got.Status)
		assert.Equal(t, model.MarkerPending, got.SyncStatus)
	}

	_, err = st.AdvanceOccurrence("CH-missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestResolveAlert(t *testing.T) {
	st := New()

	alert, err := st.AddAlert(model.Alert{Title: "battery low"})
	require.NoError(t, err)
	st.MarkSynced(KindAlerts, mapset.NewSet(alert.ID))

	resolved, err := st.ResolveAlert(alert.ID)
	require.NoError(t, err)
	assert.Equal(t, model.AlertResolved, resolved.Status)
	assert.Equal(t, model.MarkerPending, resolved.SyncStatus)
}

func TestCompleteTask_CascadesToEquipment(t *testing.T) {
	st := New()
	st.Restore(SeedSnapshot())

	task, err := st.ScheduleTask(model.MaintenanceTask{
		EquipmentID: "EQ-002",
		Technician:  "Amanda Costa",
	})
	require.NoError(t, err)

	done, err := st.CompleteTask(task.ID, "replaced SpO2 cable")
	require.NoError(t, err)
	assert.Equal(t, model.TaskCompleted, done.Status)
	assert.Equal(t, "replaced SpO2 cable", done.Notes)
	assert.Equal(t, model.MarkerPending, done.SyncStatus)

	var eq *model.Equipment
	for _, e := range st.Equipments() {
		if e.ID == "EQ-002" {
			eq = e
		}
	}
	require.NotNil(t, eq)
	assert.Equal(t, model.EquipmentOperational, eq.Status)
	assert.NotEmpty(t, eq.LastMaintenance)
	assert.Equal(t, model.MarkerPending, eq.SyncStatus)
}

func TestImportEquipmentsCSV(t *testing.T) {
	st := New()

	csv := "Ventilator,SN001,ICU\n\nMonitor,SN002\nbad-line\n"
	imported, err := st.ImportEquipmentsCSV(csv)
	require.NoError(t, err)
	assert.Equal(t, 2, imported)

	list := st.Equipments()
	require.Len(t, list, 2)
	for _, eq := range list {
		assert.Equal(t, model.MarkerPending, eq.SyncStatus)
	}
	// newest first, so SN002 comes before SN001
	assert.Equal(t, "SN002", list[0].SerialNumber)
	assert.Equal(t, "ICU", list[1].Location)
}

func TestRestoreData_NormalizesMarkersAndKeepsUsers(t *testing.T) {
	st := New()
	_, err := st.AddUser(model.User{ID: "2", Name: "Tech", Username: "tech", Password: "pw"})
	require.NoError(t, err)

	st.RestoreData(&Snapshot{
		Equipments: []*model.Equipment{
			{ID: "EQ-900", Name: "Imported", SyncStatus: "bogus"},
			{ID: "EQ-901", Name: "Imported 2", SyncStatus: model.MarkerSynced},
		},
		Settings: model.DefaultSettings(),
	})

	list := st.Equipments()
	require.Len(t, list, 2)
	assert.Equal(t, model.MarkerPending, list[0].SyncStatus)
	assert.Equal(t, model.MarkerSynced, list[1].SyncStatus)

	// backup import must never touch local accounts
	assert.Len(t, st.Users(), 2)
}

func TestReset_BackToFactoryState(t *testing.T) {
	st := New()
	st.Restore(SeedSnapshot())
	_, err := st.AddUser(model.User{ID: "2", Name: "Tech", Username: "tech", Password: "pw"})
	require.NoError(t, err)
	st.SetSettings(model.SystemSettings{HospitalName: "Other", CloudAPIURL: "https://x"})

	st.Reset()

	assert.Empty(t, st.Equipments())
	assert.Empty(t, st.Occurrences())
	assert.Empty(t, st.Alerts())
	assert.Empty(t, st.Tasks())
	assert.Equal(t, model.DefaultSettings(), st.Settings())

	users := st.Users()
	require.Len(t, users, 1)
	assert.Equal(t, "admin", users[0].Username)
}

func TestAddUser_DuplicateUsername(t *testing.T) {
	st := New()

	_, err := st.AddUser(model.User{ID: "2", Username: "admin"})
	assert.ErrorIs(t, err, ErrUserExists)
}

func TestSnapshot_IsDeepCopy(t *testing.T) {
	st := New()
	eq, err := st.AddEquipment(model.Equipment{Name: "Original"})
	require.NoError(t, err)

	snap := st.Snapshot()
	snap.Equipments[0].Name = "Mutated"

	list := st.Equipments()
	require.Len(t, list, 1)
	assert.Equal(t, "Original", list[0].Name)
	assert.Equal(t, eq.ID, list[0].ID)
}
