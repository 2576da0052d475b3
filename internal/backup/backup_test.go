package backup

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/guardianhealth/medmaintain/internal/model"
	"github.com/guardianhealth/medmaintain/internal/store"
)

func TestExportMarshalParse_Roundtrip(t *testing.T) {
	st := store.New()
	st.Restore(store.SeedSnapshot())

	env := Export(st.Snapshot())
	assert.Equal(t, EnvelopeVersion, env.Version)
	assert.False(t, env.Timestamp.IsZero())

	data, err := env.Marshal()
	require.NoError(t, err)

	parsed, err := Parse(data)
	require.NoError(t, err)
	assert.Equal(t, env.Version, parsed.Version)
	require.Len(t, parsed.Data.Equipments, 2)
	assert.Equal(t, "EQ-001", parsed.Data.Equipments[0].ID)
}

func TestExport_ExcludesUsers(t *testing.T) {
	st := store.New()
	st.Restore(store.SeedSnapshot())

	data, err := Export(st.Snapshot()).Marshal()
	require.NoError(t, err)
	assert.NotContains(t, string(data), `"username"`)
}

func TestParse_RejectsGarbage(t *testing.T) {
	_, err := Parse([]byte(`{invalid`))
	assert.Error(t, err)
}

func TestParse_RejectsMissingVersion(t *testing.T) {
	_, err := Parse([]byte(`{"data":{"equipments":[]}}`))
	assert.ErrorIs(t, err, ErrInvalidEnvelope)
}

func TestParse_RejectsEmptyData(t *testing.T) {
	_, err := Parse([]byte(`{"version":"2.5.1","data":{}}`))
	assert.ErrorIs(t, err, ErrInvalidEnvelope)
}

func TestApply_RestoresCollectionsKeepsUsers(t *testing.T) {
	st := store.New()
	_, err := st.AddUser(model.User{ID: "2", Name: "Tech", Username: "tech", Password: "pw"})
	require.NoError(t, err)

	env := &Envelope{
		Version: EnvelopeVersion,
		Data: Payload{
			Equipments: []*model.Equipment{
				{ID: "EQ-500", Name: "Imported Pump"}, // no marker in the file
			},
			Settings: model.SystemSettings{HospitalName: "Imported Hospital"},
		},
	}

	Apply(env, st)

	list := st.Equipments()
	require.Len(t, list, 1)
	assert.Equal(t, "EQ-500", list[0].ID)
	assert.Equal(t, model.MarkerPending, list[0].SyncStatus)
	assert.Equal(t, "Imported Hospital", st.Settings().HospitalName)
	assert.Len(t, st.Users(), 2)
}
