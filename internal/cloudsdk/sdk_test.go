package cloudsdk

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/guardianhealth/medmaintain/internal/model"
)

func TestUnconfiguredCallsFail(t *testing.T) {
	sdk := New()

	err := sdk.Sync.UpsertRecords(context.Background(), "equipments", []map[string]any{{"id": "EQ-1"}})
	assert.ErrorIs(t, err, ErrNotConfigured)

	_, err = sdk.Health.Probe(context.Background())
	assert.ErrorIs(t, err, ErrNotConfigured)

	assert.False(t, sdk.Configured())
}

func TestConfigure_RequiresURLAndKey(t *testing.T) {
	sdk := New()

	sdk.Configure("https://cloud.example.com", "")
	assert.False(t, sdk.Configured())

	sdk.Configure("https://cloud.example.com", "key")
	assert.True(t, sdk.Configured())

	// unconfiguring again is allowed
	sdk.Configure("", "")
	assert.False(t, sdk.Configured())
}

func TestConfigure_SafeDuringInFlightRequests(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
	}))
	defer srv.Close()

	sdk := New()
	sdk.Configure(srv.URL, "key-0")

	// operators rotate the endpoint from the settings API while the sync
	// cycle and the reachability loop keep issuing requests
	done := make(chan struct{})
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for i := 1; ; i++ {
			select {
			case <-done:
				return
			default:
				sdk.Configure(srv.URL, fmt.Sprintf("key-%d", i))
			}
		}
	}()

	records := []map[string]any{{"id": "EQ-1"}}
	for i := 0; i < 50; i++ {
		require.NoError(t, sdk.Sync.UpsertRecords(context.Background(), "equipments", records))
		_, err := sdk.Health.Probe(context.Background())
		require.NoError(t, err)
	}

	close(done)
	wg.Wait()
}

func TestUpsertRecords_HeadersAndBody(t *testing.T) {
	var gotPath, gotPrefer, gotAPIKey, gotAuth string
	var gotBody []byte

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotPrefer = r.Header.Get(HeaderPrefer)
		gotAPIKey = r.Header.Get(HeaderAPIKey)
		gotAuth = r.Header.Get("Authorization")
		gotBody, _ = io.ReadAll(r.Body)
		w.WriteHeader(http.StatusCreated)
	}))
	defer srv.Close()

	sdk := New()
	sdk.Configure(srv.URL, "secret-key")

	records := []map[string]any{{"id": "EQ-1", "name": "Pump"}}
	require.NoError(t, sdk.Sync.UpsertRecords(context.Background(), "equipments", records))

	assert.Equal(t, "/equipments", gotPath)
	assert.Equal(t, preferMergeDuplicates, gotPrefer)
	assert.Equal(t, "secret-key", gotAPIKey)
	assert.Equal(t, "Bearer secret-key", gotAuth)

	var sent []map[string]any
	require.NoError(t, json.Unmarshal(gotBody, &sent))
	assert.Equal(t, records, sent)
}

func TestUpsertRecords_EmptyBatchSkipsRequest(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("unexpected request for empty batch")
	}))
	defer srv.Close()

	sdk := New()
	sdk.Configure(srv.URL, "key")

	assert.NoError(t, sdk.Sync.UpsertRecords(context.Background(), "equipments", nil))
}

func TestUpsertRecords_APIErrorDecoded(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusConflict)
		w.Write([]byte(`{"code":"23505","message":"duplicate key value","hint":"use upsert"}`))
	}))
	defer srv.Close()

	sdk := New()
	sdk.Configure(srv.URL, "key")

	err := sdk.Sync.UpsertRecords(context.Background(), "equipments", []map[string]any{{"id": "EQ-1"}})
	require.Error(t, err)

	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, "23505", apiErr.Code)
	assert.Equal(t, "duplicate key value", apiErr.Message)
}

func TestWireRecords_StripsMarker(t *testing.T) {
	records := []any{
		&model.Equipment{ID: "EQ-1", Name: "Pump", SyncStatus: model.MarkerPending},
		&model.Alert{ID: "AL-1", Title: "Check", SyncStatus: model.MarkerPending},
	}

	wire, err := WireRecords(records)
	require.NoError(t, err)
	require.Len(t, wire, 2)

	for _, record := range wire {
		assert.NotContains(t, record, markerField)
	}
	assert.Equal(t, "EQ-1", wire[0]["id"])
	assert.Equal(t, "AL-1", wire[1]["id"])
}

func TestProbe_HitsEquipmentsCount(t *testing.T) {
	var gotPath, gotSelect string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotSelect = r.URL.Query().Get("select")
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[{"count":2}]`))
	}))
	defer srv.Close()

	sdk := New()
	sdk.Configure(srv.URL, "key")

	rtt, err := sdk.Health.Probe(context.Background())
	require.NoError(t, err)
	assert.GreaterOrEqual(t, rtt, time.Duration(0))
	assert.Equal(t, "/equipments", gotPath)
	assert.Equal(t, "count", gotSelect)
}

func TestProbe_ServerErrorFails(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	sdk := New()
	sdk.Configure(srv.URL, "key")

	_, err := sdk.Health.Probe(context.Background())
	assert.Error(t, err)
}
