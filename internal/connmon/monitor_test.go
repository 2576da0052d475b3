package connmon

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/guardianhealth/medmaintain/internal/model"
)

type fakeProber struct {
	rtt time.Duration
	err error
}

func (f *fakeProber) Probe(ctx context.Context) (time.Duration, error) {
	return f.rtt, f.err
}

func activeSettings() model.SystemSettings {
	return model.SystemSettings{
		CloudAPIURL:  "https://cloud.example.com",
		CloudAPIKey:  "key",
		CloudEnabled: true,
	}
}

func TestMonitor_StartsOnline(t *testing.T) {
	m := New(nil, activeSettings)

	assert.True(t, m.Online())
	status := m.Status()
	assert.True(t, status.Online)
	assert.Nil(t, status.LatencyMs)
}

func TestMonitor_SetOnlineImmediate(t *testing.T) {
	m := New(nil, activeSettings)

	m.SetOnline(false)
	assert.False(t, m.Online())

	m.SetOnline(true)
	assert.True(t, m.Online())
}

func TestMonitor_OfflineClearsLatency(t *testing.T) {
	m := New(nil, activeSettings)
	ms := int64(42)
	m.setLatency(&ms)

	m.SetOnline(false)
	assert.Nil(t, m.Status().LatencyMs)
}

func TestMonitor_OnOnlineFiresOnTransition(t *testing.T) {
	fired := make(chan struct{}, 2)
	m := New(nil, activeSettings, WithOnOnline(func() {
		fired <- struct{}{}
	}))

	// already online: no transition, no callback
	m.SetOnline(true)
	select {
	case <-fired:
		t.Fatal("callback fired without a transition")
	case <-time.After(50 * time.Millisecond):
	}

	m.SetOnline(false)
	m.SetOnline(true)
	select {
	case <-fired:
	case <-time.After(time.Second):
		t.Fatal("callback not fired on offline to online transition")
	}
}

func TestMonitor_ProbeSuccessRecordsLatency(t *testing.T) {
	m := New(&fakeProber{rtt: 25 * time.Millisecond}, activeSettings, WithInterval(5*time.Millisecond))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	m.Start(ctx)

	require.Eventually(t, func() bool {
		return m.Status().LatencyMs != nil
	}, time.Second, 5*time.Millisecond)

	assert.Equal(t, int64(25), *m.Status().LatencyMs)
	assert.NotEmpty(t, m.Latency().Samples)

	cancel()
	m.Wait()
}

func TestMonitor_ProbeFailureKeepsOnline(t *testing.T) {
	m := New(&fakeProber{err: errors.New("unreachable")}, activeSettings, WithInterval(5*time.Millisecond))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	m.Start(ctx)

	// give the loop a few probe rounds
	time.Sleep(30 * time.Millisecond)

	// a failing probe never flips the online flag
	assert.True(t, m.Online())
	assert.Nil(t, m.Status().LatencyMs)

	cancel()
	m.Wait()
}

func TestMonitor_NoProbeWhenCloudInactive(t *testing.T) {
	inactive := func() model.SystemSettings {
		return model.SystemSettings{CloudEnabled: true} // no URL or key
	}
	m := New(&fakeProber{rtt: time.Millisecond}, inactive, WithInterval(5*time.Millisecond))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	m.Start(ctx)

	time.Sleep(30 * time.Millisecond)
	assert.Nil(t, m.Status().LatencyMs)

	cancel()
	m.Wait()
}
