package connmon

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/guardianhealth/medmaintain/internal/model"
)

const defaultProbeInterval = 30 * time.Second

// Prober measures reachability of the remote endpoint.
type Prober interface {
	Probe(ctx context.Context) (time.Duration, error)
}

// Status is the externally visible connectivity state. LatencyMs is set
// only while the last reachability probe succeeded; its absence does not
// mean offline.
type Status struct {
	Online    bool   `json:"online"`
	LatencyMs *int64 `json:"latencyMs,omitempty"`
}

// Option configures a Monitor.
type Option func(*Monitor)

// WithInterval overrides the probe interval.
func WithInterval(d time.Duration) Option {
	return func(m *Monitor) { m.interval = d }
}

// WithOnOnline registers a callback fired on every offline-to-online
// transition.
func WithOnOnline(fn func()) Option {
	return func(m *Monitor) { m.onOnline = fn }
}

// Monitor tracks the runtime online/offline signal and, while the cloud
// sync condition holds, probes remote reachability on a fixed interval.
// It is advisory telemetry only and never gates the sync engine.
type Monitor struct {
	probe    Prober
	settings func() model.SystemSettings
	interval time.Duration
	onOnline func()
	stats    *LatencyStats
	recheck  chan struct{}
	wg       sync.WaitGroup

	mu        sync.RWMutex
	online    bool
	latencyMs *int64
}

// New creates a Monitor. The settings getter is consulted on every probe
// decision so operator changes take effect without restarts. The monitor
// starts in the online state; the runtime network signal is delivered via
// SetOnline.
func New(probe Prober, settings func() model.SystemSettings, opts ...Option) *Monitor {
	m := &Monitor{
		probe:    probe,
		settings: settings,
		interval: defaultProbeInterval,
		stats:    NewLatencyStats(),
		recheck:  make(chan struct{}, 1),
		online:   true,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Start launches the probe loop. It stops when ctx is cancelled.
func (m *Monitor) Start(ctx context.Context) {
	m.wg.Add(1)
	go func() {
		defer m.wg.Done()
		m.run(ctx)
	}()
}

// Wait blocks until the probe loop has exited.
func (m *Monitor) Wait() {
	m.wg.Wait()
}

func (m *Monitor) run(ctx context.Context) {
	// using a timer and not a ticker to avoid queued ticks when a probe
	// takes longer than the interval
	timer := time.NewTimer(m.interval)
	defer timer.Stop()

	for {
		if m.shouldProbe() {
			m.runProbe(ctx)

			if !timer.Stop() {
				select {
				case <-timer.C:
				default:
				}
			}
			timer.Reset(m.interval)

			select {
			case <-ctx.Done():
				return
			case <-timer.C:
			case <-m.recheck:
			}
		} else {
			m.setLatency(nil)

			select {
			case <-ctx.Done():
				return
			case <-m.recheck:
			}
		}
	}
}

// shouldProbe is the probe condition: online, cloud sync enabled, and an
// endpoint plus key configured.
func (m *Monitor) shouldProbe() bool {
	if m.probe == nil {
		return false
	}
	m.mu.RLock()
	online := m.online
	m.mu.RUnlock()
	return online && m.settings().CloudSyncActive()
}

func (m *Monitor) runProbe(ctx context.Context) {
	rtt, err := m.probe.Probe(ctx)
	if err != nil {
		// latency absence is not offline; the online flag only follows
		// the runtime network signal
		m.setLatency(nil)
		slog.Debug("connectivity probe failed", "error", err)
		return
	}

	ms := rtt.Milliseconds()
	m.setLatency(&ms)
	m.stats.Record(uint64(ms))
	slog.Debug("connectivity probe", "latencyMs", ms)
}

func (m *Monitor) setLatency(ms *int64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.latencyMs = ms
}

// SetOnline applies the runtime network signal, immediately and without
// debouncing. A transition to online fires the onOnline callback.
func (m *Monitor) SetOnline(online bool) {
	m.mu.Lock()
	was := m.online
	m.online = online
	if !online {
		m.latencyMs = nil
	}
	m.mu.Unlock()

	if online == was {
		return
	}

	slog.Info("connectivity", "online", online)
	if online && m.onOnline != nil {
		go m.onOnline()
	}
	m.Recheck()
}

// Recheck nudges the probe loop to re-evaluate its condition, e.g. after
// a settings change.
func (m *Monitor) Recheck() {
	select {
	case m.recheck <- struct{}{}:
	default:
	}
}

// Online reports the current runtime network signal.
func (m *Monitor) Online() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.online
}

// Status returns the current connectivity state.
func (m *Monitor) Status() Status {
	m.mu.RLock()
	defer m.mu.RUnlock()

	status := Status{Online: m.online}
	if m.latencyMs != nil {
		ms := *m.latencyMs
		status.LatencyMs = &ms
	}
	return status
}

// Latency returns the rolling probe latency telemetry.
func (m *Monitor) Latency() LatencySnapshot {
	return m.stats.Snapshot()
}
