package syncer

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	mapset "github.com/deckarep/golang-set/v2"

	"github.com/guardianhealth/medmaintain/internal/cloudsdk"
	"github.com/guardianhealth/medmaintain/internal/connmon"
	"github.com/guardianhealth/medmaintain/internal/store"
)

// settle delay before finalizing a cycle so the syncing indicator is
// observable; it does not await network completion
const defaultSettleDelay = 1500 * time.Millisecond

var (
	ErrSyncAlreadyRunning = errors.New("sync already running")
	ErrOffline            = errors.New("cannot sync while offline")
)

// Option configures an Engine.
type Option func(*Engine)

// WithSettleDelay overrides the finalize settle delay.
func WithSettleDelay(d time.Duration) Option {
	return func(e *Engine) { e.settleDelay = d }
}

// Engine drives reconciliation cycles: at most one cycle runs at a time,
// each cycle uploads whatever was Pending at its start and then settles
// the markers. Failures never propagate to callers; the only observable
// effects are the syncing flag and eventual marker state.
type Engine struct {
	store       *store.Store
	sdk         *cloudsdk.CloudSDK
	conn        *connmon.Monitor
	settleDelay time.Duration

	ctx     context.Context
	muCycle sync.Mutex
	syncing atomic.Bool
	wg      sync.WaitGroup
}

func New(st *store.Store, sdk *cloudsdk.CloudSDK, conn *connmon.Monitor, opts ...Option) *Engine {
	e := &Engine{
		store:       st,
		sdk:         sdk,
		conn:        conn,
		settleDelay: defaultSettleDelay,
		ctx:         context.Background(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Start binds cycles to the daemon lifetime. Cycles must outlive the
// request that triggered them, so they never run on a caller's context.
func (e *Engine) Start(ctx context.Context) {
	e.ctx = ctx
}

// IsSyncing reports whether a cycle is currently running.
func (e *Engine) IsSyncing() bool {
	return e.syncing.Load()
}

// Wait blocks until any in-flight cycle has finished.
func (e *Engine) Wait() {
	e.wg.Wait()
}

// TriggerSync is the manual trigger. Guard failures are reported to the
// invoker: offline is a user-visible rejection, a running cycle returns
// ErrSyncAlreadyRunning. Nothing pending is a silent no-op.
func (e *Engine) TriggerSync() error {
	return e.startCycle()
}

// TriggerAutoSync is the automatic trigger, fired on connectivity
// recovery and on new pending mutations. Guard failures are silent.
func (e *Engine) TriggerAutoSync() {
	if !e.store.Settings().CloudEnabled {
		return
	}
	if err := e.startCycle(); err != nil {
		slog.Debug("auto sync skipped", "reason", err)
	}
}

func (e *Engine) startCycle() error {
	if !e.conn.Online() {
		return ErrOffline
	}
	if e.store.PendingCount() == 0 {
		return nil
	}
	if !e.muCycle.TryLock() {
		return ErrSyncAlreadyRunning
	}

	// cycle state is fixed at this instant; records that go Pending
	// mid-cycle are picked up by the next cycle only
	pending := e.store.PendingByKind()
	e.syncing.Store(true)

	e.wg.Add(1)
	go e.runCycle(e.ctx, pending)
	return nil
}

func (e *Engine) runCycle(ctx context.Context, pending map[store.Kind]mapset.Set[string]) {
	defer e.wg.Done()
	defer e.muCycle.Unlock()
	defer e.syncing.Store(false)

	tstart := time.Now()
	settings := e.store.Settings()

	if settings.CloudSyncActive() {
		// fan out the four collection uploads independently and join
		// unconditionally; one collection failing never aborts the others
		var wg sync.WaitGroup
		for _, kind := range store.Kinds() {
			ids := pending[kind]
			if ids == nil || ids.Cardinality() == 0 {
				continue
			}
			wg.Add(1)
			go func(kind store.Kind, ids mapset.Set[string]) {
				defer wg.Done()
				e.uploadBatch(ctx, kind, ids)
			}(kind, ids)
		}
		wg.Wait()
	}

	timer := time.NewTimer(e.settleDelay)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		// abandoned cycle: markers stay Pending and are re-attempted
		// after restart
		return
	case <-timer.C:
	}

	// finalize: everything Pending at cycle start is acknowledged, even
	// with no remote configured ("synced" degrades to "acknowledged
	// locally"). Records moved to Error during the cycle are skipped by
	// MarkSynced and wait for a new mutation or a manual retry.
	total := 0
	for _, kind := range store.Kinds() {
		ids := pending[kind]
		if ids == nil {
			continue
		}
		e.store.MarkSynced(kind, ids)
		total += ids.Cardinality()
	}

	slog.Info("sync cycle done", "records", total, "took", time.Since(tstart))
}

func (e *Engine) uploadBatch(ctx context.Context, kind store.Kind, ids mapset.Set[string]) {
	records := e.store.PendingRecords(kind, ids)
	if len(records) == 0 {
		return
	}

	wire, err := cloudsdk.WireRecords(records)
	if err != nil {
		slog.Error("sync upload", "collection", kind, "error", err)
		return
	}

	err = e.sdk.Sync.UpsertRecords(ctx, string(kind), wire)
	if err == nil {
		slog.Info("sync upload", "collection", kind, "records", len(wire))
		return
	}

	var apiErr *cloudsdk.APIError
	if errors.As(err, &apiErr) {
		// explicit rejection from the remote store: these records need
		// operator attention, not a blind retry
		slog.Error("sync upload rejected", "collection", kind, "error", err)
		e.store.MarkError(kind, ids)
		return
	}

	// transient transport fault: isolated, logged, not retried within
	// this cycle
	slog.Error("sync upload", "collection", kind, "error", err)
}
