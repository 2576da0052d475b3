package app

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/guardianhealth/medmaintain/internal/accounts"
	"github.com/guardianhealth/medmaintain/internal/cloudsdk"
	"github.com/guardianhealth/medmaintain/internal/config"
	"github.com/guardianhealth/medmaintain/internal/connmon"
	"github.com/guardianhealth/medmaintain/internal/controlplane"
	"github.com/guardianhealth/medmaintain/internal/db"
	"github.com/guardianhealth/medmaintain/internal/persist"
	"github.com/guardianhealth/medmaintain/internal/store"
	"github.com/guardianhealth/medmaintain/internal/syncer"
)

const shutdownTimeout = 5 * time.Second

// App assembles the daemon: durable store, cloud SDK, connectivity
// monitor, sync engine and the control plane server.
type App struct {
	config    *config.Config
	store     *store.Store
	persister *persist.Persister
	sdk       *cloudsdk.CloudSDK
	monitor   *connmon.Monitor
	engine    *syncer.Engine
	accounts  *accounts.Service
	ctrl      *controlplane.Server

	saveCh chan *store.Snapshot
}

func New(cfg *config.Config) (*App, error) {
	// the coalesced save loop is the only writer; one connection avoids
	// SQLITE_BUSY contention between saves and the final shutdown write
	sqliteDB, err := db.NewSqliteDb(db.WithPath(cfg.DBPath), db.WithMaxOpenConns(1))
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	persister, err := persist.New(sqliteDB)
	if err != nil {
		return nil, fmt.Errorf("init persister: %w", err)
	}

	st := store.New()

	snap, err := persister.Load()
	if err != nil {
		return nil, fmt.Errorf("load snapshot: %w", err)
	}
	if snap == nil {
		slog.Info("first run, seeding demo data")
		snap = store.SeedSnapshot()
	}
	st.Restore(snap)

	sdk := cloudsdk.New()
	settings := st.Settings()
	sdk.Configure(settings.CloudAPIURL, settings.CloudAPIKey)

	var engine *syncer.Engine
	monitor := connmon.New(sdk.Health, st.Settings, connmon.WithOnOnline(func() {
		engine.TriggerAutoSync()
	}))
	engine = syncer.New(st, sdk, monitor)

	acct := accounts.NewService(st)

	ctrl, err := controlplane.NewServer(
		&controlplane.Config{
			Addr:      cfg.Addr,
			AuthToken: cfg.AuthToken,
		},
		&controlplane.Deps{
			Store:     st,
			Engine:    engine,
			Monitor:   monitor,
			SDK:       sdk,
			Persister: persister,
			Accounts:  acct,
		},
	)
	if err != nil {
		return nil, fmt.Errorf("init control plane: %w", err)
	}

	app := &App{
		config:    cfg,
		store:     st,
		persister: persister,
		sdk:       sdk,
		monitor:   monitor,
		engine:    engine,
		accounts:  acct,
		ctrl:      ctrl,
		saveCh:    make(chan *store.Snapshot, 1),
	}

	st.SetOnChange(app.enqueueSave)
	return app, nil
}

// Start runs the daemon until ctx is cancelled.
func (a *App) Start(ctx context.Context) error {
	slog.Info("medmaintain start", "addr", a.config.Addr, "db", a.config.DBPath)

	a.engine.Start(ctx)
	a.monitor.Start(ctx)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return a.ctrl.Start(gctx)
	})

	g.Go(func() error {
		a.saveLoop(gctx)
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()

		stopCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return a.ctrl.Stop(stopCtx)
	})

	err := g.Wait()

	a.engine.Wait()
	a.monitor.Wait()
	a.sdk.Close()

	// final snapshot so marker changes from the last cycle survive
	if saveErr := a.persister.Save(a.store.Snapshot()); saveErr != nil {
		slog.Error("final snapshot", "error", saveErr)
	}

	slog.Info("medmaintain stop")
	return err
}

// enqueueSave is the store's durability hook. Latest-wins: a queued
// snapshot still waiting is replaced rather than piled up.
func (a *App) enqueueSave(snap *store.Snapshot) {
	for {
		select {
		case a.saveCh <- snap:
			return
		default:
			select {
			case <-a.saveCh:
			default:
			}
		}
	}
}

func (a *App) saveLoop(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case snap := <-a.saveCh:
			if err := a.persister.Save(snap); err != nil {
				slog.Error("save snapshot", "error", err)
			}
		}
	}
}
