package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/guardianhealth/medmaintain/internal/connmon"
	"github.com/guardianhealth/medmaintain/internal/store"
	"github.com/guardianhealth/medmaintain/internal/syncer"
	"github.com/guardianhealth/medmaintain/internal/version"
)

type StatusResponse struct {
	Status          string         `json:"status"`
	Timestamp       string         `json:"timestamp"`
	Version         string         `json:"version"`
	Revision        string         `json:"revision"`
	BuildDate       string         `json:"buildDate"`
	HospitalName    string         `json:"hospitalName"`
	CloudConfigured bool           `json:"cloudConfigured"`
	PendingCount    int            `json:"pendingCount"`
	Syncing         bool           `json:"syncing"`
	Connectivity    connmon.Status `json:"connectivity"`
}

// StatusHandler reports daemon health and sync state in one shot.
type StatusHandler struct {
	store   *store.Store
	engine  *syncer.Engine
	monitor *connmon.Monitor
}

func NewStatusHandler(st *store.Store, engine *syncer.Engine, monitor *connmon.Monitor) *StatusHandler {
	return &StatusHandler{
		store:   st,
		engine:  engine,
		monitor: monitor,
	}
}

func (h *StatusHandler) Status(c *gin.Context) {
	settings := h.store.Settings()

	c.PureJSON(http.StatusOK, &StatusResponse{
		Status:          "ok",
		Timestamp:       time.Now().UTC().Format(time.RFC3339),
		Version:         version.Version,
		Revision:        version.Revision,
		BuildDate:       version.BuildDate,
		HospitalName:    settings.HospitalName,
		CloudConfigured: settings.CloudConfigured(),
		PendingCount:    h.store.PendingCount(),
		Syncing:         h.engine.IsSyncing(),
		Connectivity:    h.monitor.Status(),
	})
}
