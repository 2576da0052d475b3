package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/guardianhealth/medmaintain/internal/store"
	"github.com/guardianhealth/medmaintain/internal/syncer"
)

type SyncStatusResponse struct {
	Syncing      bool           `json:"syncing"`
	PendingCount int            `json:"pendingCount"`
	PendingByCol map[string]int `json:"pendingByCollection"`
}

type SyncRetryResponse struct {
	Retried int `json:"retried"`
}

type SyncHandler struct {
	store  *store.Store
	engine *syncer.Engine
}

func NewSyncHandler(st *store.Store, engine *syncer.Engine) *SyncHandler {
	return &SyncHandler{store: st, engine: engine}
}

func (h *SyncHandler) Status(c *gin.Context) {
	byCol := make(map[string]int, 4)
	for kind, ids := range h.store.PendingByKind() {
		byCol[string(kind)] = ids.Cardinality()
	}

	c.PureJSON(http.StatusOK, &SyncStatusResponse{
		Syncing:      h.engine.IsSyncing(),
		PendingCount: h.store.PendingCount(),
		PendingByCol: byCol,
	})
}

// TriggerSync is the manual sync button. Unlike auto sync, guard failures
// here are reported back to the operator.
func (h *SyncHandler) TriggerSync(c *gin.Context) {
	err := h.engine.TriggerSync()
	switch {
	case errors.Is(err, syncer.ErrOffline):
		AbortWithError(c, http.StatusConflict, ErrCodeOffline, err)
	case errors.Is(err, syncer.ErrSyncAlreadyRunning):
		AbortWithError(c, http.StatusConflict, ErrCodeSyncRunning, err)
	case err != nil:
		AbortWithError(c, http.StatusInternalServerError, ErrCodeUnknownError, err)
	default:
		c.PureJSON(http.StatusOK, gin.H{"status": "sync triggered"})
	}
}

// RetryErrored resets Error records to Pending and kicks a cycle.
func (h *SyncHandler) RetryErrored(c *gin.Context) {
	retried := h.store.RetryErrored()
	if retried > 0 {
		h.engine.TriggerAutoSync()
	}
	c.PureJSON(http.StatusOK, &SyncRetryResponse{Retried: retried})
}
