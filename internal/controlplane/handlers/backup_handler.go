package handlers

import (
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/guardianhealth/medmaintain/internal/backup"
	"github.com/guardianhealth/medmaintain/internal/store"
	"github.com/guardianhealth/medmaintain/internal/syncer"
)

// BackupHandler exports and imports versioned JSON backups. Backups are a
// separate concern from the durable snapshot; they travel between
// installations.
type BackupHandler struct {
	store  *store.Store
	engine *syncer.Engine
}

func NewBackupHandler(st *store.Store, engine *syncer.Engine) *BackupHandler {
	return &BackupHandler{store: st, engine: engine}
}

func (h *BackupHandler) Export(c *gin.Context) {
	env := backup.Export(h.store.Snapshot())

	data, err := env.Marshal()
	if err != nil {
		AbortWithError(c, http.StatusInternalServerError, ErrCodeUnknownError, err)
		return
	}

	filename := fmt.Sprintf("medmaintain-backup-%s.json", time.Now().UTC().Format("2006-01-02"))
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, "application/json", data)
}

// Import replaces collections and settings from an uploaded envelope. The
// local user table is kept; unmarked records come back Pending.
func (h *BackupHandler) Import(c *gin.Context) {
	data, err := io.ReadAll(c.Request.Body)
	if err != nil {
		AbortWithError(c, http.StatusBadRequest, ErrCodeBadRequest, err)
		return
	}

	env, err := backup.Parse(data)
	if err != nil {
		AbortWithError(c, http.StatusBadRequest, ErrCodeInvalidBackup, err)
		return
	}

	backup.Apply(env, h.store)
	h.engine.TriggerAutoSync()

	c.PureJSON(http.StatusOK, &ControlPlaneResponse{Code: CodeOk})
}
