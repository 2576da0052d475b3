package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/guardianhealth/medmaintain/internal/cloudsdk"
	"github.com/guardianhealth/medmaintain/internal/connmon"
	"github.com/guardianhealth/medmaintain/internal/model"
	"github.com/guardianhealth/medmaintain/internal/store"
	"github.com/guardianhealth/medmaintain/internal/syncer"
	"github.com/guardianhealth/medmaintain/internal/utils"
)

// SettingsHandler manages system settings. Cloud settings changes are
// applied to the SDK and the connectivity monitor immediately.
type SettingsHandler struct {
	store   *store.Store
	sdk     *cloudsdk.CloudSDK
	monitor *connmon.Monitor
	engine  *syncer.Engine
}

func NewSettingsHandler(st *store.Store, sdk *cloudsdk.CloudSDK, monitor *connmon.Monitor, engine *syncer.Engine) *SettingsHandler {
	return &SettingsHandler{
		store:   st,
		sdk:     sdk,
		monitor: monitor,
		engine:  engine,
	}
}

func (h *SettingsHandler) Get(c *gin.Context) {
	c.PureJSON(http.StatusOK, h.store.Settings())
}

func (h *SettingsHandler) Update(c *gin.Context) {
	var settings model.SystemSettings
	if err := c.ShouldBindJSON(&settings); err != nil {
		AbortWithError(c, http.StatusBadRequest, ErrCodeBadRequest, err)
		return
	}

	h.store.SetSettings(settings)
	h.sdk.Configure(settings.CloudAPIURL, settings.CloudAPIKey)
	h.monitor.Recheck()
	slog.Info("settings updated",
		"cloudUrl", settings.CloudAPIURL,
		"cloudKey", utils.MaskSecret(settings.CloudAPIKey),
		"cloudEnabled", settings.CloudEnabled)

	// a newly configured or re-enabled cloud may have records waiting
	if settings.CloudSyncActive() {
		h.engine.TriggerAutoSync()
	}

	c.PureJSON(http.StatusOK, settings)
}
