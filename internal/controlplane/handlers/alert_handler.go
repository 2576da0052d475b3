package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/guardianhealth/medmaintain/internal/model"
	"github.com/guardianhealth/medmaintain/internal/store"
	"github.com/guardianhealth/medmaintain/internal/syncer"
)

// AlertHandler manages maintenance alerts.
type AlertHandler struct {
	store  *store.Store
	engine *syncer.Engine
}

func NewAlertHandler(st *store.Store, engine *syncer.Engine) *AlertHandler {
	return &AlertHandler{store: st, engine: engine}
}

func (h *AlertHandler) List(c *gin.Context) {
	c.PureJSON(http.StatusOK, h.store.Alerts())
}

func (h *AlertHandler) Create(c *gin.Context) {
	var alert model.Alert
	if err := c.ShouldBindJSON(&alert); err != nil {
		AbortWithError(c, http.StatusBadRequest, ErrCodeBadRequest, err)
		return
	}

	created, err := h.store.AddAlert(alert)
	if err != nil {
		AbortWithError(c, http.StatusInternalServerError, ErrCodeUnknownError, err)
		return
	}

	h.engine.TriggerAutoSync()
	c.PureJSON(http.StatusCreated, created)
}

func (h *AlertHandler) Resolve(c *gin.Context) {
	id := c.Param("id")

	alert, err := h.store.ResolveAlert(id)
	if errors.Is(err, store.ErrNotFound) {
		AbortWithError(c, http.StatusNotFound, ErrCodeNotFound, err)
		return
	}
	if err != nil {
		AbortWithError(c, http.StatusInternalServerError, ErrCodeUnknownError, err)
		return
	}

	h.engine.TriggerAutoSync()
	c.PureJSON(http.StatusOK, alert)
}
