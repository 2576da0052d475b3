package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/guardianhealth/medmaintain/internal/model"
	"github.com/guardianhealth/medmaintain/internal/store"
	"github.com/guardianhealth/medmaintain/internal/syncer"
)

type CompleteTaskRequest struct {
	Notes string `json:"notes"`
}

// TaskHandler manages scheduled work orders.
type TaskHandler struct {
	store  *store.Store
	engine *syncer.Engine
}

func NewTaskHandler(st *store.Store, engine *syncer.Engine) *TaskHandler {
	return &TaskHandler{store: st, engine: engine}
}

func (h *TaskHandler) List(c *gin.Context) {
	c.PureJSON(http.StatusOK, h.store.Tasks())
}

func (h *TaskHandler) Schedule(c *gin.Context) {
	var task model.MaintenanceTask
	if err := c.ShouldBindJSON(&task); err != nil {
		AbortWithError(c, http.StatusBadRequest, ErrCodeBadRequest, err)
		return
	}

	created, err := h.store.ScheduleTask(task)
	if err != nil {
		AbortWithError(c, http.StatusInternalServerError, ErrCodeUnknownError, err)
		return
	}

	h.engine.TriggerAutoSync()
	c.PureJSON(http.StatusCreated, created)
}

// Complete closes a work order. The linked equipment flips back to
// Operational with a fresh maintenance stamp.
func (h *TaskHandler) Complete(c *gin.Context) {
	id := c.Param("id")

	var req CompleteTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, http.StatusBadRequest, ErrCodeBadRequest, err)
		return
	}

	task, err := h.store.CompleteTask(id, req.Notes)
	if errors.Is(err, store.ErrNotFound) {
		AbortWithError(c, http.StatusNotFound, ErrCodeNotFound, err)
		return
	}
	if err != nil {
		AbortWithError(c, http.StatusInternalServerError, ErrCodeUnknownError, err)
		return
	}

	h.engine.TriggerAutoSync()
	c.PureJSON(http.StatusOK, task)
}
