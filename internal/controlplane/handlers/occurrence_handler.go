package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/guardianhealth/medmaintain/internal/model"
	"github.com/guardianhealth/medmaintain/internal/store"
	"github.com/guardianhealth/medmaintain/internal/syncer"
)

// OccurrenceHandler manages incident reports and their status ladder.
type OccurrenceHandler struct {
	store  *store.Store
	engine *syncer.Engine
}

func NewOccurrenceHandler(st *store.Store, engine *syncer.Engine) *OccurrenceHandler {
	return &OccurrenceHandler{store: st, engine: engine}
}

func (h *OccurrenceHandler) List(c *gin.Context) {
	c.PureJSON(http.StatusOK, h.store.Occurrences())
}

func (h *OccurrenceHandler) Create(c *gin.Context) {
	var occ model.Occurrence
	if err := c.ShouldBindJSON(&occ); err != nil {
		AbortWithError(c, http.StatusBadRequest, ErrCodeBadRequest, err)
		return
	}

	created, err := h.store.AddOccurrence(occ)
	if err != nil {
		AbortWithError(c, http.StatusInternalServerError, ErrCodeUnknownError, err)
		return
	}

	h.engine.TriggerAutoSync()
	c.PureJSON(http.StatusCreated, created)
}

// Advance moves an occurrence one step along Reported -> To Do -> Done ->
// Closed.
func (h *OccurrenceHandler) Advance(c *gin.Context) {
	id := c.Param("id")

	occ, err := h.store.AdvanceOccurrence(id)
	if errors.Is(err, store.ErrNotFound) {
		AbortWithError(c, http.StatusNotFound, ErrCodeNotFound, err)
		return
	}
	if err != nil {
		AbortWithError(c, http.StatusInternalServerError, ErrCodeUnknownError, err)
		return
	}

	h.engine.TriggerAutoSync()
	c.PureJSON(http.StatusOK, occ)
}
