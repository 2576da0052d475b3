package handlers

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/guardianhealth/medmaintain/internal/model"
	"github.com/guardianhealth/medmaintain/internal/store"
	"github.com/guardianhealth/medmaintain/internal/syncer"
)

type ImportCSVResponse struct {
	Imported int `json:"imported"`
}

// EquipmentHandler manages the equipment registry. Every mutation leaves
// the record Pending and nudges the sync engine.
type EquipmentHandler struct {
	store  *store.Store
	engine *syncer.Engine
}

func NewEquipmentHandler(st *store.Store, engine *syncer.Engine) *EquipmentHandler {
	return &EquipmentHandler{store: st, engine: engine}
}

func (h *EquipmentHandler) List(c *gin.Context) {
	c.PureJSON(http.StatusOK, h.store.Equipments())
}

func (h *EquipmentHandler) Create(c *gin.Context) {
	var eq model.Equipment
	if err := c.ShouldBindJSON(&eq); err != nil {
		AbortWithError(c, http.StatusBadRequest, ErrCodeBadRequest, err)
		return
	}

	created, err := h.store.AddEquipment(eq)
	if err != nil {
		AbortWithError(c, http.StatusInternalServerError, ErrCodeUnknownError, err)
		return
	}

	h.engine.TriggerAutoSync()
	c.PureJSON(http.StatusCreated, created)
}

// ImportCSV bulk-registers equipments from "name,serial,location" lines.
func (h *EquipmentHandler) ImportCSV(c *gin.Context) {
	data, err := io.ReadAll(c.Request.Body)
	if err != nil {
		AbortWithError(c, http.StatusBadRequest, ErrCodeBadRequest, err)
		return
	}
	if len(data) == 0 {
		AbortWithError(c, http.StatusBadRequest, ErrCodeBadRequest, errors.New("empty csv body"))
		return
	}

	imported, err := h.store.ImportEquipmentsCSV(string(data))
	if err != nil {
		AbortWithError(c, http.StatusInternalServerError, ErrCodeUnknownError, err)
		return
	}

	if imported > 0 {
		h.engine.TriggerAutoSync()
	}
	c.PureJSON(http.StatusOK, &ImportCSVResponse{Imported: imported})
}
