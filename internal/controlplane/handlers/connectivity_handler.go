package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/guardianhealth/medmaintain/internal/connmon"
)

type SetOnlineRequest struct {
	Online *bool `json:"online" binding:"required"`
}

// ConnectivityHandler exposes the connectivity monitor: the runtime
// online flag and the probe latency telemetry.
type ConnectivityHandler struct {
	monitor *connmon.Monitor
}

func NewConnectivityHandler(monitor *connmon.Monitor) *ConnectivityHandler {
	return &ConnectivityHandler{monitor: monitor}
}

func (h *ConnectivityHandler) Status(c *gin.Context) {
	c.PureJSON(http.StatusOK, h.monitor.Status())
}

// SetOnline delivers the runtime network signal. The host environment
// owns this flag; probes never flip it.
func (h *ConnectivityHandler) SetOnline(c *gin.Context) {
	var req SetOnlineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, http.StatusBadRequest, ErrCodeBadRequest, err)
		return
	}

	h.monitor.SetOnline(*req.Online)
	c.PureJSON(http.StatusOK, h.monitor.Status())
}

func (h *ConnectivityHandler) Latency(c *gin.Context) {
	c.PureJSON(http.StatusOK, h.monitor.Latency())
}
