package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/guardianhealth/medmaintain/internal/accounts"
	"github.com/guardianhealth/medmaintain/internal/cloudsdk"
	"github.com/guardianhealth/medmaintain/internal/connmon"
	"github.com/guardianhealth/medmaintain/internal/persist"
	"github.com/guardianhealth/medmaintain/internal/store"
)

// ResetConfirmPhrase must be typed verbatim to authorize a system reset.
const ResetConfirmPhrase = "ERASE ALL DATA"

type ResetRequest struct {
	Confirm string `json:"confirm"`
}

// SystemHandler owns destructive maintenance operations.
type SystemHandler struct {
	store    *store.Store
	persist  *persist.Persister
	accounts *accounts.Service
	sdk      *cloudsdk.CloudSDK
	monitor  *connmon.Monitor
}

func NewSystemHandler(st *store.Store, p *persist.Persister, acct *accounts.Service, sdk *cloudsdk.CloudSDK, monitor *connmon.Monitor) *SystemHandler {
	return &SystemHandler{
		store:    st,
		persist:  p,
		accounts: acct,
		sdk:      sdk,
		monitor:  monitor,
	}
}

// Reset wipes all collections, settings and sessions back to factory
// state. The confirmation phrase must match exactly; anything else is a
// rejected no-op.
func (h *SystemHandler) Reset(c *gin.Context) {
	var req ResetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, http.StatusBadRequest, ErrCodeBadRequest, err)
		return
	}

	if req.Confirm != ResetConfirmPhrase {
		AbortWithError(c, http.StatusPreconditionFailed, ErrCodeConfirmMismatch,
			errors.New("confirmation phrase does not match"))
		return
	}

	if err := h.persist.Clear(); err != nil {
		AbortWithError(c, http.StatusInternalServerError, ErrCodeUnknownError, err)
		return
	}

	h.store.Reset()
	h.accounts.Revoke()

	settings := h.store.Settings()
	h.sdk.Configure(settings.CloudAPIURL, settings.CloudAPIKey)
	h.monitor.Recheck()

	c.PureJSON(http.StatusOK, &ControlPlaneResponse{Code: CodeOk})
}
