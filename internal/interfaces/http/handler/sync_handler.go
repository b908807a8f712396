package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	app "github.com/farrdeeen/FastOrderLogic/internal/application/wixsync"
)

type SyncHandler struct {
	svc *app.Service
}

func NewSyncHandler(svc *app.Service) *SyncHandler {
	return &SyncHandler{svc: svc}
}

// Sync pulls the current Wix order page and upserts it. force=1
// reprocesses orders that already exist locally.
func (h *SyncHandler) Sync(c *gin.Context) {
	force := c.Query("force") == "1" || c.Query("force") == "true"

	result, err := h.svc.Sync(c.Request.Context(), force)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, result)
}

// Recover lists remote orders missing locally without writing anything.
func (h *SyncHandler) Recover(c *gin.Context) {
	result, err := h.svc.Recover(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, result)
}

// Reconcile diffs stored orders against the remote recompute. fix=1
// patches drifted fields.
func (h *SyncHandler) Reconcile(c *gin.Context) {
	fix := c.Query("fix") == "1" || c.Query("fix") == "true"

	result, err := h.svc.Reconcile(c.Request.Context(), fix)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, result)
}
