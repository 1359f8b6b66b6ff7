package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sjperalta/kost-listrik-api/internal/models"
	"github.com/sjperalta/kost-listrik-api/internal/services"
)

type BackupHandler struct {
	backupService *services.BackupService
}

func NewBackupHandler(backupService *services.BackupService) *BackupHandler {
	return &BackupHandler{backupService: backupService}
}

// @Summary Create Backup
// @Description Writes the current state to a backup file
// @Tags Maintenance
// @Produce json
// @Success 201 {object} services.BackupResult
// @Security BearerAuth
// @Router /backups [post]
func (h *BackupHandler) Create(c *gin.Context) {
	result, err := h.backupService.Backup(c.Request.Context(), "manual")
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, result)
}

// @Summary Import Snapshot
// @Description Replaces all rooms, readings, payments and credits with an exported snapshot
// @Tags Maintenance
// @Accept json
// @Produce json
// @Param request body models.Export true "Snapshot in browser storage layout"
// @Success 200 {object} services.ImportResult
// @Failure 422 {object} map[string]string
// @Security BearerAuth
// @Router /import [post]
func (h *BackupHandler) Import(c *gin.Context) {
	var export models.Export
	if err := c.ShouldBindJSON(&export); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "format snapshot tidak valid"})
		return
	}

	result, err := h.backupService.Import(c.Request.Context(), export)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}
