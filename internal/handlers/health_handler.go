package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sjperalta/kost-listrik-api/internal/jobs"
)

type HealthHandler struct {
	worker *jobs.Worker
}

func NewHealthHandler(worker *jobs.Worker) *HealthHandler {
	return &HealthHandler{worker: worker}
}

// @Summary Health Check
// @Description Checks if the API is running
// @Tags Health
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /health [get]
func (h *HealthHandler) Index(c *gin.Context) {
	resp := gin.H{
		"status":  "ok",
		"service": "kost-listrik-api",
		"version": "1.0.0",
	}
	if h.worker != nil {
		resp["worker"] = h.worker.GetStats()
	}
	c.JSON(http.StatusOK, resp)
}
