package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sjperalta/kost-listrik-api/internal/services"
)

type TariffHandler struct {
	tariffService *services.TariffService
}

func NewTariffHandler(tariffService *services.TariffService) *TariffHandler {
	return &TariffHandler{tariffService: tariffService}
}

type TariffRequest struct {
	RatePerKwh *float64 `json:"ratePerKwh"`
}

// @Summary Get Tariff
// @Tags Tariff
// @Produce json
// @Success 200 {object} map[string]float64
// @Security BearerAuth
// @Router /tariff [get]
func (h *TariffHandler) Show(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"ratePerKwh": h.tariffService.Get(c.Request.Context())})
}

// @Summary Update Tariff
// @Description Sets the rate per kWh for readings recorded from now on
// @Tags Tariff
// @Accept json
// @Produce json
// @Param request body TariffRequest true "Tariff"
// @Success 200 {object} map[string]float64
// @Failure 422 {object} map[string]string
// @Security BearerAuth
// @Router /tariff [put]
func (h *TariffHandler) Update(c *gin.Context) {
	var req TariffRequest
	if err := BindNestedOrFlat(c, "tariff", &req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "format tarif tidak valid"})
		return
	}
	if req.RatePerKwh == nil {
		respondInvalid(c, "ratePerKwh", "tarif wajib diisi")
		return
	}

	rate, err := h.tariffService.Set(c.Request.Context(), *req.RatePerKwh)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ratePerKwh": rate})
}
