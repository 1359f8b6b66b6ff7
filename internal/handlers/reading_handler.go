package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sjperalta/kost-listrik-api/internal/billing"
	"github.com/sjperalta/kost-listrik-api/internal/services"
)

type ReadingHandler struct {
	readingService *services.ReadingService
}

func NewReadingHandler(readingService *services.ReadingService) *ReadingHandler {
	return &ReadingHandler{readingService: readingService}
}

type ReadingRequest struct {
	Month        int      `json:"month"`
	Year         int      `json:"year"`
	StartReading *float64 `json:"startReading"`
	EndReading   *float64 `json:"endReading"`
}

type PreviewRequest struct {
	RoomID       string   `json:"roomId"`
	StartReading *float64 `json:"startReading"`
	EndReading   *float64 `json:"endReading"`
}

// meterValues checks that both meter values were sent
func meterValues(c *gin.Context, start, end *float64) (float64, float64, bool) {
	if start == nil {
		respondInvalid(c, "startReading", "meter awal wajib diisi")
		return 0, 0, false
	}
	if end == nil {
		respondInvalid(c, "endReading", "meter akhir wajib diisi")
		return 0, 0, false
	}
	return *start, *end, true
}

// @Summary Record Reading
// @Description Bills a meter reading at the current tariff, consuming the room's credit
// @Tags Readings
// @Accept json
// @Produce json
// @Param room_id path string true "Room ID"
// @Param request body ReadingRequest true "Reading"
// @Success 201 {object} models.Reading
// @Failure 404 {object} map[string]string
// @Failure 422 {object} map[string]string
// @Security BearerAuth
// @Router /rooms/{room_id}/readings [post]
func (h *ReadingHandler) Create(c *gin.Context) {
	var req ReadingRequest
	if err := BindNestedOrFlat(c, "reading", &req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "format data pembacaan tidak valid"})
		return
	}
	start, end, ok := meterValues(c, req.StartReading, req.EndReading)
	if !ok {
		return
	}

	reading, err := h.readingService.Record(c.Request.Context(), billing.ReadingInput{
		RoomID:       c.Param("room_id"),
		Month:        req.Month,
		Year:         req.Year,
		StartReading: start,
		EndReading:   end,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, reading)
}

// @Summary Preview Reading
// @Description Computes the bill a reading would produce without recording it
// @Tags Readings
// @Accept json
// @Produce json
// @Param request body PreviewRequest true "Reading"
// @Success 200 {object} models.ReadingPreview
// @Failure 404 {object} map[string]string
// @Security BearerAuth
// @Router /readings/preview [post]
func (h *ReadingHandler) Preview(c *gin.Context) {
	var req PreviewRequest
	if err := BindNestedOrFlat(c, "reading", &req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "format data pembacaan tidak valid"})
		return
	}
	start, end, ok := meterValues(c, req.StartReading, req.EndReading)
	if !ok {
		return
	}

	preview, err := h.readingService.Preview(c.Request.Context(), services.PreviewInput{
		RoomID:       req.RoomID,
		StartReading: start,
		EndReading:   end,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, preview)
}

// @Summary Get Reading
// @Description A reading with its payment and bill status
// @Tags Readings
// @Produce json
// @Param reading_id path string true "Reading ID"
// @Success 200 {object} models.HistoryEntry
// @Failure 404 {object} map[string]string
// @Security BearerAuth
// @Router /readings/{reading_id} [get]
func (h *ReadingHandler) Show(c *gin.Context) {
	entry, err := h.readingService.Get(c.Request.Context(), c.Param("reading_id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, entry)
}
