package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sjperalta/kost-listrik-api/internal/services"
)

type RoomHandler struct {
	roomService *services.RoomService
}

func NewRoomHandler(roomService *services.RoomService) *RoomHandler {
	return &RoomHandler{roomService: roomService}
}

type RoomRequest struct {
	Number string `json:"number"`
	Owner  string `json:"owner"`
}

// @Summary List Rooms
// @Description Every room with its latest bill, credit and unpaid flag
// @Tags Rooms
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Security BearerAuth
// @Router /rooms [get]
func (h *RoomHandler) Index(c *gin.Context) {
	rooms := h.roomService.List(c.Request.Context())
	c.JSON(http.StatusOK, gin.H{"rooms": rooms})
}

// @Summary Get Room
// @Description A room with its credit and billing history
// @Tags Rooms
// @Produce json
// @Param room_id path string true "Room ID"
// @Success 200 {object} models.RoomDetail
// @Failure 404 {object} map[string]string
// @Security BearerAuth
// @Router /rooms/{room_id} [get]
func (h *RoomHandler) Show(c *gin.Context) {
	detail, err := h.roomService.Get(c.Request.Context(), c.Param("room_id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, detail)
}

// @Summary Create Room
// @Description Registers a room
// @Tags Rooms
// @Accept json
// @Produce json
// @Param request body RoomRequest true "Room"
// @Success 201 {object} models.Room
// @Failure 422 {object} map[string]string
// @Security BearerAuth
// @Router /rooms [post]
func (h *RoomHandler) Create(c *gin.Context) {
	var req RoomRequest
	if err := BindNestedOrFlat(c, "room", &req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "format data kamar tidak valid"})
		return
	}

	room, err := h.roomService.Create(c.Request.Context(), req.Number, req.Owner)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, room)
}

// @Summary Update Room
// @Description Changes a room's number and owner
// @Tags Rooms
// @Accept json
// @Produce json
// @Param room_id path string true "Room ID"
// @Param request body RoomRequest true "Room"
// @Success 200 {object} models.Room
// @Failure 404 {object} map[string]string
// @Failure 422 {object} map[string]string
// @Security BearerAuth
// @Router /rooms/{room_id} [put]
func (h *RoomHandler) Update(c *gin.Context) {
	var req RoomRequest
	if err := BindNestedOrFlat(c, "room", &req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "format data kamar tidak valid"})
		return
	}

	room, err := h.roomService.Update(c.Request.Context(), c.Param("room_id"), req.Number, req.Owner)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, room)
}

// @Summary Delete Room
// @Description Deletes a room with its readings, payments and credit
// @Tags Rooms
// @Produce json
// @Param room_id path string true "Room ID"
// @Success 200 {object} billing.DeleteResult
// @Failure 404 {object} map[string]string
// @Security BearerAuth
// @Router /rooms/{room_id} [delete]
func (h *RoomHandler) Delete(c *gin.Context) {
	result, err := h.roomService.Delete(c.Request.Context(), c.Param("room_id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// @Summary Room History
// @Description Readings of a room, newest first, with payment status
// @Tags Rooms
// @Produce json
// @Param room_id path string true "Room ID"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} map[string]string
// @Security BearerAuth
// @Router /rooms/{room_id}/history [get]
func (h *RoomHandler) History(c *gin.Context) {
	history, err := h.roomService.History(c.Request.Context(), c.Param("room_id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"history": history})
}

// @Summary Unpaid Readings
// @Description Unpaid readings of a room, newest first
// @Tags Rooms
// @Produce json
// @Param room_id path string true "Room ID"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} map[string]string
// @Security BearerAuth
// @Router /rooms/{room_id}/unpaid [get]
func (h *RoomHandler) Unpaid(c *gin.Context) {
	unpaid, err := h.roomService.Unpaid(c.Request.Context(), c.Param("room_id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"readings": unpaid})
}

// @Summary Next Start Reading
// @Description Meter value the next reading of a room starts from
// @Tags Rooms
// @Produce json
// @Param room_id path string true "Room ID"
// @Success 200 {object} map[string]float64
// @Failure 404 {object} map[string]string
// @Security BearerAuth
// @Router /rooms/{room_id}/next_reading [get]
func (h *RoomHandler) NextReading(c *gin.Context) {
	next, err := h.roomService.NextStartReading(c.Request.Context(), c.Param("room_id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"startReading": next})
}
