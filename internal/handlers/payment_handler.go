package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sjperalta/kost-listrik-api/internal/billing"
	"github.com/sjperalta/kost-listrik-api/internal/models"
	"github.com/sjperalta/kost-listrik-api/internal/services"
)

type PaymentHandler struct {
	paymentService *services.PaymentService
	now            func() time.Time
}

func NewPaymentHandler(paymentService *services.PaymentService) *PaymentHandler {
	return &PaymentHandler{paymentService: paymentService, now: time.Now}
}

type PaymentRequest struct {
	PaymentDate string   `json:"paymentDate"`
	AmountPaid  *float64 `json:"amountPaid"`
}

// parse validates the request; a missing date means today
func (h *PaymentHandler) parse(c *gin.Context) (time.Time, float64, bool) {
	var req PaymentRequest
	if err := BindNestedOrFlat(c, "payment", &req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "format data pembayaran tidak valid"})
		return time.Time{}, 0, false
	}
	if req.AmountPaid == nil {
		respondInvalid(c, "amountPaid", "jumlah pembayaran wajib diisi")
		return time.Time{}, 0, false
	}

	if req.PaymentDate == "" {
		return h.now(), *req.AmountPaid, true
	}
	date, err := models.ParsePaymentDate(req.PaymentDate)
	if err != nil {
		respondInvalid(c, "paymentDate", "format tanggal pembayaran harus YYYY-MM-DD")
		return time.Time{}, 0, false
	}
	return date, *req.AmountPaid, true
}

// @Summary Pay Reading
// @Description Records a payment for a reading; any overpayment becomes room credit
// @Tags Payments
// @Accept json
// @Produce json
// @Param reading_id path string true "Reading ID"
// @Param request body PaymentRequest true "Payment"
// @Success 201 {object} billing.PaymentResult
// @Failure 404 {object} map[string]string
// @Failure 422 {object} map[string]string
// @Security BearerAuth
// @Router /readings/{reading_id}/payments [post]
func (h *PaymentHandler) Create(c *gin.Context) {
	date, amount, ok := h.parse(c)
	if !ok {
		return
	}

	resp, err := h.paymentService.Pay(c.Request.Context(), billing.PaymentInput{
		ReadingID:   c.Param("reading_id"),
		PaymentDate: date,
		AmountPaid:  amount,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// @Summary Pay Latest Bill
// @Description Pays the most recent unpaid reading of a room
// @Tags Payments
// @Accept json
// @Produce json
// @Param room_id path string true "Room ID"
// @Param request body PaymentRequest true "Payment"
// @Success 201 {object} billing.PaymentResult
// @Failure 404 {object} map[string]string
// @Failure 422 {object} map[string]string
// @Security BearerAuth
// @Router /rooms/{room_id}/payments [post]
func (h *PaymentHandler) PayLatest(c *gin.Context) {
	date, amount, ok := h.parse(c)
	if !ok {
		return
	}

	resp, err := h.paymentService.PayLatestUnpaid(c.Request.Context(), c.Param("room_id"), date, amount)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}
