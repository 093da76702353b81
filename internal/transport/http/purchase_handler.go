package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"logomarket/internal/domain"
	"logomarket/internal/service"
)

type PurchaseHandler struct {
	sink service.PurchaseSink
	log  *zap.Logger
}

func NewPurchaseHandler(sink service.PurchaseSink, log *zap.Logger) *PurchaseHandler {
	return &PurchaseHandler{sink: sink, log: log}
}

type createPurchaseRequest struct {
	LogoID    string  `json:"logo_id"`
	PaymentID string  `json:"razorpay_payment_id"`
	OrderID   string  `json:"razorpay_order_id"`
	Amount    float64 `json:"amount"`
	Currency  string  `json:"currency"`
}

// Create records a completed purchase. Callers reach this only after the
// verify endpoint accepted the payment signature; a failed write here does
// not revoke the buyer's access, it only leaves a discrepancy for
// reconciliation.
func (h *PurchaseHandler) Create(c *gin.Context) {
	var req createPurchaseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid request body"})
		return
	}
	if req.LogoID == "" || req.PaymentID == "" || req.OrderID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Missing purchase data"})
		return
	}

	rec, err := h.sink.CreatePurchase(c.Request.Context(), domain.PurchaseRecord{
		LogoID:    req.LogoID,
		PaymentID: req.PaymentID,
		OrderID:   req.OrderID,
		Amount:    req.Amount,
		Currency:  req.Currency,
		Status:    domain.PurchaseCompleted,
	})
	if err != nil {
		h.log.Error("purchase record write failed",
			zap.String("order_id", req.OrderID),
			zap.String("payment_id", req.PaymentID),
			zap.Error(err),
		)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to record purchase"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"purchase": gin.H{
			"id":     rec.ID.String(),
			"status": rec.Status,
		},
	})
}
