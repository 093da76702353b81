package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"logomarket/internal/config"
	"logomarket/internal/domain"
	"logomarket/internal/rate"
	"logomarket/internal/service"
)

type PaymentHandler struct {
	cfg      config.Config
	orders   service.OrderService
	verifier service.Verifier
	limiter  *rate.Limiter
	log      *zap.Logger
}

func NewPaymentHandler(cfg config.Config, orders service.OrderService, verifier service.Verifier, limiter *rate.Limiter, log *zap.Logger) *PaymentHandler {
	return &PaymentHandler{
		cfg:      cfg,
		orders:   orders,
		verifier: verifier,
		limiter:  limiter,
		log:      log,
	}
}

func (h *PaymentHandler) CreateOrder(c *gin.Context) {
	var req createOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid request body"})
		return
	}

	if req.Amount == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Amount is required"})
		return
	}
	if req.LogoID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "logoId is required"})
		return
	}

	if h.limiter != nil {
		retryAfter, allowed, err := h.limiter.AllowOrder(c.Request.Context(), c.ClientIP())
		if err != nil {
			// Limiter store down: let the request through rather than block sales.
			h.log.Warn("rate limiter unavailable", zap.Error(err))
		} else if !allowed {
			c.JSON(http.StatusTooManyRequests, gin.H{
				"success":         false,
				"message":         "Too many order attempts",
				"retry_after_sec": retryAfter,
			})
			return
		}
	}

	order, err := h.orders.CreateOrder(c.Request.Context(), service.CreateOrderInput{
		Amount:   req.Amount,
		Currency: req.Currency,
		LogoID:   req.LogoID,
		LogoName: req.LogoName,
	})
	if err != nil {
		h.writeOrderError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"order": orderPayload{
			ID:       order.ID,
			Amount:   order.Amount,
			Currency: order.Currency,
			Receipt:  order.Receipt,
		},
	})
}

func (h *PaymentHandler) writeOrderError(c *gin.Context, err error) {
	var gatewayErr *service.GatewayError

	switch {
	case errors.Is(err, service.ErrValidation):
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid order request"})
	case errors.Is(err, service.ErrNotConfigured):
		h.log.Error("order creation refused: gateway credentials missing")
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Payment gateway not configured"})
	case errors.As(err, &gatewayErr):
		h.log.Error("gateway order creation failed", zap.Error(gatewayErr.Err))
		body := gin.H{"success": false, "message": "Failed to create order"}
		if h.cfg.DevMode() {
			body["error"] = gatewayErr.Err.Error()
		}
		c.JSON(http.StatusInternalServerError, body)
	default:
		h.log.Error("order creation failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to create order"})
	}
}

func (h *PaymentHandler) VerifyPayment(c *gin.Context) {
	var req verifyPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid request body"})
		return
	}

	if req.OrderID == "" || req.PaymentID == "" || req.Signature == "" {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Missing payment verification data"})
		return
	}

	result, err := h.verifier.VerifyPayment(c.Request.Context(), domain.PaymentConfirmation{
		OrderID:   req.OrderID,
		PaymentID: req.PaymentID,
		Signature: req.Signature,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrValidation):
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Missing payment verification data"})
		case errors.Is(err, service.ErrNotConfigured):
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Payment gateway not configured"})
		default:
			h.log.Error("payment verification failed", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Payment verification failed"})
		}
		return
	}

	if !result.Authentic {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid payment signature"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":    true,
		"message":    "Payment verified successfully",
		"payment_id": result.PaymentID,
	})
}

func (h *PaymentHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"success":             true,
		"message":             "Payment service is running",
		"razorpay_configured": h.cfg.GatewayConfigured(),
	})
}
