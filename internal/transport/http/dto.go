package http

import (
	"time"

	"logomarket/internal/domain"
)

type createOrderRequest struct {
	Amount   float64 `json:"amount"`
	Currency string  `json:"currency"`
	LogoID   string  `json:"logoId"`
	LogoName string  `json:"logoName"`
}

type orderPayload struct {
	ID       string `json:"id"`
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
	Receipt  string `json:"receipt"`
}

type verifyPaymentRequest struct {
	OrderID   string `json:"razorpay_order_id"`
	PaymentID string `json:"razorpay_payment_id"`
	Signature string `json:"razorpay_signature"`
	LogoID    string `json:"logoId"`
}

type recordDownloadRequest struct {
	PurchaseID string `json:"purchase_id"`
	LogoID     string `json:"logo_id"`
	Format     string `json:"format"`
}

// catalogItemPayload is the public view of a catalog item. The full format
// URL map stays server-side until the item is unlocked; only the granted
// download links are ever rendered.
type catalogItemPayload struct {
	ID               string                `json:"id"`
	Name             string                `json:"name"`
	Description      string                `json:"description"`
	Price            float64               `json:"price"`
	Currency         string                `json:"currency"`
	AvailableFormats []string              `json:"available_formats"`
	DisplayFormats   []string              `json:"display_formats"`
	TotalBuyClicks   int                   `json:"total_buy_clicks"`
	CreatedAt        time.Time             `json:"created_at"`
	Unlocked         bool                  `json:"unlocked"`
	DownloadLinks    []domain.DownloadLink `json:"download_links,omitempty"`
}
