package domain

type OrderStatus string

const (
	OrderCreated OrderStatus = "created"
)

// Order is the gateway-side order minted for a single purchase attempt.
// It lives in the gateway's system of record; nothing is persisted locally.
type Order struct {
	ID       string
	Amount   int64 // minor currency units (paise for INR)
	Currency string
	Receipt  string
	Status   OrderStatus
	LogoID   string
	LogoName string
}

// PaymentConfirmation is what the payment widget hands back after the user
// completes payment. Untrusted until the signature has been verified.
type PaymentConfirmation struct {
	OrderID   string
	PaymentID string
	Signature string
}

// VerificationResult reports whether a confirmation was genuinely issued by
// the gateway for the given order.
type VerificationResult struct {
	Authentic bool
	PaymentID string
}
