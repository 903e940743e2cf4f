package model

import "time"

type PaymentStatus string

const (
	PaymentStatusCreated  PaymentStatus = "created"  // order exists on the gateway, awaiting checkout
	PaymentStatusVerified PaymentStatus = "verified" // callback signature verified OK
	PaymentStatusFailed   PaymentStatus = "failed"   // verification rejected or explicitly failed
)

// Order is the gateway-side record of an intended payment. It is owned by the
// gateway; this service only references it by its opaque id.
type Order struct {
	ID        string `json:"id"`
	Amount    int64  `json:"amount"` // minor currency units (paise), integer to avoid float errors
	Currency  string `json:"currency"`
	Receipt   string `json:"receipt"`
	Status    string `json:"status,omitempty"`
	CreatedAt int64  `json:"created_at,omitempty"` // gateway epoch seconds
}

// PaymentRecord is the optional local audit trail of an order and its
// verification outcome. The gateway remains the source of truth.
type PaymentRecord struct {
	ID        string // UUID
	OrderID   string // gateway order id
	PaymentID string // gateway payment id, set after verification
	Provider  string // e.g. "razorpay"
	Amount    int64  // minor units
	Currency  string
	Receipt   string
	Status    PaymentStatus
	CreatedAt time.Time
	UpdatedAt time.Time
}

// VerificationResult is binary: a checkout callback is authentic or it is not.
type VerificationResult struct {
	Authentic bool
	Reason    string // set when not authentic
}

// Prefill carries the buyer details shown in the checkout widget.
type Prefill struct {
	Name    string
	Email   string
	Contact string
}

// CheckoutResult is the triple the gateway hands back on a completed checkout.
type CheckoutResult struct {
	OrderID   string
	PaymentID string
	Signature string
}
