package domain

import (
	"time"

	"github.com/google/uuid"
)

// Quotation statuses. A quotation starts pending and moves forward (or is
// cancelled) as the staff follows up with the customer.
const (
	QuotationStatusPending   = "pending"
	QuotationStatusSent      = "sent"
	QuotationStatusConfirmed = "confirmed"
	QuotationStatusCancelled = "cancelled"
)

// Payment modes offered in quotations.
const (
	PaymentModeCash             = "cash"
	PaymentModeThreeInstallment = "3-installments"
	PaymentModeSixInstallment   = "6-installments"
)

// ValidQuotationStatus reports whether s is a known quotation status.
func ValidQuotationStatus(s string) bool {
	switch s {
	case QuotationStatusPending, QuotationStatusSent, QuotationStatusConfirmed, QuotationStatusCancelled:
		return true
	}
	return false
}

// ValidPaymentMode reports whether m is a known payment mode.
func ValidPaymentMode(m string) bool {
	switch m {
	case PaymentModeCash, PaymentModeThreeInstallment, PaymentModeSixInstallment:
		return true
	}
	return false
}

// Quotation is a persisted price quote for a customer. The product identity
// and prices are snapshotted at creation time so later catalog edits do not
// rewrite history.
type Quotation struct {
	ID                   uuid.UUID `json:"id" db:"id"`
	ContactName          string    `json:"contact_name" db:"contact_name"`
	ContactPhone         string    `json:"contact_phone" db:"contact_phone"`
	ProductID            uuid.UUID `json:"product_id" db:"product_id"`
	Category             string    `json:"category" db:"category"`
	Brand                string    `json:"brand" db:"brand"`
	Model                string    `json:"model" db:"model"`
	Detail               string    `json:"detail" db:"detail"`
	Quantity             int       `json:"quantity" db:"quantity"`
	BasePrice            float64   `json:"base_price" db:"base_price"`
	MarkupPercent        float64   `json:"markup_percent" db:"markup_percent"`
	CashPrice            float64   `json:"cash_price" db:"cash_price"`
	ThreeInstallmentUnit float64   `json:"three_installment_unit" db:"three_installment_unit"`
	SixInstallmentUnit   float64   `json:"six_installment_unit" db:"six_installment_unit"`
	PaymentMode          string    `json:"payment_mode" db:"payment_mode"`
	Status               string    `json:"status" db:"status"`
	Message              string    `json:"message" db:"message"`
	CreatedAt            time.Time `json:"created_at" db:"created_at"`
	UpdatedAt            time.Time `json:"updated_at" db:"updated_at"`
}
