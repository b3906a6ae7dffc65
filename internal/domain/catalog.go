package domain

import (
	"time"

	"github.com/google/uuid"
)

// Category groups products in the catalog (e.g. "Celulares", "Heladeras").
type Category struct {
	ID          uuid.UUID `json:"id" db:"id"`
	Name        string    `json:"name" db:"name"`
	Description string    `json:"description" db:"description"`
	Icon        string    `json:"icon" db:"icon"`
	Active      bool      `json:"active" db:"active"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" db:"updated_at"`
}

// Product represents a catalog entry. BasePrice is the supplier cost the
// quotation markup is applied to, not the sale price.
type Product struct {
	ID             uuid.UUID `json:"id" db:"id"`
	CategoryID     uuid.UUID `json:"category_id" db:"category_id"`
	Brand          string    `json:"brand" db:"brand"`
	Model          string    `json:"model" db:"model"`
	Description    string    `json:"description" db:"description"`
	BasePrice      float64   `json:"base_price" db:"base_price"`
	ImageURL       string    `json:"image_url" db:"image_url"`
	StockQuantity  int       `json:"stock_quantity" db:"stock_quantity"`
	StockAvailable bool      `json:"stock_available" db:"stock_available"`
	Active         bool      `json:"active" db:"active"`
	CreatedAt      time.Time `json:"created_at" db:"created_at"`
	UpdatedAt      time.Time `json:"updated_at" db:"updated_at"`
}
