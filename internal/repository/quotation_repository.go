package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"hogar-conectado/internal/domain"

	"github.com/google/uuid"
)

var (
	ErrQuotationNotFound = errors.New("quotation not found")
)

// QuotationRepository defines the interface for quotation data access
type QuotationRepository interface {
	Create(ctx context.Context, quotation *domain.Quotation) error
	FindByID(ctx context.Context, id uuid.UUID) (*domain.Quotation, error)
	List(ctx context.Context, status string, page, pageSize int) ([]*domain.Quotation, int, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status string) error
}

type quotationRepository struct {
	db *sql.DB
}

// NewQuotationRepository creates a new instance of QuotationRepository
func NewQuotationRepository(db *sql.DB) QuotationRepository {
	return &quotationRepository{db: db}
}

const quotationColumns = `id, contact_name, contact_phone, product_id, category, brand, model, detail,
	quantity, base_price, markup_percent, cash_price, three_installment_unit, six_installment_unit,
	payment_mode, status, message, created_at, updated_at`

func scanQuotation(row interface{ Scan(...interface{}) error }) (*domain.Quotation, error) {
	quotation := &domain.Quotation{}
	err := row.Scan(
		&quotation.ID,
		&quotation.ContactName,
		&quotation.ContactPhone,
		&quotation.ProductID,
		&quotation.Category,
		&quotation.Brand,
		&quotation.Model,
		&quotation.Detail,
		&quotation.Quantity,
		&quotation.BasePrice,
		&quotation.MarkupPercent,
		&quotation.CashPrice,
		&quotation.ThreeInstallmentUnit,
		&quotation.SixInstallmentUnit,
		&quotation.PaymentMode,
		&quotation.Status,
		&quotation.Message,
		&quotation.CreatedAt,
		&quotation.UpdatedAt,
	)
	return quotation, err
}

// Create inserts a new quotation snapshot using parameterized queries
func (r *quotationRepository) Create(ctx context.Context, quotation *domain.Quotation) error {
	query := `
		INSERT INTO quotations (id, contact_name, contact_phone, product_id, category, brand, model,
			detail, quantity, base_price, markup_percent, cash_price, three_installment_unit,
			six_installment_unit, payment_mode, status, message, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19)
	`

	_, err := r.db.ExecContext(
		ctx,
		query,
		quotation.ID,
		quotation.ContactName,
		quotation.ContactPhone,
		quotation.ProductID,
		quotation.Category,
		quotation.Brand,
		quotation.Model,
		quotation.Detail,
		quotation.Quantity,
		quotation.BasePrice,
		quotation.MarkupPercent,
		quotation.CashPrice,
		quotation.ThreeInstallmentUnit,
		quotation.SixInstallmentUnit,
		quotation.PaymentMode,
		quotation.Status,
		quotation.Message,
		quotation.CreatedAt,
		quotation.UpdatedAt,
	)

	if err != nil {
		return fmt.Errorf("failed to create quotation: %w", err)
	}

	return nil
}

// FindByID retrieves a quotation by ID using parameterized queries
func (r *quotationRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Quotation, error) {
	query := fmt.Sprintf(`SELECT %s FROM quotations WHERE id = $1`, quotationColumns)

	quotation, err := scanQuotation(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrQuotationNotFound
		}
		return nil, fmt.Errorf("failed to find quotation by ID: %w", err)
	}

	return quotation, nil
}

// List retrieves quotations, optionally filtered by status, newest first
func (r *quotationRepository) List(ctx context.Context, status string, page, pageSize int) ([]*domain.Quotation, int, error) {
	whereClause := ""
	args := []interface{}{}
	argIndex := 1

	if status != "" {
		whereClause = fmt.Sprintf("WHERE status = $%d", argIndex)
		args = append(args, status)
		argIndex++
	}

	countQuery := fmt.Sprintf("SELECT COUNT(*) FROM quotations %s", whereClause)
	var total int
	err := r.db.QueryRowContext(ctx, countQuery, args...).Scan(&total)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count quotations: %w", err)
	}

	offset := (page - 1) * pageSize

	query := fmt.Sprintf(`
		SELECT %s
		FROM quotations
		%s
		ORDER BY created_at DESC
		LIMIT $%d OFFSET $%d
	`, quotationColumns, whereClause, argIndex, argIndex+1)

	args = append(args, pageSize, offset)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list quotations: %w", err)
	}
	defer rows.Close()

	quotations := []*domain.Quotation{}
	for rows.Next() {
		quotation, err := scanQuotation(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan quotation: %w", err)
		}
		quotations = append(quotations, quotation)
	}

	if err = rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("error iterating quotations: %w", err)
	}

	return quotations, total, nil
}

// UpdateStatus moves a quotation through its follow-up lifecycle
func (r *quotationRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status string) error {
	query := `
		UPDATE quotations
		SET status = $2, updated_at = NOW()
		WHERE id = $1
	`

	result, err := r.db.ExecContext(ctx, query, id, status)
	if err != nil {
		return fmt.Errorf("failed to update quotation status: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return ErrQuotationNotFound
	}

	return nil
}
