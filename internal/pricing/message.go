package pricing

import (
	"strings"

	"hogar-conectado/internal/money"
)

// QuoteInput carries the product identity fields of a quotation. Detail is
// optional; when blank its line is omitted from the rendered message.
type QuoteInput struct {
	Category string
	Brand    string
	Model    string
	Detail   string
}

// StockInquiryInput carries the identity fields of a stock availability
// inquiry. ProductID is present only when the entry was resolved from the
// catalog rather than typed free-form.
type StockInquiryInput struct {
	ProductID string
	Category  string
	Brand     string
	Model     string
}

// BuildQuoteMessage renders the WhatsApp/Instagram quotation text. The line
// order and wording are a user-facing contract: recipients read these
// messages, so the output is byte-for-byte deterministic for equal inputs.
func BuildQuoteMessage(input QuoteInput, quote Quote, formatter *money.Formatter) string {
	var b strings.Builder

	b.WriteString("🏠 *Hogar Conectado* \n\n")
	b.WriteString("*Cotización*\n")
	b.WriteString("📦 " + strings.ToUpper(input.Category) + "\n")
	b.WriteString("🏷️ " + strings.ToUpper(input.Brand) + " - " + strings.ToUpper(input.Model) + "\n")
	if detail := strings.TrimSpace(input.Detail); detail != "" {
		b.WriteString("✏️ " + strings.ToUpper(detail) + "\n")
	}
	b.WriteString("\n")
	b.WriteString("💰 *Precios:*\n")
	b.WriteString("💵 Contado: *" + formatter.Format(quote.Cash) + "*\n")
	b.WriteString("🗓️ 3 Cuotas: *" + formatter.Format(quote.ThreeInstallmentUnit) + "* c/u\n")
	b.WriteString("🗓️ 6 Cuotas: *" + formatter.Format(quote.SixInstallmentUnit) + "* c/u\n")
	b.WriteString("\n")
	b.WriteString("📞 ¡Consultá por stock y disponibilidad!")

	return b.String()
}

// BuildStockInquiryMessage renders the plain-text stock availability inquiry.
// The ID line appears only for catalog-resolved products.
func BuildStockInquiryMessage(input StockInquiryInput) string {
	var b strings.Builder

	b.WriteString("Me confirmas si hay stock de:\n")
	if input.ProductID != "" {
		b.WriteString("🆔 ID: " + input.ProductID + "\n")
	}
	b.WriteString("📦 Categoría: " + input.Category + "\n")
	b.WriteString("🏷️ Marca: " + input.Brand + "\n")
	b.WriteString("📱 Modelo: " + input.Model)

	return b.String()
}
