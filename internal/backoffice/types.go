// Package backoffice holds the admin-managed entity types persisted by the
// synchronization layer: accounts, suppliers, invoices, purchase orders,
// payment methods, email templates and marketing records.
package backoffice

import (
	"time"

	"github.com/shopspring/decimal"
)

// Role is a user's access level.
type Role string

const (
	RoleCustomer Role = "customer"
	RoleAdmin    Role = "admin"
)

// User is a customer or staff account.
type User struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Role      Role      `json:"role"`
	Phone     string    `json:"phone,omitempty"`
	Address   string    `json:"address,omitempty"`
	CreatedAt time.Time `json:"createdAt,omitempty"`
}

// IsAdmin reports whether u may use the back-office.
func (u User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// Supplier fulfils purchase orders and drop-shipped lines.
type Supplier struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Email       string `json:"email,omitempty"`
	Phone       string `json:"phone,omitempty"`
	ContactName string `json:"contactName,omitempty"`
	Dropship    bool   `json:"dropshipping,omitempty"`
}

// InvoiceStatus is the payment state of an invoice.
type InvoiceStatus string

const (
	InvoiceUnpaid InvoiceStatus = "Impayée"
	InvoicePaid   InvoiceStatus = "Payée"
)

// Invoice is issued for a placed order.
type Invoice struct {
	ID      string          `json:"id"`
	OrderID string          `json:"orderId"`
	Date    time.Time       `json:"date"`
	Amount  decimal.Decimal `json:"amount"`
	Status  InvoiceStatus   `json:"status"`
}

// PurchaseOrderLine is one product ordered from a supplier.
type PurchaseOrderLine struct {
	ProductID string          `json:"productId"`
	Name      string          `json:"name"`
	Quantity  int             `json:"quantity"`
	UnitCost  decimal.Decimal `json:"unitCost"`
}

// PurchaseOrder restocks products from a supplier.
type PurchaseOrder struct {
	ID         string              `json:"id"`
	SupplierID string              `json:"supplierId"`
	Date       time.Time           `json:"date"`
	Lines      []PurchaseOrderLine `json:"items"`
	Status     string              `json:"status"`
}

// Total returns the sum of line costs.
func (po PurchaseOrder) Total() decimal.Decimal {
	total := decimal.Zero
	for _, l := range po.Lines {
		total = total.Add(l.UnitCost.Mul(decimal.NewFromInt(int64(l.Quantity))))
	}
	return total
}

// PaymentMethod is a payment option offered at checkout.
type PaymentMethod struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Enabled bool   `json:"enabled"`
}

// EmailTemplate is a transactional email body keyed by event.
type EmailTemplate struct {
	ID      string `json:"id"`
	Event   string `json:"event"`
	Subject string `json:"subject"`
	Body    string `json:"body"`
}

// Campaign is a marketing campaign.
type Campaign struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Channel   string    `json:"channel"`
	Status    string    `json:"status"`
	StartDate time.Time `json:"startDate,omitempty"`
	EndDate   time.Time `json:"endDate,omitempty"`
}

// Prospect is a lead captured by a campaign or contact form.
type Prospect struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Email      string `json:"email"`
	Source     string `json:"source,omitempty"`
	CampaignID string `json:"campaignId,omitempty"`
}

// Testimonial is a customer quote shown on the home page.
type Testimonial struct {
	ID     string `json:"id"`
	Author string `json:"author"`
	Text   string `json:"text"`
	Rating int    `json:"rating"`
}
