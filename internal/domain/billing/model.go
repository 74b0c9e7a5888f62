package billing

import (
	"time"

	"github.com/google/uuid"

	"github.com/clinicore/hms/internal/platform/docprint"
)

// Invoice statuses.
const (
	StatusOpen = "open"
	StatusPaid = "paid"
)

// PaymentMethods is the closed set of accepted payment methods.
var PaymentMethods = []string{"cash", "bank", "card", "mobile-money", "insurance"}

var validPaymentMethods = map[string]bool{
	"cash": true, "bank": true, "card": true, "mobile-money": true, "insurance": true,
}

// ValidPaymentMethod reports whether the method is one of the accepted set.
func ValidPaymentMethod(m string) bool { return validPaymentMethods[m] }

// Invoice maps to the invoice table.
type Invoice struct {
	ID            uuid.UUID  `db:"id" json:"id"`
	InvoiceNo     string     `db:"invoice_no" json:"invoice_no"`
	PatientID     uuid.UUID  `db:"patient_id" json:"patient_id"`
	Status        string     `db:"status" json:"status"`
	PaymentMethod *string    `db:"payment_method" json:"payment_method,omitempty"`
	PaymentRef    *string    `db:"payment_ref" json:"payment_ref,omitempty"`
	PaidAt        *time.Time `db:"paid_at" json:"paid_at,omitempty"`
	CreatedAt     time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt     time.Time  `db:"updated_at" json:"updated_at"`
}

// LineItem maps to the invoice_line_item table. Total is entered by the
// billing clerk and stored as supplied. ServiceDate is set by the service
// when the charge is entered; client-supplied values are discarded.
type LineItem struct {
	ID          uuid.UUID `db:"id" json:"id"`
	InvoiceID   uuid.UUID `db:"invoice_id" json:"invoice_id"`
	Sequence    int       `db:"sequence" json:"sequence"`
	Description string    `db:"description" json:"description"`
	Quantity    float64   `db:"quantity" json:"quantity"`
	UnitPrice   float64   `db:"unit_price" json:"unit_price"`
	Total       float64   `db:"total" json:"total"`
	ServiceDate time.Time `db:"service_date" json:"service_date"`
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// ToPrint converts the invoice and its line items into the billing payload
// used by the printable service bill.
func (inv *Invoice) ToPrint(items []*LineItem) docprint.Bill {
	bill := docprint.Bill{
		InvoiceNo:     inv.InvoiceNo,
		PaymentMethod: deref(inv.PaymentMethod),
		PaymentRef:    deref(inv.PaymentRef),
	}
	for _, li := range items {
		bill.Items = append(bill.Items, docprint.LineItem{
			Description: li.Description,
			Quantity:    li.Quantity,
			UnitPrice:   li.UnitPrice,
			Total:       li.Total,
			Date:        li.ServiceDate,
		})
	}
	return bill
}
