package billing

import (
	"context"

	"github.com/google/uuid"
)

type Repository interface {
	Create(ctx context.Context, inv *Invoice) error
	GetByID(ctx context.Context, id uuid.UUID) (*Invoice, error)
	GetByInvoiceNo(ctx context.Context, invoiceNo string) (*Invoice, error)
	ListByPatient(ctx context.Context, patientID uuid.UUID, limit, offset int) ([]*Invoice, int, error)
	RecordPayment(ctx context.Context, id uuid.UUID, method, ref string) error
	AddLineItem(ctx context.Context, li *LineItem) error
	GetLineItems(ctx context.Context, invoiceID uuid.UUID) ([]*LineItem, error)
	NextInvoiceNo(ctx context.Context) (string, error)
}
