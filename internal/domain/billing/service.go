package billing

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/clinicore/hms/internal/domain/patient"
	"github.com/clinicore/hms/internal/platform/docprint"
)

// ErrPaid is returned when a write touches an invoice that has already been
// settled.
var ErrPaid = errors.New("invoice is already paid")

// PatientDirectory is the slice of the patient service billing needs.
type PatientDirectory interface {
	Get(ctx context.Context, id uuid.UUID) (*patient.Patient, error)
}

type Service struct {
	invoices Repository
	patients PatientDirectory
	renderer *docprint.Renderer
}

func NewService(invoices Repository, patients PatientDirectory, renderer *docprint.Renderer) *Service {
	return &Service{invoices: invoices, patients: patients, renderer: renderer}
}

// CreateInvoice opens a new invoice and assigns the next invoice number.
func (s *Service) CreateInvoice(ctx context.Context, inv *Invoice) error {
	if _, err := s.patients.Get(ctx, inv.PatientID); err != nil {
		return fmt.Errorf("patient not found")
	}
	no, err := s.invoices.NextInvoiceNo(ctx)
	if err != nil {
		return fmt.Errorf("assign invoice number: %w", err)
	}
	inv.InvoiceNo = no
	inv.Status = StatusOpen
	return s.invoices.Create(ctx, inv)
}

func (s *Service) GetInvoice(ctx context.Context, id uuid.UUID) (*Invoice, error) {
	return s.invoices.GetByID(ctx, id)
}

func (s *Service) ListByPatient(ctx context.Context, patientID uuid.UUID, limit, offset int) ([]*Invoice, int, error) {
	return s.invoices.ListByPatient(ctx, patientID, limit, offset)
}

// AddLineItem appends a billed service to an open invoice. The line total is
// stored exactly as supplied; it is not derived from quantity and unit price.
// The billed date is stamped here, not taken from the caller, so the bill
// groups charges by the day they were entered.
func (s *Service) AddLineItem(ctx context.Context, invoiceID uuid.UUID, li *LineItem) error {
	inv, err := s.invoices.GetByID(ctx, invoiceID)
	if err != nil {
		return err
	}
	if inv.Status == StatusPaid {
		return ErrPaid
	}
	if li.Description == "" {
		return fmt.Errorf("description is required")
	}
	if li.Quantity == 0 {
		li.Quantity = 1
	}
	li.ServiceDate = time.Now()
	li.InvoiceID = invoiceID
	return s.invoices.AddLineItem(ctx, li)
}

func (s *Service) LineItems(ctx context.Context, invoiceID uuid.UUID) ([]*LineItem, error) {
	return s.invoices.GetLineItems(ctx, invoiceID)
}

// RecordPayment settles an open invoice with one of the accepted payment
// methods and an optional reference code.
func (s *Service) RecordPayment(ctx context.Context, id uuid.UUID, method, ref string) (*Invoice, error) {
	inv, err := s.invoices.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if inv.Status == StatusPaid {
		return nil, ErrPaid
	}
	if !ValidPaymentMethod(method) {
		return nil, fmt.Errorf("invalid payment method: %s", method)
	}
	if err := s.invoices.RecordPayment(ctx, id, method, ref); err != nil {
		return nil, err
	}
	return s.invoices.GetByID(ctx, id)
}

// Summary aggregates the invoice's line items by calendar date.
func (s *Service) Summary(ctx context.Context, invoiceID uuid.UUID) (docprint.BillSummary, error) {
	inv, err := s.invoices.GetByID(ctx, invoiceID)
	if err != nil {
		return docprint.BillSummary{}, err
	}
	items, err := s.invoices.GetLineItems(ctx, inv.ID)
	if err != nil {
		return docprint.BillSummary{}, err
	}
	return docprint.AggregateBilling(inv.ToPrint(items).Items), nil
}

// Document renders the printable service bill and returns the HTML together
// with the export filename.
func (s *Service) Document(ctx context.Context, invoiceID uuid.UUID, generatedBy string, at time.Time) ([]byte, string, error) {
	inv, err := s.invoices.GetByID(ctx, invoiceID)
	if err != nil {
		return nil, "", err
	}
	p, err := s.patients.Get(ctx, inv.PatientID)
	if err != nil {
		return nil, "", err
	}
	items, err := s.invoices.GetLineItems(ctx, inv.ID)
	if err != nil {
		return nil, "", err
	}

	rec := &docprint.Record{
		Patient:     p.ToPrint(),
		Bill:        inv.ToPrint(items),
		GeneratedAt: at,
		GeneratedBy: generatedBy,
	}
	out, err := s.renderer.Render(docprint.KindServiceBill, rec)
	if err != nil {
		return nil, "", err
	}
	return out, docprint.ExportFilename(docprint.KindServiceBill, p.PatientNo, at), nil
}
