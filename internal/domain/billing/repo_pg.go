package billing

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type repoPG struct{ pool *pgxpool.Pool }

func NewRepoPG(pool *pgxpool.Pool) Repository { return &repoPG{pool: pool} }

const invoiceCols = `id, invoice_no, patient_id, status, payment_method, payment_ref, paid_at, created_at, updated_at`

func scanInvoice(row pgx.Row) (*Invoice, error) {
	var inv Invoice
	err := row.Scan(&inv.ID, &inv.InvoiceNo, &inv.PatientID, &inv.Status,
		&inv.PaymentMethod, &inv.PaymentRef, &inv.PaidAt, &inv.CreatedAt, &inv.UpdatedAt)
	return &inv, err
}

func (r *repoPG) Create(ctx context.Context, inv *Invoice) error {
	inv.ID = uuid.New()
	_, err := r.pool.Exec(ctx, `
		INSERT INTO invoice (id, invoice_no, patient_id, status)
		VALUES ($1, $2, $3, $4)`,
		inv.ID, inv.InvoiceNo, inv.PatientID, inv.Status)
	return err
}

func (r *repoPG) GetByID(ctx context.Context, id uuid.UUID) (*Invoice, error) {
	return scanInvoice(r.pool.QueryRow(ctx, `SELECT `+invoiceCols+` FROM invoice WHERE id = $1`, id))
}

func (r *repoPG) GetByInvoiceNo(ctx context.Context, invoiceNo string) (*Invoice, error) {
	return scanInvoice(r.pool.QueryRow(ctx, `SELECT `+invoiceCols+` FROM invoice WHERE invoice_no = $1`, invoiceNo))
}

func (r *repoPG) ListByPatient(ctx context.Context, patientID uuid.UUID, limit, offset int) ([]*Invoice, int, error) {
	var total int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM invoice WHERE patient_id = $1`, patientID).Scan(&total); err != nil {
		return nil, 0, err
	}
	rows, err := r.pool.Query(ctx, `SELECT `+invoiceCols+` FROM invoice WHERE patient_id = $1 ORDER BY created_at DESC LIMIT $2 OFFSET $3`,
		patientID, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	var items []*Invoice
	for rows.Next() {
		inv, err := scanInvoice(rows)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, inv)
	}
	return items, total, rows.Err()
}

func (r *repoPG) RecordPayment(ctx context.Context, id uuid.UUID, method, ref string) error {
	_, err := r.pool.Exec(ctx, `
		UPDATE invoice SET status=$2, payment_method=$3, payment_ref=NULLIF($4, ''), paid_at=NOW(), updated_at=NOW()
		WHERE id = $1 AND status = $5`, id, StatusPaid, method, ref, StatusOpen)
	return err
}

func (r *repoPG) AddLineItem(ctx context.Context, li *LineItem) error {
	li.ID = uuid.New()
	_, err := r.pool.Exec(ctx, `
		INSERT INTO invoice_line_item (id, invoice_id, sequence, description, quantity, unit_price, total, service_date)
		VALUES ($1, $2,
			(SELECT COALESCE(MAX(sequence), 0) + 1 FROM invoice_line_item WHERE invoice_id = $2),
			$3, $4, $5, $6, $7)`,
		li.ID, li.InvoiceID, li.Description, li.Quantity, li.UnitPrice, li.Total, li.ServiceDate)
	return err
}

func (r *repoPG) GetLineItems(ctx context.Context, invoiceID uuid.UUID) ([]*LineItem, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, invoice_id, sequence, description, quantity, unit_price, total, service_date
		FROM invoice_line_item WHERE invoice_id = $1 ORDER BY sequence`, invoiceID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []*LineItem
	for rows.Next() {
		var li LineItem
		if err := rows.Scan(&li.ID, &li.InvoiceID, &li.Sequence, &li.Description,
			&li.Quantity, &li.UnitPrice, &li.Total, &li.ServiceDate); err != nil {
			return nil, err
		}
		items = append(items, &li)
	}
	return items, rows.Err()
}

func (r *repoPG) NextInvoiceNo(ctx context.Context) (string, error) {
	var n int64
	if err := r.pool.QueryRow(ctx, `SELECT nextval('invoice_no_seq')`).Scan(&n); err != nil {
		return "", err
	}
	return fmt.Sprintf("INV-%d-%04d", time.Now().Year(), n), nil
}
