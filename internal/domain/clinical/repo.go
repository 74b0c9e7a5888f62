package clinical

import (
	"context"

	"github.com/google/uuid"
)

type Repository interface {
	Create(ctx context.Context, e *Event) error
	GetByID(ctx context.Context, id uuid.UUID) (*Event, error)
	Update(ctx context.Context, e *Event) error
	Finalize(ctx context.Context, id, by uuid.UUID) error
	ListByPatient(ctx context.Context, patientID uuid.UUID, limit, offset int) ([]*Event, int, error)
	AddPrescriptionItem(ctx context.Context, item *PrescriptionItem) error
	GetPrescriptionItems(ctx context.Context, eventID uuid.UUID) ([]*PrescriptionItem, error)
}
