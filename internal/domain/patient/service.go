package patient

import (
	"context"
	"fmt"

	"github.com/google/uuid"
)

type Service struct {
	patients Repository
}

func NewService(patients Repository) *Service {
	return &Service{patients: patients}
}

// Register stores a new patient and assigns the next record number.
func (s *Service) Register(ctx context.Context, p *Patient) error {
	if p.FirstName == "" || p.LastName == "" {
		return fmt.Errorf("first_name and last_name are required")
	}
	no, err := s.patients.NextPatientNo(ctx)
	if err != nil {
		return fmt.Errorf("assign patient number: %w", err)
	}
	p.PatientNo = no
	p.Active = true
	return s.patients.Create(ctx, p)
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Patient, error) {
	return s.patients.GetByID(ctx, id)
}

func (s *Service) GetByPatientNo(ctx context.Context, patientNo string) (*Patient, error) {
	return s.patients.GetByPatientNo(ctx, patientNo)
}

// Update rewrites the demographic fields. The patient number is assigned at
// registration and never changes.
func (s *Service) Update(ctx context.Context, p *Patient) error {
	if p.FirstName == "" || p.LastName == "" {
		return fmt.Errorf("first_name and last_name are required")
	}
	current, err := s.patients.GetByID(ctx, p.ID)
	if err != nil {
		return err
	}
	p.PatientNo = current.PatientNo
	return s.patients.Update(ctx, p)
}

// Deactivate marks the record inactive. Patient rows are never deleted.
func (s *Service) Deactivate(ctx context.Context, id uuid.UUID) error {
	return s.patients.Deactivate(ctx, id)
}

func (s *Service) List(ctx context.Context, query string, limit, offset int) ([]*Patient, int, error) {
	return s.patients.List(ctx, query, limit, offset)
}
