package clinical

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/clinicore/hms/internal/domain/patient"
	"github.com/clinicore/hms/internal/platform/docprint"
)

// ErrFinalized is returned when a write touches a finalized event.
var ErrFinalized = errors.New("clinical event is finalized")

// ErrNotFound is returned when an event id does not resolve to a record.
var ErrNotFound = errors.New("clinical event not found")

// ErrKindMismatch is returned when a document kind is requested for an event
// that cannot produce it.
var ErrKindMismatch = errors.New("document kind not available for this event")

// ErrNotDischarged is returned when a discharge summary is requested for an
// admission that is still open.
var ErrNotDischarged = errors.New("admission has not been discharged")

// PatientDirectory is the slice of the patient service the clinical workflows
// need.
type PatientDirectory interface {
	Get(ctx context.Context, id uuid.UUID) (*patient.Patient, error)
}

type Service struct {
	events   Repository
	patients PatientDirectory
	renderer *docprint.Renderer
}

func NewService(events Repository, patients PatientDirectory, renderer *docprint.Renderer) *Service {
	return &Service{events: events, patients: patients, renderer: renderer}
}

func (s *Service) CreateEvent(ctx context.Context, e *Event) error {
	if !e.Kind.Valid() {
		return fmt.Errorf("invalid event kind: %s", e.Kind)
	}
	if e.AttendingStaff == "" {
		return fmt.Errorf("attending_staff is required")
	}
	if _, err := s.patients.Get(ctx, e.PatientID); err != nil {
		return fmt.Errorf("patient not found")
	}
	if e.Date.IsZero() {
		e.Date = time.Now()
	}
	if e.Kind == KindAdmission && e.AdmissionDate == nil {
		d := e.Date
		e.AdmissionDate = &d
	}
	return s.events.Create(ctx, e)
}

func (s *Service) GetEvent(ctx context.Context, id uuid.UUID) (*Event, error) {
	return s.events.GetByID(ctx, id)
}

func (s *Service) ListByPatient(ctx context.Context, patientID uuid.UUID, limit, offset int) ([]*Event, int, error) {
	return s.events.ListByPatient(ctx, patientID, limit, offset)
}

// UpdateEvent rewrites the clinical sections. The kind and patient binding are
// fixed at creation; a finalized event rejects all updates.
func (s *Service) UpdateEvent(ctx context.Context, e *Event) error {
	current, err := s.events.GetByID(ctx, e.ID)
	if err != nil {
		return err
	}
	if current.Finalized {
		return ErrFinalized
	}
	e.Kind = current.Kind
	e.PatientID = current.PatientID
	if e.AttendingStaff == "" {
		return fmt.Errorf("attending_staff is required")
	}
	return s.events.Update(ctx, e)
}

// DischargeDetails carries the fields recorded when an admission closes.
type DischargeDetails struct {
	DischargeDate         *time.Time `json:"discharge_date,omitempty"`
	OtherConditions       *string    `json:"other_conditions,omitempty"`
	DischargeDrugs        *string    `json:"discharge_drugs,omitempty"`
	DischargeInstructions *string    `json:"discharge_instructions,omitempty"`
	FollowUp              *string    `json:"follow_up,omitempty"`
}

// Discharge records discharge details on an admission.
func (s *Service) Discharge(ctx context.Context, id uuid.UUID, d DischargeDetails) (*Event, error) {
	e, err := s.events.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if e.Kind != KindAdmission {
		return nil, fmt.Errorf("only admissions can be discharged")
	}
	if e.Finalized {
		return nil, ErrFinalized
	}
	if d.DischargeDate != nil {
		e.DischargeDate = d.DischargeDate
	} else if e.DischargeDate == nil {
		now := time.Now()
		e.DischargeDate = &now
	}
	if d.OtherConditions != nil {
		e.OtherConditions = d.OtherConditions
	}
	if d.DischargeDrugs != nil {
		e.DischargeDrugs = d.DischargeDrugs
	}
	if d.DischargeInstructions != nil {
		e.DischargeInstructions = d.DischargeInstructions
	}
	if d.FollowUp != nil {
		e.FollowUp = d.FollowUp
	}
	if err := s.events.Update(ctx, e); err != nil {
		return nil, err
	}
	return e, nil
}

// Finalize freezes the event. Finalizing an already-finalized event is a
// no-op.
func (s *Service) Finalize(ctx context.Context, id, by uuid.UUID) error {
	e, err := s.events.GetByID(ctx, id)
	if err != nil {
		return ErrNotFound
	}
	if e.Finalized {
		return nil
	}
	return s.events.Finalize(ctx, id, by)
}

func (s *Service) AddPrescriptionItem(ctx context.Context, eventID uuid.UUID, item *PrescriptionItem) error {
	e, err := s.events.GetByID(ctx, eventID)
	if err != nil {
		return err
	}
	if e.Finalized {
		return ErrFinalized
	}
	if e.Kind != KindConsultation && e.Kind != KindAdmission {
		return fmt.Errorf("prescriptions belong to consultations and admissions")
	}
	if item.Drug == "" {
		return fmt.Errorf("drug is required")
	}
	item.EventID = eventID
	return s.events.AddPrescriptionItem(ctx, item)
}

func (s *Service) PrescriptionItems(ctx context.Context, eventID uuid.UUID) ([]*PrescriptionItem, error) {
	return s.events.GetPrescriptionItems(ctx, eventID)
}

// documentKinds maps each event kind to the documents it can produce.
var documentKinds = map[EventKind][]docprint.Kind{
	KindConsultation:  {docprint.KindClinicalSummary, docprint.KindPrescription},
	KindAdmission:     {docprint.KindClinicalSummary, docprint.KindDischargeSummary, docprint.KindPrescription},
	KindReferral:      {docprint.KindReferral},
	KindMedicalReport: {docprint.KindMedicalReport},
}

func kindAllowed(e EventKind, k docprint.Kind) bool {
	for _, allowed := range documentKinds[e] {
		if allowed == k {
			return true
		}
	}
	return false
}

// Document renders a printable document for the event and returns the HTML
// together with the export filename.
func (s *Service) Document(ctx context.Context, eventID uuid.UUID, kind docprint.Kind, generatedBy string, at time.Time) ([]byte, string, error) {
	if !kind.Valid() {
		return nil, "", docprint.ErrUnknownKind
	}
	e, err := s.events.GetByID(ctx, eventID)
	if err != nil {
		return nil, "", err
	}
	if !kindAllowed(e.Kind, kind) {
		return nil, "", ErrKindMismatch
	}
	if kind == docprint.KindDischargeSummary && e.DischargeDate == nil {
		return nil, "", ErrNotDischarged
	}

	p, err := s.patients.Get(ctx, e.PatientID)
	if err != nil {
		return nil, "", err
	}

	rec := &docprint.Record{
		Patient:     p.ToPrint(),
		Clinical:    e.ToPrint(),
		GeneratedAt: at,
		GeneratedBy: generatedBy,
	}
	if kind == docprint.KindPrescription {
		items, err := s.events.GetPrescriptionItems(ctx, eventID)
		if err != nil {
			return nil, "", err
		}
		for _, pi := range items {
			rec.Prescription = append(rec.Prescription, pi.ToPrint())
		}
	}

	out, err := s.renderer.Render(kind, rec)
	if err != nil {
		return nil, "", err
	}
	return out, docprint.ExportFilename(kind, p.PatientNo, at), nil
}
