package clinical

import (
	"time"

	"github.com/google/uuid"

	"github.com/clinicore/hms/internal/platform/docprint"
)

// EventKind identifies the type of a clinical encounter.
type EventKind string

const (
	KindConsultation  EventKind = "consultation"
	KindAdmission     EventKind = "admission"
	KindReferral      EventKind = "referral"
	KindMedicalReport EventKind = "medical-report"
)

var validKinds = map[EventKind]bool{
	KindConsultation: true, KindAdmission: true,
	KindReferral: true, KindMedicalReport: true,
}

// Valid reports whether the kind is one of the enumerated set.
func (k EventKind) Valid() bool { return validKinds[k] }

// Event maps to the clinical_event table. Which optional sections carry data
// depends on the kind.
type Event struct {
	ID             uuid.UUID `db:"id" json:"id"`
	PatientID      uuid.UUID `db:"patient_id" json:"patient_id"`
	Kind           EventKind `db:"kind" json:"kind"`
	Date           time.Time `db:"event_date" json:"event_date"`
	AttendingStaff string    `db:"attending_staff" json:"attending_staff"`

	PresentingComplaints *string `db:"presenting_complaints" json:"presenting_complaints,omitempty"`
	HistoryOfIllness     *string `db:"history_of_illness" json:"history_of_illness,omitempty"`
	Impression           *string `db:"impression" json:"impression,omitempty"`
	Investigations       *string `db:"investigations" json:"investigations,omitempty"`
	FinalDiagnosis       *string `db:"final_diagnosis" json:"final_diagnosis,omitempty"`
	Management           *string `db:"management" json:"management,omitempty"`

	ModeOfAdmission       *string    `db:"mode_of_admission" json:"mode_of_admission,omitempty"`
	OtherConditions       *string    `db:"other_conditions" json:"other_conditions,omitempty"`
	DischargeDrugs        *string    `db:"discharge_drugs" json:"discharge_drugs,omitempty"`
	DischargeInstructions *string    `db:"discharge_instructions" json:"discharge_instructions,omitempty"`
	FollowUp              *string    `db:"follow_up" json:"follow_up,omitempty"`
	AdmissionDate         *time.Time `db:"admission_date" json:"admission_date,omitempty"`
	DischargeDate         *time.Time `db:"discharge_date" json:"discharge_date,omitempty"`

	ReferredTo        *string `db:"referred_to" json:"referred_to,omitempty"`
	ReasonForReferral *string `db:"reason_for_referral" json:"reason_for_referral,omitempty"`
	TreatmentGiven    *string `db:"treatment_given" json:"treatment_given,omitempty"`

	ExaminationFindings *string `db:"examination_findings" json:"examination_findings,omitempty"`
	Recommendations     *string `db:"recommendations" json:"recommendations,omitempty"`

	Finalized   bool       `db:"finalized" json:"finalized"`
	FinalizedAt *time.Time `db:"finalized_at" json:"finalized_at,omitempty"`
	FinalizedBy *uuid.UUID `db:"finalized_by" json:"finalized_by,omitempty"`

	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

// PrescriptionItem maps to the prescription_item table.
type PrescriptionItem struct {
	ID        uuid.UUID `db:"id" json:"id"`
	EventID   uuid.UUID `db:"clinical_event_id" json:"clinical_event_id"`
	Sequence  int       `db:"sequence" json:"sequence"`
	Drug      string    `db:"drug" json:"drug"`
	Dose      *string   `db:"dose" json:"dose,omitempty"`
	Frequency *string   `db:"frequency" json:"frequency,omitempty"`
	Duration  *string   `db:"duration" json:"duration,omitempty"`
	Quantity  int       `db:"quantity" json:"quantity"`
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// ToPrint converts the event into the clinical block used by printable
// documents.
func (e *Event) ToPrint() docprint.Clinical {
	c := docprint.Clinical{
		Date:           e.Date,
		AttendingStaff: e.AttendingStaff,

		PresentingComplaints: deref(e.PresentingComplaints),
		HistoryOfIllness:     deref(e.HistoryOfIllness),
		Impression:           deref(e.Impression),
		Investigations:       deref(e.Investigations),
		FinalDiagnosis:       deref(e.FinalDiagnosis),
		Management:           deref(e.Management),

		ModeOfAdmission:       deref(e.ModeOfAdmission),
		OtherConditions:       deref(e.OtherConditions),
		DischargeDrugs:        deref(e.DischargeDrugs),
		DischargeInstructions: deref(e.DischargeInstructions),
		FollowUp:              deref(e.FollowUp),

		ReferredTo:        deref(e.ReferredTo),
		ReasonForReferral: deref(e.ReasonForReferral),
		TreatmentGiven:    deref(e.TreatmentGiven),

		ExaminationFindings: deref(e.ExaminationFindings),
		Recommendations:     deref(e.Recommendations),
	}
	if e.AdmissionDate != nil {
		c.AdmissionDate = *e.AdmissionDate
	}
	if e.DischargeDate != nil {
		c.DischargeDate = *e.DischargeDate
	}
	return c
}

// ToPrint converts a prescription line for printing.
func (pi *PrescriptionItem) ToPrint() docprint.PrescriptionItem {
	return docprint.PrescriptionItem{
		Drug:      pi.Drug,
		Dose:      deref(pi.Dose),
		Frequency: deref(pi.Frequency),
		Duration:  deref(pi.Duration),
		Quantity:  pi.Quantity,
	}
}
