package docprint

import (
	"errors"
	"time"
)

// Kind identifies one of the fixed printable document types.
type Kind string

const (
	KindClinicalSummary  Kind = "clinical-summary"
	KindDischargeSummary Kind = "discharge-summary"
	KindReferral         Kind = "referral"
	KindMedicalReport    Kind = "medical-report"
	KindPrescription     Kind = "prescription"
	KindServiceBill      Kind = "service-bill"
)

// ErrUnknownKind is returned when Render is asked for a kind with no
// template. This is a programming error and fails before any output is
// produced.
var ErrUnknownKind = errors.New("docprint: unknown document kind")

// Kinds returns all known document kinds.
func Kinds() []Kind {
	return []Kind{
		KindClinicalSummary, KindDischargeSummary, KindReferral,
		KindMedicalReport, KindPrescription, KindServiceBill,
	}
}

// Valid reports whether the kind has a registered template.
func (k Kind) Valid() bool {
	switch k {
	case KindClinicalSummary, KindDischargeSummary, KindReferral,
		KindMedicalReport, KindPrescription, KindServiceBill:
		return true
	}
	return false
}

// Patient is the demographic block embedded in every document.
type Patient struct {
	PatientID        string
	FirstName        string
	MiddleName       string
	LastName         string
	DateOfBirth      time.Time // zero value means unknown
	Gender           string
	Phone            string
	Address          string
	EmergencyContact string
	EmergencyPhone   string
	Allergies        string
	MedicalHistory   string
}

// Clinical carries the fields of a clinical encounter. Which fields a
// document binds depends on its kind; unused fields are ignored.
type Clinical struct {
	Date           time.Time
	AttendingStaff string

	PresentingComplaints string
	HistoryOfIllness     string
	Impression           string
	Investigations       string
	FinalDiagnosis       string
	Management           string

	// Discharge summary extras
	ModeOfAdmission       string
	OtherConditions       string
	DischargeDrugs        string
	DischargeInstructions string
	FollowUp              string
	AdmissionDate         time.Time
	DischargeDate         time.Time

	// Referral extras
	ReferredTo        string
	ReasonForReferral string
	TreatmentGiven    string

	// Medical report extras
	ExaminationFindings string
	Recommendations     string
}

// PrescriptionItem is one medication line on a prescription.
type PrescriptionItem struct {
	Drug      string
	Dose      string
	Frequency string
	Duration  string
	Quantity  int
}

// LineItem is one billed service. Total is stored as supplied by the billing
// workflow and is not recomputed from Quantity and UnitPrice here.
type LineItem struct {
	Description string
	Quantity    float64
	UnitPrice   float64
	Total       float64
	Date        time.Time
}

// Bill is the billing payload for a detailed service bill.
type Bill struct {
	InvoiceNo     string
	Items         []LineItem
	PaymentMethod string // cash, bank, card, mobile-money, insurance
	PaymentRef    string
}

// Record bundles everything a document can bind. GeneratedAt is the only
// time-dependent field; callers inject it so rendering stays deterministic.
type Record struct {
	Patient      Patient
	Clinical     Clinical
	Prescription []PrescriptionItem
	Bill         Bill
	GeneratedAt  time.Time
	GeneratedBy  string
}

// DateGroup is the set of line items billed on one calendar date, in
// insertion order.
type DateGroup struct {
	Date  time.Time
	Items []LineItem
}

// BillSummary is the grouped view of a bill's line items.
type BillSummary struct {
	Groups     []DateGroup
	GrandTotal float64
}
