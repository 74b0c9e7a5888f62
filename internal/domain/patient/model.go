package patient

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/clinicore/hms/internal/platform/docprint"
)

// Patient maps to the patient table.
type Patient struct {
	ID               uuid.UUID  `db:"id" json:"id"`
	PatientNo        string     `db:"patient_no" json:"patient_no"`
	FirstName        string     `db:"first_name" json:"first_name"`
	MiddleName       *string    `db:"middle_name" json:"middle_name,omitempty"`
	LastName         string     `db:"last_name" json:"last_name"`
	DateOfBirth      *time.Time `db:"date_of_birth" json:"date_of_birth,omitempty"`
	Gender           *string    `db:"gender" json:"gender,omitempty"`
	Phone            *string    `db:"phone" json:"phone,omitempty"`
	Address          *string    `db:"address" json:"address,omitempty"`
	EmergencyContact *string    `db:"emergency_contact" json:"emergency_contact,omitempty"`
	EmergencyPhone   *string    `db:"emergency_phone" json:"emergency_phone,omitempty"`
	Allergies        *string    `db:"allergies" json:"allergies,omitempty"`
	MedicalHistory   *string    `db:"medical_history" json:"medical_history,omitempty"`
	Active           bool       `db:"active" json:"active"`
	CreatedAt        time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt        time.Time  `db:"updated_at" json:"updated_at"`
}

// FullName joins the name parts, skipping an absent middle name.
func (p *Patient) FullName() string {
	parts := []string{p.FirstName}
	if p.MiddleName != nil && *p.MiddleName != "" {
		parts = append(parts, *p.MiddleName)
	}
	parts = append(parts, p.LastName)
	return strings.Join(parts, " ")
}

// ToPrint converts the stored record into the demographic block used by
// printable documents.
func (p *Patient) ToPrint() docprint.Patient {
	out := docprint.Patient{
		PatientID: p.PatientNo,
		FirstName: p.FirstName,
		LastName:  p.LastName,
	}
	if p.MiddleName != nil {
		out.MiddleName = *p.MiddleName
	}
	if p.DateOfBirth != nil {
		out.DateOfBirth = *p.DateOfBirth
	}
	if p.Gender != nil {
		out.Gender = *p.Gender
	}
	if p.Phone != nil {
		out.Phone = *p.Phone
	}
	if p.Address != nil {
		out.Address = *p.Address
	}
	if p.EmergencyContact != nil {
		out.EmergencyContact = *p.EmergencyContact
	}
	if p.EmergencyPhone != nil {
		out.EmergencyPhone = *p.EmergencyPhone
	}
	if p.Allergies != nil {
		out.Allergies = *p.Allergies
	}
	if p.MedicalHistory != nil {
		out.MedicalHistory = *p.MedicalHistory
	}
	return out
}
