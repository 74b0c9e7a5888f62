package clinical

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type repoPG struct{ pool *pgxpool.Pool }

func NewRepoPG(pool *pgxpool.Pool) Repository { return &repoPG{pool: pool} }

const eventCols = `id, patient_id, kind, event_date, attending_staff,
	presenting_complaints, history_of_illness, impression, investigations,
	final_diagnosis, management,
	mode_of_admission, other_conditions, discharge_drugs,
	discharge_instructions, follow_up, admission_date, discharge_date,
	referred_to, reason_for_referral, treatment_given,
	examination_findings, recommendations,
	finalized, finalized_at, finalized_by, created_at, updated_at`

func scanEvent(row pgx.Row) (*Event, error) {
	var e Event
	err := row.Scan(&e.ID, &e.PatientID, &e.Kind, &e.Date, &e.AttendingStaff,
		&e.PresentingComplaints, &e.HistoryOfIllness, &e.Impression, &e.Investigations,
		&e.FinalDiagnosis, &e.Management,
		&e.ModeOfAdmission, &e.OtherConditions, &e.DischargeDrugs,
		&e.DischargeInstructions, &e.FollowUp, &e.AdmissionDate, &e.DischargeDate,
		&e.ReferredTo, &e.ReasonForReferral, &e.TreatmentGiven,
		&e.ExaminationFindings, &e.Recommendations,
		&e.Finalized, &e.FinalizedAt, &e.FinalizedBy, &e.CreatedAt, &e.UpdatedAt)
	return &e, err
}

func (r *repoPG) Create(ctx context.Context, e *Event) error {
	e.ID = uuid.New()
	_, err := r.pool.Exec(ctx, `
		INSERT INTO clinical_event (id, patient_id, kind, event_date, attending_staff,
			presenting_complaints, history_of_illness, impression, investigations,
			final_diagnosis, management,
			mode_of_admission, other_conditions, discharge_drugs,
			discharge_instructions, follow_up, admission_date, discharge_date,
			referred_to, reason_for_referral, treatment_given,
			examination_findings, recommendations)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17,$18,$19,$20,$21,$22,$23)`,
		e.ID, e.PatientID, e.Kind, e.Date, e.AttendingStaff,
		e.PresentingComplaints, e.HistoryOfIllness, e.Impression, e.Investigations,
		e.FinalDiagnosis, e.Management,
		e.ModeOfAdmission, e.OtherConditions, e.DischargeDrugs,
		e.DischargeInstructions, e.FollowUp, e.AdmissionDate, e.DischargeDate,
		e.ReferredTo, e.ReasonForReferral, e.TreatmentGiven,
		e.ExaminationFindings, e.Recommendations)
	return err
}

func (r *repoPG) GetByID(ctx context.Context, id uuid.UUID) (*Event, error) {
	return scanEvent(r.pool.QueryRow(ctx, `SELECT `+eventCols+` FROM clinical_event WHERE id = $1`, id))
}

func (r *repoPG) Update(ctx context.Context, e *Event) error {
	_, err := r.pool.Exec(ctx, `
		UPDATE clinical_event SET event_date=$2, attending_staff=$3,
			presenting_complaints=$4, history_of_illness=$5, impression=$6,
			investigations=$7, final_diagnosis=$8, management=$9,
			mode_of_admission=$10, other_conditions=$11, discharge_drugs=$12,
			discharge_instructions=$13, follow_up=$14, admission_date=$15,
			discharge_date=$16, referred_to=$17, reason_for_referral=$18,
			treatment_given=$19, examination_findings=$20, recommendations=$21,
			updated_at=NOW()
		WHERE id = $1 AND finalized = FALSE`,
		e.ID, e.Date, e.AttendingStaff,
		e.PresentingComplaints, e.HistoryOfIllness, e.Impression,
		e.Investigations, e.FinalDiagnosis, e.Management,
		e.ModeOfAdmission, e.OtherConditions, e.DischargeDrugs,
		e.DischargeInstructions, e.FollowUp, e.AdmissionDate,
		e.DischargeDate, e.ReferredTo, e.ReasonForReferral,
		e.TreatmentGiven, e.ExaminationFindings, e.Recommendations)
	return err
}

func (r *repoPG) Finalize(ctx context.Context, id, by uuid.UUID) error {
	_, err := r.pool.Exec(ctx, `
		UPDATE clinical_event SET finalized=TRUE, finalized_at=NOW(), finalized_by=$2, updated_at=NOW()
		WHERE id = $1 AND finalized = FALSE`, id, by)
	return err
}

func (r *repoPG) ListByPatient(ctx context.Context, patientID uuid.UUID, limit, offset int) ([]*Event, int, error) {
	var total int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM clinical_event WHERE patient_id = $1`, patientID).Scan(&total); err != nil {
		return nil, 0, err
	}
	rows, err := r.pool.Query(ctx, `SELECT `+eventCols+` FROM clinical_event WHERE patient_id = $1 ORDER BY event_date DESC LIMIT $2 OFFSET $3`,
		patientID, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	var items []*Event
	for rows.Next() {
		e, err := scanEvent(rows)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, e)
	}
	return items, total, rows.Err()
}

func (r *repoPG) AddPrescriptionItem(ctx context.Context, item *PrescriptionItem) error {
	item.ID = uuid.New()
	_, err := r.pool.Exec(ctx, `
		INSERT INTO prescription_item (id, clinical_event_id, sequence, drug, dose, frequency, duration, quantity)
		VALUES ($1, $2,
			(SELECT COALESCE(MAX(sequence), 0) + 1 FROM prescription_item WHERE clinical_event_id = $2),
			$3, $4, $5, $6, $7)`,
		item.ID, item.EventID, item.Drug, item.Dose, item.Frequency, item.Duration, item.Quantity)
	return err
}

func (r *repoPG) GetPrescriptionItems(ctx context.Context, eventID uuid.UUID) ([]*PrescriptionItem, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, clinical_event_id, sequence, drug, dose, frequency, duration, quantity
		FROM prescription_item WHERE clinical_event_id = $1 ORDER BY sequence`, eventID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []*PrescriptionItem
	for rows.Next() {
		var pi PrescriptionItem
		if err := rows.Scan(&pi.ID, &pi.EventID, &pi.Sequence, &pi.Drug, &pi.Dose, &pi.Frequency, &pi.Duration, &pi.Quantity); err != nil {
			return nil, err
		}
		items = append(items, &pi)
	}
	return items, rows.Err()
}
