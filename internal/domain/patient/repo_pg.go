package patient

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type repoPG struct{ pool *pgxpool.Pool }

func NewRepoPG(pool *pgxpool.Pool) Repository { return &repoPG{pool: pool} }

const patientCols = `id, patient_no, first_name, middle_name, last_name,
	date_of_birth, gender, phone, address,
	emergency_contact, emergency_phone, allergies, medical_history,
	active, created_at, updated_at`

func scanPatient(row pgx.Row) (*Patient, error) {
	var p Patient
	err := row.Scan(&p.ID, &p.PatientNo, &p.FirstName, &p.MiddleName, &p.LastName,
		&p.DateOfBirth, &p.Gender, &p.Phone, &p.Address,
		&p.EmergencyContact, &p.EmergencyPhone, &p.Allergies, &p.MedicalHistory,
		&p.Active, &p.CreatedAt, &p.UpdatedAt)
	return &p, err
}

func (r *repoPG) Create(ctx context.Context, p *Patient) error {
	p.ID = uuid.New()
	_, err := r.pool.Exec(ctx, `
		INSERT INTO patient (id, patient_no, first_name, middle_name, last_name,
			date_of_birth, gender, phone, address,
			emergency_contact, emergency_phone, allergies, medical_history, active)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14)`,
		p.ID, p.PatientNo, p.FirstName, p.MiddleName, p.LastName,
		p.DateOfBirth, p.Gender, p.Phone, p.Address,
		p.EmergencyContact, p.EmergencyPhone, p.Allergies, p.MedicalHistory, p.Active)
	return err
}

func (r *repoPG) GetByID(ctx context.Context, id uuid.UUID) (*Patient, error) {
	return scanPatient(r.pool.QueryRow(ctx, `SELECT `+patientCols+` FROM patient WHERE id = $1`, id))
}

func (r *repoPG) GetByPatientNo(ctx context.Context, patientNo string) (*Patient, error) {
	return scanPatient(r.pool.QueryRow(ctx, `SELECT `+patientCols+` FROM patient WHERE patient_no = $1`, patientNo))
}

func (r *repoPG) Update(ctx context.Context, p *Patient) error {
	_, err := r.pool.Exec(ctx, `
		UPDATE patient SET first_name=$2, middle_name=$3, last_name=$4,
			date_of_birth=$5, gender=$6, phone=$7, address=$8,
			emergency_contact=$9, emergency_phone=$10, allergies=$11,
			medical_history=$12, updated_at=NOW()
		WHERE id = $1`,
		p.ID, p.FirstName, p.MiddleName, p.LastName,
		p.DateOfBirth, p.Gender, p.Phone, p.Address,
		p.EmergencyContact, p.EmergencyPhone, p.Allergies, p.MedicalHistory)
	return err
}

func (r *repoPG) Deactivate(ctx context.Context, id uuid.UUID) error {
	_, err := r.pool.Exec(ctx, `UPDATE patient SET active=FALSE, updated_at=NOW() WHERE id = $1`, id)
	return err
}

func (r *repoPG) List(ctx context.Context, query string, limit, offset int) ([]*Patient, int, error) {
	where := `WHERE active = TRUE`
	args := []interface{}{}
	if query != "" {
		where += ` AND (patient_no ILIKE $1 OR first_name ILIKE $1 OR last_name ILIKE $1 OR phone ILIKE $1)`
		args = append(args, "%"+query+"%")
	}

	var total int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM patient `+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	sql := fmt.Sprintf(`SELECT %s FROM patient %s ORDER BY created_at DESC LIMIT $%d OFFSET $%d`,
		patientCols, where, len(args)+1, len(args)+2)
	rows, err := r.pool.Query(ctx, sql, append(args, limit, offset)...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var items []*Patient
	for rows.Next() {
		p, err := scanPatient(rows)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, p)
	}
	return items, total, rows.Err()
}

func (r *repoPG) NextPatientNo(ctx context.Context) (string, error) {
	var n int64
	if err := r.pool.QueryRow(ctx, `SELECT nextval('patient_no_seq')`).Scan(&n); err != nil {
		return "", err
	}
	return fmt.Sprintf("GH-%06d", n), nil
}
