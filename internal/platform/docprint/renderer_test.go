package docprint

import (
	"bytes"
	"errors"
	"strings"
	"testing"
	"time"
)

func testRenderer() *Renderer {
	return NewRenderer(Hospital{
		Name:    "St. Luke Specialist Hospital",
		Motto:   "Care with Compassion",
		Address: "P.O. Box 123, Accra",
		Phone:   "+233 302 000 000",
		LogoURL: "/assets/logo.png",
	}, "GHS")
}

func testRecord() *Record {
	return &Record{
		Patient: Patient{
			PatientID:   "GH-000124",
			FirstName:   "Akosua",
			LastName:    "Mensah",
			DateOfBirth: date(2000, time.June, 15),
			Gender:      "Female",
			Phone:       "+233 24 000 0000",
			Address:     "Madina, Accra",
		},
		Clinical: Clinical{
			Date:                 date(2024, time.June, 20),
			AttendingStaff:       "Dr. K. Boateng",
			PresentingComplaints: "Fever and headache for 3 days",
			HistoryOfIllness:     "Gradual onset, worse at night",
			Impression:           "Suspected malaria",
			Investigations:       "Blood film for malaria parasites",
			FinalDiagnosis:       "Uncomplicated malaria",
			Management:           "Artemether-lumefantrine 80/480mg",
		},
		GeneratedAt: time.Date(2024, time.June, 20, 10, 0, 0, 0, time.UTC),
		GeneratedBy: "Dr. K. Boateng",
	}
}

func TestRender_UnknownKind(t *testing.T) {
	r := testRenderer()
	out, err := r.Render(Kind("consent-form"), testRecord())
	if !errors.Is(err, ErrUnknownKind) {
		t.Fatalf("expected ErrUnknownKind, got %v", err)
	}
	if out != nil {
		t.Error("expected no output for unknown kind")
	}
}

func TestRender_Deterministic(t *testing.T) {
	r := testRenderer()
	rec := testRecord()

	first, err := r.Render(KindClinicalSummary, rec)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	second, err := r.Render(KindClinicalSummary, rec)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if !bytes.Equal(first, second) {
		t.Error("identical input must produce byte-identical output")
	}
}

func TestRender_ClinicalSummarySectionOrder(t *testing.T) {
	r := testRenderer()
	out, err := r.Render(KindClinicalSummary, testRecord())
	if err != nil {
		t.Fatalf("render: %v", err)
	}

	html := string(out)
	labels := []string{
		"Presenting Complaints",
		"History of Presenting Illness",
		"Impression",
		"Investigations",
		"Final Diagnosis",
		"Management",
	}
	pos := -1
	for _, label := range labels {
		i := strings.Index(html, label)
		if i < 0 {
			t.Fatalf("section %q missing from output", label)
		}
		if i < pos {
			t.Errorf("section %q out of order", label)
		}
		pos = i
	}
}

func TestRender_DischargeSummaryExtraSections(t *testing.T) {
	r := testRenderer()
	rec := testRecord()
	rec.Clinical.ModeOfAdmission = "Emergency"
	rec.Clinical.DischargeDrugs = "Paracetamol 1g tds"
	rec.Clinical.FollowUp = "Review in 2 weeks"
	rec.Clinical.AdmissionDate = date(2024, time.June, 15)
	rec.Clinical.DischargeDate = date(2024, time.June, 20)

	out, err := r.Render(KindDischargeSummary, rec)
	if err != nil {
		t.Fatalf("render: %v", err)
	}

	html := string(out)
	for _, label := range []string{
		"Mode of Admission", "Other Conditions", "Discharge Drugs",
		"Discharge Instructions", "Follow-up", "Date Admitted", "Date Discharged",
	} {
		if !strings.Contains(html, label) {
			t.Errorf("expected %q in discharge summary", label)
		}
	}
}

func TestRender_MissingFieldsBecomePlaceholders(t *testing.T) {
	r := testRenderer()
	rec := &Record{
		Patient:     Patient{PatientID: "GH-1"},
		GeneratedAt: time.Date(2024, time.June, 20, 10, 0, 0, 0, time.UTC),
	}

	out, err := r.Render(KindClinicalSummary, rec)
	if err != nil {
		t.Fatalf("render must not fail on missing fields: %v", err)
	}

	html := string(out)
	// Every section still present, with placeholder bodies.
	if !strings.Contains(html, "Final Diagnosis") {
		t.Error("section layout must survive missing data")
	}
	if !strings.Contains(html, `<div class="body">-</div>`) {
		t.Error("expected placeholder bodies for missing fields")
	}
}

func TestRender_PrescriptionTable(t *testing.T) {
	r := testRenderer()
	rec := testRecord()
	rec.Prescription = []PrescriptionItem{
		{Drug: "Amoxicillin 500mg", Dose: "1 cap", Frequency: "tds", Duration: "7 days", Quantity: 21},
		{Drug: "Paracetamol 500mg", Dose: "2 tabs", Frequency: "prn", Duration: "5 days", Quantity: 20},
	}

	out, err := r.Render(KindPrescription, rec)
	if err != nil {
		t.Fatalf("render: %v", err)
	}

	html := string(out)
	if !strings.Contains(html, "Amoxicillin 500mg") || !strings.Contains(html, "Paracetamol 500mg") {
		t.Error("expected medication rows in prescription")
	}
	if !strings.Contains(html, "Medication") {
		t.Error("expected prescription table header")
	}
}

func TestRender_ServiceBill(t *testing.T) {
	r := testRenderer()
	rec := testRecord()
	day := date(2024, time.June, 18)
	rec.Bill = Bill{
		InvoiceNo: "INV-2024-0042",
		Items: []LineItem{
			{Description: "Consultation", Quantity: 1, UnitPrice: 500, Total: 500, Date: day},
			{Description: "Lab Panel", Quantity: 1, UnitPrice: 1200, Total: 1200, Date: day},
			{Description: "Dressing", Quantity: 1, UnitPrice: 300, Total: 300, Date: day},
		},
		PaymentMethod: "mobile-money",
		PaymentRef:    "MM-778899",
	}

	out, err := r.Render(KindServiceBill, rec)
	if err != nil {
		t.Fatalf("render: %v", err)
	}

	html := string(out)
	if !strings.Contains(html, "Grand Total: GHS 2,000.00") {
		t.Errorf("expected grand total GHS 2,000.00 in output")
	}
	if !strings.Contains(html, "[x] Mobile Money (Ref: MM-778899)") {
		t.Error("expected mobile money checked with reference")
	}
	for _, label := range []string{"Cash", "Bank", "Card", "Insurance"} {
		if !strings.Contains(html, label) {
			t.Errorf("expected payment method %q in checklist", label)
		}
	}
	if !strings.Contains(html, "INV-2024-0042") {
		t.Error("expected invoice number in header block")
	}
}

func TestRender_HeaderAndFooter(t *testing.T) {
	r := testRenderer()
	out, err := r.Render(KindMedicalReport, testRecord())
	if err != nil {
		t.Fatalf("render: %v", err)
	}

	html := string(out)
	if !strings.Contains(html, "St. Luke Specialist Hospital") {
		t.Error("expected hospital name in header")
	}
	if !strings.Contains(html, "/assets/logo.png") {
		t.Error("expected logo reference")
	}
	if !strings.Contains(html, "Generated on 20 Jun 2024 10:00") {
		t.Error("expected generated-on footer")
	}
	if !strings.Contains(html, "24 years") {
		t.Error("expected computed age in patient block")
	}
}

func TestExportFilename(t *testing.T) {
	d := date(2024, time.June, 15)
	tests := []struct {
		kind Kind
		want string
	}{
		{KindClinicalSummary, "ClinicalSummary_GH-000124_2024-06-15"},
		{KindDischargeSummary, "DischargeSummary_GH-000124_2024-06-15"},
		{KindServiceBill, "ServiceBill_GH-000124_2024-06-15"},
	}
	for _, tt := range tests {
		if got := ExportFilename(tt.kind, "GH-000124", d); got != tt.want {
			t.Errorf("ExportFilename(%s) = %q, want %q", tt.kind, got, tt.want)
		}
	}
}

func TestKindValid(t *testing.T) {
	for _, k := range Kinds() {
		if !k.Valid() {
			t.Errorf("%s should be valid", k)
		}
	}
	if Kind("x-ray-request").Valid() {
		t.Error("unknown kind should be invalid")
	}
}
