package docprint

// sectionSpec binds one titled slot of a document layout to a record field.
// Every kind has a fixed, ordered section list; rendering walks the list and
// never reorders or drops a slot.
type sectionSpec struct {
	Title string
	Bind  func(*Record) string
}

var documentTitles = map[Kind]string{
	KindClinicalSummary:  "Clinical Summary",
	KindDischargeSummary: "Discharge Summary",
	KindReferral:         "Referral Letter",
	KindMedicalReport:    "Medical Report",
	KindPrescription:     "Prescription",
	KindServiceBill:      "Detailed Service Bill",
}

var exportNames = map[Kind]string{
	KindClinicalSummary:  "ClinicalSummary",
	KindDischargeSummary: "DischargeSummary",
	KindReferral:         "Referral",
	KindMedicalReport:    "MedicalReport",
	KindPrescription:     "Prescription",
	KindServiceBill:      "ServiceBill",
}

var clinicalSummarySections = []sectionSpec{
	{"Presenting Complaints", func(r *Record) string { return r.Clinical.PresentingComplaints }},
	{"History of Presenting Illness", func(r *Record) string { return r.Clinical.HistoryOfIllness }},
	{"Impression", func(r *Record) string { return r.Clinical.Impression }},
	{"Investigations", func(r *Record) string { return r.Clinical.Investigations }},
	{"Final Diagnosis", func(r *Record) string { return r.Clinical.FinalDiagnosis }},
	{"Management", func(r *Record) string { return r.Clinical.Management }},
}

var dischargeSummarySections = []sectionSpec{
	{"Mode of Admission", func(r *Record) string { return r.Clinical.ModeOfAdmission }},
	{"Presenting Complaints", func(r *Record) string { return r.Clinical.PresentingComplaints }},
	{"History of Presenting Illness", func(r *Record) string { return r.Clinical.HistoryOfIllness }},
	{"Impression", func(r *Record) string { return r.Clinical.Impression }},
	{"Investigations", func(r *Record) string { return r.Clinical.Investigations }},
	{"Final Diagnosis", func(r *Record) string { return r.Clinical.FinalDiagnosis }},
	{"Other Conditions", func(r *Record) string { return r.Clinical.OtherConditions }},
	{"Management", func(r *Record) string { return r.Clinical.Management }},
	{"Discharge Drugs", func(r *Record) string { return r.Clinical.DischargeDrugs }},
	{"Discharge Instructions", func(r *Record) string { return r.Clinical.DischargeInstructions }},
	{"Follow-up", func(r *Record) string { return r.Clinical.FollowUp }},
}

var referralSections = []sectionSpec{
	{"Referred To", func(r *Record) string { return r.Clinical.ReferredTo }},
	{"Reason for Referral", func(r *Record) string { return r.Clinical.ReasonForReferral }},
	{"History of Presenting Illness", func(r *Record) string { return r.Clinical.HistoryOfIllness }},
	{"Investigations", func(r *Record) string { return r.Clinical.Investigations }},
	{"Final Diagnosis", func(r *Record) string { return r.Clinical.FinalDiagnosis }},
	{"Treatment Given", func(r *Record) string { return r.Clinical.TreatmentGiven }},
}

var medicalReportSections = []sectionSpec{
	{"History of Presenting Illness", func(r *Record) string { return r.Clinical.HistoryOfIllness }},
	{"Examination Findings", func(r *Record) string { return r.Clinical.ExaminationFindings }},
	{"Investigations", func(r *Record) string { return r.Clinical.Investigations }},
	{"Final Diagnosis", func(r *Record) string { return r.Clinical.FinalDiagnosis }},
	{"Management", func(r *Record) string { return r.Clinical.Management }},
	{"Recommendations", func(r *Record) string { return r.Clinical.Recommendations }},
}

// sectionsFor returns the section list for a kind. Prescription and service
// bill documents have table bodies instead of free-text sections.
func sectionsFor(kind Kind) []sectionSpec {
	switch kind {
	case KindClinicalSummary:
		return clinicalSummarySections
	case KindDischargeSummary:
		return dischargeSummarySections
	case KindReferral:
		return referralSections
	case KindMedicalReport:
		return medicalReportSections
	}
	return nil
}

// paymentMethods is the fixed checklist printed at the foot of a service
// bill, in this order.
var paymentMethods = []struct {
	Key   string
	Label string
}{
	{"cash", "Cash"},
	{"bank", "Bank"},
	{"card", "Card"},
	{"mobile-money", "Mobile Money"},
	{"insurance", "Insurance"},
}
