package docprint

import (
	"bytes"
	"fmt"
	"html/template"
	"strings"
	"time"
)

// Hospital is the static institutional header printed on every document.
type Hospital struct {
	Name    string
	Motto   string
	Address string
	Phone   string
	LogoURL string
}

// Renderer binds records into fixed print layouts. It holds only immutable
// configuration and is safe for concurrent use.
type Renderer struct {
	hospital Hospital
	currency string
	tmpl     *template.Template
}

func NewRenderer(hospital Hospital, currency string) *Renderer {
	return &Renderer{
		hospital: hospital,
		currency: currency,
		tmpl:     template.Must(template.New("document").Parse(documentLayout)),
	}
}

// Render produces a self-contained printable HTML document for the given
// kind. Output is byte-identical for identical input, including the injected
// GeneratedAt timestamp. Missing record fields render as placeholders; the
// only hard failure is an unknown kind.
func (r *Renderer) Render(kind Kind, rec *Record) ([]byte, error) {
	if !kind.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrUnknownKind, kind)
	}

	view := r.buildView(kind, rec)

	var buf bytes.Buffer
	if err := r.tmpl.Execute(&buf, view); err != nil {
		return nil, fmt.Errorf("docprint: execute template: %w", err)
	}
	return buf.Bytes(), nil
}

// ExportFilename returns the deterministic download name for a document,
// e.g. "DischargeSummary_GH-000124_2024-06-15".
func ExportFilename(kind Kind, patientID string, date time.Time) string {
	name, ok := exportNames[kind]
	if !ok {
		name = "Document"
	}
	return fmt.Sprintf("%s_%s_%s", name, patientID, date.Format("2006-01-02"))
}

// -- view model --

type labeledField struct {
	Label string
	Value string
}

type sectionView struct {
	Title string
	Body  string
}

type prescriptionRow struct {
	Drug      string
	Dose      string
	Frequency string
	Duration  string
	Quantity  string
}

type billRow struct {
	Description string
	Quantity    string
	UnitPrice   string
	Total       string
}

type billGroupView struct {
	DateLabel string
	Rows      []billRow
}

type paymentView struct {
	Label   string
	Checked bool
	Ref     string
}

type billView struct {
	InvoiceNo  string
	Groups     []billGroupView
	GrandTotal string
	Payments   []paymentView
}

type documentView struct {
	Hospital     Hospital
	Title        string
	Patient      []labeledField
	Sections     []sectionView
	Prescription []prescriptionRow
	Bill         *billView
	SignedBy     string
	GeneratedAt  string
	GeneratedBy  string
}

func (r *Renderer) buildView(kind Kind, rec *Record) *documentView {
	view := &documentView{
		Hospital:    r.hospital,
		Title:       documentTitles[kind],
		Patient:     patientBlock(kind, rec),
		SignedBy:    orPlaceholder(rec.Clinical.AttendingStaff),
		GeneratedAt: FormatDateTime(rec.GeneratedAt),
		GeneratedBy: orPlaceholder(rec.GeneratedBy),
	}

	for _, spec := range sectionsFor(kind) {
		view.Sections = append(view.Sections, sectionView{
			Title: spec.Title,
			Body:  orPlaceholder(spec.Bind(rec)),
		})
	}

	if kind == KindPrescription {
		for _, item := range rec.Prescription {
			view.Prescription = append(view.Prescription, prescriptionRow{
				Drug:      orPlaceholder(item.Drug),
				Dose:      orPlaceholder(item.Dose),
				Frequency: orPlaceholder(item.Frequency),
				Duration:  orPlaceholder(item.Duration),
				Quantity:  fmt.Sprintf("%d", item.Quantity),
			})
		}
	}

	if kind == KindServiceBill {
		view.Bill = r.buildBillView(&rec.Bill)
	}

	return view
}

// patientBlock assembles the demographic header rows. Age is computed as of
// the generation timestamp.
func patientBlock(kind Kind, rec *Record) []labeledField {
	p := rec.Patient

	name := strings.TrimSpace(strings.Join(nonEmpty(p.FirstName, p.MiddleName, p.LastName), " "))
	age := placeholder
	if !p.DateOfBirth.IsZero() && !rec.GeneratedAt.IsZero() {
		age = fmt.Sprintf("%d years", AgeInYears(p.DateOfBirth, rec.GeneratedAt))
	}

	fields := []labeledField{
		{"Patient Name", orPlaceholder(name)},
		{"Patient ID", orPlaceholder(p.PatientID)},
		{"Date of Birth", FormatDate(p.DateOfBirth)},
		{"Age", age},
		{"Gender", orPlaceholder(p.Gender)},
		{"Phone", orPlaceholder(p.Phone)},
		{"Address", orPlaceholder(p.Address)},
	}

	switch kind {
	case KindDischargeSummary:
		fields = append(fields,
			labeledField{"Date Admitted", FormatDate(rec.Clinical.AdmissionDate)},
			labeledField{"Date Discharged", FormatDate(rec.Clinical.DischargeDate)},
		)
	case KindServiceBill:
		fields = append(fields,
			labeledField{"Invoice No.", orPlaceholder(rec.Bill.InvoiceNo)},
		)
	default:
		fields = append(fields,
			labeledField{"Date", FormatDate(rec.Clinical.Date)},
		)
	}

	return fields
}

func (r *Renderer) buildBillView(bill *Bill) *billView {
	summary := AggregateBilling(bill.Items)

	view := &billView{
		InvoiceNo:  orPlaceholder(bill.InvoiceNo),
		GrandTotal: FormatCurrency(r.currency, summary.GrandTotal),
	}

	for _, group := range summary.Groups {
		gv := billGroupView{DateLabel: FormatDate(group.Date)}
		for _, item := range group.Items {
			gv.Rows = append(gv.Rows, billRow{
				Description: orPlaceholder(item.Description),
				Quantity:    fmt.Sprintf("%g", item.Quantity),
				UnitPrice:   FormatCurrency(r.currency, item.UnitPrice),
				Total:       FormatCurrency(r.currency, item.Total),
			})
		}
		view.Groups = append(view.Groups, gv)
	}

	for _, pm := range paymentMethods {
		pv := paymentView{Label: pm.Label, Checked: bill.PaymentMethod == pm.Key}
		if pv.Checked && bill.PaymentRef != "" {
			pv.Ref = bill.PaymentRef
		}
		view.Payments = append(view.Payments, pv)
	}

	return view
}

func nonEmpty(parts ...string) []string {
	var out []string
	for _, p := range parts {
		if strings.TrimSpace(p) != "" {
			out = append(out, p)
		}
	}
	return out
}

// documentLayout is the single print layout shared by every kind. All styles
// are inlined so the output has no external dependencies beyond the logo
// image reference.
const documentLayout = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
<style>
body { font-family: Georgia, "Times New Roman", serif; color: #1a1a1a; margin: 32px; }
.header { text-align: center; border-bottom: 3px double #1a1a1a; padding-bottom: 12px; }
.header img { height: 64px; }
.header h1 { margin: 4px 0 0; font-size: 22px; text-transform: uppercase; }
.header .motto { font-style: italic; font-size: 12px; margin: 2px 0; }
.header .contact { font-size: 12px; margin: 2px 0; }
h2.doc-title { text-align: center; font-size: 16px; text-transform: uppercase; text-decoration: underline; margin: 18px 0 12px; }
table.patient { width: 100%; border-collapse: collapse; font-size: 13px; margin-bottom: 14px; }
table.patient td { padding: 3px 6px; border-bottom: 1px solid #ccc; }
table.patient td.label { font-weight: bold; width: 160px; }
.section { margin-bottom: 10px; }
.section .title { font-weight: bold; font-size: 13px; text-transform: uppercase; border-bottom: 1px solid #999; }
.section .body { font-size: 13px; padding: 4px 0 0 8px; white-space: pre-wrap; }
table.items { width: 100%; border-collapse: collapse; font-size: 13px; margin-bottom: 10px; }
table.items th, table.items td { border: 1px solid #666; padding: 4px 6px; text-align: left; }
table.items th { background: #eee; }
table.items td.num { text-align: right; }
.group-date { font-weight: bold; font-size: 13px; margin: 10px 0 4px; }
.grand-total { text-align: right; font-weight: bold; font-size: 14px; border-top: 2px solid #1a1a1a; padding-top: 6px; }
.payments { font-size: 13px; margin-top: 12px; }
.payments .method { display: inline-block; margin-right: 18px; }
.signature { margin-top: 48px; font-size: 13px; }
.signature .line { border-top: 1px solid #1a1a1a; width: 220px; padding-top: 4px; }
.footer { margin-top: 24px; font-size: 11px; color: #555; border-top: 1px solid #ccc; padding-top: 4px; }
@media print { body { margin: 12mm; } }
</style>
</head>
<body>
<div class="header">
{{if .Hospital.LogoURL}}<img src="{{.Hospital.LogoURL}}" alt="logo">{{end}}
<h1>{{.Hospital.Name}}</h1>
{{if .Hospital.Motto}}<p class="motto">{{.Hospital.Motto}}</p>{{end}}
<p class="contact">{{.Hospital.Address}}{{if .Hospital.Phone}} &middot; Tel: {{.Hospital.Phone}}{{end}}</p>
</div>
<h2 class="doc-title">{{.Title}}</h2>
<table class="patient">
{{range .Patient}}<tr><td class="label">{{.Label}}</td><td>{{.Value}}</td></tr>
{{end}}</table>
{{range .Sections}}<div class="section"><div class="title">{{.Title}}</div><div class="body">{{.Body}}</div></div>
{{end}}{{if .Prescription}}<table class="items">
<tr><th>Medication</th><th>Dose</th><th>Frequency</th><th>Duration</th><th>Qty</th></tr>
{{range .Prescription}}<tr><td>{{.Drug}}</td><td>{{.Dose}}</td><td>{{.Frequency}}</td><td>{{.Duration}}</td><td class="num">{{.Quantity}}</td></tr>
{{end}}</table>
{{end}}{{if .Bill}}{{range .Bill.Groups}}<div class="group-date">{{.DateLabel}}</div>
<table class="items">
<tr><th>Description</th><th>Qty</th><th>Unit Price</th><th>Amount</th></tr>
{{range .Rows}}<tr><td>{{.Description}}</td><td class="num">{{.Quantity}}</td><td class="num">{{.UnitPrice}}</td><td class="num">{{.Total}}</td></tr>
{{end}}</table>
{{end}}<div class="grand-total">Grand Total: {{.Bill.GrandTotal}}</div>
<div class="payments">
{{range .Bill.Payments}}<span class="method">[{{if .Checked}}x{{else}}&nbsp;&nbsp;{{end}}] {{.Label}}{{if .Ref}} (Ref: {{.Ref}}){{end}}</span>
{{end}}</div>
{{end}}<div class="signature"><div class="line">{{.SignedBy}}</div></div>
<div class="footer">Generated on {{.GeneratedAt}} by {{.GeneratedBy}}</div>
</body>
</html>
`
