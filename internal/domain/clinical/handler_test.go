package clinical

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/clinicore/hms/internal/domain/patient"
	"github.com/clinicore/hms/internal/platform/docprint"
	"github.com/clinicore/hms/internal/platform/rbac"
)

func newTestHandler() (*Handler, *echo.Echo, uuid.UUID) {
	svc, p := newTestService()
	h := NewHandler(svc)
	h.now = func() time.Time { return time.Date(2024, time.June, 20, 10, 0, 0, 0, time.UTC) }
	return h, echo.New(), p.ID
}

func withActor(c echo.Context) {
	actor := &rbac.Actor{ID: uuid.New(), Username: "dr.boateng", Role: rbac.RoleDoctor, Active: true}
	ctx := rbac.WithActor(c.Request().Context(), actor)
	c.SetRequest(c.Request().WithContext(ctx))
}

func TestHandler_Create(t *testing.T) {
	h, e, pid := newTestHandler()
	body := `{"patient_id":"` + pid.String() + `","kind":"consultation","attending_staff":"Dr. Boateng"}`
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.Create(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Errorf("expected 201, got %d", rec.Code)
	}
}

func TestHandler_Create_InvalidKind(t *testing.T) {
	h, e, pid := newTestHandler()
	body := `{"patient_id":"` + pid.String() + `","kind":"ward-round","attending_staff":"Dr. Boateng"}`
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.Create(c); err == nil {
		t.Error("expected error for invalid kind")
	}
}

func TestHandler_Update_FinalizedConflict(t *testing.T) {
	h, e, pid := newTestHandler()
	ev := &Event{PatientID: pid, Kind: KindConsultation, AttendingStaff: "Dr. Boateng"}
	if err := h.svc.CreateEvent(nil, ev); err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := h.svc.Finalize(nil, ev.ID, uuid.New()); err != nil {
		t.Fatalf("finalize: %v", err)
	}

	body := `{"attending_staff":"Dr. Boateng","final_diagnosis":"revised"}`
	req := httptest.NewRequest(http.MethodPut, "/", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues(ev.ID.String())

	err := h.Update(c)
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusConflict {
		t.Errorf("expected 409 for finalized event, got %v", err)
	}
}

func TestHandler_Finalize_RequiresActor(t *testing.T) {
	h, e, pid := newTestHandler()
	ev := &Event{PatientID: pid, Kind: KindConsultation, AttendingStaff: "Dr. Boateng"}
	if err := h.svc.CreateEvent(nil, ev); err != nil {
		t.Fatalf("create: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues(ev.ID.String())

	err := h.Finalize(c)
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusUnauthorized {
		t.Errorf("expected 401 without actor, got %v", err)
	}
}

func TestHandler_Finalize_UnknownEvent(t *testing.T) {
	h, e, _ := newTestHandler()
	req := httptest.NewRequest(http.MethodPost, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	withActor(c)
	c.SetParamNames("id")
	c.SetParamValues(uuid.NewString())

	err := h.Finalize(c)
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusNotFound {
		t.Errorf("expected 404 for unknown event, got %v", err)
	}
}

type brokenFinalizeRepo struct{ *mockRepo }

func (r *brokenFinalizeRepo) Finalize(context.Context, uuid.UUID, uuid.UUID) error {
	return fmt.Errorf("write failed")
}

func TestHandler_Finalize_StorageError(t *testing.T) {
	p := &patient.Patient{ID: uuid.New(), PatientNo: "GH-000124", Active: true}
	patients := &mockPatients{items: map[uuid.UUID]*patient.Patient{p.ID: p}}
	renderer := docprint.NewRenderer(docprint.Hospital{Name: "St. Luke Specialist Hospital"}, "GHS")
	svc := NewService(&brokenFinalizeRepo{newMockRepo()}, patients, renderer)
	h := NewHandler(svc)

	ev := &Event{PatientID: p.ID, Kind: KindConsultation, AttendingStaff: "Dr. Boateng"}
	if err := svc.CreateEvent(nil, ev); err != nil {
		t.Fatalf("create: %v", err)
	}

	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	withActor(c)
	c.SetParamNames("id")
	c.SetParamValues(ev.ID.String())

	err := h.Finalize(c)
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusInternalServerError {
		t.Errorf("expected 500 for storage failure, got %v", err)
	}
}

func TestHandler_Document(t *testing.T) {
	h, e, pid := newTestHandler()
	ev := &Event{
		PatientID:      pid,
		Kind:           KindConsultation,
		AttendingStaff: "Dr. Boateng",
		FinalDiagnosis: strPtr("Uncomplicated malaria"),
	}
	if err := h.svc.CreateEvent(nil, ev); err != nil {
		t.Fatalf("create: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	withActor(c)
	c.SetParamNames("id", "kind")
	c.SetParamValues(ev.ID.String(), "clinical-summary")

	if err := h.Document(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "Uncomplicated malaria") {
		t.Error("expected diagnosis in rendered document")
	}
	cd := rec.Header().Get(echo.HeaderContentDisposition)
	if !strings.Contains(cd, "ClinicalSummary_GH-000124_2024-06-20.html") {
		t.Errorf("unexpected content disposition %q", cd)
	}
}

func TestHandler_Document_UnknownKind(t *testing.T) {
	h, e, pid := newTestHandler()
	ev := &Event{PatientID: pid, Kind: KindConsultation, AttendingStaff: "Dr. Boateng"}
	if err := h.svc.CreateEvent(nil, ev); err != nil {
		t.Fatalf("create: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id", "kind")
	c.SetParamValues(ev.ID.String(), "consent-form")

	err := h.Document(c)
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for unknown kind, got %v", err)
	}
}
