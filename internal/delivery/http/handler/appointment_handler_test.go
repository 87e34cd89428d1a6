package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"medibook/internal/delivery/dto"
	"medibook/internal/delivery/http/middleware"
	"medibook/internal/domain/entity"
	"medibook/internal/usecase"
	"medibook/pkg/response"
	"medibook/pkg/validator"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

type fakeAppointmentUsecase struct {
	bookResult    *dto.AppointmentResponse
	bookErr       error
	acceptErr     error
	statusErr     error
	statusResult  *dto.AppointmentResponse
	proposeResult *dto.AppointmentResponse
	proposeErr    error
}

func (f *fakeAppointmentUsecase) Book(ctx context.Context, patientID uuid.UUID, req *dto.BookAppointmentRequest) (*dto.AppointmentResponse, error) {
	return f.bookResult, f.bookErr
}

func (f *fakeAppointmentUsecase) Propose(ctx context.Context, doctorID uuid.UUID, req *dto.ProposeAppointmentRequest) (*dto.AppointmentResponse, error) {
	return f.proposeResult, f.proposeErr
}

func (f *fakeAppointmentUsecase) Accept(ctx context.Context, patientID uuid.UUID, appointmentID uuid.UUID) (*dto.AppointmentResponse, error) {
	if f.acceptErr != nil {
		return nil, f.acceptErr
	}
	return &dto.AppointmentResponse{ID: appointmentID, Status: "pending"}, nil
}

func (f *fakeAppointmentUsecase) UpdateStatus(ctx context.Context, callerID uuid.UUID, roleID int, appointmentID uuid.UUID, status string) (*dto.AppointmentResponse, error) {
	return f.statusResult, f.statusErr
}

func (f *fakeAppointmentUsecase) Cancel(ctx context.Context, callerID uuid.UUID, roleID int, appointmentID uuid.UUID) (*dto.CancelAppointmentResponse, error) {
	return &dto.CancelAppointmentResponse{Message: "Appointment cancelled"}, nil
}

func (f *fakeAppointmentUsecase) GetAppointment(ctx context.Context, callerID uuid.UUID, roleID int, appointmentID uuid.UUID) (*dto.AppointmentResponse, error) {
	return nil, usecase.ErrAppointmentNotFound
}

func (f *fakeAppointmentUsecase) ListMyAppointments(ctx context.Context, callerID uuid.UUID, roleID int) (*dto.AppointmentListResponse, error) {
	return &dto.AppointmentListResponse{}, nil
}

func authedRequest(method, target string, body []byte, userID uuid.UUID, roleID int) *http.Request {
	r := httptest.NewRequest(method, target, bytes.NewReader(body))
	ctx := context.WithValue(r.Context(), middleware.UserIDKey, userID)
	ctx = context.WithValue(ctx, middleware.RoleIDKey, roleID)
	return r.WithContext(ctx)
}

func decodeResponse(t *testing.T, w *httptest.ResponseRecorder) response.Response {
	t.Helper()
	var resp response.Response
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response body: %v", err)
	}
	return resp
}

func TestBookSuccess(t *testing.T) {
	apptID := uuid.New()
	fake := &fakeAppointmentUsecase{
		bookResult: &dto.AppointmentResponse{ID: apptID, Status: "pending", PaymentStatus: "pending"},
	}
	h := NewAppointmentHandler(fake, validator.NewValidator())

	body, _ := json.Marshal(dto.BookAppointmentRequest{
		DoctorID:        uuid.New(),
		AppointmentDate: "2026-04-01",
		AppointmentTime: "10:00",
		ConsultationFee: 15000,
	})
	w := httptest.NewRecorder()
	h.Book(w, authedRequest(http.MethodPost, "/api/v1/appointments", body, uuid.New(), entity.RoleIDPatient))

	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusCreated)
	}
	resp := decodeResponse(t, w)
	if !resp.Success {
		t.Errorf("success = false, want true")
	}
}

func TestBookSlotConflict(t *testing.T) {
	fake := &fakeAppointmentUsecase{bookErr: usecase.ErrSlotConflict}
	h := NewAppointmentHandler(fake, validator.NewValidator())

	body, _ := json.Marshal(dto.BookAppointmentRequest{
		DoctorID:        uuid.New(),
		AppointmentDate: "2026-04-01",
		AppointmentTime: "10:00",
		ConsultationFee: 15000,
	})
	w := httptest.NewRecorder()
	h.Book(w, authedRequest(http.MethodPost, "/api/v1/appointments", body, uuid.New(), entity.RoleIDPatient))

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusBadRequest)
	}
	resp := decodeResponse(t, w)
	if resp.Success {
		t.Errorf("success = true, want false")
	}
}

func TestBookValidationFailure(t *testing.T) {
	fake := &fakeAppointmentUsecase{}
	h := NewAppointmentHandler(fake, validator.NewValidator())

	// Missing doctorId and appointmentTime.
	body := []byte(`{"appointmentDate": "2026-04-01"}`)
	w := httptest.NewRecorder()
	h.Book(w, authedRequest(http.MethodPost, "/api/v1/appointments", body, uuid.New(), entity.RoleIDPatient))

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusBadRequest)
	}
}

func TestBookRejectsMalformedTime(t *testing.T) {
	fake := &fakeAppointmentUsecase{
		bookResult: &dto.AppointmentResponse{ID: uuid.New()},
	}
	h := NewAppointmentHandler(fake, validator.NewValidator())

	body, _ := json.Marshal(dto.BookAppointmentRequest{
		DoctorID:        uuid.New(),
		AppointmentDate: "2026-04-01",
		AppointmentTime: "10:0a",
		ConsultationFee: 15000,
	})
	w := httptest.NewRecorder()
	h.Book(w, authedRequest(http.MethodPost, "/api/v1/appointments", body, uuid.New(), entity.RoleIDPatient))

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusBadRequest)
	}
}

func TestAcceptForbidden(t *testing.T) {
	fake := &fakeAppointmentUsecase{acceptErr: entity.ErrTransitionForbidden}
	h := NewAppointmentHandler(fake, validator.NewValidator())

	r := authedRequest(http.MethodPut, "/api/v1/appointments/abc/accept", nil, uuid.New(), entity.RoleIDPatient)
	r = mux.SetURLVars(r, map[string]string{"id": uuid.New().String()})
	w := httptest.NewRecorder()
	h.Accept(w, r)

	if w.Code != http.StatusForbidden {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusForbidden)
	}
}

func TestAcceptNotProposed(t *testing.T) {
	// The proposal was already accepted or withdrawn. The named patient
	// still gets Forbidden, not a validation error.
	fake := &fakeAppointmentUsecase{acceptErr: entity.ErrTransitionInvalid}
	h := NewAppointmentHandler(fake, validator.NewValidator())

	r := authedRequest(http.MethodPut, "/api/v1/appointments/abc/accept", nil, uuid.New(), entity.RoleIDPatient)
	r = mux.SetURLVars(r, map[string]string{"id": uuid.New().String()})
	w := httptest.NewRecorder()
	h.Accept(w, r)

	if w.Code != http.StatusForbidden {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusForbidden)
	}
}

func TestProposeUnknownPatient(t *testing.T) {
	fake := &fakeAppointmentUsecase{proposeErr: usecase.ErrPatientNotFound}
	h := NewAppointmentHandler(fake, validator.NewValidator())

	body, _ := json.Marshal(dto.ProposeAppointmentRequest{
		PatientID:       uuid.New(),
		AppointmentDate: "2026-04-01",
		AppointmentTime: "10:00",
		ConsultationFee: 15000,
	})
	w := httptest.NewRecorder()
	h.Propose(w, authedRequest(http.MethodPost, "/api/v1/appointments/propose", body, uuid.New(), entity.RoleIDDoctor))

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusBadRequest)
	}
}

func TestUpdateStatusInvalidTransition(t *testing.T) {
	fake := &fakeAppointmentUsecase{statusErr: entity.ErrTransitionInvalid}
	h := NewAppointmentHandler(fake, validator.NewValidator())

	body, _ := json.Marshal(dto.UpdateAppointmentStatusRequest{Status: "completed"})
	r := authedRequest(http.MethodPut, "/api/v1/appointments/abc/status", body, uuid.New(), entity.RoleIDDoctor)
	r = mux.SetURLVars(r, map[string]string{"id": uuid.New().String()})
	w := httptest.NewRecorder()
	h.UpdateStatus(w, r)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusBadRequest)
	}
}

func TestUpdateStatusRejectsUnknownStatus(t *testing.T) {
	fake := &fakeAppointmentUsecase{}
	h := NewAppointmentHandler(fake, validator.NewValidator())

	body := []byte(`{"status": "archived"}`)
	r := authedRequest(http.MethodPut, "/api/v1/appointments/abc/status", body, uuid.New(), entity.RoleIDDoctor)
	r = mux.SetURLVars(r, map[string]string{"id": uuid.New().String()})
	w := httptest.NewRecorder()
	h.UpdateStatus(w, r)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusBadRequest)
	}
}

func TestGetAppointmentNotFound(t *testing.T) {
	fake := &fakeAppointmentUsecase{}
	h := NewAppointmentHandler(fake, validator.NewValidator())

	r := authedRequest(http.MethodGet, "/api/v1/appointments/abc", nil, uuid.New(), entity.RoleIDPatient)
	r = mux.SetURLVars(r, map[string]string{"id": uuid.New().String()})
	w := httptest.NewRecorder()
	h.GetAppointment(w, r)

	if w.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusNotFound)
	}
}
