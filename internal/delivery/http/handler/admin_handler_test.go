package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"medibook/internal/delivery/dto"
	"medibook/internal/domain/entity"
	"medibook/internal/usecase"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

type fakeAdminUsecase struct {
	rejectErr   error
	rejectedID  uuid.UUID
	deletedID   uuid.UUID
	deleteCalls int
}

func (f *fakeAdminUsecase) GetPendingDoctors(ctx context.Context) (*dto.DoctorListResponse, error) {
	return &dto.DoctorListResponse{}, nil
}

func (f *fakeAdminUsecase) ApproveDoctor(ctx context.Context, adminID, doctorID uuid.UUID) (*dto.UserResponse, error) {
	return &dto.UserResponse{ID: doctorID}, nil
}

func (f *fakeAdminUsecase) RejectDoctor(ctx context.Context, adminID, doctorID uuid.UUID) error {
	f.rejectedID = doctorID
	return f.rejectErr
}

func (f *fakeAdminUsecase) GetAllDoctors(ctx context.Context) (*dto.DoctorListResponse, error) {
	return &dto.DoctorListResponse{}, nil
}

func (f *fakeAdminUsecase) GetAllPatients(ctx context.Context) (*dto.PatientListResponse, error) {
	return &dto.PatientListResponse{}, nil
}

func (f *fakeAdminUsecase) DeleteDoctor(ctx context.Context, adminID, doctorID uuid.UUID) error {
	f.deletedID = doctorID
	f.deleteCalls++
	return nil
}

func (f *fakeAdminUsecase) DeletePatient(ctx context.Context, adminID, patientID uuid.UUID) error {
	f.deleteCalls++
	return nil
}

func (f *fakeAdminUsecase) GetStats(ctx context.Context) (*dto.StatsResponse, error) {
	return &dto.StatsResponse{}, nil
}

func (f *fakeAdminUsecase) GetRevenue(ctx context.Context) (*dto.RevenueResponse, error) {
	return &dto.RevenueResponse{}, nil
}

func TestRejectDoctorDeactivates(t *testing.T) {
	fake := &fakeAdminUsecase{}
	h := NewAdminHandler(fake)

	doctorID := uuid.New()
	r := authedRequest(http.MethodPost, "/api/v1/admin/doctors/abc/reject", nil, uuid.New(), entity.RoleIDAdmin)
	r = mux.SetURLVars(r, map[string]string{"id": doctorID.String()})
	w := httptest.NewRecorder()
	h.RejectDoctor(w, r)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusOK)
	}
	resp := decodeResponse(t, w)
	if resp.Message != "Doctor rejected and deactivated" {
		t.Errorf("message = %q, want the deactivation message", resp.Message)
	}
	if fake.rejectedID != doctorID {
		t.Errorf("rejected doctor = %s, want %s", fake.rejectedID, doctorID)
	}
	// Rejection must not go through the destructive delete path.
	if fake.deleteCalls != 0 {
		t.Errorf("delete was called %d times, want 0", fake.deleteCalls)
	}
}

func TestRejectDoctorNotFound(t *testing.T) {
	fake := &fakeAdminUsecase{rejectErr: usecase.ErrDoctorNotFound}
	h := NewAdminHandler(fake)

	r := authedRequest(http.MethodPost, "/api/v1/admin/doctors/abc/reject", nil, uuid.New(), entity.RoleIDAdmin)
	r = mux.SetURLVars(r, map[string]string{"id": uuid.New().String()})
	w := httptest.NewRecorder()
	h.RejectDoctor(w, r)

	if w.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusNotFound)
	}
}
