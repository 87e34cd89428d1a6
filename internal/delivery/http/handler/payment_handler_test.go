package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"medibook/internal/delivery/dto"
	"medibook/internal/delivery/http/middleware"
	"medibook/internal/domain/entity"
	"medibook/internal/service"
	"medibook/internal/usecase"
	"medibook/pkg/validator"

	"github.com/google/uuid"
)

type fakePaymentUsecase struct {
	intentResult  *dto.CheckoutSessionResponse
	intentErr     error
	confirmResult *dto.SettlementResponse
	confirmErr    error
	refundResult  *dto.RefundResponse
	refundErr     error
}

func (f *fakePaymentUsecase) CreateIntent(ctx context.Context, patientID uuid.UUID, req *dto.CreatePaymentIntentRequest) (*dto.CheckoutSessionResponse, error) {
	return f.intentResult, f.intentErr
}

func (f *fakePaymentUsecase) ConfirmCheckout(ctx context.Context, patientID uuid.UUID, req *dto.ConfirmCheckoutRequest) (*dto.SettlementResponse, error) {
	return f.confirmResult, f.confirmErr
}

func (f *fakePaymentUsecase) ConfirmPayment(ctx context.Context, patientID uuid.UUID, req *dto.ConfirmPaymentRequest) (*dto.SettlementResponse, error) {
	return f.confirmResult, f.confirmErr
}

func (f *fakePaymentUsecase) Refund(ctx context.Context, adminID uuid.UUID, req *dto.RefundRequest) (*dto.RefundResponse, error) {
	return f.refundResult, f.refundErr
}

func (f *fakePaymentUsecase) History(ctx context.Context, callerID uuid.UUID, roleID int) (*dto.PaymentListResponse, error) {
	return &dto.PaymentListResponse{}, nil
}

func TestCreateIntentSuccess(t *testing.T) {
	fake := &fakePaymentUsecase{
		intentResult: &dto.CheckoutSessionResponse{
			SessionURL: "https://checkout.stripe.com/pay/cs_test_123",
			SessionID:  "cs_test_123",
		},
	}
	h := NewPaymentHandler(fake, validator.NewValidator())

	body, _ := json.Marshal(dto.CreatePaymentIntentRequest{AppointmentID: uuid.New()})
	w := httptest.NewRecorder()
	h.CreateIntent(w, authedRequest(http.MethodPost, "/api/v1/payments/create-intent", body, uuid.New(), entity.RoleIDPatient))

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusOK)
	}

	resp := decodeResponse(t, w)
	data, ok := resp.Data.(map[string]interface{})
	if !ok {
		t.Fatalf("data is not an object: %T", resp.Data)
	}
	if data["sessionId"] != "cs_test_123" {
		t.Errorf("sessionId = %v, want cs_test_123", data["sessionId"])
	}
	if data["sessionUrl"] == "" {
		t.Errorf("sessionUrl is empty")
	}
}

func TestCreateIntentNotOwner(t *testing.T) {
	fake := &fakePaymentUsecase{intentErr: usecase.ErrNotParticipant}
	h := NewPaymentHandler(fake, validator.NewValidator())

	body, _ := json.Marshal(dto.CreatePaymentIntentRequest{AppointmentID: uuid.New()})
	w := httptest.NewRecorder()
	h.CreateIntent(w, authedRequest(http.MethodPost, "/api/v1/payments/create-intent", body, uuid.New(), entity.RoleIDPatient))

	if w.Code != http.StatusForbidden {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusForbidden)
	}
}

func TestCreateIntentProcessorDown(t *testing.T) {
	fake := &fakePaymentUsecase{intentErr: service.ErrProcessorUnavailable}
	h := NewPaymentHandler(fake, validator.NewValidator())

	body, _ := json.Marshal(dto.CreatePaymentIntentRequest{AppointmentID: uuid.New()})
	w := httptest.NewRecorder()
	h.CreateIntent(w, authedRequest(http.MethodPost, "/api/v1/payments/create-intent", body, uuid.New(), entity.RoleIDPatient))

	if w.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusInternalServerError)
	}
}

func TestConfirmCheckoutUnpaidSession(t *testing.T) {
	fake := &fakePaymentUsecase{confirmErr: usecase.ErrCheckoutNotPaid}
	h := NewPaymentHandler(fake, validator.NewValidator())

	body, _ := json.Marshal(dto.ConfirmCheckoutRequest{SessionID: "cs_test_123"})
	w := httptest.NewRecorder()
	h.ConfirmCheckout(w, authedRequest(http.MethodPost, "/api/v1/payments/confirm-checkout", body, uuid.New(), entity.RoleIDPatient))

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusBadRequest)
	}
}

func TestConfirmCheckoutSuccess(t *testing.T) {
	apptID := uuid.New()
	fake := &fakePaymentUsecase{
		confirmResult: &dto.SettlementResponse{
			Payment:     dto.PaymentResponse{ID: uuid.New(), AppointmentID: apptID, Status: "completed"},
			Appointment: dto.AppointmentResponse{ID: apptID, Status: "confirmed", PaymentStatus: "paid"},
		},
	}
	h := NewPaymentHandler(fake, validator.NewValidator())

	body, _ := json.Marshal(dto.ConfirmCheckoutRequest{SessionID: "cs_test_123"})
	w := httptest.NewRecorder()
	h.ConfirmCheckout(w, authedRequest(http.MethodPost, "/api/v1/payments/confirm-checkout", body, uuid.New(), entity.RoleIDPatient))

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusOK)
	}
	resp := decodeResponse(t, w)
	if !resp.Success {
		t.Errorf("success = false, want true")
	}
}

func TestRefundWindowClosed(t *testing.T) {
	fake := &fakePaymentUsecase{refundErr: usecase.ErrRefundWindowClosed}
	h := NewPaymentHandler(fake, validator.NewValidator())

	body, _ := json.Marshal(dto.RefundRequest{PaymentIntentID: "pi_123"})
	w := httptest.NewRecorder()
	h.Refund(w, authedRequest(http.MethodPost, "/api/v1/payments/refund", body, uuid.New(), entity.RoleIDAdmin))

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusBadRequest)
	}
}

func TestRefundAlreadyRefunded(t *testing.T) {
	fake := &fakePaymentUsecase{refundErr: usecase.ErrPaymentNotRefundable}
	h := NewPaymentHandler(fake, validator.NewValidator())

	body, _ := json.Marshal(dto.RefundRequest{PaymentIntentID: "pi_123"})
	w := httptest.NewRecorder()
	h.Refund(w, authedRequest(http.MethodPost, "/api/v1/payments/refund", body, uuid.New(), entity.RoleIDAdmin))

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusBadRequest)
	}
}

func TestRefundUnknownPayment(t *testing.T) {
	fake := &fakePaymentUsecase{refundErr: usecase.ErrPaymentNotFound}
	h := NewPaymentHandler(fake, validator.NewValidator())

	body, _ := json.Marshal(dto.RefundRequest{PaymentIntentID: "pi_missing"})
	w := httptest.NewRecorder()
	h.Refund(w, authedRequest(http.MethodPost, "/api/v1/payments/refund", body, uuid.New(), entity.RoleIDAdmin))

	if w.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusNotFound)
	}
}

func TestRefundSuccess(t *testing.T) {
	fake := &fakePaymentUsecase{
		refundResult: &dto.RefundResponse{
			Refund:      dto.RefundDetail{ID: "re_123", Status: "succeeded"},
			Appointment: dto.AppointmentResponse{ID: uuid.New(), Status: "cancelled", PaymentStatus: "refunded"},
		},
	}
	h := NewPaymentHandler(fake, validator.NewValidator())

	body, _ := json.Marshal(dto.RefundRequest{PaymentIntentID: "pi_123"})
	w := httptest.NewRecorder()
	h.Refund(w, authedRequest(http.MethodPost, "/api/v1/payments/refund", body, uuid.New(), entity.RoleIDAdmin))

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusOK)
	}
}

func TestRefundRoleGate(t *testing.T) {
	fake := &fakePaymentUsecase{
		refundResult: &dto.RefundResponse{
			Refund: dto.RefundDetail{ID: "re_123", Status: "succeeded"},
		},
	}
	h := NewPaymentHandler(fake, validator.NewValidator())
	gated := middleware.RequireAdmin(http.HandlerFunc(h.Refund))

	tests := []struct {
		name   string
		roleID int
		want   int
	}{
		{"admin may refund", entity.RoleIDAdmin, http.StatusOK},
		{"patient may not refund", entity.RoleIDPatient, http.StatusForbidden},
		{"doctor may not refund", entity.RoleIDDoctor, http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			body, _ := json.Marshal(dto.RefundRequest{PaymentIntentID: "pi_123"})
			w := httptest.NewRecorder()
			gated.ServeHTTP(w, authedRequest(http.MethodPost, "/api/v1/payments/refund", body, uuid.New(), tt.roleID))

			if w.Code != tt.want {
				t.Errorf("status = %d, want %d", w.Code, tt.want)
			}
		})
	}
}
