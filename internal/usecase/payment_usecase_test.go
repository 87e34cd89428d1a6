package usecase

import (
	"testing"
	"time"

	"medibook/internal/domain/entity"
	"medibook/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type fakePaymentRepo struct {
	repository.PaymentRepository
	byIntent      map[string]*entity.Payment
	byAppointment map[uuid.UUID]*entity.Payment
}

func (f *fakePaymentRepo) FindByStripePaymentID(db *gorm.DB, stripePaymentID string) (*entity.Payment, error) {
	return f.byIntent[stripePaymentID], nil
}

func (f *fakePaymentRepo) FindCompletedByAppointmentID(db *gorm.DB, appointmentID uuid.UUID) (*entity.Payment, error) {
	return f.byAppointment[appointmentID], nil
}

func appointmentStartingAt(at time.Time) *entity.Appointment {
	return &entity.Appointment{
		AppointmentDate: time.Date(at.Year(), at.Month(), at.Day(), 0, 0, 0, 0, at.Location()),
		AppointmentTime: at.Format("15:04"),
	}
}

func TestSettledPayment(t *testing.T) {
	appointmentID := uuid.New()
	recorded := &entity.Payment{
		ID:              uuid.New(),
		AppointmentID:   appointmentID,
		StripePaymentID: "pi_123",
		Status:          entity.PaymentStatusCompleted,
	}

	tests := []struct {
		name          string
		appointment   *entity.Appointment
		intentID      string
		repo          *fakePaymentRepo
		wantRecording bool
	}{
		{
			name:        "replayed confirm finds payment by intent id",
			appointment: &entity.Appointment{ID: appointmentID, PaymentStatus: entity.PaymentStatePaid},
			intentID:    "pi_123",
			repo: &fakePaymentRepo{
				byIntent: map[string]*entity.Payment{"pi_123": recorded},
			},
			wantRecording: true,
		},
		{
			name:        "paid appointment settled under another intent id",
			appointment: &entity.Appointment{ID: appointmentID, PaymentStatus: entity.PaymentStatePaid},
			intentID:    "pi_other",
			repo: &fakePaymentRepo{
				byIntent:      map[string]*entity.Payment{},
				byAppointment: map[uuid.UUID]*entity.Payment{appointmentID: recorded},
			},
			wantRecording: true,
		},
		{
			name:        "unsettled appointment has nothing recorded",
			appointment: &entity.Appointment{ID: appointmentID, PaymentStatus: entity.PaymentStatePending},
			intentID:    "pi_fresh",
			repo: &fakePaymentRepo{
				byIntent: map[string]*entity.Payment{},
			},
			wantRecording: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			u := &paymentUsecase{paymentRepo: tt.repo}

			got, err := u.settledPayment(nil, tt.appointment, tt.intentID)
			if err != nil {
				t.Fatalf("settledPayment() error = %v", err)
			}
			if tt.wantRecording {
				if got == nil {
					t.Fatal("settledPayment() = nil, want the recorded payment")
				}
				if got.ID != recorded.ID {
					t.Errorf("settledPayment() returned payment %s, want %s", got.ID, recorded.ID)
				}
			} else if got != nil {
				t.Errorf("settledPayment() = %v, want nil", got)
			}
		})
	}
}

func TestRefundWindowOpen(t *testing.T) {
	now := time.Date(2026, time.March, 16, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name   string
		starts time.Time
		open   bool
	}{
		{"two days out", now.Add(48 * time.Hour), true},
		{"just over a day out", now.Add(25 * time.Hour), true},
		{"exactly a day out", now.Add(24 * time.Hour), true},
		{"under a day out", now.Add(23 * time.Hour), false},
		{"already started", now.Add(-time.Hour), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			appointment := appointmentStartingAt(tt.starts)
			if got := refundWindowOpen(appointment, now); got != tt.open {
				t.Errorf("refundWindowOpen(starts %s) = %v, want %v", tt.starts, got, tt.open)
			}
		})
	}
}
