package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"medibook/internal/converter"
	"medibook/internal/delivery/dto"
	"medibook/internal/domain/entity"
	"medibook/internal/domain/repository"
	"medibook/internal/service"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// RefundWindow is the minimum lead time before the scheduled start at which
// a paid appointment can still be refunded.
const RefundWindow = 24 * time.Hour

var (
	ErrPaymentNotFound      = errors.New("payment not found")
	ErrPaymentNotRefundable = errors.New("payment is not refundable")
	ErrAppointmentCancelled = errors.New("appointment is cancelled")
	ErrCheckoutNotPaid      = errors.New("checkout session is not paid")
	ErrSessionMismatch      = errors.New("checkout session does not reference a known appointment")
	ErrRefundWindowClosed   = errors.New("refunds require at least 24 hours notice")
)

type PaymentUsecase interface {
	CreateIntent(ctx context.Context, patientID uuid.UUID, req *dto.CreatePaymentIntentRequest) (*dto.CheckoutSessionResponse, error)
	ConfirmCheckout(ctx context.Context, patientID uuid.UUID, req *dto.ConfirmCheckoutRequest) (*dto.SettlementResponse, error)
	ConfirmPayment(ctx context.Context, patientID uuid.UUID, req *dto.ConfirmPaymentRequest) (*dto.SettlementResponse, error)
	Refund(ctx context.Context, adminID uuid.UUID, req *dto.RefundRequest) (*dto.RefundResponse, error)
	History(ctx context.Context, callerID uuid.UUID, roleID int) (*dto.PaymentListResponse, error)
}

type paymentUsecase struct {
	db              *gorm.DB
	log             *logrus.Logger
	appointmentRepo repository.AppointmentRepository
	paymentRepo     repository.PaymentRepository
	userRepo        repository.UserRepository
	gateway         service.PaymentGateway
	notifier        service.Notifier
	auditService    service.AuditService
	gatewayTimeout  time.Duration
}

func NewPaymentUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	appointmentRepo repository.AppointmentRepository,
	paymentRepo repository.PaymentRepository,
	userRepo repository.UserRepository,
	gateway service.PaymentGateway,
	notifier service.Notifier,
	auditService service.AuditService,
	gatewayTimeout time.Duration,
) PaymentUsecase {
	return &paymentUsecase{
		db:              db,
		log:             log,
		appointmentRepo: appointmentRepo,
		paymentRepo:     paymentRepo,
		userRepo:        userRepo,
		gateway:         gateway,
		notifier:        notifier,
		auditService:    auditService,
		gatewayTimeout:  gatewayTimeout,
	}
}

func (u *paymentUsecase) CreateIntent(ctx context.Context, patientID uuid.UUID, req *dto.CreatePaymentIntentRequest) (*dto.CheckoutSessionResponse, error) {
	db := u.db.WithContext(ctx)

	appointment, err := u.appointmentRepo.FindByID(db, req.AppointmentID)
	if err != nil {
		u.log.Warnf("Failed to find appointment: %+v", err)
		return nil, err
	}
	if appointment == nil {
		return nil, ErrAppointmentNotFound
	}
	if appointment.PatientID != patientID {
		return nil, ErrNotParticipant
	}
	if appointment.Status == entity.AppointmentStatusCancelled {
		return nil, ErrAppointmentCancelled
	}

	doctor, err := u.userRepo.FindByID(db, appointment.DoctorID)
	if err != nil {
		u.log.Warnf("Failed to find doctor: %+v", err)
		return nil, err
	}

	productName := "Medical consultation"
	if doctor != nil {
		productName = fmt.Sprintf("Consultation with Dr. %s", doctor.FullName)
	}

	gctx, cancel := context.WithTimeout(ctx, u.gatewayTimeout)
	defer cancel()

	// The charge amount always comes from the stored appointment, never
	// from the request body.
	session, err := u.gateway.CreateCheckoutSession(gctx, appointment.ID, productName, appointment.ConsultationFee)
	if err != nil {
		u.log.Warnf("Failed to create checkout session: %+v", err)
		return nil, err
	}

	return &dto.CheckoutSessionResponse{
		SessionURL: session.URL,
		SessionID:  session.ID,
	}, nil
}

func (u *paymentUsecase) ConfirmCheckout(ctx context.Context, patientID uuid.UUID, req *dto.ConfirmCheckoutRequest) (*dto.SettlementResponse, error) {
	gctx, cancel := context.WithTimeout(ctx, u.gatewayTimeout)
	defer cancel()

	session, err := u.gateway.RetrieveCheckoutSession(gctx, req.SessionID)
	if err != nil {
		u.log.Warnf("Failed to retrieve checkout session: %+v", err)
		return nil, err
	}
	if !session.Paid {
		return nil, ErrCheckoutNotPaid
	}

	appointmentID, err := uuid.Parse(session.AppointmentID)
	if err != nil {
		return nil, ErrSessionMismatch
	}

	return u.settle(ctx, patientID, appointmentID, session.PaymentIntentID)
}

func (u *paymentUsecase) ConfirmPayment(ctx context.Context, patientID uuid.UUID, req *dto.ConfirmPaymentRequest) (*dto.SettlementResponse, error) {
	return u.settle(ctx, patientID, req.AppointmentID, req.PaymentIntentID)
}

// settle records a completed payment and flips the appointment to paid and
// confirmed in one transaction. It is idempotent: re-running with the same
// payment intent, or confirming an already-paid appointment, returns the
// recorded settlement without changing anything.
func (u *paymentUsecase) settle(ctx context.Context, patientID uuid.UUID, appointmentID uuid.UUID, paymentIntentID string) (*dto.SettlementResponse, error) {
	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	appointment, err := u.appointmentRepo.FindByID(tx, appointmentID)
	if err != nil {
		u.log.Warnf("Failed to find appointment: %+v", err)
		return nil, err
	}
	if appointment == nil {
		return nil, ErrAppointmentNotFound
	}
	if appointment.PatientID != patientID {
		return nil, ErrNotParticipant
	}
	if appointment.Status == entity.AppointmentStatusCancelled {
		return nil, ErrAppointmentCancelled
	}

	existing, err := u.settledPayment(tx, appointment, paymentIntentID)
	if err != nil {
		u.log.Warnf("Failed to look up payment: %+v", err)
		return nil, err
	}
	if existing != nil {
		return &dto.SettlementResponse{
			Payment:     *converter.PaymentToResponse(existing),
			Appointment: *converter.AppointmentToResponse(appointment),
		}, nil
	}

	payment := &entity.Payment{
		AppointmentID:   appointment.ID,
		PatientID:       appointment.PatientID,
		DoctorID:        appointment.DoctorID,
		Amount:          appointment.ConsultationFee,
		StripePaymentID: paymentIntentID,
		Status:          entity.PaymentStatusCompleted,
	}

	if err := u.paymentRepo.Create(tx, payment); err != nil {
		// A concurrent confirm won the unique stripe_payment_id race;
		// fall back to returning what it recorded.
		if isDuplicateKeyError(err, "stripe_payment_id") {
			tx.Rollback()
			return u.settledResponse(ctx, paymentIntentID)
		}
		u.log.Warnf("Failed to create payment: %+v", err)
		return nil, err
	}

	appointment.PaymentStatus = entity.PaymentStatePaid
	appointment.PaymentID = paymentIntentID
	if appointment.Status == entity.AppointmentStatusPending {
		// Settlement confirms the appointment as a system action.
		appointment.Status = entity.AppointmentStatusConfirmed
	}

	if err := u.appointmentRepo.Save(tx, appointment); err != nil {
		u.log.Warnf("Failed to save appointment: %+v", err)
		return nil, err
	}

	u.auditService.Record(tx, &patientID, entity.AuditActionPaymentConfirm, entity.JSON{
		"appointment_id": appointment.ID.String(),
		"payment_id":     payment.ID.String(),
		"amount":         payment.Amount,
	})

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	u.notifyConfirmed(ctx, appointment)

	return &dto.SettlementResponse{
		Payment:     *converter.PaymentToResponse(payment),
		Appointment: *converter.AppointmentToResponse(appointment),
	}, nil
}

// settledPayment returns the payment already recorded for this settlement,
// or nil when nothing has been recorded yet. A match on the processor intent
// id wins; a paid appointment with a completed payment under a different
// intent id counts as settled too.
func (u *paymentUsecase) settledPayment(tx *gorm.DB, appointment *entity.Appointment, paymentIntentID string) (*entity.Payment, error) {
	existing, err := u.paymentRepo.FindByStripePaymentID(tx, paymentIntentID)
	if err != nil || existing != nil {
		return existing, err
	}
	if appointment.PaymentStatus != entity.PaymentStatePaid {
		return nil, nil
	}
	return u.paymentRepo.FindCompletedByAppointmentID(tx, appointment.ID)
}

func (u *paymentUsecase) settledResponse(ctx context.Context, paymentIntentID string) (*dto.SettlementResponse, error) {
	db := u.db.WithContext(ctx)

	payment, err := u.paymentRepo.FindByStripePaymentID(db, paymentIntentID)
	if err != nil {
		return nil, err
	}
	if payment == nil {
		return nil, ErrPaymentNotFound
	}

	appointment, err := u.appointmentRepo.FindByID(db, payment.AppointmentID)
	if err != nil {
		return nil, err
	}

	return &dto.SettlementResponse{
		Payment:     *converter.PaymentToResponse(payment),
		Appointment: *converter.AppointmentToResponse(appointment),
	}, nil
}

// refundWindowOpen reports whether the appointment starts far enough in the
// future for its payment to still be refundable.
func refundWindowOpen(appointment *entity.Appointment, now time.Time) bool {
	return appointment.StartsAt().Sub(now) >= RefundWindow
}

func (u *paymentUsecase) Refund(ctx context.Context, adminID uuid.UUID, req *dto.RefundRequest) (*dto.RefundResponse, error) {
	db := u.db.WithContext(ctx)

	payment, err := u.paymentRepo.FindByStripePaymentID(db, req.PaymentIntentID)
	if err != nil {
		u.log.Warnf("Failed to find payment: %+v", err)
		return nil, err
	}
	if payment == nil {
		return nil, ErrPaymentNotFound
	}
	if payment.Status != entity.PaymentStatusCompleted {
		return nil, ErrPaymentNotRefundable
	}

	appointment, err := u.appointmentRepo.FindByID(db, payment.AppointmentID)
	if err != nil {
		u.log.Warnf("Failed to find appointment: %+v", err)
		return nil, err
	}
	if appointment == nil {
		return nil, ErrAppointmentNotFound
	}

	if !refundWindowOpen(appointment, time.Now()) {
		return nil, ErrRefundWindowClosed
	}

	gctx, cancel := context.WithTimeout(ctx, u.gatewayTimeout)
	defer cancel()

	// The processor call happens first. If it fails nothing local changes
	// and the client can retry.
	refund, err := u.gateway.CreateRefund(gctx, payment.StripePaymentID)
	if err != nil {
		u.log.Warnf("Failed to create refund: %+v", err)
		return nil, err
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	payment.Status = entity.PaymentStatusRefunded
	if err := u.paymentRepo.Save(tx, payment); err != nil {
		u.log.Warnf("Failed to save payment: %+v", err)
		return nil, err
	}

	appointment.PaymentStatus = entity.PaymentStateRefunded
	appointment.Status = entity.AppointmentStatusCancelled
	if err := u.appointmentRepo.Save(tx, appointment); err != nil {
		u.log.Warnf("Failed to save appointment: %+v", err)
		return nil, err
	}

	u.auditService.Record(tx, &adminID, entity.AuditActionPaymentRefund, entity.JSON{
		"appointment_id": appointment.ID.String(),
		"payment_id":     payment.ID.String(),
		"refund_id":      refund.ID,
		"amount":         payment.Amount,
	})

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	u.notifyCancelled(ctx, appointment)

	return &dto.RefundResponse{
		Refund:      dto.RefundDetail{ID: refund.ID, Status: refund.Status},
		Appointment: *converter.AppointmentToResponse(appointment),
	}, nil
}

func (u *paymentUsecase) History(ctx context.Context, callerID uuid.UUID, roleID int) (*dto.PaymentListResponse, error) {
	db := u.db.WithContext(ctx)

	var (
		payments []entity.Payment
		err      error
	)
	switch roleID {
	case entity.RoleIDDoctor:
		payments, err = u.paymentRepo.FindByDoctorID(db, callerID)
	case entity.RoleIDAdmin:
		payments, err = u.paymentRepo.FindAll(db)
	default:
		payments, err = u.paymentRepo.FindByPatientID(db, callerID)
	}
	if err != nil {
		u.log.Warnf("Failed to list payments: %+v", err)
		return nil, err
	}

	return &dto.PaymentListResponse{
		Payments: converter.PaymentsToResponses(payments),
		Total:    len(payments),
	}, nil
}

func (u *paymentUsecase) notifyConfirmed(ctx context.Context, appointment *entity.Appointment) {
	patient, doctor := u.participants(ctx, appointment)
	if patient == nil || doctor == nil {
		return
	}
	u.notifier.NotifyAppointmentConfirmed(patient, doctor, appointment)
}

func (u *paymentUsecase) notifyCancelled(ctx context.Context, appointment *entity.Appointment) {
	patient, doctor := u.participants(ctx, appointment)
	if patient == nil || doctor == nil {
		return
	}
	u.notifier.NotifyAppointmentCancelled(patient, doctor, appointment)
}

func (u *paymentUsecase) participants(ctx context.Context, appointment *entity.Appointment) (*entity.User, *entity.User) {
	db := u.db.WithContext(ctx)

	patient, err := u.userRepo.FindByID(db, appointment.PatientID)
	if err != nil {
		u.log.Warnf("Failed to load patient for notification: %+v", err)
		return nil, nil
	}
	doctor, err := u.userRepo.FindByID(db, appointment.DoctorID)
	if err != nil {
		u.log.Warnf("Failed to load doctor for notification: %+v", err)
		return nil, nil
	}
	return patient, doctor
}
