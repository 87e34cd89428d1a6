package usecase

import (
	"context"
	"errors"
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

var (
	ErrAppointmentNotFound = errors.New("appointment not found")
	ErrPatientNotFound     = errors.New("patient not found")
	ErrDoctorNotBookable   = errors.New("doctor is not available for booking")
	ErrDoctorUnavailable   = errors.New("doctor is not available at the requested time")
	ErrSlotConflict        = errors.New("the requested slot is already booked")
	ErrProposalExists      = errors.New("a proposal for this slot already exists")
	ErrNotParticipant      = errors.New("appointment does not belong to caller")
	ErrInvalidStatus       = errors.New("invalid appointment status")
)

type AppointmentUsecase interface {
	Book(ctx context.Context, patientID uuid.UUID, req *dto.BookAppointmentRequest) (*dto.AppointmentResponse, error)
	Propose(ctx context.Context, doctorID uuid.UUID, req *dto.ProposeAppointmentRequest) (*dto.AppointmentResponse, error)
	Accept(ctx context.Context, patientID uuid.UUID, appointmentID uuid.UUID) (*dto.AppointmentResponse, error)
	UpdateStatus(ctx context.Context, callerID uuid.UUID, roleID int, appointmentID uuid.UUID, status string) (*dto.AppointmentResponse, error)
	Cancel(ctx context.Context, callerID uuid.UUID, roleID int, appointmentID uuid.UUID) (*dto.CancelAppointmentResponse, error)
	GetAppointment(ctx context.Context, callerID uuid.UUID, roleID int, appointmentID uuid.UUID) (*dto.AppointmentResponse, error)
	ListMyAppointments(ctx context.Context, callerID uuid.UUID, roleID int) (*dto.AppointmentListResponse, error)
}

type appointmentUsecase struct {
	db                *gorm.DB
	log               *logrus.Logger
	userRepo          repository.UserRepository
	doctorProfileRepo repository.DoctorProfileRepository
	availabilityRepo  repository.AvailabilityRepository
	appointmentRepo   repository.AppointmentRepository
	auditService      service.AuditService
}

func NewAppointmentUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	userRepo repository.UserRepository,
	doctorProfileRepo repository.DoctorProfileRepository,
	availabilityRepo repository.AvailabilityRepository,
	appointmentRepo repository.AppointmentRepository,
	auditService service.AuditService,
) AppointmentUsecase {
	return &appointmentUsecase{
		db:                db,
		log:               log,
		userRepo:          userRepo,
		doctorProfileRepo: doctorProfileRepo,
		availabilityRepo:  availabilityRepo,
		appointmentRepo:   appointmentRepo,
		auditService:      auditService,
	}
}

func (u *appointmentUsecase) Book(ctx context.Context, patientID uuid.UUID, req *dto.BookAppointmentRequest) (*dto.AppointmentResponse, error) {
	date, err := time.Parse("2006-01-02", req.AppointmentDate)
	if err != nil {
		return nil, ErrInvalidDateFormat
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	doctor, err := u.userRepo.FindByID(tx, req.DoctorID)
	if err != nil {
		u.log.Warnf("Failed to find doctor: %+v", err)
		return nil, err
	}
	if doctor == nil || !doctor.IsBookableDoctor() {
		return nil, ErrDoctorNotBookable
	}

	profile, err := u.doctorProfileRepo.FindByUserID(tx, req.DoctorID)
	if err != nil {
		u.log.Warnf("Failed to find doctor profile: %+v", err)
		return nil, err
	}
	if profile == nil {
		return nil, ErrDoctorNotBookable
	}

	availability, err := u.availabilityRepo.FindByDoctorID(tx, req.DoctorID)
	if err != nil {
		u.log.Warnf("Failed to find availability: %+v", err)
		return nil, err
	}
	if !withinAvailability(availability, date, req.AppointmentTime) {
		return nil, ErrDoctorUnavailable
	}

	existing, err := u.appointmentRepo.FindActiveSlot(tx, req.DoctorID, date, req.AppointmentTime)
	if err != nil {
		u.log.Warnf("Failed to check slot: %+v", err)
		return nil, err
	}
	if existing != nil {
		return nil, ErrSlotConflict
	}

	appointment := &entity.Appointment{
		PatientID:       patientID,
		DoctorID:        req.DoctorID,
		AppointmentDate: date,
		AppointmentTime: req.AppointmentTime,
		DurationMinutes: 30,
		// The stored fee is the doctor's current listed fee, not the
		// client-supplied one.
		ConsultationFee: profile.ConsultationFee,
		Status:          entity.AppointmentStatusPending,
		PaymentStatus:   entity.PaymentStatePending,
		Notes:           req.Notes,
	}

	if err := u.appointmentRepo.Create(tx, appointment); err != nil {
		// The partial unique index on active slots is the authoritative
		// guard against concurrent double-booking.
		if isDuplicateKeyError(err, "uq_appointments_active_slot") {
			return nil, ErrSlotConflict
		}
		u.log.Warnf("Failed to create appointment: %+v", err)
		return nil, err
	}

	u.auditService.Record(tx, &patientID, entity.AuditActionAppointmentBook, entity.JSON{
		"appointment_id": appointment.ID.String(),
		"doctor_id":      req.DoctorID.String(),
	})

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	return converter.AppointmentToResponse(appointment), nil
}

func (u *appointmentUsecase) Propose(ctx context.Context, doctorID uuid.UUID, req *dto.ProposeAppointmentRequest) (*dto.AppointmentResponse, error) {
	date, err := time.Parse("2006-01-02", req.AppointmentDate)
	if err != nil {
		return nil, ErrInvalidDateFormat
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	patient, err := u.userRepo.FindByID(tx, req.PatientID)
	if err != nil {
		u.log.Warnf("Failed to find patient: %+v", err)
		return nil, err
	}
	if patient == nil || patient.RoleID != entity.RoleIDPatient {
		return nil, ErrPatientNotFound
	}

	existing, err := u.appointmentRepo.FindActiveProposal(tx, doctorID, req.PatientID, date, req.AppointmentTime)
	if err != nil {
		u.log.Warnf("Failed to check proposal: %+v", err)
		return nil, err
	}
	if existing != nil {
		return nil, ErrProposalExists
	}

	appointment := &entity.Appointment{
		PatientID:       req.PatientID,
		DoctorID:        doctorID,
		AppointmentDate: date,
		AppointmentTime: req.AppointmentTime,
		DurationMinutes: 30,
		ConsultationFee: req.ConsultationFee,
		Status:          entity.AppointmentStatusProposed,
		PaymentStatus:   entity.PaymentStatePending,
		Notes:           req.Notes,
	}

	if err := u.appointmentRepo.Create(tx, appointment); err != nil {
		if isDuplicateKeyError(err, "uq_appointments_active_slot") {
			return nil, ErrSlotConflict
		}
		u.log.Warnf("Failed to create proposal: %+v", err)
		return nil, err
	}

	u.auditService.Record(tx, &doctorID, entity.AuditActionAppointmentPropose, entity.JSON{
		"appointment_id": appointment.ID.String(),
		"patient_id":     req.PatientID.String(),
	})

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	return converter.AppointmentToResponse(appointment), nil
}

func (u *appointmentUsecase) Accept(ctx context.Context, patientID uuid.UUID, appointmentID uuid.UUID) (*dto.AppointmentResponse, error) {
	return u.transition(ctx, patientID, entity.RoleIDPatient, appointmentID,
		entity.AppointmentStatusPending, entity.AuditActionAppointmentAccept)
}

func (u *appointmentUsecase) UpdateStatus(ctx context.Context, callerID uuid.UUID, roleID int, appointmentID uuid.UUID, status string) (*dto.AppointmentResponse, error) {
	target := entity.AppointmentStatus(status)
	switch target {
	case entity.AppointmentStatusConfirmed, entity.AppointmentStatusCompleted, entity.AppointmentStatusCancelled:
	default:
		return nil, ErrInvalidStatus
	}

	action := entity.AuditActionAppointmentStatus
	if target == entity.AppointmentStatusCancelled {
		action = entity.AuditActionAppointmentCancel
	}

	return u.transition(ctx, callerID, roleID, appointmentID, target, action)
}

func (u *appointmentUsecase) Cancel(ctx context.Context, callerID uuid.UUID, roleID int, appointmentID uuid.UUID) (*dto.CancelAppointmentResponse, error) {
	appointment, err := u.transition(ctx, callerID, roleID, appointmentID,
		entity.AppointmentStatusCancelled, entity.AuditActionAppointmentCancel)
	if err != nil {
		return nil, err
	}

	return &dto.CancelAppointmentResponse{
		Message:     "Appointment cancelled",
		Appointment: *appointment,
	}, nil
}

// transition loads the appointment, applies the status-transition policy,
// and persists the new status in one transaction.
func (u *appointmentUsecase) transition(ctx context.Context, callerID uuid.UUID, roleID int, appointmentID uuid.UUID, target entity.AppointmentStatus, auditAction string) (*dto.AppointmentResponse, error) {
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

	if err := entity.AuthorizeTransition(callerID, roleID, appointment, target); err != nil {
		return nil, err
	}

	from := appointment.Status
	appointment.Status = target

	if err := u.appointmentRepo.Save(tx, appointment); err != nil {
		u.log.Warnf("Failed to save appointment: %+v", err)
		return nil, err
	}

	u.auditService.Record(tx, &callerID, auditAction, entity.JSON{
		"appointment_id": appointment.ID.String(),
		"from":           string(from),
		"to":             string(target),
	})

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	return converter.AppointmentToResponse(appointment), nil
}

func (u *appointmentUsecase) GetAppointment(ctx context.Context, callerID uuid.UUID, roleID int, appointmentID uuid.UUID) (*dto.AppointmentResponse, error) {
	appointment, err := u.appointmentRepo.FindByID(u.db.WithContext(ctx), appointmentID)
	if err != nil {
		u.log.Warnf("Failed to find appointment: %+v", err)
		return nil, err
	}
	if appointment == nil {
		return nil, ErrAppointmentNotFound
	}

	if roleID != entity.RoleIDAdmin && callerID != appointment.PatientID && callerID != appointment.DoctorID {
		return nil, ErrNotParticipant
	}

	return converter.AppointmentToResponse(appointment), nil
}

func (u *appointmentUsecase) ListMyAppointments(ctx context.Context, callerID uuid.UUID, roleID int) (*dto.AppointmentListResponse, error) {
	db := u.db.WithContext(ctx)

	var (
		appointments []entity.Appointment
		err          error
	)
	switch roleID {
	case entity.RoleIDDoctor:
		appointments, err = u.appointmentRepo.FindByDoctorID(db, callerID)
	case entity.RoleIDAdmin:
		appointments, err = u.appointmentRepo.FindAll(db)
	default:
		appointments, err = u.appointmentRepo.FindByPatientID(db, callerID)
	}
	if err != nil {
		u.log.Warnf("Failed to list appointments: %+v", err)
		return nil, err
	}

	return &dto.AppointmentListResponse{
		Appointments: converter.AppointmentsToResponses(appointments),
		Total:        len(appointments),
	}, nil
}

// withinAvailability reports whether the requested wall-clock slot falls
// inside the doctor's weekly template for that weekday. The end bound is
// exclusive so a 17:00 close rejects a 17:00 start.
func withinAvailability(entries []entity.DoctorAvailability, date time.Time, timeOfDay string) bool {
	day := entity.DayNames[date.Weekday()]
	for _, e := range entries {
		if e.Day != day || !e.IsAvailable {
			continue
		}
		return timeOfDay >= e.StartTime && timeOfDay < e.EndTime
	}
	return false
}
