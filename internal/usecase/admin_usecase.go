package usecase

import (
	"context"

	"medibook/internal/converter"
	"medibook/internal/delivery/dto"
	"medibook/internal/domain/entity"
	"medibook/internal/domain/repository"
	"medibook/internal/service"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type AdminUsecase interface {
	GetPendingDoctors(ctx context.Context) (*dto.DoctorListResponse, error)
	ApproveDoctor(ctx context.Context, adminID, doctorID uuid.UUID) (*dto.UserResponse, error)
	RejectDoctor(ctx context.Context, adminID, doctorID uuid.UUID) error
	GetAllDoctors(ctx context.Context) (*dto.DoctorListResponse, error)
	GetAllPatients(ctx context.Context) (*dto.PatientListResponse, error)
	DeleteDoctor(ctx context.Context, adminID, doctorID uuid.UUID) error
	DeletePatient(ctx context.Context, adminID, patientID uuid.UUID) error
	GetStats(ctx context.Context) (*dto.StatsResponse, error)
	GetRevenue(ctx context.Context) (*dto.RevenueResponse, error)
}

type adminUsecase struct {
	db                 *gorm.DB
	log                *logrus.Logger
	userRepo           repository.UserRepository
	doctorProfileRepo  repository.DoctorProfileRepository
	patientProfileRepo repository.PatientProfileRepository
	availabilityRepo   repository.AvailabilityRepository
	appointmentRepo    repository.AppointmentRepository
	paymentRepo        repository.PaymentRepository
	auditService       service.AuditService
}

func NewAdminUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	userRepo repository.UserRepository,
	doctorProfileRepo repository.DoctorProfileRepository,
	patientProfileRepo repository.PatientProfileRepository,
	availabilityRepo repository.AvailabilityRepository,
	appointmentRepo repository.AppointmentRepository,
	paymentRepo repository.PaymentRepository,
	auditService service.AuditService,
) AdminUsecase {
	return &adminUsecase{
		db:                 db,
		log:                log,
		userRepo:           userRepo,
		doctorProfileRepo:  doctorProfileRepo,
		patientProfileRepo: patientProfileRepo,
		availabilityRepo:   availabilityRepo,
		appointmentRepo:    appointmentRepo,
		paymentRepo:        paymentRepo,
		auditService:       auditService,
	}
}

func (u *adminUsecase) GetPendingDoctors(ctx context.Context) (*dto.DoctorListResponse, error) {
	doctors, err := u.userRepo.FindPendingDoctors(u.db.WithContext(ctx))
	if err != nil {
		u.log.Warnf("Failed to find pending doctors: %+v", err)
		return nil, err
	}

	return &dto.DoctorListResponse{
		Doctors: converter.DoctorsToResponses(doctors),
		Total:   len(doctors),
	}, nil
}

func (u *adminUsecase) ApproveDoctor(ctx context.Context, adminID, doctorID uuid.UUID) (*dto.UserResponse, error) {
	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	doctor, err := u.findDoctor(tx, doctorID)
	if err != nil {
		return nil, err
	}

	doctor.IsApproved = true
	if err := u.userRepo.Update(tx, doctor); err != nil {
		u.log.Warnf("Failed to approve doctor: %+v", err)
		return nil, err
	}

	u.auditService.Record(tx, &adminID, entity.AuditActionDoctorApprove, entity.JSON{
		"doctor_id": doctorID.String(),
	})

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	return converter.UserToResponse(doctor), nil
}

func (u *adminUsecase) RejectDoctor(ctx context.Context, adminID, doctorID uuid.UUID) error {
	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	doctor, err := u.findDoctor(tx, doctorID)
	if err != nil {
		return err
	}

	// Rejection deactivates the account but keeps the record. Removal is
	// a separate, explicit delete.
	doctor.IsApproved = false
	doctor.IsActive = false
	if err := u.userRepo.Update(tx, doctor); err != nil {
		u.log.Warnf("Failed to reject doctor: %+v", err)
		return err
	}

	u.auditService.Record(tx, &adminID, entity.AuditActionDoctorReject, entity.JSON{
		"doctor_id": doctorID.String(),
	})

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return err
	}

	return nil
}

func (u *adminUsecase) GetAllDoctors(ctx context.Context) (*dto.DoctorListResponse, error) {
	doctors, err := u.userRepo.FindActiveByRole(u.db.WithContext(ctx), entity.RoleIDDoctor)
	if err != nil {
		u.log.Warnf("Failed to find doctors: %+v", err)
		return nil, err
	}

	return &dto.DoctorListResponse{
		Doctors: converter.DoctorsToResponses(doctors),
		Total:   len(doctors),
	}, nil
}

func (u *adminUsecase) GetAllPatients(ctx context.Context) (*dto.PatientListResponse, error) {
	patients, err := u.userRepo.FindActiveByRole(u.db.WithContext(ctx), entity.RoleIDPatient)
	if err != nil {
		u.log.Warnf("Failed to find patients: %+v", err)
		return nil, err
	}

	return &dto.PatientListResponse{
		Patients: converter.PatientsToResponses(patients),
		Total:    len(patients),
	}, nil
}

func (u *adminUsecase) DeleteDoctor(ctx context.Context, adminID, doctorID uuid.UUID) error {
	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	if _, err := u.findDoctor(tx, doctorID); err != nil {
		return err
	}

	if err := u.removeDoctor(tx, doctorID); err != nil {
		return err
	}

	u.auditService.Record(tx, &adminID, entity.AuditActionDoctorDelete, entity.JSON{
		"doctor_id": doctorID.String(),
	})

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return err
	}

	return nil
}

func (u *adminUsecase) DeletePatient(ctx context.Context, adminID, patientID uuid.UUID) error {
	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	patient, err := u.userRepo.FindByID(tx, patientID)
	if err != nil {
		u.log.Warnf("Failed to find patient: %+v", err)
		return err
	}
	if patient == nil || patient.RoleID != entity.RoleIDPatient {
		return ErrPatientNotFound
	}

	if err := u.paymentRepo.DeleteByPatientID(tx, patientID); err != nil {
		u.log.Warnf("Failed to delete payments: %+v", err)
		return err
	}
	if err := u.appointmentRepo.DeleteByPatientID(tx, patientID); err != nil {
		u.log.Warnf("Failed to delete appointments: %+v", err)
		return err
	}
	if err := u.patientProfileRepo.DeleteByUserID(tx, patientID); err != nil {
		u.log.Warnf("Failed to delete patient profile: %+v", err)
		return err
	}
	if err := u.userRepo.Delete(tx, patientID); err != nil {
		u.log.Warnf("Failed to delete user: %+v", err)
		return err
	}

	u.auditService.Record(tx, &adminID, entity.AuditActionPatientDelete, entity.JSON{
		"patient_id": patientID.String(),
	})

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return err
	}

	return nil
}

func (u *adminUsecase) GetStats(ctx context.Context) (*dto.StatsResponse, error) {
	db := u.db.WithContext(ctx)

	totalPatients, err := u.userRepo.CountActiveByRole(db, entity.RoleIDPatient)
	if err != nil {
		u.log.Warnf("Failed to count patients: %+v", err)
		return nil, err
	}

	totalDoctors, err := u.userRepo.CountApprovedDoctors(db)
	if err != nil {
		u.log.Warnf("Failed to count doctors: %+v", err)
		return nil, err
	}

	totalAppointments, err := u.appointmentRepo.Count(db)
	if err != nil {
		u.log.Warnf("Failed to count appointments: %+v", err)
		return nil, err
	}

	totalRevenue, err := u.paymentRepo.SumCompletedAmount(db)
	if err != nil {
		u.log.Warnf("Failed to sum revenue: %+v", err)
		return nil, err
	}

	return &dto.StatsResponse{
		TotalPatients:     totalPatients,
		TotalDoctors:      totalDoctors,
		TotalAppointments: totalAppointments,
		TotalRevenue:      totalRevenue,
	}, nil
}

func (u *adminUsecase) GetRevenue(ctx context.Context) (*dto.RevenueResponse, error) {
	db := u.db.WithContext(ctx)

	payments, err := u.paymentRepo.FindCompleted(db)
	if err != nil {
		u.log.Warnf("Failed to find completed payments: %+v", err)
		return nil, err
	}

	totalRevenue, err := u.paymentRepo.SumCompletedAmount(db)
	if err != nil {
		u.log.Warnf("Failed to sum revenue: %+v", err)
		return nil, err
	}

	return &dto.RevenueResponse{
		TotalRevenue: totalRevenue,
		Payments:     converter.PaymentsToResponses(payments),
	}, nil
}

func (u *adminUsecase) findDoctor(tx *gorm.DB, doctorID uuid.UUID) (*entity.User, error) {
	doctor, err := u.userRepo.FindByID(tx, doctorID)
	if err != nil {
		u.log.Warnf("Failed to find doctor: %+v", err)
		return nil, err
	}
	if doctor == nil || doctor.RoleID != entity.RoleIDDoctor {
		return nil, ErrDoctorNotFound
	}
	return doctor, nil
}

// removeDoctor deletes a doctor account and everything hanging off it.
func (u *adminUsecase) removeDoctor(tx *gorm.DB, doctorID uuid.UUID) error {
	if err := u.paymentRepo.DeleteByDoctorID(tx, doctorID); err != nil {
		u.log.Warnf("Failed to delete payments: %+v", err)
		return err
	}
	if err := u.appointmentRepo.DeleteByDoctorID(tx, doctorID); err != nil {
		u.log.Warnf("Failed to delete appointments: %+v", err)
		return err
	}
	if err := u.availabilityRepo.DeleteByDoctorID(tx, doctorID); err != nil {
		u.log.Warnf("Failed to delete availability: %+v", err)
		return err
	}
	if err := u.doctorProfileRepo.DeleteByUserID(tx, doctorID); err != nil {
		u.log.Warnf("Failed to delete doctor profile: %+v", err)
		return err
	}
	if err := u.userRepo.Delete(tx, doctorID); err != nil {
		u.log.Warnf("Failed to delete user: %+v", err)
		return err
	}
	return nil
}
