package usecase

import (
	"context"
	"errors"

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
	ErrDoctorNotFound       = errors.New("doctor not found")
	ErrLicenseAlreadyExists = errors.New("license number already registered")
	ErrInvalidTimeWindow    = errors.New("start time must be before end time")
)

type DoctorUsecase interface {
	UpsertProfile(ctx context.Context, doctorID uuid.UUID, req *dto.UpsertDoctorProfileRequest) (*dto.DoctorResponse, error)
	UpdateAvailability(ctx context.Context, doctorID uuid.UUID, req *dto.UpdateAvailabilityRequest) (*dto.DoctorResponse, error)
	SearchDoctors(ctx context.Context, specialty, city, state string) (*dto.DoctorListResponse, error)
	GetDoctor(ctx context.Context, doctorID uuid.UUID) (*dto.DoctorResponse, error)
}

type doctorUsecase struct {
	db                *gorm.DB
	log               *logrus.Logger
	userRepo          repository.UserRepository
	doctorProfileRepo repository.DoctorProfileRepository
	availabilityRepo  repository.AvailabilityRepository
	auditService      service.AuditService
}

func NewDoctorUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	userRepo repository.UserRepository,
	doctorProfileRepo repository.DoctorProfileRepository,
	availabilityRepo repository.AvailabilityRepository,
	auditService service.AuditService,
) DoctorUsecase {
	return &doctorUsecase{
		db:                db,
		log:               log,
		userRepo:          userRepo,
		doctorProfileRepo: doctorProfileRepo,
		availabilityRepo:  availabilityRepo,
		auditService:      auditService,
	}
}

func (u *doctorUsecase) UpsertProfile(ctx context.Context, doctorID uuid.UUID, req *dto.UpsertDoctorProfileRequest) (*dto.DoctorResponse, error) {
	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	user, err := u.userRepo.FindByID(tx, doctorID)
	if err != nil {
		u.log.Warnf("Failed to find doctor: %+v", err)
		return nil, err
	}
	if user == nil || user.RoleID != entity.RoleIDDoctor {
		return nil, ErrDoctorNotFound
	}

	profile, err := u.doctorProfileRepo.FindByUserID(tx, doctorID)
	if err != nil {
		u.log.Warnf("Failed to find doctor profile: %+v", err)
		return nil, err
	}
	if profile == nil {
		profile = &entity.DoctorProfile{UserID: doctorID}
	}

	profile.Specialty = req.Specialty
	profile.LicenseNumber = req.LicenseNumber
	profile.ExperienceYears = req.ExperienceYears
	profile.ConsultationFee = req.ConsultationFee
	profile.Address = req.Address
	profile.City = req.City
	profile.State = req.State
	profile.Bio = req.Bio

	if err := u.doctorProfileRepo.Save(tx, profile); err != nil {
		if isDuplicateKeyError(err, "license_number") {
			return nil, ErrLicenseAlreadyExists
		}
		u.log.Warnf("Failed to save doctor profile: %+v", err)
		return nil, err
	}

	u.auditService.Record(tx, &doctorID, entity.AuditActionProfileUpdate, entity.JSON{
		"specialty": req.Specialty,
	})

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	user.DoctorProfile = profile
	return converter.DoctorToResponse(user), nil
}

func (u *doctorUsecase) UpdateAvailability(ctx context.Context, doctorID uuid.UUID, req *dto.UpdateAvailabilityRequest) (*dto.DoctorResponse, error) {
	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	user, err := u.userRepo.FindByID(tx, doctorID)
	if err != nil {
		u.log.Warnf("Failed to find doctor: %+v", err)
		return nil, err
	}
	if user == nil || user.RoleID != entity.RoleIDDoctor {
		return nil, ErrDoctorNotFound
	}

	entries := make([]entity.DoctorAvailability, len(req.Availability))
	for i, e := range req.Availability {
		if e.StartTime >= e.EndTime {
			return nil, ErrInvalidTimeWindow
		}
		entries[i] = entity.DoctorAvailability{
			DoctorID:    doctorID,
			Day:         e.Day,
			StartTime:   e.StartTime,
			EndTime:     e.EndTime,
			IsAvailable: e.IsAvailable,
		}
	}

	if err := u.availabilityRepo.ReplaceForDoctor(tx, doctorID, entries); err != nil {
		u.log.Warnf("Failed to replace availability: %+v", err)
		return nil, err
	}

	u.auditService.Record(tx, &doctorID, entity.AuditActionAvailabilityUpdate, entity.JSON{
		"entries": len(entries),
	})

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	return u.GetDoctor(ctx, doctorID)
}

func (u *doctorUsecase) SearchDoctors(ctx context.Context, specialty, city, state string) (*dto.DoctorListResponse, error) {
	db := u.db.WithContext(ctx)

	profiles, err := u.doctorProfileRepo.Search(db, specialty, city, state)
	if err != nil {
		u.log.Warnf("Failed to search doctors: %+v", err)
		return nil, err
	}

	doctors := make([]dto.DoctorResponse, 0, len(profiles))
	for i := range profiles {
		p := &profiles[i]
		user := p.User
		user.DoctorProfile = p
		doctors = append(doctors, *converter.DoctorToResponse(&user))
	}

	return &dto.DoctorListResponse{
		Doctors: doctors,
		Total:   len(doctors),
	}, nil
}

func (u *doctorUsecase) GetDoctor(ctx context.Context, doctorID uuid.UUID) (*dto.DoctorResponse, error) {
	db := u.db.WithContext(ctx)

	user, err := u.userRepo.FindByID(db, doctorID)
	if err != nil {
		u.log.Warnf("Failed to find doctor: %+v", err)
		return nil, err
	}
	if user == nil || user.RoleID != entity.RoleIDDoctor {
		return nil, ErrDoctorNotFound
	}

	profile, err := u.doctorProfileRepo.FindByUserID(db, doctorID)
	if err != nil {
		u.log.Warnf("Failed to find doctor profile: %+v", err)
		return nil, err
	}
	if profile != nil {
		availability, err := u.availabilityRepo.FindByDoctorID(db, doctorID)
		if err != nil {
			u.log.Warnf("Failed to find availability: %+v", err)
			return nil, err
		}
		profile.Availability = availability
		user.DoctorProfile = profile
	}

	return converter.DoctorToResponse(user), nil
}
