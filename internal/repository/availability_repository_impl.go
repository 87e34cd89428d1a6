package repository

import (
	"medibook/internal/domain/entity"
	domainRepo "medibook/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type availabilityRepository struct{}

func NewAvailabilityRepository() domainRepo.AvailabilityRepository {
	return &availabilityRepository{}
}

func (r *availabilityRepository) FindByDoctorID(db *gorm.DB, doctorID uuid.UUID) ([]entity.DoctorAvailability, error) {
	var entries []entity.DoctorAvailability
	err := db.Where("doctor_id = ?", doctorID).Order("id ASC").Find(&entries).Error
	if err != nil {
		return nil, err
	}
	return entries, nil
}

func (r *availabilityRepository) ReplaceForDoctor(db *gorm.DB, doctorID uuid.UUID, entries []entity.DoctorAvailability) error {
	if err := db.Where("doctor_id = ?", doctorID).Delete(&entity.DoctorAvailability{}).Error; err != nil {
		return err
	}
	if len(entries) == 0 {
		return nil
	}
	for i := range entries {
		entries[i].ID = 0
		entries[i].DoctorID = doctorID
	}
	return db.Create(&entries).Error
}

func (r *availabilityRepository) DeleteByDoctorID(db *gorm.DB, doctorID uuid.UUID) error {
	return db.Where("doctor_id = ?", doctorID).Delete(&entity.DoctorAvailability{}).Error
}
