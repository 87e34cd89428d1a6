package repository

import (
	"medibook/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type UserRepository interface {
	Create(db *gorm.DB, user *entity.User) error
	FindByEmail(db *gorm.DB, email string) (*entity.User, error)
	FindByID(db *gorm.DB, id uuid.UUID) (*entity.User, error)
	Update(db *gorm.DB, user *entity.User) error
	Delete(db *gorm.DB, id uuid.UUID) error
	FindActiveByRole(db *gorm.DB, roleID int) ([]entity.User, error)
	FindPendingDoctors(db *gorm.DB) ([]entity.User, error)
	CountActiveByRole(db *gorm.DB, roleID int) (int64, error)
	CountApprovedDoctors(db *gorm.DB) (int64, error)
}
