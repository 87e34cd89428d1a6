package entity

import "github.com/google/uuid"

// DoctorProfile represents doctor-specific profile data.
// ConsultationFee is an integer amount in minor currency units (cents).
type DoctorProfile struct {
	UserID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"user_id"`
	Specialty       string    `gorm:"type:varchar(100);not null;index" json:"specialty"`
	LicenseNumber   string    `gorm:"type:varchar(50);uniqueIndex;not null" json:"license_number"`
	ExperienceYears int       `gorm:"not null;default:0" json:"experience_years"`
	ConsultationFee int64     `gorm:"not null;default:0" json:"consultation_fee"`
	Address         string    `gorm:"type:text" json:"address,omitempty"`
	City            string    `gorm:"type:varchar(100);index" json:"city,omitempty"`
	State           string    `gorm:"type:varchar(100);index" json:"state,omitempty"`
	Bio             string    `gorm:"type:text" json:"bio,omitempty"`

	// Relationships
	User         User                 `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Availability []DoctorAvailability `gorm:"foreignKey:DoctorID" json:"availability,omitempty"`
}

func (DoctorProfile) TableName() string {
	return "doctor_profiles"
}
