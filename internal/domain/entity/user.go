package entity

import (
	"time"

	"github.com/google/uuid"
)

// User represents the centralized account table. Doctors start with
// IsApproved=false and stay invisible to patients until an admin approves them.
type User struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	RoleID     int       `gorm:"not null;index" json:"role_id"`
	Email      string    `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"`
	Password   string    `gorm:"type:text;not null" json:"-"`
	FullName   string    `gorm:"type:varchar(255);not null" json:"full_name"`
	Phone      string    `gorm:"type:varchar(20)" json:"phone,omitempty"`
	IsActive   bool      `gorm:"not null;default:true;index" json:"is_active"`
	IsApproved bool      `gorm:"not null;default:true;index" json:"is_approved"`
	CreatedAt  time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt  time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationships
	Role           Role            `gorm:"foreignKey:RoleID" json:"role,omitempty"`
	DoctorProfile  *DoctorProfile  `gorm:"foreignKey:UserID" json:"doctor_profile,omitempty"`
	PatientProfile *PatientProfile `gorm:"foreignKey:UserID" json:"patient_profile,omitempty"`
}

func (User) TableName() string {
	return "users"
}

// IsBookableDoctor reports whether this account can be booked by patients.
func (u *User) IsBookableDoctor() bool {
	return u.RoleID == RoleIDDoctor && u.IsApproved && u.IsActive
}
