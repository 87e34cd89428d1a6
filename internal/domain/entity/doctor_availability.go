package entity

import "github.com/google/uuid"

// Weekday names as stored in availability templates, indexed Sunday=0 to match
// time.Weekday so matching is locale-independent.
var DayNames = [7]string{"Sunday", "Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday"}

// DoctorAvailability is one entry of a doctor's recurring weekly template:
// at most one entry per weekday per doctor. The whole set is replaced on
// update, never mutated incrementally.
type DoctorAvailability struct {
	ID          int       `gorm:"primaryKey;autoIncrement" json:"id"`
	DoctorID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uq_doctor_availability_day" json:"doctor_id"`
	Day         string    `gorm:"type:varchar(10);not null;uniqueIndex:uq_doctor_availability_day" json:"day"`
	StartTime   string    `gorm:"type:varchar(5);not null" json:"start_time"`
	EndTime     string    `gorm:"type:varchar(5);not null" json:"end_time"`
	IsAvailable bool      `gorm:"not null;default:true" json:"is_available"`
}

func (DoctorAvailability) TableName() string {
	return "doctor_availabilities"
}
