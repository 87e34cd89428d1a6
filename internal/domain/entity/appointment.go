package entity

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// AppointmentStatus represents the lifecycle status of an appointment
type AppointmentStatus string

const (
	AppointmentStatusProposed  AppointmentStatus = "proposed"
	AppointmentStatusPending   AppointmentStatus = "pending"
	AppointmentStatusConfirmed AppointmentStatus = "confirmed"
	AppointmentStatusCompleted AppointmentStatus = "completed"
	AppointmentStatusCancelled AppointmentStatus = "cancelled"
)

// PaymentState represents the payment status carried on an appointment
type PaymentState string

const (
	PaymentStatePending  PaymentState = "pending"
	PaymentStatePaid     PaymentState = "paid"
	PaymentStateRefunded PaymentState = "refunded"
)

var (
	ErrTransitionForbidden = errors.New("caller is not allowed to perform this transition")
	ErrTransitionInvalid   = errors.New("transition not allowed from current status")
)

// Appointment represents a scheduled consultation slot between one patient and
// one doctor. ConsultationFee is in minor currency units (cents). The slot
// (doctor, date, time) is kept unique among non-cancelled appointments by a
// partial unique index in the database.
type Appointment struct {
	ID              uuid.UUID         `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	PatientID       uuid.UUID         `gorm:"type:uuid;not null;index" json:"patient_id"`
	DoctorID        uuid.UUID         `gorm:"type:uuid;not null;index" json:"doctor_id"`
	AppointmentDate time.Time         `gorm:"type:date;not null" json:"appointment_date"`
	AppointmentTime string            `gorm:"type:varchar(5);not null" json:"appointment_time"`
	DurationMinutes int               `gorm:"not null;default:30" json:"duration_minutes"`
	ConsultationFee int64             `gorm:"not null" json:"consultation_fee"`
	Status          AppointmentStatus `gorm:"type:varchar(20);not null;default:'pending';index" json:"status"`
	PaymentStatus   PaymentState      `gorm:"type:varchar(20);not null;default:'pending'" json:"payment_status"`
	PaymentID       string            `gorm:"type:varchar(255)" json:"payment_id,omitempty"`
	Notes           string            `gorm:"type:text" json:"notes,omitempty"`
	CreatedAt       time.Time         `gorm:"autoCreateTime" json:"created_at"`

	// Relationships
	Patient User `gorm:"foreignKey:PatientID" json:"patient,omitempty"`
	Doctor  User `gorm:"foreignKey:DoctorID" json:"doctor,omitempty"`
}

func (Appointment) TableName() string {
	return "appointments"
}

// IsTerminal reports whether no further status transitions are permitted.
func (a *Appointment) IsTerminal() bool {
	return a.Status == AppointmentStatusCompleted || a.Status == AppointmentStatusCancelled
}

// StartsAt composes the scheduled wall-clock instant from the calendar date
// and the HH:MM time-of-day string. Seconds are zeroed.
func (a *Appointment) StartsAt() time.Time {
	hour, minute := splitClock(a.AppointmentTime)
	d := a.AppointmentDate
	return time.Date(d.Year(), d.Month(), d.Day(), hour, minute, 0, 0, d.Location())
}

func splitClock(hhmm string) (hour, minute int) {
	if len(hhmm) < 5 {
		return 0, 0
	}
	hour = int(hhmm[0]-'0')*10 + int(hhmm[1]-'0')
	minute = int(hhmm[3]-'0')*10 + int(hhmm[4]-'0')
	return hour, minute
}

// transitionRule names who may drive one edge of the state machine.
type transitionRule struct {
	from  AppointmentStatus
	to    AppointmentStatus
	actor string // "patient" or "doctor", always the one named on the appointment
}

var transitionRules = []transitionRule{
	{AppointmentStatusProposed, AppointmentStatusPending, RolePatient},
	{AppointmentStatusPending, AppointmentStatusConfirmed, RoleDoctor},
	{AppointmentStatusConfirmed, AppointmentStatusCompleted, RoleDoctor},
	{AppointmentStatusProposed, AppointmentStatusCancelled, RolePatient},
	{AppointmentStatusPending, AppointmentStatusCancelled, RolePatient},
	{AppointmentStatusConfirmed, AppointmentStatusCancelled, RolePatient},
}

// AuthorizeTransition is the single authorization policy for appointment
// status changes: it decides, from the caller identity and role plus the
// appointment's current status, whether the requested transition is legal.
// Settlement-driven confirmation bypasses this policy (system action).
func AuthorizeTransition(callerID uuid.UUID, roleID int, a *Appointment, target AppointmentStatus) error {
	if a.IsTerminal() {
		return ErrTransitionInvalid
	}

	for _, rule := range transitionRules {
		if rule.from != a.Status || rule.to != target {
			continue
		}
		switch rule.actor {
		case RolePatient:
			if roleID == RoleIDPatient && callerID == a.PatientID {
				return nil
			}
		case RoleDoctor:
			if roleID == RoleIDDoctor && callerID == a.DoctorID {
				return nil
			}
		}
		return ErrTransitionForbidden
	}

	return ErrTransitionInvalid
}
