package entity

import (
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestAuthorizeTransition(t *testing.T) {
	patientID := uuid.New()
	doctorID := uuid.New()
	strangerID := uuid.New()

	appt := func(status AppointmentStatus) *Appointment {
		return &Appointment{
			ID:        uuid.New(),
			PatientID: patientID,
			DoctorID:  doctorID,
			Status:    status,
		}
	}

	tests := []struct {
		name     string
		callerID uuid.UUID
		roleID   int
		from     AppointmentStatus
		to       AppointmentStatus
		wantErr  error
	}{
		{"patient accepts proposal", patientID, RoleIDPatient, AppointmentStatusProposed, AppointmentStatusPending, nil},
		{"doctor confirms pending", doctorID, RoleIDDoctor, AppointmentStatusPending, AppointmentStatusConfirmed, nil},
		{"doctor completes confirmed", doctorID, RoleIDDoctor, AppointmentStatusConfirmed, AppointmentStatusCompleted, nil},
		{"patient cancels proposed", patientID, RoleIDPatient, AppointmentStatusProposed, AppointmentStatusCancelled, nil},
		{"patient cancels pending", patientID, RoleIDPatient, AppointmentStatusPending, AppointmentStatusCancelled, nil},
		{"patient cancels confirmed", patientID, RoleIDPatient, AppointmentStatusConfirmed, AppointmentStatusCancelled, nil},

		{"doctor cannot accept proposal", doctorID, RoleIDDoctor, AppointmentStatusProposed, AppointmentStatusPending, ErrTransitionForbidden},
		{"patient cannot confirm", patientID, RoleIDPatient, AppointmentStatusPending, AppointmentStatusConfirmed, ErrTransitionForbidden},
		{"patient cannot complete", patientID, RoleIDPatient, AppointmentStatusConfirmed, AppointmentStatusCompleted, ErrTransitionForbidden},
		{"doctor cannot cancel", doctorID, RoleIDDoctor, AppointmentStatusPending, AppointmentStatusCancelled, ErrTransitionForbidden},
		{"other patient cannot accept", strangerID, RoleIDPatient, AppointmentStatusProposed, AppointmentStatusPending, ErrTransitionForbidden},
		{"other doctor cannot confirm", strangerID, RoleIDDoctor, AppointmentStatusPending, AppointmentStatusConfirmed, ErrTransitionForbidden},
		{"admin cannot drive transitions", strangerID, RoleIDAdmin, AppointmentStatusPending, AppointmentStatusConfirmed, ErrTransitionForbidden},

		{"cannot skip pending to completed", doctorID, RoleIDDoctor, AppointmentStatusPending, AppointmentStatusCompleted, ErrTransitionInvalid},
		{"cannot confirm proposed", doctorID, RoleIDDoctor, AppointmentStatusProposed, AppointmentStatusConfirmed, ErrTransitionInvalid},
		{"cancelled is terminal", patientID, RoleIDPatient, AppointmentStatusCancelled, AppointmentStatusPending, ErrTransitionInvalid},
		{"completed is terminal", patientID, RoleIDPatient, AppointmentStatusCompleted, AppointmentStatusCancelled, ErrTransitionInvalid},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := AuthorizeTransition(tt.callerID, tt.roleID, appt(tt.from), tt.to)
			if err != tt.wantErr {
				t.Errorf("AuthorizeTransition(%s -> %s) = %v, want %v", tt.from, tt.to, err, tt.wantErr)
			}
		})
	}
}

func TestIsTerminal(t *testing.T) {
	tests := []struct {
		status AppointmentStatus
		want   bool
	}{
		{AppointmentStatusProposed, false},
		{AppointmentStatusPending, false},
		{AppointmentStatusConfirmed, false},
		{AppointmentStatusCompleted, true},
		{AppointmentStatusCancelled, true},
	}

	for _, tt := range tests {
		a := &Appointment{Status: tt.status}
		if got := a.IsTerminal(); got != tt.want {
			t.Errorf("IsTerminal(%s) = %v, want %v", tt.status, got, tt.want)
		}
	}
}

func TestStartsAt(t *testing.T) {
	a := &Appointment{
		AppointmentDate: time.Date(2026, time.March, 14, 0, 0, 0, 0, time.UTC),
		AppointmentTime: "09:30",
	}

	got := a.StartsAt()
	want := time.Date(2026, time.March, 14, 9, 30, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Errorf("StartsAt() = %v, want %v", got, want)
	}
}

func TestStartsAtMalformedTime(t *testing.T) {
	a := &Appointment{
		AppointmentDate: time.Date(2026, time.March, 14, 0, 0, 0, 0, time.UTC),
		AppointmentTime: "bad",
	}

	got := a.StartsAt()
	want := time.Date(2026, time.March, 14, 0, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Errorf("StartsAt() = %v, want midnight fallback %v", got, want)
	}
}
