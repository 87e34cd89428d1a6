package service

import (
	"strings"
	"testing"
	"time"

	"medibook/internal/domain/entity"

	"github.com/sirupsen/logrus"
	"gopkg.in/gomail.v2"
)

type recordingDialer struct {
	messages []*gomail.Message
}

func (d *recordingDialer) DialAndSend(m ...*gomail.Message) error {
	d.messages = append(d.messages, m...)
	return nil
}

type stuckDialer struct {
	release chan struct{}
}

func (d *stuckDialer) DialAndSend(m ...*gomail.Message) error {
	<-d.release
	return nil
}

func TestFormatMoney(t *testing.T) {
	tests := []struct {
		cents int64
		want  string
	}{
		{0, "$0.00"},
		{5, "$0.05"},
		{99, "$0.99"},
		{100, "$1.00"},
		{15000, "$150.00"},
		{15099, "$150.99"},
	}

	for _, tt := range tests {
		if got := formatMoney(tt.cents); got != tt.want {
			t.Errorf("formatMoney(%d) = %q, want %q", tt.cents, got, tt.want)
		}
	}
}

func TestConfirmationBodies(t *testing.T) {
	patient := &entity.User{FullName: "Alice Smith", Email: "alice@example.com"}
	doctor := &entity.User{FullName: "Bob Jones", Email: "bob@example.com"}
	appt := &entity.Appointment{
		AppointmentDate: time.Date(2026, time.April, 1, 0, 0, 0, 0, time.UTC),
		AppointmentTime: "10:00",
		ConsultationFee: 15000,
	}

	body := patientConfirmationBody(patient, doctor, appt)
	for _, want := range []string{"Dr. Bob Jones", "10:00", "$150.00"} {
		if !strings.Contains(body, want) {
			t.Errorf("patient body missing %q: %s", want, body)
		}
	}

	body = doctorConfirmationBody(patient, doctor, appt)
	if !strings.Contains(body, "Alice Smith") {
		t.Errorf("doctor body missing patient name: %s", body)
	}

	body = cancellationBody(doctor, appt)
	if !strings.Contains(body, "refunded") {
		t.Errorf("cancellation body missing refund mention: %s", body)
	}
}

func TestSendDeliversMessage(t *testing.T) {
	dialer := &recordingDialer{}
	s := &mailService{
		from:    "noreply@medibook.test",
		log:     logrus.New(),
		dialer:  dialer,
		timeout: time.Second,
	}

	s.send("alice@example.com", "Appointment Confirmed - MediBook", "see you soon")

	if len(dialer.messages) != 1 {
		t.Fatalf("sent %d messages, want 1", len(dialer.messages))
	}
	if got := dialer.messages[0].GetHeader("To"); len(got) != 1 || got[0] != "alice@example.com" {
		t.Errorf("To = %v, want alice@example.com", got)
	}
}

func TestSendGivesUpOnStuckDialer(t *testing.T) {
	dialer := &stuckDialer{release: make(chan struct{})}
	defer close(dialer.release)

	s := &mailService{
		from:    "noreply@medibook.test",
		log:     logrus.New(),
		dialer:  dialer,
		timeout: 10 * time.Millisecond,
	}

	done := make(chan struct{})
	go func() {
		s.send("alice@example.com", "subject", "body")
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("send did not return after the dialer timeout")
	}
}
