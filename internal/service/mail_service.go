package service

import (
	"fmt"
	"time"

	"medibook/config"
	"medibook/internal/domain/entity"

	"github.com/sirupsen/logrus"
	"gopkg.in/gomail.v2"
)

// Notifier sends best-effort transactional email. Every method is
// fire-and-forget: a delivery failure is logged and never fails the
// operation that triggered it.
type Notifier interface {
	NotifyAppointmentConfirmed(patient, doctor *entity.User, appointment *entity.Appointment)
	NotifyAppointmentCancelled(patient, doctor *entity.User, appointment *entity.Appointment)
}

type mailDialer interface {
	DialAndSend(m ...*gomail.Message) error
}

type mailService struct {
	from    string
	log     *logrus.Logger
	dialer  mailDialer
	timeout time.Duration
}

func NewMailService(cfg config.SMTPConfig, log *logrus.Logger) Notifier {
	return &mailService{
		from:    cfg.From,
		log:     log,
		dialer:  gomail.NewDialer(cfg.Host, cfg.Port, cfg.User, cfg.Password),
		timeout: cfg.Timeout,
	}
}

func (s *mailService) NotifyAppointmentConfirmed(patient, doctor *entity.User, appointment *entity.Appointment) {
	go s.send(patient.Email, "Appointment Confirmed - MediBook",
		patientConfirmationBody(patient, doctor, appointment))
	go s.send(doctor.Email, "New Appointment - MediBook",
		doctorConfirmationBody(patient, doctor, appointment))
}

func (s *mailService) NotifyAppointmentCancelled(patient, doctor *entity.User, appointment *entity.Appointment) {
	go s.send(patient.Email, "Appointment Cancelled - MediBook",
		cancellationBody(doctor, appointment))
}

// send delivers one message, giving the SMTP conversation at most s.timeout
// before it is abandoned.
func (s *mailService) send(to, subject, body string) {
	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/plain", body)

	done := make(chan error, 1)
	go func() { done <- s.dialer.DialAndSend(m) }()

	select {
	case err := <-done:
		if err != nil {
			s.log.Warnf("Failed to send email to %s: %+v", to, err)
		}
	case <-time.After(s.timeout):
		s.log.Warnf("Timed out sending email to %s after %s", to, s.timeout)
	}
}

func patientConfirmationBody(patient, doctor *entity.User, a *entity.Appointment) string {
	return fmt.Sprintf(
		"Your appointment with Dr. %s on %s at %s is confirmed. Fee: %s.",
		doctor.FullName,
		a.AppointmentDate.Format("Mon Jan 2 2006"),
		a.AppointmentTime,
		formatMoney(a.ConsultationFee),
	)
}

func doctorConfirmationBody(patient, doctor *entity.User, a *entity.Appointment) string {
	return fmt.Sprintf(
		"You have a new appointment with %s on %s at %s.",
		patient.FullName,
		a.AppointmentDate.Format("Mon Jan 2 2006"),
		a.AppointmentTime,
	)
}

func cancellationBody(doctor *entity.User, a *entity.Appointment) string {
	return fmt.Sprintf(
		"Your appointment with Dr. %s on %s at %s has been cancelled and the fee refunded.",
		doctor.FullName,
		a.AppointmentDate.Format("Mon Jan 2 2006"),
		a.AppointmentTime,
	)
}

// formatMoney renders integer cents for display without going through
// floating point.
func formatMoney(cents int64) string {
	return fmt.Sprintf("$%d.%02d", cents/100, cents%100)
}
