package http

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"medibook/internal/delivery/http/handler"
	"medibook/internal/delivery/http/middleware"
)

// Unauthenticated requests to a registered route are rejected by the auth
// middleware with 401; a wrong method on a known path yields 405. That
// difference pins down which method each route is registered under without
// needing live usecases.
func testRouter() http.Handler {
	r := NewRouter(
		&handler.AuthHandler{},
		&handler.DoctorHandler{},
		&handler.AppointmentHandler{},
		&handler.PaymentHandler{},
		&handler.AdminHandler{},
		&handler.AuditLogHandler{},
		middleware.NewAuthMiddleware(nil, nil),
		middleware.NewCORSMiddleware(),
	)
	return r.Setup()
}

func TestRouteMethods(t *testing.T) {
	router := testRouter()

	tests := []struct {
		name   string
		method string
		target string
		want   int
	}{
		{"accept is PUT", http.MethodPut, "/api/v1/appointments/abc/accept", http.StatusUnauthorized},
		{"accept rejects POST", http.MethodPost, "/api/v1/appointments/abc/accept", http.StatusMethodNotAllowed},
		{"status update is PUT", http.MethodPut, "/api/v1/appointments/abc/status", http.StatusUnauthorized},
		{"status update rejects PATCH", http.MethodPatch, "/api/v1/appointments/abc/status", http.StatusMethodNotAllowed},
		{"refund lives at /payments/refund", http.MethodPost, "/api/v1/payments/refund", http.StatusUnauthorized},
		{"refund has no path parameter", http.MethodPost, "/api/v1/payments/refund/abc", http.StatusNotFound},
		{"cancel is DELETE", http.MethodDelete, "/api/v1/appointments/abc", http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			router.ServeHTTP(w, httptest.NewRequest(tt.method, tt.target, nil))

			if w.Code != tt.want {
				t.Errorf("%s %s = %d, want %d", tt.method, tt.target, w.Code, tt.want)
			}
		})
	}
}
