package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"medibook/internal/domain/entity"
)

func requestWithRole(roleID int) *http.Request {
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	ctx := context.WithValue(r.Context(), RoleIDKey, roleID)
	return r.WithContext(ctx)
}

func TestRequireRole(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	tests := []struct {
		name     string
		handler  http.Handler
		roleID   int
		wantCode int
	}{
		{"admin allowed on admin route", RequireAdmin(next), entity.RoleIDAdmin, http.StatusNoContent},
		{"patient rejected on admin route", RequireAdmin(next), entity.RoleIDPatient, http.StatusForbidden},
		{"doctor rejected on patient route", RequirePatient(next), entity.RoleIDDoctor, http.StatusForbidden},
		{"doctor allowed on doctor route", RequireDoctor(next), entity.RoleIDDoctor, http.StatusNoContent},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			tt.handler.ServeHTTP(w, requestWithRole(tt.roleID))
			if w.Code != tt.wantCode {
				t.Errorf("status = %d, want %d", w.Code, tt.wantCode)
			}
		})
	}
}

func TestRequireRoleWithoutContext(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("next handler should not run")
	})

	w := httptest.NewRecorder()
	RequireAdmin(next).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

	if w.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want %d", w.Code, http.StatusUnauthorized)
	}
}
