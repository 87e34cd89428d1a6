package handler

import (
	"net/http"

	"medibook/internal/delivery/http/middleware"
	"medibook/internal/usecase"
	"medibook/pkg/response"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

type AdminHandler struct {
	adminUsecase usecase.AdminUsecase
}

func NewAdminHandler(adminUsecase usecase.AdminUsecase) *AdminHandler {
	return &AdminHandler{adminUsecase: adminUsecase}
}

// GetPendingDoctors lists doctor registrations awaiting approval
// @Summary List pending doctors
// @Tags Admin
// @Security BearerAuth
// @Produce json
// @Success 200 {object} response.Response
// @Router /admin/doctors/pending [get]
func (h *AdminHandler) GetPendingDoctors(w http.ResponseWriter, r *http.Request) {
	doctors, err := h.adminUsecase.GetPendingDoctors(r.Context())
	if err != nil {
		response.InternalServerError(w, "Failed to list pending doctors")
		return
	}

	response.Success(w, http.StatusOK, "Pending doctors retrieved successfully", doctors)
}

// ApproveDoctor approves a pending doctor registration
// @Summary Approve a doctor
// @Tags Admin
// @Security BearerAuth
// @Produce json
// @Param id path string true "Doctor ID"
// @Success 200 {object} response.Response
// @Router /admin/doctors/{id}/approve [post]
func (h *AdminHandler) ApproveDoctor(w http.ResponseWriter, r *http.Request) {
	adminID, doctorID, ok := h.adminAndTarget(w, r)
	if !ok {
		return
	}

	doctor, err := h.adminUsecase.ApproveDoctor(r.Context(), adminID, doctorID)
	if err != nil {
		switch err {
		case usecase.ErrDoctorNotFound:
			response.NotFound(w, "Doctor not found")
		default:
			response.InternalServerError(w, "Failed to approve doctor")
		}
		return
	}

	response.Success(w, http.StatusOK, "Doctor approved successfully", doctor)
}

// RejectDoctor rejects a pending doctor registration and deactivates the account
// @Summary Reject a doctor
// @Tags Admin
// @Security BearerAuth
// @Produce json
// @Param id path string true "Doctor ID"
// @Success 200 {object} response.Response
// @Router /admin/doctors/{id}/reject [post]
func (h *AdminHandler) RejectDoctor(w http.ResponseWriter, r *http.Request) {
	adminID, doctorID, ok := h.adminAndTarget(w, r)
	if !ok {
		return
	}

	if err := h.adminUsecase.RejectDoctor(r.Context(), adminID, doctorID); err != nil {
		switch err {
		case usecase.ErrDoctorNotFound:
			response.NotFound(w, "Doctor not found")
		default:
			response.InternalServerError(w, "Failed to reject doctor")
		}
		return
	}

	response.Success(w, http.StatusOK, "Doctor rejected and deactivated", nil)
}

// GetAllDoctors lists all active doctors
// @Summary List all doctors
// @Tags Admin
// @Security BearerAuth
// @Produce json
// @Success 200 {object} response.Response
// @Router /admin/doctors [get]
func (h *AdminHandler) GetAllDoctors(w http.ResponseWriter, r *http.Request) {
	doctors, err := h.adminUsecase.GetAllDoctors(r.Context())
	if err != nil {
		response.InternalServerError(w, "Failed to list doctors")
		return
	}

	response.Success(w, http.StatusOK, "Doctors retrieved successfully", doctors)
}

// GetAllPatients lists all active patients
// @Summary List all patients
// @Tags Admin
// @Security BearerAuth
// @Produce json
// @Success 200 {object} response.Response
// @Router /admin/patients [get]
func (h *AdminHandler) GetAllPatients(w http.ResponseWriter, r *http.Request) {
	patients, err := h.adminUsecase.GetAllPatients(r.Context())
	if err != nil {
		response.InternalServerError(w, "Failed to list patients")
		return
	}

	response.Success(w, http.StatusOK, "Patients retrieved successfully", patients)
}

// DeleteDoctor removes a doctor and all dependent records
// @Summary Delete a doctor
// @Tags Admin
// @Security BearerAuth
// @Produce json
// @Param id path string true "Doctor ID"
// @Success 200 {object} response.Response
// @Router /admin/doctors/{id} [delete]
func (h *AdminHandler) DeleteDoctor(w http.ResponseWriter, r *http.Request) {
	adminID, doctorID, ok := h.adminAndTarget(w, r)
	if !ok {
		return
	}

	if err := h.adminUsecase.DeleteDoctor(r.Context(), adminID, doctorID); err != nil {
		switch err {
		case usecase.ErrDoctorNotFound:
			response.NotFound(w, "Doctor not found")
		default:
			response.InternalServerError(w, "Failed to delete doctor")
		}
		return
	}

	response.Success(w, http.StatusOK, "Doctor deleted successfully", nil)
}

// DeletePatient removes a patient and all dependent records
// @Summary Delete a patient
// @Tags Admin
// @Security BearerAuth
// @Produce json
// @Param id path string true "Patient ID"
// @Success 200 {object} response.Response
// @Router /admin/patients/{id} [delete]
func (h *AdminHandler) DeletePatient(w http.ResponseWriter, r *http.Request) {
	adminID, patientID, ok := h.adminAndTarget(w, r)
	if !ok {
		return
	}

	if err := h.adminUsecase.DeletePatient(r.Context(), adminID, patientID); err != nil {
		switch err {
		case usecase.ErrPatientNotFound:
			response.NotFound(w, "Patient not found")
		default:
			response.InternalServerError(w, "Failed to delete patient")
		}
		return
	}

	response.Success(w, http.StatusOK, "Patient deleted successfully", nil)
}

// GetStats returns platform-wide counters and revenue
// @Summary Get platform stats
// @Tags Admin
// @Security BearerAuth
// @Produce json
// @Success 200 {object} response.Response
// @Router /admin/stats [get]
func (h *AdminHandler) GetStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.adminUsecase.GetStats(r.Context())
	if err != nil {
		response.InternalServerError(w, "Failed to get stats")
		return
	}

	response.Success(w, http.StatusOK, "Stats retrieved successfully", stats)
}

// GetRevenue returns completed payments and total revenue
// @Summary Get revenue report
// @Tags Admin
// @Security BearerAuth
// @Produce json
// @Success 200 {object} response.Response
// @Router /admin/revenue [get]
func (h *AdminHandler) GetRevenue(w http.ResponseWriter, r *http.Request) {
	revenue, err := h.adminUsecase.GetRevenue(r.Context())
	if err != nil {
		response.InternalServerError(w, "Failed to get revenue")
		return
	}

	response.Success(w, http.StatusOK, "Revenue retrieved successfully", revenue)
}

func (h *AdminHandler) adminAndTarget(w http.ResponseWriter, r *http.Request) (uuid.UUID, uuid.UUID, bool) {
	adminID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Invalid token")
		return uuid.Nil, uuid.Nil, false
	}

	targetID, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid ID", nil)
		return uuid.Nil, uuid.Nil, false
	}

	return adminID, targetID, true
}
