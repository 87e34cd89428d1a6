package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"medibook/internal/delivery/dto"
	"medibook/internal/delivery/http/middleware"
	"medibook/internal/service"
	"medibook/internal/usecase"
	"medibook/pkg/response"
	"medibook/pkg/validator"
)

type PaymentHandler struct {
	paymentUsecase usecase.PaymentUsecase
	validator      *validator.CustomValidator
}

func NewPaymentHandler(paymentUsecase usecase.PaymentUsecase, validator *validator.CustomValidator) *PaymentHandler {
	return &PaymentHandler{
		paymentUsecase: paymentUsecase,
		validator:      validator,
	}
}

// CreateIntent starts a hosted checkout session for an appointment
// @Summary Create a checkout session
// @Tags Payments
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body dto.CreatePaymentIntentRequest true "Intent Request"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /payments/create-intent [post]
func (h *PaymentHandler) CreateIntent(w http.ResponseWriter, r *http.Request) {
	patientID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Invalid token")
		return
	}

	var req dto.CreatePaymentIntentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	session, err := h.paymentUsecase.CreateIntent(r.Context(), patientID, &req)
	if err != nil {
		h.writePaymentError(w, err, "Failed to create checkout session")
		return
	}

	response.Success(w, http.StatusOK, "Checkout session created", session)
}

// ConfirmCheckout settles a paid checkout session
// @Summary Confirm a checkout session
// @Tags Payments
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body dto.ConfirmCheckoutRequest true "Confirm Request"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /payments/confirm-checkout [post]
func (h *PaymentHandler) ConfirmCheckout(w http.ResponseWriter, r *http.Request) {
	patientID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Invalid token")
		return
	}

	var req dto.ConfirmCheckoutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	settlement, err := h.paymentUsecase.ConfirmCheckout(r.Context(), patientID, &req)
	if err != nil {
		h.writePaymentError(w, err, "Failed to confirm checkout")
		return
	}

	response.Success(w, http.StatusOK, "Payment confirmed", settlement)
}

// ConfirmPayment settles a payment by payment intent ID
// @Summary Confirm a payment
// @Tags Payments
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body dto.ConfirmPaymentRequest true "Confirm Request"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /payments/confirm [post]
func (h *PaymentHandler) ConfirmPayment(w http.ResponseWriter, r *http.Request) {
	patientID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Invalid token")
		return
	}

	var req dto.ConfirmPaymentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	settlement, err := h.paymentUsecase.ConfirmPayment(r.Context(), patientID, &req)
	if err != nil {
		h.writePaymentError(w, err, "Failed to confirm payment")
		return
	}

	response.Success(w, http.StatusOK, "Payment confirmed", settlement)
}

// Refund refunds a completed payment and cancels its appointment. Admin only.
// @Summary Refund a payment
// @Tags Payments
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body dto.RefundRequest true "Refund Request"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /payments/refund [post]
func (h *PaymentHandler) Refund(w http.ResponseWriter, r *http.Request) {
	adminID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Invalid token")
		return
	}

	var req dto.RefundRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	refund, err := h.paymentUsecase.Refund(r.Context(), adminID, &req)
	if err != nil {
		h.writePaymentError(w, err, "Failed to refund payment")
		return
	}

	response.Success(w, http.StatusOK, "Payment refunded", refund)
}

// History lists payments scoped to the caller's role
// @Summary List payment history
// @Tags Payments
// @Security BearerAuth
// @Produce json
// @Success 200 {object} response.Response
// @Router /payments/history [get]
func (h *PaymentHandler) History(w http.ResponseWriter, r *http.Request) {
	callerID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Invalid token")
		return
	}
	roleID, _ := middleware.GetRoleIDFromContext(r.Context())

	payments, err := h.paymentUsecase.History(r.Context(), callerID, roleID)
	if err != nil {
		response.InternalServerError(w, "Failed to list payments")
		return
	}

	response.Success(w, http.StatusOK, "Payments retrieved successfully", payments)
}

func (h *PaymentHandler) writePaymentError(w http.ResponseWriter, err error, fallback string) {
	switch {
	case errors.Is(err, usecase.ErrAppointmentNotFound), errors.Is(err, usecase.ErrPaymentNotFound):
		response.NotFound(w, err.Error())
	case errors.Is(err, usecase.ErrNotParticipant):
		response.Forbidden(w, err.Error())
	case errors.Is(err, usecase.ErrAppointmentCancelled),
		errors.Is(err, usecase.ErrPaymentNotRefundable),
		errors.Is(err, usecase.ErrCheckoutNotPaid),
		errors.Is(err, usecase.ErrSessionMismatch),
		errors.Is(err, usecase.ErrRefundWindowClosed):
		response.Error(w, http.StatusBadRequest, err.Error(), nil)
	case errors.Is(err, service.ErrProcessorUnavailable):
		response.InternalServerError(w, "Payment processor is unavailable")
	default:
		response.InternalServerError(w, fallback)
	}
}
