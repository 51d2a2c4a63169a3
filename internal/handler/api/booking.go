package api

import (
	"net/http"

	reqdto "eventmarket/internal/handler/dto/request"
	resdto "eventmarket/internal/handler/dto/response"
	"eventmarket/internal/handler/middleware"
	"eventmarket/internal/usecase/commands"
	"eventmarket/internal/usecase/queries"

	"github.com/gin-gonic/gin"
)

type BookingHandler struct {
	bookings      commands.BookingCommands
	payments      commands.PaymentCommands
	cancellations commands.CancellationCommands
	queries       queries.BookingQueries
}

func NewBookingHandler(
	bookings commands.BookingCommands,
	payments commands.PaymentCommands,
	cancellations commands.CancellationCommands,
	qrs queries.BookingQueries,
) *BookingHandler {
	return &BookingHandler{
		bookings:      bookings,
		payments:      payments,
		cancellations: cancellations,
		queries:       qrs,
	}
}

// @Summary Get booking
// @Tags bookings
// @Produce json
// @Security BearerAuth
// @Param id path string true "Booking ID"
// @Success 200 {object} queries.BookingView
// @Failure 404 {object} httperr.Response
// @Router /bookings/{id} [get]
func (h *BookingHandler) GetBooking(c *gin.Context) {
	actor, ok := middleware.GetActor(c)
	if !ok {
		abortUnauthenticated(c)
		return
	}

	id, err := parseIDParam(c)
	if err != nil {
		return
	}

	view, err := h.queries.GetByID(c.Request.Context(), id, actor)
	if err != nil {
		abortWithMappedError(c, err)
		return
	}

	c.JSON(http.StatusOK, view)
}

// @Summary List own bookings
// @Tags bookings
// @Produce json
// @Security BearerAuth
// @Param limit query int false "Page size"
// @Success 200 {array} queries.BookingListItem
// @Router /bookings [get]
func (h *BookingHandler) ListOwnBookings(c *gin.Context) {
	actor, ok := middleware.GetActor(c)
	if !ok {
		abortUnauthenticated(c)
		return
	}

	items, err := h.queries.ListByOrganizer(c.Request.Context(), actor.UserID, parseLimit(c))
	if err != nil {
		abortWithMappedError(c, err)
		return
	}

	c.JSON(http.StatusOK, items)
}

// @Summary List bookings of a vendor
// @Tags bookings
// @Produce json
// @Security BearerAuth
// @Param id path string true "Vendor ID"
// @Param limit query int false "Page size"
// @Success 200 {array} queries.BookingListItem
// @Failure 404 {object} httperr.Response
// @Router /vendors/{id}/bookings [get]
func (h *BookingHandler) ListVendorBookings(c *gin.Context) {
	actor, ok := middleware.GetActor(c)
	if !ok {
		abortUnauthenticated(c)
		return
	}

	vendorID, err := parseIDParam(c)
	if err != nil {
		return
	}

	items, err := h.queries.ListByVendor(c.Request.Context(), vendorID, actor, parseLimit(c))
	if err != nil {
		abortWithMappedError(c, err)
		return
	}

	c.JSON(http.StatusOK, items)
}

// @Summary Update booking details
// @Description Venue, guest count and notes; only before the event starts
// @Tags bookings
// @Accept json
// @Security BearerAuth
// @Param id path string true "Booking ID"
// @Param request body reqdto.UpdateBookingRequest true "Fields to update"
// @Success 204
// @Failure 409 {object} httperr.Response
// @Router /bookings/{id} [patch]
func (h *BookingHandler) UpdateBooking(c *gin.Context) {
	actor, ok := middleware.GetActor(c)
	if !ok {
		abortUnauthenticated(c)
		return
	}

	id, err := parseIDParam(c)
	if err != nil {
		return
	}

	var req reqdto.UpdateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortBadRequest(c, err, "Invalid request format")
		return
	}

	if err := h.bookings.UpdateBookingDetails(c.Request.Context(), id, req.ToCommand(), actor); err != nil {
		abortWithMappedError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// @Summary Complete booking
// @Description Vendor closes out a booking after the event has finished
// @Tags bookings
// @Accept json
// @Security BearerAuth
// @Param id path string true "Booking ID"
// @Param request body reqdto.CompleteBookingRequest false "Completion notes"
// @Success 204
// @Failure 409 {object} httperr.Response
// @Failure 422 {object} httperr.Response
// @Router /bookings/{id}/complete [post]
func (h *BookingHandler) CompleteBooking(c *gin.Context) {
	actor, ok := middleware.GetActor(c)
	if !ok {
		abortUnauthenticated(c)
		return
	}

	id, err := parseIDParam(c)
	if err != nil {
		return
	}

	var req reqdto.CompleteBookingRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			abortBadRequest(c, err, "Invalid request format")
			return
		}
	}

	if err := h.bookings.CompleteBooking(c.Request.Context(), id, req.Notes, actor); err != nil {
		abortWithMappedError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// @Summary Cancel booking
// @Description Cancels and settles refund/penalty from the policy snapshot
// @Tags bookings
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Booking ID"
// @Param request body reqdto.CancelBookingRequest true "Cancellation"
// @Success 200 {object} resdto.CancelBookingResponse
// @Failure 409 {object} httperr.Response
// @Router /bookings/{id}/cancel [post]
func (h *BookingHandler) CancelBooking(c *gin.Context) {
	actor, ok := middleware.GetActor(c)
	if !ok {
		abortUnauthenticated(c)
		return
	}

	id, err := parseIDParam(c)
	if err != nil {
		return
	}

	var req reqdto.CancelBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortBadRequest(c, err, "Invalid request format")
		return
	}

	result, err := h.cancellations.CancelBooking(c.Request.Context(), id, req.ToCommand(), actor)
	if err != nil {
		abortWithMappedError(c, err)
		return
	}

	c.JSON(http.StatusOK, resdto.FromCancelBookingResult(result))
}

// @Summary Record payment
// @Tags bookings
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Booking ID"
// @Param request body reqdto.RecordPaymentRequest true "Payment"
// @Success 201 {object} resdto.RecordPaymentResponse
// @Failure 409 {object} httperr.Response
// @Failure 422 {object} httperr.Response
// @Router /bookings/{id}/payments [post]
func (h *BookingHandler) RecordPayment(c *gin.Context) {
	actor, ok := middleware.GetActor(c)
	if !ok {
		abortUnauthenticated(c)
		return
	}

	id, err := parseIDParam(c)
	if err != nil {
		return
	}

	var req reqdto.RecordPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortBadRequest(c, err, "Invalid request format")
		return
	}

	cmd, err := req.ToCommand()
	if err != nil {
		abortBadRequest(c, err, "Invalid money amount")
		return
	}

	result, err := h.payments.RecordPayment(c.Request.Context(), id, cmd, actor)
	if err != nil {
		abortWithMappedError(c, err)
		return
	}

	c.JSON(http.StatusCreated, resdto.FromRecordPaymentResult(result))
}

// @Summary Record refund
// @Tags bookings
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Booking ID"
// @Param request body reqdto.RecordRefundRequest true "Refund"
// @Success 201 {object} resdto.RecordPaymentResponse
// @Failure 409 {object} httperr.Response
// @Failure 422 {object} httperr.Response
// @Router /bookings/{id}/refunds [post]
func (h *BookingHandler) RecordRefund(c *gin.Context) {
	actor, ok := middleware.GetActor(c)
	if !ok {
		abortUnauthenticated(c)
		return
	}

	id, err := parseIDParam(c)
	if err != nil {
		return
	}

	var req reqdto.RecordRefundRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortBadRequest(c, err, "Invalid request format")
		return
	}

	cmd, err := req.ToCommand()
	if err != nil {
		abortBadRequest(c, err, "Invalid money amount")
		return
	}

	result, err := h.payments.RecordRefund(c.Request.Context(), id, cmd, actor)
	if err != nil {
		abortWithMappedError(c, err)
		return
	}

	c.JSON(http.StatusCreated, resdto.FromRecordPaymentResult(result))
}

// @Summary List booking payments
// @Tags bookings
// @Produce json
// @Security BearerAuth
// @Param id path string true "Booking ID"
// @Success 200 {array} queries.PaymentView
// @Failure 404 {object} httperr.Response
// @Router /bookings/{id}/payments [get]
func (h *BookingHandler) ListPayments(c *gin.Context) {
	actor, ok := middleware.GetActor(c)
	if !ok {
		abortUnauthenticated(c)
		return
	}

	id, err := parseIDParam(c)
	if err != nil {
		return
	}

	items, err := h.queries.ListPayments(c.Request.Context(), id, actor)
	if err != nil {
		abortWithMappedError(c, err)
		return
	}

	c.JSON(http.StatusOK, items)
}

// @Summary Get booking cancellation record
// @Tags bookings
// @Produce json
// @Security BearerAuth
// @Param id path string true "Booking ID"
// @Success 200 {object} queries.CancellationView
// @Failure 404 {object} httperr.Response
// @Router /bookings/{id}/cancellation [get]
func (h *BookingHandler) GetCancellation(c *gin.Context) {
	actor, ok := middleware.GetActor(c)
	if !ok {
		abortUnauthenticated(c)
		return
	}

	id, err := parseIDParam(c)
	if err != nil {
		return
	}

	view, err := h.queries.GetCancellation(c.Request.Context(), id, actor)
	if err != nil {
		abortWithMappedError(c, err)
		return
	}

	c.JSON(http.StatusOK, view)
}
