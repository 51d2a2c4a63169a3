package api

import (
	"net/http"
	"strconv"

	reqdto "eventmarket/internal/handler/dto/request"
	resdto "eventmarket/internal/handler/dto/response"
	"eventmarket/internal/handler/middleware"
	"eventmarket/internal/usecase/commands"
	"eventmarket/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type RequestHandler struct {
	commands commands.RequestCommands
	queries  queries.RequestQueries
}

func NewRequestHandler(cmds commands.RequestCommands, qrs queries.RequestQueries) *RequestHandler {
	return &RequestHandler{
		commands: cmds,
		queries:  qrs,
	}
}

// @Summary Create booking request
// @Description Organizer opens a booking request toward a vendor
// @Tags requests
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.CreateBookingRequestRequest true "Booking request"
// @Success 201 {object} resdto.CreateRequestResponse
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /requests [post]
func (h *RequestHandler) CreateRequest(c *gin.Context) {
	actor, ok := middleware.GetActor(c)
	if !ok {
		abortUnauthenticated(c)
		return
	}

	var req reqdto.CreateBookingRequestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortBadRequest(c, err, "Invalid request format")
		return
	}

	cmd, err := req.ToCommand()
	if err != nil {
		abortBadRequest(c, err, "Invalid money amount")
		return
	}

	result, err := h.commands.CreateRequest(c.Request.Context(), cmd, actor)
	if err != nil {
		abortWithMappedError(c, err)
		return
	}

	c.JSON(http.StatusCreated, resdto.FromCreateRequestResult(result))
}

// @Summary Get booking request
// @Tags requests
// @Produce json
// @Security BearerAuth
// @Param id path string true "Request ID"
// @Success 200 {object} queries.RequestView
// @Failure 404 {object} httperr.Response
// @Router /requests/{id} [get]
func (h *RequestHandler) GetRequest(c *gin.Context) {
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

// @Summary List own booking requests
// @Tags requests
// @Produce json
// @Security BearerAuth
// @Param limit query int false "Page size"
// @Success 200 {array} queries.RequestListItem
// @Router /requests [get]
func (h *RequestHandler) ListOwnRequests(c *gin.Context) {
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

// @Summary List requests addressed to a vendor
// @Tags requests
// @Produce json
// @Security BearerAuth
// @Param id path string true "Vendor ID"
// @Param limit query int false "Page size"
// @Success 200 {array} queries.RequestListItem
// @Failure 404 {object} httperr.Response
// @Router /vendors/{id}/requests [get]
func (h *RequestHandler) ListVendorRequests(c *gin.Context) {
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

// @Summary Update booking request details
// @Description Allowed while the request has not been quoted yet
// @Tags requests
// @Accept json
// @Security BearerAuth
// @Param id path string true "Request ID"
// @Param request body reqdto.UpdateBookingRequestRequest true "Fields to update"
// @Success 204
// @Failure 409 {object} httperr.Response
// @Router /requests/{id} [patch]
func (h *RequestHandler) UpdateRequest(c *gin.Context) {
	actor, ok := middleware.GetActor(c)
	if !ok {
		abortUnauthenticated(c)
		return
	}

	id, err := parseIDParam(c)
	if err != nil {
		return
	}

	var req reqdto.UpdateBookingRequestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortBadRequest(c, err, "Invalid request format")
		return
	}

	cmd, err := req.ToCommand()
	if err != nil {
		abortBadRequest(c, err, "Invalid money amount")
		return
	}

	if err := h.commands.UpdateRequest(c.Request.Context(), id, cmd, actor); err != nil {
		abortWithMappedError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// @Summary Mark request viewed by vendor
// @Tags requests
// @Security BearerAuth
// @Param id path string true "Request ID"
// @Success 204
// @Router /requests/{id}/view [post]
func (h *RequestHandler) MarkViewed(c *gin.Context) {
	actor, ok := middleware.GetActor(c)
	if !ok {
		abortUnauthenticated(c)
		return
	}

	id, err := parseIDParam(c)
	if err != nil {
		return
	}

	if err := h.commands.MarkViewedByVendor(c.Request.Context(), id, actor); err != nil {
		abortWithMappedError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// @Summary Cancel booking request
// @Tags requests
// @Security BearerAuth
// @Param id path string true "Request ID"
// @Success 204
// @Failure 409 {object} httperr.Response
// @Router /requests/{id}/cancel [post]
func (h *RequestHandler) CancelRequest(c *gin.Context) {
	actor, ok := middleware.GetActor(c)
	if !ok {
		abortUnauthenticated(c)
		return
	}

	id, err := parseIDParam(c)
	if err != nil {
		return
	}

	if err := h.commands.CancelRequest(c.Request.Context(), id, actor); err != nil {
		abortWithMappedError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func parseIDParam(c *gin.Context) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		abortBadRequest(c, err, "Invalid ID format")
		return uuid.Nil, err
	}
	return id, nil
}

func parseLimit(c *gin.Context) int {
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "50"))
	if err != nil {
		return 50
	}
	return limit
}
