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

type QuoteHandler struct {
	commands commands.QuoteCommands
	queries  queries.QuoteQueries
}

func NewQuoteHandler(cmds commands.QuoteCommands, qrs queries.QuoteQueries) *QuoteHandler {
	return &QuoteHandler{
		commands: cmds,
		queries:  qrs,
	}
}

// @Summary Create quote
// @Description Vendor drafts a quote against an open booking request
// @Tags quotes
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.CreateQuoteRequest true "Quote"
// @Success 201 {object} resdto.CreateQuoteResponse
// @Failure 400 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Failure 422 {object} httperr.Response
// @Router /quotes [post]
func (h *QuoteHandler) CreateQuote(c *gin.Context) {
	actor, ok := middleware.GetActor(c)
	if !ok {
		abortUnauthenticated(c)
		return
	}

	var req reqdto.CreateQuoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortBadRequest(c, err, "Invalid request format")
		return
	}

	cmd, err := req.ToCommand()
	if err != nil {
		abortBadRequest(c, err, "Invalid numeric value")
		return
	}

	result, err := h.commands.CreateQuote(c.Request.Context(), cmd, actor)
	if err != nil {
		abortWithMappedError(c, err)
		return
	}

	c.JSON(http.StatusCreated, resdto.FromCreateQuoteResult(result))
}

// @Summary Get quote
// @Tags quotes
// @Produce json
// @Security BearerAuth
// @Param id path string true "Quote ID"
// @Success 200 {object} queries.QuoteView
// @Failure 404 {object} httperr.Response
// @Router /quotes/{id} [get]
func (h *QuoteHandler) GetQuote(c *gin.Context) {
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

// @Summary List quotes for a request
// @Tags quotes
// @Produce json
// @Security BearerAuth
// @Param id path string true "Request ID"
// @Success 200 {array} queries.QuoteListItem
// @Failure 404 {object} httperr.Response
// @Router /requests/{id}/quotes [get]
func (h *QuoteHandler) ListQuotesByRequest(c *gin.Context) {
	actor, ok := middleware.GetActor(c)
	if !ok {
		abortUnauthenticated(c)
		return
	}

	requestID, err := parseIDParam(c)
	if err != nil {
		return
	}

	items, err := h.queries.ListByRequest(c.Request.Context(), requestID, actor)
	if err != nil {
		abortWithMappedError(c, err)
		return
	}

	c.JSON(http.StatusOK, items)
}

// @Summary Send quote
// @Description Moves a draft quote to sent and marks the request quoted
// @Tags quotes
// @Security BearerAuth
// @Param id path string true "Quote ID"
// @Success 204
// @Failure 409 {object} httperr.Response
// @Router /quotes/{id}/send [post]
func (h *QuoteHandler) SendQuote(c *gin.Context) {
	actor, ok := middleware.GetActor(c)
	if !ok {
		abortUnauthenticated(c)
		return
	}

	id, err := parseIDParam(c)
	if err != nil {
		return
	}

	if err := h.commands.SendQuote(c.Request.Context(), id, actor); err != nil {
		abortWithMappedError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// @Summary Mark quote viewed
// @Tags quotes
// @Security BearerAuth
// @Param id path string true "Quote ID"
// @Success 204
// @Router /quotes/{id}/view [post]
func (h *QuoteHandler) MarkViewed(c *gin.Context) {
	actor, ok := middleware.GetActor(c)
	if !ok {
		abortUnauthenticated(c)
		return
	}

	id, err := parseIDParam(c)
	if err != nil {
		return
	}

	if err := h.commands.MarkQuoteViewed(c.Request.Context(), id, actor); err != nil {
		abortWithMappedError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// @Summary Accept quote
// @Description Accepting creates the booking; exactly one quote per request can win
// @Tags quotes
// @Produce json
// @Security BearerAuth
// @Param id path string true "Quote ID"
// @Success 201 {object} resdto.AcceptQuoteResponse
// @Failure 409 {object} httperr.Response
// @Router /quotes/{id}/accept [post]
func (h *QuoteHandler) AcceptQuote(c *gin.Context) {
	actor, ok := middleware.GetActor(c)
	if !ok {
		abortUnauthenticated(c)
		return
	}

	id, err := parseIDParam(c)
	if err != nil {
		return
	}

	result, err := h.commands.AcceptQuote(c.Request.Context(), id, actor)
	if err != nil {
		abortWithMappedError(c, err)
		return
	}

	c.JSON(http.StatusCreated, resdto.FromAcceptQuoteResult(result))
}

// @Summary Reject quote
// @Tags quotes
// @Accept json
// @Security BearerAuth
// @Param id path string true "Quote ID"
// @Param request body reqdto.RejectQuoteRequest false "Rejection reason"
// @Success 204
// @Failure 409 {object} httperr.Response
// @Router /quotes/{id}/reject [post]
func (h *QuoteHandler) RejectQuote(c *gin.Context) {
	actor, ok := middleware.GetActor(c)
	if !ok {
		abortUnauthenticated(c)
		return
	}

	id, err := parseIDParam(c)
	if err != nil {
		return
	}

	var req reqdto.RejectQuoteRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			abortBadRequest(c, err, "Invalid request format")
			return
		}
	}

	if err := h.commands.RejectQuote(c.Request.Context(), id, req.Reason, actor); err != nil {
		abortWithMappedError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// @Summary Revise quote
// @Description Issues the next version of a rejected quote
// @Tags quotes
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Quote ID"
// @Param request body reqdto.CreateQuoteRequest true "Revised quote"
// @Success 201 {object} resdto.CreateQuoteResponse
// @Failure 409 {object} httperr.Response
// @Router /quotes/{id}/revise [post]
func (h *QuoteHandler) ReviseQuote(c *gin.Context) {
	actor, ok := middleware.GetActor(c)
	if !ok {
		abortUnauthenticated(c)
		return
	}

	id, err := parseIDParam(c)
	if err != nil {
		return
	}

	var req reqdto.CreateQuoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortBadRequest(c, err, "Invalid request format")
		return
	}

	cmd, err := req.ToCommand()
	if err != nil {
		abortBadRequest(c, err, "Invalid numeric value")
		return
	}

	result, err := h.commands.ReviseQuote(c.Request.Context(), id, cmd, actor)
	if err != nil {
		abortWithMappedError(c, err)
		return
	}

	c.JSON(http.StatusCreated, resdto.FromCreateQuoteResult(result))
}
