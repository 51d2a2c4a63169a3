//go:build unit

package api_test

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"eventmarket/internal/domain/party"
	"eventmarket/internal/handler/api"
	resdto "eventmarket/internal/handler/dto/response"
	"eventmarket/internal/pkg/errs"
	"eventmarket/internal/usecase/commands"
	"eventmarket/internal/usecase/queries"
	"eventmarket/tests/common/httptest"
	commandsmock "eventmarket/tests/mock/commands"
	queriesmock "eventmarket/tests/mock/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type QuoteHandlerTestSuite struct {
	suite.Suite
	router       *gin.Engine
	mockCtrl     *gomock.Controller
	mockCommands *commandsmock.MockQuoteCommands
	mockQueries  *queriesmock.MockQuoteQueries
	handler      *api.QuoteHandler
	userID       uuid.UUID
}

func (s *QuoteHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()

	s.mockCtrl = gomock.NewController(s.T())
	s.mockCommands = commandsmock.NewMockQuoteCommands(s.mockCtrl)
	s.mockQueries = queriesmock.NewMockQuoteQueries(s.mockCtrl)
	s.handler = api.NewQuoteHandler(s.mockCommands, s.mockQueries)
	s.userID = uuid.New()

	// Stub authentication middleware for testing
	authMiddleware := func(c *gin.Context) {
		if c.GetHeader("Authorization") == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": gin.H{"message": "Unauthorized"}})
			return
		}
		c.Set("user_id", s.userID)
		c.Set("user_role", party.RoleVendor)
		c.Next()
	}

	s.router.POST("/quotes", authMiddleware, s.handler.CreateQuote)
	s.router.GET("/quotes/:id", authMiddleware, s.handler.GetQuote)
	s.router.POST("/quotes/:id/send", authMiddleware, s.handler.SendQuote)
	s.router.POST("/quotes/:id/view", authMiddleware, s.handler.MarkViewed)
	s.router.POST("/quotes/:id/accept", authMiddleware, s.handler.AcceptQuote)
	s.router.POST("/quotes/:id/reject", authMiddleware, s.handler.RejectQuote)
	s.router.POST("/quotes/:id/revise", authMiddleware, s.handler.ReviseQuote)
	s.router.GET("/requests/:id/quotes", authMiddleware, s.handler.ListQuotesByRequest)
}

func (s *QuoteHandlerTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestQuoteHandlerSuite(t *testing.T) {
	suite.Run(t, new(QuoteHandlerTestSuite))
}

func createQuoteBody(requestID uuid.UUID) map[string]any {
	return map[string]any{
		"request_id": requestID.String(),
		"items": []map[string]any{
			{
				"name":       "Full-day coverage",
				"quantity":   "1",
				"unit_price": "12000.00",
			},
		},
		"tax_rate":    "0.20",
		"deposit_pct": "30",
	}
}

// ================================================================================
// TestCreateQuote
// ================================================================================

func (s *QuoteHandlerTestSuite) TestCreateQuote() {
	url := "/quotes"
	requestID := uuid.New()
	expected := &commands.CreateQuoteResult{QuoteID: uuid.New(), Number: "Q-2026-00042"}

	s.Run("success: returns 201 Created with the issued number", func() {
		s.mockCommands.EXPECT().CreateQuote(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(expected, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, createQuoteBody(requestID), "bearer-token")

		var body resdto.CreateQuoteResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusCreated, &body)
		s.Equal(expected.QuoteID, body.QuoteID)
		s.Equal(expected.Number, body.Number)
	})

	s.Run("error: 400 Bad Request when items are missing", func() {
		body := createQuoteBody(requestID)
		delete(body, "items")

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, body, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "")
	})

	s.Run("error: 400 Bad Request on malformed money", func() {
		body := createQuoteBody(requestID)
		body["discount"] = "not-a-number"

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, body, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid numeric value")
	})

	s.Run("error: 401 Unauthorized when unauthenticated", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, createQuoteBody(requestID), "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusUnauthorized, "Unauthorized")
	})

	s.Run("error: maps usecase errors to proper statuses", func() {
		testCases := []struct {
			name           string
			commandsError  error
			expectedStatus int
		}{
			{"request already has an open quote", errs.ErrOpenQuoteExists, http.StatusConflict},
			{"request no longer open", errs.ErrRequestNotOpen, http.StatusConflict},
			{"caller does not own the vendor", errs.ErrNotVendor, http.StatusForbidden},
			{"request missing", errs.ErrRequestNotFound, http.StatusNotFound},
			{"unexpected failure", errors.New("database error"), http.StatusInternalServerError},
		}

		for _, tc := range testCases {
			s.Run(tc.name, func() {
				s.mockCommands.EXPECT().CreateQuote(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(nil, tc.commandsError).Times(1)

				rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, createQuoteBody(requestID), "bearer-token")
				httptest.AssertErrorResponse(s.T(), rec, tc.expectedStatus, "")
			})
		}
	})
}

// ================================================================================
// TestGetQuote
// ================================================================================

func (s *QuoteHandlerTestSuite) TestGetQuote() {
	quoteID := uuid.New()
	url := "/quotes/" + quoteID.String()

	view := &queries.QuoteView{
		ID:       quoteID,
		Number:   "Q-2026-00042",
		Status:   "sent",
		Version:  1,
		Currency: "TRY",
		Total:    "15000.00",
		Items:    []queries.QuoteItemView{},
		ValidUntil: time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC),
	}

	s.Run("success: returns 200 OK with the quote view", func() {
		s.mockQueries.EXPECT().GetByID(gomock.Any(), quoteID, gomock.Any()).
			Return(view, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, "bearer-token")

		var body queries.QuoteView
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Equal(quoteID, body.ID)
		s.Equal("15000.00", body.Total)
	})

	s.Run("error: 404 Not Found when hidden from the caller", func() {
		s.mockQueries.EXPECT().GetByID(gomock.Any(), quoteID, gomock.Any()).
			Return(nil, errs.ErrQuoteNotFound).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusNotFound, "")
	})

	s.Run("error: 400 Bad Request on malformed id", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/quotes/not-a-uuid", nil, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "")
	})
}

// ================================================================================
// TestAcceptQuote
// ================================================================================

func (s *QuoteHandlerTestSuite) TestAcceptQuote() {
	quoteID := uuid.New()
	url := "/quotes/" + quoteID.String() + "/accept"
	expected := &commands.AcceptQuoteResult{BookingID: uuid.New(), BookingNumber: "B-2026-00007"}

	s.Run("success: returns 201 Created with the booking reference", func() {
		s.mockCommands.EXPECT().AcceptQuote(gomock.Any(), quoteID, gomock.Any()).
			Return(expected, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, nil, "bearer-token")

		var body resdto.AcceptQuoteResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusCreated, &body)
		s.Equal(expected.BookingID, body.BookingID)
		s.Equal(expected.BookingNumber, body.BookingNumber)
	})

	s.Run("error: 409 Conflict when another quote already won", func() {
		s.mockCommands.EXPECT().AcceptQuote(gomock.Any(), quoteID, gomock.Any()).
			Return(nil, errs.ErrRequestAlreadyResolved).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, nil, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusConflict, "")
	})

	s.Run("error: 409 Conflict when the quote has expired", func() {
		s.mockCommands.EXPECT().AcceptQuote(gomock.Any(), quoteID, gomock.Any()).
			Return(nil, errs.ErrQuoteExpired).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, nil, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusConflict, "")
	})

	s.Run("error: 403 Forbidden for non-organizers", func() {
		s.mockCommands.EXPECT().AcceptQuote(gomock.Any(), quoteID, gomock.Any()).
			Return(nil, errs.ErrNotOrganizer).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, nil, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusForbidden, "")
	})
}

// ================================================================================
// TestSendQuote / TestRejectQuote
// ================================================================================

func (s *QuoteHandlerTestSuite) TestSendQuote() {
	quoteID := uuid.New()
	url := "/quotes/" + quoteID.String() + "/send"

	s.Run("success: returns 204 No Content", func() {
		s.mockCommands.EXPECT().SendQuote(gomock.Any(), quoteID, gomock.Any()).
			Return(nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, nil, "bearer-token")
		s.Equal(http.StatusNoContent, rec.Code)
	})

	s.Run("error: 409 Conflict when the quote is not a draft", func() {
		s.mockCommands.EXPECT().SendQuote(gomock.Any(), quoteID, gomock.Any()).
			Return(errs.ErrQuoteNotSendable).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, nil, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusConflict, "")
	})
}

func (s *QuoteHandlerTestSuite) TestRejectQuote() {
	quoteID := uuid.New()
	url := "/quotes/" + quoteID.String() + "/reject"

	s.Run("success: passes the optional reason through", func() {
		reason := "over budget"
		s.mockCommands.EXPECT().RejectQuote(gomock.Any(), quoteID, gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, _ uuid.UUID, got *string, _ party.Actor) error {
				s.Require().NotNil(got)
				s.Equal(reason, *got)
				return nil
			}).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, map[string]any{"reason": reason}, "bearer-token")
		s.Equal(http.StatusNoContent, rec.Code)
	})

	s.Run("success: body is optional", func() {
		s.mockCommands.EXPECT().RejectQuote(gomock.Any(), quoteID, gomock.Any(), gomock.Any()).
			Return(nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, nil, "bearer-token")
		s.Equal(http.StatusNoContent, rec.Code)
	})

	s.Run("error: 409 Conflict when already resolved", func() {
		s.mockCommands.EXPECT().RejectQuote(gomock.Any(), quoteID, gomock.Any(), gomock.Any()).
			Return(errs.ErrQuoteNotRejectable).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, nil, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusConflict, "")
	})
}

// ================================================================================
// TestListQuotesByRequest
// ================================================================================

func (s *QuoteHandlerTestSuite) TestListQuotesByRequest() {
	requestID := uuid.New()
	url := "/requests/" + requestID.String() + "/quotes"

	items := []*queries.QuoteListItem{
		{ID: uuid.New(), RequestID: requestID, Number: "Q-2026-00002", Status: "sent", Version: 2, Total: "1200.00", Currency: "TRY"},
		{ID: uuid.New(), RequestID: requestID, Number: "Q-2026-00001", Status: "rejected", Version: 1, Total: "1500.00", Currency: "TRY"},
	}

	s.Run("success: returns the version history newest first", func() {
		s.mockQueries.EXPECT().ListByRequest(gomock.Any(), requestID, gomock.Any()).
			Return(items, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, "bearer-token")

		var body []*queries.QuoteListItem
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Len(body, 2)
		s.Equal("Q-2026-00002", body[0].Number)
	})

	s.Run("error: 404 Not Found for outsiders", func() {
		s.mockQueries.EXPECT().ListByRequest(gomock.Any(), requestID, gomock.Any()).
			Return(nil, errs.ErrRequestNotFound).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusNotFound, "")
	})
}
