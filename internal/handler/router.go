package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"eventmarket/internal/handler/api"
	"eventmarket/internal/handler/middleware"
	"eventmarket/internal/pkg/config"
)

type route struct {
	Method  string
	Path    string
	Handler gin.HandlerFunc
	Mw      []gin.HandlerFunc
}

func NewRouter(
	engine *gin.Engine,
	cfg config.Config,
	requestHandler *api.RequestHandler,
	quoteHandler *api.QuoteHandler,
	bookingHandler *api.BookingHandler,
	authMiddleware *middleware.AuthMiddleware,
) {
	setupMiddleware(engine, cfg)
	setupRoutes(engine, requestHandler, quoteHandler, bookingHandler, authMiddleware)
}

func setupMiddleware(engine *gin.Engine, cfg config.Config) {
	// Recovery must be first (outermost) to catch panics from all other middleware
	engine.Use(middleware.CustomRecovery())
	engine.Use(middleware.NewCORSMiddleware(cfg.CORS))
	engine.Use(middleware.LoggingMiddleware(nil, cfg.Log))
	engine.Use(middleware.ErrorHandler())
}

func setupRoutes(
	engine *gin.Engine,
	requestHandler *api.RequestHandler,
	quoteHandler *api.QuoteHandler,
	bookingHandler *api.BookingHandler,
	authMiddleware *middleware.AuthMiddleware,
) {
	engine.GET("/health", healthCheck)

	if gin.Mode() == gin.DebugMode {
		engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	apiGroup := engine.Group("/api")
	apiGroup.Use(authMiddleware.RequireAuth())
	{
		requests := apiGroup.Group("/requests")
		{
			addRoutes(requests, []route{
				{Method: http.MethodPost, Path: "", Handler: requestHandler.CreateRequest},
				{Method: http.MethodGet, Path: "", Handler: requestHandler.ListOwnRequests},
				{Method: http.MethodGet, Path: "/:id", Handler: requestHandler.GetRequest},
				{Method: http.MethodPatch, Path: "/:id", Handler: requestHandler.UpdateRequest},
				{Method: http.MethodPost, Path: "/:id/view", Handler: requestHandler.MarkViewed},
				{Method: http.MethodPost, Path: "/:id/cancel", Handler: requestHandler.CancelRequest},
				{Method: http.MethodGet, Path: "/:id/quotes", Handler: quoteHandler.ListQuotesByRequest},
			})
		}

		quotes := apiGroup.Group("/quotes")
		{
			addRoutes(quotes, []route{
				{Method: http.MethodPost, Path: "", Handler: quoteHandler.CreateQuote},
				{Method: http.MethodGet, Path: "/:id", Handler: quoteHandler.GetQuote},
				{Method: http.MethodPost, Path: "/:id/send", Handler: quoteHandler.SendQuote},
				{Method: http.MethodPost, Path: "/:id/view", Handler: quoteHandler.MarkViewed},
				{Method: http.MethodPost, Path: "/:id/accept", Handler: quoteHandler.AcceptQuote},
				{Method: http.MethodPost, Path: "/:id/reject", Handler: quoteHandler.RejectQuote},
				{Method: http.MethodPost, Path: "/:id/revise", Handler: quoteHandler.ReviseQuote},
			})
		}

		bookings := apiGroup.Group("/bookings")
		{
			addRoutes(bookings, []route{
				{Method: http.MethodGet, Path: "", Handler: bookingHandler.ListOwnBookings},
				{Method: http.MethodGet, Path: "/:id", Handler: bookingHandler.GetBooking},
				{Method: http.MethodPatch, Path: "/:id", Handler: bookingHandler.UpdateBooking},
				{Method: http.MethodPost, Path: "/:id/complete", Handler: bookingHandler.CompleteBooking},
				{Method: http.MethodPost, Path: "/:id/cancel", Handler: bookingHandler.CancelBooking},
				{Method: http.MethodPost, Path: "/:id/payments", Handler: bookingHandler.RecordPayment},
				{Method: http.MethodGet, Path: "/:id/payments", Handler: bookingHandler.ListPayments},
				{Method: http.MethodPost, Path: "/:id/refunds", Handler: bookingHandler.RecordRefund},
				{Method: http.MethodGet, Path: "/:id/cancellation", Handler: bookingHandler.GetCancellation},
			})
		}

		vendors := apiGroup.Group("/vendors")
		{
			addRoutes(vendors, []route{
				{Method: http.MethodGet, Path: "/:id/requests", Handler: requestHandler.ListVendorRequests},
				{Method: http.MethodGet, Path: "/:id/bookings", Handler: bookingHandler.ListVendorBookings},
			})
		}
	}
}

// @Summary Health check
// @Description Check if the service is healthy
// @Tags health
// @Produce json
// @Success 200 {object} map[string]string
// @Router /health [get]
func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"message": "Service is healthy",
	})
}

func addRoutes(g *gin.RouterGroup, rs []route) {
	for _, r := range rs {
		h := r.Handler
		if len(r.Mw) > 0 {
			h = chainHandlers(append(r.Mw, r.Handler)...)
		}
		switch r.Method {
		case http.MethodGet:
			g.GET(r.Path, h)
		case http.MethodPost:
			g.POST(r.Path, h)
		case http.MethodPut:
			g.PUT(r.Path, h)
		case http.MethodPatch:
			g.PATCH(r.Path, h)
		case http.MethodDelete:
			g.DELETE(r.Path, h)
		default:
			g.Any(r.Path, h)
		}
	}
}

func chainHandlers(hs ...gin.HandlerFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		for _, h := range hs {
			h(c)
			if c.IsAborted() {
				return
			}
		}
	}
}
