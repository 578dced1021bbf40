package wire

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/sameer-776/seminar-app/internal/adaptor"
	"github.com/sameer-776/seminar-app/internal/usecase"
	"github.com/sameer-776/seminar-app/pkg/middleware"
	"github.com/sameer-776/seminar-app/pkg/utils"
)

// App holds the assembled dependencies
type App struct {
	Router *chi.Mux
}

// Wiring initializes handlers and the router over the service layer.
func Wiring(service *usecase.Service, config *utils.Config, logger *zap.Logger) *App {
	handler := adaptor.NewHandler(service, logger)

	router := setupRouter(handler, config, logger)

	return &App{
		Router: router,
	}
}

// setupRouter configures the Chi router
func setupRouter(
	handler *adaptor.Handler,
	config *utils.Config,
	logger *zap.Logger,
) *chi.Mux {
	r := chi.NewRouter()

	// Apply global middleware
	r.Use(middleware.Logger(logger))
	r.Use(middleware.Recover(logger))
	r.Use(middleware.CORS())

	// Apply routes
	wireCalls(r, handler.Admin, config, logger)
	wireEvents(r, handler.Event, config, logger)
	wireUser(r, handler.User, config, logger)

	// Health check endpoint
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	return r
}
