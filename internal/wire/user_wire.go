package wire

import (
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/sameer-776/seminar-app/internal/adaptor"
	"github.com/sameer-776/seminar-app/pkg/middleware"
	"github.com/sameer-776/seminar-app/pkg/utils"
)

// wireUser configures the authenticated self-service routes.
func wireUser(
	r chi.Router,
	userHandler *adaptor.UserHandler,
	config *utils.Config,
	log *zap.Logger,
) {
	r.Route("/api/user", func(r chi.Router) {
		r.Use(middleware.Auth(config.JWT.Secret, log))

		// GET /api/user/profile - caller's own profile mirror
		r.Get("/profile", userHandler.GetProfile)

		// GET /api/user/notifications - caller's in-app feed
		r.Get("/notifications", userHandler.GetNotifications)

		// PUT /api/user/notifications/{id}/read - flip is_read
		r.Put("/notifications/{id}/read", userHandler.MarkNotificationRead)

		// PUT /api/user/fcm-token - register a device token
		r.Put("/fcm-token", userHandler.RegisterFCMToken)
	})
}
