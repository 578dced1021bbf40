package wire

import (
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/sameer-776/seminar-app/internal/adaptor"
	"github.com/sameer-776/seminar-app/pkg/middleware"
	"github.com/sameer-776/seminar-app/pkg/utils"
)

// wireEvents mounts the booking change-event webhooks, gated by the
// trigger host's shared secret.
func wireEvents(
	r chi.Router,
	eventHandler *adaptor.EventHandler,
	config *utils.Config,
	log *zap.Logger,
) {
	r.Route("/api/events/bookings", func(r chi.Router) {
		r.Use(middleware.Webhook(config.Webhook.Token, log))

		// POST /api/events/bookings/created - on-create trigger
		r.Post("/created", eventHandler.BookingCreated)

		// POST /api/events/bookings/updated - on-update trigger
		r.Post("/updated", eventHandler.BookingUpdated)
	})
}
