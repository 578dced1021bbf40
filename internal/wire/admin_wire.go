package wire

import (
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/sameer-776/seminar-app/internal/adaptor"
	"github.com/sameer-776/seminar-app/pkg/middleware"
	"github.com/sameer-776/seminar-app/pkg/utils"
)

// wireCalls mounts the callable admin commands. Claims extraction is
// best-effort here; the commands themselves reject non-admin callers so
// the wire error always carries the callable {code,message} format.
func wireCalls(
	r chi.Router,
	adminHandler *adaptor.AdminHandler,
	config *utils.Config,
	log *zap.Logger,
) {
	r.Route("/api/calls", func(r chi.Router) {
		r.Use(middleware.CallerContext(config.JWT.Secret, log))

		// POST /api/calls/deleteUser - remove auth account + profile (admin)
		r.Post("/deleteUser", adminHandler.DeleteUser)

		// POST /api/calls/changeUserRole - set role claim + mirror (admin)
		r.Post("/changeUserRole", adminHandler.ChangeUserRole)
	})
}
