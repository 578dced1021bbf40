package adaptor

import (
	"go.uber.org/zap"

	"github.com/sameer-776/seminar-app/internal/usecase"
)

type Handler struct {
	Admin *AdminHandler
	Event *EventHandler
	User  *UserHandler
}

func NewHandler(service *usecase.Service, log *zap.Logger) *Handler {
	return &Handler{
		Admin: NewAdminHandler(service.Admin, log),
		Event: NewEventHandler(service.Dispatch, log),
		User:  NewUserHandler(service.User, log),
	}
}
