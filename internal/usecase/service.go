package usecase

import (
	"go.uber.org/zap"

	"github.com/sameer-776/seminar-app/internal/data/repository"
)

type Service struct {
	Notify   NotifyService
	Dispatch DispatchService
	Admin    AdminService
	User     UserService
}

func NewService(repo *repository.Repository, authority Authority, pusher Pusher, log *zap.Logger) *Service {
	notify := NewNotifyService(repo.User, repo.Notification, pusher, log)

	return &Service{
		Notify:   notify,
		Dispatch: NewDispatchService(repo.User, notify, log),
		Admin:    NewAdminService(repo.User, authority, log),
		User:     NewUserService(repo.User, repo.Notification, log),
	}
}
