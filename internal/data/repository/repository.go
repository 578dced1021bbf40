package repository

import (
	"go.uber.org/zap"

	"github.com/sameer-776/seminar-app/pkg/database"
)

type Repository struct {
	User         UserRepository
	Notification NotificationRepository
}

func NewRepository(db database.PgxIface, log *zap.Logger) *Repository {
	return &Repository{
		User:         NewUserRepository(db, log),
		Notification: NewNotificationRepository(db, log),
	}
}
