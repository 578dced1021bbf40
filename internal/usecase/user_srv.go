package usecase

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/sameer-776/seminar-app/internal/data/repository"
	"github.com/sameer-776/seminar-app/internal/dto/response"
)

// UserService is the authenticated self-service surface: the profile
// mirror, the in-app notification feed and device token registration.
type UserService interface {
	GetProfile(ctx context.Context, userID string) (*response.UserResponse, error)
	GetNotifications(ctx context.Context, userID string) ([]response.NotificationResponse, error)
	MarkNotificationRead(ctx context.Context, userID, notificationID string) error
	RegisterFCMToken(ctx context.Context, userID, token string) error
}

type userService struct {
	userRepo  repository.UserRepository
	notifRepo repository.NotificationRepository
	log       *zap.Logger
}

func NewUserService(
	userRepo repository.UserRepository,
	notifRepo repository.NotificationRepository,
	log *zap.Logger,
) UserService {
	return &userService{
		userRepo:  userRepo,
		notifRepo: notifRepo,
		log:       log,
	}
}

func (us *userService) GetProfile(ctx context.Context, userID string) (*response.UserResponse, error) {
	user, err := us.userRepo.FindByID(ctx, userID)
	if err != nil {
		us.log.Error("Failed to find user", zap.Error(err), zap.String("user_id", userID))
		return nil, fmt.Errorf("failed to get profile")
	}
	if user == nil {
		return nil, fmt.Errorf("user not found")
	}

	return response.UserToResponse(user), nil
}

func (us *userService) GetNotifications(ctx context.Context, userID string) ([]response.NotificationResponse, error) {
	notifications, err := us.notifRepo.FindByUserID(ctx, userID)
	if err != nil {
		us.log.Error("Failed to get notifications", zap.Error(err), zap.String("user_id", userID))
		return nil, fmt.Errorf("failed to get notifications")
	}

	responses := make([]response.NotificationResponse, len(notifications))
	for i, n := range notifications {
		responses[i] = response.NotificationToResponse(n)
	}

	return responses, nil
}

func (us *userService) MarkNotificationRead(ctx context.Context, userID, notificationID string) error {
	id, err := uuid.Parse(notificationID)
	if err != nil {
		return fmt.Errorf("invalid notification ID")
	}

	if err := us.notifRepo.MarkRead(ctx, id, userID); err != nil {
		us.log.Warn("Failed to mark notification read",
			zap.Error(err),
			zap.String("notification_id", notificationID),
			zap.String("user_id", userID),
		)
		return fmt.Errorf("notification not found")
	}

	return nil
}

func (us *userService) RegisterFCMToken(ctx context.Context, userID, token string) error {
	if err := us.userRepo.AddFCMToken(ctx, userID, token); err != nil {
		us.log.Error("Failed to register fcm token", zap.Error(err), zap.String("user_id", userID))
		return fmt.Errorf("failed to register device token")
	}

	us.log.Info("Device token registered", zap.String("user_id", userID))
	return nil
}
