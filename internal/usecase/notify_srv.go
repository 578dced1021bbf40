package usecase

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/sameer-776/seminar-app/internal/data/entity"
	"github.com/sameer-776/seminar-app/internal/data/repository"
)

// NotifyService delivers one message to one recipient over both
// channels: a persisted in-app record and a device push.
type NotifyService interface {
	Notify(ctx context.Context, userID, title, body string, bookingID *string) error
}

type notifyService struct {
	userRepo  repository.UserRepository
	notifRepo repository.NotificationRepository
	pusher    Pusher
	log       *zap.Logger
}

func NewNotifyService(
	userRepo repository.UserRepository,
	notifRepo repository.NotificationRepository,
	pusher Pusher,
	log *zap.Logger,
) NotifyService {
	return &notifyService{
		userRepo:  userRepo,
		notifRepo: notifRepo,
		pusher:    pusher,
		log:       log,
	}
}

// Notify fires both channels concurrently and waits for both. Store and
// push errors are not caught here; the caller's retry policy owns them.
func (ns *notifyService) Notify(ctx context.Context, userID, title, body string, bookingID *string) error {
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return ns.createInApp(gctx, userID, title, body, bookingID)
	})
	g.Go(func() error {
		return ns.sendToDevices(gctx, userID, title, body)
	})

	return g.Wait()
}

// createInApp persists the in-app record, unread, server-timestamped.
func (ns *notifyService) createInApp(ctx context.Context, userID, title, body string, bookingID *string) error {
	notification := &entity.Notification{
		ID:        uuid.New(),
		UserID:    userID,
		Title:     title,
		Body:      body,
		BookingID: bookingID,
		IsRead:    false,
	}

	return ns.notifRepo.Create(ctx, notification)
}

// sendToDevices pushes to every registered token of the recipient. A
// missing profile or an empty token set is a completed no-op.
func (ns *notifyService) sendToDevices(ctx context.Context, userID, title, body string) error {
	user, err := ns.userRepo.FindByID(ctx, userID)
	if err != nil {
		return err
	}
	if user == nil {
		ns.log.Warn("User profile not found, skipping device push",
			zap.String("user_id", userID),
		)
		return nil
	}

	if len(user.FCMTokens) == 0 {
		ns.log.Debug("No device tokens for user, skipping push",
			zap.String("user_id", userID),
		)
		return nil
	}

	ns.log.Info("Sending device notification",
		zap.String("user_id", userID),
		zap.Int("tokens", len(user.FCMTokens)),
	)

	return ns.pusher.SendToDevices(ctx, user.FCMTokens, title, body)
}
