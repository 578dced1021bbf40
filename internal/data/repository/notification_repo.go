package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/sameer-776/seminar-app/internal/data/entity"
	"github.com/sameer-776/seminar-app/pkg/database"
)

type NotificationRepository interface {
	Create(ctx context.Context, notification *entity.Notification) error
	FindByUserID(ctx context.Context, userID string) ([]*entity.Notification, error)
	MarkRead(ctx context.Context, id uuid.UUID, userID string) error
}

type notificationRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewNotificationRepository(db database.PgxIface, log *zap.Logger) NotificationRepository {
	return &notificationRepository{
		db:  db,
		log: log,
	}
}

// Create inserts an in-app notification. The timestamp comes from the
// database clock, not the caller's, so recipients never see skewed order.
func (nr *notificationRepository) Create(ctx context.Context, notification *entity.Notification) error {
	query := `
		INSERT INTO notifications (id, user_id, title, body, booking_id, is_read)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING created_at
	`

	err := nr.db.QueryRow(ctx, query,
		notification.ID,
		notification.UserID,
		notification.Title,
		notification.Body,
		notification.BookingID,
		notification.IsRead,
	).Scan(&notification.CreatedAt)

	if err != nil {
		nr.log.Error("Failed to create notification",
			zap.Error(err),
			zap.String("user_id", notification.UserID),
			zap.String("title", notification.Title),
		)
		return fmt.Errorf("create notification for user %s: %w", notification.UserID, err)
	}

	return nil
}

func (nr *notificationRepository) FindByUserID(ctx context.Context, userID string) ([]*entity.Notification, error) {
	query := `
		SELECT id, user_id, title, body, booking_id, is_read, created_at
		FROM notifications
		WHERE user_id = $1
		ORDER BY created_at DESC
	`

	rows, err := nr.db.Query(ctx, query, userID)
	if err != nil {
		nr.log.Error("Failed to get notifications",
			zap.Error(err),
			zap.String("user_id", userID),
		)
		return nil, fmt.Errorf("find notifications for user %s: %w", userID, err)
	}
	defer rows.Close()

	var notifications []*entity.Notification
	for rows.Next() {
		var n entity.Notification
		err := rows.Scan(
			&n.ID,
			&n.UserID,
			&n.Title,
			&n.Body,
			&n.BookingID,
			&n.IsRead,
			&n.CreatedAt,
		)
		if err != nil {
			nr.log.Error("Failed to scan notification row", zap.Error(err))
			return nil, fmt.Errorf("scan notification row: %w", err)
		}
		notifications = append(notifications, &n)
	}

	if err := rows.Err(); err != nil {
		nr.log.Error("Rows iteration error", zap.Error(err))
		return nil, fmt.Errorf("iterate notification rows: %w", err)
	}

	return notifications, nil
}

// MarkRead flips is_read for the recipient's own notification only.
func (nr *notificationRepository) MarkRead(ctx context.Context, id uuid.UUID, userID string) error {
	query := `UPDATE notifications SET is_read = TRUE WHERE id = $1 AND user_id = $2`

	result, err := nr.db.Exec(ctx, query, id, userID)
	if err != nil {
		nr.log.Error("Failed to mark notification read",
			zap.Error(err),
			zap.String("id", id.String()),
			zap.String("user_id", userID),
		)
		return fmt.Errorf("mark notification %s read: %w", id.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("notification %s not found", id.String())
	}

	return nil
}
