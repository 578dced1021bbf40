package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/sameer-776/seminar-app/internal/data/entity"
	"github.com/sameer-776/seminar-app/pkg/database"
)

type UserRepository interface {
	FindByID(ctx context.Context, id string) (*entity.User, error)
	FindIDsByRole(ctx context.Context, role entity.UserRole) ([]string, error)
	UpdateRole(ctx context.Context, id string, role entity.UserRole) error
	AddFCMToken(ctx context.Context, id, token string) error
	Delete(ctx context.Context, id string) error
}

type userRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewUserRepository(db database.PgxIface, log *zap.Logger) UserRepository {
	return &userRepository{
		db:  db,
		log: log,
	}
}

func (ur *userRepository) FindByID(ctx context.Context, id string) (*entity.User, error) {
	query := `
		SELECT id, display_name, email, role, fcm_tokens, created_at, updated_at
		FROM users
		WHERE id = $1
	`

	var user entity.User
	// QueryRow returns at most one row
	err := ur.db.QueryRow(ctx, query, id).Scan(
		&user.ID,
		&user.DisplayName,
		&user.Email,
		&user.Role,
		&user.FCMTokens,
		&user.CreatedAt,
		&user.UpdatedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		ur.log.Error("Failed to find user by ID",
			zap.Error(err),
			zap.String("user_id", id),
		)
		return nil, fmt.Errorf("find user by ID %s: %w", id, err)
	}

	return &user, nil
}

// FindIDsByRole returns the ids of every user holding the given role.
func (ur *userRepository) FindIDsByRole(ctx context.Context, role entity.UserRole) ([]string, error) {
	query := `SELECT id FROM users WHERE role = $1`

	rows, err := ur.db.Query(ctx, query, role)
	if err != nil {
		ur.log.Error("Failed to query users by role",
			zap.Error(err),
			zap.String("role", string(role)),
		)
		return nil, fmt.Errorf("find users by role %s: %w", role, err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			ur.log.Error("Failed to scan user id", zap.Error(err))
			return nil, fmt.Errorf("scan user id: %w", err)
		}
		ids = append(ids, id)
	}

	if err := rows.Err(); err != nil {
		ur.log.Error("Rows iteration error", zap.Error(err))
		return nil, fmt.Errorf("iterate user ids: %w", err)
	}

	return ids, nil
}

// UpdateRole mirrors the role claim onto the profile row for read paths.
func (ur *userRepository) UpdateRole(ctx context.Context, id string, role entity.UserRole) error {
	query := `UPDATE users SET role = $2, updated_at = NOW() WHERE id = $1`

	result, err := ur.db.Exec(ctx, query, id, role)
	if err != nil {
		ur.log.Error("Failed to update user role",
			zap.Error(err),
			zap.String("user_id", id),
			zap.String("role", string(role)),
		)
		return fmt.Errorf("update role for user %s: %w", id, err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("user %s not found", id)
	}

	return nil
}

// AddFCMToken registers a device token, skipping duplicates.
func (ur *userRepository) AddFCMToken(ctx context.Context, id, token string) error {
	query := `
		UPDATE users
		SET fcm_tokens = array_append(fcm_tokens, $2), updated_at = NOW()
		WHERE id = $1 AND NOT ($2 = ANY(fcm_tokens))
	`

	_, err := ur.db.Exec(ctx, query, id, token)
	if err != nil {
		ur.log.Error("Failed to add fcm token",
			zap.Error(err),
			zap.String("user_id", id),
		)
		return fmt.Errorf("add fcm token for user %s: %w", id, err)
	}

	return nil
}

// Delete removes the profile row. Deleting an already-deleted user is a
// no-op, matching the document-delete semantics of the original store.
func (ur *userRepository) Delete(ctx context.Context, id string) error {
	query := `DELETE FROM users WHERE id = $1`

	result, err := ur.db.Exec(ctx, query, id)
	if err != nil {
		ur.log.Error("Failed to delete user",
			zap.Error(err),
			zap.String("id", id),
		)
		return fmt.Errorf("delete user %s: %w", id, err)
	}

	ur.log.Info("User profile deleted",
		zap.String("id", id),
		zap.Int64("rows", result.RowsAffected()),
	)
	return nil
}
