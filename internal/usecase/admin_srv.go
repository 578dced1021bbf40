package usecase

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/sameer-776/seminar-app/internal/data/entity"
	"github.com/sameer-776/seminar-app/internal/data/repository"
)

// AdminService hosts the two privileged callable commands. Both are
// gated on the caller's role claim before anything else runs.
type AdminService interface {
	DeleteUser(ctx context.Context, caller Caller, uid string) (string, error)
	ChangeUserRole(ctx context.Context, caller Caller, uid string, newRole entity.UserRole) (string, error)
}

type adminService struct {
	userRepo  repository.UserRepository
	authority Authority
	log       *zap.Logger
}

func NewAdminService(
	userRepo repository.UserRepository,
	authority Authority,
	log *zap.Logger,
) AdminService {
	return &adminService{
		userRepo:  userRepo,
		authority: authority,
		log:       log,
	}
}

// DeleteUser removes the auth account and the profile row, best-effort.
func (as *adminService) DeleteUser(ctx context.Context, caller Caller, uid string) (string, error) {
	if caller.Role != string(entity.RoleAdmin) {
		return "", NewCallError(CodePermissionDenied,
			"Must be an administrative user to delete users.")
	}

	if uid == "" {
		return "", NewCallError(CodeInvalidArgument,
			"The function must be called with a 'uid' argument.")
	}

	// Auth account first, then the profile row. Not transactional
	// across the two stores; the cause stays server-side.
	if err := as.authority.DeleteAccount(ctx, uid); err != nil {
		as.log.Error("Failed to delete auth account",
			zap.Error(err),
			zap.String("uid", uid),
			zap.String("caller", caller.UID),
		)
		return "", NewCallError(CodeInternal, "Unable to delete user.")
	}

	if err := as.userRepo.Delete(ctx, uid); err != nil {
		as.log.Error("Failed to delete user profile",
			zap.Error(err),
			zap.String("uid", uid),
			zap.String("caller", caller.UID),
		)
		return "", NewCallError(CodeInternal, "Unable to delete user.")
	}

	as.log.Info("User deleted",
		zap.String("uid", uid),
		zap.String("caller", caller.UID),
	)

	return fmt.Sprintf("Successfully deleted user %s", uid), nil
}

// ChangeUserRole sets the role claim on the auth account and mirrors it
// onto the profile row. The claim is the authorization source of truth;
// the mirror only serves read paths.
func (as *adminService) ChangeUserRole(ctx context.Context, caller Caller, uid string, newRole entity.UserRole) (string, error) {
	if caller.Role != string(entity.RoleAdmin) {
		return "", NewCallError(CodePermissionDenied,
			"Only an administrator can change user roles.")
	}

	if uid == "" || newRole == "" || !newRole.IsAssignable() {
		return "", NewCallError(CodeInvalidArgument,
			"The function must be called with a 'uid' and a valid 'newRole'.")
	}

	// Admins cannot change their own role.
	if caller.UID == uid {
		return "", NewCallError(CodeFailedPrecondition,
			"Administrators cannot change their own role.")
	}

	if err := as.authority.SetRoleClaim(ctx, uid, string(newRole)); err != nil {
		as.log.Error("Failed to set role claim",
			zap.Error(err),
			zap.String("uid", uid),
			zap.String("new_role", string(newRole)),
			zap.String("caller", caller.UID),
		)
		return "", NewCallError(CodeInternal, "Unable to change user role.")
	}

	if err := as.userRepo.UpdateRole(ctx, uid, newRole); err != nil {
		as.log.Error("Failed to mirror role onto profile",
			zap.Error(err),
			zap.String("uid", uid),
			zap.String("new_role", string(newRole)),
			zap.String("caller", caller.UID),
		)
		return "", NewCallError(CodeInternal, "Unable to change user role.")
	}

	as.log.Info("User role changed",
		zap.String("uid", uid),
		zap.String("new_role", string(newRole)),
		zap.String("caller", caller.UID),
	)

	return fmt.Sprintf("Successfully changed role for user %s to %s.", uid, newRole), nil
}
